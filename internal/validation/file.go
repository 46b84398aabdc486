package validation

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
)

// MaxImageSize is the largest upload accepted for post and profile images.
const MaxImageSize = 5 << 20 // 5 MB

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// ValidateImage checks an uploaded image by extension, size, and content
// sniffing. The file's read offset is rewound before returning so callers
// can stream it to storage afterwards.
func ValidateImage(file multipart.File, header *multipart.FileHeader) error {
	if header == nil {
		return errors.New("no file provided")
	}

	if header.Size > MaxImageSize {
		return fmt.Errorf("image must be smaller than %d MB", MaxImageSize>>20)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExtensions[ext] {
		return errors.New("image must be a .jpg, .jpeg, or .png file")
	}

	// Sniff the actual content rather than trusting the Content-Type header.
	buf := make([]byte, 512)
	n, err := file.Read(buf)
	if err != nil && n == 0 {
		return errors.New("could not read uploaded file")
	}
	if _, err := file.Seek(0, 0); err != nil {
		return errors.New("could not rewind uploaded file")
	}

	contentType := http.DetectContentType(buf[:n])
	if !allowedImageTypes[contentType] {
		return errors.New("file content is not a valid image")
	}

	return nil
}
