package validation

import (
	"bytes"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateEmail(t *testing.T) {
	require.NoError(t, ValidateEmail("a@x.com"))
	require.Error(t, ValidateEmail(""))
	require.Error(t, ValidateEmail("not-an-email"))
	require.Error(t, ValidateEmail(strings.Repeat("a", 250)+"@x.com"))
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		ok       bool
	}{
		{"minimum length", "abcde", true},
		{"letters and digits", "abc12", true},
		{"too short", "abcd", false},
		{"empty", "", false},
		{"symbols rejected", "abc!e", false},
		{"spaces rejected", "abc e", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.ok {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}
}

func TestValidateTitle(t *testing.T) {
	require.NoError(t, ValidateTitle("Hi there"))
	require.NoError(t, ValidateTitle("  abc  "))
	require.Error(t, ValidateTitle("ab"))
	require.Error(t, ValidateTitle("  ab  "))
	require.Error(t, ValidateTitle(""))
}

func TestValidateDescription(t *testing.T) {
	require.NoError(t, ValidateDescription("hello"))
	require.NoError(t, ValidateDescription(strings.Repeat("a", 800)))
	require.Error(t, ValidateDescription("hi"))
	require.Error(t, ValidateDescription(strings.Repeat("a", 801)))
	require.Error(t, ValidateDescription("   "))
}

func TestValidateNames(t *testing.T) {
	require.NoError(t, ValidateUsername("al"))
	require.Error(t, ValidateUsername("a"))
	require.Error(t, ValidateUsername("  "))

	require.NoError(t, ValidateName("first name", "Al"))
	err := ValidateName("first name", "")
	require.Error(t, err)
	require.Contains(t, err.Error(), "first name")
}

// uploadFile builds a real multipart.File and FileHeader from raw bytes.
func uploadFile(t *testing.T, filename string, content []byte) (multipart.File, *multipart.FileHeader) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	reader := multipart.NewReader(&buf, w.Boundary())
	form, err := reader.ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	header := form.File["image"][0]
	file, err := header.Open()
	require.NoError(t, err)
	t.Cleanup(func() { file.Close() })

	return file, header
}

func TestValidateImage(t *testing.T) {
	jpegMagic := append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, bytes.Repeat([]byte{0x01}, 64)...)
	pngMagic := append([]byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}, bytes.Repeat([]byte{0x01}, 64)...)

	t.Run("jpeg accepted", func(t *testing.T) {
		file, header := uploadFile(t, "photo.jpg", jpegMagic)
		require.NoError(t, ValidateImage(file, header))
	})

	t.Run("png accepted", func(t *testing.T) {
		file, header := uploadFile(t, "shot.png", pngMagic)
		require.NoError(t, ValidateImage(file, header))
	})

	t.Run("rewinds after sniffing", func(t *testing.T) {
		file, header := uploadFile(t, "photo.jpg", jpegMagic)
		require.NoError(t, ValidateImage(file, header))

		head := make([]byte, 4)
		_, err := file.Read(head)
		require.NoError(t, err)
		require.Equal(t, jpegMagic[:4], head)
	})

	t.Run("wrong extension rejected", func(t *testing.T) {
		file, header := uploadFile(t, "photo.gif", jpegMagic)
		require.Error(t, ValidateImage(file, header))
	})

	t.Run("text content with image extension rejected", func(t *testing.T) {
		file, header := uploadFile(t, "fake.png", []byte("just some plain text, definitely not pixels"))
		require.Error(t, ValidateImage(file, header))
	})
}
