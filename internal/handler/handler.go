package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/justinjurolan/blogsite/internal/ctxkeys"
	"github.com/justinjurolan/blogsite/internal/model"
	"github.com/justinjurolan/blogsite/internal/service"
	"github.com/justinjurolan/blogsite/internal/ui"
	"github.com/justinjurolan/blogsite/internal/validation"
)

// postView pairs a post with its resolved image URL for templates.
type postView struct {
	*model.Post
	ImageURL string
}

func viewPosts(files *service.FileService, posts []*model.Post) []postView {
	views := make([]postView, 0, len(posts))
	for _, p := range posts {
		v := postView{Post: p}
		if p.ImagePath != "" {
			v.ImageURL = files.URL(p.ImagePath)
		}
		views = append(views, v)
	}
	return views
}

// baseData builds the template data every page needs.
func baseData(r *http.Request, title string) map[string]any {
	return map[string]any{
		"Title":        title,
		"User":         ctxkeys.User(r.Context()),
		"ErrorMessage": "",
		"OldInput":     map[string]string{},
	}
}

// formImage extracts and stores an uploaded image from the "image" form
// field. A missing field or a file that fails image validation yields an
// empty path with no error, so callers decide whether an image was
// required.
func formImage(r *http.Request, files *service.FileService) (string, error) {
	file, header, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil
		}
		return "", err
	}
	defer file.Close()

	if err := validation.ValidateImage(file, header); err != nil {
		slog.Debug("dropping invalid upload", "filename", header.Filename, "error", err)
		return "", nil
	}

	return files.Save(file, header)
}

func serverError(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	data := baseData(r, "Error")
	ui.Render(w, http.StatusInternalServerError, "500.html", data)
}
