package handler

import (
	"errors"
	"net/http"

	"github.com/justinjurolan/blogsite/internal/ctxkeys"
	"github.com/justinjurolan/blogsite/internal/service"
	"github.com/justinjurolan/blogsite/internal/ui"
	"github.com/justinjurolan/blogsite/internal/validation"
)

// PostHandler serves the authenticated dashboard for managing the
// caller's own posts.
type PostHandler struct {
	posts *service.PostService
	files *service.FileService
}

func NewPostHandler(posts *service.PostService, files *service.FileService) *PostHandler {
	return &PostHandler{posts: posts, files: files}
}

// AddPage renders the blank new-post form.
func (h *PostHandler) AddPage(w http.ResponseWriter, r *http.Request) {
	data := baseData(r, "New Blog")
	data["Editing"] = false
	ui.Render(w, http.StatusOK, "edit-blog.html", data)
}

func validatePostForm(title, description string) error {
	if err := validation.ValidateTitle(title); err != nil {
		return err
	}
	return validation.ValidateDescription(description)
}

// Create handles new-post submission. An image is required; a missing or
// invalid upload re-renders the form alongside the submitted fields.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	title := r.FormValue("title")
	description := r.FormValue("description")

	rerender := func(msg string) {
		data := baseData(r, "New Blog")
		data["Editing"] = false
		data["ErrorMessage"] = msg
		data["OldInput"] = map[string]string{"Title": title, "Description": description}
		ui.Render(w, http.StatusUnprocessableEntity, "edit-blog.html", data)
	}

	if err := validatePostForm(title, description); err != nil {
		rerender(err.Error())
		return
	}

	imagePath, err := formImage(r, h.files)
	if err != nil {
		serverError(w, r, err)
		return
	}
	if imagePath == "" {
		rerender("Attached file is not an image.")
		return
	}

	if _, err := h.posts.Create(user, title, description, imagePath); err != nil {
		serverError(w, r, err)
		return
	}

	http.Redirect(w, r, "/dashboard/blogs", http.StatusSeeOther)
}

// MyPosts lists the caller's own posts with edit and delete controls.
func (h *PostHandler) MyPosts(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	posts, err := h.posts.ByUser(user.ID)
	if err != nil {
		serverError(w, r, err)
		return
	}

	data := baseData(r, "My Blogs")
	data["Posts"] = viewPosts(h.files, posts)
	ui.Render(w, http.StatusOK, "admin-blogs.html", data)
}

// EditPage renders the edit form for an owned post. The edit query flag
// must be present; without it, or when the post is missing, the caller
// is redirected home.
func (h *PostHandler) EditPage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("edit") == "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	post, err := h.posts.ByID(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		serverError(w, r, err)
		return
	}

	data := baseData(r, "Edit Blog")
	data["Editing"] = true
	data["OldInput"] = map[string]string{
		"ID":          post.ID,
		"Title":       post.Title,
		"Description": post.Description,
	}
	ui.Render(w, http.StatusOK, "edit-blog.html", data)
}

// Update handles the edit-form submission. Editing a post the caller
// does not own is a silent redirect home.
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	postID := r.PathValue("id")

	title := r.FormValue("title")
	description := r.FormValue("description")

	if err := validatePostForm(title, description); err != nil {
		data := baseData(r, "Edit Blog")
		data["Editing"] = true
		data["ErrorMessage"] = err.Error()
		data["OldInput"] = map[string]string{
			"ID":          postID,
			"Title":       title,
			"Description": description,
		}
		ui.Render(w, http.StatusUnprocessableEntity, "edit-blog.html", data)
		return
	}

	imagePath, err := formImage(r, h.files)
	if err != nil {
		serverError(w, r, err)
		return
	}

	if _, err := h.posts.Update(user.ID, postID, title, description, imagePath); err != nil {
		switch {
		case errors.Is(err, service.ErrNotOwner):
			http.Redirect(w, r, "/", http.StatusSeeOther)
		case errors.Is(err, service.ErrPostNotFound):
			http.Redirect(w, r, "/", http.StatusSeeOther)
		default:
			serverError(w, r, err)
		}
		return
	}

	http.Redirect(w, r, "/dashboard/blogs", http.StatusSeeOther)
}

// Delete removes a post named by the blogId form field. A missing post
// is an error page; a post owned by someone else is a silent no-op.
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	postID := r.FormValue("blogId")

	if err := h.posts.Delete(user.ID, postID); err != nil {
		serverError(w, r, err)
		return
	}

	http.Redirect(w, r, "/dashboard/blogs", http.StatusSeeOther)
}
