package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/justinjurolan/blogsite/internal/model"
	"github.com/justinjurolan/blogsite/internal/service"
	"github.com/justinjurolan/blogsite/internal/ui"
)

// BlogHandler serves the public blog pages: the paginated index, single
// post pages, and search.
type BlogHandler struct {
	posts *service.PostService
	files *service.FileService
}

func NewBlogHandler(posts *service.PostService, files *service.FileService) *BlogHandler {
	return &BlogHandler{posts: posts, files: files}
}

func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// Index renders the public landing page with one page of posts.
func (h *BlogHandler) Index(w http.ResponseWriter, r *http.Request) {
	posts, pg, err := h.posts.List(pageParam(r))
	if err != nil {
		serverError(w, r, err)
		return
	}

	data := baseData(r, "Latest Blogs")
	data["Posts"] = viewPosts(h.files, posts)
	data["Page"] = pg
	ui.Render(w, http.StatusOK, "index.html", data)
}

// AllPosts renders the authenticated blog listing with search.
func (h *BlogHandler) AllPosts(w http.ResponseWriter, r *http.Request) {
	posts, pg, err := h.posts.List(pageParam(r))
	if err != nil {
		serverError(w, r, err)
		return
	}

	data := baseData(r, "All Blogs")
	data["Posts"] = viewPosts(h.files, posts)
	data["Page"] = pg
	data["Query"] = ""
	ui.Render(w, http.StatusOK, "blog-list.html", data)
}

// Show renders a single post. A missing post redirects home rather than
// rendering an error page.
func (h *BlogHandler) Show(w http.ResponseWriter, r *http.Request) {
	post, err := h.posts.ByID(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		serverError(w, r, err)
		return
	}

	view := viewPosts(h.files, []*model.Post{post})[0]
	data := baseData(r, post.Title)
	data["Post"] = view
	ui.Render(w, http.StatusOK, "blog-detail.html", data)
}

// Search runs a text search over posts and renders the matches.
func (h *BlogHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.FormValue("searchBlog")

	posts, err := h.posts.Search(query)
	if err != nil {
		serverError(w, r, err)
		return
	}

	data := baseData(r, "Search Results")
	data["Posts"] = viewPosts(h.files, posts)
	data["Query"] = query
	ui.Render(w, http.StatusOK, "search-blog.html", data)
}

// NotFound renders the catch-all 404 page.
func (h *BlogHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	data := baseData(r, "Page Not Found")
	ui.Render(w, http.StatusNotFound, "404.html", data)
}
