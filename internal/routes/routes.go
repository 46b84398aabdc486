package routes

import (
	"net/http"

	"github.com/justinjurolan/blogsite/internal/app"
	"github.com/justinjurolan/blogsite/internal/config"
	"github.com/justinjurolan/blogsite/internal/handler"
	"github.com/justinjurolan/blogsite/internal/middleware"
)

// SetupRoutes wires every handler onto a mux and wraps it with the
// request middleware stack.
func SetupRoutes(a *app.App, cfg *config.Config) http.Handler {
	mux := http.NewServeMux()

	blogs := handler.NewBlogHandler(a.PostService, a.FileService)
	posts := handler.NewPostHandler(a.PostService, a.FileService)
	auth := handler.NewAuthHandler(a.AuthService)
	account := handler.NewAccountHandler(a.UserService, a.AuthService, a.FileService)

	limitAuth := middleware.RateLimitAuth()

	// Public pages
	mux.HandleFunc("GET /{$}", blogs.Index)
	mux.HandleFunc("GET /blog/{id}", blogs.Show)

	// Credentials
	mux.HandleFunc("GET /login", auth.LoginPage)
	mux.Handle("POST /login", limitAuth(http.HandlerFunc(auth.Login)))
	mux.HandleFunc("GET /signup", auth.SignupPage)
	mux.Handle("POST /signup", limitAuth(http.HandlerFunc(auth.Signup)))
	mux.HandleFunc("POST /logout", auth.Logout)

	// Password reset
	mux.HandleFunc("GET /reset", auth.ResetPage)
	mux.Handle("POST /reset", limitAuth(http.HandlerFunc(auth.Reset)))
	mux.HandleFunc("GET /reset/{token}", auth.NewPasswordPage)
	mux.HandleFunc("POST /new-password", auth.NewPassword)

	// Blog pages; the full listing needs a session, search does not
	mux.Handle("GET /blogs", middleware.RequireAuth(http.HandlerFunc(blogs.AllPosts)))
	mux.HandleFunc("POST /blogs/search", blogs.Search)

	// Account management
	mux.Handle("GET /profile", middleware.RequireAuth(http.HandlerFunc(account.ProfilePage)))
	mux.Handle("GET /edit-user/{userId}", middleware.RequireAuth(http.HandlerFunc(account.EditPage)))
	mux.Handle("POST /edit-user/{userId}", middleware.RequireAuth(http.HandlerFunc(account.Update)))
	mux.Handle("POST /delete-user", middleware.RequireAuth(http.HandlerFunc(account.Delete)))

	// Post management dashboard
	mux.Handle("GET /dashboard/add-blogs", middleware.RequireAuth(http.HandlerFunc(posts.AddPage)))
	mux.Handle("POST /dashboard/add-blogs", middleware.RequireAuth(http.HandlerFunc(posts.Create)))
	mux.Handle("GET /dashboard/blogs", middleware.RequireAuth(http.HandlerFunc(posts.MyPosts)))
	mux.Handle("GET /dashboard/edit-blog/{id}", middleware.RequireAuth(http.HandlerFunc(posts.EditPage)))
	mux.Handle("POST /dashboard/edit-blog/{id}", middleware.RequireAuth(http.HandlerFunc(posts.Update)))
	mux.Handle("POST /dashboard/delete-blog", middleware.RequireAuth(http.HandlerFunc(posts.Delete)))

	// Uploaded images (local storage driver)
	mux.Handle("GET /images/", http.StripPrefix("/images/", http.FileServer(http.Dir(cfg.ImagesDir))))

	// Everything else
	mux.HandleFunc("/{path...}", blogs.NotFound)

	return middleware.Chain(mux,
		middleware.RequestLogging,
		middleware.CurrentUser(a.AuthService, a.UserService),
	)
}
