package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/justinjurolan/blogsite/internal/ctxkeys"
	"github.com/justinjurolan/blogsite/internal/service"
)

// CurrentUser resolves the session cookie to a user and stores it on the
// request context. Requests without a valid session continue anonymously;
// an invalid or expired cookie is cleared on the way through.
func CurrentUser(auth *service.AuthService, users *service.UserService) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(service.SessionCookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := auth.VerifyJWT(cookie.Value)
			if err != nil {
				slog.Debug("rejecting session token", "error", err)
				auth.ClearJWTCookie(w)
				next.ServeHTTP(w, r)
				return
			}

			userID, ok := claims["user_id"].(string)
			if !ok || userID == "" {
				auth.ClearJWTCookie(w)
				next.ServeHTTP(w, r)
				return
			}

			user, err := users.ByID(userID)
			if err != nil {
				// Token is valid but the account is gone.
				auth.ClearJWTCookie(w)
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(ctxkeys.WithUser(r.Context(), user)))
		})
	}
}

// RequireAuth rejects requests whose context has no resolved user.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ctxkeys.User(r.Context()) == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error": "user not authenticated"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
