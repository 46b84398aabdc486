package handler

import (
	"errors"
	"net/http"

	"github.com/justinjurolan/blogsite/internal/service"
	"github.com/justinjurolan/blogsite/internal/ui"
	"github.com/justinjurolan/blogsite/internal/validation"
)

// AuthHandler serves signup, login, logout, and the password reset pages.
type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// LoginPage renders the login form.
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	ui.Render(w, http.StatusOK, "login.html", baseData(r, "Login"))
}

// Login checks credentials and starts a session. Every failure renders
// the same message so the form does not reveal which accounts exist.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	rerender := func(msg string) {
		data := baseData(r, "Login")
		data["ErrorMessage"] = msg
		data["OldInput"] = map[string]string{"Email": email}
		ui.Render(w, http.StatusUnprocessableEntity, "login.html", data)
	}

	if err := validation.ValidateEmail(email); err != nil {
		rerender(err.Error())
		return
	}
	if err := validation.ValidatePassword(password); err != nil {
		rerender(err.Error())
		return
	}

	user, err := h.auth.Login(email, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			rerender("Invalid email or password")
			return
		}
		serverError(w, r, err)
		return
	}

	token, err := h.auth.GenerateJWT(user)
	if err != nil {
		serverError(w, r, err)
		return
	}

	h.auth.SetJWTCookie(w, token)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// SignupPage renders the registration form.
func (h *AuthHandler) SignupPage(w http.ResponseWriter, r *http.Request) {
	ui.Render(w, http.StatusOK, "signup.html", baseData(r, "Signup"))
}

// Signup registers a new account. Validation failures re-render the form
// with the first error and the submitted values.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	username := r.FormValue("username")
	firstName := r.FormValue("firstname")
	lastName := r.FormValue("lastname")
	password := r.FormValue("password")
	confirm := r.FormValue("confirmPassword")

	rerender := func(msg string) {
		data := baseData(r, "Signup")
		data["ErrorMessage"] = msg
		data["OldInput"] = map[string]string{
			"Email":     email,
			"Username":  username,
			"FirstName": firstName,
			"LastName":  lastName,
		}
		ui.Render(w, http.StatusUnprocessableEntity, "signup.html", data)
	}

	for _, check := range []error{
		validation.ValidateEmail(email),
		validation.ValidateUsername(username),
		validation.ValidateName("first name", firstName),
		validation.ValidateName("last name", lastName),
		validation.ValidatePassword(password),
	} {
		if check != nil {
			rerender(check.Error())
			return
		}
	}

	if password != confirm {
		rerender("Passwords do not match")
		return
	}

	if _, err := h.auth.Signup(email, password, username, firstName, lastName); err != nil {
		if errors.Is(err, service.ErrEmailAlreadyExists) {
			rerender("Email address already in use")
			return
		}
		serverError(w, r, err)
		return
	}

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// Logout clears the session cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.auth.ClearJWTCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ResetPage renders the request-a-reset form.
func (h *AuthHandler) ResetPage(w http.ResponseWriter, r *http.Request) {
	ui.Render(w, http.StatusOK, "reset.html", baseData(r, "Reset Password"))
}

// Reset starts the password reset flow for an email address.
func (h *AuthHandler) Reset(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")

	rerender := func(msg string) {
		data := baseData(r, "Reset Password")
		data["ErrorMessage"] = msg
		data["OldInput"] = map[string]string{"Email": email}
		ui.Render(w, http.StatusUnprocessableEntity, "reset.html", data)
	}

	if err := validation.ValidateEmail(email); err != nil {
		rerender(err.Error())
		return
	}

	if err := h.auth.RequestPasswordReset(email); err != nil {
		switch {
		case errors.Is(err, service.ErrNoAccount):
			rerender("No account with that email found")
		case errors.Is(err, service.ErrResetExhausted):
			rerender("Password reset limit reached. Please contact support.")
		default:
			serverError(w, r, err)
		}
		return
	}

	data := baseData(r, "Reset Password")
	data["InfoMessage"] = "Check your email for a reset link."
	ui.Render(w, http.StatusOK, "reset.html", data)
}

// NewPasswordPage resolves a reset token from the URL and renders the
// new-password form carrying the token and user ID.
func (h *AuthHandler) NewPasswordPage(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")

	user, err := h.auth.UserForResetToken(token)
	if err != nil {
		if errors.Is(err, service.ErrInvalidResetToken) {
			http.Redirect(w, r, "/reset", http.StatusSeeOther)
			return
		}
		serverError(w, r, err)
		return
	}

	data := baseData(r, "Set New Password")
	data["Token"] = token
	data["UserID"] = user.ID
	ui.Render(w, http.StatusOK, "new-password.html", data)
}

// NewPassword completes the reset: the token and user ID from the form
// must still match an unexpired token.
func (h *AuthHandler) NewPassword(w http.ResponseWriter, r *http.Request) {
	token := r.FormValue("token")
	userID := r.FormValue("userId")
	password := r.FormValue("password")

	if err := validation.ValidatePassword(password); err != nil {
		data := baseData(r, "Set New Password")
		data["ErrorMessage"] = err.Error()
		data["Token"] = token
		data["UserID"] = userID
		ui.Render(w, http.StatusUnprocessableEntity, "new-password.html", data)
		return
	}

	if err := h.auth.CompletePasswordReset(token, userID, password); err != nil {
		if errors.Is(err, service.ErrInvalidResetToken) {
			http.Redirect(w, r, "/reset", http.StatusSeeOther)
			return
		}
		serverError(w, r, err)
		return
	}

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
