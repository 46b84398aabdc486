package handler

import (
	"net/http"

	"github.com/justinjurolan/blogsite/internal/ctxkeys"
	"github.com/justinjurolan/blogsite/internal/model"
	"github.com/justinjurolan/blogsite/internal/service"
	"github.com/justinjurolan/blogsite/internal/ui"
	"github.com/justinjurolan/blogsite/internal/validation"
)

// AccountHandler serves the caller's profile pages.
type AccountHandler struct {
	users *service.UserService
	auth  *service.AuthService
	files *service.FileService
}

func NewAccountHandler(users *service.UserService, auth *service.AuthService, files *service.FileService) *AccountHandler {
	return &AccountHandler{users: users, auth: auth, files: files}
}

func (h *AccountHandler) profileData(r *http.Request, title string, user *model.User) map[string]any {
	data := baseData(r, title)
	data["Profile"] = user
	if user.ImagePath != "" {
		data["ImageURL"] = h.files.URL(user.ImagePath)
	} else {
		data["ImageURL"] = ""
	}
	return data
}

// ProfilePage renders the caller's own profile.
func (h *AccountHandler) ProfilePage(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	profile, err := h.users.Profile(user.Email)
	if err != nil {
		serverError(w, r, err)
		return
	}

	ui.Render(w, http.StatusOK, "profile.html", h.profileData(r, "Profile", profile))
}

// EditPage renders the profile edit form. The URL names a user ID, but
// editing is only ever allowed on the caller's own account.
func (h *AccountHandler) EditPage(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	if r.PathValue("userId") != user.ID {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	ui.Render(w, http.StatusOK, "edit-profile.html", h.profileData(r, "Edit Profile", user))
}

// Update applies profile edits, including an optional replacement image.
func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	if r.PathValue("userId") != user.ID {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	email := r.FormValue("email")
	username := r.FormValue("username")
	firstName := r.FormValue("firstname")
	lastName := r.FormValue("lastname")

	rerender := func(msg string) {
		draft := *user
		draft.Email = email
		draft.Username = username
		draft.FirstName = firstName
		draft.LastName = lastName
		data := h.profileData(r, "Edit Profile", &draft)
		data["ErrorMessage"] = msg
		ui.Render(w, http.StatusUnprocessableEntity, "edit-profile.html", data)
	}

	for _, check := range []error{
		validation.ValidateEmail(email),
		validation.ValidateUsername(username),
		validation.ValidateName("first name", firstName),
		validation.ValidateName("last name", lastName),
	} {
		if check != nil {
			rerender(check.Error())
			return
		}
	}

	imagePath, err := formImage(r, h.files)
	if err != nil {
		serverError(w, r, err)
		return
	}

	if _, err := h.users.UpdateProfile(user.ID, username, firstName, lastName, email, imagePath); err != nil {
		serverError(w, r, err)
		return
	}

	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}

// Delete removes the caller's own account and ends the session.
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	if err := h.users.DeleteAccount(user.ID); err != nil {
		serverError(w, r, err)
		return
	}

	h.auth.ClearJWTCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
