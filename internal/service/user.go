package service

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/justinjurolan/blogsite/internal/model"
	"github.com/justinjurolan/blogsite/internal/repository"
)

var ErrUserNotFound = errors.New("user not found")

// UserService handles profile reads and updates.
type UserService struct {
	users repository.UserRepository
	files *FileService
}

func NewUserService(users repository.UserRepository, files *FileService) *UserService {
	return &UserService{users: users, files: files}
}

// ByID fetches a user by primary key.
func (s *UserService) ByID(id string) (*model.User, error) {
	user, err := s.users.ByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("loading user %s: %w", id, err)
	}
	return user, nil
}

// Profile fetches a user by email address for the profile page.
func (s *UserService) Profile(email string) (*model.User, error) {
	user, err := s.users.ByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("loading profile for %s: %w", email, err)
	}
	return user, nil
}

// UpdateProfile applies edits to account fields. When newImagePath is
// empty the existing image is kept; when a new image was uploaded the
// old file is removed from storage.
func (s *UserService) UpdateProfile(userID, username, firstName, lastName, email, newImagePath string) (*model.User, error) {
	user, err := s.ByID(userID)
	if err != nil {
		return nil, err
	}

	if newImagePath != "" && user.ImagePath != "" && user.ImagePath != newImagePath {
		s.files.Delete(user.ImagePath)
	}

	user.Username = username
	user.FirstName = firstName
	user.LastName = lastName
	user.Email = email
	if newImagePath != "" {
		user.ImagePath = newImagePath
	}

	if err := s.users.Update(user); err != nil {
		return nil, fmt.Errorf("updating user %s: %w", userID, err)
	}

	slog.Info("profile updated", "user_id", user.ID)
	return user, nil
}

// DeleteAccount removes a user and their profile image. Posts authored
// by the user are left in place so the public archive stays intact.
func (s *UserService) DeleteAccount(userID string) error {
	user, err := s.ByID(userID)
	if err != nil {
		return err
	}

	if user.ImagePath != "" {
		s.files.Delete(user.ImagePath)
	}

	if err := s.users.Delete(userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("deleting user %s: %w", userID, err)
	}

	slog.Info("account deleted", "user_id", userID)
	return nil
}
