package model

import (
	"time"
)

type User struct {
	ID           string `db:"id"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
	Username     string `db:"username"`
	FirstName    string `db:"firstname"`
	LastName     string `db:"lastname"`

	// ImagePath is the storage path of the profile image, empty when the
	// user never uploaded one.
	ImagePath string `db:"image_path"`

	// PasswordResetChance counts down with every reset request; once it
	// reaches zero further reset requests are refused.
	PasswordResetChance int        `db:"password_reset_chance"`
	ResetToken          *string    `db:"reset_token"`
	ResetTokenExpiresAt *time.Time `db:"reset_token_expires_at"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (u *User) HasImage() bool {
	return u.ImagePath != ""
}
