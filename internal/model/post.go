package model

import (
	"time"
)

type Post struct {
	ID          string `db:"id"`
	Title       string `db:"title"`
	Description string `db:"description"`
	ImagePath   string `db:"image_path"`

	// CreatedBy is the owner's username at creation time, denormalized for
	// display. UserID is the owning user and never changes after insert.
	CreatedBy string `db:"created_by"`
	UserID    string `db:"user_id"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
