package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/justinjurolan/blogsite/internal/model"
)

var (
	ErrUserNotFound = errors.New("user not found")
)

type UserRepository interface {
	Create(user *model.User) error
	ByID(id string) (*model.User, error)
	ByEmail(email string) (*model.User, error)
	// ByResetToken resolves a user holding the given reset token whose
	// expiration is still in the future.
	ByResetToken(token string, now time.Time) (*model.User, error)
	// ByResetTokenAndID additionally requires the user id to match, which
	// is the lookup used when completing a password reset.
	ByResetTokenAndID(token, id string, now time.Time) (*model.User, error)
	Update(user *model.User) error
	Delete(id string) error
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User) error {
	query := `INSERT INTO users
	          (id, email, password_hash, username, firstname, lastname, image_path,
	           password_reset_chance, reset_token, reset_token_expires_at, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.db.Exec(query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.Username,
		user.FirstName,
		user.LastName,
		user.ImagePath,
		user.PasswordResetChance,
		user.ResetToken,
		user.ResetTokenExpiresAt,
		user.CreatedAt,
		user.UpdatedAt,
	)
	return err
}

func (r *userRepository) ByID(id string) (*model.User, error) {
	user := &model.User{}
	query := `SELECT * FROM users WHERE id = $1`

	err := r.db.Get(user, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}

	return user, err
}

func (r *userRepository) ByEmail(email string) (*model.User, error) {
	user := &model.User{}
	// Email is not unique at the data layer; first match wins.
	query := `SELECT * FROM users WHERE email = $1 LIMIT 1`

	err := r.db.Get(user, query, email)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}

	return user, err
}

func (r *userRepository) ByResetToken(token string, now time.Time) (*model.User, error) {
	user := &model.User{}
	query := `SELECT * FROM users WHERE reset_token = $1 AND reset_token_expires_at > $2 LIMIT 1`

	err := r.db.Get(user, query, token, now)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}

	return user, err
}

func (r *userRepository) ByResetTokenAndID(token, id string, now time.Time) (*model.User, error) {
	user := &model.User{}
	query := `SELECT * FROM users
	          WHERE reset_token = $1 AND reset_token_expires_at > $2 AND id = $3`

	err := r.db.Get(user, query, token, now, id)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}

	return user, err
}

func (r *userRepository) Update(user *model.User) error {
	query := `UPDATE users
	          SET email = $1, password_hash = $2, username = $3, firstname = $4,
	              lastname = $5, image_path = $6, password_reset_chance = $7,
	              reset_token = $8, reset_token_expires_at = $9, updated_at = $10
	          WHERE id = $11`

	_, err := r.db.Exec(query,
		user.Email,
		user.PasswordHash,
		user.Username,
		user.FirstName,
		user.LastName,
		user.ImagePath,
		user.PasswordResetChance,
		user.ResetToken,
		user.ResetTokenExpiresAt,
		time.Now(),
		user.ID,
	)
	return err
}

func (r *userRepository) Delete(id string) error {
	query := `DELETE FROM users WHERE id = $1`

	result, err := r.db.Exec(query, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrUserNotFound
	}

	return nil
}
