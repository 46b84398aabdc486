package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/justinjurolan/blogsite/internal/model"
)

var (
	ErrPostNotFound = errors.New("post not found")
)

type PostRepository interface {
	Create(post *model.Post) error
	ByID(id string) (*model.Post, error)
	List(limit, offset int) ([]*model.Post, error)
	Count() (int, error)
	ByUser(userID string) ([]*model.Post, error)
	Update(post *model.Post) error
	// DeleteOwned removes the post only when it belongs to userID and
	// reports how many rows were deleted, so an ownership mismatch is a
	// zero-row no-op rather than an error.
	DeleteOwned(id, userID string) (int64, error)
	// Search runs an FTS5 MATCH query against title and description.
	Search(match string) ([]*model.Post, error)
}

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(post *model.Post) error {
	query := `INSERT INTO posts
	          (id, title, description, image_path, created_by, user_id, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(query,
		post.ID,
		post.Title,
		post.Description,
		post.ImagePath,
		post.CreatedBy,
		post.UserID,
		post.CreatedAt,
		post.UpdatedAt,
	)
	return err
}

func (r *postRepository) ByID(id string) (*model.Post, error) {
	post := &model.Post{}
	query := `SELECT * FROM posts WHERE id = $1`

	err := r.db.Get(post, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrPostNotFound
	}

	return post, err
}

func (r *postRepository) List(limit, offset int) ([]*model.Post, error) {
	var posts []*model.Post
	query := `SELECT * FROM posts ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	err := r.db.Select(&posts, query, limit, offset)
	if err != nil {
		return nil, err
	}

	return posts, nil
}

func (r *postRepository) Count() (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM posts`
	err := r.db.QueryRow(query).Scan(&count)
	return count, err
}

func (r *postRepository) ByUser(userID string) ([]*model.Post, error) {
	var posts []*model.Post
	query := `SELECT * FROM posts WHERE user_id = $1 ORDER BY created_at DESC`

	err := r.db.Select(&posts, query, userID)
	if err != nil {
		return nil, err
	}

	return posts, nil
}

func (r *postRepository) Update(post *model.Post) error {
	// Scoped to user_id so the owner reference can never be rebound.
	query := `UPDATE posts
	          SET title = $1, description = $2, image_path = $3, updated_at = $4
	          WHERE id = $5 AND user_id = $6`

	result, err := r.db.Exec(query,
		post.Title,
		post.Description,
		post.ImagePath,
		time.Now(),
		post.ID,
		post.UserID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrPostNotFound
	}

	return nil
}

func (r *postRepository) DeleteOwned(id, userID string) (int64, error) {
	query := `DELETE FROM posts WHERE id = $1 AND user_id = $2`

	result, err := r.db.Exec(query, id, userID)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

func (r *postRepository) Search(match string) ([]*model.Post, error) {
	var posts []*model.Post
	query := `SELECT p.* FROM posts p
	          JOIN posts_fts ON posts_fts.rowid = p.rowid
	          WHERE posts_fts MATCH $1
	          ORDER BY posts_fts.rank`

	err := r.db.Select(&posts, query, match)
	if err != nil {
		return nil, err
	}

	return posts, nil
}
