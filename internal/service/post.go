package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/justinjurolan/blogsite/internal/model"
	"github.com/justinjurolan/blogsite/internal/pagination"
	"github.com/justinjurolan/blogsite/internal/repository"
)

var (
	ErrPostNotFound = errors.New("post not found")
	ErrNotOwner     = errors.New("post belongs to another user")
)

// PostService handles the blog post lifecycle and search.
type PostService struct {
	posts    repository.PostRepository
	files    *FileService
	pageSize int
}

func NewPostService(posts repository.PostRepository, files *FileService, pageSize int) *PostService {
	return &PostService{posts: posts, files: files, pageSize: pageSize}
}

// Create stores a new post owned by the given user. The author's
// username is denormalized onto the post so listings do not need a join.
func (s *PostService) Create(owner *model.User, title, description, imagePath string) (*model.Post, error) {
	now := time.Now()
	post := &model.Post{
		ID:          uuid.New().String(),
		Title:       title,
		Description: description,
		ImagePath:   imagePath,
		CreatedBy:   owner.Username,
		UserID:      owner.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.posts.Create(post); err != nil {
		return nil, fmt.Errorf("creating post: %w", err)
	}

	slog.Info("post created", "post_id", post.ID, "user_id", owner.ID)
	return post, nil
}

// ByID fetches a single post.
func (s *PostService) ByID(id string) (*model.Post, error) {
	post, err := s.posts.ByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("loading post %s: %w", id, err)
	}
	return post, nil
}

// List returns one page of posts, newest first, with pagination state.
func (s *PostService) List(page int) ([]*model.Post, pagination.Page, error) {
	total, err := s.posts.Count()
	if err != nil {
		return nil, pagination.Page{}, fmt.Errorf("counting posts: %w", err)
	}

	pg := pagination.New(total, page, s.pageSize)
	posts, err := s.posts.List(pg.PageSize, pg.Offset())
	if err != nil {
		return nil, pagination.Page{}, fmt.Errorf("listing posts: %w", err)
	}

	return posts, pg, nil
}

// ByUser returns every post owned by a user, newest first.
func (s *PostService) ByUser(userID string) ([]*model.Post, error) {
	posts, err := s.posts.ByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("listing posts for user %s: %w", userID, err)
	}
	return posts, nil
}

// Update edits a post. Only the owner may change it; when a new image
// was uploaded the previous file is removed from storage.
func (s *PostService) Update(userID, postID, title, description, newImagePath string) (*model.Post, error) {
	post, err := s.ByID(postID)
	if err != nil {
		return nil, err
	}

	if post.UserID != userID {
		return nil, ErrNotOwner
	}

	if newImagePath != "" && post.ImagePath != "" && post.ImagePath != newImagePath {
		s.files.Delete(post.ImagePath)
	}

	post.Title = title
	post.Description = description
	if newImagePath != "" {
		post.ImagePath = newImagePath
	}

	if err := s.posts.Update(post); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, ErrNotOwner
		}
		return nil, fmt.Errorf("updating post %s: %w", postID, err)
	}

	slog.Info("post updated", "post_id", post.ID, "user_id", userID)
	return post, nil
}

// Delete removes a post's image and then the post itself. The row
// delete is scoped to the owner; when the caller does not own the post
// the statement matches nothing and the call is a logged no-op.
func (s *PostService) Delete(userID, postID string) error {
	post, err := s.ByID(postID)
	if err != nil {
		return err
	}

	if post.ImagePath != "" {
		s.files.Delete(post.ImagePath)
	}

	n, err := s.posts.DeleteOwned(postID, userID)
	if err != nil {
		return fmt.Errorf("deleting post %s: %w", postID, err)
	}
	if n == 0 {
		slog.Warn("delete matched no owned post", "post_id", postID, "user_id", userID)
		return nil
	}

	slog.Info("post deleted", "post_id", postID, "user_id", userID)
	return nil
}

// Search runs a full-text search over titles and descriptions. The
// query is split on whitespace and each term is quoted so user input
// cannot inject match-expression syntax; terms are OR-joined so any hit
// counts.
func (s *PostService) Search(query string) ([]*model.Post, error) {
	terms := strings.Fields(query)
	if len(terms) == 0 {
		return nil, nil
	}

	quoted := make([]string, 0, len(terms))
	for _, term := range terms {
		quoted = append(quoted, `"`+strings.ReplaceAll(term, `"`, `""`)+`"`)
	}
	match := strings.Join(quoted, " OR ")

	posts, err := s.posts.Search(match)
	if err != nil {
		return nil, fmt.Errorf("searching posts: %w", err)
	}
	return posts, nil
}
