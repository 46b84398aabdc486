package service

import (
	"io"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/justinjurolan/blogsite/internal/model"
	"github.com/justinjurolan/blogsite/internal/repository"
)

// fakePostRepo is an in-memory PostRepository.
type fakePostRepo struct {
	posts map[string]*model.Post
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[string]*model.Post)}
}

func (f *fakePostRepo) Create(post *model.Post) error {
	p := *post
	f.posts[post.ID] = &p
	return nil
}

func (f *fakePostRepo) ByID(id string) (*model.Post, error) {
	if p, ok := f.posts[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, repository.ErrPostNotFound
}

func (f *fakePostRepo) sorted() []*model.Post {
	out := make([]*model.Post, 0, len(f.posts))
	for _, p := range f.posts {
		copied := *p
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (f *fakePostRepo) List(limit, offset int) ([]*model.Post, error) {
	all := f.sorted()
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (f *fakePostRepo) Count() (int, error) {
	return len(f.posts), nil
}

func (f *fakePostRepo) ByUser(userID string) ([]*model.Post, error) {
	var out []*model.Post
	for _, p := range f.sorted() {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePostRepo) Update(post *model.Post) error {
	existing, ok := f.posts[post.ID]
	if !ok || existing.UserID != post.UserID {
		return repository.ErrPostNotFound
	}
	p := *post
	f.posts[post.ID] = &p
	return nil
}

func (f *fakePostRepo) DeleteOwned(id, userID string) (int64, error) {
	if p, ok := f.posts[id]; ok && p.UserID == userID {
		delete(f.posts, id)
		return 1, nil
	}
	return 0, nil
}

func (f *fakePostRepo) Search(match string) ([]*model.Post, error) {
	var out []*model.Post
	terms := strings.Split(match, " OR ")
	for _, p := range f.sorted() {
		text := strings.ToLower(p.Title + " " + p.Description)
		for _, term := range terms {
			term = strings.ToLower(strings.Trim(term, `"`))
			if strings.Contains(text, term) {
				out = append(out, p)
				break
			}
		}
	}
	return out, nil
}

// fakeStorage records saves and deletes.
type fakeStorage struct {
	saved   []string
	deleted []string
}

func (f *fakeStorage) Save(path string, _ io.Reader) error {
	f.saved = append(f.saved, path)
	return nil
}

func (f *fakeStorage) Delete(path string) error {
	f.deleted = append(f.deleted, path)
	return nil
}

func (f *fakeStorage) URL(path string) string { return "/images/" + path }

func newTestPostService() (*PostService, *fakePostRepo, *fakeStorage) {
	repo := newFakePostRepo()
	store := &fakeStorage{}
	return NewPostService(repo, NewFileService(store), 2), repo, store
}

var (
	owner = &model.User{ID: "u1", Username: "alice"}
	other = &model.User{ID: "u2", Username: "bob"}
)

func TestPostCreate(t *testing.T) {
	svc, repo, _ := newTestPostService()

	post, err := svc.Create(owner, "Hi there", "A first post", "img-1.jpg")
	require.NoError(t, err)
	require.Equal(t, "alice", post.CreatedBy)
	require.Equal(t, "u1", post.UserID)
	require.False(t, post.CreatedAt.IsZero())

	stored, err := repo.ByID(post.ID)
	require.NoError(t, err)
	require.Equal(t, "Hi there", stored.Title)
}

func TestPostUpdate(t *testing.T) {
	svc, repo, store := newTestPostService()

	post, err := svc.Create(owner, "Hi there", "A first post", "img-1.jpg")
	require.NoError(t, err)

	t.Run("owner can edit", func(t *testing.T) {
		updated, err := svc.Update(owner.ID, post.ID, "New title", "New body here", "")
		require.NoError(t, err)
		require.Equal(t, "New title", updated.Title)
		require.Equal(t, "img-1.jpg", updated.ImagePath)
	})

	t.Run("new image replaces and removes the old one", func(t *testing.T) {
		updated, err := svc.Update(owner.ID, post.ID, "New title", "New body here", "img-2.jpg")
		require.NoError(t, err)
		require.Equal(t, "img-2.jpg", updated.ImagePath)
		require.Contains(t, store.deleted, "img-1.jpg")
	})

	t.Run("non-owner is refused and post unchanged", func(t *testing.T) {
		_, err := svc.Update(other.ID, post.ID, "Hijacked", "Hijacked body", "")
		require.ErrorIs(t, err, ErrNotOwner)

		stored, err := repo.ByID(post.ID)
		require.NoError(t, err)
		require.Equal(t, "New title", stored.Title)
	})

	t.Run("missing post", func(t *testing.T) {
		_, err := svc.Update(owner.ID, "nope", "Title", "Body here", "")
		require.ErrorIs(t, err, ErrPostNotFound)
	})
}

func TestPostDelete(t *testing.T) {
	svc, repo, _ := newTestPostService()

	post, err := svc.Create(owner, "Hi there", "A first post", "img-1.jpg")
	require.NoError(t, err)

	t.Run("non-owner delete is a silent no-op", func(t *testing.T) {
		require.NoError(t, svc.Delete(other.ID, post.ID))

		stored, err := repo.ByID(post.ID)
		require.NoError(t, err)
		require.Equal(t, post.ID, stored.ID)
	})

	t.Run("owner delete removes the post", func(t *testing.T) {
		require.NoError(t, svc.Delete(owner.ID, post.ID))

		_, err := repo.ByID(post.ID)
		require.ErrorIs(t, err, repository.ErrPostNotFound)
	})

	t.Run("missing post", func(t *testing.T) {
		require.ErrorIs(t, svc.Delete(owner.ID, "nope"), ErrPostNotFound)
	})
}

func TestPostList(t *testing.T) {
	svc, _, _ := newTestPostService()

	for _, title := range []string{"One post", "Two post", "Three post", "Four post", "Five post"} {
		_, err := svc.Create(owner, title, "Body number five", "")
		require.NoError(t, err)
	}

	posts, pg, err := svc.List(1)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	require.Equal(t, 3, pg.LastPage)
	require.True(t, pg.HasNextPage)

	posts, pg, err = svc.List(3)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	require.False(t, pg.HasNextPage)
}

func TestPostSearch(t *testing.T) {
	svc, _, _ := newTestPostService()

	_, err := svc.Create(owner, "Cooking tips", "How to sharpen knives", "")
	require.NoError(t, err)
	_, err = svc.Create(owner, "Travel notes", "Around the fjords", "")
	require.NoError(t, err)

	t.Run("matches a term", func(t *testing.T) {
		posts, err := svc.Search("cooking")
		require.NoError(t, err)
		require.Len(t, posts, 1)
		require.Equal(t, "Cooking tips", posts[0].Title)
	})

	t.Run("any term matches", func(t *testing.T) {
		posts, err := svc.Search("cooking fjords")
		require.NoError(t, err)
		require.Len(t, posts, 2)
	})

	t.Run("blank query returns nothing", func(t *testing.T) {
		posts, err := svc.Search("   ")
		require.NoError(t, err)
		require.Empty(t, posts)
	})
}
