package routes_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/justinjurolan/blogsite/internal/app"
	"github.com/justinjurolan/blogsite/internal/config"
	"github.com/justinjurolan/blogsite/internal/routes"
)

func testServer(t *testing.T) (*httptest.Server, *app.App) {
	t.Helper()

	cfg := &config.Config{
		AppName:          "Blogsite",
		AppEnv:           "development",
		AppURL:           "http://localhost:3000",
		DBDriver:         "sqlite",
		DBConnection:     filepath.Join(t.TempDir(), "test.db"),
		JWTSecret:        "test-secret",
		SessionExpiry:    10 * time.Minute,
		ResetTokenExpiry: time.Hour,
		ResetChances:     3,
		StorageDriver:    "local",
		ImagesDir:        t.TempDir(),
		PageSize:         2,
	}

	a, err := app.New(cfg)
	require.NoError(t, err)
	t.Cleanup(a.Close)

	srv := httptest.NewServer(routes.SetupRoutes(a, cfg))
	t.Cleanup(srv.Close)

	return srv, a
}

// newClient returns a client with a cookie jar that does not follow
// redirects, so handlers' status codes stay observable.
func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func postForm(t *testing.T, c *http.Client, rawURL string, form url.Values) *http.Response {
	t.Helper()
	resp, err := c.PostForm(rawURL, form)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func signupAndLogin(t *testing.T, c *http.Client, base, email, username string) {
	t.Helper()

	resp := postForm(t, c, base+"/signup", url.Values{
		"email":           {email},
		"username":        {username},
		"firstname":       {"Test"},
		"lastname":        {"User"},
		"password":        {"abcde"},
		"confirmPassword": {"abcde"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	resp = postForm(t, c, base+"/login", url.Values{
		"email":    {email},
		"password": {"abcde"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
}

// createPost submits the multipart new-post form with a JPEG attachment.
func createPost(t *testing.T, c *http.Client, base, title, description string) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("title", title))
	require.NoError(t, w.WriteField("description", description))

	fw, err := w.CreateFormFile("image", "photo.jpg")
	require.NoError(t, err)
	jpeg := append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, bytes.Repeat([]byte{0x01}, 64)...)
	_, err = fw.Write(jpeg)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req, err := http.NewRequest(http.MethodPost, base+"/dashboard/add-blogs", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestBlogLifecycle(t *testing.T) {
	srv, a := testServer(t)

	alice := newClient(t)
	signupAndLogin(t, alice, srv.URL, "a@x.com", "alice")

	resp := createPost(t, alice, srv.URL, "Hi there", "A very first post")
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	posts, err := a.PostRepo.List(10, 0)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	require.Equal(t, "alice", posts[0].CreatedBy)
	require.NotEmpty(t, posts[0].ImagePath)
	postID := posts[0].ID

	t.Run("post appears on the public index", func(t *testing.T) {
		resp, err := alice.Get(srv.URL + "/")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Contains(t, readBody(t, resp), "Hi there")
	})

	t.Run("search finds the post", func(t *testing.T) {
		resp := postForm(t, alice, srv.URL+"/blogs/search", url.Values{
			"searchBlog": {"there"},
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Contains(t, readBody(t, resp), "Hi there")
	})

	t.Run("other account cannot delete the post", func(t *testing.T) {
		bob := newClient(t)
		signupAndLogin(t, bob, srv.URL, "b@x.com", "bob")

		resp := postForm(t, bob, srv.URL+"/dashboard/delete-blog", url.Values{
			"blogId": {postID},
		})
		require.Equal(t, http.StatusSeeOther, resp.StatusCode)

		still, err := a.PostRepo.ByID(postID)
		require.NoError(t, err)
		require.Equal(t, postID, still.ID)
	})
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	srv, _ := testServer(t)

	anon := newClient(t)
	resp, err := anon.Get(srv.URL + "/blogs")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Contains(t, resp.Header.Get("Content-Type"), "application/json")

	var payload map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.Equal(t, "user not authenticated", payload["error"])
}

func TestNotFoundPage(t *testing.T) {
	srv, _ := testServer(t)

	c := newClient(t)
	resp, err := c.Get(srv.URL + "/no/such/page")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.True(t, strings.Contains(readBody(t, resp), "Page Not Found"))
}
