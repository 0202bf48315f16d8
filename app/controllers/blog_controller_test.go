package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StefanHaring/InkPress/app/models"
	"github.com/StefanHaring/InkPress/internal/pkg/blog"
	"github.com/StefanHaring/InkPress/internal/pkg/middleware"
	"github.com/StefanHaring/InkPress/internal/pkg/usercontext"
)

// stubBlogService records calls and returns canned results
type stubBlogService struct {
	lastCaller string
	lastSlug   string
	lastCreate blog.CreateInput
	lastUpdate blog.UpdateInput
	result     *blog.Result
	posts      []models.BlogPost
	err        error
}

func (s *stubBlogService) Create(ctx context.Context, caller string, in blog.CreateInput) (*blog.Result, error) {
	s.lastCaller, s.lastCreate = caller, in
	return s.result, s.err
}

func (s *stubBlogService) Update(ctx context.Context, caller, slug string, in blog.UpdateInput) (*blog.Result, error) {
	s.lastCaller, s.lastSlug, s.lastUpdate = caller, slug, in
	return s.result, s.err
}

func (s *stubBlogService) Delete(ctx context.Context, caller, slug string) error {
	s.lastCaller, s.lastSlug = caller, slug
	return s.err
}

func (s *stubBlogService) Get(ctx context.Context, slug string) (*models.BlogPost, error) {
	s.lastSlug = slug
	if s.err != nil {
		return nil, s.err
	}
	return s.result.Post, nil
}

func (s *stubBlogService) List(ctx context.Context, opts blog.ListOptions) ([]models.BlogPost, error) {
	return s.posts, s.err
}

func (s *stubBlogService) Categories(ctx context.Context) ([]models.Category, error) {
	return nil, s.err
}

// forceIdentity injects a verified caller without going through the JWT path
func forceIdentity(userID string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if userID != "" {
			usercontext.SetUserContext(c, usercontext.UserContext{
				UserID:     userID,
				IsLoggedIn: true,
			})
		}
		return c.Next()
	}
}

func newBlogTestApp(svc BlogService, userID string) *fiber.App {
	app := fiber.New()
	app.Use(forceIdentity(userID))
	bc := NewBlogController(svc)
	app.Get("/api/v1/blogs", bc.HandleList)
	app.Get("/api/v1/blogs/:slug", bc.HandleGet)
	app.Post("/api/v1/blogs", middleware.RequireAPIAuth, bc.HandleCreate)
	app.Put("/api/v1/blogs/:slug", middleware.RequireAPIAuth, bc.HandleUpdate)
	app.Delete("/api/v1/blogs/:slug", middleware.RequireAPIAuth, bc.HandleDelete)
	app.Get("/api/v1/categories", bc.HandleListCategories)
	return app
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func newMultipartRequest(t *testing.T, method, target string, fields map[string]string, withFile bool) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if withFile {
		part, err := w.CreateFormFile("featuredImage", "cover.png")
		require.NoError(t, err)
		_, err = part.Write([]byte("fake-png-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	return req
}

func samplePost() *models.BlogPost {
	return &models.BlogPost{
		PublicID: "pid-1",
		Title:    "Hello World",
		Slug:     "hello-world",
		Content:  "This is a sufficiently long body.",
	}
}

func TestHandleCreateRequiresAuth(t *testing.T) {
	app := newBlogTestApp(&stubBlogService{}, "")

	req := newMultipartRequest(t, "POST", "/api/v1/blogs", map[string]string{"title": "Hello"}, false)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "Unauthorized User", body["error"])
}

func TestHandleCreateSuccess(t *testing.T) {
	svc := &stubBlogService{result: &blog.Result{Post: samplePost()}}
	app := newBlogTestApp(svc, "u1")

	req := newMultipartRequest(t, "POST", "/api/v1/blogs", map[string]string{
		"title":        "Hello World",
		"content":      "This is a sufficiently long body.",
		"status":       "true",
		"categoryName": "Tech",
	}, true)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	assert.Equal(t, "u1", svc.lastCaller)
	assert.Equal(t, "Hello World", svc.lastCreate.Title)
	assert.True(t, svc.lastCreate.Published)
	assert.Equal(t, "Tech", svc.lastCreate.CategoryName)
	require.NotNil(t, svc.lastCreate.Image, "file part reaches the service")
	assert.Equal(t, "cover.png", svc.lastCreate.Image.Filename)

	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Blog created successfully", body["message"])
}

func TestHandleCreateSurfacesUploadWarning(t *testing.T) {
	svc := &stubBlogService{result: &blog.Result{
		Post:    samplePost(),
		Warning: "Image upload failed, post saved without the image",
	}}
	app := newBlogTestApp(svc, "u1")

	req := newMultipartRequest(t, "POST", "/api/v1/blogs", map[string]string{
		"title":        "Hello World",
		"content":      "This is a sufficiently long body.",
		"status":       "true",
		"categoryName": "Tech",
	}, true)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	body := decodeBody(t, resp)
	assert.Equal(t, "Image upload failed, post saved without the image", body["warning"])
}

func TestHandleCreateValidationError(t *testing.T) {
	svc := &stubBlogService{err: &blog.ValidationError{Field: "Title", Message: "Title must be at least 3 characters long"}}
	app := newBlogTestApp(svc, "u1")

	req := newMultipartRequest(t, "POST", "/api/v1/blogs", map[string]string{"title": "Hi"}, false)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "Title must be at least 3 characters long", body["error"])
}

func TestHandleUpdatePassesOnlyPresentFields(t *testing.T) {
	svc := &stubBlogService{result: &blog.Result{Post: samplePost()}}
	app := newBlogTestApp(svc, "u1")

	req := newMultipartRequest(t, "PUT", "/api/v1/blogs/hello-world", map[string]string{
		"content": "Longer valid content here",
	}, false)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.Equal(t, "hello-world", svc.lastSlug)
	require.NotNil(t, svc.lastUpdate.Content)
	assert.Equal(t, "Longer valid content here", *svc.lastUpdate.Content)
	assert.Nil(t, svc.lastUpdate.Title, "absent fields stay nil")
	assert.Nil(t, svc.lastUpdate.Published)
	assert.Nil(t, svc.lastUpdate.CategoryName)
	assert.Nil(t, svc.lastUpdate.Image)
	assert.Nil(t, svc.lastUpdate.ImageURL)
}

func TestHandleUpdateAcceptsDirectImageURL(t *testing.T) {
	svc := &stubBlogService{result: &blog.Result{Post: samplePost()}}
	app := newBlogTestApp(svc, "u1")

	req := newMultipartRequest(t, "PUT", "/api/v1/blogs/hello-world", map[string]string{
		"featuredImage": "https://example.com/cover.jpg",
	}, false)

	_, err := app.Test(req, -1)
	require.NoError(t, err)
	require.NotNil(t, svc.lastUpdate.ImageURL)
	assert.Equal(t, "https://example.com/cover.jpg", *svc.lastUpdate.ImageURL)
	assert.Nil(t, svc.lastUpdate.Image)
}

func TestHandleUpdateErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"not found", blog.ErrNotFound, fiber.StatusNotFound, "Post Not Found"},
		{"forbidden", blog.ErrForbidden, fiber.StatusForbidden, "Forbidden"},
		{"conflict", blog.ErrConflict, fiber.StatusConflict, "A post with this title already exists"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubBlogService{err: tt.err}
			app := newBlogTestApp(svc, "u1")

			req := newMultipartRequest(t, "PUT", "/api/v1/blogs/some-slug", map[string]string{
				"content": "Longer valid content here",
			}, false)
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			body := decodeBody(t, resp)
			assert.Equal(t, tt.msg, body["error"])
		})
	}
}

func TestHandleDelete(t *testing.T) {
	svc := &stubBlogService{}
	app := newBlogTestApp(svc, "u1")

	req := httptest.NewRequest("DELETE", "/api/v1/blogs/hello-world", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "u1", svc.lastCaller)
	assert.Equal(t, "hello-world", svc.lastSlug)

	body := decodeBody(t, resp)
	assert.Equal(t, "Post Deleted Successfully", body["message"])
}

func TestHandleGetNotFound(t *testing.T) {
	svc := &stubBlogService{err: blog.ErrNotFound}
	app := newBlogTestApp(svc, "")

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/blogs/missing", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestHandleListPublic(t *testing.T) {
	svc := &stubBlogService{posts: []models.BlogPost{*samplePost()}}
	app := newBlogTestApp(svc, "")

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/blogs", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])
	data, ok := body["data"].([]interface{})
	require.True(t, ok)
	assert.Len(t, data, 1)
}
