package controllers

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/StefanHaring/InkPress/app/models"
	"github.com/StefanHaring/InkPress/internal/pkg/blog"
	"github.com/StefanHaring/InkPress/internal/pkg/cache"
	"github.com/StefanHaring/InkPress/internal/pkg/env"
	"github.com/StefanHaring/InkPress/internal/pkg/usercontext"
)

const categoryCacheKey = "inkpress:categories"

// BlogService is the contract the controller needs from the lifecycle service
type BlogService interface {
	Create(ctx context.Context, caller string, in blog.CreateInput) (*blog.Result, error)
	Update(ctx context.Context, caller, slug string, in blog.UpdateInput) (*blog.Result, error)
	Delete(ctx context.Context, caller, slug string) error
	Get(ctx context.Context, slug string) (*models.BlogPost, error)
	List(ctx context.Context, opts blog.ListOptions) ([]models.BlogPost, error)
	Categories(ctx context.Context) ([]models.Category, error)
}

// BlogController handles blog-related HTTP requests
type BlogController struct {
	service BlogService
}

// NewBlogController creates a new blog controller
func NewBlogController(service BlogService) *BlogController {
	return &BlogController{service: service}
}

// HandleList returns posts ordered most-recently-updated first, capped at the
// repository page limit. Whether drafts appear defaults from config and can
// be overridden per request with ?published=true.
func (bc *BlogController) HandleList(c *fiber.Ctx) error {
	opts := blog.ListOptions{
		Limit:        c.QueryInt("limit"),
		CategoryName: c.Query("category"),
	}
	if v := c.Query("published"); v != "" {
		opts.PublishedOnly = v == "true"
	} else if env.GetEnv("BLOG_PUBLIC_DRAFTS", "true") != "true" {
		opts.PublishedOnly = true
	}

	posts, err := bc.service.List(c.UserContext(), opts)
	if err != nil {
		return respondServiceError(c, err, "Failed to fetch Blogs")
	}
	return SuccessResponse(c, fiber.StatusOK, "Request Successful", posts)
}

// HandleGet returns a single post with its relations. Drafts resolve too:
// sharing a draft by direct link is allowed.
func (bc *BlogController) HandleGet(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if slug == "" {
		return ErrorResponse(c, fiber.StatusBadRequest, "Slug is required")
	}

	post, err := bc.service.Get(c.UserContext(), slug)
	if err != nil {
		return respondServiceError(c, err, "Failed to fetch Blog")
	}
	return SuccessResponse(c, fiber.StatusOK, "Request Successful", post)
}

// HandleCreate creates a post for the authenticated caller from a multipart
// form. "featuredImage" may be a file part (stored through the asset store)
// or a plain URL string (used as-is).
func (bc *BlogController) HandleCreate(c *fiber.Ctx) error {
	user := usercontext.GetUserContext(c)

	in := blog.CreateInput{
		Title:        c.FormValue("title"),
		Content:      c.FormValue("content"),
		Published:    c.FormValue("status") == "true",
		CategoryName: c.FormValue("categoryName"),
	}

	if file, err := c.FormFile("featuredImage"); err == nil && file != nil && file.Size > 0 {
		f, err := file.Open()
		if err != nil {
			return ErrorResponse(c, fiber.StatusBadRequest, "Could not read image upload")
		}
		defer f.Close()
		in.Image = &blog.ImageUpload{
			Reader:   f,
			Size:     file.Size,
			MimeType: file.Header.Get(fiber.HeaderContentType),
			Filename: file.Filename,
		}
	} else if raw := c.FormValue("featuredImage"); raw != "" {
		in.ImageURL = raw
	}

	res, err := bc.service.Create(c.UserContext(), user.UserID, in)
	if err != nil {
		return respondServiceError(c, err, "Failed to create Blog")
	}
	invalidateCategoryCache()
	return SuccessResponseWithWarning(c, fiber.StatusCreated, "Blog created successfully", res.Post, res.Warning)
}

// HandleUpdate applies a partial update to the post identified by its current
// slug. Only fields present in the form are touched; the rest keep their
// stored values.
func (bc *BlogController) HandleUpdate(c *fiber.Ctx) error {
	user := usercontext.GetUserContext(c)
	slug := c.Params("slug")

	in := blog.UpdateInput{}
	if v, ok := formValue(c, "title"); ok {
		in.Title = &v
	}
	if v, ok := formValue(c, "content"); ok {
		in.Content = &v
	}
	if v, ok := formValue(c, "status"); ok {
		published := v == "true"
		in.Published = &published
	}
	if v, ok := formValue(c, "categoryName"); ok {
		in.CategoryName = &v
	} else if v, ok := formValue(c, "category"); ok {
		in.CategoryName = &v
	}

	if file, err := c.FormFile("featuredImage"); err == nil && file != nil && file.Size > 0 {
		f, err := file.Open()
		if err != nil {
			return ErrorResponse(c, fiber.StatusBadRequest, "Could not read image upload")
		}
		defer f.Close()
		in.Image = &blog.ImageUpload{
			Reader:   f,
			Size:     file.Size,
			MimeType: file.Header.Get(fiber.HeaderContentType),
			Filename: file.Filename,
		}
	} else if v, ok := formValue(c, "featuredImage"); ok && v != "" {
		in.ImageURL = &v
	}

	res, err := bc.service.Update(c.UserContext(), user.UserID, slug, in)
	if err != nil {
		return respondServiceError(c, err, "Failed to update Blog")
	}
	invalidateCategoryCache()
	return SuccessResponseWithWarning(c, fiber.StatusOK, "Update Successful", res.Post, res.Warning)
}

// HandleDelete removes the post identified by slug
func (bc *BlogController) HandleDelete(c *fiber.Ctx) error {
	user := usercontext.GetUserContext(c)
	slug := c.Params("slug")

	if err := bc.service.Delete(c.UserContext(), user.UserID, slug); err != nil {
		return respondServiceError(c, err, "Failed to delete Blog")
	}
	return SuccessResponse(c, fiber.StatusOK, "Post Deleted Successfully", true)
}

// HandleListCategories returns all known categories. The listing is served
// from the cache when one is connected; writes invalidate it.
func (bc *BlogController) HandleListCategories(c *fiber.Ctx) error {
	if cache.IsAvailable() {
		if cached, err := cache.Get(categoryCacheKey); err == nil {
			var categories []models.Category
			if err := json.Unmarshal([]byte(cached), &categories); err == nil {
				return SuccessResponse(c, fiber.StatusOK, "Request Successful", categories)
			}
		}
	}

	categories, err := bc.service.Categories(c.UserContext())
	if err != nil {
		return respondServiceError(c, err, "Failed to fetch categories")
	}

	if cache.IsAvailable() {
		if payload, err := json.Marshal(categories); err == nil {
			_ = cache.Set(categoryCacheKey, string(payload), 5*time.Minute)
		}
	}
	return SuccessResponse(c, fiber.StatusOK, "Request Successful", categories)
}

// invalidateCategoryCache drops the cached listing after writes that may have
// registered a new category.
func invalidateCategoryCache() {
	if cache.IsAvailable() {
		_ = cache.Delete(categoryCacheKey)
	}
}

// formValue reads a form field and reports whether it was present at all,
// which partial updates need to distinguish "clear" from "keep".
func formValue(c *fiber.Ctx, key string) (string, bool) {
	if form, err := c.MultipartForm(); err == nil && form != nil {
		if vals, ok := form.Value[key]; ok && len(vals) > 0 {
			return vals[0], true
		}
		return "", false
	}
	args := c.Request().PostArgs()
	if args.Has(key) {
		return string(args.Peek(key)), true
	}
	return "", false
}
