package blog

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"

	"github.com/StefanHaring/InkPress/app/models"
	"github.com/StefanHaring/InkPress/app/repository"
	"github.com/StefanHaring/InkPress/internal/pkg/assetstore"
	"github.com/StefanHaring/InkPress/internal/pkg/slugger"
)

// AssetStore is the contract the lifecycle service needs from object storage.
// *assetstore.Client satisfies it.
type AssetStore interface {
	Upload(ctx context.Context, body io.Reader, size int64, mimeType string) (*assetstore.UploadResult, error)
	Delete(ctx context.Context, assetID string) error
}

// Service orchestrates the blog content lifecycle: validation, category
// resolution, asset handling, slug computation, authorization and persistence.
type Service struct {
	posts      repository.BlogPostRepository
	categories repository.CategoryRepository
	assets     AssetStore // nil when no object store is configured
}

// NewService creates a new blog lifecycle service
func NewService(posts repository.BlogPostRepository, categories repository.CategoryRepository, assets AssetStore) *Service {
	return &Service{
		posts:      posts,
		categories: categories,
		assets:     assets,
	}
}

// Result couples the affected post with a non-fatal warning, e.g. when an
// image upload degraded to "post saved without image".
type Result struct {
	Post    *models.BlogPost
	Warning string
}

// ListOptions narrows a public listing. The page size is capped by the
// repository regardless of the requested limit.
type ListOptions struct {
	Limit         int
	PublishedOnly bool
	CategoryName  string
}

// Create validates and persists a new post for the calling identity.
func (s *Service) Create(ctx context.Context, caller string, in CreateInput) (*Result, error) {
	if err := authorizeCreate(caller); err != nil {
		return nil, err
	}
	if err := validateCreate(&in); err != nil {
		return nil, err
	}

	featuredImage := in.ImageURL
	imageID := ""
	warning := ""
	if in.Image != nil {
		if res, warn := s.uploadImage(ctx, in.Image); res != nil {
			featuredImage = res.URL
			imageID = res.AssetID
		} else {
			warning = warn
		}
	}

	category, err := s.resolveCategory(in.CategoryName)
	if err != nil {
		return nil, err
	}

	publicID := uuid.NewString()
	post := &models.BlogPost{
		PublicID:      publicID,
		Title:         in.Title,
		Slug:          slugFor(in.Title, publicID),
		Content:       in.Content,
		Published:     in.Published,
		FeaturedImage: featuredImage,
		ImageID:       imageID,
		AuthorID:      caller,
		CategoryID:    category.ID,
	}
	if err := s.posts.Create(post); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: a post with this title already exists", ErrConflict)
		}
		return nil, storageErr("create post", err)
	}

	post.Category = *category
	return &Result{Post: post, Warning: warning}, nil
}

// Update applies a partial payload to the post identified by its current
// slug. Unspecified fields are backfilled from the stored post so the
// full-record save never nulls them; the slug is always recomputed from the
// resulting title.
func (s *Service) Update(ctx context.Context, caller, slug string, in UpdateInput) (*Result, error) {
	existing, err := s.posts.GetBySlug(slug)
	if err != nil {
		return nil, storageErr("fetch post", err)
	}
	if err := authorizeMutate(existing, caller); err != nil {
		return nil, err
	}
	if err := validateUpdate(&in); err != nil {
		return nil, err
	}

	updated := *existing
	warning := ""
	if in.Image != nil {
		// Upload failure keeps the previous image rather than aborting the write.
		if res, warn := s.uploadImage(ctx, in.Image); res != nil {
			updated.FeaturedImage = res.URL
			updated.ImageID = res.AssetID
		} else {
			warning = warn
		}
	} else if in.ImageURL != nil && *in.ImageURL != "" {
		// Directly supplied URLs carry no asset id.
		updated.FeaturedImage = *in.ImageURL
		updated.ImageID = ""
	}
	if in.Title != nil {
		updated.Title = *in.Title
	}
	if in.Content != nil {
		updated.Content = *in.Content
	}
	if in.Published != nil {
		updated.Published = *in.Published
	}
	if in.CategoryName != nil {
		category, err := s.resolveCategory(*in.CategoryName)
		if err != nil {
			return nil, err
		}
		updated.CategoryID = category.ID
		updated.Category = *category
	}
	updated.Slug = slugFor(updated.Title, updated.PublicID)

	if err := s.posts.Update(&updated); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: a post with this title already exists", ErrConflict)
		}
		return nil, storageErr("update post", err)
	}

	// Best-effort cleanup of the superseded asset. The update is already
	// committed, so a failure here is logged and never propagated.
	if existing.HasStoredImage() && existing.FeaturedImage != updated.FeaturedImage && s.assets != nil {
		if err := s.assets.Delete(ctx, existing.ImageID); err != nil {
			log.Warnf("[Blog] failed to delete superseded asset %s: %v", existing.ImageID, err)
		}
	}

	return &Result{Post: &updated, Warning: warning}, nil
}

// Delete removes the post identified by slug. The stored image asset is left
// in place; only update supersession cleans up assets.
func (s *Service) Delete(ctx context.Context, caller, slug string) error {
	existing, err := s.posts.GetBySlug(slug)
	if err != nil {
		return storageErr("fetch post", err)
	}
	if err := authorizeMutate(existing, caller); err != nil {
		return err
	}
	if err := s.posts.Delete(existing.ID); err != nil {
		return storageErr("delete post", err)
	}
	return nil
}

// Get returns a post with its relations. Drafts are retrievable by direct
// slug; visibility filtering applies to listings only.
func (s *Service) Get(ctx context.Context, slug string) (*models.BlogPost, error) {
	post, err := s.posts.GetBySlug(slug)
	if err != nil {
		return nil, storageErr("fetch post", err)
	}
	if post == nil {
		return nil, ErrNotFound
	}
	return post, nil
}

// List returns posts ordered most-recently-updated first, capped at the
// repository page limit.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]models.BlogPost, error) {
	repoOpts := repository.BlogListOptions{
		Limit:         opts.Limit,
		PublishedOnly: opts.PublishedOnly,
	}
	if opts.CategoryName != "" {
		category, err := s.categories.GetByName(models.NormalizeCategoryName(opts.CategoryName))
		if err != nil {
			return nil, storageErr("resolve category", err)
		}
		if category == nil {
			return []models.BlogPost{}, nil
		}
		repoOpts.CategoryID = category.ID
	}

	posts, err := s.posts.List(repoOpts)
	if err != nil {
		return nil, storageErr("list posts", err)
	}
	return posts, nil
}

// Categories lists all known categories.
func (s *Service) Categories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.categories.GetAll()
	if err != nil {
		return nil, storageErr("list categories", err)
	}
	return categories, nil
}

// slugFor derives the slug from the title. Titles made entirely of symbols or
// non-Latin script fold to nothing; the post's public id steps in so the slug
// stays non-empty and the post stays addressable.
func slugFor(title, publicID string) string {
	if slug := slugger.Make(title); slug != "" {
		return slug
	}
	return publicID
}

// resolveCategory finds the canonical category for a raw name, creating it on
// first use. Two concurrent first-uses may both miss the lookup; the loser of
// the insert race retries the lookup once instead of failing the request.
func (s *Service) resolveCategory(raw string) (*models.Category, error) {
	name := models.NormalizeCategoryName(raw)
	existing, err := s.categories.GetByName(name)
	if err != nil {
		return nil, storageErr("lookup category", err)
	}
	if existing != nil {
		return existing, nil
	}

	category := models.NewCategory(raw)
	err = s.categories.Create(category)
	if err == nil {
		log.Infof("[Blog] created category %q", name)
		return category, nil
	}
	if !errors.Is(err, repository.ErrDuplicateKey) {
		return nil, storageErr("create category", err)
	}

	// Lost the first-use race; the row exists now.
	existing, err = s.categories.GetByName(name)
	if err != nil {
		return nil, storageErr("lookup category after conflict", err)
	}
	if existing == nil {
		return nil, fmt.Errorf("%w: category %q", ErrConflict, name)
	}
	return existing, nil
}

// uploadImage pushes a file part to the asset store. Failures degrade to
// "no image" with a warning the response surfaces, matching the tolerant
// behavior around optional images.
func (s *Service) uploadImage(ctx context.Context, img *ImageUpload) (*assetstore.UploadResult, string) {
	if s.assets == nil {
		log.Warn("[Blog] asset store not configured, saving post without image")
		return nil, "Image upload unavailable, post saved without the image"
	}
	res, err := s.assets.Upload(ctx, img.Reader, img.Size, img.MimeType)
	if err != nil {
		log.Warnf("[Blog] image upload failed: %v", err)
		return nil, "Image upload failed, post saved without the image"
	}
	return res, ""
}
