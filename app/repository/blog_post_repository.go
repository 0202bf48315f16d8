package repository

import (
	"errors"
	"strings"

	"github.com/StefanHaring/InkPress/app/models"
	"gorm.io/gorm"
)

// blogPostRepository implements the BlogPostRepository interface
type blogPostRepository struct {
	db *gorm.DB
}

// NewBlogPostRepository creates a new blog post repository instance
func NewBlogPostRepository(db *gorm.DB) BlogPostRepository {
	return &blogPostRepository{db: db}
}

// Create inserts a new blog post. A slug collision surfaces as ErrDuplicateKey.
func (r *blogPostRepository) Create(post *models.BlogPost) error {
	if err := r.db.Create(post).Error; err != nil {
		return translateDuplicate(err)
	}
	return nil
}

// GetBySlug retrieves a post by its slug with Category and Author preloaded.
// Returns (nil, nil) when the slug is unknown.
func (r *blogPostRepository) GetBySlug(slug string) (*models.BlogPost, error) {
	var post models.BlogPost
	err := r.db.Preload("Category").Preload("Author").Where("slug = ?", slug).First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// GetByID retrieves a post by its primary key
func (r *blogPostRepository) GetByID(id uint64) (*models.BlogPost, error) {
	var post models.BlogPost
	err := r.db.Preload("Category").Preload("Author").First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// Update saves the full record. The caller is responsible for merging prior
// state first; every column is overwritten.
func (r *blogPostRepository) Update(post *models.BlogPost) error {
	if err := r.db.Save(post).Error; err != nil {
		return translateDuplicate(err)
	}
	return nil
}

// Delete removes a post permanently
func (r *blogPostRepository) Delete(id uint64) error {
	return r.db.Unscoped().Delete(&models.BlogPost{}, id).Error
}

// List retrieves posts ordered by most-recently-updated first, with the page
// size capped at MaxListLimit.
func (r *blogPostRepository) List(opts BlogListOptions) ([]models.BlogPost, error) {
	limit := opts.Limit
	if limit <= 0 || limit > MaxListLimit {
		limit = MaxListLimit
	}

	query := r.db.Preload("Category").Preload("Author").Order("updated_at DESC").Limit(limit)
	if opts.PublishedOnly {
		query = query.Where("published = ?", true)
	}
	if opts.CategoryID != 0 {
		query = query.Where("category_id = ?", opts.CategoryID)
	}

	var posts []models.BlogPost
	err := query.Find(&posts).Error
	return posts, err
}

// SlugExists checks if a slug is already taken
func (r *blogPostRepository) SlugExists(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&models.BlogPost{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

// Count returns the total number of blog posts
func (r *blogPostRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.BlogPost{}).Count(&count).Error
	return count, err
}

// translateDuplicate maps driver-level unique violations to ErrDuplicateKey.
// MySQL reports these as error 1062 ("Duplicate entry").
func translateDuplicate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "Duplicate entry") {
		return ErrDuplicateKey
	}
	return err
}
