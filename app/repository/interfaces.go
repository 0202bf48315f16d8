package repository

import (
	"errors"

	"github.com/StefanHaring/InkPress/app/models"
	"gorm.io/gorm"
)

// ErrDuplicateKey signals a unique-constraint violation (slug or category
// name). Callers decide whether to retry or surface a conflict.
var ErrDuplicateKey = errors.New("duplicate key")

// MaxListLimit caps the page size of listing queries.
const MaxListLimit = 20

// BlogListOptions narrows and bounds a post listing query.
type BlogListOptions struct {
	Limit         int
	PublishedOnly bool
	CategoryID    uint
}

// BlogPostRepository defines the interface for blog-post database operations.
// Lookups that miss return (nil, nil) rather than an error.
type BlogPostRepository interface {
	Create(post *models.BlogPost) error
	GetBySlug(slug string) (*models.BlogPost, error)
	GetByID(id uint64) (*models.BlogPost, error)
	Update(post *models.BlogPost) error
	Delete(id uint64) error
	List(opts BlogListOptions) ([]models.BlogPost, error)
	SlugExists(slug string) (bool, error)
	Count() (int64, error)
}

// CategoryRepository defines the interface for category database operations
type CategoryRepository interface {
	Create(category *models.Category) error
	GetByName(name string) (*models.Category, error)
	GetByID(id uint) (*models.Category, error)
	GetAll() ([]models.Category, error)
	CountPosts(categoryID uint) (int64, error)
}

// UserRepository defines the interface for user provisioning operations
type UserRepository interface {
	GetByID(id string) (*models.User, error)
	CreateIfAbsent(user *models.User) (bool, error)
}

// Repositories struct holds all repository instances
type Repositories struct {
	BlogPost BlogPostRepository
	Category CategoryRepository
	User     UserRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		BlogPost: NewBlogPostRepository(db),
		Category: NewCategoryRepository(db),
		User:     NewUserRepository(db),
	}
}
