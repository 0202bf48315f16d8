package repository

import (
	"errors"

	"github.com/StefanHaring/InkPress/app/models"
	"gorm.io/gorm"
)

// categoryRepository implements the CategoryRepository interface
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository instance
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

// Create inserts a new category. A concurrent first-use of the same name
// surfaces as ErrDuplicateKey so the caller can retry the lookup.
func (r *categoryRepository) Create(category *models.Category) error {
	if err := r.db.Create(category).Error; err != nil {
		return translateDuplicate(err)
	}
	return nil
}

// GetByName retrieves a category by its normalized name.
// Returns (nil, nil) when absent.
func (r *categoryRepository) GetByName(name string) (*models.Category, error) {
	var category models.Category
	err := r.db.Where("name = ?", name).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

// GetByID retrieves a category by its primary key
func (r *categoryRepository) GetByID(id uint) (*models.Category, error) {
	var category models.Category
	err := r.db.First(&category, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

// GetAll retrieves all categories ordered by name
func (r *categoryRepository) GetAll() ([]models.Category, error) {
	var categories []models.Category
	err := r.db.Order("name ASC").Find(&categories).Error
	return categories, err
}

// CountPosts returns the number of posts assigned to a category
func (r *categoryRepository) CountPosts(categoryID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.BlogPost{}).Where("category_id = ?", categoryID).Count(&count).Error
	return count, err
}
