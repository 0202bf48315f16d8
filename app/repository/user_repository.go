package repository

import (
	"errors"

	"github.com/StefanHaring/InkPress/app/models"
	"gorm.io/gorm"
)

// userRepository implements the UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository instance
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// GetByID retrieves a user by the identity provider subject.
// Returns (nil, nil) when absent.
func (r *userRepository) GetByID(id string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// CreateIfAbsent provisions the user row once. Safe under concurrent first
// requests: a duplicate-key race collapses into "already present".
func (r *userRepository) CreateIfAbsent(user *models.User) (bool, error) {
	existing, err := r.GetByID(user.ID)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}
	if err := r.db.Create(user).Error; err != nil {
		if errors.Is(translateDuplicate(err), ErrDuplicateKey) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
