package models

import (
	"strings"
	"time"
)

// Category groups posts under a canonical, case-insensitive name. The Name
// column holds the normalized key, DisplayName the label shown to readers.
type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(100);uniqueIndex" json:"name" validate:"required,min=1,max=100"`
	DisplayName string    `gorm:"type:varchar(100)" json:"display_name"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the Category model
func (Category) TableName() string {
	return "categories"
}

// NormalizeCategoryName produces the canonical lookup key for a raw,
// user-supplied category name.
func NormalizeCategoryName(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// NewCategory builds a category from a raw name, deriving the display label
// from the normalized key. The label is fixed at creation time.
func NewCategory(raw string) *Category {
	name := NormalizeCategoryName(raw)
	return &Category{
		Name:        name,
		DisplayName: strings.ToUpper(name),
	}
}
