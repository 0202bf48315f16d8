package models

import (
	"time"
)

// BlogPost represents a blog article in the system. Posts are hard-deleted,
// there is no draft-vs-deleted distinction beyond the Published flag.
type BlogPost struct {
	ID            uint64    `gorm:"primaryKey" json:"-"`
	PublicID      string    `gorm:"type:varchar(36);uniqueIndex" json:"id"`
	Title         string    `gorm:"type:varchar(255)" json:"title" validate:"required,min=3,max=255"`
	Slug          string    `gorm:"uniqueIndex;type:varchar(255)" json:"slug" validate:"required,min=1,max=255"`
	Content       string    `gorm:"type:longtext" json:"content" validate:"required,min=10"`
	Published     bool      `gorm:"type:tinyint(1);default:0" json:"published"`
	FeaturedImage string    `gorm:"type:varchar(512)" json:"featured_image,omitempty"`
	ImageID       string    `gorm:"type:varchar(255)" json:"image_id,omitempty"`
	AuthorID      string    `gorm:"type:varchar(64);index" json:"author_id"`
	Author        User      `gorm:"foreignKey:AuthorID" json:"author"`
	CategoryID    uint      `gorm:"index" json:"category_id"`
	Category      Category  `gorm:"foreignKey:CategoryID" json:"category"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the BlogPost model
func (BlogPost) TableName() string {
	return "blog_posts"
}

// HasStoredImage reports whether the featured image lives in the asset store
// and can therefore be addressed for deletion.
func (p *BlogPost) HasStoredImage() bool {
	return p.FeaturedImage != "" && p.ImageID != ""
}
