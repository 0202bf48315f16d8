package models

import (
	"time"
)

// User mirrors the identity provider's subject so posts can reference their
// author locally. The row is provisioned idempotently on first sight; the
// provider stays authoritative for credentials and sessions.
type User struct {
	ID        string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Email     string    `gorm:"type:varchar(200);index" json:"email,omitempty"`
	Username  string    `gorm:"type:varchar(150)" json:"username,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}
