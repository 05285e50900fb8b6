// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents an authenticated identity in the Vicharak application.
// A user owns vichars and can be granted role-scoped access to other
// users' vichars as a collaborator.
type User struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Username    string         `gorm:"size:50;unique;not null" json:"username"`
	// Email is optional; NULL (not "") when absent so email-less accounts
	// don't collide on the unique index.
	Email       *string        `gorm:"size:100;uniqueIndex" json:"email,omitempty"`
	Name        string         `gorm:"size:100" json:"name,omitempty"`
	Password    string         `gorm:"not null" json:"-"`
	IsAdmin     bool           `gorm:"default:false" json:"is_admin"`
	LastLoginAt *time.Time     `json:"last_login_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	Vichars     []Vichar       `gorm:"foreignKey:UserID" json:"vichars,omitempty"`
}

// PublicProfile returns a copy stripped down to fields safe to expose in
// user listings.
func (u *User) PublicProfile() User {
	return User{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		Name:        u.Name,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}
