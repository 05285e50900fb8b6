package models

import "time"

// Vichar is a user-authored note. It is soft-deleted by setting DeletedAt;
// a soft-deleted vichar is excluded from default queries but physically
// retained until an explicit permanent delete.
//
// Soft deletion is managed by the repository rather than gorm.DeletedAt so
// that deleted vichars can be listed, restored, and permanently removed as
// first-class operations.
type Vichar struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	UserID        uint           `gorm:"not null;index" json:"user_id"`
	User          User           `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Title         string         `gorm:"size:50;not null" json:"title"`
	Body          string         `gorm:"type:text;not null" json:"body"`
	Collaborators []Collaborator `gorm:"foreignKey:VicharID" json:"collaborators,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     *time.Time     `gorm:"index" json:"deleted_at,omitempty"`
}

// Deleted reports whether the vichar is soft-deleted.
func (v *Vichar) Deleted() bool {
	return v.DeletedAt != nil
}
