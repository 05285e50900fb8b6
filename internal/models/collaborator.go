package models

import "time"

// Collaborator grants a user role-scoped access to another user's vichar.
// The role reference is nullable and set to NULL when the role is deleted;
// a collaborator without a role has no permissions.
type Collaborator struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	VicharID  uint       `gorm:"not null;uniqueIndex:idx_vichar_collaborator" json:"vichar_id"`
	Vichar    *Vichar    `gorm:"foreignKey:VicharID;constraint:OnDelete:CASCADE" json:"-"`
	OwnerID   uint       `gorm:"not null;index" json:"owner_id"`
	Owner     *User      `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
	UserID    uint       `gorm:"not null;uniqueIndex:idx_vichar_collaborator" json:"user_id"`
	User      *User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	RoleID    *uint      `gorm:"index" json:"role_id,omitempty"`
	Role      *Role      `gorm:"foreignKey:RoleID;constraint:OnDelete:SET NULL" json:"role,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	// Permissions is the effective permission list from the assigned role,
	// resolved at query time.
	Permissions []string `gorm:"-" json:"permissions"`
}

// ResolvePermissions populates Permissions from the preloaded role.
func (c *Collaborator) ResolvePermissions() {
	if c.Role == nil {
		c.Permissions = []string{}
		return
	}
	c.Permissions = append([]string(nil), c.Role.Permissions...)
}

// HasPermission reports whether the collaborator's role grants the permission.
func (c *Collaborator) HasPermission(permission string) bool {
	return c.Role != nil && c.Role.HasPermission(permission)
}
