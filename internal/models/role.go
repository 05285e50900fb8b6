package models

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Permission strings a role may grant on a vichar.
const (
	PermViewVichar         = "VIEW_VICHAR"
	PermEditVichar         = "EDIT_VICHAR"
	PermDeleteVichar       = "DELETE_VICHAR"
	PermAddCollaborator    = "ADD_COLLABORATOR"
	PermRemoveCollaborator = "REMOVE_COLLABORATOR"
	PermViewCollaborators  = "VIEW_COLLABORATORS"
)

// KnownPermissions is the closed set of permissions a role may carry.
var KnownPermissions = []string{
	PermViewVichar,
	PermEditVichar,
	PermDeleteVichar,
	PermAddCollaborator,
	PermRemoveCollaborator,
	PermViewCollaborators,
}

// Role is a named set of permission strings assignable to collaborators.
type Role struct {
	ID          uint                        `gorm:"primaryKey" json:"id"`
	Name        string                      `gorm:"size:50;uniqueIndex;not null" json:"name"`
	Permissions datatypes.JSONSlice[string] `json:"permissions"`
	CreatedAt   time.Time                   `json:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at"`
}

// BeforeSave de-duplicates the permission list, preserving first-seen order.
func (r *Role) BeforeSave(_ *gorm.DB) error {
	seen := make(map[string]struct{}, len(r.Permissions))
	deduped := make([]string, 0, len(r.Permissions))
	for _, p := range r.Permissions {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		deduped = append(deduped, p)
	}
	r.Permissions = deduped
	return nil
}

// HasPermission reports whether the role grants the given permission.
func (r *Role) HasPermission(permission string) bool {
	for _, p := range r.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// ValidatePermissions rejects permission strings outside KnownPermissions.
func ValidatePermissions(permissions []string) error {
	for _, p := range permissions {
		known := false
		for _, k := range KnownPermissions {
			if p == k {
				known = true
				break
			}
		}
		if !known {
			return fmt.Errorf("unknown permission %q", p)
		}
	}
	return nil
}
