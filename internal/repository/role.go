package repository

import (
	"context"
	"errors"
	"strings"

	"vicharak/internal/cache"
	"vicharak/internal/models"

	"gorm.io/gorm"
)

// RoleRepository defines persistence operations for roles.
type RoleRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Role, error)
	GetByName(ctx context.Context, name string) (*models.Role, error)
	List(ctx context.Context, search string, limit, offset int) ([]models.Role, int64, error)
	Create(ctx context.Context, role *models.Role) error
	Update(ctx context.Context, role *models.Role) error
	Delete(ctx context.Context, id uint) error
}

type roleRepository struct {
	db *gorm.DB
}

// NewRoleRepository returns a new RoleRepository implementation.
func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &roleRepository{db: db}
}

func (r *roleRepository) GetByID(ctx context.Context, id uint) (*models.Role, error) {
	var role models.Role
	key := cache.RoleKey(id)

	err := cache.Aside(ctx, key, &role, cache.RoleTTL, func() error {
		if err := r.db.WithContext(ctx).First(&role, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Role", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *roleRepository) GetByName(ctx context.Context, name string) (*models.Role, error) {
	var role models.Role
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &role, nil
}

// List returns roles ordered by name along with the total count for pagination.
func (r *roleRepository) List(ctx context.Context, search string, limit, offset int) ([]models.Role, int64, error) {
	var roles []models.Role
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Role{})
	if search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	if err := query.
		Order("name ASC").
		Limit(limit).
		Offset(offset).
		Find(&roles).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return roles, total, nil
}

func (r *roleRepository) Create(ctx context.Context, role *models.Role) error {
	if err := r.db.WithContext(ctx).Create(role).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Role name already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *roleRepository) Update(ctx context.Context, role *models.Role) error {
	if err := r.db.WithContext(ctx).Save(role).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Role name already exists")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateRole(ctx, role.ID)
	return nil
}

func (r *roleRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Role{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateRole(ctx, id)
	return nil
}
