package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"vicharak/internal/models"

	"gorm.io/gorm"
)

// VicharRepository defines persistence operations for vichars, including the
// soft-delete lifecycle (delete, restore, permanent delete).
type VicharRepository interface {
	Create(ctx context.Context, vichar *models.Vichar) error
	GetByID(ctx context.Context, id uint) (*models.Vichar, error)
	GetDeletedByID(ctx context.Context, id uint) (*models.Vichar, error)
	ListForUser(ctx context.Context, userID uint, search string, limit, offset int) ([]models.Vichar, error)
	ListDeletedForUser(ctx context.Context, userID uint, limit, offset int) ([]models.Vichar, error)
	Update(ctx context.Context, vichar *models.Vichar) error
	SoftDelete(ctx context.Context, vichar *models.Vichar) error
	Restore(ctx context.Context, vichar *models.Vichar) error
	DeletePermanently(ctx context.Context, id uint) error
}

type vicharRepository struct {
	db *gorm.DB
}

// NewVicharRepository returns a new VicharRepository implementation.
func NewVicharRepository(db *gorm.DB) VicharRepository {
	return &vicharRepository{db: db}
}

func (r *vicharRepository) Create(ctx context.Context, vichar *models.Vichar) error {
	if err := r.db.WithContext(ctx).Create(vichar).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// GetByID returns a live (not soft-deleted) vichar with its owner and
// collaborators preloaded.
func (r *vicharRepository) GetByID(ctx context.Context, id uint) (*models.Vichar, error) {
	var vichar models.Vichar
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Collaborators.User").
		Preload("Collaborators.Role").
		Where("deleted_at IS NULL").
		First(&vichar, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Vichar", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &vichar, nil
}

// GetDeletedByID returns a soft-deleted vichar. A live vichar with the same
// ID is reported as not found.
func (r *vicharRepository) GetDeletedByID(ctx context.Context, id uint) (*models.Vichar, error) {
	var vichar models.Vichar
	if err := r.db.WithContext(ctx).
		Where("deleted_at IS NOT NULL").
		First(&vichar, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Vichar", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &vichar, nil
}

// ListForUser returns live vichars the user owns or collaborates on, newest
// first, optionally filtered by a case-insensitive title substring.
func (r *vicharRepository) ListForUser(ctx context.Context, userID uint, search string, limit, offset int) ([]models.Vichar, error) {
	var vichars []models.Vichar

	query := r.db.WithContext(ctx).
		Preload("User").
		Where("vichars.deleted_at IS NULL").
		Where("vichars.user_id = ? OR vichars.id IN (?)",
			userID,
			r.db.Model(&models.Collaborator{}).Select("vichar_id").Where("user_id = ?", userID),
		)

	if search != "" {
		// LOWER + LIKE instead of ILIKE so sqlite behaves the same as postgres
		query = query.Where("LOWER(vichars.title) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	if err := query.
		Order("vichars.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&vichars).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return vichars, nil
}

// ListDeletedForUser returns the caller's own soft-deleted vichars.
func (r *vicharRepository) ListDeletedForUser(ctx context.Context, userID uint, limit, offset int) ([]models.Vichar, error) {
	var vichars []models.Vichar
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND deleted_at IS NOT NULL", userID).
		Order("deleted_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&vichars).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return vichars, nil
}

func (r *vicharRepository) Update(ctx context.Context, vichar *models.Vichar) error {
	if err := r.db.WithContext(ctx).Save(vichar).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *vicharRepository) SoftDelete(ctx context.Context, vichar *models.Vichar) error {
	now := time.Now()
	if err := r.db.WithContext(ctx).
		Model(vichar).
		Update("deleted_at", now).Error; err != nil {
		return models.NewInternalError(err)
	}
	vichar.DeletedAt = &now
	return nil
}

func (r *vicharRepository) Restore(ctx context.Context, vichar *models.Vichar) error {
	if err := r.db.WithContext(ctx).
		Model(vichar).
		Update("deleted_at", nil).Error; err != nil {
		return models.NewInternalError(err)
	}
	vichar.DeletedAt = nil
	return nil
}

// DeletePermanently removes the row and its collaborators for good.
func (r *vicharRepository) DeletePermanently(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("vichar_id = ?", id).Delete(&models.Collaborator{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&models.Vichar{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
