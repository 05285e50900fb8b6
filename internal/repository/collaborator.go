package repository

import (
	"context"
	"errors"

	"vicharak/internal/models"

	"gorm.io/gorm"
)

// CollaboratorRepository defines persistence operations for vichar collaborators.
type CollaboratorRepository interface {
	GetByVicharAndUser(ctx context.Context, vicharID, userID uint) (*models.Collaborator, error)
	ListByVichar(ctx context.Context, vicharID uint) ([]models.Collaborator, error)
	Create(ctx context.Context, collaborator *models.Collaborator) error
	UpdateRole(ctx context.Context, collaborator *models.Collaborator, roleID *uint) error
	Delete(ctx context.Context, id uint) error
}

type collaboratorRepository struct {
	db *gorm.DB
}

// NewCollaboratorRepository returns a new CollaboratorRepository implementation.
func NewCollaboratorRepository(db *gorm.DB) CollaboratorRepository {
	return &collaboratorRepository{db: db}
}

// GetByVicharAndUser returns (nil, nil) when the user is not a collaborator.
func (r *collaboratorRepository) GetByVicharAndUser(ctx context.Context, vicharID, userID uint) (*models.Collaborator, error) {
	var collaborator models.Collaborator
	if err := r.db.WithContext(ctx).
		Preload("Role").
		Where("vichar_id = ? AND user_id = ?", vicharID, userID).
		First(&collaborator).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &collaborator, nil
}

func (r *collaboratorRepository) ListByVichar(ctx context.Context, vicharID uint) ([]models.Collaborator, error) {
	var collaborators []models.Collaborator
	if err := r.db.WithContext(ctx).
		Preload("Role").
		Preload("User").
		Where("vichar_id = ?", vicharID).
		Order("created_at ASC").
		Find(&collaborators).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return collaborators, nil
}

func (r *collaboratorRepository) Create(ctx context.Context, collaborator *models.Collaborator) error {
	if err := r.db.WithContext(ctx).Create(collaborator).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("User is already a collaborator on this vichar")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *collaboratorRepository) UpdateRole(ctx context.Context, collaborator *models.Collaborator, roleID *uint) error {
	if err := r.db.WithContext(ctx).
		Model(collaborator).
		Update("role_id", roleID).Error; err != nil {
		return models.NewInternalError(err)
	}
	collaborator.RoleID = roleID
	return nil
}

func (r *collaboratorRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Collaborator{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
