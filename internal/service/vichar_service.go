// Package service implements the application's business logic on top of the
// repository layer.
package service

import (
	"context"
	"strings"

	"vicharak/internal/models"
	"vicharak/internal/repository"
)

const (
	maxTitleLen = 50
	maxBodyLen  = 50000
)

// VicharService owns the vichar lifecycle and collaborator management,
// including the owner-or-permission access checks.
type VicharService struct {
	vicharRepo repository.VicharRepository
	collabRepo repository.CollaboratorRepository
	userRepo   repository.UserRepository
	roleRepo   repository.RoleRepository
}

type CreateVicharInput struct {
	UserID uint
	Title  string
	Body   string
}

type UpdateVicharInput struct {
	UserID   uint
	VicharID uint
	Title    *string
	Body     *string
}

type ListVicharsInput struct {
	UserID uint
	Search string
	Limit  int
	Offset int
}

type AddCollaboratorInput struct {
	ActorID  uint
	VicharID uint
	UserID   uint
	RoleID   *uint
}

type UpdateCollaboratorInput struct {
	ActorID  uint
	VicharID uint
	UserID   uint
	RoleID   *uint
}

func NewVicharService(
	vicharRepo repository.VicharRepository,
	collabRepo repository.CollaboratorRepository,
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
) *VicharService {
	return &VicharService{
		vicharRepo: vicharRepo,
		collabRepo: collabRepo,
		userRepo:   userRepo,
		roleRepo:   roleRepo,
	}
}

// hasPermission reports whether the user is a collaborator on the vichar with
// a role granting the permission. Owners never go through this path.
func (s *VicharService) hasPermission(ctx context.Context, vicharID, userID uint, permission string) (bool, error) {
	collaborator, err := s.collabRepo.GetByVicharAndUser(ctx, vicharID, userID)
	if err != nil {
		return false, err
	}
	if collaborator == nil {
		return false, nil
	}
	return collaborator.HasPermission(permission), nil
}

func (s *VicharService) List(ctx context.Context, in ListVicharsInput) ([]models.Vichar, error) {
	return s.vicharRepo.ListForUser(ctx, in.UserID, in.Search, in.Limit, in.Offset)
}

// ListDeleted returns the caller's own soft-deleted vichars. Collaborators
// never see each other's trash.
func (s *VicharService) ListDeleted(ctx context.Context, userID uint, limit, offset int) ([]models.Vichar, error) {
	return s.vicharRepo.ListDeletedForUser(ctx, userID, limit, offset)
}

// Get returns the vichar if the caller owns it or collaborates on it. The
// collaborator list is stripped unless the caller is the owner or holds
// VIEW_COLLABORATORS.
func (s *VicharService) Get(ctx context.Context, vicharID, userID uint) (*models.Vichar, error) {
	vichar, err := s.vicharRepo.GetByID(ctx, vicharID)
	if err != nil {
		return nil, err
	}

	if vichar.UserID == userID {
		resolveCollaboratorPermissions(vichar)
		return vichar, nil
	}

	collaborator, err := s.collabRepo.GetByVicharAndUser(ctx, vicharID, userID)
	if err != nil {
		return nil, err
	}
	if collaborator == nil {
		// Hide existence from outsiders
		return nil, models.NewNotFoundError("Vichar", vicharID)
	}

	if collaborator.HasPermission(models.PermViewCollaborators) {
		resolveCollaboratorPermissions(vichar)
	} else {
		vichar.Collaborators = nil
	}
	return vichar, nil
}

func (s *VicharService) Create(ctx context.Context, in CreateVicharInput) (*models.Vichar, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 50 characters)")
	}
	if in.Body == "" {
		return nil, models.NewValidationError("Body is required")
	}
	if len(in.Body) > maxBodyLen {
		return nil, models.NewValidationError("Body too long (max 50000 characters)")
	}

	vichar := &models.Vichar{
		UserID: in.UserID,
		Title:  title,
		Body:   in.Body,
	}
	if err := s.vicharRepo.Create(ctx, vichar); err != nil {
		return nil, err
	}
	return s.vicharRepo.GetByID(ctx, vichar.ID)
}

// Update modifies title/body. Allowed for the owner or a collaborator with
// EDIT_VICHAR.
func (s *VicharService) Update(ctx context.Context, in UpdateVicharInput) (*models.Vichar, error) {
	vichar, err := s.vicharRepo.GetByID(ctx, in.VicharID)
	if err != nil {
		return nil, err
	}

	if vichar.UserID != in.UserID {
		allowed, err := s.hasPermission(ctx, in.VicharID, in.UserID, models.PermEditVichar)
		if err != nil {
			return nil, err
		}
		if !allowed {
			return nil, models.NewForbiddenError("You do not have permission to edit this vichar")
		}
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, models.NewValidationError("Title cannot be empty")
		}
		if len(title) > maxTitleLen {
			return nil, models.NewValidationError("Title too long (max 50 characters)")
		}
		vichar.Title = title
	}
	if in.Body != nil {
		if *in.Body == "" {
			return nil, models.NewValidationError("Body cannot be empty")
		}
		if len(*in.Body) > maxBodyLen {
			return nil, models.NewValidationError("Body too long (max 50000 characters)")
		}
		vichar.Body = *in.Body
	}

	if err := s.vicharRepo.Update(ctx, vichar); err != nil {
		return nil, err
	}
	return vichar, nil
}

// SoftDelete moves a vichar to the trash. Allowed for the owner or a
// collaborator with DELETE_VICHAR.
func (s *VicharService) SoftDelete(ctx context.Context, vicharID, userID uint) error {
	vichar, err := s.vicharRepo.GetByID(ctx, vicharID)
	if err != nil {
		return err
	}

	if vichar.UserID != userID {
		allowed, err := s.hasPermission(ctx, vicharID, userID, models.PermDeleteVichar)
		if err != nil {
			return err
		}
		if !allowed {
			return models.NewForbiddenError("You do not have permission to delete this vichar")
		}
	}

	return s.vicharRepo.SoftDelete(ctx, vichar)
}

// Restore brings a soft-deleted vichar back. A live vichar is reported as
// not found, matching GetDeletedByID.
func (s *VicharService) Restore(ctx context.Context, vicharID, userID uint) (*models.Vichar, error) {
	vichar, err := s.vicharRepo.GetDeletedByID(ctx, vicharID)
	if err != nil {
		return nil, err
	}

	if vichar.UserID != userID {
		allowed, err := s.hasPermission(ctx, vicharID, userID, models.PermDeleteVichar)
		if err != nil {
			return nil, err
		}
		if !allowed {
			return nil, models.NewForbiddenError("You do not have permission to restore this vichar")
		}
	}

	if err := s.vicharRepo.Restore(ctx, vichar); err != nil {
		return nil, err
	}
	return s.vicharRepo.GetByID(ctx, vicharID)
}

// DeletePermanently removes a vichar for good. Only vichars already in the
// trash can be purged; a live vichar is reported as not found.
func (s *VicharService) DeletePermanently(ctx context.Context, vicharID, userID uint) error {
	vichar, err := s.vicharRepo.GetDeletedByID(ctx, vicharID)
	if err != nil {
		return err
	}

	if vichar.UserID != userID {
		allowed, err := s.hasPermission(ctx, vicharID, userID, models.PermDeleteVichar)
		if err != nil {
			return err
		}
		if !allowed {
			return models.NewForbiddenError("You do not have permission to delete this vichar")
		}
	}

	return s.vicharRepo.DeletePermanently(ctx, vicharID)
}

// ListCollaborators returns the collaborator list for the owner or a
// collaborator with VIEW_COLLABORATORS.
func (s *VicharService) ListCollaborators(ctx context.Context, vicharID, userID uint) ([]models.Collaborator, error) {
	vichar, err := s.vicharRepo.GetByID(ctx, vicharID)
	if err != nil {
		return nil, err
	}

	if vichar.UserID != userID {
		allowed, err := s.hasPermission(ctx, vicharID, userID, models.PermViewCollaborators)
		if err != nil {
			return nil, err
		}
		if !allowed {
			return nil, models.NewForbiddenError("You do not have permission to view collaborators")
		}
	}

	collaborators, err := s.collabRepo.ListByVichar(ctx, vicharID)
	if err != nil {
		return nil, err
	}
	for i := range collaborators {
		collaborators[i].ResolvePermissions()
	}
	return collaborators, nil
}

// AddCollaborator grants a user access to a vichar. Allowed for the owner or
// a collaborator with ADD_COLLABORATOR. The owner cannot be added as a
// collaborator on their own vichar.
func (s *VicharService) AddCollaborator(ctx context.Context, in AddCollaboratorInput) (*models.Collaborator, error) {
	vichar, err := s.vicharRepo.GetByID(ctx, in.VicharID)
	if err != nil {
		return nil, err
	}

	if vichar.UserID != in.ActorID {
		allowed, err := s.hasPermission(ctx, in.VicharID, in.ActorID, models.PermAddCollaborator)
		if err != nil {
			return nil, err
		}
		if !allowed {
			return nil, models.NewForbiddenError("You do not have permission to add collaborators")
		}
	}

	if in.UserID == vichar.UserID {
		return nil, models.NewValidationError("Owner cannot be a collaborator on their own vichar")
	}

	// Target user must exist
	if _, err := s.userRepo.GetByID(ctx, in.UserID); err != nil {
		return nil, err
	}

	if in.RoleID != nil {
		if _, err := s.roleRepo.GetByID(ctx, *in.RoleID); err != nil {
			return nil, err
		}
	}

	existing, err := s.collabRepo.GetByVicharAndUser(ctx, in.VicharID, in.UserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("User is already a collaborator on this vichar")
	}

	collaborator := &models.Collaborator{
		VicharID: in.VicharID,
		OwnerID:  vichar.UserID,
		UserID:   in.UserID,
		RoleID:   in.RoleID,
	}
	if err := s.collabRepo.Create(ctx, collaborator); err != nil {
		return nil, err
	}

	created, err := s.collabRepo.GetByVicharAndUser(ctx, in.VicharID, in.UserID)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return collaborator, nil
	}
	created.ResolvePermissions()
	return created, nil
}

// UpdateCollaboratorRole changes (or clears) a collaborator's role.
// Allowed for the owner or a collaborator with ADD_COLLABORATOR.
func (s *VicharService) UpdateCollaboratorRole(ctx context.Context, in UpdateCollaboratorInput) (*models.Collaborator, error) {
	vichar, err := s.vicharRepo.GetByID(ctx, in.VicharID)
	if err != nil {
		return nil, err
	}

	if vichar.UserID != in.ActorID {
		allowed, err := s.hasPermission(ctx, in.VicharID, in.ActorID, models.PermAddCollaborator)
		if err != nil {
			return nil, err
		}
		if !allowed {
			return nil, models.NewForbiddenError("You do not have permission to manage collaborators")
		}
	}

	collaborator, err := s.collabRepo.GetByVicharAndUser(ctx, in.VicharID, in.UserID)
	if err != nil {
		return nil, err
	}
	if collaborator == nil {
		return nil, models.NewNotFoundError("Collaborator", in.UserID)
	}

	if in.RoleID != nil {
		if _, err := s.roleRepo.GetByID(ctx, *in.RoleID); err != nil {
			return nil, err
		}
	}

	if err := s.collabRepo.UpdateRole(ctx, collaborator, in.RoleID); err != nil {
		return nil, err
	}

	updated, err := s.collabRepo.GetByVicharAndUser(ctx, in.VicharID, in.UserID)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return collaborator, nil
	}
	updated.ResolvePermissions()
	return updated, nil
}

// RemoveCollaborator revokes a user's access. Allowed for the owner, a
// collaborator with REMOVE_COLLABORATOR, or the collaborator removing
// themselves.
func (s *VicharService) RemoveCollaborator(ctx context.Context, actorID, vicharID, userID uint) error {
	vichar, err := s.vicharRepo.GetByID(ctx, vicharID)
	if err != nil {
		return err
	}

	if vichar.UserID != actorID && actorID != userID {
		allowed, err := s.hasPermission(ctx, vicharID, actorID, models.PermRemoveCollaborator)
		if err != nil {
			return err
		}
		if !allowed {
			return models.NewForbiddenError("You do not have permission to remove collaborators")
		}
	}

	collaborator, err := s.collabRepo.GetByVicharAndUser(ctx, vicharID, userID)
	if err != nil {
		return err
	}
	if collaborator == nil {
		return models.NewNotFoundError("Collaborator", userID)
	}

	return s.collabRepo.Delete(ctx, collaborator.ID)
}

func resolveCollaboratorPermissions(vichar *models.Vichar) {
	for i := range vichar.Collaborators {
		vichar.Collaborators[i].ResolvePermissions()
	}
}
