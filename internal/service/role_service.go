package service

import (
	"context"

	"vicharak/internal/models"
	"vicharak/internal/repository"
)

// RoleService manages the role catalog. Reads are open to any authenticated
// user; writes require an admin.
type RoleService struct {
	roleRepo repository.RoleRepository
	isAdmin  func(ctx context.Context, userID uint) (bool, error)
}

type CreateRoleInput struct {
	ActorID     uint
	Name        string
	Permissions []string
}

type UpdateRoleInput struct {
	ActorID     uint
	RoleID      uint
	Name        *string
	Permissions *[]string
}

type ListRolesInput struct {
	Search string
	Limit  int
	Offset int
}

func NewRoleService(
	roleRepo repository.RoleRepository,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *RoleService {
	return &RoleService{
		roleRepo: roleRepo,
		isAdmin:  isAdmin,
	}
}

func (s *RoleService) requireAdmin(ctx context.Context, userID uint) error {
	if s.isAdmin == nil {
		return models.NewForbiddenError("Admin access required")
	}
	admin, err := s.isAdmin(ctx, userID)
	if err != nil {
		return err
	}
	if !admin {
		return models.NewForbiddenError("Admin access required")
	}
	return nil
}

func (s *RoleService) Get(ctx context.Context, roleID uint) (*models.Role, error) {
	return s.roleRepo.GetByID(ctx, roleID)
}

func (s *RoleService) List(ctx context.Context, in ListRolesInput) ([]models.Role, int64, error) {
	return s.roleRepo.List(ctx, in.Search, in.Limit, in.Offset)
}

func (s *RoleService) Create(ctx context.Context, in CreateRoleInput) (*models.Role, error) {
	if err := s.requireAdmin(ctx, in.ActorID); err != nil {
		return nil, err
	}

	if in.Name == "" {
		return nil, models.NewValidationError("Role name is required")
	}
	if len(in.Name) > 50 {
		return nil, models.NewValidationError("Role name too long (max 50 characters)")
	}
	if err := models.ValidatePermissions(in.Permissions); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	role := &models.Role{
		Name:        in.Name,
		Permissions: in.Permissions,
	}
	if err := s.roleRepo.Create(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

func (s *RoleService) Update(ctx context.Context, in UpdateRoleInput) (*models.Role, error) {
	if err := s.requireAdmin(ctx, in.ActorID); err != nil {
		return nil, err
	}

	role, err := s.roleRepo.GetByID(ctx, in.RoleID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, models.NewValidationError("Role name cannot be empty")
		}
		if len(*in.Name) > 50 {
			return nil, models.NewValidationError("Role name too long (max 50 characters)")
		}
		role.Name = *in.Name
	}
	if in.Permissions != nil {
		if err := models.ValidatePermissions(*in.Permissions); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		role.Permissions = *in.Permissions
	}

	if err := s.roleRepo.Update(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

// Delete removes a role. Collaborators referencing it fall back to a NULL
// role, which grants no permissions.
func (s *RoleService) Delete(ctx context.Context, actorID, roleID uint) error {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return err
	}

	if _, err := s.roleRepo.GetByID(ctx, roleID); err != nil {
		return err
	}

	return s.roleRepo.Delete(ctx, roleID)
}
