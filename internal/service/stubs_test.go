package service

import (
	"context"
	"errors"
	"testing"

	"vicharak/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// vicharRepoStub is a stub for repository.VicharRepository.
type vicharRepoStub struct {
	createFn            func(context.Context, *models.Vichar) error
	getByIDFn           func(context.Context, uint) (*models.Vichar, error)
	getDeletedByIDFn    func(context.Context, uint) (*models.Vichar, error)
	listForUserFn       func(context.Context, uint, string, int, int) ([]models.Vichar, error)
	listDeletedFn       func(context.Context, uint, int, int) ([]models.Vichar, error)
	updateFn            func(context.Context, *models.Vichar) error
	softDeleteFn        func(context.Context, *models.Vichar) error
	restoreFn           func(context.Context, *models.Vichar) error
	deletePermanentlyFn func(context.Context, uint) error
}

func (s *vicharRepoStub) Create(ctx context.Context, v *models.Vichar) error {
	return s.createFn(ctx, v)
}
func (s *vicharRepoStub) GetByID(ctx context.Context, id uint) (*models.Vichar, error) {
	return s.getByIDFn(ctx, id)
}
func (s *vicharRepoStub) GetDeletedByID(ctx context.Context, id uint) (*models.Vichar, error) {
	return s.getDeletedByIDFn(ctx, id)
}
func (s *vicharRepoStub) ListForUser(ctx context.Context, userID uint, search string, limit, offset int) ([]models.Vichar, error) {
	return s.listForUserFn(ctx, userID, search, limit, offset)
}
func (s *vicharRepoStub) ListDeletedForUser(ctx context.Context, userID uint, limit, offset int) ([]models.Vichar, error) {
	return s.listDeletedFn(ctx, userID, limit, offset)
}
func (s *vicharRepoStub) Update(ctx context.Context, v *models.Vichar) error {
	return s.updateFn(ctx, v)
}
func (s *vicharRepoStub) SoftDelete(ctx context.Context, v *models.Vichar) error {
	return s.softDeleteFn(ctx, v)
}
func (s *vicharRepoStub) Restore(ctx context.Context, v *models.Vichar) error {
	return s.restoreFn(ctx, v)
}
func (s *vicharRepoStub) DeletePermanently(ctx context.Context, id uint) error {
	return s.deletePermanentlyFn(ctx, id)
}

func noopVicharRepo() *vicharRepoStub {
	return &vicharRepoStub{
		createFn:         func(_ context.Context, _ *models.Vichar) error { return nil },
		getByIDFn:        func(_ context.Context, id uint) (*models.Vichar, error) { return &models.Vichar{ID: id}, nil },
		getDeletedByIDFn: func(_ context.Context, id uint) (*models.Vichar, error) { return &models.Vichar{ID: id}, nil },
		listForUserFn: func(_ context.Context, _ uint, _ string, _, _ int) ([]models.Vichar, error) {
			return nil, nil
		},
		listDeletedFn:       func(_ context.Context, _ uint, _, _ int) ([]models.Vichar, error) { return nil, nil },
		updateFn:            func(_ context.Context, _ *models.Vichar) error { return nil },
		softDeleteFn:        func(_ context.Context, _ *models.Vichar) error { return nil },
		restoreFn:           func(_ context.Context, _ *models.Vichar) error { return nil },
		deletePermanentlyFn: func(_ context.Context, _ uint) error { return nil },
	}
}

// collabRepoStub is a stub for repository.CollaboratorRepository.
type collabRepoStub struct {
	getByVicharAndUserFn func(context.Context, uint, uint) (*models.Collaborator, error)
	listByVicharFn       func(context.Context, uint) ([]models.Collaborator, error)
	createFn             func(context.Context, *models.Collaborator) error
	updateRoleFn         func(context.Context, *models.Collaborator, *uint) error
	deleteFn             func(context.Context, uint) error
}

func (s *collabRepoStub) GetByVicharAndUser(ctx context.Context, vicharID, userID uint) (*models.Collaborator, error) {
	return s.getByVicharAndUserFn(ctx, vicharID, userID)
}
func (s *collabRepoStub) ListByVichar(ctx context.Context, vicharID uint) ([]models.Collaborator, error) {
	return s.listByVicharFn(ctx, vicharID)
}
func (s *collabRepoStub) Create(ctx context.Context, c *models.Collaborator) error {
	return s.createFn(ctx, c)
}
func (s *collabRepoStub) UpdateRole(ctx context.Context, c *models.Collaborator, roleID *uint) error {
	return s.updateRoleFn(ctx, c, roleID)
}
func (s *collabRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCollabRepo() *collabRepoStub {
	return &collabRepoStub{
		getByVicharAndUserFn: func(_ context.Context, _, _ uint) (*models.Collaborator, error) { return nil, nil },
		listByVicharFn:       func(_ context.Context, _ uint) ([]models.Collaborator, error) { return nil, nil },
		createFn:             func(_ context.Context, _ *models.Collaborator) error { return nil },
		updateRoleFn:         func(_ context.Context, _ *models.Collaborator, _ *uint) error { return nil },
		deleteFn:             func(_ context.Context, _ uint) error { return nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	updateFn        func(context.Context, *models.User) error
	deleteFn        func(context.Context, uint) error
	listFn          func(context.Context, int, int) ([]models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, u *models.User) error {
	return s.createFn(ctx, u)
}
func (s *userRepoStub) Update(ctx context.Context, u *models.User) error {
	return s.updateFn(ctx, u)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:       func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByEmailFn:    func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByUsernameFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:        func(_ context.Context, _ *models.User) error { return nil },
		updateFn:        func(_ context.Context, _ *models.User) error { return nil },
		deleteFn:        func(_ context.Context, _ uint) error { return nil },
		listFn:          func(_ context.Context, _, _ int) ([]models.User, error) { return nil, nil },
	}
}

// roleRepoStub is a stub for repository.RoleRepository.
type roleRepoStub struct {
	getByIDFn   func(context.Context, uint) (*models.Role, error)
	getByNameFn func(context.Context, string) (*models.Role, error)
	listFn      func(context.Context, string, int, int) ([]models.Role, int64, error)
	createFn    func(context.Context, *models.Role) error
	updateFn    func(context.Context, *models.Role) error
	deleteFn    func(context.Context, uint) error
}

func (s *roleRepoStub) GetByID(ctx context.Context, id uint) (*models.Role, error) {
	return s.getByIDFn(ctx, id)
}
func (s *roleRepoStub) GetByName(ctx context.Context, name string) (*models.Role, error) {
	return s.getByNameFn(ctx, name)
}
func (s *roleRepoStub) List(ctx context.Context, search string, limit, offset int) ([]models.Role, int64, error) {
	return s.listFn(ctx, search, limit, offset)
}
func (s *roleRepoStub) Create(ctx context.Context, r *models.Role) error {
	return s.createFn(ctx, r)
}
func (s *roleRepoStub) Update(ctx context.Context, r *models.Role) error {
	return s.updateFn(ctx, r)
}
func (s *roleRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopRoleRepo() *roleRepoStub {
	return &roleRepoStub{
		getByIDFn:   func(_ context.Context, id uint) (*models.Role, error) { return &models.Role{ID: id}, nil },
		getByNameFn: func(_ context.Context, _ string) (*models.Role, error) { return nil, nil },
		listFn:      func(_ context.Context, _ string, _, _ int) ([]models.Role, int64, error) { return nil, 0, nil },
		createFn:    func(_ context.Context, _ *models.Role) error { return nil },
		updateFn:    func(_ context.Context, _ *models.Role) error { return nil },
		deleteFn:    func(_ context.Context, _ uint) error { return nil },
	}
}

// assertAppErrorCode asserts that err is an AppError with the given code.
func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, "VALIDATION_ERROR")
}

func assertForbiddenError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, "FORBIDDEN")
}
