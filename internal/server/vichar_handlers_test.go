package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"vicharak/internal/models"
	"vicharak/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockVicharRepository is a mock of the VicharRepository interface
type MockVicharRepository struct {
	mock.Mock
}

func (m *MockVicharRepository) Create(ctx context.Context, vichar *models.Vichar) error {
	args := m.Called(ctx, vichar)
	return args.Error(0)
}

func (m *MockVicharRepository) GetByID(ctx context.Context, id uint) (*models.Vichar, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vichar), args.Error(1)
}

func (m *MockVicharRepository) GetDeletedByID(ctx context.Context, id uint) (*models.Vichar, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vichar), args.Error(1)
}

func (m *MockVicharRepository) ListForUser(ctx context.Context, userID uint, search string, limit, offset int) ([]models.Vichar, error) {
	args := m.Called(ctx, userID, search, limit, offset)
	return args.Get(0).([]models.Vichar), args.Error(1)
}

func (m *MockVicharRepository) ListDeletedForUser(ctx context.Context, userID uint, limit, offset int) ([]models.Vichar, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]models.Vichar), args.Error(1)
}

func (m *MockVicharRepository) Update(ctx context.Context, vichar *models.Vichar) error {
	args := m.Called(ctx, vichar)
	return args.Error(0)
}

func (m *MockVicharRepository) SoftDelete(ctx context.Context, vichar *models.Vichar) error {
	args := m.Called(ctx, vichar)
	return args.Error(0)
}

func (m *MockVicharRepository) Restore(ctx context.Context, vichar *models.Vichar) error {
	args := m.Called(ctx, vichar)
	return args.Error(0)
}

func (m *MockVicharRepository) DeletePermanently(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCollaboratorRepository is a mock of the CollaboratorRepository interface
type MockCollaboratorRepository struct {
	mock.Mock
}

func (m *MockCollaboratorRepository) GetByVicharAndUser(ctx context.Context, vicharID, userID uint) (*models.Collaborator, error) {
	args := m.Called(ctx, vicharID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Collaborator), args.Error(1)
}

func (m *MockCollaboratorRepository) ListByVichar(ctx context.Context, vicharID uint) ([]models.Collaborator, error) {
	args := m.Called(ctx, vicharID)
	return args.Get(0).([]models.Collaborator), args.Error(1)
}

func (m *MockCollaboratorRepository) Create(ctx context.Context, collaborator *models.Collaborator) error {
	args := m.Called(ctx, collaborator)
	return args.Error(0)
}

func (m *MockCollaboratorRepository) UpdateRole(ctx context.Context, collaborator *models.Collaborator, roleID *uint) error {
	args := m.Called(ctx, collaborator, roleID)
	return args.Error(0)
}

func (m *MockCollaboratorRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type vicharMocks struct {
	vicharRepo *MockVicharRepository
	collabRepo *MockCollaboratorRepository
	userRepo   *MockUserRepository
	roleRepo   *MockRoleRepository
}

func newVicharTestServer() (*Server, vicharMocks) {
	m := vicharMocks{
		vicharRepo: new(MockVicharRepository),
		collabRepo: new(MockCollaboratorRepository),
		userRepo:   new(MockUserRepository),
		roleRepo:   new(MockRoleRepository),
	}
	s := &Server{
		config:     testConfig(),
		vicharRepo: m.vicharRepo,
		collabRepo: m.collabRepo,
		userRepo:   m.userRepo,
		roleRepo:   m.roleRepo,
	}
	s.vicharService = service.NewVicharService(m.vicharRepo, m.collabRepo, m.userRepo, m.roleRepo)
	return s, m
}

func TestGetVichars(t *testing.T) {
	app := fiber.New()
	s, m := newVicharTestServer()

	app.Use(authAs(1))
	app.Get("/vichars", s.GetVichars)

	m.vicharRepo.On("ListForUser", mock.Anything, uint(1), "plan", 20, 0).Return([]models.Vichar{
		{ID: 10, UserID: 1, Title: "Weekend plans"},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/vichars?search=plan", nil)
	resp, _ := app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Vichars []models.Vichar `json:"vichars"`
	}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Vichars, 1)
	assert.Equal(t, "Weekend plans", body.Vichars[0].Title)
}

func TestCreateVichar(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]string
		mockSetup      func(m vicharMocks)
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]string{"title": "My note", "body": "Some text"},
			mockSetup: func(m vicharMocks) {
				m.vicharRepo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
					args.Get(1).(*models.Vichar).ID = 42
				}).Return(nil)
				m.vicharRepo.On("GetByID", mock.Anything, uint(42)).Return(
					&models.Vichar{ID: 42, UserID: 1, Title: "My note", Body: "Some text"}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Missing Title",
			body:           map[string]string{"body": "Some text"},
			mockSetup:      func(m vicharMocks) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Missing Body",
			body:           map[string]string{"title": "My note"},
			mockSetup:      func(m vicharMocks) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			s, m := newVicharTestServer()

			app.Use(authAs(1))
			app.Post("/vichars", s.CreateVichar)

			tt.mockSetup(m)
			resp, err := app.Test(jsonRequest(http.MethodPost, "/vichars", tt.body))
			assert.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestGetVichar(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		mockSetup      func(m vicharMocks)
		expectedStatus int
	}{
		{
			name: "Owner",
			path: "/vichars/10",
			mockSetup: func(m vicharMocks) {
				m.vicharRepo.On("GetByID", mock.Anything, uint(10)).Return(
					&models.Vichar{ID: 10, UserID: 1, Title: "Mine"}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Outsider Gets Not Found",
			path: "/vichars/11",
			mockSetup: func(m vicharMocks) {
				m.vicharRepo.On("GetByID", mock.Anything, uint(11)).Return(
					&models.Vichar{ID: 11, UserID: 2, Title: "Theirs"}, nil)
				m.collabRepo.On("GetByVicharAndUser", mock.Anything, uint(11), uint(1)).Return(nil, nil)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "Missing Vichar",
			path: "/vichars/99",
			mockSetup: func(m vicharMocks) {
				m.vicharRepo.On("GetByID", mock.Anything, uint(99)).Return(
					nil, models.NewNotFoundError("Vichar", 99))
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Invalid ID",
			path:           "/vichars/abc",
			mockSetup:      func(m vicharMocks) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			s, m := newVicharTestServer()

			app.Use(authAs(1))
			app.Get("/vichars/:id", s.GetVichar)

			tt.mockSetup(m)
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			resp, _ := app.Test(req)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestUpdateVichar(t *testing.T) {
	app := fiber.New()
	s, m := newVicharTestServer()

	app.Use(authAs(1))
	app.Put("/vichars/:id", s.UpdateVichar)

	m.vicharRepo.On("GetByID", mock.Anything, uint(10)).Return(
		&models.Vichar{ID: 10, UserID: 1, Title: "Old", Body: "Old body"}, nil)
	m.vicharRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

	resp, err := app.Test(jsonRequest(http.MethodPut, "/vichars/10",
		map[string]string{"title": "New title"}))
	assert.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var vichar models.Vichar
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&vichar))
	assert.Equal(t, "New title", vichar.Title)
	assert.Equal(t, "Old body", vichar.Body)
}

func TestDeleteVichar(t *testing.T) {
	app := fiber.New()
	s, m := newVicharTestServer()

	app.Use(authAs(1))
	app.Delete("/vichars/:id", s.DeleteVichar)

	m.vicharRepo.On("GetByID", mock.Anything, uint(10)).Return(
		&models.Vichar{ID: 10, UserID: 1}, nil)
	m.vicharRepo.On("SoftDelete", mock.Anything, mock.Anything).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/vichars/10", nil)
	resp, _ := app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	m.vicharRepo.AssertCalled(t, "SoftDelete", mock.Anything, mock.Anything)
}

func TestRestoreVichar(t *testing.T) {
	app := fiber.New()
	s, m := newVicharTestServer()

	app.Use(authAs(1))
	app.Post("/vichars/:id/restore", s.RestoreVichar)

	t.Run("Success", func(t *testing.T) {
		m.vicharRepo.On("GetDeletedByID", mock.Anything, uint(10)).Return(
			&models.Vichar{ID: 10, UserID: 1, Title: "Trashed"}, nil)
		m.vicharRepo.On("Restore", mock.Anything, mock.Anything).Return(nil)
		m.vicharRepo.On("GetByID", mock.Anything, uint(10)).Return(
			&models.Vichar{ID: 10, UserID: 1, Title: "Trashed"}, nil)

		req := httptest.NewRequest(http.MethodPost, "/vichars/10/restore", nil)
		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Live Vichar Is Not Found", func(t *testing.T) {
		m.vicharRepo.On("GetDeletedByID", mock.Anything, uint(11)).Return(
			nil, models.NewNotFoundError("Vichar", 11))

		req := httptest.NewRequest(http.MethodPost, "/vichars/11/restore", nil)
		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestDeleteVicharPermanently(t *testing.T) {
	app := fiber.New()
	s, m := newVicharTestServer()

	app.Use(authAs(1))
	app.Delete("/vichars/:id/permanent", s.DeleteVicharPermanently)

	t.Run("Requires Prior Soft Delete", func(t *testing.T) {
		m.vicharRepo.On("GetDeletedByID", mock.Anything, uint(10)).Return(
			nil, models.NewNotFoundError("Vichar", 10))

		req := httptest.NewRequest(http.MethodDelete, "/vichars/10/permanent", nil)
		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Success", func(t *testing.T) {
		m.vicharRepo.On("GetDeletedByID", mock.Anything, uint(11)).Return(
			&models.Vichar{ID: 11, UserID: 1}, nil)
		m.vicharRepo.On("DeletePermanently", mock.Anything, uint(11)).Return(nil)

		req := httptest.NewRequest(http.MethodDelete, "/vichars/11/permanent", nil)
		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})
}

func TestGetDeletedVichars(t *testing.T) {
	app := fiber.New()
	s, m := newVicharTestServer()

	app.Use(authAs(1))
	app.Get("/vichars/deleted", s.GetDeletedVichars)

	m.vicharRepo.On("ListDeletedForUser", mock.Anything, uint(1), 20, 0).Return(
		[]models.Vichar{{ID: 5, UserID: 1, Title: "Trashed"}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/vichars/deleted", nil)
	resp, _ := app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
