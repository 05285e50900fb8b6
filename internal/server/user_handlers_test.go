package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"vicharak/internal/models"
	"vicharak/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// authAs fakes the auth middleware by fixing the caller's user ID in Locals.
func authAs(userID uint) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		return c.Next()
	}
}

func newUserTestServer(mockRepo *MockUserRepository) *Server {
	return &Server{
		config:      testConfig(),
		userRepo:    mockRepo,
		userService: service.NewUserService(mockRepo),
	}
}

func TestGetMyProfile(t *testing.T) {
	app := fiber.New()
	mockRepo := new(MockUserRepository)
	s := newUserTestServer(mockRepo)

	app.Use(authAs(1))
	app.Get("/users/me", s.GetMyProfile)

	mockRepo.On("GetByID", mock.Anything, uint(1)).Return(&models.User{ID: 1, Username: "me"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	resp, _ := app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var user models.User
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&user))
	assert.Equal(t, "me", user.Username)
}

func TestGetAllUsers(t *testing.T) {
	app := fiber.New()
	mockRepo := new(MockUserRepository)
	s := newUserTestServer(mockRepo)

	app.Use(authAs(1))
	app.Get("/users", s.GetAllUsers)

	mockRepo.On("List", mock.Anything, 100, 0).Return([]models.User{
		{ID: 1, Username: "alice"},
		{ID: 2, Username: "bob"},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	resp, _ := app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Users []models.User `json:"users"`
		Limit int           `json:"limit"`
	}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Users, 2)
	assert.Equal(t, 100, body.Limit)
}

func TestUpdateMyProfile(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]any
		mockSetup      func(m *MockUserRepository)
		expectedStatus int
	}{
		{
			name: "Update Name",
			body: map[string]any{"name": "New Name"},
			mockSetup: func(m *MockUserRepository) {
				m.On("GetByID", mock.Anything, uint(1)).Return(&models.User{ID: 1, Username: "me"}, nil)
				m.On("Update", mock.Anything, mock.Anything).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Username Taken",
			body: map[string]any{"username": "taken"},
			mockSetup: func(m *MockUserRepository) {
				m.On("GetByID", mock.Anything, uint(1)).Return(&models.User{ID: 1, Username: "me"}, nil)
				m.On("GetByUsername", mock.Anything, "taken").Return(&models.User{ID: 2, Username: "taken"}, nil)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "Invalid Email",
			body: map[string]any{"email": "nope"},
			mockSetup: func(m *MockUserRepository) {
				m.On("GetByID", mock.Anything, uint(1)).Return(&models.User{ID: 1, Username: "me"}, nil)
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			mockRepo := new(MockUserRepository)
			s := newUserTestServer(mockRepo)

			app.Use(authAs(1))
			app.Patch("/users/me", s.UpdateMyProfile)

			tt.mockSetup(mockRepo)
			resp, err := app.Test(jsonRequest(http.MethodPatch, "/users/me", tt.body))
			assert.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestUpdateMyPassword(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("OldPassword1"), bcrypt.MinCost)

	tests := []struct {
		name           string
		body           map[string]string
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]string{
				"current_password": "OldPassword1",
				"new_password":     "NewPassword1",
				"confirm_password": "NewPassword1",
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Wrong Current Password",
			body: map[string]string{
				"current_password": "WrongPassword1",
				"new_password":     "NewPassword1",
				"confirm_password": "NewPassword1",
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "Confirmation Mismatch",
			body: map[string]string{
				"current_password": "OldPassword1",
				"new_password":     "NewPassword1",
				"confirm_password": "Different1",
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			mockRepo := new(MockUserRepository)
			s := newUserTestServer(mockRepo)

			app.Use(authAs(1))
			app.Post("/users/me/password", s.UpdateMyPassword)

			mockRepo.On("GetByID", mock.Anything, uint(1)).Return(
				&models.User{ID: 1, Username: "me", Password: string(hashed)}, nil)
			mockRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

			resp, err := app.Test(jsonRequest(http.MethodPost, "/users/me/password", tt.body))
			assert.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestDeleteMyAccount(t *testing.T) {
	app := fiber.New()
	mockRepo := new(MockUserRepository)
	s := newUserTestServer(mockRepo)

	app.Use(authAs(1))
	app.Delete("/users/me", s.DeleteMyAccount)

	mockRepo.On("GetByID", mock.Anything, uint(1)).Return(&models.User{ID: 1}, nil)
	mockRepo.On("Delete", mock.Anything, uint(1)).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/users/me", nil)
	resp, _ := app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	mockRepo.AssertCalled(t, "Delete", mock.Anything, uint(1))
}
