package controllers_test

import (
	"net/http"
	"testing"
	"time"

	"healio/internal/controllers"
	"healio/internal/mocks"
	"healio/internal/models"
	"healio/internal/services"
	"healio/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupAuthControllerWithMock() (*controllers.AuthController, *mocks.MockUserRepository) {
	mockRepo := new(mocks.MockUserRepository)
	svc := services.NewAuthService(mockRepo, utils.NewTokenIssuer("test-secret", time.Hour), nil, zap.NewNop())
	return controllers.NewAuthController(svc), mockRepo
}

func TestRegisterUser(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		setupMock      func(*mocks.MockUserRepository)
		expectedStatus int
		expectedMsg    string
	}{
		{
			name: "successful registration",
			body: map[string]string{"email": "jane@example.com", "password": "secret123", "name": "Jane"},
			setupMock: func(m *mocks.MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "jane@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).
					Run(func(args mock.Arguments) { args.Get(1).(*models.User).ID = 1 }).
					Return(nil)
			},
			expectedStatus: http.StatusCreated,
			expectedMsg:    "User registered successfully",
		},
		{
			name: "email taken",
			body: map[string]string{"email": "jane@example.com", "password": "secret123", "name": "Jane"},
			setupMock: func(m *mocks.MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "jane@example.com").Return(&models.User{ID: 1}, nil)
			},
			expectedStatus: http.StatusConflict,
			expectedMsg:    "Registration failed",
		},
		{
			name: "email taken by a concurrent registration",
			body: map[string]string{"email": "jane@example.com", "password": "secret123", "name": "Jane"},
			setupMock: func(m *mocks.MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "jane@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(gorm.ErrDuplicatedKey)
			},
			expectedStatus: http.StatusConflict,
			expectedMsg:    "Registration failed",
		},
		{
			name:           "invalid email",
			body:           map[string]string{"email": "not-an-email", "password": "secret123", "name": "Jane"},
			setupMock:      func(m *mocks.MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid request data",
		},
		{
			name:           "short password",
			body:           map[string]string{"email": "jane@example.com", "password": "123", "name": "Jane"},
			setupMock:      func(m *mocks.MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid request data",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller, mockRepo := setupAuthControllerWithMock()
			tt.setupMock(mockRepo)

			router := setupTestRouter()
			router.POST("/register", controller.Register)

			w := performRequest(router, "POST", "/register", tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code)

			response := decodeResponse(t, w)
			assert.Contains(t, response["message"], tt.expectedMsg)

			if tt.expectedStatus == http.StatusCreated {
				data := response["data"].(map[string]interface{})
				assert.NotEmpty(t, data["token"])
				user := data["user"].(map[string]interface{})
				assert.Equal(t, "jane@example.com", user["email"])
				assert.NotContains(t, user, "password")
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestLoginUser(t *testing.T) {
	hash, err := utils.HashPassword("secret123")
	require.NoError(t, err)

	tests := []struct {
		name           string
		body           interface{}
		setupMock      func(*mocks.MockUserRepository)
		expectedStatus int
		expectedMsg    string
	}{
		{
			name: "valid credentials",
			body: map[string]string{"email": "jane@example.com", "password": "secret123"},
			setupMock: func(m *mocks.MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "jane@example.com").
					Return(&models.User{ID: 1, Email: "jane@example.com", Password: hash}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "Login successful",
		},
		{
			name: "wrong password",
			body: map[string]string{"email": "jane@example.com", "password": "nope"},
			setupMock: func(m *mocks.MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "jane@example.com").
					Return(&models.User{ID: 1, Email: "jane@example.com", Password: hash}, nil)
			},
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    "Login failed",
		},
		{
			name:           "malformed body",
			body:           "{",
			setupMock:      func(m *mocks.MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid request data",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller, mockRepo := setupAuthControllerWithMock()
			tt.setupMock(mockRepo)

			router := setupTestRouter()
			router.POST("/login", controller.Login)

			w := performRequest(router, "POST", "/login", tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, decodeResponse(t, w)["message"], tt.expectedMsg)

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestGoogleAuthDisabled(t *testing.T) {
	controller, _ := setupAuthControllerWithMock()
	router := setupTestRouter()
	router.POST("/google", controller.GoogleAuth)

	w := performRequest(router, "POST", "/google", map[string]string{"id_token": "abc"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, decodeResponse(t, w)["message"], "Google authentication failed")
}
