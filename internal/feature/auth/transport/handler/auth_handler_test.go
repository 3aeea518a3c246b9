package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"gallery_backend/internal/domain"
	"gallery_backend/internal/domain/entity"
	"gallery_backend/internal/feature/auth/usecase"
)

// mockAuthUsecase is a mock implementation of the AuthUsecase interface.
type mockAuthUsecase struct {
	RegisterFunc    func(ctx context.Context, in usecase.RegisterInput) (*entity.User, error)
	LoginFunc       func(ctx context.Context, email, password string) (string, *entity.User, error)
	EmailExistsFunc func(ctx context.Context, email string) (bool, error)
}

func (m *mockAuthUsecase) Register(ctx context.Context, in usecase.RegisterInput) (*entity.User, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, in)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAuthUsecase) Login(ctx context.Context, email, password string) (string, *entity.User, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return "", nil, domain.ErrInvalidCredentials
}

func (m *mockAuthUsecase) EmailExists(ctx context.Context, email string) (bool, error) {
	if m.EmailExistsFunc != nil {
		return m.EmailExistsFunc(ctx, email)
	}
	return false, nil
}

func doJSON(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Signup(t *testing.T) {
	gin.SetMode(gin.TestMode)

	created := &entity.User{ID: "u1", Name: "Ana", Email: "ana@example.com", PasswordHash: "secret-hash", Role: entity.RoleUser}

	tests := []struct {
		name           string
		requestBody    gin.H
		registerFunc   func(ctx context.Context, in usecase.RegisterInput) (*entity.User, error)
		expectedStatus int
		expectedBody   gin.H
	}{
		{
			name:           "success: user registration",
			requestBody:    gin.H{"name": "Ana", "email": "ana@example.com", "password": "pw123456"},
			registerFunc:   func(ctx context.Context, in usecase.RegisterInput) (*entity.User, error) { return created, nil },
			expectedStatus: http.StatusCreated,
			expectedBody:   gin.H{"id": "u1", "name": "Ana", "email": "ana@example.com", "phone": "", "role": "user"},
		},
		{
			name:           "failure: invalid email address",
			requestBody:    gin.H{"name": "Ana", "email": "invalid-email", "password": "pw123456"},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   gin.H{"error": "invalid request"},
		},
		{
			name:           "failure: missing name",
			requestBody:    gin.H{"email": "ana@example.com", "password": "pw123456"},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   gin.H{"error": "invalid request"},
		},
		{
			name:        "failure: duplicate email",
			requestBody: gin.H{"name": "Ana", "email": "ana@example.com", "password": "pw123456"},
			registerFunc: func(ctx context.Context, in usecase.RegisterInput) (*entity.User, error) {
				return nil, domain.ErrEmailAlreadyExists
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   gin.H{"error": "signup failed"},
		},
		{
			name:        "failure: backend error is hidden",
			requestBody: gin.H{"name": "Ana", "email": "ana@example.com", "password": "pw123456"},
			registerFunc: func(ctx context.Context, in usecase.RegisterInput) (*entity.User, error) {
				return nil, errors.New("disk full")
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   gin.H{"error": "internal error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewAuthHandler(&mockAuthUsecase{RegisterFunc: tt.registerFunc})
			router := gin.New()
			router.POST("/signup", handler.Signup)

			w := doJSON(router, http.MethodPost, "/signup", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)
			var responseBody gin.H
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &responseBody))
			assert.Equal(t, tt.expectedBody, responseBody)
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	gin.SetMode(gin.TestMode)

	user := &entity.User{ID: "u1", Name: "Ana", Email: "ana@example.com", Role: entity.RoleAdmin}

	tests := []struct {
		name           string
		requestBody    gin.H
		loginFunc      func(ctx context.Context, email, password string) (string, *entity.User, error)
		expectedStatus int
		expectedToken  string
	}{
		{
			name:        "success: user login",
			requestBody: gin.H{"email": "ana@example.com", "password": "pw"},
			loginFunc: func(ctx context.Context, email, password string) (string, *entity.User, error) {
				return "dummy-jwt-token", user, nil
			},
			expectedStatus: http.StatusOK,
			expectedToken:  "dummy-jwt-token",
		},
		{
			name:           "failure: missing password",
			requestBody:    gin.H{"email": "ana@example.com"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "failure: invalid credentials",
			requestBody:    gin.H{"email": "ana@example.com", "password": "wrong"},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewAuthHandler(&mockAuthUsecase{LoginFunc: tt.loginFunc})
			router := gin.New()
			router.POST("/login", handler.Login)

			w := doJSON(router, http.MethodPost, "/login", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedToken == "" {
				return
			}
			var res struct {
				Token string `json:"token"`
				User  struct {
					ID   string `json:"id"`
					Role string `json:"role"`
				} `json:"user"`
			}
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
			assert.Equal(t, tt.expectedToken, res.Token)
			assert.Equal(t, "u1", res.User.ID)
			assert.Equal(t, "admin", res.User.Role)
			assert.NotContains(t, w.Body.String(), "password")
		})
	}
}

func TestAuthHandler_EmailExists(t *testing.T) {
	gin.SetMode(gin.TestMode)

	handler := NewAuthHandler(&mockAuthUsecase{
		EmailExistsFunc: func(ctx context.Context, email string) (bool, error) {
			return email == "ana@example.com", nil
		},
	})
	router := gin.New()
	router.GET("/email-exists", handler.EmailExists)

	w := doJSON(router, http.MethodGet, "/email-exists?email=ana@example.com", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"exists":true}`, w.Body.String())

	w = doJSON(router, http.MethodGet, "/email-exists?email=bob@example.com", nil)
	assert.JSONEq(t, `{"exists":false}`, w.Body.String())

	w = doJSON(router, http.MethodGet, "/email-exists", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
