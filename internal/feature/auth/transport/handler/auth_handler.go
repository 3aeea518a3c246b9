// Package handler provides the HTTP handlers of the auth feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"gallery_backend/internal/domain"
	"gallery_backend/internal/domain/entity"
	"gallery_backend/internal/feature/auth/transport/http/dto"
	"gallery_backend/internal/feature/auth/usecase"
	"gallery_backend/internal/platform/http/response"
)

// AuthUsecase is defined by the consumer, following the Go convention.
type AuthUsecase interface {
	Register(ctx context.Context, in usecase.RegisterInput) (*entity.User, error)
	Login(ctx context.Context, email, password string) (string, *entity.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

type AuthHandler struct {
	auth AuthUsecase
}

func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Signup registers a user: 201 on success, 400 on invalid input, 409 when the
// email is taken.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "signup", err)
		return
	}
	user, err := h.auth.Register(c.Request.Context(), usecase.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if errors.Is(err, domain.ErrEmailAlreadyExists) {
		slog.Warn("signup failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusConflict, response.ErrorResponse{Error: "signup failed"})
		return
	}
	if err != nil {
		response.Error(c, "signup", err)
		return
	}
	slog.Info("user signup successful", "user_id", user.ID, "role", user.Role, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.NewUserRes(user))
}

// Login answers 401 for any credential failure without revealing which part was wrong.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "login", err)
		return
	}
	token, user, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		slog.Warn("login failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "invalid email or password"})
		return
	}
	slog.Info("user login successful", "user_id", user.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.LoginRes{Token: token, User: dto.NewUserRes(user)})
}

func (h *AuthHandler) EmailExists(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "email is required"})
		return
	}
	exists, err := h.auth.EmailExists(c.Request.Context(), email)
	if err != nil {
		response.Error(c, "email exists", err)
		return
	}
	c.JSON(http.StatusOK, dto.EmailExistsRes{Exists: exists})
}
