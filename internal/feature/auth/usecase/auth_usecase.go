// Package usecase implements account registration and authentication.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"gallery_backend/internal/domain"
	"gallery_backend/internal/domain/entity"
	"gallery_backend/internal/platform/ident"
	"gallery_backend/internal/platform/validation"
)

// dummyHash is compared against when the email is unknown so both paths cost one bcrypt run.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// UserRepository persists users. Emails are stored normalized.
type UserRepository interface {
	// Create fails with domain.ErrEmailAlreadyExists when the email is taken.
	Create(ctx context.Context, user *entity.User) error
	// FindByEmail fails with domain.ErrUserNotFound when no user matches.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}

// TokenGenerator issues access tokens for authenticated users.
type TokenGenerator interface {
	GenerateToken(userID, email, role string) (string, error)
}

// AdminRule decides at registration whether an email gets the admin role.
type AdminRule struct {
	Emails []string
	Marker string
}

// IsAdmin reports whether the normalized email is listed or contains the marker.
func (r AdminRule) IsAdmin(email string) bool {
	email = NormalizeEmail(email)
	for _, e := range r.Emails {
		if NormalizeEmail(e) == email {
			return true
		}
	}
	marker := strings.ToLower(strings.TrimSpace(r.Marker))
	return marker != "" && strings.Contains(email, marker)
}

// NormalizeEmail trims and lowercases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// RegisterInput is the data collected by the sign-up form.
type RegisterInput struct {
	Name     string `validate:"required,max=120"`
	Email    string `validate:"required,email,max=255"`
	Phone    string `validate:"max=40"`
	Password string `validate:"required,max=72"`
}

// AuthUsecase registers and authenticates users.
type AuthUsecase struct {
	users  UserRepository
	tokens TokenGenerator
	ids    ident.Generator
	clock  ident.Clock
	admin  AdminRule
	cost   int
}

func NewAuthUsecase(users UserRepository, tokens TokenGenerator, ids ident.Generator, clock ident.Clock, admin AdminRule) *AuthUsecase {
	return &AuthUsecase{
		users:  users,
		tokens: tokens,
		ids:    ids,
		clock:  clock,
		admin:  admin,
		cost:   bcrypt.DefaultCost,
	}
}

// Register creates an account. The role is derived from the email once, here.
func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	in.Email = NormalizeEmail(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), u.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := entity.RoleUser
	if u.admin.IsAdmin(in.Email) {
		role = entity.RoleAdmin
	}
	user := &entity.User{
		ID:           u.ids.NewID(),
		Name:         in.Name,
		Email:        in.Email,
		Phone:        strings.TrimSpace(in.Phone),
		PasswordHash: string(hashed),
		Role:         role,
		CreatedAt:    u.clock.Now(),
	}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate returns the user whose email and password match, or nil when
// none does. A nil user is not an error.
func (u *AuthUsecase) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	user, err := u.users.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash := dummyHash
	if user != nil {
		hash = user.PasswordHash
	}
	compareErr := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if user == nil || compareErr != nil {
		return nil, nil
	}
	return user, nil
}

// Login authenticates and issues a token.
func (u *AuthUsecase) Login(ctx context.Context, email, password string) (string, *entity.User, error) {
	user, err := u.Authenticate(ctx, email, password)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := u.tokens.GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return token, user, nil
}

// EmailExists reports whether an account uses email.
func (u *AuthUsecase) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := u.users.FindByEmail(ctx, NormalizeEmail(email))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, domain.ErrUserNotFound):
		return false, nil
	default:
		return false, err
	}
}
