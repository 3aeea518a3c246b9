package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"gallery_backend/internal/domain"
	"gallery_backend/internal/domain/entity"
	"gallery_backend/internal/platform/ident"
)

// mockUserRepository keeps users in a map keyed by email.
type mockUserRepository struct {
	users           map[string]*entity.User
	FindByEmailFunc func(ctx context.Context, email string) (*entity.User, error)
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: map[string]*entity.User{}}
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	if _, ok := m.users[user.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}
	cp := *user
	m.users[user.Email] = &cp
	return nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	u, ok := m.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

// mockTokenGenerator records the claims it was asked to sign.
type mockTokenGenerator struct {
	GenerateTokenFunc func(userID, email, role string) (string, error)
}

func (m *mockTokenGenerator) GenerateToken(userID, email, role string) (string, error) {
	if m.GenerateTokenFunc != nil {
		return m.GenerateTokenFunc(userID, email, role)
	}
	return "mock-jwt-token", nil
}

func newTestUsecase(repo UserRepository, tokens TokenGenerator) *AuthUsecase {
	uc := NewAuthUsecase(repo, tokens, ident.NewSequenceGenerator("user"),
		ident.NewStepClock(time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC), time.Second),
		AdminRule{Emails: []string{"admin@projetoquadros.com"}, Marker: "admin"})
	uc.cost = bcrypt.MinCost
	return uc
}

func TestAuthUsecase_Register(t *testing.T) {
	t.Run("stores normalized email and bcrypt digest", func(t *testing.T) {
		repo := newMockUserRepository()
		uc := newTestUsecase(repo, &mockTokenGenerator{})

		user, err := uc.Register(context.Background(), RegisterInput{
			Name: " Ana ", Email: "  Ana@Example.COM ", Phone: "11 99999-0000", Password: "secret123!",
		})
		require.NoError(t, err)

		assert.Equal(t, "user-0001", user.ID)
		assert.Equal(t, "Ana", user.Name)
		assert.Equal(t, "ana@example.com", user.Email)
		assert.Equal(t, entity.RoleUser, user.Role)
		assert.NotEqual(t, "secret123!", user.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret123!")))
		assert.Contains(t, repo.users, "ana@example.com")
	})

	t.Run("duplicate email after normalization", func(t *testing.T) {
		repo := newMockUserRepository()
		uc := newTestUsecase(repo, &mockTokenGenerator{})

		_, err := uc.Register(context.Background(), RegisterInput{Name: "A", Email: "a@x.com", Password: "pw"})
		require.NoError(t, err)

		_, err = uc.Register(context.Background(), RegisterInput{Name: "B", Email: "A@X.com", Password: "pw2"})
		assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	})

	t.Run("invalid input is rejected before hashing", func(t *testing.T) {
		repo := newMockUserRepository()
		uc := newTestUsecase(repo, &mockTokenGenerator{})

		_, err := uc.Register(context.Background(), RegisterInput{Name: "", Email: "not-an-email", Password: ""})
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Empty(t, repo.users)
	})
}

func TestAuthUsecase_Register_Role(t *testing.T) {
	tests := []struct {
		email string
		want  entity.Role
	}{
		{"admin@projetoquadros.com", entity.RoleAdmin},
		{"ADMIN@projetoquadros.com", entity.RoleAdmin},
		{"gallery.admin@x.com", entity.RoleAdmin},
		{"customer@x.com", entity.RoleUser},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			uc := newTestUsecase(newMockUserRepository(), &mockTokenGenerator{})

			user, err := uc.Register(context.Background(), RegisterInput{Name: "n", Email: tt.email, Password: "pw"})
			require.NoError(t, err)
			assert.Equal(t, tt.want, user.Role)
		})
	}
}

func TestAdminRule_IsAdmin(t *testing.T) {
	t.Parallel()

	exact := AdminRule{Emails: []string{"boss@shop.com"}}
	assert.True(t, exact.IsAdmin(" Boss@Shop.com"))
	assert.False(t, exact.IsAdmin("admin@shop.com"), "no marker configured")

	marker := AdminRule{Marker: "Admin"}
	assert.True(t, marker.IsAdmin("site-admin@shop.com"))
	assert.False(t, marker.IsAdmin("user@shop.com"))
}

func TestAuthUsecase_Authenticate(t *testing.T) {
	repo := newMockUserRepository()
	uc := newTestUsecase(repo, &mockTokenGenerator{})
	registered, err := uc.Register(context.Background(), RegisterInput{Name: "A", Email: "a@x.com", Password: "secret123!"})
	require.NoError(t, err)

	t.Run("matching credentials", func(t *testing.T) {
		user, err := uc.Authenticate(context.Background(), "A@x.com", "secret123!")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, registered.ID, user.ID)
	})

	t.Run("wrong password returns nil", func(t *testing.T) {
		user, err := uc.Authenticate(context.Background(), "a@x.com", "wrong")
		assert.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("unknown email returns nil", func(t *testing.T) {
		user, err := uc.Authenticate(context.Background(), "nobody@x.com", "secret123!")
		assert.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("backend failure propagates", func(t *testing.T) {
		failing := &mockUserRepository{FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
			return nil, errors.New("disk I/O error")
		}}
		uc := newTestUsecase(failing, &mockTokenGenerator{})

		user, err := uc.Authenticate(context.Background(), "a@x.com", "secret123!")
		assert.EqualError(t, err, "disk I/O error")
		assert.Nil(t, user)
	})
}

func TestAuthUsecase_Login(t *testing.T) {
	repo := newMockUserRepository()
	var gotClaims []string
	tokens := &mockTokenGenerator{GenerateTokenFunc: func(userID, email, role string) (string, error) {
		gotClaims = []string{userID, email, role}
		return "signed", nil
	}}
	uc := newTestUsecase(repo, tokens)
	_, err := uc.Register(context.Background(), RegisterInput{Name: "Root", Email: "admin@projetoquadros.com", Password: "pw"})
	require.NoError(t, err)

	token, user, err := uc.Login(context.Background(), "admin@projetoquadros.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "signed", token)
	assert.Equal(t, []string{user.ID, "admin@projetoquadros.com", "admin"}, gotClaims)

	_, _, err = uc.Login(context.Background(), "admin@projetoquadros.com", "nope")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	failingTokens := &mockTokenGenerator{GenerateTokenFunc: func(string, string, string) (string, error) {
		return "", errors.New("no key")
	}}
	uc.tokens = failingTokens
	_, _, err = uc.Login(context.Background(), "admin@projetoquadros.com", "pw")
	assert.ErrorContains(t, err, "failed to generate token")
}

func TestAuthUsecase_EmailExists(t *testing.T) {
	repo := newMockUserRepository()
	uc := newTestUsecase(repo, &mockTokenGenerator{})
	_, err := uc.Register(context.Background(), RegisterInput{Name: "A", Email: "a@x.com", Password: "pw"})
	require.NoError(t, err)

	ok, err := uc.EmailExists(context.Background(), " A@X.COM ")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = uc.EmailExists(context.Background(), "b@x.com")
	require.NoError(t, err)
	assert.False(t, ok)

	repo.FindByEmailFunc = func(ctx context.Context, email string) (*entity.User, error) {
		return nil, errors.New("boom")
	}
	_, err = uc.EmailExists(context.Background(), "a@x.com")
	assert.Error(t, err)
}
