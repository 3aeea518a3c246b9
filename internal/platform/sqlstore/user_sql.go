package sqlstore

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"gallery_backend/internal/domain"
	"gallery_backend/internal/domain/entity"
	authusecase "gallery_backend/internal/feature/auth/usecase"
)

type userSQL struct {
	db *gorm.DB
}

var _ authusecase.UserRepository = (*userSQL)(nil)

func NewUserRepository(db *gorm.DB) *userSQL {
	return &userSQL{db: db}
}

// Create fails with domain.ErrEmailAlreadyExists when the email is taken. Any
// other key collision, such as a reused id, is returned as is.
func (r *userSQL) Create(ctx context.Context, u *entity.User) error {
	m := userFromEntity(u)
	err := r.db.WithContext(ctx).Create(&m).Error
	if err == nil {
		return nil
	}
	if isUniqueViolation(err) {
		// translated errors no longer name the constraint
		var n int64
		if cerr := r.db.WithContext(ctx).Model(&userModel{}).Where("email = ?", m.Email).Count(&n).Error; cerr == nil && n > 0 {
			return domain.ErrEmailAlreadyExists
		}
	}
	return fmt.Errorf("create user %s: %w", m.ID, err)
}

func (r *userSQL) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var m userModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	u := m.toEntity()
	return &u, nil
}
