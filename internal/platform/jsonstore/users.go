package jsonstore

import (
	"context"

	"gallery_backend/internal/domain"
	"gallery_backend/internal/domain/entity"
	authusecase "gallery_backend/internal/feature/auth/usecase"
)

type userJSON struct {
	s *Store
}

var _ authusecase.UserRepository = (*userJSON)(nil)

func NewUserRepository(s *Store) *userJSON {
	return &userJSON{s: s}
}

func (r *userJSON) Create(ctx context.Context, u *entity.User) error {
	return r.s.update(ctx, func(d *entity.Dataset) error {
		if indexOf(d.Users, func(x entity.User) bool { return x.Email == u.Email }) >= 0 {
			return domain.ErrEmailAlreadyExists
		}
		d.Users = append(d.Users, *u)
		return nil
	})
}

func (r *userJSON) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	var out *entity.User
	err := r.s.view(func(d *entity.Dataset) error {
		i := indexOf(d.Users, func(x entity.User) bool { return x.Email == email })
		if i < 0 {
			return domain.ErrUserNotFound
		}
		u := d.Users[i]
		out = &u
		return nil
	})
	return out, err
}
