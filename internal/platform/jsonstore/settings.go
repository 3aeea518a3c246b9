package jsonstore

import (
	"cmp"
	"context"
	"slices"

	"gallery_backend/internal/domain"
	"gallery_backend/internal/domain/entity"
	settingsusecase "gallery_backend/internal/feature/settings/usecase"
)

type settingJSON struct {
	s *Store
}

var _ settingsusecase.SettingRepository = (*settingJSON)(nil)

func NewSettingRepository(s *Store) *settingJSON {
	return &settingJSON{s: s}
}

func (r *settingJSON) Get(_ context.Context, key string) (string, error) {
	var v string
	err := r.s.view(func(d *entity.Dataset) error {
		i := indexOf(d.Settings, func(s entity.Setting) bool { return s.Key == key })
		if i < 0 {
			return domain.ErrSettingNotFound
		}
		v = d.Settings[i].Value
		return nil
	})
	return v, err
}

func (r *settingJSON) Set(ctx context.Context, key, value string) error {
	return r.s.update(ctx, func(d *entity.Dataset) error {
		if i := indexOf(d.Settings, func(s entity.Setting) bool { return s.Key == key }); i >= 0 {
			d.Settings[i].Value = value
			return nil
		}
		d.Settings = append(d.Settings, entity.Setting{Key: key, Value: value})
		return nil
	})
}

func (r *settingJSON) List(_ context.Context) ([]entity.Setting, error) {
	var out []entity.Setting
	err := r.s.view(func(d *entity.Dataset) error {
		out = slices.Clone(d.Settings)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []entity.Setting{}
	}
	slices.SortFunc(out, func(a, b entity.Setting) int { return cmp.Compare(a.Key, b.Key) })
	return out, nil
}
