package sqlstore

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gallery_backend/internal/domain"
	"gallery_backend/internal/domain/entity"
	settingsusecase "gallery_backend/internal/feature/settings/usecase"
)

type settingSQL struct {
	db *gorm.DB
}

var _ settingsusecase.SettingRepository = (*settingSQL)(nil)

func NewSettingRepository(db *gorm.DB) *settingSQL {
	return &settingSQL{db: db}
}

func (r *settingSQL) Get(ctx context.Context, key string) (string, error) {
	var m settingModel
	if err := r.db.WithContext(ctx).Where("key = ?", key).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrSettingNotFound
		}
		return "", err
	}
	return m.Value, nil
}

// Set upserts the value.
func (r *settingSQL) Set(ctx context.Context, key, value string) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&settingModel{Key: key, Value: value}).Error
}

func (r *settingSQL) List(ctx context.Context) ([]entity.Setting, error) {
	var rows []settingModel
	if err := r.db.WithContext(ctx).Order("key ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Setting, 0, len(rows))
	for _, m := range rows {
		out = append(out, entity.Setting{Key: m.Key, Value: m.Value})
	}
	return out, nil
}
