package sqlstore

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gallery_backend/internal/domain/entity"
)

// Initialize creates the tables and seeds the default settings. Existing rows
// and existing setting values are left alone, so it is safe to call on every start.
func Initialize(ctx context.Context, db *gorm.DB) error {
	db = db.WithContext(ctx)
	if err := db.AutoMigrate(allModels()...); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}

	defaults := entity.DefaultSettings()
	rows := make([]settingModel, 0, len(defaults))
	for _, s := range defaults {
		rows = append(rows, settingModel{Key: s.Key, Value: s.Value})
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error; err != nil {
		return fmt.Errorf("seed settings: %w", err)
	}
	return nil
}
