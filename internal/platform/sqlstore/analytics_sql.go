package sqlstore

import (
	"context"

	"gorm.io/gorm"

	"gallery_backend/internal/domain/entity"
	analyticsusecase "gallery_backend/internal/feature/analytics/usecase"
	catalogusecase "gallery_backend/internal/feature/catalog/usecase"
)

type analyticsSQL struct {
	db *gorm.DB
}

var (
	_ catalogusecase.ViewRecorder       = (*analyticsSQL)(nil)
	_ analyticsusecase.StatsRepository = (*analyticsSQL)(nil)
)

func NewAnalyticsRepository(db *gorm.DB) *analyticsSQL {
	return &analyticsSQL{db: db}
}

func (r *analyticsSQL) RecordView(ctx context.Context, v *entity.ProductView) error {
	m := productViewFromEntity(v)
	return r.db.WithContext(ctx).Create(&m).Error
}

// Stats counts events, products and users and ranks products by views.
func (r *analyticsSQL) Stats(ctx context.Context, popularLimit int) (*entity.DashboardStats, error) {
	db := r.db.WithContext(ctx)
	var s entity.DashboardStats

	if err := db.Model(&productViewModel{}).Count(&s.TotalViews).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&productModel{}).Count(&s.TotalProducts).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&userModel{}).Count(&s.TotalUsers).Error; err != nil {
		return nil, err
	}

	s.PopularProducts = []entity.PopularProduct{}
	err := db.Table("analytics_events AS a").
		Select("p.id AS product_id, p.title AS title, COUNT(a.id) AS view_count").
		Joins("JOIN products AS p ON p.id = a.product_id").
		Group("p.id, p.title").
		Order("view_count DESC").Order("p.id ASC").
		Limit(popularLimit).
		Scan(&s.PopularProducts).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}
