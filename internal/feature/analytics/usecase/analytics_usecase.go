// Package usecase aggregates product-view events for the admin dashboard.
package usecase

import (
	"context"

	"gallery_backend/internal/domain/entity"
)

// PopularLimit is how many products the dashboard ranks.
const PopularLimit = 5

// StatsRepository computes dashboard aggregates.
type StatsRepository interface {
	Stats(ctx context.Context, popularLimit int) (*entity.DashboardStats, error)
}

type AnalyticsUsecase struct {
	stats StatsRepository
}

func NewAnalyticsUsecase(stats StatsRepository) *AnalyticsUsecase {
	return &AnalyticsUsecase{stats: stats}
}

// Dashboard returns totals and the most viewed products.
func (u *AnalyticsUsecase) Dashboard(ctx context.Context) (*entity.DashboardStats, error) {
	s, err := u.stats.Stats(ctx, PopularLimit)
	if err != nil {
		return nil, err
	}
	if s.PopularProducts == nil {
		s.PopularProducts = []entity.PopularProduct{}
	}
	return s, nil
}
