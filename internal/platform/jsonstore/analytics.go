package jsonstore

import (
	"cmp"
	"context"
	"slices"

	"gallery_backend/internal/domain/entity"
	analyticsusecase "gallery_backend/internal/feature/analytics/usecase"
	catalogusecase "gallery_backend/internal/feature/catalog/usecase"
)

type analyticsJSON struct {
	s *Store
}

var (
	_ catalogusecase.ViewRecorder       = (*analyticsJSON)(nil)
	_ analyticsusecase.StatsRepository = (*analyticsJSON)(nil)
)

func NewAnalyticsRepository(s *Store) *analyticsJSON {
	return &analyticsJSON{s: s}
}

func (r *analyticsJSON) RecordView(ctx context.Context, v *entity.ProductView) error {
	return r.s.update(ctx, func(d *entity.Dataset) error {
		d.Analytics = append(d.Analytics, *v)
		return nil
	})
}

// Stats ranks products by views, ties broken by product id. Events that point
// at a missing product count toward the total but not the ranking.
func (r *analyticsJSON) Stats(_ context.Context, popularLimit int) (*entity.DashboardStats, error) {
	var out entity.DashboardStats
	err := r.s.view(func(d *entity.Dataset) error {
		out.TotalViews = int64(len(d.Analytics))
		out.TotalProducts = int64(len(d.Products))
		out.TotalUsers = int64(len(d.Users))

		counts := make(map[string]int64)
		for _, v := range d.Analytics {
			counts[v.ProductID]++
		}
		popular := []entity.PopularProduct{}
		for _, p := range d.Products {
			if n := counts[p.ID]; n > 0 {
				popular = append(popular, entity.PopularProduct{ProductID: p.ID, Title: p.Title, ViewCount: n})
			}
		}
		slices.SortFunc(popular, func(a, b entity.PopularProduct) int {
			if c := cmp.Compare(b.ViewCount, a.ViewCount); c != 0 {
				return c
			}
			return cmp.Compare(a.ProductID, b.ProductID)
		})
		if popularLimit >= 0 && len(popular) > popularLimit {
			popular = popular[:popularLimit]
		}
		out.PopularProducts = popular
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
