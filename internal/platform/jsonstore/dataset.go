package jsonstore

import (
	"cmp"
	"context"
	"slices"
	"time"

	"gallery_backend/internal/domain/entity"
	backupusecase "gallery_backend/internal/feature/backup/usecase"
)

type datasetJSON struct {
	s *Store
}

var _ backupusecase.DatasetRepository = (*datasetJSON)(nil)

func NewDatasetRepository(s *Store) *datasetJSON {
	return &datasetJSON{s: s}
}

// Export returns a copy of the document with every collection ordered the
// same way the SQL backend exports it.
func (r *datasetJSON) Export(_ context.Context) (*entity.Dataset, error) {
	var out entity.Dataset
	err := r.s.view(func(d *entity.Dataset) error {
		out = d.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	sortBy(out.Users, func(u entity.User) (time.Time, string) { return u.CreatedAt, u.ID }, oldestFirst)
	sortBy(out.Products, func(p entity.Product) (time.Time, string) { return p.CreatedAt, p.ID }, oldestFirst)
	sortBy(out.Cart, func(c entity.CartItem) (time.Time, string) { return c.CreatedAt, c.ID }, oldestFirst)
	sortBy(out.Analytics, func(v entity.ProductView) (time.Time, string) { return v.CreatedAt, v.ID }, oldestFirst)
	sortBy(out.Sales, func(s entity.Sale) (time.Time, string) { return s.CreatedAt, s.ID }, oldestFirst)
	sortBy(out.CustomOrders, func(o entity.CustomOrder) (time.Time, string) { return o.CreatedAt, o.ID }, oldestFirst)
	slices.SortFunc(out.Settings, func(a, b entity.Setting) int { return cmp.Compare(a.Key, b.Key) })
	return &out, nil
}

// Replace swaps the whole document. The previous one stays live if the save fails.
func (r *datasetJSON) Replace(ctx context.Context, next *entity.Dataset) error {
	return r.s.update(ctx, func(d *entity.Dataset) error {
		*d = next.Clone()
		return nil
	})
}
