package jsonstore

import (
	"context"
	"slices"
	"time"

	"gallery_backend/internal/domain"
	"gallery_backend/internal/domain/entity"
	checkoutusecase "gallery_backend/internal/feature/checkout/usecase"
)

type saleJSON struct {
	s *Store
}

var _ checkoutusecase.SaleRepository = (*saleJSON)(nil)

func NewSaleRepository(s *Store) *saleJSON {
	return &saleJSON{s: s}
}

// Complete records the sale, marks its products sold and clears the buyer's
// cart. All three land in the same save. A listed product that is already
// sold fails the whole update with domain.ErrProductSold.
func (r *saleJSON) Complete(ctx context.Context, sale *entity.Sale) error {
	return r.s.update(ctx, func(d *entity.Dataset) error {
		sold := sale.ProductIDs()
		for _, p := range d.Products {
			if p.Status == entity.ProductSold && slices.Contains(sold, p.ID) {
				return domain.ErrProductSold
			}
		}

		stored := *sale
		stored.Items = slices.Clone(sale.Items)
		if stored.Items == nil {
			stored.Items = []entity.CartLine{}
		}
		d.Sales = append(d.Sales, stored)

		for i := range d.Products {
			if slices.Contains(sold, d.Products[i].ID) {
				d.Products[i].Status = entity.ProductSold
			}
		}
		d.Cart, _ = removeIf(d.Cart, func(c entity.CartItem) bool { return c.UserID == sale.UserID })
		return nil
	})
}

func (r *saleJSON) ListByUser(_ context.Context, userID string) ([]entity.Sale, error) {
	out := []entity.Sale{}
	err := r.s.view(func(d *entity.Dataset) error {
		for _, s := range d.Sales {
			if s.UserID == userID {
				out = append(out, s.Clone())
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sortBy(out, func(s entity.Sale) (time.Time, string) { return s.CreatedAt, s.ID }, newestFirst)
	return out, nil
}
