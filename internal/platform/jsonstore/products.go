package jsonstore

import (
	"context"
	"time"

	"gallery_backend/internal/domain"
	"gallery_backend/internal/domain/entity"
	cartusecase "gallery_backend/internal/feature/cart/usecase"
	catalogusecase "gallery_backend/internal/feature/catalog/usecase"
)

type productJSON struct {
	s *Store
}

var (
	_ catalogusecase.ProductRepository = (*productJSON)(nil)
	_ cartusecase.ProductFinder        = (*productJSON)(nil)
)

func NewProductRepository(s *Store) *productJSON {
	return &productJSON{s: s}
}

func (r *productJSON) Create(ctx context.Context, p *entity.Product) error {
	return r.s.update(ctx, func(d *entity.Dataset) error {
		d.Products = append(d.Products, *p)
		return nil
	})
}

func (r *productJSON) Update(ctx context.Context, id string, details entity.ProductDetails) error {
	return r.s.update(ctx, func(d *entity.Dataset) error {
		i := indexOf(d.Products, func(p entity.Product) bool { return p.ID == id })
		if i < 0 {
			return domain.ErrProductNotFound
		}
		d.Products[i].ProductDetails = details
		return nil
	})
}

// Delete removes the product with its cart items and view events.
func (r *productJSON) Delete(ctx context.Context, id string) error {
	return r.s.update(ctx, func(d *entity.Dataset) error {
		var removed int
		d.Products, removed = removeIf(d.Products, func(p entity.Product) bool { return p.ID == id })
		if removed == 0 {
			return domain.ErrProductNotFound
		}
		d.Cart, _ = removeIf(d.Cart, func(c entity.CartItem) bool { return c.ProductID == id })
		d.Analytics, _ = removeIf(d.Analytics, func(v entity.ProductView) bool { return v.ProductID == id })
		return nil
	})
}

func (r *productJSON) FindByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.s.view(func(d *entity.Dataset) error {
		i := indexOf(d.Products, func(p entity.Product) bool { return p.ID == id })
		if i < 0 {
			return domain.ErrProductNotFound
		}
		p := d.Products[i]
		out = &p
		return nil
	})
	return out, err
}

func (r *productJSON) ListAvailable(_ context.Context) ([]entity.Product, error) {
	out := []entity.Product{}
	err := r.s.view(func(d *entity.Dataset) error {
		for _, p := range d.Products {
			if p.IsAvailable() {
				out = append(out, p)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sortBy(out, func(p entity.Product) (time.Time, string) { return p.CreatedAt, p.ID }, newestFirst)
	return out, nil
}
