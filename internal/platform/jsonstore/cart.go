package jsonstore

import (
	"context"
	"time"

	"gallery_backend/internal/domain"
	"gallery_backend/internal/domain/entity"
	cartusecase "gallery_backend/internal/feature/cart/usecase"
	checkoutusecase "gallery_backend/internal/feature/checkout/usecase"
)

type cartJSON struct {
	s *Store
}

var (
	_ cartusecase.CartRepository = (*cartJSON)(nil)
	_ checkoutusecase.CartReader = (*cartJSON)(nil)
)

func NewCartRepository(s *Store) *cartJSON {
	return &cartJSON{s: s}
}

func (r *cartJSON) Add(ctx context.Context, item *entity.CartItem) error {
	return r.s.update(ctx, func(d *entity.Dataset) error {
		if holds(d, item.UserID, item.ProductID) {
			return domain.ErrAlreadyInCart
		}
		d.Cart = append(d.Cart, *item)
		return nil
	})
}

func (r *cartJSON) Exists(_ context.Context, userID, productID string) (bool, error) {
	var ok bool
	err := r.s.view(func(d *entity.Dataset) error {
		ok = holds(d, userID, productID)
		return nil
	})
	return ok, err
}

func holds(d *entity.Dataset, userID, productID string) bool {
	return indexOf(d.Cart, func(c entity.CartItem) bool {
		return c.UserID == userID && c.ProductID == productID
	}) >= 0
}

func (r *cartJSON) Remove(ctx context.Context, userID, cartItemID string) error {
	return r.s.update(ctx, func(d *entity.Dataset) error {
		var removed int
		d.Cart, removed = removeIf(d.Cart, func(c entity.CartItem) bool {
			return c.ID == cartItemID && c.UserID == userID
		})
		if removed == 0 {
			return domain.ErrCartItemNotFound
		}
		return nil
	})
}

// ListByUser joins the user's items with their products, oldest first. Items
// whose product no longer exists are skipped.
func (r *cartJSON) ListByUser(_ context.Context, userID string) ([]entity.CartLine, error) {
	var items []entity.CartItem
	out := []entity.CartLine{}
	err := r.s.view(func(d *entity.Dataset) error {
		for _, c := range d.Cart {
			if c.UserID == userID {
				items = append(items, c)
			}
		}
		sortBy(items, func(c entity.CartItem) (time.Time, string) { return c.CreatedAt, c.ID }, oldestFirst)

		for _, c := range items {
			i := indexOf(d.Products, func(p entity.Product) bool { return p.ID == c.ProductID })
			if i < 0 {
				continue
			}
			p := d.Products[i]
			out = append(out, entity.CartLine{
				CartItemID: c.ID,
				ProductID:  p.ID,
				Title:      p.Title,
				Price:      p.Price,
				ImageRef:   p.ImageRef,
				Quantity:   c.Quantity,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *cartJSON) ClearByUser(ctx context.Context, userID string) error {
	return r.s.update(ctx, func(d *entity.Dataset) error {
		d.Cart, _ = removeIf(d.Cart, func(c entity.CartItem) bool { return c.UserID == userID })
		return nil
	})
}
