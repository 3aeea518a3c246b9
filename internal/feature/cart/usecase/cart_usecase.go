// Package usecase implements per-user cart reservations.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"gallery_backend/internal/domain"
	"gallery_backend/internal/domain/entity"
	"gallery_backend/internal/domain/money"
	"gallery_backend/internal/platform/ident"
)

// CartRepository persists cart items.
type CartRepository interface {
	// Add fails with domain.ErrAlreadyInCart when (user, product) is already reserved.
	Add(ctx context.Context, item *entity.CartItem) error
	Exists(ctx context.Context, userID, productID string) (bool, error)
	// Remove deletes the item only if it belongs to userID. Fails with domain.ErrCartItemNotFound.
	Remove(ctx context.Context, userID, cartItemID string) error
	// ListByUser joins the user's items with their products.
	ListByUser(ctx context.Context, userID string) ([]entity.CartLine, error)
	ClearByUser(ctx context.Context, userID string) error
}

// ProductFinder looks up products.
type ProductFinder interface {
	FindByID(ctx context.Context, id string) (*entity.Product, error)
}

// CartUsecase manages reservations.
type CartUsecase struct {
	items    CartRepository
	products ProductFinder
	ids      ident.Generator
	clock    ident.Clock
}

func NewCartUsecase(items CartRepository, products ProductFinder, ids ident.Generator, clock ident.Clock) *CartUsecase {
	return &CartUsecase{items: items, products: products, ids: ids, clock: clock}
}

// Add reserves productID for userID. It returns false without mutation when the
// product is missing or sold, or when the user already holds it. Reservations
// do not block other users; the first checkout wins.
func (u *CartUsecase) Add(ctx context.Context, userID, productID string) (bool, error) {
	p, err := u.products.FindByID(ctx, productID)
	if errors.Is(err, domain.ErrProductNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if !p.IsAvailable() {
		return false, nil
	}

	exists, err := u.items.Exists(ctx, userID, productID)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	err = u.items.Add(ctx, &entity.CartItem{
		ID:        u.ids.NewID(),
		UserID:    userID,
		ProductID: productID,
		Quantity:  1,
		CreatedAt: u.clock.Now(),
	})
	if errors.Is(err, domain.ErrAlreadyInCart) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (u *CartUsecase) Remove(ctx context.Context, userID, cartItemID string) error {
	return u.items.Remove(ctx, userID, cartItemID)
}

func (u *CartUsecase) List(ctx context.Context, userID string) ([]entity.CartLine, error) {
	return u.items.ListByUser(ctx, userID)
}

func (u *CartUsecase) Clear(ctx context.Context, userID string) error {
	return u.items.ClearByUser(ctx, userID)
}

// Total sums the display prices of the user's cart.
func (u *CartUsecase) Total(ctx context.Context, userID string) (decimal.Decimal, error) {
	lines, err := u.items.ListByUser(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	return LinesTotal(lines)
}

// LinesTotal parses every line price and sums price times quantity.
func LinesTotal(lines []entity.CartLine) (decimal.Decimal, error) {
	prices := make([]string, len(lines))
	qty := make([]int, len(lines))
	for i, l := range lines {
		prices[i], qty[i] = l.Price, l.Quantity
	}
	total, err := money.Sum(prices, qty)
	if err != nil {
		slog.Warn("cart contains an unparsable price", "error", err)
		return decimal.Zero, fmt.Errorf("cart total: %w", err)
	}
	return total, nil
}
