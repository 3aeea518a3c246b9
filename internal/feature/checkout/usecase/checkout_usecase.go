// Package usecase turns a cart into a sale.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"gallery_backend/internal/domain"
	"gallery_backend/internal/domain/entity"
	cartusecase "gallery_backend/internal/feature/cart/usecase"
	"gallery_backend/internal/platform/ident"
)

// SaleRepository persists sales.
type SaleRepository interface {
	// Complete stores the sale, marks every product in its snapshot sold and
	// clears the buyer's cart as one atomic unit. On error none of it is applied.
	// A product that is already sold fails it with domain.ErrProductSold.
	Complete(ctx context.Context, sale *entity.Sale) error
	// ListByUser returns the user's sales, newest first.
	ListByUser(ctx context.Context, userID string) ([]entity.Sale, error)
}

// CartReader reads the live cart.
type CartReader interface {
	ListByUser(ctx context.Context, userID string) ([]entity.CartLine, error)
}

// CatalogInvalidator drops cached catalog listings after products change status.
type CatalogInvalidator interface {
	Invalidate(ctx context.Context) error
}

// CheckoutUsecase records sales.
type CheckoutUsecase struct {
	sales       SaleRepository
	cart        CartReader
	invalidator CatalogInvalidator
	ids         ident.Generator
	clock       ident.Clock
}

// NewCheckoutUsecase wires the processor. invalidator may be nil.
func NewCheckoutUsecase(sales SaleRepository, cart CartReader, invalidator CatalogInvalidator, ids ident.Generator, clock ident.Clock) *CheckoutUsecase {
	return &CheckoutUsecase{sales: sales, cart: cart, invalidator: invalidator, ids: ids, clock: clock}
}

// Checkout records a sale of items for userID with the caller-computed total.
// The total is not checked against product prices.
func (u *CheckoutUsecase) Checkout(ctx context.Context, userID string, total decimal.Decimal, items []entity.CartLine) (*entity.Sale, error) {
	if len(items) == 0 {
		return nil, domain.ErrEmptyCart
	}

	sale := &entity.Sale{
		ID:        u.ids.NewID(),
		UserID:    userID,
		Total:     total,
		Items:     append([]entity.CartLine(nil), items...),
		CreatedAt: u.clock.Now(),
	}
	if err := u.sales.Complete(ctx, sale); err != nil {
		if errors.Is(err, domain.ErrProductSold) {
			slog.Warn("checkout of sold product", "user_id", userID, "items", len(items))
		} else {
			slog.Error("checkout failed", "error", err, "user_id", userID, "items", len(items))
		}
		return nil, fmt.Errorf("checkout: %w", err)
	}

	if u.invalidator != nil {
		if err := u.invalidator.Invalidate(ctx); err != nil {
			slog.Warn("catalog cache invalidation failed", "error", err)
		}
	}
	slog.Info("checkout completed", "sale_id", sale.ID, "user_id", userID, "total", total.String())
	return sale, nil
}

// CheckoutCart reads the user's live cart, totals its prices and checks it out.
func (u *CheckoutUsecase) CheckoutCart(ctx context.Context, userID string) (*entity.Sale, error) {
	lines, err := u.cart.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, domain.ErrEmptyCart
	}
	total, err := cartusecase.LinesTotal(lines)
	if err != nil {
		return nil, err
	}
	return u.Checkout(ctx, userID, total, lines)
}

func (u *CheckoutUsecase) ListSales(ctx context.Context, userID string) ([]entity.Sale, error) {
	return u.sales.ListByUser(ctx, userID)
}
