// Package usecase implements the made-to-order workflow:
// pending -> quoted -> refused | paid.
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"gallery_backend/internal/domain"
	"gallery_backend/internal/domain/entity"
	"gallery_backend/internal/platform/ident"
	"gallery_backend/internal/platform/validation"
)

// Repository persists custom orders. State changes are compare-and-set on the
// current status so a stale caller cannot overwrite a newer state.
type Repository interface {
	Create(ctx context.Context, o *entity.CustomOrder) error
	// FindByID fails with domain.ErrCustomOrderNotFound.
	FindByID(ctx context.Context, id string) (*entity.CustomOrder, error)
	// ListPending returns pending orders with requester name and email, newest first.
	ListPending(ctx context.Context) ([]entity.PendingCustomOrder, error)
	// ListByUser returns every order of userID, newest first.
	ListByUser(ctx context.Context, userID string) ([]entity.CustomOrder, error)
	// Quote sets price and fee and moves pending to quoted. Fails with
	// domain.ErrInvalidTransition when the order is not pending.
	Quote(ctx context.Context, id string, price, fee decimal.Decimal) error
	// Transition moves the order from one status to another. Fails with
	// domain.ErrInvalidTransition when the current status is not from.
	Transition(ctx context.Context, id string, from, to entity.CustomOrderStatus) error
}

// CreateInput is the customer's request.
type CreateInput struct {
	ImageRef    string  `validate:"max=2048"`
	Width       float64 `validate:"gt=0"`
	Height      float64 `validate:"gt=0"`
	Description string  `validate:"required,max=2000"`
	Address     string  `validate:"required,max=500"`
}

// CustomOrderUsecase drives the workflow.
type CustomOrderUsecase struct {
	orders Repository
	ids    ident.Generator
	clock  ident.Clock
}

func NewCustomOrderUsecase(orders Repository, ids ident.Generator, clock ident.Clock) *CustomOrderUsecase {
	return &CustomOrderUsecase{orders: orders, ids: ids, clock: clock}
}

// Create files a pending request and returns its id.
func (u *CustomOrderUsecase) Create(ctx context.Context, userID string, in CreateInput) (string, error) {
	in.Description = strings.TrimSpace(in.Description)
	in.Address = strings.TrimSpace(in.Address)
	in.ImageRef = strings.TrimSpace(in.ImageRef)
	if err := validation.Struct(in); err != nil {
		return "", err
	}

	o := &entity.CustomOrder{
		ID:          u.ids.NewID(),
		UserID:      userID,
		ImageRef:    in.ImageRef,
		Width:       in.Width,
		Height:      in.Height,
		Description: in.Description,
		Address:     in.Address,
		Status:      entity.CustomOrderPending,
		CreatedAt:   u.clock.Now(),
	}
	if err := u.orders.Create(ctx, o); err != nil {
		return "", fmt.Errorf("create custom order: %w", err)
	}
	return o.ID, nil
}

func (u *CustomOrderUsecase) ListPending(ctx context.Context) ([]entity.PendingCustomOrder, error) {
	return u.orders.ListPending(ctx)
}

func (u *CustomOrderUsecase) ListForUser(ctx context.Context, userID string) ([]entity.CustomOrder, error) {
	return u.orders.ListByUser(ctx, userID)
}

func (u *CustomOrderUsecase) Get(ctx context.Context, id string) (*entity.CustomOrder, error) {
	return u.orders.FindByID(ctx, id)
}

// Quote attaches the admin's price and delivery fee. Only pending orders can be quoted.
func (u *CustomOrderUsecase) Quote(ctx context.Context, id string, price, fee decimal.Decimal) error {
	if !price.IsPositive() || fee.IsNegative() {
		return fmt.Errorf("%w: price must be positive and fee not negative", domain.ErrValidation)
	}
	if err := u.orders.Quote(ctx, id, price, fee); err != nil {
		return err
	}
	slog.Info("custom order quoted", "order_id", id, "price", price.String(), "fee", fee.String())
	return nil
}

// SetStatus applies quoted -> refused or quoted -> paid. Every other change,
// including anything out of a terminal state, fails with domain.ErrInvalidTransition.
func (u *CustomOrderUsecase) SetStatus(ctx context.Context, id string, next entity.CustomOrderStatus) error {
	if next != entity.CustomOrderRefused && next != entity.CustomOrderPaid {
		return fmt.Errorf("%w: %q cannot be set directly", domain.ErrInvalidTransition, next)
	}
	o, err := u.orders.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !o.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, o.Status, next)
	}
	if err := u.orders.Transition(ctx, id, o.Status, next); err != nil {
		return err
	}
	slog.Info("custom order status changed", "order_id", id, "from", o.Status, "to", next)
	return nil
}

// Refuse declines the quote on behalf of the owning customer.
func (u *CustomOrderUsecase) Refuse(ctx context.Context, userID, id string) error {
	if _, err := u.owned(ctx, userID, id); err != nil {
		return err
	}
	return u.SetStatus(ctx, id, entity.CustomOrderRefused)
}

// Pay confirms the simulated payment of price plus fee and returns the amount.
func (u *CustomOrderUsecase) Pay(ctx context.Context, userID, id string) (decimal.Decimal, error) {
	o, err := u.owned(ctx, userID, id)
	if err != nil {
		return decimal.Zero, err
	}
	total, ok := o.PayableTotal()
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: order has no quote", domain.ErrInvalidTransition)
	}
	if err := u.SetStatus(ctx, id, entity.CustomOrderPaid); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// owned hides other users' orders behind not-found.
func (u *CustomOrderUsecase) owned(ctx context.Context, userID, id string) (*entity.CustomOrder, error) {
	o, err := u.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, domain.ErrCustomOrderNotFound
	}
	return o, nil
}
