package jsonstore

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"gallery_backend/internal/domain"
	"gallery_backend/internal/domain/entity"
	customorderusecase "gallery_backend/internal/feature/customorder/usecase"
)

type customOrderJSON struct {
	s *Store
}

var _ customorderusecase.Repository = (*customOrderJSON)(nil)

func NewCustomOrderRepository(s *Store) *customOrderJSON {
	return &customOrderJSON{s: s}
}

func (r *customOrderJSON) Create(ctx context.Context, o *entity.CustomOrder) error {
	return r.s.update(ctx, func(d *entity.Dataset) error {
		d.CustomOrders = append(d.CustomOrders, o.Clone())
		return nil
	})
}

func (r *customOrderJSON) FindByID(_ context.Context, id string) (*entity.CustomOrder, error) {
	var out *entity.CustomOrder
	err := r.s.view(func(d *entity.Dataset) error {
		i := indexOf(d.CustomOrders, func(o entity.CustomOrder) bool { return o.ID == id })
		if i < 0 {
			return domain.ErrCustomOrderNotFound
		}
		o := d.CustomOrders[i].Clone()
		out = &o
		return nil
	})
	return out, err
}

func (r *customOrderJSON) ListPending(_ context.Context) ([]entity.PendingCustomOrder, error) {
	out := []entity.PendingCustomOrder{}
	err := r.s.view(func(d *entity.Dataset) error {
		for _, o := range d.CustomOrders {
			if o.Status != entity.CustomOrderPending {
				continue
			}
			row := entity.PendingCustomOrder{CustomOrder: o.Clone()}
			if i := indexOf(d.Users, func(u entity.User) bool { return u.ID == o.UserID }); i >= 0 {
				row.RequesterName = d.Users[i].Name
				row.RequesterEmail = d.Users[i].Email
			}
			out = append(out, row)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sortBy(out, func(p entity.PendingCustomOrder) (time.Time, string) { return p.CreatedAt, p.ID }, newestFirst)
	return out, nil
}

func (r *customOrderJSON) ListByUser(_ context.Context, userID string) ([]entity.CustomOrder, error) {
	out := []entity.CustomOrder{}
	err := r.s.view(func(d *entity.Dataset) error {
		for _, o := range d.CustomOrders {
			if o.UserID == userID {
				out = append(out, o.Clone())
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sortBy(out, func(o entity.CustomOrder) (time.Time, string) { return o.CreatedAt, o.ID }, newestFirst)
	return out, nil
}

func (r *customOrderJSON) Quote(ctx context.Context, id string, price, fee decimal.Decimal) error {
	return r.compareAndSet(ctx, id, entity.CustomOrderPending, func(o *entity.CustomOrder) {
		o.Status = entity.CustomOrderQuoted
		o.Price = &price
		o.DeliveryFee = &fee
	})
}

func (r *customOrderJSON) Transition(ctx context.Context, id string, from, to entity.CustomOrderStatus) error {
	return r.compareAndSet(ctx, id, from, func(o *entity.CustomOrder) {
		o.Status = to
	})
}

func (r *customOrderJSON) compareAndSet(ctx context.Context, id string, from entity.CustomOrderStatus, apply func(*entity.CustomOrder)) error {
	return r.s.update(ctx, func(d *entity.Dataset) error {
		i := indexOf(d.CustomOrders, func(o entity.CustomOrder) bool { return o.ID == id })
		if i < 0 {
			return domain.ErrCustomOrderNotFound
		}
		if d.CustomOrders[i].Status != from {
			return domain.ErrInvalidTransition
		}
		apply(&d.CustomOrders[i])
		return nil
	})
}
