package sqlstore

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"gallery_backend/internal/domain"
	"gallery_backend/internal/domain/entity"
	customorderusecase "gallery_backend/internal/feature/customorder/usecase"
)

type customOrderSQL struct {
	db *gorm.DB
}

var _ customorderusecase.Repository = (*customOrderSQL)(nil)

func NewCustomOrderRepository(db *gorm.DB) *customOrderSQL {
	return &customOrderSQL{db: db}
}

func (r *customOrderSQL) Create(ctx context.Context, o *entity.CustomOrder) error {
	m := customOrderFromEntity(o)
	return r.db.WithContext(ctx).Create(&m).Error
}

func (r *customOrderSQL) FindByID(ctx context.Context, id string) (*entity.CustomOrder, error) {
	var m customOrderModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCustomOrderNotFound
		}
		return nil, err
	}
	o := m.toEntity()
	return &o, nil
}

type pendingRow struct {
	customOrderModel
	RequesterName  string
	RequesterEmail string
}

// ListPending left-joins the requester so orders of deleted users still show.
func (r *customOrderSQL) ListPending(ctx context.Context) ([]entity.PendingCustomOrder, error) {
	var rows []pendingRow
	err := r.db.WithContext(ctx).
		Table("custom_orders AS o").
		Select("o.*, COALESCE(u.name, '') AS requester_name, COALESCE(u.email, '') AS requester_email").
		Joins("LEFT JOIN users AS u ON u.id = o.user_id").
		Where("o.status = ?", string(entity.CustomOrderPending)).
		Order("o.created_at DESC").Order("o.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]entity.PendingCustomOrder, 0, len(rows))
	for i := range rows {
		out = append(out, entity.PendingCustomOrder{
			CustomOrder:    rows[i].toEntity(),
			RequesterName:  rows[i].RequesterName,
			RequesterEmail: rows[i].RequesterEmail,
		})
	}
	return out, nil
}

func (r *customOrderSQL) ListByUser(ctx context.Context, userID string) ([]entity.CustomOrder, error) {
	var rows []customOrderModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]entity.CustomOrder, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toEntity())
	}
	return out, nil
}

func (r *customOrderSQL) Quote(ctx context.Context, id string, price, fee decimal.Decimal) error {
	return r.compareAndSet(ctx, id, entity.CustomOrderPending, map[string]any{
		"status":       string(entity.CustomOrderQuoted),
		"price":        decimal.NewNullDecimal(price),
		"delivery_fee": decimal.NewNullDecimal(fee),
	})
}

func (r *customOrderSQL) Transition(ctx context.Context, id string, from, to entity.CustomOrderStatus) error {
	return r.compareAndSet(ctx, id, from, map[string]any{"status": string(to)})
}

// compareAndSet applies updates only while the order is in status from.
// Zero affected rows means either a missing order or a stale status.
func (r *customOrderSQL) compareAndSet(ctx context.Context, id string, from entity.CustomOrderStatus, updates map[string]any) error {
	res := r.db.WithContext(ctx).Model(&customOrderModel{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	var n int64
	if err := r.db.WithContext(ctx).Model(&customOrderModel{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrCustomOrderNotFound
	}
	return domain.ErrInvalidTransition
}
