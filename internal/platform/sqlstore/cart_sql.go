package sqlstore

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"gallery_backend/internal/domain"
	"gallery_backend/internal/domain/entity"
	cartusecase "gallery_backend/internal/feature/cart/usecase"
	checkoutusecase "gallery_backend/internal/feature/checkout/usecase"
)

type cartSQL struct {
	db *gorm.DB
}

var (
	_ cartusecase.CartRepository = (*cartSQL)(nil)
	_ checkoutusecase.CartReader = (*cartSQL)(nil)
)

func NewCartRepository(db *gorm.DB) *cartSQL {
	return &cartSQL{db: db}
}

// Add fails with domain.ErrAlreadyInCart on the (user_id, product_id) unique
// index. A reused item id is returned as is.
func (r *cartSQL) Add(ctx context.Context, item *entity.CartItem) error {
	m := cartItemFromEntity(item)
	err := r.db.WithContext(ctx).Create(&m).Error
	if err == nil {
		return nil
	}
	if isUniqueViolation(err) {
		if held, cerr := r.Exists(ctx, m.UserID, m.ProductID); cerr == nil && held {
			return domain.ErrAlreadyInCart
		}
	}
	return fmt.Errorf("add cart item %s: %w", m.ID, err)
}

func (r *cartSQL) Exists(ctx context.Context, userID, productID string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&cartItemModel{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&n).Error
	return n > 0, err
}

func (r *cartSQL) Remove(ctx context.Context, userID, cartItemID string) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", cartItemID, userID).Delete(&cartItemModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrCartItemNotFound
	}
	return nil
}

type cartLineRow struct {
	CartItemID string
	ProductID  string
	Title      string
	Price      string
	ImageRef   string
	Quantity   int
}

// ListByUser joins cart_items with products, oldest reservation first.
func (r *cartSQL) ListByUser(ctx context.Context, userID string) ([]entity.CartLine, error) {
	var rows []cartLineRow
	err := r.db.WithContext(ctx).
		Table("cart_items AS c").
		Select("c.id AS cart_item_id, p.id AS product_id, p.title, p.price, p.image_ref, c.quantity").
		Joins("JOIN products AS p ON p.id = c.product_id").
		Where("c.user_id = ?", userID).
		Order("c.created_at ASC").Order("c.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]entity.CartLine, 0, len(rows))
	for _, row := range rows {
		out = append(out, entity.CartLine(row))
	}
	return out, nil
}

func (r *cartSQL) ClearByUser(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&cartItemModel{}).Error
}
