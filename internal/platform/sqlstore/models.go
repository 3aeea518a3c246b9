package sqlstore

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"gallery_backend/internal/domain/entity"
)

type userModel struct {
	ID           string `gorm:"primaryKey;size:36"`
	Name         string `gorm:"size:120;not null"`
	Email        string `gorm:"uniqueIndex;size:255;not null"`
	Phone        string `gorm:"size:40"`
	PasswordHash string `gorm:"size:100;not null"`
	Role         string `gorm:"size:10;not null;default:user"`
	CreatedAt    time.Time
}

func (userModel) TableName() string { return "users" }

func (m *userModel) toEntity() entity.User {
	return entity.User{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		Phone:        m.Phone,
		PasswordHash: m.PasswordHash,
		Role:         entity.Role(m.Role),
		CreatedAt:    m.CreatedAt.UTC(),
	}
}

func userFromEntity(u *entity.User) userModel {
	return userModel{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Phone:        u.Phone,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		CreatedAt:    u.CreatedAt,
	}
}

type productModel struct {
	ID        string    `gorm:"primaryKey;size:36"`
	Title     string    `gorm:"size:200;not null"`
	Price     string    `gorm:"size:50;not null"`
	Width     float64   `gorm:"not null;default:0"`
	Height    float64   `gorm:"not null;default:0"`
	ImageRef  string    `gorm:"size:2048"`
	OwnerID   string    `gorm:"size:36;index"`
	Status    string    `gorm:"size:10;not null;index"`
	CreatedAt time.Time `gorm:"index"`
}

func (productModel) TableName() string { return "products" }

func (m *productModel) toEntity() entity.Product {
	return entity.Product{
		ID: m.ID,
		ProductDetails: entity.ProductDetails{
			Title:    m.Title,
			Price:    m.Price,
			Width:    m.Width,
			Height:   m.Height,
			ImageRef: m.ImageRef,
		},
		OwnerID:   m.OwnerID,
		Status:    entity.ProductStatus(m.Status),
		CreatedAt: m.CreatedAt.UTC(),
	}
}

func productFromEntity(p *entity.Product) productModel {
	return productModel{
		ID:        p.ID,
		Title:     p.Title,
		Price:     p.Price,
		Width:     p.Width,
		Height:    p.Height,
		ImageRef:  p.ImageRef,
		OwnerID:   p.OwnerID,
		Status:    string(p.Status),
		CreatedAt: p.CreatedAt,
	}
}

type cartItemModel struct {
	ID        string `gorm:"primaryKey;size:36"`
	UserID    string `gorm:"size:36;not null;uniqueIndex:idx_cart_user_product"`
	ProductID string `gorm:"size:36;not null;uniqueIndex:idx_cart_user_product;index"`
	Quantity  int    `gorm:"not null;default:1"`
	CreatedAt time.Time
}

func (cartItemModel) TableName() string { return "cart_items" }

func (m *cartItemModel) toEntity() entity.CartItem {
	return entity.CartItem{
		ID:        m.ID,
		UserID:    m.UserID,
		ProductID: m.ProductID,
		Quantity:  m.Quantity,
		CreatedAt: m.CreatedAt.UTC(),
	}
}

func cartItemFromEntity(c *entity.CartItem) cartItemModel {
	return cartItemModel{
		ID:        c.ID,
		UserID:    c.UserID,
		ProductID: c.ProductID,
		Quantity:  c.Quantity,
		CreatedAt: c.CreatedAt,
	}
}

// saleModel keeps the purchased items as a serialized snapshot, not a relation.
type saleModel struct {
	ID        string          `gorm:"primaryKey;size:36"`
	UserID    string          `gorm:"size:36;not null;index"`
	Total     decimal.Decimal `gorm:"type:text;not null"`
	Items     string          `gorm:"type:text;not null"`
	CreatedAt time.Time       `gorm:"index"`
}

func (saleModel) TableName() string { return "sales" }

func (m *saleModel) toEntity() (entity.Sale, error) {
	var items []entity.CartLine
	if err := json.Unmarshal([]byte(m.Items), &items); err != nil {
		return entity.Sale{}, fmt.Errorf("decode sale %s items: %w", m.ID, err)
	}
	if items == nil {
		items = []entity.CartLine{}
	}
	return entity.Sale{
		ID:        m.ID,
		UserID:    m.UserID,
		Total:     m.Total,
		Items:     items,
		CreatedAt: m.CreatedAt.UTC(),
	}, nil
}

func saleFromEntity(s *entity.Sale) (saleModel, error) {
	items := s.Items
	if items == nil {
		items = []entity.CartLine{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return saleModel{}, fmt.Errorf("encode sale items: %w", err)
	}
	return saleModel{
		ID:        s.ID,
		UserID:    s.UserID,
		Total:     s.Total,
		Items:     string(b),
		CreatedAt: s.CreatedAt,
	}, nil
}

type customOrderModel struct {
	ID          string              `gorm:"primaryKey;size:36"`
	UserID      string              `gorm:"size:36;not null;index"`
	ImageRef    string              `gorm:"size:2048"`
	Width       float64             `gorm:"not null;default:0"`
	Height      float64             `gorm:"not null;default:0"`
	Description string              `gorm:"type:text"`
	Address     string              `gorm:"type:text"`
	Status      string              `gorm:"size:10;not null;index"`
	Price       decimal.NullDecimal `gorm:"type:text"`
	DeliveryFee decimal.NullDecimal `gorm:"type:text"`
	CreatedAt   time.Time           `gorm:"index"`
}

func (customOrderModel) TableName() string { return "custom_orders" }

func (m *customOrderModel) toEntity() entity.CustomOrder {
	return entity.CustomOrder{
		ID:          m.ID,
		UserID:      m.UserID,
		ImageRef:    m.ImageRef,
		Width:       m.Width,
		Height:      m.Height,
		Description: m.Description,
		Address:     m.Address,
		Status:      entity.CustomOrderStatus(m.Status),
		Price:       decimalPtr(m.Price),
		DeliveryFee: decimalPtr(m.DeliveryFee),
		CreatedAt:   m.CreatedAt.UTC(),
	}
}

func customOrderFromEntity(o *entity.CustomOrder) customOrderModel {
	return customOrderModel{
		ID:          o.ID,
		UserID:      o.UserID,
		ImageRef:    o.ImageRef,
		Width:       o.Width,
		Height:      o.Height,
		Description: o.Description,
		Address:     o.Address,
		Status:      string(o.Status),
		Price:       nullDecimal(o.Price),
		DeliveryFee: nullDecimal(o.DeliveryFee),
		CreatedAt:   o.CreatedAt,
	}
}

func decimalPtr(n decimal.NullDecimal) *decimal.Decimal {
	if !n.Valid {
		return nil
	}
	d := n.Decimal
	return &d
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*d)
}

type productViewModel struct {
	ID        string `gorm:"primaryKey;size:36"`
	ProductID string `gorm:"size:36;not null;index"`
	ViewerID  string `gorm:"size:36"`
	CreatedAt time.Time
}

func (productViewModel) TableName() string { return "analytics_events" }

func (m *productViewModel) toEntity() entity.ProductView {
	return entity.ProductView{
		ID:        m.ID,
		ProductID: m.ProductID,
		ViewerID:  m.ViewerID,
		CreatedAt: m.CreatedAt.UTC(),
	}
}

func productViewFromEntity(v *entity.ProductView) productViewModel {
	return productViewModel{
		ID:        v.ID,
		ProductID: v.ProductID,
		ViewerID:  v.ViewerID,
		CreatedAt: v.CreatedAt,
	}
}

type settingModel struct {
	Key   string `gorm:"primaryKey;size:100"`
	Value string `gorm:"type:text;not null"`
}

func (settingModel) TableName() string { return "app_settings" }

// allModels lists every table in creation order.
func allModels() []any {
	return []any{
		&userModel{},
		&productModel{},
		&cartItemModel{},
		&saleModel{},
		&customOrderModel{},
		&productViewModel{},
		&settingModel{},
	}
}
