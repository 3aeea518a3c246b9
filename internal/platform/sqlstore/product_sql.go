package sqlstore

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"gallery_backend/internal/domain"
	"gallery_backend/internal/domain/entity"
	cartusecase "gallery_backend/internal/feature/cart/usecase"
	catalogusecase "gallery_backend/internal/feature/catalog/usecase"
)

type productSQL struct {
	db *gorm.DB
}

var (
	_ catalogusecase.ProductRepository = (*productSQL)(nil)
	_ cartusecase.ProductFinder        = (*productSQL)(nil)
)

func NewProductRepository(db *gorm.DB) *productSQL {
	return &productSQL{db: db}
}

func (r *productSQL) Create(ctx context.Context, p *entity.Product) error {
	m := productFromEntity(p)
	return r.db.WithContext(ctx).Create(&m).Error
}

// Update overwrites the mutable columns. Status and owner are never touched here.
func (r *productSQL) Update(ctx context.Context, id string, d entity.ProductDetails) error {
	res := r.db.WithContext(ctx).Model(&productModel{}).Where("id = ?", id).Updates(map[string]any{
		"title":     d.Title,
		"price":     d.Price,
		"width":     d.Width,
		"height":    d.Height,
		"image_ref": d.ImageRef,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// Delete removes the product and, in the same transaction, its cart items and view events.
func (r *productSQL) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&cartItemModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&productViewModel{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&productModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrProductNotFound
		}
		return nil
	})
}

func (r *productSQL) FindByID(ctx context.Context, id string) (*entity.Product, error) {
	var m productModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}
	p := m.toEntity()
	return &p, nil
}

func (r *productSQL) ListAvailable(ctx context.Context) ([]entity.Product, error) {
	var rows []productModel
	err := r.db.WithContext(ctx).
		Where("status = ?", string(entity.ProductAvailable)).
		Order("created_at DESC").Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]entity.Product, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toEntity())
	}
	return out, nil
}
