package sqlstore

import (
	"context"

	"gorm.io/gorm"

	"gallery_backend/internal/domain"
	"gallery_backend/internal/domain/entity"
	checkoutusecase "gallery_backend/internal/feature/checkout/usecase"
)

type saleSQL struct {
	db *gorm.DB
}

var _ checkoutusecase.SaleRepository = (*saleSQL)(nil)

func NewSaleRepository(db *gorm.DB) *saleSQL {
	return &saleSQL{db: db}
}

// Complete inserts the sale, marks its products sold and clears the buyer's
// cart in one transaction. If any listed product is already sold the
// transaction rolls back with domain.ErrProductSold.
func (r *saleSQL) Complete(ctx context.Context, s *entity.Sale) error {
	m, err := saleFromEntity(s)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		if ids := s.ProductIDs(); len(ids) > 0 {
			var existing int64
			if err := tx.Model(&productModel{}).Where("id IN ?", ids).Count(&existing).Error; err != nil {
				return err
			}
			res := tx.Model(&productModel{}).
				Where("id IN ? AND status = ?", ids, string(entity.ProductAvailable)).
				Update("status", string(entity.ProductSold))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected != existing {
				return domain.ErrProductSold
			}
		}
		return tx.Where("user_id = ?", s.UserID).Delete(&cartItemModel{}).Error
	})
}

func (r *saleSQL) ListByUser(ctx context.Context, userID string) ([]entity.Sale, error) {
	var rows []saleModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]entity.Sale, 0, len(rows))
	for i := range rows {
		s, err := rows[i].toEntity()
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
