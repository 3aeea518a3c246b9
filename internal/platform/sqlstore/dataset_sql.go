package sqlstore

import (
	"context"

	"gorm.io/gorm"

	"gallery_backend/internal/domain/entity"
	backupusecase "gallery_backend/internal/feature/backup/usecase"
)

const insertBatchSize = 200

type datasetSQL struct {
	db *gorm.DB
}

var _ backupusecase.DatasetRepository = (*datasetSQL)(nil)

func NewDatasetRepository(db *gorm.DB) *datasetSQL {
	return &datasetSQL{db: db}
}

// Export reads every table inside one transaction so the snapshot is consistent.
func (r *datasetSQL) Export(ctx context.Context) (*entity.Dataset, error) {
	var d entity.Dataset
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var users []userModel
		if err := tx.Order("created_at ASC").Order("id ASC").Find(&users).Error; err != nil {
			return err
		}
		for i := range users {
			d.Users = append(d.Users, users[i].toEntity())
		}

		var products []productModel
		if err := tx.Order("created_at ASC").Order("id ASC").Find(&products).Error; err != nil {
			return err
		}
		for i := range products {
			d.Products = append(d.Products, products[i].toEntity())
		}

		var cart []cartItemModel
		if err := tx.Order("created_at ASC").Order("id ASC").Find(&cart).Error; err != nil {
			return err
		}
		for i := range cart {
			d.Cart = append(d.Cart, cart[i].toEntity())
		}

		var views []productViewModel
		if err := tx.Order("created_at ASC").Order("id ASC").Find(&views).Error; err != nil {
			return err
		}
		for i := range views {
			d.Analytics = append(d.Analytics, views[i].toEntity())
		}

		var sales []saleModel
		if err := tx.Order("created_at ASC").Order("id ASC").Find(&sales).Error; err != nil {
			return err
		}
		for i := range sales {
			s, err := sales[i].toEntity()
			if err != nil {
				return err
			}
			d.Sales = append(d.Sales, s)
		}

		var orders []customOrderModel
		if err := tx.Order("created_at ASC").Order("id ASC").Find(&orders).Error; err != nil {
			return err
		}
		for i := range orders {
			d.CustomOrders = append(d.CustomOrders, orders[i].toEntity())
		}

		var settings []settingModel
		if err := tx.Order("key ASC").Find(&settings).Error; err != nil {
			return err
		}
		for _, m := range settings {
			d.Settings = append(d.Settings, entity.Setting{Key: m.Key, Value: m.Value})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	d.Normalize()
	return &d, nil
}

// Replace wipes every table and loads d in a single transaction.
func (r *datasetSQL) Replace(ctx context.Context, d *entity.Dataset) error {
	users := make([]userModel, 0, len(d.Users))
	for i := range d.Users {
		users = append(users, userFromEntity(&d.Users[i]))
	}
	products := make([]productModel, 0, len(d.Products))
	for i := range d.Products {
		products = append(products, productFromEntity(&d.Products[i]))
	}
	cart := make([]cartItemModel, 0, len(d.Cart))
	for i := range d.Cart {
		cart = append(cart, cartItemFromEntity(&d.Cart[i]))
	}
	views := make([]productViewModel, 0, len(d.Analytics))
	for i := range d.Analytics {
		views = append(views, productViewFromEntity(&d.Analytics[i]))
	}
	sales := make([]saleModel, 0, len(d.Sales))
	for i := range d.Sales {
		m, err := saleFromEntity(&d.Sales[i])
		if err != nil {
			return err
		}
		sales = append(sales, m)
	}
	orders := make([]customOrderModel, 0, len(d.CustomOrders))
	for i := range d.CustomOrders {
		orders = append(orders, customOrderFromEntity(&d.CustomOrders[i]))
	}
	settings := make([]settingModel, 0, len(d.Settings))
	for _, s := range d.Settings {
		settings = append(settings, settingModel{Key: s.Key, Value: s.Value})
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		models := allModels()
		wipe := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		for i := len(models) - 1; i >= 0; i-- {
			if err := wipe.Delete(models[i]).Error; err != nil {
				return err
			}
		}

		if err := insertAll(tx, users); err != nil {
			return err
		}
		if err := insertAll(tx, products); err != nil {
			return err
		}
		if err := insertAll(tx, cart); err != nil {
			return err
		}
		if err := insertAll(tx, views); err != nil {
			return err
		}
		if err := insertAll(tx, sales); err != nil {
			return err
		}
		if err := insertAll(tx, orders); err != nil {
			return err
		}
		return insertAll(tx, settings)
	})
}

func insertAll[T any](tx *gorm.DB, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	return tx.CreateInBatches(&rows, insertBatchSize).Error
}
