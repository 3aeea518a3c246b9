// Package usecase implements the product catalog.
package usecase

import (
	"context"
	"fmt"
	"strings"

	"gallery_backend/internal/domain/entity"
	"gallery_backend/internal/platform/ident"
	"gallery_backend/internal/platform/validation"
)

// ProductRepository persists products.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	// Update overwrites the mutable details. Fails with domain.ErrProductNotFound.
	Update(ctx context.Context, id string, d entity.ProductDetails) error
	// Delete removes the product together with its cart items and view events.
	// Fails with domain.ErrProductNotFound.
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*entity.Product, error)
	// ListAvailable returns available products, newest first.
	ListAvailable(ctx context.Context) ([]entity.Product, error)
}

// ViewRecorder appends product view events.
type ViewRecorder interface {
	RecordView(ctx context.Context, v *entity.ProductView) error
}

// CatalogUsecase manages products.
type CatalogUsecase struct {
	products ProductRepository
	views    ViewRecorder
	ids      ident.Generator
	clock    ident.Clock
}

func NewCatalogUsecase(products ProductRepository, views ViewRecorder, ids ident.Generator, clock ident.Clock) *CatalogUsecase {
	return &CatalogUsecase{products: products, views: views, ids: ids, clock: clock}
}

func normalizeDetails(d entity.ProductDetails) (entity.ProductDetails, error) {
	d.Title = strings.TrimSpace(d.Title)
	d.Price = strings.TrimSpace(d.Price)
	d.ImageRef = strings.TrimSpace(d.ImageRef)
	if err := validation.Struct(d); err != nil {
		return d, err
	}
	return d, nil
}

// Create adds an available product owned by ownerID.
func (u *CatalogUsecase) Create(ctx context.Context, ownerID string, d entity.ProductDetails) (*entity.Product, error) {
	d, err := normalizeDetails(d)
	if err != nil {
		return nil, err
	}
	p := &entity.Product{
		ID:             u.ids.NewID(),
		ProductDetails: d,
		OwnerID:        ownerID,
		Status:         entity.ProductAvailable,
		CreatedAt:      u.clock.Now(),
	}
	if err := u.products.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return p, nil
}

// Update overwrites title, price, dimensions and image. Status and id are untouched.
func (u *CatalogUsecase) Update(ctx context.Context, id string, d entity.ProductDetails) error {
	d, err := normalizeDetails(d)
	if err != nil {
		return err
	}
	return u.products.Update(ctx, id, d)
}

func (u *CatalogUsecase) Delete(ctx context.Context, id string) error {
	return u.products.Delete(ctx, id)
}

func (u *CatalogUsecase) Get(ctx context.Context, id string) (*entity.Product, error) {
	return u.products.FindByID(ctx, id)
}

// List returns the products still for sale, newest first.
func (u *CatalogUsecase) List(ctx context.Context) ([]entity.Product, error) {
	return u.products.ListAvailable(ctx)
}

// RecordView appends a view event for productID by viewerID.
func (u *CatalogUsecase) RecordView(ctx context.Context, productID, viewerID string) error {
	return u.views.RecordView(ctx, &entity.ProductView{
		ID:        u.ids.NewID(),
		ProductID: productID,
		ViewerID:  viewerID,
		CreatedAt: u.clock.Now(),
	})
}
