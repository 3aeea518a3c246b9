// Package usecase exports the whole data set as one JSON document and restores it.
package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"gallery_backend/internal/domain"
	"gallery_backend/internal/domain/entity"
	authusecase "gallery_backend/internal/feature/auth/usecase"
)

var (
	requiredCollections = []string{"users", "products"}
	optionalCollections = []string{"cart", "analytics", "sales", "custom_orders", "app_settings"}
)

// DatasetRepository reads and replaces the complete data set.
type DatasetRepository interface {
	Export(ctx context.Context) (*entity.Dataset, error)
	// Replace discards the current state and stores d, atomically.
	Replace(ctx context.Context, d *entity.Dataset) error
}

// CatalogInvalidator drops cached catalog listings.
type CatalogInvalidator interface {
	Invalidate(ctx context.Context) error
}

type BackupUsecase struct {
	data        DatasetRepository
	invalidator CatalogInvalidator
}

// NewBackupUsecase wires backup and restore. invalidator may be nil.
func NewBackupUsecase(data DatasetRepository, invalidator CatalogInvalidator) *BackupUsecase {
	return &BackupUsecase{data: data, invalidator: invalidator}
}

func (u *BackupUsecase) Export(ctx context.Context) (*entity.Dataset, error) {
	d, err := u.data.Export(ctx)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	d.Normalize()
	return d, nil
}

// ExportJSON renders Export as an indented JSON document.
func (u *BackupUsecase) ExportJSON(ctx context.Context) ([]byte, error) {
	d, err := u.Export(ctx)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(d, "", "  ")
}

// Import replaces everything with the document's contents. A document that is
// not a JSON object, lacks the users or products arrays or contains
// conflicting records fails with domain.ErrInvalidBackup and changes nothing.
func (u *BackupUsecase) Import(ctx context.Context, doc []byte) error {
	d, err := Decode(doc)
	if err != nil {
		slog.Warn("backup rejected", "error", err)
		return err
	}
	if err := u.data.Replace(ctx, d); err != nil {
		return fmt.Errorf("import: %w", err)
	}
	if u.invalidator != nil {
		if err := u.invalidator.Invalidate(ctx); err != nil {
			slog.Warn("catalog cache invalidation failed", "error", err)
		}
	}
	slog.Info("backup imported", "users", len(d.Users), "products", len(d.Products), "sales", len(d.Sales))
	return nil
}

// Decode parses and validates a backup document.
func Decode(doc []byte) (*entity.Dataset, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(doc, &top); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidBackup, err)
	}
	for _, key := range requiredCollections {
		raw, ok := top[key]
		if !ok || !isArray(raw) {
			return nil, fmt.Errorf("%w: %q must be an array", domain.ErrInvalidBackup, key)
		}
	}
	for _, key := range optionalCollections {
		if raw, ok := top[key]; ok && !isArray(raw) && !isNull(raw) {
			return nil, fmt.Errorf("%w: %q must be an array", domain.ErrInvalidBackup, key)
		}
	}

	var d entity.Dataset
	if err := json.Unmarshal(doc, &d); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidBackup, err)
	}
	if _, ok := top["app_settings"]; !ok {
		d.Settings = entity.DefaultSettings()
	}
	d.Normalize()
	canonicalize(&d)

	if err := check(&d); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidBackup, err)
	}
	return &d, nil
}

func isArray(raw json.RawMessage) bool {
	return bytes.HasPrefix(bytes.TrimSpace(raw), []byte("["))
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// canonicalize applies the defaults new records get at runtime, so every
// backend stores the same values for the same document.
func canonicalize(d *entity.Dataset) {
	for i := range d.Users {
		d.Users[i].Email = authusecase.NormalizeEmail(d.Users[i].Email)
		if d.Users[i].Role == "" {
			d.Users[i].Role = entity.RoleUser
		}
	}
	for i := range d.Cart {
		if d.Cart[i].Quantity == 0 {
			d.Cart[i].Quantity = 1
		}
	}
}

// check enforces the uniqueness rules every backend relies on.
func check(d *entity.Dataset) error {
	ids := map[string]struct{}{}
	unique := func(kind, id string) error {
		if id == "" {
			return fmt.Errorf("%s without id", kind)
		}
		k := kind + "/" + id
		if _, dup := ids[k]; dup {
			return fmt.Errorf("duplicate %s id %q", kind, id)
		}
		ids[k] = struct{}{}
		return nil
	}

	emails := map[string]struct{}{}
	for _, u := range d.Users {
		if err := unique("user", u.ID); err != nil {
			return err
		}
		if u.Email == "" {
			return fmt.Errorf("user %q without email", u.ID)
		}
		if _, dup := emails[u.Email]; dup {
			return fmt.Errorf("duplicate email %q", u.Email)
		}
		emails[u.Email] = struct{}{}
		if u.Role != entity.RoleUser && u.Role != entity.RoleAdmin {
			return fmt.Errorf("user %q has unknown role %q", u.ID, u.Role)
		}
	}
	for _, p := range d.Products {
		if err := unique("product", p.ID); err != nil {
			return err
		}
		if p.Status != entity.ProductAvailable && p.Status != entity.ProductSold {
			return fmt.Errorf("product %q has unknown status %q", p.ID, p.Status)
		}
	}
	pairs := map[[2]string]struct{}{}
	for _, c := range d.Cart {
		if err := unique("cart item", c.ID); err != nil {
			return err
		}
		if c.Quantity < 1 {
			return fmt.Errorf("cart item %q has quantity %d", c.ID, c.Quantity)
		}
		pair := [2]string{c.UserID, c.ProductID}
		if _, dup := pairs[pair]; dup {
			return fmt.Errorf("product %q reserved twice by user %q", c.ProductID, c.UserID)
		}
		pairs[pair] = struct{}{}
	}
	for _, a := range d.Analytics {
		if err := unique("analytics event", a.ID); err != nil {
			return err
		}
	}
	for _, s := range d.Sales {
		if err := unique("sale", s.ID); err != nil {
			return err
		}
	}
	for _, o := range d.CustomOrders {
		if err := unique("custom order", o.ID); err != nil {
			return err
		}
		if !o.Status.Valid() {
			return fmt.Errorf("custom order %q has unknown status %q", o.ID, o.Status)
		}
	}
	for _, s := range d.Settings {
		if err := unique("setting", s.Key); err != nil {
			return err
		}
	}
	return nil
}
