// Package jsonstore is the document storage backend. The whole data set lives
// in memory and is persisted as one JSON document through a Blob after every
// successful mutation.
package jsonstore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"gallery_backend/internal/domain"
	"gallery_backend/internal/domain/entity"
)

// Blob holds the serialized document.
type Blob interface {
	// Load returns nil, nil when nothing has been saved yet.
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, doc []byte) error
}

// Store owns the document. Every mutation is applied to a copy, persisted,
// and only then made visible, so a failed save leaves the previous state in place.
type Store struct {
	mu          sync.RWMutex
	blob        Blob
	data        entity.Dataset
	initialized bool
}

func New(blob Blob) *Store {
	return &Store{blob: blob}
}

// Initialize loads the persisted document, or starts an empty one, and seeds
// the default settings that are missing. It is idempotent.
func (s *Store) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.blob.Load(ctx)
	if err != nil {
		return fmt.Errorf("load document: %w", err)
	}

	var d entity.Dataset
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &d); err != nil {
			return fmt.Errorf("decode document: %w", err)
		}
	}
	d.Normalize()
	seedSettings(&d)

	if err := s.persist(ctx, &d); err != nil {
		return err
	}
	s.data = d
	s.initialized = true
	slog.Info("json store initialized",
		"users", len(d.Users), "products", len(d.Products), "sales", len(d.Sales))
	return nil
}

func seedSettings(d *entity.Dataset) {
	for _, def := range entity.DefaultSettings() {
		if indexOf(d.Settings, func(s entity.Setting) bool { return s.Key == def.Key }) < 0 {
			d.Settings = append(d.Settings, def)
		}
	}
}

// view runs fn under the read lock.
func (s *Store) view(fn func(d *entity.Dataset) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.initialized {
		return domain.ErrStoreNotInitialized
	}
	return fn(&s.data)
}

// update applies fn to a copy of the document. The copy replaces the live
// document only when fn succeeds and the copy has been saved.
func (s *Store) update(ctx context.Context, fn func(d *entity.Dataset) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return domain.ErrStoreNotInitialized
	}

	next := s.data.Clone()
	if err := fn(&next); err != nil {
		return err
	}
	if err := s.persist(ctx, &next); err != nil {
		return err
	}
	s.data = next
	return nil
}

func (s *Store) persist(ctx context.Context, d *entity.Dataset) error {
	doc, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if err := s.blob.Save(ctx, doc); err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}

func indexOf[T any](items []T, match func(T) bool) int {
	for i := range items {
		if match(items[i]) {
			return i
		}
	}
	return -1
}

func removeIf[T any](items []T, match func(T) bool) ([]T, int) {
	out := items[:0]
	removed := 0
	for _, it := range items {
		if match(it) {
			removed++
			continue
		}
		out = append(out, it)
	}
	return out, removed
}
