package entity

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// Sale is the immutable record of one checkout.
type Sale struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Total     decimal.Decimal `json:"total"`
	Items     []CartLine      `json:"items"`
	CreatedAt time.Time       `json:"created_at"`
}

// Clone returns a copy that shares no memory with s.
func (s Sale) Clone() Sale {
	s.Items = slices.Clone(s.Items)
	return s
}

// ProductIDs returns the distinct product ids referenced by the snapshot, in order.
func (s *Sale) ProductIDs() []string {
	seen := make(map[string]struct{}, len(s.Items))
	ids := make([]string, 0, len(s.Items))
	for _, it := range s.Items {
		if it.ProductID == "" {
			continue
		}
		if _, ok := seen[it.ProductID]; ok {
			continue
		}
		seen[it.ProductID] = struct{}{}
		ids = append(ids, it.ProductID)
	}
	return ids
}
