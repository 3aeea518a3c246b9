package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"gallery_backend/internal/platform/jsonstore"
)

// Blob keeps the json backend's document under a single key. A SET replaces
// the value atomically, so readers never see a partial document.
type Blob struct {
	rdb *redis.Client
	key string
}

var _ jsonstore.Blob = (*Blob)(nil)

func NewBlob(rdb *redis.Client, key string) *Blob {
	if key == "" {
		key = "gallery:dataset"
	}
	return &Blob{rdb: rdb, key: key}
}

func (b *Blob) Load(ctx context.Context) ([]byte, error) {
	raw, err := b.rdb.Get(ctx, b.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return raw, nil
}

func (b *Blob) Save(ctx context.Context, doc []byte) error {
	return b.rdb.Set(ctx, b.key, doc, 0).Err()
}
