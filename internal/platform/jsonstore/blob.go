package jsonstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// FileBlob stores the document in a file. Saves write a temporary file in the
// same directory and rename it over the target.
type FileBlob struct {
	Path string
}

var _ Blob = (*FileBlob)(nil)

func NewFileBlob(path string) *FileBlob {
	return &FileBlob{Path: path}
}

func (b *FileBlob) Load(_ context.Context) ([]byte, error) {
	raw, err := os.ReadFile(b.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return raw, nil
}

func (b *FileBlob) Save(_ context.Context, doc []byte) error {
	dir := filepath.Dir(b.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(b.Path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(doc); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), b.Path)
}

// MemoryBlob keeps the document in process memory. Used for tests and
// ephemeral runs.
type MemoryBlob struct {
	mu  sync.Mutex
	doc []byte
	// SaveErr, when set, makes every Save fail.
	SaveErr error
}

var _ Blob = (*MemoryBlob)(nil)

func (b *MemoryBlob) Load(_ context.Context) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.doc == nil {
		return nil, nil
	}
	return append([]byte(nil), b.doc...), nil
}

func (b *MemoryBlob) Save(_ context.Context, doc []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.SaveErr != nil {
		return b.SaveErr
	}
	b.doc = append([]byte(nil), doc...)
	return nil
}
