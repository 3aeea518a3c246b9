package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useJSONBackend(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gallery.json")
	t.Setenv("GALLERY_BACKEND", "json")
	t.Setenv("JSON_BLOB", "file")
	t.Setenv("JSON_BLOB_PATH", path)
	t.Setenv("REDIS_HOST", "")
	t.Setenv("LOG_LEVEL", "error")
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestInit_CreatesDocument(t *testing.T) {
	path := useJSONBackend(t)

	out, err := run(t, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "initialized json backend")

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "heroTitle")
}

func TestExportImportRoundTrip(t *testing.T) {
	useJSONBackend(t)
	backup := filepath.Join(t.TempDir(), "backup.json")

	doc := `{
  "users": [{"id":"u1","name":"Ana","email":"ana@example.com","phone":"","password_hash":"x","role":"admin","created_at":"2024-03-01T12:00:00Z"}],
  "products": [{"id":"p1","title":"Mar","description":"","price":"R$ 100,00","image_ref":"","status":"available","owner_id":"u1","created_at":"2024-03-01T12:00:00Z"}]
}`
	src := filepath.Join(t.TempDir(), "in.json")
	require.NoError(t, os.WriteFile(src, []byte(doc), 0o600))

	_, err := run(t, "import", "--in", src)
	require.NoError(t, err)

	_, err = run(t, "export", "--out", backup)
	require.NoError(t, err)

	raw, err := os.ReadFile(backup)
	require.NoError(t, err)
	var exported map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &exported))
	assert.Contains(t, string(exported["users"]), "ana@example.com")
	assert.Contains(t, string(exported["products"]), `"p1"`)
	assert.Contains(t, string(exported["app_settings"]), "heroTitle")

	out, err := run(t, "stats")
	require.NoError(t, err)
	var stats map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &stats))
	assert.EqualValues(t, 1, stats["total_users"])
	assert.EqualValues(t, 1, stats["total_products"])
}

func TestImport_RejectsDocumentWithoutProducts(t *testing.T) {
	useJSONBackend(t)
	src := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(src, []byte(`{"users":[]}`), 0o600))

	_, err := run(t, "import", "--in", src)
	require.Error(t, err)
}
