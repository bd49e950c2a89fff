package filestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/archdesign/internal/storage"
)

func TestNew_EmptyDir(t *testing.T) {
	_, err := New("  ")
	assert.Error(t, err)
}

func TestNew_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	s, err := New(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, s.Dir())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestLoadSave(t *testing.T) {
	ctx := context.Background()
	s, err := New(t.TempDir())
	require.NoError(t, err)

	_, err = s.Load(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, s.Save(ctx, "doc", []byte(`{"a":1}`)))
	require.NoError(t, s.Save(ctx, "doc", []byte(`{"a":2}`)))

	data, err := s.Load(ctx, "doc")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":2}`, string(data))
	assert.Equal(t, filepath.Join(s.Dir(), "doc.json"), s.Path("doc"))

	entries, err := os.ReadDir(s.Dir())
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files are cleaned up")
	assert.Equal(t, "doc.json", entries[0].Name())

	require.NoError(t, s.Close())
}

func TestCanceledContext(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, s.Save(ctx, "doc", []byte("{}")), context.Canceled)
	_, err = s.Load(ctx, "doc")
	assert.ErrorIs(t, err, context.Canceled)
}
