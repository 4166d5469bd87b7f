package local

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveOpenArchiveRemove(t *testing.T) {
	ctx := context.Background()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Save(ctx, "rx_1.pdf", strings.NewReader("contents")))

	reader, err := store.Open(ctx, "rx_1.pdf")
	require.NoError(t, err)
	data, err := io.ReadAll(reader)
	require.NoError(t, reader.Close())
	require.NoError(t, err)
	assert.Equal(t, "contents", string(data))

	require.NoError(t, store.Archive(ctx, "rx_1.pdf"))
	_, err = store.Open(ctx, "rx_1.pdf")
	require.Error(t, err)

	// Archiving again is a no-op once the file has moved.
	require.NoError(t, store.Archive(ctx, "rx_1.pdf"))

	require.NoError(t, store.Remove(ctx, "does_not_exist.pdf"))
}

func TestSaveRejectsDuplicate(t *testing.T) {
	ctx := context.Background()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Save(ctx, "rx_1.pdf", strings.NewReader("a")))
	require.Error(t, store.Save(ctx, "rx_1.pdf", strings.NewReader("b")))
}

func TestResolveStripsDirectories(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Save(ctx, "../escape.txt", strings.NewReader("x")))
	_, statErr := os.Stat(filepath.Join(dir, "escape.txt"))
	assert.NoError(t, statErr)
}
