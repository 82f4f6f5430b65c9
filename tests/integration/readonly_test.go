package integration

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"log/slog"

	"github.com/aretw0/bindery"
	"github.com/aretw0/bindery/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestReadOnlyMode ensures that ReadOnly mode blocks all write operations
// and does not persist index additions to disk.
func TestReadOnlyMode(t *testing.T) {
	tempDir := t.TempDir()

	// Pre-populate the corpus with valid data so we can test reading.
	prepareCorpus(t, tempDir)

	// Open in read-only mode.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	repo, err := bindery.Init(tempDir, bindery.WithReadOnly(true), bindery.WithLogger(logger))
	require.NoError(t, err)

	ctx := context.Background()

	// Reading works.
	doc, err := repo.Get(ctx, "go/existing")
	require.NoError(t, err)
	assert.Equal(t, "original content", doc.Content)

	// Saves fail.
	err = repo.Save(ctx, core.Binding{ID: "go/new", Content: "forbidden content"})
	assert.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrReadOnly), "Expected ErrReadOnly, got: %v", err)
	_, err = os.Stat(filepath.Join(tempDir, "go", "new.md"))
	assert.True(t, os.IsNotExist(err), "File should not exist")

	// Deletes fail.
	err = repo.Delete(ctx, "go/existing")
	assert.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrReadOnly))
	_, err = os.Stat(filepath.Join(tempDir, "go", "existing.md"))
	assert.NoError(t, err, "File should still exist")

	// Sync fails.
	syncable, ok := repo.(core.Syncable)
	assert.True(t, ok, "Repo should implement Syncable")
	if ok {
		err = syncable.Sync(ctx)
		assert.Error(t, err)
		assert.True(t, errors.Is(err, core.ErrReadOnly))
	}

	// Index persistence is blocked: a file created behind the repository's
	// back is visible to List but never written into the on-disk index.
	ghostFile := filepath.Join(tempDir, "ghost.md")
	require.NoError(t, os.WriteFile(ghostFile, []byte("ghost"), 0644))

	docs, err := repo.List(ctx)
	require.NoError(t, err)
	foundGhost := false
	for _, d := range docs {
		if d.ID == "ghost" {
			foundGhost = true
			break
		}
	}
	assert.True(t, foundGhost, "List should find the ghost file")

	indexBytes, err := os.ReadFile(filepath.Join(tempDir, ".bindery", "index.json"))
	if err == nil {
		assert.NotContains(t, string(indexBytes), "ghost", "Index on disk should not be updated in ReadOnly mode")
	}
}

func prepareCorpus(t *testing.T, dir string) {
	t.Helper()

	repo, err := bindery.Init(dir, bindery.WithAutoInit(true), bindery.WithVersioning(false))
	require.NoError(t, err)

	err = repo.Save(context.Background(), core.Binding{
		ID:      "go/existing",
		Content: "original content",
		Metadata: core.Metadata{
			"id":      "existing",
			"version": "0.1.0",
		},
	})
	require.NoError(t, err)

	// Flush the index to disk.
	_, err = repo.List(context.Background())
	require.NoError(t, err)
}
