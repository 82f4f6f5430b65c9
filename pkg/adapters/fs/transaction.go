package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/aretw0/bindery/pkg/core"
)

// Transaction implements core.Transaction for the filesystem.
// Writes are staged in memory and applied to disk (and Git) on Commit.
type Transaction struct {
	repo    *Repository
	staged  map[string]core.Binding
	deleted map[string]bool
	mu      sync.Mutex
	closed  bool
}

// NewTransaction creates a new transaction.
func NewTransaction(repo *Repository) *Transaction {
	return &Transaction{
		repo:    repo,
		staged:  make(map[string]core.Binding),
		deleted: make(map[string]bool),
	}
}

// Save stages a binding for saving.
func (t *Transaction) Save(ctx context.Context, b core.Binding) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return fmt.Errorf("transaction closed")
	}

	t.staged[b.ID] = b
	delete(t.deleted, b.ID)
	return nil
}

// Get retrieves a binding, favoring staged changes.
func (t *Transaction) Get(ctx context.Context, id string) (core.Binding, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return core.Binding{}, fmt.Errorf("transaction closed")
	}

	if t.deleted[id] {
		return core.Binding{}, fmt.Errorf("%w: %s", core.ErrNotFound, id)
	}

	if b, ok := t.staged[id]; ok {
		return b, nil
	}

	return t.repo.Get(ctx, id)
}

// Delete stages a binding for deletion.
func (t *Transaction) Delete(ctx context.Context, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return fmt.Errorf("transaction closed")
	}

	t.deleted[id] = true
	delete(t.staged, id)
	return nil
}

// Commit applies all staged changes atomically: files first, then one Git
// commit covering the whole batch.
func (t *Transaction) Commit(ctx context.Context, changeReason string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return fmt.Errorf("transaction already closed")
	}

	if !t.repo.config.Gitless {
		unlock, err := t.repo.git.Lock()
		if err != nil {
			return fmt.Errorf("failed to acquire git lock: %w", err)
		}
		defer unlock()
	}

	var filesToAdd []string
	var filesToRm []string

	for id, b := range t.staged {
		filename, ext := filenameFor(id)
		fullPath := filepath.Join(t.repo.Path, filename)
		filesToAdd = append(filesToAdd, filename)

		s, ok := t.repo.serializer(ext)
		if !ok {
			return fmt.Errorf("no serializer for extension %q", ext)
		}

		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			return fmt.Errorf("failed to create directories for %s: %w", id, err)
		}

		data, err := s.Serialize(b)
		if err != nil {
			return fmt.Errorf("failed to serialize %s: %w", id, err)
		}

		if err := writeFileAtomic(fullPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write file %s: %w", id, err)
		}

		mtime := time.Now()
		if info, err := os.Stat(fullPath); err == nil {
			mtime = info.ModTime()
		}
		t.repo.cache.Set(filepath.ToSlash(filename), &indexEntry{
			ID:           id,
			Frontmatter:  core.FrontmatterOf(b.Metadata),
			LastModified: mtime,
		})
	}

	for id := range t.deleted {
		filename, _ := filenameFor(id)
		fullPath := filepath.Join(t.repo.Path, filename)
		filesToRm = append(filesToRm, filename)

		if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove file %s: %w", id, err)
		}
		t.repo.cache.Delete(filepath.ToSlash(filename))
	}

	if !t.repo.config.Gitless {
		if len(filesToAdd) > 0 {
			if err := t.repo.git.Add(filesToAdd...); err != nil {
				return fmt.Errorf("failed to git add: %w", err)
			}
		}

		if len(filesToRm) > 0 {
			if err := t.repo.git.Rm(filesToRm...); err != nil {
				return fmt.Errorf("failed to git rm: %w", err)
			}
		}

		msg := changeReason
		if msg == "" {
			msg = "batch corpus update"
		}
		if err := t.repo.git.Commit(msg); err != nil {
			return fmt.Errorf("failed to git commit: %w", err)
		}
	}

	if err := t.repo.cache.Save(); err != nil && t.repo.config.Logger != nil {
		t.repo.config.Logger.Debug("index save failed", "error", err)
	}

	t.closed = true
	return nil
}

// Rollback discards all staged changes.
func (t *Transaction) Rollback(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return nil
	}

	t.staged = nil
	t.deleted = nil
	t.closed = true
	return nil
}
