package fs

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/bindery/pkg/core"
)

// Watch observes the corpus for changes matching the given glob pattern.
// The returned channel closes when ctx is done.
func (r *Repository) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	if pattern == "" {
		pattern = "**/*"
	}

	events := make(chan core.Event)
	worker := newWatchWorker(r, pattern, events)

	if err := worker.Start(ctx); err != nil {
		return nil, err
	}

	go func() {
		<-ctx.Done()
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = worker.Stop(stopCtx)
		close(events)
	}()

	return events, nil
}

// recursiveAdd registers every directory under the corpus with the watcher,
// skipping .git and the system directory.
func (r *Repository) recursiveAdd(watcher *fsnotify.Watcher) error {
	return filepath.WalkDir(r.Path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if d.Name() == ".git" || d.Name() == r.config.SystemDir {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

// shouldIgnore filters out events that are not corpus document changes:
// system/lock/temp files and documents outside the watch pattern.
func (r *Repository) shouldIgnore(event fsnotify.Event, pattern string) bool {
	base := filepath.Base(event.Name)

	if strings.HasPrefix(base, TempFilePrefix) || strings.HasSuffix(base, ".lock") {
		return true
	}

	relPath, err := filepath.Rel(r.Path, event.Name)
	if err != nil {
		return true
	}
	relPath = filepath.ToSlash(relPath)

	if strings.HasPrefix(relPath, ".git/") || strings.HasPrefix(relPath, r.config.SystemDir+"/") {
		return true
	}
	if relPath == ".git" || relPath == r.config.SystemDir || relPath == ".gitignore" {
		return true
	}

	// New directories produce Create events without an extension; keep them
	// so the worker can start watching them, everything else must be a
	// supported document.
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			return false
		}
	}
	if !supportedFile(base) {
		return true
	}

	if ok, err := doublestar.Match(pattern, relPath); err != nil || !ok {
		// IDs drop the .md extension; accept a pattern match on either form.
		if ok2, err2 := doublestar.Match(pattern, idFor(relPath)); err2 != nil || !ok2 {
			return true
		}
	}

	return false
}

// mapEventType translates an fsnotify op into a corpus event type.
// Returns "" for ops that carry no document semantics (e.g. Chmod).
func (r *Repository) mapEventType(event fsnotify.Event) core.EventType {
	switch {
	case event.Has(fsnotify.Create):
		return core.EventCreate
	case event.Has(fsnotify.Write):
		return core.EventModify
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return core.EventDelete
	default:
		return ""
	}
}

// resolveID maps an absolute event path to a document ID.
func (r *Repository) resolveID(path string) (string, error) {
	relPath, err := filepath.Rel(r.Path, path)
	if err != nil {
		return "", fmt.Errorf("path outside corpus: %w", err)
	}
	return idFor(filepath.ToSlash(relPath)), nil
}

// Reconcile rescans the corpus and diffs it against the front-matter index,
// returning synthetic events for changes the watcher missed (e.g. while
// paused during git operations). The index is refreshed as a side effect.
func (r *Repository) Reconcile(ctx context.Context) ([]core.Event, error) {
	before := make(map[string]time.Time)
	r.cache.Range(func(relPath string, entry *indexEntry) bool {
		before[relPath] = entry.LastModified
		return true
	})

	var events []core.Event
	seen := make(map[string]bool)
	now := time.Now().Unix()

	err := filepath.WalkDir(r.Path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" || d.Name() == r.config.SystemDir {
				return filepath.SkipDir
			}
			return nil
		}
		if !supportedFile(d.Name()) {
			return nil
		}

		relPath, err := filepath.Rel(r.Path, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)
		seen[relPath] = true

		info, err := d.Info()
		if err != nil {
			return nil
		}

		prev, existed := before[relPath]
		switch {
		case !existed:
			events = append(events, core.Event{Type: core.EventCreate, ID: idFor(relPath), Timestamp: now})
		case !prev.Equal(info.ModTime()):
			events = append(events, core.Event{Type: core.EventModify, ID: idFor(relPath), Timestamp: now})
		}

		doc, err := r.Get(ctx, idFor(relPath))
		if err != nil {
			return nil
		}
		r.cache.Set(relPath, &indexEntry{
			ID:           idFor(relPath),
			Frontmatter:  core.FrontmatterOf(doc.Metadata),
			LastModified: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	for relPath := range before {
		if !seen[relPath] {
			events = append(events, core.Event{Type: core.EventDelete, ID: idFor(relPath), Timestamp: now})
			r.cache.Delete(relPath)
		}
	}

	if !r.config.ReadOnly {
		if err := r.cache.Save(); err != nil && r.config.Logger != nil {
			r.config.Logger.Debug("index save failed", "error", err)
		}
	}

	r.recordReconcile()
	return events, nil
}
