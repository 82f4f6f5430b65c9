package fs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/bindery/pkg/core"
)

func TestCache_SetGetSave(t *testing.T) {
	dir := t.TempDir()
	c := newCache(dir, DefaultSystemDir)

	mtime := time.Now().Truncate(time.Second)
	c.Set("go/error-wrapping.md", &indexEntry{
		ID:           "go/error-wrapping",
		Frontmatter:  core.Frontmatter{ID: "error-wrapping", Version: "0.1.0"},
		LastModified: mtime,
	})

	// Hit: same mtime
	entry, ok := c.Get("go/error-wrapping.md", mtime)
	if !ok {
		t.Fatal("expected cache hit")
	}
	if entry.Frontmatter.Version != "0.1.0" {
		t.Errorf("unexpected entry: %+v", entry)
	}

	// Miss: newer file on disk
	if _, ok := c.Get("go/error-wrapping.md", mtime.Add(time.Second)); ok {
		t.Error("expected cache miss for newer mtime")
	}

	// Persist and reload
	if err := c.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	reloaded := newCache(dir, DefaultSystemDir)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if _, ok := reloaded.Get("go/error-wrapping.md", mtime); !ok {
		t.Error("expected hit after reload")
	}
}

func TestCache_CorruptFileSelfHeals(t *testing.T) {
	dir := t.TempDir()
	c := newCache(dir, DefaultSystemDir)

	if err := os.MkdirAll(filepath.Join(dir, DefaultSystemDir), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(c.Path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := c.Load(); err != nil {
		t.Fatalf("expected corrupt cache to load as empty, got %v", err)
	}
	if c.Len() != 0 {
		t.Errorf("expected empty index, got %d entries", c.Len())
	}
}

func TestCache_Prune(t *testing.T) {
	dir := t.TempDir()
	c := newCache(dir, DefaultSystemDir)

	now := time.Now()
	c.Set("a.md", &indexEntry{ID: "a", LastModified: now})
	c.Set("b.md", &indexEntry{ID: "b", LastModified: now})

	c.Prune(map[string]bool{"a.md": true})

	if _, ok := c.Get("a.md", now); !ok {
		t.Error("expected a.md to survive pruning")
	}
	if _, ok := c.Get("b.md", now); ok {
		t.Error("expected b.md to be pruned")
	}
}

func TestWriteFileAtomic_NoTempLeftovers(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "doc.md")

	if err := writeFileAtomic(target, []byte("hello"), 0644); err != nil {
		t.Fatalf("writeFileAtomic failed: %v", err)
	}

	data, err := os.ReadFile(target)
	if err != nil || string(data) != "hello" {
		t.Fatalf("unexpected content: %q, %v", data, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if e.Name() != "doc.md" {
			t.Errorf("unexpected leftover file %s", e.Name())
		}
	}
}
