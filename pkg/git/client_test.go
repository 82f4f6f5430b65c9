package git

import (
	"os"
	"path/filepath"
	"testing"
)

func TestClient_Lock(t *testing.T) {
	tmpDir := t.TempDir()
	client := NewClient(tmpDir, "", nil)

	unlock, err := client.Lock()
	if err != nil {
		t.Fatalf("Failed to acquire lock: %v", err)
	}

	// Verify lock file exists
	lockPath := filepath.Join(tmpDir, ".bindery.lock")
	if _, err := os.Stat(lockPath); os.IsNotExist(err) {
		t.Error("Lock file not created")
	}

	unlock()

	// Verify lock file removed
	if _, err := os.Stat(lockPath); !os.IsNotExist(err) {
		t.Error("Lock file not removed after unlock")
	}
}

func TestClient_CustomLockName(t *testing.T) {
	tmpDir := t.TempDir()
	client := NewClient(tmpDir, ".custom.lock", nil)

	unlock, err := client.Lock()
	if err != nil {
		t.Fatalf("Failed to acquire lock: %v", err)
	}
	defer unlock()

	if _, err := os.Stat(filepath.Join(tmpDir, ".custom.lock")); os.IsNotExist(err) {
		t.Error("custom lock file not created")
	}
}

func TestClient_Init(t *testing.T) {
	if !IsInstalled() {
		t.Skip("git not installed")
	}

	tmpDir := t.TempDir()
	client := NewClient(tmpDir, "", nil)

	if client.IsRepo() {
		t.Error("fresh dir should not be a repo")
	}

	if err := client.Init(); err != nil {
		t.Fatalf("Failed to init: %v", err)
	}

	if _, err := os.Stat(filepath.Join(tmpDir, ".git")); os.IsNotExist(err) {
		t.Error(".git directory not created")
	}
	if !client.IsRepo() {
		t.Error("expected IsRepo after init")
	}
}

func TestClient_SyncWithoutRemote(t *testing.T) {
	if !IsInstalled() {
		t.Skip("git not installed")
	}

	tmpDir := t.TempDir()
	client := NewClient(tmpDir, "", nil)
	if err := client.Init(); err != nil {
		t.Fatal(err)
	}

	// No remote configured: Sync is a no-op, not an error.
	if err := client.Sync(); err != nil {
		t.Errorf("expected Sync without remote to be a no-op, got %v", err)
	}
}
