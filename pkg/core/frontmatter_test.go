package core_test

import (
	"testing"
	"time"

	"github.com/aretw0/bindery/pkg/core"
)

func TestFrontmatterOf(t *testing.T) {
	meta := core.Metadata{
		"id":            "error-wrapping",
		"version":       "0.1.0",
		"derived_from":  "explicit-over-implicit",
		"enforced_by":   "code review",
		"last_modified": "2026-08-29",
	}

	fm := core.FrontmatterOf(meta)
	if fm.ID != "error-wrapping" {
		t.Errorf("expected id 'error-wrapping', got %q", fm.ID)
	}
	if fm.DerivedFrom != "explicit-over-implicit" {
		t.Errorf("expected derived_from 'explicit-over-implicit', got %q", fm.DerivedFrom)
	}
	if fm.LastModified != "2026-08-29" {
		t.Errorf("expected last_modified '2026-08-29', got %q", fm.LastModified)
	}
}

func TestFrontmatterOf_TimeValue(t *testing.T) {
	// YAML parses unquoted dates into time.Time.
	meta := core.Metadata{
		"last_modified": time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC),
	}

	fm := core.FrontmatterOf(meta)
	if fm.LastModified != "2026-08-29" {
		t.Errorf("expected '2026-08-29', got %q", fm.LastModified)
	}
}

func TestMissingKeys(t *testing.T) {
	meta := core.Metadata{
		"id":      "x",
		"version": "1.0.0",
	}

	missing := core.MissingKeys(meta, core.RequiredKeys())
	want := []string{"derived_from", "enforced_by", "last_modified"}
	if len(missing) != len(want) {
		t.Fatalf("expected %d missing keys, got %v", len(want), missing)
	}
	for i, key := range want {
		if missing[i] != key {
			t.Errorf("missing[%d]: expected %q, got %q", i, key, missing[i])
		}
	}
}

func TestValidVersion(t *testing.T) {
	cases := []struct {
		version string
		valid   bool
	}{
		{"0.1.0", true},
		{"1.12.3", true},
		{"1.0", false},
		{"v1.0.0", false},
		{"", false},
		{"1.0.0-beta", true},
		{"1.0.0+build.5", true},
	}

	for _, tc := range cases {
		t.Run(tc.version, func(t *testing.T) {
			if got := core.ValidVersion(tc.version); got != tc.valid {
				t.Errorf("ValidVersion(%q) = %v, want %v", tc.version, got, tc.valid)
			}
		})
	}
}

func TestValidDate(t *testing.T) {
	cases := []struct {
		date  string
		valid bool
	}{
		{"2026-08-29", true},
		{"2026-08-29T10:30:00Z", true},
		{"29-08-2026", false},
		{"2026-13-01", false},
		{"", false},
	}

	for _, tc := range cases {
		t.Run(tc.date, func(t *testing.T) {
			if got := core.ValidDate(tc.date); got != tc.valid {
				t.Errorf("ValidDate(%q) = %v, want %v", tc.date, got, tc.valid)
			}
		})
	}
}

func TestTenetID(t *testing.T) {
	if got := core.TenetID("simplicity"); got != "tenets/simplicity" {
		t.Errorf("expected 'tenets/simplicity', got %q", got)
	}
	if got := core.TenetID("tenets/simplicity"); got != "tenets/simplicity" {
		t.Errorf("expected idempotent prefix, got %q", got)
	}
	if got := core.TenetID(""); got != "" {
		t.Errorf("expected empty result for empty input, got %q", got)
	}
}

func TestBinding_IsTenet(t *testing.T) {
	if !(core.Binding{ID: "tenets/simplicity"}).IsTenet() {
		t.Error("expected tenets/simplicity to be a tenet")
	}
	if (core.Binding{ID: "go/error-wrapping"}).IsTenet() {
		t.Error("expected go/error-wrapping not to be a tenet")
	}
}
