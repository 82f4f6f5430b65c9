package graph_test

import (
	"testing"

	"github.com/aretw0/bindery/pkg/graph"
)

const sampleBody = `# Binding: Error Wrapping

Wrap errors with %w so callers can inspect the chain.

## Related Bindings

- [Sentinel Errors](sentinel-errors.md): when a fixed error value is enough
* [Logging](../observability/logging.md)
- plain text entry without a link

## Rationale

Not a reference: [Philosophy](../tenets/simplicity.md)
`

func TestExtractRefs(t *testing.T) {
	refs := graph.ExtractRefs(sampleBody)
	if len(refs) != 2 {
		t.Fatalf("expected 2 refs, got %d: %+v", len(refs), refs)
	}

	if refs[0].Label != "Sentinel Errors" {
		t.Errorf("expected label 'Sentinel Errors', got %q", refs[0].Label)
	}
	if refs[0].Target != "sentinel-errors.md" {
		t.Errorf("expected target 'sentinel-errors.md', got %q", refs[0].Target)
	}
	if refs[0].Note != "when a fixed error value is enough" {
		t.Errorf("unexpected note: %q", refs[0].Note)
	}

	if refs[1].Target != "../observability/logging.md" {
		t.Errorf("expected star bullet to be parsed, got %q", refs[1].Target)
	}
	if refs[1].Note != "" {
		t.Errorf("expected empty note, got %q", refs[1].Note)
	}

	if refs[0].Line == 0 || refs[1].Line <= refs[0].Line {
		t.Errorf("expected increasing 1-based line numbers, got %d and %d", refs[0].Line, refs[1].Line)
	}
}

func TestExtractRefs_NoSection(t *testing.T) {
	body := "# Binding: X\n\n- [Link](y.md): looks like a ref but no section\n"
	if refs := graph.ExtractRefs(body); len(refs) != 0 {
		t.Errorf("expected no refs outside the section, got %+v", refs)
	}
}

func TestResolveTarget(t *testing.T) {
	cases := []struct {
		name   string
		fromID string
		target string
		want   string
	}{
		{"sibling", "go/error-wrapping", "sentinel-errors.md", "go/sentinel-errors"},
		{"parent dir", "go/error-wrapping", "../observability/logging.md", "observability/logging"},
		{"anchor stripped", "go/error-wrapping", "sentinel-errors.md#usage", "go/sentinel-errors"},
		{"no extension", "go/error-wrapping", "sentinel-errors", "go/sentinel-errors"},
		{"root level", "hello", "world.md", "world"},
		{"tenet", "go/error-wrapping", "../tenets/simplicity.md", "tenets/simplicity"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := graph.ResolveTarget(tc.fromID, tc.target); got != tc.want {
				t.Errorf("ResolveTarget(%q, %q) = %q, want %q", tc.fromID, tc.target, got, tc.want)
			}
		})
	}
}
