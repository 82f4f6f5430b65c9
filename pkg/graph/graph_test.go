package graph_test

import (
	"testing"

	"github.com/aretw0/bindery/pkg/core"
	"github.com/aretw0/bindery/pkg/graph"
)

func testCorpus() []core.Binding {
	return []core.Binding{
		{
			ID:       "tenets/simplicity",
			Content:  "# Tenet: Simplicity\n\nPrefer the simplest design that works.",
			Metadata: core.Metadata{"id": "simplicity", "version": "0.1.0"},
		},
		{
			ID: "go/error-wrapping",
			Content: "# Binding: Error Wrapping\n\nBody.\n\n## Related Bindings\n\n" +
				"- [Sentinel Errors](sentinel-errors.md): fixed error values\n" +
				"- [Missing](does-not-exist.md)\n",
			Metadata: core.Metadata{"id": "error-wrapping", "derived_from": "simplicity"},
		},
		{
			ID:       "go/sentinel-errors",
			Content:  "# Binding: Sentinel Errors\n\nBody.",
			Metadata: core.Metadata{"id": "sentinel-errors", "derived_from": "simplicity"},
		},
		{
			ID:       "go/unreferenced",
			Content:  "# Binding: Unreferenced\n\nBody.",
			Metadata: core.Metadata{"id": "unreferenced"},
		},
	}
}

func TestBuild_Edges(t *testing.T) {
	g := graph.Build(testCorpus())

	refs := g.References("go/error-wrapping")
	if len(refs) != 3 {
		t.Fatalf("expected 3 outgoing edges (1 derivation, 2 related), got %d", len(refs))
	}

	var derived, related int
	for _, e := range refs {
		switch e.Kind {
		case graph.EdgeDerivedFrom:
			derived++
			if e.To != "tenets/simplicity" {
				t.Errorf("expected derivation edge to tenets/simplicity, got %q", e.To)
			}
		case graph.EdgeRelated:
			related++
			if e.Ref == nil {
				t.Error("related edge should carry the original ref")
			}
		}
	}
	if derived != 1 || related != 2 {
		t.Errorf("expected 1 derivation and 2 related edges, got %d and %d", derived, related)
	}
}

func TestGraph_Backlinks(t *testing.T) {
	g := graph.Build(testCorpus())

	back := g.Backlinks("go/sentinel-errors")
	if len(back) != 1 {
		t.Fatalf("expected 1 backlink, got %d", len(back))
	}
	if back[0].From != "go/error-wrapping" {
		t.Errorf("expected backlink from go/error-wrapping, got %q", back[0].From)
	}
}

func TestGraph_Dangling(t *testing.T) {
	g := graph.Build(testCorpus())

	dangling := g.Dangling()
	if len(dangling) != 1 {
		t.Fatalf("expected 1 dangling edge, got %d: %+v", len(dangling), dangling)
	}
	if dangling[0].To != "go/does-not-exist" {
		t.Errorf("expected dangling target go/does-not-exist, got %q", dangling[0].To)
	}
}

func TestGraph_Orphans(t *testing.T) {
	g := graph.Build(testCorpus())

	orphans := g.Orphans()
	// error-wrapping has no incoming related edges either; only
	// sentinel-errors is referenced. Tenets never count as orphans.
	want := map[string]bool{"go/error-wrapping": true, "go/unreferenced": true}
	if len(orphans) != len(want) {
		t.Fatalf("expected %d orphans, got %v", len(want), orphans)
	}
	for _, id := range orphans {
		if !want[id] {
			t.Errorf("unexpected orphan %q", id)
		}
	}
}

func TestGraph_ByTenet(t *testing.T) {
	g := graph.Build(testCorpus())

	groups := g.ByTenet()
	if got := len(groups["tenets/simplicity"]); got != 2 {
		t.Errorf("expected 2 bindings under tenets/simplicity, got %d", got)
	}
	if got := len(groups[""]); got != 1 {
		t.Errorf("expected 1 binding without a tenet, got %d", got)
	}
}
