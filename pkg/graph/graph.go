// Package graph builds the cross-reference graph of a bindings corpus.
//
// Nodes are documents (bindings and tenets); edges come from two sources:
// the derived_from front-matter field (binding -> tenet) and the entries of
// each document's Related Bindings section (binding -> binding).
package graph

import (
	"sort"

	"github.com/aretw0/bindery/pkg/core"
)

// EdgeKind discriminates the origin of a graph edge.
type EdgeKind string

const (
	EdgeDerivedFrom EdgeKind = "derived_from"
	EdgeRelated     EdgeKind = "related"
)

// Edge is a directed link between two documents.
type Edge struct {
	From string
	To   string
	Kind EdgeKind
	Ref  *Ref // original link entry for related edges, nil for derivation edges
}

// Graph is the resolved cross-reference structure of a corpus.
type Graph struct {
	nodes map[string]core.Binding
	out   map[string][]Edge
	in    map[string][]Edge
}

// Build constructs the graph from a corpus listing.
// Edges pointing at unknown documents are still recorded; Dangling reports them.
func Build(docs []core.Binding) *Graph {
	g := &Graph{
		nodes: make(map[string]core.Binding, len(docs)),
		out:   make(map[string][]Edge),
		in:    make(map[string][]Edge),
	}

	for _, d := range docs {
		g.nodes[d.ID] = d
	}

	for _, d := range docs {
		fm := core.FrontmatterOf(d.Metadata)
		if fm.DerivedFrom != "" {
			g.addEdge(Edge{From: d.ID, To: core.TenetID(fm.DerivedFrom), Kind: EdgeDerivedFrom})
		}

		for _, ref := range ExtractRefs(d.Content) {
			ref := ref
			g.addEdge(Edge{
				From: d.ID,
				To:   ResolveTarget(d.ID, ref.Target),
				Kind: EdgeRelated,
				Ref:  &ref,
			})
		}
	}

	return g
}

func (g *Graph) addEdge(e Edge) {
	g.out[e.From] = append(g.out[e.From], e)
	g.in[e.To] = append(g.in[e.To], e)
}

// Has reports whether a document with the given ID exists in the corpus.
func (g *Graph) Has(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// Node returns the document for an ID.
func (g *Graph) Node(id string) (core.Binding, bool) {
	d, ok := g.nodes[id]
	return d, ok
}

// IDs returns all document IDs in sorted order.
func (g *Graph) IDs() []string {
	ids := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// References returns the outgoing edges of a document.
func (g *Graph) References(id string) []Edge {
	return g.out[id]
}

// Backlinks returns the incoming edges of a document.
func (g *Graph) Backlinks(id string) []Edge {
	return g.in[id]
}

// Dangling returns all edges whose target does not exist in the corpus.
func (g *Graph) Dangling() []Edge {
	var edges []Edge
	for _, id := range g.IDs() {
		for _, e := range g.out[id] {
			if !g.Has(e.To) {
				edges = append(edges, e)
			}
		}
	}
	return edges
}

// Orphans returns binding IDs with no incoming related edges.
// Tenets are excluded; they are reached through derived_from, not through
// Related Bindings entries.
func (g *Graph) Orphans() []string {
	var orphans []string
	for _, id := range g.IDs() {
		doc := g.nodes[id]
		if doc.IsTenet() {
			continue
		}
		related := 0
		for _, e := range g.in[id] {
			if e.Kind == EdgeRelated {
				related++
			}
		}
		if related == 0 {
			orphans = append(orphans, id)
		}
	}
	return orphans
}

// ByTenet groups binding IDs by the tenet they derive from.
// Bindings without a resolvable derived_from are grouped under "".
func (g *Graph) ByTenet() map[string][]string {
	groups := make(map[string][]string)
	for _, id := range g.IDs() {
		doc := g.nodes[id]
		if doc.IsTenet() {
			continue
		}
		tenet := ""
		for _, e := range g.out[id] {
			if e.Kind == EdgeDerivedFrom {
				tenet = e.To
				break
			}
		}
		groups[tenet] = append(groups[tenet], id)
	}
	return groups
}
