// Package refs provides the RF* rule family.
//
// These rules validate cross-references between corpus documents:
//
//   - RF01: Broken Link - Related Bindings entry targets a missing document
//   - RF02: Unknown Tenet - derived_from names a tenet that does not exist
//   - RF03: Duplicate ID - two documents declare the same front-matter id
//   - RF04: Self Reference - a document links to itself (warning)
package refs

import (
	"fmt"
	"strings"

	"github.com/aretw0/bindery/pkg/core"
	"github.com/aretw0/bindery/pkg/graph"
	"github.com/aretw0/bindery/pkg/lint"
)

func init() {
	lint.Register(brokenLink{})
	lint.Register(unknownTenet{})
	lint.Register(duplicateID{})
	lint.Register(selfReference{})
}

type brokenLink struct{}

func (brokenLink) ID() string          { return "RF01" }
func (brokenLink) Description() string { return "related-binding links resolve to existing documents" }

func (brokenLink) Check(rctx *lint.Context, doc core.Binding) []lint.Finding {
	var findings []lint.Finding
	for _, e := range rctx.Graph.References(doc.ID) {
		if e.Kind != graph.EdgeRelated || rctx.Graph.Has(e.To) {
			continue
		}
		// Related edges always carry the original ref entry.
		findings = append(findings, lint.Finding{
			Rule:     "RF01",
			Severity: lint.SeverityError,
			DocID:    doc.ID,
			Line:     e.Ref.Line,
			Message:  fmt.Sprintf("related binding %q resolves to missing document %q", e.Ref.Target, e.To),
		})
	}
	return findings
}

type unknownTenet struct{}

func (unknownTenet) ID() string          { return "RF02" }
func (unknownTenet) Description() string { return "derived_from names an existing tenet" }

func (unknownTenet) Check(rctx *lint.Context, doc core.Binding) []lint.Finding {
	if doc.IsTenet() {
		return nil
	}
	fm := core.FrontmatterOf(doc.Metadata)
	if fm.DerivedFrom == "" {
		return nil // FM01 already reports the absence
	}
	tenet := core.TenetID(fm.DerivedFrom)
	if rctx.Graph.Has(tenet) {
		return nil
	}
	return []lint.Finding{{
		Rule:     "RF02",
		Severity: lint.SeverityError,
		DocID:    doc.ID,
		Message:  fmt.Sprintf("derived_from %q: tenet %q not found", fm.DerivedFrom, tenet),
	}}
}

type duplicateID struct{}

func (duplicateID) ID() string          { return "RF03" }
func (duplicateID) Description() string { return "front-matter ids are unique across the corpus" }

func (duplicateID) Check(rctx *lint.Context, doc core.Binding) []lint.Finding {
	fm := core.FrontmatterOf(doc.Metadata)
	if fm.ID == "" {
		return nil
	}
	holders := rctx.FrontIDs[fm.ID]
	if len(holders) < 2 {
		return nil
	}

	var others []string
	for _, h := range holders {
		if h != doc.ID {
			others = append(others, h)
		}
	}
	return []lint.Finding{{
		Rule:     "RF03",
		Severity: lint.SeverityError,
		DocID:    doc.ID,
		Message:  fmt.Sprintf("id %q also declared by %s", fm.ID, strings.Join(others, ", ")),
	}}
}

type selfReference struct{}

func (selfReference) ID() string          { return "RF04" }
func (selfReference) Description() string { return "documents do not link to themselves" }

func (selfReference) Check(rctx *lint.Context, doc core.Binding) []lint.Finding {
	var findings []lint.Finding
	for _, e := range rctx.Graph.References(doc.ID) {
		if e.Kind != graph.EdgeRelated || e.To != doc.ID {
			continue
		}
		findings = append(findings, lint.Finding{
			Rule:     "RF04",
			Severity: lint.SeverityWarning,
			DocID:    doc.ID,
			Line:     e.Ref.Line,
			Message:  "document references itself",
		})
	}
	return findings
}
