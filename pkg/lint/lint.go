// Package lint checks a bindings corpus against its editorial conventions:
// complete front matter, resolvable cross-references, and the expected
// document structure.
//
// Rules register themselves with a global registry from init functions of
// their family packages; import bindery/pkg/lint/rules/all to get the full
// default set.
package lint

import (
	"fmt"

	"github.com/aretw0/bindery/pkg/core"
	"github.com/aretw0/bindery/pkg/graph"
)

// Severity classifies a finding.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

// String implements fmt.Stringer.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	default:
		return "warning"
	}
}

// ParseSeverity converts a severity name ("warning" or "error") to its value.
func ParseSeverity(name string) (Severity, error) {
	switch name {
	case "warning":
		return SeverityWarning, nil
	case "error", "":
		return SeverityError, nil
	default:
		return SeverityError, fmt.Errorf("unknown severity %q", name)
	}
}

// Finding is a single reported problem in a document.
type Finding struct {
	Rule     string   `json:"rule"`
	Severity Severity `json:"-"`
	DocID    string   `json:"doc"`
	Line     int      `json:"line,omitempty"` // 1-based, 0 when not line-specific
	Message  string   `json:"message"`
}

// String renders the finding in the conventional file:line style.
func (f Finding) String() string {
	loc := f.DocID
	if f.Line > 0 {
		loc = fmt.Sprintf("%s:%d", f.DocID, f.Line)
	}
	return fmt.Sprintf("%s: %s: [%s] %s", loc, f.Severity, f.Rule, f.Message)
}

// Context carries the corpus-wide state rules may consult.
// It is built once per run so rules never re-scan the corpus themselves.
type Context struct {
	Graph *graph.Graph
	Docs  []core.Binding

	// FrontIDs maps a front-matter id value to the document IDs declaring it.
	// Used for duplicate detection.
	FrontIDs map[string][]string
}

// NewContext prepares the shared rule context from a corpus listing.
func NewContext(docs []core.Binding) *Context {
	frontIDs := make(map[string][]string)
	for _, d := range docs {
		fm := core.FrontmatterOf(d.Metadata)
		if fm.ID != "" {
			frontIDs[fm.ID] = append(frontIDs[fm.ID], d.ID)
		}
	}

	return &Context{
		Graph:    graph.Build(docs),
		Docs:     docs,
		FrontIDs: frontIDs,
	}
}

// Rule checks one document against one convention.
type Rule interface {
	// ID is the stable rule identifier (e.g. "FM01").
	ID() string
	// Description is a one-line summary of what the rule enforces.
	Description() string
	// Check inspects a document and returns zero or more findings.
	Check(rctx *Context, doc core.Binding) []Finding
}
