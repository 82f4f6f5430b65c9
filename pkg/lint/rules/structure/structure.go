// Package structure provides the ST* rule family.
//
// These rules check the narrative shape of a binding document. They are
// warnings: a structurally unusual document is still publishable, unlike
// one with broken metadata or links.
//
//   - ST01: Missing Title - first heading is "# Binding: <Title>" (or "# Tenet:")
//   - ST02: Malformed Related Bindings - section entries outside the bullet convention
//   - ST03: Empty Body - no prose beyond the title
package structure

import (
	"fmt"
	"strings"

	"github.com/aretw0/bindery/pkg/core"
	"github.com/aretw0/bindery/pkg/graph"
	"github.com/aretw0/bindery/pkg/lint"
)

func init() {
	lint.Register(missingTitle{})
	lint.Register(malformedRelated{})
	lint.Register(emptyBody{})
}

type missingTitle struct{}

func (missingTitle) ID() string          { return "ST01" }
func (missingTitle) Description() string { return "document opens with a typed H1 title" }

func (missingTitle) Check(rctx *lint.Context, doc core.Binding) []lint.Finding {
	want := "# Binding: "
	if doc.IsTenet() {
		want = "# Tenet: "
	}

	for _, line := range strings.Split(doc.Content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, want) {
			return nil
		}
		break // first non-blank line is not the expected title
	}

	return []lint.Finding{{
		Rule:     "ST01",
		Severity: lint.SeverityWarning,
		DocID:    doc.ID,
		Message:  fmt.Sprintf("document does not open with %q", strings.TrimSpace(want)),
	}}
}

type malformedRelated struct{}

func (malformedRelated) ID() string          { return "ST02" }
func (malformedRelated) Description() string { return "Related Bindings entries follow the link-bullet convention" }

func (malformedRelated) Check(rctx *lint.Context, doc core.Binding) []lint.Finding {
	var findings []lint.Finding
	inSection := false

	for i, line := range strings.Split(doc.Content, "\n") {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "#") {
			inSection = strings.EqualFold(trimmed, graph.RelatedHeading)
			continue
		}
		if !inSection || trimmed == "" {
			continue
		}
		if !strings.HasPrefix(trimmed, "-") && !strings.HasPrefix(trimmed, "*") {
			continue // prose between entries is tolerated
		}
		if strings.Contains(trimmed, "](") {
			continue
		}
		findings = append(findings, lint.Finding{
			Rule:     "ST02",
			Severity: lint.SeverityWarning,
			DocID:    doc.ID,
			Line:     i + 1,
			Message:  "Related Bindings entry is not a markdown link bullet",
		})
	}
	return findings
}

type emptyBody struct{}

func (emptyBody) ID() string          { return "ST03" }
func (emptyBody) Description() string { return "document has prose beyond its title" }

func (emptyBody) Check(rctx *lint.Context, doc core.Binding) []lint.Finding {
	for _, line := range strings.Split(doc.Content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		return nil
	}
	return []lint.Finding{{
		Rule:     "ST03",
		Severity: lint.SeverityWarning,
		DocID:    doc.ID,
		Message:  "document body is empty",
	}}
}
