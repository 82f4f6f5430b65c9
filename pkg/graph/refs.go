package graph

import (
	"path"
	"regexp"
	"strings"
)

// Ref is a single cross-reference entry from a Related Bindings section.
type Ref struct {
	Label  string // link text
	Target string // raw link target as written (relative path)
	Note   string // trailing explanation after the colon, may be empty
	Line   int    // 1-based line number in the document body
}

// RelatedHeading is the section heading that carries cross-references.
const RelatedHeading = "## Related Bindings"

// Corpus convention: "- [label](target): note". The note is optional.
var refLineRe = regexp.MustCompile(`^\s*[-*]\s*\[([^\]]+)\]\(([^)\s]+)\)\s*:?\s*(.*)$`)

// ExtractRefs scans a markdown body for the Related Bindings section and
// returns its link entries. Scanning stops at the next heading.
//
// The corpus pins cross-references to a fixed bullet convention, so a line
// scanner is enough; there is no need to build a full markdown AST.
func ExtractRefs(content string) []Ref {
	var refs []Ref
	inSection := false

	for i, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "#") {
			inSection = strings.EqualFold(trimmed, RelatedHeading)
			continue
		}
		if !inSection {
			continue
		}

		m := refLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		refs = append(refs, Ref{
			Label:  m[1],
			Target: m[2],
			Note:   strings.TrimSpace(m[3]),
			Line:   i + 1,
		})
	}
	return refs
}

// ResolveTarget resolves a relative link target against the referencing
// document's ID and returns the target document ID (path without ".md").
// Anchors and query suffixes are stripped before resolution.
func ResolveTarget(fromID, target string) string {
	if i := strings.IndexAny(target, "#?"); i >= 0 {
		target = target[:i]
	}
	if target == "" {
		return fromID
	}

	target = strings.TrimSuffix(target, ".md")

	// Targets are relative to the directory of the referencing document.
	base := path.Dir(fromID)
	resolved := path.Clean(path.Join(base, target))
	return strings.TrimPrefix(resolved, "./")
}
