// Package frontmatter provides the FM* rule family.
//
// These rules validate the YAML front matter every binding document must
// carry:
//
//   - FM01: Required Keys - id, version, derived_from, enforced_by, last_modified
//   - FM02: ID Mismatch - front-matter id must match the filename
//   - FM03: Invalid Version - version must be a plain semver string
//   - FM04: Invalid Date - last_modified must be an ISO date
//   - FM05: Unknown Keys - keys outside the schema (warning)
package frontmatter

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/aretw0/bindery/pkg/core"
	"github.com/aretw0/bindery/pkg/lint"
)

func init() {
	lint.Register(requiredKeys{})
	lint.Register(idMismatch{})
	lint.Register(invalidVersion{})
	lint.Register(invalidDate{})
	lint.Register(unknownKeys{})
}

type requiredKeys struct{}

func (requiredKeys) ID() string          { return "FM01" }
func (requiredKeys) Description() string { return "front matter contains all required keys" }

func (requiredKeys) Check(rctx *lint.Context, doc core.Binding) []lint.Finding {
	required := core.RequiredKeys()
	if doc.IsTenet() {
		required = core.RequiredTenetKeys()
	}
	missing := core.MissingKeys(doc.Metadata, required)
	if len(missing) == 0 {
		return nil
	}
	return []lint.Finding{{
		Rule:     "FM01",
		Severity: lint.SeverityError,
		DocID:    doc.ID,
		Message:  fmt.Sprintf("missing front-matter keys: %s", strings.Join(missing, ", ")),
	}}
}

type idMismatch struct{}

func (idMismatch) ID() string          { return "FM02" }
func (idMismatch) Description() string { return "front-matter id matches the document filename" }

func (idMismatch) Check(rctx *lint.Context, doc core.Binding) []lint.Finding {
	fm := core.FrontmatterOf(doc.Metadata)
	if fm.ID == "" {
		return nil // FM01 already reports the absence
	}
	if fm.ID == path.Base(doc.ID) {
		return nil
	}
	return []lint.Finding{{
		Rule:     "FM02",
		Severity: lint.SeverityError,
		DocID:    doc.ID,
		Message:  fmt.Sprintf("front-matter id %q does not match filename %q", fm.ID, path.Base(doc.ID)),
	}}
}

type invalidVersion struct{}

func (invalidVersion) ID() string          { return "FM03" }
func (invalidVersion) Description() string { return "version is a semantic version" }

func (invalidVersion) Check(rctx *lint.Context, doc core.Binding) []lint.Finding {
	fm := core.FrontmatterOf(doc.Metadata)
	if fm.Version == "" || core.ValidVersion(fm.Version) {
		return nil
	}
	return []lint.Finding{{
		Rule:     "FM03",
		Severity: lint.SeverityError,
		DocID:    doc.ID,
		Message:  fmt.Sprintf("version %q is not a semantic version", fm.Version),
	}}
}

type invalidDate struct{}

func (invalidDate) ID() string          { return "FM04" }
func (invalidDate) Description() string { return "last_modified is an ISO date" }

func (invalidDate) Check(rctx *lint.Context, doc core.Binding) []lint.Finding {
	fm := core.FrontmatterOf(doc.Metadata)
	if fm.LastModified == "" || core.ValidDate(fm.LastModified) {
		return nil
	}
	return []lint.Finding{{
		Rule:     "FM04",
		Severity: lint.SeverityError,
		DocID:    doc.ID,
		Message:  fmt.Sprintf("last_modified %q is not an ISO date", fm.LastModified),
	}}
}

type unknownKeys struct{}

func (unknownKeys) ID() string          { return "FM05" }
func (unknownKeys) Description() string { return "front matter carries only schema keys" }

func (unknownKeys) Check(rctx *lint.Context, doc core.Binding) []lint.Finding {
	known := make(map[string]bool)
	for _, k := range core.RequiredKeys() {
		known[k] = true
	}

	var extra []string
	for k := range doc.Metadata {
		if !known[k] {
			extra = append(extra, k)
		}
	}
	if len(extra) == 0 {
		return nil
	}
	sort.Strings(extra)
	return []lint.Finding{{
		Rule:     "FM05",
		Severity: lint.SeverityWarning,
		DocID:    doc.ID,
		Message:  fmt.Sprintf("unknown front-matter keys: %s", strings.Join(extra, ", ")),
	}}
}
