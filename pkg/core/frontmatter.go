package core

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Front matter keys every binding must carry.
const (
	KeyID           = "id"
	KeyVersion      = "version"
	KeyDerivedFrom  = "derived_from"
	KeyEnforcedBy   = "enforced_by"
	KeyLastModified = "last_modified"
)

// RequiredKeys returns the front-matter keys a binding document must define.
func RequiredKeys() []string {
	return []string{KeyID, KeyVersion, KeyDerivedFrom, KeyEnforcedBy, KeyLastModified}
}

// RequiredTenetKeys returns the front-matter keys a tenet document must define.
// Tenets are the root of the derivation tree, so they carry no derived_from
// or enforced_by.
func RequiredTenetKeys() []string {
	return []string{KeyID, KeyVersion, KeyLastModified}
}

// Frontmatter is the typed view of a binding's metadata.
// The raw document keeps the flexible Metadata map; this struct is the
// schema the corpus conventions prescribe.
type Frontmatter struct {
	ID           string `yaml:"id" json:"id"`
	Version      string `yaml:"version" json:"version"`
	DerivedFrom  string `yaml:"derived_from" json:"derived_from"`
	EnforcedBy   string `yaml:"enforced_by" json:"enforced_by"`
	LastModified string `yaml:"last_modified" json:"last_modified"`
}

// FrontmatterOf extracts the typed schema fields from a raw metadata map.
// Missing or non-string values are left empty; validation is the linter's job.
func FrontmatterOf(meta Metadata) Frontmatter {
	str := func(key string) string {
		if v, ok := meta[key].(string); ok {
			return v
		}
		// YAML may decode an unquoted date as time.Time.
		if t, ok := meta[key].(time.Time); ok {
			return t.Format("2006-01-02")
		}
		if v, ok := meta[key]; ok && v != nil {
			return fmt.Sprintf("%v", v)
		}
		return ""
	}
	return Frontmatter{
		ID:           str(KeyID),
		Version:      str(KeyVersion),
		DerivedFrom:  str(KeyDerivedFrom),
		EnforcedBy:   str(KeyEnforcedBy),
		LastModified: str(KeyLastModified),
	}
}

// MissingKeys returns which of the given keys are absent (or empty) in the
// metadata map.
func MissingKeys(meta Metadata, keys []string) []string {
	var missing []string
	for _, key := range keys {
		v, ok := meta[key]
		if !ok || v == nil || v == "" {
			missing = append(missing, key)
		}
	}
	return missing
}

var semverRe = regexp.MustCompile(`^\d+\.\d+\.\d+(?:-[0-9A-Za-z.-]+)?(?:\+[0-9A-Za-z.-]+)?$`)

// ValidVersion reports whether v is a plain semantic version (e.g. "0.2.0").
func ValidVersion(v string) bool {
	return semverRe.MatchString(v)
}

// ValidDate reports whether v is an ISO date. Both date-only ("2025-05-09")
// and full RFC3339 timestamps appear in real corpora; both are accepted.
func ValidDate(v string) bool {
	if _, err := time.Parse("2006-01-02", v); err == nil {
		return true
	}
	if _, err := time.Parse(time.RFC3339, v); err == nil {
		return true
	}
	return false
}

// TenetID normalizes a derived_from value to its document ID under tenets/.
// "simplicity" and "tenets/simplicity" both resolve to "tenets/simplicity".
func TenetID(derivedFrom string) string {
	if derivedFrom == "" {
		return ""
	}
	if strings.HasPrefix(derivedFrom, "tenets/") {
		return derivedFrom
	}
	return "tenets/" + derivedFrom
}
