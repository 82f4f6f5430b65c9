package core

import "fmt"

// Metadata represents the decoded front matter of a binding document.
type Metadata map[string]any

// Binding is the central entity of the domain.
// It represents a single binding document in the corpus, identified by its
// relative path without extension (e.g. "bindings/no-secret-suppression").
// It is agnostic to storage format; the default adapter reads Markdown with
// YAML front matter.
type Binding struct {
	ID       string
	Content  string
	Metadata Metadata
}

// IsTenet reports whether the document lives in the tenets collection.
// Tenets are the higher-level principles bindings derive from.
func (b Binding) IsTenet() bool {
	return len(b.ID) > 7 && b.ID[:7] == "tenets/"
}

// EventType represents the type of change in the corpus.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change in the corpus.
type Event struct {
	Type      EventType
	ID        string
	Timestamp int64 // Unix timestamp
}

// String implements fmt.Stringer (and lifecycle.Event).
func (e Event) String() string {
	return fmt.Sprintf("%s %s", e.Type, e.ID)
}

// ChangeReasonKey is the context key for passing the commit message/change reason.
type contextKey string

const ChangeReasonKey contextKey = "change_reason"
