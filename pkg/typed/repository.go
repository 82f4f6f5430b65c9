package typed

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aretw0/bindery/pkg/core"
)

// Model wraps the raw core.Binding with a typed front-matter field.
// The usual instantiation is Model[core.Frontmatter], but any struct with
// matching tags works (e.g. an extended schema with custom keys).
type Model[T any] struct {
	ID      string
	Content string
	Data    T        // The typed front matter
	Saver   Saver[T] // Active Record reference interface
}

// Saver avoids tight coupling between Model and Repository/Service structs.
type Saver[T any] interface {
	Save(ctx context.Context, doc *Model[T]) error
}

// Save persists the document using the attached saver (Repository or Service).
func (d *Model[T]) Save(ctx context.Context) error {
	if d.Saver == nil {
		return fmt.Errorf("document is detached (missing Saver)")
	}
	return d.Saver.Save(ctx, d)
}

// Repository wraps a core.Repository to provide type-safe access.
type Repository[T any] struct {
	repo core.Repository
}

// NewRepository creates a new type-safe wrapper around an existing repository.
func NewRepository[T any](repo core.Repository) *Repository[T] {
	return &Repository[T]{repo: repo}
}

// Save persists a typed document.
func (r *Repository[T]) Save(ctx context.Context, doc *Model[T]) error {
	metadata, err := toMetadata(doc.Data)
	if err != nil {
		return err
	}

	if doc.Saver == nil {
		doc.Saver = r
	}

	return r.repo.Save(ctx, core.Binding{
		ID:       doc.ID,
		Content:  doc.Content,
		Metadata: metadata,
	})
}

// Get retrieves a document and unmarshals its front matter.
func (r *Repository[T]) Get(ctx context.Context, id string) (*Model[T], error) {
	b, err := r.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return fromCore(b, r)
}

// List returns all documents converted to the typed model.
func (r *Repository[T]) List(ctx context.Context) ([]*Model[T], error) {
	bindings, err := r.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*Model[T], 0, len(bindings))
	for _, b := range bindings {
		model, err := fromCore(b, r)
		if err != nil {
			return nil, fmt.Errorf("failed to process document %s: %w", b.ID, err)
		}
		result = append(result, model)
	}
	return result, nil
}

// Delete removes a document by ID.
func (r *Repository[T]) Delete(ctx context.Context, id string) error {
	return r.repo.Delete(ctx, id)
}

// toMetadata converts a typed value into a metadata map via JSON round-trip,
// so struct tags drive the key names.
func toMetadata(data any) (core.Metadata, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal typed data: %w", err)
	}

	var metadata map[string]interface{}
	if err := json.Unmarshal(dataBytes, &metadata); err != nil {
		return nil, fmt.Errorf("failed to convert typed data to map: %w", err)
	}
	return metadata, nil
}

// fromCore converts a core.Binding to a typed Model.
func fromCore[T any](b core.Binding, saver Saver[T]) (*Model[T], error) {
	dataBytes, err := json.Marshal(b.Metadata)
	if err != nil {
		return nil, fmt.Errorf("metadata marshal failed: %w", err)
	}

	var data T
	if err := json.Unmarshal(dataBytes, &data); err != nil {
		return nil, fmt.Errorf("unmarshal to target type failed: %w", err)
	}

	return &Model[T]{
		ID:      b.ID,
		Content: b.Content,
		Data:    data,
		Saver:   saver,
	}, nil
}
