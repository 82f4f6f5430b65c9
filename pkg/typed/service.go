package typed

import (
	"context"

	"github.com/aretw0/bindery/pkg/core"
)

// Service wraps a core.Service to provide type-safe access and business logic support.
type Service[T any] struct {
	svc *core.Service
}

// NewService creates a new typed service wrapper.
func NewService[T any](svc *core.Service) *Service[T] {
	return &Service[T]{svc: svc}
}

// Save persists a typed document using the core Service (including validation/transactions).
func (s *Service[T]) Save(ctx context.Context, doc *Model[T]) error {
	if doc.Saver == nil {
		doc.Saver = s
	}

	metadata, err := toMetadata(doc.Data)
	if err != nil {
		return err
	}

	return s.svc.SaveBinding(ctx, doc.ID, doc.Content, metadata)
}

// Watch observes changes in the repository.
func (s *Service[T]) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	return s.svc.Watch(ctx, pattern)
}

// Get retrieves a document via Service.
func (s *Service[T]) Get(ctx context.Context, id string) (*Model[T], error) {
	b, err := s.svc.GetBinding(ctx, id)
	if err != nil {
		return nil, err
	}
	return fromCore(b, s)
}

// List retrieves all documents via Service.
func (s *Service[T]) List(ctx context.Context) ([]*Model[T], error) {
	bindings, err := s.svc.ListBindings(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*Model[T], 0, len(bindings))
	for _, b := range bindings {
		model, err := fromCore(b, s)
		if err != nil {
			return nil, err
		}
		result = append(result, model)
	}
	return result, nil
}

// Delete removes a document via Service.
func (s *Service[T]) Delete(ctx context.Context, id string) error {
	return s.svc.DeleteBinding(ctx, id)
}

// WithTransaction executes a typed function within a transaction.
func (s *Service[T]) WithTransaction(ctx context.Context, fn func(tx *Transaction[T]) error) error {
	return s.svc.WithTransaction(ctx, func(coreTx core.Transaction) error {
		tx := &Transaction[T]{tx: coreTx, svc: s}
		return fn(tx)
	})
}

// Transaction wraps a core.Transaction for typed operations.
type Transaction[T any] struct {
	tx  core.Transaction
	svc *Service[T]
}

// Save persists a typed document within the transaction.
func (t *Transaction[T]) Save(ctx context.Context, doc *Model[T]) error {
	if doc.Saver == nil {
		doc.Saver = t
	}

	metadata, err := toMetadata(doc.Data)
	if err != nil {
		return err
	}

	return t.tx.Save(ctx, core.Binding{
		ID:       doc.ID,
		Content:  doc.Content,
		Metadata: metadata,
	})
}

// Get retrieves a document within the transaction.
func (t *Transaction[T]) Get(ctx context.Context, id string) (*Model[T], error) {
	b, err := t.tx.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return fromCore(b, t)
}

// Delete removes a document within the transaction.
func (t *Transaction[T]) Delete(ctx context.Context, id string) error {
	return t.tx.Delete(ctx, id)
}
