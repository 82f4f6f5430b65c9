package core

import (
	"context"
	"errors"
	"sync"
)

const defaultEventBuffer = 100

// Service handles the business logic for the corpus.
type Service struct {
	repo            Repository
	mu              sync.RWMutex
	eventBufferSize int
}

// NewService creates a new Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, eventBufferSize: defaultEventBuffer}
}

// SetEventBuffer overrides the broker buffer size. Zero resets to the default.
func (s *Service) SetEventBuffer(size int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if size <= 0 {
		size = defaultEventBuffer
	}
	s.eventBufferSize = size
}

// SaveBinding saves a binding with basic validation.
func (s *Service) SaveBinding(ctx context.Context, id string, content string, metadata Metadata) error {
	if id == "" {
		return errors.New("binding ID cannot be empty")
	}

	b := Binding{
		ID:       id,
		Content:  content,
		Metadata: metadata,
	}

	return s.repo.Save(ctx, b)
}

// GetBinding retrieves a binding.
func (s *Service) GetBinding(ctx context.Context, id string) (Binding, error) {
	if id == "" {
		return Binding{}, errors.New("binding ID cannot be empty")
	}
	return s.repo.Get(ctx, id)
}

// ListBindings retrieves all documents in the corpus.
func (s *Service) ListBindings(ctx context.Context) ([]Binding, error) {
	return s.repo.List(ctx)
}

// DeleteBinding removes a binding.
func (s *Service) DeleteBinding(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("binding ID cannot be empty")
	}
	return s.repo.Delete(ctx, id)
}

// WithTransaction executes a function within a transaction.
// The commit message may be provided via ChangeReasonKey in the context.
func (s *Service) WithTransaction(ctx context.Context, fn func(tx Transaction) error) error {
	tr, ok := s.repo.(Transactional)
	if !ok {
		return ErrNoTransactions
	}

	tx, err := tr.Begin(ctx)
	if err != nil {
		return err
	}

	if err := fn(tx); err != nil {
		tx.Rollback(ctx)
		return err
	}

	msg := "batch corpus update"
	if val, ok := ctx.Value(ChangeReasonKey).(string); ok && val != "" {
		msg = val
	}
	return tx.Commit(ctx, msg)
}

// Begin initiates a transaction manually.
// Exposed for power users or custom workflows.
func (s *Service) Begin(ctx context.Context) (Transaction, error) {
	tr, ok := s.repo.(Transactional)
	if !ok {
		return nil, ErrNoTransactions
	}
	return tr.Begin(ctx)
}

// Watch observes changes in the repository if supported.
// Events are routed through an internal broker so a slow consumer never
// blocks the repository's event producer.
func (s *Service) Watch(ctx context.Context, pattern string) (<-chan Event, error) {
	w, ok := s.repo.(Watchable)
	if !ok {
		return nil, ErrNoWatch
	}

	upstream, err := w.Watch(ctx, pattern)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	size := s.eventBufferSize
	s.mu.RUnlock()

	return newBroker(size).pump(ctx, upstream), nil
}
