package core

import "context"

// Repository defines the contract for storing and retrieving bindings.
// Adhering to this interface keeps the core independent of the underlying
// storage mechanism (Filesystem + Git, SQL, S3, etc).
type Repository interface {
	// Save persists a binding. It creates if not exists, or updates if it does.
	Save(ctx context.Context, b Binding) error

	// Get retrieves a binding by its ID.
	Get(ctx context.Context, id string) (Binding, error)

	// List returns all documents in the corpus.
	List(ctx context.Context) ([]Binding, error)

	// Delete removes a binding by its ID.
	Delete(ctx context.Context, id string) error

	// Initialize ensures the underlying storage is ready (e.g. create directories, git init).
	Initialize(ctx context.Context) error
}

// Syncable defines an interface for repositories that support synchronization with a remote.
type Syncable interface {
	// Sync synchronizes the local state with a remote source (e.g. git pull/push).
	Sync(ctx context.Context) error
}

// Watchable defines an interface for repositories that can emit change events.
type Watchable interface {
	// Watch emits events for documents matching the glob pattern until ctx is done.
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}

// Transaction defines the contract for a unit of work.
// Changes staged within a transaction are applied atomically on Commit.
type Transaction interface {
	// Save stages a binding for persistence.
	Save(ctx context.Context, b Binding) error

	// Get retrieves a binding, preferring the staged version if present.
	Get(ctx context.Context, id string) (Binding, error)

	// Delete stages a binding for removal.
	Delete(ctx context.Context, id string) error

	// Commit applies all staged changes atomically.
	Commit(ctx context.Context, changeReason string) error

	// Rollback discards all staged changes.
	Rollback(ctx context.Context) error
}

// Transactional extends Repository to support transactions.
type Transactional interface {
	Repository

	// Begin starts a new transaction.
	Begin(ctx context.Context) (Transaction, error)
}
