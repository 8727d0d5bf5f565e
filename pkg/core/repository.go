package core

import "context"

// Repository defines the contract for persisting the note collection.
// The collection is always handled as a whole.
type Repository interface {
	// Initialize ensures the underlying storage is ready (e.g., create directories).
	Initialize(ctx context.Context) error

	// Load returns the persisted collection in stored order.
	// A store that was never written yields an empty collection.
	Load(ctx context.Context) ([]Note, error)

	// Replace persists the full collection. Implementations must make the
	// replacement atomic from the caller's perspective.
	Replace(ctx context.Context, notes []Note) error
}

// Watchable is implemented by repositories able to report external changes.
type Watchable interface {
	// Watch emits an Event every time the backing store changes.
	// The channel is closed when ctx is done.
	Watch(ctx context.Context) (<-chan Event, error)
}
