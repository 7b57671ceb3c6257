package audit

import (
	"context"
	"errors"
)

// ErrStorageClosed indicates that audit storage is closed
var ErrStorageClosed = errors.New("audit storage is closed")

// Storage defines interface for persisting audit events
type Storage interface {
	// SaveEvent stores a single audit event
	SaveEvent(ctx context.Context, event *Event) error

	// RecentEvents returns up to limit most recent events, newest first
	RecentEvents(ctx context.Context, limit int) ([]Event, error)

	// Close releases storage resources
	Close() error
}
