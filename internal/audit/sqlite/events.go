package sqlite

import (
	"context"
	"fmt"

	"github.com/hunterfit/gateway/internal/audit"
)

// Compile-time check that Storage implements audit.Storage
var _ audit.Storage = (*Storage)(nil)

// SaveEvent stores a single audit event
func (s *Storage) SaveEvent(ctx context.Context, event *audit.Event) error {
	if s.closed.Load() {
		return audit.ErrStorageClosed
	}

	if event == nil {
		return fmt.Errorf("event is nil")
	}

	query := `
		INSERT INTO audit_events (id, kind, subject, remote_addr, detail, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		event.ID,
		string(event.Kind),
		event.Subject,
		event.RemoteAddr,
		event.Detail,
		event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert audit event: %w", err)
	}

	return nil
}

// RecentEvents returns up to limit most recent events, newest first
func (s *Storage) RecentEvents(ctx context.Context, limit int) ([]audit.Event, error) {
	if s.closed.Load() {
		return nil, audit.ErrStorageClosed
	}

	if limit <= 0 {
		limit = 100
	}

	query := `
		SELECT id, kind, subject, remote_addr, detail, created_at
		FROM audit_events
		ORDER BY created_at DESC
		LIMIT ?
	`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit events: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var events []audit.Event
	for rows.Next() {
		var event audit.Event
		var kind string

		if err := rows.Scan(
			&event.ID,
			&kind,
			&event.Subject,
			&event.RemoteAddr,
			&event.Detail,
			&event.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan audit event: %w", err)
		}

		event.Kind = audit.Kind(kind)
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate audit events: %w", err)
	}

	return events, nil
}
