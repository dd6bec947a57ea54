package ports

import (
	"context"
	"time"

	"ikigai/domain/session"
)

// AdminReader exposes the read-side queries the admin dashboard needs.
// Kept separate from SessionRepository so the core lifecycle never depends
// on reporting concerns.
type AdminReader interface {
	// CountSince returns how many sessions were created at or after the cutoff
	CountSince(ctx context.Context, since time.Time) (int, error)

	// CountByStatusSince returns how many sessions with the given status were
	// created at or after the cutoff
	CountByStatusSince(ctx context.Context, status session.Status, since time.Time) (int, error)

	// ListSince returns snapshots of sessions created at or after the cutoff,
	// newest first
	ListSince(ctx context.Context, since time.Time, limit int) ([]session.Snapshot, error)
}
