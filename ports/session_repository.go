package ports

import (
	"context"

	"ikigai/domain/session"
)

// SessionRepository defines the interface for session persistence.
// The store is the final arbiter of hash uniqueness; HashExists is only a
// pre-check used during hash generation. Update is keyed by hash and is
// last-write-wins: concurrent writers are not coordinated here.
type SessionRepository interface {
	// Create persists a new session and returns it with its storage id assigned
	Create(ctx context.Context, s *session.Session) (*session.Session, error)

	// FindByHash returns the session with the given public hash, or nil when
	// no such session exists
	FindByHash(ctx context.Context, hash string) (*session.Session, error)

	// Update persists the mutable fields of an existing session, keyed by
	// hash. Fails with a NOT_FOUND error when the hash no longer exists.
	Update(ctx context.Context, s *session.Session) (*session.Session, error)

	// HashExists reports whether a session with the given hash already exists
	HashExists(ctx context.Context, hash string) (bool, error)
}
