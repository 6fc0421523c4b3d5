package repository

import (
	"context"

	"voice-order-assistant/internal/model"
)

// SessionRepository owns all session records for the process lifetime.
// Implementations return snapshots: callers mutate their own copy and
// publish it with Save. There is no per-session mutual exclusion;
// concurrent turns on the same session id race last-write-wins.
type SessionRepository interface {
	// GetOrCreate returns the existing session or installs a fresh empty one
	// (no items, nil total) on first reference.
	GetOrCreate(ctx context.Context, sessionID string) (model.Session, error)

	// Reset discards any existing session and installs a fresh empty one.
	Reset(ctx context.Context, sessionID string) (model.Session, error)

	// Save installs the given session snapshot under the session id.
	Save(ctx context.Context, sessionID string, session model.Session) error
}
