package memory

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"voice-order-assistant/internal/model"
	pkgLog "voice-order-assistant/pkg/log"
)

const (
	DefaultMaxEntries = 10000
	DefaultTTL        = 30 * time.Minute
)

// Config bounds the in-memory session store. Sessions idle longer than TTL
// or past the capacity limit are evicted; an evicted session id simply
// starts over empty on its next turn.
type Config struct {
	MaxEntries int
	TTL        time.Duration
}

// Store is an in-memory SessionRepository backed by an expiring LRU.
// It hands out deep copies so request pipelines never share session memory;
// concurrent Save calls for the same id race last-write-wins.
type Store struct {
	l        pkgLog.Logger
	sessions *expirable.LRU[string, model.Session]
}

// New creates a new in-memory session store.
func New(l pkgLog.Logger, cfg Config) *Store {
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = DefaultMaxEntries
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	return &Store{
		l:        l,
		sessions: expirable.NewLRU[string, model.Session](cfg.MaxEntries, nil, cfg.TTL),
	}
}

// GetOrCreate returns a copy of the stored session, creating an empty one
// on first reference.
func (s *Store) GetOrCreate(ctx context.Context, sessionID string) (model.Session, error) {
	if sess, ok := s.sessions.Get(sessionID); ok {
		return sess.Clone(), nil
	}

	sess := model.NewSession()
	s.sessions.Add(sessionID, sess.Clone())
	s.l.Debugf(ctx, "session store: created session %s", sessionID)
	return sess, nil
}

// Reset discards any existing session and installs a fresh empty one.
func (s *Store) Reset(ctx context.Context, sessionID string) (model.Session, error) {
	sess := model.NewSession()
	s.sessions.Add(sessionID, sess.Clone())
	s.l.Debugf(ctx, "session store: reset session %s", sessionID)
	return sess, nil
}

// Save installs the session snapshot under the session id.
func (s *Store) Save(ctx context.Context, sessionID string, session model.Session) error {
	s.sessions.Add(sessionID, session.Clone())
	return nil
}

// Len reports the number of live sessions, for observability.
func (s *Store) Len() int {
	return s.sessions.Len()
}
