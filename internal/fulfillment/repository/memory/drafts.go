package memory

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"voice-order-assistant/internal/model"
	pkgLog "voice-order-assistant/pkg/log"
)

const (
	DefaultMaxDrafts = 10000
	DefaultDraftTTL  = 30 * time.Minute
)

// Drafts is an in-memory DraftRepository backed by an expiring LRU.
type Drafts struct {
	l      pkgLog.Logger
	drafts *expirable.LRU[string, model.OrderDraft]
}

// NewDrafts creates a new draft store. Zero values fall back to defaults.
func NewDrafts(l pkgLog.Logger, maxEntries int, ttl time.Duration) *Drafts {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxDrafts
	}
	if ttl <= 0 {
		ttl = DefaultDraftTTL
	}
	return &Drafts{
		l:      l,
		drafts: expirable.NewLRU[string, model.OrderDraft](maxEntries, nil, ttl),
	}
}

func (d *Drafts) GetOrCreate(ctx context.Context, sessionID string) (model.OrderDraft, error) {
	if draft, ok := d.drafts.Get(sessionID); ok {
		return draft.Clone(), nil
	}

	draft := model.NewOrderDraft()
	d.drafts.Add(sessionID, draft.Clone())
	d.l.Debugf(ctx, "draft store: created draft for session %s", sessionID)
	return draft, nil
}

func (d *Drafts) Reset(ctx context.Context, sessionID string) (model.OrderDraft, error) {
	draft := model.NewOrderDraft()
	d.drafts.Add(sessionID, draft.Clone())
	d.l.Debugf(ctx, "draft store: reset draft for session %s", sessionID)
	return draft, nil
}

func (d *Drafts) Save(_ context.Context, sessionID string, draft model.OrderDraft) error {
	d.drafts.Add(sessionID, draft.Clone())
	return nil
}
