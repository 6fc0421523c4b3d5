package repository

import (
	"context"
	"errors"

	"voice-order-assistant/internal/model"
)

// ErrMenuItemNotFound is returned when no menu item matches a name.
var ErrMenuItemNotFound = errors.New("menu item not found")

// MenuRepository resolves spoken item names against the menu.
type MenuRepository interface {
	// GetByName looks an item up case-insensitively.
	GetByName(ctx context.Context, name string) (model.MenuItem, error)
}

// DraftRepository owns the fulfillment-side order drafts per agent session.
// Same snapshot semantics as the relay's session store: callers get copies
// and publish with Save; same-session writes race last-write-wins.
type DraftRepository interface {
	GetOrCreate(ctx context.Context, sessionID string) (model.OrderDraft, error)
	Reset(ctx context.Context, sessionID string) (model.OrderDraft, error)
	Save(ctx context.Context, sessionID string, draft model.OrderDraft) error
}
