package fulfillment

import (
	"voice-order-assistant/internal/fulfillment/repository"
	pkgLog "voice-order-assistant/pkg/log"
)

// Handler services Dialogflow webhook calls against the menu and the
// per-session order drafts.
type Handler struct {
	l        pkgLog.Logger
	menu     repository.MenuRepository
	drafts   repository.DraftRepository
	security *SecurityValidator
}

// New creates a new fulfillment webhook handler.
func New(l pkgLog.Logger, menu repository.MenuRepository, drafts repository.DraftRepository, security *SecurityValidator) *Handler {
	return &Handler{
		l:        l,
		menu:     menu,
		drafts:   drafts,
		security: security,
	}
}
