package fulfillment

import "errors"

// Domain-specific errors for the fulfillment package.
var (
	ErrNoSessionID   = errors.New("no session id in output contexts")
	ErrNoItemName    = errors.New("no item name in parameters")
	ErrUnknownIntent = errors.New("no handler for intent")
)
