package order

import "errors"

// Domain-specific errors for the order package.
var (
	ErrEmptyAudio     = errors.New("audio is empty")
	ErrEmptyQuery     = errors.New("query is empty")
	ErrEmptySessionID = errors.New("session id is empty")
	ErrEmptyText      = errors.New("text is empty")
)
