package middleware

import (
	pkgLog "voice-order-assistant/pkg/log"
)

// Middleware bundles the cross-cutting gin middlewares.
type Middleware struct {
	l             pkgLog.Logger
	allowedOrigin string
}

func New(l pkgLog.Logger, allowedOrigin string) Middleware {
	return Middleware{
		l:             l,
		allowedOrigin: allowedOrigin,
	}
}
