package http

import (
	"github.com/gin-gonic/gin"

	"voice-order-assistant/internal/order"
	pkgLog "voice-order-assistant/pkg/log"
)

// Handler is the public interface for the voice order HTTP delivery layer.
type Handler interface {
	Transcribe(c *gin.Context)
	DetectIntent(c *gin.Context)
	Converse(c *gin.Context)
	Synthesize(c *gin.Context)
	SessionDetail(c *gin.Context)

	// Legacy routes keep the pre-versioned wire contract: bare JSON bodies on
	// success, plain-text errors.
	TranscribeLegacy(c *gin.Context)
	DetectIntentLegacy(c *gin.Context)
	SynthesizeLegacy(c *gin.Context)
}

type handler struct {
	l  pkgLog.Logger
	uc order.UseCase
}

// New creates a new HTTP handler for the voice order domain.
func New(l pkgLog.Logger, uc order.UseCase) *handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}
