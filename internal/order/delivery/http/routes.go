package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes maps the versioned voice API onto Handler methods.
func RegisterRoutes(rg *gin.RouterGroup, h Handler) {
	voice := rg.Group("/voice")
	{
		voice.POST("/transcribe", h.Transcribe)
		voice.POST("/detect-intent", h.DetectIntent)
		voice.POST("/converse", h.Converse)
		voice.POST("/synthesize", h.Synthesize)
		voice.GET("/sessions/:id", h.SessionDetail)
	}
}

// RegisterLegacyRoutes keeps the pre-versioned top-level endpoints alive for
// clients that predate the versioned API.
func RegisterLegacyRoutes(engine *gin.Engine, h Handler) {
	engine.POST("/transcribe", h.TranscribeLegacy)
	engine.POST("/detect-intent", h.DetectIntentLegacy)
	engine.POST("/synthesize", h.SynthesizeLegacy)
}
