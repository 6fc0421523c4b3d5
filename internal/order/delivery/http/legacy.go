package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Legacy handlers keep the pre-versioned wire contract so existing browser
// clients keep working: bare JSON bodies on success and a plain-text 500 on
// any failure, with no envelope.

func (h *handler) TranscribeLegacy(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processTranscribeReq(c)
	if err != nil {
		c.String(http.StatusInternalServerError, "Error transcribing audio")
		return
	}

	input, err := req.toInput()
	if err != nil {
		c.String(http.StatusInternalServerError, "Error transcribing audio")
		return
	}

	output, err := h.uc.Transcribe(ctx, input)
	if err != nil {
		h.l.Errorf(ctx, "uc.Transcribe: %v", err)
		c.String(http.StatusInternalServerError, "Error transcribing audio")
		return
	}

	c.JSON(http.StatusOK, newTranscribeResp(output))
}

func (h *handler) DetectIntentLegacy(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processDetectIntentReq(c)
	if err != nil {
		c.String(http.StatusInternalServerError, "Error processing request")
		return
	}

	output, err := h.uc.ProcessTurn(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.ProcessTurn: %v", err)
		c.String(http.StatusInternalServerError, "Error processing request")
		return
	}

	c.JSON(http.StatusOK, newDetectIntentResp(output))
}

func (h *handler) SynthesizeLegacy(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processSynthesizeReq(c)
	if err != nil {
		c.String(http.StatusInternalServerError, "Error synthesizing speech")
		return
	}

	output, err := h.uc.Synthesize(ctx, synthesizeInput(req))
	if err != nil {
		h.l.Errorf(ctx, "uc.Synthesize: %v", err)
		c.String(http.StatusInternalServerError, "Error synthesizing speech")
		return
	}

	c.Data(http.StatusOK, output.ContentType, output.Audio)
}
