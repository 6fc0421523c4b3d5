package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"voice-order-assistant/pkg/response"
)

// Transcribe godoc
// @Summary     Transcribe captured audio
// @Description Transcribes base64-encoded WEBM/Opus voice audio to text.
// @Tags        Voice
// @Accept      json
// @Produce     json
// @Param       body body transcribeReq true "Captured audio"
// @Success     200 {object} response.Resp{data=transcribeResp}
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     502 {object} response.Resp "Transcription service failure"
// @Router      /api/v1/voice/transcribe [POST]
func (h *handler) Transcribe(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processTranscribeReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	input, err := req.toInput()
	if err != nil {
		response.Error(c, err)
		return
	}

	output, err := h.uc.Transcribe(ctx, input)
	if err != nil {
		h.l.Errorf(ctx, "uc.Transcribe: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, newTranscribeResp(output))
}

// DetectIntent godoc
// @Summary     Process a conversational turn
// @Description Detects intent for the transcript and returns the accumulated order.
// @Tags        Voice
// @Accept      json
// @Produce     json
// @Param       body body detectIntentReq true "Turn data"
// @Success     200 {object} response.Resp{data=detectIntentResp}
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     502 {object} response.Resp "Intent service failure or malformed payload"
// @Router      /api/v1/voice/detect-intent [POST]
func (h *handler) DetectIntent(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processDetectIntentReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	output, err := h.uc.ProcessTurn(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.ProcessTurn: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, newDetectIntentResp(output))
}

// Converse godoc
// @Summary     Run a full voice turn
// @Description Transcribes the audio and processes the transcript as a turn in one call.
// @Tags        Voice
// @Accept      json
// @Produce     json
// @Param       body body converseReq true "Captured audio and session"
// @Success     200 {object} response.Resp{data=converseResp}
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     502 {object} response.Resp "Collaborator failure"
// @Router      /api/v1/voice/converse [POST]
func (h *handler) Converse(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processConverseReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	input, err := req.toInput()
	if err != nil {
		response.Error(c, err)
		return
	}

	output, err := h.uc.Converse(ctx, input)
	if err != nil {
		h.l.Errorf(ctx, "uc.Converse: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, newConverseResp(output))
}

// Synthesize godoc
// @Summary     Synthesize speech
// @Description Renders response text as MP3 audio bytes.
// @Tags        Voice
// @Accept      json
// @Produce     audio/mpeg
// @Param       body body synthesizeReq true "Text to speak"
// @Success     200 {string} binary "MP3 audio"
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     502 {object} response.Resp "Synthesis service failure"
// @Router      /api/v1/voice/synthesize [POST]
func (h *handler) Synthesize(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processSynthesizeReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	output, err := h.uc.Synthesize(ctx, synthesizeInput(req))
	if err != nil {
		h.l.Errorf(ctx, "uc.Synthesize: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	c.Data(http.StatusOK, output.ContentType, output.Audio)
}

// SessionDetail godoc
// @Summary     Get session order state
// @Description Returns the accumulated items, total and turn history for a session.
// @Tags        Voice
// @Produce     json
// @Param       id path string true "Session ID"
// @Success     200 {object} response.Resp{data=sessionResp}
// @Failure     400 {object} response.Resp "Bad Request"
// @Router      /api/v1/voice/sessions/{id} [GET]
func (h *handler) SessionDetail(c *gin.Context) {
	ctx := c.Request.Context()

	id := c.Param("id")
	output, err := h.uc.SessionDetail(ctx, id)
	if err != nil {
		h.l.Errorf(ctx, "uc.SessionDetail: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, newSessionResp(output))
}
