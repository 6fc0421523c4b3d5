package http

import (
	"github.com/gin-gonic/gin"
)

// processTranscribeReq binds and validates the transcribe request body.
func (h *handler) processTranscribeReq(c *gin.Context) (transcribeReq, error) {
	var req transcribeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, nil
}

// processDetectIntentReq binds and validates the detect-intent request body.
func (h *handler) processDetectIntentReq(c *gin.Context) (detectIntentReq, error) {
	var req detectIntentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, nil
}

// processConverseReq binds and validates the converse request body.
func (h *handler) processConverseReq(c *gin.Context) (converseReq, error) {
	var req converseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, nil
}

// processSynthesizeReq binds and validates the synthesize request body.
func (h *handler) processSynthesizeReq(c *gin.Context) (synthesizeReq, error) {
	var req synthesizeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, nil
}
