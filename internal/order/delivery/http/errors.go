package http

import (
	"errors"
	"net/http"

	"voice-order-assistant/internal/order"
	"voice-order-assistant/pkg/dialogflow"
	pkgErrors "voice-order-assistant/pkg/errors"
)

// mapError translates domain/use-case errors into HTTP errors.
// Collaborator failures surface as 502: the turn is terminal, the caller
// must re-initiate, and session state is untouched.
func (h *handler) mapError(err error) error {
	var payloadErr *dialogflow.PayloadError
	switch {
	case errors.Is(err, order.ErrEmptyAudio),
		errors.Is(err, order.ErrEmptyQuery),
		errors.Is(err, order.ErrEmptySessionID),
		errors.Is(err, order.ErrEmptyText):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.As(err, &payloadErr):
		return pkgErrors.NewHTTPError(http.StatusBadGateway, "malformed intent payload: "+payloadErr.Error())
	default:
		return pkgErrors.NewHTTPError(http.StatusBadGateway, "upstream service failure")
	}
}
