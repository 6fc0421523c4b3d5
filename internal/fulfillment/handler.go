package fulfillment

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"voice-order-assistant/pkg/response"
)

// FallbackText is returned for any request the webhook cannot service.
// It deliberately carries the literal "error" marker the relay checks for.
const FallbackText = "Sorry, there was an error processing your request."

// HandleDialogflowWebhook is the gin handler for Dialogflow fulfillment
// calls. Dialogflow treats non-200 responses as fulfillment outages, so
// handler-level problems are reported as 200 with the fallback text.
func (h *Handler) HandleDialogflowWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	if h.security != nil {
		if err := h.security.ValidateToken(c.GetHeader(TokenHeader)); err != nil {
			h.l.Warnf(ctx, "webhook token rejected: %v", err)
			response.Unauthorized(c)
			return
		}
	}

	var req WebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Errorf(ctx, "failed to parse webhook request: %v", err)
		c.JSON(http.StatusOK, fallbackResponse())
		return
	}

	sessionID := sessionIDFromContexts(req.QueryResult.OutputContexts)
	if sessionID == "" {
		// Some agent configurations omit contexts; fall back to the
		// session resource name on the request itself.
		_, after, found := strings.Cut(req.Session, "/sessions/")
		if found && after != "" {
			sessionID = after
		} else {
			h.l.Errorf(ctx, "webhook request has no session id")
			c.JSON(http.StatusOK, fallbackResponse())
			return
		}
	}

	if h.security != nil {
		if err := h.security.CheckRateLimit(sessionID); err != nil {
			h.l.Warnf(ctx, "webhook rate limit: %v", err)
			response.TooManyRequests(c)
			return
		}
	}

	c.JSON(http.StatusOK, h.dispatch(ctx, req, sessionID))
}

// dispatch routes the request to the intent handler.
func (h *Handler) dispatch(ctx context.Context, req WebhookRequest, sessionID string) WebhookResponse {
	intent := req.QueryResult.Intent.DisplayName
	h.l.Infof(ctx, "fulfillment: intent=%s session=%s", intent, sessionID)

	var (
		resp WebhookResponse
		err  error
	)
	switch intent {
	case IntentOrderFood:
		resp, err = h.handleOrderItem(ctx, req, sessionID, "food-item")
	case IntentOrderDrink:
		resp, err = h.handleOrderItem(ctx, req, sessionID, "drink-item")
	case IntentOrderSize:
		resp, err = h.handleOrderSize(ctx, req, sessionID)
	case IntentOrderModify:
		resp, err = h.handleOrderModify(ctx, req, sessionID)
	case IntentOrderQuantity:
		resp, err = h.handleOrderQuantity(ctx, req, sessionID)
	case IntentOrderRemove:
		resp, err = h.handleOrderRemove(ctx, req, sessionID)
	case IntentOrderComplete:
		resp, err = h.handleOrderComplete(ctx, req, sessionID)
	default:
		h.l.Warnf(ctx, "fulfillment: no handler for intent %s", intent)
		return h.respond(ctx, sessionID,
			"I'm not sure how to handle that request. Could you please try again?")
	}

	if err != nil {
		h.l.Errorf(ctx, "fulfillment: intent %s failed: %v", intent, err)
		return fallbackResponse()
	}
	return resp
}

func fallbackResponse() WebhookResponse {
	return WebhookResponse{
		FulfillmentText: FallbackText,
		FulfillmentMessages: []FulfillmentMessage{
			{Text: MessageText{Text: []string{FallbackText}}},
		},
		Payload: Payload{OrderSummary: OrderSummary{Items: []SummaryLine{}}},
	}
}
