package fulfillment

import (
	"context"

	"voice-order-assistant/internal/model"
)

// respond builds a webhook response carrying the session's current order
// summary, loading the draft first.
func (h *Handler) respond(ctx context.Context, sessionID, text string) WebhookResponse {
	draft, err := h.drafts.GetOrCreate(ctx, sessionID)
	if err != nil {
		h.l.Errorf(ctx, "fulfillment: failed to load draft for summary: %v", err)
		return fallbackResponse()
	}
	return h.respondWithDraft(ctx, sessionID, draft, text)
}

func (h *Handler) respondWithContexts(ctx context.Context, sessionID, text string, contexts []OutputContext) WebhookResponse {
	resp := h.respond(ctx, sessionID, text)
	resp.OutputContexts = contexts
	return resp
}

// respondWithDraft builds a webhook response from an already-loaded draft.
// Every response carries a summary, even an empty one, so the relay can
// always run its single validation step.
func (h *Handler) respondWithDraft(_ context.Context, _ string, draft model.OrderDraft, text string) WebhookResponse {
	return WebhookResponse{
		FulfillmentText: text,
		FulfillmentMessages: []FulfillmentMessage{
			{Text: MessageText{Text: []string{text}}},
		},
		Payload: Payload{OrderSummary: buildSummary(draft)},
	}
}

// buildSummary renders the draft in the payload shape the relay consumes.
func buildSummary(draft model.OrderDraft) OrderSummary {
	lines := make([]SummaryLine, len(draft.Lines))
	for i, line := range draft.Lines {
		lines[i] = SummaryLine{
			ItemID:         line.ItemID,
			Name:           line.Name,
			Quantity:       line.Quantity,
			BasePrice:      line.BasePrice,
			Customizations: line.Customizations,
			Size:           line.Size,
			SizePrice:      line.SizePrice,
			ItemTotal:      line.ItemTotal,
		}
		if lines[i].Customizations == nil {
			lines[i].Customizations = []string{}
		}
	}
	return OrderSummary{
		Items:       lines,
		TotalAmount: draft.TotalAmount,
		ItemCount:   draft.ItemCount(),
	}
}
