package dialogflow

import "context"

// IDialogflow defines the intent-detection collaborator boundary.
// Implementations are safe for concurrent use.
type IDialogflow interface {
	DetectIntent(ctx context.Context, sessionID, query string) (Result, error)
}

// Result is the outcome of one detect-intent call.
// OrderSummary is nil when the turn carried no structured order payload.
type Result struct {
	FulfillmentText string
	OrderSummary    *OrderSummary
}
