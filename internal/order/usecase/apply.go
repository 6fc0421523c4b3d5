package usecase

import (
	"fmt"

	"voice-order-assistant/internal/model"
	"voice-order-assistant/pkg/dialogflow"
)

// applyIntentResult merges an intent result into a session snapshot.
// A structured order summary replaces the item list wholesale (never a
// merge) and replaces the total when the payload reports one. Without a
// summary the items and total pass through unchanged. A malformed summary
// is a hard error and the returned session must not be saved.
func (uc *implUseCase) applyIntentResult(sess model.Session, result dialogflow.Result) (model.Session, error) {
	updated := sess.Clone()

	if result.OrderSummary == nil {
		return updated, nil
	}

	payloadItems, err := result.OrderSummary.OrderItems()
	if err != nil {
		return model.Session{}, fmt.Errorf("malformed order payload: %w", err)
	}

	items := make([]model.OrderItem, len(payloadItems))
	for i, it := range payloadItems {
		items[i] = model.OrderItem{
			Name:           it.Name,
			Price:          it.Price,
			Quantity:       it.Quantity,
			Size:           it.Size,
			Customizations: it.Customizations,
		}
	}
	updated.Items = items

	if result.OrderSummary.TotalAmount != nil {
		total := *result.OrderSummary.TotalAmount
		updated.Total = &total
	}

	return updated, nil
}
