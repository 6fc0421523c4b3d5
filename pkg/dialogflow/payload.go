package dialogflow

import "fmt"

// The fulfillment webhook attaches its structured order state to the
// detect-intent response as a JSON payload. All leaf fields are pointers so
// a single validation step can tell "absent" apart from zero values.

// webhookPayload is the top-level payload envelope.
type webhookPayload struct {
	OrderSummary *OrderSummary `json:"order_summary"`
}

// OrderSummary is the accumulated order as reported by the fulfillment webhook.
type OrderSummary struct {
	Items       []SummaryItem `json:"items"`
	TotalAmount *float64      `json:"total_amount"`
	ItemCount   *int64        `json:"item_count"`
}

// SummaryItem is one order line inside the payload.
type SummaryItem struct {
	ItemID         *string  `json:"item_id"`
	Name           *string  `json:"name"`
	Quantity       *float64 `json:"quantity"`
	BasePrice      *float64 `json:"base_price"`
	Size           *string  `json:"size"`
	SizePrice      *float64 `json:"size_price"`
	ItemTotal      *float64 `json:"item_total"`
	Customizations []string `json:"customizations"`
}

// OrderItem is a validated order line extracted from the payload.
// Size stays nil for items without a size concept. Customizations may be nil.
type OrderItem struct {
	Name           string
	Price          float64
	Quantity       int64
	Size           *string
	Customizations []string
}

// PayloadError reports a malformed payload item field.
type PayloadError struct {
	Index int
	Field string
}

func (e *PayloadError) Error() string {
	return fmt.Sprintf("order_summary item %d: missing or invalid field %q", e.Index, e.Field)
}

// OrderItems validates every payload item and converts them into typed
// order lines. Name, item_total and quantity are required; a missing one is
// a hard error for the whole payload, never silently skipped.
func (s *OrderSummary) OrderItems() ([]OrderItem, error) {
	items := make([]OrderItem, 0, len(s.Items))
	for i, raw := range s.Items {
		if raw.Name == nil || *raw.Name == "" {
			return nil, &PayloadError{Index: i, Field: "name"}
		}
		if raw.ItemTotal == nil {
			return nil, &PayloadError{Index: i, Field: "item_total"}
		}
		if raw.Quantity == nil || *raw.Quantity < 1 {
			return nil, &PayloadError{Index: i, Field: "quantity"}
		}

		item := OrderItem{
			Name:     *raw.Name,
			Price:    *raw.ItemTotal,
			Quantity: int64(*raw.Quantity),
			Size:     raw.Size,
		}
		if len(raw.Customizations) > 0 {
			item.Customizations = append([]string(nil), raw.Customizations...)
		}
		items = append(items, item)
	}
	return items, nil
}
