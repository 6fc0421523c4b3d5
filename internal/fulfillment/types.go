package fulfillment

import "strings"

// Intent display names the webhook services.
const (
	IntentOrderFood     = "order.food"
	IntentOrderDrink    = "order.drink"
	IntentOrderSize     = "order.size"
	IntentOrderModify   = "order.modify"
	IntentOrderQuantity = "order.quantity"
	IntentOrderRemove   = "order.remove"
	IntentOrderComplete = "order.complete"
)

// WebhookRequest is the Dialogflow webhook request envelope, reduced to
// the fields the fulfillment handlers read.
type WebhookRequest struct {
	Session     string      `json:"session"`
	QueryResult QueryResult `json:"queryResult"`
}

type QueryResult struct {
	QueryText      string                 `json:"queryText"`
	Intent         Intent                 `json:"intent"`
	Parameters     map[string]interface{} `json:"parameters"`
	OutputContexts []OutputContext        `json:"outputContexts"`
}

type Intent struct {
	DisplayName string `json:"displayName"`
}

// OutputContext is a Dialogflow conversation context. LifespanCount is
// always serialized: sending a context back with zero lifespan is how the
// agent is told to drop it.
type OutputContext struct {
	Name          string                 `json:"name"`
	LifespanCount int64                  `json:"lifespanCount"`
	Parameters    map[string]interface{} `json:"parameters,omitempty"`
}

// WebhookResponse is what Dialogflow forwards to the relay: fulfillment
// text plus the structured order summary payload the accumulator consumes.
type WebhookResponse struct {
	FulfillmentText     string               `json:"fulfillmentText"`
	FulfillmentMessages []FulfillmentMessage `json:"fulfillmentMessages"`
	Payload             Payload              `json:"payload"`
	OutputContexts      []OutputContext      `json:"outputContexts,omitempty"`
}

type FulfillmentMessage struct {
	Text MessageText `json:"text"`
}

type MessageText struct {
	Text []string `json:"text"`
}

// Payload carries the order summary under the key the relay's payload
// schema expects.
type Payload struct {
	OrderSummary OrderSummary `json:"order_summary"`
}

type OrderSummary struct {
	Items       []SummaryLine `json:"items"`
	TotalAmount float64       `json:"total_amount"`
	ItemCount   int64         `json:"item_count"`
}

type SummaryLine struct {
	ItemID         string   `json:"item_id"`
	Name           string   `json:"name"`
	Quantity       int64    `json:"quantity"`
	BasePrice      float64  `json:"base_price"`
	Customizations []string `json:"customizations"`
	Size           *string  `json:"size,omitempty"`
	SizePrice      *float64 `json:"size_price,omitempty"`
	ItemTotal      float64  `json:"item_total"`
}

// paramString reads a Dialogflow parameter that may arrive as a string or
// as a one-element list.
func paramString(params map[string]interface{}, key string) string {
	switch v := params[key].(type) {
	case string:
		return v
	case []interface{}:
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

// paramStrings reads a Dialogflow parameter as a list of strings, accepting
// a bare string as a one-element list.
func paramStrings(params map[string]interface{}, key string) []string {
	switch v := params[key].(type) {
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// paramQuantity reads the numeric quantity parameter, defaulting to 1.
func paramQuantity(params map[string]interface{}, key string) int64 {
	if f, ok := params[key].(float64); ok && f >= 1 {
		return int64(f)
	}
	return 1
}

// contextParam reads a parameter from the named output context, matched by
// the "/contexts/<name>" suffix of the context resource name.
func contextParam(contexts []OutputContext, name, key string) string {
	for _, octx := range contexts {
		if strings.HasSuffix(octx.Name, "/contexts/"+name) {
			return paramString(octx.Parameters, key)
		}
	}
	return ""
}

// sessionIDFromContexts extracts the session id from the first output
// context resource name (".../sessions/<id>/contexts/<name>").
func sessionIDFromContexts(contexts []OutputContext) string {
	if len(contexts) == 0 {
		return ""
	}
	name := contexts[0].Name
	_, after, found := strings.Cut(name, "/sessions/")
	if !found {
		return ""
	}
	id, _, _ := strings.Cut(after, "/contexts/")
	return id
}
