package model

// OrderItem is a single line of an accumulated order.
// Name and Price are always present. Size is nil for items with no size
// concept (most food), not an empty string. Customizations may be empty,
// in which case the field is omitted from JSON.
type OrderItem struct {
	Name           string   `json:"name"`
	Price          float64  `json:"price"`
	Quantity       int64    `json:"quantity"`
	Size           *string  `json:"size,omitempty"`
	Customizations []string `json:"customizations,omitempty"`
}

// Turn is one conversational exchange: the transcribed prompt and the
// fulfillment text resolved for it. FulfillmentText stays nil until the
// intent collaborator has responded.
type Turn struct {
	Prompt          string  `json:"prompt"`
	FulfillmentText *string `json:"fulfillmentText"`
}

// Session is the accumulated order state of one multi-turn conversation.
// Total is nil until the intent collaborator has reported a running total.
// Turns are kept newest first. NextTurnNewOrder marks that the following
// turn must start from a fresh order (payment completed on this one).
type Session struct {
	Items            []OrderItem `json:"items"`
	Total            *float64    `json:"total"`
	Turns            []Turn      `json:"turns"`
	NextTurnNewOrder bool        `json:"nextTurnNewOrder"`
}

// NewSession returns an empty session: no items, unknown total, no turns.
func NewSession() Session {
	return Session{Items: []OrderItem{}}
}

// Clone returns a deep copy of the session so a request pipeline can
// mutate its own snapshot and only publish it on success.
func (s Session) Clone() Session {
	out := Session{
		Total:            nil,
		NextTurnNewOrder: s.NextTurnNewOrder,
	}
	if s.Total != nil {
		t := *s.Total
		out.Total = &t
	}
	out.Items = make([]OrderItem, len(s.Items))
	for i, it := range s.Items {
		out.Items[i] = it.clone()
	}
	if len(s.Turns) > 0 {
		out.Turns = make([]Turn, len(s.Turns))
		for i, tn := range s.Turns {
			out.Turns[i] = tn.clone()
		}
	}
	return out
}

func (i OrderItem) clone() OrderItem {
	out := i
	if i.Size != nil {
		sz := *i.Size
		out.Size = &sz
	}
	if i.Customizations != nil {
		out.Customizations = append([]string(nil), i.Customizations...)
	}
	return out
}

func (t Turn) clone() Turn {
	out := t
	if t.FulfillmentText != nil {
		ft := *t.FulfillmentText
		out.FulfillmentText = &ft
	}
	return out
}
