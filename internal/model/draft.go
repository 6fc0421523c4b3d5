package model

// OrderLine is one line of an order as the fulfillment webhook tracks it,
// with pricing broken out the way the menu defines it. Size and SizePrice
// are only set for items that have sizes.
type OrderLine struct {
	ItemID         string   `json:"item_id"`
	Name           string   `json:"name"`
	Quantity       int64    `json:"quantity"`
	BasePrice      float64  `json:"base_price"`
	Customizations []string `json:"customizations"`
	Size           *string  `json:"size,omitempty"`
	SizePrice      *float64 `json:"size_price,omitempty"`
	ItemTotal      float64  `json:"item_total"`
}

// OrderDraft is the fulfillment-side order being assembled during a
// conversation, before the relay ever sees it as a payload.
type OrderDraft struct {
	Lines       []OrderLine
	TotalAmount float64
}

// NewOrderDraft returns an empty draft.
func NewOrderDraft() OrderDraft {
	return OrderDraft{Lines: []OrderLine{}}
}

// Clone returns a deep copy of the draft.
func (d OrderDraft) Clone() OrderDraft {
	out := OrderDraft{TotalAmount: d.TotalAmount}
	out.Lines = make([]OrderLine, len(d.Lines))
	for i, line := range d.Lines {
		out.Lines[i] = line.clone()
	}
	return out
}

func (l OrderLine) clone() OrderLine {
	out := l
	if l.Size != nil {
		sz := *l.Size
		out.Size = &sz
	}
	if l.SizePrice != nil {
		sp := *l.SizePrice
		out.SizePrice = &sp
	}
	if l.Customizations != nil {
		out.Customizations = append([]string(nil), l.Customizations...)
	}
	return out
}

// ItemCount is the total number of units across all lines.
func (d OrderDraft) ItemCount() int64 {
	var n int64
	for _, line := range d.Lines {
		n += line.Quantity
	}
	return n
}
