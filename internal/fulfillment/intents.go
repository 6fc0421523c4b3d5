package fulfillment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"voice-order-assistant/internal/fulfillment/repository"
	"voice-order-assistant/internal/model"
)

// handleOrderItem services order.food and order.drink; the two intents
// differ only in the parameter carrying the item name.
func (h *Handler) handleOrderItem(ctx context.Context, req WebhookRequest, sessionID, nameParam string) (WebhookResponse, error) {
	params := req.QueryResult.Parameters

	name := paramString(params, nameParam)
	if name == "" {
		return h.respond(ctx, sessionID,
			"I'm sorry, I didn't catch what you wanted to order. Could you please repeat that?"), nil
	}

	item, err := h.menu.GetByName(ctx, name)
	if errors.Is(err, repository.ErrMenuItemNotFound) {
		return h.respond(ctx, sessionID,
			fmt.Sprintf("I'm sorry, we don't have %s on our menu.", name)), nil
	}
	if err != nil {
		return WebhookResponse{}, err
	}

	quantity := paramQuantity(params, "number")

	customizations, invalid := formatCustomizations(item,
		paramStrings(params, "modification-type"),
		paramStrings(params, "food-components"))
	if invalid != "" {
		return h.respond(ctx, sessionID,
			fmt.Sprintf("I'm sorry, %s doesn't come with %s.", item.Name, invalid)), nil
	}

	size := strings.ToLower(paramString(params, "drink-size"))
	if item.HasSize && size == "" {
		// Remember what we are waiting on so the size answer lands back here.
		return h.respondWithContexts(ctx, sessionID,
			fmt.Sprintf("What size would you like for your %s?", item.Name),
			[]OutputContext{{
				Name:          req.Session + "/contexts/awaiting-size",
				LifespanCount: 2,
				Parameters: map[string]interface{}{
					"item_name": item.Name,
				},
			}}), nil
	}

	line := model.OrderLine{
		ItemID:         item.ID,
		Name:           item.Name,
		Quantity:       quantity,
		BasePrice:      item.BasePrice,
		Customizations: customizations,
	}

	if item.HasSize {
		sizePrice := item.Sizes[size]
		line.Size = &size
		line.SizePrice = &sizePrice
		line.ItemTotal = (item.BasePrice + sizePrice) * float64(quantity)
	} else {
		line.ItemTotal = item.BasePrice * float64(quantity)
	}

	draft, err := h.drafts.GetOrCreate(ctx, sessionID)
	if err != nil {
		return WebhookResponse{}, err
	}
	draft.Lines = append(draft.Lines, line)
	draft.TotalAmount += line.ItemTotal
	if err := h.drafts.Save(ctx, sessionID, draft); err != nil {
		return WebhookResponse{}, err
	}

	return h.respondWithDraft(ctx, sessionID, draft,
		fmt.Sprintf("Okay, I've added %s to your order. Anything else?", describeLine(line))), nil
}

// handleOrderSize answers the size question asked by handleOrderItem. The
// awaiting-size context names the item; without it the newest sized line on
// the draft is updated instead.
func (h *Handler) handleOrderSize(ctx context.Context, req WebhookRequest, sessionID string) (WebhookResponse, error) {
	size := strings.ToLower(paramString(req.QueryResult.Parameters, "drink-size"))
	if size == "" {
		size = strings.ToLower(contextParam(req.QueryResult.OutputContexts, "ongoing-order", "drink-size"))
	}
	if size == "" {
		return h.respond(ctx, sessionID,
			"I didn't catch what size you wanted. Could you please specify small, medium, or large?"), nil
	}

	draft, err := h.drafts.GetOrCreate(ctx, sessionID)
	if err != nil {
		return WebhookResponse{}, err
	}

	itemName := contextParam(req.QueryResult.OutputContexts, "awaiting-size", "item_name")
	if itemName == "" {
		for i := len(draft.Lines) - 1; i >= 0; i-- {
			candidate, err := h.menu.GetByName(ctx, draft.Lines[i].Name)
			if err == nil && candidate.HasSize {
				itemName = candidate.Name
				break
			}
		}
	}
	if itemName == "" {
		return h.respondWithDraft(ctx, sessionID, draft,
			"I'm not sure which item you want to set the size for. Could you please start over?"), nil
	}

	item, err := h.menu.GetByName(ctx, itemName)
	if errors.Is(err, repository.ErrMenuItemNotFound) {
		return h.respondWithDraft(ctx, sessionID, draft,
			fmt.Sprintf("I'm sorry, we don't have %s on our menu anymore.", itemName)), nil
	}
	if err != nil {
		return WebhookResponse{}, err
	}
	if !item.HasSize {
		return h.respondWithDraft(ctx, sessionID, draft,
			fmt.Sprintf("I'm sorry, but %s doesn't come in different sizes.", item.Name)), nil
	}

	sizePrice := item.Sizes[size]

	// An existing line for the item keeps its quantity and customizations;
	// otherwise the awaited item joins the draft as a single unit.
	idx := -1
	for i, line := range draft.Lines {
		if strings.EqualFold(line.Name, item.Name) {
			idx = i
			break
		}
	}
	var line model.OrderLine
	if idx >= 0 {
		line = draft.Lines[idx]
		draft.TotalAmount -= line.ItemTotal
	} else {
		line = model.OrderLine{
			ItemID:    item.ID,
			Name:      item.Name,
			Quantity:  1,
			BasePrice: item.BasePrice,
		}
	}
	line.Size = &size
	line.SizePrice = &sizePrice
	line.ItemTotal = (item.BasePrice + sizePrice) * float64(line.Quantity)
	draft.TotalAmount += line.ItemTotal
	if idx >= 0 {
		draft.Lines[idx] = line
	} else {
		draft.Lines = append(draft.Lines, line)
	}
	if err := h.drafts.Save(ctx, sessionID, draft); err != nil {
		return WebhookResponse{}, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Got it! I've updated your %s to ", item.Name)
	if line.Quantity > 1 {
		fmt.Fprintf(&b, "%d ", line.Quantity)
	}
	b.WriteString(size)
	if len(line.Customizations) > 0 {
		b.WriteString(" with " + strings.Join(line.Customizations, ", "))
	}
	b.WriteString(". Would you like anything else?")

	resp := h.respondWithDraft(ctx, sessionID, draft, b.String())
	// The size question is answered; drop the context so followups route
	// normally.
	resp.OutputContexts = []OutputContext{{
		Name: req.Session + "/contexts/awaiting-size",
	}}
	return resp, nil
}

// handleOrderModify appends customizations to the most recently ordered line.
func (h *Handler) handleOrderModify(ctx context.Context, req WebhookRequest, sessionID string) (WebhookResponse, error) {
	draft, err := h.drafts.GetOrCreate(ctx, sessionID)
	if err != nil {
		return WebhookResponse{}, err
	}
	if len(draft.Lines) == 0 {
		return h.respondWithDraft(ctx, sessionID, draft,
			"I don't see any active orders to modify. What would you like to order?"), nil
	}

	last := &draft.Lines[len(draft.Lines)-1]

	item, err := h.menu.GetByName(ctx, last.Name)
	if errors.Is(err, repository.ErrMenuItemNotFound) {
		return h.respondWithDraft(ctx, sessionID, draft,
			fmt.Sprintf("I'm sorry, I'm having trouble modifying your %s.", last.Name)), nil
	}
	if err != nil {
		return WebhookResponse{}, err
	}

	params := req.QueryResult.Parameters
	customizations, invalid := formatCustomizations(item,
		paramStrings(params, "modification-type"),
		paramStrings(params, "food-components"))
	if invalid != "" {
		return h.respondWithDraft(ctx, sessionID, draft,
			fmt.Sprintf("I'm sorry, %s doesn't come with %s.", item.Name, invalid)), nil
	}

	last.Customizations = append(last.Customizations, customizations...)
	if err := h.drafts.Save(ctx, sessionID, draft); err != nil {
		return WebhookResponse{}, err
	}

	text := fmt.Sprintf("I've updated your %s", last.Name)
	if len(customizations) > 0 {
		text += " with " + strings.Join(customizations, ", ")
	}
	text += ". Would you like anything else?"

	return h.respondWithDraft(ctx, sessionID, draft, text), nil
}

// handleOrderQuantity re-prices the most recently ordered line with a new
// quantity.
func (h *Handler) handleOrderQuantity(ctx context.Context, req WebhookRequest, sessionID string) (WebhookResponse, error) {
	f, ok := req.QueryResult.Parameters["number"].(float64)
	if !ok || f < 1 {
		return h.respond(ctx, sessionID,
			"I'm sorry, I didn't catch how many you wanted. Could you please repeat that?"), nil
	}
	quantity := int64(f)

	draft, err := h.drafts.GetOrCreate(ctx, sessionID)
	if err != nil {
		return WebhookResponse{}, err
	}
	if len(draft.Lines) == 0 {
		return h.respondWithDraft(ctx, sessionID, draft,
			"I don't see any active orders to modify. What would you like to order?"), nil
	}

	last := &draft.Lines[len(draft.Lines)-1]
	unit := last.BasePrice
	if last.SizePrice != nil {
		unit += *last.SizePrice
	}
	oldTotal := last.ItemTotal
	last.Quantity = quantity
	last.ItemTotal = unit * float64(quantity)
	draft.TotalAmount += last.ItemTotal - oldTotal
	if err := h.drafts.Save(ctx, sessionID, draft); err != nil {
		return WebhookResponse{}, err
	}

	return h.respondWithDraft(ctx, sessionID, draft,
		fmt.Sprintf("I've updated the quantity to %s. Would you like anything else?", describeLine(*last))), nil
}

// handleOrderRemove takes the first matching line off the draft.
func (h *Handler) handleOrderRemove(ctx context.Context, req WebhookRequest, sessionID string) (WebhookResponse, error) {
	params := req.QueryResult.Parameters

	name := paramString(params, "food-item")
	if name == "" {
		name = paramString(params, "drink-item")
	}
	if name == "" {
		return h.respond(ctx, sessionID,
			"I'm sorry, I didn't catch what you wanted to remove. Could you please repeat that?"), nil
	}

	draft, err := h.drafts.GetOrCreate(ctx, sessionID)
	if err != nil {
		return WebhookResponse{}, err
	}

	idx := -1
	for i, line := range draft.Lines {
		if strings.EqualFold(line.Name, name) {
			idx = i
			break
		}
	}
	if idx == -1 {
		return h.respondWithDraft(ctx, sessionID, draft,
			fmt.Sprintf("I couldn't find %s in your order.", name)), nil
	}

	removed := draft.Lines[idx]
	draft.Lines = append(draft.Lines[:idx], draft.Lines[idx+1:]...)
	draft.TotalAmount -= removed.ItemTotal
	if err := h.drafts.Save(ctx, sessionID, draft); err != nil {
		return WebhookResponse{}, err
	}

	return h.respondWithDraft(ctx, sessionID, draft,
		fmt.Sprintf("I've removed %s from your order.", removed.Name)), nil
}

// handleOrderComplete reads the order back and sends the customer to
// payment. The relay and the browser key off the "payment" wording here.
func (h *Handler) handleOrderComplete(ctx context.Context, req WebhookRequest, sessionID string) (WebhookResponse, error) {
	draft, err := h.drafts.GetOrCreate(ctx, sessionID)
	if err != nil {
		return WebhookResponse{}, err
	}

	if len(draft.Lines) == 0 {
		return h.respond(ctx, sessionID,
			"You haven't ordered anything yet. What would you like?"), nil
	}

	descriptions := make([]string, len(draft.Lines))
	for i, line := range draft.Lines {
		descriptions[i] = describeLine(line)
	}

	text := fmt.Sprintf("Great! Your order is: %s. Total amount: $%.2f. Please proceed to next window for payment.",
		strings.Join(descriptions, ", "), draft.TotalAmount)

	// The read-back carries the final summary; the draft itself is done.
	// Whatever the customer orders next starts from an empty draft, the
	// same way the relay starts a fresh session on the following turn.
	resp := h.respondWithDraft(ctx, sessionID, draft, text)
	if _, err := h.drafts.Reset(ctx, sessionID); err != nil {
		return WebhookResponse{}, err
	}
	resp.OutputContexts = []OutputContext{{
		Name: req.Session + "/contexts/awaiting-size",
	}}
	return resp, nil
}

// formatCustomizations pairs modification types with components and renders
// them in the menu's vocabulary. It returns the first component that is not
// valid for the item, or "" when everything checked out.
func formatCustomizations(item model.MenuItem, modTypes, components []string) ([]string, string) {
	var customizations []string
	for i, modType := range modTypes {
		if i >= len(components) {
			break
		}
		component := components[i]
		if modType == "" || component == "" {
			continue
		}
		if !validComponent(item, component) {
			return nil, component
		}

		switch modType {
		case "no", "without":
			customizations = append(customizations, "no "+component)
		case "extra", "add":
			customizations = append(customizations, "extra "+component)
		case "light", "heavy":
			customizations = append(customizations, modType+" "+component)
		}
	}
	return customizations, ""
}

func validComponent(item model.MenuItem, component string) bool {
	for _, c := range item.Components {
		if strings.EqualFold(c, component) {
			return true
		}
	}
	return false
}

// describeLine renders one order line for spoken read-back.
func describeLine(line model.OrderLine) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d", line.Quantity)
	if line.Size != nil {
		b.WriteString(" " + *line.Size)
	}
	b.WriteString(" " + line.Name)
	if len(line.Customizations) > 0 {
		b.WriteString(" with " + strings.Join(line.Customizations, ", "))
	}
	return b.String()
}
