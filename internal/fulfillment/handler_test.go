package fulfillment_test

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"voice-order-assistant/internal/fulfillment"
	"voice-order-assistant/internal/fulfillment/repository/memory"
	"voice-order-assistant/internal/model"
)

// Mock logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func testMenu() *memory.Menu {
	return memory.NewMenu([]model.MenuItem{
		{
			ID:         "big-mac",
			Name:       "Big Mac",
			Category:   model.CategoryFood,
			BasePrice:  5.99,
			Components: []string{"pickles", "onions", "lettuce", "cheese"},
		},
		{
			ID:        "fries",
			Name:      "Fries",
			Category:  model.CategoryFood,
			BasePrice: 1.89,
			HasSize:   true,
			Sizes:     map[string]float64{"small": 0, "medium": 0.5, "large": 1.0},
		},
		{
			ID:        "coke",
			Name:      "Coke",
			Category:  model.CategoryDrink,
			BasePrice: 1.00,
			HasSize:   true,
			Sizes:     map[string]float64{"small": 0, "medium": 0.3, "large": 0.6},
		},
	})
}

type env struct {
	engine *gin.Engine
	drafts *memory.Drafts
}

func newEnv(security *fulfillment.SecurityValidator) env {
	gin.SetMode(gin.TestMode)
	drafts := memory.NewDrafts(&mockLogger{}, 0, 0)
	h := fulfillment.New(&mockLogger{}, testMenu(), drafts, security)

	engine := gin.New()
	engine.POST("/webhook/dialogflow", h.HandleDialogflowWebhook)
	return env{engine: engine, drafts: drafts}
}

func webhookReq(intent string, params map[string]interface{}) fulfillment.WebhookRequest {
	return fulfillment.WebhookRequest{
		Session: "projects/test-project/agent/sessions/s1",
		QueryResult: fulfillment.QueryResult{
			Intent:     fulfillment.Intent{DisplayName: intent},
			Parameters: params,
		},
	}
}

func (e env) post(t *testing.T, req fulfillment.WebhookRequest, headers map[string]string) (*httptest.ResponseRecorder, fulfillment.WebhookResponse) {
	t.Helper()
	raw, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("failed to marshal request: %v", err)
	}
	httpReq := httptest.NewRequest(http.MethodPost, "/webhook/dialogflow", bytes.NewReader(raw))
	httpReq.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		httpReq.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, httpReq)

	var resp fulfillment.WebhookResponse
	if w.Code == http.StatusOK {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}
	}
	return w, resp
}

func TestHandleOrderItem(t *testing.T) {
	t.Run("Adds Item To Draft", func(t *testing.T) {
		e := newEnv(nil)
		w, resp := e.post(t, webhookReq(fulfillment.IntentOrderFood, map[string]interface{}{
			"food-item": "big mac",
		}), nil)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if !strings.Contains(resp.FulfillmentText, "added 1 Big Mac") {
			t.Errorf("unexpected text %q", resp.FulfillmentText)
		}
		if !almostEqual(resp.Payload.OrderSummary.TotalAmount, 5.99) {
			t.Errorf("expected total 5.99, got %v", resp.Payload.OrderSummary.TotalAmount)
		}
		if resp.Payload.OrderSummary.ItemCount != 1 {
			t.Errorf("expected item count 1, got %d", resp.Payload.OrderSummary.ItemCount)
		}

		draft, _ := e.drafts.GetOrCreate(context.Background(), "s1")
		if len(draft.Lines) != 1 || draft.Lines[0].Name != "Big Mac" {
			t.Errorf("unexpected draft %+v", draft)
		}
		if draft.Lines[0].Size != nil {
			t.Errorf("expected no size for Big Mac, got %v", *draft.Lines[0].Size)
		}
	})

	t.Run("Quantity Multiplies Total", func(t *testing.T) {
		e := newEnv(nil)
		_, resp := e.post(t, webhookReq(fulfillment.IntentOrderFood, map[string]interface{}{
			"food-item": "Big Mac",
			"number":    float64(3),
		}), nil)

		if !almostEqual(resp.Payload.OrderSummary.TotalAmount, 17.97) {
			t.Errorf("expected total 17.97, got %v", resp.Payload.OrderSummary.TotalAmount)
		}
		if resp.Payload.OrderSummary.ItemCount != 3 {
			t.Errorf("expected item count 3, got %d", resp.Payload.OrderSummary.ItemCount)
		}
	})

	t.Run("Customization Recorded", func(t *testing.T) {
		e := newEnv(nil)
		_, _ = e.post(t, webhookReq(fulfillment.IntentOrderFood, map[string]interface{}{
			"food-item":         "big mac",
			"modification-type": []interface{}{"no"},
			"food-components":   []interface{}{"pickles"},
		}), nil)

		draft, _ := e.drafts.GetOrCreate(context.Background(), "s1")
		if len(draft.Lines) != 1 {
			t.Fatalf("unexpected draft %+v", draft)
		}
		if len(draft.Lines[0].Customizations) != 1 || draft.Lines[0].Customizations[0] != "no pickles" {
			t.Errorf("unexpected customizations %v", draft.Lines[0].Customizations)
		}
	})

	t.Run("Invalid Component Rejected", func(t *testing.T) {
		e := newEnv(nil)
		_, resp := e.post(t, webhookReq(fulfillment.IntentOrderFood, map[string]interface{}{
			"food-item":         "big mac",
			"modification-type": []interface{}{"no"},
			"food-components":   []interface{}{"anchovies"},
		}), nil)

		if !strings.Contains(resp.FulfillmentText, "doesn't come with anchovies") {
			t.Errorf("unexpected text %q", resp.FulfillmentText)
		}
		draft, _ := e.drafts.GetOrCreate(context.Background(), "s1")
		if len(draft.Lines) != 0 {
			t.Errorf("expected nothing added, got %+v", draft.Lines)
		}
	})

	t.Run("Sized Item Without Size Asks For One", func(t *testing.T) {
		e := newEnv(nil)
		_, resp := e.post(t, webhookReq(fulfillment.IntentOrderFood, map[string]interface{}{
			"food-item": "fries",
		}), nil)

		if !strings.Contains(resp.FulfillmentText, "What size") {
			t.Errorf("unexpected text %q", resp.FulfillmentText)
		}
		if len(resp.OutputContexts) != 1 || !strings.HasSuffix(resp.OutputContexts[0].Name, "/contexts/awaiting-size") {
			t.Errorf("expected awaiting-size context, got %+v", resp.OutputContexts)
		}

		draft, _ := e.drafts.GetOrCreate(context.Background(), "s1")
		if len(draft.Lines) != 0 {
			t.Errorf("expected nothing added until sized, got %+v", draft.Lines)
		}
	})

	t.Run("Size Price Included In Line Total", func(t *testing.T) {
		e := newEnv(nil)
		_, resp := e.post(t, webhookReq(fulfillment.IntentOrderFood, map[string]interface{}{
			"food-item":  "fries",
			"drink-size": "Large",
		}), nil)

		if !almostEqual(resp.Payload.OrderSummary.TotalAmount, 2.89) {
			t.Errorf("expected total 2.89, got %v", resp.Payload.OrderSummary.TotalAmount)
		}
		draft, _ := e.drafts.GetOrCreate(context.Background(), "s1")
		if len(draft.Lines) != 1 {
			t.Fatalf("unexpected draft %+v", draft)
		}
		line := draft.Lines[0]
		if line.Size == nil || *line.Size != "large" {
			t.Errorf("expected lowercased size, got %v", line.Size)
		}
		if line.SizePrice == nil || !almostEqual(*line.SizePrice, 1.0) {
			t.Errorf("expected size price 1.0, got %v", line.SizePrice)
		}
	})

	t.Run("Unknown Item Apologizes", func(t *testing.T) {
		e := newEnv(nil)
		_, resp := e.post(t, webhookReq(fulfillment.IntentOrderFood, map[string]interface{}{
			"food-item": "sushi",
		}), nil)

		if !strings.Contains(resp.FulfillmentText, "don't have sushi") {
			t.Errorf("unexpected text %q", resp.FulfillmentText)
		}
	})

	t.Run("Drink Uses Its Own Parameter", func(t *testing.T) {
		e := newEnv(nil)
		_, resp := e.post(t, webhookReq(fulfillment.IntentOrderDrink, map[string]interface{}{
			"drink-item": "coke",
			"drink-size": "medium",
		}), nil)

		if !strings.Contains(resp.FulfillmentText, "added 1 medium Coke") {
			t.Errorf("unexpected text %q", resp.FulfillmentText)
		}
		if !almostEqual(resp.Payload.OrderSummary.TotalAmount, 1.30) {
			t.Errorf("expected total 1.30, got %v", resp.Payload.OrderSummary.TotalAmount)
		}
	})
}

func TestHandleOrderSize(t *testing.T) {
	awaiting := func(itemName string) []fulfillment.OutputContext {
		return []fulfillment.OutputContext{{
			Name:          "projects/test-project/agent/sessions/s1/contexts/awaiting-size",
			LifespanCount: 2,
			Parameters:    map[string]interface{}{"item_name": itemName},
		}}
	}

	t.Run("Sizes The Awaited Item", func(t *testing.T) {
		e := newEnv(nil)
		_, asked := e.post(t, webhookReq(fulfillment.IntentOrderFood, map[string]interface{}{
			"food-item": "fries",
		}), nil)
		if !strings.Contains(asked.FulfillmentText, "What size") {
			t.Fatalf("expected size question, got %q", asked.FulfillmentText)
		}

		req := webhookReq(fulfillment.IntentOrderSize, map[string]interface{}{"drink-size": "Large"})
		req.QueryResult.OutputContexts = awaiting("Fries")
		_, resp := e.post(t, req, nil)

		if !strings.Contains(resp.FulfillmentText, "updated your Fries to large") {
			t.Errorf("unexpected text %q", resp.FulfillmentText)
		}
		if !almostEqual(resp.Payload.OrderSummary.TotalAmount, 2.89) {
			t.Errorf("expected total 2.89, got %v", resp.Payload.OrderSummary.TotalAmount)
		}

		draft, _ := e.drafts.GetOrCreate(context.Background(), "s1")
		if len(draft.Lines) != 1 {
			t.Fatalf("unexpected draft %+v", draft)
		}
		line := draft.Lines[0]
		if line.Size == nil || *line.Size != "large" {
			t.Errorf("expected size large, got %v", line.Size)
		}
		if line.SizePrice == nil || !almostEqual(*line.SizePrice, 1.0) {
			t.Errorf("expected size price 1.0, got %v", line.SizePrice)
		}

		if len(resp.OutputContexts) != 1 ||
			!strings.HasSuffix(resp.OutputContexts[0].Name, "/contexts/awaiting-size") ||
			resp.OutputContexts[0].LifespanCount != 0 {
			t.Errorf("expected awaiting-size cleared, got %+v", resp.OutputContexts)
		}
	})

	t.Run("Missing Size Asks Again", func(t *testing.T) {
		e := newEnv(nil)
		_, resp := e.post(t, webhookReq(fulfillment.IntentOrderSize, nil), nil)

		if !strings.Contains(resp.FulfillmentText, "didn't catch what size") {
			t.Errorf("unexpected text %q", resp.FulfillmentText)
		}
	})

	t.Run("Resize Keeps Quantity", func(t *testing.T) {
		e := newEnv(nil)
		_, _ = e.post(t, webhookReq(fulfillment.IntentOrderDrink, map[string]interface{}{
			"drink-item": "coke",
			"drink-size": "medium",
			"number":     float64(3),
		}), nil)

		req := webhookReq(fulfillment.IntentOrderSize, map[string]interface{}{"drink-size": "large"})
		req.QueryResult.OutputContexts = awaiting("Coke")
		_, resp := e.post(t, req, nil)

		if !strings.Contains(resp.FulfillmentText, "updated your Coke to 3 large") {
			t.Errorf("unexpected text %q", resp.FulfillmentText)
		}
		if !almostEqual(resp.Payload.OrderSummary.TotalAmount, 4.80) {
			t.Errorf("expected total 4.80, got %v", resp.Payload.OrderSummary.TotalAmount)
		}
		draft, _ := e.drafts.GetOrCreate(context.Background(), "s1")
		if len(draft.Lines) != 1 || draft.Lines[0].Quantity != 3 {
			t.Errorf("expected quantity preserved, got %+v", draft.Lines)
		}
	})

	t.Run("Falls Back To Newest Sized Line", func(t *testing.T) {
		e := newEnv(nil)
		_, _ = e.post(t, webhookReq(fulfillment.IntentOrderDrink, map[string]interface{}{
			"drink-item": "coke",
			"drink-size": "small",
		}), nil)
		_, _ = e.post(t, webhookReq(fulfillment.IntentOrderFood, map[string]interface{}{
			"food-item": "big mac",
		}), nil)

		// No awaiting-size context; the newest line that takes a size wins.
		_, resp := e.post(t, webhookReq(fulfillment.IntentOrderSize, map[string]interface{}{
			"drink-size": "medium",
		}), nil)

		if !strings.Contains(resp.FulfillmentText, "updated your Coke to medium") {
			t.Errorf("unexpected text %q", resp.FulfillmentText)
		}
		if !almostEqual(resp.Payload.OrderSummary.TotalAmount, 7.29) {
			t.Errorf("expected total 7.29, got %v", resp.Payload.OrderSummary.TotalAmount)
		}
	})

	t.Run("Nothing To Size Starts Over", func(t *testing.T) {
		e := newEnv(nil)
		_, resp := e.post(t, webhookReq(fulfillment.IntentOrderSize, map[string]interface{}{
			"drink-size": "medium",
		}), nil)

		if !strings.Contains(resp.FulfillmentText, "not sure which item") {
			t.Errorf("unexpected text %q", resp.FulfillmentText)
		}
	})
}

func TestHandleOrderModify(t *testing.T) {
	t.Run("Adds Customizations To Last Line", func(t *testing.T) {
		e := newEnv(nil)
		_, _ = e.post(t, webhookReq(fulfillment.IntentOrderFood, map[string]interface{}{
			"food-item":         "big mac",
			"modification-type": []interface{}{"no"},
			"food-components":   []interface{}{"pickles"},
		}), nil)

		_, resp := e.post(t, webhookReq(fulfillment.IntentOrderModify, map[string]interface{}{
			"modification-type": []interface{}{"extra"},
			"food-components":   []interface{}{"cheese"},
		}), nil)

		if !strings.Contains(resp.FulfillmentText, "updated your Big Mac with extra cheese") {
			t.Errorf("unexpected text %q", resp.FulfillmentText)
		}
		draft, _ := e.drafts.GetOrCreate(context.Background(), "s1")
		if len(draft.Lines) != 1 {
			t.Fatalf("unexpected draft %+v", draft)
		}
		got := draft.Lines[0].Customizations
		if len(got) != 2 || got[0] != "no pickles" || got[1] != "extra cheese" {
			t.Errorf("expected both customizations kept, got %v", got)
		}
	})

	t.Run("Invalid Component Rejected", func(t *testing.T) {
		e := newEnv(nil)
		_, _ = e.post(t, webhookReq(fulfillment.IntentOrderFood, map[string]interface{}{
			"food-item": "big mac",
		}), nil)

		_, resp := e.post(t, webhookReq(fulfillment.IntentOrderModify, map[string]interface{}{
			"modification-type": []interface{}{"no"},
			"food-components":   []interface{}{"anchovies"},
		}), nil)

		if !strings.Contains(resp.FulfillmentText, "doesn't come with anchovies") {
			t.Errorf("unexpected text %q", resp.FulfillmentText)
		}
		draft, _ := e.drafts.GetOrCreate(context.Background(), "s1")
		if len(draft.Lines[0].Customizations) != 0 {
			t.Errorf("expected customizations untouched, got %v", draft.Lines[0].Customizations)
		}
	})

	t.Run("Empty Order Prompts For Items", func(t *testing.T) {
		e := newEnv(nil)
		_, resp := e.post(t, webhookReq(fulfillment.IntentOrderModify, map[string]interface{}{
			"modification-type": []interface{}{"no"},
			"food-components":   []interface{}{"pickles"},
		}), nil)

		if !strings.Contains(resp.FulfillmentText, "don't see any active orders") {
			t.Errorf("unexpected text %q", resp.FulfillmentText)
		}
	})
}

func TestHandleOrderQuantity(t *testing.T) {
	t.Run("Reprices Last Line", func(t *testing.T) {
		e := newEnv(nil)
		_, _ = e.post(t, webhookReq(fulfillment.IntentOrderDrink, map[string]interface{}{
			"drink-item": "coke",
			"drink-size": "medium",
		}), nil)

		_, resp := e.post(t, webhookReq(fulfillment.IntentOrderQuantity, map[string]interface{}{
			"number": float64(4),
		}), nil)

		if !strings.Contains(resp.FulfillmentText, "updated the quantity to 4 medium Coke") {
			t.Errorf("unexpected text %q", resp.FulfillmentText)
		}
		if !almostEqual(resp.Payload.OrderSummary.TotalAmount, 5.20) {
			t.Errorf("expected total 5.20, got %v", resp.Payload.OrderSummary.TotalAmount)
		}
		if resp.Payload.OrderSummary.ItemCount != 4 {
			t.Errorf("expected item count 4, got %d", resp.Payload.OrderSummary.ItemCount)
		}
	})

	t.Run("Missing Number Asks Again", func(t *testing.T) {
		e := newEnv(nil)
		_, _ = e.post(t, webhookReq(fulfillment.IntentOrderFood, map[string]interface{}{
			"food-item": "big mac",
		}), nil)

		_, resp := e.post(t, webhookReq(fulfillment.IntentOrderQuantity, nil), nil)

		if !strings.Contains(resp.FulfillmentText, "didn't catch how many") {
			t.Errorf("unexpected text %q", resp.FulfillmentText)
		}
		if !almostEqual(resp.Payload.OrderSummary.TotalAmount, 5.99) {
			t.Errorf("expected total unchanged, got %v", resp.Payload.OrderSummary.TotalAmount)
		}
	})

	t.Run("Empty Order Prompts For Items", func(t *testing.T) {
		e := newEnv(nil)
		_, resp := e.post(t, webhookReq(fulfillment.IntentOrderQuantity, map[string]interface{}{
			"number": float64(2),
		}), nil)

		if !strings.Contains(resp.FulfillmentText, "don't see any active orders") {
			t.Errorf("unexpected text %q", resp.FulfillmentText)
		}
	})
}

func TestHandleOrderRemove(t *testing.T) {
	seed := func(t *testing.T, e env) {
		t.Helper()
		_, _ = e.post(t, webhookReq(fulfillment.IntentOrderFood, map[string]interface{}{"food-item": "big mac"}), nil)
		_, _ = e.post(t, webhookReq(fulfillment.IntentOrderDrink, map[string]interface{}{"drink-item": "coke", "drink-size": "small"}), nil)
	}

	t.Run("Removes Matching Line", func(t *testing.T) {
		e := newEnv(nil)
		seed(t, e)

		_, resp := e.post(t, webhookReq(fulfillment.IntentOrderRemove, map[string]interface{}{
			"food-item": "BIG MAC",
		}), nil)

		if !strings.Contains(resp.FulfillmentText, "removed Big Mac") {
			t.Errorf("unexpected text %q", resp.FulfillmentText)
		}
		if !almostEqual(resp.Payload.OrderSummary.TotalAmount, 1.00) {
			t.Errorf("expected total 1.00, got %v", resp.Payload.OrderSummary.TotalAmount)
		}
		draft, _ := e.drafts.GetOrCreate(context.Background(), "s1")
		if len(draft.Lines) != 1 || draft.Lines[0].Name != "Coke" {
			t.Errorf("unexpected draft %+v", draft.Lines)
		}
	})

	t.Run("Missing Line Reported", func(t *testing.T) {
		e := newEnv(nil)
		seed(t, e)

		_, resp := e.post(t, webhookReq(fulfillment.IntentOrderRemove, map[string]interface{}{
			"food-item": "fries",
		}), nil)

		if !strings.Contains(resp.FulfillmentText, "couldn't find fries") {
			t.Errorf("unexpected text %q", resp.FulfillmentText)
		}
	})
}

func TestHandleOrderComplete(t *testing.T) {
	t.Run("Reads Back Order And Mentions Payment", func(t *testing.T) {
		e := newEnv(nil)
		_, _ = e.post(t, webhookReq(fulfillment.IntentOrderFood, map[string]interface{}{"food-item": "big mac"}), nil)

		_, resp := e.post(t, webhookReq(fulfillment.IntentOrderComplete, nil), nil)

		if !strings.Contains(resp.FulfillmentText, "Total amount: $5.99") {
			t.Errorf("unexpected text %q", resp.FulfillmentText)
		}
		// The relay keys a new order off this wording.
		if !strings.Contains(resp.FulfillmentText, "payment") {
			t.Errorf("expected payment wording, got %q", resp.FulfillmentText)
		}
	})

	t.Run("Empty Order Prompts For Items", func(t *testing.T) {
		e := newEnv(nil)
		_, resp := e.post(t, webhookReq(fulfillment.IntentOrderComplete, nil), nil)

		if !strings.Contains(resp.FulfillmentText, "haven't ordered anything") {
			t.Errorf("unexpected text %q", resp.FulfillmentText)
		}
	})

	t.Run("Completion Clears The Draft", func(t *testing.T) {
		e := newEnv(nil)
		_, _ = e.post(t, webhookReq(fulfillment.IntentOrderFood, map[string]interface{}{
			"food-item": "big mac",
		}), nil)

		_, done := e.post(t, webhookReq(fulfillment.IntentOrderComplete, nil), nil)
		// The read-back still carries the completed order's summary.
		if done.Payload.OrderSummary.ItemCount != 1 || !almostEqual(done.Payload.OrderSummary.TotalAmount, 5.99) {
			t.Fatalf("unexpected completion summary %+v", done.Payload.OrderSummary)
		}

		draft, _ := e.drafts.GetOrCreate(context.Background(), "s1")
		if len(draft.Lines) != 0 || !almostEqual(draft.TotalAmount, 0) {
			t.Fatalf("expected empty draft after completion, got %+v", draft)
		}

		// The next item starts a fresh order, not the paid one plus extras.
		_, resp := e.post(t, webhookReq(fulfillment.IntentOrderDrink, map[string]interface{}{
			"drink-item": "coke",
			"drink-size": "medium",
		}), nil)

		items := resp.Payload.OrderSummary.Items
		if len(items) != 1 || items[0].Name != "Coke" {
			t.Errorf("expected only Coke on the new order, got %+v", items)
		}
		if !almostEqual(resp.Payload.OrderSummary.TotalAmount, 1.30) {
			t.Errorf("expected total 1.30, got %v", resp.Payload.OrderSummary.TotalAmount)
		}
	})
}

func TestWebhookFallbacks(t *testing.T) {
	t.Run("Unknown Intent", func(t *testing.T) {
		e := newEnv(nil)
		_, resp := e.post(t, webhookReq("smalltalk.greeting", nil), nil)

		if !strings.Contains(resp.FulfillmentText, "not sure how to handle") {
			t.Errorf("unexpected text %q", resp.FulfillmentText)
		}
	})

	t.Run("Malformed Body Returns Fallback", func(t *testing.T) {
		e := newEnv(nil)
		req := httptest.NewRequest(http.MethodPost, "/webhook/dialogflow", strings.NewReader("{not json"))
		w := httptest.NewRecorder()
		e.engine.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var resp fulfillment.WebhookResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}
		if resp.FulfillmentText != fulfillment.FallbackText {
			t.Errorf("unexpected text %q", resp.FulfillmentText)
		}
	})

	t.Run("Missing Session Returns Fallback", func(t *testing.T) {
		e := newEnv(nil)
		req := webhookReq(fulfillment.IntentOrderFood, map[string]interface{}{"food-item": "big mac"})
		req.Session = "not a resource name"

		_, resp := e.post(t, req, nil)
		if resp.FulfillmentText != fulfillment.FallbackText {
			t.Errorf("unexpected text %q", resp.FulfillmentText)
		}
	})
}

func TestWebhookSecurity(t *testing.T) {
	security := fulfillment.NewSecurityValidator(fulfillment.SecurityConfig{
		Secret:          "shared-secret",
		RateLimitPerMin: 60,
	})

	t.Run("Missing Token Rejected", func(t *testing.T) {
		e := newEnv(security)
		w, _ := e.post(t, webhookReq(fulfillment.IntentOrderFood, map[string]interface{}{"food-item": "big mac"}), nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})

	t.Run("Wrong Token Rejected", func(t *testing.T) {
		e := newEnv(security)
		w, _ := e.post(t, webhookReq(fulfillment.IntentOrderFood, map[string]interface{}{"food-item": "big mac"}), map[string]string{
			fulfillment.TokenHeader: "wrong",
		})
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), "Unauthorized") {
			t.Errorf("expected enveloped 401 body, got %s", w.Body.String())
		}
	})

	t.Run("Valid Token Accepted", func(t *testing.T) {
		e := newEnv(security)
		w, _ := e.post(t, webhookReq(fulfillment.IntentOrderFood, map[string]interface{}{"food-item": "big mac"}), map[string]string{
			fulfillment.TokenHeader: "shared-secret",
		})
		if w.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", w.Code)
		}
	})

	t.Run("Rate Limit Enforced", func(t *testing.T) {
		tight := fulfillment.NewSecurityValidator(fulfillment.SecurityConfig{
			Secret:          "shared-secret",
			RateLimitPerMin: 1,
		})
		e := newEnv(tight)
		headers := map[string]string{fulfillment.TokenHeader: "shared-secret"}

		limited := false
		for i := 0; i < 5; i++ {
			w, _ := e.post(t, webhookReq(fulfillment.IntentOrderComplete, nil), headers)
			if w.Code == http.StatusTooManyRequests {
				if !strings.Contains(w.Body.String(), "Rate limit exceeded") {
					t.Errorf("expected enveloped 429 body, got %s", w.Body.String())
				}
				limited = true
				break
			}
		}
		if !limited {
			t.Error("expected rate limit to trip")
		}
	})
}
