package fulfillment

import (
	"testing"

	"voice-order-assistant/internal/model"
)

func TestParamString(t *testing.T) {
	params := map[string]interface{}{
		"plain":  "big mac",
		"listed": []interface{}{"", "fries"},
		"number": float64(2),
	}

	if got := paramString(params, "plain"); got != "big mac" {
		t.Errorf("expected big mac, got %q", got)
	}
	if got := paramString(params, "listed"); got != "fries" {
		t.Errorf("expected first non-empty element, got %q", got)
	}
	if got := paramString(params, "number"); got != "" {
		t.Errorf("expected empty for non-string, got %q", got)
	}
	if got := paramString(params, "absent"); got != "" {
		t.Errorf("expected empty for absent key, got %q", got)
	}
}

func TestParamStrings(t *testing.T) {
	params := map[string]interface{}{
		"bare": "no",
		"list": []interface{}{"no", "", "extra"},
	}

	if got := paramStrings(params, "bare"); len(got) != 1 || got[0] != "no" {
		t.Errorf("expected bare string as one-element list, got %v", got)
	}
	if got := paramStrings(params, "list"); len(got) != 2 || got[0] != "no" || got[1] != "extra" {
		t.Errorf("expected empty entries dropped, got %v", got)
	}
	if got := paramStrings(params, "absent"); got != nil {
		t.Errorf("expected nil for absent key, got %v", got)
	}
}

func TestParamQuantity(t *testing.T) {
	if got := paramQuantity(map[string]interface{}{"number": float64(3)}, "number"); got != 3 {
		t.Errorf("expected 3, got %d", got)
	}
	if got := paramQuantity(map[string]interface{}{"number": float64(0)}, "number"); got != 1 {
		t.Errorf("expected default 1 for zero, got %d", got)
	}
	if got := paramQuantity(map[string]interface{}{}, "number"); got != 1 {
		t.Errorf("expected default 1 when absent, got %d", got)
	}
}

func TestSessionIDFromContexts(t *testing.T) {
	contexts := []OutputContext{{
		Name: "projects/p/agent/sessions/abc-123/contexts/awaiting-size",
	}}
	if got := sessionIDFromContexts(contexts); got != "abc-123" {
		t.Errorf("expected abc-123, got %q", got)
	}

	if got := sessionIDFromContexts(nil); got != "" {
		t.Errorf("expected empty for no contexts, got %q", got)
	}
	if got := sessionIDFromContexts([]OutputContext{{Name: "garbage"}}); got != "" {
		t.Errorf("expected empty for malformed name, got %q", got)
	}
}

func TestContextParam(t *testing.T) {
	contexts := []OutputContext{
		{
			Name:       "projects/p/agent/sessions/s1/contexts/ongoing-order",
			Parameters: map[string]interface{}{"drink-size": "medium"},
		},
		{
			Name:       "projects/p/agent/sessions/s1/contexts/awaiting-size",
			Parameters: map[string]interface{}{"item_name": "Fries"},
		},
	}

	if got := contextParam(contexts, "awaiting-size", "item_name"); got != "Fries" {
		t.Errorf("expected Fries, got %q", got)
	}
	if got := contextParam(contexts, "ongoing-order", "drink-size"); got != "medium" {
		t.Errorf("expected medium, got %q", got)
	}
	if got := contextParam(contexts, "awaiting-size", "absent"); got != "" {
		t.Errorf("expected empty for absent key, got %q", got)
	}
	if got := contextParam(contexts, "missing-context", "item_name"); got != "" {
		t.Errorf("expected empty for missing context, got %q", got)
	}
}

func TestFormatCustomizations(t *testing.T) {
	item := model.MenuItem{
		Name:       "Big Mac",
		Components: []string{"pickles", "onions", "cheese"},
	}

	t.Run("Vocabulary Mapping", func(t *testing.T) {
		got, invalid := formatCustomizations(item,
			[]string{"no", "extra", "light"},
			[]string{"pickles", "cheese", "onions"})
		if invalid != "" {
			t.Fatalf("unexpected invalid component %q", invalid)
		}
		want := []string{"no pickles", "extra cheese", "light onions"}
		if len(got) != len(want) {
			t.Fatalf("expected %v, got %v", want, got)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("expected %q, got %q", want[i], got[i])
			}
		}
	})

	t.Run("Unknown Component Reported", func(t *testing.T) {
		_, invalid := formatCustomizations(item, []string{"no"}, []string{"anchovies"})
		if invalid != "anchovies" {
			t.Errorf("expected anchovies reported, got %q", invalid)
		}
	})

	t.Run("Unpaired Modifiers Ignored", func(t *testing.T) {
		got, invalid := formatCustomizations(item, []string{"no", "extra"}, []string{"pickles"})
		if invalid != "" {
			t.Fatalf("unexpected invalid component %q", invalid)
		}
		if len(got) != 1 || got[0] != "no pickles" {
			t.Errorf("expected only paired modifier applied, got %v", got)
		}
	})
}
