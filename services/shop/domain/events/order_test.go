package events_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/voiceshop/services/shop/domain/events"
	"github.com/ghuser/voiceshop/services/shop/domain/models"
)

func sampleOrder() models.Order {
	return models.Order{
		ID: "order_20250115_120000",
		Items: []models.LineItem{{
			ProductID: "hoodie-001", ProductName: "Black Logo Hoodie",
			Quantity: 2, Size: "M", UnitPrice: 1499, LineTotal: 2998,
		}},
		Total:     2998,
		Currency:  "INR",
		CreatedAt: time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC),
		Status:    models.OrderStatusCompleted,
	}
}

func TestNewOrderCreatedEvent(t *testing.T) {
	order := sampleOrder()
	evt := events.NewOrderCreatedEvent(order, true)

	if evt.EventID == uuid.Nil {
		t.Fatal("expected non-nil event id")
	}
	if evt.Version != 1 {
		t.Errorf("Version: got %d, want 1", evt.Version)
	}
	if !evt.OccurredAt.Equal(order.CreatedAt) {
		t.Errorf("OccurredAt: got %v, want %v", evt.OccurredAt, order.CreatedAt)
	}
	if !evt.Persisted {
		t.Error("expected Persisted=true")
	}

	other := events.NewOrderCreatedEvent(order, false)
	if other.EventID == evt.EventID {
		t.Error("expected unique event ids")
	}
}

func TestOrderCreatedEvent_JSONShape(t *testing.T) {
	data, err := json.Marshal(events.NewOrderCreatedEvent(sampleOrder(), false))
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("json.Unmarshal failed: %v", err)
	}
	for _, key := range []string{"event_id", "version", "order", "persisted", "occurred_at"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("missing key %q in %s", key, data)
		}
	}
	order, _ := raw["order"].(map[string]any)
	if order["id"] != "order_20250115_120000" {
		t.Errorf("order.id: got %v", order["id"])
	}
	items, _ := order["items"].([]any)
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	item, _ := items[0].(map[string]any)
	if item["price"] != float64(1499) || item["line_total"] != float64(2998) {
		t.Errorf("unexpected item payload: %v", item)
	}
}
