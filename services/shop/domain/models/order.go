package models

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"
)

// OrderStatusCompleted is the only status an order can have.
const OrderStatusCompleted = "completed"

// LineItem is one product line of a placed order. Name and price are
// snapshots taken when the order was created.
type LineItem struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	Size        string `json:"size"`
	UnitPrice   int64  `json:"price"`
	LineTotal   int64  `json:"line_total"`
}

// Order is a completed order. Total always equals the sum of line totals.
type Order struct {
	ID        string     `json:"id"`
	Items     []LineItem `json:"items"`
	Total     int64      `json:"total"`
	Currency  string     `json:"currency"`
	CreatedAt time.Time  `json:"created_at"`
	Status    string     `json:"status"`
}

// Clone returns a copy that shares no mutable state with o.
func (o Order) Clone() Order {
	o.Items = slices.Clone(o.Items)
	return o
}

// createdAtLayouts are tried in order when decoding created_at. Snapshots
// written by older tooling carry local timestamps without an offset; those
// are read as UTC.
var createdAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// UnmarshalJSON accepts created_at with or without a UTC offset.
func (o *Order) UnmarshalJSON(data []byte) error {
	type plain Order
	aux := struct {
		*plain
		CreatedAt string `json:"created_at"`
	}{plain: (*plain)(o)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.CreatedAt == "" {
		o.CreatedAt = time.Time{}
		return nil
	}
	for _, layout := range createdAtLayouts {
		if t, err := time.Parse(layout, aux.CreatedAt); err == nil {
			o.CreatedAt = t
			return nil
		}
	}
	return fmt.Errorf("order %s: unrecognized created_at %q", o.ID, aux.CreatedAt)
}

// LineItemRequest asks for Quantity units of an already-resolved product.
// A zero Quantity means one unit.
type LineItemRequest struct {
	ProductID string
	Quantity  int
	Size      string
}

// SessionContext is the per-conversation state the caller keeps between
// calls. LastShown is replaced wholesale by every catalog query.
type SessionContext struct {
	LastShown []Product
	Customer  Customer
}

// Customer holds delivery details collected during the conversation.
type Customer struct {
	Name                 string `json:"name"`
	Address              string `json:"address"`
	DeliveryInstructions string `json:"delivery_instructions"`
}

// WithShown returns a copy of s whose last-shown list is products.
func (s SessionContext) WithShown(products []Product) SessionContext {
	s.LastShown = slices.Clone(products)
	return s
}
