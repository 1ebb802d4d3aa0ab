package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/voiceshop/services/shop/domain/models"
)

// TopicOrderCreated is the Watermill topic published when an order is placed.
const TopicOrderCreated = "order.created"

// OrderCreatedEvent is published after a new order is appended to the ledger.
// Consumers subscribe via EventBus.Subscribe(ctx, events.TopicOrderCreated).
type OrderCreatedEvent struct {
	EventID    uuid.UUID    `json:"event_id"` // Unique publish-time identifier for deduplication
	Version    int          `json:"version"`  // Schema version; increment on breaking changes
	Order      models.Order `json:"order"`
	Persisted  bool         `json:"persisted"` // false when the snapshot write failed
	OccurredAt time.Time    `json:"occurred_at"`
}

// NewOrderCreatedEvent wraps order in a version-1 event with a fresh id.
func NewOrderCreatedEvent(order models.Order, persisted bool) OrderCreatedEvent {
	return OrderCreatedEvent{
		EventID:    uuid.New(),
		Version:    1,
		Order:      order,
		Persisted:  persisted,
		OccurredAt: order.CreatedAt,
	}
}
