// Package messaging publishes shop domain events on the event bus.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	domainevents "github.com/ghuser/voiceshop/services/shop/domain/events"
	"github.com/ghuser/voiceshop/services/shop/domain/models"
)

// Bus is the part of events.EventBus the publisher needs.
type Bus interface {
	Publish(ctx context.Context, topic string, msgs ...*message.Message) error
}

// OrderPublisher announces placed orders on TopicOrderCreated.
type OrderPublisher struct {
	bus Bus
}

// NewOrderPublisher returns an OrderPublisher writing to bus.
func NewOrderPublisher(bus Bus) *OrderPublisher {
	return &OrderPublisher{bus: bus}
}

// PublishOrderCreated wraps order in an OrderCreatedEvent and publishes it.
func (p *OrderPublisher) PublishOrderCreated(ctx context.Context, order models.Order, persisted bool) error {
	event := domainevents.NewOrderCreatedEvent(order, persisted)
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_id", event.EventID.String())
	msg.Metadata.Set("event_version", strconv.Itoa(event.Version))
	msg.Metadata.Set("order_id", order.ID)
	return p.bus.Publish(ctx, domainevents.TopicOrderCreated, msg)
}

// DecodeOrderCreated parses an order.created message payload.
func DecodeOrderCreated(msg *message.Message) (domainevents.OrderCreatedEvent, error) {
	var evt domainevents.OrderCreatedEvent
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		return evt, fmt.Errorf("decode %s: %w", domainevents.TopicOrderCreated, err)
	}
	return evt, nil
}
