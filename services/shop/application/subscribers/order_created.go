// Package subscribers holds the shop's event handlers. They run in the
// worker process, or inside the API when the event bus is in-process.
package subscribers

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/voiceshop/pkg/logger"
	domainevents "github.com/ghuser/voiceshop/services/shop/domain/events"
	"github.com/ghuser/voiceshop/services/shop/domain/models"
	"github.com/ghuser/voiceshop/services/shop/infrastructure/messaging"
)

// Subscriber is the part of events.EventBus needed to register handlers.
type Subscriber interface {
	Subscribe(ctx context.Context, topic string, handler func(context.Context, *message.Message) error) (<-chan error, error)
}

// OrderWarmer writes an order into the read-model cache.
type OrderWarmer interface {
	Warm(ctx context.Context, order models.Order) error
}

// Register subscribes every shop handler and drains their error channels
// into the log until ctx ends.
func Register(ctx context.Context, bus Subscriber, orders OrderWarmer, log logger.Logger) error {
	errCh, err := bus.Subscribe(ctx, domainevents.TopicOrderCreated, HandleOrderCreated(orders, log))
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", domainevents.TopicOrderCreated, err)
	}

	go func() {
		for err := range errCh {
			log.ErrorContext(ctx, "subscriber error",
				"topic", domainevents.TopicOrderCreated,
				"error", err,
			)
		}
	}()

	log.Info("event subscribers registered", "topics", []string{domainevents.TopicOrderCreated})
	return nil
}

// HandleOrderCreated returns a handler for order.created events. It logs a
// receipt for the order and warms the order cache. Handlers must be
// idempotent; the bus retries up to 3 times on failure.
func HandleOrderCreated(orders OrderWarmer, log logger.Logger) func(context.Context, *message.Message) error {
	return func(ctx context.Context, msg *message.Message) error {
		evt, err := messaging.DecodeOrderCreated(msg)
		if err != nil {
			// A payload that does not parse will not parse on retry either.
			log.ErrorContext(ctx, "dropping malformed order.created", "message_id", msg.UUID, "error", err)
			return nil
		}

		log.InfoContext(ctx, "order receipt",
			"order_id", evt.Order.ID,
			"event_id", evt.EventID,
			"items", len(evt.Order.Items),
			"total", evt.Order.Total,
			"currency", evt.Order.Currency,
			"persisted", evt.Persisted,
		)
		if !evt.Persisted {
			log.WarnContext(ctx, "order was not persisted by the ledger", "order_id", evt.Order.ID)
		}

		// Cache warming is best-effort; log but do not fail the handler.
		if err := orders.Warm(ctx, evt.Order); err != nil {
			log.WarnContext(ctx, "cache warm failed for order.created",
				"order_id", evt.Order.ID, "error", err)
		}
		return nil
	}
}
