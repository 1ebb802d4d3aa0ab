package messaging

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainevents "github.com/ghuser/voiceshop/services/shop/domain/events"
	"github.com/ghuser/voiceshop/services/shop/domain/models"
)

type fakeBus struct {
	topic string
	msgs  []*message.Message
	err   error
}

func (b *fakeBus) Publish(_ context.Context, topic string, msgs ...*message.Message) error {
	b.topic = topic
	b.msgs = append(b.msgs, msgs...)
	return b.err
}

func sampleOrder() models.Order {
	return models.Order{
		ID:        "order_20250115_120000",
		Items:     []models.LineItem{{ProductID: "hoodie-001", ProductName: "Black Logo Hoodie", Quantity: 2, Size: "M", UnitPrice: 1499, LineTotal: 2998}},
		Total:     2998,
		Currency:  "INR",
		CreatedAt: time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC),
		Status:    models.OrderStatusCompleted,
	}
}

func TestOrderPublisher_PublishOrderCreated(t *testing.T) {
	bus := &fakeBus{}
	p := NewOrderPublisher(bus)

	require.NoError(t, p.PublishOrderCreated(context.Background(), sampleOrder(), false))

	assert.Equal(t, domainevents.TopicOrderCreated, bus.topic)
	require.Len(t, bus.msgs, 1)
	msg := bus.msgs[0]
	assert.Equal(t, "order_20250115_120000", msg.Metadata.Get("order_id"))
	assert.Equal(t, "1", msg.Metadata.Get("event_version"))
	assert.NotEmpty(t, msg.Metadata.Get("event_id"))

	evt, err := DecodeOrderCreated(msg)
	require.NoError(t, err)
	assert.Equal(t, msg.Metadata.Get("event_id"), evt.EventID.String())
	assert.False(t, evt.Persisted)
	assert.Equal(t, int64(2998), evt.Order.Total)
	assert.Equal(t, sampleOrder().Items, evt.Order.Items)
	assert.True(t, evt.OccurredAt.Equal(sampleOrder().CreatedAt))
}

func TestOrderPublisher_PropagatesBusError(t *testing.T) {
	p := NewOrderPublisher(&fakeBus{err: errors.New("bus closed")})
	assert.Error(t, p.PublishOrderCreated(context.Background(), sampleOrder(), true))
}

func TestDecodeOrderCreated_BadPayload(t *testing.T) {
	_, err := DecodeOrderCreated(message.NewMessage("x", []byte("not json")))
	assert.Error(t, err)
}
