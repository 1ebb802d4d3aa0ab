package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"

	"github.com/ghuser/voiceshop/pkg/logger"
	shopdomain "github.com/ghuser/voiceshop/services/shop/domain"
	"github.com/ghuser/voiceshop/services/shop/domain/models"
	"github.com/ghuser/voiceshop/services/shop/domain/repositories"
	domainsvcs "github.com/ghuser/voiceshop/services/shop/domain/services"
)

const instrumentationName = "github.com/ghuser/voiceshop/services/shop"

// errHistoryNotLoaded is returned by record when the stored history could not
// be loaded at startup. Saving would replace it with the orders taken since.
var errHistoryNotLoaded = errors.New("stored order history was not loaded, snapshot writes disabled until restart")

// orderIDLayout renders creation time as YYYYMMDD_HHMMSS.
const orderIDLayout = "20060102_150405"

// OrderPublisher announces placed orders to other processes.
type OrderPublisher interface {
	PublishOrderCreated(ctx context.Context, order models.Order, persisted bool) error
}

// LedgerOption customizes an OrderLedger.
type LedgerOption func(*OrderLedger)

// WithClock replaces time.Now as the source of order timestamps.
func WithClock(now func() time.Time) LedgerOption {
	return func(l *OrderLedger) { l.now = now }
}

// WithPublisher announces every placed order through p.
func WithPublisher(p OrderPublisher) LedgerOption {
	return func(l *OrderLedger) { l.pub = p }
}

// OrderLedger validates and records orders. The history is append-only and
// shared by every conversation served by the process; one mutex serializes
// append and snapshot so concurrent orders cannot overwrite each other.
type OrderLedger struct {
	catalog *domainsvcs.Catalog
	store   repositories.OrderSnapshotStore
	pub     OrderPublisher
	log     logger.Logger
	now     func() time.Time
	tracer  trace.Tracer
	metrics ledgerMetrics

	mu      sync.Mutex
	history []models.Order
	ids     map[string]struct{}

	// readOnly is set when Load failed and the stored history is still in place.
	readOnly bool
}

// NewOrderLedger loads the stored history and returns a ready ledger.
// An unreadable snapshot is logged and the ledger starts empty; startup never fails.
func NewOrderLedger(
	ctx context.Context,
	catalog *domainsvcs.Catalog,
	store repositories.OrderSnapshotStore,
	log logger.Logger,
	opts ...LedgerOption,
) *OrderLedger {
	l := &OrderLedger{
		catalog: catalog,
		store:   store,
		log:     log,
		now:     time.Now,
		tracer:  otel.Tracer(instrumentationName),
		metrics: newLedgerMetrics(otel.Meter(instrumentationName)),
		ids:     make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}

	history, err := store.Load(ctx)
	switch {
	case err == nil:
	case errors.Is(err, repositories.ErrSnapshotQuarantined):
		log.WarnContext(ctx, "order history unreadable and moved aside, starting empty", "error", err)
		history = nil
	default:
		log.ErrorContext(ctx, "order history not loaded, starting empty without snapshot writes", "error", err)
		history = nil
		l.readOnly = true
	}
	l.history = history
	for _, o := range history {
		l.ids[o.ID] = struct{}{}
	}
	log.InfoContext(ctx, "order ledger ready", "orders", len(history))
	return l
}

// Create validates reqs against the catalog and records a completed order.
// Validation failures return a wrapped domain sentinel and leave the history
// untouched. A failed snapshot write is only logged: the order is kept and returned.
func (l *OrderLedger) Create(ctx context.Context, reqs []models.LineItemRequest) (*models.Order, error) {
	ctx, span := l.tracer.Start(ctx, "OrderLedger.Create",
		trace.WithAttributes(attribute.Int("shop.line_items", len(reqs))))
	defer span.End()

	items, total, err := domainsvcs.PriceLineItems(l.catalog, reqs)
	if err != nil {
		code := shopdomain.Code(err)
		l.metrics.rejected.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", code)))
		span.SetStatus(codes.Error, code)
		l.log.InfoContext(ctx, "order rejected", "reason", code, "error", err)
		return nil, fmt.Errorf("create order: %w", err)
	}

	order, saveErr := l.record(ctx, items, total)
	span.SetAttributes(attribute.String("shop.order_id", order.ID), attribute.Int64("shop.order_total", order.Total))

	persisted := saveErr == nil
	if !persisted {
		l.metrics.snapshotFailures.Add(ctx, 1)
		span.RecordError(saveErr)
		l.log.WarnContext(ctx, "order placed but snapshot write failed",
			"order_id", order.ID,
			"error", fmt.Errorf("%w: %w", shopdomain.ErrPersistence, saveErr),
		)
	}
	l.metrics.created.Add(ctx, 1)
	l.metrics.revenue.Add(ctx, order.Total, metric.WithAttributes(attribute.String("currency", order.Currency)))
	l.log.InfoContext(ctx, "order created",
		"order_id", order.ID,
		"items", len(order.Items),
		"total", order.Total,
		"currency", order.Currency,
		"persisted", persisted,
	)

	if l.pub != nil {
		if err := l.pub.PublishOrderCreated(ctx, order.Clone(), persisted); err != nil {
			l.log.WarnContext(ctx, "order created event not published", "order_id", order.ID, "error", err)
		}
	}

	return &order, nil
}

// record mints the id, appends and writes the snapshot under the ledger lock.
func (l *OrderLedger) record(ctx context.Context, items []models.LineItem, total int64) (models.Order, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	// Ids and created_at share one UTC reading so ids never step back at a DST change.
	now := l.now().UTC().Round(0)
	order := models.Order{
		ID:        l.mintID(now),
		Items:     items,
		Total:     total,
		Currency:  models.CatalogCurrency,
		CreatedAt: now,
		Status:    models.OrderStatusCompleted,
	}
	l.history = append(l.history, order)
	l.ids[order.ID] = struct{}{}

	if l.readOnly {
		return order.Clone(), errHistoryNotLoaded
	}

	// The order is already placed; a cancelled request must not abort the write.
	err := l.store.Save(context.WithoutCancel(ctx), slices.Clone(l.history))
	return order.Clone(), err
}

// mintID derives the id from the creation second. Orders placed within the
// same second get a numeric suffix: order_20250115_120000, order_20250115_120000_2, ...
func (l *OrderLedger) mintID(now time.Time) string {
	base := "order_" + now.Format(orderIDLayout)
	id := base
	for n := 2; l.hasID(id); n++ {
		id = fmt.Sprintf("%s_%d", base, n)
	}
	return id
}

func (l *OrderLedger) hasID(id string) bool {
	_, ok := l.ids[id]
	return ok
}

// GetLast returns the most recently recorded order.
func (l *OrderLedger) GetLast() (models.Order, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.history) == 0 {
		return models.Order{}, false
	}
	return l.history[len(l.history)-1].Clone(), true
}

// Get returns the order with the given id or ErrOrderNotFound.
func (l *OrderLedger) Get(id string) (models.Order, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.hasID(id) {
		return models.Order{}, shopdomain.ErrOrderNotFound
	}
	for i := len(l.history) - 1; i >= 0; i-- {
		if l.history[i].ID == id {
			return l.history[i].Clone(), nil
		}
	}
	return models.Order{}, shopdomain.ErrOrderNotFound
}

// History returns every recorded order, oldest first.
func (l *OrderLedger) History() []models.Order {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]models.Order, len(l.history))
	for i, o := range l.history {
		out[i] = o.Clone()
	}
	return out
}

type ledgerMetrics struct {
	created          metric.Int64Counter
	rejected         metric.Int64Counter
	snapshotFailures metric.Int64Counter
	revenue          metric.Int64Counter
}

func newLedgerMetrics(m metric.Meter) ledgerMetrics {
	counter := func(name, desc, unit string) metric.Int64Counter {
		c, err := m.Int64Counter(name, metric.WithDescription(desc), metric.WithUnit(unit))
		if err != nil {
			return noop.Int64Counter{}
		}
		return c
	}
	return ledgerMetrics{
		created:          counter("shop.orders.created", "Orders recorded by the ledger", "{order}"),
		rejected:         counter("shop.orders.rejected", "Order requests rejected by validation", "{request}"),
		snapshotFailures: counter("shop.snapshot.failures", "Order snapshot writes that failed", "{write}"),
		revenue:          counter("shop.orders.value", "Sum of order totals in whole currency units", "{currency_unit}"),
	}
}
