package services

import (
	"context"
	"fmt"

	"github.com/ghuser/voiceshop/pkg/app"
	"github.com/ghuser/voiceshop/pkg/cache"
	"github.com/ghuser/voiceshop/pkg/config"
	"github.com/ghuser/voiceshop/services/shop/domain/repositories"
	domainsvcs "github.com/ghuser/voiceshop/services/shop/domain/services"
	"github.com/ghuser/voiceshop/services/shop/infrastructure/messaging"
	"github.com/ghuser/voiceshop/services/shop/infrastructure/persistence/file"
	"github.com/ghuser/voiceshop/services/shop/infrastructure/persistence/postgres"
)

// SnapshotStore is an order snapshot store that can report its health.
type SnapshotStore interface {
	repositories.OrderSnapshotStore
	Ping(ctx context.Context) error
}

// Services is the application-layer service container for the shop.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Catalog  *domainsvcs.Catalog
	Resolver *domainsvcs.Resolver
	Ledger   *OrderLedger
	Orders   *OrderQueryService
	Store    SnapshotStore
}

// New wires the shop from the Application container. The snapshot backend
// follows cfg.SnapshotBackend; the order cache is enabled when Redis is
// configured and events are published when an EventBus is present.
func New(ctx context.Context, a *app.Application) (*Services, error) {
	store, err := newSnapshotStore(a)
	if err != nil {
		return nil, err
	}

	var opts []LedgerOption
	if a.EventBus != nil {
		opts = append(opts, WithPublisher(messaging.NewOrderPublisher(a.EventBus)))
	}

	var orderCache *cache.OrderCache
	if a.Redis != nil {
		orderCache = cache.NewOrderCache(a.Redis, a.Config.OrderCacheTTL)
	}

	catalog := domainsvcs.DefaultCatalog()
	a.Logger.Info("catalog loaded", "products", catalog.Len(),
		"snapshot_backend", a.Config.SnapshotBackend,
		"order_cache", orderCache != nil,
		"events", a.EventBus != nil,
	)
	ledger := NewOrderLedger(ctx, catalog, store, a.Logger, opts...)
	return &Services{
		Catalog:  catalog,
		Resolver: domainsvcs.NewResolver(catalog),
		Ledger:   ledger,
		Orders:   NewOrderQueryService(ledger, orderCache, a.Logger),
		Store:    store,
	}, nil
}

func newSnapshotStore(a *app.Application) (SnapshotStore, error) {
	switch a.Config.SnapshotBackend {
	case config.SnapshotBackendPostgres:
		if a.Db == nil {
			return nil, fmt.Errorf("snapshot backend %q needs a database connection", config.SnapshotBackendPostgres)
		}
		return postgres.NewSnapshotStore(a.Db), nil
	case config.SnapshotBackendFile, "":
		return file.NewSnapshotStore(a.Config.OrdersFile), nil
	default:
		return nil, fmt.Errorf("unknown snapshot backend %q", a.Config.SnapshotBackend)
	}
}
