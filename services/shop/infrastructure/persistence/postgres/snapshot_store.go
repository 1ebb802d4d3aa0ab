// Package postgres stores the order history in PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ghuser/voiceshop/pkg/database"
	"github.com/ghuser/voiceshop/services/shop/domain/models"
)

const (
	selectOrdersSQL = `SELECT payload FROM shop_orders ORDER BY seq`
	deleteOrdersSQL = `DELETE FROM shop_orders`
	insertOrderSQL  = `INSERT INTO shop_orders (seq, id, payload, total, currency, created_at) VALUES ($1, $2, $3, $4, $5, $6)`
)

// SnapshotStore implements repositories.OrderSnapshotStore against the
// shop_orders table. One row per order; seq preserves history order.
type SnapshotStore struct {
	db *database.Database
}

// NewSnapshotStore returns a SnapshotStore backed by db.
func NewSnapshotStore(db *database.Database) *SnapshotStore {
	return &SnapshotStore{db: db}
}

// Load returns every stored order, oldest first.
func (s *SnapshotStore) Load(ctx context.Context) ([]models.Order, error) {
	rows, err := s.db.DB().QueryContext(ctx, selectOrdersSQL)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	history := []models.Order{}
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		var o models.Order
		if err := json.Unmarshal(payload, &o); err != nil {
			return nil, fmt.Errorf("decode order row %d: %w", len(history), err)
		}
		history = append(history, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}
	return history, nil
}

// Save replaces the stored history in one transaction.
func (s *SnapshotStore) Save(ctx context.Context, history []models.Order) error {
	return s.db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, deleteOrdersSQL); err != nil {
			return fmt.Errorf("clear orders: %w", err)
		}
		stmt, err := tx.PrepareContext(ctx, insertOrderSQL)
		if err != nil {
			return fmt.Errorf("prepare insert: %w", err)
		}
		defer stmt.Close() //nolint:errcheck

		for i, o := range history {
			payload, err := json.Marshal(o)
			if err != nil {
				return fmt.Errorf("encode order %s: %w", o.ID, err)
			}
			if _, err := stmt.ExecContext(ctx, i, o.ID, payload, o.Total, o.Currency, o.CreatedAt); err != nil {
				var pgErr *pgconn.PgError
				if errors.As(err, &pgErr) && pgErr.Code == "23505" {
					return fmt.Errorf("duplicate order id %s: %w", o.ID, err)
				}
				return fmt.Errorf("insert order %s: %w", o.ID, err)
			}
		}
		return nil
	})
}

// Ping checks the underlying database connection.
func (s *SnapshotStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}
