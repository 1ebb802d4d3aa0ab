package database

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"

	"github.com/ghuser/voiceshop/pkg/logger"
)

func TestNewPool_UnreachableHost(t *testing.T) {
	_, err := NewPool(context.Background(), "postgres://voiceshop:x@localhost:1/voiceshop?sslmode=disable&connect_timeout=1", logger.Discard())
	if err == nil {
		t.Fatal("expected error when Postgres is unreachable, got nil")
	}
}

// Integration tests: skipped unless DATABASE_URL is set.
func TestDatabaseIntegration(t *testing.T) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set; skipping integration tests")
	}

	ctx := context.Background()
	db, err := NewPool(ctx, url, logger.Discard())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer db.Close()

	t.Run("Ping", func(t *testing.T) {
		if err := db.Ping(ctx); err != nil {
			t.Fatalf("Ping failed: %v", err)
		}
	})

	t.Run("WithTx_RollsBackOnError", func(t *testing.T) {
		sentinel := errors.New("boom")
		err := db.WithTx(ctx, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, "CREATE TEMP TABLE tx_check (id int)"); err != nil {
				return err
			}
			return sentinel
		})
		if !errors.Is(err, sentinel) {
			t.Fatalf("expected sentinel error, got %v", err)
		}
	})

	t.Run("WithTx_Commits", func(t *testing.T) {
		var got int
		err := db.WithTx(ctx, func(tx *sql.Tx) error {
			return tx.QueryRowContext(ctx, "SELECT 1").Scan(&got)
		})
		if err != nil || got != 1 {
			t.Fatalf("expected 1, got %d (err %v)", got, err)
		}
	})
}
