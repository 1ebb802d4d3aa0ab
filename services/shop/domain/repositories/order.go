package repositories

import (
	"context"
	"errors"

	"github.com/ghuser/voiceshop/services/shop/domain/models"
)

// ErrSnapshotQuarantined is returned by Load when the stored snapshot could
// not be read and was moved out of the way. Saving a fresh history afterwards
// loses nothing.
var ErrSnapshotQuarantined = errors.New("order snapshot quarantined")

// OrderSnapshotStore persists the complete order history as one snapshot.
// The domain layer owns this interface; infrastructure implements it.
type OrderSnapshotStore interface {
	// Load returns the stored history, oldest first. A missing snapshot is an
	// empty history, not an error. Any other error means the stored history
	// is still in place and a later Save would overwrite it, unless the error
	// wraps ErrSnapshotQuarantined.
	Load(ctx context.Context) ([]models.Order, error)

	// Save replaces the stored snapshot with history in one step.
	Save(ctx context.Context, history []models.Order) error
}
