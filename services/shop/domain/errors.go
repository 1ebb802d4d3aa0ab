package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the shop domain. Use errors.Is() to check these.
var (
	// ErrEmptyOrder indicates an order was requested without line items.
	ErrEmptyOrder = errors.New("order has no line items")

	// ErrProductNotFound indicates a product id that is not in the catalog reached the ledger.
	ErrProductNotFound = errors.New("product not found")

	// ErrMissingSize indicates a size-variant product was ordered without a size.
	ErrMissingSize = errors.New("size required")

	// ErrInvalidSize indicates the supplied size is not offered for the product.
	ErrInvalidSize = errors.New("size not available")

	// ErrInvalidQuantity indicates a negative quantity.
	ErrInvalidQuantity = errors.New("invalid quantity")

	// ErrOrderNotFound indicates no order matches the lookup (or none exist yet).
	ErrOrderNotFound = errors.New("order not found")

	// ErrPersistence marks a failed snapshot write. It is a warning: the order
	// stays recorded in memory and is still returned to the caller.
	ErrPersistence = errors.New("order snapshot not persisted")
)

// LineItemError reports why a single requested line item was rejected.
// Err is always one of the sentinels above; the remaining fields give the
// conversational layer enough detail to phrase a follow-up question.
type LineItemError struct {
	Index       int // zero-based position in the request
	ProductID   string
	ProductName string
	Size        string
	Sizes       []string // sizes offered by the product, if any
	Err         error
}

func (e *LineItemError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "line item %d: %s", e.Index+1, e.Err)
	switch {
	case e.ProductName != "":
		fmt.Fprintf(&b, " for %s", e.ProductName)
	case e.ProductID != "":
		fmt.Fprintf(&b, ": %q", e.ProductID)
	}
	if e.Size != "" {
		fmt.Fprintf(&b, " (size %s)", e.Size)
	}
	return b.String()
}

func (e *LineItemError) Unwrap() error { return e.Err }

// Code returns a stable machine-readable name for the rejection kind.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrEmptyOrder):
		return "empty_order"
	case errors.Is(err, ErrProductNotFound):
		return "product_not_found"
	case errors.Is(err, ErrMissingSize):
		return "missing_size"
	case errors.Is(err, ErrInvalidSize):
		return "invalid_size"
	case errors.Is(err, ErrInvalidQuantity):
		return "invalid_quantity"
	case errors.Is(err, ErrOrderNotFound):
		return "order_not_found"
	case errors.Is(err, ErrPersistence):
		return "persistence_warning"
	default:
		return "internal"
	}
}
