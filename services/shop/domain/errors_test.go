package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelErrors_Distinct(t *testing.T) {
	all := []error{
		ErrEmptyOrder, ErrProductNotFound, ErrMissingSize, ErrInvalidSize,
		ErrInvalidQuantity, ErrOrderNotFound, ErrPersistence,
	}
	for i, a := range all {
		if a == nil {
			t.Fatalf("sentinel %d is nil", i)
		}
		for j, b := range all {
			if i != j && errors.Is(a, b) {
				t.Fatalf("sentinel %q must not match %q", a, b)
			}
		}
	}
}

func TestLineItemError_UnwrapsToSentinel(t *testing.T) {
	err := fmt.Errorf("create order: %w", &LineItemError{
		Index:       0,
		ProductID:   "hoodie-001",
		ProductName: "Black Logo Hoodie",
		Sizes:       []string{"S", "M", "L", "XL"},
		Err:         ErrMissingSize,
	})

	if !errors.Is(err, ErrMissingSize) {
		t.Fatal("errors.Is must match the wrapped sentinel")
	}

	var lie *LineItemError
	if !errors.As(err, &lie) {
		t.Fatal("errors.As must find the LineItemError")
	}
	if lie.ProductID != "hoodie-001" {
		t.Errorf("ProductID: got %q", lie.ProductID)
	}
}

func TestLineItemError_Message(t *testing.T) {
	tests := []struct {
		name string
		err  *LineItemError
		want string
	}{
		{
			"unknown product",
			&LineItemError{Index: 0, ProductID: "sock-001", Err: ErrProductNotFound},
			`line item 1: product not found: "sock-001"`,
		},
		{
			"missing size",
			&LineItemError{Index: 1, ProductID: "hoodie-001", ProductName: "Black Logo Hoodie", Err: ErrMissingSize},
			"line item 2: size required for Black Logo Hoodie",
		},
		{
			"invalid size",
			&LineItemError{Index: 0, ProductID: "tshirt-001", ProductName: "White Classic T-Shirt", Size: "XXL", Err: ErrInvalidSize},
			"line item 1: size not available for White Classic T-Shirt (size XXL)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCode(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{ErrEmptyOrder, "empty_order"},
		{&LineItemError{Err: ErrProductNotFound}, "product_not_found"},
		{&LineItemError{Err: ErrMissingSize}, "missing_size"},
		{&LineItemError{Err: ErrInvalidSize}, "invalid_size"},
		{&LineItemError{Err: ErrInvalidQuantity}, "invalid_quantity"},
		{ErrOrderNotFound, "order_not_found"},
		{fmt.Errorf("save: %w", ErrPersistence), "persistence_warning"},
		{errors.New("boom"), "internal"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := Code(tt.err); got != tt.want {
				t.Fatalf("Code(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}
