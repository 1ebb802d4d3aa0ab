package errhttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	shopdomain "github.com/ghuser/voiceshop/services/shop/domain"
)

func TestWriteError_StatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"ErrOrderNotFound", shopdomain.ErrOrderNotFound, http.StatusNotFound, "order_not_found"},
		{"ErrEmptyOrder", shopdomain.ErrEmptyOrder, http.StatusUnprocessableEntity, "empty_order"},
		{"ErrProductNotFound", shopdomain.ErrProductNotFound, http.StatusUnprocessableEntity, "product_not_found"},
		{"ErrMissingSize", shopdomain.ErrMissingSize, http.StatusUnprocessableEntity, "missing_size"},
		{"ErrInvalidSize", shopdomain.ErrInvalidSize, http.StatusUnprocessableEntity, "invalid_size"},
		{"ErrInvalidQuantity", shopdomain.ErrInvalidQuantity, http.StatusUnprocessableEntity, "invalid_quantity"},
		{"wrapped ErrOrderNotFound", fmt.Errorf("get order: %w", shopdomain.ErrOrderNotFound), http.StatusNotFound, "order_not_found"},
		{"unknown error", errors.New("something unexpected"), http.StatusInternalServerError, "internal"},
		{"generic wrapped error", fmt.Errorf("context: %w", errors.New("db down")), http.StatusInternalServerError, "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(w, tt.err, false)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			var body ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("response body is not valid JSON: %v", err)
			}
			if body.Code != tt.wantCode {
				t.Fatalf("expected code %q, got %q", tt.wantCode, body.Code)
			}
			if body.Error == "" {
				t.Fatal("response body missing error message")
			}
		})
	}
}

func TestWriteError_LineItemDetails(t *testing.T) {
	err := fmt.Errorf("create order: %w", &shopdomain.LineItemError{
		Index:       1,
		ProductID:   "hoodie-001",
		ProductName: "Black Logo Hoodie",
		Sizes:       []string{"S", "M", "L", "XL"},
		Err:         shopdomain.ErrMissingSize,
	})

	w := httptest.NewRecorder()
	WriteError(w, err, true)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}
	var body ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.LineItem == nil || *body.LineItem != 2 {
		t.Fatalf("expected 1-based line item 2, got %v", body.LineItem)
	}
	if body.ProductID != "hoodie-001" || body.ProductName != "Black Logo Hoodie" {
		t.Fatalf("unexpected product details: %+v", body)
	}
	if len(body.Sizes) != 4 {
		t.Fatalf("expected offered sizes, got %v", body.Sizes)
	}
	if body.Error == http.StatusText(http.StatusUnprocessableEntity) {
		t.Fatal("4xx messages are not masked in production")
	}
}

func TestWriteError_MasksInternalErrorsInProduction(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, errors.New("pq: password authentication failed"), true)

	var body ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error != http.StatusText(http.StatusInternalServerError) {
		t.Fatalf("expected masked message, got %q", body.Error)
	}
	if body.LineItem != nil {
		t.Fatal("line item must be omitted for non line item errors")
	}
}

func TestWriteError_ContentType(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, shopdomain.ErrOrderNotFound, false)

	ct := w.Header().Get("Content-Type")
	if ct == "" {
		t.Fatal("Content-Type header not set")
	}
}
