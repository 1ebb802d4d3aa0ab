// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/voiceshop/pkg/httpx"
	shopdomain "github.com/ghuser/voiceshop/services/shop/domain"
)

// ErrorResponse is the body of every error response. Code is a stable
// machine-readable kind; the line item fields are set only when a single
// requested line item was rejected.
type ErrorResponse struct {
	Error       string   `json:"error"`
	Code        string   `json:"code"`
	LineItem    *int     `json:"line_item,omitempty"` // 1-based
	ProductID   string   `json:"product_id,omitempty"`
	ProductName string   `json:"product_name,omitempty"`
	Size        string   `json:"size,omitempty"`
	Sizes       []string `json:"sizes,omitempty"`
}

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Defaults to 500 Internal Server Error for unrecognized errors; in production
// their message is replaced with the status text.
func WriteError(w http.ResponseWriter, err error, isProduction bool) {
	status := mapErrorToStatus(err)
	httpx.JSON(w, status, NewErrorResponse(err, status, isProduction))
}

// NewErrorResponse builds the response body for err.
func NewErrorResponse(err error, status int, isProduction bool) ErrorResponse {
	resp := ErrorResponse{
		Error: httpx.SafeError(err, status, isProduction),
		Code:  shopdomain.Code(err),
	}
	var lie *shopdomain.LineItemError
	if errors.As(err, &lie) {
		n := lie.Index + 1
		resp.LineItem = &n
		resp.ProductID = lie.ProductID
		resp.ProductName = lie.ProductName
		resp.Size = lie.Size
		resp.Sizes = lie.Sizes
	}
	return resp
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, shopdomain.ErrOrderNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, shopdomain.ErrEmptyOrder),
		errors.Is(err, shopdomain.ErrProductNotFound),
		errors.Is(err, shopdomain.ErrMissingSize),
		errors.Is(err, shopdomain.ErrInvalidSize),
		errors.Is(err, shopdomain.ErrInvalidQuantity):
		return http.StatusUnprocessableEntity // 422
	default:
		return http.StatusInternalServerError // 500
	}
}
