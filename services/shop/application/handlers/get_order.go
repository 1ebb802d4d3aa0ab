package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/voiceshop/pkg/httpx"
)

// GetLastOrderHandler handles GET /orders/last requests.
type GetLastOrderHandler struct {
	env *Env
}

// NewGetLastOrderHandler returns a GetLastOrderHandler.
func NewGetLastOrderHandler(env *Env) *GetLastOrderHandler {
	return &GetLastOrderHandler{env: env}
}

// Execute returns the most recent order, or 404 when none has been placed.
//
//	@Summary		Last order
//	@Tags			orders
//	@Produce		json
//	@Success		200	{object}	OrderResponse
//	@Failure		404	{object}	errhttp.ErrorResponse
//	@Router			/orders/last [get]
func (h *GetLastOrderHandler) Execute(w http.ResponseWriter, r *http.Request) {
	order, err := h.env.Svcs.Orders.Last()
	if err != nil {
		h.env.writeError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toOrderResponse(order))
}

// GetOrderHandler handles GET /orders/{id} requests.
type GetOrderHandler struct {
	env *Env
}

// NewGetOrderHandler returns a GetOrderHandler.
func NewGetOrderHandler(env *Env) *GetOrderHandler {
	return &GetOrderHandler{env: env}
}

// Execute returns one order by id.
//
//	@Summary		Get order
//	@Tags			orders
//	@Produce		json
//	@Param			id	path		string	true	"Order id"	example(order_20250115_120000)
//	@Success		200	{object}	OrderResponse
//	@Failure		404	{object}	errhttp.ErrorResponse
//	@Router			/orders/{id} [get]
func (h *GetOrderHandler) Execute(w http.ResponseWriter, r *http.Request) {
	order, err := h.env.Svcs.Orders.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.env.writeError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toOrderResponse(order))
}
