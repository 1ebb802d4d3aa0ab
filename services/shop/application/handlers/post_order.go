package handlers

import (
	"net/http"

	"github.com/ghuser/voiceshop/pkg/httpx"
	pkgvalidator "github.com/ghuser/voiceshop/pkg/validator"
	"github.com/ghuser/voiceshop/services/shop/domain/models"
)

// OrderLineRequest is one requested line. ProductIdentifier may be an id,
// a product name, or a 1-based position in the list last shown.
// Negative quantities pass through so the ledger can name the failing line.
type OrderLineRequest struct {
	ProductIdentifier string `json:"product_identifier" validate:"required,notblank,max=200" example:"2"`
	Quantity          int    `json:"quantity"           validate:"lte=1000"                example:"1"`
	Size              string `json:"size"               validate:"omitempty,max=16"        example:"M"`
} // @name OrderLineRequest

// CreateOrderRequest is the request body for POST /orders. An empty items
// list is rejected by the ledger with code empty_order.
type CreateOrderRequest struct {
	Items []OrderLineRequest `json:"items" validate:"dive"`
} // @name CreateOrderRequest

// PostOrderHandler handles POST /orders requests.
type PostOrderHandler struct {
	env *Env
}

// NewPostOrderHandler returns a PostOrderHandler.
func NewPostOrderHandler(env *Env) *PostOrderHandler {
	return &PostOrderHandler{env: env}
}

// Execute resolves every line against the conversation and places the order.
// Rejections carry the failing line so the caller can ask a follow-up.
//
//	@Summary		Place order
//	@Description	Resolves each line against the products last shown and records a completed order
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateOrderRequest	true	"Order request"
//	@Success		201		{object}	OrderResponse
//	@Failure		400		{object}	errhttp.ErrorResponse
//	@Failure		422		{object}	errhttp.ErrorResponse
//	@Router			/orders [post]
func (h *PostOrderHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateOrderRequest](w, r)
	if !ok {
		return
	}

	sc := h.env.conversation(r)
	lines := make([]models.LineItemRequest, len(req.Items))
	for i, it := range req.Items {
		lines[i] = models.LineItemRequest{
			ProductID: h.env.Svcs.Resolver.Resolve(it.ProductIdentifier, sc.LastShown),
			Quantity:  it.Quantity,
			Size:      it.Size,
		}
	}

	order, err := h.env.Svcs.Ledger.Create(r.Context(), lines)
	if err != nil {
		h.env.writeError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toOrderResponse(*order))
}
