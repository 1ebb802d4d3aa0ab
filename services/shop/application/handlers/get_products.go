package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/ghuser/voiceshop/pkg/httpx"
	domainsvcs "github.com/ghuser/voiceshop/services/shop/domain/services"
)

// GetProductsHandler handles GET /products requests.
type GetProductsHandler struct {
	env *Env
}

// NewGetProductsHandler returns a GetProductsHandler.
func NewGetProductsHandler(env *Env) *GetProductsHandler {
	return &GetProductsHandler{env: env}
}

// Execute queries the catalog. The free-text q parameter is parsed first;
// category, max_price and color override whatever it yielded. The result
// becomes the session's last-shown list, even when empty.
//
//	@Summary		Browse products
//	@Description	Filters the catalog and remembers the result for ordinal references
//	@Tags			products
//	@Produce		json
//	@Param			q			query		string	false	"Free-text request, e.g. black caps under 600"
//	@Param			category	query		string	false	"mug, hoodie, tshirt, cap or bag"
//	@Param			max_price	query		int		false	"Inclusive price ceiling"
//	@Param			color		query		string	false	"Color, case-insensitive"
//	@Success		200			{object}	ProductListResponse
//	@Failure		400			{object}	errhttp.ErrorResponse
//	@Router			/products [get]
func (h *GetProductsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	filters, err := parseFilters(r)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_filter", err.Error())
		return
	}

	products := h.env.Svcs.Catalog.Query(filters)

	// Losing the list only costs the shopper a repeated search.
	sc := h.env.conversation(r).WithShown(products)
	if err := h.env.saveConversation(w, r, sc); err != nil {
		h.env.Log.WarnContext(r.Context(), "session not saved", "error", err)
	}

	resp := ProductListResponse{
		Products: make([]ProductResponse, len(products)),
		Count:    len(products),
	}
	for i, p := range products {
		resp.Products[i] = toProductResponse(p, i+1)
	}
	httpx.JSON(w, http.StatusOK, resp)
}

type filterError struct{ param, value string }

func (e *filterError) Error() string {
	return "invalid " + e.param + ": " + strconv.Quote(e.value)
}

func parseFilters(r *http.Request) (domainsvcs.Filters, error) {
	q := r.URL.Query()
	filters := domainsvcs.ParseSearchQuery(q.Get("q"))

	if v := strings.TrimSpace(q.Get("category")); v != "" {
		filters.Category = v
	}
	if v := strings.TrimSpace(q.Get("color")); v != "" {
		filters.Color = v
	}
	if v := strings.TrimSpace(q.Get("max_price")); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 0 {
			return domainsvcs.Filters{}, &filterError{param: "max_price", value: v}
		}
		filters.MaxPrice = &n
	}
	return filters, nil
}
