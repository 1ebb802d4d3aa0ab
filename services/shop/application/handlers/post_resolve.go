package handlers

import (
	"net/http"

	"github.com/ghuser/voiceshop/pkg/httpx"
	pkgvalidator "github.com/ghuser/voiceshop/pkg/validator"
)

// ResolveRequest is the request body for POST /resolve.
type ResolveRequest struct {
	Reference string `json:"reference" validate:"required,notblank,max=200" example:"the second one"`
} // @name ResolveRequest

// ResolveResponse reports what a reference points at. Resolved is false when
// the id is not in the catalog; ProductID then echoes the reference.
type ResolveResponse struct {
	Reference string           `json:"reference"  example:"2"`
	ProductID string           `json:"product_id" example:"hoodie-002"`
	Resolved  bool             `json:"resolved"   example:"true"`
	Product   *ProductResponse `json:"product,omitempty"`
} // @name ResolveResponse

// PostResolveHandler handles POST /resolve requests.
type PostResolveHandler struct {
	env *Env
}

// NewPostResolveHandler returns a PostResolveHandler.
func NewPostResolveHandler(env *Env) *PostResolveHandler {
	return &PostResolveHandler{env: env}
}

// Execute resolves an ordinal, a product name, or an id against the
// session's last-shown list and then the catalog.
//
//	@Summary		Resolve product reference
//	@Description	Maps "2", a product name, or an id to a catalog product id
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			request	body		ResolveRequest	true	"Reference to resolve"
//	@Success		200		{object}	ResolveResponse
//	@Failure		400		{object}	errhttp.ErrorResponse
//	@Failure		422		{object}	errhttp.ErrorResponse
//	@Router			/resolve [post]
func (h *PostResolveHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[ResolveRequest](w, r)
	if !ok {
		return
	}

	sc := h.env.conversation(r)
	id := h.env.Svcs.Resolver.Resolve(req.Reference, sc.LastShown)

	resp := ResolveResponse{Reference: req.Reference, ProductID: id}
	if p, found := h.env.Svcs.Catalog.Find(id); found {
		pr := toProductResponse(p, 0)
		resp.Resolved = true
		resp.Product = &pr
	}
	httpx.JSON(w, http.StatusOK, resp)
}
