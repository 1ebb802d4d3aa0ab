package handlers

import (
	"net/http"

	"github.com/ghuser/voiceshop/pkg/httpx"
	pkgvalidator "github.com/ghuser/voiceshop/pkg/validator"
	"github.com/ghuser/voiceshop/services/shop/domain/models"
)

// CustomerRequest is the request body for PUT /customer.
type CustomerRequest struct {
	Name                 string `json:"name"                  validate:"required,notblank,max=200" example:"Asha Rao"`
	Address              string `json:"address"               validate:"required,notblank,max=500" example:"12 MG Road, Pune"`
	DeliveryInstructions string `json:"delivery_instructions" validate:"max=500"                   example:"Leave at the gate"`
} // @name CustomerRequest

// PutCustomerHandler handles PUT /customer requests.
type PutCustomerHandler struct {
	env *Env
}

// NewPutCustomerHandler returns a PutCustomerHandler.
func NewPutCustomerHandler(env *Env) *PutCustomerHandler {
	return &PutCustomerHandler{env: env}
}

// Execute replaces the delivery details held in the session.
//
//	@Summary		Save delivery details
//	@Tags			customer
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CustomerRequest	true	"Delivery details"
//	@Success		200		{object}	CustomerResponse
//	@Failure		400		{object}	errhttp.ErrorResponse
//	@Failure		422		{object}	errhttp.ErrorResponse
//	@Router			/customer [put]
func (h *PutCustomerHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CustomerRequest](w, r)
	if !ok {
		return
	}

	sc := h.env.conversation(r)
	sc.Customer = models.Customer{
		Name:                 req.Name,
		Address:              req.Address,
		DeliveryInstructions: req.DeliveryInstructions,
	}
	if err := h.env.saveConversation(w, r, sc); err != nil {
		h.env.writeError(w, err)
		return
	}

	h.env.Log.InfoContext(r.Context(), "customer details saved")
	httpx.JSON(w, http.StatusOK, toCustomerResponse(sc.Customer))
}

// GetCustomerHandler handles GET /customer requests.
type GetCustomerHandler struct {
	env *Env
}

// NewGetCustomerHandler returns a GetCustomerHandler.
func NewGetCustomerHandler(env *Env) *GetCustomerHandler {
	return &GetCustomerHandler{env: env}
}

// Execute returns the delivery details held in the session.
//
//	@Summary		Delivery details
//	@Tags			customer
//	@Produce		json
//	@Success		200	{object}	CustomerResponse
//	@Router			/customer [get]
func (h *GetCustomerHandler) Execute(w http.ResponseWriter, r *http.Request) {
	sc := h.env.conversation(r)
	httpx.JSON(w, http.StatusOK, toCustomerResponse(sc.Customer))
}

// DeleteSessionHandler handles DELETE /session requests.
type DeleteSessionHandler struct {
	env *Env
}

// NewDeleteSessionHandler returns a DeleteSessionHandler.
func NewDeleteSessionHandler(env *Env) *DeleteSessionHandler {
	return &DeleteSessionHandler{env: env}
}

// Execute forgets the conversation: last-shown list and delivery details.
//
//	@Summary		End conversation
//	@Tags			customer
//	@Success		204
//	@Router			/session [delete]
func (h *DeleteSessionHandler) Execute(w http.ResponseWriter, r *http.Request) {
	if err := h.env.Sessions.Clear(w, r); err != nil {
		h.env.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
