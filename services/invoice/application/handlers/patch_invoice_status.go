package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/contracthub/pkg/errhttp"
	"github.com/ghuser/contracthub/pkg/httpx"
	pkgvalidator "github.com/ghuser/contracthub/pkg/validator"
	appsvcs "github.com/ghuser/contracthub/services/invoice/application/services"
)

// ChangeStatusRequest is the request body for PATCH /invoices/{original_order_id}/status.
type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Paid Cancelled" example:"Paid"`
} // @name ChangeStatusRequest

// PatchInvoiceStatusHandler handles PATCH /invoices/{original_order_id}/status requests.
type PatchInvoiceStatusHandler struct {
	svc *appsvcs.Services
}

// NewPatchInvoiceStatusHandler returns a PatchInvoiceStatusHandler backed by the given services.
func NewPatchInvoiceStatusHandler(svc *appsvcs.Services) *PatchInvoiceStatusHandler {
	return &PatchInvoiceStatusHandler{svc: svc}
}

// Execute settles or cancels an unpaid invoice.
//
//	@Summary		Change invoice status
//	@Description	Moves an Unpaid invoice to Paid or Cancelled; any other transition is rejected
//	@Tags			invoices
//	@Accept			json
//	@Produce		json
//	@Param			original_order_id	path		int					true	"Original order ID"
//	@Param			request				body		ChangeStatusRequest	true	"New status"
//	@Success		200					{object}	InvoiceOrderResponse
//	@Failure		400					{object}	ErrorResponse
//	@Failure		404					{object}	ErrorResponse
//	@Failure		409					{object}	ErrorResponse
//	@Failure		422					{object}	ErrorResponse
//	@Router			/invoices/{original_order_id}/status [patch]
func (h *PatchInvoiceStatusHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "original_order_id"), 10, 64)
	if err != nil || id <= 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid original order id")
		return
	}

	req, ok := pkgvalidator.ValidateRequest[ChangeStatusRequest](w, r)
	if !ok {
		return
	}

	o, err := h.svc.Invoice.ChangeStatus(r.Context(), id, req.Status)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toResponse(o))
}
