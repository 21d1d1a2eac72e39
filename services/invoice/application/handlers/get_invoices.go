package handlers

import (
	"net/http"
	"strings"

	"github.com/ghuser/contracthub/pkg/errhttp"
	"github.com/ghuser/contracthub/pkg/httpx"
	appsvcs "github.com/ghuser/contracthub/services/invoice/application/services"
)

// ListInvoicesResponse wraps the invoices of one contract.
type ListInvoicesResponse struct {
	ContractNumber string                 `json:"contract_number" example:"HD-NEW"`
	Invoices       []InvoiceOrderResponse `json:"invoices"`
} // @name ListInvoicesResponse

// GetInvoicesHandler handles GET /invoices requests.
type GetInvoicesHandler struct {
	svc *appsvcs.Services
}

// NewGetInvoicesHandler returns a GetInvoicesHandler backed by the given services.
func NewGetInvoicesHandler(svc *appsvcs.Services) *GetInvoicesHandler {
	return &GetInvoicesHandler{svc: svc}
}

// Execute lists the invoices of a contract.
//
//	@Summary	List invoices
//	@Tags		invoices
//	@Produce	json
//	@Param		contract_number	query		string	true	"Contract number"
//	@Success	200				{object}	ListInvoicesResponse
//	@Failure	400				{object}	ErrorResponse
//	@Router		/invoices [get]
func (h *GetInvoicesHandler) Execute(w http.ResponseWriter, r *http.Request) {
	number := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("contract_number")))
	if number == "" {
		httpx.JSONError(w, http.StatusBadRequest, "contract_number is required")
		return
	}

	orders, err := h.svc.Invoice.List(r.Context(), number)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	resp := ListInvoicesResponse{ContractNumber: number, Invoices: make([]InvoiceOrderResponse, 0, len(orders))}
	for _, o := range orders {
		resp.Invoices = append(resp.Invoices, toResponse(o))
	}
	httpx.JSON(w, http.StatusOK, resp)
}
