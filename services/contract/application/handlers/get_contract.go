package handlers

import (
	"net/http"

	"github.com/ghuser/contracthub/pkg/errhttp"
	"github.com/ghuser/contracthub/pkg/httpx"
	appsvcs "github.com/ghuser/contracthub/services/contract/application/services"
)

// GetContractHandler handles GET /contracts/{id} requests.
type GetContractHandler struct {
	svc *appsvcs.Services
}

// NewGetContractHandler returns a GetContractHandler backed by the given services.
func NewGetContractHandler(svc *appsvcs.Services) *GetContractHandler {
	return &GetContractHandler{svc: svc}
}

// Execute returns one contract.
//
//	@Summary	Get contract
//	@Tags		contracts
//	@Produce	json
//	@Param		id	path		int	true	"Contract ID"
//	@Success	200	{object}	ContractResponse
//	@Failure	400	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/contracts/{id} [get]
func (h *GetContractHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := contractID(w, r)
	if !ok {
		return
	}

	c, err := h.svc.Contract.Get(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toResponse(c))
}
