package handlers

import (
	"net/http"
	"time"

	"github.com/ghuser/contracthub/pkg/errhttp"
	"github.com/ghuser/contracthub/pkg/httpx"
	pkgvalidator "github.com/ghuser/contracthub/pkg/validator"
	appsvcs "github.com/ghuser/contracthub/services/contract/application/services"
)

// CreateContractRequest is the request body for POST /contracts.
type CreateContractRequest struct {
	ContractNumber string    `json:"contract_number" validate:"required,min=2,max=32"  example:"HD-NEW"`
	Email          string    `json:"email"           validate:"required,email,max=254" example:"an.nguyen@example.com"`
	FullName       string    `json:"full_name"       validate:"required,min=2,max=255" example:"An Nguyen"`
	FinishedAt     time.Time `json:"finished_at"     validate:"required"               example:"2025-01-15T00:00:00Z"`
} // @name CreateContractRequest

// PostContractHandler handles POST /contracts requests.
type PostContractHandler struct {
	svc *appsvcs.Services
}

// NewPostContractHandler returns a PostContractHandler backed by the given services.
func NewPostContractHandler(svc *appsvcs.Services) *PostContractHandler {
	return &PostContractHandler{svc: svc}
}

// Execute creates a contract.
//
//	@Summary		Create contract
//	@Description	Creates a contract and publishes contract.created
//	@Tags			contracts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateContractRequest	true	"Contract creation request"
//	@Success		201		{object}	ContractResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/contracts [post]
func (h *PostContractHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateContractRequest](w, r)
	if !ok {
		return
	}

	c, err := h.svc.Contract.Create(r.Context(), req.ContractNumber, req.Email, req.FullName, req.FinishedAt)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toResponse(c))
}
