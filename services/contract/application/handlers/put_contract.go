package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/ghuser/contracthub/pkg/auth"
	"github.com/ghuser/contracthub/pkg/errhttp"
	"github.com/ghuser/contracthub/pkg/httpx"
	pkgvalidator "github.com/ghuser/contracthub/pkg/validator"
	appsvcs "github.com/ghuser/contracthub/services/contract/application/services"
)

// UpdateContractRequest is the request body for PUT /contracts/{id}.
type UpdateContractRequest struct {
	Email      string    `json:"email"       validate:"required,email,max=254"          example:"an.nguyen@example.com"`
	FullName   string    `json:"full_name"   validate:"required,min=2,max=255"          example:"An Tran"`
	FinishedAt time.Time `json:"finished_at" validate:"required"                        example:"2026-01-15T00:00:00Z"`
	Status     string    `json:"status"      validate:"required,oneof=Active Terminated" example:"Active"`
} // @name UpdateContractRequest

// PutContractHandler handles PUT /contracts/{id} requests.
type PutContractHandler struct {
	svc *appsvcs.Services
}

// NewPutContractHandler returns a PutContractHandler backed by the given services.
func NewPutContractHandler(svc *appsvcs.Services) *PutContractHandler {
	return &PutContractHandler{svc: svc}
}

// Execute updates a contract on behalf of the signed-in account.
//
//	@Summary		Update contract
//	@Description	Replaces the mutable fields and publishes contract.changed with the acting account and request id
//	@Tags			contracts
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int						true	"Contract ID"
//	@Param			request	body		UpdateContractRequest	true	"Contract update request"
//	@Success		200		{object}	ContractResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/contracts/{id} [put]
func (h *PutContractHandler) Execute(w http.ResponseWriter, r *http.Request) {
	actor, err := auth.ActorFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	id, ok := contractID(w, r)
	if !ok {
		return
	}

	req, ok := pkgvalidator.ValidateRequest[UpdateContractRequest](w, r)
	if !ok {
		return
	}

	c, err := h.svc.Contract.Update(r.Context(), id, appsvcs.UpdateInput{
		Email:      req.Email,
		FullName:   req.FullName,
		FinishedAt: req.FinishedAt,
		Status:     req.Status,
	}, actor.Email, middleware.GetReqID(r.Context()))
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toResponse(c))
}
