package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/ghuser/contracthub/pkg/auth"
	"github.com/ghuser/contracthub/pkg/errhttp"
	"github.com/ghuser/contracthub/pkg/httpx"
	pkgvalidator "github.com/ghuser/contracthub/pkg/validator"
	appsvcs "github.com/ghuser/contracthub/services/account/application/services"
)

// RegisterAccountRequest is the request body for POST /accounts.
type RegisterAccountRequest struct {
	Email    string `json:"email"     validate:"required,email,max=254" example:"an.nguyen@example.com"`
	FullName string `json:"full_name" validate:"required,min=2,max=255" example:"An Nguyen"`
	Password string `json:"password"  validate:"required,min=8,max=72"  example:"correct-horse-battery"`
} // @name RegisterAccountRequest

// AccountResponse describes a registered account.
type AccountResponse struct {
	ID        uuid.UUID `json:"id"         example:"123e4567-e89b-12d3-a456-426614174000"`
	Email     string    `json:"email"      example:"an.nguyen@example.com"`
	FullName  string    `json:"full_name"  example:"An Nguyen"`
	CreatedAt time.Time `json:"created_at" example:"2024-01-15T10:30:00Z"`
} // @name AccountResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"account already exists"`
} // @name ErrorResponse

// PostAccountHandler handles POST /accounts requests.
type PostAccountHandler struct {
	svc   *appsvcs.Services
	store sessions.Store
}

// NewPostAccountHandler returns a PostAccountHandler backed by the given services.
func NewPostAccountHandler(svc *appsvcs.Services, store sessions.Store) *PostAccountHandler {
	return &PostAccountHandler{svc: svc, store: store}
}

// Execute registers an account and signs it in.
//
//	@Summary		Register account
//	@Description	Registers an account, publishes account.created and sets the session cookie
//	@Tags			accounts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		RegisterAccountRequest	true	"Registration request"
//	@Success		201		{object}	AccountResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/accounts [post]
func (h *PostAccountHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[RegisterAccountRequest](w, r)
	if !ok {
		return
	}

	acc, err := h.svc.Account.Register(r.Context(), req.Email, req.FullName, req.Password)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	if err := auth.SignIn(w, r, h.store, auth.Actor{AccountID: acc.ID, Email: acc.Email.String()}); err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, AccountResponse{
		ID:        acc.ID,
		Email:     acc.Email.String(),
		FullName:  acc.FullName,
		CreatedAt: acc.CreatedAt,
	})
}
