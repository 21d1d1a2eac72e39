package handlers

import (
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/ghuser/contracthub/pkg/auth"
	"github.com/ghuser/contracthub/pkg/errhttp"
	"github.com/ghuser/contracthub/pkg/httpx"
	pkgvalidator "github.com/ghuser/contracthub/pkg/validator"
	appsvcs "github.com/ghuser/contracthub/services/account/application/services"
)

// SignInRequest is the request body for POST /sessions.
type SignInRequest struct {
	Email    string `json:"email"    validate:"required,email" example:"an.nguyen@example.com"`
	Password string `json:"password" validate:"required"       example:"correct-horse-battery"`
} // @name SignInRequest

// PostSessionHandler handles POST /sessions requests.
type PostSessionHandler struct {
	svc   *appsvcs.Services
	store sessions.Store
}

// NewPostSessionHandler returns a PostSessionHandler backed by the given services.
func NewPostSessionHandler(svc *appsvcs.Services, store sessions.Store) *PostSessionHandler {
	return &PostSessionHandler{svc: svc, store: store}
}

// Execute signs an existing account in.
//
//	@Summary		Sign in
//	@Description	Verifies credentials and sets the session cookie
//	@Tags			accounts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		SignInRequest	true	"Credentials"
//	@Success		200		{object}	AccountResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Router			/sessions [post]
func (h *PostSessionHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[SignInRequest](w, r)
	if !ok {
		return
	}

	acc, err := h.svc.Account.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	if err := auth.SignIn(w, r, h.store, auth.Actor{AccountID: acc.ID, Email: acc.Email.String()}); err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, AccountResponse{
		ID:        acc.ID,
		Email:     acc.Email.String(),
		FullName:  acc.FullName,
		CreatedAt: acc.CreatedAt,
	})
}
