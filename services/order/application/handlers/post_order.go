package handlers

import (
	"net/http"
	"time"

	"github.com/ghuser/contracthub/pkg/errhttp"
	"github.com/ghuser/contracthub/pkg/httpx"
	pkgvalidator "github.com/ghuser/contracthub/pkg/validator"
	appsvcs "github.com/ghuser/contracthub/services/order/application/services"
)

// CreateOrderRequest is the request body for POST /orders.
type CreateOrderRequest struct {
	ContractID int64     `json:"contract_id" validate:"required,gt=0"                example:"42"`
	Email      string    `json:"email"       validate:"required,email,max=254"       example:"an.nguyen@example.com"`
	FullName   string    `json:"full_name"   validate:"required,min=2,max=255"       example:"An Nguyen"`
	StartDate  time.Time `json:"start_date"  validate:"required"                     example:"2024-03-01T00:00:00Z"`
	EndDate    time.Time `json:"end_date"    validate:"required,gtefield=StartDate"  example:"2024-03-31T00:00:00Z"`
	TopupFee   int64     `json:"topup_fee"   validate:"required,gt=0"                example:"500000"`
} // @name CreateOrderRequest

// OrderResponse describes a placed order.
type OrderResponse struct {
	ID             int64     `json:"id"              example:"101"`
	ContractID     int64     `json:"contract_id"     example:"42"`
	ContractNumber string    `json:"contract_number" example:"HD-NEW"`
	Email          string    `json:"email"           example:"an.nguyen@example.com"`
	FullName       string    `json:"full_name"       example:"An Nguyen"`
	StartDate      time.Time `json:"start_date"      example:"2024-03-01T00:00:00Z"`
	EndDate        time.Time `json:"end_date"        example:"2024-03-31T00:00:00Z"`
	TopupFee       int64     `json:"topup_fee"       example:"500000"`
	CreatedAt      time.Time `json:"created_at"      example:"2024-03-01T08:00:00Z"`
} // @name OrderResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"invalid order"`
} // @name ErrorResponse

// PostOrderHandler handles POST /orders requests.
type PostOrderHandler struct {
	svc *appsvcs.Services
}

// NewPostOrderHandler returns a PostOrderHandler backed by the given services.
func NewPostOrderHandler(svc *appsvcs.Services) *PostOrderHandler {
	return &PostOrderHandler{svc: svc}
}

// Execute places an order.
//
//	@Summary		Place order
//	@Description	Places a top-up order and publishes order.created
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateOrderRequest	true	"Order request"
//	@Success		201		{object}	OrderResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/orders [post]
func (h *PostOrderHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateOrderRequest](w, r)
	if !ok {
		return
	}

	o, err := h.svc.Order.Place(r.Context(), appsvcs.PlaceInput{
		ContractID: req.ContractID,
		Email:      req.Email,
		FullName:   req.FullName,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		TopupFee:   req.TopupFee,
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, OrderResponse{
		ID:             o.ID,
		ContractID:     o.ContractID,
		ContractNumber: o.ContractNumber,
		Email:          o.Email,
		FullName:       o.FullName,
		StartDate:      o.StartDate,
		EndDate:        o.EndDate,
		TopupFee:       o.TopupFee,
		CreatedAt:      o.CreatedAt,
	})
}
