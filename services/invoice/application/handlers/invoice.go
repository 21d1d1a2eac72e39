package handlers

import (
	"time"

	"github.com/ghuser/contracthub/services/invoice/domain/models"
)

// InvoiceOrderResponse describes an invoice order.
type InvoiceOrderResponse struct {
	OriginalOrderID int64     `json:"original_order_id" example:"101"`
	ContractNumber  string    `json:"contract_number"   example:"HD-NEW"`
	Email           string    `json:"email"             example:"an.nguyen@example.com"`
	FullName        string    `json:"full_name"         example:"An Nguyen"`
	StartDate       time.Time `json:"start_date"        example:"2024-03-01T00:00:00Z"`
	EndDate         time.Time `json:"end_date"          example:"2024-03-31T00:00:00Z"`
	Amount          int64     `json:"amount"            example:"500000"`
	Status          string    `json:"status"            example:"Unpaid"`
	IsReminderSent  bool      `json:"is_reminder_sent"  example:"false"`
	CreatedAt       time.Time `json:"created_at"        example:"2024-03-01T08:00:01Z"`
} // @name InvoiceOrderResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"invoice order not found"`
} // @name ErrorResponse

func toResponse(o *models.InvoiceOrder) InvoiceOrderResponse {
	return InvoiceOrderResponse{
		OriginalOrderID: o.OriginalOrderID,
		ContractNumber:  o.ContractNumber,
		Email:           o.Email,
		FullName:        o.FullName,
		StartDate:       o.StartDate,
		EndDate:         o.EndDate,
		Amount:          o.Amount,
		Status:          string(o.Status),
		IsReminderSent:  o.IsReminderSent,
		CreatedAt:       o.CreatedAt,
	}
}
