package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/contracthub/pkg/httpx"
	"github.com/ghuser/contracthub/services/contract/domain/models"
)

// ContractResponse describes a contract.
type ContractResponse struct {
	ID             int64     `json:"id"              example:"42"`
	ContractNumber string    `json:"contract_number" example:"HD-NEW"`
	Email          string    `json:"email"           example:"an.nguyen@example.com"`
	FullName       string    `json:"full_name"       example:"An Nguyen"`
	Status         string    `json:"status"          example:"Active"`
	CreatedAt      time.Time `json:"created_at"      example:"2024-01-15T10:30:00Z"`
	FinishedAt     time.Time `json:"finished_at"     example:"2025-01-15T00:00:00Z"`
	UpdatedAt      time.Time `json:"updated_at"      example:"2024-02-01T09:00:00Z"`
} // @name ContractResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"contract not found"`
} // @name ErrorResponse

func toResponse(c *models.Contract) ContractResponse {
	return ContractResponse{
		ID:             c.ID,
		ContractNumber: c.Number.String(),
		Email:          c.Email,
		FullName:       c.FullName,
		Status:         string(c.Status),
		CreatedAt:      c.CreatedAt,
		FinishedAt:     c.FinishedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

// contractID parses the {id} path parameter, writing 400 when it is not a positive integer.
func contractID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid contract id")
		return 0, false
	}
	return id, true
}
