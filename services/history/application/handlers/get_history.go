package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/contracthub/pkg/errhttp"
	"github.com/ghuser/contracthub/pkg/httpx"
	appsvcs "github.com/ghuser/contracthub/services/history/application/services"
	"github.com/ghuser/contracthub/services/history/domain/models"
)

// HistoryEntryResponse describes one recorded contract change.
type HistoryEntryResponse struct {
	ID            int64           `json:"id"             example:"1"`
	ContractID    int64           `json:"contract_id"    example:"42"`
	Action        string          `json:"action"         example:"Updated"`
	OldValue      json.RawMessage `json:"old_value"      swaggertype:"object"`
	NewValue      json.RawMessage `json:"new_value"      swaggertype:"object"`
	Timestamp     time.Time       `json:"timestamp"      example:"2024-03-01T09:00:00Z"`
	ChangedBy     string          `json:"changed_by"     example:"ops@example.com"`
	CorrelationID string          `json:"correlation_id" example:"host/abc-000001"`
} // @name HistoryEntryResponse

// HistoryResponse lists a contract's changes oldest first.
type HistoryResponse struct {
	ContractID int64                  `json:"contract_id" example:"42"`
	Entries    []HistoryEntryResponse `json:"entries"`
} // @name HistoryResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"invalid contract id"`
} // @name ErrorResponse

// GetHistoryHandler handles GET /contracts/{id}/history requests.
type GetHistoryHandler struct {
	svc *appsvcs.Services
}

// NewGetHistoryHandler returns a GetHistoryHandler backed by the given services.
func NewGetHistoryHandler(svc *appsvcs.Services) *GetHistoryHandler {
	return &GetHistoryHandler{svc: svc}
}

// Execute returns the change history of a contract.
//
//	@Summary	Get contract history
//	@Tags		contracts
//	@Produce	json
//	@Param		id	path		int	true	"Contract ID"
//	@Success	200	{object}	HistoryResponse
//	@Failure	400	{object}	ErrorResponse
//	@Router		/contracts/{id}/history [get]
func (h *GetHistoryHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid contract id")
		return
	}

	entries, err := h.svc.History.List(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	resp := HistoryResponse{ContractID: id, Entries: make([]HistoryEntryResponse, 0, len(entries))}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, toEntry(e))
	}
	httpx.JSON(w, http.StatusOK, resp)
}

func toEntry(h *models.ContractHistory) HistoryEntryResponse {
	return HistoryEntryResponse{
		ID:            h.ID,
		ContractID:    h.ContractID,
		Action:        h.Action,
		OldValue:      rawOrNull(h.OldValue),
		NewValue:      rawOrNull(h.NewValue),
		Timestamp:     h.Timestamp,
		ChangedBy:     h.ChangedBy,
		CorrelationID: h.CorrelationID,
	}
}

func rawOrNull(v json.RawMessage) json.RawMessage {
	if len(v) == 0 {
		return json.RawMessage("null")
	}
	return v
}
