package services

import (
	"context"
	"fmt"

	"github.com/ghuser/contracthub/pkg/contracts"
	"github.com/ghuser/contracthub/pkg/logger"
	historydomain "github.com/ghuser/contracthub/services/history/domain"
	"github.com/ghuser/contracthub/services/history/domain/models"
	"github.com/ghuser/contracthub/services/history/domain/repositories"
)

// HistoryService records and serves contract audit trails.
type HistoryService struct {
	repo repositories.HistoryRepository
	log  logger.Logger
}

// NewHistoryService returns a HistoryService.
func NewHistoryService(repo repositories.HistoryRepository, log logger.Logger) *HistoryService {
	return &HistoryService{repo: repo, log: log}
}

// Record appends one entry for evt. A redelivered event is ignored.
func (s *HistoryService) Record(ctx context.Context, evt contracts.ContractChangedEvent) error {
	at := evt.Timestamp
	if at.IsZero() {
		at = evt.OccurredAt
	}
	h, err := models.NewContractHistory(evt.EventID, evt.ContractID, evt.Action,
		evt.OldValue, evt.NewValue, at, evt.ChangedBy, evt.CorrelationID)
	if err != nil {
		return fmt.Errorf("%w: %w", historydomain.ErrInvalidHistory, err)
	}

	appended, err := s.repo.Append(ctx, h)
	if err != nil {
		return fmt.Errorf("record contract history: %w", err)
	}
	if !appended {
		s.log.InfoContext(ctx, "contract change already recorded", "contract_id", h.ContractID)
		return nil
	}
	s.log.InfoContext(ctx, "contract change recorded",
		"contract_id", h.ContractID, "action", h.Action, "history_id", h.ID)
	return nil
}

// List returns a contract's history oldest first.
func (s *HistoryService) List(ctx context.Context, contractID int64) ([]*models.ContractHistory, error) {
	entries, err := s.repo.ListByContract(ctx, contractID)
	if err != nil {
		return nil, fmt.Errorf("list contract history: %w", err)
	}
	return entries, nil
}
