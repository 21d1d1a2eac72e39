package repositories

import (
	"context"

	"github.com/ghuser/contracthub/services/history/domain/models"
)

// HistoryRepository persists contract history. Entries are never updated or deleted.
type HistoryRepository interface {
	// Append stores h. It reports false when an entry with the same event id
	// already exists.
	Append(ctx context.Context, h *models.ContractHistory) (bool, error)

	// ListByContract returns a contract's entries oldest first.
	ListByContract(ctx context.Context, contractID int64) ([]*models.ContractHistory, error)
}
