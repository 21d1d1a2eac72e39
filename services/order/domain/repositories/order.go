package repositories

import (
	"context"

	"github.com/ghuser/contracthub/services/order/domain/models"
)

// OrderRepository is the persistence interface for the Order aggregate.
type OrderRepository interface {
	// Save inserts o, assigns o.ID and writes its OrderCreatedEvent to the outbox atomically.
	Save(ctx context.Context, o *models.Order) error
}

// ContractLookup resolves the contract number of a contract owned by another
// context. It returns domain.ErrContractUnknown when the contract does not exist.
type ContractLookup interface {
	ContractNumber(ctx context.Context, contractID int64) (string, error)
}
