package repositories

import (
	"context"

	"github.com/ghuser/contracthub/services/contract/domain/models"
)

// Mutation applies a change to a loaded contract. Returning a nil Change
// leaves the stored contract untouched.
type Mutation func(c *models.Contract) (*models.Change, error)

// ContractRepository is the persistence interface for the Contract aggregate.
// Writes publish their event through the outbox in the same transaction.
type ContractRepository interface {
	// Save inserts c, assigns c.ID and publishes ContractCreatedEvent.
	Save(ctx context.Context, c *models.Contract) error
	GetByID(ctx context.Context, id int64) (*models.Contract, error)

	// Update loads the contract with a row lock, applies mutate and, when it
	// yields a Change, persists it and publishes ContractChangedEvent.
	Update(ctx context.Context, id int64, mutate Mutation) (*models.Contract, error)
}
