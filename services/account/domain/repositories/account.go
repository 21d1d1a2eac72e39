package repositories

import (
	"context"

	"github.com/ghuser/contracthub/services/account/domain/models"
)

// AccountRepository is the persistence interface for the Account aggregate.
type AccountRepository interface {
	// Save inserts acc and writes its AccountCreatedEvent to the outbox atomically.
	Save(ctx context.Context, acc *models.Account) error
	GetByEmail(ctx context.Context, email models.Email) (*models.Account, error)
}
