package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ghuser/contracthub/pkg/contracts"
	"github.com/ghuser/contracthub/pkg/database"
	"github.com/ghuser/contracthub/pkg/events"
	accountdomain "github.com/ghuser/contracthub/services/account/domain"
	"github.com/ghuser/contracthub/services/account/domain/models"
)

// AccountRepository implements repositories.AccountRepository against PostgreSQL.
type AccountRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewAccountRepository returns an AccountRepository backed by the given pool.
// The bus writes AccountCreatedEvents to the outbox inside the insert transaction.
func NewAccountRepository(db *database.Database, bus *events.EventBus) *AccountRepository {
	return &AccountRepository{db: db, bus: bus}
}

// Save persists a new Account and its AccountCreatedEvent in one transaction.
// Returns ErrAccountAlreadyExists on a duplicate email.
func (r *AccountRepository) Save(ctx context.Context, acc *models.Account) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO accounts (id, email, full_name, password_hash, created_at)
			 VALUES ($1, $2, $3, $4, $5)`,
			acc.ID, acc.Email.String(), acc.FullName, acc.PasswordHash, acc.CreatedAt,
		)
		if err != nil {
			if database.IsUniqueViolation(err) {
				return accountdomain.ErrAccountAlreadyExists
			}
			return fmt.Errorf("insert account: %w", err)
		}

		evt := contracts.AccountCreatedEvent{
			Envelope:  contracts.NewEnvelope(acc.CreatedAt),
			Email:     acc.Email.String(),
			FullName:  acc.FullName,
			CreatedAt: acc.CreatedAt,
		}
		if err := r.bus.PublishTx(ctx, tx, evt); err != nil {
			return fmt.Errorf("publish account created: %w", err)
		}
		return nil
	})
}

// GetByEmail returns the account registered under email, or ErrAccountNotFound.
func (r *AccountRepository) GetByEmail(ctx context.Context, email models.Email) (*models.Account, error) {
	var acc models.Account
	var stored string
	err := r.db.DB().QueryRowContext(ctx,
		`SELECT id, email, full_name, password_hash, created_at FROM accounts WHERE email = $1`,
		email.String(),
	).Scan(&acc.ID, &stored, &acc.FullName, &acc.PasswordHash, &acc.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, accountdomain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("query account: %w", err)
	}
	acc.Email = models.Email(stored)
	return &acc, nil
}
