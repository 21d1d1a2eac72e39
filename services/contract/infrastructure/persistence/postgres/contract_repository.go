package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ghuser/contracthub/pkg/contracts"
	"github.com/ghuser/contracthub/pkg/database"
	"github.com/ghuser/contracthub/pkg/events"
	contractdomain "github.com/ghuser/contracthub/services/contract/domain"
	"github.com/ghuser/contracthub/services/contract/domain/models"
	"github.com/ghuser/contracthub/services/contract/domain/repositories"
)

const contractColumns = `id, contract_number, email, full_name, status, created_at, finished_at, updated_at`

// ContractRepository implements repositories.ContractRepository against PostgreSQL.
type ContractRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewContractRepository returns a ContractRepository backed by the given pool and event bus.
func NewContractRepository(db *database.Database, bus *events.EventBus) *ContractRepository {
	return &ContractRepository{db: db, bus: bus}
}

// Save persists a new Contract and its ContractCreatedEvent in one transaction.
// Returns ErrContractAlreadyExists on a duplicate contract number.
func (r *ContractRepository) Save(ctx context.Context, c *models.Contract) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx,
			`INSERT INTO contracts (contract_number, email, full_name, status, created_at, finished_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 RETURNING id`,
			c.Number.String(), c.Email, c.FullName, string(c.Status), c.CreatedAt, c.FinishedAt, c.UpdatedAt,
		).Scan(&c.ID)
		if err != nil {
			if database.IsUniqueViolation(err) {
				return contractdomain.ErrContractAlreadyExists
			}
			return fmt.Errorf("insert contract: %w", err)
		}

		evt := contracts.ContractCreatedEvent{
			Envelope:       contracts.NewEnvelope(c.CreatedAt),
			ContractNumber: c.Number.String(),
			Email:          c.Email,
			FullName:       c.FullName,
			CreatedAt:      c.CreatedAt,
			FinishedAt:     c.FinishedAt,
		}
		if err := r.bus.PublishTx(ctx, tx, evt); err != nil {
			return fmt.Errorf("publish contract created: %w", err)
		}
		return nil
	})
}

// GetByID returns the contract with id, or ErrContractNotFound.
func (r *ContractRepository) GetByID(ctx context.Context, id int64) (*models.Contract, error) {
	row := r.db.DB().QueryRowContext(ctx, `SELECT `+contractColumns+` FROM contracts WHERE id = $1`, id)
	return scanContract(row)
}

// Update locks the contract row, applies mutate and, when it produces a
// Change, stores the new state and its ContractChangedEvent atomically.
func (r *ContractRepository) Update(ctx context.Context, id int64, mutate repositories.Mutation) (*models.Contract, error) {
	var updated *models.Contract
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		c, err := scanContract(tx.QueryRowContext(ctx,
			`SELECT `+contractColumns+` FROM contracts WHERE id = $1 FOR UPDATE`, id))
		if err != nil {
			return err
		}

		change, err := mutate(c)
		if err != nil {
			return err
		}
		updated = c
		if change == nil {
			return nil
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE contracts SET email = $2, full_name = $3, status = $4, finished_at = $5, updated_at = $6
			 WHERE id = $1`,
			c.ID, c.Email, c.FullName, string(c.Status), c.FinishedAt, c.UpdatedAt,
		); err != nil {
			return fmt.Errorf("update contract: %w", err)
		}

		oldValue, newValue, err := change.Payloads()
		if err != nil {
			return err
		}
		evt := contracts.ContractChangedEvent{
			Envelope:      contracts.NewEnvelope(change.At),
			ContractID:    c.ID,
			Action:        change.Action,
			OldValue:      oldValue,
			NewValue:      newValue,
			Timestamp:     change.At,
			ChangedBy:     change.ChangedBy,
			CorrelationID: change.CorrelationID,
		}
		if err := r.bus.PublishTx(ctx, tx, evt); err != nil {
			return fmt.Errorf("publish contract changed: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func scanContract(row *sql.Row) (*models.Contract, error) {
	var (
		c      models.Contract
		number string
		status string
	)
	err := row.Scan(&c.ID, &number, &c.Email, &c.FullName, &status, &c.CreatedAt, &c.FinishedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, contractdomain.ErrContractNotFound
		}
		return nil, fmt.Errorf("query contract: %w", err)
	}
	c.Number = models.ContractNumber(number)
	c.Status = models.Status(status)
	return &c, nil
}
