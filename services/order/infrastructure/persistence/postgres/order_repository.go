package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ghuser/contracthub/pkg/contracts"
	"github.com/ghuser/contracthub/pkg/database"
	"github.com/ghuser/contracthub/pkg/events"
	"github.com/ghuser/contracthub/services/order/domain/models"
)

// OrderRepository implements repositories.OrderRepository against PostgreSQL.
type OrderRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewOrderRepository returns an OrderRepository backed by the given pool and event bus.
func NewOrderRepository(db *database.Database, bus *events.EventBus) *OrderRepository {
	return &OrderRepository{db: db, bus: bus}
}

// Save persists a new Order and its OrderCreatedEvent in one transaction.
func (r *OrderRepository) Save(ctx context.Context, o *models.Order) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx,
			`INSERT INTO orders (contract_id, contract_number, email, full_name, start_date, end_date, topup_fee, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			 RETURNING id`,
			o.ContractID, o.ContractNumber, o.Email, o.FullName, o.StartDate, o.EndDate, o.TopupFee, o.CreatedAt,
		).Scan(&o.ID); err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		evt := contracts.OrderCreatedEvent{
			Envelope:       contracts.NewEnvelope(o.CreatedAt),
			OrderID:        o.ID,
			ContractNumber: o.ContractNumber,
			Email:          o.Email,
			FullName:       o.FullName,
			StartDate:      o.StartDate,
			EndDate:        o.EndDate,
			TopupFee:       o.TopupFee,
		}
		if err := r.bus.PublishTx(ctx, tx, evt); err != nil {
			return fmt.Errorf("publish order created: %w", err)
		}
		return nil
	})
}
