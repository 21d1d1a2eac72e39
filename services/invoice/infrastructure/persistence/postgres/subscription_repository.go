package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ghuser/contracthub/pkg/contracts"
	"github.com/ghuser/contracthub/pkg/database"
	"github.com/ghuser/contracthub/pkg/events"
	"github.com/ghuser/contracthub/services/invoice/domain/models"
)

// SubscriptionRepository implements repositories.SubscriptionRepository against PostgreSQL.
type SubscriptionRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewSubscriptionRepository returns a SubscriptionRepository backed by the given pool.
// The bus writes InvoiceReminderEvents to the outbox in RecordReminder.
func NewSubscriptionRepository(db *database.Database, bus *events.EventBus) *SubscriptionRepository {
	return &SubscriptionRepository{db: db, bus: bus}
}

// Insert stores s; an existing subscription for the contract is left untouched.
func (r *SubscriptionRepository) Insert(ctx context.Context, s *models.ContractSubscription) (bool, error) {
	res, err := r.db.DB().ExecContext(ctx,
		`INSERT INTO invoice_subscriptions
		     (contract_number, email, full_name, start_date, end_date, payment_day, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (contract_number) DO NOTHING`,
		s.ContractNumber, s.Email, s.FullName, s.StartDate, s.EndDate, s.PaymentDay, s.IsActive,
	)
	if err != nil {
		return false, fmt.Errorf("insert subscription: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert subscription: %w", err)
	}
	return n == 1, nil
}

// FindByPaymentDay returns active subscriptions billed on day.
func (r *SubscriptionRepository) FindByPaymentDay(ctx context.Context, day int) ([]*models.ContractSubscription, error) {
	rows, err := r.db.DB().QueryContext(ctx,
		`SELECT contract_number, email, full_name, start_date, end_date, payment_day, is_active, last_reminded_on
		 FROM invoice_subscriptions
		 WHERE is_active AND payment_day = $1
		 ORDER BY contract_number`,
		day,
	)
	if err != nil {
		return nil, fmt.Errorf("query subscriptions: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var subs []*models.ContractSubscription
	for rows.Next() {
		var (
			s        models.ContractSubscription
			reminded sql.NullTime
		)
		if err := rows.Scan(&s.ContractNumber, &s.Email, &s.FullName, &s.StartDate, &s.EndDate,
			&s.PaymentDay, &s.IsActive, &reminded); err != nil {
			return nil, fmt.Errorf("scan subscription: %w", err)
		}
		if reminded.Valid {
			on := reminded.Time
			s.LastRemindedOn = &on
		}
		subs = append(subs, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate subscriptions: %w", err)
	}
	return subs, nil
}

// RecordReminder flips last_reminded_on to on, totals the unpaid invoices and
// writes evt with that amount to the outbox, all in one transaction. A
// concurrent or repeated run for the same day matches no row and publishes
// nothing.
func (r *SubscriptionRepository) RecordReminder(ctx context.Context, contractNumber string, on time.Time, evt contracts.InvoiceReminderEvent) (bool, error) {
	var recorded bool
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE invoice_subscriptions
			 SET last_reminded_on = $2
			 WHERE contract_number = $1
			   AND is_active
			   AND (last_reminded_on IS NULL OR last_reminded_on <> $2)`,
			contractNumber, models.Day(on),
		)
		if err != nil {
			return fmt.Errorf("update last_reminded_on: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("update last_reminded_on: %w", err)
		}
		if n == 0 {
			return nil
		}

		if err := tx.QueryRowContext(ctx,
			`SELECT COALESCE(SUM(amount), 0) FROM invoice_orders WHERE contract_number = $1 AND status = $2`,
			contractNumber, string(models.StatusUnpaid),
		).Scan(&evt.Amount); err != nil {
			return fmt.Errorf("sum unpaid invoices: %w", err)
		}

		if err := r.bus.PublishTx(ctx, tx, evt); err != nil {
			return fmt.Errorf("publish invoice reminder: %w", err)
		}
		recorded = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return recorded, nil
}
