package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ghuser/contracthub/pkg/database"
	invoicedomain "github.com/ghuser/contracthub/services/invoice/domain"
	"github.com/ghuser/contracthub/services/invoice/domain/models"
)

const invoiceOrderColumns = `original_order_id, contract_number, email, full_name, start_date, end_date,
	amount, status, is_reminder_sent, created_at`

type scanner interface {
	Scan(dest ...any) error
}

// InvoiceOrderRepository implements repositories.InvoiceOrderRepository against PostgreSQL.
type InvoiceOrderRepository struct {
	db *database.Database
}

// NewInvoiceOrderRepository returns an InvoiceOrderRepository backed by the given pool.
func NewInvoiceOrderRepository(db *database.Database) *InvoiceOrderRepository {
	return &InvoiceOrderRepository{db: db}
}

// Insert stores o. The primary key on original_order_id turns a racing
// duplicate into a no-op.
func (r *InvoiceOrderRepository) Insert(ctx context.Context, o *models.InvoiceOrder) (bool, error) {
	res, err := r.db.DB().ExecContext(ctx,
		`INSERT INTO invoice_orders (`+invoiceOrderColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 ON CONFLICT (original_order_id) DO NOTHING`,
		o.OriginalOrderID, o.ContractNumber, o.Email, o.FullName, o.StartDate, o.EndDate,
		o.Amount, string(o.Status), o.IsReminderSent, o.CreatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("insert invoice order: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert invoice order: %w", err)
	}
	return n == 1, nil
}

// GetByOriginalOrderID returns the invoice for the order, or ErrInvoiceOrderNotFound.
func (r *InvoiceOrderRepository) GetByOriginalOrderID(ctx context.Context, id int64) (*models.InvoiceOrder, error) {
	row := r.db.DB().QueryRowContext(ctx,
		`SELECT `+invoiceOrderColumns+` FROM invoice_orders WHERE original_order_id = $1`, id)
	return scanInvoiceOrder(row)
}

// Update locks the invoice row, applies mutate and writes status and reminder flag back.
func (r *InvoiceOrderRepository) Update(ctx context.Context, id int64, mutate func(o *models.InvoiceOrder) error) (*models.InvoiceOrder, error) {
	var updated *models.InvoiceOrder
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		o, err := scanInvoiceOrder(tx.QueryRowContext(ctx,
			`SELECT `+invoiceOrderColumns+` FROM invoice_orders WHERE original_order_id = $1 FOR UPDATE`, id))
		if err != nil {
			return err
		}
		if err := mutate(o); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE invoice_orders SET status = $2, is_reminder_sent = $3 WHERE original_order_id = $1`,
			o.OriginalOrderID, string(o.Status), o.IsReminderSent,
		); err != nil {
			return fmt.Errorf("update invoice order: %w", err)
		}
		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// ListByContract returns the contract's invoices, oldest first.
func (r *InvoiceOrderRepository) ListByContract(ctx context.Context, contractNumber string) ([]*models.InvoiceOrder, error) {
	rows, err := r.db.DB().QueryContext(ctx,
		`SELECT `+invoiceOrderColumns+` FROM invoice_orders
		 WHERE contract_number = $1
		 ORDER BY created_at, original_order_id`,
		contractNumber,
	)
	if err != nil {
		return nil, fmt.Errorf("query invoice orders: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var out []*models.InvoiceOrder
	for rows.Next() {
		o, err := scanInvoiceOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate invoice orders: %w", err)
	}
	return out, nil
}

// MarkReminderSent flags unpaid, not yet reminded invoices of the contract.
func (r *InvoiceOrderRepository) MarkReminderSent(ctx context.Context, contractNumber string) (int64, error) {
	res, err := r.db.DB().ExecContext(ctx,
		`UPDATE invoice_orders SET is_reminder_sent = TRUE
		 WHERE contract_number = $1 AND status = $2 AND NOT is_reminder_sent`,
		contractNumber, string(models.StatusUnpaid),
	)
	if err != nil {
		return 0, fmt.Errorf("mark reminder sent: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("mark reminder sent: %w", err)
	}
	return n, nil
}

func scanInvoiceOrder(row scanner) (*models.InvoiceOrder, error) {
	var (
		o      models.InvoiceOrder
		status string
	)
	err := row.Scan(&o.OriginalOrderID, &o.ContractNumber, &o.Email, &o.FullName, &o.StartDate, &o.EndDate,
		&o.Amount, &status, &o.IsReminderSent, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, invoicedomain.ErrInvoiceOrderNotFound
		}
		return nil, fmt.Errorf("scan invoice order: %w", err)
	}
	o.Status = models.Status(status)
	return &o, nil
}
