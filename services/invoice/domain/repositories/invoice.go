package repositories

import (
	"context"
	"time"

	"github.com/ghuser/contracthub/pkg/contracts"
	"github.com/ghuser/contracthub/services/invoice/domain/models"
)

// SubscriptionRepository persists ContractSubscription projections.
type SubscriptionRepository interface {
	// Insert stores s unless the contract already has a subscription.
	// It reports whether a row was written.
	Insert(ctx context.Context, s *models.ContractSubscription) (bool, error)

	// FindByPaymentDay returns the active subscriptions whose payment day is day.
	FindByPaymentDay(ctx context.Context, day int) ([]*models.ContractSubscription, error)

	// RecordReminder sets the contract's last reminded day to on and writes evt
	// to the outbox in one transaction. evt.Amount is replaced by the unpaid
	// total read inside that transaction. It reports false, and writes nothing,
	// when a reminder was already recorded for on.
	RecordReminder(ctx context.Context, contractNumber string, on time.Time, evt contracts.InvoiceReminderEvent) (bool, error)
}

// InvoiceOrderRepository persists InvoiceOrder projections.
type InvoiceOrderRepository interface {
	// Insert stores o unless an invoice with the same original order id exists.
	// It reports whether a row was written.
	Insert(ctx context.Context, o *models.InvoiceOrder) (bool, error)
	GetByOriginalOrderID(ctx context.Context, id int64) (*models.InvoiceOrder, error)

	// Update loads the invoice with a row lock, applies mutate and stores the result.
	Update(ctx context.Context, id int64, mutate func(o *models.InvoiceOrder) error) (*models.InvoiceOrder, error)

	ListByContract(ctx context.Context, contractNumber string) ([]*models.InvoiceOrder, error)

	// MarkReminderSent flags the contract's unpaid invoices as reminded and
	// returns how many changed.
	MarkReminderSent(ctx context.Context, contractNumber string) (int64, error)
}
