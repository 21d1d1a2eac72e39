package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/ghuser/contracthub/pkg/contracts"
	"github.com/ghuser/contracthub/pkg/logger"
	invoicedomain "github.com/ghuser/contracthub/services/invoice/domain"
	"github.com/ghuser/contracthub/services/invoice/domain/models"
	"github.com/ghuser/contracthub/services/invoice/domain/repositories"
)

// InvoiceService maintains invoice orders: projection from order events,
// payment status and reminder flags.
type InvoiceService struct {
	repo repositories.InvoiceOrderRepository
	log  logger.Logger
}

// NewInvoiceService returns an InvoiceService wired with the given repository.
func NewInvoiceService(repo repositories.InvoiceOrderRepository, log logger.Logger) *InvoiceService {
	return &InvoiceService{repo: repo, log: log}
}

// SyncOrder projects a created order as an unpaid invoice. An invoice that
// already exists for the order id is left untouched, so redelivery is safe.
// It reports whether a new invoice was created.
func (s *InvoiceService) SyncOrder(ctx context.Context, evt contracts.OrderCreatedEvent) (bool, error) {
	existing, err := s.repo.GetByOriginalOrderID(ctx, evt.OrderID)
	switch {
	case err == nil:
		s.log.InfoContext(ctx, "invoice order already exists, skipping",
			"original_order_id", existing.OriginalOrderID)
		return false, nil
	case !errors.Is(err, invoicedomain.ErrInvoiceOrderNotFound):
		return false, fmt.Errorf("lookup invoice order: %w", err)
	}

	o, err := models.NewInvoiceOrder(evt.OrderID, evt.ContractNumber, evt.Email, evt.FullName, evt.StartDate, evt.EndDate, evt.TopupFee)
	if err != nil {
		return false, fmt.Errorf("%w: order %d: %w", invoicedomain.ErrInvalidInvoiceOrder, evt.OrderID, err)
	}

	inserted, err := s.repo.Insert(ctx, o)
	if err != nil {
		return false, fmt.Errorf("insert invoice order: %w", err)
	}
	if !inserted {
		s.log.InfoContext(ctx, "invoice order inserted concurrently, skipping", "original_order_id", evt.OrderID)
		return false, nil
	}
	s.log.InfoContext(ctx, "invoice order created",
		"original_order_id", o.OriginalOrderID, "contract_number", o.ContractNumber, "amount", o.Amount)
	return true, nil
}

// ChangeStatus moves invoice id to status. Only Unpaid invoices can change.
func (s *InvoiceService) ChangeStatus(ctx context.Context, id int64, status string) (*models.InvoiceOrder, error) {
	to, err := models.ParseStatus(status)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", invoicedomain.ErrInvalidStatus, err)
	}

	o, err := s.repo.Update(ctx, id, func(o *models.InvoiceOrder) error {
		if err := o.TransitionTo(to); err != nil {
			return fmt.Errorf("%w: %w", invoicedomain.ErrInvalidStatusTransition, err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("change invoice status: %w", err)
	}
	return o, nil
}

// List returns the invoices of a contract.
func (s *InvoiceService) List(ctx context.Context, contractNumber string) ([]*models.InvoiceOrder, error) {
	orders, err := s.repo.ListByContract(ctx, contractNumber)
	if err != nil {
		return nil, fmt.Errorf("list invoice orders: %w", err)
	}
	return orders, nil
}

// MarkReminderSent flags the unpaid invoices covered by a reminder. Repeating
// it changes nothing.
func (s *InvoiceService) MarkReminderSent(ctx context.Context, evt contracts.InvoiceReminderEvent) error {
	n, err := s.repo.MarkReminderSent(ctx, evt.ContractNumber)
	if err != nil {
		return fmt.Errorf("mark reminder sent: %w", err)
	}
	s.log.InfoContext(ctx, "invoice orders marked as reminded",
		"contract_number", evt.ContractNumber, "updated", n)
	return nil
}
