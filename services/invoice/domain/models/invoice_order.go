package models

import (
	"fmt"
	"time"
)

// Status is the payment state of an invoice order.
type Status string

const (
	StatusUnpaid    Status = "Unpaid"
	StatusPaid      Status = "Paid"
	StatusCancelled Status = "Cancelled"
)

// ParseStatus validates s as a Status.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusUnpaid, StatusPaid, StatusCancelled:
		return st, nil
	default:
		return "", fmt.Errorf("unknown invoice status %q", s)
	}
}

// InvoiceOrder is the invoice context's projection of an order.
// OriginalOrderID is the order id in the order context and the dedup key.
type InvoiceOrder struct {
	OriginalOrderID int64
	ContractNumber  string
	Email           string
	FullName        string
	StartDate       time.Time
	EndDate         time.Time
	Amount          int64
	Status          Status
	IsReminderSent  bool
	CreatedAt       time.Time
}

// NewInvoiceOrder projects an order as an unpaid invoice.
func NewInvoiceOrder(originalOrderID int64, contractNumber, email, fullName string, start, end time.Time, amount int64) (*InvoiceOrder, error) {
	if originalOrderID <= 0 {
		return nil, fmt.Errorf("original order id must be positive")
	}
	if amount < 0 {
		return nil, fmt.Errorf("amount must not be negative")
	}
	return &InvoiceOrder{
		OriginalOrderID: originalOrderID,
		ContractNumber:  contractNumber,
		Email:           email,
		FullName:        fullName,
		StartDate:       Day(start),
		EndDate:         Day(end),
		Amount:          amount,
		Status:          StatusUnpaid,
		CreatedAt:       time.Now().UTC(),
	}, nil
}

// TransitionTo moves the invoice out of Unpaid. Paid and Cancelled are final.
func (o *InvoiceOrder) TransitionTo(to Status) error {
	if o.Status != StatusUnpaid || (to != StatusPaid && to != StatusCancelled) {
		return fmt.Errorf("cannot move invoice %d from %s to %s", o.OriginalOrderID, o.Status, to)
	}
	o.Status = to
	return nil
}

// MarkReminderSent records that a reminder covered this invoice. It never
// reverts to false.
func (o *InvoiceOrder) MarkReminderSent() {
	o.IsReminderSent = true
}
