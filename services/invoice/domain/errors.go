package domain

import "errors"

// Sentinel errors for the invoice domain. Use errors.Is() to check these.
var (
	// ErrInvoiceOrderNotFound indicates no invoice order exists for the original order id.
	ErrInvoiceOrderNotFound = errors.New("invoice order not found")

	// ErrInvalidStatus indicates an unknown invoice status.
	ErrInvalidStatus = errors.New("invalid invoice status")

	// ErrInvalidStatusTransition indicates the status change is not allowed
	// from the current status.
	ErrInvalidStatusTransition = errors.New("invalid invoice status transition")

	// ErrInvalidInvoiceOrder indicates an order event cannot be projected
	// into an invoice order.
	ErrInvalidInvoiceOrder = errors.New("invalid invoice order")

	// ErrInvalidSubscription indicates a contract event cannot be projected
	// into a subscription.
	ErrInvalidSubscription = errors.New("invalid subscription")

	// ErrJobAlreadyRunning is returned when the reminder job is triggered
	// while a previous run is still in progress.
	ErrJobAlreadyRunning = errors.New("invoice reminder job already running")
)
