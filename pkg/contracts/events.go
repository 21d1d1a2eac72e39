package contracts

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// SchemaVersion is the current version of every event payload.
// Increment it per event type on breaking changes.
const SchemaVersion = 1

// Event is implemented by every payload published on the bus.
type Event interface {
	Topic() Topic
	ID() uuid.UUID
}

// Envelope carries the identity of an event. It is embedded in each payload so
// the JSON shape stays flat.
type Envelope struct {
	EventID    uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version    int       `json:"version"`  // Schema version; increment on breaking changes
	OccurredAt time.Time `json:"occurred_at"`
}

// NewEnvelope returns an Envelope with a fresh event id.
func NewEnvelope(at time.Time) Envelope {
	return Envelope{
		EventID:    uuid.New(),
		Version:    SchemaVersion,
		OccurredAt: at.UTC(),
	}
}

// ID returns the event id.
func (e Envelope) ID() uuid.UUID {
	return e.EventID
}

// AccountCreatedEvent is published after a user registers.
type AccountCreatedEvent struct {
	Envelope
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
}

// Topic implements Event.
func (AccountCreatedEvent) Topic() Topic { return TopicAccountCreated }

// ContractCreatedEvent is published after a contract is signed.
type ContractCreatedEvent struct {
	Envelope
	ContractNumber string    `json:"contract_number"`
	Email          string    `json:"email"`
	FullName       string    `json:"full_name"`
	CreatedAt      time.Time `json:"created_at"`
	FinishedAt     time.Time `json:"finished_at"`
}

// Topic implements Event.
func (ContractCreatedEvent) Topic() Topic { return TopicContractCreated }

// ContractChangedEvent records one mutation of a contract. OldValue and NewValue
// are serialized snapshots; consumers store them without interpreting them.
type ContractChangedEvent struct {
	Envelope
	ContractID    int64           `json:"contract_id"`
	Action        string          `json:"action"`
	OldValue      json.RawMessage `json:"old_value"`
	NewValue      json.RawMessage `json:"new_value"`
	Timestamp     time.Time       `json:"timestamp"`
	ChangedBy     string          `json:"changed_by"`
	CorrelationID string          `json:"correlation_id"`
}

// Topic implements Event.
func (ContractChangedEvent) Topic() Topic { return TopicContractChanged }

// OrderCreatedEvent is published after an order is placed. OrderID is the
// order id in the order service, travels as "id" and is the natural dedup key
// downstream.
type OrderCreatedEvent struct {
	Envelope
	OrderID        int64     `json:"id"`
	ContractNumber string    `json:"contract_number"`
	Email          string    `json:"email"`
	FullName       string    `json:"full_name"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	TopupFee       int64     `json:"topup_fee"`
}

// Topic implements Event.
func (OrderCreatedEvent) Topic() Topic { return TopicOrderCreated }

// InvoiceReminderEvent is published by the daily reminder job, once per
// contract and due cycle.
type InvoiceReminderEvent struct {
	Envelope
	ContractNumber string    `json:"contract_number"`
	Email          string    `json:"email"`
	FullName       string    `json:"full_name"`
	Amount         int64     `json:"amount"`
	DueDate        time.Time `json:"due_date"`
	Description    string    `json:"description"`
}

// Topic implements Event.
func (InvoiceReminderEvent) Topic() Topic { return TopicInvoiceReminder }

// Compile-time interface checks.
var (
	_ Event = AccountCreatedEvent{}
	_ Event = ContractCreatedEvent{}
	_ Event = ContractChangedEvent{}
	_ Event = OrderCreatedEvent{}
	_ Event = InvoiceReminderEvent{}
)
