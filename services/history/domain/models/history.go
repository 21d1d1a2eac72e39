package models

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ContractHistory is one immutable entry in a contract's audit trail.
// OldValue and NewValue are stored as received.
type ContractHistory struct {
	ID            int64
	EventID       uuid.UUID // uuid.Nil when the producer sent none
	ContractID    int64
	Action        string
	OldValue      json.RawMessage
	NewValue      json.RawMessage
	Timestamp     time.Time
	ChangedBy     string
	CorrelationID string
}

// NewContractHistory validates a history entry.
func NewContractHistory(eventID uuid.UUID, contractID int64, action string, oldValue, newValue json.RawMessage, at time.Time, changedBy, correlationID string) (*ContractHistory, error) {
	if contractID <= 0 {
		return nil, errors.New("contract id must be positive")
	}
	if action == "" {
		return nil, errors.New("action is required")
	}
	if at.IsZero() {
		return nil, errors.New("timestamp is required")
	}
	return &ContractHistory{
		EventID:       eventID,
		ContractID:    contractID,
		Action:        action,
		OldValue:      nullIfEmpty(oldValue),
		NewValue:      nullIfEmpty(newValue),
		Timestamp:     at.UTC(),
		ChangedBy:     changedBy,
		CorrelationID: correlationID,
	}, nil
}

// HasEventID reports whether redeliveries of this entry can be recognised.
func (h *ContractHistory) HasEventID() bool {
	return h.EventID != uuid.Nil
}

func nullIfEmpty(v json.RawMessage) json.RawMessage {
	if len(v) == 0 || string(v) == "null" {
		return nil
	}
	return v
}
