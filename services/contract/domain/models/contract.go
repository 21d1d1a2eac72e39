package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Status is the lifecycle state of a contract.
type Status string

const (
	StatusActive     Status = "Active"
	StatusTerminated Status = "Terminated"
)

// ParseStatus validates s as a Status.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusActive, StatusTerminated:
		return st, nil
	default:
		return "", fmt.Errorf("unknown contract status %q", s)
	}
}

// ActionUpdated is the action recorded for field updates.
const ActionUpdated = "Updated"

// Contract is the aggregate owned by the contract context.
type Contract struct {
	ID         int64
	Number     ContractNumber
	Email      string
	FullName   string
	Status     Status
	CreatedAt  time.Time
	FinishedAt time.Time
	UpdatedAt  time.Time
}

// Snapshot is the serialized view of a contract carried in ContractChangedEvent.
type Snapshot struct {
	ContractNumber string    `json:"contract_number"`
	Email          string    `json:"email"`
	FullName       string    `json:"full_name"`
	Status         Status    `json:"status"`
	FinishedAt     time.Time `json:"finished_at"`
}

// Change describes one mutation to be recorded in history.
type Change struct {
	Action        string
	Old           Snapshot
	New           Snapshot
	ChangedBy     string
	CorrelationID string
	At            time.Time
}

// Payloads returns the old and new snapshots as JSON.
func (c Change) Payloads() (json.RawMessage, json.RawMessage, error) {
	oldValue, err := json.Marshal(c.Old)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal old snapshot: %w", err)
	}
	newValue, err := json.Marshal(c.New)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal new snapshot: %w", err)
	}
	return oldValue, newValue, nil
}

// Update carries the mutable fields of a contract.
type Update struct {
	Email      string
	FullName   string
	FinishedAt time.Time
	Status     Status
}

// NewContract constructs an active Contract created now.
func NewContract(number ContractNumber, email, fullName string, finishedAt time.Time) (*Contract, error) {
	now := time.Now().UTC()
	c := &Contract{
		Number:     number,
		Email:      strings.TrimSpace(email),
		FullName:   strings.TrimSpace(fullName),
		Status:     StatusActive,
		CreatedAt:  now,
		FinishedAt: finishedAt.UTC(),
		UpdatedAt:  now,
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Contract) validate() error {
	if c.Email == "" {
		return fmt.Errorf("email must not be empty")
	}
	if c.FullName == "" {
		return fmt.Errorf("full name must not be empty")
	}
	if !c.FinishedAt.After(c.CreatedAt) {
		return fmt.Errorf("finished_at must be after created_at")
	}
	return nil
}

// Snapshot returns the current state as carried on the wire.
func (c *Contract) Snapshot() Snapshot {
	return Snapshot{
		ContractNumber: c.Number.String(),
		Email:          c.Email,
		FullName:       c.FullName,
		Status:         c.Status,
		FinishedAt:     c.FinishedAt,
	}
}

// Apply mutates c with u and returns the resulting Change, or nil when u
// leaves the contract as it is.
func (c *Contract) Apply(u Update, changedBy, correlationID string, at time.Time) (*Change, error) {
	before := *c
	c.Email = strings.TrimSpace(u.Email)
	c.FullName = strings.TrimSpace(u.FullName)
	c.FinishedAt = u.FinishedAt.UTC()
	c.Status = u.Status
	if err := c.validate(); err != nil {
		*c = before
		return nil, err
	}

	oldSnap, newSnap := before.Snapshot(), c.Snapshot()
	if oldSnap.Email == newSnap.Email && oldSnap.FullName == newSnap.FullName &&
		oldSnap.Status == newSnap.Status && oldSnap.FinishedAt.Equal(newSnap.FinishedAt) {
		return nil, nil
	}

	c.UpdatedAt = at.UTC()
	return &Change{
		Action:        ActionUpdated,
		Old:           oldSnap,
		New:           newSnap,
		ChangedBy:     changedBy,
		CorrelationID: correlationID,
		At:            c.UpdatedAt,
	}, nil
}
