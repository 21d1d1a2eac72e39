package models

import (
	"fmt"
	"strings"
	"time"
)

// UnknownContractNumber is recorded when the referenced contract cannot be
// resolved at order time. Downstream projections keep the order anyway.
const UnknownContractNumber = "UNKNOWN"

// Order is a top-up order placed against a contract.
type Order struct {
	ID             int64
	ContractID     int64
	ContractNumber string
	Email          string
	FullName       string
	StartDate      time.Time
	EndDate        time.Time
	TopupFee       int64
	CreatedAt      time.Time
}

// NewOrder constructs an Order covering [start, end] with the given fee.
func NewOrder(contractID int64, contractNumber, email, fullName string, start, end time.Time, topupFee int64) (*Order, error) {
	if contractID <= 0 {
		return nil, fmt.Errorf("contract id must be positive")
	}
	if strings.TrimSpace(email) == "" || strings.TrimSpace(fullName) == "" {
		return nil, fmt.Errorf("email and full name must not be empty")
	}
	if topupFee <= 0 {
		return nil, fmt.Errorf("topup fee must be positive")
	}
	start, end = truncateDay(start), truncateDay(end)
	if end.Before(start) {
		return nil, fmt.Errorf("end date must not be before start date")
	}
	if contractNumber == "" {
		contractNumber = UnknownContractNumber
	}
	return &Order{
		ContractID:     contractID,
		ContractNumber: contractNumber,
		Email:          strings.TrimSpace(email),
		FullName:       strings.TrimSpace(fullName),
		StartDate:      start,
		EndDate:        end,
		TopupFee:       topupFee,
		CreatedAt:      time.Now().UTC(),
	}, nil
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
