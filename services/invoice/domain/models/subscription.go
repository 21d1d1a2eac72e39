package models

import (
	"fmt"
	"strings"
	"time"
)

// ContractSubscription is the invoice context's projection of a contract.
// PaymentDay is fixed when the projection is created and never re-derived.
type ContractSubscription struct {
	ContractNumber string
	Email          string
	FullName       string
	StartDate      time.Time
	EndDate        time.Time
	PaymentDay     int
	IsActive       bool
	LastRemindedOn *time.Time
}

// NewSubscription projects a newly created contract. createdAt is read in loc,
// the zone the reminder job runs in, to derive the start date and payment day.
func NewSubscription(contractNumber, email, fullName string, createdAt, finishedAt time.Time, loc *time.Location) (*ContractSubscription, error) {
	if strings.TrimSpace(contractNumber) == "" {
		return nil, fmt.Errorf("contract number must not be empty")
	}
	if createdAt.IsZero() {
		return nil, fmt.Errorf("created_at must be set")
	}
	created := createdAt.In(loc)
	start, end := Day(created), Day(finishedAt.In(loc))
	if end.Before(start) {
		return nil, fmt.Errorf("finished_at %s is before created_at %s", end.Format(time.DateOnly), start.Format(time.DateOnly))
	}
	return &ContractSubscription{
		ContractNumber: contractNumber,
		Email:          email,
		FullName:       fullName,
		StartDate:      start,
		EndDate:        end,
		PaymentDay:     created.Day(),
		IsActive:       true,
	}, nil
}

// IsDueOn reports whether a reminder is due on the calendar day of today:
// the subscription is active, today is its payment day, today lies within
// [StartDate, EndDate] and no reminder was dispatched today yet.
func (s *ContractSubscription) IsDueOn(today time.Time) bool {
	d := Day(today)
	if !s.IsActive || s.PaymentDay != d.Day() {
		return false
	}
	if d.Before(Day(s.StartDate)) || d.After(Day(s.EndDate)) {
		return false
	}
	return s.LastRemindedOn == nil || !Day(*s.LastRemindedOn).Equal(d)
}
