package services

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/ghuser/contracthub/pkg/contracts"
	"github.com/ghuser/contracthub/pkg/logger"
	invoicedomain "github.com/ghuser/contracthub/services/invoice/domain"
	"github.com/ghuser/contracthub/services/invoice/domain/models"
	"github.com/ghuser/contracthub/services/invoice/domain/repositories"
)

// ReminderJob publishes one InvoiceReminderEvent per subscription due today.
// Runs never overlap, and each subscription is reminded at most once per day:
// the day and the unpaid amount are recorded in the same transaction as the
// outbox write.
type ReminderJob struct {
	subs    repositories.SubscriptionRepository
	loc     *time.Location
	log     logger.Logger
	now     func() time.Time
	running atomic.Bool
}

// NewReminderJob returns a ReminderJob evaluating "today" in loc.
func NewReminderJob(subs repositories.SubscriptionRepository, loc *time.Location, log logger.Logger) *ReminderJob {
	return &ReminderJob{subs: subs, loc: loc, log: log, now: time.Now}
}

// Run scans and publishes reminders for today. It returns ErrJobAlreadyRunning
// if a previous run has not finished. Failures for one subscription do not
// stop the others; they are joined into the returned error.
func (j *ReminderJob) Run(ctx context.Context) error {
	if !j.running.CompareAndSwap(false, true) {
		j.log.WarnContext(ctx, "invoice reminder job already running, skipping trigger")
		return invoicedomain.ErrJobAlreadyRunning
	}
	defer j.running.Store(false)

	now := j.now()
	today := models.Day(now.In(j.loc))

	candidates, err := j.subs.FindByPaymentDay(ctx, today.Day())
	if err != nil {
		return fmt.Errorf("find subscriptions: %w", err)
	}
	due := make([]*models.ContractSubscription, 0, len(candidates))
	for _, s := range candidates {
		if s.IsDueOn(today) {
			due = append(due, s)
		}
	}
	j.log.InfoContext(ctx, "invoice reminder scan started",
		"date", today.Format(time.DateOnly), "due", len(due))

	var (
		published int
		errs      []error
	)
	for _, s := range due {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		ok, err := j.remind(ctx, s, today, now)
		if err != nil {
			j.log.ErrorContext(ctx, "invoice reminder failed",
				"contract_number", s.ContractNumber, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", s.ContractNumber, err))
			continue
		}
		if ok {
			published++
		}
	}

	j.log.InfoContext(ctx, "invoice reminder scan finished",
		"date", today.Format(time.DateOnly), "due", len(due), "published", published, "failed", len(errs))
	return errors.Join(errs...)
}

func (j *ReminderJob) remind(ctx context.Context, s *models.ContractSubscription, today, now time.Time) (bool, error) {
	evt := contracts.InvoiceReminderEvent{
		Envelope:       contracts.NewEnvelope(now),
		ContractNumber: s.ContractNumber,
		Email:          s.Email,
		FullName:       s.FullName,
		DueDate:        today,
		Description:    fmt.Sprintf("Top-up invoice for contract %s, billing cycle %s", s.ContractNumber, today.Format("01/2006")),
	}
	ok, err := j.subs.RecordReminder(ctx, s.ContractNumber, today, evt)
	if err != nil {
		return false, err
	}
	if !ok {
		j.log.InfoContext(ctx, "invoice reminder already recorded today", "contract_number", s.ContractNumber)
	}
	return ok, nil
}
