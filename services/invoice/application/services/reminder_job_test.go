package services

import (
	"context"
	"errors"
	"testing"
	"time"

	invoicedomain "github.com/ghuser/contracthub/services/invoice/domain"
	"github.com/ghuser/contracthub/services/invoice/domain/models"
)

var jobNow = time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC)

func subscription(number string, paymentDay int) *models.ContractSubscription {
	return &models.ContractSubscription{
		ContractNumber: number,
		Email:          number + "@example.com",
		FullName:       "Customer " + number,
		StartDate:      time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		PaymentDay:     paymentDay,
		IsActive:       true,
	}
}

func newTestJob(subs *memSubscriptions, orders *memInvoiceOrders) *ReminderJob {
	subs.orders = orders
	job := NewReminderJob(subs, time.UTC, nopLogger())
	job.now = func() time.Time { return jobNow }
	return job
}

// TestReminderJob_DueAndTomorrowPublishesOne: one record due today and one due
// tomorrow yield exactly one event.
func TestReminderJob_DueAndTomorrowPublishesOne(t *testing.T) {
	subs := newMemSubscriptions(subscription("HD-DUE", 15), subscription("HD-TOMORROW", 16))
	orders := newMemInvoiceOrders()
	ctx := context.Background()
	svc := NewInvoiceService(orders, nopLogger())
	for _, e := range []int64{1, 2} {
		if _, err := svc.SyncOrder(ctx, orderCreated(e, "HD-DUE", 250000)); err != nil {
			t.Fatalf("SyncOrder: %v", err)
		}
	}

	if err := newTestJob(subs, orders).Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}

	published := subs.events()
	if len(published) != 1 {
		t.Fatalf("expected exactly 1 reminder, got %d", len(published))
	}
	evt := published[0]
	if evt.ContractNumber != "HD-DUE" || evt.Email != "HD-DUE@example.com" {
		t.Errorf("unexpected reminder: %+v", evt)
	}
	if evt.Amount != 500000 {
		t.Errorf("amount: got %d, want sum of unpaid 500000", evt.Amount)
	}
	if !evt.DueDate.Equal(time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("due date: got %v", evt.DueDate)
	}
	if evt.EventID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Error("reminder must carry an event id")
	}
}

// TestReminderJob_AmountReadWhenReminderIsRecorded: an invoice paid after the
// scan but before the reminder is recorded is not billed again.
func TestReminderJob_AmountReadWhenReminderIsRecorded(t *testing.T) {
	subs := newMemSubscriptions(subscription("HD-DUE", 15))
	orders := newMemInvoiceOrders()
	ctx := context.Background()
	svc := NewInvoiceService(orders, nopLogger())
	for _, e := range []int64{1, 2} {
		if _, err := svc.SyncOrder(ctx, orderCreated(e, "HD-DUE", 250000)); err != nil {
			t.Fatalf("SyncOrder: %v", err)
		}
	}
	job := newTestJob(subs, orders)
	subs.beforeRecord = func() {
		if _, err := orders.Update(ctx, 1, func(o *models.InvoiceOrder) error {
			return o.TransitionTo(models.StatusPaid)
		}); err != nil {
			t.Errorf("pay invoice: %v", err)
		}
	}

	if err := job.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	published := subs.events()
	if len(published) != 1 {
		t.Fatalf("expected 1 reminder, got %d", len(published))
	}
	if published[0].Amount != 250000 {
		t.Errorf("amount: got %d, want 250000 still unpaid", published[0].Amount)
	}
}

// TestReminderJob_EachConditionExcludes publishes only for the record meeting
// all three conditions.
func TestReminderJob_EachConditionExcludes(t *testing.T) {
	inactive := subscription("HD-INACTIVE", 15)
	inactive.IsActive = false
	notStarted := subscription("HD-FUTURE", 15)
	notStarted.StartDate = time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	ended := subscription("HD-ENDED", 15)
	ended.EndDate = time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	subs := newMemSubscriptions(subscription("HD-DUE", 15), inactive, notStarted, ended, subscription("HD-OTHER-DAY", 1))
	if err := newTestJob(subs, newMemInvoiceOrders()).Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	published := subs.events()
	if len(published) != 1 || published[0].ContractNumber != "HD-DUE" {
		t.Fatalf("expected only HD-DUE, got %+v", published)
	}
}

// TestReminderJob_SecondRunSameDayPublishesNothing verifies the job's own
// last-reminded guard, independent of downstream consumers.
func TestReminderJob_SecondRunSameDayPublishesNothing(t *testing.T) {
	subs := newMemSubscriptions(subscription("HD-DUE", 15))
	job := newTestJob(subs, newMemInvoiceOrders())

	for i := 0; i < 3; i++ {
		if err := job.Run(context.Background()); err != nil {
			t.Fatalf("Run %d: %v", i, err)
		}
	}
	if got := len(subs.events()); got != 1 {
		t.Fatalf("expected 1 reminder across runs, got %d", got)
	}

	// Next month the subscription is due again.
	job.now = func() time.Time { return jobNow.AddDate(0, 1, 0) }
	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run next month: %v", err)
	}
	if got := len(subs.events()); got != 2 {
		t.Fatalf("expected 2 reminders after next cycle, got %d", got)
	}
}

func TestReminderJob_OverlappingRunRejected(t *testing.T) {
	subs := newMemSubscriptions(subscription("HD-DUE", 15))
	subs.block = make(chan struct{})
	job := newTestJob(subs, newMemInvoiceOrders())

	done := make(chan error, 1)
	go func() { done <- job.Run(context.Background()) }()

	// Wait until the first run holds the guard.
	deadline := time.Now().Add(2 * time.Second)
	for !job.running.Load() {
		if time.Now().After(deadline) {
			t.Fatal("first run never started")
		}
		time.Sleep(time.Millisecond)
	}

	if err := job.Run(context.Background()); !errors.Is(err, invoicedomain.ErrJobAlreadyRunning) {
		t.Fatalf("expected ErrJobAlreadyRunning, got %v", err)
	}

	close(subs.block)
	if err := <-done; err != nil {
		t.Fatalf("first run: %v", err)
	}
	if got := len(subs.events()); got != 1 {
		t.Fatalf("expected 1 reminder, got %d", got)
	}
}

func TestReminderJob_UsesConfiguredZone(t *testing.T) {
	// 20:00 UTC on the 14th is the 15th in UTC+7.
	subs := newMemSubscriptions(subscription("HD-DUE", 15))
	job := NewReminderJob(subs, time.FixedZone("ICT", 7*3600), nopLogger())
	job.now = func() time.Time { return time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC) }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := len(subs.events()); got != 1 {
		t.Fatalf("expected 1 reminder, got %d", got)
	}
}
