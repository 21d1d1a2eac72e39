package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/contracthub/pkg/app"
	"github.com/ghuser/contracthub/pkg/contracts"
	"github.com/ghuser/contracthub/pkg/events"
	"github.com/ghuser/contracthub/pkg/scheduler"
	"github.com/ghuser/contracthub/services/invoice/application/handlers"
	appsvcs "github.com/ghuser/contracthub/services/invoice/application/services"
	"github.com/ghuser/contracthub/services/invoice/application/subscribers"
)

// ReminderJobName identifies the daily reminder job in scheduler logs.
const ReminderJobName = "invoice-reminder"

// InvoiceRoutes registers invoice endpoints on the provided chi router.
func InvoiceRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	r.Group(func(r chi.Router) {
		r.Get("/invoices", handlers.NewGetInvoicesHandler(svcs).Execute)
		r.Patch("/invoices/{original_order_id}/status", handlers.NewPatchInvoiceStatusHandler(svcs).Execute)
	})
}

// InvoiceWorker returns the invoice consumers and registers the daily
// reminder job on sched.
func InvoiceWorker(a *app.Application, sched *scheduler.Scheduler) (map[contracts.Binding]events.Handler, error) {
	svcs := appsvcs.New(a)
	if err := sched.Register(ReminderJobName, a.Config.InvoiceReminderSchedule, svcs.Reminder.Run); err != nil {
		return nil, err
	}
	return subscribers.New(svcs).Handlers(), nil
}
