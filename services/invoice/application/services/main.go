package services

import (
	"time"

	"github.com/ghuser/contracthub/pkg/app"
	"github.com/ghuser/contracthub/services/invoice/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
type Services struct {
	Subscription *SubscriptionService
	Invoice      *InvoiceService
	Reminder     *ReminderJob
}

// New wires all invoice application services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	loc, err := a.Config.Location()
	if err != nil {
		a.Logger.Warn("invalid scheduler timezone, using UTC", "error", err)
		loc = time.UTC
	}

	subs := postgres.NewSubscriptionRepository(a.Db, a.EventBus)
	orders := postgres.NewInvoiceOrderRepository(a.Db)
	return &Services{
		Subscription: NewSubscriptionService(subs, loc, a.Logger),
		Invoice:      NewInvoiceService(orders, a.Logger),
		Reminder:     NewReminderJob(subs, loc, a.Logger),
	}
}
