package services

import (
	"github.com/ghuser/contracthub/pkg/app"
)

// Services is the application-layer service container for this bounded context.
type Services struct {
	Notification *NotificationService
}

// New wires the notification service with the worker's mailer and dedup store.
func New(a *app.Application) *Services {
	var processed ProcessedStore
	if a.Processed != nil {
		processed = a.Processed
	}
	return &Services{
		Notification: NewNotificationService(a.Mailer, processed, a.Logger),
	}
}
