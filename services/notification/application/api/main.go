package api

import (
	"github.com/ghuser/contracthub/pkg/app"
	"github.com/ghuser/contracthub/pkg/contracts"
	"github.com/ghuser/contracthub/pkg/events"
	appsvcs "github.com/ghuser/contracthub/services/notification/application/services"
	"github.com/ghuser/contracthub/services/notification/application/subscribers"
)

// NotificationSubscribers returns the email consumers. a.Mailer must be set.
func NotificationSubscribers(a *app.Application) map[contracts.Binding]events.Handler {
	return subscribers.New(appsvcs.New(a)).Handlers()
}
