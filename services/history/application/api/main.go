package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/contracthub/pkg/app"
	"github.com/ghuser/contracthub/pkg/contracts"
	"github.com/ghuser/contracthub/pkg/events"
	"github.com/ghuser/contracthub/services/history/application/handlers"
	appsvcs "github.com/ghuser/contracthub/services/history/application/services"
	"github.com/ghuser/contracthub/services/history/application/subscribers"
)

// HistoryRoutes registers history endpoints on the provided chi router.
func HistoryRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	r.Get("/contracts/{id}/history", handlers.NewGetHistoryHandler(svcs).Execute)
}

// HistorySubscribers returns the history consumers.
func HistorySubscribers(a *app.Application) map[contracts.Binding]events.Handler {
	return subscribers.New(appsvcs.New(a)).Handlers()
}
