package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/contracthub/pkg/app"
	"github.com/ghuser/contracthub/services/order/application/handlers"
	appsvcs "github.com/ghuser/contracthub/services/order/application/services"
)

// OrderRoutes registers order endpoints on the provided chi router.
func OrderRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	r.Group(func(r chi.Router) {
		r.Post("/orders", handlers.NewPostOrderHandler(svcs).Execute)
	})
}
