package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/contracthub/pkg/app"
	"github.com/ghuser/contracthub/services/account/application/handlers"
	appsvcs "github.com/ghuser/contracthub/services/account/application/services"
)

// AccountRoutes registers registration and sign-in endpoints on the provided chi router.
func AccountRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	r.Group(func(r chi.Router) {
		r.Post("/accounts", handlers.NewPostAccountHandler(svcs, a.SessionStore).Execute)
		r.Post("/sessions", handlers.NewPostSessionHandler(svcs, a.SessionStore).Execute)
	})
}
