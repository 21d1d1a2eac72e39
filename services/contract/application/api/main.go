package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/contracthub/pkg/app"
	"github.com/ghuser/contracthub/pkg/auth"
	"github.com/ghuser/contracthub/services/contract/application/handlers"
	appsvcs "github.com/ghuser/contracthub/services/contract/application/services"
)

// ContractRoutes registers contract endpoints on the provided chi router.
// Updates require a signed-in account, which is recorded as changedBy.
func ContractRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	r.Group(func(r chi.Router) {
		r.Post("/contracts", handlers.NewPostContractHandler(svcs).Execute)
		r.Get("/contracts/{id}", handlers.NewGetContractHandler(svcs).Execute)
	})
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(a.SessionStore, a.Logger))
		r.Put("/contracts/{id}", handlers.NewPutContractHandler(svcs).Execute)
	})
}
