package services

import (
	"github.com/ghuser/contracthub/pkg/app"
	contractsvcs "github.com/ghuser/contracthub/services/contract/application/services"
	"github.com/ghuser/contracthub/services/order/infrastructure/contractlookup"
	"github.com/ghuser/contracthub/services/order/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
type Services struct {
	Order *OrderService
}

// New wires all order application services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	repo := postgres.NewOrderRepository(a.Db, a.EventBus)
	lookup := contractlookup.New(contractsvcs.New(a).Contract)
	return &Services{
		Order: NewOrderService(repo, lookup, a.Logger),
	}
}
