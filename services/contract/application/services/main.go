package services

import (
	"github.com/ghuser/contracthub/pkg/app"
	"github.com/ghuser/contracthub/services/contract/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
type Services struct {
	Contract *ContractService
}

// New wires all contract application services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	repo := postgres.NewContractRepository(a.Db, a.EventBus)
	return &Services{
		Contract: NewContractService(repo),
	}
}
