package services

import (
	"github.com/ghuser/contracthub/pkg/app"
	"github.com/ghuser/contracthub/services/account/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
type Services struct {
	Account *AccountService
}

// New wires all account application services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	repo := postgres.NewAccountRepository(a.Db, a.EventBus)
	return &Services{
		Account: NewAccountService(repo),
	}
}
