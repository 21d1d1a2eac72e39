package services

import (
	"github.com/ghuser/contracthub/pkg/app"
	"github.com/ghuser/contracthub/services/history/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
type Services struct {
	History *HistoryService
}

// New wires all history application services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	return &Services{
		History: NewHistoryService(postgres.NewHistoryRepository(a.Db), a.Logger),
	}
}
