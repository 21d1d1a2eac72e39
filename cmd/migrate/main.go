package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/ghuser/contracthub/migrations/account"
	"github.com/ghuser/contracthub/migrations/contract"
	"github.com/ghuser/contracthub/migrations/history"
	"github.com/ghuser/contracthub/migrations/invoice"
	"github.com/ghuser/contracthub/migrations/order"
	"github.com/ghuser/contracthub/pkg/config"
	"github.com/ghuser/contracthub/pkg/logger"
	"github.com/ghuser/contracthub/pkg/migrator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg)

	sets := []migrator.Set{
		{Name: "account", Table: account.Table, Files: account.FS},
		{Name: "contract", Table: contract.Table, Files: contract.FS},
		{Name: "order", Table: order.Table, Files: order.FS},
		{Name: "invoice", Table: invoice.Table, Files: invoice.FS},
		{Name: "history", Table: history.Table, Files: history.FS},
	}
	if err := migrator.Run(context.Background(), cfg.DatabaseURL, sets...); err != nil {
		log.Error("migrations failed", "error", err)
		os.Exit(1)
	}
	log.Info("migrations applied", "sets", len(sets))
}
