package services

import (
	"context"
	"fmt"
	"time"

	"github.com/ghuser/contracthub/pkg/contracts"
	"github.com/ghuser/contracthub/pkg/logger"
	invoicedomain "github.com/ghuser/contracthub/services/invoice/domain"
	"github.com/ghuser/contracthub/services/invoice/domain/models"
	"github.com/ghuser/contracthub/services/invoice/domain/repositories"
)

// SubscriptionService keeps the subscription projection in sync with contracts.
type SubscriptionService struct {
	repo repositories.SubscriptionRepository
	loc  *time.Location
	log  logger.Logger
}

// NewSubscriptionService returns a SubscriptionService. loc is the zone the
// reminder job runs in; payment days are derived in it.
func NewSubscriptionService(repo repositories.SubscriptionRepository, loc *time.Location, log logger.Logger) *SubscriptionService {
	return &SubscriptionService{repo: repo, loc: loc, log: log}
}

// Sync projects a created contract. Redelivery of the same contract is a no-op.
func (s *SubscriptionService) Sync(ctx context.Context, evt contracts.ContractCreatedEvent) error {
	sub, err := models.NewSubscription(evt.ContractNumber, evt.Email, evt.FullName, evt.CreatedAt, evt.FinishedAt, s.loc)
	if err != nil {
		return fmt.Errorf("%w: %w", invoicedomain.ErrInvalidSubscription, err)
	}

	inserted, err := s.repo.Insert(ctx, sub)
	if err != nil {
		return fmt.Errorf("insert subscription: %w", err)
	}
	if !inserted {
		s.log.InfoContext(ctx, "subscription already projected", "contract_number", sub.ContractNumber)
		return nil
	}
	s.log.InfoContext(ctx, "subscription projected",
		"contract_number", sub.ContractNumber, "payment_day", sub.PaymentDay)
	return nil
}
