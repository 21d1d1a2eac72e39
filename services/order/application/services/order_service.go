package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ghuser/contracthub/pkg/logger"
	orderdomain "github.com/ghuser/contracthub/services/order/domain"
	"github.com/ghuser/contracthub/services/order/domain/models"
	"github.com/ghuser/contracthub/services/order/domain/repositories"
)

// OrderService places orders. The repository publishes OrderCreatedEvent.
type OrderService struct {
	repo      repositories.OrderRepository
	contracts repositories.ContractLookup
	log       logger.Logger
}

// NewOrderService returns an OrderService wired with the given ports.
func NewOrderService(repo repositories.OrderRepository, contracts repositories.ContractLookup, log logger.Logger) *OrderService {
	return &OrderService{repo: repo, contracts: contracts, log: log}
}

// PlaceInput carries the fields of a new order.
type PlaceInput struct {
	ContractID int64
	Email      string
	FullName   string
	StartDate  time.Time
	EndDate    time.Time
	TopupFee   int64
}

// Place resolves the contract number, then validates and persists the order.
// An unresolvable contract is recorded as models.UnknownContractNumber.
func (s *OrderService) Place(ctx context.Context, in PlaceInput) (*models.Order, error) {
	number, err := s.contracts.ContractNumber(ctx, in.ContractID)
	if err != nil {
		if !errors.Is(err, orderdomain.ErrContractUnknown) {
			return nil, fmt.Errorf("resolve contract: %w", err)
		}
		s.log.WarnContext(ctx, "contract not found, recording order as unknown",
			"contract_id", in.ContractID)
		number = models.UnknownContractNumber
	}

	o, err := models.NewOrder(in.ContractID, number, in.Email, in.FullName, in.StartDate, in.EndDate, in.TopupFee)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", orderdomain.ErrInvalidOrder, err)
	}

	if err := s.repo.Save(ctx, o); err != nil {
		return nil, fmt.Errorf("save order: %w", err)
	}
	return o, nil
}
