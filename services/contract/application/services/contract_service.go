package services

import (
	"context"
	"fmt"
	"time"

	contractdomain "github.com/ghuser/contracthub/services/contract/domain"
	"github.com/ghuser/contracthub/services/contract/domain/models"
	"github.com/ghuser/contracthub/services/contract/domain/repositories"
)

// ContractService creates and updates contracts. Every write reaches
// downstream contexts through the events the repository publishes.
type ContractService struct {
	repo repositories.ContractRepository
	now  func() time.Time
}

// NewContractService returns a ContractService wired with the given repository.
func NewContractService(repo repositories.ContractRepository) *ContractService {
	return &ContractService{repo: repo, now: time.Now}
}

// UpdateInput is the full replacement of a contract's mutable fields.
type UpdateInput struct {
	Email      string
	FullName   string
	FinishedAt time.Time
	Status     string
}

// Create validates and persists a Contract.
func (s *ContractService) Create(ctx context.Context, number, email, fullName string, finishedAt time.Time) (*models.Contract, error) {
	cn, err := models.NewContractNumber(number)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", contractdomain.ErrInvalidContract, err)
	}

	c, err := models.NewContract(cn, email, fullName, finishedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", contractdomain.ErrInvalidContract, err)
	}

	if err := s.repo.Save(ctx, c); err != nil {
		return nil, fmt.Errorf("save contract: %w", err)
	}
	return c, nil
}

// Get returns the contract with id.
func (s *ContractService) Get(ctx context.Context, id int64) (*models.Contract, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get contract: %w", err)
	}
	return c, nil
}

// Update replaces the mutable fields of contract id on behalf of changedBy.
// correlationID ties the resulting history row to the originating request.
func (s *ContractService) Update(ctx context.Context, id int64, in UpdateInput, changedBy, correlationID string) (*models.Contract, error) {
	status, err := models.ParseStatus(in.Status)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", contractdomain.ErrInvalidContract, err)
	}
	update := models.Update{
		Email:      in.Email,
		FullName:   in.FullName,
		FinishedAt: in.FinishedAt,
		Status:     status,
	}

	c, err := s.repo.Update(ctx, id, func(c *models.Contract) (*models.Change, error) {
		change, err := c.Apply(update, changedBy, correlationID, s.now())
		if err != nil {
			return nil, fmt.Errorf("%w: %w", contractdomain.ErrInvalidContract, err)
		}
		return change, nil
	})
	if err != nil {
		return nil, fmt.Errorf("update contract: %w", err)
	}
	return c, nil
}
