package services

import (
	"context"
	"errors"
	"fmt"

	accountdomain "github.com/ghuser/contracthub/services/account/domain"
	"github.com/ghuser/contracthub/services/account/domain/models"
	"github.com/ghuser/contracthub/services/account/domain/repositories"
)

// AccountService registers accounts and verifies credentials.
// The repository publishes AccountCreatedEvent through the outbox.
type AccountService struct {
	repo repositories.AccountRepository
}

// NewAccountService returns an AccountService wired with the given repository.
func NewAccountService(repo repositories.AccountRepository) *AccountService {
	return &AccountService{repo: repo}
}

// Register validates and persists a new Account.
func (s *AccountService) Register(ctx context.Context, email, fullName, password string) (*models.Account, error) {
	addr, err := models.NewEmail(email)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", accountdomain.ErrInvalidAccount, err)
	}

	acc, err := models.NewAccount(addr, fullName, password)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", accountdomain.ErrInvalidAccount, err)
	}

	if err := s.repo.Save(ctx, acc); err != nil {
		return nil, fmt.Errorf("save account: %w", err)
	}
	return acc, nil
}

// Authenticate returns the account matching email and password.
// Unknown emails and wrong passwords both yield ErrInvalidCredentials.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (*models.Account, error) {
	addr, err := models.NewEmail(email)
	if err != nil {
		return nil, accountdomain.ErrInvalidCredentials
	}

	acc, err := s.repo.GetByEmail(ctx, addr)
	if err != nil {
		if errors.Is(err, accountdomain.ErrAccountNotFound) {
			return nil, accountdomain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get account: %w", err)
	}

	ok, err := acc.CheckPassword(password)
	if err != nil {
		return nil, fmt.Errorf("check password: %w", err)
	}
	if !ok {
		return nil, accountdomain.ErrInvalidCredentials
	}
	return acc, nil
}
