package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

// Account is a registered user. It is the actor recorded on contract changes.
type Account struct {
	ID           uuid.UUID
	Email        Email
	FullName     string
	PasswordHash []byte
	CreatedAt    time.Time
}

// NewAccount constructs an Account with a bcrypt hash of password.
func NewAccount(email Email, fullName, password string) (*Account, error) {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return nil, fmt.Errorf("full name must not be empty")
	}
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return &Account{
		ID:           uuid.New(),
		Email:        email,
		FullName:     fullName,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// CheckPassword reports whether password matches the stored hash.
func (a *Account) CheckPassword(password string) (bool, error) {
	err := bcrypt.CompareHashAndPassword(a.PasswordHash, []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, err
	}
}
