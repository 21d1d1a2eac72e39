package domain

import "errors"

// Sentinel errors for the account domain. Use errors.Is() to check these.
var (
	// ErrAccountNotFound indicates no account is registered under the email.
	ErrAccountNotFound = errors.New("account not found")

	// ErrAccountAlreadyExists indicates the email is already registered.
	ErrAccountAlreadyExists = errors.New("account already exists")

	// ErrInvalidAccount indicates registration data violates domain constraints.
	ErrInvalidAccount = errors.New("invalid account")

	// ErrInvalidCredentials indicates the email and password do not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
