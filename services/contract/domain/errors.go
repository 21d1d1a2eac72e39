package domain

import "errors"

// Sentinel errors for the contract domain. Use errors.Is() to check these.
var (
	// ErrContractNotFound indicates the requested contract does not exist.
	ErrContractNotFound = errors.New("contract not found")

	// ErrContractAlreadyExists indicates the contract number is already taken.
	ErrContractAlreadyExists = errors.New("contract already exists")

	// ErrInvalidContract indicates contract data violates domain constraints.
	ErrInvalidContract = errors.New("invalid contract")
)
