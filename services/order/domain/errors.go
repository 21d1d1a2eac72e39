package domain

import "errors"

// Sentinel errors for the order domain. Use errors.Is() to check these.
var (
	// ErrInvalidOrder indicates order data violates domain constraints.
	ErrInvalidOrder = errors.New("invalid order")

	// ErrContractUnknown is returned by a ContractLookup that cannot resolve
	// the referenced contract.
	ErrContractUnknown = errors.New("contract unknown")
)
