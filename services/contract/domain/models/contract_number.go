package models

import (
	"fmt"
	"regexp"
	"strings"
)

// ContractNumber is the business identifier of a contract, e.g. "HD-2024-001".
// It is the join key of every downstream projection.
type ContractNumber string

var contractNumberPattern = regexp.MustCompile(`^[A-Z0-9][A-Z0-9-]{1,31}$`)

// NewContractNumber uppercases s and checks it against the allowed pattern.
func NewContractNumber(s string) (ContractNumber, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if !contractNumberPattern.MatchString(s) {
		return "", fmt.Errorf("contract number %q must be 2-32 characters of A-Z, 0-9 and '-'", s)
	}
	return ContractNumber(s), nil
}

// String returns the underlying string value.
func (n ContractNumber) String() string {
	return string(n)
}
