// Package contractlookup resolves contract numbers through the contract
// context's application service, in process.
package contractlookup

import (
	"context"
	"errors"

	contractsvcs "github.com/ghuser/contracthub/services/contract/application/services"
	contractdomain "github.com/ghuser/contracthub/services/contract/domain"
	orderdomain "github.com/ghuser/contracthub/services/order/domain"
)

// Lookup implements repositories.ContractLookup.
type Lookup struct {
	contracts *contractsvcs.ContractService
}

// New returns a Lookup backed by the contract service.
func New(contracts *contractsvcs.ContractService) *Lookup {
	return &Lookup{contracts: contracts}
}

// ContractNumber returns the number of contract id, or ErrContractUnknown.
func (l *Lookup) ContractNumber(ctx context.Context, contractID int64) (string, error) {
	c, err := l.contracts.Get(ctx, contractID)
	if err != nil {
		if errors.Is(err, contractdomain.ErrContractNotFound) {
			return "", orderdomain.ErrContractUnknown
		}
		return "", err
	}
	return c.Number.String(), nil
}
