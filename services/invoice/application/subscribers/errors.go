package subscribers

import (
	"errors"

	"github.com/ghuser/contracthub/pkg/events"
	invoicedomain "github.com/ghuser/contracthub/services/invoice/domain"
)

// asPermanentIfInvalid stops retries for events that can never be projected.
func asPermanentIfInvalid(err error) error {
	if errors.Is(err, invoicedomain.ErrInvalidSubscription) || errors.Is(err, invoicedomain.ErrInvalidInvoiceOrder) {
		return events.Permanent(err)
	}
	return err
}
