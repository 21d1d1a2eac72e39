// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/contracthub/pkg/auth"
	"github.com/ghuser/contracthub/pkg/httpx"
	accountdomain "github.com/ghuser/contracthub/services/account/domain"
	contractdomain "github.com/ghuser/contracthub/services/contract/domain"
	invoicedomain "github.com/ghuser/contracthub/services/invoice/domain"
	orderdomain "github.com/ghuser/contracthub/services/order/domain"
)

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Defaults to 500 Internal Server Error for unrecognized errors.
func WriteError(w http.ResponseWriter, err error) {
	status := mapErrorToStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = http.StatusText(status)
	}
	httpx.JSONError(w, status, msg)
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, accountdomain.ErrAccountNotFound),
		errors.Is(err, contractdomain.ErrContractNotFound),
		errors.Is(err, invoicedomain.ErrInvoiceOrderNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, accountdomain.ErrAccountAlreadyExists),
		errors.Is(err, contractdomain.ErrContractAlreadyExists),
		errors.Is(err, invoicedomain.ErrInvalidStatusTransition):
		return http.StatusConflict // 409
	case errors.Is(err, accountdomain.ErrInvalidAccount),
		errors.Is(err, contractdomain.ErrInvalidContract),
		errors.Is(err, orderdomain.ErrInvalidOrder),
		errors.Is(err, invoicedomain.ErrInvalidStatus):
		return http.StatusUnprocessableEntity // 422
	case errors.Is(err, accountdomain.ErrInvalidCredentials),
		errors.Is(err, auth.ErrActorNotFound):
		return http.StatusUnauthorized // 401
	default:
		return http.StatusInternalServerError // 500
	}
}
