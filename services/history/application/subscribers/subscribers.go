// Package subscribers adapts the history service to event bus handlers.
package subscribers

import (
	"context"
	"errors"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/contracthub/pkg/contracts"
	"github.com/ghuser/contracthub/pkg/events"
	appsvcs "github.com/ghuser/contracthub/services/history/application/services"
	historydomain "github.com/ghuser/contracthub/services/history/domain"
)

// Subscribers holds the history handlers.
type Subscribers struct {
	svcs *appsvcs.Services
}

// New returns the history subscribers backed by svcs.
func New(svcs *appsvcs.Services) *Subscribers {
	return &Subscribers{svcs: svcs}
}

// Handlers maps each history binding to its handler.
func (s *Subscribers) Handlers() map[contracts.Binding]events.Handler {
	return map[contracts.Binding]events.Handler{
		contracts.BindingContractHistory: s.ContractChanged,
	}
}

// ContractChanged appends contract.changed to the audit trail.
func (s *Subscribers) ContractChanged(ctx context.Context, msg *message.Message) error {
	evt, err := events.Decode[contracts.ContractChangedEvent](msg)
	if err != nil {
		return err
	}
	err = s.svcs.History.Record(ctx, evt)
	if errors.Is(err, historydomain.ErrInvalidHistory) {
		return events.Permanent(err)
	}
	return err
}
