// Package subscribers adapts the notification service to event bus handlers.
package subscribers

import (
	"context"
	"errors"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/contracthub/pkg/contracts"
	"github.com/ghuser/contracthub/pkg/events"
	appsvcs "github.com/ghuser/contracthub/services/notification/application/services"
	notificationdomain "github.com/ghuser/contracthub/services/notification/domain"
)

// Subscribers holds one handler per email binding. Each binding's queue name
// doubles as its dedup namespace.
type Subscribers struct {
	svcs *appsvcs.Services
}

// New returns the notification subscribers backed by svcs.
func New(svcs *appsvcs.Services) *Subscribers {
	return &Subscribers{svcs: svcs}
}

// Handlers maps each notification binding to its handler.
func (s *Subscribers) Handlers() map[contracts.Binding]events.Handler {
	return map[contracts.Binding]events.Handler{
		contracts.BindingAccountCreatedMail:  s.AccountCreated,
		contracts.BindingContractCreatedMail: s.ContractCreated,
		contracts.BindingInvoiceReminderMail: s.InvoiceReminder,
	}
}

// AccountCreated sends the welcome email.
func (s *Subscribers) AccountCreated(ctx context.Context, msg *message.Message) error {
	evt, err := events.Decode[contracts.AccountCreatedEvent](msg)
	if err != nil {
		return err
	}
	return permanentIfInvalid(s.svcs.Notification.Welcome(ctx, contracts.BindingAccountCreatedMail.Queue, evt))
}

// ContractCreated sends the contract confirmation email.
func (s *Subscribers) ContractCreated(ctx context.Context, msg *message.Message) error {
	evt, err := events.Decode[contracts.ContractCreatedEvent](msg)
	if err != nil {
		return err
	}
	return permanentIfInvalid(s.svcs.Notification.ContractConfirmation(ctx, contracts.BindingContractCreatedMail.Queue, evt))
}

// InvoiceReminder sends the payment reminder email.
func (s *Subscribers) InvoiceReminder(ctx context.Context, msg *message.Message) error {
	evt, err := events.Decode[contracts.InvoiceReminderEvent](msg)
	if err != nil {
		return err
	}
	return permanentIfInvalid(s.svcs.Notification.InvoiceReminder(ctx, contracts.BindingInvoiceReminderMail.Queue, evt))
}

func permanentIfInvalid(err error) error {
	if errors.Is(err, notificationdomain.ErrInvalidNotification) {
		return events.Permanent(err)
	}
	return err
}
