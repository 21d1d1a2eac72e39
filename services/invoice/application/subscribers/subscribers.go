// Package subscribers adapts invoice application services to event bus handlers.
package subscribers

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/contracthub/pkg/contracts"
	"github.com/ghuser/contracthub/pkg/events"
	appsvcs "github.com/ghuser/contracthub/services/invoice/application/services"
)

// Subscribers holds one handler per invoice binding.
type Subscribers struct {
	svcs *appsvcs.Services
}

// New returns the invoice subscribers backed by svcs.
func New(svcs *appsvcs.Services) *Subscribers {
	return &Subscribers{svcs: svcs}
}

// Handlers maps each invoice binding to its handler.
func (s *Subscribers) Handlers() map[contracts.Binding]events.Handler {
	return map[contracts.Binding]events.Handler{
		contracts.BindingSubscriptionSync: s.SubscriptionSync,
		contracts.BindingOrderSync:        s.OrderSync,
		contracts.BindingReminderSent:     s.ReminderSent,
	}
}

// SubscriptionSync projects contract.created into a subscription.
func (s *Subscribers) SubscriptionSync(ctx context.Context, msg *message.Message) error {
	evt, err := events.Decode[contracts.ContractCreatedEvent](msg)
	if err != nil {
		return err
	}
	if err := s.svcs.Subscription.Sync(ctx, evt); err != nil {
		return asPermanentIfInvalid(err)
	}
	return nil
}

// OrderSync projects order.created into an unpaid invoice, once per order id.
func (s *Subscribers) OrderSync(ctx context.Context, msg *message.Message) error {
	evt, err := events.Decode[contracts.OrderCreatedEvent](msg)
	if err != nil {
		return err
	}
	if _, err := s.svcs.Invoice.SyncOrder(ctx, evt); err != nil {
		return asPermanentIfInvalid(err)
	}
	return nil
}

// ReminderSent flags the invoices covered by an invoice.reminder.
func (s *Subscribers) ReminderSent(ctx context.Context, msg *message.Message) error {
	evt, err := events.Decode[contracts.InvoiceReminderEvent](msg)
	if err != nil {
		return err
	}
	return s.svcs.Invoice.MarkReminderSent(ctx, evt)
}
