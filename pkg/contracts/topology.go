package contracts

import (
	"errors"
	"fmt"
)

// Binding attaches a durable queue to the topic it consumes. Each queue is
// served by exactly one consumer.
type Binding struct {
	Topic Topic
	Queue string
}

// String renders the binding as "queue<-topic" for logs.
func (b Binding) String() string {
	return b.Queue + "<-" + b.Topic.String()
}

var (
	BindingAccountCreatedMail  = Binding{Topic: TopicAccountCreated, Queue: "notification.account-created"}
	BindingContractCreatedMail = Binding{Topic: TopicContractCreated, Queue: "notification.contract-created"}
	BindingSubscriptionSync    = Binding{Topic: TopicContractCreated, Queue: "invoice.contract-created"}
	BindingOrderSync           = Binding{Topic: TopicOrderCreated, Queue: "invoice.order-created"}
	BindingContractHistory     = Binding{Topic: TopicContractChanged, Queue: "history.contract-changed"}
	BindingInvoiceReminderMail = Binding{Topic: TopicInvoiceReminder, Queue: "notification.invoice-reminder"}
	BindingReminderSent        = Binding{Topic: TopicInvoiceReminder, Queue: "invoice.invoice-reminder"}
)

// Bindings returns the static topology established at worker startup.
func Bindings() []Binding {
	return []Binding{
		BindingAccountCreatedMail,
		BindingContractCreatedMail,
		BindingSubscriptionSync,
		BindingOrderSync,
		BindingContractHistory,
		BindingInvoiceReminderMail,
		BindingReminderSent,
	}
}

// ErrInvalidTopology is returned by ValidateBindings.
var ErrInvalidTopology = errors.New("invalid topology")

// ValidateBindings checks that every queue name is set and unique, every
// binding targets a published topic, and every published topic has at least
// one consumer. A topic nobody binds is an event that silently goes nowhere.
func ValidateBindings(bindings []Binding) error {
	known := make(map[Topic]bool)
	for _, t := range Topics() {
		known[t] = false
	}

	queues := make(map[string]struct{}, len(bindings))
	for _, b := range bindings {
		if b.Queue == "" {
			return fmt.Errorf("%w: empty queue for topic %s", ErrInvalidTopology, b.Topic)
		}
		if _, dup := queues[b.Queue]; dup {
			return fmt.Errorf("%w: queue %s bound twice", ErrInvalidTopology, b.Queue)
		}
		queues[b.Queue] = struct{}{}

		if _, ok := known[b.Topic]; !ok {
			return fmt.Errorf("%w: queue %s bound to unknown topic %q", ErrInvalidTopology, b.Queue, b.Topic)
		}
		known[b.Topic] = true
	}

	for _, t := range Topics() {
		if !known[t] {
			return fmt.Errorf("%w: topic %s has no consumer", ErrInvalidTopology, t)
		}
	}
	return nil
}
