// Package contracts is the shared schema of the integration layer: event
// payloads, the topics they are published under and the queues bound to them.
// Producers and consumers import event types and topics from here; no service
// spells a topic name as a string literal.
package contracts

// Topic names the broker destination an event type is published to. On the SQL
// transport it is the Watermill topic table; on AMQP it is a durable topic exchange.
type Topic string

const (
	TopicAccountCreated  Topic = "account.created"
	TopicContractCreated Topic = "contract.created"
	TopicContractChanged Topic = "contract.changed"
	TopicOrderCreated    Topic = "order.created"
	TopicInvoiceReminder Topic = "invoice.reminder"
)

// Topics returns every topic an event is published under.
func Topics() []Topic {
	return []Topic{
		TopicAccountCreated,
		TopicContractCreated,
		TopicContractChanged,
		TopicOrderCreated,
		TopicInvoiceReminder,
	}
}

// String returns the wire name of the topic.
func (t Topic) String() string {
	return string(t)
}
