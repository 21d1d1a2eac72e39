package rabbitmq

import (
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	wamqp "github.com/ThreeDotsLabs/watermill-amqp/v3/pkg/amqp"
)

// SubscriberConfig names the queue a Subscriber consumes from.
type SubscriberConfig struct {
	Queue    string
	Prefetch int
}

// NewSubscriber returns a subscriber for cfg.Queue on conn. Subscribe declares
// the queue, binds it to the topic exchange and streams deliveries; a Nacked
// message is requeued.
func NewSubscriber(conn *Connection, cfg SubscriberConfig, log watermill.LoggerAdapter) (*wamqp.Subscriber, error) {
	if cfg.Queue == "" {
		return nil, fmt.Errorf("rabbitmq: subscriber queue is required")
	}
	sub, err := wamqp.NewSubscriberWithConnection(
		pubSubConfig(conn.uri, cfg.Queue, cfg.Prefetch),
		log.With(watermill.LogFields{"queue": cfg.Queue}),
		conn.ConnectionWrapper,
	)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq: new subscriber: %w", err)
	}
	return sub, nil
}
