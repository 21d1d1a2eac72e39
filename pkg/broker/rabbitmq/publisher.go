package rabbitmq

import (
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	wamqp "github.com/ThreeDotsLabs/watermill-amqp/v3/pkg/amqp"
)

// NewPublisher returns a publisher that declares the topic exchange on first use
// and publishes persistent messages to it. The connection stays owned by the
// caller.
func NewPublisher(conn *Connection, log watermill.LoggerAdapter) (*wamqp.Publisher, error) {
	pub, err := wamqp.NewPublisherWithConnection(pubSubConfig(conn.uri, "", 0), log, conn.ConnectionWrapper)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq: new publisher: %w", err)
	}
	return pub, nil
}
