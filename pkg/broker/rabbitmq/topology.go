// Package rabbitmq configures Watermill's AMQP transport (watermill-amqp) for
// the EventBus so the outbox can be relayed to a real broker.
//
// Topology: every topic is a durable "topic" exchange of the same name; every
// binding is a durable queue bound to that exchange with the topic as routing
// key. Declarations are idempotent and happen at startup, never renegotiated.
package rabbitmq

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	wamqp "github.com/ThreeDotsLabs/watermill-amqp/v3/pkg/amqp"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	exchangeKind = "topic"
	dialTimeout  = 10 * time.Second
	contentType  = "application/json"
)

// Connection is a reconnecting broker connection shared by the publisher and
// every subscriber of one EventBus.
type Connection struct {
	*wamqp.ConnectionWrapper
	uri string
}

// Dial connects to RabbitMQ with a bounded dial timeout so startup never hangs.
// The connection reconnects with backoff after it is established.
func Dial(rawURL string, log watermill.LoggerAdapter) (*Connection, error) {
	clean, err := sanitizeURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq: %w", err)
	}
	conn, err := wamqp.NewConnection(connectionConfig(clean), log)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq: dial: %w", err)
	}
	return &Connection{ConnectionWrapper: conn, uri: clean}, nil
}

func connectionConfig(uri string) wamqp.ConnectionConfig {
	return wamqp.ConnectionConfig{
		AmqpURI:    uri,
		AmqpConfig: &amqp.Config{Dial: amqp.DefaultDial(dialTimeout)},
		Reconnect:  wamqp.DefaultReconnectConfig(),
	}
}

// pubSubConfig is the shared topology: exchange per topic, queue per binding,
// routed by topic name. queue may be empty for publishers.
func pubSubConfig(uri, queue string, prefetch int) wamqp.Config {
	if prefetch <= 0 {
		prefetch = 1
	}
	byTopic := func(topic string) string { return topic }

	return wamqp.Config{
		Connection: connectionConfig(uri),
		Marshaler: wamqp.DefaultMarshaler{
			PostprocessPublishing: func(p amqp.Publishing) amqp.Publishing {
				p.ContentType = contentType
				p.Timestamp = time.Now().UTC()
				if id, ok := p.Headers[wamqp.DefaultMessageUUIDHeaderKey].(string); ok {
					p.MessageId = id
				}
				return p
			},
		},
		Exchange: wamqp.ExchangeConfig{
			GenerateName: byTopic,
			Type:         exchangeKind,
			Durable:      true,
		},
		Queue: wamqp.QueueConfig{
			GenerateName: func(string) string { return queue },
			Durable:      true,
		},
		QueueBind: wamqp.QueueBindConfig{
			GenerateRoutingKey: byTopic,
		},
		Publish: wamqp.PublishConfig{
			GenerateRoutingKey: byTopic,
		},
		Consume: wamqp.ConsumeConfig{
			Qos: wamqp.QosConfig{PrefetchCount: prefetch},
		},
		TopologyBuilder: &wamqp.DefaultTopologyBuilder{},
	}
}

// sanitizeURL trims quotes and whitespace left by env files and rejects
// anything that is not amqp:// or amqps://.
func sanitizeURL(raw string) (string, error) {
	clean := strings.Trim(strings.TrimSpace(raw), "\"'")
	u, err := url.Parse(clean)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}
	if u.Scheme != "amqp" && u.Scheme != "amqps" {
		return "", errors.New("AMQP scheme must be either 'amqp://' or 'amqps://'")
	}
	if u.Host == "" {
		return "", errors.New("AMQP url has no host")
	}
	return clean, nil
}
