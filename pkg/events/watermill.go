// Package events is the EventBus every producer and consumer goes through,
// built on Watermill.
//
// Publishing: producers call PublishTx inside the transaction that writes their
// aggregate. The message lands in the Watermill SQL outbox (the forwarder queue)
// and commits or rolls back with the business row; the Forwarder daemon relays
// it to the real topic afterwards.
//
// Transports (cfg.BrokerTransport):
//   - sql: PostgreSQL is outbox and broker. Each binding's queue is the
//     subscriber's ConsumerGroup, so every queue sees every message of its
//     topic and instances sharing a queue are load-balanced.
//   - amqp: RabbitMQ is the broker. The Forwarder relays to one durable topic
//     exchange per topic; each binding consumes its own durable queue.
//
// Handlers must be idempotent. A failing handler is retried up to 3 times with
// exponential backoff and then Nacked. Errors wrapped with Permanent are never
// retried: the message is logged and Acked.
//
// OTel context propagation: trace context is injected into message metadata on
// publish and extracted before the handler runs.
package events

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	watermillsql "github.com/ThreeDotsLabs/watermill-sql/v3/pkg/sql"
	"github.com/ThreeDotsLabs/watermill/components/forwarder"
	"github.com/ThreeDotsLabs/watermill/message"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/ghuser/contracthub/pkg/broker/rabbitmq"
	"github.com/ghuser/contracthub/pkg/config"
	"github.com/ghuser/contracthub/pkg/contracts"
	"github.com/ghuser/contracthub/pkg/logger"
)

const (
	maxRetries      = 3
	retryBaseDelay  = time.Second
	shutdownTimeout = 30 * time.Second
	errChanSize     = 100
	forwarderTopic  = "_forwarder_queue" // internal outbox topic for the Forwarder daemon
	forwarderGroup  = "forwarder-consumer"
)

// Handler processes one message. Returning nil acks it.
type Handler func(ctx context.Context, msg *message.Message) error

// EventBus publishes events through the SQL outbox and consumes them from the
// configured transport.
type EventBus struct {
	db           *sql.DB
	log          logger.Logger
	wlog         watermill.LoggerAdapter
	transport    string
	prefetch     int
	publisher    message.Publisher    // either direct SQL publisher or forwarder-decorated
	amqpConn     *rabbitmq.Connection // non-nil only on the amqp transport
	fwd          *forwarder.Forwarder
	metrics      *metrics
	useForwarder bool

	mu          sync.Mutex
	subscribers []message.Subscriber
	wg          sync.WaitGroup
}

// NewEventBus creates an EventBus over db that publishes straight to the
// topic tables. On the amqp transport forwarder mode is forced, since RabbitMQ
// can only be reached through the relay.
func NewEventBus(cfg *config.Config, db *sql.DB, log logger.Logger) (*EventBus, error) {
	return newEventBus(cfg, db, log, cfg.BrokerTransport == config.TransportAMQP)
}

// NewEventBusWithForwarder creates an EventBus that writes every publish to the
// durable forwarder queue. Call StartForwarder(ctx) to begin relaying.
func NewEventBusWithForwarder(cfg *config.Config, db *sql.DB, log logger.Logger) (*EventBus, error) {
	return newEventBus(cfg, db, log, true)
}

func newEventBus(cfg *config.Config, db *sql.DB, log logger.Logger, useForwarder bool) (*EventBus, error) {
	wlog := &slogAdapter{log: log}

	pub, err := watermillsql.NewPublisher(
		db,
		watermillsql.PublisherConfig{
			SchemaAdapter:        watermillsql.DefaultPostgreSQLSchema{},
			AutoInitializeSchema: true,
		},
		wlog,
	)
	if err != nil {
		return nil, fmt.Errorf("events: new publisher: %w", err)
	}

	var publisher message.Publisher = pub
	if useForwarder {
		publisher = forwarder.NewPublisher(pub, forwarder.PublisherConfig{
			ForwarderTopic: forwarderTopic,
		})
	}

	bus := &EventBus{
		db:           db,
		log:          log,
		wlog:         wlog,
		transport:    cfg.BrokerTransport,
		prefetch:     cfg.AMQPPrefetch,
		publisher:    publisher,
		metrics:      newMetrics(),
		useForwarder: useForwarder,
	}

	if cfg.BrokerTransport == config.TransportAMQP {
		conn, err := rabbitmq.Dial(cfg.AMQPURL, wlog)
		if err != nil {
			_ = pub.Close()
			return nil, fmt.Errorf("events: %w", err)
		}
		bus.amqpConn = conn
	}

	return bus, nil
}

// StartForwarder starts the background Forwarder daemon that drains the outbox
// queue and publishes each message to its target topic on the configured
// transport. Must only be called once, on a bus in forwarder mode.
func (q *EventBus) StartForwarder(ctx context.Context) error {
	if !q.useForwarder {
		return fmt.Errorf("events: StartForwarder called on non-forwarder EventBus")
	}
	if q.fwd != nil {
		return fmt.Errorf("events: forwarder already started")
	}

	fwdSub, err := q.sqlSubscriber(forwarderGroup)
	if err != nil {
		return fmt.Errorf("events: new forwarder subscriber: %w", err)
	}

	targetPub, err := q.targetPublisher()
	if err != nil {
		_ = fwdSub.Close()
		return fmt.Errorf("events: new forwarder target publisher: %w", err)
	}

	fwd, err := forwarder.NewForwarder(fwdSub, targetPub, q.wlog, forwarder.Config{
		ForwarderTopic: forwarderTopic,
	})
	if err != nil {
		_ = targetPub.Close()
		_ = fwdSub.Close()
		return fmt.Errorf("events: create forwarder: %w", err)
	}

	q.fwd = fwd

	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		q.log.InfoContext(ctx, "events: forwarder started", "transport", q.transport)
		if err := fwd.Run(ctx); err != nil {
			q.log.ErrorContext(ctx, "events: forwarder stopped with error", "error", err)
		} else {
			q.log.InfoContext(ctx, "events: forwarder stopped")
		}
	}()

	select {
	case <-fwd.Running():
	case <-ctx.Done():
		return fmt.Errorf("events: context cancelled waiting for forwarder: %w", ctx.Err())
	}

	return nil
}

func (q *EventBus) targetPublisher() (message.Publisher, error) {
	if q.amqpConn != nil {
		return rabbitmq.NewPublisher(q.amqpConn, q.wlog)
	}
	return watermillsql.NewPublisher(
		q.db,
		watermillsql.PublisherConfig{
			SchemaAdapter:        watermillsql.DefaultPostgreSQLSchema{},
			AutoInitializeSchema: true,
		},
		q.wlog,
	)
}

func (q *EventBus) sqlSubscriber(consumerGroup string) (*watermillsql.Subscriber, error) {
	return watermillsql.NewSubscriber(
		q.db,
		watermillsql.SubscriberConfig{
			SchemaAdapter:    watermillsql.DefaultPostgreSQLSchema{},
			OffsetsAdapter:   watermillsql.DefaultPostgreSQLOffsetsAdapter{},
			InitializeSchema: true,
			ConsumerGroup:    consumerGroup,
		},
		q.wlog,
	)
}

// NewTxPublisher returns a Publisher bound to tx. Messages published through it
// commit or roll back with tx. In forwarder mode they are enveloped for the
// Forwarder daemon.
//
// AutoInitializeSchema is false: tables exist once the bus has started.
func (q *EventBus) NewTxPublisher(tx *sql.Tx) (message.Publisher, error) {
	pub, err := watermillsql.NewPublisher(
		tx,
		watermillsql.PublisherConfig{
			SchemaAdapter:        watermillsql.DefaultPostgreSQLSchema{},
			AutoInitializeSchema: false,
		},
		q.wlog,
	)
	if err != nil {
		return nil, fmt.Errorf("events: new tx publisher: %w", err)
	}
	if q.useForwarder {
		return forwarder.NewPublisher(pub, forwarder.PublisherConfig{
			ForwarderTopic: forwarderTopic,
		}), nil
	}
	return pub, nil
}

// PublishTx writes evt to the outbox inside tx. The caller's commit makes the
// event visible to the Forwarder; a rollback discards it with the business write.
func (q *EventBus) PublishTx(ctx context.Context, tx *sql.Tx, evt contracts.Event) error {
	topic := evt.Topic().String()

	msg, err := NewMessage(ctx, evt)
	if err != nil {
		return err
	}
	pub, err := q.NewTxPublisher(tx)
	if err != nil {
		return err
	}
	if err := pub.Publish(topic, msg); err != nil { //nolint:contextcheck
		q.metrics.recordPublished(ctx, topic, outcomeFailed)
		return fmt.Errorf("events: publish %s to %s: %w", evt.ID(), topic, err)
	}
	q.metrics.recordPublished(ctx, topic, outcomeOK)
	return nil
}

// Publish sends evt outside any business transaction.
func (q *EventBus) Publish(ctx context.Context, evt contracts.Event) error {
	topic := evt.Topic().String()

	msg, err := NewMessage(ctx, evt)
	if err != nil {
		return err
	}
	if err := q.publisher.Publish(topic, msg); err != nil { //nolint:contextcheck
		q.metrics.recordPublished(ctx, topic, outcomeFailed)
		return fmt.Errorf("events: publish to %s: %w", topic, err)
	}
	q.metrics.recordPublished(ctx, topic, outcomeOK)
	return nil
}

// Subscribe consumes binding.Queue and runs handler for every message. Each call
// opens its own subscriber, so one binding never competes with another for
// messages of the same topic.
//
// Ack/Nack is managed by the bus:
//   - handler returns nil              → Ack
//   - handler returns Permanent error  → logged, Ack (poison message dropped)
//   - handler returns other error      → retried up to 3× (1s, 2s, 4s), then Nack
//     and the error is forwarded to the returned channel
//
// The returned error channel is buffered (capacity 100). Callers must drain it.
// All in-flight handlers complete before Close() returns.
func (q *EventBus) Subscribe(ctx context.Context, binding contracts.Binding, handler Handler) (<-chan error, error) {
	sub, err := q.newSubscriber(binding)
	if err != nil {
		return nil, fmt.Errorf("events: new subscriber for %s: %w", binding, err)
	}

	topic := binding.Topic.String()
	ch, err := sub.Subscribe(ctx, topic)
	if err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("events: subscribe %s: %w", binding, err)
	}

	q.mu.Lock()
	q.subscribers = append(q.subscribers, sub)
	q.mu.Unlock()

	errCh := make(chan error, errChanSize)

	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		defer close(errCh)

		for msg := range ch {
			msgCtx := messageContext(ctx, binding, msg)
			if err := q.dispatch(msgCtx, topic, msg, handler); err != nil {
				select {
				case errCh <- err:
				default:
					q.log.ErrorContext(msgCtx, "events: error channel full, dropping error", "error", err)
				}
			}
		}
	}()

	q.log.InfoContext(ctx, "events: subscribed", "queue", binding.Queue, "topic", topic, "transport", q.transport)
	return errCh, nil
}

func (q *EventBus) newSubscriber(binding contracts.Binding) (message.Subscriber, error) {
	if q.amqpConn != nil {
		return rabbitmq.NewSubscriber(q.amqpConn, rabbitmq.SubscriberConfig{
			Queue:    binding.Queue,
			Prefetch: q.prefetch,
		}, q.wlog)
	}
	return q.sqlSubscriber(binding.Queue)
}

// dispatch runs handler with retries and settles msg. It returns the error to
// surface on the subscription's error channel, if any.
func (q *EventBus) dispatch(ctx context.Context, topic string, msg *message.Message, handler Handler) error {
	err := retryWithBackoff(ctx, msg, handler, maxRetries, retryBaseDelay, q.log)
	switch {
	case err == nil:
		msg.Ack()
		q.metrics.recordConsumed(ctx, topic, outcomeOK)
		return nil
	case IsPermanent(err):
		q.log.ErrorContext(ctx, "events: dropping unprocessable message", "error", err)
		msg.Ack()
		q.metrics.recordConsumed(ctx, topic, outcomeDropped)
		return nil
	default:
		msg.Nack()
		q.metrics.recordConsumed(ctx, topic, outcomeFailed)
		return err
	}
}

// messageContext restores the publisher's trace and binds queue, topic and
// event id to every log line the handler writes.
func messageContext(ctx context.Context, binding contracts.Binding, msg *message.Message) context.Context {
	carrier := propagation.MapCarrier{}
	for k, v := range msg.Metadata {
		carrier[k] = v
	}
	msgCtx := otel.GetTextMapPropagator().Extract(ctx, carrier)
	return logger.WithAttrs(msgCtx,
		slog.String("queue", binding.Queue),
		slog.String("topic", binding.Topic.String()),
		slog.String("event_id", msg.Metadata.Get(MetadataEventID)),
	)
}

// retryWithBackoff calls handler up to maxRetries times with exponential backoff.
// Returns nil on first success; a Permanent error stops retrying immediately;
// otherwise the last error is returned after all retries exhaust.
func retryWithBackoff(
	ctx context.Context,
	msg *message.Message,
	handler Handler,
	maxRetries int,
	baseDelay time.Duration,
	log logger.Logger,
) error {
	delay := baseDelay
	var err error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if err = handler(ctx, msg); err == nil {
			return nil
		}
		if IsPermanent(err) {
			return err
		}
		if attempt < maxRetries {
			log.WarnContext(ctx, "events: handler failed, retrying",
				"attempt", attempt,
				"max_retries", maxRetries,
				"next_delay", delay,
				"error", err,
			)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}
	}
	return fmt.Errorf("events: handler failed after %d retries: %w", maxRetries, err)
}

// Ping checks the outbox database and, on the amqp transport, the broker connection.
func (q *EventBus) Ping(ctx context.Context) error {
	if err := q.db.PingContext(ctx); err != nil {
		return fmt.Errorf("events: ping db: %w", err)
	}
	if q.amqpConn != nil && !q.amqpConn.IsConnected() {
		return fmt.Errorf("events: amqp connection closed")
	}
	return nil
}

// Close gracefully shuts down the EventBus.
// Shutdown order: stop subscribers → stop forwarder (if running) → wait for
// in-flight handlers (30 s max) → close publisher → close broker connection.
// The *sql.DB is owned by the caller and left open.
func (q *EventBus) Close() error {
	q.mu.Lock()
	subs := q.subscribers
	q.subscribers = nil
	q.mu.Unlock()

	for _, sub := range subs {
		if err := sub.Close(); err != nil {
			return fmt.Errorf("events: close subscriber: %w", err)
		}
	}

	if q.fwd != nil {
		if err := q.fwd.Close(); err != nil {
			return fmt.Errorf("events: close forwarder: %w", err)
		}
	}

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	select {
	case <-done:
	case <-ctx.Done():
		q.log.Error("events: timed out waiting for in-flight handlers to complete")
	}

	if err := q.publisher.Close(); err != nil {
		return fmt.Errorf("events: close publisher: %w", err)
	}
	if q.amqpConn != nil {
		if err := q.amqpConn.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
			return fmt.Errorf("events: close amqp connection: %w", err)
		}
	}
	return nil
}

// slogAdapter bridges logger.Logger to watermill.LoggerAdapter.
type slogAdapter struct{ log logger.Logger }

func (a *slogAdapter) Error(msg string, err error, fields watermill.LogFields) {
	a.log.Error(msg, append(fieldsToArgs(fields), "error", err)...)
}
func (a *slogAdapter) Info(msg string, fields watermill.LogFields) {
	a.log.Info(msg, fieldsToArgs(fields)...)
}
func (a *slogAdapter) Debug(msg string, fields watermill.LogFields) {
	a.log.Debug(msg, fieldsToArgs(fields)...)
}
func (a *slogAdapter) Trace(msg string, fields watermill.LogFields) {
	a.log.Debug(msg, fieldsToArgs(fields)...)
}
func (a *slogAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &slogAdapter{log: a.log.With(fieldsToArgs(fields)...)}
}

func fieldsToArgs(fields watermill.LogFields) []any {
	args := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return args
}
