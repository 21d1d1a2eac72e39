package events

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/ghuser/contracthub/pkg/contracts"
)

// Metadata keys set on every published message.
const (
	MetadataEventID      = "event_id"
	MetadataEventType    = "event_type"
	MetadataEventVersion = "event_version"
)

// ErrMalformedPayload is returned by Decode when a message cannot be turned
// into the expected event. It is always wrapped with Permanent.
var ErrMalformedPayload = errors.New("events: malformed payload")

type permanentError struct{ err error }

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks err as non-retryable: the bus logs it and acks the message.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// IsPermanent reports whether err, or anything it wraps, was marked Permanent.
func IsPermanent(err error) bool {
	var p *permanentError
	return errors.As(err, &p)
}

// NewMessage serializes evt to JSON and stamps its identity and the OTel trace
// context of ctx into the metadata. The event id doubles as the message UUID.
func NewMessage(ctx context.Context, evt contracts.Event) (*message.Message, error) {
	payload, err := json.Marshal(evt)
	if err != nil {
		return nil, fmt.Errorf("events: marshal %s: %w", evt.Topic(), err)
	}

	id := watermill.NewUUID()
	if evt.ID() != uuid.Nil {
		id = evt.ID().String()
	}

	msg := message.NewMessage(id, payload)
	msg.Metadata.Set(MetadataEventID, evt.ID().String())
	msg.Metadata.Set(MetadataEventType, evt.Topic().String())
	msg.Metadata.Set(MetadataEventVersion, strconv.Itoa(contracts.SchemaVersion))

	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	for k, v := range carrier {
		msg.Metadata.Set(k, v)
	}
	return msg, nil
}

// Decode strictly unmarshals msg into T. Unknown fields, trailing data, invalid
// JSON and an event_type header naming a different topic all yield a Permanent
// ErrMalformedPayload.
func Decode[T contracts.Event](msg *message.Message) (T, error) {
	var evt T

	if got := msg.Metadata.Get(MetadataEventType); got != "" && got != evt.Topic().String() {
		return evt, Permanent(fmt.Errorf("%w: event_type %q on %s consumer", ErrMalformedPayload, got, evt.Topic()))
	}

	dec := json.NewDecoder(bytes.NewReader(msg.Payload))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&evt); err != nil {
		return evt, Permanent(fmt.Errorf("%w: %s: %v", ErrMalformedPayload, evt.Topic(), err))
	}
	if dec.More() {
		return evt, Permanent(fmt.Errorf("%w: %s: trailing data", ErrMalformedPayload, evt.Topic()))
	}
	return evt, nil
}
