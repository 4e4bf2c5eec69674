package messaging

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrUnsupported is returned when the selected broker cannot perform a
// requested feature, such as delayed delivery.
var ErrUnsupported = errors.New("pkgmessage: unsupported operation")

// Messaging is a broker-agnostic client able to publish and consume.
type Messaging interface {
	io.Closer

	Publisher
	Consumer
}

// Publisher sends messages to a destination (topic, subject, queue).
type Publisher interface {
	Publish(ctx context.Context, destination string, msg OutgoingMessage) (PublishResult, error)
}

// Consumer receives messages from a source (subject, queue, subscription).
type Consumer interface {
	Consume(ctx context.Context, source string, handler Handler, opts ...ConsumeOption) error
}

// Handler processes one received message. A non-nil return carries no
// broker-level meaning on its own; acking is the handler's or the consume
// options' responsibility.
type Handler func(ctx context.Context, msg Message) error

// OutgoingMessage is a broker-agnostic message to publish.
type OutgoingMessage struct {
	// Body is the payload.
	Body []byte

	// Headers allow binary values and repeated keys.
	Headers []Header

	// Delay defers delivery where the broker supports it.
	Delay time.Duration
}

// Header is one message header entry.
type Header struct {
	Key   string
	Value []byte
}

// PublishResult carries whatever publish metadata the broker exposes.
type PublishResult struct {
	// MessageID is the broker-assigned id, when one exists.
	MessageID string

	// Topic is the destination the message went to.
	Topic string

	// Sequence is set by sequence-numbering brokers such as JetStream.
	Sequence uint64

	// Timestamp is when the broker accepted the message.
	Timestamp time.Time

	// Raw holds the underlying broker-specific result, if any.
	Raw any
}

// Message is a received message, broker details abstracted away.
type Message interface {
	// Body returns the payload.
	Body() []byte
	// Headers returns the message headers.
	Headers() []Header

	// ID returns the broker message id, empty when unsupported.
	ID() string
	// Subject returns the subject name when applicable.
	Subject() string
	// Timestamp returns the broker timestamp.
	Timestamp() time.Time

	// Ack marks the message successfully processed.
	Ack(ctx context.Context) error
}

// Nackable is implemented by messages that can request redelivery.
type Nackable interface {
	Nack(ctx context.Context) error
}

// RawCarrier exposes the underlying broker message type.
type RawCarrier interface {
	Raw() any
}
