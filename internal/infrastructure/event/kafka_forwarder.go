package event

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cmsplatform/backend/internal/domain/shared"
	"github.com/cmsplatform/backend/internal/infrastructure/config"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Message header names set on every forwarded event
const (
	HeaderEventType = "event-type"
	HeaderTenantID  = "tenant-id"
)

// Delivery defaults
const (
	DefaultForwardAttempts = 3
	DefaultForwardBackoff  = 200 * time.Millisecond
	DefaultForwardTimeout  = 10 * time.Second
)

// ErrForwarderClosed is returned by Handle after Close
var ErrForwarderClosed = errors.New("kafka forwarder is closed")

// MessageWriter is the subset of *kafka.Writer the forwarder uses
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// DeliveryFailureFunc is called once an event has exhausted its attempts
type DeliveryFailureFunc func(ctx context.Context, event shared.DomainEvent)

// KafkaForwarder is a wildcard event handler that publishes every domain event
// to one Kafka topic, keyed by aggregate ID so events of one aggregate stay ordered.
// Writes run in the background; the publisher never waits on the broker.
type KafkaForwarder struct {
	writer    MessageWriter
	topic     string
	logger    *zap.Logger
	attempts  int
	backoff   time.Duration
	timeout   time.Duration
	onFailure DeliveryFailureFunc

	inflight sync.WaitGroup
	closed   atomic.Bool
}

// ForwarderOption configures a KafkaForwarder
type ForwarderOption func(*KafkaForwarder)

// WithRetry sets the number of write attempts and the base backoff between them
func WithRetry(attempts int, backoff time.Duration) ForwarderOption {
	return func(f *KafkaForwarder) {
		if attempts > 0 {
			f.attempts = attempts
		}
		if backoff >= 0 {
			f.backoff = backoff
		}
	}
}

// WithWriteTimeout bounds a single write attempt
func WithWriteTimeout(timeout time.Duration) ForwarderOption {
	return func(f *KafkaForwarder) {
		if timeout > 0 {
			f.timeout = timeout
		}
	}
}

// WithDeliveryFailure registers fn for events that could not be written
func WithDeliveryFailure(fn DeliveryFailureFunc) ForwarderOption {
	return func(f *KafkaForwarder) {
		f.onFailure = fn
	}
}

// NewKafkaWriter builds a writer for the configured brokers
func NewKafkaWriter(cfg config.EventConfig) *kafka.Writer {
	batchTimeout := cfg.KafkaBatchTimeout
	if batchTimeout <= 0 {
		batchTimeout = 50 * time.Millisecond
	}
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.KafkaBrokers...),
		Balancer:               &kafka.Hash{},
		BatchTimeout:           batchTimeout,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
}

// NewKafkaForwarder creates a forwarder writing to topic
func NewKafkaForwarder(writer MessageWriter, topic string, logger *zap.Logger, opts ...ForwarderOption) *KafkaForwarder {
	if logger == nil {
		logger = zap.NewNop()
	}
	f := &KafkaForwarder{
		writer:   writer,
		topic:    topic,
		logger:   logger.Named("kafka_forwarder"),
		attempts: DefaultForwardAttempts,
		backoff:  DefaultForwardBackoff,
		timeout:  DefaultForwardTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// EventTypes returns nil: the forwarder receives every event
func (f *KafkaForwarder) EventTypes() []string {
	return nil
}

// Handle encodes the event and hands it to a background writer.
// Only encoding errors are returned; write failures are logged and retried.
func (f *KafkaForwarder) Handle(ctx context.Context, event shared.DomainEvent) error {
	if f.closed.Load() {
		return ErrForwarderClosed
	}

	value, err := Serialize(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Topic: f.topic,
		Key:   []byte(event.AggregateID().String()),
		Value: value,
		Time:  event.OccurredAt(),
		Headers: []kafka.Header{
			{Key: HeaderEventType, Value: []byte(event.EventType())},
			{Key: HeaderTenantID, Value: []byte(event.TenantID().String())},
		},
	}

	// detached so the write outlives the request that raised the event
	bgCtx := context.WithoutCancel(ctx)
	f.inflight.Add(1)
	go func() {
		defer f.inflight.Done()
		f.deliver(bgCtx, event, msg)
	}()
	return nil
}

func (f *KafkaForwarder) deliver(ctx context.Context, event shared.DomainEvent, msg kafka.Message) {
	fields := []zap.Field{
		zap.String("topic", f.topic),
		zap.String("event_type", event.EventType()),
		zap.String("event_id", event.EventID().String()),
	}

	var err error
	for attempt := 1; attempt <= f.attempts; attempt++ {
		writeCtx, cancel := context.WithTimeout(ctx, f.timeout)
		err = f.writer.WriteMessages(writeCtx, msg)
		cancel()
		if err == nil {
			f.logger.Debug("Forwarded event", append(fields, zap.Int("attempt", attempt))...)
			return
		}
		if attempt < f.attempts {
			f.logger.Warn("Kafka write failed, retrying",
				append(fields, zap.Int("attempt", attempt), zap.Error(err))...)
			time.Sleep(f.backoff * time.Duration(attempt))
		}
	}

	f.logger.Error("Failed to forward event", append(fields, zap.Int("attempts", f.attempts), zap.Error(err))...)
	if f.onFailure != nil {
		f.onFailure(ctx, event)
	}
}

// Close waits for pending writes, then flushes and closes the writer
func (f *KafkaForwarder) Close() error {
	f.closed.Store(true)
	f.inflight.Wait()
	return f.writer.Close()
}

var _ shared.EventHandler = (*KafkaForwarder)(nil)
