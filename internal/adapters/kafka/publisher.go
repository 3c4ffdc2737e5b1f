// Package kafka carries booking events between API instances.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"

	"travelnest/internal/adapters/observability"
	"travelnest/internal/domain"
)

const DefaultTopic = "bookings.updated"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

var (
	ErrQueueFull       = errors.New("kafka: publish queue full")
	ErrPublisherClosed = errors.New("kafka: publisher closed")
)

const (
	queueSize    = 256
	batchTimeout = 10 * time.Millisecond
)

// Publisher hands events to a background writer. Publishing never waits on
// the broker: a full queue drops the event and reports ErrQueueFull.
type Publisher struct {
	w     messageWriter
	queue chan kafka.Message
	done  chan struct{}

	mu     sync.Mutex
	closed bool
}

func NewPublisher(broker, topic string) *Publisher {
	return newPublisher(newWriter(broker, topic))
}

func newWriter(broker, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(broker),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		Async:        true,
		BatchTimeout: batchTimeout,
		Completion:   completed,
	}
}

// completed reports the outcome of an async batch.
func completed(msgs []kafka.Message, err error) {
	status := "200"
	if err != nil {
		status = "500"
		log.Warn().Err(err).Int("messages", len(msgs)).Msg("booking events not delivered")
	}
	observability.ExternalRequests.WithLabelValues("kafka", "bookings.updated", status).Add(float64(len(msgs)))
}

// NewPublisherWithWriter is used by tests.
func NewPublisherWithWriter(w messageWriter) *Publisher { return newPublisher(w) }

func newPublisher(w messageWriter) *Publisher {
	p := &Publisher{w: w, queue: make(chan kafka.Message, queueSize), done: make(chan struct{})}
	go p.run()
	return p
}

func (p *Publisher) run() {
	defer close(p.done)
	for msg := range p.queue {
		start := time.Now()
		err := p.w.WriteMessages(context.Background(), msg)
		if err != nil {
			log.Warn().Err(err).Str("key", string(msg.Key)).Msg("booking event write failed")
		}
		observability.ObserveExternal("kafka", "enqueue", statusOf(err), time.Since(start))
	}
}

func statusOf(err error) int {
	if err != nil {
		return 500
	}
	return 200
}

// PublishBookingUpdated keys the message by user so one user's events stay ordered.
func (p *Publisher) PublishBookingUpdated(_ context.Context, ev domain.BookingUpdated) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	msg := kafka.Message{Key: []byte(ev.UserID), Value: data, Time: ev.At}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrPublisherClosed
	}
	select {
	case p.queue <- msg:
		return nil
	default:
		observability.ObserveExternal("kafka", "enqueue", 503, 0)
		return ErrQueueFull
	}
}

// Close drains queued events into the writer and then closes it.
func (p *Publisher) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()

	<-p.done
	return p.w.Close()
}

// Relay feeds events read from the topic into a local publisher, usually the
// in-process broadcaster.
type Relay struct {
	r    messageReader
	sink domain.EventPublisher
}

func NewRelay(broker, topic, groupID string, sink domain.EventPublisher) *Relay {
	return &Relay{
		r: kafka.NewReader(kafka.ReaderConfig{
			Brokers:        []string{broker},
			Topic:          topic,
			GroupID:        groupID,
			MinBytes:       1,
			MaxBytes:       1 << 20,
			CommitInterval: time.Second,
		}),
		sink: sink,
	}
}

// NewRelayWithReader is used by tests.
func NewRelayWithReader(r messageReader, sink domain.EventPublisher) *Relay {
	return &Relay{r: r, sink: sink}
}

// Run blocks until ctx ends or the reader fails.
func (r *Relay) Run(ctx context.Context) error {
	defer r.r.Close()
	for {
		msg, err := r.r.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		var ev domain.BookingUpdated
		if err := json.Unmarshal(msg.Value, &ev); err != nil {
			log.Warn().Err(err).Str("err_type", observability.LabelErr(err)).Msg("dropping malformed booking event")
			continue
		}
		if err := r.sink.PublishBookingUpdated(ctx, ev); err != nil {
			log.Warn().Err(err).Str("booking_id", ev.BookingID).Msg("relay publish failed")
		}
	}
}
