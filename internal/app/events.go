package app

import (
	"context"
	"errors"
	"sync"

	"travelnest/internal/domain"
)

// Broadcaster fans booking events out to in-process subscribers.
// Each subscriber has a one-slot buffer: a pending signal already means
// "refresh", so further events coalesce instead of blocking the publisher.
type Broadcaster struct {
	mu   sync.Mutex
	next int
	subs map[int]subscriber
}

type subscriber struct {
	userID string // empty receives every event
	ch     chan domain.BookingUpdated
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[int]subscriber)}
}

// Subscribe returns the channel of events for userID ("" for all users) and a
// cancel func that closes it.
func (b *Broadcaster) Subscribe(userID string) (<-chan domain.BookingUpdated, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.next
	b.next++
	ch := make(chan domain.BookingUpdated, 1)
	b.subs[id] = subscriber{userID: userID, ch: ch}

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
			close(ch)
		})
	}
}

func (b *Broadcaster) PublishBookingUpdated(_ context.Context, ev domain.BookingUpdated) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, sub := range b.subs {
		if sub.userID != "" && sub.userID != ev.UserID {
			continue
		}
		select {
		case sub.ch <- ev:
		default:
		}
	}
	return nil
}

// FanOut publishes to every publisher and joins their errors.
type FanOut []domain.EventPublisher

func (f FanOut) PublishBookingUpdated(ctx context.Context, ev domain.BookingUpdated) error {
	var errs []error
	for _, p := range f {
		if p == nil {
			continue
		}
		if err := p.PublishBookingUpdated(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
