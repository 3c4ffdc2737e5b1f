package app

import (
	"context"
	"sort"
	"sync"

	"github.com/rs/zerolog/log"

	"travelnest/internal/domain"
)

type BookingLister interface {
	ListBookingsForUser(ctx context.Context, userID string) ([]domain.Booking, error)
}

type BookingSnapshot struct {
	Bookings  []domain.Booking `json:"bookings"`
	Loading   bool             `json:"loading"`
	LastError string           `json:"error,omitempty"`
}

// BookingState is the booking history of one signed-in identity, newest first.
type BookingState struct {
	repo   BookingLister
	userID string

	mu       sync.RWMutex
	bookings []domain.Booking
	loading  bool
	lastErr  string
}

func NewBookingState(repo BookingLister, userID string) *BookingState {
	return &BookingState{repo: repo, userID: userID}
}

func (s *BookingState) Refresh(ctx context.Context) {
	if s.userID == "" {
		log.Debug().Msg("no user signed in, skipping booking refresh")
		return
	}
	s.mu.Lock()
	s.loading = true
	s.lastErr = ""
	s.mu.Unlock()

	bookings, err := s.repo.ListBookingsForUser(ctx, s.userID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		log.Error().Err(err).Str("user_id", s.userID).Msg("loading bookings failed")
		s.lastErr = domain.Cause(err).Error()
		return
	}
	SortBookingsNewestFirst(bookings)
	s.bookings = bookings
}

// Watch refreshes on every event for this user until ctx ends or the channel
// closes. onRefresh, if set, sees the state after each refresh.
func (s *BookingState) Watch(ctx context.Context, events <-chan domain.BookingUpdated, onRefresh func(BookingSnapshot)) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if ev.UserID != "" && ev.UserID != s.userID {
				continue
			}
			s.Refresh(ctx)
			if onRefresh != nil {
				onRefresh(s.Snapshot())
			}
		}
	}
}

func (s *BookingState) Snapshot() BookingSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return BookingSnapshot{Bookings: clone(s.bookings), Loading: s.loading, LastError: s.lastErr}
}

func SortBookingsNewestFirst(bs []domain.Booking) {
	sort.SliceStable(bs, func(i, j int) bool { return bs[i].CreatedAt.After(bs[j].CreatedAt) })
}
