package app

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"travelnest/internal/adapters/observability"
	"travelnest/internal/domain"
)

// CatalogRepository resolves hotels remote-first and persists bookings.
type CatalogRepository struct {
	store   domain.DocumentStore
	bundled domain.BundledCatalog
	events  domain.EventPublisher
}

func NewCatalogRepository(store domain.DocumentStore, bundled domain.BundledCatalog, events domain.EventPublisher) *CatalogRepository {
	return &CatalogRepository{store: store, bundled: bundled, events: events}
}

// FetchCatalog lists the hotels collection, seeding it once when empty.
func (r *CatalogRepository) FetchCatalog(ctx context.Context) ([]domain.Hotel, error) {
	hotels, err := r.listHotels(ctx)
	if err != nil {
		return nil, domain.Wrap(domain.ErrCatalogUnavailable, err)
	}
	if len(hotels) > 0 {
		observability.ObserveCatalogSource("remote")
		return hotels, nil
	}

	log.Info().Msg("hotel collection empty, seeding sample hotels")
	if err := r.Seed(ctx, SeedHotels()); err != nil {
		return nil, domain.Wrap(domain.ErrCatalogUnavailable, err)
	}
	hotels, err = r.listHotels(ctx)
	if err != nil {
		return nil, domain.Wrap(domain.ErrCatalogUnavailable, err)
	}
	observability.ObserveCatalogSource("seeded")
	return hotels, nil
}

// Seed writes each hotel under its own id.
func (r *CatalogRepository) Seed(ctx context.Context, hotels []domain.Hotel) error {
	for _, h := range hotels {
		if err := r.SeedHotel(ctx, h); err != nil {
			return err
		}
	}
	return nil
}

func (r *CatalogRepository) SeedHotel(ctx context.Context, h domain.Hotel) error {
	return r.store.Set(ctx, colHotels, h.ID, hotelToDoc(h))
}

func (r *CatalogRepository) listHotels(ctx context.Context) ([]domain.Hotel, error) {
	snaps, err := r.store.List(ctx, colHotels)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Hotel, 0, len(snaps))
	for _, s := range snaps {
		h, err := hotelFromDoc(s)
		if err != nil {
			log.Warn().Err(err).Str("id", s.ID).Msg("skipping undecodable hotel")
			continue
		}
		out = append(out, h)
	}
	return out, nil
}

// LoadBundledCatalog reads the on-device fallback file.
func (r *CatalogRepository) LoadBundledCatalog() ([]domain.Hotel, error) {
	if r.bundled == nil {
		return nil, domain.Wrap(domain.ErrBundledCatalogCorrupt, errors.New("no bundled catalog configured"))
	}
	hotels, err := r.bundled.Load()
	if err != nil {
		if errors.Is(err, domain.ErrBundledCatalogCorrupt) {
			return nil, err
		}
		return nil, domain.Wrap(domain.ErrBundledCatalogCorrupt, err)
	}
	observability.ObserveCatalogSource("bundled")
	return hotels, nil
}

func (r *CatalogRepository) GetHotel(ctx context.Context, id string) (domain.Hotel, error) {
	doc, err := r.store.Get(ctx, colHotels, id)
	if err != nil {
		return domain.Hotel{}, err
	}
	return hotelFromDoc(domain.Snapshot{ID: id, Data: doc})
}

// CreateBooking writes the booking as one document keyed by its id and then
// notifies listeners. A failed notification does not undo the booking.
func (r *CatalogRepository) CreateBooking(ctx context.Context, hotel domain.Hotel, b domain.Booking) error {
	if err := r.store.Set(ctx, colBookings, b.ID, bookingToDoc(b)); err != nil {
		log.Error().Err(err).Str("booking_id", b.ID).Msg("saving booking failed")
		return domain.Wrap(domain.ErrBookingPersistFailed, err)
	}
	log.Info().Str("booking_id", b.ID).Str("hotel_id", hotel.ID).Msg("booking saved")
	observability.ObserveBooking(hotel.Category)

	if r.events != nil {
		ev := domain.BookingUpdated{BookingID: b.ID, UserID: b.UserID, HotelID: hotel.ID, At: b.CreatedAt}
		if err := r.events.PublishBookingUpdated(ctx, ev); err != nil {
			log.Warn().Err(err).Str("booking_id", b.ID).Msg("booking event not delivered")
		}
	}
	return nil
}

// ListBookingsForUser returns the user's bookings in store order. Documents
// that fail to decode are logged and skipped so the rest of the history survives.
func (r *CatalogRepository) ListBookingsForUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	snaps, err := r.store.QueryEqual(ctx, colBookings, fieldBookingUser, userID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Booking, 0, len(snaps))
	for _, s := range snaps {
		b, err := bookingFromDoc(s)
		if err != nil {
			log.Warn().Err(err).Str("id", s.ID).Msg("skipping undecodable booking")
			continue
		}
		if b.UserID != userID {
			continue
		}
		out = append(out, b)
	}
	log.Debug().Str("user_id", userID).Int("count", len(out)).Msg("bookings fetched")
	return out, nil
}

func (r *CatalogRepository) GetBooking(ctx context.Context, id string) (domain.Booking, error) {
	doc, err := r.store.Get(ctx, colBookings, id)
	if err != nil {
		return domain.Booking{}, err
	}
	return bookingFromDoc(domain.Snapshot{ID: id, Data: doc})
}
