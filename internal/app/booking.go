package app

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"travelnest/internal/domain"
)

type HotelReader interface {
	GetHotel(ctx context.Context, id string) (domain.Hotel, error)
}

type BookingWriter interface {
	CreateBooking(ctx context.Context, hotel domain.Hotel, b domain.Booking) error
}

// BookingRequest is what the booking screen collects.
type BookingRequest struct {
	HotelID  string
	CheckIn  time.Time
	CheckOut time.Time
	Guests   int
}

type BookingService struct {
	hotels   HotelReader
	bookings BookingWriter
	now      domain.Clock
	newID    func() string
}

func NewBookingService(hotels HotelReader, bookings BookingWriter) *BookingService {
	return &BookingService{hotels: hotels, bookings: bookings, now: time.Now, newID: uuid.NewString}
}

// WithClock overrides the creation timestamp source.
func (s *BookingService) WithClock(c domain.Clock) *BookingService {
	s.now = c
	return s
}

// Place prices and persists a confirmed booking. A check-out on or before the
// check-in is accepted and costs nothing.
func (s *BookingService) Place(ctx context.Context, who domain.Identity, req BookingRequest) (domain.Booking, error) {
	if who.UserID == "" {
		return domain.Booking{}, domain.CredentialError("Please sign in to book a hotel.")
	}
	if req.Guests < 1 {
		return domain.Booking{}, errors.New("number of guests must be at least 1")
	}
	hotel, err := s.hotels.GetHotel(ctx, req.HotelID)
	if err != nil {
		return domain.Booking{}, err
	}

	nights := Nights(req.CheckIn, req.CheckOut)
	b := domain.Booking{
		ID:             s.newID(),
		UserID:         who.UserID,
		HotelID:        hotel.ID,
		HotelName:      hotel.Name,
		CheckInDate:    req.CheckIn,
		CheckOutDate:   req.CheckOut,
		NumberOfGuests: req.Guests,
		TotalPrice:     TotalPrice(hotel.Price, nights),
		Status:         domain.BookingConfirmed,
		CreatedAt:      s.now(),
	}
	if err := s.bookings.CreateBooking(ctx, hotel, b); err != nil {
		return domain.Booking{}, err
	}
	return b, nil
}
