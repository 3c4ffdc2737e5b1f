package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// ParseBookingStatus maps a stored label to a status; unknown labels read as pending.
func ParseBookingStatus(s string) BookingStatus {
	switch BookingStatus(s) {
	case BookingConfirmed, BookingCompleted, BookingCancelled:
		return BookingStatus(s)
	default:
		return BookingPending
	}
}

// IsTerminal reports whether no further transition is possible.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingCompleted || s == BookingCancelled
}

type Booking struct {
	ID             string        `json:"id"`
	UserID         string        `json:"user_id"`
	HotelID        string        `json:"hotel_id"`
	HotelName      string        `json:"hotel_name"` // copied at booking time
	CheckInDate    time.Time     `json:"check_in_date"`
	CheckOutDate   time.Time     `json:"check_out_date"`
	NumberOfGuests int           `json:"number_of_guests"`
	TotalPrice     float64       `json:"total_price"`
	Status         BookingStatus `json:"status"`
	CreatedAt      time.Time     `json:"created_at"`
}

// BookingUpdated is broadcast after a booking write succeeds.
type BookingUpdated struct {
	BookingID string    `json:"booking_id"`
	UserID    string    `json:"user_id"`
	HotelID   string    `json:"hotel_id"`
	At        time.Time `json:"at"`
}
