package receipt_test

import (
	"bytes"
	"testing"
	"time"

	"travelnest/internal/adapters/receipt"
	"travelnest/internal/domain"
)

func TestBuild(t *testing.T) {
	in := time.Date(2025, 3, 1, 14, 0, 0, 0, time.UTC)
	b := domain.Booking{
		ID:             "abc-123",
		UserID:         "u1",
		HotelID:        "1",
		HotelName:      "Luxury Hotel & Spa",
		CheckInDate:    in,
		CheckOutDate:   in.Add(72 * time.Hour),
		NumberOfGuests: 2,
		TotalPrice:     599.97,
		Status:         domain.BookingConfirmed,
		CreatedAt:      in.Add(-24 * time.Hour),
	}
	pdf, name, err := receipt.Build(b, "Ann Lee", 3)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if name != "booking-abc-123.pdf" {
		t.Fatalf("unexpected file name %q", name)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF-")) {
		t.Fatalf("output is not a PDF")
	}
}
