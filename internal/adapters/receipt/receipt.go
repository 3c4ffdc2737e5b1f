// Package receipt renders a booking confirmation as PDF.
package receipt

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"

	"travelnest/internal/domain"
)

const dateLayout = "Jan 2, 2006"

// Build returns the PDF bytes and a download file name.
func Build(b domain.Booking, guest string, nights int) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Booking Confirmation", false)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "TRAVELNEST BOOKING CONFIRMATION")
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Booking ID   : %s", b.ID),
		fmt.Sprintf("Guest        : %s", safe(guest, "-")),
		fmt.Sprintf("Hotel        : %s", safe(b.HotelName, "-")),
		fmt.Sprintf("Check-in     : %s", b.CheckInDate.Format(dateLayout)),
		fmt.Sprintf("Check-out    : %s", b.CheckOutDate.Format(dateLayout)),
		fmt.Sprintf("Nights       : %d", nights),
		fmt.Sprintf("Guests       : %d", b.NumberOfGuests),
		fmt.Sprintf("Status       : %s", strings.ToUpper(string(b.Status))),
		fmt.Sprintf("Booked on    : %s", b.CreatedAt.Format("2006-01-02 15:04")),
	}
	for _, s := range lines {
		pdf.Cell(0, 7, tr(s))
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, fmt.Sprintf("Total: $%.2f", b.TotalPrice))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Payment is settled at the hotel. Please show this confirmation at check-in.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), fmt.Sprintf("booking-%s.pdf", b.ID), nil
}

func safe(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
