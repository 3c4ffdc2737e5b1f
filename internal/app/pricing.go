package app

import "time"

// Nights is the whole-day difference between check-in and check-out, never negative.
// A check-out on or before check-in yields 0; nothing rejects such a stay.
func Nights(checkIn, checkOut time.Time) int {
	n := int(checkOut.Sub(checkIn) / (24 * time.Hour))
	if n < 0 {
		return 0
	}
	return n
}

func TotalPrice(nightlyRate float64, nights int) float64 {
	if nights < 0 {
		nights = 0
	}
	return nightlyRate * float64(nights)
}
