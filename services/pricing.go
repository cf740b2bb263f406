package services

import (
	"math"
	"time"
)

// Nights returns the chargeable night count for a stay. Partial days round up
// and every stay is charged at least one night, including same-day or inverted
// date pairs (the caller is not trusted to order them).
func Nights(checkIn, checkOut time.Time) int {
	diff := checkOut.Sub(checkIn)
	if diff < 0 {
		diff = -diff
	}
	nights := int(math.Ceil(diff.Hours() / 24))
	if nights < 1 {
		nights = 1
	}
	return nights
}

// TotalAmount computes sum(rates) x nights for the given stay. Pure; both the
// booking-creation and order-creation paths call this, and the server-side
// result is authoritative over anything the client computed.
func TotalAmount(checkIn, checkOut time.Time, rates []float64) float64 {
	nights := Nights(checkIn, checkOut)
	var sum float64
	for _, r := range rates {
		sum += r
	}
	return sum * float64(nights)
}
