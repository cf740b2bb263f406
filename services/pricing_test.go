package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestNights(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  string
		checkOut string
		want     int
	}{
		{"three nights", "2026-03-01", "2026-03-04", 3},
		{"one night", "2026-03-01", "2026-03-02", 1},
		{"same day floors to one", "2026-03-01", "2026-03-01", 1},
		{"reversed dates still positive", "2026-03-04", "2026-03-01", 3},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Nights(day(tc.checkIn), day(tc.checkOut)))
		})
	}
}

func TestNightsPartialDayRoundsUp(t *testing.T) {
	checkIn := time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 3, 3, 11, 0, 0, 0, time.UTC)
	// 45 hours spans two calendar nights
	assert.Equal(t, 2, Nights(checkIn, checkOut))
}

func TestTotalAmount(t *testing.T) {
	checkIn := day("2026-03-01")
	checkOut := day("2026-03-04")

	assert.Equal(t, 3*(100.0+150.0), TotalAmount(checkIn, checkOut, []float64{100, 150}))
	assert.Equal(t, 0.0, TotalAmount(checkIn, checkOut, nil))
	// same-day stay still bills one night
	assert.Equal(t, 80.0, TotalAmount(checkIn, checkIn, []float64{80}))
}
