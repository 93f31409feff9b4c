package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReservationOverlaps(t *testing.T) {
	base := time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC)
	res := &Reservation{
		StartTime: base,
		EndTime:   base.Add(time.Hour),
		Status:    ReservationStatusConfirmed,
	}

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{"identical interval", base, base.Add(time.Hour), true},
		{"contained", base.Add(15 * time.Minute), base.Add(30 * time.Minute), true},
		{"overlaps start", base.Add(-30 * time.Minute), base.Add(30 * time.Minute), true},
		{"overlaps end", base.Add(30 * time.Minute), base.Add(90 * time.Minute), true},
		{"touches at start", base.Add(-time.Hour), base, false},
		{"touches at end", base.Add(time.Hour), base.Add(2 * time.Hour), false},
		{"fully before", base.Add(-2 * time.Hour), base.Add(-time.Hour), false},
		{"fully after", base.Add(2 * time.Hour), base.Add(3 * time.Hour), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, res.Overlaps(tc.start, tc.end))
		})
	}
}

func TestCancelledReservationNeverOverlaps(t *testing.T) {
	base := time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC)
	res := &Reservation{
		StartTime: base,
		EndTime:   base.Add(time.Hour),
		Status:    ReservationStatusCancelled,
	}

	assert.False(t, res.Overlaps(base, base.Add(time.Hour)))
}

func TestEffectiveLimitNormalizesToOne(t *testing.T) {
	for _, limit := range []int{-3, 0, 1} {
		c := &BookingCalendar{ConcurrencyLimit: limit}
		assert.GreaterOrEqual(t, c.EffectiveLimit(), 1)
	}

	c := &BookingCalendar{ConcurrencyLimit: 4}
	assert.Equal(t, 4, c.EffectiveLimit())
}
