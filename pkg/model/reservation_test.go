package model

import (
	"testing"
	"time"
)

func TestNights_DatePrecision(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		want     int64
	}{
		{
			name:     "three nights",
			checkIn:  time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
			checkOut: time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC),
			want:     3,
		},
		{
			name:     "same day is zero nights",
			checkIn:  time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC),
			checkOut: time.Date(2026, 9, 1, 21, 0, 0, 0, time.UTC),
			want:     0,
		},
		{
			name:     "time of day does not shorten the stay",
			checkIn:  time.Date(2026, 9, 1, 23, 30, 0, 0, time.UTC),
			checkOut: time.Date(2026, 9, 2, 0, 30, 0, 0, time.UTC),
			want:     1,
		},
		{
			name:     "inverted range is negative",
			checkIn:  time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC),
			checkOut: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
			want:     -3,
		},
		{
			name:     "timezones are normalized to UTC dates",
			checkIn:  time.Date(2026, 9, 1, 22, 0, 0, 0, time.FixedZone("UTC-5", -5*3600)),
			checkOut: time.Date(2026, 9, 3, 1, 0, 0, 0, time.UTC),
			want:     1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &ReservationRequest{
				CheckInDate:  tt.checkIn,
				CheckOutDate: tt.checkOut,
			}
			if got := req.Nights(); got != tt.want {
				t.Errorf("Nights() = %d, want %d", got, tt.want)
			}
		})
	}
}
