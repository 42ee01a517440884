package model

import (
	"time"
)

const (
	ReservationStatusPending   = "pending"
	ReservationStatusConfirmed = "confirmed"
	ReservationStatusCancelled = "cancelled"
	ReservationStatusCompleted = "completed"
)

// Reservation links a room, a date range and guest snapshots. Guests are
// copied at booking time; later edits to the Traveler records never reach
// past reservations.
type Reservation struct {
	ID           string     `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	HotelID      string     `json:"hotel_id" bson:"hotelId" validate:"required,mongodb"`
	RoomNumber   string     `json:"room_number" bson:"roomNumber" validate:"required,min=1,max=20"`
	CheckInDate  time.Time  `json:"check_in_date" bson:"checkInDate" validate:"required"`
	CheckOutDate time.Time  `json:"check_out_date" bson:"checkOutDate" validate:"required,gtfield=CheckInDate"`
	Guests       []Traveler `json:"guests" bson:"guests" validate:"required,min=1,dive"`
	TotalPrice   Money      `json:"total_price" bson:"totalPrice"`
	Status       string     `json:"status" bson:"status" validate:"required,oneof=pending confirmed cancelled completed"`
	CreatedAt    time.Time  `json:"created_at" bson:"createdAt" validate:"omitempty"`
}

// ReservationRequest is the booking input: the room coordinates, the stay
// window and the full guest details to snapshot.
type ReservationRequest struct {
	HotelID      string     `json:"hotel_id" validate:"required,mongodb"`
	RoomNumber   string     `json:"room_number" validate:"required,min=1,max=20"`
	CheckInDate  time.Time  `json:"check_in_date" validate:"required"`
	CheckOutDate time.Time  `json:"check_out_date" validate:"required"`
	Guests       []Traveler `json:"guests" validate:"required,min=1,dive"`
}

// Nights counts whole days between check-in and check-out at date
// precision. A stay of one night returns 1; a same-day range returns 0.
func (r *ReservationRequest) Nights() int64 {
	in := truncateToDate(r.CheckInDate)
	out := truncateToDate(r.CheckOutDate)
	return int64(out.Sub(in).Hours() / 24)
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SearchCriteria filters hotels by city and by having at least one room
// that fits the party. Dates travel with the request for availability
// semantics even though the match itself is capacity + availability.
type SearchCriteria struct {
	City         string    `json:"city" validate:"required,min=2,max=80"`
	CheckInDate  time.Time `json:"check_in_date" validate:"required"`
	CheckOutDate time.Time `json:"check_out_date" validate:"required"`
	GuestsCount  int       `json:"guests_count" validate:"required,min=1,max=20"`
}
