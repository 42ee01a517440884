package model

import (
	"time"
)

// Room types and statuses are closed sets; persistence and validation both
// treat anything else as invalid.
const (
	RoomTypeSingle = "single"
	RoomTypeDouble = "double"
	RoomTypeSuite  = "suite"
	RoomTypeDeluxe = "deluxe"

	RoomStatusAvailable   = "available"
	RoomStatusOccupied    = "occupied"
	RoomStatusMaintenance = "maintenance"
)

type Hotel struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name        string    `json:"name" bson:"name" validate:"required,min=2,max=120"`
	City        string    `json:"city" bson:"city" validate:"required,min=2,max=80"`
	Address     string    `json:"address" bson:"address" validate:"required,min=2,max=200"`
	Description string    `json:"description" bson:"description" validate:"max=2000"`
	IsActive    bool      `json:"is_active" bson:"isActive"`
	Rooms       []Room    `json:"rooms" bson:"rooms" validate:"omitempty,dive"`
	CreatedAt   time.Time `json:"created_at" bson:"createdAt" validate:"omitempty"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updatedAt" validate:"omitempty"`
}

// Room is owned by its Hotel and keyed by RoomNumber within it. Status is
// the authoritative booking state; IsAvailable is a projection of it kept
// in sync by SetStatus so the two can never disagree in new writes.
type Room struct {
	RoomNumber    string   `json:"room_number" bson:"roomNumber" validate:"required,min=1,max=20"`
	Type          string   `json:"type" bson:"type" validate:"required,oneof=single double suite deluxe"`
	PricePerNight Money    `json:"price_per_night" bson:"pricePerNight"`
	Taxes         Money    `json:"taxes" bson:"taxes"`
	Capacity      int      `json:"capacity" bson:"capacity" validate:"required,min=1,max=20"`
	IsActive      bool     `json:"is_active" bson:"isActive"`
	IsAvailable   bool     `json:"is_available" bson:"isAvailable"`
	Status        string   `json:"status" bson:"status" validate:"required,oneof=available occupied maintenance"`
	Amenities     []string `json:"amenities" bson:"amenities" validate:"omitempty,dive,min=1,max=60"`
}

func (r *Room) SetStatus(status string) {
	r.Status = status
	r.IsAvailable = status == RoomStatusAvailable
}

// FindRoom returns the room with the given number, or nil. Room numbers are
// unique per hotel among both active and inactive rooms.
func (h *Hotel) FindRoom(roomNumber string) *Room {
	for i := range h.Rooms {
		if h.Rooms[i].RoomNumber == roomNumber {
			return &h.Rooms[i]
		}
	}
	return nil
}

func (h *Hotel) HasRoom(roomNumber string) bool {
	return h.FindRoom(roomNumber) != nil
}

type HotelUpdate struct {
	Name        string `json:"name,omitempty" validate:"omitempty,min=2,max=120"`
	City        string `json:"city,omitempty" validate:"omitempty,min=2,max=80"`
	Address     string `json:"address,omitempty" validate:"omitempty,min=2,max=200"`
	Description string `json:"description,omitempty" validate:"omitempty,max=2000"`
	IsActive    *bool  `json:"is_active,omitempty"`
}
