package model

import (
	"time"
)

const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"

	DocumentTypePassport      = "passport"
	DocumentTypeNationalID    = "national_id"
	DocumentTypeDriverLicense = "driver_license"
)

// Traveler is the only entity without a parent owner. Reservations copy its
// data instead of referencing it, so deleting a traveler has no effect on
// existing bookings.
type Traveler struct {
	ID               string           `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	FullName         string           `json:"full_name" bson:"fullName" validate:"required,min=2,max=120"`
	BirthDate        time.Time        `json:"birth_date" bson:"birthDate" validate:"required"`
	Gender           string           `json:"gender" bson:"gender" validate:"required,oneof=male female other"`
	DocumentType     string           `json:"document_type" bson:"documentType" validate:"required,oneof=passport national_id driver_license"`
	DocumentNumber   string           `json:"document_number" bson:"documentNumber" validate:"required,min=3,max=40"`
	Email            string           `json:"email" bson:"email" validate:"required,email"`
	ContactPhone     string           `json:"contact_phone" bson:"contactPhone" validate:"required,e164"`
	EmergencyContact EmergencyContact `json:"emergency_contact" bson:"emergencyContact" validate:"required"`
}

type EmergencyContact struct {
	Name         string `json:"name" bson:"name" validate:"required,min=2,max=120"`
	Phone        string `json:"phone" bson:"phone" validate:"required,e164"`
	Relationship string `json:"relationship" bson:"relationship" validate:"required,min=2,max=60"`
}

// Snapshot returns the value copy embedded into a reservation's guest list.
func (t Traveler) Snapshot() Traveler {
	return t
}
