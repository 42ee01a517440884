package errors

import "errors"

var (
	ErrNotFound                = errors.New("reservation not found")
	ErrInvalidID               = errors.New("invalid reservation ID")
	ErrHotelNotFound           = errors.New("hotel not found")
	ErrInvalidHotelID          = errors.New("invalid hotel ID")
	ErrRoomNotBookable         = errors.New("room is not bookable")
	ErrRoomTaken               = errors.New("room was taken by a concurrent booking")
	ErrInvalidDateRange        = errors.New("check-out must be after check-in")
	ErrInvalidStatusTransition = errors.New("invalid reservation status transition")
)
