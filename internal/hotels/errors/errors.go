package errors

import "errors"

var (
	ErrNotFound = errors.New("hotel not found")

	ErrInvalidID = errors.New("invalid hotel ID format")

	ErrRoomNotFound = errors.New("room not found in hotel")

	ErrDuplicateRoomNumber = errors.New("room number already exists in hotel")
)
