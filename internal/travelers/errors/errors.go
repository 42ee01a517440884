package errors

import "errors"

var (
	ErrNotFound  = errors.New("traveler not found")
	ErrInvalidID = errors.New("invalid traveler ID")
)
