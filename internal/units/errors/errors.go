package errors

import "errors"

var (
	ErrNotFound = errors.New("unit not found")

	ErrInvalidID = errors.New("invalid unit ID format")

	ErrDuplicatePlate = errors.New("unit with this plate already exists")

	ErrHasActiveBookings = errors.New("unit has active bookings")
)
