package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrDateConflict = errors.New("booking dates conflict with an existing booking")

	ErrInvalidDateRange = errors.New("end date must be after start date")

	ErrSlotLocked = errors.New("slot is being booked by another request")
)
