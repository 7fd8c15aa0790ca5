package errors

import "errors"

var (
	ErrNotFound = errors.New("customer not found")

	ErrDuplicateEmail = errors.New("customer with this email already exists")
)
