package errors

import "errors"

var (
	ErrNotFound = errors.New("user not found")

	ErrDuplicateEmail = errors.New("user with this email already exists")

	ErrInvalidToken = errors.New("invalid token")

	ErrExpiredToken = errors.New("token expired")

	ErrInvalidCredentials = errors.New("invalid credentials")
)
