package domain

import "errors"

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates the input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates a missing or invalid download token
	ErrUnauthorized = errors.New("unauthorized")

	// ErrTokenExpired indicates a download token has expired
	ErrTokenExpired = errors.New("token expired")

	// ErrTooLarge indicates an upload exceeded the configured size limit
	ErrTooLarge = errors.New("upload too large")
)
