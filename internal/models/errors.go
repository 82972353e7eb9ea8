package models

import "errors"

// Common errors used throughout the application
var (
	ErrEventNotFound        = errors.New("event not found")
	ErrBookingNotFound      = errors.New("booking not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrInsufficientCapacity = errors.New("insufficient ticket capacity")
	ErrUnauthorized         = errors.New("unauthorized access")
	ErrInvalidInput         = errors.New("invalid input")
	ErrDuplicateEmail       = errors.New("email already registered")
	ErrVerificationFailed   = errors.New("payment signature verification failed")
)
