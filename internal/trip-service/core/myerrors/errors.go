package myerrors

import "errors"

var (
	ErrValidation      = errors.New("invalid request")
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("forbidden")
	ErrTripNotFound    = errors.New("trip not found")
	ErrInviteNotFound  = errors.New("invitation not found")
	ErrAlreadyDecided  = errors.New("invitation already processed")
	ErrDependency      = errors.New("upstream dependency failed")
)
