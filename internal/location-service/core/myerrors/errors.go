package myerrors

import "errors"

var (
	ErrValidation          = errors.New("invalid request")
	ErrUnauthenticated     = errors.New("authentication required")
	ErrForbidden           = errors.New("forbidden")
	ErrParticipantNotFound = errors.New("participant not found")
	ErrTripNotFound        = errors.New("trip not found")
)
