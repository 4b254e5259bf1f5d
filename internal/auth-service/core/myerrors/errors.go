package myerrors

import "errors"

var (
	ErrValidation      = errors.New("invalid request")
	ErrUnauthenticated = errors.New("authentication required")

	ErrFieldIsEmpty    = errors.New("field is empty")
	ErrUnknownEmail    = errors.New("unknown email")
	ErrUnknownUser     = errors.New("unknown user")
	ErrPasswordUnknown = errors.New("unknown password")
	ErrEmailRegistered = errors.New("email already registered")
)
