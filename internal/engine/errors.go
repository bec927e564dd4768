package engine

import "errors"

// Sentinel errors for the request validation path. All of them are
// recoverable: the HTTP layer maps them to 4xx responses and the CLI prints
// them, nothing here ever crashes a request.
var (
	ErrInvalidLocationInput = errors.New("invalid location input")
	ErrUnknownPostalCode    = errors.New("unknown postal code")
	ErrInvalidCoordinate    = errors.New("invalid coordinate")
	ErrInvalidRadius        = errors.New("invalid radius")
	ErrInsufficientData     = errors.New("insufficient data")
)
