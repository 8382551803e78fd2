// Package errorcodes defines the wire error codes of the key wrap service
// using a structured type. KWError holds the two-character code and a
// human-readable description.
package errorcodes

import (
	"errors"

	"github.com/andrei-cloud/go_keywrap/pkg/keywrap"
)

// Predefined service error instances.
var (
	Err00 = KWError{"00", "No error"}
	Err01 = KWError{"01", "Invalid KEK length, must be 16, 24 or 32 bytes"}
	Err02 = KWError{"02", "Invalid data length, must be a positive multiple of 8 bytes"}
	Err03 = KWError{"03", "Data too large for the supplied KEK"}
	Err04 = KWError{"04", "Integrity check failed: wrong KEK, corrupted or tampered data"}
	Err15 = KWError{
		"15",
		"Invalid input data (invalid format, invalid characters, or not enough data provided)",
	}
	Err51 = KWError{"51", "Invalid message header"}
)

// KWError represents a service error with its code and description.
type KWError struct {
	Code        string // two-character error code
	Description string // human-readable description
}

// Error implements the Go error interface: "<Code>: <Description>".
func (e KWError) Error() string {
	return e.Code + ": " + e.Description
}

// CodeOnly returns only the error code (e.g., "04"), for embedding in responses.
func (e KWError) CodeOnly() string {
	return e.Code
}

// FromKeywrapError maps a pkg/keywrap error to its wire code.
func FromKeywrapError(err error) KWError {
	switch {
	case err == nil:
		return Err00
	case errors.Is(err, keywrap.ErrInvalidKEKLength):
		return Err01
	case errors.Is(err, keywrap.ErrInvalidDataLength):
		return Err02
	case errors.Is(err, keywrap.ErrDataTooLarge):
		return Err03
	case errors.Is(err, keywrap.ErrIntegrityCheckFailed):
		return Err04
	default:
		return Err15
	}
}
