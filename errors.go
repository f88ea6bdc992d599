package symbology

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownSymbology is returned when no symbology is registered
	// under the requested identifier.
	ErrUnknownSymbology = errors.New("unknown symbology")

	// ErrInvalidCharacter is returned when the payload contains a
	// character the symbology cannot represent.
	ErrInvalidCharacter = errors.New("invalid character")

	// ErrInvalidLength is returned when the payload length is outside the
	// symbology's fixed bounds.
	ErrInvalidLength = errors.New("invalid length")

	// ErrEmptyPayload is returned when the payload is empty.
	ErrEmptyPayload = errors.New("empty payload")

	// ErrCapacityExceeded is returned when the payload does not fit the
	// largest symbol the symbology can produce.
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrUnsupportedOption is returned when an encode option is not
	// recognized by the symbology, or carries a value out of range.
	ErrUnsupportedOption = errors.New("unsupported option")
)

func wrapUnknown(name string) error {
	return fmt.Errorf("no symbology registered for %q: %w", name, ErrUnknownSymbology)
}
