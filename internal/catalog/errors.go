package catalog

import "errors"

var (
	// ErrMalformed indicates the document could not be decoded.
	ErrMalformed = errors.New("malformed catalog document")

	// ErrInvalidCatalog indicates the document decoded but its contents are unusable.
	ErrInvalidCatalog = errors.New("invalid catalog")

	// ErrUnsupportedFormat indicates the file extension has no known encoding.
	ErrUnsupportedFormat = errors.New("unsupported catalog format")
)
