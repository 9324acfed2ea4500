package seed

import "errors"

var (
	// ErrNoCuisines indicates the catalog has an empty cuisine list.
	ErrNoCuisines = errors.New("catalog has no cuisines")

	// ErrUnknownCuisine indicates a catalog cuisine has no vocabulary table.
	ErrUnknownCuisine = errors.New("no vocabulary for cuisine")

	// ErrInvalidID indicates an existing food ID is not a decimal integer.
	ErrInvalidID = errors.New("food id is not an integer")

	// ErrMissingCuisine indicates an existing food has no cuisine.
	ErrMissingCuisine = errors.New("food has no cuisine")

	// ErrInvalidCount indicates a negative number of foods was requested.
	ErrInvalidCount = errors.New("count must be non-negative")

	// ErrInvalidConfig indicates the generator configuration is unusable.
	ErrInvalidConfig = errors.New("invalid generator config")
)
