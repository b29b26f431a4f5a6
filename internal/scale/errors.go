package scale

import "errors"

var (
	// ErrNoData is returned when a scale's domain would be computed over an
	// empty record set.
	ErrNoData = errors.New("no data")

	// ErrUnknownScheme is returned for a colour scheme name that is not registered.
	ErrUnknownScheme = errors.New("unknown colour scheme")
)
