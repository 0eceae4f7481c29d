package trip

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateTrip is returned when a user already has a trip with the
	// same route. The database constraint is the authoritative check.
	ErrDuplicateTrip = errors.New("trip already recorded")

	// ErrNotFound is returned when the requested trip does not exist.
	ErrNotFound = errors.New("trip not found")

	// ErrForbidden is returned when a user tries to delete a trip owned by
	// someone else.
	ErrForbidden = errors.New("trip belongs to another user")
)

// UnknownCountryError reports a country absent from the reference data set.
type UnknownCountryError struct {
	Country string
}

func (e *UnknownCountryError) Error() string {
	return fmt.Sprintf("a country with the name of %s does not exist in our data set", e.Country)
}

// UnknownTownError reports a town that is not recorded under the given
// country.
type UnknownTownError struct {
	Town    string
	Country string
}

func (e *UnknownTownError) Error() string {
	return fmt.Sprintf("%s does not exist or is not in %s", e.Town, e.Country)
}

// SameLocationError reports that two locations which must differ are equal.
// Field is "town" or "country".
type SameLocationError struct {
	Field string
	Value string
}

func (e *SameLocationError) Error() string {
	return fmt.Sprintf("the %ss have to be different, got %s for both", e.Field, e.Value)
}
