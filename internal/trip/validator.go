package trip

import (
	"strings"

	"github.com/auhide/trips-website/internal/geo"
)

// Validator runs the cheap geographic checks that must pass before any route
// lookup is attempted. Checks run in a fixed order and the first failure
// wins; nothing is mutated on failure.
type Validator struct {
	ref *geo.Reference
}

func NewValidator(ref *geo.Reference) *Validator {
	return &Validator{ref: ref}
}

// ValidateTrip checks a domestic submission: the country must be known, both
// towns must be in it, and the towns must differ as entered.
func (v *Validator) ValidateTrip(req TripRequest) error {
	if !v.ref.CountryExists(req.Country) {
		return &UnknownCountryError{Country: req.Country}
	}
	if !v.ref.TownInCountry(req.Country, req.OriginTown) {
		return &UnknownTownError{Town: req.OriginTown, Country: req.Country}
	}
	if !v.ref.TownInCountry(req.Country, req.DestinationTown) {
		return &UnknownTownError{Town: req.DestinationTown, Country: req.Country}
	}
	if req.OriginTown == req.DestinationTown {
		return &SameLocationError{Field: "town", Value: req.OriginTown}
	}
	return nil
}

// ValidateInternationalTrip checks a two-country submission. Each country is
// checked independently, each town against its own country, and the two
// countries must name different places (compared case-insensitively, same as
// the reference lookups).
func (v *Validator) ValidateInternationalTrip(req InternationalTripRequest) error {
	if !v.ref.CountryExists(req.FirstCountry) {
		return &UnknownCountryError{Country: req.FirstCountry}
	}
	if !v.ref.CountryExists(req.SecondCountry) {
		return &UnknownCountryError{Country: req.SecondCountry}
	}
	if !v.ref.TownInCountry(req.FirstCountry, req.OriginTown) {
		return &UnknownTownError{Town: req.OriginTown, Country: req.FirstCountry}
	}
	if !v.ref.TownInCountry(req.SecondCountry, req.DestinationTown) {
		return &UnknownTownError{Town: req.DestinationTown, Country: req.SecondCountry}
	}
	if req.OriginTown == req.DestinationTown {
		return &SameLocationError{Field: "town", Value: req.OriginTown}
	}
	if strings.EqualFold(req.FirstCountry, req.SecondCountry) {
		return &SameLocationError{Field: "country", Value: req.FirstCountry}
	}
	return nil
}
