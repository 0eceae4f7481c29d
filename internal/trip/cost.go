package trip

import (
	"math"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// milesToKm converts the provider's mile figure to kilometers.
const milesToKm = 1.609344

// ComputeCost derives the persisted distance and money figures from the raw
// provider distance (miles), the fuel consumption (liters per 100 km) and the
// fuel cost (currency per liter). Every step truncates toward zero; stored
// records are checked against this exact arithmetic, so no rounding.
//
// The fuel cost is a two-decimal value (it is stored as NUMERIC(3,2)), so
// the money step runs in integer cents. Multiplying the cost as a float64
// truncates one unit low whenever the decimal product is an exact integer,
// e.g. 5000 * 1.14 / 100 is 56.999... in binary but exactly 57 in decimal.
func ComputeCost(distanceMiles float64, fuelConsumption int, fuelCost float64) (distanceKm, moneyCost int) {
	distanceKm = int(distanceMiles * milesToKm)
	fuelUsed := fuelConsumption * distanceKm
	cents := int(math.Round(fuelCost * 100))
	moneyCost = fuelUsed * cents / 10000
	return distanceKm, moneyCost
}

// DisplayName normalizes a country or town name to its title-cased display
// form. Validation always runs on the raw input; only stored and rendered
// values use this form.
func DisplayName(name string) string {
	return cases.Title(language.Und).String(strings.ToLower(strings.TrimSpace(name)))
}
