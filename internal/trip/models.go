package trip

import "time"

// TripRequest is a submission for a trip inside a single country. Country and
// town names are validated against the geo reference before anything else
// happens; fuel parameters are range-checked by the handler layer.
type TripRequest struct {
	Country         string  `json:"country" validate:"required"`
	OriginTown      string  `json:"origin_town" validate:"required"`
	DestinationTown string  `json:"destination_town" validate:"required"`
	FuelCost        float64 `json:"fuel_cost" validate:"gt=0,lte=9.99"`
	FuelConsumption int     `json:"fuel_consumption" validate:"min=1,max=100"`
}

// InternationalTripRequest is a submission for a trip between two countries.
type InternationalTripRequest struct {
	FirstCountry    string  `json:"first_country" validate:"required"`
	OriginTown      string  `json:"origin_town" validate:"required"`
	SecondCountry   string  `json:"second_country" validate:"required"`
	DestinationTown string  `json:"destination_town" validate:"required"`
	FuelCost        float64 `json:"fuel_cost" validate:"gt=0,lte=9.99"`
	FuelConsumption int     `json:"fuel_consumption" validate:"min=1,max=100"`
}

// Trip is a persisted journey. Names are stored in their title-cased display
// form; DistanceKm, MoneyCost and TravelTime come from the route lookup.
// Records are never mutated after creation.
type Trip struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	Country         string    `json:"country"`
	OriginTown      string    `json:"origin_town"`
	DestinationTown string    `json:"destination_town"`
	FuelCost        float64   `json:"fuel_cost"`
	FuelConsumption int       `json:"fuel_consumption"`
	DistanceKm      int       `json:"distance_km"`
	MoneyCost       int       `json:"money_cost"`
	TravelTime      string    `json:"travel_time"`
	CreatedAt       time.Time `json:"created_at"`
}

// InternationalTrip carries two distinct countries, the origin town belonging
// to the first and the destination town to the second.
type InternationalTrip struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	FirstCountry    string    `json:"first_country"`
	OriginTown      string    `json:"origin_town"`
	SecondCountry   string    `json:"second_country"`
	DestinationTown string    `json:"destination_town"`
	FuelCost        float64   `json:"fuel_cost"`
	FuelConsumption int       `json:"fuel_consumption"`
	DistanceKm      int       `json:"distance_km"`
	MoneyCost       int       `json:"money_cost"`
	TravelTime      string    `json:"travel_time"`
	CreatedAt       time.Time `json:"created_at"`
}
