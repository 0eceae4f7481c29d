// Package routing wraps the external directions API that computes distance
// and travel time between two towns.
package routing

import (
	"context"
	"errors"
)

var (
	// ErrRouteNotDrivable is returned when the provider reports that no
	// viable driving route exists between the two locations. This is a
	// user-correctable condition, not a provider outage.
	ErrRouteNotDrivable = errors.New("no drivable route between the locations")

	// ErrProviderUnavailable is returned on transport failures, timeouts and
	// malformed responses. Callers may treat it as transient and retry.
	ErrProviderUnavailable = errors.New("route provider unavailable")
)

// Result is the raw outcome of a successful route lookup. The provider
// reports distance in miles; conversion happens in the cost calculator.
type Result struct {
	DistanceMiles float64 `json:"distance_miles"`
	FormattedTime string  `json:"formatted_time"`
	StatusCode    int     `json:"status_code"`
}

// Router computes a driving route between two "town,Country" labels.
type Router interface {
	Route(ctx context.Context, origin, destination string) (*Result, error)
}
