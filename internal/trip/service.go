package trip

import (
	"context"

	"github.com/auhide/trips-website/internal/geo"
	"github.com/auhide/trips-website/internal/routing"
)

// Service runs the submission pipeline: validate, route, compute, persist.
// The route lookup is the only blocking external call; when anything fails,
// nothing is stored.
type Service struct {
	ref       *geo.Reference
	validator *Validator
	router    routing.Router
	repo      *Repository
}

func NewService(ref *geo.Reference, router routing.Router, repo *Repository) *Service {
	return &Service{
		ref:       ref,
		validator: NewValidator(ref),
		router:    router,
		repo:      repo,
	}
}

func (s *Service) CreateTrip(ctx context.Context, userID string, req TripRequest) (Trip, error) {
	if err := s.validator.ValidateTrip(req); err != nil {
		return Trip{}, err
	}

	country := s.ref.DisplayName(req.Country)
	res, err := s.router.Route(ctx, label(req.OriginTown, country), label(req.DestinationTown, country))
	if err != nil {
		return Trip{}, err
	}

	distanceKm, moneyCost := ComputeCost(res.DistanceMiles, req.FuelConsumption, req.FuelCost)
	return s.repo.SaveTrip(ctx, Trip{
		UserID:          userID,
		Country:         country,
		OriginTown:      DisplayName(req.OriginTown),
		DestinationTown: DisplayName(req.DestinationTown),
		FuelCost:        req.FuelCost,
		FuelConsumption: req.FuelConsumption,
		DistanceKm:      distanceKm,
		MoneyCost:       moneyCost,
		TravelTime:      res.FormattedTime,
	})
}

func (s *Service) CreateInternationalTrip(ctx context.Context, userID string, req InternationalTripRequest) (InternationalTrip, error) {
	if err := s.validator.ValidateInternationalTrip(req); err != nil {
		return InternationalTrip{}, err
	}

	first := s.ref.DisplayName(req.FirstCountry)
	second := s.ref.DisplayName(req.SecondCountry)
	res, err := s.router.Route(ctx, label(req.OriginTown, first), label(req.DestinationTown, second))
	if err != nil {
		return InternationalTrip{}, err
	}

	distanceKm, moneyCost := ComputeCost(res.DistanceMiles, req.FuelConsumption, req.FuelCost)
	return s.repo.SaveInternationalTrip(ctx, InternationalTrip{
		UserID:          userID,
		FirstCountry:    first,
		OriginTown:      DisplayName(req.OriginTown),
		SecondCountry:   second,
		DestinationTown: DisplayName(req.DestinationTown),
		FuelCost:        req.FuelCost,
		FuelConsumption: req.FuelConsumption,
		DistanceKm:      distanceKm,
		MoneyCost:       moneyCost,
		TravelTime:      res.FormattedTime,
	})
}

func (s *Service) ListTrips(ctx context.Context, userID string) ([]Trip, error) {
	return s.repo.ListTrips(ctx, userID)
}

func (s *Service) ListInternationalTrips(ctx context.Context, userID string) ([]InternationalTrip, error) {
	return s.repo.ListInternationalTrips(ctx, userID)
}

func (s *Service) DeleteTrip(ctx context.Context, id, userID string) error {
	return s.repo.DeleteTrip(ctx, id, userID)
}

func (s *Service) DeleteInternationalTrip(ctx context.Context, id, userID string) error {
	return s.repo.DeleteInternationalTrip(ctx, id, userID)
}

// label builds the "town,Country" location string the route provider expects.
// The town is passed as entered; the country uses its reference display form.
func label(town, country string) string {
	return town + "," + country
}
