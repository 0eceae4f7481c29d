package trip

import (
	"context"
	"errors"

	"github.com/auhide/trips-website/internal/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the postgres error code for a unique constraint breach.
const uniqueViolation = "23505"

// Repository persists trips. The composite unique constraint on a user's
// route is enforced at the storage layer. Concurrent submissions of the
// same route race on the constraint and at most one wins.
type Repository struct {
	db db.Querier
}

func NewRepository(db db.Querier) *Repository {
	return &Repository{db: db}
}

func (r *Repository) SaveTrip(ctx context.Context, t Trip) (Trip, error) {
	t.ID = uuid.NewString()
	row := r.db.QueryRow(ctx, `
		INSERT INTO trips (id, user_id, country, origin_town, destination_town, fuel_cost, fuel_consumption, distance_km, money_cost, travel_time)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING created_at
	`, t.ID, t.UserID, t.Country, t.OriginTown, t.DestinationTown, t.FuelCost, t.FuelConsumption, t.DistanceKm, t.MoneyCost, t.TravelTime)
	if err := row.Scan(&t.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return Trip{}, ErrDuplicateTrip
		}
		return Trip{}, err
	}
	return t, nil
}

func (r *Repository) ListTrips(ctx context.Context, userID string) ([]Trip, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, country, origin_town, destination_town, fuel_cost, fuel_consumption, distance_km, money_cost, travel_time, created_at
		FROM trips WHERE user_id=$1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []Trip
	for rows.Next() {
		var t Trip
		if err := rows.Scan(&t.ID, &t.UserID, &t.Country, &t.OriginTown, &t.DestinationTown, &t.FuelCost, &t.FuelConsumption, &t.DistanceKm, &t.MoneyCost, &t.TravelTime, &t.CreatedAt); err != nil {
			return nil, err
		}
		trips = append(trips, t)
	}
	return trips, rows.Err()
}

// DeleteTrip removes a trip owned by userID. A missing trip yields
// ErrNotFound, someone else's trip ErrForbidden.
func (r *Repository) DeleteTrip(ctx context.Context, id, userID string) error {
	row := r.db.QueryRow(ctx, `SELECT user_id FROM trips WHERE id=$1`, id)
	var owner string
	if err := row.Scan(&owner); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if owner != userID {
		return ErrForbidden
	}
	_, err := r.db.Exec(ctx, `DELETE FROM trips WHERE id=$1`, id)
	return err
}

func (r *Repository) SaveInternationalTrip(ctx context.Context, t InternationalTrip) (InternationalTrip, error) {
	t.ID = uuid.NewString()
	row := r.db.QueryRow(ctx, `
		INSERT INTO international_trips (id, user_id, first_country, origin_town, second_country, destination_town, fuel_cost, fuel_consumption, distance_km, money_cost, travel_time)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING created_at
	`, t.ID, t.UserID, t.FirstCountry, t.OriginTown, t.SecondCountry, t.DestinationTown, t.FuelCost, t.FuelConsumption, t.DistanceKm, t.MoneyCost, t.TravelTime)
	if err := row.Scan(&t.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return InternationalTrip{}, ErrDuplicateTrip
		}
		return InternationalTrip{}, err
	}
	return t, nil
}

func (r *Repository) ListInternationalTrips(ctx context.Context, userID string) ([]InternationalTrip, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, first_country, origin_town, second_country, destination_town, fuel_cost, fuel_consumption, distance_km, money_cost, travel_time, created_at
		FROM international_trips WHERE user_id=$1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []InternationalTrip
	for rows.Next() {
		var t InternationalTrip
		if err := rows.Scan(&t.ID, &t.UserID, &t.FirstCountry, &t.OriginTown, &t.SecondCountry, &t.DestinationTown, &t.FuelCost, &t.FuelConsumption, &t.DistanceKm, &t.MoneyCost, &t.TravelTime, &t.CreatedAt); err != nil {
			return nil, err
		}
		trips = append(trips, t)
	}
	return trips, rows.Err()
}

func (r *Repository) DeleteInternationalTrip(ctx context.Context, id, userID string) error {
	row := r.db.QueryRow(ctx, `SELECT user_id FROM international_trips WHERE id=$1`, id)
	var owner string
	if err := row.Scan(&owner); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if owner != userID {
		return ErrForbidden
	}
	_, err := r.db.Exec(ctx, `DELETE FROM international_trips WHERE id=$1`, id)
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
