package trip

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
)

var errQuery = errors.New("query error")

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	t.Cleanup(mock.Close)
	return mock
}

func TestSaveTrip(t *testing.T) {
	mock := newMockPool(t)
	createdAt := time.Now()

	mock.ExpectQuery(`INSERT INTO trips`).
		WithArgs(pgxmock.AnyArg(), "user-1", "Bulgaria", "Sofia", "Plovdiv", 1.50, 5, 16, 1, "00:12:34").
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(createdAt))

	repo := NewRepository(mock)
	saved, err := repo.SaveTrip(context.Background(), Trip{
		UserID:          "user-1",
		Country:         "Bulgaria",
		OriginTown:      "Sofia",
		DestinationTown: "Plovdiv",
		FuelCost:        1.50,
		FuelConsumption: 5,
		DistanceKm:      16,
		MoneyCost:       1,
		TravelTime:      "00:12:34",
	})
	if err != nil {
		t.Fatalf("save trip: %v", err)
	}
	if saved.ID == "" {
		t.Fatalf("expected generated id")
	}
	if !saved.CreatedAt.Equal(createdAt) {
		t.Fatalf("expected created_at from database")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSaveTripDuplicate(t *testing.T) {
	mock := newMockPool(t)

	mock.ExpectQuery(`INSERT INTO trips`).
		WithArgs(pgxmock.AnyArg(), "user-1", "Bulgaria", "Sofia", "Plovdiv", 1.50, 5, 16, 1, "00:12:34").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "trips_user_route_unique"})

	repo := NewRepository(mock)
	_, err := repo.SaveTrip(context.Background(), Trip{
		UserID:          "user-1",
		Country:         "Bulgaria",
		OriginTown:      "Sofia",
		DestinationTown: "Plovdiv",
		FuelCost:        1.50,
		FuelConsumption: 5,
		DistanceKm:      16,
		MoneyCost:       1,
		TravelTime:      "00:12:34",
	})
	if !errors.Is(err, ErrDuplicateTrip) {
		t.Fatalf("expected ErrDuplicateTrip, got %v", err)
	}
}

func TestSaveTripSameRouteDifferentUsers(t *testing.T) {
	mock := newMockPool(t)

	// Uniqueness is scoped per user; the identical route for another user
	// is a fresh insert, not a duplicate.
	for _, userID := range []string{"user-1", "user-2"} {
		mock.ExpectQuery(`INSERT INTO trips`).
			WithArgs(pgxmock.AnyArg(), userID, "Bulgaria", "Sofia", "Plovdiv", 1.50, 5, 16, 1, "00:12:34").
			WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
	}

	repo := NewRepository(mock)
	for _, userID := range []string{"user-1", "user-2"} {
		_, err := repo.SaveTrip(context.Background(), Trip{
			UserID:          userID,
			Country:         "Bulgaria",
			OriginTown:      "Sofia",
			DestinationTown: "Plovdiv",
			FuelCost:        1.50,
			FuelConsumption: 5,
			DistanceKm:      16,
			MoneyCost:       1,
			TravelTime:      "00:12:34",
		})
		if err != nil {
			t.Fatalf("save trip for %s: %v", userID, err)
		}
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSaveTripOtherError(t *testing.T) {
	mock := newMockPool(t)

	mock.ExpectQuery(`INSERT INTO trips`).
		WithArgs(pgxmock.AnyArg(), "user-1", "", "", "", 0.0, 0, 0, 0, "").
		WillReturnError(errQuery)

	repo := NewRepository(mock)
	_, err := repo.SaveTrip(context.Background(), Trip{UserID: "user-1"})
	if err == nil || errors.Is(err, ErrDuplicateTrip) {
		t.Fatalf("expected plain error, got %v", err)
	}
}

func TestListTripsOrdered(t *testing.T) {
	mock := newMockPool(t)

	newer := time.Now()
	older := newer.Add(-time.Hour)

	mock.ExpectQuery(`SELECT id, user_id, country, origin_town, destination_town, fuel_cost, fuel_consumption, distance_km, money_cost, travel_time, created_at`).
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "country", "origin_town", "destination_town", "fuel_cost", "fuel_consumption", "distance_km", "money_cost", "travel_time", "created_at"}).
			AddRow("trip-2", "user-1", "Bulgaria", "Sofia", "Varna", 1.50, 5, 300, 22, "04:00:00", newer).
			AddRow("trip-1", "user-1", "Bulgaria", "Sofia", "Plovdiv", 1.50, 5, 16, 1, "00:12:34", older))

	repo := NewRepository(mock)
	trips, err := repo.ListTrips(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("list trips: %v", err)
	}
	if len(trips) != 2 {
		t.Fatalf("expected 2 trips, got %d", len(trips))
	}
	if !trips[0].CreatedAt.After(trips[1].CreatedAt) {
		t.Fatalf("expected most recent trip first")
	}
}

func TestDeleteTrip(t *testing.T) {
	mock := newMockPool(t)

	mock.ExpectQuery(`SELECT user_id FROM trips`).
		WithArgs("trip-1").
		WillReturnRows(pgxmock.NewRows([]string{"user_id"}).AddRow("user-1"))
	mock.ExpectExec(`DELETE FROM trips`).
		WithArgs("trip-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	repo := NewRepository(mock)
	if err := repo.DeleteTrip(context.Background(), "trip-1", "user-1"); err != nil {
		t.Fatalf("delete trip: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDeleteTripNotFound(t *testing.T) {
	mock := newMockPool(t)

	mock.ExpectQuery(`SELECT user_id FROM trips`).
		WithArgs("trip-404").
		WillReturnError(pgx.ErrNoRows)

	repo := NewRepository(mock)
	if err := repo.DeleteTrip(context.Background(), "trip-404", "user-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteTripForbidden(t *testing.T) {
	mock := newMockPool(t)

	mock.ExpectQuery(`SELECT user_id FROM trips`).
		WithArgs("trip-1").
		WillReturnRows(pgxmock.NewRows([]string{"user_id"}).AddRow("user-2"))

	repo := NewRepository(mock)
	if err := repo.DeleteTrip(context.Background(), "trip-1", "user-1"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestSaveInternationalTrip(t *testing.T) {
	mock := newMockPool(t)
	createdAt := time.Now()

	mock.ExpectQuery(`INSERT INTO international_trips`).
		WithArgs(pgxmock.AnyArg(), "user-1", "Bulgaria", "Sofia", "Germany", "Berlin", 1.80, 7, 1300, 163, "13:30:00").
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(createdAt))

	repo := NewRepository(mock)
	saved, err := repo.SaveInternationalTrip(context.Background(), InternationalTrip{
		UserID:          "user-1",
		FirstCountry:    "Bulgaria",
		OriginTown:      "Sofia",
		SecondCountry:   "Germany",
		DestinationTown: "Berlin",
		FuelCost:        1.80,
		FuelConsumption: 7,
		DistanceKm:      1300,
		MoneyCost:       163,
		TravelTime:      "13:30:00",
	})
	if err != nil {
		t.Fatalf("save international trip: %v", err)
	}
	if saved.ID == "" || !saved.CreatedAt.Equal(createdAt) {
		t.Fatalf("unexpected saved trip: %+v", saved)
	}
}

func TestSaveInternationalTripDuplicate(t *testing.T) {
	mock := newMockPool(t)

	mock.ExpectQuery(`INSERT INTO international_trips`).
		WithArgs(pgxmock.AnyArg(), "user-1", "Bulgaria", "Sofia", "Germany", "Berlin", 1.80, 7, 1300, 163, "13:30:00").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	repo := NewRepository(mock)
	_, err := repo.SaveInternationalTrip(context.Background(), InternationalTrip{
		UserID:          "user-1",
		FirstCountry:    "Bulgaria",
		OriginTown:      "Sofia",
		SecondCountry:   "Germany",
		DestinationTown: "Berlin",
		FuelCost:        1.80,
		FuelConsumption: 7,
		DistanceKm:      1300,
		MoneyCost:       163,
		TravelTime:      "13:30:00",
	})
	if !errors.Is(err, ErrDuplicateTrip) {
		t.Fatalf("expected ErrDuplicateTrip, got %v", err)
	}
}

func TestListInternationalTrips(t *testing.T) {
	mock := newMockPool(t)

	mock.ExpectQuery(`SELECT id, user_id, first_country, origin_town, second_country, destination_town`).
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "first_country", "origin_town", "second_country", "destination_town", "fuel_cost", "fuel_consumption", "distance_km", "money_cost", "travel_time", "created_at"}).
			AddRow("trip-1", "user-1", "Bulgaria", "Sofia", "Germany", "Berlin", 1.80, 7, 1300, 163, "13:30:00", time.Now()))

	repo := NewRepository(mock)
	trips, err := repo.ListInternationalTrips(context.Background(), "user-1")
	if err != nil || len(trips) != 1 {
		t.Fatalf("list international trips: %v (%d)", err, len(trips))
	}
}

func TestDeleteInternationalTripNotFound(t *testing.T) {
	mock := newMockPool(t)

	mock.ExpectQuery(`SELECT user_id FROM international_trips`).
		WithArgs("trip-404").
		WillReturnError(pgx.ErrNoRows)

	repo := NewRepository(mock)
	err := repo.DeleteInternationalTrip(context.Background(), "trip-404", "user-1")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
