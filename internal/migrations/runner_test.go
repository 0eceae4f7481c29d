package migrations

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/pashagolub/pgxmock/v3"
)

func newMigrationsMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	t.Cleanup(mock.Close)
	return mock
}

func TestRunAppliesAllPending(t *testing.T) {
	mock := newMigrationsMock(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS schema_migrations`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectQuery(`SELECT version FROM schema_migrations`).
		WillReturnRows(pgxmock.NewRows([]string{"version"}))

	for _, version := range []string{"001_users.sql", "002_trips.sql", "003_international_trips.sql"} {
		mock.ExpectBegin()
		mock.ExpectExec(`CREATE TABLE IF NOT EXISTS`).
			WillReturnResult(pgxmock.NewResult("CREATE", 0))
		mock.ExpectExec(`INSERT INTO schema_migrations`).
			WithArgs(version).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectCommit()
	}

	if err := Run(context.Background(), mock); err != nil {
		t.Fatalf("run: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRunSkipsAppliedVersions(t *testing.T) {
	mock := newMigrationsMock(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS schema_migrations`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectQuery(`SELECT version FROM schema_migrations`).
		WillReturnRows(pgxmock.NewRows([]string{"version"}).
			AddRow("001_users.sql").
			AddRow("002_trips.sql").
			AddRow("003_international_trips.sql"))

	if err := Run(context.Background(), mock); err != nil {
		t.Fatalf("run: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRunRollsBackFailedMigration(t *testing.T) {
	mock := newMigrationsMock(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS schema_migrations`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectQuery(`SELECT version FROM schema_migrations`).
		WillReturnRows(pgxmock.NewRows([]string{"version"}))

	mock.ExpectBegin()
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS`).
		WillReturnError(errors.New("syntax error"))
	mock.ExpectRollback()

	if err := Run(context.Background(), mock); err == nil {
		t.Fatalf("expected error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRunFailsWhenTrackingTableCannotBeCreated(t *testing.T) {
	mock := newMigrationsMock(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS schema_migrations`).
		WillReturnError(errors.New("permission denied"))

	if err := Run(context.Background(), mock); err == nil {
		t.Fatalf("expected error")
	}
}

func TestRouteUniquenessIsScopedPerUser(t *testing.T) {
	files, err := load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	constraints := map[string]string{
		"002_trips.sql":               "UNIQUE (user_id, country, origin_town, destination_town)",
		"003_international_trips.sql": "UNIQUE (user_id, first_country, origin_town, second_country, destination_town)",
	}
	for _, f := range files {
		want, ok := constraints[f.version]
		if !ok {
			continue
		}
		if !strings.Contains(f.sql, want) {
			t.Fatalf("%s: expected route constraint %q", f.version, want)
		}
		delete(constraints, f.version)
	}
	if len(constraints) != 0 {
		t.Fatalf("missing migrations for constraints: %v", constraints)
	}
}

func TestLoadReturnsFilesInOrder(t *testing.T) {
	files, err := load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("expected 3 migrations, got %d", len(files))
	}
	want := []string{"001_users.sql", "002_trips.sql", "003_international_trips.sql"}
	for i, w := range want {
		if files[i].version != w {
			t.Fatalf("migration %d: expected %q, got %q", i, w, files[i].version)
		}
		if files[i].sql == "" {
			t.Fatalf("migration %q has empty sql", w)
		}
	}
}
