package postgresql_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/attendance-engine/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-engine/internal/repository/postgresql"
	"github.com/cmlabs-hris/attendance-engine/migrations"
)

// TestDatabaseSetup holds a migrated connection to the test database
type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to TEST_DATABASE_URL and applies the schema.
// The calling test is skipped when the variable is unset.
func NewTestDatabase(t *testing.T) *TestDatabaseSetup {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, dsn)
	require.NoError(t, err, "failed to connect to test database")

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	require.NoError(t, postgresql.Migrate(ctx, db, migrations.FS, logger))

	setup := &TestDatabaseSetup{DB: db}
	require.NoError(t, setup.TruncateAllTables(ctx))
	t.Cleanup(setup.Close)

	return setup
}

// TruncateAllTables clears every table the engine writes or reads
func (s *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tx, err := s.DB.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tables := []string{
		"attendances",
		"events",
		"employees",
		"work_shifts",
		"office_locations",
	}

	for _, table := range tables {
		_, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit(ctx)
}

// Close closes the pool
func (s *TestDatabaseSetup) Close() {
	s.DB.Close()
}

type seeded struct {
	officeID   string
	shiftID    string
	managerID  string
	employeeID string
}

// seed inserts one office, one shift, a manager and one report
func (s *TestDatabaseSetup) seed(t *testing.T) seeded {
	t.Helper()
	ctx := context.Background()

	var out seeded
	require.NoError(t, s.DB.QueryRow(ctx, `
		INSERT INTO office_locations (office_name, latitude, longitude)
		VALUES ('HQ', 12.9716, 77.5946) RETURNING id
	`).Scan(&out.officeID))

	require.NoError(t, s.DB.QueryRow(ctx, `
		INSERT INTO work_shifts (name, start_time, end_time)
		VALUES ('General', '09:00', '18:00') RETURNING id
	`).Scan(&out.shiftID))

	require.NoError(t, s.DB.QueryRow(ctx, `
		INSERT INTO employees (employee_code, name, role, office_location_id, work_shift_id, date_of_joining)
		VALUES ('TL-001', 'Lead', 'Team_Leader', $1, $2, '2024-01-01') RETURNING id
	`, out.officeID, out.shiftID).Scan(&out.managerID))

	require.NoError(t, s.DB.QueryRow(ctx, `
		INSERT INTO employees (employee_code, name, manager_id, office_location_id, work_shift_id, date_of_joining)
		VALUES ('EMP-001', 'Asha', $1, $2, $3, '2024-01-01') RETURNING id
	`, out.managerID, out.officeID, out.shiftID).Scan(&out.employeeID))

	_, err := s.DB.Exec(ctx, `
		INSERT INTO events (title, event_type, start_date, end_date, office_location_id)
		VALUES ('Diwali', 'Holiday', '2025-10-20', '2025-10-21', $1),
		       ('Town hall', 'Meeting', '2025-10-22', '2025-10-22', $1)
	`, out.officeID)
	require.NoError(t, err)

	return out
}
