package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/office"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/database"
)

const officeLocationColumns = `id, office_name, office_address, latitude, longitude, office_type, COALESCE(branch_code, '')`

type officeLocationRepositoryImpl struct {
	db *database.DB
}

func NewOfficeLocationRepository(db *database.DB) office.OfficeLocationRepository {
	return &officeLocationRepositoryImpl{db: db}
}

func scanOfficeLocation(row pgx.Row) (office.OfficeLocation, error) {
	var (
		loc        office.OfficeLocation
		officeType string
	)
	err := row.Scan(&loc.ID, &loc.OfficeName, &loc.OfficeAddress, &loc.Latitude, &loc.Longitude, &officeType, &loc.BranchCode)
	if err != nil {
		return office.OfficeLocation{}, err
	}
	loc.OfficeType = office.OfficeType(officeType)
	return loc, nil
}

// GetByID implements office.OfficeLocationRepository.
func (o *officeLocationRepositoryImpl) GetByID(ctx context.Context, id string) (office.OfficeLocation, error) {
	ctx, cancel := o.db.WithTimeout(ctx)
	defer cancel()
	q := GetQuerier(ctx, o.db)

	query := `SELECT ` + officeLocationColumns + ` FROM office_locations WHERE id = $1`

	loc, err := scanOfficeLocation(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return office.OfficeLocation{}, office.ErrOfficeLocationNotFound
		}
		return office.OfficeLocation{}, fmt.Errorf("failed to get office location by ID: %w", err)
	}

	return loc, nil
}

// List implements office.OfficeLocationRepository.
func (o *officeLocationRepositoryImpl) List(ctx context.Context) ([]office.OfficeLocation, error) {
	ctx, cancel := o.db.WithTimeout(ctx)
	defer cancel()
	q := GetQuerier(ctx, o.db)

	query := `SELECT ` + officeLocationColumns + ` FROM office_locations ORDER BY office_name ASC`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list office locations: %w", err)
	}
	defer rows.Close()

	var locations []office.OfficeLocation
	for rows.Next() {
		loc, err := scanOfficeLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan office location: %w", err)
		}
		locations = append(locations, loc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating office locations: %w", err)
	}

	return locations, nil
}
