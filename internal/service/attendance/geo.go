package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/office"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/utils"
)

// DefaultGeofenceRadius is the allowed distance from an office, in meters.
const DefaultGeofenceRadius = 500.0

// boundaryTolerance absorbs float error so a point at exactly the radius passes.
const boundaryTolerance = 1e-6

// GeoResult is the outcome of one geofence check. Distance is only
// meaningful when both points were usable.
type GeoResult struct {
	Within   bool
	Distance float64
	Radius   float64
	User     attendance.Coordinates
	Office   attendance.Coordinates
	Reason   string
}

// Err converts a failed check into the error handed back to callers.
func (r GeoResult) Err() error {
	if r.Within {
		return nil
	}
	return &attendance.GeofenceError{
		Distance: r.Distance,
		Radius:   r.Radius,
		User:     r.User,
		Office:   r.Office,
	}
}

// GeoValidator decides whether a point lies inside an office's allowed radius.
// It fails closed: unknown offices and unusable coordinates are "not within range".
type GeoValidator struct {
	offices office.OfficeLocationRepository
	radius  float64
	logger  *slog.Logger
}

func NewGeoValidator(offices office.OfficeLocationRepository, radius float64, logger *slog.Logger) *GeoValidator {
	if radius <= 0 {
		radius = DefaultGeofenceRadius
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &GeoValidator{offices: offices, radius: radius, logger: logger}
}

// Validate loads the office and checks the submitted point against it.
// Only store failures other than not-found are returned as errors.
func (g *GeoValidator) Validate(ctx context.Context, lat, lng float64, officeID string) (GeoResult, error) {
	loc, err := g.LoadOffice(ctx, officeID)
	if err != nil {
		return GeoResult{}, err
	}
	if loc == nil {
		g.logger.InfoContext(ctx, "geofence rejected: office not found", slog.String("office_id", officeID))
		return GeoResult{Radius: g.radius, User: attendance.Coordinates{Latitude: lat, Longitude: lng}, Reason: "office not found"}, nil
	}
	return g.Check(ctx, *loc, lat, lng), nil
}

// LoadOffice returns nil, nil when the office does not exist.
func (g *GeoValidator) LoadOffice(ctx context.Context, officeID string) (*office.OfficeLocation, error) {
	loc, err := g.offices.GetByID(ctx, officeID)
	if err != nil {
		if errors.Is(err, office.ErrOfficeLocationNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get office location: %w", err)
	}
	return &loc, nil
}

// Check is the pure geofence decision for an already loaded office.
func (g *GeoValidator) Check(ctx context.Context, loc office.OfficeLocation, lat, lng float64) GeoResult {
	result := GeoResult{
		Radius: g.radius,
		User:   attendance.Coordinates{Latitude: lat, Longitude: lng},
	}

	officeLat, officeLng, ok := loc.Coordinates()
	if !ok || !utils.IsValidCoordinate(officeLat, officeLng) {
		result.Reason = "office has no usable coordinates"
		g.logger.WarnContext(ctx, "geofence rejected", slog.String("office_id", loc.ID), slog.String("reason", result.Reason))
		return result
	}
	result.Office = attendance.Coordinates{Latitude: officeLat, Longitude: officeLng}

	if !utils.IsValidCoordinate(lat, lng) {
		result.Reason = "submitted coordinates are not usable"
		g.logger.InfoContext(ctx, "geofence rejected", slog.String("office_id", loc.ID), slog.String("reason", result.Reason))
		return result
	}

	result.Distance = utils.HaversineDistance(officeLat, officeLng, lat, lng)
	result.Within = result.Distance <= g.radius+boundaryTolerance
	if !result.Within {
		result.Reason = "outside allowed radius"
	}

	g.logger.DebugContext(ctx, "geofence evaluated",
		slog.String("office_id", loc.ID),
		slog.Float64("distance_meters", result.Distance),
		slog.Float64("radius_meters", g.radius),
		slog.Bool("within", result.Within),
	)
	return result
}
