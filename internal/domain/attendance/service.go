package attendance

import (
	"context"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/user"
)

//go:generate mockgen -source=service.go -destination=mock/service_mock.go -package=mock
type AttendanceService interface {
	// Self-service punches, geofenced against the caller's assigned office
	PunchIn(ctx context.Context, actor user.Actor, req PunchInRequest) (PunchResult, error)
	PunchOut(ctx context.Context, actor user.Actor, req PunchOutRequest) (PunchResult, error)

	// HR-assisted punches on behalf of employeeID using the office's own coordinates
	PunchInByHR(ctx context.Context, actor user.Actor, employeeID string, req HRPunchRequest) (PunchResult, error)
	PunchOutByHR(ctx context.Context, actor user.Actor, employeeID string, req HRPunchRequest) (PunchResult, error)

	// Correct overwrites fields of a record without re-deriving status
	Correct(ctx context.Context, actor user.Actor, id string, req CorrectionRequest) (AttendanceResponse, error)

	GetByID(ctx context.Context, actor user.Actor, id string) (AttendanceResponse, error)
	GetToday(ctx context.Context, actor user.Actor, employeeID string) (TodayResponse, error)
	List(ctx context.Context, actor user.Actor, filter AttendanceFilter) (ListAttendanceResponse, error)
	ListMine(ctx context.Context, actor user.Actor, filter MyAttendanceFilter) (ListAttendanceResponse, error)
	FilterOptions(ctx context.Context) (FilterOptionsResponse, error)

	Summary(ctx context.Context, actor user.Actor, req SummaryRequest) (SummaryResponse, error)
	Calendar(ctx context.Context, actor user.Actor, req CalendarRequest) (CalendarResponse, error)
}
