package attendance

import (
	"context"

	"github.com/Ogbudugodwin/Workhub-sub001/internal/domain/user"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// ClockIn validates the attempt against the resolved branch or company policy and opens a record
	ClockIn(ctx context.Context, identity user.Identity, req ClockInRequest) (AttendanceResponse, error)

	// ClockOut closes today's open record
	ClockOut(ctx context.Context, identity user.Identity, req ClockOutRequest) (AttendanceResponse, error)

	// GetTodayStatus reports whether the caller can clock in or out right now
	GetTodayStatus(ctx context.Context, identity user.Identity) (TodayStatusResponse, error)

	// GetMyAttendance retrieves the caller's own history
	GetMyAttendance(ctx context.Context, identity user.Identity, filter MyAttendanceFilter) (ListAttendanceResponse, error)

	// ListAttendance retrieves company records (attendance.view_all)
	ListAttendance(ctx context.Context, identity user.Identity, filter AttendanceFilter) (ListAttendanceResponse, error)

	// ExportAttendance renders the filtered company records as an XLSX workbook
	ExportAttendance(ctx context.Context, identity user.Identity, filter AttendanceFilter) ([]byte, error)
}
