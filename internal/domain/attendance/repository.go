package attendance

import (
	"context"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	// Create inserts a new open record. A concurrent open record for the
	// same user and date yields ErrAlreadyClockedIn.
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	// GetOpenSession returns the record for userID on date with no clock-out,
	// or ErrAttendanceNotFound.
	GetOpenSession(ctx context.Context, userID string, date string) (Attendance, error)

	// GetByUserAndDate returns the most recent record for userID on date, or nil.
	GetByUserAndDate(ctx context.Context, userID string, date string) (*Attendance, error)

	// CloseSession stores the clock-out fields of an open record.
	CloseSession(ctx context.Context, attendance Attendance) (Attendance, error)

	// List retrieves attendance records of a company with filters and pagination
	List(ctx context.Context, filter AttendanceFilter, companyID string) ([]Attendance, int64, error)

	// GetMyAttendance retrieves attendance records for a single user
	GetMyAttendance(ctx context.Context, userID string, filter MyAttendanceFilter) ([]Attendance, int64, error)
}
