package attendance

import (
	"errors"
	"fmt"
)

// Attendance domain errors
var (
	// Clock-in errors
	ErrAlreadyClockedIn   = errors.New("already clocked in")
	ErrBranchForbidden    = errors.New("branch is not assigned to you")
	ErrLocationRequired   = errors.New("location required")
	ErrLateReasonRequired = errors.New("late reason required")

	// Clock-out errors
	ErrNotClockedIn = errors.New("you have not clocked in today")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrMalformedDocument  = errors.New("malformed attendance document")
	ErrExportTooLarge     = errors.New("too many records to export, narrow the date range")
)

// OutOfRangeError is returned when the reported position is outside the geofence.
type OutOfRangeError struct {
	Distance      int // rounded meters
	AllowedRadius int // meters
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("you are %dm away, outside the allowed radius of %dm", e.Distance, e.AllowedRadius)
}
