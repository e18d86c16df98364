package attendance

import (
	"time"

	"github.com/Ogbudugodwin/Workhub-sub001/internal/pkg/geo"
)

// DateLayout is the calendar-day format of Attendance.Date.
const DateLayout = "2006-01-02"

// DefaultLocationRadius applies when a policy requires a location but sets no radius.
const DefaultLocationRadius = 100

type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

type Attendance struct {
	ID               string
	UserID           string
	CompanyID        *string
	BranchID         *string
	Date             string
	ClockIn          time.Time
	ClockOut         *time.Time
	Location         *geo.Point
	ClockOutLocation *geo.Point
	IsLate           bool
	LateReason       *string
	Notes            *string
	Status           Status
	HoursWorked      *float64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (a Attendance) IsOpen() bool {
	return a.ClockOut == nil
}

// Settings is the attendance policy carried by a branch or a company.
type Settings struct {
	StartTime       string `json:"start_time"` // HH:MM, empty disables the late check
	RequireLocation bool   `json:"require_location"`
	LocationRadius  int    `json:"location_radius"` // meters, 0 means DefaultLocationRadius
	IsActive        bool   `json:"is_active"`
}

// Radius returns the allowed distance in meters.
func (s Settings) Radius() int {
	if s.LocationRadius <= 0 {
		return DefaultLocationRadius
	}
	return s.LocationRadius
}

// HasLatePolicy reports whether arrivals after StartTime count as late.
func (s Settings) HasLatePolicy() bool {
	return s.StartTime != "" && s.IsActive
}

type PolicySource string

const (
	PolicySourceBranch  PolicySource = "branch"
	PolicySourceCompany PolicySource = "company"
	PolicySourceNone    PolicySource = "none"
)

// Policy is the resolved rule set for one clock-in attempt.
type Policy struct {
	Source    PolicySource
	BranchID  *string
	CompanyID *string
	Settings  *Settings
	Location  *geo.Point
}

// RequiresLocation reports whether the reported position must be checked.
func (p Policy) RequiresLocation() bool {
	return p.Settings != nil && p.Settings.RequireLocation && p.Location != nil
}

func (p Policy) HasLatePolicy() bool {
	return p.Settings != nil && p.Settings.HasLatePolicy()
}
