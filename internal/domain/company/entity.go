package company

import (
	"time"

	"github.com/Ogbudugodwin/Workhub-sub001/internal/domain/attendance"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/pkg/geo"
)

type Company struct {
	ID                 string
	Name               string
	Location           *geo.Point
	AttendanceSettings *attendance.Settings // company-wide fallback when no branch applies
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
