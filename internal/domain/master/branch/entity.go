package branch

import (
	"time"

	"github.com/Ogbudugodwin/Workhub-sub001/internal/domain/attendance"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/pkg/geo"
)

type Branch struct {
	ID                 string
	CompanyID          string
	Name               string
	Address            *string
	Location           *geo.Point
	AttendanceSettings attendance.Settings
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
