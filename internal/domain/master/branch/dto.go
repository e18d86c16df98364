package branch

import (
	"github.com/Ogbudugodwin/Workhub-sub001/internal/domain/attendance"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/pkg/geo"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/pkg/validator"
)

// BranchResponse represents the response structure for a branch.
type BranchResponse struct {
	ID                 string              `json:"id"`
	CompanyID          string              `json:"company_id"`
	Name               string              `json:"name"`
	Address            *string             `json:"address,omitempty"`
	Location           *geo.Point          `json:"location,omitempty"`
	AttendanceSettings attendance.Settings `json:"attendance_settings"`
}

func NewBranchResponse(b Branch) BranchResponse {
	return BranchResponse{
		ID:                 b.ID,
		CompanyID:          b.CompanyID,
		Name:               b.Name,
		Address:            b.Address,
		Location:           b.Location,
		AttendanceSettings: b.AttendanceSettings,
	}
}

// UpdateAttendanceSettingsRequest replaces a branch's attendance policy.
type UpdateAttendanceSettingsRequest struct {
	ID              string     `json:"-"` // From URL
	StartTime       string     `json:"start_time"`
	RequireLocation bool       `json:"require_location"`
	LocationRadius  int        `json:"location_radius"`
	IsActive        bool       `json:"is_active"`
	Location        *geo.Point `json:"location,omitempty"`
}

func (r *UpdateAttendanceSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	// ID
	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	// StartTime
	if r.StartTime != "" {
		if _, ok := validator.IsValidClock(r.StartTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_time",
				Message: "start_time must be in HH:MM format",
			})
		}
	}

	// LocationRadius
	if r.LocationRadius < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "location_radius",
			Message: "location_radius must not be negative",
		})
	}

	// Location
	if r.Location != nil {
		if err := validator.Struct(r.Location); err != nil {
			if fieldErrs, ok := err.(validator.ValidationErrors); ok {
				for _, fe := range fieldErrs {
					errs = append(errs, validator.ValidationError{
						Field:   "location." + fe.Field,
						Message: "location." + fe.Message,
					})
				}
			} else {
				return err
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Settings returns the attendance settings carried by the request.
func (r *UpdateAttendanceSettingsRequest) Settings() attendance.Settings {
	return attendance.Settings{
		StartTime:       r.StartTime,
		RequireLocation: r.RequireLocation,
		LocationRadius:  r.LocationRadius,
		IsActive:        r.IsActive,
	}
}
