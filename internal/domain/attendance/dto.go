package attendance

import (
	"strings"
	"time"

	"github.com/Ogbudugodwin/Workhub-sub001/internal/pkg/geo"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type ClockInRequest struct {
	Location *geo.Point `json:"location,omitempty"`
	Notes    *string    `json:"notes,omitempty" validate:"omitempty,max=1000"`
	BranchID *string    `json:"branch_id,omitempty" validate:"omitempty,min=1"`
}

func (r *ClockInRequest) Validate() error {
	return validator.Struct(r)
}

type ClockOutRequest struct {
	Location *geo.Point `json:"location,omitempty"`
	Notes    *string    `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

func (r *ClockOutRequest) Validate() error {
	return validator.Struct(r)
}

type AttendanceResponse struct {
	ID               string     `json:"id"`
	UserID           string     `json:"user_id"`
	CompanyID        *string    `json:"company_id,omitempty"`
	BranchID         *string    `json:"branch_id,omitempty"`
	Date             string     `json:"date"`
	ClockIn          string     `json:"clock_in"`
	ClockOut         *string    `json:"clock_out,omitempty"`
	Location         *geo.Point `json:"location,omitempty"`
	ClockOutLocation *geo.Point `json:"clock_out_location,omitempty"`
	IsLate           bool       `json:"is_late"`
	LateReason       *string    `json:"late_reason,omitempty"`
	Notes            *string    `json:"notes,omitempty"`
	Status           string     `json:"status"`
	HoursWorked      *float64   `json:"hours_worked,omitempty"`
	CreatedAt        string     `json:"created_at"`
	UpdatedAt        string     `json:"updated_at"`
}

func NewAttendanceResponse(att Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:               att.ID,
		UserID:           att.UserID,
		CompanyID:        att.CompanyID,
		BranchID:         att.BranchID,
		Date:             att.Date,
		ClockIn:          att.ClockIn.Format(time.RFC3339),
		Location:         att.Location,
		ClockOutLocation: att.ClockOutLocation,
		IsLate:           att.IsLate,
		LateReason:       att.LateReason,
		Notes:            att.Notes,
		Status:           string(att.Status),
		HoursWorked:      att.HoursWorked,
		CreatedAt:        att.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        att.UpdatedAt.Format(time.RFC3339),
	}
	if att.ClockOut != nil {
		clockOut := att.ClockOut.Format(time.RFC3339)
		resp.ClockOut = &clockOut
	}
	return resp
}

type TodayStatusResponse struct {
	Date           string              `json:"date"`
	HasClockedIn   bool                `json:"has_clocked_in"`
	HasOpenSession bool                `json:"has_open_session"`
	CanClockIn     bool                `json:"can_clock_in"`
	CanClockOut    bool                `json:"can_clock_out"`
	Today          *AttendanceResponse `json:"today,omitempty"`
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Attendances []AttendanceResponse `json:"attendances"`
}

type MyAttendanceFilter struct {
	Date      *string `json:"date,omitempty"`       // YYYY-MM-DD
	StartDate *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate   *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	Status    *string `json:"status,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`

	// Sorting
	SortBy    string `json:"sort_by"`    // date, clock_in_time, clock_out_time, status
	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *MyAttendanceFilter) Validate() error {
	errs := validateListParams(&f.Page, &f.Limit, f.Status, f.Date, f.StartDate, f.EndDate)
	errs = append(errs, validateSort(&f.SortBy, &f.SortOrder)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AttendanceFilter struct {
	// Search & Filter
	UserID    *string `json:"user_id,omitempty"`
	BranchID  *string `json:"branch_id,omitempty"`
	Date      *string `json:"date,omitempty"`       // YYYY-MM-DD
	StartDate *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate   *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	Status    *string `json:"status,omitempty"`
	IsLate    *bool   `json:"is_late,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`

	// Sorting
	SortBy    string `json:"sort_by"`
	SortOrder string `json:"sort_order"`
}

func (f *AttendanceFilter) Validate() error {
	errs := validateListParams(&f.Page, &f.Limit, f.Status, f.Date, f.StartDate, f.EndDate)
	errs = append(errs, validateSort(&f.SortBy, &f.SortOrder)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

var (
	validStatuses   = []string{string(StatusActive), string(StatusCompleted)}
	validSortFields = []string{"date", "clock_in_time", "clock_out_time", "status"}
)

func validateListParams(page, limit *int, status, date, startDate, endDate *string) validator.ValidationErrors {
	var errs validator.ValidationErrors

	// Page validation
	if *page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if *page == 0 {
		*page = 1 // Default page
	}

	// Limit validation
	if *limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if *limit == 0 {
		*limit = 20 // Default limit
	}
	if *limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if status != nil && !validator.IsInSlice(*status, validStatuses) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: " + strings.Join(validStatuses, ", "),
		})
	}

	for _, d := range []struct {
		field string
		value *string
	}{
		{"date", date},
		{"start_date", startDate},
		{"end_date", endDate},
	} {
		if d.value == nil || *d.value == "" {
			continue
		}
		if _, valid := validator.IsValidDate(*d.value); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   d.field,
				Message: d.field + " must be in YYYY-MM-DD format",
			})
		}
	}

	if startDate != nil && endDate != nil && *startDate != "" && *endDate != "" && *startDate > *endDate {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	return errs
}

func validateSort(sortBy, sortOrder *string) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if *sortBy != "" {
		if !validator.IsInSlice(*sortBy, validSortFields) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_by",
				Message: "sort_by must be one of: " + strings.Join(validSortFields, ", "),
			})
		}
	} else {
		*sortBy = "date" // Default sort
	}

	if *sortOrder != "" {
		if !validator.IsInSlice(strings.ToLower(*sortOrder), []string{"asc", "desc"}) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_order",
				Message: "sort_order must be one of: asc, desc",
			})
		}
	} else {
		*sortOrder = "desc" // Default descending (newest first)
	}

	return errs
}
