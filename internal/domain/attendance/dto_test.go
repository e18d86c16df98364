package attendance

import (
	"testing"

	"github.com/Ogbudugodwin/Workhub-sub001/internal/pkg/geo"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestClockInRequest_Validate(t *testing.T) {
	ok := ClockInRequest{Location: &geo.Point{Lat: 6.524379, Lng: 3.379206}}
	assert.NoError(t, ok.Validate())

	empty := ClockInRequest{}
	assert.NoError(t, empty.Validate())

	bad := ClockInRequest{Location: &geo.Point{Lat: 120, Lng: 3}}
	err := bad.Validate()
	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs.ToMap(), "location.lat")
}

func TestMyAttendanceFilter_Defaults(t *testing.T) {
	f := MyAttendanceFilter{}
	require.NoError(t, f.Validate())
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 20, f.Limit)
	assert.Equal(t, "date", f.SortBy)
	assert.Equal(t, "desc", f.SortOrder)
}

func TestAttendanceFilter_Invalid(t *testing.T) {
	f := AttendanceFilter{
		Limit:     500,
		Status:    strPtr("late"),
		StartDate: strPtr("2025-03-10"),
		EndDate:   strPtr("2025-03-01"),
		SortBy:    "salary",
	}

	var errs validator.ValidationErrors
	require.ErrorAs(t, f.Validate(), &errs)

	fields := errs.ToMap()
	assert.Contains(t, fields, "limit")
	assert.Contains(t, fields, "status")
	assert.Contains(t, fields, "end_date")
	assert.Contains(t, fields, "sort_by")
}

func TestSettings(t *testing.T) {
	assert.Equal(t, DefaultLocationRadius, Settings{}.Radius())
	assert.Equal(t, 250, Settings{LocationRadius: 250}.Radius())
	assert.False(t, Settings{StartTime: "09:00"}.HasLatePolicy())
	assert.True(t, Settings{StartTime: "09:00", IsActive: true}.HasLatePolicy())
}

func TestPolicy_RequiresLocation(t *testing.T) {
	loc := &geo.Point{Lat: 1, Lng: 1}
	assert.False(t, Policy{}.RequiresLocation())
	assert.False(t, Policy{Settings: &Settings{RequireLocation: true}}.RequiresLocation())
	assert.False(t, Policy{Settings: &Settings{}, Location: loc}.RequiresLocation())
	assert.True(t, Policy{Settings: &Settings{RequireLocation: true}, Location: loc}.RequiresLocation())
}
