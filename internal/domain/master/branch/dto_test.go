package branch

import (
	"testing"

	"github.com/Ogbudugodwin/Workhub-sub001/internal/pkg/geo"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateAttendanceSettingsRequest_Validate(t *testing.T) {
	valid := UpdateAttendanceSettingsRequest{
		ID:              "b1",
		StartTime:       "09:00",
		RequireLocation: true,
		LocationRadius:  150,
		IsActive:        true,
		Location:        &geo.Point{Lat: 6.524379, Lng: 3.379206},
	}
	assert.NoError(t, valid.Validate())

	invalid := UpdateAttendanceSettingsRequest{
		StartTime:      "9am",
		LocationRadius: -1,
		Location:       &geo.Point{Lat: 6.5, Lng: 181},
	}

	var errs validator.ValidationErrors
	require.ErrorAs(t, invalid.Validate(), &errs)

	fields := errs.ToMap()
	assert.Contains(t, fields, "id")
	assert.Contains(t, fields, "start_time")
	assert.Contains(t, fields, "location_radius")
	assert.Equal(t, "location.lng must be between -180 and 180", fields["location.lng"])
}

func TestUpdateAttendanceSettingsRequest_Settings(t *testing.T) {
	req := UpdateAttendanceSettingsRequest{StartTime: "08:30", RequireLocation: true, LocationRadius: 50, IsActive: true}
	s := req.Settings()
	assert.Equal(t, "08:30", s.StartTime)
	assert.True(t, s.RequireLocation)
	assert.Equal(t, 50, s.Radius())
	assert.True(t, s.IsActive)
}
