package postgresql

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Ogbudugodwin/Workhub-sub001/internal/domain/attendance"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/domain/campaign"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/pkg/geo"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/pkg/validator"
)

// pointFrom builds a point from nullable coordinate columns.
func pointFrom(lat, lng *float64) (*geo.Point, error) {
	if lat == nil && lng == nil {
		return nil, nil
	}
	if lat == nil || lng == nil {
		return nil, fmt.Errorf("%w: location has only one coordinate", attendance.ErrMalformedDocument)
	}
	p := geo.Point{Lat: *lat, Lng: *lng}
	if !p.Valid() {
		return nil, fmt.Errorf("%w: location (%f, %f) out of range", attendance.ErrMalformedDocument, p.Lat, p.Lng)
	}
	return &p, nil
}

// coordinates splits an optional point into nullable column values.
func coordinates(p *geo.Point) (*float64, *float64) {
	if p == nil {
		return nil, nil
	}
	lat, lng := p.Lat, p.Lng
	return &lat, &lng
}

// decodeSettings parses an attendance_settings document. Empty input yields nil.
func decodeSettings(raw []byte) (*attendance.Settings, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var s attendance.Settings
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("%w: attendance_settings: %v", attendance.ErrMalformedDocument, err)
	}
	if s.StartTime != "" {
		if _, ok := validator.IsValidClock(s.StartTime); !ok {
			return nil, fmt.Errorf("%w: attendance_settings.start_time %q", attendance.ErrMalformedDocument, s.StartTime)
		}
	}
	if s.LocationRadius < 0 {
		return nil, fmt.Errorf("%w: attendance_settings.location_radius %d", attendance.ErrMalformedDocument, s.LocationRadius)
	}
	return &s, nil
}

func decodeRecipients(raw []byte) ([]campaign.Recipient, error) {
	var recipients []campaign.Recipient
	if len(raw) == 0 {
		return recipients, nil
	}
	if err := json.Unmarshal(raw, &recipients); err != nil {
		return nil, fmt.Errorf("%w: recipients: %v", campaign.ErrMalformedDocument, err)
	}
	return recipients, nil
}

func decodeEvents(field string, raw []byte) ([]campaign.TrackingEvent, error) {
	var events []campaign.TrackingEvent
	if len(raw) == 0 {
		return events, nil
	}
	if err := json.Unmarshal(raw, &events); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", campaign.ErrMalformedDocument, field, err)
	}
	return events, nil
}

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse(attendance.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid attendance date %q: %w", s, err)
	}
	return d, nil
}
