package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordCampaignEmail(t *testing.T) {
	before := testutil.ToFloat64(CampaignEmails.WithLabelValues("delivered"))
	RecordCampaignEmail("delivered")
	RecordCampaignEmail("delivered")
	assert.Equal(t, before+2, testutil.ToFloat64(CampaignEmails.WithLabelValues("delivered")))
}

func TestRecordTrackingEvent(t *testing.T) {
	before := testutil.ToFloat64(TrackingEvents.WithLabelValues("open", "ok"))
	RecordTrackingEvent("open", "ok")
	assert.Equal(t, before+1, testutil.ToFloat64(TrackingEvents.WithLabelValues("open", "ok")))
}

func TestRecordClockIn(t *testing.T) {
	before := testutil.ToFloat64(ClockIns.WithLabelValues("late"))
	RecordClockIn("late")
	assert.Equal(t, before+1, testutil.ToFloat64(ClockIns.WithLabelValues("late")))
}
