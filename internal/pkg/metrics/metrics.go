package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CampaignEmails counts per-recipient delivery outcomes
	CampaignEmails = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workhub_campaign_emails_total",
			Help: "Campaign e-mails by delivery outcome",
		},
		[]string{"status"}, // delivered or failed
	)

	// CampaignDispatchDuration tracks how long a full campaign fan-out takes
	CampaignDispatchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "workhub_campaign_dispatch_duration_seconds",
			Help: "Duration of campaign dispatches in seconds",
			Buckets: []float64{
				0.1,   // 100ms
				0.5,   // 500ms
				1.0,   // 1s
				5.0,   // 5s
				15.0,  // 15s
				30.0,  // 30s
				60.0,  // 1m
				300.0, // 5m
				900.0, // 15m
			},
		},
	)

	// TrackingEvents counts open and click events
	TrackingEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workhub_tracking_events_total",
			Help: "Tracking events by type and storage outcome",
		},
		[]string{"type", "status"},
	)

	// ClockIns counts clock-in attempts by outcome
	ClockIns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workhub_clock_in_total",
			Help: "Clock-in attempts by outcome",
		},
		[]string{"outcome"},
	)
)

func RecordCampaignEmail(status string) {
	CampaignEmails.WithLabelValues(status).Inc()
}

func RecordCampaignDispatchDuration(seconds float64) {
	CampaignDispatchDuration.Observe(seconds)
}

func RecordTrackingEvent(eventType, status string) {
	TrackingEvents.WithLabelValues(eventType, status).Inc()
}

func RecordClockIn(outcome string) {
	ClockIns.WithLabelValues(outcome).Inc()
}
