package tracking

import (
	"context"
	"fmt"

	"github.com/Ogbudugodwin/Workhub-sub001/internal/domain/campaign"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/domain/tracking"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/pkg/clock"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/pkg/metrics"
)

type TrackingServiceImpl struct {
	campaign.AnalyticsRepository
	clock clock.Clock
}

func NewTrackingService(analyticsRepo campaign.AnalyticsRepository, clk clock.Clock) tracking.TrackingService {
	return &TrackingServiceImpl{
		AnalyticsRepository: analyticsRepo,
		clock:               clk,
	}
}

// RecordOpen implements tracking.TrackingService.
func (s *TrackingServiceImpl) RecordOpen(ctx context.Context, event tracking.OpenEvent) error {
	err := s.AnalyticsRepository.RecordOpen(ctx, event.CampaignID, campaign.TrackingEvent{
		TrackingID: event.TrackingID,
		Timestamp:  s.clock.Now().UTC(),
		IP:         event.IP,
		UserAgent:  event.UserAgent,
	})
	if err != nil {
		metrics.RecordTrackingEvent("open", "failed")
		return fmt.Errorf("%w: %w", tracking.ErrStorageFailed, err)
	}

	metrics.RecordTrackingEvent("open", "recorded")
	return nil
}

// RecordClick implements tracking.TrackingService. Nothing is recorded when
// the destination cannot be decoded.
func (s *TrackingServiceImpl) RecordClick(ctx context.Context, event tracking.ClickEvent) (string, error) {
	target, err := tracking.DecodeTargetURL(event.EncodedURL)
	if err != nil {
		metrics.RecordTrackingEvent("click", "invalid")
		return "", err
	}

	err = s.AnalyticsRepository.RecordClick(ctx, event.CampaignID, campaign.TrackingEvent{
		TrackingID: event.TrackingID,
		Timestamp:  s.clock.Now().UTC(),
		IP:         event.IP,
		UserAgent:  event.UserAgent,
		URL:        target,
	})
	if err != nil {
		metrics.RecordTrackingEvent("click", "failed")
		return "", fmt.Errorf("%w: %w", tracking.ErrStorageFailed, err)
	}

	metrics.RecordTrackingEvent("click", "recorded")
	return target, nil
}
