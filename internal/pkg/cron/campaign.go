package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Ogbudugodwin/Workhub-sub001/internal/domain/campaign"
)

type CampaignJobs struct {
	campaignService campaign.CampaignService
	interval        time.Duration
	logger          *slog.Logger
}

func NewCampaignJobs(campaignService campaign.CampaignService, interval time.Duration, logger *slog.Logger) *CampaignJobs {
	if logger == nil {
		logger = slog.Default()
	}
	return &CampaignJobs{
		campaignService: campaignService,
		interval:        interval,
		logger:          logger,
	}
}

func (j *CampaignJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("dispatch_scheduled_campaigns", j.interval, j.DispatchScheduledCampaigns)
}

// DispatchScheduledCampaigns sends every scheduled campaign whose time has passed.
func (j *CampaignJobs) DispatchScheduledCampaigns(ctx context.Context) error {
	sent, err := j.campaignService.DispatchDueCampaigns(ctx)
	if err != nil {
		return fmt.Errorf("failed to dispatch scheduled campaigns: %w", err)
	}

	if sent > 0 {
		j.logger.Info("Cron: Dispatched scheduled campaigns", "count", sent)
	}
	return nil
}
