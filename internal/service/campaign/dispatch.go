package campaign

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/Ogbudugodwin/Workhub-sub001/internal/domain/campaign"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/domain/user"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/pkg/logging"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/pkg/mailer"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/pkg/metrics"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/pkg/notify"
)

// Send implements campaign.CampaignService.
func (s *CampaignServiceImpl) Send(ctx context.Context, identity user.Identity, req campaign.SendCampaignRequest) (campaign.SendCampaignResponse, error) {
	if !user.Can(identity, user.CapabilityCampaignSend) {
		return campaign.SendCampaignResponse{}, user.ErrInsufficientPermissions
	}
	if err := req.Validate(); err != nil {
		return campaign.SendCampaignResponse{}, err
	}

	c, err := s.loadCampaign(ctx, identity, req.CampaignID)
	if err != nil {
		return campaign.SendCampaignResponse{}, err
	}

	return s.dispatch(ctx, c, req.EffectiveListIDs())
}

// DispatchDueCampaigns implements campaign.CampaignService.
func (s *CampaignServiceImpl) DispatchDueCampaigns(ctx context.Context) (int, error) {
	logger := logging.FromContext(ctx)

	due, err := s.campaignRepo.ListDueScheduled(ctx, s.clock.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to list due campaigns: %w", err)
	}

	sent := 0
	for _, c := range due {
		if ctx.Err() != nil {
			return sent, ctx.Err()
		}

		_, err := s.dispatch(ctx, c, c.RecipientListIDs)
		switch {
		case err == nil:
			sent++
		case errors.Is(err, campaign.ErrCampaignAlreadySending):
			logger.Debug("Scheduled campaign already sending", "campaign_id", c.ID)
		case isAudienceError(err):
			// Unresolvable audiences are unscheduled
			logger.Warn("Scheduled campaign moved back to draft", "campaign_id", c.ID, "error", err)
			c.Status = campaign.StatusDraft
			c.ScheduledAt = nil
			if _, uerr := s.campaignRepo.Update(ctx, c); uerr != nil {
				logger.Error("Failed to unschedule campaign", "campaign_id", c.ID, "error", uerr)
			}
		default:
			logger.Error("Scheduled campaign dispatch failed", "campaign_id", c.ID, "error", err)
		}
	}

	return sent, nil
}

func isAudienceError(err error) bool {
	return errors.Is(err, campaign.ErrNoListsSelected) ||
		errors.Is(err, campaign.ErrNoRecipients) ||
		errors.Is(err, campaign.ErrRecipientListNotFound) ||
		errors.Is(err, campaign.ErrRecipientListForbidden)
}

// dispatch resolves the audience of c and delivers it to every unique recipient.
func (s *CampaignServiceImpl) dispatch(ctx context.Context, c campaign.Campaign, listIDs []string) (campaign.SendCampaignResponse, error) {
	if len(listIDs) == 0 {
		return campaign.SendCampaignResponse{}, campaign.ErrNoListsSelected
	}

	recipients, err := s.resolveRecipients(ctx, c, listIDs)
	if err != nil {
		return campaign.SendCampaignResponse{}, err
	}

	if !s.mailer.Configured() || strings.TrimSpace(c.SenderEmail) == "" {
		return campaign.SendCampaignResponse{}, campaign.ErrMailerNotConfigured
	}

	now := s.clock.Now()
	var staleBefore time.Time
	if s.opts.StaleSendAfter > 0 {
		staleBefore = now.Add(-s.opts.StaleSendAfter)
	}

	if err := s.campaignRepo.MarkSending(ctx, c.ID, now, len(recipients), listIDs, staleBefore); err != nil {
		if errors.Is(err, campaign.ErrCampaignAlreadySending) || errors.Is(err, campaign.ErrCampaignNotFound) {
			return campaign.SendCampaignResponse{}, err
		}
		return campaign.SendCampaignResponse{}, fmt.Errorf("failed to mark campaign as sending: %w", err)
	}

	// Once the campaign is marked, bookkeeping must finish even if the caller goes away.
	ctx = context.WithoutCancel(ctx)
	logger := logging.FromContext(ctx).With("campaign_id", c.ID)

	if err := s.analyticsRepo.Reset(ctx, c.ID, len(recipients)); err != nil {
		s.releaseSending(ctx, c)
		return campaign.SendCampaignResponse{}, fmt.Errorf("failed to reset campaign analytics: %w", err)
	}

	logger.Info("Dispatching campaign", "recipients", len(recipients), "concurrency", s.opts.Concurrency)
	start := time.Now()

	delivered, failed := s.deliverAll(ctx, c, recipients)

	metrics.RecordCampaignDispatchDuration(time.Since(start).Seconds())

	if err := s.campaignRepo.MarkSent(ctx, c.ID, s.clock.Now()); err != nil {
		return campaign.SendCampaignResponse{}, fmt.Errorf("failed to mark campaign as sent: %w", err)
	}

	logger.Info("Campaign sent", "recipients", len(recipients), "delivered", delivered, "failed", failed)

	summary := notify.CampaignSummary{
		CampaignID:     c.ID,
		CampaignName:   c.Name,
		RecipientCount: len(recipients),
		Delivered:      delivered,
		Failed:         failed,
	}
	if err := s.notifier.CampaignSent(ctx, summary); err != nil {
		logger.Warn("Failed to notify campaign completion", "error", err)
	}

	return campaign.SendCampaignResponse{
		CampaignID:     c.ID,
		RecipientCount: len(recipients),
		Delivered:      delivered,
		Failed:         failed,
	}, nil
}

// releaseSending returns c to the status it had before MarkSending.
func (s *CampaignServiceImpl) releaseSending(ctx context.Context, c campaign.Campaign) {
	status := c.Status
	if status == campaign.StatusSending {
		status = campaign.StatusDraft
	}
	if err := s.campaignRepo.ReleaseSending(ctx, c.ID, status); err != nil {
		logging.FromContext(ctx).Error("Failed to release sending campaign", "campaign_id", c.ID, "error", err)
	}
}

// resolveRecipients loads the lists in order and de-duplicates their recipients.
func (s *CampaignServiceImpl) resolveRecipients(ctx context.Context, c campaign.Campaign, listIDs []string) ([]campaign.Recipient, error) {
	lists := make([]campaign.RecipientList, 0, len(listIDs))
	for _, id := range listIDs {
		list, err := s.usableList(ctx, c.CompanyID, id)
		if err != nil {
			return nil, err
		}
		lists = append(lists, list)
	}

	recipients := campaign.DedupeRecipients(lists)
	if len(recipients) == 0 {
		return nil, campaign.ErrNoRecipients
	}
	return recipients, nil
}

// deliverAll fans out one delivery per recipient over a bounded pool. Each
// task records its own outcome and never returns an error to the group.
func (s *CampaignServiceImpl) deliverAll(ctx context.Context, c campaign.Campaign, recipients []campaign.Recipient) (int, int) {
	var limiter *rate.Limiter
	if s.opts.RatePerSecond > 0 {
		burst := int(s.opts.RatePerSecond)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(s.opts.RatePerSecond), burst)
	}

	var delivered, failed atomic.Int64

	g := new(errgroup.Group)
	g.SetLimit(s.opts.Concurrency)
	for _, r := range recipients {
		g.Go(func() error {
			if s.deliver(ctx, c, r, limiter) {
				delivered.Add(1)
			} else {
				failed.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	return int(delivered.Load()), int(failed.Load())
}

// deliver renders and sends one message and updates the analytics counters.
func (s *CampaignServiceImpl) deliver(ctx context.Context, c campaign.Campaign, r campaign.Recipient, limiter *rate.Limiter) bool {
	trackingID := s.newTrackingID()
	logger := logging.FromContext(ctx).With("campaign_id", c.ID, "tracking_id", trackingID)

	err := s.sendTracked(ctx, c, r, trackingID, limiter)
	if err != nil {
		metrics.RecordCampaignEmail("failed")
		logger.Warn("Campaign delivery failed", "recipient", r.Email, "error", err)
		if err := s.analyticsRepo.IncrementFailed(ctx, c.ID); err != nil {
			logger.Error("Failed to count failed delivery", "error", err)
		}
		return false
	}

	metrics.RecordCampaignEmail("delivered")
	if err := s.analyticsRepo.IncrementDelivered(ctx, c.ID); err != nil {
		logger.Error("Failed to count delivery", "error", err)
	}
	return true
}

func (s *CampaignServiceImpl) sendTracked(ctx context.Context, c campaign.Campaign, r campaign.Recipient, trackingID string, limiter *rate.Limiter) error {
	body, err := s.renderer.Render(c.ID, trackingID, c.Subject, c.HTMLContent)
	if err != nil {
		return err
	}

	msg := mailer.Message{
		FromName:  c.SenderName,
		FromEmail: c.SenderEmail,
		To:        r.Email,
		Subject:   c.Subject,
		HTML:      body,
		Headers: map[string]string{
			"X-Campaign-ID": c.ID,
			"X-Tracking-ID": trackingID,
		},
	}

	for attempt := 1; ; attempt++ {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return err
			}
		}

		err = s.mailer.Send(ctx, msg)
		if err == nil {
			return nil
		}
		if attempt >= s.opts.MaxAttempts || !retryable(err) {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * s.opts.RetryBackoff):
		}
	}
}

func retryable(err error) bool {
	return !errors.Is(err, mailer.ErrInvalidMessage) && !errors.Is(err, mailer.ErrNotConfigured)
}
