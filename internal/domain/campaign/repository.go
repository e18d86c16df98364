package campaign

import (
	"context"
	"time"
)

type CampaignRepository interface {
	Create(ctx context.Context, c Campaign) (Campaign, error)
	// GetByID returns ErrCampaignNotFound when absent.
	GetByID(ctx context.Context, id string) (Campaign, error)
	// List returns campaigns of companyID plus global ones; nil lists everything.
	List(ctx context.Context, companyID *string) ([]Campaign, error)
	Update(ctx context.Context, c Campaign) (Campaign, error)

	// MarkSending moves the campaign to sending and stamps the send. It fails
	// with ErrCampaignAlreadySending if another send holds the campaign and that
	// send started at or after staleBefore. A zero staleBefore never reclaims.
	MarkSending(ctx context.Context, id string, sentAt time.Time, recipientCount int, listIDs []string, staleBefore time.Time) error
	// ReleaseSending moves a campaign still in sending back to status.
	ReleaseSending(ctx context.Context, id string, status Status) error
	// MarkSent moves the campaign to sent.
	MarkSent(ctx context.Context, id string, lastSentAt time.Time) error
	// ListDueScheduled returns scheduled campaigns whose ScheduledAt is not after now.
	ListDueScheduled(ctx context.Context, now time.Time) ([]Campaign, error)
}

type RecipientListRepository interface {
	Create(ctx context.Context, list RecipientList) (RecipientList, error)
	// GetByID returns ErrRecipientListNotFound when absent.
	GetByID(ctx context.Context, id string) (RecipientList, error)
	List(ctx context.Context, companyID *string) ([]RecipientList, error)
}

// AnalyticsRepository updates counters and logs with single atomic statements.
type AnalyticsRepository interface {
	// Reset sets TotalSent, zeroes every other counter and empties the logs.
	Reset(ctx context.Context, campaignID string, totalSent int) error
	IncrementDelivered(ctx context.Context, campaignID string) error
	IncrementFailed(ctx context.Context, campaignID string) error
	// RecordOpen increments Opened and appends event to Opens.
	RecordOpen(ctx context.Context, campaignID string, event TrackingEvent) error
	// RecordClick increments Clicked and appends event to Clicks.
	RecordClick(ctx context.Context, campaignID string, event TrackingEvent) error
	// Get returns ErrAnalyticsNotFound when the campaign was never sent.
	Get(ctx context.Context, campaignID string) (Analytics, error)
}
