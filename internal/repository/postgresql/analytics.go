package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Ogbudugodwin/Workhub-sub001/internal/domain/campaign"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/pkg/database"
)

// analyticsRepository keeps every counter change and log append in a single
// UPDATE so concurrent tracking requests never lose writes.
type analyticsRepository struct {
	db *database.DB
}

func NewAnalyticsRepository(db *database.DB) campaign.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

// Reset implements campaign.AnalyticsRepository.
func (r *analyticsRepository) Reset(ctx context.Context, campaignID string, totalSent int) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO campaign_analytics (campaign_id, total_sent)
		VALUES ($1, $2)
		ON CONFLICT (campaign_id) DO UPDATE SET
			total_sent = EXCLUDED.total_sent,
			delivered = 0,
			failed = 0,
			opened = 0,
			clicked = 0,
			opens = '[]'::jsonb,
			clicks = '[]'::jsonb,
			updated_at = NOW()
	`

	if _, err := q.Exec(ctx, query, campaignID, totalSent); err != nil {
		return fmt.Errorf("failed to reset campaign analytics: %w", err)
	}
	return nil
}

// IncrementDelivered implements campaign.AnalyticsRepository.
func (r *analyticsRepository) IncrementDelivered(ctx context.Context, campaignID string) error {
	return r.exec(ctx, `
		UPDATE campaign_analytics
		SET delivered = delivered + 1, updated_at = NOW()
		WHERE campaign_id = $1
	`, campaignID)
}

// IncrementFailed implements campaign.AnalyticsRepository.
func (r *analyticsRepository) IncrementFailed(ctx context.Context, campaignID string) error {
	return r.exec(ctx, `
		UPDATE campaign_analytics
		SET failed = failed + 1, updated_at = NOW()
		WHERE campaign_id = $1
	`, campaignID)
}

// RecordOpen implements campaign.AnalyticsRepository.
func (r *analyticsRepository) RecordOpen(ctx context.Context, campaignID string, event campaign.TrackingEvent) error {
	raw, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode open event: %w", err)
	}
	return r.exec(ctx, `
		UPDATE campaign_analytics
		SET opened = opened + 1,
			opens = opens || jsonb_build_array($2::jsonb),
			updated_at = NOW()
		WHERE campaign_id = $1
	`, campaignID, string(raw))
}

// RecordClick implements campaign.AnalyticsRepository.
func (r *analyticsRepository) RecordClick(ctx context.Context, campaignID string, event campaign.TrackingEvent) error {
	raw, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode click event: %w", err)
	}
	return r.exec(ctx, `
		UPDATE campaign_analytics
		SET clicked = clicked + 1,
			clicks = clicks || jsonb_build_array($2::jsonb),
			updated_at = NOW()
		WHERE campaign_id = $1
	`, campaignID, string(raw))
}

func (r *analyticsRepository) exec(ctx context.Context, query string, args ...interface{}) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update campaign analytics: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return campaign.ErrAnalyticsNotFound
	}
	return nil
}

// Get implements campaign.AnalyticsRepository.
func (r *analyticsRepository) Get(ctx context.Context, campaignID string) (campaign.Analytics, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT campaign_id, total_sent, delivered, failed, opened, clicked, opens, clicks, updated_at
		FROM campaign_analytics
		WHERE campaign_id = $1
	`

	var (
		a                   campaign.Analytics
		rawOpens, rawClicks []byte
	)
	err := q.QueryRow(ctx, query, campaignID).Scan(
		&a.CampaignID, &a.TotalSent, &a.Delivered, &a.Failed, &a.Opened, &a.Clicked,
		&rawOpens, &rawClicks, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return campaign.Analytics{}, campaign.ErrAnalyticsNotFound
		}
		return campaign.Analytics{}, fmt.Errorf("failed to get campaign analytics: %w", err)
	}

	if a.Opens, err = decodeEvents("opens", rawOpens); err != nil {
		return campaign.Analytics{}, err
	}
	if a.Clicks, err = decodeEvents("clicks", rawClicks); err != nil {
		return campaign.Analytics{}, err
	}

	return a, nil
}
