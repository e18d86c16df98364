package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Ogbudugodwin/Workhub-sub001/internal/domain/campaign"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/pkg/database"
)

const campaignColumns = `
	id, company_id, name, subject, html_content, sender_name, sender_email,
	recipient_list_ids, status, scheduled_at, sent_at, last_sent_at,
	recipient_count, created_by, created_at, updated_at`

type campaignRepository struct {
	db *database.DB
}

func NewCampaignRepository(db *database.DB) campaign.CampaignRepository {
	return &campaignRepository{db: db}
}

func scanCampaign(row pgx.Row) (campaign.Campaign, error) {
	var (
		c      campaign.Campaign
		status string
	)
	err := row.Scan(
		&c.ID, &c.CompanyID, &c.Name, &c.Subject, &c.HTMLContent, &c.SenderName, &c.SenderEmail,
		&c.RecipientListIDs, &status, &c.ScheduledAt, &c.SentAt, &c.LastSentAt,
		&c.RecipientCount, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return campaign.Campaign{}, err
	}
	c.Status = campaign.Status(status)
	return c, nil
}

func listIDs(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

// Create implements campaign.CampaignRepository.
func (r *campaignRepository) Create(ctx context.Context, c campaign.Campaign) (campaign.Campaign, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO campaigns (
			company_id, name, subject, html_content, sender_name, sender_email,
			recipient_list_ids, status, scheduled_at, created_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + campaignColumns

	created, err := scanCampaign(q.QueryRow(ctx, query,
		c.CompanyID, c.Name, c.Subject, c.HTMLContent, c.SenderName, c.SenderEmail,
		listIDs(c.RecipientListIDs), string(c.Status), c.ScheduledAt, c.CreatedBy,
	))
	if err != nil {
		return campaign.Campaign{}, fmt.Errorf("failed to create campaign: %w", err)
	}

	return created, nil
}

// GetByID implements campaign.CampaignRepository.
func (r *campaignRepository) GetByID(ctx context.Context, id string) (campaign.Campaign, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE id = $1`

	c, err := scanCampaign(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return campaign.Campaign{}, campaign.ErrCampaignNotFound
		}
		return campaign.Campaign{}, fmt.Errorf("failed to get campaign: %w", err)
	}

	return c, nil
}

// List implements campaign.CampaignRepository.
func (r *campaignRepository) List(ctx context.Context, companyID *string) ([]campaign.Campaign, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + campaignColumns + ` FROM campaigns`
	var args []interface{}
	if companyID != nil {
		query += ` WHERE company_id = $1 OR company_id IS NULL`
		args = append(args, *companyID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query campaigns: %w", err)
	}
	defer rows.Close()

	return collectCampaigns(rows)
}

func collectCampaigns(rows pgx.Rows) ([]campaign.Campaign, error) {
	var campaigns []campaign.Campaign
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan campaign: %w", err)
		}
		campaigns = append(campaigns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate campaigns: %w", err)
	}
	return campaigns, nil
}

// Update implements campaign.CampaignRepository. Only draft and scheduled
// campaigns are written; anything else yields ErrCampaignNotEditable.
func (r *campaignRepository) Update(ctx context.Context, c campaign.Campaign) (campaign.Campaign, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE campaigns SET
			name = $2,
			subject = $3,
			html_content = $4,
			sender_name = $5,
			sender_email = $6,
			recipient_list_ids = $7,
			status = $8,
			scheduled_at = $9,
			updated_at = NOW()
		WHERE id = $1
		  AND status IN ('draft', 'scheduled')
		RETURNING ` + campaignColumns

	updated, err := scanCampaign(q.QueryRow(ctx, query,
		c.ID, c.Name, c.Subject, c.HTMLContent, c.SenderName, c.SenderEmail,
		listIDs(c.RecipientListIDs), string(c.Status), c.ScheduledAt,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if _, getErr := r.GetByID(ctx, c.ID); errors.Is(getErr, campaign.ErrCampaignNotFound) {
				return campaign.Campaign{}, campaign.ErrCampaignNotFound
			}
			return campaign.Campaign{}, campaign.ErrCampaignNotEditable
		}
		return campaign.Campaign{}, fmt.Errorf("failed to update campaign: %w", err)
	}

	return updated, nil
}

// MarkSending implements campaign.CampaignRepository.
func (r *campaignRepository) MarkSending(ctx context.Context, id string, sentAt time.Time, recipientCount int, ids []string, staleBefore time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE campaigns SET
			status = 'sending',
			sent_at = $2,
			recipient_count = $3,
			recipient_list_ids = $4,
			updated_at = NOW()
		WHERE id = $1
		  AND (status <> 'sending' OR sent_at < $5)
	`

	var stale *time.Time
	if !staleBefore.IsZero() {
		stale = &staleBefore
	}

	tag, err := q.Exec(ctx, query, id, sentAt, recipientCount, listIDs(ids), stale)
	if err != nil {
		return fmt.Errorf("failed to mark campaign as sending: %w", err)
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return campaign.ErrCampaignAlreadySending
	}

	return nil
}

// MarkSent implements campaign.CampaignRepository.
func (r *campaignRepository) ReleaseSending(ctx context.Context, id string, status campaign.Status) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE campaigns SET
			status = $2,
			updated_at = NOW()
		WHERE id = $1
		  AND status = 'sending'
	`

	if _, err := q.Exec(ctx, query, id, string(status)); err != nil {
		return fmt.Errorf("failed to release sending campaign: %w", err)
	}

	return nil
}

func (r *campaignRepository) MarkSent(ctx context.Context, id string, lastSentAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE campaigns SET
			status = 'sent',
			last_sent_at = $2,
			scheduled_at = NULL,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, lastSentAt)
	if err != nil {
		return fmt.Errorf("failed to mark campaign as sent: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return campaign.ErrCampaignNotFound
	}

	return nil
}

// ListDueScheduled implements campaign.CampaignRepository.
func (r *campaignRepository) ListDueScheduled(ctx context.Context, now time.Time) ([]campaign.Campaign, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + campaignColumns + `
		FROM campaigns
		WHERE status = 'scheduled'
		  AND scheduled_at <= $1
		ORDER BY scheduled_at ASC
	`

	rows, err := q.Query(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("failed to query due campaigns: %w", err)
	}
	defer rows.Close()

	return collectCampaigns(rows)
}
