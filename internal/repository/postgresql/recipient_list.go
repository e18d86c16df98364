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

const recipientListColumns = `id, company_id, name, recipients, created_by, created_at, updated_at`

type recipientListRepository struct {
	db *database.DB
}

func NewRecipientListRepository(db *database.DB) campaign.RecipientListRepository {
	return &recipientListRepository{db: db}
}

func scanRecipientList(row pgx.Row) (campaign.RecipientList, error) {
	var (
		l   campaign.RecipientList
		raw []byte
	)
	if err := row.Scan(&l.ID, &l.CompanyID, &l.Name, &raw, &l.CreatedBy, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return campaign.RecipientList{}, err
	}

	recipients, err := decodeRecipients(raw)
	if err != nil {
		return campaign.RecipientList{}, fmt.Errorf("recipient list %s: %w", l.ID, err)
	}
	l.Recipients = recipients
	return l, nil
}

// Create implements campaign.RecipientListRepository.
func (r *recipientListRepository) Create(ctx context.Context, list campaign.RecipientList) (campaign.RecipientList, error) {
	q := GetQuerier(ctx, r.db)

	recipients := list.Recipients
	if recipients == nil {
		recipients = []campaign.Recipient{}
	}
	raw, err := json.Marshal(recipients)
	if err != nil {
		return campaign.RecipientList{}, fmt.Errorf("failed to encode recipients: %w", err)
	}

	query := `
		INSERT INTO recipient_lists (company_id, name, recipients, created_by)
		VALUES ($1, $2, $3::jsonb, $4)
		RETURNING ` + recipientListColumns

	created, err := scanRecipientList(q.QueryRow(ctx, query, list.CompanyID, list.Name, string(raw), list.CreatedBy))
	if err != nil {
		return campaign.RecipientList{}, fmt.Errorf("failed to create recipient list: %w", err)
	}

	return created, nil
}

// GetByID implements campaign.RecipientListRepository.
func (r *recipientListRepository) GetByID(ctx context.Context, id string) (campaign.RecipientList, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + recipientListColumns + ` FROM recipient_lists WHERE id = $1`

	l, err := scanRecipientList(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return campaign.RecipientList{}, campaign.ErrRecipientListNotFound
		}
		return campaign.RecipientList{}, fmt.Errorf("failed to get recipient list: %w", err)
	}

	return l, nil
}

// List implements campaign.RecipientListRepository.
func (r *recipientListRepository) List(ctx context.Context, companyID *string) ([]campaign.RecipientList, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + recipientListColumns + ` FROM recipient_lists`
	var args []interface{}
	if companyID != nil {
		query += ` WHERE company_id = $1 OR company_id IS NULL`
		args = append(args, *companyID)
	}
	query += ` ORDER BY name ASC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query recipient lists: %w", err)
	}
	defer rows.Close()

	var lists []campaign.RecipientList
	for rows.Next() {
		l, err := scanRecipientList(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recipient list: %w", err)
		}
		lists = append(lists, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate recipient lists: %w", err)
	}

	return lists, nil
}
