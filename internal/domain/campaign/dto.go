package campaign

import (
	"time"

	"github.com/Ogbudugodwin/Workhub-sub001/internal/pkg/validator"
)

// ========================================
// CAMPAIGN DTOs
// ========================================

type CreateCampaignRequest struct {
	Name             string     `json:"name" validate:"required,max=200"`
	Subject          string     `json:"subject" validate:"required,max=300,excludesall=\r\n"`
	HTMLContent      string     `json:"html_content" validate:"required"`
	SenderName       string     `json:"sender_name" validate:"max=200,excludesall=\r\n"`
	SenderEmail      string     `json:"sender_email" validate:"omitempty,email"`
	RecipientListIDs []string   `json:"recipient_list_ids" validate:"omitempty,dive,required"`
	ScheduledAt      *time.Time `json:"scheduled_at,omitempty"`
	// Global campaigns have no company; only super admins may create them.
	Global bool `json:"global"`
}

func (r *CreateCampaignRequest) Validate() error {
	return validator.Struct(r)
}

type UpdateCampaignRequest struct {
	ID               string     `json:"-"` // From URL
	Name             *string    `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Subject          *string    `json:"subject,omitempty" validate:"omitempty,min=1,max=300,excludesall=\r\n"`
	HTMLContent      *string    `json:"html_content,omitempty" validate:"omitempty,min=1"`
	SenderName       *string    `json:"sender_name,omitempty" validate:"omitempty,max=200,excludesall=\r\n"`
	SenderEmail      *string    `json:"sender_email,omitempty" validate:"omitempty,email"`
	RecipientListIDs []string   `json:"recipient_list_ids,omitempty" validate:"omitempty,dive,required"`
	ScheduledAt      *time.Time `json:"scheduled_at,omitempty"`
	// ClearSchedule moves a scheduled campaign back to draft.
	ClearSchedule bool `json:"clear_schedule,omitempty"`
}

func (r *UpdateCampaignRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}
	if validator.IsEmpty(r.ID) {
		return validator.ValidationErrors{{Field: "id", Message: "id is required"}}
	}
	if r.ClearSchedule && r.ScheduledAt != nil {
		return validator.ValidationErrors{{Field: "scheduled_at", Message: "scheduled_at cannot be combined with clear_schedule"}}
	}
	return nil
}

type CampaignResponse struct {
	ID               string   `json:"id"`
	CompanyID        *string  `json:"company_id,omitempty"`
	Name             string   `json:"name"`
	Subject          string   `json:"subject"`
	HTMLContent      string   `json:"html_content"`
	SenderName       string   `json:"sender_name"`
	SenderEmail      string   `json:"sender_email"`
	RecipientListIDs []string `json:"recipient_list_ids"`
	Status           string   `json:"status"`
	ScheduledAt      *string  `json:"scheduled_at,omitempty"`
	SentAt           *string  `json:"sent_at,omitempty"`
	LastSentAt       *string  `json:"last_sent_at,omitempty"`
	RecipientCount   int      `json:"recipient_count"`
	CreatedBy        string   `json:"created_by"`
	CreatedAt        string   `json:"created_at"`
	UpdatedAt        string   `json:"updated_at"`
}

func NewCampaignResponse(c Campaign) CampaignResponse {
	listIDs := c.RecipientListIDs
	if listIDs == nil {
		listIDs = []string{}
	}
	return CampaignResponse{
		ID:               c.ID,
		CompanyID:        c.CompanyID,
		Name:             c.Name,
		Subject:          c.Subject,
		HTMLContent:      c.HTMLContent,
		SenderName:       c.SenderName,
		SenderEmail:      c.SenderEmail,
		RecipientListIDs: listIDs,
		Status:           string(c.Status),
		ScheduledAt:      formatTime(c.ScheduledAt),
		SentAt:           formatTime(c.SentAt),
		LastSentAt:       formatTime(c.LastSentAt),
		RecipientCount:   c.RecipientCount,
		CreatedBy:        c.CreatedBy,
		CreatedAt:        c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        c.UpdatedAt.Format(time.RFC3339),
	}
}

type SendCampaignRequest struct {
	CampaignID string   `json:"-"` // From URL
	ListIDs    []string `json:"list_ids,omitempty" validate:"omitempty,dive,required"`
	AudienceID *string  `json:"audience_id,omitempty" validate:"omitempty,min=1"`
}

func (r *SendCampaignRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}
	if validator.IsEmpty(r.CampaignID) {
		return validator.ValidationErrors{{Field: "campaign_id", Message: "campaign_id is required"}}
	}
	return nil
}

// EffectiveListIDs resolves the lists to send to: ListIDs, else AudienceID.
func (r SendCampaignRequest) EffectiveListIDs() []string {
	if len(r.ListIDs) > 0 {
		return r.ListIDs
	}
	if r.AudienceID != nil && *r.AudienceID != "" {
		return []string{*r.AudienceID}
	}
	return nil
}

type SendCampaignResponse struct {
	CampaignID     string `json:"campaign_id"`
	RecipientCount int    `json:"recipient_count"`
	Delivered      int    `json:"delivered"`
	Failed         int    `json:"failed"`
}

// ========================================
// RECIPIENT LIST DTOs
// ========================================

type RecipientRequest struct {
	Email string   `json:"email" validate:"required,email"`
	Name  string   `json:"name" validate:"max=200"`
	Tags  []string `json:"tags,omitempty"`
}

type CreateRecipientListRequest struct {
	Name       string             `json:"name" validate:"required,max=200"`
	Recipients []RecipientRequest `json:"recipients" validate:"required,min=1,dive"`
	Global     bool               `json:"global"`
}

func (r *CreateRecipientListRequest) Validate() error {
	return validator.Struct(r)
}

type RecipientListResponse struct {
	ID         string      `json:"id"`
	CompanyID  *string     `json:"company_id,omitempty"`
	Name       string      `json:"name"`
	Recipients []Recipient `json:"recipients"`
	CreatedAt  string      `json:"created_at"`
	UpdatedAt  string      `json:"updated_at"`
}

func NewRecipientListResponse(l RecipientList) RecipientListResponse {
	recipients := l.Recipients
	if recipients == nil {
		recipients = []Recipient{}
	}
	return RecipientListResponse{
		ID:         l.ID,
		CompanyID:  l.CompanyID,
		Name:       l.Name,
		Recipients: recipients,
		CreatedAt:  l.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  l.UpdatedAt.Format(time.RFC3339),
	}
}

type RecipientListSummary struct {
	ID             string  `json:"id"`
	CompanyID      *string `json:"company_id,omitempty"`
	Name           string  `json:"name"`
	RecipientCount int     `json:"recipient_count"`
	CreatedAt      string  `json:"created_at"`
}

func NewRecipientListSummary(l RecipientList) RecipientListSummary {
	return RecipientListSummary{
		ID:             l.ID,
		CompanyID:      l.CompanyID,
		Name:           l.Name,
		RecipientCount: len(l.Recipients),
		CreatedAt:      l.CreatedAt.Format(time.RFC3339),
	}
}

// ========================================
// ANALYTICS DTOs
// ========================================

type AnalyticsResponse struct {
	CampaignID string          `json:"campaign_id"`
	TotalSent  int             `json:"total_sent"`
	Delivered  int             `json:"delivered"`
	Failed     int             `json:"failed"`
	Opened     int             `json:"opened"`
	Clicked    int             `json:"clicked"`
	OpenRate   float64         `json:"open_rate"`
	ClickRate  float64         `json:"click_rate"`
	Opens      []TrackingEvent `json:"opens"`
	Clicks     []TrackingEvent `json:"clicks"`
}

func NewAnalyticsResponse(a Analytics) AnalyticsResponse {
	resp := AnalyticsResponse{
		CampaignID: a.CampaignID,
		TotalSent:  a.TotalSent,
		Delivered:  a.Delivered,
		Failed:     a.Failed,
		Opened:     a.Opened,
		Clicked:    a.Clicked,
		Opens:      a.Opens,
		Clicks:     a.Clicks,
	}
	if resp.Opens == nil {
		resp.Opens = []TrackingEvent{}
	}
	if resp.Clicks == nil {
		resp.Clicks = []TrackingEvent{}
	}
	if a.Delivered > 0 {
		resp.OpenRate = float64(a.Opened) / float64(a.Delivered)
		resp.ClickRate = float64(a.Clicked) / float64(a.Delivered)
	}
	return resp
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
