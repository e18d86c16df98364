package campaign

import (
	"strings"
	"time"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusScheduled Status = "scheduled"
	StatusSending   Status = "sending"
	StatusSent      Status = "sent"
)

type Campaign struct {
	ID               string
	CompanyID        *string // nil for global campaigns
	Name             string
	Subject          string
	HTMLContent      string
	SenderName       string
	SenderEmail      string
	RecipientListIDs []string
	Status           Status
	ScheduledAt      *time.Time
	SentAt           *time.Time
	LastSentAt       *time.Time
	RecipientCount   int
	CreatedBy        string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Editable reports whether content and audience may still change.
func (c Campaign) Editable() bool {
	return c.Status == StatusDraft || c.Status == StatusScheduled
}

type Recipient struct {
	Email string   `json:"email"`
	Name  string   `json:"name"`
	Tags  []string `json:"tags"`
}

// NormalizedEmail is the key recipients are de-duplicated by.
func (r Recipient) NormalizedEmail() string {
	return strings.ToLower(strings.TrimSpace(r.Email))
}

type RecipientList struct {
	ID         string
	CompanyID  *string
	Name       string
	Recipients []Recipient
	CreatedBy  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TrackingEvent is one open or click appended to the analytics logs.
type TrackingEvent struct {
	TrackingID string    `json:"tracking_id"`
	Timestamp  time.Time `json:"timestamp"`
	IP         string    `json:"ip"`
	UserAgent  string    `json:"user_agent"`
	URL        string    `json:"url,omitempty"`
}

// Analytics aggregates delivery and engagement of one campaign.
type Analytics struct {
	CampaignID string
	TotalSent  int
	Delivered  int
	Failed     int
	Opened     int
	Clicked    int
	Opens      []TrackingEvent
	Clicks     []TrackingEvent
	UpdatedAt  time.Time
}

// DedupeRecipients concatenates lists in order and keeps the first
// occurrence of each e-mail address, compared case-insensitively.
// Entries with a blank address are dropped.
func DedupeRecipients(lists []RecipientList) []Recipient {
	seen := make(map[string]struct{})
	var out []Recipient
	for _, list := range lists {
		for _, r := range list.Recipients {
			key := r.NormalizedEmail()
			if key == "" {
				continue
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			r.Email = strings.TrimSpace(r.Email)
			out = append(out, r)
		}
	}
	return out
}
