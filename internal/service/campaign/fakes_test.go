package campaign

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Ogbudugodwin/Workhub-sub001/internal/domain/campaign"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/pkg/mailer"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/pkg/notify"
)

type memoryCampaignRepo struct {
	mu        sync.Mutex
	campaigns map[string]campaign.Campaign
	seq       int
}

func newMemoryCampaignRepo() *memoryCampaignRepo {
	return &memoryCampaignRepo{campaigns: map[string]campaign.Campaign{}}
}

func (m *memoryCampaignRepo) Create(ctx context.Context, c campaign.Campaign) (campaign.Campaign, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	if c.ID == "" {
		c.ID = fmt.Sprintf("campaign-%d", m.seq)
	}
	m.campaigns[c.ID] = c
	return c, nil
}

func (m *memoryCampaignRepo) GetByID(ctx context.Context, id string) (campaign.Campaign, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.campaigns[id]
	if !ok {
		return campaign.Campaign{}, campaign.ErrCampaignNotFound
	}
	return c, nil
}

func (m *memoryCampaignRepo) List(ctx context.Context, companyID *string) ([]campaign.Campaign, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []campaign.Campaign
	for _, c := range m.campaigns {
		if companyID == nil || c.CompanyID == nil || *c.CompanyID == *companyID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memoryCampaignRepo) Update(ctx context.Context, c campaign.Campaign) (campaign.Campaign, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.campaigns[c.ID]; !ok {
		return campaign.Campaign{}, campaign.ErrCampaignNotFound
	}
	m.campaigns[c.ID] = c
	return c, nil
}

func (m *memoryCampaignRepo) MarkSending(ctx context.Context, id string, sentAt time.Time, recipientCount int, listIDs []string, staleBefore time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.campaigns[id]
	if !ok {
		return campaign.ErrCampaignNotFound
	}
	if c.Status == campaign.StatusSending {
		stale := !staleBefore.IsZero() && c.SentAt != nil && c.SentAt.Before(staleBefore)
		if !stale {
			return campaign.ErrCampaignAlreadySending
		}
	}
	c.Status = campaign.StatusSending
	c.SentAt = &sentAt
	c.RecipientCount = recipientCount
	c.RecipientListIDs = listIDs
	m.campaigns[id] = c
	return nil
}

func (m *memoryCampaignRepo) ReleaseSending(ctx context.Context, id string, status campaign.Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.campaigns[id]
	if ok && c.Status == campaign.StatusSending {
		c.Status = status
		m.campaigns[id] = c
	}
	return nil
}

func (m *memoryCampaignRepo) MarkSent(ctx context.Context, id string, lastSentAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.campaigns[id]
	if !ok {
		return campaign.ErrCampaignNotFound
	}
	c.Status = campaign.StatusSent
	c.LastSentAt = &lastSentAt
	m.campaigns[id] = c
	return nil
}

func (m *memoryCampaignRepo) ListDueScheduled(ctx context.Context, now time.Time) ([]campaign.Campaign, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []campaign.Campaign
	for _, c := range m.campaigns {
		if c.Status == campaign.StatusScheduled && c.ScheduledAt != nil && !c.ScheduledAt.After(now) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memoryCampaignRepo) get(id string) campaign.Campaign {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.campaigns[id]
}

type memoryListRepo struct {
	mu    sync.Mutex
	lists map[string]campaign.RecipientList
	seq   int
}

func newMemoryListRepo(lists ...campaign.RecipientList) *memoryListRepo {
	repo := &memoryListRepo{lists: map[string]campaign.RecipientList{}}
	for _, l := range lists {
		repo.lists[l.ID] = l
	}
	return repo
}

func (m *memoryListRepo) Create(ctx context.Context, l campaign.RecipientList) (campaign.RecipientList, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	l.ID = fmt.Sprintf("list-%d", m.seq)
	m.lists[l.ID] = l
	return l, nil
}

func (m *memoryListRepo) GetByID(ctx context.Context, id string) (campaign.RecipientList, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.lists[id]
	if !ok {
		return campaign.RecipientList{}, campaign.ErrRecipientListNotFound
	}
	return l, nil
}

func (m *memoryListRepo) List(ctx context.Context, companyID *string) ([]campaign.RecipientList, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []campaign.RecipientList
	for _, l := range m.lists {
		if companyID == nil || l.CompanyID == nil || *l.CompanyID == *companyID {
			out = append(out, l)
		}
	}
	return out, nil
}

// memoryAnalyticsRepo applies every update under one lock, like the single-statement SQL updates.
type memoryAnalyticsRepo struct {
	mu   sync.Mutex
	docs map[string]*campaign.Analytics
	// resetErrs are returned by successive Reset calls before Reset succeeds.
	resetErrs []error
}

func newMemoryAnalyticsRepo() *memoryAnalyticsRepo {
	return &memoryAnalyticsRepo{docs: map[string]*campaign.Analytics{}}
}

func (m *memoryAnalyticsRepo) Reset(ctx context.Context, campaignID string, totalSent int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.resetErrs) > 0 {
		err := m.resetErrs[0]
		m.resetErrs = m.resetErrs[1:]
		return err
	}
	m.docs[campaignID] = &campaign.Analytics{CampaignID: campaignID, TotalSent: totalSent}
	return nil
}

func (m *memoryAnalyticsRepo) update(campaignID string, fn func(*campaign.Analytics)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[campaignID]
	if !ok {
		return campaign.ErrAnalyticsNotFound
	}
	fn(doc)
	return nil
}

func (m *memoryAnalyticsRepo) IncrementDelivered(ctx context.Context, campaignID string) error {
	return m.update(campaignID, func(a *campaign.Analytics) { a.Delivered++ })
}

func (m *memoryAnalyticsRepo) IncrementFailed(ctx context.Context, campaignID string) error {
	return m.update(campaignID, func(a *campaign.Analytics) { a.Failed++ })
}

func (m *memoryAnalyticsRepo) RecordOpen(ctx context.Context, campaignID string, event campaign.TrackingEvent) error {
	return m.update(campaignID, func(a *campaign.Analytics) {
		a.Opened++
		a.Opens = append(a.Opens, event)
	})
}

func (m *memoryAnalyticsRepo) RecordClick(ctx context.Context, campaignID string, event campaign.TrackingEvent) error {
	return m.update(campaignID, func(a *campaign.Analytics) {
		a.Clicked++
		a.Clicks = append(a.Clicks, event)
	})
}

func (m *memoryAnalyticsRepo) Get(ctx context.Context, campaignID string) (campaign.Analytics, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[campaignID]
	if !ok {
		return campaign.Analytics{}, campaign.ErrAnalyticsNotFound
	}
	return *doc, nil
}

var errTransport = errors.New("transport unavailable")

// recordingMailer records every message and fails for addresses in failFor.
type recordingMailer struct {
	mu           sync.Mutex
	sent         []mailer.Message
	attempts     map[string]int
	failFor      map[string]bool
	failAttempts map[string]int // fail the first n attempts for an address
	unconfigured bool
}

func newRecordingMailer() *recordingMailer {
	return &recordingMailer{
		attempts:     map[string]int{},
		failFor:      map[string]bool{},
		failAttempts: map[string]int{},
	}
}

func (m *recordingMailer) Send(ctx context.Context, msg mailer.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attempts[msg.To]++
	if m.failFor[msg.To] || m.attempts[msg.To] <= m.failAttempts[msg.To] {
		return errTransport
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *recordingMailer) Configured() bool { return !m.unconfigured }

func (m *recordingMailer) recipients() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.sent))
	for _, msg := range m.sent {
		out = append(out, msg.To)
	}
	return out
}

type recordingNotifier struct {
	mu        sync.Mutex
	summaries []notify.CampaignSummary
}

func (n *recordingNotifier) CampaignSent(ctx context.Context, summary notify.CampaignSummary) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.summaries = append(n.summaries, summary)
	return nil
}
