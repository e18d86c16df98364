package campaign

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Ogbudugodwin/Workhub-sub001/internal/domain/campaign"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/domain/user"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/pkg/clock"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/pkg/logging"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/pkg/mailer"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/pkg/notify"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/pkg/validator"
)

// Options tunes campaign delivery.
type Options struct {
	// BaseURL is the public origin used for tracking links and assets.
	BaseURL string
	// Concurrency bounds the number of in-flight deliveries.
	Concurrency int
	// RatePerSecond caps transport calls per second; 0 disables the limit.
	RatePerSecond float64
	// MaxAttempts is the number of transport attempts per recipient.
	MaxAttempts  int
	RetryBackoff time.Duration
	// StaleSendAfter is how long a send may hold a campaign before another
	// send can reclaim it; 0 never reclaims.
	StaleSendAfter time.Duration
}

type CampaignServiceImpl struct {
	campaignRepo  campaign.CampaignRepository
	listRepo      campaign.RecipientListRepository
	analyticsRepo campaign.AnalyticsRepository
	mailer        mailer.Mailer
	notifier      notify.Notifier
	renderer      *Renderer
	clock         clock.Clock
	opts          Options
	newTrackingID func() string
}

func NewCampaignService(
	campaignRepo campaign.CampaignRepository,
	listRepo campaign.RecipientListRepository,
	analyticsRepo campaign.AnalyticsRepository,
	m mailer.Mailer,
	notifier notify.Notifier,
	clk clock.Clock,
	opts Options,
) (campaign.CampaignService, error) {
	renderer, err := NewRenderer(opts.BaseURL)
	if err != nil {
		return nil, err
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = 1
	}
	if notifier == nil {
		notifier = notify.Noop{}
	}

	return &CampaignServiceImpl{
		campaignRepo:  campaignRepo,
		listRepo:      listRepo,
		analyticsRepo: analyticsRepo,
		mailer:        m,
		notifier:      notifier,
		renderer:      renderer,
		clock:         clk,
		opts:          opts,
		newTrackingID: uuid.NewString,
	}, nil
}

// ==================== CAMPAIGN OPERATIONS ====================

func (s *CampaignServiceImpl) CreateCampaign(ctx context.Context, identity user.Identity, req campaign.CreateCampaignRequest) (campaign.CampaignResponse, error) {
	if !user.Can(identity, user.CapabilityCampaignManage) {
		return campaign.CampaignResponse{}, user.ErrInsufficientPermissions
	}
	if err := req.Validate(); err != nil {
		return campaign.CampaignResponse{}, err
	}

	companyID, err := ownerCompany(identity, req.Global)
	if err != nil {
		return campaign.CampaignResponse{}, err
	}

	entity := campaign.Campaign{
		CompanyID:        companyID,
		Name:             strings.TrimSpace(req.Name),
		Subject:          strings.TrimSpace(req.Subject),
		HTMLContent:      req.HTMLContent,
		SenderName:       strings.TrimSpace(req.SenderName),
		SenderEmail:      strings.TrimSpace(req.SenderEmail),
		RecipientListIDs: req.RecipientListIDs,
		Status:           campaign.StatusDraft,
		CreatedBy:        identity.UserID,
	}

	if err := s.checkLists(ctx, entity.CompanyID, entity.RecipientListIDs); err != nil {
		return campaign.CampaignResponse{}, err
	}
	if req.ScheduledAt != nil {
		if err := s.checkSchedule(*req.ScheduledAt); err != nil {
			return campaign.CampaignResponse{}, err
		}
		scheduledAt := req.ScheduledAt.UTC()
		entity.ScheduledAt = &scheduledAt
		entity.Status = campaign.StatusScheduled
	}

	created, err := s.campaignRepo.Create(ctx, entity)
	if err != nil {
		return campaign.CampaignResponse{}, fmt.Errorf("failed to create campaign: %w", err)
	}

	logging.FromContext(ctx).Info("Campaign created", "campaign_id", created.ID, "status", created.Status)
	return campaign.NewCampaignResponse(created), nil
}

func (s *CampaignServiceImpl) GetCampaign(ctx context.Context, identity user.Identity, id string) (campaign.CampaignResponse, error) {
	if !user.Can(identity, user.CapabilityCampaignManage) {
		return campaign.CampaignResponse{}, user.ErrInsufficientPermissions
	}
	c, err := s.loadCampaign(ctx, identity, id)
	if err != nil {
		return campaign.CampaignResponse{}, err
	}
	return campaign.NewCampaignResponse(c), nil
}

func (s *CampaignServiceImpl) ListCampaigns(ctx context.Context, identity user.Identity) ([]campaign.CampaignResponse, error) {
	if !user.Can(identity, user.CapabilityCampaignManage) {
		return nil, user.ErrInsufficientPermissions
	}
	scope, err := listScope(identity)
	if err != nil {
		return nil, err
	}

	campaigns, err := s.campaignRepo.List(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}

	responses := make([]campaign.CampaignResponse, 0, len(campaigns))
	for _, c := range campaigns {
		responses = append(responses, campaign.NewCampaignResponse(c))
	}
	return responses, nil
}

func (s *CampaignServiceImpl) UpdateCampaign(ctx context.Context, identity user.Identity, req campaign.UpdateCampaignRequest) (campaign.CampaignResponse, error) {
	if !user.Can(identity, user.CapabilityCampaignManage) {
		return campaign.CampaignResponse{}, user.ErrInsufficientPermissions
	}
	if err := req.Validate(); err != nil {
		return campaign.CampaignResponse{}, err
	}

	c, err := s.loadCampaign(ctx, identity, req.ID)
	if err != nil {
		return campaign.CampaignResponse{}, err
	}
	if c.CompanyID == nil && !identity.IsSuperAdmin() {
		return campaign.CampaignResponse{}, campaign.ErrCampaignForbidden
	}
	if !c.Editable() {
		return campaign.CampaignResponse{}, campaign.ErrCampaignNotEditable
	}

	if req.Name != nil {
		c.Name = strings.TrimSpace(*req.Name)
	}
	if req.Subject != nil {
		c.Subject = strings.TrimSpace(*req.Subject)
	}
	if req.HTMLContent != nil {
		c.HTMLContent = *req.HTMLContent
	}
	if req.SenderName != nil {
		c.SenderName = strings.TrimSpace(*req.SenderName)
	}
	if req.SenderEmail != nil {
		c.SenderEmail = strings.TrimSpace(*req.SenderEmail)
	}
	if req.RecipientListIDs != nil {
		if err := s.checkLists(ctx, c.CompanyID, req.RecipientListIDs); err != nil {
			return campaign.CampaignResponse{}, err
		}
		c.RecipientListIDs = req.RecipientListIDs
	}

	switch {
	case req.ClearSchedule:
		c.ScheduledAt = nil
		c.Status = campaign.StatusDraft
	case req.ScheduledAt != nil:
		if err := s.checkSchedule(*req.ScheduledAt); err != nil {
			return campaign.CampaignResponse{}, err
		}
		scheduledAt := req.ScheduledAt.UTC()
		c.ScheduledAt = &scheduledAt
		c.Status = campaign.StatusScheduled
	}

	updated, err := s.campaignRepo.Update(ctx, c)
	if err != nil {
		if errors.Is(err, campaign.ErrCampaignNotFound) || errors.Is(err, campaign.ErrCampaignNotEditable) {
			return campaign.CampaignResponse{}, err
		}
		return campaign.CampaignResponse{}, fmt.Errorf("failed to update campaign: %w", err)
	}
	return campaign.NewCampaignResponse(updated), nil
}

// loadCampaign fetches a campaign visible to identity. Global campaigns are visible to everyone.
func (s *CampaignServiceImpl) loadCampaign(ctx context.Context, identity user.Identity, id string) (campaign.Campaign, error) {
	c, err := s.campaignRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, campaign.ErrCampaignNotFound) {
			return campaign.Campaign{}, campaign.ErrCampaignNotFound
		}
		return campaign.Campaign{}, fmt.Errorf("failed to get campaign: %w", err)
	}
	if !identity.SameCompany(c.CompanyID) {
		return campaign.Campaign{}, campaign.ErrCampaignForbidden
	}
	return c, nil
}

// checkLists verifies every list exists and may be used by a campaign of companyID.
func (s *CampaignServiceImpl) checkLists(ctx context.Context, companyID *string, listIDs []string) error {
	for _, id := range listIDs {
		if _, err := s.usableList(ctx, companyID, id); err != nil {
			return err
		}
	}
	return nil
}

// usableList loads a list that is either global or owned by companyID.
func (s *CampaignServiceImpl) usableList(ctx context.Context, companyID *string, id string) (campaign.RecipientList, error) {
	list, err := s.listRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, campaign.ErrRecipientListNotFound) {
			return campaign.RecipientList{}, campaign.ErrRecipientListNotFound
		}
		return campaign.RecipientList{}, fmt.Errorf("failed to get recipient list: %w", err)
	}
	if list.CompanyID != nil && (companyID == nil || *list.CompanyID != *companyID) {
		return campaign.RecipientList{}, campaign.ErrRecipientListForbidden
	}
	return list, nil
}

func (s *CampaignServiceImpl) checkSchedule(at time.Time) error {
	if !at.After(s.clock.Now()) {
		return validator.ValidationErrors{{Field: "scheduled_at", Message: "scheduled_at must be in the future"}}
	}
	return nil
}

// ownerCompany decides the company a new campaign or list belongs to.
func ownerCompany(identity user.Identity, global bool) (*string, error) {
	if global {
		if !identity.IsSuperAdmin() {
			return nil, user.ErrInsufficientPermissions
		}
		return nil, nil
	}
	if identity.CompanyID == nil {
		return nil, user.ErrCompanyIDRequired
	}
	companyID := *identity.CompanyID
	return &companyID, nil
}

// listScope returns the company filter for list queries; nil means everything.
func listScope(identity user.Identity) (*string, error) {
	if identity.IsSuperAdmin() {
		return nil, nil
	}
	if identity.CompanyID == nil {
		return nil, user.ErrCompanyIDRequired
	}
	return identity.CompanyID, nil
}
