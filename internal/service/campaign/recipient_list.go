package campaign

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Ogbudugodwin/Workhub-sub001/internal/domain/campaign"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/domain/user"
)

// ==================== RECIPIENT LIST OPERATIONS ====================

func (s *CampaignServiceImpl) CreateRecipientList(ctx context.Context, identity user.Identity, req campaign.CreateRecipientListRequest) (campaign.RecipientListResponse, error) {
	if !user.Can(identity, user.CapabilityCampaignManage) {
		return campaign.RecipientListResponse{}, user.ErrInsufficientPermissions
	}
	if err := req.Validate(); err != nil {
		return campaign.RecipientListResponse{}, err
	}

	companyID, err := ownerCompany(identity, req.Global)
	if err != nil {
		return campaign.RecipientListResponse{}, err
	}

	recipients := make([]campaign.Recipient, 0, len(req.Recipients))
	for _, r := range req.Recipients {
		recipients = append(recipients, campaign.Recipient{
			Email: strings.TrimSpace(r.Email),
			Name:  strings.TrimSpace(r.Name),
			Tags:  r.Tags,
		})
	}

	created, err := s.listRepo.Create(ctx, campaign.RecipientList{
		CompanyID:  companyID,
		Name:       strings.TrimSpace(req.Name),
		Recipients: recipients,
		CreatedBy:  identity.UserID,
	})
	if err != nil {
		return campaign.RecipientListResponse{}, fmt.Errorf("failed to create recipient list: %w", err)
	}
	return campaign.NewRecipientListResponse(created), nil
}

func (s *CampaignServiceImpl) GetRecipientList(ctx context.Context, identity user.Identity, id string) (campaign.RecipientListResponse, error) {
	if !user.Can(identity, user.CapabilityCampaignManage) {
		return campaign.RecipientListResponse{}, user.ErrInsufficientPermissions
	}

	list, err := s.listRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, campaign.ErrRecipientListNotFound) {
			return campaign.RecipientListResponse{}, campaign.ErrRecipientListNotFound
		}
		return campaign.RecipientListResponse{}, fmt.Errorf("failed to get recipient list: %w", err)
	}
	if !identity.SameCompany(list.CompanyID) {
		return campaign.RecipientListResponse{}, campaign.ErrRecipientListForbidden
	}
	return campaign.NewRecipientListResponse(list), nil
}

func (s *CampaignServiceImpl) ListRecipientLists(ctx context.Context, identity user.Identity) ([]campaign.RecipientListSummary, error) {
	if !user.Can(identity, user.CapabilityCampaignManage) {
		return nil, user.ErrInsufficientPermissions
	}
	scope, err := listScope(identity)
	if err != nil {
		return nil, err
	}

	lists, err := s.listRepo.List(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipient lists: %w", err)
	}

	summaries := make([]campaign.RecipientListSummary, 0, len(lists))
	for _, l := range lists {
		summaries = append(summaries, campaign.NewRecipientListSummary(l))
	}
	return summaries, nil
}

// ==================== ANALYTICS ====================

func (s *CampaignServiceImpl) GetAnalytics(ctx context.Context, identity user.Identity, campaignID string) (campaign.AnalyticsResponse, error) {
	if !user.Can(identity, user.CapabilityCampaignManage) {
		return campaign.AnalyticsResponse{}, user.ErrInsufficientPermissions
	}
	if _, err := s.loadCampaign(ctx, identity, campaignID); err != nil {
		return campaign.AnalyticsResponse{}, err
	}

	analytics, err := s.analyticsRepo.Get(ctx, campaignID)
	if err != nil {
		if errors.Is(err, campaign.ErrAnalyticsNotFound) {
			return campaign.AnalyticsResponse{}, campaign.ErrAnalyticsNotFound
		}
		return campaign.AnalyticsResponse{}, fmt.Errorf("failed to get campaign analytics: %w", err)
	}
	return campaign.NewAnalyticsResponse(analytics), nil
}
