package campaign

import (
	"context"

	"github.com/Ogbudugodwin/Workhub-sub001/internal/domain/user"
)

type CampaignService interface {
	CreateCampaign(ctx context.Context, identity user.Identity, req CreateCampaignRequest) (CampaignResponse, error)
	GetCampaign(ctx context.Context, identity user.Identity, id string) (CampaignResponse, error)
	ListCampaigns(ctx context.Context, identity user.Identity) ([]CampaignResponse, error)
	UpdateCampaign(ctx context.Context, identity user.Identity, req UpdateCampaignRequest) (CampaignResponse, error)

	// Send delivers the campaign to every unique recipient of the selected lists.
	Send(ctx context.Context, identity user.Identity, req SendCampaignRequest) (SendCampaignResponse, error)
	// DispatchDueCampaigns sends scheduled campaigns whose time has come.
	DispatchDueCampaigns(ctx context.Context) (int, error)

	CreateRecipientList(ctx context.Context, identity user.Identity, req CreateRecipientListRequest) (RecipientListResponse, error)
	GetRecipientList(ctx context.Context, identity user.Identity, id string) (RecipientListResponse, error)
	ListRecipientLists(ctx context.Context, identity user.Identity) ([]RecipientListSummary, error)

	GetAnalytics(ctx context.Context, identity user.Identity, campaignID string) (AnalyticsResponse, error)
}
