package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Ogbudugodwin/Workhub-sub001/internal/domain/campaign"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/handler/http/middleware"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/handler/http/response"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/pkg/logging"
)

type CampaignHandler interface {
	// Campaign handlers
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Send(w http.ResponseWriter, r *http.Request)
	GetAnalytics(w http.ResponseWriter, r *http.Request)

	// Recipient list handlers
	CreateRecipientList(w http.ResponseWriter, r *http.Request)
	GetRecipientList(w http.ResponseWriter, r *http.Request)
	ListRecipientLists(w http.ResponseWriter, r *http.Request)
}

type campaignHandlerImpl struct {
	campaignService campaign.CampaignService
}

func NewCampaignHandler(campaignService campaign.CampaignService) CampaignHandler {
	return &campaignHandlerImpl{
		campaignService: campaignService,
	}
}

// ==================== CAMPAIGN HANDLERS ====================

func (h *campaignHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing identity")
		return
	}

	var req campaign.CreateCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.campaignService.CreateCampaign(r.Context(), identity, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Campaign created successfully", result)
}

func (h *campaignHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing identity")
		return
	}

	result, err := h.campaignService.GetCampaign(r.Context(), identity, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *campaignHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing identity")
		return
	}

	result, err := h.campaignService.ListCampaigns(r.Context(), identity)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *campaignHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing identity")
		return
	}

	var req campaign.UpdateCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.campaignService.UpdateCampaign(r.Context(), identity, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Campaign updated successfully", result)
}

// Send delivers the campaign synchronously and reports the aggregate outcome.
// Per-recipient failures only show up in the counts.
func (h *campaignHandlerImpl) Send(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing identity")
		return
	}

	var req campaign.SendCampaignRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.CampaignID = chi.URLParam(r, "id")

	result, err := h.campaignService.Send(r.Context(), identity, req)
	if err != nil {
		logging.FromContext(r.Context()).Warn("Campaign send rejected",
			"campaign_id", req.CampaignID,
			"error", err,
		)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Campaign sent", result)
}

func (h *campaignHandlerImpl) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing identity")
		return
	}

	result, err := h.campaignService.GetAnalytics(r.Context(), identity, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ==================== RECIPIENT LIST HANDLERS ====================

func (h *campaignHandlerImpl) CreateRecipientList(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing identity")
		return
	}

	var req campaign.CreateRecipientListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.campaignService.CreateRecipientList(r.Context(), identity, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Recipient list created successfully", result)
}

func (h *campaignHandlerImpl) GetRecipientList(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing identity")
		return
	}

	result, err := h.campaignService.GetRecipientList(r.Context(), identity, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *campaignHandlerImpl) ListRecipientLists(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing identity")
		return
	}

	result, err := h.campaignService.ListRecipientLists(r.Context(), identity)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
