package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Ogbudugodwin/Workhub-sub001/internal/domain/master/branch"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/handler/http/middleware"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/handler/http/response"
)

type MasterHandler interface {
	// Branch handlers
	GetBranch(w http.ResponseWriter, r *http.Request)
	ListBranches(w http.ResponseWriter, r *http.Request)
	UpdateAttendanceSettings(w http.ResponseWriter, r *http.Request)
}

type masterHandlerImpl struct {
	branchService branch.BranchService
}

func NewMasterHandler(branchService branch.BranchService) MasterHandler {
	return &masterHandlerImpl{
		branchService: branchService,
	}
}

// ==================== BRANCH HANDLERS ====================

func (h *masterHandlerImpl) GetBranch(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing identity")
		return
	}

	result, err := h.branchService.GetBranch(r.Context(), identity, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *masterHandlerImpl) ListBranches(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing identity")
		return
	}

	result, err := h.branchService.ListBranches(r.Context(), identity)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *masterHandlerImpl) UpdateAttendanceSettings(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing identity")
		return
	}

	var req branch.UpdateAttendanceSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.branchService.UpdateAttendanceSettings(r.Context(), identity, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance settings updated successfully", result)
}
