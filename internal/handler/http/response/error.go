package response

import (
	"errors"
	"net/http"

	"github.com/Ogbudugodwin/Workhub-sub001/internal/domain/attendance"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/domain/campaign"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/domain/company"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/domain/master/branch"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/domain/tracking"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/domain/user"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var outOfRange *attendance.OutOfRangeError
	if errors.As(err, &outOfRange) {
		OutOfRange(w, "You are outside the allowed attendance area", outOfRange.Distance, outOfRange.AllowedRadius)
		return
	}

	switch {
	// Identity errors
	case errors.Is(err, user.ErrInvalidIdentity), errors.Is(err, user.ErrInvalidRole):
		Unauthorized(w, err.Error())
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, "Insufficient permissions")
	case errors.Is(err, user.ErrCompanyIDRequired):
		BadRequest(w, "Company ID is required", nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyClockedIn):
		Conflict(w, "Already clocked in")
	case errors.Is(err, attendance.ErrBranchForbidden):
		Forbidden(w, "Branch is not assigned to you")
	case errors.Is(err, attendance.ErrLocationRequired):
		BadRequest(w, "Location required", nil)
	case errors.Is(err, attendance.ErrLateReasonRequired):
		LateReasonRequired(w, "Late reason required")
	case errors.Is(err, attendance.ErrNotClockedIn):
		NotFound(w, "You have not clocked in today")
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrExportTooLarge):
		BadRequest(w, err.Error(), nil)

	// Branch and company errors
	case errors.Is(err, branch.ErrBranchNotFound):
		NotFound(w, "Branch not found")
	case errors.Is(err, branch.ErrUnauthorizedAccess):
		Forbidden(w, "Unauthorized access to branch")
	case errors.Is(err, company.ErrCompanyNotFound):
		NotFound(w, "Company not found")

	// Campaign domain errors
	case errors.Is(err, campaign.ErrCampaignNotFound):
		NotFound(w, "Campaign not found")
	case errors.Is(err, campaign.ErrCampaignForbidden):
		Forbidden(w, "Campaign belongs to another company")
	case errors.Is(err, campaign.ErrCampaignNotEditable):
		Conflict(w, "Campaign can only be edited while draft or scheduled")
	case errors.Is(err, campaign.ErrCampaignAlreadySending):
		Conflict(w, "Campaign is already being sent")
	case errors.Is(err, campaign.ErrNoListsSelected):
		BadRequest(w, "No lists selected", nil)
	case errors.Is(err, campaign.ErrNoRecipients):
		BadRequest(w, "No recipients", nil)
	case errors.Is(err, campaign.ErrMailerNotConfigured):
		BadRequest(w, "Mail transport is not configured", nil)
	case errors.Is(err, campaign.ErrRecipientListNotFound):
		NotFound(w, "Recipient list not found")
	case errors.Is(err, campaign.ErrRecipientListForbidden):
		Forbidden(w, "Recipient list belongs to another company")
	case errors.Is(err, campaign.ErrAnalyticsNotFound):
		NotFound(w, "Campaign analytics not found")

	// Tracking errors
	case errors.Is(err, tracking.ErrMissingTargetURL):
		BadRequest(w, "Missing target URL", nil)
	case errors.Is(err, tracking.ErrInvalidTargetURL):
		BadGateway(w, "Invalid target URL")
	case errors.Is(err, tracking.ErrStorageFailed):
		BadGateway(w, "Failed to record click")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
