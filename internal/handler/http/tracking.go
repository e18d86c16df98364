package http

import (
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Ogbudugodwin/Workhub-sub001/internal/domain/tracking"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/handler/http/response"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/pkg/logging"
)

// transparentGIF is a 1x1 transparent GIF89a.
var transparentGIF = []byte{
	0x47, 0x49, 0x46, 0x38, 0x39, 0x61, 0x01, 0x00, 0x01, 0x00, 0x80, 0x00, 0x00, 0x00, 0x00, 0x00,
	0xff, 0xff, 0xff, 0x21, 0xf9, 0x04, 0x01, 0x00, 0x00, 0x00, 0x00, 0x2c, 0x00, 0x00, 0x00, 0x00,
	0x01, 0x00, 0x01, 0x00, 0x00, 0x02, 0x02, 0x44, 0x01, 0x00, 0x3b,
}

type TrackingHandler interface {
	Open(w http.ResponseWriter, r *http.Request)
	Click(w http.ResponseWriter, r *http.Request)
}

type trackingHandlerImpl struct {
	trackingService tracking.TrackingService
}

func NewTrackingHandler(trackingService tracking.TrackingService) TrackingHandler {
	return &trackingHandlerImpl{
		trackingService: trackingService,
	}
}

// clientIP strips the port from RemoteAddr. chi's RealIP middleware rewrites
// RemoteAddr from forwarding headers when the router enables it.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// Open always answers with the pixel; recording failures are only logged.
func (h *trackingHandlerImpl) Open(w http.ResponseWriter, r *http.Request) {
	event := tracking.OpenEvent{
		CampaignID: chi.URLParam(r, "campaignId"),
		TrackingID: chi.URLParam(r, "trackingId"),
		IP:         clientIP(r),
		UserAgent:  r.UserAgent(),
	}

	if err := h.trackingService.RecordOpen(r.Context(), event); err != nil {
		logging.FromContext(r.Context()).Error("Failed to record open",
			"campaign_id", event.CampaignID,
			"tracking_id", event.TrackingID,
			"error", err,
		)
	}

	w.Header().Set("Content-Type", "image/gif")
	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, private")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Expires", "0")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(transparentGIF)
}

// Click records the click and redirects to the decoded destination.
func (h *trackingHandlerImpl) Click(w http.ResponseWriter, r *http.Request) {
	event := tracking.ClickEvent{
		CampaignID: chi.URLParam(r, "campaignId"),
		TrackingID: chi.URLParam(r, "trackingId"),
		EncodedURL: r.URL.Query().Get("u"),
		IP:         clientIP(r),
		UserAgent:  r.UserAgent(),
	}

	target, err := h.trackingService.RecordClick(r.Context(), event)
	if err != nil {
		logging.FromContext(r.Context()).Error("Failed to record click",
			"campaign_id", event.CampaignID,
			"tracking_id", event.TrackingID,
			"error", err,
		)
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, private")
	http.Redirect(w, r, target, http.StatusFound)
}
