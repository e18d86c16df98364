package tracking

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var (
	ErrMissingTargetURL = errors.New("missing target URL")
	ErrInvalidTargetURL = errors.New("invalid target URL")
	ErrStorageFailed    = errors.New("failed to record tracking event")
)

// OpenEvent is a pixel fetch for one recipient of a campaign.
type OpenEvent struct {
	CampaignID string
	TrackingID string
	IP         string
	UserAgent  string
}

// ClickEvent is a tracked link follow. EncodedURL is the raw "u" query value.
type ClickEvent struct {
	CampaignID string
	TrackingID string
	EncodedURL string
	IP         string
	UserAgent  string
}

type TrackingService interface {
	// RecordOpen increments the open counter and appends to the open log.
	RecordOpen(ctx context.Context, event OpenEvent) error
	// RecordClick records the click and returns the decoded destination.
	RecordClick(ctx context.Context, event ClickEvent) (string, error)
}

// EncodeTargetURL encodes a link destination for the "u" query parameter:
// URL-safe base64 without padding.
func EncodeTargetURL(raw string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// DecodeTargetURL reverses EncodeTargetURL. Padded input is accepted.
// Only absolute http and https destinations are returned.
func DecodeTargetURL(encoded string) (string, error) {
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return "", ErrMissingTargetURL
	}

	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(encoded, "="))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidTargetURL, err)
	}

	target := string(raw)
	u, err := url.Parse(target)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidTargetURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("%w: unsupported destination %q", ErrInvalidTargetURL, target)
	}

	return target, nil
}
