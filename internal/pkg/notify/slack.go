package notify

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"
)

// CampaignSummary describes a finished campaign dispatch.
type CampaignSummary struct {
	CampaignID     string
	CampaignName   string
	RecipientCount int
	Delivered      int
	Failed         int
}

func (s CampaignSummary) Text() string {
	return fmt.Sprintf("Campaign %q (%s) sent: %d recipients, %d delivered, %d failed",
		s.CampaignName, s.CampaignID, s.RecipientCount, s.Delivered, s.Failed)
}

// Notifier posts operational messages.
type Notifier interface {
	CampaignSent(ctx context.Context, summary CampaignSummary) error
}

type slackPoster interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

type Slack struct {
	client    slackPoster
	channelID string
}

func NewSlack(token, channelID string) *Slack {
	return &Slack{client: slack.New(token), channelID: channelID}
}

func (s *Slack) CampaignSent(ctx context.Context, summary CampaignSummary) error {
	_, _, err := s.client.PostMessageContext(ctx,
		s.channelID,
		slack.MsgOptionText(summary.Text(), false),
	)
	if err != nil {
		return fmt.Errorf("failed to post message to Slack: %w", err)
	}
	return nil
}

// Noop discards notifications.
type Noop struct{}

func (Noop) CampaignSent(context.Context, CampaignSummary) error { return nil }

// New returns a Slack notifier when both token and channel are set, otherwise Noop.
func New(token, channelID string) Notifier {
	if token == "" || channelID == "" {
		return Noop{}
	}
	return NewSlack(token, channelID)
}
