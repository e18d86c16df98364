package campaign

import "errors"

var (
	ErrCampaignNotFound       = errors.New("campaign not found")
	ErrCampaignForbidden      = errors.New("campaign belongs to another company")
	ErrCampaignNotEditable    = errors.New("campaign can only be edited while draft or scheduled")
	ErrCampaignAlreadySending = errors.New("campaign is already being sent")
	ErrNoListsSelected        = errors.New("no lists selected")
	ErrNoRecipients           = errors.New("no recipients")
	ErrMailerNotConfigured    = errors.New("mail transport credentials are missing")

	ErrRecipientListNotFound  = errors.New("recipient list not found")
	ErrRecipientListForbidden = errors.New("recipient list belongs to another company")

	ErrAnalyticsNotFound = errors.New("campaign analytics not found")
	ErrMalformedDocument = errors.New("malformed campaign document")
)
