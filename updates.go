package tgram

import (
	"context"
	"time"

	"tgram/marshal"
	"tgram/types"
)

// GetUpdatesOptions is the getUpdates request parameters.
type GetUpdatesOptions struct {
	// Offset is the identifier of the first update to be returned.
	Offset types.ID
	// Limit limits the number of updates to be retrieved. Values between 1-100 are accepted.
	Limit int
	// Timeout is the long polling timeout. Zero means short polling.
	Timeout time.Duration
	// AllowedUpdates lists the update kinds to receive. Empty means the previous setting.
	AllowedUpdates []string
}

// GetUpdates is used to receive incoming updates using long polling.
// See https://core.telegram.org/bots/api#getupdates
func (b *Bot) GetUpdates(ctx context.Context, options GetUpdatesOptions) ([]*types.Update, error) {
	return CallAs[[]*types.Update](ctx, b, "getUpdates", marshal.Args{
		"offset":          options.Offset,
		"limit":           options.Limit,
		"timeout":         int(options.Timeout.Seconds()),
		"allowed_updates": options.AllowedUpdates,
	})
}

// WebhookOptions is the setWebhook request parameters.
type WebhookOptions struct {
	Certificate        types.InputFile
	IPAddress          string
	MaxConnections     int
	AllowedUpdates     []string
	DropPendingUpdates bool
	SecretToken        string
}

// SetWebhook is used to specify a URL and receive incoming updates via an outgoing webhook.
// See https://core.telegram.org/bots/api#setwebhook
func (b *Bot) SetWebhook(ctx context.Context, url string, options *WebhookOptions) error {
	if options == nil {
		options = new(WebhookOptions)
	}

	return b.callOK(ctx, "setWebhook", marshal.Args{
		"url":                  url,
		"certificate":          options.Certificate,
		"ip_address":           options.IPAddress,
		"max_connections":      options.MaxConnections,
		"allowed_updates":      options.AllowedUpdates,
		"drop_pending_updates": options.DropPendingUpdates,
		"secret_token":         options.SecretToken,
	})
}

// DeleteWebhook is used to remove webhook integration if you decide to switch back to getUpdates.
// See https://core.telegram.org/bots/api#deletewebhook
func (b *Bot) DeleteWebhook(ctx context.Context, dropPendingUpdates bool) error {
	return b.callOK(ctx, "deleteWebhook", marshal.Args{
		"drop_pending_updates": dropPendingUpdates,
	})
}

// GetWebhookInfo is used to get current webhook status.
// See https://core.telegram.org/bots/api#getwebhookinfo
func (b *Bot) GetWebhookInfo(ctx context.Context) (*types.WebhookInfo, error) {
	return CallAs[*types.WebhookInfo](ctx, b, "getWebhookInfo", nil)
}
