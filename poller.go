package tgram

import (
	"context"
	"time"

	"tgram/types"
)

// PollOptions configure long polling.
type PollOptions struct {
	// Timeout is the long polling timeout. Defaults to one minute.
	Timeout time.Duration
	// Limit is the maximum number of updates per request.
	Limit int
	// AllowedUpdates lists the update kinds to receive.
	AllowedUpdates []string
	// ErrorDelay is the pause after a failed getUpdates call. Defaults to five seconds.
	ErrorDelay time.Duration
	// Offsets keeps the offset between restarts.
	Offsets OffsetStore
}

// Run receives updates with long polling and dispatches them until the context is canceled.
// Handler errors are logged and do not stop polling.
func (b *Bot) Run(ctx context.Context, options PollOptions) error {
	if options.Timeout == 0 {
		options.Timeout = time.Minute
	}

	if options.ErrorDelay == 0 {
		options.ErrorDelay = 5 * time.Second
	}

	key := botKey(b.token, "")
	var offset types.ID
	if options.Offsets != nil {
		var err error
		if offset, err = options.Offsets.LoadOffset(ctx, key); err != nil {
			b.log.Warnf("load offset: %v", err)
		}
	}

	b.log.Infof("started polling from offset %s", offset)
	defer b.log.Infof("stopped polling")

	for {
		updates, err := b.GetUpdates(ctx, GetUpdatesOptions{
			Offset:         offset,
			Limit:          options.Limit,
			Timeout:        options.Timeout,
			AllowedUpdates: options.AllowedUpdates,
		})

		if ctx.Err() != nil {
			return nil
		}

		if err != nil {
			b.log.Warnf("get updates: %v", err)
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(options.ErrorDelay):
				continue
			}
		}

		next := offset
		for _, update := range updates {
			if update == nil || update.ID < offset {
				continue
			}

			next = update.ID.Increment()
			b.handle(ctx, update)
		}

		if next != offset {
			offset = next
			if options.Offsets != nil {
				// the offset must survive cancellation by a handler
				if err := options.Offsets.SaveOffset(context.WithoutCancel(ctx), key, offset); err != nil {
					b.log.Warnf("save offset: %v", err)
				}
			}
		}
	}
}

func (b *Bot) handle(ctx context.Context, update *types.Update) {
	ok, err := b.Dispatch(ctx, update)
	switch {
	case err != nil:
		b.log.Errorf("handle update %s: %v", update.ID, err)
	case !ok:
		b.log.Debugf("update %s was not handled", update.ID)
	}
}
