package marshal

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"

	"tgram/types"
)

// RetryOptions configure the Retry decorator.
type RetryOptions struct {
	// MaxRetries is the maximum number of retries after the first attempt.
	MaxRetries uint64
	// MaxElapsed bounds the total time spent on a call. Zero means no bound.
	MaxElapsed time.Duration
	// InitialInterval is the first backoff interval. Defaults to 500ms.
	InitialInterval time.Duration
	// Log receives retry warnings.
	Log logrus.FieldLogger
}

type retry struct {
	next    Caller
	options RetryOptions
}

// Retry decorates the caller with retries. Transport errors are retried with exponential backoff,
// flood control errors are retried after the interval requested by the API.
// Other remote errors are returned immediately, as are errors of calls uploading
// from a types.FileReader, which cannot be read twice.
func Retry(next Caller, options RetryOptions) Caller {
	return &retry{next: next, options: options}
}

func (r *retry) Call(ctx context.Context, method string, args Args) (types.RawMessage, error) {
	var result types.RawMessage
	b := r.backOff()
	stream := HasStream(args)
	operation := func() error {
		var err error
		result, err = r.next.Call(ctx, method, args)
		switch {
		case err == nil:
			return nil
		case stream:
			return backoff.Permanent(err)
		case IsTransport(err):
			return err
		}

		if remote, ok := AsRemote(err); ok && remote.TooManyRequests() {
			b.retryAfter = remote.RetryAfter
			return err
		}

		return backoff.Permanent(err)
	}

	notify := func(err error, timeout time.Duration) {
		if log := r.options.Log; log != nil {
			log.Warnf("retry [%s] in %s: %v", method, timeout, err)
		}
	}

	err := backoff.RetryNotify(operation,
		backoff.WithContext(backoff.WithMaxRetries(b, r.options.MaxRetries), ctx),
		notify)
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *retry) backOff() *floodAware {
	exp := backoff.NewExponentialBackOff()
	exp.MaxElapsedTime = r.options.MaxElapsed
	if r.options.InitialInterval > 0 {
		exp.InitialInterval = r.options.InitialInterval
	}

	exp.Reset()
	return &floodAware{BackOff: exp}
}

// floodAware waits at least as long as the last flood control error asked to.
type floodAware struct {
	backoff.BackOff
	retryAfter time.Duration
}

func (b *floodAware) NextBackOff() time.Duration {
	next := b.BackOff.NextBackOff()
	if next == backoff.Stop {
		return next
	}

	if b.retryAfter > next {
		next = b.retryAfter
	}

	b.retryAfter = 0
	return next
}
