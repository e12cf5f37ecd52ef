package marshal

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"tgram/types"
)

// ErrNoMethod is returned for calls with an empty method name.
var ErrNoMethod = errors.New("empty method name")

// Caller executes an API method and returns the raw result.
type Caller interface {
	Call(ctx context.Context, method string, args Args) (types.RawMessage, error)
}

// CallerFunc is a functional Caller.
type CallerFunc func(ctx context.Context, method string, args Args) (types.RawMessage, error)

func (fun CallerFunc) Call(ctx context.Context, method string, args Args) (types.RawMessage, error) {
	return fun(ctx, method, args)
}

// Transport delivers an encoded request and returns the raw response body.
// Response bodies carrying API errors are returned without error.
type Transport interface {
	Send(ctx context.Context, method string, body *Body) ([]byte, error)
}

// FileResolver turns local files into a form which can be encoded: an upload reader
// or a known file ID.
type FileResolver interface {
	Resolve(ctx context.Context, file types.InputFile) (types.InputFile, error)
}

// Marshaller is the Caller performing one network round trip per call.
// It holds no per-call state and is safe for concurrent use.
type Marshaller struct {
	Transport Transport
	Defaults  Defaults
	Files     FileResolver
	Log       logrus.FieldLogger
}

func (m *Marshaller) Call(ctx context.Context, method string, args Args) (types.RawMessage, error) {
	result, err := m.call(ctx, method, args)
	if log := m.Log; log != nil {
		if err != nil {
			log.Warnf("execute [%s]: %v", method, err)
		} else {
			log.Debugf("execute [%s]: ok", method)
		}
	}

	return result, err
}

func (m *Marshaller) call(ctx context.Context, method string, args Args) (types.RawMessage, error) {
	if method == "" {
		return nil, ErrNoMethod
	}

	args, err := m.resolve(ctx, m.Defaults.Apply(args))
	if err != nil {
		return nil, errors.Wrap(err, "resolve files")
	}

	body, err := Encode(args)
	if err != nil {
		closeStreams(args)
		return nil, errors.Wrapf(err, "encode %s", method)
	}

	data, err := m.Transport.Send(ctx, method, body)
	_ = body.Close()
	if err != nil {
		return nil, &TransportError{Method: method, Err: err}
	}

	return Decode(method, data)
}

// resolve replaces uploads with what the file resolver returns. Readers opened
// by the resolver are closed if a later argument fails to resolve.
func (m *Marshaller) resolve(ctx context.Context, args Args) (result Args, err error) {
	var resolved Args
	defer func() {
		if err != nil && resolved != nil {
			closeOpened(args, resolved)
		}
	}()

	set := func(key string, value interface{}) {
		if resolved == nil {
			resolved = args.Clone()
		}

		resolved[key] = value
	}

	for key, value := range args {
		switch value := value.(type) {
		case types.InputFile:
			if types.IsUpload(value) {
				file, err := m.resolveFile(ctx, value)
				if err != nil {
					return nil, errors.Wrap(err, key)
				}

				set(key, file)
			}

		case types.InputMedia:
			if value != nil && types.IsUpload(value.Media()) {
				file, err := m.resolveFile(ctx, value.Media())
				if err != nil {
					return nil, errors.Wrap(err, key)
				}

				set(key, value.WithMedia(file))
			}

		case []types.InputMedia:
			var media []types.InputMedia
			for i, item := range value {
				if item == nil || !types.IsUpload(item.Media()) {
					continue
				}

				file, err := m.resolveFile(ctx, item.Media())
				if err != nil {
					return nil, errors.Wrapf(err, "%s[%d]", key, i)
				}

				if media == nil {
					media = append([]types.InputMedia{}, value...)
					set(key, media)
				}

				media[i] = item.WithMedia(file)
			}
		}
	}

	if resolved == nil {
		return args, nil
	}

	return resolved, nil
}

func (m *Marshaller) resolveFile(ctx context.Context, file types.InputFile) (types.InputFile, error) {
	if m.Files == nil {
		return file, nil
	}

	return m.Files.Resolve(ctx, file)
}
