// Package tgram is a Telegram Bot API client.
//
// Calls go through a marshaller which substitutes bot-wide defaults for omitted
// optional arguments, drops absent values and decodes the response envelope.
// Results are built by a parser which honors shape overrides registered on the bot.
package tgram

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"tgram/files"
	"tgram/marshal"
	"tgram/metrics"
	"tgram/transport"
	"tgram/types"
)

// ErrEmptyToken is returned by New when neither a token nor a transport is configured.
var ErrEmptyToken = errors.New("token must not be empty")

// DefaultRequestTimeout bounds a single HTTP exchange, long polling included.
var DefaultRequestTimeout = 2 * time.Minute

// OffsetStore persists the long polling offset between restarts.
type OffsetStore interface {
	LoadOffset(ctx context.Context, bot string) (types.ID, error)
	SaveOffset(ctx context.Context, bot string, offset types.ID) error
}

// Options configure a Bot.
type Options struct {
	// Token is the bot token. It is required unless Transport is set.
	Token string
	// Endpoint is the Bot API server URL. Defaults to the public server.
	Endpoint string
	// RequestTimeout bounds HTTP exchanges of the default transport.
	RequestTimeout time.Duration
	// Transport replaces the default HTTP transport.
	Transport marshal.Transport

	// ParseMode is used when a call declares parse_mode but does not set it.
	ParseMode types.ParseMode
	// ProtectContent is used when a call declares protect_content but does not set it.
	ProtectContent bool
	// DisableNotification is used when a call declares disable_notification but does not set it.
	DisableNotification bool

	// Overrides replace the default parsing of the named shapes.
	Overrides map[types.Shape]types.Constructor
	// Handlers are registered before the bot is returned.
	Handlers *Handlers
	// Username skips the getMe call used to resolve the bot username.
	Username string

	// FileCache enables reuse of file IDs for uploaded contents.
	FileCache files.Cache
	// Metrics enables call instrumentation.
	Metrics metrics.Metrics
	// Retry enables retries of transport and flood control errors.
	Retry *marshal.RetryOptions

	// Logger defaults to the logrus standard logger.
	Logger logrus.FieldLogger
}

// Bot is a Telegram Bot API client. It is safe for concurrent use.
type Bot struct {
	caller   marshal.Caller
	registry *types.Registry
	parser   *types.Parser
	files    *files.Resolver
	http     *transport.HTTP
	token    string
	log      logrus.FieldLogger

	handlers handlerList

	me   *types.User
	meMu sync.Mutex
}

// New creates a bot.
func New(options Options) (*Bot, error) {
	if options.Token == "" && options.Transport == nil {
		return nil, ErrEmptyToken
	}

	log := options.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	log = log.WithField("bot", botKey(options.Token, options.Username))
	timeout := options.RequestTimeout
	if timeout == 0 {
		timeout = DefaultRequestTimeout
	}

	web := transport.NewHTTP(options.Token, options.Endpoint, timeout)
	tr := options.Transport
	if tr == nil {
		tr = web
	}

	b := &Bot{
		registry: types.NewRegistry(options.Overrides),
		files:    &files.Resolver{Cache: options.FileCache, Log: log},
		http:     web,
		token:    options.Token,
		log:      log,
	}

	b.parser = types.NewParser(b.registry, b, func(d types.Diagnostic) {
		log.Debugf("parse: %s", d)
	})

	var caller marshal.Caller = &marshal.Marshaller{
		Transport: tr,
		Defaults:  defaults(options),
		Files:     b.files,
		Log:       log,
	}

	if options.Metrics != nil {
		caller = marshal.Instrument(caller, options.Metrics)
	}

	if options.Retry != nil {
		retry := *options.Retry
		if retry.Log == nil {
			retry.Log = log
		}

		caller = marshal.Retry(caller, retry)
	}

	b.caller = caller
	if options.Username != "" {
		b.me = &types.User{IsBot: true, Username: strings.TrimPrefix(options.Username, "@")}
	}

	if options.Handlers != nil {
		for _, h := range options.Handlers.entries {
			b.handlers.add(h)
		}
	}

	return b, nil
}

func defaults(options Options) marshal.Defaults {
	defaults := make(marshal.Defaults)
	if options.ParseMode != types.None {
		defaults["parse_mode"] = options.ParseMode
	}

	if options.ProtectContent {
		defaults["protect_content"] = true
	}

	if options.DisableNotification {
		defaults["disable_notification"] = true
	}

	return defaults
}

// botKey identifies the bot in logs and offset storage without exposing the token.
func botKey(token, username string) string {
	if username != "" {
		return strings.TrimPrefix(username, "@")
	}

	if id := strings.SplitN(token, ":", 2)[0]; id != "" {
		return id
	}

	return "telegram"
}

// Registry returns the override registry. Overrides may be registered at any time;
// calls in progress see either the old or the new constructor.
func (b *Bot) Registry() *types.Registry {
	return b.registry
}

// Override replaces the parsing of the shape for this bot only.
// A nil constructor restores the default parsing.
func (b *Bot) Override(shape types.Shape, ctor types.Constructor) {
	b.registry.Register(shape, ctor)
}

// Parser returns the parser bound to the bot overrides.
func (b *Bot) Parser() *types.Parser {
	return b.parser
}

// Call executes an arbitrary API method and returns the raw result.
func (b *Bot) Call(ctx context.Context, method string, args marshal.Args) (types.RawMessage, error) {
	return b.caller.Call(ctx, method, args)
}

// CallAs executes an arbitrary API method and parses the result as T.
func CallAs[T any](ctx context.Context, b *Bot, method string, args marshal.Args) (T, error) {
	raw, err := b.Call(ctx, method, args)
	if err != nil {
		var zero T
		return zero, err
	}

	return types.As[T](b.parser, raw), nil
}

func (b *Bot) callOK(ctx context.Context, method string, args marshal.Args) error {
	ok, err := CallAs[bool](ctx, b, method, args)
	if err != nil {
		return err
	}

	if !ok {
		return errors.New("not ok")
	}

	return nil
}

// GetMe is a simple method for testing your bot's auth token. Requires no parameters.
// Returns basic information about the bot in form of a User object.
// See https://core.telegram.org/bots/api#getme
func (b *Bot) GetMe(ctx context.Context) (*types.User, error) {
	return CallAs[*types.User](ctx, b, "getMe", nil)
}

// Username returns the bot username. It is requested once and cached.
func (b *Bot) Username(ctx context.Context) (string, error) {
	b.meMu.Lock()
	defer b.meMu.Unlock()
	if b.me != nil {
		return b.me.Username, nil
	}

	me, err := b.GetMe(ctx)
	if err != nil {
		return "", errors.Wrap(err, "get me")
	}

	if me == nil {
		return "", errors.New("empty getMe result")
	}

	b.me = me
	b.log.Infof("got username: @%s", me.Username)
	return me.Username, nil
}

// FileURL returns the download URL of a file returned by GetFile.
func (b *Bot) FileURL(file *types.File) string {
	if file == nil || file.FilePath == "" {
		return ""
	}

	return b.http.FileURL(file.FilePath)
}

// Download writes the contents of a file returned by GetFile to w.
func (b *Bot) Download(ctx context.Context, file *types.File, w io.Writer) error {
	if file == nil || file.FilePath == "" {
		return errors.New("file path is empty")
	}

	return b.http.Download(ctx, file.FilePath, w)
}

func (b *Bot) remember(ctx context.Context, file types.InputFile, message *types.Message) {
	if message == nil || !types.IsUpload(file) {
		return
	}

	if id, ok := message.FileID(); ok {
		if err := b.files.Remember(ctx, file, id); err != nil {
			b.log.Warnf("remember file id: %v", err)
		}
	}
}
