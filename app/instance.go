package app

import (
	"context"
	"io"
	"net/http"
	"sync"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"tgram"
	"tgram/files"
	"tgram/marshal"
	"tgram/metrics"
	"tgram/storage"
	"tgram/types"
	gormutil "tgram/util/gorm"
)

// Storage is both a file ID cache and an offset store.
type Storage interface {
	files.Cache
	tgram.OffsetStore
	io.Closer
}

// Instance lazily creates and owns the bot and its supporting services.
type Instance struct {
	Config   *Config
	Log      *logrus.Logger
	Handlers *tgram.Handlers

	bot      *tgram.Bot
	storage  Storage
	metrics  *metrics.Prometheus
	services []io.Closer
	mu       sync.Mutex
}

// Create configures logging and returns an instance.
func Create(config *Config, handlers *tgram.Handlers) (*Instance, error) {
	log := logrus.StandardLogger()
	if err := Configure(log, config.Log); err != nil {
		return nil, errors.Wrap(err, "configure log")
	}

	return &Instance{
		Config:   config,
		Log:      log,
		Handlers: handlers,
	}, nil
}

// Manage registers a service to be closed with the instance.
func (app *Instance) Manage(service io.Closer) {
	app.services = append(app.services, service)
}

// GetStorage returns the configured storage or nil if none is configured.
func (app *Instance) GetStorage(ctx context.Context) (Storage, error) {
	if app.storage != nil {
		return app.storage, nil
	}

	config := app.Config.Storage
	ttl := config.TTL.Unmask()
	var s Storage
	switch config.Driver {
	case "":
		return nil, nil

	case "postgres":
		db, err := gormutil.NewPostgres(config.DSN, app.Log)
		if err != nil {
			return nil, errors.Wrap(err, "open database")
		}

		sql := storage.NewSQL(db, ttl)
		if err := sql.Init(ctx); err != nil {
			_ = sql.Close()
			return nil, errors.Wrap(err, "init sql storage")
		}

		s = sql

	case "redis":
		client := redis.NewUniversalClient(&redis.UniversalOptions{
			Addrs:    []string{config.Address},
			Password: config.Password,
			DB:       config.DB,
		})

		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, errors.Wrap(err, "ping redis")
		}

		s = storage.NewRedis(client, config.Prefix, ttl)

	default:
		return nil, errors.Errorf("unsupported storage driver: %s", config.Driver)
	}

	app.Log.Infof("using %s storage", config.Driver)
	app.Manage(s)
	app.storage = s
	return s, nil
}

// GetMetrics returns the metrics registry or nil if metrics are disabled.
func (app *Instance) GetMetrics() *metrics.Prometheus {
	if !app.Config.Metrics.Enabled {
		return nil
	}

	if app.metrics == nil {
		m := metrics.NewPrometheus()
		app.metrics = &m
	}

	return app.metrics
}

// MetricsHandler serves the metrics registry. It returns nil if metrics are disabled.
func (app *Instance) MetricsHandler() http.Handler {
	if m := app.GetMetrics(); m != nil {
		return m.Handler()
	}

	return nil
}

// GetBot returns the bot, creating it on first use.
func (app *Instance) GetBot(ctx context.Context) (*tgram.Bot, error) {
	app.mu.Lock()
	defer app.mu.Unlock()
	if app.bot != nil {
		return app.bot, nil
	}

	config := app.Config.Telegram
	options := tgram.Options{
		Token:               config.Token,
		Endpoint:            config.Endpoint,
		Username:            config.Username,
		RequestTimeout:      config.RequestTimeout.Unmask(),
		ParseMode:           types.ParseMode(config.ParseMode),
		ProtectContent:      config.ProtectContent,
		DisableNotification: config.DisableNotification,
		Handlers:            app.Handlers,
		Logger:              app.Log,
	}

	if retry := app.Config.Retry; retry.MaxRetries > 0 || retry.MaxElapsed.Unmask() > 0 {
		options.Retry = &marshal.RetryOptions{
			MaxRetries: retry.MaxRetries,
			MaxElapsed: retry.MaxElapsed.Unmask(),
		}
	}

	if m := app.GetMetrics(); m != nil {
		prefix := app.Config.Metrics.Prefix
		if prefix == "" {
			prefix = "tgram"
		}

		options.Metrics = m.WithPrefix(prefix)
	}

	s, err := app.GetStorage(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "get storage")
	}

	if s != nil {
		options.FileCache = s
	}

	bot, err := tgram.New(options)
	if err != nil {
		return nil, errors.Wrap(err, "create bot")
	}

	username, err := bot.Username(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "get username")
	}

	app.Log.Infof("authorized as @%s", username)
	app.bot = bot
	return bot, nil
}

// Run polls updates until the context is canceled.
func (app *Instance) Run(ctx context.Context) error {
	bot, err := app.GetBot(ctx)
	if err != nil {
		return errors.Wrap(err, "get bot")
	}

	s, err := app.GetStorage(ctx)
	if err != nil {
		return errors.Wrap(err, "get storage")
	}

	config := app.Config.Polling
	options := tgram.PollOptions{
		Timeout:        config.Timeout.Unmask(),
		Limit:          config.Limit,
		AllowedUpdates: config.AllowedUpdates,
		ErrorDelay:     config.ErrorDelay.Unmask(),
	}

	if s != nil {
		options.Offsets = s
	}

	return bot.Run(ctx, options)
}

// Close closes managed services in reverse order.
func (app *Instance) Close() error {
	var result error
	for i := len(app.services) - 1; i >= 0; i-- {
		if err := app.services[i].Close(); err != nil && result == nil {
			result = err
		}
	}

	app.services = nil
	return result
}
