package app_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tgram/app"
	"tgram/types"
)

func TestReadConfig(t *testing.T) {
	t.Setenv("TGRAM_TEST_TOKEN_REF", "from-expansion")
	t.Setenv("TGRAMTEST_POLLING_LIMIT", "50")
	t.Setenv("TGRAMTEST_TELEGRAM_PARSEMODE", "HTML")
	t.Setenv("TGRAMTEST_STORAGE_TTL", "90s")

	base := `
telegram:
  token: $TGRAM_TEST_TOKEN_REF
  requesttimeout: 30s
polling:
  timeout: 1m
  limit: 10
  allowedupdates: [message, callback_query]
`

	override := `
telegram:
  protectcontent: true
storage:
  driver: redis
log:
  level: debug
`

	config, err := app.ReadConfig("TGRAMTEST_", strings.NewReader(base), strings.NewReader(override))
	require.Nil(t, err)
	assert.Equal(t, "from-expansion", config.Telegram.Token)
	assert.Equal(t, "HTML", config.Telegram.ParseMode)
	assert.True(t, config.Telegram.ProtectContent)
	assert.Equal(t, 30*time.Second, config.Telegram.RequestTimeout.Unmask())
	assert.Equal(t, time.Minute, config.Polling.Timeout.Unmask())
	assert.Equal(t, 50, config.Polling.Limit)
	assert.Equal(t, []string{"message", "callback_query"}, config.Polling.AllowedUpdates)
	assert.Equal(t, "redis", config.Storage.Driver)
	assert.Equal(t, 90*time.Second, config.Storage.TTL.Unmask())
	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, 5*time.Second, config.Polling.ErrorDelay.GetOrDefault(5*time.Second))
}

func TestReadConfig_InvalidDuration(t *testing.T) {
	_, err := app.ReadConfig("", strings.NewReader("polling: {timeout: soon}"))
	assert.NotNil(t, err)
}

func TestCollectConfig_TypeConflict(t *testing.T) {
	_, err := app.CollectConfig("", strings.NewReader("a: {b: 1}"), strings.NewReader("a: 2"))
	assert.NotNil(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.Nil(t, os.WriteFile(path, []byte("TGRAM_DOTENV_TEST=loaded\n"), 0644))
	t.Cleanup(func() { _ = os.Unsetenv("TGRAM_DOTENV_TEST") })

	require.Nil(t, app.LoadDotEnv(filepath.Join(t.TempDir(), "missing.env"), path))
	assert.Equal(t, "loaded", os.Getenv("TGRAM_DOTENV_TEST"))
}

func TestConfigure(t *testing.T) {
	log := logrus.New()
	require.Nil(t, app.Configure(log, app.LogConfig{Level: "trace", Format: "json"}))
	assert.Equal(t, logrus.TraceLevel, log.GetLevel())
	assert.IsType(t, new(logrus.JSONFormatter), log.Formatter)

	assert.NotNil(t, app.Configure(log, app.LogConfig{Level: "loud"}))
	assert.NotNil(t, app.Configure(log, app.LogConfig{Format: "xml"}))
}

func TestInstance(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var methods []string
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]
		methods = append(methods, method)
		switch method {
		case "getMe":
			_, _ = io.WriteString(w, `{"ok": true, "result": {"id": 1, "is_bot": true, "first_name": "bot", "username": "app_bot"}}`)
		case "sendMessage":
			_, _ = io.WriteString(w, `{"ok": true, "result": {"message_id": 1, "date": 0, "chat": {"id": 1, "type": "private"}}}`)
		default:
			_, _ = io.WriteString(w, `{"ok": true, "result": true}`)
		}
	}))

	defer api.Close()

	redis := miniredis.RunT(t)
	config := new(app.Config)
	config.Telegram.Token = "1:token"
	config.Telegram.Endpoint = api.URL
	config.Telegram.ParseMode = "HTML"
	config.Storage.Driver = "redis"
	config.Storage.Address = redis.Addr()
	config.Metrics.Enabled = true
	config.Retry.MaxRetries = 2

	instance, err := app.Create(config, nil)
	require.Nil(t, err)
	defer instance.Close()

	bot, err := instance.GetBot(ctx)
	require.Nil(t, err)
	same, err := instance.GetBot(ctx)
	require.Nil(t, err)
	assert.Equal(t, bot, same)

	_, err = bot.SendMessage(ctx, types.ID(1), "hello", nil)
	require.Nil(t, err)
	assert.Equal(t, []string{"getMe", "sendMessage"}, methods)

	s, err := instance.GetStorage(ctx)
	require.Nil(t, err)
	require.NotNil(t, s)
	require.Nil(t, s.SaveOffset(ctx, "1", 5))
	assert.True(t, redis.Exists("tgram:offset:1"))

	recorder := httptest.NewRecorder()
	instance.MetricsHandler().ServeHTTP(recorder, httptest.NewRequest("GET", "/metrics", nil))
	assert.Contains(t, recorder.Body.String(), `tgram_calls{method="sendMessage",result="ok"} 1`)
}

func TestInstance_UnsupportedStorage(t *testing.T) {
	config := new(app.Config)
	config.Storage.Driver = "cassandra"
	instance, err := app.Create(config, nil)
	require.Nil(t, err)
	_, err = instance.GetStorage(context.Background())
	assert.NotNil(t, err)
}
