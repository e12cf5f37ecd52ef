package tgram_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tgram"
	"tgram/filters"
	"tgram/storage"
	"tgram/types"
)

func textUpdate(id types.ID, chatType types.ChatType, text string) *types.Update {
	message := &types.Message{
		ID:   id,
		From: &types.User{ID: 10, FirstName: "user"},
		Chat: &types.Chat{ID: 1, Type: chatType},
		Text: text,
	}

	if strings.HasPrefix(text, "/") {
		message.Entities = []types.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(strings.Fields(text)[0])}}
	}

	return &types.Update{ID: id, Message: message}
}

func TestDispatch_Order(t *testing.T) {
	ctx, cancel := getContext()
	defer cancel()

	var seen []string
	record := func(name string) tgram.MessageHandler {
		return func(ctx context.Context, bot *tgram.Bot, message *types.Message) error {
			seen = append(seen, name+":"+message.Text)
			return nil
		}
	}

	bot := newBot(t, newFakeAPI(t), tgram.Options{
		Handlers: new(tgram.Handlers).
			OnMessage(record("group"), filters.Group).
			OnMessage(record("hello"), filters.Regex("^hello")),
	})

	fallback := bot.OnMessage(record("any"))

	for _, update := range []*types.Update{
		textUpdate(1, types.Supergroup, "hello"),
		textUpdate(2, types.PrivateChat, "hello there"),
		textUpdate(3, types.PrivateChat, "bye"),
	} {
		ok, err := bot.Dispatch(ctx, update)
		assert.True(t, ok)
		assert.Nil(t, err)
	}

	assert.Equal(t, []string{"group:hello", "hello:hello there", "any:bye"}, seen)

	assert.True(t, bot.RemoveHandler(fallback))
	assert.False(t, bot.RemoveHandler(fallback))
	ok, err := bot.Dispatch(ctx, textUpdate(4, types.PrivateChat, "bye"))
	assert.False(t, ok)
	assert.Nil(t, err)
}

func TestDispatch_Kinds(t *testing.T) {
	ctx, cancel := getContext()
	defer cancel()

	var (
		query  *types.CallbackQuery
		member *types.ChatMemberUpdated
		edited *types.Message
	)

	bot := newBot(t, newFakeAPI(t), tgram.Options{})
	bot.OnCallbackQuery(func(ctx context.Context, bot *tgram.Bot, q *types.CallbackQuery) error {
		query = q
		return nil
	})

	bot.OnMyChatMember(func(ctx context.Context, bot *tgram.Bot, u *types.ChatMemberUpdated) error {
		member = u
		return errors.New("failed")
	})

	bot.OnEditedMessage(func(ctx context.Context, bot *tgram.Bot, m *types.Message) error {
		edited = m
		return nil
	})

	ok, err := bot.Dispatch(ctx, &types.Update{ID: 1, CallbackQuery: &types.CallbackQuery{ID: "q", Data: "x"}})
	assert.True(t, ok)
	assert.Nil(t, err)
	assert.Equal(t, "q", query.ID)

	ok, err = bot.Dispatch(ctx, &types.Update{ID: 2, MyChatMember: &types.ChatMemberUpdated{}})
	assert.True(t, ok)
	assert.EqualError(t, err, "failed")
	assert.NotNil(t, member)

	ok, _ = bot.Dispatch(ctx, &types.Update{ID: 3, EditedMessage: &types.Message{ID: 5}})
	assert.True(t, ok)
	assert.Equal(t, types.ID(5), edited.ID)

	ok, _ = bot.Dispatch(ctx, &types.Update{ID: 4, Message: &types.Message{ID: 6}})
	assert.False(t, ok)

	assert.Equal(t, tgram.Kind(""), tgram.KindOf(&types.Update{ID: 5}))
}

func TestOnCommand(t *testing.T) {
	ctx, cancel := getContext()
	defer cancel()

	api := newFakeAPI(t).result("sendMessage", messageResult)
	bot := newBot(t, api, tgram.Options{})

	var commands []*tgram.Command
	handle := func(ctx context.Context, bot *tgram.Bot, cmd *tgram.Command) error {
		commands = append(commands, cmd)
		return cmd.Reply(ctx, bot, "ok")
	}

	bot.OnCommand("/sub", handle)
	bot.OnCommand("sub", handle)

	ok, err := bot.Dispatch(ctx, textUpdate(1, types.GroupChat, `/sub@test_bot https://example.com "two words"`))
	require.True(t, ok)
	require.Nil(t, err)
	require.Len(t, commands, 1)
	assert.Equal(t, "/sub", commands[0].Key)
	assert.Equal(t, []string{"https://example.com", "two words"}, commands[0].Args)
	assert.Equal(t, "sendMessage", api.last().method)
	assert.Equal(t, map[string]interface{}{"message_id": float64(1)}, api.last().args["reply_parameters"])

	ok, _ = bot.Dispatch(ctx, textUpdate(2, types.GroupChat, "/sub@other_bot"))
	assert.False(t, ok)

	ok, err = bot.Dispatch(ctx, &types.Update{ID: 3, CallbackQuery: &types.CallbackQuery{
		ID:   "query",
		From: &types.User{ID: 10},
		Data: "sub a b",
	}})

	require.True(t, ok)
	require.Nil(t, err)
	require.Len(t, commands, 2)
	assert.Equal(t, "query", commands[1].CallbackQueryID)
	assert.Equal(t, []string{"a", "b"}, commands[1].Args)
	assert.Equal(t, "answerCallbackQuery", api.last().method)
}

func TestParseCommand(t *testing.T) {
	cmd := tgram.ParseCommand("test_bot", "/start@Test_Bot  \targ1 'x' \"quoted arg\"\n")
	assert.Equal(t, "/start", cmd.Key)
	assert.Equal(t, "arg1 'x' \"quoted arg\"", cmd.Payload)
	assert.Equal(t, []string{"arg1", "'x'", "quoted arg"}, cmd.Args)
	assert.Equal(t, "quoted arg", cmd.Arg(2))
	assert.Equal(t, "", cmd.Arg(3))

	cmd = tgram.ParseCommand("test_bot", "/help")
	assert.Equal(t, "/help", cmd.Key)
	assert.Empty(t, cmd.Payload)
	assert.Empty(t, cmd.Args)
}

func TestExtractCommand_LeadingOnly(t *testing.T) {
	bot := newBot(t, newFakeAPI(t), tgram.Options{})
	update := &types.Update{ID: 1, Message: &types.Message{
		Chat:     &types.Chat{ID: 1},
		Text:     "/ping now",
		Entities: []types.MessageEntity{{Type: "bot_command", Offset: 0, Length: 5}},
	}}

	cmd := bot.ExtractCommand(context.Background(), update)
	require.NotNil(t, cmd)
	assert.Equal(t, "/ping", cmd.Key)
	assert.Equal(t, []string{"now"}, cmd.Args)

	inline := &types.Update{ID: 2, Message: &types.Message{
		Chat:     &types.Chat{ID: 1},
		Text:     "see /start",
		Entities: []types.MessageEntity{{Type: "bot_command", Offset: 4, Length: 6}},
	}}

	assert.Nil(t, bot.ExtractCommand(context.Background(), inline))
	assert.Nil(t, bot.ExtractCommand(context.Background(), textUpdate(3, types.PrivateChat, "no command")))
}

func TestRun(t *testing.T) {
	ctx, cancel := getContext()
	defer cancel()

	server := miniredis.RunT(t)
	offsets := storage.NewRedis(redis.NewClient(&redis.Options{Addr: server.Addr()}), "", 0)
	defer offsets.Close()
	require.Nil(t, offsets.SaveOffset(ctx, "123456", 10))

	var (
		mu      sync.Mutex
		offsetQ []interface{}
	)

	api := newFakeAPI(t).reply("getUpdates", func(c call) string {
		mu.Lock()
		offsetQ = append(offsetQ, c.args["offset"])
		n := len(offsetQ)
		mu.Unlock()
		if n == 1 {
			return `{"ok": true, "result": [
				{"update_id": 9, "message": {"message_id": 1, "date": 0, "chat": {"id": 1, "type": "private"}, "text": "old"}},
				{"update_id": 10, "message": {"message_id": 2, "date": 0, "chat": {"id": 1, "type": "private"}, "text": "a"}},
				{"update_id": 11, "message": {"message_id": 3, "date": 0, "chat": {"id": 1, "type": "private"}, "text": "b"}}]}`
		}

		time.Sleep(10 * time.Millisecond)
		return `{"ok": true, "result": []}`
	})

	bot := newBot(t, api, tgram.Options{})
	runCtx, stop := context.WithCancel(ctx)
	defer stop()

	var texts []string
	bot.OnMessage(func(ctx context.Context, bot *tgram.Bot, message *types.Message) error {
		texts = append(texts, message.Text)
		if message.Text == "b" {
			stop()
		}

		return nil
	})

	require.Nil(t, bot.Run(runCtx, tgram.PollOptions{Timeout: time.Second, Offsets: offsets}))
	assert.Equal(t, []string{"a", "b"}, texts)
	mu.Lock()
	assert.Equal(t, float64(10), offsetQ[0])
	mu.Unlock()

	offset, err := offsets.LoadOffset(ctx, "123456")
	require.Nil(t, err)
	assert.Equal(t, types.ID(12), offset)
}

func TestWebhookHandler(t *testing.T) {
	var received []types.ID
	bot := newBot(t, newFakeAPI(t), tgram.Options{})
	bot.OnUpdate(func(ctx context.Context, bot *tgram.Bot, update *types.Update) error {
		received = append(received, update.ID)
		return nil
	})

	server := httptest.NewServer(bot.WebhookHandler("s3cret"))
	defer server.Close()

	post := func(secret, body string) int {
		req, err := http.NewRequest(http.MethodPost, server.URL, strings.NewReader(body))
		require.Nil(t, err)
		req.Header.Set(tgram.SecretTokenHeader, secret)
		resp, err := http.DefaultClient.Do(req)
		require.Nil(t, err)
		defer resp.Body.Close()
		return resp.StatusCode
	}

	update := `{"update_id": 77, "message": {"message_id": 1, "date": 0, "chat": {"id": 1, "type": "private"}, "text": "hi"}}`
	assert.Equal(t, http.StatusUnauthorized, post("wrong", update))
	assert.Equal(t, http.StatusBadRequest, post("s3cret", "not json"))
	assert.Equal(t, http.StatusOK, post("s3cret", update))
	assert.Equal(t, []types.ID{77}, received)

	resp, err := http.Get(server.URL)
	require.Nil(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
