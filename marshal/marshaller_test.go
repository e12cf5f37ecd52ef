package marshal_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tgram/marshal"
	"tgram/types"
)

type transportFunc func(ctx context.Context, method string, body *marshal.Body) ([]byte, error)

func (fun transportFunc) Send(ctx context.Context, method string, body *marshal.Body) ([]byte, error) {
	return fun(ctx, method, body)
}

type recorder struct {
	method      string
	contentType string
	data        []byte
	response    string
}

func (r *recorder) Send(ctx context.Context, method string, body *marshal.Body) ([]byte, error) {
	r.method = method
	r.contentType = body.ContentType()
	buf := new(bytes.Buffer)
	if err := body.EncodeTo(buf); err != nil {
		return nil, err
	}

	r.data = buf.Bytes()
	if r.response == "" {
		return []byte(`{"ok": true, "result": true}`), nil
	}

	return []byte(r.response), nil
}

func (r *recorder) payload(t *testing.T) map[string]interface{} {
	require.Equal(t, marshal.JSONContentType, r.contentType)
	payload := make(map[string]interface{})
	require.Nil(t, json.Unmarshal(r.data, &payload))
	return payload
}

func encode(t *testing.T, body *marshal.Body) string {
	buf := new(bytes.Buffer)
	require.Nil(t, body.EncodeTo(buf))
	return buf.String()
}

func boolPtr(value bool) *bool { return &value }

func TestEncode_AbsenceIsOmission(t *testing.T) {
	var (
		nilString *string
		nilSlice  []types.MessageEntity
		nilMarkup *types.InlineKeyboardMarkup
	)

	body, err := marshal.Encode(marshal.Args{
		"chat_id":              types.ID(10),
		"text":                 "hello",
		"parse_mode":           types.None,
		"disable_notification": false,
		"message_thread_id":    types.ID(0),
		"business_connection":  nilString,
		"entities":             nilSlice,
		"reply_markup":         nilMarkup,
		"reply_parameters":     nil,
		"protect_content":      boolPtr(false),
	})

	require.Nil(t, err)
	assert.JSONEq(t, `{"chat_id": 10, "text": "hello", "protect_content": false}`, encode(t, body))
}

func TestEncode_Values(t *testing.T) {
	body, err := marshal.Encode(marshal.Args{
		"chat_id":      types.Username("channel"),
		"photo":        types.FileID("file"),
		"scope":        &types.BotCommandScopeAllChatAdministrators{},
		"reply_markup": types.InlineKeyboard([2]string{"ok", "data"}),
	})

	require.Nil(t, err)
	assert.JSONEq(t, `{
		"chat_id": "@channel",
		"photo": "file",
		"scope": {"type": "all_chat_administrators"},
		"reply_markup": {"inline_keyboard": [[{"text": "ok", "callback_data": "data"}]]}
	}`, encode(t, body))
}

func TestEncode_Multipart(t *testing.T) {
	body, err := marshal.Encode(marshal.Args{
		"chat_id":         types.ID(-100),
		"caption":         "look",
		"protect_content": boolPtr(true),
		"document":        types.FileBytes{Name: "a.txt", Data: []byte("contents")},
		"media": []types.InputMedia{
			&types.InputMediaPhoto{File: types.FileID("remote")},
			&types.InputMediaPhoto{File: &types.FileReader{Name: "b.jpg", Reader: strings.NewReader("jpeg")}},
		},
	})

	require.Nil(t, err)
	mediaType, params, err := mime.ParseMediaType(body.ContentType())
	require.Nil(t, err)
	assert.Equal(t, "multipart/form-data", mediaType)

	assert.True(t, body.Streaming())
	form, err := multipart.NewReader(strings.NewReader(encode(t, body)), params["boundary"]).ReadForm(1 << 20)
	require.Nil(t, err)
	assert.Equal(t, []string{"-100"}, form.Value["chat_id"])
	assert.Equal(t, []string{"look"}, form.Value["caption"])
	assert.Equal(t, []string{"true"}, form.Value["protect_content"])
	assert.JSONEq(t, `[
		{"type": "photo", "media": "remote"},
		{"type": "photo", "media": "attach://media1"}
	]`, form.Value["media"][0])

	assert.Equal(t, "contents", readPart(t, form, "document"))
	assert.Equal(t, "jpeg", readPart(t, form, "media1"))
	assert.Equal(t, "a.txt", form.File["document"][0].Filename)
}

func readPart(t *testing.T, form *multipart.Form, name string) string {
	require.Len(t, form.File[name], 1)
	file, err := form.File[name][0].Open()
	require.Nil(t, err)
	defer file.Close()
	data, err := io.ReadAll(file)
	require.Nil(t, err)
	return string(data)
}

func TestEncode_UnresolvedPath(t *testing.T) {
	_, err := marshal.Encode(marshal.Args{"document": types.FilePath("/tmp/file")})
	assert.NotNil(t, err)
}

func TestDefaults(t *testing.T) {
	defaults := marshal.Defaults{
		"parse_mode":      types.Markdown,
		"protect_content": true,
	}

	t.Run("absent declared argument gets the default", func(t *testing.T) {
		transport := new(recorder)
		m := &marshal.Marshaller{Transport: transport, Defaults: defaults}
		_, err := m.Call(context.Background(), "sendMessage", marshal.Args{
			"chat_id":         types.ID(1),
			"text":            "*bold*",
			"parse_mode":      types.None,
			"protect_content": (*bool)(nil),
		})

		require.Nil(t, err)
		assert.Equal(t, "sendMessage", transport.method)
		payload := transport.payload(t)
		assert.Equal(t, "Markdown", payload["parse_mode"])
		assert.Equal(t, true, payload["protect_content"])
	})

	t.Run("explicit value wins", func(t *testing.T) {
		transport := new(recorder)
		m := &marshal.Marshaller{Transport: transport, Defaults: defaults}
		args := marshal.Args{
			"chat_id":         types.ID(1),
			"text":            "<b>bold</b>",
			"parse_mode":      types.HTML,
			"protect_content": boolPtr(false),
		}

		_, err := m.Call(context.Background(), "sendMessage", args)
		require.Nil(t, err)
		payload := transport.payload(t)
		assert.Equal(t, "HTML", payload["parse_mode"])
		assert.Equal(t, false, payload["protect_content"])
		assert.Len(t, args, 4)
	})

	t.Run("undeclared argument is left alone", func(t *testing.T) {
		transport := new(recorder)
		m := &marshal.Marshaller{Transport: transport, Defaults: defaults}
		_, err := m.Call(context.Background(), "getChat", marshal.Args{"chat_id": types.ID(1)})
		require.Nil(t, err)
		assert.Equal(t, map[string]interface{}{"chat_id": float64(1)}, transport.payload(t))
	})
}

func TestMarshaller_RemoteError(t *testing.T) {
	transport := &recorder{response: `{"ok": false, "error_code": 400, "description": "Bad Request: chat not found"}`}
	m := &marshal.Marshaller{Transport: transport}
	result, err := m.Call(context.Background(), "sendMessage", marshal.Args{"chat_id": types.ID(1), "text": "x"})
	assert.Nil(t, result)

	remote, ok := marshal.AsRemote(err)
	require.True(t, ok)
	assert.Equal(t, 400, remote.Code)
	assert.Equal(t, "Bad Request: chat not found", remote.Description)
	assert.Equal(t, "sendMessage: 400 Bad Request: chat not found", err.Error())
	assert.False(t, marshal.IsTransport(err))
	assert.Equal(t, "remote", marshal.Result(err))
}

func TestMarshaller_FloodControl(t *testing.T) {
	transport := &recorder{response: `{"ok": false, "error_code": 429, "description": "Too Many Requests", "parameters": {"retry_after": 3}}`}
	m := &marshal.Marshaller{Transport: transport}
	_, err := m.Call(context.Background(), "sendMessage", marshal.Args{"text": "x"})
	remote, ok := marshal.AsRemote(err)
	require.True(t, ok)
	assert.True(t, remote.TooManyRequests())
	assert.Equal(t, 3*time.Second, remote.RetryAfter)
}

func TestMarshaller_TransportError(t *testing.T) {
	cause := errors.New("connection refused")
	m := &marshal.Marshaller{Transport: transportFunc(func(context.Context, string, *marshal.Body) ([]byte, error) {
		return nil, cause
	})}

	_, err := m.Call(context.Background(), "getMe", nil)
	assert.True(t, marshal.IsTransport(err))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "transport", marshal.Result(err))

	_, err = m.Call(context.Background(), "", nil)
	assert.Equal(t, marshal.ErrNoMethod, err)
}

func TestMarshaller_Result(t *testing.T) {
	transport := &recorder{response: `{"ok": true, "result": {"id": 1, "is_bot": true, "first_name": "bot"}}`}
	m := &marshal.Marshaller{Transport: transport}
	result, err := m.Call(context.Background(), "getMe", nil)
	require.Nil(t, err)
	assert.JSONEq(t, `{"id": 1, "is_bot": true, "first_name": "bot"}`, string(result))
	assert.Equal(t, "{}", string(transport.data))
}

type fileResolver map[types.FilePath]types.InputFile

func (r fileResolver) Resolve(_ context.Context, file types.InputFile) (types.InputFile, error) {
	if path, ok := file.(types.FilePath); ok {
		if resolved, ok := r[path]; ok {
			return resolved, nil
		}

		return nil, errors.Errorf("%s not found", path)
	}

	return file, nil
}

func TestMarshaller_Files(t *testing.T) {
	transport := new(recorder)
	m := &marshal.Marshaller{
		Transport: transport,
		Files: fileResolver{
			"/cached.mp4": types.FileID("cached"),
		},
	}

	args := marshal.Args{
		"chat_id": types.ID(1),
		"video":   types.FilePath("/cached.mp4"),
	}

	_, err := m.Call(context.Background(), "sendVideo", args)
	require.Nil(t, err)
	assert.Equal(t, "cached", transport.payload(t)["video"])
	assert.Equal(t, types.FilePath("/cached.mp4"), args["video"])

	_, err = m.Call(context.Background(), "sendVideo", marshal.Args{"video": types.FilePath("/missing.mp4")})
	assert.NotNil(t, err)
	assert.False(t, marshal.IsTransport(err))
}

func TestRetry(t *testing.T) {
	var attempts int32
	next := marshal.CallerFunc(func(ctx context.Context, method string, args marshal.Args) (types.RawMessage, error) {
		switch atomic.AddInt32(&attempts, 1) {
		case 1:
			return nil, &marshal.TransportError{Method: method, Err: errors.New("reset")}
		case 2:
			return nil, &marshal.RemoteError{Method: method, Code: 429, RetryAfter: 10 * time.Millisecond}
		default:
			return types.RawMessage(`true`), nil
		}
	})

	caller := marshal.Retry(next, marshal.RetryOptions{MaxRetries: 3, InitialInterval: time.Millisecond})
	result, err := caller.Call(context.Background(), "sendMessage", nil)
	require.Nil(t, err)
	assert.Equal(t, "true", string(result))
	assert.Equal(t, int32(3), attempts)
}

func TestRetry_Permanent(t *testing.T) {
	var attempts int32
	next := marshal.CallerFunc(func(ctx context.Context, method string, args marshal.Args) (types.RawMessage, error) {
		atomic.AddInt32(&attempts, 1)
		return nil, &marshal.RemoteError{Method: method, Code: 403, Description: "Forbidden"}
	})

	_, err := marshal.Retry(next, marshal.RetryOptions{MaxRetries: 5}).Call(context.Background(), "sendMessage", nil)
	remote, ok := marshal.AsRemote(err)
	require.True(t, ok)
	assert.Equal(t, 403, remote.Code)
	assert.Equal(t, int32(1), attempts)
}

func TestRetry_Exhausted(t *testing.T) {
	var attempts int32
	next := marshal.CallerFunc(func(ctx context.Context, method string, args marshal.Args) (types.RawMessage, error) {
		atomic.AddInt32(&attempts, 1)
		return nil, &marshal.TransportError{Method: method, Err: errors.New("timeout")}
	})

	_, err := marshal.Retry(next, marshal.RetryOptions{MaxRetries: 2, InitialInterval: time.Millisecond}).
		Call(context.Background(), "getMe", nil)
	assert.True(t, marshal.IsTransport(err))
	assert.Equal(t, int32(3), attempts)
}

type closeRecorder struct {
	io.Reader
	closed bool
}

func (r *closeRecorder) Close() error {
	r.closed = true
	return nil
}

func TestMarshaller_ResolveFailureClosesOpened(t *testing.T) {
	opened := &closeRecorder{Reader: strings.NewReader("mp4")}
	m := &marshal.Marshaller{
		Transport: new(recorder),
		Files: fileResolver{
			"/video.mp4": &types.FileReader{Name: "video.mp4", Reader: opened},
		},
	}

	_, err := m.Call(context.Background(), "sendMediaGroup", marshal.Args{
		"media": []types.InputMedia{
			&types.InputMediaVideo{File: types.FilePath("/video.mp4")},
			&types.InputMediaVideo{File: types.FilePath("/missing.mp4")},
		},
	})

	require.NotNil(t, err)
	assert.True(t, opened.closed)
}

func TestMarshaller_ClosesStreams(t *testing.T) {
	stream := &closeRecorder{Reader: strings.NewReader("contents")}
	transport := new(recorder)
	m := &marshal.Marshaller{Transport: transport}
	_, err := m.Call(context.Background(), "sendDocument", marshal.Args{
		"chat_id":  types.ID(1),
		"document": &types.FileReader{Name: "a.txt", Reader: stream},
	})

	require.Nil(t, err)
	assert.True(t, stream.closed)
	assert.Contains(t, string(transport.data), "contents")
}

func TestMarshaller_Log(t *testing.T) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	m := &marshal.Marshaller{Transport: new(recorder), Log: log}

	_, err := m.Call(context.Background(), "getMe", nil)
	require.Nil(t, err)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.DebugLevel, hook.LastEntry().Level)
	assert.Equal(t, "execute [getMe]: ok", hook.LastEntry().Message)

	_, err = m.Call(context.Background(), "", nil)
	require.NotNil(t, err)
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestRetry_StreamIsNotResent(t *testing.T) {
	var sizes []int
	transport := transportFunc(func(ctx context.Context, method string, body *marshal.Body) ([]byte, error) {
		buf := new(bytes.Buffer)
		if err := body.EncodeTo(buf); err != nil {
			return nil, err
		}

		sizes = append(sizes, buf.Len())
		if len(sizes) == 1 {
			return nil, errors.New("connection reset")
		}

		return []byte(`{"ok": true, "result": true}`), nil
	})

	caller := marshal.Retry(&marshal.Marshaller{Transport: transport},
		marshal.RetryOptions{MaxRetries: 3, InitialInterval: time.Millisecond})

	_, err := caller.Call(context.Background(), "sendDocument", marshal.Args{
		"chat_id":  types.ID(1),
		"document": &types.FileReader{Name: "a.bin", Reader: bytes.NewReader([]byte("0123456789"))},
	})

	assert.True(t, marshal.IsTransport(err))
	assert.Len(t, sizes, 1)

	sizes = nil
	_, err = caller.Call(context.Background(), "sendDocument", marshal.Args{
		"chat_id":  types.ID(1),
		"document": types.FileBytes{Name: "a.bin", Data: []byte("0123456789")},
	})

	require.Nil(t, err)
	require.Len(t, sizes, 2)
	assert.Equal(t, sizes[0], sizes[1])
}
