package transport_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tgram/marshal"
	"tgram/transport"
)

func TestHTTP_Send(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/bot123:abc/sendMessage", r.URL.Path)
		assert.Equal(t, marshal.JSONContentType, r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, `{"text":"hi"}`, string(body))
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`))
	}))
	defer server.Close()

	tr := transport.NewHTTP("123:abc", server.URL+"/", 0)
	data, err := tr.Send(context.Background(), "sendMessage", marshal.JSONBody([]byte(`{"text":"hi"}`)))

	require.Nil(t, err)
	_, err = marshal.Decode("sendMessage", data)
	remote, ok := marshal.AsRemote(err)
	require.True(t, ok)
	assert.Equal(t, 400, remote.Code)
}

func TestHTTP_UnexpectedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	tr := transport.NewHTTP("token", server.URL, 0)
	m := &marshal.Marshaller{Transport: tr}
	_, err := m.Call(context.Background(), "getMe", nil)
	assert.True(t, marshal.IsTransport(err))
}

func TestHTTP_Cancel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tr := transport.NewHTTP("secret-token", server.URL, 0)
	_, err := tr.Send(ctx, "getUpdates", marshal.JSONBody([]byte("{}")))
	require.NotNil(t, err)
	assert.NotContains(t, err.Error(), "secret-token")
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestHTTP_Deadline(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	tr := transport.NewHTTP("123:secret", server.URL, 0)
	m := &marshal.Marshaller{Transport: tr}
	_, err := m.Call(ctx, "getMe", nil)
	require.NotNil(t, err)
	assert.True(t, marshal.IsTransport(err))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.NotContains(t, err.Error(), "123:secret")

	var urlErr *url.Error
	require.True(t, errors.As(err, &urlErr))
	assert.Contains(t, urlErr.URL, "/bot<token>/getMe")
}

func TestHTTP_Download(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/file/bottoken/photos/file_1.jpg" {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		_, _ = w.Write([]byte("jpeg"))
	}))
	defer server.Close()

	tr := transport.NewHTTP("token", server.URL, 0)
	buf := new(bytes.Buffer)
	require.Nil(t, tr.Download(context.Background(), "photos/file_1.jpg", buf))
	assert.Equal(t, "jpeg", buf.String())

	err := tr.Download(context.Background(), "photos/missing.jpg", new(bytes.Buffer))
	var status transport.StatusError
	require.True(t, errors.As(err, &status))
	assert.Equal(t, http.StatusNotFound, status.StatusCode)
}
