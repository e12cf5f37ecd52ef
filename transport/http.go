// Package transport delivers encoded API requests over HTTP.
package transport

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jfk9w-go/flu"
	httpf "github.com/jfk9w-go/flu/httpf"
	"github.com/pkg/errors"

	"tgram/marshal"
)

// DefaultEndpoint is the public Bot API server.
const DefaultEndpoint = "https://api.telegram.org"

// ValidStatusCodes is a slice of valid API HTTP status codes.
// Responses with these codes carry the API envelope.
var ValidStatusCodes = []int{
	http.StatusOK,
	http.StatusSeeOther,
	http.StatusBadRequest,
	http.StatusUnauthorized,
	http.StatusForbidden,
	http.StatusNotFound,
	http.StatusConflict,
	http.StatusTooManyRequests,
	http.StatusInternalServerError,
}

// StatusError is returned for unexpected HTTP status codes.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e StatusError) Error() string {
	return "unexpected status " + e.Status
}

// HTTP posts requests to {Endpoint}/bot{Token}/{method}.
type HTTP struct {
	Client   *http.Client
	Endpoint string
	Token    string
}

// NewHTTP creates a transport with the request timeout applied to the whole exchange.
// Long polling requests must fit into the timeout.
func NewHTTP(token, endpoint string, timeout time.Duration) *HTTP {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	return &HTTP{
		Client:   &http.Client{Timeout: timeout},
		Endpoint: strings.TrimRight(endpoint, "/"),
		Token:    token,
	}
}

// MethodURL returns the URL of the API method.
func (t *HTTP) MethodURL(method string) string {
	return t.Endpoint + "/bot" + t.Token + "/" + method
}

// FileURL returns the download URL of the file path returned by getFile.
func (t *HTTP) FileURL(path string) string {
	return t.Endpoint + "/file/bot" + t.Token + "/" + path
}

func (t *HTTP) Send(ctx context.Context, method string, body *marshal.Body) ([]byte, error) {
	resp := new(response)
	if err := httpf.NewClient(t.client()).
		POST(t.MethodURL(method)).
		BodyEncoder(body).
		Context(ctx).
		Execute().
		HandleResponse(resp).
		Error; err != nil {
		return nil, errors.Wrap(t.redact(err), "send request")
	}

	return resp.data, nil
}

// Download streams the file from the file endpoint into w.
func (t *HTTP) Download(ctx context.Context, path string, w io.Writer) error {
	if err := httpf.NewClient(t.client()).
		GET(t.FileURL(path)).
		Context(ctx).
		Execute().
		HandleResponse(statusOK{}).
		DecodeBodyTo(flu.IO{W: w}).
		Error; err != nil {
		return errors.Wrap(t.redact(err), "download file")
	}

	return nil
}

func (t *HTTP) client() *http.Client {
	if t.Client != nil {
		return t.Client
	}

	return http.DefaultClient
}

// redact removes the token from URL errors, which would otherwise end up in logs.
func (t *HTTP) redact(err error) error {
	var urlErr *url.Error
	if t.Token != "" && errors.As(err, &urlErr) {
		urlErr.URL = strings.ReplaceAll(urlErr.URL, t.Token, "<token>")
	}

	return err
}

// response reads the API envelope from responses with a valid status code.
type response struct {
	data []byte
}

func (r *response) Handle(resp *http.Response) error {
	if !validStatus(resp.StatusCode) {
		return StatusError{resp.StatusCode, resp.Status}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "read response")
	}

	r.data = data
	return nil
}

type statusOK struct{}

func (statusOK) Handle(resp *http.Response) error {
	if resp.StatusCode != http.StatusOK {
		return StatusError{resp.StatusCode, resp.Status}
	}

	return nil
}

func validStatus(code int) bool {
	for _, valid := range ValidStatusCodes {
		if code == valid {
			return true
		}
	}

	return false
}
