package marshal

import (
	"fmt"
	"time"

	"github.com/pkg/errors"

	"tgram/types"
)

// responseParameters contains information about why a request was unsuccessful.
// See https://core.telegram.org/bots/api#responseparameters
type responseParameters struct {
	MigrateToChatID types.ID `json:"migrate_to_chat_id"`
	RetryAfter      int      `json:"retry_after"`
}

// response is a generic Telegram Bot API response.
// See https://core.telegram.org/bots/api#making-requests
type response struct {
	Ok          bool                `json:"ok"`
	ErrorCode   int                 `json:"error_code"`
	Description string              `json:"description"`
	Result      types.RawMessage    `json:"result"`
	Parameters  *responseParameters `json:"parameters"`
}

// Decode unwraps the response envelope. It returns the raw result on success
// and *RemoteError if the API reported a failure.
func Decode(method string, data []byte) (types.RawMessage, error) {
	r := new(response)
	if err := json.Unmarshal(data, r); err != nil {
		return nil, &TransportError{Method: method, Err: errors.Wrap(err, "decode response")}
	}

	if !r.Ok {
		err := &RemoteError{
			Method:      method,
			Code:        r.ErrorCode,
			Description: r.Description,
		}

		if r.Parameters != nil {
			err.RetryAfter = time.Duration(r.Parameters.RetryAfter) * time.Second
			err.MigrateToChatID = r.Parameters.MigrateToChatID
		}

		return nil, err
	}

	return r.Result, nil
}

// RemoteError is an error returned by Telegram Bot API.
// See https://core.telegram.org/bots/api#making-requests
type RemoteError struct {
	// Method is the API method name.
	Method string
	// Code is an integer error code.
	Code int
	// Description explains the error.
	Description string
	// RetryAfter is set in case of exceeding flood control.
	RetryAfter time.Duration
	// MigrateToChatID is set when a group has been migrated to a supergroup.
	MigrateToChatID types.ID
}

func (e *RemoteError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("%s: %d %s (retry after %.0f seconds)", e.Method, e.Code, e.Description, e.RetryAfter.Seconds())
	}

	return fmt.Sprintf("%s: %d %s", e.Method, e.Code, e.Description)
}

// TooManyRequests checks if the error is caused by flood control.
func (e *RemoteError) TooManyRequests() bool {
	return e.Code == 429 || e.RetryAfter > 0
}

// TransportError wraps a failure to deliver the request or to read the response.
type TransportError struct {
	Method string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Method, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Cause is for github.com/pkg/errors.Cause compatibility.
func (e *TransportError) Cause() error {
	return e.Err
}

// AsRemote extracts *RemoteError from the error chain.
func AsRemote(err error) (*RemoteError, bool) {
	var remote *RemoteError
	if errors.As(err, &remote) {
		return remote, true
	}

	return nil, false
}

// IsTransport checks if the error chain contains *TransportError.
func IsTransport(err error) bool {
	var transport *TransportError
	return errors.As(err, &transport)
}
