package tgram

import (
	"crypto/subtle"
	"io"
	"net/http"

	"tgram/types"
)

// SecretTokenHeader carries the secret_token passed to setWebhook.
const SecretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

// MaxWebhookBodySize limits webhook request bodies.
var MaxWebhookBodySize int64 = 10 << 20

// WebhookHandler returns an HTTP handler receiving updates pushed by the Bot API.
// Requests without a matching secret token are rejected when secret is not empty.
func (b *Bot) WebhookHandler(secret string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		if secret != "" && subtle.ConstantTimeCompare([]byte(r.Header.Get(SecretTokenHeader)), []byte(secret)) != 1 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		data, err := io.ReadAll(io.LimitReader(r.Body, MaxWebhookBodySize))
		if err != nil {
			b.log.Warnf("read webhook body: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		update := types.As[*types.Update](b.parser, data)
		if update == nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		b.handle(r.Context(), update)
		w.WriteHeader(http.StatusOK)
	})
}
