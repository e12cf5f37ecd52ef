package types

// MessageOrigin (https://core.telegram.org/bots/api#messageorigin)
// describes the origin of a forwarded message and is resolved by the "type" field.
type MessageOrigin interface {
	Value
	OriginDate() int64
}

type (
	MessageOriginUser struct {
		Date       int64 `json:"date"`
		SenderUser *User `json:"sender_user"`
	}

	MessageOriginHiddenUser struct {
		Date           int64  `json:"date"`
		SenderUserName string `json:"sender_user_name"`
	}

	MessageOriginChat struct {
		Date            int64  `json:"date"`
		SenderChat      *Chat  `json:"sender_chat"`
		AuthorSignature string `json:"author_signature,omitempty"`
	}

	MessageOriginChannel struct {
		Date            int64  `json:"date"`
		Chat            *Chat  `json:"chat"`
		MessageID       ID     `json:"message_id"`
		AuthorSignature string `json:"author_signature,omitempty"`
	}
)

func (*MessageOriginUser) Shape() Shape       { return "MessageOriginUser" }
func (*MessageOriginHiddenUser) Shape() Shape { return "MessageOriginHiddenUser" }
func (*MessageOriginChat) Shape() Shape       { return "MessageOriginChat" }
func (*MessageOriginChannel) Shape() Shape    { return "MessageOriginChannel" }

func (o *MessageOriginUser) OriginDate() int64       { return o.Date }
func (o *MessageOriginHiddenUser) OriginDate() int64 { return o.Date }
func (o *MessageOriginChat) OriginDate() int64       { return o.Date }
func (o *MessageOriginChannel) OriginDate() int64    { return o.Date }

func (o MessageOriginUser) MarshalJSON() ([]byte, error) {
	type plain MessageOriginUser
	return tagged("type", "user", plain(o))
}

func (o MessageOriginHiddenUser) MarshalJSON() ([]byte, error) {
	type plain MessageOriginHiddenUser
	return tagged("type", "hidden_user", plain(o))
}

func (o MessageOriginChat) MarshalJSON() ([]byte, error) {
	type plain MessageOriginChat
	return tagged("type", "chat", plain(o))
}

func (o MessageOriginChannel) MarshalJSON() ([]byte, error) {
	type plain MessageOriginChannel
	return tagged("type", "channel", plain(o))
}

func init() {
	register(new(MessageOriginUser), new(MessageOriginHiddenUser), new(MessageOriginChat), new(MessageOriginChannel))
	registerFamily("MessageOrigin", (*MessageOrigin)(nil), "type", byTag("type", map[string]Shape{
		"user":        "MessageOriginUser",
		"hidden_user": "MessageOriginHiddenUser",
		"chat":        "MessageOriginChat",
		"channel":     "MessageOriginChannel",
	}))
}
