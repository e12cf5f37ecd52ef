package types

type (
	// CallbackQuery (https://core.telegram.org/bots/api#callbackquery)
	CallbackQuery struct {
		ID              string   `json:"id"`
		From            *User    `json:"from"`
		Message         *Message `json:"message,omitempty"`
		InlineMessageID string   `json:"inline_message_id,omitempty"`
		ChatInstance    string   `json:"chat_instance,omitempty"`
		Data            string   `json:"data,omitempty"`
		GameShortName   string   `json:"game_short_name,omitempty"`
	}

	// BusinessConnection (https://core.telegram.org/bots/api#businessconnection)
	BusinessConnection struct {
		ID         string `json:"id"`
		User       *User  `json:"user"`
		UserChatID ID     `json:"user_chat_id"`
		Date       int64  `json:"date"`
		CanReply   bool   `json:"can_reply,omitempty"`
		IsEnabled  bool   `json:"is_enabled,omitempty"`
	}

	// BusinessMessagesDeleted (https://core.telegram.org/bots/api#businessmessagesdeleted)
	BusinessMessagesDeleted struct {
		BusinessConnectionID string `json:"business_connection_id"`
		Chat                 *Chat  `json:"chat"`
		MessageIDs           []ID   `json:"message_ids"`
	}

	// Update (https://core.telegram.org/bots/api#update)
	Update struct {
		ID                      ID                       `json:"update_id"`
		Message                 *Message                 `json:"message,omitempty"`
		EditedMessage           *Message                 `json:"edited_message,omitempty"`
		ChannelPost             *Message                 `json:"channel_post,omitempty"`
		EditedChannelPost       *Message                 `json:"edited_channel_post,omitempty"`
		BusinessConnection      *BusinessConnection      `json:"business_connection,omitempty"`
		BusinessMessage         *Message                 `json:"business_message,omitempty"`
		EditedBusinessMessage   *Message                 `json:"edited_business_message,omitempty"`
		DeletedBusinessMessages *BusinessMessagesDeleted `json:"deleted_business_messages,omitempty"`
		InlineQuery             *InlineQuery             `json:"inline_query,omitempty"`
		ChosenInlineResult      *ChosenInlineResult      `json:"chosen_inline_result,omitempty"`
		CallbackQuery           *CallbackQuery           `json:"callback_query,omitempty"`
		MyChatMember            *ChatMemberUpdated       `json:"my_chat_member,omitempty"`
		ChatMember              *ChatMemberUpdated       `json:"chat_member,omitempty"`
	}

	// WebhookInfo (https://core.telegram.org/bots/api#webhookinfo)
	WebhookInfo struct {
		URL                  string   `json:"url"`
		HasCustomCertificate bool     `json:"has_custom_certificate"`
		PendingUpdateCount   int      `json:"pending_update_count"`
		IPAddress            string   `json:"ip_address,omitempty"`
		LastErrorDate        int64    `json:"last_error_date,omitempty"`
		LastErrorMessage     string   `json:"last_error_message,omitempty"`
		MaxConnections       int      `json:"max_connections,omitempty"`
		AllowedUpdates       []string `json:"allowed_updates,omitempty"`
	}
)

func (*CallbackQuery) Shape() Shape           { return "CallbackQuery" }
func (*BusinessConnection) Shape() Shape      { return "BusinessConnection" }
func (*BusinessMessagesDeleted) Shape() Shape { return "BusinessMessagesDeleted" }
func (*Update) Shape() Shape                  { return "Update" }
func (*WebhookInfo) Shape() Shape             { return "WebhookInfo" }

// Chat returns the chat the update belongs to, if any.
func (u *Update) Chat() *Chat {
	switch {
	case u.Message != nil:
		return u.Message.Chat
	case u.EditedMessage != nil:
		return u.EditedMessage.Chat
	case u.ChannelPost != nil:
		return u.ChannelPost.Chat
	case u.EditedChannelPost != nil:
		return u.EditedChannelPost.Chat
	case u.BusinessMessage != nil:
		return u.BusinessMessage.Chat
	case u.EditedBusinessMessage != nil:
		return u.EditedBusinessMessage.Chat
	case u.DeletedBusinessMessages != nil:
		return u.DeletedBusinessMessages.Chat
	case u.CallbackQuery != nil && u.CallbackQuery.Message != nil:
		return u.CallbackQuery.Message.Chat
	case u.MyChatMember != nil:
		return u.MyChatMember.Chat
	case u.ChatMember != nil:
		return u.ChatMember.Chat
	default:
		return nil
	}
}

// From returns the user who caused the update, if any.
func (u *Update) From() *User {
	switch {
	case u.Message != nil:
		return u.Message.From
	case u.EditedMessage != nil:
		return u.EditedMessage.From
	case u.ChannelPost != nil:
		return u.ChannelPost.From
	case u.EditedChannelPost != nil:
		return u.EditedChannelPost.From
	case u.BusinessConnection != nil:
		return u.BusinessConnection.User
	case u.BusinessMessage != nil:
		return u.BusinessMessage.From
	case u.EditedBusinessMessage != nil:
		return u.EditedBusinessMessage.From
	case u.InlineQuery != nil:
		return u.InlineQuery.From
	case u.ChosenInlineResult != nil:
		return u.ChosenInlineResult.From
	case u.CallbackQuery != nil:
		return u.CallbackQuery.From
	case u.MyChatMember != nil:
		return u.MyChatMember.From
	case u.ChatMember != nil:
		return u.ChatMember.From
	default:
		return nil
	}
}

// AnyMessage returns the message carried by the update, edited or not, if any.
func (u *Update) AnyMessage() *Message {
	switch {
	case u.Message != nil:
		return u.Message
	case u.EditedMessage != nil:
		return u.EditedMessage
	case u.ChannelPost != nil:
		return u.ChannelPost
	case u.EditedChannelPost != nil:
		return u.EditedChannelPost
	case u.BusinessMessage != nil:
		return u.BusinessMessage
	case u.EditedBusinessMessage != nil:
		return u.EditedBusinessMessage
	default:
		return nil
	}
}

func init() {
	register(new(CallbackQuery), new(BusinessConnection), new(BusinessMessagesDeleted), new(Update), new(WebhookInfo))
}
