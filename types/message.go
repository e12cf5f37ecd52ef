package types

// ParseMode is a parse_mode request parameter type.
type ParseMode string

const (
	// None is used for empty parse_mode.
	None ParseMode = ""
	// Markdown is "Markdown" parse_mode value.
	Markdown ParseMode = "Markdown"
	// MarkdownV2 is "MarkdownV2" parse_mode value.
	MarkdownV2 ParseMode = "MarkdownV2"
	// HTML is "HTML" parse_mode value.
	HTML ParseMode = "HTML"

	// MaxMessageSize is maximum message character length.
	MaxMessageSize = 4096
	// MaxCaptionSize is maximum caption character length.
	MaxCaptionSize = 1024
)

type (
	// Message (https://core.telegram.org/bots/api#message)
	Message struct {
		ID                   ID                    `json:"message_id"`
		MessageThreadID      ID                    `json:"message_thread_id,omitempty"`
		From                 *User                 `json:"from,omitempty"`
		SenderChat           *Chat                 `json:"sender_chat,omitempty"`
		SenderBusinessBot    *User                 `json:"sender_business_bot,omitempty"`
		Date                 int64                 `json:"date"`
		BusinessConnectionID string                `json:"business_connection_id,omitempty"`
		Chat                 *Chat                 `json:"chat"`
		ForwardOrigin        MessageOrigin         `json:"forward_origin,omitempty"`
		IsTopicMessage       bool                  `json:"is_topic_message,omitempty"`
		IsAutomaticForward   bool                  `json:"is_automatic_forward,omitempty"`
		ReplyToMessage       *Message              `json:"reply_to_message,omitempty"`
		ViaBot               *User                 `json:"via_bot,omitempty"`
		EditDate             int64                 `json:"edit_date,omitempty"`
		HasProtectedContent  bool                  `json:"has_protected_content,omitempty"`
		IsFromOffline        bool                  `json:"is_from_offline,omitempty"`
		MediaGroupID         string                `json:"media_group_id,omitempty"`
		AuthorSignature      string                `json:"author_signature,omitempty"`
		Text                 string                `json:"text,omitempty"`
		Entities             []MessageEntity       `json:"entities,omitempty"`
		LinkPreviewOptions   *LinkPreviewOptions   `json:"link_preview_options,omitempty"`
		Animation            *Animation            `json:"animation,omitempty"`
		Audio                *Audio                `json:"audio,omitempty"`
		Document             *Document             `json:"document,omitempty"`
		Photo                []PhotoSize           `json:"photo,omitempty"`
		Sticker              *Sticker              `json:"sticker,omitempty"`
		Video                *Video                `json:"video,omitempty"`
		VideoNote            *VideoNote            `json:"video_note,omitempty"`
		Voice                *Voice                `json:"voice,omitempty"`
		Caption              string                `json:"caption,omitempty"`
		CaptionEntities      []MessageEntity       `json:"caption_entities,omitempty"`
		HasMediaSpoiler      bool                  `json:"has_media_spoiler,omitempty"`
		Contact              *Contact              `json:"contact,omitempty"`
		Location             *Location             `json:"location,omitempty"`
		NewChatMembers       []User                `json:"new_chat_members,omitempty"`
		LeftChatMember       *User                 `json:"left_chat_member,omitempty"`
		NewChatTitle         string                `json:"new_chat_title,omitempty"`
		PinnedMessage        *Message              `json:"pinned_message,omitempty"`
		ReplyMarkup          *InlineKeyboardMarkup `json:"reply_markup,omitempty"`
	}

	// MessageID is returned by copyMessage.
	MessageID struct {
		ID ID `json:"message_id"`
	}

	// MessageEntity (https://core.telegram.org/bots/api#messageentity)
	MessageEntity struct {
		Type          string `json:"type"`
		Offset        int    `json:"offset"`
		Length        int    `json:"length"`
		URL           string `json:"url,omitempty"`
		User          *User  `json:"user,omitempty"`
		Language      string `json:"language,omitempty"`
		CustomEmojiID string `json:"custom_emoji_id,omitempty"`
	}

	// LinkPreviewOptions (https://core.telegram.org/bots/api#linkpreviewoptions)
	LinkPreviewOptions struct {
		IsDisabled       bool   `json:"is_disabled,omitempty"`
		URL              string `json:"url,omitempty"`
		PreferSmallMedia bool   `json:"prefer_small_media,omitempty"`
		PreferLargeMedia bool   `json:"prefer_large_media,omitempty"`
		ShowAboveText    bool   `json:"show_above_text,omitempty"`
	}

	// ReplyParameters (https://core.telegram.org/bots/api#replyparameters)
	ReplyParameters struct {
		MessageID                ID     `json:"message_id"`
		ChatID                   ChatID `json:"chat_id,omitempty"`
		AllowSendingWithoutReply bool   `json:"allow_sending_without_reply,omitempty"`
		Quote                    string `json:"quote,omitempty"`
	}

	// MessageRef is used for message copying and forwarding.
	MessageRef struct {
		ChatID ChatID
		ID     ID
	}
)

func (*Message) Shape() Shape            { return "Message" }
func (*MessageID) Shape() Shape          { return "MessageId" }
func (*MessageEntity) Shape() Shape      { return "MessageEntity" }
func (*LinkPreviewOptions) Shape() Shape { return "LinkPreviewOptions" }
func (*ReplyParameters) Shape() Shape    { return "ReplyParameters" }

// Ref returns the message reference usable for forwarding and copying.
func (m *Message) Ref() MessageRef {
	ref := MessageRef{ID: m.ID}
	if m.Chat != nil {
		ref.ChatID = m.Chat.ID
	}

	return ref
}

// FileID returns the file ID of the media attached to the message.
// For photos the largest size is used.
func (m *Message) FileID() (FileID, bool) {
	switch {
	case len(m.Photo) > 0:
		return FileID(m.Photo[len(m.Photo)-1].FileID), true
	case m.Animation != nil:
		return FileID(m.Animation.FileID), true
	case m.Video != nil:
		return FileID(m.Video.FileID), true
	case m.Audio != nil:
		return FileID(m.Audio.FileID), true
	case m.Voice != nil:
		return FileID(m.Voice.FileID), true
	case m.Document != nil:
		return FileID(m.Document.FileID), true
	case m.VideoNote != nil:
		return FileID(m.VideoNote.FileID), true
	case m.Sticker != nil:
		return FileID(m.Sticker.FileID), true
	default:
		return "", false
	}
}

// IsBusiness checks if the message was received on behalf of a business account.
func (m *Message) IsBusiness() bool {
	return m.BusinessConnectionID != ""
}

func init() {
	register(new(Message), new(MessageID), new(MessageEntity), new(LinkPreviewOptions), new(ReplyParameters))
}
