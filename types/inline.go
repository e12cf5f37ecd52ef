package types

type (
	// InlineQuery (https://core.telegram.org/bots/api#inlinequery)
	InlineQuery struct {
		ID       string    `json:"id"`
		From     *User     `json:"from"`
		Query    string    `json:"query"`
		Offset   string    `json:"offset"`
		ChatType ChatType  `json:"chat_type,omitempty"`
		Location *Location `json:"location,omitempty"`
	}

	// ChosenInlineResult (https://core.telegram.org/bots/api#choseninlineresult)
	ChosenInlineResult struct {
		ResultID        string    `json:"result_id"`
		From            *User     `json:"from"`
		Location        *Location `json:"location,omitempty"`
		InlineMessageID string    `json:"inline_message_id,omitempty"`
		Query           string    `json:"query"`
	}
)

func (*InlineQuery) Shape() Shape        { return "InlineQuery" }
func (*ChosenInlineResult) Shape() Shape { return "ChosenInlineResult" }

// InlineQueryResult (https://core.telegram.org/bots/api#inlinequeryresult)
// is resolved by the "type" field and, for cached variants, by the presence of a file ID.
type InlineQueryResult interface {
	Value
	Common() *InlineQueryResultCommon
}

// InlineQueryResultCommon holds the fields shared by all inline query results.
type InlineQueryResultCommon struct {
	ID          string                `json:"id"`
	ReplyMarkup *InlineKeyboardMarkup `json:"reply_markup,omitempty"`
}

func (c *InlineQueryResultCommon) Common() *InlineQueryResultCommon { return c }

// Captioned holds the caption fields shared by media results.
type Captioned struct {
	Caption         string          `json:"caption,omitempty"`
	ParseMode       ParseMode       `json:"parse_mode,omitempty"`
	CaptionEntities []MessageEntity `json:"caption_entities,omitempty"`
}

type (
	InlineQueryResultArticle struct {
		InlineQueryResultCommon
		Title               string              `json:"title"`
		InputMessageContent InputMessageContent `json:"input_message_content"`
		URL                 string              `json:"url,omitempty"`
		Description         string              `json:"description,omitempty"`
		ThumbnailURL        string              `json:"thumbnail_url,omitempty"`
	}

	InlineQueryResultPhoto struct {
		InlineQueryResultCommon
		Captioned
		PhotoURL            string              `json:"photo_url"`
		ThumbnailURL        string              `json:"thumbnail_url"`
		PhotoWidth          int                 `json:"photo_width,omitempty"`
		PhotoHeight         int                 `json:"photo_height,omitempty"`
		Title               string              `json:"title,omitempty"`
		Description         string              `json:"description,omitempty"`
		InputMessageContent InputMessageContent `json:"input_message_content,omitempty"`
	}

	InlineQueryResultCachedPhoto struct {
		InlineQueryResultCommon
		Captioned
		PhotoFileID         string              `json:"photo_file_id"`
		Title               string              `json:"title,omitempty"`
		Description         string              `json:"description,omitempty"`
		InputMessageContent InputMessageContent `json:"input_message_content,omitempty"`
	}

	InlineQueryResultAudio struct {
		InlineQueryResultCommon
		Captioned
		AudioURL            string              `json:"audio_url"`
		Title               string              `json:"title"`
		Performer           string              `json:"performer,omitempty"`
		AudioDuration       int                 `json:"audio_duration,omitempty"`
		InputMessageContent InputMessageContent `json:"input_message_content,omitempty"`
	}

	InlineQueryResultCachedAudio struct {
		InlineQueryResultCommon
		Captioned
		AudioFileID         string              `json:"audio_file_id"`
		InputMessageContent InputMessageContent `json:"input_message_content,omitempty"`
	}

	InlineQueryResultVoice struct {
		InlineQueryResultCommon
		Captioned
		VoiceURL            string              `json:"voice_url"`
		Title               string              `json:"title"`
		VoiceDuration       int                 `json:"voice_duration,omitempty"`
		InputMessageContent InputMessageContent `json:"input_message_content,omitempty"`
	}

	InlineQueryResultCachedVoice struct {
		InlineQueryResultCommon
		Captioned
		VoiceFileID         string              `json:"voice_file_id"`
		Title               string              `json:"title"`
		InputMessageContent InputMessageContent `json:"input_message_content,omitempty"`
	}

	InlineQueryResultDocument struct {
		InlineQueryResultCommon
		Captioned
		Title               string              `json:"title"`
		DocumentURL         string              `json:"document_url"`
		MimeType            string              `json:"mime_type"`
		Description         string              `json:"description,omitempty"`
		ThumbnailURL        string              `json:"thumbnail_url,omitempty"`
		InputMessageContent InputMessageContent `json:"input_message_content,omitempty"`
	}

	InlineQueryResultCachedDocument struct {
		InlineQueryResultCommon
		Captioned
		Title               string              `json:"title"`
		DocumentFileID      string              `json:"document_file_id"`
		Description         string              `json:"description,omitempty"`
		InputMessageContent InputMessageContent `json:"input_message_content,omitempty"`
	}
)

func (*InlineQueryResultArticle) Shape() Shape        { return "InlineQueryResultArticle" }
func (*InlineQueryResultPhoto) Shape() Shape          { return "InlineQueryResultPhoto" }
func (*InlineQueryResultCachedPhoto) Shape() Shape    { return "InlineQueryResultCachedPhoto" }
func (*InlineQueryResultAudio) Shape() Shape          { return "InlineQueryResultAudio" }
func (*InlineQueryResultCachedAudio) Shape() Shape    { return "InlineQueryResultCachedAudio" }
func (*InlineQueryResultVoice) Shape() Shape          { return "InlineQueryResultVoice" }
func (*InlineQueryResultCachedVoice) Shape() Shape    { return "InlineQueryResultCachedVoice" }
func (*InlineQueryResultDocument) Shape() Shape       { return "InlineQueryResultDocument" }
func (*InlineQueryResultCachedDocument) Shape() Shape { return "InlineQueryResultCachedDocument" }

func (r InlineQueryResultArticle) MarshalJSON() ([]byte, error) {
	type plain InlineQueryResultArticle
	return tagged("type", "article", plain(r))
}

func (r InlineQueryResultPhoto) MarshalJSON() ([]byte, error) {
	type plain InlineQueryResultPhoto
	return tagged("type", "photo", plain(r))
}

func (r InlineQueryResultCachedPhoto) MarshalJSON() ([]byte, error) {
	type plain InlineQueryResultCachedPhoto
	return tagged("type", "photo", plain(r))
}

func (r InlineQueryResultAudio) MarshalJSON() ([]byte, error) {
	type plain InlineQueryResultAudio
	return tagged("type", "audio", plain(r))
}

func (r InlineQueryResultCachedAudio) MarshalJSON() ([]byte, error) {
	type plain InlineQueryResultCachedAudio
	return tagged("type", "audio", plain(r))
}

func (r InlineQueryResultVoice) MarshalJSON() ([]byte, error) {
	type plain InlineQueryResultVoice
	return tagged("type", "voice", plain(r))
}

func (r InlineQueryResultCachedVoice) MarshalJSON() ([]byte, error) {
	type plain InlineQueryResultCachedVoice
	return tagged("type", "voice", plain(r))
}

func (r InlineQueryResultDocument) MarshalJSON() ([]byte, error) {
	type plain InlineQueryResultDocument
	return tagged("type", "document", plain(r))
}

func (r InlineQueryResultCachedDocument) MarshalJSON() ([]byte, error) {
	type plain InlineQueryResultCachedDocument
	return tagged("type", "document", plain(r))
}

// resolveInlineQueryResult picks the cached variant when the file ID field is present.
func resolveInlineQueryResult(o Object) Shape {
	switch o.String("type") {
	case "article":
		return "InlineQueryResultArticle"
	case "photo":
		if o.Has("photo_file_id") {
			return "InlineQueryResultCachedPhoto"
		}

		return "InlineQueryResultPhoto"
	case "audio":
		if o.Has("audio_file_id") {
			return "InlineQueryResultCachedAudio"
		}

		return "InlineQueryResultAudio"
	case "voice":
		if o.Has("voice_file_id") {
			return "InlineQueryResultCachedVoice"
		}

		return "InlineQueryResultVoice"
	case "document":
		if o.Has("document_file_id") {
			return "InlineQueryResultCachedDocument"
		}

		return "InlineQueryResultDocument"
	default:
		return ""
	}
}

// InputMessageContent (https://core.telegram.org/bots/api#inputmessagecontent)
// carries no discriminator and is resolved by the fields present.
type InputMessageContent interface {
	Value
	inputMessageContent()
}

type (
	InputTextMessageContent struct {
		MessageText        string              `json:"message_text"`
		ParseMode          ParseMode           `json:"parse_mode,omitempty"`
		Entities           []MessageEntity     `json:"entities,omitempty"`
		LinkPreviewOptions *LinkPreviewOptions `json:"link_preview_options,omitempty"`
	}

	InputLocationMessageContent struct {
		Latitude   float64 `json:"latitude"`
		Longitude  float64 `json:"longitude"`
		LivePeriod int     `json:"live_period,omitempty"`
	}

	InputVenueMessageContent struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		Title     string  `json:"title"`
		Address   string  `json:"address"`
	}

	InputContactMessageContent struct {
		PhoneNumber string `json:"phone_number"`
		FirstName   string `json:"first_name"`
		LastName    string `json:"last_name,omitempty"`
		VCard       string `json:"vcard,omitempty"`
	}
)

func (*InputTextMessageContent) Shape() Shape     { return "InputTextMessageContent" }
func (*InputLocationMessageContent) Shape() Shape { return "InputLocationMessageContent" }
func (*InputVenueMessageContent) Shape() Shape    { return "InputVenueMessageContent" }
func (*InputContactMessageContent) Shape() Shape  { return "InputContactMessageContent" }

func (*InputTextMessageContent) inputMessageContent()     {}
func (*InputLocationMessageContent) inputMessageContent() {}
func (*InputVenueMessageContent) inputMessageContent()    {}
func (*InputContactMessageContent) inputMessageContent()  {}

func resolveInputMessageContent(o Object) Shape {
	switch {
	case o.Has("message_text"):
		return "InputTextMessageContent"
	case o.Has("phone_number"):
		return "InputContactMessageContent"
	case o.Has("address"):
		return "InputVenueMessageContent"
	case o.Has("latitude"):
		return "InputLocationMessageContent"
	default:
		return ""
	}
}

func init() {
	register(
		new(InlineQuery), new(ChosenInlineResult),
		new(InlineQueryResultArticle),
		new(InlineQueryResultPhoto), new(InlineQueryResultCachedPhoto),
		new(InlineQueryResultAudio), new(InlineQueryResultCachedAudio),
		new(InlineQueryResultVoice), new(InlineQueryResultCachedVoice),
		new(InlineQueryResultDocument), new(InlineQueryResultCachedDocument),
		new(InputTextMessageContent), new(InputLocationMessageContent),
		new(InputVenueMessageContent), new(InputContactMessageContent),
	)

	registerFamily("InlineQueryResult", (*InlineQueryResult)(nil), "type", resolveInlineQueryResult)
	registerFamily("InputMessageContent", (*InputMessageContent)(nil), "", resolveInputMessageContent)
}
