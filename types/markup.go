package types

// ReplyMarkup is one of InlineKeyboardMarkup, ReplyKeyboardMarkup,
// ReplyKeyboardRemove or ForceReply.
type ReplyMarkup interface {
	replyMarkup()
}

type (
	// InlineKeyboardButton (https://core.telegram.org/bots/api#inlinekeyboardbutton)
	// Switch fields are pointers since an empty query is meaningful.
	InlineKeyboardButton struct {
		Text                         string  `json:"text"`
		URL                          string  `json:"url,omitempty"`
		CallbackData                 string  `json:"callback_data,omitempty"`
		SwitchInlineQuery            *string `json:"switch_inline_query,omitempty"`
		SwitchInlineQueryCurrentChat *string `json:"switch_inline_query_current_chat,omitempty"`
		Pay                          bool    `json:"pay,omitempty"`
	}

	// InlineKeyboardMarkup (https://core.telegram.org/bots/api#inlinekeyboardmarkup)
	InlineKeyboardMarkup struct {
		InlineKeyboard [][]InlineKeyboardButton `json:"inline_keyboard"`
	}

	// KeyboardButton (https://core.telegram.org/bots/api#keyboardbutton)
	KeyboardButton struct {
		Text            string `json:"text"`
		RequestContact  bool   `json:"request_contact,omitempty"`
		RequestLocation bool   `json:"request_location,omitempty"`
	}

	// ReplyKeyboardMarkup (https://core.telegram.org/bots/api#replykeyboardmarkup)
	ReplyKeyboardMarkup struct {
		Keyboard              [][]KeyboardButton `json:"keyboard"`
		IsPersistent          bool               `json:"is_persistent,omitempty"`
		ResizeKeyboard        bool               `json:"resize_keyboard,omitempty"`
		OneTimeKeyboard       bool               `json:"one_time_keyboard,omitempty"`
		InputFieldPlaceholder string             `json:"input_field_placeholder,omitempty"`
		Selective             bool               `json:"selective,omitempty"`
	}

	// ReplyKeyboardRemove (https://core.telegram.org/bots/api#replykeyboardremove)
	ReplyKeyboardRemove struct {
		Selective bool `json:"selective,omitempty"`
	}

	// ForceReply (https://core.telegram.org/bots/api#forcereply)
	ForceReply struct {
		InputFieldPlaceholder string `json:"input_field_placeholder,omitempty"`
		Selective             bool   `json:"selective,omitempty"`
	}
)

func (*InlineKeyboardButton) Shape() Shape { return "InlineKeyboardButton" }
func (*InlineKeyboardMarkup) Shape() Shape { return "InlineKeyboardMarkup" }
func (*KeyboardButton) Shape() Shape       { return "KeyboardButton" }
func (*ReplyKeyboardMarkup) Shape() Shape  { return "ReplyKeyboardMarkup" }
func (*ReplyKeyboardRemove) Shape() Shape  { return "ReplyKeyboardRemove" }
func (*ForceReply) Shape() Shape           { return "ForceReply" }

func (*InlineKeyboardMarkup) replyMarkup() {}
func (*ReplyKeyboardMarkup) replyMarkup()  {}
func (*ReplyKeyboardRemove) replyMarkup()  {}
func (*ForceReply) replyMarkup()           {}

func (m ReplyKeyboardRemove) MarshalJSON() ([]byte, error) {
	type plain ReplyKeyboardRemove
	return tagged("remove_keyboard", true, plain(m))
}

func (m ForceReply) MarshalJSON() ([]byte, error) {
	type plain ForceReply
	return tagged("force_reply", true, plain(m))
}

// InlineKeyboard builds a single-column inline keyboard with callback buttons.
// Each pair is text and callback data.
func InlineKeyboard(pairs ...[2]string) *InlineKeyboardMarkup {
	keyboard := make([][]InlineKeyboardButton, len(pairs))
	for i, pair := range pairs {
		keyboard[i] = []InlineKeyboardButton{{Text: pair[0], CallbackData: pair[1]}}
	}

	return &InlineKeyboardMarkup{InlineKeyboard: keyboard}
}

func init() {
	register(
		new(InlineKeyboardButton), new(InlineKeyboardMarkup), new(KeyboardButton),
		new(ReplyKeyboardMarkup), new(ReplyKeyboardRemove), new(ForceReply),
	)
}
