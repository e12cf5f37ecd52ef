package types

// ChatType can be either "private", "group", "supergroup" or "channel".
type ChatType string

const (
	PrivateChat ChatType = "private"
	GroupChat   ChatType = "group"
	Supergroup  ChatType = "supergroup"
	Channel     ChatType = "channel"
)

type (
	// User (https://core.telegram.org/bots/api#user)
	User struct {
		ID                      ID     `json:"id"`
		IsBot                   bool   `json:"is_bot,omitempty"`
		FirstName               string `json:"first_name"`
		LastName                string `json:"last_name,omitempty"`
		Username                string `json:"username,omitempty"`
		LanguageCode            string `json:"language_code,omitempty"`
		IsPremium               bool   `json:"is_premium,omitempty"`
		CanJoinGroups           bool   `json:"can_join_groups,omitempty"`
		CanReadAllGroupMessages bool   `json:"can_read_all_group_messages,omitempty"`
		SupportsInlineQueries   bool   `json:"supports_inline_queries,omitempty"`
		CanConnectToBusiness    bool   `json:"can_connect_to_business,omitempty"`
	}

	// Chat (https://core.telegram.org/bots/api#chat)
	Chat struct {
		ID        ID       `json:"id"`
		Type      ChatType `json:"type"`
		Title     string   `json:"title,omitempty"`
		Username  string   `json:"username,omitempty"`
		FirstName string   `json:"first_name,omitempty"`
		LastName  string   `json:"last_name,omitempty"`
		IsForum   bool     `json:"is_forum,omitempty"`
	}

	// ChatFullInfo is returned by getChat.
	// See https://core.telegram.org/bots/api#chatfullinfo
	ChatFullInfo struct {
		ID                  ID       `json:"id"`
		Type                ChatType `json:"type"`
		Title               string   `json:"title,omitempty"`
		Username            string   `json:"username,omitempty"`
		FirstName           string   `json:"first_name,omitempty"`
		LastName            string   `json:"last_name,omitempty"`
		IsForum             bool     `json:"is_forum,omitempty"`
		AccentColorID       int      `json:"accent_color_id,omitempty"`
		MaxReactionCount    int      `json:"max_reaction_count,omitempty"`
		Bio                 string   `json:"bio,omitempty"`
		Description         string   `json:"description,omitempty"`
		InviteLink          string   `json:"invite_link,omitempty"`
		PinnedMessage       *Message `json:"pinned_message,omitempty"`
		SlowModeDelay       int      `json:"slow_mode_delay,omitempty"`
		HasProtectedContent bool     `json:"has_protected_content,omitempty"`
		LinkedChatID        ID       `json:"linked_chat_id,omitempty"`
	}
)

func (*User) Shape() Shape         { return "User" }
func (*Chat) Shape() Shape         { return "Chat" }
func (*ChatFullInfo) Shape() Shape { return "ChatFullInfo" }

// Ref returns the chat ID, preferring the public username if present.
func (c *Chat) Ref() ChatID {
	if c.Username != "" {
		return Username(c.Username)
	}

	return c.ID
}

func init() {
	register(new(User), new(Chat), new(ChatFullInfo))
}
