package types

// BotCommand (https://core.telegram.org/bots/api#botcommand)
type BotCommand struct {
	Command     string `json:"command"`
	Description string `json:"description"`
}

func (*BotCommand) Shape() Shape { return "BotCommand" }

// BotCommandScope (https://core.telegram.org/bots/api#botcommandscope)
// is resolved by the "type" field.
type BotCommandScope interface {
	Value
	ScopeType() string
}

type (
	// BotCommandScopeDefault is the default scope of bot commands.
	BotCommandScopeDefault struct{}

	// BotCommandScopeAllPrivateChats covers all private chats.
	BotCommandScopeAllPrivateChats struct{}

	// BotCommandScopeAllGroupChats covers all group and supergroup chats.
	BotCommandScopeAllGroupChats struct{}

	// BotCommandScopeAllChatAdministrators covers all group and supergroup chat administrators.
	BotCommandScopeAllChatAdministrators struct{}

	// BotCommandScopeChat covers a specific chat.
	BotCommandScopeChat struct {
		ChatID ChatID `json:"chat_id"`
	}

	// BotCommandScopeChatAdministrators covers all administrators of a specific chat.
	BotCommandScopeChatAdministrators struct {
		ChatID ChatID `json:"chat_id"`
	}

	// BotCommandScopeChatMember covers a specific member of a group or supergroup chat.
	BotCommandScopeChatMember struct {
		ChatID ChatID `json:"chat_id"`
		UserID ID     `json:"user_id"`
	}
)

func (*BotCommandScopeDefault) Shape() Shape               { return "BotCommandScopeDefault" }
func (*BotCommandScopeAllPrivateChats) Shape() Shape       { return "BotCommandScopeAllPrivateChats" }
func (*BotCommandScopeAllGroupChats) Shape() Shape         { return "BotCommandScopeAllGroupChats" }
func (*BotCommandScopeAllChatAdministrators) Shape() Shape { return "BotCommandScopeAllChatAdministrators" }
func (*BotCommandScopeChat) Shape() Shape                  { return "BotCommandScopeChat" }
func (*BotCommandScopeChatAdministrators) Shape() Shape    { return "BotCommandScopeChatAdministrators" }
func (*BotCommandScopeChatMember) Shape() Shape            { return "BotCommandScopeChatMember" }

func (*BotCommandScopeDefault) ScopeType() string               { return "default" }
func (*BotCommandScopeAllPrivateChats) ScopeType() string       { return "all_private_chats" }
func (*BotCommandScopeAllGroupChats) ScopeType() string         { return "all_group_chats" }
func (*BotCommandScopeAllChatAdministrators) ScopeType() string { return "all_chat_administrators" }
func (*BotCommandScopeChat) ScopeType() string                  { return "chat" }
func (*BotCommandScopeChatAdministrators) ScopeType() string    { return "chat_administrators" }
func (*BotCommandScopeChatMember) ScopeType() string            { return "chat_member" }

func (s BotCommandScopeDefault) MarshalJSON() ([]byte, error) {
	return tagged("type", s.ScopeType(), struct{}{})
}

func (s BotCommandScopeAllPrivateChats) MarshalJSON() ([]byte, error) {
	return tagged("type", s.ScopeType(), struct{}{})
}

func (s BotCommandScopeAllGroupChats) MarshalJSON() ([]byte, error) {
	return tagged("type", s.ScopeType(), struct{}{})
}

func (s BotCommandScopeAllChatAdministrators) MarshalJSON() ([]byte, error) {
	return tagged("type", s.ScopeType(), struct{}{})
}

func (s BotCommandScopeChat) MarshalJSON() ([]byte, error) {
	type plain BotCommandScopeChat
	return tagged("type", s.ScopeType(), plain(s))
}

func (s BotCommandScopeChatAdministrators) MarshalJSON() ([]byte, error) {
	type plain BotCommandScopeChatAdministrators
	return tagged("type", s.ScopeType(), plain(s))
}

func (s BotCommandScopeChatMember) MarshalJSON() ([]byte, error) {
	type plain BotCommandScopeChatMember
	return tagged("type", s.ScopeType(), plain(s))
}

func init() {
	register(
		new(BotCommand),
		new(BotCommandScopeDefault), new(BotCommandScopeAllPrivateChats),
		new(BotCommandScopeAllGroupChats), new(BotCommandScopeAllChatAdministrators),
		new(BotCommandScopeChat), new(BotCommandScopeChatAdministrators), new(BotCommandScopeChatMember),
	)

	registerFamily("BotCommandScope", (*BotCommandScope)(nil), "type", byTag("type", map[string]Shape{
		"default":                 "BotCommandScopeDefault",
		"all_private_chats":       "BotCommandScopeAllPrivateChats",
		"all_group_chats":         "BotCommandScopeAllGroupChats",
		"all_chat_administrators": "BotCommandScopeAllChatAdministrators",
		"chat":                    "BotCommandScopeChat",
		"chat_administrators":     "BotCommandScopeChatAdministrators",
		"chat_member":             "BotCommandScopeChatMember",
	}))
}
