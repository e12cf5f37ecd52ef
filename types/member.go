package types

// ChatMember (https://core.telegram.org/bots/api#chatmember)
// is resolved by the "status" field.
type ChatMember interface {
	Value
	Member() *User
	Status() string
}

type (
	ChatMemberOwner struct {
		User        *User  `json:"user"`
		IsAnonymous bool   `json:"is_anonymous,omitempty"`
		CustomTitle string `json:"custom_title,omitempty"`
	}

	ChatMemberAdministrator struct {
		User               *User  `json:"user"`
		CanBeEdited        bool   `json:"can_be_edited,omitempty"`
		IsAnonymous        bool   `json:"is_anonymous,omitempty"`
		CanManageChat      bool   `json:"can_manage_chat,omitempty"`
		CanDeleteMessages  bool   `json:"can_delete_messages,omitempty"`
		CanRestrictMembers bool   `json:"can_restrict_members,omitempty"`
		CanPromoteMembers  bool   `json:"can_promote_members,omitempty"`
		CanChangeInfo      bool   `json:"can_change_info,omitempty"`
		CanInviteUsers     bool   `json:"can_invite_users,omitempty"`
		CanPostMessages    bool   `json:"can_post_messages,omitempty"`
		CanEditMessages    bool   `json:"can_edit_messages,omitempty"`
		CanPinMessages     bool   `json:"can_pin_messages,omitempty"`
		CustomTitle        string `json:"custom_title,omitempty"`
	}

	ChatMemberMember struct {
		User      *User `json:"user"`
		UntilDate int64 `json:"until_date,omitempty"`
	}

	ChatMemberRestricted struct {
		User            *User `json:"user"`
		IsMember        bool  `json:"is_member"`
		CanSendMessages bool  `json:"can_send_messages"`
		UntilDate       int64 `json:"until_date"`
	}

	ChatMemberLeft struct {
		User *User `json:"user"`
	}

	ChatMemberBanned struct {
		User      *User `json:"user"`
		UntilDate int64 `json:"until_date"`
	}

	// ChatMemberUpdated (https://core.telegram.org/bots/api#chatmemberupdated)
	ChatMemberUpdated struct {
		Chat          *Chat      `json:"chat"`
		From          *User      `json:"from"`
		Date          int64      `json:"date"`
		OldChatMember ChatMember `json:"old_chat_member"`
		NewChatMember ChatMember `json:"new_chat_member"`
	}
)

func (*ChatMemberOwner) Shape() Shape         { return "ChatMemberOwner" }
func (*ChatMemberAdministrator) Shape() Shape { return "ChatMemberAdministrator" }
func (*ChatMemberMember) Shape() Shape        { return "ChatMemberMember" }
func (*ChatMemberRestricted) Shape() Shape    { return "ChatMemberRestricted" }
func (*ChatMemberLeft) Shape() Shape          { return "ChatMemberLeft" }
func (*ChatMemberBanned) Shape() Shape        { return "ChatMemberBanned" }
func (*ChatMemberUpdated) Shape() Shape       { return "ChatMemberUpdated" }

func (m *ChatMemberOwner) Member() *User         { return m.User }
func (m *ChatMemberAdministrator) Member() *User { return m.User }
func (m *ChatMemberMember) Member() *User        { return m.User }
func (m *ChatMemberRestricted) Member() *User    { return m.User }
func (m *ChatMemberLeft) Member() *User          { return m.User }
func (m *ChatMemberBanned) Member() *User        { return m.User }

func (*ChatMemberOwner) Status() string         { return "creator" }
func (*ChatMemberAdministrator) Status() string { return "administrator" }
func (*ChatMemberMember) Status() string        { return "member" }
func (*ChatMemberRestricted) Status() string    { return "restricted" }
func (*ChatMemberLeft) Status() string          { return "left" }
func (*ChatMemberBanned) Status() string        { return "kicked" }

func (m ChatMemberOwner) MarshalJSON() ([]byte, error) {
	type plain ChatMemberOwner
	return tagged("status", m.Status(), plain(m))
}

func (m ChatMemberAdministrator) MarshalJSON() ([]byte, error) {
	type plain ChatMemberAdministrator
	return tagged("status", m.Status(), plain(m))
}

func (m ChatMemberMember) MarshalJSON() ([]byte, error) {
	type plain ChatMemberMember
	return tagged("status", m.Status(), plain(m))
}

func (m ChatMemberRestricted) MarshalJSON() ([]byte, error) {
	type plain ChatMemberRestricted
	return tagged("status", m.Status(), plain(m))
}

func (m ChatMemberLeft) MarshalJSON() ([]byte, error) {
	type plain ChatMemberLeft
	return tagged("status", m.Status(), plain(m))
}

func (m ChatMemberBanned) MarshalJSON() ([]byte, error) {
	type plain ChatMemberBanned
	return tagged("status", m.Status(), plain(m))
}

// IsAdmin checks if the member is the chat owner or an administrator.
func IsAdmin(member ChatMember) bool {
	switch member.(type) {
	case *ChatMemberOwner, *ChatMemberAdministrator:
		return true
	default:
		return false
	}
}

func init() {
	register(
		new(ChatMemberOwner), new(ChatMemberAdministrator), new(ChatMemberMember),
		new(ChatMemberRestricted), new(ChatMemberLeft), new(ChatMemberBanned), new(ChatMemberUpdated),
	)

	registerFamily("ChatMember", (*ChatMember)(nil), "status", byTag("status", map[string]Shape{
		"creator":       "ChatMemberOwner",
		"administrator": "ChatMemberAdministrator",
		"member":        "ChatMemberMember",
		"restricted":    "ChatMemberRestricted",
		"left":          "ChatMemberLeft",
		"kicked":        "ChatMemberBanned",
	}))
}
