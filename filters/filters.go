// Package filters provides update predicates for handler registration.
package filters

import (
	"regexp"
	"strings"

	"tgram/types"
)

// Filter checks if an update should be handled.
type Filter func(update *types.Update) bool

// All matches every update.
func All(*types.Update) bool { return true }

// And matches when all filters match. Empty And matches everything.
func And(filters ...Filter) Filter {
	return func(update *types.Update) bool {
		for _, filter := range filters {
			if !filter(update) {
				return false
			}
		}

		return true
	}
}

// Or matches when any of the filters matches. Empty Or matches nothing.
func Or(filters ...Filter) Filter {
	return func(update *types.Update) bool {
		for _, filter := range filters {
			if filter(update) {
				return true
			}
		}

		return false
	}
}

// Not inverts the filter.
func Not(filter Filter) Filter {
	return func(update *types.Update) bool {
		return !filter(update)
	}
}

func chatType(kinds ...types.ChatType) Filter {
	return func(update *types.Update) bool {
		chat := update.Chat()
		if chat == nil {
			return false
		}

		for _, kind := range kinds {
			if chat.Type == kind {
				return true
			}
		}

		return false
	}
}

var (
	// Private matches updates from private chats.
	Private = chatType(types.PrivateChat)
	// Group matches updates from groups and supergroups.
	Group = chatType(types.GroupChat, types.Supergroup)
	// Channel matches updates from channels.
	Channel = chatType(types.Channel)
)

// Text matches messages with text or caption.
func Text(update *types.Update) bool {
	return text(update) != ""
}

func text(update *types.Update) string {
	if message := update.AnyMessage(); message != nil {
		if message.Text != "" {
			return message.Text
		}

		return message.Caption
	}

	if query := update.CallbackQuery; query != nil {
		return query.Data
	}

	if query := update.InlineQuery; query != nil {
		return query.Query
	}

	return ""
}

// Regex matches messages, callback data and inline queries against the pattern.
func Regex(pattern string) Filter {
	re := regexp.MustCompile(pattern)
	return func(update *types.Update) bool {
		value := text(update)
		return value != "" && re.MatchString(value)
	}
}

// Command matches messages starting with one of the commands.
// Commands are given without the leading slash.
// An @username suffix of the command is ignored.
func Command(commands ...string) Filter {
	return func(update *types.Update) bool {
		message := update.AnyMessage()
		if message == nil || !strings.HasPrefix(message.Text, "/") {
			return false
		}

		key := strings.Fields(message.Text)[0][1:]
		if at := strings.Index(key, "@"); at >= 0 {
			key = key[:at]
		}

		for _, command := range commands {
			if strings.TrimPrefix(command, "/") == key {
				return true
			}
		}

		return false
	}
}

// Chat matches updates from the chats.
func Chat(ids ...types.ID) Filter {
	return func(update *types.Update) bool {
		chat := update.Chat()
		if chat == nil {
			return false
		}

		for _, id := range ids {
			if chat.ID == id {
				return true
			}
		}

		return false
	}
}

// User matches updates caused by the users.
func User(ids ...types.ID) Filter {
	return func(update *types.Update) bool {
		user := update.From()
		if user == nil {
			return false
		}

		for _, id := range ids {
			if user.ID == id {
				return true
			}
		}

		return false
	}
}

// Business matches updates received on behalf of a business account.
func Business(update *types.Update) bool {
	return update.BusinessConnection != nil ||
		update.BusinessMessage != nil ||
		update.EditedBusinessMessage != nil ||
		update.DeletedBusinessMessages != nil
}
