package types

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ID is an item identifier (chat, message, user, etc.)
type ID int64

// ParseID tries to parse a value as ID.
func ParseID(value string) (ID, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	return ID(id), err
}

// Increment returns the ID following this one.
func (id ID) Increment() ID {
	return ID(int64(id) + 1)
}

func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

func (id ID) chatID() {}

// Username represents a public chat or user username. It is stored without "@".
type Username string

func (username Username) String() string {
	return "@" + strings.TrimPrefix(string(username), "@")
}

// MarshalText renders the username in the "@username" form expected by chat_id arguments.
func (username Username) MarshalText() ([]byte, error) {
	return []byte(username.String()), nil
}

func (username Username) chatID() {}

// ChatID is either an ID or a channel Username in various API calls.
type ChatID interface {
	fmt.Stringer
	chatID()
}

// ParseChatID parses "@username" or a numeric identifier.
func ParseChatID(value string) (ChatID, error) {
	if strings.HasPrefix(value, "@") {
		if len(value) == 1 {
			return nil, errors.New("empty username")
		}

		return Username(value[1:]), nil
	}

	return ParseID(value)
}
