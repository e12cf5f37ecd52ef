package tgram

import (
	"context"
	"encoding/csv"
	"fmt"
	"strings"

	"tgram/types"
)

// Command is a text bot command or callback query data.
type Command struct {
	Chat            *types.Chat
	User            *types.User
	Message         *types.Message
	Key             string
	Payload         string
	Args            []string
	CallbackQueryID string
}

// ParseCommand splits value into key, payload and space-separated arguments.
// Quoted arguments may contain spaces. The @username suffix of the key is
// removed when it matches the bot username.
func ParseCommand(username, value string) *Command {
	cmd := new(Command)
	cmd.Key = value

	space := strings.Index(value, " ")
	if space > 0 && len(value) > space+1 {
		cmd.Key = value[:space]
		cmd.Payload = value[space+1:]
	}

	at := strings.Index(cmd.Key, "@")
	if at > 0 && len(cmd.Key) > at+1 && strings.EqualFold(username, cmd.Key[at+1:]) {
		cmd.Key = cmd.Key[:at]
	}

	cmd.Key = trim(cmd.Key)
	cmd.Payload = trim(cmd.Payload)
	cmd.Args = make([]string, 0)
	if cmd.Payload == "" {
		return cmd
	}

	reader := csv.NewReader(strings.NewReader(cmd.Payload))
	reader.Comma = ' '
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	if args, err := reader.Read(); err == nil {
		cmd.Args = args
	} else {
		cmd.Args = strings.Fields(cmd.Payload)
	}

	return cmd
}

// ExtractCommand returns the command carried by a message or callback query.
// It returns nil if the update has no command.
func (b *Bot) ExtractCommand(ctx context.Context, update *types.Update) *Command {
	var (
		cmd     = new(Command)
		value   string
		message = update.AnyMessage()
	)

	switch {
	case update.CallbackQuery != nil:
		query := update.CallbackQuery
		value = query.Data
		cmd.CallbackQueryID = query.ID
		cmd.User = query.From
		cmd.Message = query.Message
		if query.Message != nil {
			cmd.Chat = query.Message.Chat
		}

	case message != nil:
		value = commandText(message)
		cmd.User = message.From
		cmd.Chat = message.Chat
		cmd.Message = message
	}

	if value == "" {
		return nil
	}

	username, err := b.Username(ctx)
	if err != nil {
		b.log.Warnf("extract command: %v", err)
	}

	parsed := ParseCommand(username, value)
	cmd.Key, cmd.Payload, cmd.Args = parsed.Key, parsed.Payload, parsed.Args
	return cmd
}

// commandText returns the message text if it starts with a bot_command entity.
func commandText(message *types.Message) string {
	for _, entity := range message.Entities {
		if entity.Type == "bot_command" && entity.Offset == 0 {
			return message.Text
		}
	}

	return ""
}

// Arg returns the i-th argument or an empty string.
func (cmd *Command) Arg(i int) string {
	if len(cmd.Args) > i {
		return cmd.Args[i]
	}

	return ""
}

// Reply answers the callback query or replies to the command message.
func (cmd *Command) Reply(ctx context.Context, bot *Bot, text string) error {
	if cmd.CallbackQueryID != "" {
		return bot.AnswerCallbackQuery(ctx, cmd.CallbackQueryID, &AnswerOptions{Text: text})
	}

	if cmd.Chat == nil {
		return nil
	}

	options := new(MessageOptions)
	if cmd.Message != nil {
		options.ReplyParameters = &types.ReplyParameters{MessageID: cmd.Message.ID}
		options.BusinessConnectionID = cmd.Message.BusinessConnectionID
	}

	_, err := bot.SendMessage(ctx, cmd.Chat.ID, text, options)
	return err
}

func (cmd *Command) String() string {
	var user, chat types.ID
	if cmd.User != nil {
		user = cmd.User.ID
	}

	if cmd.Chat != nil {
		chat = cmd.Chat.ID
	}

	return fmt.Sprintf("%s [%s] from %s @ %s", cmd.Key, cmd.Payload, user, chat)
}

func trim(value string) string {
	return strings.Trim(value, " \n\t\v")
}
