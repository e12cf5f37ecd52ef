package tgram

import (
	"context"
	"reflect"

	"github.com/gofrs/uuid"
	"golang.org/x/exp/utf8string"

	"tgram/marshal"
	"tgram/types"
)

// GetChat is used to get up to date information about the chat.
// See https://core.telegram.org/bots/api#getchat
func (b *Bot) GetChat(ctx context.Context, chatID types.ChatID) (*types.ChatFullInfo, error) {
	return CallAs[*types.ChatFullInfo](ctx, b, "getChat", marshal.Args{"chat_id": chatID})
}

// GetChatMember is used to get information about a member of a chat.
// See https://core.telegram.org/bots/api#getchatmember
func (b *Bot) GetChatMember(ctx context.Context, chatID types.ChatID, userID types.ID) (types.ChatMember, error) {
	return CallAs[types.ChatMember](ctx, b, "getChatMember", marshal.Args{
		"chat_id": chatID,
		"user_id": userID,
	})
}

// GetChatAdministrators is used to get a list of administrators in a chat, which aren't bots.
// See https://core.telegram.org/bots/api#getchatadministrators
func (b *Bot) GetChatAdministrators(ctx context.Context, chatID types.ChatID) ([]types.ChatMember, error) {
	return CallAs[[]types.ChatMember](ctx, b, "getChatAdministrators", marshal.Args{"chat_id": chatID})
}

// GetChatMemberCount is used to get the number of members in a chat.
// See https://core.telegram.org/bots/api#getchatmembercount
func (b *Bot) GetChatMemberCount(ctx context.Context, chatID types.ChatID) (int, error) {
	return CallAs[int](ctx, b, "getChatMemberCount", marshal.Args{"chat_id": chatID})
}

// MaxCallbackAnswerSize is the maximum callback query answer length in characters.
const MaxCallbackAnswerSize = 200

// AnswerOptions are the optional parameters of answerCallbackQuery.
type AnswerOptions struct {
	Text      string
	ShowAlert bool
	URL       string
	CacheTime int
}

// AnswerCallbackQuery is used to send answers to callback queries sent from inline keyboards.
// Texts longer than MaxCallbackAnswerSize are truncated.
// See https://core.telegram.org/bots/api#answercallbackquery
func (b *Bot) AnswerCallbackQuery(ctx context.Context, id string, options *AnswerOptions) error {
	if options == nil {
		options = new(AnswerOptions)
	}

	return b.callOK(ctx, "answerCallbackQuery", marshal.Args{
		"callback_query_id": id,
		"text":              truncate(options.Text, MaxCallbackAnswerSize),
		"show_alert":        options.ShowAlert,
		"url":               options.URL,
		"cache_time":        options.CacheTime,
	})
}

func truncate(text string, limit int) string {
	value := utf8string.NewString(text)
	if value.RuneCount() <= limit {
		return text
	}

	return value.Slice(0, limit-3) + "..."
}

// InlineAnswerOptions are the optional parameters of answerInlineQuery.
type InlineAnswerOptions struct {
	CacheTime  int
	IsPersonal bool
	NextOffset string
}

// AnswerInlineQuery is used to send answers to an inline query.
// Results with empty IDs are assigned random ones.
// See https://core.telegram.org/bots/api#answerinlinequery
func (b *Bot) AnswerInlineQuery(ctx context.Context, id string, results []types.InlineQueryResult, options *InlineAnswerOptions) error {
	if options == nil {
		options = new(InlineAnswerOptions)
	}

	identified := make([]types.InlineQueryResult, 0, len(results))
	for _, result := range results {
		if marshal.IsAbsent(result) {
			continue
		}

		if result.Common().ID == "" {
			result = withID(result, uuid.Must(uuid.NewV4()).String())
		}

		identified = append(identified, result)
	}

	return b.callOK(ctx, "answerInlineQuery", marshal.Args{
		"inline_query_id": id,
		"results":         identified,
		"cache_time":      options.CacheTime,
		"is_personal":     options.IsPersonal,
		"next_offset":     options.NextOffset,
	})
}

// withID returns a shallow copy of the result with the ID set.
func withID(result types.InlineQueryResult, id string) types.InlineQueryResult {
	value := reflect.ValueOf(result).Elem()
	clone := reflect.New(value.Type())
	clone.Elem().Set(value)
	result = clone.Interface().(types.InlineQueryResult)
	result.Common().ID = id
	return result
}

// SetMyCommands is used to change the list of the bot's commands.
// See https://core.telegram.org/bots/api#setmycommands
func (b *Bot) SetMyCommands(ctx context.Context, scope types.BotCommandScope, languageCode string, commands []types.BotCommand) error {
	if commands == nil {
		commands = []types.BotCommand{}
	}

	return b.callOK(ctx, "setMyCommands", marshal.Args{
		"commands":      commands,
		"scope":         scope,
		"language_code": languageCode,
	})
}

// GetMyCommands is used to get the current list of the bot's commands for the given scope and user language.
// See https://core.telegram.org/bots/api#getmycommands
func (b *Bot) GetMyCommands(ctx context.Context, scope types.BotCommandScope, languageCode string) ([]types.BotCommand, error) {
	return CallAs[[]types.BotCommand](ctx, b, "getMyCommands", marshal.Args{
		"scope":         scope,
		"language_code": languageCode,
	})
}

// DeleteMyCommands is used to delete the list of the bot's commands for the given scope and user language.
// See https://core.telegram.org/bots/api#deletemycommands
func (b *Bot) DeleteMyCommands(ctx context.Context, scope types.BotCommandScope, languageCode string) error {
	return b.callOK(ctx, "deleteMyCommands", marshal.Args{
		"scope":         scope,
		"language_code": languageCode,
	})
}

// GetBusinessConnection is used to get information about the connection of the bot with a business account.
// See https://core.telegram.org/bots/api#getbusinessconnection
func (b *Bot) GetBusinessConnection(ctx context.Context, id string) (*types.BusinessConnection, error) {
	return CallAs[*types.BusinessConnection](ctx, b, "getBusinessConnection", marshal.Args{
		"business_connection_id": id,
	})
}
