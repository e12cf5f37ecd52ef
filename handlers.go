package tgram

import (
	"context"
	"sync"

	"tgram/filters"
	"tgram/types"
)

// Kind is an update kind. Values match the allowed_updates names.
type Kind string

const (
	MessageKind                 Kind = "message"
	EditedMessageKind           Kind = "edited_message"
	ChannelPostKind             Kind = "channel_post"
	EditedChannelPostKind       Kind = "edited_channel_post"
	BusinessConnectionKind      Kind = "business_connection"
	BusinessMessageKind         Kind = "business_message"
	EditedBusinessMessageKind   Kind = "edited_business_message"
	DeletedBusinessMessagesKind Kind = "deleted_business_messages"
	InlineQueryKind             Kind = "inline_query"
	ChosenInlineResultKind      Kind = "chosen_inline_result"
	CallbackQueryKind           Kind = "callback_query"
	MyChatMemberKind            Kind = "my_chat_member"
	ChatMemberKind              Kind = "chat_member"
)

// KindOf returns the kind of the update or an empty string for unknown updates.
func KindOf(update *types.Update) Kind {
	switch {
	case update.Message != nil:
		return MessageKind
	case update.EditedMessage != nil:
		return EditedMessageKind
	case update.ChannelPost != nil:
		return ChannelPostKind
	case update.EditedChannelPost != nil:
		return EditedChannelPostKind
	case update.BusinessConnection != nil:
		return BusinessConnectionKind
	case update.BusinessMessage != nil:
		return BusinessMessageKind
	case update.EditedBusinessMessage != nil:
		return EditedBusinessMessageKind
	case update.DeletedBusinessMessages != nil:
		return DeletedBusinessMessagesKind
	case update.InlineQuery != nil:
		return InlineQueryKind
	case update.ChosenInlineResult != nil:
		return ChosenInlineResultKind
	case update.CallbackQuery != nil:
		return CallbackQueryKind
	case update.MyChatMember != nil:
		return MyChatMemberKind
	case update.ChatMember != nil:
		return ChatMemberKind
	default:
		return ""
	}
}

type (
	UpdateHandler                  func(ctx context.Context, bot *Bot, update *types.Update) error
	MessageHandler                 func(ctx context.Context, bot *Bot, message *types.Message) error
	CallbackQueryHandler           func(ctx context.Context, bot *Bot, query *types.CallbackQuery) error
	InlineQueryHandler             func(ctx context.Context, bot *Bot, query *types.InlineQuery) error
	ChosenInlineResultHandler      func(ctx context.Context, bot *Bot, result *types.ChosenInlineResult) error
	ChatMemberHandler              func(ctx context.Context, bot *Bot, update *types.ChatMemberUpdated) error
	BusinessConnectionHandler      func(ctx context.Context, bot *Bot, connection *types.BusinessConnection) error
	DeletedBusinessMessagesHandler func(ctx context.Context, bot *Bot, deleted *types.BusinessMessagesDeleted) error
	CommandHandler                 func(ctx context.Context, bot *Bot, command *Command) error
)

// Handle identifies a registered handler.
type Handle uint64

// handler reports whether it accepted the update and the error of handling.
type handler func(ctx context.Context, bot *Bot, update *types.Update) (bool, error)

func onKind(kind Kind, fs []filters.Filter, fn UpdateHandler) handler {
	filter := filters.And(fs...)
	return func(ctx context.Context, bot *Bot, update *types.Update) (bool, error) {
		if (kind != "" && KindOf(update) != kind) || !filter(update) {
			return false, nil
		}

		return true, fn(ctx, bot, update)
	}
}

func onMessage(kind Kind, fs []filters.Filter, fn MessageHandler) handler {
	return onKind(kind, fs, func(ctx context.Context, bot *Bot, update *types.Update) error {
		return fn(ctx, bot, update.AnyMessage())
	})
}

// onCommand matches message commands like "/start" and callback data like "start".
func onCommand(key string, fs []filters.Filter, fn CommandHandler) handler {
	filter := filters.And(fs...)
	return func(ctx context.Context, bot *Bot, update *types.Update) (bool, error) {
		if !filter(update) {
			return false, nil
		}

		cmd := bot.ExtractCommand(ctx, update)
		if cmd == nil || cmd.Key != key {
			return false, nil
		}

		return true, fn(ctx, bot, cmd)
	}
}

// Handlers collect handlers to be passed in Options.
// Handlers are tried in registration order.
type Handlers struct {
	entries []handler
}

func (h *Handlers) add(entry handler) *Handlers {
	h.entries = append(h.entries, entry)
	return h
}

func (h *Handlers) OnUpdate(fn UpdateHandler, fs ...filters.Filter) *Handlers {
	return h.add(onKind("", fs, fn))
}

func (h *Handlers) OnMessage(fn MessageHandler, fs ...filters.Filter) *Handlers {
	return h.add(onMessage(MessageKind, fs, fn))
}

func (h *Handlers) OnEditedMessage(fn MessageHandler, fs ...filters.Filter) *Handlers {
	return h.add(onMessage(EditedMessageKind, fs, fn))
}

func (h *Handlers) OnChannelPost(fn MessageHandler, fs ...filters.Filter) *Handlers {
	return h.add(onMessage(ChannelPostKind, fs, fn))
}

func (h *Handlers) OnEditedChannelPost(fn MessageHandler, fs ...filters.Filter) *Handlers {
	return h.add(onMessage(EditedChannelPostKind, fs, fn))
}

func (h *Handlers) OnBusinessMessage(fn MessageHandler, fs ...filters.Filter) *Handlers {
	return h.add(onMessage(BusinessMessageKind, fs, fn))
}

func (h *Handlers) OnEditedBusinessMessage(fn MessageHandler, fs ...filters.Filter) *Handlers {
	return h.add(onMessage(EditedBusinessMessageKind, fs, fn))
}

func (h *Handlers) OnCallbackQuery(fn CallbackQueryHandler, fs ...filters.Filter) *Handlers {
	return h.add(onKind(CallbackQueryKind, fs, func(ctx context.Context, bot *Bot, update *types.Update) error {
		return fn(ctx, bot, update.CallbackQuery)
	}))
}

func (h *Handlers) OnInlineQuery(fn InlineQueryHandler, fs ...filters.Filter) *Handlers {
	return h.add(onKind(InlineQueryKind, fs, func(ctx context.Context, bot *Bot, update *types.Update) error {
		return fn(ctx, bot, update.InlineQuery)
	}))
}

func (h *Handlers) OnChosenInlineResult(fn ChosenInlineResultHandler, fs ...filters.Filter) *Handlers {
	return h.add(onKind(ChosenInlineResultKind, fs, func(ctx context.Context, bot *Bot, update *types.Update) error {
		return fn(ctx, bot, update.ChosenInlineResult)
	}))
}

func (h *Handlers) OnMyChatMember(fn ChatMemberHandler, fs ...filters.Filter) *Handlers {
	return h.add(onKind(MyChatMemberKind, fs, func(ctx context.Context, bot *Bot, update *types.Update) error {
		return fn(ctx, bot, update.MyChatMember)
	}))
}

func (h *Handlers) OnChatMember(fn ChatMemberHandler, fs ...filters.Filter) *Handlers {
	return h.add(onKind(ChatMemberKind, fs, func(ctx context.Context, bot *Bot, update *types.Update) error {
		return fn(ctx, bot, update.ChatMember)
	}))
}

func (h *Handlers) OnBusinessConnection(fn BusinessConnectionHandler, fs ...filters.Filter) *Handlers {
	return h.add(onKind(BusinessConnectionKind, fs, func(ctx context.Context, bot *Bot, update *types.Update) error {
		return fn(ctx, bot, update.BusinessConnection)
	}))
}

func (h *Handlers) OnDeletedBusinessMessages(fn DeletedBusinessMessagesHandler, fs ...filters.Filter) *Handlers {
	return h.add(onKind(DeletedBusinessMessagesKind, fs, func(ctx context.Context, bot *Bot, update *types.Update) error {
		return fn(ctx, bot, update.DeletedBusinessMessages)
	}))
}

// OnCommand registers a command handler. Keys starting with a slash match
// message commands, other keys match callback query data.
func (h *Handlers) OnCommand(key string, fn CommandHandler, fs ...filters.Filter) *Handlers {
	return h.add(onCommand(key, fs, fn))
}

type handlerEntry struct {
	handle  Handle
	handler handler
}

// handlerList is a copy-on-write list, so dispatch never holds the lock
// while a handler runs.
type handlerList struct {
	mu      sync.Mutex
	entries []handlerEntry
	last    Handle
}

func (l *handlerList) add(h handler) Handle {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.last++
	entries := make([]handlerEntry, len(l.entries), len(l.entries)+1)
	copy(entries, l.entries)
	l.entries = append(entries, handlerEntry{handle: l.last, handler: h})
	return l.last
}

func (l *handlerList) remove(handle Handle) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, entry := range l.entries {
		if entry.handle == handle {
			entries := make([]handlerEntry, 0, len(l.entries)-1)
			entries = append(entries, l.entries[:i]...)
			l.entries = append(entries, l.entries[i+1:]...)
			return true
		}
	}

	return false
}

func (l *handlerList) snapshot() []handlerEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.entries
}

func (b *Bot) OnUpdate(fn UpdateHandler, fs ...filters.Filter) Handle {
	return b.register(new(Handlers).OnUpdate(fn, fs...))
}

func (b *Bot) OnMessage(fn MessageHandler, fs ...filters.Filter) Handle {
	return b.register(new(Handlers).OnMessage(fn, fs...))
}

func (b *Bot) OnEditedMessage(fn MessageHandler, fs ...filters.Filter) Handle {
	return b.register(new(Handlers).OnEditedMessage(fn, fs...))
}

func (b *Bot) OnChannelPost(fn MessageHandler, fs ...filters.Filter) Handle {
	return b.register(new(Handlers).OnChannelPost(fn, fs...))
}

func (b *Bot) OnEditedChannelPost(fn MessageHandler, fs ...filters.Filter) Handle {
	return b.register(new(Handlers).OnEditedChannelPost(fn, fs...))
}

func (b *Bot) OnBusinessMessage(fn MessageHandler, fs ...filters.Filter) Handle {
	return b.register(new(Handlers).OnBusinessMessage(fn, fs...))
}

func (b *Bot) OnEditedBusinessMessage(fn MessageHandler, fs ...filters.Filter) Handle {
	return b.register(new(Handlers).OnEditedBusinessMessage(fn, fs...))
}

func (b *Bot) OnCallbackQuery(fn CallbackQueryHandler, fs ...filters.Filter) Handle {
	return b.register(new(Handlers).OnCallbackQuery(fn, fs...))
}

func (b *Bot) OnInlineQuery(fn InlineQueryHandler, fs ...filters.Filter) Handle {
	return b.register(new(Handlers).OnInlineQuery(fn, fs...))
}

func (b *Bot) OnChosenInlineResult(fn ChosenInlineResultHandler, fs ...filters.Filter) Handle {
	return b.register(new(Handlers).OnChosenInlineResult(fn, fs...))
}

func (b *Bot) OnMyChatMember(fn ChatMemberHandler, fs ...filters.Filter) Handle {
	return b.register(new(Handlers).OnMyChatMember(fn, fs...))
}

func (b *Bot) OnChatMember(fn ChatMemberHandler, fs ...filters.Filter) Handle {
	return b.register(new(Handlers).OnChatMember(fn, fs...))
}

func (b *Bot) OnBusinessConnection(fn BusinessConnectionHandler, fs ...filters.Filter) Handle {
	return b.register(new(Handlers).OnBusinessConnection(fn, fs...))
}

func (b *Bot) OnDeletedBusinessMessages(fn DeletedBusinessMessagesHandler, fs ...filters.Filter) Handle {
	return b.register(new(Handlers).OnDeletedBusinessMessages(fn, fs...))
}

// OnCommand registers a command handler. Keys starting with a slash match
// message commands, other keys match callback query data.
func (b *Bot) OnCommand(key string, fn CommandHandler, fs ...filters.Filter) Handle {
	return b.register(new(Handlers).OnCommand(key, fn, fs...))
}

func (b *Bot) register(h *Handlers) Handle {
	return b.handlers.add(h.entries[0])
}

// RemoveHandler unregisters the handler. It returns false if the handle is unknown.
func (b *Bot) RemoveHandler(handle Handle) bool {
	return b.handlers.remove(handle)
}

// Dispatch passes the update to the first handler accepting it.
// It returns false if no handler accepted the update.
func (b *Bot) Dispatch(ctx context.Context, update *types.Update) (bool, error) {
	for _, entry := range b.handlers.snapshot() {
		if ok, err := entry.handler(ctx, b, update); ok {
			return true, err
		}
	}

	return false, nil
}
