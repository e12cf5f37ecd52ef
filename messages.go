package tgram

import (
	"context"
	"strings"

	"tgram/marshal"
	"tgram/types"
)

// SendOptions are the optional parameters shared by send methods.
// Unset DisableNotification and ProtectContent fall back to bot defaults.
type SendOptions struct {
	BusinessConnectionID string
	MessageThreadID      types.ID
	DisableNotification  *bool
	ProtectContent       *bool
	MessageEffectID      string
	ReplyParameters      *types.ReplyParameters
	ReplyMarkup          types.ReplyMarkup
}

func (o *SendOptions) args(args marshal.Args) marshal.Args {
	if o == nil {
		o = new(SendOptions)
	}

	return args.
		Set("business_connection_id", o.BusinessConnectionID).
		Set("message_thread_id", o.MessageThreadID).
		Set("disable_notification", o.DisableNotification).
		Set("protect_content", o.ProtectContent).
		Set("message_effect_id", o.MessageEffectID).
		Set("reply_parameters", o.ReplyParameters).
		Set("reply_markup", o.ReplyMarkup)
}

// MessageOptions are the optional parameters of sendMessage.
type MessageOptions struct {
	SendOptions
	ParseMode          types.ParseMode
	Entities           []types.MessageEntity
	LinkPreviewOptions *types.LinkPreviewOptions
}

// SendMessage is used to send text messages.
// See https://core.telegram.org/bots/api#sendmessage
func (b *Bot) SendMessage(ctx context.Context, chatID types.ChatID, text string, options *MessageOptions) (*types.Message, error) {
	if options == nil {
		options = new(MessageOptions)
	}

	args := options.SendOptions.args(marshal.Args{
		"chat_id":              chatID,
		"text":                 text,
		"parse_mode":           options.ParseMode,
		"entities":             options.Entities,
		"link_preview_options": options.LinkPreviewOptions,
	})

	return CallAs[*types.Message](ctx, b, "sendMessage", args)
}

// ForwardMessage is used to forward messages of any kind.
// Service messages can't be forwarded.
// See https://core.telegram.org/bots/api#forwardmessage
func (b *Bot) ForwardMessage(ctx context.Context, chatID types.ChatID, ref types.MessageRef, options *SendOptions) (*types.Message, error) {
	args := options.args(marshal.Args{
		"chat_id":      chatID,
		"from_chat_id": ref.ChatID,
		"message_id":   ref.ID,
	})

	// forwardMessage has no business connection, effects or reply parameters
	delete(args, "business_connection_id")
	delete(args, "message_effect_id")
	delete(args, "reply_parameters")
	delete(args, "reply_markup")
	return CallAs[*types.Message](ctx, b, "forwardMessage", args)
}

// CopyOptions are the optional parameters of copyMessage.
type CopyOptions struct {
	SendOptions
	Caption               *string
	ParseMode             types.ParseMode
	CaptionEntities       []types.MessageEntity
	ShowCaptionAboveMedia bool
}

// CopyMessage is used to copy messages of any kind.
// The copied message has no link to the original one.
// See https://core.telegram.org/bots/api#copymessage
func (b *Bot) CopyMessage(ctx context.Context, chatID types.ChatID, ref types.MessageRef, options *CopyOptions) (types.ID, error) {
	if options == nil {
		options = new(CopyOptions)
	}

	args := options.SendOptions.args(marshal.Args{
		"chat_id":          chatID,
		"from_chat_id":     ref.ChatID,
		"message_id":       ref.ID,
		"caption":          options.Caption,
		"parse_mode":       options.ParseMode,
		"caption_entities": options.CaptionEntities,
	}).Set("show_caption_above_media", options.ShowCaptionAboveMedia)

	delete(args, "business_connection_id")
	delete(args, "message_effect_id")
	id, err := CallAs[*types.MessageID](ctx, b, "copyMessage", args)
	if err != nil || id == nil {
		return 0, err
	}

	return id.ID, nil
}

// EditOptions are the optional parameters of editMessageText.
type EditOptions struct {
	BusinessConnectionID string
	ParseMode            types.ParseMode
	Entities             []types.MessageEntity
	LinkPreviewOptions   *types.LinkPreviewOptions
	ReplyMarkup          *types.InlineKeyboardMarkup
}

// EditMessageText is used to edit text and game messages.
// See https://core.telegram.org/bots/api#editmessagetext
func (b *Bot) EditMessageText(ctx context.Context, ref types.MessageRef, text string, options *EditOptions) (*types.Message, error) {
	if options == nil {
		options = new(EditOptions)
	}

	message, err := CallAs[*types.Message](ctx, b, "editMessageText", marshal.Args{
		"business_connection_id": options.BusinessConnectionID,
		"chat_id":                ref.ChatID,
		"message_id":             ref.ID,
		"text":                   text,
		"parse_mode":             options.ParseMode,
		"entities":               options.Entities,
		"link_preview_options":   options.LinkPreviewOptions,
		"reply_markup":           options.ReplyMarkup,
	})

	return notModified(message, err)
}

// EditMessageReplyMarkup is used to edit only the reply markup of messages.
// A nil markup removes the keyboard.
// See https://core.telegram.org/bots/api#editmessagereplymarkup
func (b *Bot) EditMessageReplyMarkup(ctx context.Context, ref types.MessageRef, markup *types.InlineKeyboardMarkup) (*types.Message, error) {
	message, err := CallAs[*types.Message](ctx, b, "editMessageReplyMarkup", marshal.Args{
		"chat_id":      ref.ChatID,
		"message_id":   ref.ID,
		"reply_markup": markup,
	})

	return notModified(message, err)
}

// notModified treats "message is not modified" as a successful edit with no result.
func notModified(message *types.Message, err error) (*types.Message, error) {
	if remote, ok := marshal.AsRemote(err); ok && remote.Code == 400 &&
		strings.Contains(remote.Description, "message is not modified") {
		return nil, nil
	}

	return message, err
}

// DeleteMessage is used to delete a message, including service messages.
// See https://core.telegram.org/bots/api#deletemessage
func (b *Bot) DeleteMessage(ctx context.Context, ref types.MessageRef) error {
	return b.callOK(ctx, "deleteMessage", marshal.Args{
		"chat_id":    ref.ChatID,
		"message_id": ref.ID,
	})
}

// DeleteMessages is used to delete multiple messages simultaneously.
// Messages which can't be found are skipped.
// See https://core.telegram.org/bots/api#deletemessages
func (b *Bot) DeleteMessages(ctx context.Context, chatID types.ChatID, messageIDs []types.ID) error {
	return b.callOK(ctx, "deleteMessages", marshal.Args{
		"chat_id":     chatID,
		"message_ids": messageIDs,
	})
}

// Chat actions accepted by SendChatAction.
const (
	Typing          = "typing"
	UploadPhoto     = "upload_photo"
	RecordVideo     = "record_video"
	UploadVideo     = "upload_video"
	RecordVoice     = "record_voice"
	UploadVoice     = "upload_voice"
	UploadDocument  = "upload_document"
	ChooseSticker   = "choose_sticker"
	FindLocation    = "find_location"
	RecordVideoNote = "record_video_note"
	UploadVideoNote = "upload_video_note"
)

// SendChatAction tells the user that something is happening on the bot's side.
// See https://core.telegram.org/bots/api#sendchataction
func (b *Bot) SendChatAction(ctx context.Context, chatID types.ChatID, action string, businessConnectionID string) error {
	return b.callOK(ctx, "sendChatAction", marshal.Args{
		"business_connection_id": businessConnectionID,
		"chat_id":                chatID,
		"action":                 action,
	})
}
