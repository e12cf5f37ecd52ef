package tgram

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"tgram/marshal"
	"tgram/types"
)

// MediaOptions are the optional parameters of media send methods.
// Parameters not applicable to the media kind are not sent.
type MediaOptions struct {
	SendOptions
	Caption           string
	ParseMode         types.ParseMode
	CaptionEntities       []types.MessageEntity
	ShowCaptionAboveMedia bool
	HasSpoiler            bool
	Duration              int
	Width                 int
	Height                int
	SupportsStreaming     bool
	Performer             string
	Title                 string
	Thumbnail             types.InputFile
}

// Media kinds accepted by SendMedia.
const (
	Photo     = "photo"
	Audio     = "audio"
	Document  = "document"
	Video     = "video"
	Animation = "animation"
	Voice     = "voice"
	VideoNote = "video_note"
	Sticker   = "sticker"
)

var mediaMethods = map[string]string{
	Photo:     "sendPhoto",
	Audio:     "sendAudio",
	Document:  "sendDocument",
	Video:     "sendVideo",
	Animation: "sendAnimation",
	Voice:     "sendVoice",
	VideoNote: "sendVideoNote",
	Sticker:   "sendSticker",
}

// SendMedia sends a media of the given kind.
// Uploads are resolved through the file cache and their file IDs are remembered on success.
func (b *Bot) SendMedia(ctx context.Context, kind string, chatID types.ChatID, file types.InputFile, options *MediaOptions) (*types.Message, error) {
	method, ok := mediaMethods[kind]
	if !ok {
		return nil, errors.Errorf("unsupported media kind: %s", kind)
	}

	if options == nil {
		options = new(MediaOptions)
	}

	args := options.SendOptions.args(marshal.Args{
		"chat_id": chatID,
		kind:      file,
	})

	if kind != VideoNote && kind != Sticker {
		args.Set("caption", options.Caption).
			Set("parse_mode", options.ParseMode).
			Set("caption_entities", options.CaptionEntities)
	}

	switch kind {
	case Photo:
		args.Set("has_spoiler", options.HasSpoiler).
			Set("show_caption_above_media", options.ShowCaptionAboveMedia)
	case Audio:
		args.Set("duration", options.Duration).
			Set("performer", options.Performer).
			Set("title", options.Title).
			Set("thumbnail", options.Thumbnail)
	case Document:
		args.Set("thumbnail", options.Thumbnail)
	case Video, Animation:
		args.Set("duration", options.Duration).
			Set("width", options.Width).
			Set("height", options.Height).
			Set("has_spoiler", options.HasSpoiler).
			Set("show_caption_above_media", options.ShowCaptionAboveMedia).
			Set("thumbnail", options.Thumbnail)
		if kind == Video {
			args.Set("supports_streaming", options.SupportsStreaming)
		}
	case Voice:
		args.Set("duration", options.Duration)
	case VideoNote:
		args.Set("duration", options.Duration).
			Set("thumbnail", options.Thumbnail)
	}

	message, err := CallAs[*types.Message](ctx, b, method, args)
	if err != nil {
		return nil, err
	}

	b.remember(ctx, file, message)
	return message, nil
}

// SendPhoto is used to send photos.
// See https://core.telegram.org/bots/api#sendphoto
func (b *Bot) SendPhoto(ctx context.Context, chatID types.ChatID, photo types.InputFile, options *MediaOptions) (*types.Message, error) {
	return b.SendMedia(ctx, Photo, chatID, photo, options)
}

// SendAudio is used to send audio files to be displayed in the music player.
// See https://core.telegram.org/bots/api#sendaudio
func (b *Bot) SendAudio(ctx context.Context, chatID types.ChatID, audio types.InputFile, options *MediaOptions) (*types.Message, error) {
	return b.SendMedia(ctx, Audio, chatID, audio, options)
}

// SendDocument is used to send general files.
// See https://core.telegram.org/bots/api#senddocument
func (b *Bot) SendDocument(ctx context.Context, chatID types.ChatID, document types.InputFile, options *MediaOptions) (*types.Message, error) {
	return b.SendMedia(ctx, Document, chatID, document, options)
}

// SendVideo is used to send video files.
// See https://core.telegram.org/bots/api#sendvideo
func (b *Bot) SendVideo(ctx context.Context, chatID types.ChatID, video types.InputFile, options *MediaOptions) (*types.Message, error) {
	return b.SendMedia(ctx, Video, chatID, video, options)
}

// SendAnimation is used to send GIF or H.264/MPEG-4 AVC video without sound.
// See https://core.telegram.org/bots/api#sendanimation
func (b *Bot) SendAnimation(ctx context.Context, chatID types.ChatID, animation types.InputFile, options *MediaOptions) (*types.Message, error) {
	return b.SendMedia(ctx, Animation, chatID, animation, options)
}

// SendVoice is used to send audio files to be displayed as a playable voice message.
// See https://core.telegram.org/bots/api#sendvoice
func (b *Bot) SendVoice(ctx context.Context, chatID types.ChatID, voice types.InputFile, options *MediaOptions) (*types.Message, error) {
	return b.SendMedia(ctx, Voice, chatID, voice, options)
}

// SendMediaGroup is used to send a group of photos, videos, documents or audios as an album.
// See https://core.telegram.org/bots/api#sendmediagroup
func (b *Bot) SendMediaGroup(ctx context.Context, chatID types.ChatID, media []types.InputMedia, options *SendOptions) ([]*types.Message, error) {
	args := options.args(marshal.Args{
		"chat_id": chatID,
		"media":   media,
	})

	// albums have no reply markup
	delete(args, "reply_markup")
	messages, err := CallAs[[]*types.Message](ctx, b, "sendMediaGroup", args)
	if err != nil {
		return nil, err
	}

	if len(messages) == len(media) {
		for i, item := range media {
			b.remember(ctx, item.Media(), messages[i])
		}
	}

	return messages, nil
}

// GetFile is used to get basic information about a file and prepare it for downloading.
// See https://core.telegram.org/bots/api#getfile
func (b *Bot) GetFile(ctx context.Context, fileID types.FileID) (*types.File, error) {
	return CallAs[*types.File](ctx, b, "getFile", marshal.Args{"file_id": fileID})
}

// mediaDirs maps Bot API file storage directories to media kinds.
var mediaDirs = map[string]string{
	"photos":      Photo,
	"music":       Audio,
	"documents":   Document,
	"videos":      Video,
	"animations":  Animation,
	"voice":       Voice,
	"video_notes": VideoNote,
	"stickers":    Sticker,
}

// MediaKind infers the media kind from a file path returned by GetFile.
func MediaKind(filePath string) (string, bool) {
	dir := strings.SplitN(filePath, "/", 2)[0]
	if kind, ok := mediaDirs[dir]; ok {
		return kind, true
	}

	if kind := strings.TrimSuffix(dir, "s"); mediaMethods[kind] != "" {
		return kind, true
	}

	return "", false
}

// SendMediaFromFileID sends a media with a known file ID.
// The media kind is inferred from the file storage path.
func (b *Bot) SendMediaFromFileID(ctx context.Context, chatID types.ChatID, fileID types.FileID, options *MediaOptions) (*types.Message, error) {
	file, err := b.GetFile(ctx, fileID)
	if err != nil {
		return nil, errors.Wrap(err, "get file")
	}

	if file == nil {
		return nil, errors.Errorf("file %s not found", fileID)
	}

	kind, ok := MediaKind(file.FilePath)
	if !ok {
		return nil, errors.Errorf("unable to infer media kind from %s", file.FilePath)
	}

	return b.SendMedia(ctx, kind, chatID, fileID, options)
}
