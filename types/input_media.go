package types

// InputMedia (https://core.telegram.org/bots/api#inputmedia)
// is an item of sendMediaGroup.
type InputMedia interface {
	Value
	Media() InputFile
	WithMedia(file InputFile) InputMedia
}

type (
	InputMediaPhoto struct {
		File InputFile `json:"media"`
		Captioned
		HasSpoiler bool `json:"has_spoiler,omitempty"`
	}

	InputMediaVideo struct {
		File InputFile `json:"media"`
		Captioned
		Width             int  `json:"width,omitempty"`
		Height            int  `json:"height,omitempty"`
		Duration          int  `json:"duration,omitempty"`
		SupportsStreaming bool `json:"supports_streaming,omitempty"`
		HasSpoiler        bool `json:"has_spoiler,omitempty"`
	}

	InputMediaAudio struct {
		File InputFile `json:"media"`
		Captioned
		Duration  int    `json:"duration,omitempty"`
		Performer string `json:"performer,omitempty"`
		Title     string `json:"title,omitempty"`
	}

	InputMediaDocument struct {
		File InputFile `json:"media"`
		Captioned
		DisableContentTypeDetection bool `json:"disable_content_type_detection,omitempty"`
	}
)

func (*InputMediaPhoto) Shape() Shape    { return "InputMediaPhoto" }
func (*InputMediaVideo) Shape() Shape    { return "InputMediaVideo" }
func (*InputMediaAudio) Shape() Shape    { return "InputMediaAudio" }
func (*InputMediaDocument) Shape() Shape { return "InputMediaDocument" }

func (m *InputMediaPhoto) Media() InputFile    { return m.File }
func (m *InputMediaVideo) Media() InputFile    { return m.File }
func (m *InputMediaAudio) Media() InputFile    { return m.File }
func (m *InputMediaDocument) Media() InputFile { return m.File }

func (m *InputMediaPhoto) WithMedia(file InputFile) InputMedia {
	clone := *m
	clone.File = file
	return &clone
}

func (m *InputMediaVideo) WithMedia(file InputFile) InputMedia {
	clone := *m
	clone.File = file
	return &clone
}

func (m *InputMediaAudio) WithMedia(file InputFile) InputMedia {
	clone := *m
	clone.File = file
	return &clone
}

func (m *InputMediaDocument) WithMedia(file InputFile) InputMedia {
	clone := *m
	clone.File = file
	return &clone
}

func (m InputMediaPhoto) MarshalJSON() ([]byte, error) {
	type plain InputMediaPhoto
	return tagged("type", "photo", plain(m))
}

func (m InputMediaVideo) MarshalJSON() ([]byte, error) {
	type plain InputMediaVideo
	return tagged("type", "video", plain(m))
}

func (m InputMediaAudio) MarshalJSON() ([]byte, error) {
	type plain InputMediaAudio
	return tagged("type", "audio", plain(m))
}

func (m InputMediaDocument) MarshalJSON() ([]byte, error) {
	type plain InputMediaDocument
	return tagged("type", "document", plain(m))
}
