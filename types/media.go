package types

type (
	// PhotoSize (https://core.telegram.org/bots/api#photosize)
	PhotoSize struct {
		FileID       string `json:"file_id"`
		FileUniqueID string `json:"file_unique_id"`
		Width        int    `json:"width"`
		Height       int    `json:"height"`
		FileSize     int64  `json:"file_size,omitempty"`
	}

	// Animation (https://core.telegram.org/bots/api#animation)
	Animation struct {
		FileID       string     `json:"file_id"`
		FileUniqueID string     `json:"file_unique_id"`
		Width        int        `json:"width"`
		Height       int        `json:"height"`
		Duration     int        `json:"duration"`
		Thumbnail    *PhotoSize `json:"thumbnail,omitempty"`
		FileName     string     `json:"file_name,omitempty"`
		MimeType     string     `json:"mime_type,omitempty"`
		FileSize     int64      `json:"file_size,omitempty"`
	}

	// Audio (https://core.telegram.org/bots/api#audio)
	Audio struct {
		FileID       string     `json:"file_id"`
		FileUniqueID string     `json:"file_unique_id"`
		Duration     int        `json:"duration"`
		Performer    string     `json:"performer,omitempty"`
		Title        string     `json:"title,omitempty"`
		FileName     string     `json:"file_name,omitempty"`
		MimeType     string     `json:"mime_type,omitempty"`
		FileSize     int64      `json:"file_size,omitempty"`
		Thumbnail    *PhotoSize `json:"thumbnail,omitempty"`
	}

	// Document (https://core.telegram.org/bots/api#document)
	Document struct {
		FileID       string     `json:"file_id"`
		FileUniqueID string     `json:"file_unique_id"`
		Thumbnail    *PhotoSize `json:"thumbnail,omitempty"`
		FileName     string     `json:"file_name,omitempty"`
		MimeType     string     `json:"mime_type,omitempty"`
		FileSize     int64      `json:"file_size,omitempty"`
	}

	// Video (https://core.telegram.org/bots/api#video)
	Video struct {
		FileID       string     `json:"file_id"`
		FileUniqueID string     `json:"file_unique_id"`
		Width        int        `json:"width"`
		Height       int        `json:"height"`
		Duration     int        `json:"duration"`
		Thumbnail    *PhotoSize `json:"thumbnail,omitempty"`
		FileName     string     `json:"file_name,omitempty"`
		MimeType     string     `json:"mime_type,omitempty"`
		FileSize     int64      `json:"file_size,omitempty"`
	}

	// VideoNote (https://core.telegram.org/bots/api#videonote)
	VideoNote struct {
		FileID       string     `json:"file_id"`
		FileUniqueID string     `json:"file_unique_id"`
		Length       int        `json:"length"`
		Duration     int        `json:"duration"`
		Thumbnail    *PhotoSize `json:"thumbnail,omitempty"`
		FileSize     int64      `json:"file_size,omitempty"`
	}

	// Voice (https://core.telegram.org/bots/api#voice)
	Voice struct {
		FileID       string `json:"file_id"`
		FileUniqueID string `json:"file_unique_id"`
		Duration     int    `json:"duration"`
		MimeType     string `json:"mime_type,omitempty"`
		FileSize     int64  `json:"file_size,omitempty"`
	}

	// Sticker (https://core.telegram.org/bots/api#sticker)
	Sticker struct {
		FileID       string     `json:"file_id"`
		FileUniqueID string     `json:"file_unique_id"`
		Type         string     `json:"type"`
		Width        int        `json:"width"`
		Height       int        `json:"height"`
		IsAnimated   bool       `json:"is_animated,omitempty"`
		IsVideo      bool       `json:"is_video,omitempty"`
		Thumbnail    *PhotoSize `json:"thumbnail,omitempty"`
		Emoji        string     `json:"emoji,omitempty"`
		SetName      string     `json:"set_name,omitempty"`
		FileSize     int64      `json:"file_size,omitempty"`
	}

	// Contact (https://core.telegram.org/bots/api#contact)
	Contact struct {
		PhoneNumber string `json:"phone_number"`
		FirstName   string `json:"first_name"`
		LastName    string `json:"last_name,omitempty"`
		UserID      ID     `json:"user_id,omitempty"`
		VCard       string `json:"vcard,omitempty"`
	}

	// Location (https://core.telegram.org/bots/api#location)
	Location struct {
		Latitude             float64 `json:"latitude"`
		Longitude            float64 `json:"longitude"`
		HorizontalAccuracy   float64 `json:"horizontal_accuracy,omitempty"`
		LivePeriod           int     `json:"live_period,omitempty"`
		Heading              int     `json:"heading,omitempty"`
		ProximityAlertRadius int     `json:"proximity_alert_radius,omitempty"`
	}

	// File (https://core.telegram.org/bots/api#file)
	File struct {
		FileID       string `json:"file_id"`
		FileUniqueID string `json:"file_unique_id"`
		FileSize     int64  `json:"file_size,omitempty"`
		FilePath     string `json:"file_path,omitempty"`
	}
)

func (*PhotoSize) Shape() Shape { return "PhotoSize" }
func (*Animation) Shape() Shape { return "Animation" }
func (*Audio) Shape() Shape     { return "Audio" }
func (*Document) Shape() Shape  { return "Document" }
func (*Video) Shape() Shape     { return "Video" }
func (*VideoNote) Shape() Shape { return "VideoNote" }
func (*Voice) Shape() Shape     { return "Voice" }
func (*Sticker) Shape() Shape   { return "Sticker" }
func (*Contact) Shape() Shape   { return "Contact" }
func (*Location) Shape() Shape  { return "Location" }
func (*File) Shape() Shape      { return "File" }

func init() {
	register(
		new(PhotoSize), new(Animation), new(Audio), new(Document), new(Video),
		new(VideoNote), new(Voice), new(Sticker), new(Contact), new(Location), new(File),
	)
}
