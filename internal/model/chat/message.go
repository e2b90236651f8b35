package chat

import "time"

// Sender identifies who authored a transcript line.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Message is one line of the conversation transcript.
type Message struct {
	Sender    Sender    `json:"sender"`
	Text      string    `json:"text"`
	Track     *Track    `json:"track,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Track is the optional visual attachment of a recommendation reply.
type Track struct {
	Song       string `json:"song,omitempty"`
	Artist     string `json:"artist,omitempty"`
	SpotifyURL string `json:"spotifyUrl,omitempty"`
	PreviewURL string `json:"previewUrl,omitempty"`
	CoverArt   string `json:"coverArt,omitempty"`
}

// Empty reports whether the track carries nothing worth rendering.
func (t Track) Empty() bool {
	return t == Track{}
}
