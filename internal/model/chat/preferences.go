package chat

// Preferences is the structured music preference record. A nil field means
// the value has not been specified yet, not that it is explicitly empty.
type Preferences struct {
	Genre        *string `json:"genre"`
	Mood         *string `json:"mood"`
	Tempo        *string `json:"tempo"`
	ArtistOrSong *string `json:"artist_or_song"`
}

// IsEmpty reports whether no field is set.
func (p Preferences) IsEmpty() bool {
	return p.Genre == nil && p.Mood == nil && p.Tempo == nil && p.ArtistOrSong == nil
}

// StringPtr returns a pointer to s, or nil when s is empty.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Value dereferences p, returning "" for nil.
func Value(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
