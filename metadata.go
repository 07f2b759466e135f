package osu

import (
	"strings"

	"github.com/kelindar/osu-sdk/internal/section"
)

// Metadata holds the [Metadata] section of a beatmap
type Metadata struct {
	Title         string
	TitleUnicode  string
	Artist        string
	ArtistUnicode string
	Creator       string
	Version       string   // Difficulty name
	Source        string   // Original media the song was produced for
	Tags          []string // Search terms
	BeatmapID     int64
	BeatmapSetID  int64
}

// setID returns a setter parsing an online identifier, which may be -1 when unset
func setID(field string, get func(*Metadata) *int64) section.Setter[Metadata] {
	return func(m *Metadata, v string) (err error) {
		*get(m), err = parseInt(field, v, 64)
		return
	}
}

var metadataKeys = section.Table[Metadata]{
	"Title":         setString(func(m *Metadata) *string { return &m.Title }),
	"TitleUnicode":  setString(func(m *Metadata) *string { return &m.TitleUnicode }),
	"Artist":        setString(func(m *Metadata) *string { return &m.Artist }),
	"ArtistUnicode": setString(func(m *Metadata) *string { return &m.ArtistUnicode }),
	"Creator":       setString(func(m *Metadata) *string { return &m.Creator }),
	"Version":       setString(func(m *Metadata) *string { return &m.Version }),
	"Source":        setString(func(m *Metadata) *string { return &m.Source }),
	"Tags": func(m *Metadata, v string) error {
		m.Tags = strings.Fields(v)
		return nil
	},
	"BeatmapID":    setID("BeatmapID", func(m *Metadata) *int64 { return &m.BeatmapID }),
	"BeatmapSetID": setID("BeatmapSetID", func(m *Metadata) *int64 { return &m.BeatmapSetID }),
}
