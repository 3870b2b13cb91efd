package media

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// MediaType distinguishes movies from TV series.
type MediaType string

const (
	Movie MediaType = "movie"
	TV    MediaType = "tv"
)

// Valid reports whether t is movie or tv.
func (t MediaType) Valid() bool {
	return t == Movie || t == TV
}

// ParseMediaType normalizes user input such as "Movie" or " tv ".
func ParseMediaType(value string) (MediaType, error) {
	t := MediaType(strings.ToLower(strings.TrimSpace(value)))
	if !t.Valid() {
		return "", fmt.Errorf("media type %q must be movie or tv", value)
	}
	return t, nil
}

// ID is a catalog identifier. Stored data and imports may carry it as a JSON
// number or string; it always marshals as a string.
type ID string

// UnmarshalJSON accepts strings and numbers.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// String returns the identifier text.
func (id ID) String() string { return string(id) }

// IDFromInt formats a numeric TMDB id.
func IDFromInt(v int64) ID { return ID(strconv.FormatInt(v, 10)) }

// Genre is a TMDB genre.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// UnknownGenre is used when no genre can be resolved.
const UnknownGenre = "N/A"

// Recommendation is a normalized catalog item.
type Recommendation struct {
	ID               ID        `json:"id"`
	Title            string    `json:"title"`
	PosterURL        string    `json:"posterUrl"`
	BackdropURL      string    `json:"backdropUrl,omitempty"`
	Overview         string    `json:"overview,omitempty"`
	Genre            string    `json:"genre"`
	GenreIDs         []int     `json:"genre_ids"`
	MediaType        MediaType `json:"media_type"`
	Popularity       float64   `json:"popularity,omitempty"`
	VoteAverage      float64   `json:"vote_average,omitempty"`
	OriginalLanguage string    `json:"original_language,omitempty"`
	ReleaseDate      string    `json:"release_date,omitempty"`
	FirstAirDate     string    `json:"first_air_date,omitempty"`
}

// Key identifies an item within a list.
type Key struct {
	ID        ID
	MediaType MediaType
}

// Key returns the (id, media_type) identity of r.
func (r Recommendation) Key() Key {
	return Key{ID: r.ID, MediaType: r.MediaType}
}

// HasGenre reports whether r is tagged with genre id g.
func (r Recommendation) HasGenre(g int) bool {
	for _, id := range r.GenreIDs {
		if id == g {
			return true
		}
	}
	return false
}
