package media

import (
	"bytes"
	"fmt"
	"slices"
	"strconv"

	"github.com/goccy/go-json"
)

// SeasonProgress is either "all" or an explicit set of watched episode numbers.
type SeasonProgress struct {
	All      bool
	Episodes []int
}

// AllEpisodes marks a whole season as watched.
func AllEpisodes() SeasonProgress {
	return SeasonProgress{All: true}
}

// EpisodeSet returns progress for the given episodes, sorted and de-duplicated.
func EpisodeSet(episodes ...int) SeasonProgress {
	out := slices.Clone(episodes)
	slices.Sort(out)
	return SeasonProgress{Episodes: slices.Compact(out)}
}

// Watched reports whether episode n is covered.
func (p SeasonProgress) Watched(n int) bool {
	if p.All {
		return true
	}
	_, found := slices.BinarySearch(p.Episodes, n)
	return found
}

func (p SeasonProgress) MarshalJSON() ([]byte, error) {
	if p.All {
		return []byte(`"all"`), nil
	}
	if p.Episodes == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(p.Episodes)
}

func (p *SeasonProgress) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s != "all" {
			return fmt.Errorf("season progress %q must be \"all\" or an episode list", s)
		}
		*p = AllEpisodes()
		return nil
	}
	var episodes []int
	if err := json.Unmarshal(data, &episodes); err != nil {
		return fmt.Errorf("season progress: %w", err)
	}
	*p = EpisodeSet(episodes...)
	return nil
}

// WatchedEpisodes maps season number to progress.
type WatchedEpisodes map[int]SeasonProgress

// Clone returns an independent copy.
func (w WatchedEpisodes) Clone() WatchedEpisodes {
	if w == nil {
		return nil
	}
	out := make(WatchedEpisodes, len(w))
	for season, progress := range w {
		out[season] = SeasonProgress{All: progress.All, Episodes: slices.Clone(progress.Episodes)}
	}
	return out
}

// Seasons returns the tracked season numbers in ascending order.
func (w WatchedEpisodes) Seasons() []int {
	out := make([]int, 0, len(w))
	for season := range w {
		out = append(out, season)
	}
	slices.Sort(out)
	return out
}

// Summary renders progress compactly, e.g. "S1:all S2:1,2,3".
func (w WatchedEpisodes) Summary() string {
	var buf bytes.Buffer
	for i, season := range w.Seasons() {
		if i > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString("S")
		buf.WriteString(strconv.Itoa(season))
		buf.WriteByte(':')
		progress := w[season]
		if progress.All {
			buf.WriteString("all")
			continue
		}
		for j, ep := range progress.Episodes {
			if j > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(strconv.Itoa(ep))
		}
	}
	return buf.String()
}
