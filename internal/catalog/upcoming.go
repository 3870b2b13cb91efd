package catalog

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"time"

	"bingeboard/internal/media"
)

var yearOnly = regexp.MustCompile(`^\d{4}$`)

var releaseLayouts = []string{
	"2006-01-02",
	"Mon Jan 02 2006",
	"Mon Jan 2 2006",
	"Jan 02 2006",
	"Jan 2 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 January 2006",
	time.RFC3339,
}

// parseReleaseDate turns the feed's free-form release text into YYYY-MM-DD.
// A bare year maps to January 1st.
func parseReleaseDate(release, year string) (string, bool) {
	release = strings.TrimSpace(release)
	if release != "" {
		if yearOnly.MatchString(release) {
			return release + "-01-01", true
		}
		for _, layout := range releaseLayouts {
			if t, err := time.Parse(layout, release); err == nil {
				return t.Format("2006-01-02"), true
			}
		}
	}
	if year = strings.TrimSpace(year); yearOnly.MatchString(year) {
		return year + "-01-01", true
	}
	return "", false
}

// Upcoming returns movies releasing after today, soonest first. When
// monthsOut is positive, releases beyond that horizon are dropped. A missing
// RapidAPI key yields an empty result.
func (s *Service) Upcoming(ctx context.Context, monthsOut int) []media.Recommendation {
	if s.imdb == nil {
		return []media.Recommendation{}
	}
	raw, err := s.imdb.Upcoming(ctx)
	if err != nil {
		s.warn("upcoming fetch failed", "upcoming", err)
		return []media.Recommendation{}
	}

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	var horizon time.Time
	if monthsOut > 0 {
		horizon = today.AddDate(0, monthsOut, 0)
	}

	type dated struct {
		rec  media.Recommendation
		date time.Time
	}
	var items []dated
	for _, movie := range raw {
		if movie.ID == "" || movie.Title == "" || !strings.HasPrefix(movie.Image, "http") {
			continue
		}
		release, ok := parseReleaseDate(movie.ReleaseState, movie.Year)
		if !ok {
			continue
		}
		date, err := time.Parse("2006-01-02", release)
		if err != nil || !date.After(today) {
			continue
		}
		if !horizon.IsZero() && date.After(horizon) {
			continue
		}
		genre := media.UnknownGenre
		if len(movie.Genres) > 0 && movie.Genres[0] != "" {
			genre = movie.Genres[0]
		}
		items = append(items, dated{
			date: date,
			rec: media.Recommendation{
				ID:          media.ID(movie.ID),
				Title:       movie.Title,
				PosterURL:   movie.Image,
				BackdropURL: placeholder("1280x720", movie.Title),
				Overview:    movie.Plot,
				Genre:       genre,
				GenreIDs:    []int{},
				MediaType:   media.Movie,
				ReleaseDate: release,
			},
		})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].date.Before(items[j].date) })

	out := make([]media.Recommendation, 0, len(items))
	for _, item := range items {
		out = append(out, item.rec)
	}
	return out
}
