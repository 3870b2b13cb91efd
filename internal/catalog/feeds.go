package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sourcegraph/conc/iter"

	"bingeboard/internal/logging"
	"bingeboard/internal/media"
	"bingeboard/internal/tmdb"
)

// Feed names accepted by Category.
const (
	FeedTrendingMovies = "trending-movies"
	FeedTrendingTV     = "trending-tv"
	FeedNowPlaying     = "now-playing"
	FeedHollywood      = "hollywood"
	FeedBollywood      = "bollywood"
	FeedAnimated       = "animated"
	FeedAnime          = "anime"
)

const (
	animationGenreID = "16"
	animeKeywordID   = "210024"
	nowPlayingRegion = "US"
)

// ErrUnknownFeed is returned by Category for unrecognized names.
var ErrUnknownFeed = errors.New("unknown catalog feed")

// Feed is a named shelf of recommendations.
type Feed struct {
	Name  string                 `json:"name"`
	Title string                 `json:"title"`
	Items []media.Recommendation `json:"items"`
}

type feedTitle struct {
	name  string
	title string
}

var feedTitles = []feedTitle{
	{FeedTrendingMovies, "Trending Movies"},
	{FeedTrendingTV, "Trending TV Shows"},
	{FeedNowPlaying, "Now Playing in Theaters"},
	{FeedHollywood, "Popular Hollywood Movies"},
	{FeedBollywood, "Popular Bollywood Movies"},
	{FeedAnimated, "Animated Movies"},
	{FeedAnime, "Anime Series"},
}

// FeedNames lists the supported feed names in display order.
func FeedNames() []string {
	names := make([]string, 0, len(feedTitles))
	for _, f := range feedTitles {
		names = append(names, f.name)
	}
	return names
}

// TrendingMovies returns this week's trending movies.
func (s *Service) TrendingMovies(ctx context.Context) []media.Recommendation {
	return s.trending(ctx, media.Movie)
}

// TrendingTV returns this week's trending series.
func (s *Service) TrendingTV(ctx context.Context) []media.Recommendation {
	return s.trending(ctx, media.TV)
}

// Trending dispatches on mediaType.
func (s *Service) Trending(ctx context.Context, mediaType media.MediaType) []media.Recommendation {
	return s.trending(ctx, mediaType)
}

func (s *Service) trending(ctx context.Context, mediaType media.MediaType) []media.Recommendation {
	if !s.available() || !mediaType.Valid() {
		return []media.Recommendation{}
	}
	s.ensureGenres(ctx, mediaType)
	page, err := s.tmdb.Trending(ctx, mediaType)
	if err != nil {
		s.warn("trending fetch failed", "trending", err)
		return []media.Recommendation{}
	}
	return s.mapPage(page, mediaType)
}

// NowPlayingMovies returns movies currently in US theatres.
func (s *Service) NowPlayingMovies(ctx context.Context) []media.Recommendation {
	if !s.available() {
		return []media.Recommendation{}
	}
	s.ensureGenres(ctx, media.Movie)
	page, err := s.tmdb.NowPlaying(ctx, nowPlayingRegion)
	if err != nil {
		s.warn("now playing fetch failed", "now_playing", err)
		return []media.Recommendation{}
	}
	return s.mapPage(page, media.Movie)
}

// HollywoodMovies returns popular English-language movies.
func (s *Service) HollywoodMovies(ctx context.Context) []media.Recommendation {
	return s.discover(ctx, media.Movie, tmdb.DiscoverOptions{OriginalLanguage: "en"})
}

// BollywoodMovies returns popular Hindi-language movies.
func (s *Service) BollywoodMovies(ctx context.Context) []media.Recommendation {
	return s.discover(ctx, media.Movie, tmdb.DiscoverOptions{OriginalLanguage: "hi"})
}

// AnimatedMovies returns popular animation-genre movies.
func (s *Service) AnimatedMovies(ctx context.Context) []media.Recommendation {
	return s.discover(ctx, media.Movie, tmdb.DiscoverOptions{Genres: animationGenreID})
}

// AnimeSeries returns popular animated series tagged anime.
func (s *Service) AnimeSeries(ctx context.Context) []media.Recommendation {
	return s.discover(ctx, media.TV, tmdb.DiscoverOptions{Genres: animationGenreID, Keywords: animeKeywordID})
}

func (s *Service) discover(ctx context.Context, mediaType media.MediaType, opts tmdb.DiscoverOptions) []media.Recommendation {
	if !s.available() {
		return []media.Recommendation{}
	}
	s.ensureGenres(ctx, mediaType)
	page, err := s.tmdb.Discover(ctx, mediaType, opts)
	if err != nil {
		s.warn("discover fetch failed", "discover", err, logging.MediaType(mediaType))
		return []media.Recommendation{}
	}
	return s.mapPage(page, mediaType)
}

// Category returns the feed with the given name.
func (s *Service) Category(ctx context.Context, name string) ([]media.Recommendation, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case FeedTrendingMovies:
		return s.TrendingMovies(ctx), nil
	case FeedTrendingTV:
		return s.TrendingTV(ctx), nil
	case FeedNowPlaying:
		return s.NowPlayingMovies(ctx), nil
	case FeedHollywood:
		return s.HollywoodMovies(ctx), nil
	case FeedBollywood:
		return s.BollywoodMovies(ctx), nil
	case FeedAnimated:
		return s.AnimatedMovies(ctx), nil
	case FeedAnime:
		return s.AnimeSeries(ctx), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFeed, name)
	}
}

// HomeFeeds fetches every feed concurrently, preserving display order.
func (s *Service) HomeFeeds(ctx context.Context) []Feed {
	s.ensureGenres(ctx, media.Movie)
	s.ensureGenres(ctx, media.TV)
	return iter.Map(feedTitles, func(f *feedTitle) Feed {
		items, _ := s.Category(ctx, f.name)
		return Feed{Name: f.name, Title: f.title, Items: items}
	})
}
