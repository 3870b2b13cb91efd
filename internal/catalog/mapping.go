package catalog

import (
	"net/url"
	"strings"

	"bingeboard/internal/media"
	"bingeboard/internal/tmdb"
)

// Image sizes used for each surface.
const (
	posterSize          = "w500"
	backdropSize        = "w1280"
	providerLogoSize    = "w92"
	galleryBackdropSize = "w780"
	galleryPosterSize   = "w342"
)

type imageURLs struct {
	base string
}

func (u imageURLs) url(size, path string) string {
	if path == "" {
		return ""
	}
	base := u.base
	if base == "" {
		base = "https://image.tmdb.org/t/p"
	}
	return base + "/" + size + path
}

func placeholder(size, text string) string {
	return "https://placehold.co/" + size + ".png?text=" + url.PathEscape(text)
}

func itemTitle(item tmdb.Item, mediaType media.MediaType) string {
	if mediaType == media.Movie {
		return firstNonEmpty(item.Title, item.OriginalTitle)
	}
	return firstNonEmpty(item.Name, item.OriginalName)
}

// mapItem normalizes a TMDB list entry. An empty mediaType uses the entry's
// own media_type (multi search). Entries without a poster, id or title, and
// people, are dropped.
func (s *Service) mapItem(item tmdb.Item, mediaType media.MediaType) (media.Recommendation, bool) {
	if mediaType == "" {
		mediaType = media.MediaType(item.MediaType)
	}
	if !mediaType.Valid() || item.PosterPath == "" || item.ID == 0 {
		return media.Recommendation{}, false
	}
	title := itemTitle(item, mediaType)
	if title == "" {
		return media.Recommendation{}, false
	}

	backdrop := s.images.url(backdropSize, item.BackdropPath)
	if backdrop == "" {
		backdrop = placeholder("1280x720", title)
	}

	genreIDs := item.GenreIDs
	if len(genreIDs) == 0 && len(item.Genres) > 0 {
		genreIDs = make([]int, 0, len(item.Genres))
		for _, g := range item.Genres {
			genreIDs = append(genreIDs, g.ID)
		}
	}
	if genreIDs == nil {
		genreIDs = []int{}
	}

	genre := media.UnknownGenre
	if len(genreIDs) > 0 {
		if name, ok := s.genres.Name(mediaType, genreIDs[0]); ok && name != "" {
			genre = name
		}
	} else if len(item.Genres) > 0 && item.Genres[0].Name != "" {
		genre = item.Genres[0].Name
	}

	return media.Recommendation{
		ID:               media.IDFromInt(item.ID),
		Title:            title,
		PosterURL:        s.images.url(posterSize, item.PosterPath),
		BackdropURL:      backdrop,
		Overview:         item.Overview,
		Genre:            genre,
		GenreIDs:         genreIDs,
		MediaType:        mediaType,
		Popularity:       item.Popularity,
		VoteAverage:      item.VoteAverage,
		OriginalLanguage: item.OriginalLanguage,
		ReleaseDate:      item.ReleaseDate,
		FirstAirDate:     item.FirstAirDate,
	}, true
}

func (s *Service) mapPage(page *tmdb.Page, mediaType media.MediaType) []media.Recommendation {
	if page == nil {
		return []media.Recommendation{}
	}
	out := make([]media.Recommendation, 0, len(page.Results))
	for _, item := range page.Results {
		if rec, ok := s.mapItem(item, mediaType); ok {
			out = append(out, rec)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
