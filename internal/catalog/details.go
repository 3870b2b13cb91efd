package catalog

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"bingeboard/internal/logging"
	"bingeboard/internal/media"
	"bingeboard/internal/tmdb"
)

const (
	maxGalleryBackdrops = 10
	maxGalleryPosters   = 5
	defaultCastOrder    = 999
	unknownCharacter    = "N/A"
)

// MediaDetails is the detail page view of a movie or series.
type MediaDetails struct {
	ID               int64           `json:"id"`
	MediaType        media.MediaType `json:"media_type"`
	Title            string          `json:"title,omitempty"`
	Name             string          `json:"name,omitempty"`
	OriginalTitle    string          `json:"original_title,omitempty"`
	OriginalName     string          `json:"original_name,omitempty"`
	OriginalLanguage string          `json:"original_language,omitempty"`
	Overview         string          `json:"overview"`
	PosterURL        string          `json:"posterUrl"`
	BackdropURL      string          `json:"backdropUrl"`
	ReleaseDate      string          `json:"release_date,omitempty"`
	FirstAirDate     string          `json:"first_air_date,omitempty"`
	Genres           []media.Genre   `json:"genres"`
	VoteAverage      float64         `json:"vote_average"`
	VoteCount        int64           `json:"vote_count"`
	Runtime          int             `json:"runtime,omitempty"`
	EpisodeRunTime   []int           `json:"episode_run_time,omitempty"`
	Tagline          string          `json:"tagline,omitempty"`
	Status           string          `json:"status,omitempty"`
	NumberOfSeasons  int             `json:"number_of_seasons,omitempty"`
	NumberOfEpisodes int             `json:"number_of_episodes,omitempty"`
	Budget           int64           `json:"budget,omitempty"`
	Revenue          int64           `json:"revenue,omitempty"`
	Popularity       float64         `json:"popularity,omitempty"`
	Homepage         string          `json:"homepage,omitempty"`
}

// DisplayTitle returns the movie title or series name.
func (d MediaDetails) DisplayTitle() string {
	if d.MediaType == media.Movie {
		return firstNonEmpty(d.Title, d.OriginalTitle)
	}
	return firstNonEmpty(d.Name, d.OriginalName)
}

// Recommendation converts the details into a list-ready item.
func (d MediaDetails) Recommendation() media.Recommendation {
	ids := make([]int, 0, len(d.Genres))
	for _, g := range d.Genres {
		ids = append(ids, g.ID)
	}
	genre := media.UnknownGenre
	if len(d.Genres) > 0 && d.Genres[0].Name != "" {
		genre = d.Genres[0].Name
	}
	return media.Recommendation{
		ID:               media.IDFromInt(d.ID),
		Title:            d.DisplayTitle(),
		PosterURL:        d.PosterURL,
		BackdropURL:      d.BackdropURL,
		Overview:         d.Overview,
		Genre:            genre,
		GenreIDs:         ids,
		MediaType:        d.MediaType,
		Popularity:       d.Popularity,
		VoteAverage:      d.VoteAverage,
		OriginalLanguage: d.OriginalLanguage,
		ReleaseDate:      d.ReleaseDate,
		FirstAirDate:     d.FirstAirDate,
	}
}

// Details returns the detail view, or nil when unavailable.
func (s *Service) Details(ctx context.Context, mediaType media.MediaType, id string) *MediaDetails {
	if !s.available() {
		return nil
	}
	s.ensureGenres(ctx, mediaType)
	raw, err := s.tmdb.Details(ctx, mediaType, id)
	if err != nil {
		s.warn("details fetch failed", "details", err, itemAttrs(mediaType, id)...)
		return nil
	}
	if raw == nil || raw.ID == 0 {
		return nil
	}
	details := &MediaDetails{
		ID:               raw.ID,
		MediaType:        mediaType,
		Title:            raw.Title,
		Name:             raw.Name,
		OriginalTitle:    raw.OriginalTitle,
		OriginalName:     raw.OriginalName,
		OriginalLanguage: raw.OriginalLanguage,
		Overview:         raw.Overview,
		ReleaseDate:      raw.ReleaseDate,
		FirstAirDate:     raw.FirstAirDate,
		Genres:           raw.Genres,
		VoteAverage:      raw.VoteAverage,
		VoteCount:        raw.VoteCount,
		Runtime:          raw.Runtime,
		EpisodeRunTime:   raw.EpisodeRunTime,
		Tagline:          raw.Tagline,
		Status:           raw.Status,
		NumberOfSeasons:  raw.NumberOfSeasons,
		NumberOfEpisodes: raw.NumberOfEpisodes,
		Budget:           raw.Budget,
		Revenue:          raw.Revenue,
		Popularity:       raw.Popularity,
		Homepage:         raw.Homepage,
	}
	if details.Genres == nil {
		details.Genres = []media.Genre{}
	}
	title := details.DisplayTitle()
	poster := s.images.url(posterSize, raw.PosterPath)
	switch {
	case raw.BackdropPath != "":
		details.BackdropURL = s.images.url(backdropSize, raw.BackdropPath)
	case poster != "":
		details.BackdropURL = poster
	default:
		details.BackdropURL = placeholder("1280x720", firstNonEmpty(title, "No Backdrop"))
	}
	if poster == "" {
		poster = placeholder("400x600", firstNonEmpty(title, "No Poster"))
	}
	details.PosterURL = poster
	return details
}

// CastMember is a normalized cast entry.
type CastMember struct {
	ID                int64  `json:"id"`
	Name              string `json:"name"`
	Character         string `json:"character"`
	ProfileURL        string `json:"profile_path,omitempty"`
	Order             int    `json:"order"`
	TotalEpisodeCount int    `json:"total_episode_count,omitempty"`
}

// Credits is the cast of a movie or series.
type Credits struct {
	ID   int64        `json:"id"`
	Cast []CastMember `json:"cast"`
}

// Credits returns the cast list. Failures yield an empty cast.
func (s *Service) Credits(ctx context.Context, mediaType media.MediaType, id string) Credits {
	parsedID, _ := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
	empty := Credits{ID: parsedID, Cast: []CastMember{}}
	if !s.available() {
		return empty
	}
	raw, err := s.tmdb.Credits(ctx, mediaType, id)
	if err != nil {
		s.warn("credits fetch failed", "credits", err, itemAttrs(mediaType, id)...)
		return empty
	}
	cast := make([]CastMember, 0, len(raw.Cast))
	for _, member := range raw.Cast {
		entry := CastMember{
			ID:         member.ID,
			Name:       member.Name,
			Character:  member.Character,
			ProfileURL: s.images.url(posterSize, member.ProfilePath),
			Order:      defaultCastOrder,
		}
		if member.Order != nil {
			entry.Order = *member.Order
		}
		if mediaType == media.TV {
			entry.Character = unknownCharacter
			if len(member.Roles) > 0 {
				entry.Character = member.Roles[0].Character
			}
			entry.TotalEpisodeCount = member.TotalEpisodeCount
		}
		cast = append(cast, entry)
	}
	return Credits{ID: parsedID, Cast: cast}
}

// Seasons returns the regular seasons of a series, skipping specials and
// seasons without episodes.
func (s *Service) Seasons(ctx context.Context, tvID string) []tmdb.SeasonSummary {
	if !s.available() {
		return []tmdb.SeasonSummary{}
	}
	raw, err := s.tmdb.Details(ctx, media.TV, tvID)
	if err != nil {
		s.warn("seasons fetch failed", "seasons", err, itemAttrs(media.TV, tvID)...)
		return []tmdb.SeasonSummary{}
	}
	seasons := make([]tmdb.SeasonSummary, 0, len(raw.Seasons))
	for _, season := range raw.Seasons {
		if season.SeasonNumber == 0 || season.EpisodeCount <= 0 {
			continue
		}
		seasons = append(seasons, season)
	}
	return seasons
}

// SeasonEpisodes returns the episodes of one season.
func (s *Service) SeasonEpisodes(ctx context.Context, tvID string, seasonNumber int) []tmdb.Episode {
	if !s.available() {
		return []tmdb.Episode{}
	}
	raw, err := s.tmdb.SeasonDetails(ctx, tvID, seasonNumber)
	if err != nil {
		s.warn("season episodes fetch failed", "season_episodes", err,
			append(itemAttrs(media.TV, tvID), logging.Int("season", seasonNumber))...)
		return []tmdb.Episode{}
	}
	if raw.Episodes == nil {
		return []tmdb.Episode{}
	}
	return raw.Episodes
}

// Provider is a normalized watch provider.
type Provider struct {
	ID              int64  `json:"provider_id"`
	Name            string `json:"provider_name"`
	LogoURL         string `json:"logo_path,omitempty"`
	DisplayPriority int    `json:"display_priority"`
}

// Availability lists where a title can be watched in one region.
type Availability struct {
	Region   string     `json:"region"`
	Link     string     `json:"link"`
	Flatrate []Provider `json:"flatrate,omitempty"`
	Rent     []Provider `json:"rent,omitempty"`
	Buy      []Provider `json:"buy,omitempty"`
	Ads      []Provider `json:"ads,omitempty"`
}

// WatchProviders returns availability in region, or the configured region when
// empty. Nil means the title has no providers there.
func (s *Service) WatchProviders(ctx context.Context, mediaType media.MediaType, id, region string) *Availability {
	if !s.available() {
		return nil
	}
	region = strings.ToUpper(strings.TrimSpace(region))
	if region == "" {
		region = s.region
	}
	raw, err := s.tmdb.WatchProviders(ctx, mediaType, id)
	if err != nil {
		s.warn("watch providers fetch failed", "watch_providers", err, itemAttrs(mediaType, id)...)
		return nil
	}
	regional, ok := raw.Results[region]
	if !ok {
		return nil
	}
	link := regional.Link
	if link == "" {
		link = fmt.Sprintf("https://www.themoviedb.org/%s/%s/watch?locale=%s", mediaType, id, region)
	}
	return &Availability{
		Region:   region,
		Link:     link,
		Flatrate: s.providers(regional.Flatrate),
		Rent:     s.providers(regional.Rent),
		Buy:      s.providers(regional.Buy),
		Ads:      s.providers(regional.Ads),
	}
}

func (s *Service) providers(raw []tmdb.Provider) []Provider {
	if raw == nil {
		return nil
	}
	out := make([]Provider, 0, len(raw))
	for _, p := range raw {
		out = append(out, Provider{
			ID:              p.ProviderID,
			Name:            p.ProviderName,
			LogoURL:         s.images.url(providerLogoSize, p.LogoPath),
			DisplayPriority: p.DisplayPriority,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DisplayPriority < out[j].DisplayPriority })
	return out
}

// Image is a gallery image with an absolute URL.
type Image struct {
	URL         string  `json:"file_path"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	AspectRatio float64 `json:"aspect_ratio"`
	Language    *string `json:"iso_639_1"`
	VoteAverage float64 `json:"vote_average"`
	VoteCount   int64   `json:"vote_count"`
}

// Gallery holds the backdrops and posters shown on the detail page.
type Gallery struct {
	Backdrops []Image `json:"backdrops"`
	Posters   []Image `json:"posters"`
}

// Images returns up to ten backdrops and five posters, or nil on failure.
func (s *Service) Images(ctx context.Context, mediaType media.MediaType, id string) *Gallery {
	if !s.available() {
		return nil
	}
	raw, err := s.tmdb.Images(ctx, mediaType, id)
	if err != nil {
		s.warn("images fetch failed", "images", err, itemAttrs(mediaType, id)...)
		return nil
	}
	return &Gallery{
		Backdrops: s.gallery(raw.Backdrops, galleryBackdropSize, "780x439", maxGalleryBackdrops),
		Posters:   s.gallery(raw.Posters, galleryPosterSize, "342x513", maxGalleryPosters),
	}
}

func (s *Service) gallery(raw []tmdb.Image, size, placeholderSize string, limit int) []Image {
	if len(raw) > limit {
		raw = raw[:limit]
	}
	out := make([]Image, 0, len(raw))
	for _, img := range raw {
		u := s.images.url(size, img.FilePath)
		if u == "" {
			u = "https://placehold.co/" + placeholderSize + ".png?text=No+Image"
		}
		out = append(out, Image{
			URL:         u,
			Width:       img.Width,
			Height:      img.Height,
			AspectRatio: img.AspectRatio,
			Language:    img.Language,
			VoteAverage: img.VoteAverage,
			VoteCount:   img.VoteCount,
		})
	}
	return out
}

func itemAttrs(mediaType media.MediaType, id string) []logging.Attr {
	return []logging.Attr{
		logging.MediaType(mediaType),
		logging.ItemID(id),
	}
}
