package tmdb

import "bingeboard/internal/media"

// Item is a list entry returned by trending, discover and search endpoints.
type Item struct {
	ID               int64         `json:"id"`
	Title            string        `json:"title"`
	OriginalTitle    string        `json:"original_title"`
	Name             string        `json:"name"`
	OriginalName     string        `json:"original_name"`
	MediaType        string        `json:"media_type"`
	PosterPath       string        `json:"poster_path"`
	BackdropPath     string        `json:"backdrop_path"`
	Overview         string        `json:"overview"`
	GenreIDs         []int         `json:"genre_ids"`
	Genres           []media.Genre `json:"genres"`
	Popularity       float64       `json:"popularity"`
	VoteAverage      float64       `json:"vote_average"`
	OriginalLanguage string        `json:"original_language"`
	ReleaseDate      string        `json:"release_date"`
	FirstAirDate     string        `json:"first_air_date"`
}

// Page models a paginated TMDB list response.
type Page struct {
	Page         int    `json:"page"`
	Results      []Item `json:"results"`
	TotalPages   int    `json:"total_pages"`
	TotalResults int    `json:"total_results"`
}

// Company is a production company search match.
type Company struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	OriginCountry string `json:"origin_country"`
}

// CompanyPage models the company search response.
type CompanyPage struct {
	Page    int       `json:"page"`
	Results []Company `json:"results"`
}

type genreList struct {
	Genres []media.Genre `json:"genres"`
}

// Details is the movie or TV detail payload. Movie-only and TV-only fields
// are left zero for the other type.
type Details struct {
	ID               int64           `json:"id"`
	Title            string          `json:"title"`
	Name             string          `json:"name"`
	OriginalTitle    string          `json:"original_title"`
	OriginalName     string          `json:"original_name"`
	OriginalLanguage string          `json:"original_language"`
	Overview         string          `json:"overview"`
	PosterPath       string          `json:"poster_path"`
	BackdropPath     string          `json:"backdrop_path"`
	ReleaseDate      string          `json:"release_date"`
	FirstAirDate     string          `json:"first_air_date"`
	Genres           []media.Genre   `json:"genres"`
	VoteAverage      float64         `json:"vote_average"`
	VoteCount        int64           `json:"vote_count"`
	Runtime          int             `json:"runtime"`
	EpisodeRunTime   []int           `json:"episode_run_time"`
	Tagline          string          `json:"tagline"`
	Status           string          `json:"status"`
	NumberOfSeasons  int             `json:"number_of_seasons"`
	NumberOfEpisodes int             `json:"number_of_episodes"`
	Budget           int64           `json:"budget"`
	Revenue          int64           `json:"revenue"`
	Popularity       float64         `json:"popularity"`
	Homepage         string          `json:"homepage"`
	Seasons          []SeasonSummary `json:"seasons"`
}

// SeasonSummary is a season entry embedded in TV details.
type SeasonSummary struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Overview     string  `json:"overview"`
	AirDate      string  `json:"air_date"`
	EpisodeCount int     `json:"episode_count"`
	PosterPath   string  `json:"poster_path"`
	SeasonNumber int     `json:"season_number"`
	VoteAverage  float64 `json:"vote_average"`
}

// Episode describes a single TMDB episode entry.
type Episode struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Overview      string  `json:"overview"`
	AirDate       string  `json:"air_date"`
	SeasonNumber  int     `json:"season_number"`
	EpisodeNumber int     `json:"episode_number"`
	Runtime       int     `json:"runtime"`
	ShowID        int64   `json:"show_id"`
	StillPath     string  `json:"still_path"`
	VoteAverage   float64 `json:"vote_average"`
	VoteCount     int64   `json:"vote_count"`
}

// SeasonDetails captures the full TMDB season payload (episodes included).
type SeasonDetails struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	SeasonNumber int       `json:"season_number"`
	Episodes     []Episode `json:"episodes"`
}

// Role is a character played across episodes in aggregate TV credits.
type Role struct {
	Character    string `json:"character"`
	EpisodeCount int    `json:"episode_count"`
}

// CastMember covers both movie credits and TV aggregate credits.
type CastMember struct {
	ID                int64  `json:"id"`
	Name              string `json:"name"`
	Character         string `json:"character"`
	ProfilePath       string `json:"profile_path"`
	Order             *int   `json:"order"`
	Roles             []Role `json:"roles"`
	TotalEpisodeCount int    `json:"total_episode_count"`
}

// Credits models the credits and aggregate_credits responses.
type Credits struct {
	ID   int64        `json:"id"`
	Cast []CastMember `json:"cast"`
}

// Provider is a streaming, rental or ad-supported provider.
type Provider struct {
	ProviderID      int64  `json:"provider_id"`
	ProviderName    string `json:"provider_name"`
	LogoPath        string `json:"logo_path"`
	DisplayPriority int    `json:"display_priority"`
}

// RegionProviders lists providers for a single region.
type RegionProviders struct {
	Link     string     `json:"link"`
	Flatrate []Provider `json:"flatrate"`
	Rent     []Provider `json:"rent"`
	Buy      []Provider `json:"buy"`
	Ads      []Provider `json:"ads"`
}

// WatchProviders maps region codes to their providers.
type WatchProviders struct {
	ID      int64                      `json:"id"`
	Results map[string]RegionProviders `json:"results"`
}

// Image is a backdrop, poster or logo entry.
type Image struct {
	AspectRatio float64 `json:"aspect_ratio"`
	Height      int     `json:"height"`
	Width       int     `json:"width"`
	Language    *string `json:"iso_639_1"`
	FilePath    string  `json:"file_path"`
	VoteAverage float64 `json:"vote_average"`
	VoteCount   int64   `json:"vote_count"`
}

// Images models the images response.
type Images struct {
	ID        int64   `json:"id"`
	Backdrops []Image `json:"backdrops"`
	Posters   []Image `json:"posters"`
	Logos     []Image `json:"logos"`
}

// DiscoverOptions are the discover filters the catalog uses.
type DiscoverOptions struct {
	SortBy           string
	OriginalLanguage string
	Genres           string
	Keywords         string
	Companies        string
}
