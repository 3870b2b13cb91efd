package api

import (
	"bingeboard/internal/lists"
	"bingeboard/internal/media"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields,omitempty"`
}

// ListsResponse wraps the full sorted collection.
type ListsResponse struct {
	Lists []lists.UserList `json:"lists"`
}

// ListResponse wraps a single list, optionally with filtered items.
type ListResponse struct {
	List    lists.UserList   `json:"list"`
	Items   []lists.ListItem `json:"items,omitempty"`
	Ratings []float64        `json:"availableRatings,omitempty"`
}

// CategoryGroup is one bucket of a list's items.
type CategoryGroup struct {
	Key   lists.Category   `json:"key"`
	Title string           `json:"title"`
	Items []lists.ListItem `json:"items"`
}

// RecommendationsResponse wraps catalog results.
type RecommendationsResponse struct {
	Results []media.Recommendation `json:"results"`
}

// InterestedResponse reports the Interested toggle outcome.
type InterestedResponse struct {
	Added bool             `json:"added"`
	Lists []lists.UserList `json:"lists"`
}

// TrailerResponse carries a YouTube video id when one was found.
type TrailerResponse struct {
	Found   bool   `json:"found"`
	VideoID string `json:"videoId,omitempty"`
	URL     string `json:"url,omitempty"`
}

// HealthResponse is the /healthz body.
type HealthResponse struct {
	Status string `json:"status"`
	Store  string `json:"store"`
}

type createListRequest struct {
	Name string `json:"name" validate:"max=200"`
}

type renameListRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

type importListRequest struct {
	Payload string `json:"payload" validate:"required"`
	Name    string `json:"name,omitempty" validate:"max=200"`
}

// putItemRequest upserts an item. Rating and ClearRating are mutually
// exclusive; omitting both leaves the stored rating untouched.
type putItemRequest struct {
	Item            *media.Recommendation  `json:"item" validate:"required"`
	Rating          *float64               `json:"rating,omitempty" validate:"omitempty,gte=0,lte=5"`
	ClearRating     bool                   `json:"clearRating,omitempty" validate:"excluded_with=Rating"`
	WatchedEpisodes *media.WatchedEpisodes `json:"watchedEpisodes,omitempty"`
}

type interestedRequest struct {
	Item *media.Recommendation `json:"item" validate:"required"`
}

type commandRequest struct {
	Command string `json:"command" validate:"required,max=1000"`
}

type curateRequest struct {
	Category string `json:"category" validate:"required,max=100"`
}

type profileRequest struct {
	Bio            *string `json:"bio,omitempty" validate:"omitempty,max=2000"`
	CoverPhotoURL  *string `json:"coverPhotoUrl,omitempty" validate:"omitempty,max=2048"`
	PresetCoverKey *string `json:"presetCoverKey,omitempty"`
	ClearCover     bool    `json:"clearCover,omitempty"`
}
