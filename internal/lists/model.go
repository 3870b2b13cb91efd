package lists

import (
	"errors"
	"strings"

	"bingeboard/internal/media"
)

// ErrListNotFound is returned by callers that require an existing list.
var ErrListNotFound = errors.New("list not found")

// ErrReservedList is returned when an edit targets the Interested list or
// would give another list its name.
var ErrReservedList = errors.New(`the "Interested" list is reserved for upcoming titles`)

const (
	// InterestedListName is the reserved list for upcoming titles.
	InterestedListName = "Interested"
	// DefaultListName replaces blank list names.
	DefaultListName = "Untitled List"
	// MigratedListName receives items from the legacy single-list storage.
	MigratedListName = "My Watchlist (Migrated)"

	// ListsKey holds the serialized collection.
	ListsKey = "bingeBoardUserLists_v2_multiList"
	// LegacyListKey held the pre-multi-list flat item array.
	LegacyListKey = "myListItems"
	// MigrationDoneKey records that Migrate has run.
	MigrationDoneKey = "bingeBoardMigration_v2_done_rating"
)

// UserList is a named collection of items. Timestamps are Unix milliseconds.
type UserList struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Items     []ListItem `json:"items"`
	CreatedAt int64      `json:"createdAt"`
	IsPinned  bool       `json:"isPinned"`
}

// IsInterested reports whether l is the reserved "Interested" list.
func (l UserList) IsInterested() bool {
	return l.Name == InterestedListName
}

func isReservedName(name string) bool {
	return strings.EqualFold(strings.TrimSpace(name), InterestedListName)
}

func (l UserList) indexOf(id media.ID, mediaType media.MediaType) int {
	for i, item := range l.Items {
		if item.ID == id && item.MediaType == mediaType {
			return i
		}
	}
	return -1
}

// Find returns the item with the given identity.
func (l UserList) Find(id media.ID, mediaType media.MediaType) (ListItem, bool) {
	if i := l.indexOf(id, mediaType); i >= 0 {
		return l.Items[i], true
	}
	return ListItem{}, false
}

// ListItem is a catalog item as stored in a list.
type ListItem struct {
	media.Recommendation
	AddedAt int64 `json:"addedAt"`
	// WatchedEpisodes is set for TV items only.
	WatchedEpisodes *media.WatchedEpisodes `json:"watched_episodes,omitempty"`
	// UserRating is nil when unrated.
	UserRating *float64 `json:"userRating"`
}

// RecentlyAddedItem is a ListItem annotated with its parent list.
type RecentlyAddedItem struct {
	ListItem
	ListID   string `json:"listId"`
	ListName string `json:"listName"`
}

// Presence reports where an item was found.
type Presence struct {
	InList     bool     `json:"inList"`
	ListName   string   `json:"listName,omitempty"`
	ListID     string   `json:"listId,omitempty"`
	UserRating *float64 `json:"userRating"`
}

// GenreOption is a filterable genre name.
type GenreOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RatingUpdate says whether and how AddItemToList should change the rating.
// The zero value leaves the rating untouched.
type RatingUpdate struct {
	set   bool
	value *float64
}

// Rate sets the rating to v.
func Rate(v float64) RatingUpdate {
	return RatingUpdate{set: true, value: &v}
}

// ClearRating marks the item unrated.
func ClearRating() RatingUpdate {
	return RatingUpdate{set: true}
}

// IsSet reports whether the update changes the rating.
func (r RatingUpdate) IsSet() bool { return r.set }

// Value returns the new rating, nil meaning unrated.
func (r RatingUpdate) Value() *float64 {
	if r.value == nil {
		return nil
	}
	v := *r.value
	return &v
}

// AddOptions carries the optional parts of AddItemToList.
type AddOptions struct {
	// Watched replaces TV watch progress when non-nil. Ignored for movies.
	Watched *media.WatchedEpisodes
	Rating  RatingUpdate
}
