package catalog

import (
	"context"
	"sync"

	"bingeboard/internal/media"
)

// GenreSource fetches the genre list for a media type.
type GenreSource interface {
	Genres(ctx context.Context, mediaType media.MediaType) ([]media.Genre, error)
}

// GenreCache holds the movie and TV genre lists. Each list is fetched at most
// once successfully; failed fetches are retried on the next call.
type GenreCache struct {
	source GenreSource

	mu     sync.Mutex
	genres map[media.MediaType][]media.Genre
	names  map[media.MediaType]map[int]string
}

// NewGenreCache constructs an empty cache. A nil source yields empty lists.
func NewGenreCache(source GenreSource) *GenreCache {
	return &GenreCache{
		source: source,
		genres: make(map[media.MediaType][]media.Genre),
		names:  make(map[media.MediaType]map[int]string),
	}
}

// Load returns the genres for mediaType, fetching them on first use.
func (c *GenreCache) Load(ctx context.Context, mediaType media.MediaType) ([]media.Genre, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if genres, ok := c.genres[mediaType]; ok {
		return genres, nil
	}
	if c.source == nil {
		return nil, nil
	}
	genres, err := c.source.Genres(ctx, mediaType)
	if err != nil {
		return nil, err
	}
	names := make(map[int]string, len(genres))
	for _, g := range genres {
		names[g.ID] = g.Name
	}
	c.genres[mediaType] = genres
	c.names[mediaType] = names
	return genres, nil
}

// Name returns the cached genre name for id.
func (c *GenreCache) Name(mediaType media.MediaType, id int) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	name, ok := c.names[mediaType][id]
	return name, ok
}

// Loaded reports whether mediaType's genres are cached.
func (c *GenreCache) Loaded(mediaType media.MediaType) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.genres[mediaType]
	return ok
}
