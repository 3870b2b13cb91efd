package lists

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"bingeboard/internal/logging"
	"bingeboard/internal/media"
	"bingeboard/internal/store"
)

// Repository loads and saves the whole list collection.
type Repository interface {
	Load(ctx context.Context) ([]UserList, error)
	Save(ctx context.Context, lists []UserList) error
}

// BlobStore is a string key/value store. Get returns store.ErrNotFound for
// missing keys.
type BlobStore interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// BlobRepository stores the collection as one JSON document under ListsKey.
type BlobRepository struct {
	blobs  BlobStore
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

// NewBlobRepository wraps blobs. now and newID default to time.Now and NewListID.
func NewBlobRepository(blobs BlobStore, logger *slog.Logger, now func() time.Time, newID func() string) *BlobRepository {
	if now == nil {
		now = time.Now
	}
	if newID == nil {
		newID = NewListID
	}
	return &BlobRepository{
		blobs:  blobs,
		logger: logging.NewComponentLogger(logger, "lists"),
		now:    now,
		newID:  newID,
	}
}

// NewListID returns a fresh list identifier.
func NewListID() string {
	return "list-" + uuid.NewString()
}

type storedList struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Items     json.RawMessage `json:"items"`
	CreatedAt int64           `json:"createdAt"`
	IsPinned  json.RawMessage `json:"isPinned"`
}

// Load returns the normalized and pruned collection. Storage read failures are
// returned; unparseable content is logged and yields an empty collection.
func (r *BlobRepository) Load(ctx context.Context) ([]UserList, error) {
	raw, err := r.blobs.Get(ctx, ListsKey)
	if errors.Is(err, store.ErrNotFound) {
		return []UserList{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read lists: %w", err)
	}
	lists, err := r.decode(raw)
	if err != nil {
		logging.ErrorWithContext(r.logger, "stored lists unreadable; treating as empty", "lists_parse_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "the next save replaces the unreadable document"),
		)
		return []UserList{}, nil
	}
	return pruneInterested(lists, r.now()), nil
}

// Save replaces the stored collection.
func (r *BlobRepository) Save(ctx context.Context, lists []UserList) error {
	if lists == nil {
		lists = []UserList{}
	}
	data, err := json.Marshal(lists)
	if err != nil {
		return fmt.Errorf("encode lists: %w", err)
	}
	if err := r.blobs.Put(ctx, ListsKey, string(data)); err != nil {
		return fmt.Errorf("write lists: %w", err)
	}
	return nil
}

func (r *BlobRepository) decode(raw string) ([]UserList, error) {
	if strings.TrimSpace(raw) == "" {
		return []UserList{}, nil
	}
	var stored []storedList
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return nil, err
	}
	nowMillis := r.now().UnixMilli()
	out := make([]UserList, 0, len(stored))
	for _, s := range stored {
		list := UserList{
			ID:        s.ID,
			Name:      s.Name,
			CreatedAt: s.CreatedAt,
			Items:     r.decodeItems(s.Items, nowMillis),
		}
		if list.ID == "" {
			list.ID = r.newID()
		}
		if list.Name == "" {
			list.Name = DefaultListName
		}
		if list.CreatedAt == 0 {
			list.CreatedAt = nowMillis
		}
		var pinned bool
		if len(s.IsPinned) > 0 && json.Unmarshal(s.IsPinned, &pinned) == nil {
			list.IsPinned = pinned
		}
		out = append(out, list)
	}
	return out, nil
}

// decodeItems tolerates a missing or malformed items field and drops entries
// that cannot be decoded or carry no id.
func (r *BlobRepository) decodeItems(raw json.RawMessage, nowMillis int64) []ListItem {
	var entries []json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &entries) != nil {
		return []ListItem{}
	}
	items := make([]ListItem, 0, len(entries))
	for _, entry := range entries {
		var item ListItem
		if err := json.Unmarshal(entry, &item); err != nil {
			r.logger.Debug("dropping unreadable list item", logging.Error(err))
			continue
		}
		if item.ID == "" {
			continue
		}
		if item.AddedAt == 0 {
			item.AddedAt = nowMillis
		}
		if item.GenreIDs == nil {
			item.GenreIDs = []int{}
		}
		items = append(items, item)
	}
	return items
}

// pruneInterested drops Interested items whose release date is before today.
// Items without a date are kept; unparseable dates are dropped.
func pruneInterested(lists []UserList, now time.Time) []UserList {
	today := startOfDay(now)
	for i := range lists {
		if !lists[i].IsInterested() {
			continue
		}
		kept := lists[i].Items[:0]
		for _, item := range lists[i].Items {
			if item.ReleaseDate == "" {
				kept = append(kept, item)
				continue
			}
			release, ok := parseReleaseDate(item.ReleaseDate, now.Location())
			if ok && !release.Before(today) {
				kept = append(kept, item)
			}
		}
		lists[i].Items = kept
	}
	return lists
}

var releaseDateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05", "2006-01", "2006"}

func parseReleaseDate(value string, loc *time.Location) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range releaseDateLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, 1).Add(-time.Millisecond)
}

func cloneRecommendation(rec media.Recommendation) media.Recommendation {
	rec.GenreIDs = append([]int{}, rec.GenreIDs...)
	return rec
}

// mergeRecommendation copies the non-zero catalog fields of src onto dst.
// Identity fields are left alone.
func mergeRecommendation(dst *media.Recommendation, src media.Recommendation) {
	for _, f := range []struct {
		dst *string
		src string
	}{
		{&dst.Title, src.Title},
		{&dst.PosterURL, src.PosterURL},
		{&dst.BackdropURL, src.BackdropURL},
		{&dst.Overview, src.Overview},
		{&dst.Genre, src.Genre},
		{&dst.OriginalLanguage, src.OriginalLanguage},
		{&dst.ReleaseDate, src.ReleaseDate},
		{&dst.FirstAirDate, src.FirstAirDate},
	} {
		if f.src != "" {
			*f.dst = f.src
		}
	}
	if len(src.GenreIDs) > 0 {
		dst.GenreIDs = append([]int{}, src.GenreIDs...)
	}
	if src.Popularity != 0 {
		dst.Popularity = src.Popularity
	}
	if src.VoteAverage != 0 {
		dst.VoteAverage = src.VoteAverage
	}
}

// dedupeItems keeps the first item for each (id, media_type) pair.
func dedupeItems(items []ListItem) []ListItem {
	seen := make(map[media.Key]struct{}, len(items))
	out := make([]ListItem, 0, len(items))
	for _, item := range items {
		key := item.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}
