package lists

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"bingeboard/internal/logging"
	"bingeboard/internal/media"
	"bingeboard/internal/metrics"
)

// Service implements the list operations on top of a Repository. All methods
// are safe for concurrent use; each serializes on an internal mutex and
// rewrites the full collection.
type Service struct {
	mu     sync.Mutex
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides list id generation.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// NewService constructs a Service over repo.
func NewService(repo Repository, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		logger: logging.NewComponentLogger(logger, "lists"),
		now:    time.Now,
		newID:  NewListID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewStoreService wires a Service to a BlobRepository over blobs, sharing the
// clock and id generator between both.
func NewStoreService(blobs BlobStore, logger *slog.Logger, opts ...Option) *Service {
	s := NewService(nil, logger, opts...)
	s.repo = NewBlobRepository(blobs, logger, s.now, s.newID)
	return s
}

func (s *Service) nowMillis() int64 {
	return s.now().UnixMilli()
}

// load reads the collection. ok is false when storage could not be read, in
// which case callers must not write back.
func (s *Service) load(ctx context.Context) ([]UserList, bool) {
	lists, err := s.repo.Load(ctx)
	if err != nil {
		logging.ErrorWithContext(s.logger, "load lists failed", "lists_load_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check the data directory and database permissions"),
		)
		return []UserList{}, false
	}
	if lists == nil {
		lists = []UserList{}
	}
	return lists, true
}

func (s *Service) save(ctx context.Context, lists []UserList) error {
	if err := s.repo.Save(ctx, lists); err != nil {
		logging.ErrorWithContext(s.logger, "save lists failed", "lists_save_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check the data directory and database permissions"),
		)
		return err
	}
	return nil
}

// commit persists a mutation and counts it.
func (s *Service) commit(ctx context.Context, op string, lists []UserList) error {
	if err := s.save(ctx, lists); err != nil {
		return err
	}
	metrics.ListMutations.WithLabelValues(op).Inc()
	return nil
}

// loadSorted is the shared read path: load, persist the cleaned result, sort.
func (s *Service) loadSorted(ctx context.Context) ([]UserList, bool, error) {
	lists, ok := s.load(ctx)
	if !ok {
		return lists, false, nil
	}
	if err := s.save(ctx, lists); err != nil {
		return lists, true, err
	}
	sortLists(lists)
	return lists, true, nil
}

// sortLists orders "Interested" last, pinned before unpinned, then newest first.
func sortLists(lists []UserList) {
	slices.SortStableFunc(lists, func(a, b UserList) int {
		switch {
		case a.IsInterested() != b.IsInterested():
			if a.IsInterested() {
				return 1
			}
			return -1
		case a.IsPinned != b.IsPinned:
			if a.IsPinned {
				return -1
			}
			return 1
		case a.CreatedAt > b.CreatedAt:
			return -1
		case a.CreatedAt < b.CreatedAt:
			return 1
		default:
			return 0
		}
	})
}

func normalizeName(name string) string {
	if trimmed := strings.TrimSpace(name); trimmed != "" {
		return trimmed
	}
	return DefaultListName
}

func indexOfList(lists []UserList, id string) int {
	for i, l := range lists {
		if l.ID == id {
			return i
		}
	}
	return -1
}

// GetLists returns the sorted collection after persisting normalization and pruning.
func (s *Service) GetLists(ctx context.Context) ([]UserList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lists, _, err := s.loadSorted(ctx)
	return lists, err
}

// CreateList adds an empty list and returns the re-sorted collection. The
// Interested name is refused with ErrReservedList.
func (s *Service) CreateList(ctx context.Context, name string) ([]UserList, error) {
	if isReservedName(name) {
		return nil, ErrReservedList
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	lists, ok, err := s.loadSorted(ctx)
	if !ok || err != nil {
		return lists, err
	}
	created := UserList{
		ID:        s.newID(),
		Name:      normalizeName(name),
		Items:     []ListItem{},
		CreatedAt: s.nowMillis(),
	}
	lists = append([]UserList{created}, lists...)
	sortLists(lists)
	if err := s.commit(ctx, "create", lists); err != nil {
		return lists, err
	}
	s.logger.Info("list created", logging.ListID(created.ID), logging.String("list_name", created.Name))
	return lists, nil
}

// GetListByID returns the list or nil. A blank id is logged and yields nil.
func (s *Service) GetListByID(ctx context.Context, listID string) (*UserList, error) {
	if strings.TrimSpace(listID) == "" {
		logging.WarnWithContext(s.logger, "list lookup with empty id", "list_invalid_id",
			logging.String(logging.FieldImpact, "no list returned"),
		)
		return nil, nil
	}
	lists, err := s.GetLists(ctx)
	if err != nil {
		return nil, err
	}
	if i := indexOfList(lists, listID); i >= 0 {
		list := lists[i]
		return &list, nil
	}
	return nil, nil
}

// AddItemToList upserts rec by (id, media_type). An existing entry gets the
// new catalog fields merged in; its rating changes only when opts.Rating is
// set, its TV progress only when opts.Watched is non-nil, and either change
// refreshes addedAt. A new entry is prepended. An unknown list id is logged and
// the unmodified collection returned; the Interested list yields ErrReservedList.
func (s *Service) AddItemToList(ctx context.Context, listID string, rec media.Recommendation, opts AddOptions) ([]UserList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lists, ok, err := s.loadSorted(ctx)
	if !ok || err != nil {
		return lists, err
	}
	li := indexOfList(lists, listID)
	if li < 0 {
		logging.ErrorWithContext(s.logger, "list not found when adding item", "list_not_found",
			logging.ListID(listID),
			logging.ItemID(rec.ID.String()),
			logging.String(logging.FieldErrorHint, "refresh lists; the target may have been deleted"),
		)
		return lists, nil
	}
	if lists[li].IsInterested() {
		return lists, ErrReservedList
	}

	rec = cloneRecommendation(rec)
	if rec.GenreIDs == nil {
		rec.GenreIDs = []int{}
	}
	target := &lists[li]
	isTV := rec.MediaType == media.TV
	watchedSupplied := isTV && opts.Watched != nil
	now := s.nowMillis()

	if ii := target.indexOf(rec.ID, rec.MediaType); ii >= 0 {
		item := &target.Items[ii]
		mergeRecommendation(&item.Recommendation, rec)
		if opts.Rating.IsSet() {
			item.UserRating = opts.Rating.Value()
		}
		if watchedSupplied {
			watched := opts.Watched.Clone()
			item.WatchedEpisodes = &watched
		}
		if opts.Rating.IsSet() || watchedSupplied {
			item.AddedAt = now
		}
	} else {
		item := ListItem{Recommendation: rec, AddedAt: now}
		if opts.Rating.IsSet() {
			item.UserRating = opts.Rating.Value()
		}
		if isTV {
			watched := media.WatchedEpisodes{}
			if opts.Watched != nil {
				watched = opts.Watched.Clone()
			}
			item.WatchedEpisodes = &watched
		}
		target.Items = append([]ListItem{item}, target.Items...)
	}

	if err := s.commit(ctx, "add_item", lists); err != nil {
		return lists, err
	}
	return lists, nil
}

// RemoveItemFromList drops the entry with the given identity.
func (s *Service) RemoveItemFromList(ctx context.Context, listID string, itemID media.ID, mediaType media.MediaType) ([]UserList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lists, ok, err := s.loadSorted(ctx)
	if !ok || err != nil {
		return lists, err
	}
	li := indexOfList(lists, listID)
	if li < 0 {
		return lists, nil
	}
	if lists[li].IsInterested() {
		return lists, ErrReservedList
	}
	lists[li].Items = slices.DeleteFunc(lists[li].Items, func(item ListItem) bool {
		return item.ID == itemID && item.MediaType == mediaType
	})
	return lists, s.commit(ctx, "remove_item", lists)
}

// RenameList sets a new (trimmed, defaulted) name. Neither the old nor the
// new name may be Interested.
func (s *Service) RenameList(ctx context.Context, listID, name string) ([]UserList, error) {
	if isReservedName(name) {
		return nil, ErrReservedList
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	lists, ok, err := s.loadSorted(ctx)
	if !ok || err != nil {
		return lists, err
	}
	if li := indexOfList(lists, listID); li >= 0 {
		if lists[li].IsInterested() {
			return lists, ErrReservedList
		}
		lists[li].Name = normalizeName(name)
		if err := s.commit(ctx, "rename", lists); err != nil {
			return lists, err
		}
	}
	return lists, nil
}

// DeleteList removes the list outright. Unknown ids are a no-op.
func (s *Service) DeleteList(ctx context.Context, listID string) ([]UserList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lists, ok, err := s.loadSorted(ctx)
	if !ok || err != nil {
		return lists, err
	}
	li := indexOfList(lists, listID)
	if li < 0 {
		return lists, nil
	}
	if lists[li].IsInterested() {
		return lists, ErrReservedList
	}
	lists = slices.Delete(lists, li, li+1)
	return lists, s.commit(ctx, "delete", lists)
}

// TogglePinList flips the pin flag and returns the re-sorted collection.
func (s *Service) TogglePinList(ctx context.Context, listID string) ([]UserList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lists, ok, err := s.loadSorted(ctx)
	if !ok || err != nil {
		return lists, err
	}
	li := indexOfList(lists, listID)
	if li < 0 {
		return lists, nil
	}
	if lists[li].IsInterested() {
		return lists, ErrReservedList
	}
	lists[li].IsPinned = !lists[li].IsPinned
	sortLists(lists)
	return lists, s.commit(ctx, "toggle_pin", lists)
}
