package lists_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"bingeboard/internal/lists"
	"bingeboard/internal/logging"
	"bingeboard/internal/media"
	"bingeboard/internal/store"
	"bingeboard/internal/testsupport"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type fixture struct {
	svc   *lists.Service
	store *store.Store
	clock *fakeClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := testsupport.MustOpenStore(t)
	clock := &fakeClock{now: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)}
	seq := 0
	svc := lists.NewStoreService(st, logging.NewNop(),
		lists.WithClock(clock.Now),
		lists.WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("list-%d", seq)
		}),
	)
	return &fixture{svc: svc, store: st, clock: clock}
}

func (f *fixture) create(t *testing.T, name string) lists.UserList {
	t.Helper()
	before, err := f.svc.GetLists(context.Background())
	if err != nil {
		t.Fatalf("GetLists: %v", err)
	}
	known := map[string]bool{}
	for _, l := range before {
		known[l.ID] = true
	}
	after, err := f.svc.CreateList(context.Background(), name)
	if err != nil {
		t.Fatalf("CreateList: %v", err)
	}
	f.clock.Advance(time.Second)
	for _, l := range after {
		if !known[l.ID] {
			return l
		}
	}
	t.Fatalf("created list not found in %+v", after)
	return lists.UserList{}
}

func (f *fixture) list(t *testing.T, id string) *lists.UserList {
	t.Helper()
	l, err := f.svc.GetListByID(context.Background(), id)
	if err != nil {
		t.Fatalf("GetListByID: %v", err)
	}
	if l == nil {
		t.Fatalf("list %s not found", id)
	}
	return l
}

func TestCreateListDefaultsBlankName(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, "   ")
	if created.Name != lists.DefaultListName {
		t.Fatalf("expected %q, got %q", lists.DefaultListName, created.Name)
	}
	trimmed := f.create(t, "  Sci-Fi  ")
	if trimmed.Name != "Sci-Fi" {
		t.Fatalf("expected trimmed name, got %q", trimmed.Name)
	}
	if trimmed.IsPinned || len(trimmed.Items) != 0 {
		t.Fatalf("unexpected new list state: %+v", trimmed)
	}
}

func TestExampleScenarioHorrorList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	horror := f.create(t, "Horror")

	rec := testsupport.Movie("27205", "Inception")
	if _, err := f.svc.AddItemToList(ctx, horror.ID, rec, lists.AddOptions{Rating: lists.Rate(4)}); err != nil {
		t.Fatalf("AddItemToList: %v", err)
	}

	got := f.list(t, horror.ID)
	if len(got.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(got.Items))
	}
	if got.Items[0].UserRating == nil || *got.Items[0].UserRating != 4 {
		t.Fatalf("expected rating 4, got %v", got.Items[0].UserRating)
	}
	if got.Items[0].WatchedEpisodes != nil {
		t.Fatalf("movies must not carry watch progress: %+v", got.Items[0].WatchedEpisodes)
	}
}

func TestAddItemUpsertsAndRefreshesAddedAtOnlyOnTouch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	l := f.create(t, "Mixed")
	show := testsupport.Series("1399", "Game of Thrones")

	if _, err := f.svc.AddItemToList(ctx, l.ID, show, lists.AddOptions{}); err != nil {
		t.Fatalf("add: %v", err)
	}
	first := f.list(t, l.ID).Items[0]
	if first.UserRating != nil {
		t.Fatalf("expected unrated default, got %v", *first.UserRating)
	}
	if first.WatchedEpisodes == nil || len(*first.WatchedEpisodes) != 0 {
		t.Fatalf("expected empty watch progress for tv, got %+v", first.WatchedEpisodes)
	}

	f.clock.Advance(time.Minute)
	show.Title = "Game of Thrones (Remastered)"
	if _, err := f.svc.AddItemToList(ctx, l.ID, show, lists.AddOptions{}); err != nil {
		t.Fatalf("re-add: %v", err)
	}
	merged := f.list(t, l.ID)
	if len(merged.Items) != 1 {
		t.Fatalf("expected upsert, got %d items", len(merged.Items))
	}
	if merged.Items[0].Title != show.Title {
		t.Fatalf("expected merged title, got %q", merged.Items[0].Title)
	}
	if merged.Items[0].AddedAt != first.AddedAt {
		t.Fatalf("addedAt must not change without rating/progress update")
	}

	f.clock.Advance(time.Minute)
	watched := media.WatchedEpisodes{1: media.AllEpisodes(), 2: media.EpisodeSet(1, 2)}
	if _, err := f.svc.AddItemToList(ctx, l.ID, show, lists.AddOptions{Watched: &watched}); err != nil {
		t.Fatalf("update progress: %v", err)
	}
	progressed := f.list(t, l.ID).Items[0]
	if progressed.AddedAt != f.clock.Now().UnixMilli() {
		t.Fatalf("expected addedAt refresh on progress update")
	}
	if progressed.WatchedEpisodes == nil || !(*progressed.WatchedEpisodes)[1].All {
		t.Fatalf("expected watch progress stored, got %+v", progressed.WatchedEpisodes)
	}

	f.clock.Advance(time.Minute)
	if _, err := f.svc.AddItemToList(ctx, l.ID, show, lists.AddOptions{Rating: lists.Rate(3.5)}); err != nil {
		t.Fatalf("rate: %v", err)
	}
	rated := f.list(t, l.ID).Items[0]
	if rated.UserRating == nil || *rated.UserRating != 3.5 || rated.AddedAt != f.clock.Now().UnixMilli() {
		t.Fatalf("expected rating and refreshed addedAt, got %+v", rated)
	}
	if rated.WatchedEpisodes == nil || len(*rated.WatchedEpisodes) != 2 {
		t.Fatalf("rating update must keep watch progress, got %+v", rated.WatchedEpisodes)
	}

	if _, err := f.svc.AddItemToList(ctx, l.ID, show, lists.AddOptions{Rating: lists.ClearRating()}); err != nil {
		t.Fatalf("clear rating: %v", err)
	}
	if cleared := f.list(t, l.ID).Items[0]; cleared.UserRating != nil {
		t.Fatalf("expected explicit null rating, got %v", *cleared.UserRating)
	}
}

func TestAddItemSameIDDifferentMediaTypeIsDistinct(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	l := f.create(t, "Both")
	if _, err := f.svc.AddItemToList(ctx, l.ID, testsupport.Movie("100", "Movie 100"), lists.AddOptions{}); err != nil {
		t.Fatalf("add movie: %v", err)
	}
	if _, err := f.svc.AddItemToList(ctx, l.ID, testsupport.Series("100", "Show 100"), lists.AddOptions{}); err != nil {
		t.Fatalf("add tv: %v", err)
	}
	got := f.list(t, l.ID)
	if len(got.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(got.Items))
	}
	if got.Items[0].MediaType != media.TV {
		t.Fatalf("expected newest item first, got %+v", got.Items[0])
	}
	seen := map[media.Key]bool{}
	for _, item := range got.Items {
		if seen[item.Key()] {
			t.Fatalf("duplicate key %+v", item.Key())
		}
		seen[item.Key()] = true
	}
}

func TestAddItemUnknownListIsNoop(t *testing.T) {
	f := newFixture(t)
	l := f.create(t, "Only")
	result, err := f.svc.AddItemToList(context.Background(), "missing", testsupport.Movie("1", "One"), lists.AddOptions{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(result) != 1 || len(result[0].Items) != 0 {
		t.Fatalf("expected unchanged collection, got %+v", result)
	}
	if len(f.list(t, l.ID).Items) != 0 {
		t.Fatal("expected no items added")
	}
}

func TestRemoveRenameDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	l := f.create(t, "Temp")
	if _, err := f.svc.AddItemToList(ctx, l.ID, testsupport.Movie("1", "One"), lists.AddOptions{}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := f.svc.RemoveItemFromList(ctx, l.ID, "1", media.TV); err != nil {
		t.Fatalf("remove wrong type: %v", err)
	}
	if len(f.list(t, l.ID).Items) != 1 {
		t.Fatal("removal must match media type")
	}
	if _, err := f.svc.RemoveItemFromList(ctx, l.ID, "1", media.Movie); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(f.list(t, l.ID).Items) != 0 {
		t.Fatal("expected item removed")
	}

	if _, err := f.svc.RenameList(ctx, l.ID, " "); err != nil {
		t.Fatalf("rename: %v", err)
	}
	if got := f.list(t, l.ID).Name; got != lists.DefaultListName {
		t.Fatalf("expected default name, got %q", got)
	}

	remaining, err := f.svc.DeleteList(ctx, l.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("expected no lists, got %+v", remaining)
	}
	if got, _ := f.svc.GetListByID(ctx, l.ID); got != nil {
		t.Fatal("expected deleted list to be gone")
	}
}

func TestGetListByIDBlankReturnsNil(t *testing.T) {
	f := newFixture(t)
	got, err := f.svc.GetListByID(context.Background(), " ")
	if err != nil || got != nil {
		t.Fatalf("expected nil, nil; got %+v, %v", got, err)
	}
}

func names(ls []lists.UserList) string {
	out := make([]string, len(ls))
	for i, l := range ls {
		out[i] = l.Name
	}
	return strings.Join(out, ",")
}

func TestSortOrderAndTogglePinTwice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	if _, _, err := f.svc.ToggleInterested(ctx, testsupport.Movie("9", "Upcoming")); err != nil {
		t.Fatalf("ToggleInterested: %v", err)
	}
	f.clock.Advance(time.Second)
	a := f.create(t, "A")
	f.create(t, "B")
	f.create(t, "C")

	got, err := f.svc.GetLists(ctx)
	if err != nil {
		t.Fatalf("GetLists: %v", err)
	}
	if names(got) != "C,B,A,Interested" {
		t.Fatalf("unexpected order %s", names(got))
	}

	pinned, err := f.svc.TogglePinList(ctx, a.ID)
	if err != nil {
		t.Fatalf("pin: %v", err)
	}
	if names(pinned) != "A,C,B,Interested" {
		t.Fatalf("unexpected pinned order %s", names(pinned))
	}

	unpinned, err := f.svc.TogglePinList(ctx, a.ID)
	if err != nil {
		t.Fatalf("unpin: %v", err)
	}
	if names(unpinned) != "C,B,A,Interested" {
		t.Fatalf("expected original order restored, got %s", names(unpinned))
	}
	for _, l := range unpinned {
		if l.ID == a.ID && l.IsPinned {
			t.Fatal("expected pin state restored")
		}
	}
}

func TestIsItemInAnyListSkipsInterested(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rec := testsupport.Movie("42", "Answer")
	if _, _, err := f.svc.ToggleInterested(ctx, rec); err != nil {
		t.Fatalf("ToggleInterested: %v", err)
	}

	presence, err := f.svc.IsItemInAnyList(ctx, rec.ID, rec.MediaType)
	if err != nil {
		t.Fatalf("IsItemInAnyList: %v", err)
	}
	if presence.InList {
		t.Fatalf("Interested membership must not count: %+v", presence)
	}
	inInterested, err := f.svc.IsItemInInterestedList(ctx, rec.ID, rec.MediaType)
	if err != nil || !inInterested {
		t.Fatalf("expected Interested membership, got %v %v", inInterested, err)
	}

	l := f.create(t, "Favourites")
	if _, err := f.svc.AddItemToList(ctx, l.ID, rec, lists.AddOptions{Rating: lists.Rate(5)}); err != nil {
		t.Fatalf("add: %v", err)
	}
	presence, err = f.svc.IsItemInAnyList(ctx, rec.ID, rec.MediaType)
	if err != nil {
		t.Fatalf("IsItemInAnyList: %v", err)
	}
	if !presence.InList || presence.ListID != l.ID || presence.ListName != "Favourites" || presence.UserRating == nil || *presence.UserRating != 5 {
		t.Fatalf("unexpected presence %+v", presence)
	}

	inList, err := f.svc.IsItemInSpecificList(ctx, l.ID, rec.ID, rec.MediaType)
	if err != nil || !inList {
		t.Fatalf("expected specific membership, got %v %v", inList, err)
	}
	rating, err := f.svc.GetUserRatingForListItem(ctx, l.ID, rec.ID, rec.MediaType)
	if err != nil || rating == nil || *rating != 5 {
		t.Fatalf("unexpected rating %v %v", rating, err)
	}
}

func TestToggleInterestedAddsThenRemoves(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rec := testsupport.Movie("5", "Soon")
	added, result, err := f.svc.ToggleInterested(ctx, rec)
	if err != nil || !added {
		t.Fatalf("expected add, got %v %v", added, err)
	}
	if len(result) != 1 || !result[0].IsInterested() || len(result[0].Items) != 1 {
		t.Fatalf("unexpected collection %+v", result)
	}
	added, result, err = f.svc.ToggleInterested(ctx, rec)
	if err != nil || added {
		t.Fatalf("expected removal, got %v %v", added, err)
	}
	if len(result[0].Items) != 0 {
		t.Fatalf("expected empty Interested list, got %+v", result[0].Items)
	}
}

func TestWatchedTVDataLookup(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	l := f.create(t, "Shows")
	show := testsupport.Series("66732", "Stranger Things")
	watched := media.WatchedEpisodes{3: media.EpisodeSet(2, 1)}
	if _, err := f.svc.AddItemToList(ctx, l.ID, show, lists.AddOptions{Watched: &watched}); err != nil {
		t.Fatalf("add: %v", err)
	}
	got, err := f.svc.GetWatchedTVDataForList(ctx, l.ID, show.ID)
	if err != nil {
		t.Fatalf("GetWatchedTVDataForList: %v", err)
	}
	if got.Summary() != "S3:1,2" {
		t.Fatalf("unexpected progress %q", got.Summary())
	}
	missing, err := f.svc.GetWatchedTVDataForList(ctx, l.ID, "nope")
	if err != nil || missing != nil {
		t.Fatalf("expected nil for missing item, got %v %v", missing, err)
	}
}

func TestGetListedItemsAndGenres(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.create(t, "A")
	b := f.create(t, "B")

	first := testsupport.Movie("1", "First")
	first.Genre = "Thriller"
	if _, err := f.svc.AddItemToList(ctx, a.ID, first, lists.AddOptions{}); err != nil {
		t.Fatalf("add: %v", err)
	}
	f.clock.Advance(time.Minute)
	second := testsupport.Series("2", "Second")
	if _, err := f.svc.AddItemToList(ctx, b.ID, second, lists.AddOptions{}); err != nil {
		t.Fatalf("add: %v", err)
	}
	f.clock.Advance(time.Minute)
	unknown := testsupport.Movie("3", "Third")
	unknown.Genre = media.UnknownGenre
	if _, err := f.svc.AddItemToList(ctx, a.ID, unknown, lists.AddOptions{}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, _, err := f.svc.ToggleInterested(ctx, testsupport.Movie("4", "Hidden")); err != nil {
		t.Fatalf("interested: %v", err)
	}

	items, err := f.svc.GetListedItems(ctx)
	if err != nil {
		t.Fatalf("GetListedItems: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 listed items, got %d", len(items))
	}
	if items[0].ID != "3" || items[0].ListID != a.ID || items[1].ID != "2" || items[1].ListName != "B" {
		t.Fatalf("unexpected order %+v", items)
	}

	genres, err := f.svc.GetAllGenresFromList(ctx)
	if err != nil {
		t.Fatalf("GetAllGenresFromList: %v", err)
	}
	if len(genres) != 2 || genres[0].Name != "Drama" || genres[1].Name != "Thriller" {
		t.Fatalf("unexpected genres %+v", genres)
	}
}

func TestInterestedListRejectsEdits(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	upcoming := testsupport.Movie("77", "Upcoming")
	upcoming.ReleaseDate = "2099-01-01"
	if _, _, err := f.svc.ToggleInterested(ctx, upcoming); err != nil {
		t.Fatalf("ToggleInterested: %v", err)
	}
	all, err := f.svc.GetLists(ctx)
	if err != nil || len(all) != 1 || !all[0].IsInterested() {
		t.Fatalf("expected Interested list, got %+v %v", all, err)
	}
	id := all[0].ID

	tests := []struct {
		name string
		run  func() error
	}{
		{"rename", func() error { _, err := f.svc.RenameList(ctx, id, "Later"); return err }},
		{"pin", func() error { _, err := f.svc.TogglePinList(ctx, id); return err }},
		{"delete", func() error { _, err := f.svc.DeleteList(ctx, id); return err }},
		{"add item", func() error {
			_, err := f.svc.AddItemToList(ctx, id, testsupport.Movie("78", "Other"), lists.AddOptions{Rating: lists.Rate(3)})
			return err
		}},
		{"remove item", func() error { _, err := f.svc.RemoveItemFromList(ctx, id, "77", media.Movie); return err }},
		{"export", func() error { _, _, err := f.svc.ExportListToJSON(ctx, id); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.run(); !errors.Is(err, lists.ErrReservedList) {
				t.Fatalf("expected ErrReservedList, got %v", err)
			}
		})
	}

	got := f.list(t, id)
	if got.Name != lists.InterestedListName || got.IsPinned || len(got.Items) != 1 || got.Items[0].ID != "77" {
		t.Fatalf("Interested list changed: %+v", got)
	}
}

func TestReservedNameCannotBeCreatedOrTaken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, name := range []string{"Interested", "  interested "} {
		if _, err := f.svc.CreateList(ctx, name); !errors.Is(err, lists.ErrReservedList) {
			t.Fatalf("CreateList(%q): expected ErrReservedList, got %v", name, err)
		}
	}

	l := f.create(t, "Classics")
	old := testsupport.Movie("1", "Old Favourite")
	old.ReleaseDate = "1999-01-01"
	if _, err := f.svc.AddItemToList(ctx, l.ID, old, lists.AddOptions{Rating: lists.Rate(5)}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := f.svc.RenameList(ctx, l.ID, "Interested"); !errors.Is(err, lists.ErrReservedList) {
		t.Fatalf("expected ErrReservedList, got %v", err)
	}
	got := f.list(t, l.ID)
	if got.Name != "Classics" || len(got.Items) != 1 {
		t.Fatalf("rejected rename must leave the list intact: %+v", got)
	}
}

func TestAddItemSparseRecordKeepsCatalogFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	l := f.create(t, "Films")
	full := testsupport.Movie("27205", "Inception", 28, 878)
	full.Overview = "A thief who steals corporate secrets."
	if _, err := f.svc.AddItemToList(ctx, l.ID, full, lists.AddOptions{}); err != nil {
		t.Fatalf("add: %v", err)
	}

	sparse := media.Recommendation{ID: "27205", MediaType: media.Movie}
	if _, err := f.svc.AddItemToList(ctx, l.ID, sparse, lists.AddOptions{Rating: lists.Rate(4)}); err != nil {
		t.Fatalf("rate: %v", err)
	}
	got := f.list(t, l.ID).Items
	if len(got) != 1 {
		t.Fatalf("expected one item, got %+v", got)
	}
	item := got[0]
	if item.Title != full.Title || item.PosterURL != full.PosterURL || item.Overview != full.Overview ||
		item.OriginalLanguage != "en" || item.ReleaseDate != full.ReleaseDate || len(item.GenreIDs) != 2 {
		t.Fatalf("catalog fields lost on sparse upsert: %+v", item.Recommendation)
	}
	if item.UserRating == nil || *item.UserRating != 4 {
		t.Fatalf("expected rating 4, got %v", item.UserRating)
	}

	retitled := media.Recommendation{ID: "27205", MediaType: media.Movie, Title: "Inception (2010)"}
	if _, err := f.svc.AddItemToList(ctx, l.ID, retitled, lists.AddOptions{}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if item := f.list(t, l.ID).Items[0]; item.Title != "Inception (2010)" || item.PosterURL != full.PosterURL {
		t.Fatalf("expected title merged in, got %+v", item.Recommendation)
	}
}
