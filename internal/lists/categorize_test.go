package lists_test

import (
	"testing"
	"time"

	"bingeboard/internal/lists"
	"bingeboard/internal/media"
	"bingeboard/internal/testsupport"
)

func item(rec media.Recommendation, addedAt time.Time, rating *float64) lists.ListItem {
	return lists.ListItem{Recommendation: rec, AddedAt: addedAt.UnixMilli(), UserRating: rating}
}

func ptr(v float64) *float64 { return &v }

func TestCategorize(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	anime := testsupport.Movie("1", "Spirited Away", 16, 14)
	anime.OriginalLanguage = "ja"
	hindi := testsupport.Movie("2", "Lagaan", 18)
	hindi.OriginalLanguage = "hi"
	korean := testsupport.Movie("3", "Parasite", 53)
	korean.OriginalLanguage = "ko"
	animatedEnglish := testsupport.Movie("4", "Toy Story", 16)

	got := lists.Categorize([]lists.ListItem{
		item(testsupport.Series("10", "Dark"), base, nil),
		item(anime, base, nil),
		item(testsupport.Movie("5", "Heat"), base, nil),
		item(hindi, base, nil),
		item(korean, base, nil),
		item(animatedEnglish, base, nil),
	})
	want := map[lists.Category][]string{
		lists.CategorySeries:          {"10"},
		lists.CategoryAnimationMovies: {"1", "4"},
		lists.CategoryHollywoodMovies: {"5"},
		lists.CategoryBollywoodMovies: {"2"},
		lists.CategoryOtherMovies:     {"3"},
	}
	for category, ids := range want {
		bucket := got[category]
		if len(bucket) != len(ids) {
			t.Fatalf("%s: expected %v, got %+v", category, ids, bucket)
		}
		for i, id := range ids {
			if bucket[i].ID.String() != id {
				t.Fatalf("%s[%d]: expected %s, got %s", category, i, id, bucket[i].ID)
			}
		}
	}
}

func TestFilter(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2026, 2, d, 15, 0, 0, 0, time.UTC) }
	thriller := testsupport.Movie("1", "The Dark Knight")
	thriller.Genre = "Thriller"
	items := []lists.ListItem{
		item(thriller, day(1), ptr(4)),
		item(testsupport.Movie("2", "Dark City"), day(5), ptr(3.5)),
		item(testsupport.Series("3", "Dark"), day(10), nil),
		item(testsupport.Movie("4", "Heat"), day(12), ptr(4)),
	}

	ids := func(in []lists.ListItem) string {
		var out string
		for _, it := range in {
			out += it.ID.String()
		}
		return out
	}

	if got := ids(lists.Filter(items, lists.ItemFilter{Search: "DARK"})); got != "321" {
		t.Fatalf("search: got %s", got)
	}
	if got := ids(lists.Filter(items, lists.ItemFilter{Genre: "Thriller"})); got != "1" {
		t.Fatalf("genre: got %s", got)
	}
	if got := ids(lists.Filter(items, lists.ItemFilter{Rating: ptr(4.0)})); got != "41" {
		t.Fatalf("rating: got %s", got)
	}
	from := time.Date(2026, 2, 5, 23, 0, 0, 0, time.UTC)
	to := time.Date(2026, 2, 10, 1, 0, 0, 0, time.UTC)
	if got := ids(lists.Filter(items, lists.ItemFilter{From: from, To: to})); got != "32" {
		t.Fatalf("date range: got %s", got)
	}
	if got := ids(lists.Filter(items, lists.ItemFilter{To: to})); got != "321" {
		t.Fatalf("open start: got %s", got)
	}
	if got := lists.AvailableRatings(items); len(got) != 2 || got[0] != 3.5 || got[1] != 4 {
		t.Fatalf("ratings: got %v", got)
	}
}

func TestGroupByMonth(t *testing.T) {
	items := []lists.ListItem{
		item(testsupport.Movie("1", "A"), time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC), nil),
		item(testsupport.Movie("2", "B"), time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), nil),
		item(testsupport.Movie("3", "C"), time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC), nil),
	}
	groups := lists.GroupByMonth(items, time.UTC)
	if len(groups) != 2 || groups[0].Label != "March 2026" || groups[1].Label != "January 2026" {
		t.Fatalf("unexpected groups %+v", groups)
	}
	if len(groups[1].Items) != 2 {
		t.Fatalf("expected two January items, got %d", len(groups[1].Items))
	}
}

func TestEditableListsExcludesInterested(t *testing.T) {
	in := []lists.UserList{{Name: "A"}, {Name: lists.InterestedListName}, {Name: "B"}}
	out := lists.EditableLists(in)
	if len(out) != 2 || out[0].Name != "A" || out[1].Name != "B" {
		t.Fatalf("unexpected editable lists %+v", out)
	}
}
