package lists_test

import (
	"context"
	"testing"
	"time"

	"bingeboard/internal/lists"
	"bingeboard/internal/logging"
	"bingeboard/internal/testsupport"
)

func TestLoadNormalizesLegacyFields(t *testing.T) {
	st := testsupport.MustOpenStore(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	raw := `[
		{"name":"","items":[
			{"id":27205,"title":"Inception","posterUrl":"p","genre":"Action","genre_ids":[28],"media_type":"movie"},
			{"title":"No id","posterUrl":"p","genre":"Action","genre_ids":[],"media_type":"movie","addedAt":5}
		]},
		{"id":"list-x","name":"Broken items","items":"oops","isPinned":"yes","createdAt":7}
	]`
	if err := st.Put(ctx, lists.ListsKey, raw); err != nil {
		t.Fatalf("seed: %v", err)
	}

	repo := lists.NewBlobRepository(st, logging.NewNop(), func() time.Time { return now }, func() string { return "list-generated" })
	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 lists, got %d", len(got))
	}
	first := got[0]
	if first.ID != "list-generated" || first.Name != lists.DefaultListName || first.CreatedAt != now.UnixMilli() || first.IsPinned {
		t.Fatalf("unexpected normalized list %+v", first)
	}
	if len(first.Items) != 1 {
		t.Fatalf("expected item without id dropped, got %+v", first.Items)
	}
	item := first.Items[0]
	if item.ID != "27205" || item.AddedAt != now.UnixMilli() || item.UserRating != nil {
		t.Fatalf("unexpected normalized item %+v", item)
	}
	second := got[1]
	if len(second.Items) != 0 || second.IsPinned || second.CreatedAt != 7 {
		t.Fatalf("unexpected second list %+v", second)
	}
}

func TestLoadTreatsCorruptDocumentAsEmpty(t *testing.T) {
	st := testsupport.MustOpenStore(t)
	ctx := context.Background()
	if err := st.Put(ctx, lists.ListsKey, "{not json"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	svc := lists.NewStoreService(st, logging.NewNop())
	got, err := svc.GetLists(ctx)
	if err != nil {
		t.Fatalf("GetLists: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty collection, got %+v", got)
	}
	raw, err := st.Get(ctx, lists.ListsKey)
	if err != nil || raw != "[]" {
		t.Fatalf("expected cleaned document persisted, got %q %v", raw, err)
	}
}

func TestInterestedPruning(t *testing.T) {
	st := testsupport.MustOpenStore(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 18, 30, 0, 0, time.UTC)
	raw := `[{"id":"i","name":"Interested","createdAt":1,"isPinned":false,"items":[
		{"id":"past","title":"Past","posterUrl":"p","genre":"g","genre_ids":[],"media_type":"movie","addedAt":1,"userRating":null,"release_date":"2026-03-09"},
		{"id":"today","title":"Today","posterUrl":"p","genre":"g","genre_ids":[],"media_type":"movie","addedAt":1,"userRating":null,"release_date":"2026-03-10"},
		{"id":"future","title":"Future","posterUrl":"p","genre":"g","genre_ids":[],"media_type":"movie","addedAt":1,"userRating":null,"release_date":"2027-01-01"},
		{"id":"undated","title":"Undated","posterUrl":"p","genre":"g","genre_ids":[],"media_type":"movie","addedAt":1,"userRating":null},
		{"id":"garbage","title":"Garbage","posterUrl":"p","genre":"g","genre_ids":[],"media_type":"movie","addedAt":1,"userRating":null,"release_date":"soon"}
	]},{"id":"o","name":"Other","createdAt":2,"items":[
		{"id":"old","title":"Old","posterUrl":"p","genre":"g","genre_ids":[],"media_type":"movie","addedAt":1,"release_date":"1999-01-01"}
	]}]`
	if err := st.Put(ctx, lists.ListsKey, raw); err != nil {
		t.Fatalf("seed: %v", err)
	}
	svc := lists.NewStoreService(st, logging.NewNop(), lists.WithClock(func() time.Time { return now }))
	got, err := svc.GetLists(ctx)
	if err != nil {
		t.Fatalf("GetLists: %v", err)
	}
	if len(got) != 2 || got[1].Name != lists.InterestedListName {
		t.Fatalf("unexpected lists %+v", got)
	}
	var ids []string
	for _, item := range got[1].Items {
		ids = append(ids, item.ID.String())
	}
	if len(ids) != 3 || ids[0] != "today" || ids[1] != "future" || ids[2] != "undated" {
		t.Fatalf("unexpected surviving Interested items %v", ids)
	}
	if len(got[0].Items) != 1 {
		t.Fatal("pruning must only affect the Interested list")
	}
}
