package lists

import (
	"context"
	"slices"

	"bingeboard/internal/media"
)

// ToggleInterested adds rec to the Interested list, creating the list when
// needed, or removes it when already present. added reports the new state.
func (s *Service) ToggleInterested(ctx context.Context, rec media.Recommendation) (added bool, lists []UserList, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lists, ok, err := s.loadSorted(ctx)
	if !ok || err != nil {
		return false, lists, err
	}

	li := -1
	for i, list := range lists {
		if list.IsInterested() {
			li = i
			break
		}
	}
	if li < 0 {
		lists = append(lists, UserList{
			ID:        s.newID(),
			Name:      InterestedListName,
			Items:     []ListItem{},
			CreatedAt: s.nowMillis(),
		})
		li = len(lists) - 1
	}

	target := &lists[li]
	if target.indexOf(rec.ID, rec.MediaType) >= 0 {
		target.Items = slices.DeleteFunc(target.Items, func(item ListItem) bool {
			return item.ID == rec.ID && item.MediaType == rec.MediaType
		})
	} else {
		rec = cloneRecommendation(rec)
		item := ListItem{Recommendation: rec, AddedAt: s.nowMillis()}
		if rec.MediaType == media.TV {
			item.WatchedEpisodes = &media.WatchedEpisodes{}
		}
		target.Items = append([]ListItem{item}, target.Items...)
		added = true
	}

	sortLists(lists)
	return added, lists, s.commit(ctx, "toggle_interested", lists)
}
