package lists

import (
	"context"
	"slices"

	"bingeboard/internal/media"
)

// IsItemInAnyList returns the first non-Interested list containing the item.
func (s *Service) IsItemInAnyList(ctx context.Context, itemID media.ID, mediaType media.MediaType) (Presence, error) {
	lists, err := s.GetLists(ctx)
	if err != nil {
		return Presence{}, err
	}
	for _, list := range lists {
		if list.IsInterested() {
			continue
		}
		if item, ok := list.Find(itemID, mediaType); ok {
			return Presence{InList: true, ListName: list.Name, ListID: list.ID, UserRating: item.UserRating}, nil
		}
	}
	return Presence{}, nil
}

// IsItemInSpecificList reports membership in one list.
func (s *Service) IsItemInSpecificList(ctx context.Context, listID string, itemID media.ID, mediaType media.MediaType) (bool, error) {
	list, err := s.GetListByID(ctx, listID)
	if err != nil || list == nil {
		return false, err
	}
	_, ok := list.Find(itemID, mediaType)
	return ok, nil
}

// IsItemInInterestedList reports membership in the Interested list.
func (s *Service) IsItemInInterestedList(ctx context.Context, itemID media.ID, mediaType media.MediaType) (bool, error) {
	lists, err := s.GetLists(ctx)
	if err != nil {
		return false, err
	}
	for _, list := range lists {
		if list.IsInterested() {
			_, ok := list.Find(itemID, mediaType)
			return ok, nil
		}
	}
	return false, nil
}

// GetWatchedTVDataForList returns TV watch progress, or nil when the list,
// the item, or its progress is absent.
func (s *Service) GetWatchedTVDataForList(ctx context.Context, listID string, itemID media.ID) (media.WatchedEpisodes, error) {
	list, err := s.GetListByID(ctx, listID)
	if err != nil || list == nil {
		return nil, err
	}
	item, ok := list.Find(itemID, media.TV)
	if !ok || item.WatchedEpisodes == nil {
		return nil, nil
	}
	return item.WatchedEpisodes.Clone(), nil
}

// GetUserRatingForListItem returns the rating, nil when unrated or absent.
func (s *Service) GetUserRatingForListItem(ctx context.Context, listID string, itemID media.ID, mediaType media.MediaType) (*float64, error) {
	list, err := s.GetListByID(ctx, listID)
	if err != nil || list == nil {
		return nil, err
	}
	item, ok := list.Find(itemID, mediaType)
	if !ok {
		return nil, nil
	}
	return item.UserRating, nil
}

// GetListedItems flattens all non-Interested lists, newest addedAt first.
func (s *Service) GetListedItems(ctx context.Context) ([]RecentlyAddedItem, error) {
	lists, err := s.GetLists(ctx)
	if err != nil {
		return nil, err
	}
	return flattenLists(lists), nil
}

func flattenLists(lists []UserList) []RecentlyAddedItem {
	var out []RecentlyAddedItem
	for _, list := range lists {
		if list.IsInterested() {
			continue
		}
		for _, item := range list.Items {
			out = append(out, RecentlyAddedItem{ListItem: item, ListID: list.ID, ListName: list.Name})
		}
	}
	slices.SortStableFunc(out, func(a, b RecentlyAddedItem) int {
		return compareDesc(a.AddedAt, b.AddedAt)
	})
	return out
}

// GetAllGenresFromList returns the distinct genre names of listed items,
// excluding "N/A", sorted.
func (s *Service) GetAllGenresFromList(ctx context.Context) ([]GenreOption, error) {
	items, err := s.GetListedItems(ctx)
	if err != nil {
		return nil, err
	}
	seen := map[string]struct{}{}
	var names []string
	for _, item := range items {
		if item.Genre == "" || item.Genre == media.UnknownGenre {
			continue
		}
		if _, ok := seen[item.Genre]; ok {
			continue
		}
		seen[item.Genre] = struct{}{}
		names = append(names, item.Genre)
	}
	slices.Sort(names)
	out := make([]GenreOption, len(names))
	for i, name := range names {
		out[i] = GenreOption{ID: name, Name: name}
	}
	return out, nil
}

// EditableLists filters out the Interested list, leaving valid targets for
// user-driven adds.
func EditableLists(lists []UserList) []UserList {
	out := make([]UserList, 0, len(lists))
	for _, list := range lists {
		if !list.IsInterested() {
			out = append(out, list)
		}
	}
	return out
}

func compareDesc(a, b int64) int {
	switch {
	case a > b:
		return -1
	case a < b:
		return 1
	default:
		return 0
	}
}
