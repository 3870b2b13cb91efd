package lists

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"bingeboard/internal/logging"
	"bingeboard/internal/store"
)

const migrationDoneValue = "true"

// Migrate folds the legacy single-list document into the multi-list
// collection and records completion so it runs at most once per store. Legacy
// items land in a pinned "My Watchlist (Migrated)" list, or are merged into an
// existing list of that name without duplicating (id, media_type) pairs. The
// legacy key is removed even when it cannot be parsed.
func (s *Service) Migrate(ctx context.Context, kv BlobStore) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	flag, err := kv.Get(ctx, MigrationDoneKey)
	switch {
	case err == nil && flag == migrationDoneValue:
		return nil
	case err != nil && !errors.Is(err, store.ErrNotFound):
		return fmt.Errorf("read migration flag: %w", err)
	}

	s.logger.Info("running one-time list migration")

	legacy, err := kv.Get(ctx, LegacyListKey)
	switch {
	case err == nil:
		if migrateErr := s.migrateLegacy(ctx, legacy); migrateErr != nil {
			logging.ErrorWithContext(s.logger, "legacy list migration failed", "lists_migration_failed",
				logging.Error(migrateErr),
				logging.String(logging.FieldErrorHint, "legacy items are discarded; re-add them manually"),
			)
		}
		if err := kv.Delete(ctx, LegacyListKey); err != nil {
			return fmt.Errorf("remove legacy list: %w", err)
		}
	case !errors.Is(err, store.ErrNotFound):
		return fmt.Errorf("read legacy list: %w", err)
	}

	// Rewriting the normalized collection gives every stored item an explicit rating.
	lists, ok := s.load(ctx)
	if !ok {
		return errors.New("migration: lists unavailable")
	}
	if err := s.save(ctx, lists); err != nil {
		return err
	}

	if err := kv.Put(ctx, MigrationDoneKey, migrationDoneValue); err != nil {
		return fmt.Errorf("record migration: %w", err)
	}
	s.logger.Info("list migration completed")
	return nil
}

func (s *Service) migrateLegacy(ctx context.Context, raw string) error {
	var legacy []ListItem
	if err := json.Unmarshal([]byte(raw), &legacy); err != nil {
		return fmt.Errorf("parse legacy list: %w", err)
	}
	if len(legacy) == 0 {
		return nil
	}

	now := s.nowMillis()
	migrated := make([]ListItem, 0, len(legacy))
	for _, item := range legacy {
		if item.ID == "" {
			continue
		}
		if item.GenreIDs == nil {
			item.GenreIDs = []int{}
		}
		item.AddedAt = now
		item.UserRating = nil
		migrated = append(migrated, item)
	}

	lists, ok := s.load(ctx)
	if !ok {
		return errors.New("lists unavailable")
	}

	target := -1
	for i, list := range lists {
		if list.Name == MigratedListName {
			target = i
			break
		}
	}
	if target < 0 {
		lists = append([]UserList{{
			ID:        s.newID(),
			Name:      MigratedListName,
			Items:     dedupeItems(migrated),
			CreatedAt: now,
			IsPinned:  true,
		}}, lists...)
	} else {
		for _, item := range migrated {
			if lists[target].indexOf(item.ID, item.MediaType) >= 0 {
				continue
			}
			lists[target].Items = append([]ListItem{item}, lists[target].Items...)
		}
	}

	if err := s.save(ctx, lists); err != nil {
		return err
	}
	s.logger.Info("legacy items migrated",
		logging.Int("item_count", len(migrated)),
		logging.String("list_name", MigratedListName),
	)
	return nil
}
