package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"bingeboard/internal/lists"
	"bingeboard/internal/media"
)

const maxRating = 5

func newItemCommand(ctx *commandContext) *cobra.Command {
	itemCmd := &cobra.Command{
		Use:   "item",
		Short: "Add, rate, and track items in a list",
	}
	itemCmd.AddCommand(newItemAddCommand(ctx))
	itemCmd.AddCommand(newItemRemoveCommand(ctx))
	itemCmd.AddCommand(newItemRateCommand(ctx))
	itemCmd.AddCommand(newItemWatchedCommand(ctx))
	itemCmd.AddCommand(newItemStatusCommand(ctx))
	return itemCmd
}

func newItemAddCommand(ctx *commandContext) *cobra.Command {
	var rating string

	cmd := &cobra.Command{
		Use:   "add <list> <movie|tv> <id>",
		Short: "Add a catalog title to a list",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			mediaType, id, err := parseItemRef(args[1], args[2])
			if err != nil {
				return err
			}
			update, err := parseRating(rating)
			if err != nil {
				return err
			}
			return ctx.withApp(cmd, func(c context.Context, a *app) error {
				list, err := resolveEditableList(c, a, args[0])
				if err != nil {
					return err
				}
				rec, err := lookupTitle(c, a, mediaType, id)
				if err != nil {
					return err
				}
				if _, err := a.lists.AddItemToList(c, list.ID, rec, lists.AddOptions{Rating: update}); err != nil {
					return err
				}
				return printItemResult(cmd, ctx, list.ID, rec, fmt.Sprintf("Added %q to %q", rec.Title, list.Name))
			})
		},
	}
	cmd.Flags().StringVar(&rating, "rating", "", "Initial rating (0-5)")
	return cmd
}

func newItemRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <list> <movie|tv> <id>",
		Short: "Remove an item from a list",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			mediaType, id, err := parseItemRef(args[1], args[2])
			if err != nil {
				return err
			}
			return ctx.withApp(cmd, func(c context.Context, a *app) error {
				list, err := resolveEditableList(c, a, args[0])
				if err != nil {
					return err
				}
				item, ok := list.Find(id, mediaType)
				if !ok {
					return fmt.Errorf("%s %s is not in %q", mediaType, id, list.Name)
				}
				if _, err := a.lists.RemoveItemFromList(c, list.ID, id, mediaType); err != nil {
					return err
				}
				return printItemResult(cmd, ctx, list.ID, item.Recommendation, fmt.Sprintf("Removed %q from %q", item.Title, list.Name))
			})
		},
	}
}

func newItemRateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rate <list> <movie|tv> <id> <rating|clear>",
		Short: "Set or clear the rating of a listed item",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			mediaType, id, err := parseItemRef(args[1], args[2])
			if err != nil {
				return err
			}
			update := lists.ClearRating()
			if !strings.EqualFold(strings.TrimSpace(args[3]), "clear") {
				if update, err = parseRating(args[3]); err != nil {
					return err
				}
			}
			return ctx.withApp(cmd, func(c context.Context, a *app) error {
				list, err := resolveEditableList(c, a, args[0])
				if err != nil {
					return err
				}
				item, ok := list.Find(id, mediaType)
				if !ok {
					return fmt.Errorf("%s %s is not in %q", mediaType, id, list.Name)
				}
				if _, err := a.lists.AddItemToList(c, list.ID, item.Recommendation, lists.AddOptions{Rating: update}); err != nil {
					return err
				}
				message := fmt.Sprintf("Cleared rating of %q", item.Title)
				if v := update.Value(); v != nil {
					message = fmt.Sprintf("Rated %q %s", item.Title, formatRating(v))
				}
				return printItemResult(cmd, ctx, list.ID, item.Recommendation, message)
			})
		},
	}
}

func newItemWatchedCommand(ctx *commandContext) *cobra.Command {
	var season int
	var episodes []int
	var all, clearSeason bool

	cmd := &cobra.Command{
		Use:   "watched <list> <tv id>",
		Short: "Record watched episodes for a listed series",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if season < 1 {
				return errors.New("--season must be 1 or greater")
			}
			if !all && !clearSeason && len(episodes) == 0 {
				return errors.New("pass --episodes, --all, or --clear")
			}
			id := media.ID(strings.TrimSpace(args[1]))
			return ctx.withApp(cmd, func(c context.Context, a *app) error {
				list, err := resolveEditableList(c, a, args[0])
				if err != nil {
					return err
				}
				item, ok := list.Find(id, media.TV)
				if !ok {
					return fmt.Errorf("tv %s is not in %q", id, list.Name)
				}
				watched, err := a.lists.GetWatchedTVDataForList(c, list.ID, id)
				if err != nil {
					return err
				}
				watched = watched.Clone()
				if watched == nil {
					watched = media.WatchedEpisodes{}
				}
				switch {
				case clearSeason:
					delete(watched, season)
				case all:
					watched[season] = media.AllEpisodes()
				default:
					watched[season] = media.EpisodeSet(episodes...)
				}
				if _, err := a.lists.AddItemToList(c, list.ID, item.Recommendation, lists.AddOptions{Watched: &watched}); err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, map[string]any{
						"list_id":          list.ID,
						"item":             item.Recommendation,
						"watched_episodes": watched,
					})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated %q: %s\n", item.Title, watched.Summary())
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&season, "season", 0, "Season number")
	cmd.Flags().IntSliceVar(&episodes, "episodes", nil, "Watched episode numbers (comma separated)")
	cmd.Flags().BoolVar(&all, "all", false, "Mark the whole season watched")
	cmd.Flags().BoolVar(&clearSeason, "clear", false, "Forget progress for the season")
	cmd.MarkFlagsMutuallyExclusive("episodes", "all", "clear")
	return cmd
}

func newItemStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status <movie|tv> <id>",
		Short: "Show which list holds a title",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mediaType, id, err := parseItemRef(args[0], args[1])
			if err != nil {
				return err
			}
			return ctx.withApp(cmd, func(c context.Context, a *app) error {
				presence, err := a.lists.IsItemInAnyList(c, id, mediaType)
				if err != nil {
					return err
				}
				interested, err := a.lists.IsItemInInterestedList(c, id, mediaType)
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, map[string]any{
						"presence":   presence,
						"interested": interested,
					})
				}
				out := cmd.OutOrStdout()
				if presence.InList {
					fmt.Fprintf(out, "In list %q (%s), rating %s\n", presence.ListName, presence.ListID, formatRating(presence.UserRating))
				} else {
					fmt.Fprintln(out, "Not in any list")
				}
				fmt.Fprintf(out, "Interested: %s\n", yesNo(interested))
				return nil
			})
		},
	}
}

func newInterestedCommand(ctx *commandContext) *cobra.Command {
	interestedCmd := &cobra.Command{
		Use:   "interested",
		Short: "Track upcoming titles you are interested in",
	}

	interestedCmd.AddCommand(&cobra.Command{
		Use:   "toggle <movie|tv> <id>",
		Short: "Add or remove a title from the Interested list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mediaType, id, err := parseItemRef(args[0], args[1])
			if err != nil {
				return err
			}
			return ctx.withApp(cmd, func(c context.Context, a *app) error {
				rec, err := lookupTitle(c, a, mediaType, id)
				if err != nil {
					return err
				}
				added, _, err := a.lists.ToggleInterested(c, rec)
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, map[string]any{"item": rec, "interested": added})
				}
				if added {
					fmt.Fprintf(cmd.OutOrStdout(), "Added %q to %s\n", rec.Title, lists.InterestedListName)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "Removed %q from %s\n", rec.Title, lists.InterestedListName)
				}
				return nil
			})
		},
	})

	interestedCmd.AddCommand(&cobra.Command{
		Use:   "ls",
		Short: "Show the Interested list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(cmd, func(c context.Context, a *app) error {
				all, err := a.lists.GetLists(c)
				if err != nil {
					return err
				}
				var items []lists.ListItem
				for _, list := range all {
					if list.IsInterested() {
						items = append(items, list.Items...)
					}
				}
				if ctx.jsonOutput() {
					if items == nil {
						items = []lists.ListItem{}
					}
					return writeJSON(cmd, items)
				}
				if len(items) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Nothing in Interested")
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderListItems(items))
				return nil
			})
		},
	})

	return interestedCmd
}

func parseItemRef(mediaTypeArg, idArg string) (media.MediaType, media.ID, error) {
	mediaType, err := media.ParseMediaType(mediaTypeArg)
	if err != nil {
		return "", "", err
	}
	id := strings.TrimSpace(idArg)
	if id == "" {
		return "", "", errors.New("item id is required")
	}
	return mediaType, media.ID(id), nil
}

// parseRating accepts "" (leave unchanged) or a number in [0, 5].
func parseRating(raw string) (lists.RatingUpdate, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return lists.RatingUpdate{}, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return lists.RatingUpdate{}, fmt.Errorf("rating %q is not a number", raw)
	}
	if v < 0 || v > maxRating {
		return lists.RatingUpdate{}, fmt.Errorf("rating must be between 0 and %d", maxRating)
	}
	return lists.Rate(v), nil
}

// lookupTitle fetches catalog details and converts them to a list item.
func lookupTitle(ctx context.Context, a *app, mediaType media.MediaType, id media.ID) (media.Recommendation, error) {
	details := a.catalog.Details(ctx, mediaType, id.String())
	if details == nil {
		return media.Recommendation{}, fmt.Errorf("no catalog entry for %s %s", mediaType, id)
	}
	return details.Recommendation(), nil
}

func printItemResult(cmd *cobra.Command, ctx *commandContext, listID string, rec media.Recommendation, message string) error {
	if ctx.jsonOutput() {
		return writeJSON(cmd, map[string]any{"list_id": listID, "item": rec, "message": message})
	}
	fmt.Fprintln(cmd.OutOrStdout(), message)
	return nil
}
