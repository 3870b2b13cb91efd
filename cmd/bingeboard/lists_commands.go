package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"bingeboard/internal/config"
	"bingeboard/internal/fileutil"
	"bingeboard/internal/lists"
	"bingeboard/internal/textutil"
)

func newListsCommand(ctx *commandContext) *cobra.Command {
	listsCmd := &cobra.Command{
		Use:     "lists",
		Aliases: []string{"list"},
		Short:   "Manage watch lists",
	}

	listsCmd.AddCommand(&cobra.Command{
		Use:   "ls",
		Short: "Show all lists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(cmd, func(c context.Context, a *app) error {
				all, err := a.lists.GetLists(c)
				if err != nil {
					return err
				}
				return printLists(cmd, ctx, all)
			})
		},
	})

	listsCmd.AddCommand(&cobra.Command{
		Use:   "create <name>",
		Short: "Create an empty list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			return ctx.withApp(cmd, func(c context.Context, a *app) error {
				all, err := a.lists.CreateList(c, name)
				if err != nil {
					return err
				}
				created := newestList(all)
				if created == nil {
					return errors.New("list storage is unavailable")
				}
				return printListResult(cmd, ctx, *created, "Created list %q (%s)")
			})
		},
	})

	listsCmd.AddCommand(&cobra.Command{
		Use:   "rename <list> <new name>",
		Short: "Rename a list",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(cmd, func(c context.Context, a *app) error {
				list, err := resolveEditableList(c, a, args[0])
				if err != nil {
					return err
				}
				all, err := a.lists.RenameList(c, list.ID, strings.Join(args[1:], " "))
				if err != nil {
					return err
				}
				renamed, ok := listByID(all, list.ID)
				if !ok {
					return fmt.Errorf("%w: %s", lists.ErrListNotFound, args[0])
				}
				return printListResult(cmd, ctx, renamed, "Renamed list to %q (%s)")
			})
		},
	})

	listsCmd.AddCommand(&cobra.Command{
		Use:   "delete <list>",
		Short: "Delete a list and its items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(cmd, func(c context.Context, a *app) error {
				list, err := resolveEditableList(c, a, args[0])
				if err != nil {
					return err
				}
				if _, err := a.lists.DeleteList(c, list.ID); err != nil {
					return err
				}
				return printListResult(cmd, ctx, *list, "Deleted list %q (%s)")
			})
		},
	})

	listsCmd.AddCommand(&cobra.Command{
		Use:   "pin <list>",
		Short: "Toggle the pinned flag of a list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(cmd, func(c context.Context, a *app) error {
				list, err := resolveEditableList(c, a, args[0])
				if err != nil {
					return err
				}
				all, err := a.lists.TogglePinList(c, list.ID)
				if err != nil {
					return err
				}
				updated, ok := listByID(all, list.ID)
				if !ok {
					return fmt.Errorf("%w: %s", lists.ErrListNotFound, args[0])
				}
				format := "Unpinned list %q (%s)"
				if updated.IsPinned {
					format = "Pinned list %q (%s)"
				}
				return printListResult(cmd, ctx, updated, format)
			})
		},
	})

	listsCmd.AddCommand(newListShowCommand(ctx))
	listsCmd.AddCommand(newListExportCommand(ctx))
	listsCmd.AddCommand(newListImportCommand(ctx))

	listsCmd.AddCommand(&cobra.Command{
		Use:   "recent",
		Short: "Show items from every list, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(cmd, func(c context.Context, a *app) error {
				items, err := a.lists.GetListedItems(c)
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, items)
				}
				if len(items) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No items in any list")
					return nil
				}
				rows := make([][]string, 0, len(items))
				for _, item := range items {
					rows = append(rows, []string{
						item.ID.String(),
						string(item.MediaType),
						item.Title,
						item.ListName,
						formatMillis(item.AddedAt),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"ID", "Type", "Title", "List", "Added"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft},
				))
				return nil
			})
		},
	})

	listsCmd.AddCommand(&cobra.Command{
		Use:   "genres",
		Short: "Show the genres present across all lists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(cmd, func(c context.Context, a *app) error {
				genres, err := a.lists.GetAllGenresFromList(c)
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, genres)
				}
				for _, g := range genres {
					fmt.Fprintln(cmd.OutOrStdout(), g.Name)
				}
				return nil
			})
		},
	})

	return listsCmd
}

func newListShowCommand(ctx *commandContext) *cobra.Command {
	var search, genre, rating, from, to string
	var byCategory, byMonth bool

	cmd := &cobra.Command{
		Use:   "show <list>",
		Short: "Show the items of a list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := lists.ItemFilter{Search: search, Genre: genre}
			if strings.TrimSpace(rating) != "" {
				v, err := strconv.ParseFloat(strings.TrimSpace(rating), 64)
				if err != nil {
					return fmt.Errorf("rating must be a number: %w", err)
				}
				filter.Rating = &v
			}
			for _, bound := range []struct {
				raw string
				dst *time.Time
			}{{from, &filter.From}, {to, &filter.To}} {
				if strings.TrimSpace(bound.raw) == "" {
					continue
				}
				t, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(bound.raw), time.Local)
				if err != nil {
					return fmt.Errorf("dates must be YYYY-MM-DD: %w", err)
				}
				*bound.dst = t
			}

			return ctx.withApp(cmd, func(c context.Context, a *app) error {
				list, err := resolveList(c, a, args[0])
				if err != nil {
					return err
				}
				items := lists.Filter(list.Items, filter)
				out := cmd.OutOrStdout()
				switch {
				case byCategory:
					groups := lists.Categorize(items)
					if ctx.jsonOutput() {
						return writeJSON(cmd, groups)
					}
					for _, category := range lists.Categories {
						if len(groups[category]) == 0 {
							continue
						}
						fmt.Fprintf(out, "%s (%d)\n", category.Title(), len(groups[category]))
						fmt.Fprintln(out, renderListItems(groups[category]))
					}
					return nil
				case byMonth:
					groups := lists.GroupByMonth(items, time.Local)
					if ctx.jsonOutput() {
						return writeJSON(cmd, groups)
					}
					for _, g := range groups {
						fmt.Fprintf(out, "%s (%d)\n", g.Label, len(g.Items))
						fmt.Fprintln(out, renderListItems(g.Items))
					}
					return nil
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, map[string]any{
						"list":    list,
						"items":   items,
						"ratings": lists.AvailableRatings(list.Items),
					})
				}
				fmt.Fprintf(out, "%s (%d of %d items)\n", list.Name, len(items), len(list.Items))
				if len(items) > 0 {
					fmt.Fprintln(out, renderListItems(items))
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Only titles containing this text")
	cmd.Flags().StringVar(&genre, "genre", "", "Only items with this genre")
	cmd.Flags().StringVar(&rating, "rating", "", "Only items with this rating")
	cmd.Flags().StringVar(&from, "from", "", "Added on or after YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "Added on or before YYYY-MM-DD")
	cmd.Flags().BoolVar(&byCategory, "by-category", false, "Group items by category")
	cmd.Flags().BoolVar(&byMonth, "by-month", false, "Group items by the month they were added")
	cmd.MarkFlagsMutuallyExclusive("by-category", "by-month")
	return cmd
}

func newListExportCommand(ctx *commandContext) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "export <list>",
		Short: "Export a list as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(cmd, func(c context.Context, a *app) error {
				list, err := resolveEditableList(c, a, args[0])
				if err != nil {
					return err
				}
				payload, ok, err := a.lists.ExportListToJSON(c, list.ID)
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("%w: %s", lists.ErrListNotFound, args[0])
				}
				if outputPath == "-" {
					fmt.Fprintln(cmd.OutOrStdout(), payload)
					return nil
				}
				target := strings.TrimSpace(outputPath)
				if target == "" {
					target = fileutil.ExportFileName(list.Name)
				}
				target, err = config.ExpandPath(target)
				if err != nil {
					return err
				}
				if info, statErr := os.Stat(target); statErr == nil && info.IsDir() {
					target = filepath.Join(target, fileutil.ExportFileName(list.Name))
				}
				if err := fileutil.WriteFileAtomic(target, []byte(payload), 0o644); err != nil {
					return fmt.Errorf("write export: %w", err)
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, map[string]string{"list_id": list.ID, "path": target})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %q to %s\n", list.Name, target)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Destination file or directory (\"-\" for stdout)")
	return cmd
}

func newListImportCommand(ctx *commandContext) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a list exported by BingeBoard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var data []byte
			var err error
			if args[0] == "-" {
				data, err = fileutil.ReadAllLimited(cmd.InOrStdin(), fileutil.MaxImportSize)
			} else {
				var path string
				if path, err = config.ExpandPath(args[0]); err == nil {
					data, err = fileutil.ReadLimited(path, fileutil.MaxImportSize)
				}
			}
			if err != nil {
				return fmt.Errorf("read import: %w", err)
			}
			return ctx.withApp(cmd, func(c context.Context, a *app) error {
				result := a.lists.ImportListFromJSON(c, string(data), name)
				if !result.OK() {
					return errors.New(result.Err)
				}
				return printListResult(cmd, ctx, *result.List, "Imported list %q (%s)")
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Name for the imported list")
	return cmd
}

// resolveList finds a list by id, then by case-insensitive name. Sorted order
// decides between lists sharing a name.
func resolveList(ctx context.Context, a *app, ref string) (*lists.UserList, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, errors.New("list id or name is required")
	}
	all, err := a.lists.GetLists(ctx)
	if err != nil {
		return nil, err
	}
	if list, ok := listByID(all, ref); ok {
		return &list, nil
	}
	for _, list := range all {
		if textutil.EqualFold(list.Name, ref) {
			return &list, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", lists.ErrListNotFound, ref)
}

// resolveEditableList is resolveList for commands that change or export a
// list. The Interested list is refused.
func resolveEditableList(ctx context.Context, a *app, ref string) (*lists.UserList, error) {
	list, err := resolveList(ctx, a, ref)
	if err != nil {
		return nil, err
	}
	if list.IsInterested() {
		return nil, fmt.Errorf("%w; use `bingeboard interested toggle` instead", lists.ErrReservedList)
	}
	return list, nil
}

func listByID(all []lists.UserList, id string) (lists.UserList, bool) {
	for _, list := range all {
		if list.ID == id {
			return list, true
		}
	}
	return lists.UserList{}, false
}

func newestList(all []lists.UserList) *lists.UserList {
	var newest *lists.UserList
	for i := range all {
		if newest == nil || all[i].CreatedAt > newest.CreatedAt {
			newest = &all[i]
		}
	}
	return newest
}

func printLists(cmd *cobra.Command, ctx *commandContext, all []lists.UserList) error {
	if ctx.jsonOutput() {
		return writeJSON(cmd, all)
	}
	if len(all) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No lists yet; create one with `bingeboard lists create <name>`")
		return nil
	}
	rows := make([][]string, 0, len(all))
	for _, list := range all {
		rows = append(rows, []string{
			list.ID,
			list.Name,
			strconv.Itoa(len(list.Items)),
			yesNo(list.IsPinned),
			formatMillis(list.CreatedAt),
		})
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable(
		[]string{"ID", "Name", "Items", "Pinned", "Created"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignLeft},
	))
	return nil
}

func printListResult(cmd *cobra.Command, ctx *commandContext, list lists.UserList, format string) error {
	if ctx.jsonOutput() {
		return writeJSON(cmd, list)
	}
	fmt.Fprintf(cmd.OutOrStdout(), format+"\n", list.Name, list.ID)
	return nil
}

func formatMillis(ms int64) string {
	if ms <= 0 {
		return "-"
	}
	return time.UnixMilli(ms).Local().Format("2006-01-02 15:04")
}
