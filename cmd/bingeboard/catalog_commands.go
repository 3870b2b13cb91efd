package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"bingeboard/internal/catalog"
	"bingeboard/internal/media"
	"bingeboard/internal/youtube"
)

func newCatalogCommands(ctx *commandContext) []*cobra.Command {
	return []*cobra.Command{
		newSearchCommand(ctx),
		newTrendingCommand(ctx),
		newBrowseCommand(ctx),
		newUpcomingCommand(ctx),
		newGenresCommand(ctx),
		newDetailsCommand(ctx),
		newCreditsCommand(ctx),
		newSeasonsCommand(ctx),
		newEpisodesCommand(ctx),
		newProvidersCommand(ctx),
		newImagesCommand(ctx),
		newTrailerCommand(ctx),
	}
}

func printRecommendations(cmd *cobra.Command, ctx *commandContext, items []media.Recommendation, empty string) error {
	if ctx.jsonOutput() {
		if items == nil {
			items = []media.Recommendation{}
		}
		return writeJSON(cmd, items)
	}
	if len(items) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), empty)
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderRecommendations(items))
	return nil
}

func newSearchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search movies and TV shows",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			return ctx.withApp(cmd, func(c context.Context, a *app) error {
				return printRecommendations(cmd, ctx, a.catalog.Search(c, query), "No results")
			})
		},
	}
}

func newTrendingCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "trending [movie|tv]",
		Short: "Show this week's trending titles",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mediaType := media.Movie
			if len(args) == 1 {
				parsed, err := media.ParseMediaType(args[0])
				if err != nil {
					return err
				}
				mediaType = parsed
			}
			return ctx.withApp(cmd, func(c context.Context, a *app) error {
				return printRecommendations(cmd, ctx, a.catalog.Trending(c, mediaType), "Nothing trending right now")
			})
		},
	}
}

func newBrowseCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:       "browse [feed]",
		Short:     "Browse a catalog feed, or every feed when none is given",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: catalog.FeedNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(cmd, func(c context.Context, a *app) error {
				if len(args) == 0 {
					feeds := a.catalog.HomeFeeds(c)
					if ctx.jsonOutput() {
						return writeJSON(cmd, feeds)
					}
					out := cmd.OutOrStdout()
					for _, feed := range feeds {
						fmt.Fprintf(out, "%s (%d)\n", feed.Title, len(feed.Items))
						if len(feed.Items) > 0 {
							fmt.Fprintln(out, renderRecommendations(feed.Items))
						}
					}
					return nil
				}
				items, err := a.catalog.Category(c, args[0])
				if errors.Is(err, catalog.ErrUnknownFeed) {
					return fmt.Errorf("%w; choose one of: %s", err, strings.Join(catalog.FeedNames(), ", "))
				}
				if err != nil {
					return err
				}
				return printRecommendations(cmd, ctx, items, "No titles in this feed")
			})
		},
	}
}

func newUpcomingCommand(ctx *commandContext) *cobra.Command {
	var months int
	cmd := &cobra.Command{
		Use:   "upcoming",
		Short: "Show upcoming movie releases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(cmd, func(c context.Context, a *app) error {
				return printRecommendations(cmd, ctx, a.catalog.Upcoming(c, months), "No upcoming releases found")
			})
		},
	}
	cmd.Flags().IntVar(&months, "months", 0, "Only releases within this many months (0 for no limit)")
	return cmd
}

func newGenresCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "genres <movie|tv>",
		Short: "Show the catalog genre list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mediaType, err := media.ParseMediaType(args[0])
			if err != nil {
				return err
			}
			return ctx.withApp(cmd, func(c context.Context, a *app) error {
				genres := a.catalog.MovieGenres(c)
				if mediaType == media.TV {
					genres = a.catalog.TVGenres(c)
				}
				if ctx.jsonOutput() {
					if genres == nil {
						genres = []media.Genre{}
					}
					return writeJSON(cmd, genres)
				}
				rows := make([][]string, 0, len(genres))
				for _, g := range genres {
					rows = append(rows, []string{strconv.Itoa(g.ID), g.Name})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"ID", "Name"}, rows, []columnAlignment{alignRight, alignLeft}))
				return nil
			})
		},
	}
}

func newDetailsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "details <movie|tv> <id>",
		Short: "Show catalog details for a title",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mediaType, id, err := parseItemRef(args[0], args[1])
			if err != nil {
				return err
			}
			return ctx.withApp(cmd, func(c context.Context, a *app) error {
				details := a.catalog.Details(c, mediaType, id.String())
				if details == nil {
					return fmt.Errorf("no catalog entry for %s %s", mediaType, id)
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, details)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s (%s)\n", details.DisplayTitle(), releaseYear(details.ReleaseDate, details.FirstAirDate))
				if details.Tagline != "" {
					fmt.Fprintf(out, "%q\n", details.Tagline)
				}
				genres := make([]string, 0, len(details.Genres))
				for _, g := range details.Genres {
					genres = append(genres, g.Name)
				}
				fmt.Fprintf(out, "Genres:  %s\n", strings.Join(genres, ", "))
				fmt.Fprintf(out, "Score:   %s (%d votes)\n", formatVote(details.VoteAverage), details.VoteCount)
				if details.Runtime > 0 {
					fmt.Fprintf(out, "Runtime: %d min\n", details.Runtime)
				}
				if details.NumberOfSeasons > 0 {
					fmt.Fprintf(out, "Seasons: %d (%d episodes)\n", details.NumberOfSeasons, details.NumberOfEpisodes)
				}
				if details.Status != "" {
					fmt.Fprintf(out, "Status:  %s\n", details.Status)
				}
				if details.Overview != "" {
					fmt.Fprintln(out)
					fmt.Fprintln(out, details.Overview)
				}
				return nil
			})
		},
	}
}

func newCreditsCommand(ctx *commandContext) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "credits <movie|tv> <id>",
		Short: "Show the cast of a title",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mediaType, id, err := parseItemRef(args[0], args[1])
			if err != nil {
				return err
			}
			return ctx.withApp(cmd, func(c context.Context, a *app) error {
				credits := a.catalog.Credits(c, mediaType, id.String())
				cast := credits.Cast
				if limit > 0 && len(cast) > limit {
					cast = cast[:limit]
				}
				if ctx.jsonOutput() {
					credits.Cast = cast
					return writeJSON(cmd, credits)
				}
				rows := make([][]string, 0, len(cast))
				for _, member := range cast {
					rows = append(rows, []string{member.Name, member.Character})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Name", "Character"}, rows, nil))
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 15, "Maximum cast members to show (0 for all)")
	return cmd
}

func newSeasonsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "seasons <tv id>",
		Short: "Show the seasons of a series",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(cmd, func(c context.Context, a *app) error {
				seasons := a.catalog.Seasons(c, strings.TrimSpace(args[0]))
				if ctx.jsonOutput() {
					return writeJSON(cmd, seasons)
				}
				rows := make([][]string, 0, len(seasons))
				for _, s := range seasons {
					rows = append(rows, []string{strconv.Itoa(s.SeasonNumber), s.Name, strconv.Itoa(s.EpisodeCount), releaseYear(s.AirDate)})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"Season", "Name", "Episodes", "Year"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignRight, alignLeft},
				))
				return nil
			})
		},
	}
}

func newEpisodesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "episodes <tv id> <season>",
		Short: "Show the episodes of a season",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			season, err := strconv.Atoi(strings.TrimSpace(args[1]))
			if err != nil {
				return fmt.Errorf("season must be a number: %w", err)
			}
			return ctx.withApp(cmd, func(c context.Context, a *app) error {
				episodes := a.catalog.SeasonEpisodes(c, strings.TrimSpace(args[0]), season)
				if ctx.jsonOutput() {
					return writeJSON(cmd, episodes)
				}
				rows := make([][]string, 0, len(episodes))
				for _, ep := range episodes {
					rows = append(rows, []string{strconv.Itoa(ep.EpisodeNumber), ep.Name, ep.AirDate})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"Episode", "Name", "Air date"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft},
				))
				return nil
			})
		},
	}
}

func newProvidersCommand(ctx *commandContext) *cobra.Command {
	var region string
	cmd := &cobra.Command{
		Use:   "providers <movie|tv> <id>",
		Short: "Show where a title can be watched",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mediaType, id, err := parseItemRef(args[0], args[1])
			if err != nil {
				return err
			}
			return ctx.withApp(cmd, func(c context.Context, a *app) error {
				availability := a.catalog.WatchProviders(c, mediaType, id.String(), region)
				if ctx.jsonOutput() {
					return writeJSON(cmd, availability)
				}
				out := cmd.OutOrStdout()
				if availability == nil {
					fmt.Fprintln(out, "No watch providers found for this region")
					return nil
				}
				var rows [][]string
				for _, group := range []struct {
					kind      string
					providers []catalog.Provider
				}{
					{"stream", availability.Flatrate},
					{"rent", availability.Rent},
					{"buy", availability.Buy},
					{"ads", availability.Ads},
				} {
					for _, p := range group.providers {
						rows = append(rows, []string{group.kind, p.Name})
					}
				}
				fmt.Fprintf(out, "Region %s: %s\n", availability.Region, availability.Link)
				fmt.Fprintln(out, renderTable([]string{"Kind", "Provider"}, rows, nil))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&region, "region", "", "ISO 3166-1 region code (defaults to tmdb.watch_region)")
	return cmd
}

func newImagesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "images <movie|tv> <id>",
		Short: "Show backdrop and poster URLs for a title",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mediaType, id, err := parseItemRef(args[0], args[1])
			if err != nil {
				return err
			}
			return ctx.withApp(cmd, func(c context.Context, a *app) error {
				gallery := a.catalog.Images(c, mediaType, id.String())
				if ctx.jsonOutput() {
					return writeJSON(cmd, gallery)
				}
				out := cmd.OutOrStdout()
				if gallery == nil {
					fmt.Fprintln(out, "No images available")
					return nil
				}
				for _, img := range gallery.Backdrops {
					fmt.Fprintf(out, "backdrop  %s\n", img.URL)
				}
				for _, img := range gallery.Posters {
					fmt.Fprintf(out, "poster    %s\n", img.URL)
				}
				return nil
			})
		},
	}
}

func newTrailerCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "trailer <title>",
		Short: "Find the official trailer on YouTube",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			return ctx.withApp(cmd, func(c context.Context, a *app) error {
				videoID, found := a.trailers.FindTrailer(c, query)
				link := ""
				if found {
					link = youtube.WatchURL(videoID)
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, map[string]any{"found": found, "videoId": videoID, "url": link})
				}
				if !found {
					fmt.Fprintf(cmd.OutOrStdout(), "No trailer found for %q\n", query)
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), link)
				return nil
			})
		},
	}
}
