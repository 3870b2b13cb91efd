package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newAskCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <command>",
		Short: "Manage lists in plain language, e.g. \"add Inception to Favorites\"",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			return ctx.withApp(cmd, func(c context.Context, a *app) error {
				outcome, err := a.commander().Execute(c, text)
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, outcome)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, outcome.Message)
				if len(outcome.Items) > 0 {
					fmt.Fprintln(out, renderListItems(outcome.Items))
				}
				return nil
			})
		},
	}
}

func newCurateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "curate <category>",
		Short: "Ask the assistant for trending picks in a category",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category := strings.Join(args, " ")
			return ctx.withApp(cmd, func(c context.Context, a *app) error {
				picks := a.curator().CurateTrending(c, category)
				if ctx.jsonOutput() {
					return writeJSON(cmd, picks)
				}
				if len(picks) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No recommendations available; check the llm settings with `bingeboard doctor`")
					return nil
				}
				rows := make([][]string, 0, len(picks))
				for _, p := range picks {
					rows = append(rows, []string{p.Title, p.Genre})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Title", "Genre"}, rows, nil))
				return nil
			})
		},
	}
}
