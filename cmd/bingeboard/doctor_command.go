package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"bingeboard/internal/preflight"
	"bingeboard/internal/store"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	var offline bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration, storage, and upstream API access",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			c := cmd.Context()
			if c == nil {
				c = context.Background()
			}

			results := []preflight.Result{checkDatabase(c, cfg.DatabasePath())}
			results = append(results, preflight.RunAll(c, cfg, preflight.Options{Remote: !offline})...)

			if ctx.jsonOutput() {
				if err := writeJSON(cmd, results); err != nil {
					return err
				}
			} else {
				out := cmd.OutOrStdout()
				colorize := colorEnabled(out)
				for _, line := range renderDoctorHeader(ctx.configPath, colorize) {
					fmt.Fprintln(out, line)
				}
				for _, r := range results {
					fmt.Fprintln(out, renderCheck(r, colorize))
				}
				fmt.Fprintln(out)
				fmt.Fprintln(out, renderDoctorSummary(results))
			}
			_, _, failed := summarizeChecks(results)
			if failed > 0 {
				return fmt.Errorf("%d check(s) failed", failed)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&offline, "offline", false, "Skip checks that call TMDB and the LLM")
	return cmd
}

func checkDatabase(ctx context.Context, path string) preflight.Result {
	result := preflight.Result{Name: "Database"}
	st, err := store.OpenPath(path)
	if err != nil {
		result.Detail = err.Error()
		return result
	}
	defer st.Close()
	if err := st.Ping(ctx); err != nil {
		result.Detail = err.Error()
		return result
	}
	result.Passed = true
	result.Detail = path
	return result
}
