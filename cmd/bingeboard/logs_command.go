package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"bingeboard/internal/logs"
)

func newLogsCommand(ctx *commandContext) *cobra.Command {
	var lines int
	var follow bool
	var level string

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the BingeBoard log file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path := cfg.LogPath()
			out := cmd.OutOrStdout()
			emit := func(line string) {
				if logs.AtLeast(line, level) {
					fmt.Fprintln(out, line)
				}
			}

			recent, offset, err := logs.Last(path, lines)
			if err != nil {
				return err
			}
			for _, line := range recent {
				emit(line)
			}
			if !follow {
				if len(recent) == 0 {
					fmt.Fprintf(cmd.ErrOrStderr(), "No log entries at %s\n", path)
				}
				return nil
			}

			c := cmd.Context()
			if c == nil {
				c = context.Background()
			}
			c, stop := signal.NotifyContext(c, os.Interrupt, syscall.SIGTERM)
			defer stop()
			return logs.Follow(c, path, offset, logs.DefaultPoll, emit)
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "Number of trailing lines to show")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep printing new lines")
	cmd.Flags().StringVar(&level, "level", "", "Minimum level: debug, info, warn, error")
	return cmd
}
