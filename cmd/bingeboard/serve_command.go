package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"bingeboard/internal/api"
	"bingeboard/internal/logging"
	"bingeboard/internal/preflight"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var bind string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server in the foreground",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(cmd, func(c context.Context, a *app) error {
				if strings.TrimSpace(bind) != "" {
					a.cfg.Paths.APIBind = strings.TrimSpace(bind)
				}
				runCtx, stop := signal.NotifyContext(c, os.Interrupt, syscall.SIGTERM)
				defer stop()

				for _, r := range preflight.RunAll(runCtx, a.cfg, preflight.Options{}) {
					if r.Passed {
						continue
					}
					logging.WarnWithContext(a.logger, "preflight check failed", "preflight_failed",
						logging.String("check", r.Name),
						logging.String("detail", r.Detail),
						logging.String(logging.FieldImpact, "related features may be unavailable"),
					)
				}
				a.catalog.Init(runCtx)

				server := api.New(a.cfg, api.Services{
					Lists:     a.lists,
					Catalog:   a.catalog,
					Commander: a.commander(),
					Curator:   a.curator(),
					Trailers:  a.trailers,
					Profile:   a.profile,
					Feedback:  a.feedback,
					Store:     a.store,
				}, a.logger)

				a.logger.Info("bingeboard api starting",
					logging.String("bind", a.cfg.Paths.APIBind),
					logging.String("data_dir", a.cfg.Paths.DataDir),
					logging.Bool("auth", a.cfg.Paths.APIToken != ""),
				)
				return server.Run(runCtx)
			})
		},
	}
	cmd.Flags().StringVar(&bind, "bind", "", "Listen address (overrides paths.api_bind)")
	return cmd
}
