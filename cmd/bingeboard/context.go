package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"bingeboard/internal/assistant"
	"bingeboard/internal/catalog"
	"bingeboard/internal/config"
	"bingeboard/internal/feedback"
	"bingeboard/internal/lists"
	"bingeboard/internal/llm"
	"bingeboard/internal/logging"
	"bingeboard/internal/notifications"
	"bingeboard/internal/profile"
	"bingeboard/internal/store"
	"bingeboard/internal/youtube"
)

type commandContext struct {
	configFlag *string
	jsonFlag   *bool

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error
}

func newCommandContext(configFlag *string, jsonFlag *bool) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		jsonFlag:   jsonFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, exists, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if exists {
			c.configPath = resolved
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) jsonOutput() bool {
	return c.jsonFlag != nil && *c.jsonFlag
}

// app holds the services a single command invocation needs. Everything is
// built against one store handle that withApp closes afterwards.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	store    *store.Store
	lists    *lists.Service
	catalog  *catalog.Service
	llm      *llm.Client
	profile  *profile.Service
	feedback *feedback.Service
	trailers *youtube.Client
}

func (a *app) commander() *assistant.Commander {
	interpreter := assistant.NewInterpreter(a.llm, a.logger)
	return assistant.NewCommander(interpreter, a.lists, a.catalog, a.logger)
}

func (a *app) curator() *assistant.Curator {
	return assistant.NewCurator(a.llm, a.logger)
}

func (c *commandContext) openApp(ctx context.Context) (*app, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	st, err := store.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	listService := lists.NewStoreService(st, logger)
	if err := listService.Migrate(ctx, st); err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("migrate lists: %w", err)
	}
	return &app{
		cfg:      cfg,
		logger:   logger,
		store:    st,
		lists:    listService,
		catalog:  catalog.NewService(cfg, logger),
		llm:      llm.NewClient(llm.FromConfig(cfg.GetLLM())),
		profile:  profile.NewService(st),
		feedback: feedback.NewService(st, logger, feedback.WithNotifier(notifications.NewService(cfg))),
		trailers: youtube.New(cfg.YouTube.APIKey, cfg.YouTube.BaseURL, logger),
	}, nil
}

// withApp opens the store and services, runs fn, and closes the store.
func (c *commandContext) withApp(cmd *cobra.Command, fn func(context.Context, *app) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := c.openApp(ctx)
	if err != nil {
		return err
	}
	defer a.store.Close()
	return fn(ctx, a)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
