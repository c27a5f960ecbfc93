package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"

	"shelfwise/internal/api"
	"shelfwise/internal/config"
	"shelfwise/internal/domain"
	"shelfwise/internal/eventbus"
	"shelfwise/internal/logging"
	"shelfwise/internal/prefs"
	"shelfwise/internal/search"
	"shelfwise/internal/ui"
)

func main() {
	if err := newApp(run).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp(action cli.ActionFunc) *cli.Command {
	return &cli.Command{
		Name:  "shelfwise",
		Usage: "Search the library catalogue, members and loans from the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "Configuration file path",
				Value: filepath.Join(config.DefaultDir(), config.FileName),
			},
			&cli.StringFlag{
				Name:  "api",
				Usage: "Library API base URL",
			},
			&cli.StringFlag{
				Name:  "resource",
				Usage: "Collection to open: books, users or transactions",
			},
			&cli.StringFlag{
				Name:  "query",
				Usage: "Initial search query",
			},
			&cli.DurationFlag{
				Name:  "debounce",
				Usage: "Quiet period after typing before searching",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
				Value: false,
			},
		},
		Action: action,
	}
}

func run(ctx context.Context, c *cli.Command) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, configPath, err := loadConfig(c)
	if err != nil {
		return err
	}
	configDir := filepath.Dir(configPath)

	logger, closeLog, err := logging.New(logging.Options{
		Level: cfg.Log.Level,
		File:  config.ResolvePath(configDir, cfg.Log.File),
	})
	if err != nil {
		return err
	}
	defer closeLog()
	logger.WithField("config", configPath).Info("starting shelfwise")

	bus := eventbus.New(logger)
	defer bus.Close()
	bus.Subscribe(eventbus.EventPreferencesChanged, func(e eventbus.DomainEvent) {
		logger.WithField("event", e.Type()).Debug("preferences changed")
	})

	client, err := api.NewClient(api.Options{
		BaseURL:  cfg.API.BaseURL,
		Timeout:  cfg.API.Timeout.Duration,
		PageSize: cfg.API.PageSize,
		Logger:   logger,
		Cooldown: cfg.API.BreakerCooldown.Duration,
	})
	if err != nil {
		return err
	}

	prefsPath := config.ResolvePath(configDir, cfg.UI.PreferencesFile)
	store := prefs.NewStore(bus)
	if err := store.Load(prefsPath); err != nil {
		logger.WithError(err).Warn("ignoring unreadable preferences")
	}
	store.Open()

	factory := ui.NewAPISearchFactory(client,
		search.Options{
			Debounce:     cfg.Search.Debounce.Duration,
			InitialQuery: cfg.Search.InitialQuery,
			WindowSize:   cfg.Search.WindowSize,
			ClearOnEmpty: cfg.Search.ClearOnEmpty,
		},
		search.WithLogger(logger),
		search.WithEventBus(bus),
		search.WithContext(ctx),
	)

	model, err := ui.NewModel(factory, ui.Options{
		Resource:   domain.Resource(cfg.Search.Resource),
		WindowSize: cfg.Search.WindowSize,
		Prefs:      store,
		Logger:     logger,
	})
	if err != nil {
		return err
	}
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	model.SetProgram(p)
	stopForwarding := ui.ForwardEvents(bus, p)
	defer stopForwarding()

	logger.Debug("starting UI")
	_, runErr := p.Run()
	if errors.Is(runErr, tea.ErrProgramKilled) && ctx.Err() != nil {
		runErr = nil
	}

	if err := store.Save(prefsPath); err != nil {
		logger.WithError(err).Error("failed to save preferences")
	}
	if runErr != nil {
		logger.WithError(runErr).Error("UI exited with error")
		return fmt.Errorf("error running program: %w", runErr)
	}
	logger.Info("UI exited normally")
	return nil
}

// loadConfig reads the config file named by --config, writing the defaults
// there on first run, then applies command line overrides
func loadConfig(c *cli.Command) (*config.Config, string, error) {
	path := c.String("config")
	svc := config.NewConfigServiceForPath(path)

	_, statErr := os.Stat(path)
	cfg, err := svc.Load()
	if err != nil {
		return nil, "", err
	}
	if errors.Is(statErr, os.ErrNotExist) {
		if err := svc.Save(cfg); err != nil {
			logrus.WithError(err).Warn("could not write default config")
		}
	}

	applyFlags(cfg, c)
	if err := cfg.Validate(); err != nil {
		return nil, "", fmt.Errorf("invalid options: %w", err)
	}
	return cfg, path, nil
}

// applyFlags overrides config values with flags given on the command line
func applyFlags(cfg *config.Config, c *cli.Command) {
	if c.IsSet("api") {
		cfg.API.BaseURL = c.String("api")
	}
	if c.IsSet("resource") {
		cfg.Search.Resource = c.String("resource")
	}
	if c.IsSet("query") {
		cfg.Search.InitialQuery = c.String("query")
	}
	if c.IsSet("debounce") {
		cfg.Search.Debounce = config.Duration{Duration: c.Duration("debounce")}
	}
	if c.Bool("debug") {
		cfg.Log.Level = logrus.DebugLevel.String()
	}
}
