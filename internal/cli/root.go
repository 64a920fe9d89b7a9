package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"todomvc/internal/config"
	"todomvc/internal/logging"
	"todomvc/internal/logging/events"
	"todomvc/internal/router"
	"todomvc/internal/storage"
	"todomvc/internal/todo"
	"todomvc/internal/ui"
)

const closeTimeout = 2 * time.Second

type App struct {
	ConfigPath string
	Backend    string
	DB         string
	Route      string
	Trace      bool

	cfg config.Config
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "todomvc",
		Short:        "TodoMVC in the terminal",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI on the active filter
  todomvc --route '#/active'

  # Scriptable commands
  todomvc add "Buy milk" "Walk the dog"
  todomvc list --filter completed
`),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.load(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return cmd.Help()
			}
			return runTUI(app)
		},
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", "", "Path to config.toml (default: $TODOMVC_CONFIG or the XDG config dir)")
	cmd.PersistentFlags().StringVar(&app.Backend, "backend", envOr("TODOMVC_BACKEND", ""), "Storage backend ("+strings.Join(storage.Kinds(), "|")+")")
	cmd.PersistentFlags().StringVar(&app.DB, "db", "", "Path to the storage file")
	cmd.PersistentFlags().StringVar(&app.Route, "route", "", "Initial location hash, e.g. #/active")
	cmd.PersistentFlags().BoolVar(&app.Trace, "trace", false, "Write JSON trace entries to the log")

	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newToggleCmd(app))
	cmd.AddCommand(newRemoveCmd(app))
	cmd.AddCommand(newEditCmd(app))
	cmd.AddCommand(newToggleAllCmd(app))
	cmd.AddCommand(newClearCompletedCmd(app))
	cmd.AddCommand(newConfigPathCmd(app))

	return cmd
}

func (app *App) configPath() string {
	if p := strings.TrimSpace(app.ConfigPath); p != "" {
		return p
	}
	return config.ResolveConfigPath()
}

// load reads the config, applies flag overrides and sets up logging.
func (app *App) load(cmd *cobra.Command) error {
	cfg, err := config.LoadOrCreate(app.configPath())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if app.Backend != "" {
		cfg.Storage.Backend = app.Backend
	}
	if app.DB != "" {
		cfg.Storage.Path = app.DB
	}
	if app.Route != "" {
		cfg.Route = app.Route
	}
	if app.Trace {
		cfg.Logging.Trace = true
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	logging.Configure(cfg.Logging.File)
	logging.SetTraceEnabled(cfg.Logging.Trace)
	events.App.Start(map[string]any{
		"command": cmd.CommandPath(),
		"backend": cfg.Storage.Backend,
		"route":   cfg.Route,
	})
	app.cfg = cfg
	return nil
}

func (app *App) openStore() (*storage.Driver, error) {
	b, err := storage.OpenBackend(app.cfg.Storage.Backend, app.cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", app.cfg.Storage.Backend, err)
	}
	return storage.NewDriver(b), nil
}

// openStoreOrMemory keeps the TUI running on an in-memory store when the
// configured one cannot be opened. Nothing is kept across restarts then.
func (app *App) openStoreOrMemory() *storage.Driver {
	d, err := app.openStore()
	if err != nil {
		events.Storage.Failure("open", app.cfg.Storage.Path, err)
		return storage.NewDriver(storage.NewMemory())
	}
	return d
}

func closeStore(d *storage.Driver) {
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	if err := d.Close(ctx); err != nil {
		logging.Error(fmt.Errorf("close storage: %w", err))
	}
}

func runTUI(app *App) error {
	store := app.openStoreOrMemory()
	defer closeStore(store)

	loop := todo.NewLoop(todo.NewReducer(nil), todo.InitialState())
	return ui.Run(loop, store, router.New(app.cfg.Route), app.cfg)
}

func newConfigPathCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "config-path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), app.configPath())
			return nil
		},
	}
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
