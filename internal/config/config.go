package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"todomvc/internal/router"
	"todomvc/internal/storage"
	"todomvc/internal/todo"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "todos.db"
	DefaultLogName        = "todomvc.log"

	envConfigPath = "TODOMVC_CONFIG"
)

type Keymap struct {
	Quit           string `toml:"quit"`
	Up             string `toml:"up"`
	Down           string `toml:"down"`
	Toggle         string `toml:"toggle"`
	Destroy        string `toml:"destroy"`
	Edit           string `toml:"edit"`
	ToggleAll      string `toml:"toggle_all"`
	ClearCompleted string `toml:"clear_completed"`
	NewTodo        string `toml:"new_todo"`
	Submit         string `toml:"submit"`
	Cancel         string `toml:"cancel"`
	Blur           string `toml:"blur"`
	RouteAll       string `toml:"route_all"`
	RouteActive    string `toml:"route_active"`
	RouteCompleted string `toml:"route_completed"`
	PrevRoute      string `toml:"prev_route"`
	NextRoute      string `toml:"next_route"`
	Help           string `toml:"help"`
}

type Storage struct {
	Backend string `toml:"backend"`
	Path    string `toml:"path"`
}

type Logging struct {
	File  string `toml:"file"`
	Trace bool   `toml:"trace"`
}

type Config struct {
	Storage Storage `toml:"storage"`
	Route   string  `toml:"route"`
	Logging Logging `toml:"logging"`
	Keys    Keymap  `toml:"keys"`
}

// ResolveConfigPath picks the config file location: $TODOMVC_CONFIG, then
// $XDG_CONFIG_HOME/todomvc, then ~/.config/todomvc, then the working
// directory.
func ResolveConfigPath() string {
	if p := strings.TrimSpace(os.Getenv(envConfigPath)); p != "" {
		return p
	}
	return filepath.Join(configDir(), DefaultConfigFileName)
}

func configDir() string {
	if x := os.Getenv("XDG_CONFIG_HOME"); x != "" {
		return filepath.Join(x, "todomvc")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "todomvc")
	}
	return "."
}

// LoadOrCreate reads the config at path, writing the defaults there first
// if the file does not exist. Relative storage and log paths are resolved
// against the config directory.
func LoadOrCreate(path string) (Config, error) {
	cfg := Default(filepath.Dir(path))
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.resolve(filepath.Dir(path))
	return cfg, nil
}

func (c *Config) resolve(dir string) {
	if c.Storage.Backend == "" {
		c.Storage.Backend = storage.KindSQLite
	}
	if c.Storage.Path == "" {
		c.Storage.Path = DefaultDBName
	}
	if !filepath.IsAbs(c.Storage.Path) && !strings.HasPrefix(c.Storage.Path, "file:") {
		c.Storage.Path = filepath.Join(dir, c.Storage.Path)
	}
	if c.Logging.File != "" && !filepath.IsAbs(c.Logging.File) {
		c.Logging.File = filepath.Join(dir, c.Logging.File)
	}
	if c.Route == "" {
		c.Route = router.Hash(string(todo.FilterAll))
	}
}

// Validate reports settings the application cannot run with.
func Validate(c Config) error {
	known := false
	for _, k := range storage.Kinds() {
		if c.Storage.Backend == k {
			known = true
		}
	}
	if !known {
		return fmt.Errorf("storage.backend must be one of %s (got %q)", strings.Join(storage.Kinds(), ", "), c.Storage.Backend)
	}
	if _, ok := todo.ParseFilter(router.Parse(c.Route)); !ok {
		return fmt.Errorf("route %q does not name a filter", c.Route)
	}
	if err := c.Keys.validate(); err != nil {
		return err
	}
	return nil
}

func (k Keymap) validate() error {
	fields := map[string]string{
		"quit": k.Quit, "up": k.Up, "down": k.Down, "toggle": k.Toggle,
		"destroy": k.Destroy, "edit": k.Edit, "toggle_all": k.ToggleAll,
		"clear_completed": k.ClearCompleted, "new_todo": k.NewTodo,
		"submit": k.Submit, "cancel": k.Cancel, "blur": k.Blur,
		"route_all": k.RouteAll, "route_active": k.RouteActive,
		"route_completed": k.RouteCompleted, "prev_route": k.PrevRoute,
		"next_route": k.NextRoute, "help": k.Help,
	}
	for name, v := range fields {
		if v == "" {
			return fmt.Errorf("keys.%s is empty", name)
		}
	}
	return nil
}

func write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	out := cfg
	// keep the written file relocatable
	if rel, err := filepath.Rel(filepath.Dir(path), out.Storage.Path); err == nil && !strings.HasPrefix(rel, "..") {
		out.Storage.Path = rel
	}
	if rel, err := filepath.Rel(filepath.Dir(path), out.Logging.File); err == nil && !strings.HasPrefix(rel, "..") {
		out.Logging.File = rel
	}
	data, err := toml.Marshal(out)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Default returns the built-in configuration with files placed in dir.
func Default(dir string) Config {
	return Config{
		Storage: Storage{
			Backend: storage.KindSQLite,
			Path:    filepath.Join(dir, DefaultDBName),
		},
		Route: router.Hash(string(todo.FilterAll)),
		Logging: Logging{
			File: filepath.Join(dir, DefaultLogName),
		},
		Keys: Keymap{
			Quit:           "q",
			Up:             "k",
			Down:           "j",
			Toggle:         " ",
			Destroy:        "d",
			Edit:           "e",
			ToggleAll:      "a",
			ClearCompleted: "c",
			NewTodo:        "n",
			Submit:         "enter",
			Cancel:         "esc",
			Blur:           "tab",
			RouteAll:       "1",
			RouteActive:    "2",
			RouteCompleted: "3",
			PrevRoute:      "h",
			NextRoute:      "l",
			Help:           "?",
		},
	}
}
