package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	"taskmaster/internal/todo"
)

const (
	AppName               = "taskmaster"
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "taskmaster.db"
	DefaultLogName        = "taskmaster.log"
)

type Keymap struct {
	Quit       string `toml:"quit"`
	Add        string `toml:"add"`
	Up         string `toml:"up"`
	Down       string `toml:"down"`
	Toggle     string `toml:"toggle"`
	Star       string `toml:"star"`
	Recurring  string `toml:"recurring"`
	Delete     string `toml:"delete"`
	Edit       string `toml:"edit"`
	Due        string `toml:"due"`
	Clear      string `toml:"clear"`
	NextFilter string `toml:"next_filter"`
	PrevFilter string `toml:"prev_filter"`
	DarkMode   string `toml:"dark_mode"`
	Confirm    string `toml:"confirm"`
	Cancel     string `toml:"cancel"`
}

type Config struct {
	DBPath        string `toml:"db_path"`
	DefaultFilter string `toml:"default_filter"`
	DarkMode      bool   `toml:"dark_mode"`
	LogPath       string `toml:"log_path"`
	LogLevel      string `toml:"log_level"`
	Keys          Keymap `toml:"keys"`
}

// ResolveConfigPath returns the config file under the user config dir, or
// the working directory when there is none.
func ResolveConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return DefaultConfigFileName
	}
	return filepath.Join(dir, AppName, DefaultConfigFileName)
}

// LoadOrCreate reads the config at path, writing the defaults there first if
// the file does not exist. Relative db and log paths are resolved against the
// config file's directory.
func LoadOrCreate(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg.resolve(path), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.DBPath == "" {
		cfg.DBPath = DefaultDBName
	}
	if cfg.DefaultFilter == "" {
		cfg.DefaultFilter = string(todo.FilterAll)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg.resolve(path), nil
}

func (c Config) Validate() error {
	if _, err := todo.ParseFilter(c.DefaultFilter); err != nil {
		return fmt.Errorf("default_filter: %w", err)
	}
	return nil
}

// Filter is the parsed default filter.
func (c Config) Filter() todo.Filter {
	f, err := todo.ParseFilter(c.DefaultFilter)
	if err != nil {
		return todo.FilterAll
	}
	return f
}

func (c Config) resolve(configPath string) Config {
	base := filepath.Dir(configPath)
	if c.DBPath != "" && !filepath.IsAbs(c.DBPath) {
		c.DBPath = filepath.Join(base, c.DBPath)
	}
	if c.LogPath != "" && !filepath.IsAbs(c.LogPath) {
		c.LogPath = filepath.Join(base, c.LogPath)
	}
	return c
}

func write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Default is the configuration written on first launch.
func Default() Config {
	return Config{
		DBPath:        DefaultDBName,
		DefaultFilter: string(todo.FilterAll),
		LogPath:       DefaultLogName,
		LogLevel:      "info",
		Keys: Keymap{
			Quit:       "q",
			Add:        "a",
			Up:         "k",
			Down:       "j",
			Toggle:     " ",
			Star:       "s",
			Recurring:  "r",
			Delete:     "d",
			Edit:       "e",
			Due:        "t",
			Clear:      "c",
			NextFilter: "tab",
			PrevFilter: "shift+tab",
			DarkMode:   "D",
			Confirm:    "enter",
			Cancel:     "esc",
		},
	}
}
