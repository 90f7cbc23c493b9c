// Package config loads presentation and diagnostics settings.
//
// Sources, lowest to highest priority:
//  1. Defaults
//  2. User config file ($XDG_CONFIG_HOME/tada/config.toml or OS equivalent)
//  3. Project config file (tada.toml in the working directory)
//  4. File named by --config
//  5. Environment variables (TADA_*)
//  6. CLI flags
//
// Nothing here seeds the todo list: the store always starts empty.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	DefaultTheme       = "classic"
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
	DefaultPlaceholder = "Enter new todo"
	DefaultCharLimit   = 200

	ProjectConfigFile = "tada.toml"
	appDir            = "tada"
	userConfigFile    = "config.toml"
)

// Config holds every tunable setting.
type Config struct {
	Theme       string `toml:"theme"`
	LogLevel    string `toml:"log_level"`
	LogFile     string `toml:"log_file"`
	LogFormat   string `toml:"log_format"`
	Placeholder string `toml:"placeholder"`
	CharLimit   int    `toml:"char_limit"`
	Group       bool   `toml:"group"`
}

// Defaults returns a Config with every field set to its default.
func Defaults() *Config {
	return &Config{
		Theme:       DefaultTheme,
		LogLevel:    DefaultLogLevel,
		LogFormat:   DefaultLogFormat,
		Placeholder: DefaultPlaceholder,
		CharLimit:   DefaultCharLimit,
	}
}

// userConfigDir is swapped in tests.
var userConfigDir = os.UserConfigDir

// Load builds the configuration and returns the arguments left after flag
// parsing.
func Load(fset *flag.FlagSet, args []string) (*Config, []string, error) {
	if fset == nil {
		fset = flag.NewFlagSet("todo", flag.ContinueOnError)
	}
	cfg := Defaults()

	var fl Config
	var explicit string
	fset.StringVar(&explicit, "config", "", "path to a TOML config file")
	fset.StringVar(&fl.Theme, "theme", "", "color theme: classic, neon, mono")
	fset.StringVar(&fl.LogLevel, "log-level", "", "log level: debug, info, warn, error")
	fset.StringVar(&fl.LogFile, "log-file", "", "write logs to this file")
	fset.StringVar(&fl.LogFormat, "log-format", "", "log format: text, json, logfmt")
	fset.BoolVar(&fl.Group, "group", false, "group listings by pending/done")
	if err := fset.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("parsing flags: %w", err)
	}

	if dir, err := userConfigDir(); err == nil {
		if err := loadIfExists(cfg, filepath.Join(dir, appDir, userConfigFile)); err != nil {
			return nil, nil, err
		}
	}
	if err := loadIfExists(cfg, ProjectConfigFile); err != nil {
		return nil, nil, err
	}
	if explicit != "" {
		if err := loadFile(cfg, explicit); err != nil {
			return nil, nil, err
		}
	}

	if err := loadFromEnv(cfg); err != nil {
		return nil, nil, err
	}

	fset.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "theme":
			cfg.Theme = fl.Theme
		case "log-level":
			cfg.LogLevel = fl.LogLevel
		case "log-file":
			cfg.LogFile = fl.LogFile
		case "log-format":
			cfg.LogFormat = fl.LogFormat
		case "group":
			cfg.Group = fl.Group
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	return cfg, fset.Args(), nil
}

func loadIfExists(cfg *Config, path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat config %s: %w", path, err)
	}
	return loadFile(cfg, path)
}

func loadFile(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("loading config file %s: %w", path, err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		keys := make([]string, 0, len(undec))
		for _, k := range undec {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("config file %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

func loadFromEnv(cfg *Config) error {
	if v := os.Getenv("TADA_THEME"); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv("TADA_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TADA_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("TADA_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("TADA_CHAR_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("TADA_CHAR_LIMIT: %w", err)
		}
		cfg.CharLimit = n
	}
	return nil
}

// Validate normalizes names and rejects values nothing downstream can use.
func (c *Config) Validate() error {
	c.Theme = strings.ToLower(strings.TrimSpace(c.Theme))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))

	switch c.Theme {
	case "classic", "neon", "mono":
	default:
		return fmt.Errorf("unknown theme %q (want classic, neon or mono)", c.Theme)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error", "fatal":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "text", "json", "logfmt":
	default:
		return fmt.Errorf("unknown log format %q (want text, json or logfmt)", c.LogFormat)
	}
	if c.CharLimit <= 0 {
		return fmt.Errorf("char_limit must be positive, got %d", c.CharLimit)
	}
	if c.Placeholder == "" {
		c.Placeholder = DefaultPlaceholder
	}
	return nil
}

// Example is a commented config file with every key at its default.
const Example = `# tada config
theme = "classic"        # classic, neon, mono
log_level = "info"       # debug, info, warn, error
log_file = ""            # empty discards logs
log_format = "text"      # text, json, logfmt
placeholder = "Enter new todo"
char_limit = 200
group = false
`
