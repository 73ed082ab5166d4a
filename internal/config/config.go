// Package config loads the application configuration from a YAML file and
// CHANTERELLE_* environment variables and watches the file for edits.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/labstack/gommon/log"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-chanterelle/pkg/fileurl"
	"github.com/goliatone/go-chanterelle/pkg/session"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "CHANTERELLE_"

// Config is the application configuration.
type Config struct {
	// BackendURL is the base of the remote procedure endpoint.
	BackendURL string `yaml:"backend_url"`
	// Listen is the address the web server binds.
	Listen string `yaml:"listen"`
	// LogLevel is one of debug, info, warn, error or off.
	LogLevel string `yaml:"log_level"`
	// Theme is the persisted preference: light, dark or system.
	Theme string `yaml:"theme"`
	// FilesBase prefixes query-escaped paths in image URLs.
	FilesBase string `yaml:"files_base"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		BackendURL: "http://127.0.0.1:7878",
		Listen:     "127.0.0.1:8080",
		LogLevel:   "info",
		Theme:      string(session.PreferenceSystem),
		FilesBase:  fileurl.DefaultBase,
	}
}

// DefaultPath is $CHANTERELLE_CONFIG or config.yaml under the user config
// directory.
func DefaultPath() (string, error) {
	if p := os.Getenv(EnvPrefix + "CONFIG"); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: locate config dir: %w", err)
	}
	return filepath.Join(dir, "chanterelle", "config.yaml"), nil
}

// Load reads path over the defaults and applies environment overrides. A
// missing file is not an error.
func Load(path string) (Config, error) {
	cfg, err := readFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg = ApplyEnv(cfg, os.LookupEnv)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func readFile(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overlays CHANTERELLE_BACKEND_URL, _LISTEN, _LOG_LEVEL, _THEME and
// _FILES_BASE.
func ApplyEnv(cfg Config, lookup func(string) (string, bool)) Config {
	fields := map[string]*string{
		"BACKEND_URL": &cfg.BackendURL,
		"LISTEN":      &cfg.Listen,
		"LOG_LEVEL":   &cfg.LogLevel,
		"THEME":       &cfg.Theme,
		"FILES_BASE":  &cfg.FilesBase,
	}
	for name, target := range fields {
		if value, ok := lookup(EnvPrefix + name); ok && strings.TrimSpace(value) != "" {
			*target = strings.TrimSpace(value)
		}
	}
	return cfg
}

// Validate rejects unknown log levels and theme preferences.
func (c Config) Validate() error {
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if _, err := session.ParsePreference(c.Theme); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if strings.TrimSpace(c.BackendURL) == "" {
		return errors.New("config: backend_url is required")
	}
	return nil
}

// Level returns the gommon level for LogLevel, INFO when it is invalid.
func (c Config) Level() log.Lvl {
	lvl, err := ParseLevel(c.LogLevel)
	if err != nil {
		return log.INFO
	}
	return lvl
}

// ParseLevel maps a level name to a gommon level. Empty means info.
func ParseLevel(name string) (log.Lvl, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return log.DEBUG, nil
	case "", "info":
		return log.INFO, nil
	case "warn", "warning":
		return log.WARN, nil
	case "error":
		return log.ERROR, nil
	case "off":
		return log.OFF, nil
	default:
		return log.INFO, fmt.Errorf("config: unknown log level %q", name)
	}
}

// Save writes cfg to path, creating the directory. The file is replaced
// through a rename so watchers never see a partial write.
func Save(path string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: create dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".config-*.yaml")
	if err != nil {
		return fmt.Errorf("config: save: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("config: save: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("config: save: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("config: save: %w", err)
	}
	return nil
}

// SaveTheme persists a theme preference, keeping the rest of the file.
func SaveTheme(path string, pref session.Preference) error {
	cfg, err := readFile(path)
	if err != nil {
		return err
	}
	cfg.Theme = string(pref)
	return Save(path, cfg)
}
