// Package config handles the XDG configuration directory, the optional
// config.toml file, and the paths derived from them.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	// AppName is the application directory name.
	AppName = "todo"

	// ConfigFile is the optional TOML settings filename.
	ConfigFile = "config.toml"

	// StoreFile is the default file backend filename.
	StoreFile = "store.json"

	// OAuthClientFile is the OAuth client credentials filename used by import.
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored OAuth token filename.
	TokenFile = "token.json"

	// DSNEnv overrides storage.dsn for the mysql backend.
	DSNEnv = "TODO_MYSQL_DSN"
)

// Storage backend names.
const (
	BackendFile   = "file"
	BackendMySQL  = "mysql"
	BackendMemory = "memory"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// Settings holds the values read from config.toml.
	Settings Settings

	// Logger receives debug diagnostics. Never nil after New.
	Logger *slog.Logger
}

// Settings is the config.toml schema.
type Settings struct {
	Storage   StorageSettings   `toml:"storage"`
	Theme     ThemeSettings     `toml:"theme"`
	Telemetry TelemetrySettings `toml:"telemetry"`
}

// StorageSettings selects and configures the key-value backend.
type StorageSettings struct {
	// Backend is "file" (default), "mysql" or "memory".
	Backend string `toml:"backend,omitempty"`
	// Path is the file backend location. Defaults to <dir>/store.json.
	Path string `toml:"path,omitempty"`
	// DSN is the mysql backend data source name.
	DSN string `toml:"dsn,omitempty"`
}

// ThemeSettings overrides terminal background detection.
type ThemeSettings struct {
	// PrefersDark is "" (detect), "true" or "false".
	PrefersDark string `toml:"prefers_dark,omitempty"`
}

// TelemetrySettings configures OTLP export.
type TelemetrySettings struct {
	// Endpoint is the OTLP/HTTP endpoint URL. Empty disables export.
	Endpoint string `toml:"endpoint,omitempty"`
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/todo or $HOME/.config/todo.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{Dir: dir, Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// Load reads config.toml from the config directory into Settings. A missing
// file leaves the defaults in place.
func (c *Config) Load() error {
	data, err := os.ReadFile(c.ConfigPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return c.Settings.validate()
		}
		return fmt.Errorf("reading %s: %w", ConfigFile, err)
	}
	if _, err := toml.Decode(string(data), &c.Settings); err != nil {
		return fmt.Errorf("parsing %s: %w", ConfigFile, err)
	}
	return c.Settings.validate()
}

func (s *Settings) validate() error {
	switch s.Storage.Backend {
	case "", BackendFile, BackendMySQL, BackendMemory:
	default:
		return fmt.Errorf("invalid storage backend: %s", s.Storage.Backend)
	}
	switch strings.ToLower(s.Theme.PrefersDark) {
	case "", "true", "false":
	default:
		return fmt.Errorf("invalid theme.prefers_dark: %s", s.Theme.PrefersDark)
	}
	return nil
}

// SetDebugOutput routes debug logs to w when Debug is set.
func (c *Config) SetDebugOutput(w io.Writer) {
	if !c.Debug {
		return
	}
	c.Logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// Backend returns the configured storage backend name.
func (c *Config) Backend() string {
	if c.Settings.Storage.Backend == "" {
		return BackendFile
	}
	return c.Settings.Storage.Backend
}

// StorePath returns the file backend location.
func (c *Config) StorePath() string {
	if c.Settings.Storage.Path != "" {
		return c.Settings.Storage.Path
	}
	return filepath.Join(c.Dir, StoreFile)
}

// DSN returns the mysql data source name, preferring the environment.
func (c *Config) DSN() string {
	if dsn := os.Getenv(DSNEnv); dsn != "" {
		return dsn
	}
	return c.Settings.Storage.DSN
}

// PrefersDarkOverride reports a configured theme.prefers_dark value. ok is
// false when detection should be used.
func (c *Config) PrefersDarkOverride() (value, ok bool) {
	switch strings.ToLower(c.Settings.Theme.PrefersDark) {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

// ConfigPath returns the path to config.toml.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	return filepath.Join(c.Dir, OAuthClientFile)
}

// TokenPath returns the path to the stored OAuth token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasOAuthClient checks if the OAuth client credentials file exists.
func (c *Config) HasOAuthClient() bool {
	_, err := os.Stat(c.OAuthClientPath())
	return err == nil
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}

// Marshal renders settings as TOML, for `todo config`-style inspection and
// tests.
func (s Settings) Marshal() (string, error) {
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(s); err != nil {
		return "", err
	}
	return b.String(), nil
}
