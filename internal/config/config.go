// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Default configuration values.
const (
	DefaultToastDuration     = 3200 * time.Millisecond
	DefaultMaxToasts         = 10
	DefaultMaxActiveProgress = 3
	DefaultTimeToComplete    = 2000 * time.Millisecond
	DefaultTickInterval      = 16 * time.Millisecond
	DefaultPageSize          = 8
	DefaultAppName           = "rhythmui"
	DefaultExpireTimeout     = 5 * time.Second
)

// Config represents the rhythmui configuration.
// Loaded from ~/.config/rhythmui/rhythmui.toml
type Config struct {
	Overlay OverlayConfig `toml:"overlay"`
	Scene   SceneConfig   `toml:"scene"`
	Desktop DesktopConfig `toml:"desktop"`
}

// OverlayConfig contains notification overlay tunables.
type OverlayConfig struct {
	ToastDuration     Duration `toml:"toast_duration" validate:"gt=0"`              // How long a toast shows before moving to the tray
	MaxToasts         int      `toml:"max_toasts" validate:"min=1,max=50"`          // Maximum simultaneous toasts
	MaxActiveProgress int      `toml:"max_active_progress" validate:"min=1,max=16"` // Maximum concurrently active tasks
	TimeToComplete    Duration `toml:"time_to_complete" validate:"gte=0"`           // Default task duration for simulated progress
}

// SceneConfig contains settings for the interactive scene.
type SceneConfig struct {
	TickInterval Duration `toml:"tick_interval" validate:"gt=0"`
	PageSize     int      `toml:"page_size" validate:"min=1,max=100"` // Tray entries per page
	ShowHelp     bool     `toml:"show_help"`
}

// DesktopConfig controls forwarding toasts to the desktop notification service.
type DesktopConfig struct {
	Forward       bool     `toml:"forward"`
	AppName       string   `toml:"app_name" validate:"required"`
	ExpireTimeout Duration `toml:"expire_timeout" validate:"gte=0"` // 0 = server default
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Overlay: OverlayConfig{
			ToastDuration:     Duration(DefaultToastDuration),
			MaxToasts:         DefaultMaxToasts,
			MaxActiveProgress: DefaultMaxActiveProgress,
			TimeToComplete:    Duration(DefaultTimeToComplete),
		},
		Scene: SceneConfig{
			TickInterval: Duration(DefaultTickInterval),
			PageSize:     DefaultPageSize,
			ShowHelp:     true,
		},
		Desktop: DesktopConfig{
			Forward:       false,
			AppName:       DefaultAppName,
			ExpireTimeout: Duration(DefaultExpireTimeout),
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "rhythmui", "rhythmui.toml")
}

// DataPath returns the path to the data directory.
// Uses XDG_DATA_HOME if set, otherwise ~/.local/share.
func DataPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "rhythmui")
}

// SettingsPath returns the path to the persisted game settings file.
func SettingsPath() string {
	return filepath.Join(DataPath(), "settings.toml")
}

// Load loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func Load(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Overlay file contents on the defaults
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write atomically via temp file
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return os.Rename(tmpPath, path)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}

	// A toast must survive at least one frame
	if c.Scene.TickInterval >= c.Overlay.ToastDuration {
		return fmt.Errorf("tick_interval (%s) must be shorter than toast_duration (%s)",
			c.Scene.TickInterval.Duration(), c.Overlay.ToastDuration.Duration())
	}

	return nil
}

// EnsureDataDir creates the data directory if it doesn't exist.
func EnsureDataDir() error {
	path := DataPath()
	if path == "" {
		return errors.New("unable to determine data directory")
	}
	return os.MkdirAll(path, 0755)
}
