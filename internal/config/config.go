package config

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/oxidane/netbar/internal/indicator"
)

type Config struct {
	AppName      string             `toml:"app_name"`
	SocketPath   string             `toml:"socket_path"`
	Bar          BarConfig          `toml:"bar"`
	Connectivity ConnectivityConfig `toml:"connectivity"`
	// Visibility is optional; when the section is absent the indicator
	// renders unconditionally on wide outputs.
	Visibility *VisibilityConfig `toml:"visibility"`
}

type BarConfig struct {
	// Height is the expanded bar height in pixels.
	Height int `toml:"height"`
	// CollapsedHeight is the collapsed strip height in pixels.
	CollapsedHeight int `toml:"collapsed_height"`
	// WideThreshold is the output width in pixels at which visibility
	// becomes conditional.
	WideThreshold int `toml:"wide_threshold"`
	// DebounceMS is the connectivity debounce window in milliseconds.
	DebounceMS int `toml:"debounce_ms"`
	// CollapseMS is the expanded-offline auto-collapse delay in milliseconds.
	CollapseMS int `toml:"collapse_ms"`

	OfflineText       string `toml:"offline_text"`
	SynchronizingText string `toml:"synchronizing_text"`
	ExplanationText   string `toml:"explanation_text"`

	Colors ColorsConfig `toml:"colors"`
}

type ColorsConfig struct {
	Offline       string `toml:"offline"`
	Synchronizing string `toml:"synchronizing"`
	Foreground    string `toml:"foreground"`
}

type ConnectivityConfig struct {
	// Command is the shell command polled for the connectivity level.
	Command string `toml:"command"`
	// Interval is the poll interval in seconds.
	Interval int `toml:"interval"`
}

type VisibilityConfig struct {
	AllowLandscape bool `toml:"allow_landscape"`
	AllowPortrait  bool `toml:"allow_portrait"`
}

var DefaultConfig = Config{
	AppName:    "netbar",
	SocketPath: "/tmp/netbar_socket",
	Bar: BarConfig{
		Height:            28,
		CollapsedHeight:   4,
		WideThreshold:     1280,
		DebounceMS:        1000,
		CollapseMS:        2000,
		OfflineText:       "No internet connection",
		SynchronizingText: "Synchronizing…",
		ExplanationText:   "The connection to the network was lost. Pending changes will be synced once the connection is restored.",
		Colors: ColorsConfig{
			Offline:       "#ff5555",
			Synchronizing: "#f1fa8c",
			Foreground:    "#0e1419",
		},
	},
	Connectivity: ConnectivityConfig{
		Command:  "nmcli networking connectivity check",
		Interval: 5,
	},
}

// LoadConfig reads a TOML config, falling back to DefaultConfig when the
// file does not exist.
func LoadConfig(path string) (*Config, error) {
	expandedPath := expandPath(path)

	if _, err := os.Stat(expandedPath); os.IsNotExist(err) {
		cfg := DefaultConfig
		return &cfg, nil
	}

	data, err := os.ReadFile(expandedPath)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.SocketPath = expandPath(cfg.SocketPath)

	return &cfg, nil
}

// SaveConfig writes the config as TOML, creating parent directories.
func SaveConfig(cfg *Config, path string) error {
	expandedPath := expandPath(path)

	dir := filepath.Dir(expandedPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(expandedPath, data, 0644)
}

func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		usr, err := user.Current()
		if err == nil {
			return filepath.Join(usr.HomeDir, path[1:])
		}
	}
	return path
}

// Validate checks the config for values the daemon cannot run with.
func (c *Config) Validate() error {
	if c.SocketPath == "" {
		return fmt.Errorf("socket_path must not be empty")
	}
	if err := c.validateBar(); err != nil {
		return err
	}
	return c.validateConnectivity()
}

func (c *Config) validateBar() error {
	if c.Bar.Height <= 0 {
		return fmt.Errorf("bar.height must be positive, got %d", c.Bar.Height)
	}
	if c.Bar.CollapsedHeight <= 0 {
		return fmt.Errorf("bar.collapsed_height must be positive, got %d", c.Bar.CollapsedHeight)
	}
	if c.Bar.CollapsedHeight >= c.Bar.Height {
		return fmt.Errorf("bar.collapsed_height (%d) must be smaller than bar.height (%d)", c.Bar.CollapsedHeight, c.Bar.Height)
	}
	if c.Bar.WideThreshold <= 0 {
		return fmt.Errorf("bar.wide_threshold must be positive, got %d", c.Bar.WideThreshold)
	}
	if c.Bar.DebounceMS <= 0 {
		return fmt.Errorf("bar.debounce_ms must be positive, got %d", c.Bar.DebounceMS)
	}
	if c.Bar.CollapseMS <= 0 {
		return fmt.Errorf("bar.collapse_ms must be positive, got %d", c.Bar.CollapseMS)
	}
	return nil
}

func (c *Config) validateConnectivity() error {
	if c.Connectivity.Command == "" {
		return fmt.Errorf("connectivity.command must not be empty")
	}
	if c.Connectivity.Interval <= 0 {
		return fmt.Errorf("connectivity.interval must be positive, got %d", c.Connectivity.Interval)
	}
	return nil
}

// ValidateConfig loads and validates a config file.
func ValidateConfig(path string) error {
	cfg, err := LoadConfig(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// DebounceDelay returns the debounce window as a duration.
func (c *Config) DebounceDelay() time.Duration {
	return time.Duration(c.Bar.DebounceMS) * time.Millisecond
}

// CollapseDelay returns the auto-collapse delay as a duration.
func (c *Config) CollapseDelay() time.Duration {
	return time.Duration(c.Bar.CollapseMS) * time.Millisecond
}

// PollInterval returns the connectivity poll interval as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Connectivity.Interval) * time.Second
}

// Preferences converts the optional visibility section into indicator
// preferences; nil when the section is absent.
func (c *Config) Preferences() *indicator.Preferences {
	if c.Visibility == nil {
		return nil
	}
	return &indicator.Preferences{
		AllowLandscape: c.Visibility.AllowLandscape,
		AllowPortrait:  c.Visibility.AllowPortrait,
	}
}
