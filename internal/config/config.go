// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading for the concierge TUI.
//
// Configuration is TOML with sensible defaults, environment variable
// overrides, and validation. It is read once at startup; there is no
// watching or reloading.
//
// File location: ~/.concierge/config.toml, falling back to built-in
// defaults when absent.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete concierge configuration.
type Config struct {
	// Server configuration
	Server ServerConfig `toml:"server" json:"server"`

	// UI configuration
	UI UIConfig `toml:"ui" json:"ui"`

	// Voice input configuration
	Voice VoiceConfig `toml:"voice" json:"voice"`

	// Logging configuration
	Log LogConfig `toml:"log" json:"log"`
}

// ServerConfig contains backend endpoint configuration.
type ServerConfig struct {
	// BaseURL of the concierge backend
	BaseURL string `toml:"base_url" json:"base_url"`
	// WebsocketURL of the alert push channel
	WebsocketURL string `toml:"websocket_url" json:"websocket_url"`
	// ChatTimeoutSecs is the timeout for conversation requests
	ChatTimeoutSecs int `toml:"chat_timeout_secs" json:"chat_timeout_secs"`
	// UploadTimeoutSecs is the timeout for document uploads, which run
	// OCR server-side and take longer
	UploadTimeoutSecs int `toml:"upload_timeout_secs" json:"upload_timeout_secs"`
}

// UIConfig contains interface configuration.
type UIConfig struct {
	// RevealDelayMS is the per-character delay of the reply animation,
	// in milliseconds
	RevealDelayMS int `toml:"reveal_delay_ms" json:"reveal_delay_ms"`
	// ShowPanel controls whether the insights side panel starts visible
	ShowPanel bool `toml:"show_panel" json:"show_panel"`
}

// VoiceConfig contains voice input configuration.
type VoiceConfig struct {
	// Transcriber is the name of the speech-to-text binary to probe for
	// on PATH. Empty disables voice input.
	Transcriber string `toml:"transcriber" json:"transcriber"`
}

// LogConfig contains logging configuration.
type LogConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error"
	Level string `toml:"level" json:"level"`
	// Path is the log file path (empty = ~/.concierge/concierge.log).
	// Logs never go to the terminal, which the TUI owns.
	Path string `toml:"path" json:"path"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			BaseURL:           "http://127.0.0.1:8000",
			WebsocketURL:      "ws://127.0.0.1:8000/ws",
			ChatTimeoutSecs:   30,
			UploadTimeoutSecs: 60,
		},
		UI: UIConfig{
			RevealDelayMS: 15,
			ShowPanel:     true,
		},
		Voice: VoiceConfig{
			Transcriber: "concierge-transcribe",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// =============================================================================
// PATHS
// =============================================================================

// ConfigDir returns the concierge configuration directory.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".concierge"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from ~/.concierge/config.toml, falling back to
// defaults when the file is absent. Environment overrides are applied
// last, then the result is validated.
func Load() (*Config, error) {
	cfg := Default()

	path, err := ConfigPath()
	if err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("failed to decode %s: %w", path, err)
			}
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a specific TOML file.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SetDefaults fills in any zero values with defaults.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Server.BaseURL == "" {
		c.Server.BaseURL = defaults.Server.BaseURL
	}
	if c.Server.WebsocketURL == "" {
		c.Server.WebsocketURL = defaults.Server.WebsocketURL
	}
	if c.Server.ChatTimeoutSecs <= 0 {
		c.Server.ChatTimeoutSecs = defaults.Server.ChatTimeoutSecs
	}
	if c.Server.UploadTimeoutSecs <= 0 {
		c.Server.UploadTimeoutSecs = defaults.Server.UploadTimeoutSecs
	}
	if c.UI.RevealDelayMS <= 0 {
		c.UI.RevealDelayMS = defaults.UI.RevealDelayMS
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies CONCIERGE_* environment variables on top of
// the loaded configuration.
func (c *Config) ApplyEnvOverrides() {
	// CONCIERGE_SERVER_URL
	if v := os.Getenv("CONCIERGE_SERVER_URL"); v != "" {
		c.Server.BaseURL = v
	}

	// CONCIERGE_WS_URL
	if v := os.Getenv("CONCIERGE_WS_URL"); v != "" {
		c.Server.WebsocketURL = v
	}

	// CONCIERGE_TRANSCRIBER
	if v := os.Getenv("CONCIERGE_TRANSCRIBER"); v != "" {
		c.Voice.Transcriber = v
	}

	// CONCIERGE_LOG_LEVEL
	if v := os.Getenv("CONCIERGE_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}

	// CONCIERGE_REVEAL_DELAY_MS
	if v := os.Getenv("CONCIERGE_REVEAL_DELAY_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			c.UI.RevealDelayMS = ms
		}
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if _, err := url.ParseRequestURI(c.Server.BaseURL); err != nil {
		return fmt.Errorf("server.base_url %q is not a valid URL: %w", c.Server.BaseURL, err)
	}

	u, err := url.Parse(c.Server.WebsocketURL)
	if err != nil {
		return fmt.Errorf("server.websocket_url %q is not a valid URL: %w", c.Server.WebsocketURL, err)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return fmt.Errorf("server.websocket_url %q must use the ws or wss scheme", c.Server.WebsocketURL)
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q must be one of: debug, info, warn, error", c.Log.Level)
	}

	return nil
}
