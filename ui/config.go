package ui

import (
	"time"
)

// Default configuration values.
const (
	DefaultRefreshInterval = 5 * time.Second
	DefaultPageSize        = 25
)

// Config holds UI package configuration.
type Config struct {
	// BasePath is the URL prefix where the UI is mounted.
	// For example, if mounted at "/ui/", set BasePath to "/ui".
	// All navigation links will be prefixed with this path.
	// Defaults to empty string (root mount).
	BasePath string

	// GrafanaURL is the Grafana origin embedded by the dashboard tab and
	// the /d/{uid}/{slug} deep links. If empty, embeds render a notice
	// instead of an iframe.
	GrafanaURL string

	// GrafanaDashboardUID and GrafanaDashboardSlug identify the overview
	// dashboard shown on the dashboard tab. If empty, the dashboard tab
	// omits the metrics panel.
	GrafanaDashboardUID  string
	GrafanaDashboardSlug string

	// ReadOnly disables write operations (sending chat messages).
	// Useful for public demo deployments.
	ReadOnly bool

	// Logger for structured logging.
	// If nil, logging is disabled.
	Logger Logger

	// RefreshInterval for auto-refreshing views.
	// Defaults to 5 seconds.
	RefreshInterval time.Duration

	// PageSize for pagination.
	// Defaults to 25.
	PageSize int
}

// Logger interface for structured logging.
// *slog.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// DefaultConfig returns a new Config with default values.
func DefaultConfig() *Config {
	return &Config{
		RefreshInterval: DefaultRefreshInterval,
		PageSize:        DefaultPageSize,
	}
}

// applyDefaults fills in default values for zero-valued fields.
func (c *Config) applyDefaults() {
	if c.RefreshInterval == 0 {
		c.RefreshInterval = DefaultRefreshInterval
	}
	if c.PageSize == 0 {
		c.PageSize = DefaultPageSize
	}
}

// validate checks the configuration for errors.
func (c *Config) validate() error {
	if c.PageSize < 1 {
		return ErrInvalidConfig
	}
	if c.RefreshInterval < time.Second {
		return ErrInvalidConfig
	}
	return nil
}
