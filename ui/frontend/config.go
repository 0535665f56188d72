package frontend

import "time"

// Logger interface for structured logging.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Config holds frontend router configuration.
type Config struct {
	// BasePath is the URL prefix where the UI is mounted.
	// All navigation links will be prefixed with this path.
	BasePath string

	// GrafanaURL is the Grafana origin embedded by the dashboard tab and
	// the /d/{uid}/{slug} deep links.
	GrafanaURL string

	// GrafanaDashboardUID and GrafanaDashboardSlug identify the overview
	// dashboard embedded in the dashboard tab.
	GrafanaDashboardUID  string
	GrafanaDashboardSlug string

	// ReadOnly disables write operations (sending chat messages).
	ReadOnly bool

	// PageSize for pagination.
	PageSize int

	// RefreshInterval for auto-refreshing views.
	RefreshInterval time.Duration

	// Logger for structured logging.
	Logger Logger
}
