package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Store drivers.
const (
	storeMemory = "memory"
	storePgx    = "pgx"
	storePq     = "postgres"
)

// serverConfig is the fully resolved configuration of the demo server.
type serverConfig struct {
	ListenAddr string
	BasePath   string

	BackendURL string
	BackendKey string

	StoreDriver string
	DatabaseURL string
	DemoSeed    bool

	GrafanaURL           string
	GrafanaDashboardUID  string
	GrafanaDashboardSlug string

	GlossaryPath string

	ReadOnly        bool
	PageSize        int
	RefreshInterval time.Duration
	LogLevel        string
}

func defaultConfig() serverConfig {
	return serverConfig{
		ListenAddr:  ":8080",
		BackendURL:  "http://localhost:8000",
		StoreDriver: storeMemory,
		DemoSeed:    true,
		PageSize:    25,
		LogLevel:    "info",
	}
}

type fileConfig struct {
	ListenAddr string `toml:"listen_addr"`
	BasePath   string `toml:"base_path"`

	BackendURL string `toml:"backend_url"`
	BackendKey string `toml:"backend_api_key"`

	StoreDriver string `toml:"store_driver"`
	DatabaseURL string `toml:"database_url"`
	DemoSeed    bool   `toml:"demo_seed"`

	GrafanaURL           string `toml:"grafana_url"`
	GrafanaDashboardUID  string `toml:"grafana_dashboard_uid"`
	GrafanaDashboardSlug string `toml:"grafana_dashboard_slug"`

	GlossaryPath string `toml:"knob_glossary"`

	ReadOnly        bool   `toml:"read_only"`
	PageSize        int    `toml:"page_size"`
	RefreshInterval string `toml:"refresh_interval"`
	LogLevel        string `toml:"log_level"`
}

// loadConfig resolves defaults, then the TOML file (when path is non-empty),
// then environment variables. Only keys actually present in the file override
// defaults.
func loadConfig(path string) (serverConfig, error) {
	cfg := defaultConfig()

	if path != "" {
		var raw fileConfig
		meta, err := toml.DecodeFile(path, &raw)
		if err != nil {
			return serverConfig{}, fmt.Errorf("load config %s: %w", path, err)
		}

		if meta.IsDefined("listen_addr") {
			cfg.ListenAddr = strings.TrimSpace(raw.ListenAddr)
		}
		if meta.IsDefined("base_path") {
			cfg.BasePath = strings.TrimRight(strings.TrimSpace(raw.BasePath), "/")
		}
		if meta.IsDefined("backend_url") {
			cfg.BackendURL = strings.TrimSpace(raw.BackendURL)
		}
		if meta.IsDefined("backend_api_key") {
			cfg.BackendKey = strings.TrimSpace(raw.BackendKey)
		}
		if meta.IsDefined("store_driver") {
			cfg.StoreDriver = strings.TrimSpace(raw.StoreDriver)
		}
		if meta.IsDefined("database_url") {
			cfg.DatabaseURL = strings.TrimSpace(raw.DatabaseURL)
		}
		if meta.IsDefined("demo_seed") {
			cfg.DemoSeed = raw.DemoSeed
		}
		if meta.IsDefined("grafana_url") {
			cfg.GrafanaURL = strings.TrimSpace(raw.GrafanaURL)
		}
		if meta.IsDefined("grafana_dashboard_uid") {
			cfg.GrafanaDashboardUID = strings.TrimSpace(raw.GrafanaDashboardUID)
		}
		if meta.IsDefined("grafana_dashboard_slug") {
			cfg.GrafanaDashboardSlug = strings.TrimSpace(raw.GrafanaDashboardSlug)
		}
		if meta.IsDefined("knob_glossary") {
			cfg.GlossaryPath = strings.TrimSpace(raw.GlossaryPath)
		}
		if meta.IsDefined("read_only") {
			cfg.ReadOnly = raw.ReadOnly
		}
		if meta.IsDefined("page_size") {
			cfg.PageSize = raw.PageSize
		}
		if meta.IsDefined("refresh_interval") {
			d, err := time.ParseDuration(strings.TrimSpace(raw.RefreshInterval))
			if err != nil {
				return serverConfig{}, fmt.Errorf("parse refresh_interval: %w", err)
			}
			cfg.RefreshInterval = d
		}
		if meta.IsDefined("log_level") {
			cfg.LogLevel = strings.ToLower(strings.TrimSpace(raw.LogLevel))
		}
	}

	applyEnv(&cfg)

	if err := cfg.validate(); err != nil {
		return serverConfig{}, err
	}
	return cfg, nil
}

// applyEnv lets deployment environments override file settings.
func applyEnv(cfg *serverConfig) {
	if v := os.Getenv("TRIBRIDRAG_API_URL"); v != "" {
		cfg.BackendURL = v
	}
	if v := os.Getenv("TRIBRIDRAG_API_KEY"); v != "" {
		cfg.BackendKey = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("TRIBRIDRAG_LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
}

func (c *serverConfig) validate() error {
	switch c.StoreDriver {
	case storeMemory:
	case storePgx, storePq:
		if c.DatabaseURL == "" {
			return fmt.Errorf("store_driver %q requires database_url", c.StoreDriver)
		}
	default:
		return fmt.Errorf("unknown store_driver %q", c.StoreDriver)
	}

	if c.ListenAddr == "" {
		return fmt.Errorf("listen_addr must not be empty")
	}
	if c.BackendURL == "" {
		return fmt.Errorf("backend_url must not be empty")
	}
	if c.PageSize < 1 {
		return fmt.Errorf("page_size must be positive")
	}
	return nil
}
