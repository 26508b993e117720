// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/runsync/runsync/internal/errs"
)

// DBConfig holds the Postgres connection settings for the runs table.
type DBConfig struct {
	Host     string
	Name     string
	User     string
	Password string
	Port     int
}

// Config holds application configuration. It is loaded once at startup and
// passed explicitly into each pipeline.
type Config struct {
	GarminEmail    string
	GarminPassword string
	SessionPath    string
	FetchLimit     int
	StepWindowDays int
	ChartPath      string
	DB             DBConfig
}

// Load reads configuration from a local .env file (if present) and the
// process environment. Garmin credentials are required; everything else has
// a default.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, errs.Wrapf(err, "loading .env file")
	}

	v := viper.New()
	v.SetDefault("session_path", "session.json")
	v.SetDefault("fetch_limit", 100)
	v.SetDefault("step_window_days", 30)
	v.SetDefault("chart_path", "step_count_chart.svg")
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_name", "garmin_data")
	v.SetDefault("db_user", "postgres")
	v.SetDefault("db_password", "")
	v.SetDefault("db_port", 5432)

	for _, key := range []string{
		"garmin_email", "garmin_password", "session_path", "fetch_limit",
		"step_window_days", "chart_path",
		"db_host", "db_name", "db_user", "db_password", "db_port",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, errs.Wrapf(err, "binding %s", key)
		}
	}

	cfg := &Config{
		GarminEmail:    v.GetString("garmin_email"),
		GarminPassword: v.GetString("garmin_password"),
		SessionPath:    v.GetString("session_path"),
		FetchLimit:     v.GetInt("fetch_limit"),
		StepWindowDays: v.GetInt("step_window_days"),
		ChartPath:      v.GetString("chart_path"),
		DB: DBConfig{
			Host:     v.GetString("db_host"),
			Name:     v.GetString("db_name"),
			User:     v.GetString("db_user"),
			Password: v.GetString("db_password"),
			Port:     v.GetInt("db_port"),
		},
	}

	if cfg.GarminEmail == "" || cfg.GarminPassword == "" {
		return nil, errs.Wrapf(errs.ErrConfiguration,
			"GARMIN_EMAIL and GARMIN_PASSWORD environment variables are required")
	}

	// The Garmin client persists its session next to this path.
	if dir := filepath.Dir(cfg.SessionPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errs.Wrapf(err, "creating session directory")
		}
	}

	return cfg, nil
}

// DatabaseURL assembles the pgx connection string for the configured database.
func (c *Config) DatabaseURL() string {
	u := url.URL{
		Scheme:   "postgres",
		Host:     fmt.Sprintf("%s:%d", c.DB.Host, c.DB.Port),
		Path:     c.DB.Name,
		RawQuery: "sslmode=disable",
	}
	if c.DB.Password != "" {
		u.User = url.UserPassword(c.DB.User, c.DB.Password)
	} else {
		u.User = url.User(c.DB.User)
	}
	return u.String()
}
