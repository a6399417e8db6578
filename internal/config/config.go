package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const DefaultBaseURL = "http://localhost:5000/api"

type Configuration struct {
	// BaseURL is the root of the platform's REST API, including the /api
	// prefix. All request paths are joined onto it.
	BaseURL string `mapstructure:"base_url"`
	// Timeout bounds every request made by the content client. There is no
	// retry; a timed-out request is a failed request.
	Timeout time.Duration `mapstructure:"timeout"`
	// CachePath is the sqlite file holding articles kept for offline
	// reading. Empty disables the cache.
	CachePath string `mapstructure:"cache_path"`
	// MigrationsDir is the folder with the cache schema migrations.
	MigrationsDir string `mapstructure:"migrations_dir"`
	// PreviewAddr is the listen address of the local HTML preview server.
	PreviewAddr string `mapstructure:"preview_addr"`
	// Debug, if true, lowers the log level and logs every request made.
	Debug bool `mapstructure:"debug"`

	url *url.URL
}

// URL returns the parsed base URL. Only valid after Load.
func (c *Configuration) URL() *url.URL {
	return c.url
}

// Load reads blogctl.yaml from the working directory or ~/.config/blogctl,
// applies BLOGCTL_* environment overrides, and validates the result. A
// missing config file is fine; the defaults point at a local platform.
func Load() (Configuration, error) {
	v := viper.New()
	v.SetConfigName("blogctl")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/blogctl")
	v.SetEnvPrefix("BLOGCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("base_url", DefaultBaseURL)
	v.SetDefault("timeout", 15*time.Second)
	v.SetDefault("cache_path", "")
	v.SetDefault("migrations_dir", "migrations")
	v.SetDefault("preview_addr", "127.0.0.1:8741")
	v.SetDefault("debug", false)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Configuration{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Configuration
	if err := v.Unmarshal(&cfg); err != nil {
		return Configuration{}, fmt.Errorf("unmarshaling config: %w", err)
	}

	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return Configuration{}, fmt.Errorf("invalid base_url %q: %w", cfg.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Configuration{}, fmt.Errorf("base_url %q: scheme must be http or https", cfg.BaseURL)
	}
	cfg.url = u

	if cfg.Timeout <= 0 {
		return Configuration{}, fmt.Errorf("timeout must be positive, got %s", cfg.Timeout)
	}

	return cfg, nil
}
