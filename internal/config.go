package internal

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// EnvPrefix prefixes every environment variable that overrides a config value.
const EnvPrefix = "FLIXSITE_"

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Analytics modes.
const (
	AnalyticsDisabled = "disabled"
	AnalyticsLog      = "log"
	AnalyticsSQLite   = "sqlite"
)

// Config represents the application configuration.
type Config struct {
	App       ApplicationConfig `yaml:"app" envPrefix:"APP_"`
	Site      SiteConfig        `yaml:"site" envPrefix:"SITE_"`
	Analytics AnalyticsConfig   `yaml:"analytics" envPrefix:"ANALYTICS_"`
	Assets    AssetsConfig      `yaml:"assets" envPrefix:"ASSETS_"`
	Auth      AuthConfig        `yaml:"auth" envPrefix:"AUTH_"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Site.Validate(); err != nil {
		return err
	}
	if err := c.Analytics.Validate(); err != nil {
		return err
	}
	return c.Auth.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level" env:"LOG_LEVEL"`
	HTTP     HTTPConfig `yaml:"http" envPrefix:"HTTP_"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port" env:"PORT"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// SiteConfig holds values shown in every page's layout.
type SiteConfig struct {
	Name    string `yaml:"name" env:"NAME"`
	BaseURL string `yaml:"base_url" env:"BASE_URL"`
}

// Validate validates the site configuration.
func (c *SiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Name, validation.Required),
		validation.Field(&c.BaseURL, validation.By(absoluteURL)),
	)
}

func absoluteURL(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New("must be an absolute URL")
	}
	return nil
}

// AnalyticsConfig selects where pageview and outbound hits go.
//
// Mode is one of:
//   - "disabled": hits are dropped.
//   - "log" (default): hits are written to the structured log.
//   - "sqlite": hits are logged and stored in SQLitePath.
type AnalyticsConfig struct {
	Mode       string `yaml:"mode" env:"MODE"`
	SQLitePath string `yaml:"sqlite_path" env:"SQLITE_PATH"`
	Buffer     int    `yaml:"buffer" env:"BUFFER"`
}

// Validate validates the analytics configuration.
func (c *AnalyticsConfig) Validate() error {
	if c.Mode == "" {
		c.Mode = AnalyticsLog
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AnalyticsDisabled, AnalyticsLog, AnalyticsSQLite)),
		validation.Field(&c.SQLitePath, validation.When(c.Mode == AnalyticsSQLite, validation.Required)),
		validation.Field(&c.Buffer, validation.Required, validation.Min(1)),
	)
}

// AssetsConfig points at an optional directory overriding the embedded
// static assets. When Watch is set, changes there reload open pages.
type AssetsConfig struct {
	Dir   string `yaml:"dir" env:"DIR"`
	Watch bool   `yaml:"watch" env:"WATCH"`
}

// LiveReload reports whether asset changes are pushed to open pages.
func (c *AssetsConfig) LiveReload() bool {
	return c.Dir != "" && c.Watch
}

// AuthConfig holds authentication configuration for the JSON API.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required, suitable for local dev.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode" env:"MODE"`
	Token string `yaml:"token" env:"TOKEN"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Site: SiteConfig{
			Name: "Flix",
		},
		Analytics: AnalyticsConfig{
			Mode:       AnalyticsLog,
			SQLitePath: "./flixsite.db",
			Buffer:     256,
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
	}
}
