package config

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Log     Log
	Sleeper Sleeper
	Players Players
	League  League
}

type Log struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"json"`
}

type Sleeper struct {
	BaseURL      string        `envconfig:"SLEEPER_BASE_URL" default:"https://api.sleeper.app/v1"`
	Timeout      time.Duration `envconfig:"SLEEPER_TIMEOUT" default:"10s"`
	FetchWorkers int           `envconfig:"SLEEPER_FETCH_WORKERS" default:"4"`
}

type Players struct {
	CacheTTL       time.Duration `envconfig:"PLAYERS_CACHE_TTL" default:"168h"`
	RefreshEnabled bool          `envconfig:"PLAYERS_REFRESH_ENABLED" default:"true"`
	RefreshDay     string        `envconfig:"PLAYERS_REFRESH_DAY" default:"tuesday"`
	RefreshHour    uint          `envconfig:"PLAYERS_REFRESH_HOUR" default:"6"`
}

type League struct {
	SettingsPath string `envconfig:"LEAGUE_SETTINGS_PATH"`
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func New() (*Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, errors.Wrap(err, "failed to process environment")
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) validate() error {
	if c.Sleeper.FetchWorkers < 1 {
		return errors.Newf("SLEEPER_FETCH_WORKERS must be at least 1, got %d", c.Sleeper.FetchWorkers)
	}
	if c.Players.CacheTTL <= 0 {
		return errors.Newf("PLAYERS_CACHE_TTL must be positive, got %s", c.Players.CacheTTL)
	}
	if c.Players.RefreshHour > 23 {
		return errors.Newf("PLAYERS_REFRESH_HOUR must be between 0 and 23, got %d", c.Players.RefreshHour)
	}
	if _, err := c.Players.Weekday(); err != nil {
		return err
	}
	return nil
}

// Weekday parses the configured refresh day
func (p Players) Weekday() (time.Weekday, error) {
	day, ok := weekdays[strings.ToLower(strings.TrimSpace(p.RefreshDay))]
	if !ok {
		return time.Sunday, errors.Newf("PLAYERS_REFRESH_DAY %q is not a weekday", p.RefreshDay)
	}
	return day, nil
}
