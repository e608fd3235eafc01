package config

import (
	"os"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
)

// LeagueSettings represents the configuration for a specific league
type LeagueSettings struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Lineup      *LineupSettings `json:"lineup,omitempty"`
}

// LineupSettings describes the starting lineup the optimal lineup is built against
type LineupSettings struct {
	Slots         map[string]int `json:"slots"`
	Flex          int            `json:"flex"`
	FlexPositions []string       `json:"flex_positions"`
}

// LeagueConfig represents the entire league configuration file
type LeagueConfig struct {
	Instructions    string                    `json:"_instructions,omitempty"`
	Leagues         map[string]LeagueSettings `json:"leagues"`
	DefaultSettings LeagueSettings            `json:"default_settings"`
}

var settingsPaths = []string{
	"configs/league_settings.json",
	"../configs/league_settings.json",
	"../../configs/league_settings.json",
}

// DefaultLeagueConfig is used when no settings file exists
func DefaultLeagueConfig() *LeagueConfig {
	return &LeagueConfig{
		Leagues: make(map[string]LeagueSettings),
		DefaultSettings: LeagueSettings{
			Name:        "Default League",
			Description: "Standard Sleeper starting lineup",
		},
	}
}

// LoadLeagueSettings loads league configuration from path, or from the first settings file found
// relative to the working directory when path is empty
func LoadLeagueSettings(path string) (*LeagueConfig, error) {
	candidates := settingsPaths
	if path != "" {
		candidates = []string{path}
	}

	var configData []byte
	var foundPath string

	for _, p := range candidates {
		data, err := os.ReadFile(p)
		if err == nil {
			configData = data
			foundPath = p
			break
		}
		if path != "" {
			return nil, errors.Wrapf(err, "failed to read league settings from %s", path)
		}
	}

	if foundPath == "" {
		return DefaultLeagueConfig(), nil
	}

	var config LeagueConfig
	if err := sonic.Unmarshal(configData, &config); err != nil {
		return nil, errors.Wrapf(err, "failed to parse league settings from %s", foundPath)
	}
	if config.Leagues == nil {
		config.Leagues = make(map[string]LeagueSettings)
	}

	for id, settings := range config.Leagues {
		if err := settings.Lineup.validate(); err != nil {
			return nil, errors.Wrapf(err, "league %s", id)
		}
	}
	if err := config.DefaultSettings.Lineup.validate(); err != nil {
		return nil, errors.Wrap(err, "default settings")
	}

	return &config, nil
}

// GetLeagueSettings returns settings for a specific league ID
func (c *LeagueConfig) GetLeagueSettings(leagueID string) LeagueSettings {
	if settings, exists := c.Leagues[leagueID]; exists {
		return settings
	}

	// Return default settings if league not found
	return c.DefaultSettings
}

// GetLineup returns the lineup override for a league, nil when the standard lineup applies
func (c *LeagueConfig) GetLineup(leagueID string) *LineupSettings {
	if settings, exists := c.Leagues[leagueID]; exists && settings.Lineup != nil {
		return settings.Lineup
	}
	return c.DefaultSettings.Lineup
}

func (l *LineupSettings) validate() error {
	if l == nil {
		return nil
	}
	for pos, n := range l.Slots {
		if n < 0 {
			return errors.Newf("slot %s has negative count %d", pos, n)
		}
	}
	if l.Flex < 0 {
		return errors.Newf("flex has negative count %d", l.Flex)
	}
	if l.Flex > 0 && len(l.FlexPositions) == 0 {
		return errors.New("flex slots need at least one eligible position")
	}
	return nil
}
