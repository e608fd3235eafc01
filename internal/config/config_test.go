package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	assert.Equal(t, "info", c.Log.Level)
	assert.Equal(t, "json", c.Log.Format)
	assert.Equal(t, "https://api.sleeper.app/v1", c.Sleeper.BaseURL)
	assert.Equal(t, 10*time.Second, c.Sleeper.Timeout)
	assert.Equal(t, 4, c.Sleeper.FetchWorkers)
	assert.Equal(t, 168*time.Hour, c.Players.CacheTTL)
	assert.True(t, c.Players.RefreshEnabled)
	assert.Equal(t, uint(6), c.Players.RefreshHour)

	day, err := c.Players.Weekday()
	require.NoError(t, err)
	assert.Equal(t, time.Tuesday, day)
}

func TestNew_Overrides(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SLEEPER_TIMEOUT", "3s")
	t.Setenv("SLEEPER_FETCH_WORKERS", "8")
	t.Setenv("PLAYERS_REFRESH_DAY", "Friday")
	t.Setenv("LEAGUE_SETTINGS_PATH", "/etc/league.json")

	c, err := New()
	require.NoError(t, err)

	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, 3*time.Second, c.Sleeper.Timeout)
	assert.Equal(t, 8, c.Sleeper.FetchWorkers)
	assert.Equal(t, "/etc/league.json", c.League.SettingsPath)

	day, err := c.Players.Weekday()
	require.NoError(t, err)
	assert.Equal(t, time.Friday, day)
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "no workers", key: "SLEEPER_FETCH_WORKERS", value: "0"},
		{name: "bad duration", key: "PLAYERS_CACHE_TTL", value: "weekly"},
		{name: "hour out of range", key: "PLAYERS_REFRESH_HOUR", value: "24"},
		{name: "unknown weekday", key: "PLAYERS_REFRESH_DAY", value: "caturday"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := New()
			assert.Error(t, err)
		})
	}
}

func TestLoadLeagueSettings_FromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "league_settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"leagues": {
			"1048308908429824000": {
				"name": "Superflex League",
				"lineup": {
					"slots": {"QB": 1, "RB": 2, "WR": 3, "TE": 1, "K": 0, "DEF": 1},
					"flex": 2,
					"flex_positions": ["QB", "RB", "WR", "TE"]
				}
			}
		},
		"default_settings": {"name": "Default"}
	}`), 0o600))

	cfg, err := LoadLeagueSettings(path)
	require.NoError(t, err)

	lineup := cfg.GetLineup("1048308908429824000")
	require.NotNil(t, lineup)
	assert.Equal(t, 3, lineup.Slots["WR"])
	assert.Equal(t, 2, lineup.Flex)
	assert.Equal(t, []string{"QB", "RB", "WR", "TE"}, lineup.FlexPositions)

	assert.Nil(t, cfg.GetLineup("999"))
	assert.Equal(t, "Default", cfg.GetLeagueSettings("999").Name)
	assert.Equal(t, "Superflex League", cfg.GetLeagueSettings("1048308908429824000").Name)
}

func TestLoadLeagueSettings_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadLeagueSettings(filepath.Join(dir, "missing.json"))
	assert.Error(t, err, "an explicit path must exist")

	malformed := filepath.Join(dir, "malformed.json")
	require.NoError(t, os.WriteFile(malformed, []byte(`{"leagues": [`), 0o600))
	_, err = LoadLeagueSettings(malformed)
	assert.Error(t, err)

	noFlexPositions := filepath.Join(dir, "flex.json")
	require.NoError(t, os.WriteFile(noFlexPositions, []byte(`{"default_settings": {"lineup": {"slots": {"QB": 1}, "flex": 1}}}`), 0o600))
	_, err = LoadLeagueSettings(noFlexPositions)
	assert.Error(t, err)
}

func TestDefaultLeagueConfig(t *testing.T) {
	cfg := DefaultLeagueConfig()

	assert.Empty(t, cfg.Leagues)
	assert.Nil(t, cfg.GetLineup("anything"))
	assert.Equal(t, "Default League", cfg.GetLeagueSettings("anything").Name)
}
