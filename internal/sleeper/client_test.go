package sleeper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger, _ := test.NewNullLogger()
	return NewHTTPClient(logger, WithBaseURL(server.URL))
}

func TestHTTPClient_GetLeague(t *testing.T) {
	tests := []struct {
		name           string
		leagueID       string
		serverResponse string
		serverStatus   int
		wantError      bool
		wantNotFound   bool
		wantLeague     *League
	}{
		{
			name:         "successful request",
			leagueID:     "123456789",
			serverStatus: http.StatusOK,
			serverResponse: `{
				"league_id": "123456789",
				"name": "Test League",
				"status": "in_season",
				"sport": "nfl",
				"season": "2024",
				"total_rosters": 12,
				"settings": {"playoff_week_start": 15, "league_average_match": 1},
				"scoring_settings": {},
				"roster_positions": ["QB", "RB", "WR", "TE", "FLEX", "K", "DEF"]
			}`,
			wantLeague: &League{
				LeagueID: "123456789",
				Name:     "Test League",
				Settings: LeagueSettings{PlayoffWeekStart: 15, LeagueAverageMatch: 1},
			},
		},
		{
			name:           "null body means unknown league",
			leagueID:       "111",
			serverStatus:   http.StatusOK,
			serverResponse: "null",
			wantError:      true,
			wantNotFound:   true,
		},
		{
			name:           "league not found",
			leagueID:       "invalid",
			serverStatus:   http.StatusNotFound,
			serverResponse: "null",
			wantError:      true,
			wantNotFound:   true,
		},
		{
			name:           "server error",
			leagueID:       "123456789",
			serverStatus:   http.StatusInternalServerError,
			serverResponse: "Internal Server Error",
			wantError:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/league/"+tt.leagueID {
					t.Errorf("Expected path /league/%s, got %s", tt.leagueID, r.URL.Path)
				}
				w.WriteHeader(tt.serverStatus)
				w.Write([]byte(tt.serverResponse))
			})

			league, err := client.GetLeague(context.Background(), tt.leagueID)

			if tt.wantError && err == nil {
				t.Fatal("Expected error but got none")
			}
			if !tt.wantError && err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			if tt.wantError {
				var sleeperErr *SleeperError
				if !errors.As(err, &sleeperErr) {
					t.Fatalf("Expected a SleeperError, got %T", err)
				}
				if sleeperErr.IsNotFound() != tt.wantNotFound {
					t.Errorf("Expected not found %v, got status %d", tt.wantNotFound, sleeperErr.StatusCode)
				}
				if league != nil {
					t.Error("Expected nil league but got result")
				}
				return
			}

			if league.LeagueID != tt.wantLeague.LeagueID {
				t.Errorf("Expected league ID %s, got %s", tt.wantLeague.LeagueID, league.LeagueID)
			}
			if league.Name != tt.wantLeague.Name {
				t.Errorf("Expected league name %s, got %s", tt.wantLeague.Name, league.Name)
			}
			if league.Settings != tt.wantLeague.Settings {
				t.Errorf("Expected settings %+v, got %+v", tt.wantLeague.Settings, league.Settings)
			}
			if !league.Settings.HasLeagueAverageMatch() {
				t.Error("Expected league average match to be enabled")
			}
		})
	}
}

func TestHTTPClient_GetMatchups(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/league/42/matchups/3" {
			t.Errorf("Expected path /league/42/matchups/3, got %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`[
			{"roster_id": 1, "matchup_id": 1, "points": 120.5, "starters": ["4046", "PHI"],
			 "starters_points": [20.1, 8.0], "players": ["4046", "PHI", "6794"],
			 "players_points": {"4046": 20.1, "PHI": 8.0, "6794": 3.2}, "custom_points": null},
			{"roster_id": 2, "matchup_id": 1, "points": 99.0, "custom_points": 101.5}
		]`))
	})

	matchups, err := client.GetMatchups(context.Background(), "42", 3)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(matchups) != 2 {
		t.Fatalf("Expected 2 matchups, got %d", len(matchups))
	}

	first := matchups[0]
	if first.CustomPoints != nil {
		t.Errorf("Expected nil custom points, got %v", *first.CustomPoints)
	}
	if first.PlayersPoints["6794"] != 3.2 {
		t.Errorf("Expected bench points 3.2, got %v", first.PlayersPoints["6794"])
	}
	if len(first.StartersPoints) != 2 {
		t.Errorf("Expected 2 starter points, got %d", len(first.StartersPoints))
	}

	second := matchups[1]
	if second.CustomPoints == nil || *second.CustomPoints != 101.5 {
		t.Errorf("Expected custom points 101.5, got %v", second.CustomPoints)
	}
}

func TestHTTPClient_GetSportState(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/state/nfl" {
			t.Errorf("Expected path /state/nfl, got %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"week": 9, "display_week": 9, "season": "2024", "season_type": "regular"}`))
	})

	state, err := client.GetSportState(context.Background(), DefaultSport)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if state.Week != 9 {
		t.Errorf("Expected week 9, got %d", state.Week)
	}
	if state.SeasonType != "regular" {
		t.Errorf("Expected regular season, got %s", state.SeasonType)
	}
}

func TestHTTPClient_GetAllPlayers(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/players/nfl" {
			t.Errorf("Expected path /players/nfl, got %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{
			"4046": {"player_id": "4046", "first_name": "Patrick", "last_name": "Mahomes", "position": "QB", "team": "KC"},
			"PHI": {"player_id": "PHI", "position": "DEF", "team": "PHI"}
		}`))
	})

	players, err := client.GetAllPlayers(context.Background(), DefaultSport)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(players) != 2 {
		t.Fatalf("Expected 2 players, got %d", len(players))
	}
	if players["4046"].LastName != "Mahomes" {
		t.Errorf("Expected Mahomes, got %s", players["4046"].LastName)
	}
}

func TestHTTPClient_RespectsContext(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`[]`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := client.GetLeagueUsers(ctx, "42"); err == nil {
		t.Error("Expected error for cancelled context")
	}
}

func TestHTTPClient_MalformedBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{not json`))
	})

	if _, err := client.GetLeagueRosters(context.Background(), "42"); err == nil {
		t.Error("Expected error for malformed body")
	}
}

func TestSleeperError_Error(t *testing.T) {
	err := &SleeperError{
		Type:    "api_error",
		Message: "League not found",
	}

	expected := "League not found"
	if err.Error() != expected {
		t.Errorf("Expected error message %s, got %s", expected, err.Error())
	}
}

func TestNewHTTPClient(t *testing.T) {
	logger := logrus.New()
	client := NewHTTPClient(logger, WithBaseURL("http://localhost:1"), WithTimeout(3*time.Second))

	if client.baseURL != "http://localhost:1" {
		t.Errorf("Expected overridden base URL, got %s", client.baseURL)
	}
	if client.httpClient.Timeout != 3*time.Second {
		t.Errorf("Expected 3s timeout, got %s", client.httpClient.Timeout)
	}

	defaults := NewHTTPClient(logger, WithBaseURL(""), WithTimeout(0))
	if defaults.baseURL != BaseURL || defaults.httpClient.Timeout != DefaultTimeout {
		t.Error("Expected empty options to keep defaults")
	}

	// Ensure it implements the Client interface
	var _ Client = client
}
