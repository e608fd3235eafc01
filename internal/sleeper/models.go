package sleeper

import "time"

// League represents a Sleeper fantasy league
type League struct {
	LeagueID        string             `json:"league_id"`
	Name            string             `json:"name"`
	Status          string             `json:"status"`
	Sport           string             `json:"sport"`
	Season          string             `json:"season"`
	Settings        LeagueSettings     `json:"settings"`
	ScoringSettings map[string]float64 `json:"scoring_settings"`
	RosterPositions []string           `json:"roster_positions"`
	TotalRosters    int                `json:"total_rosters"`
	Avatar          string             `json:"avatar"`
}

// LeagueSettings contains league configuration
type LeagueSettings struct {
	PlayoffTeams       int `json:"playoff_teams"`
	PlayoffWeekStart   int `json:"playoff_week_start"`
	NumTeams           int `json:"num_teams"`
	LeagueAverageMatch int `json:"league_average_match"`
	StartWeek          int `json:"start_week"`
	LastScoredLeg      int `json:"last_scored_leg"`
	Leg                int `json:"leg"`
}

// HasLeagueAverageMatch reports whether every team also plays the league median each week
func (s LeagueSettings) HasLeagueAverageMatch() bool {
	return s.LeagueAverageMatch == 1
}

// User represents a Sleeper user as listed in a league
type User struct {
	UserID      string       `json:"user_id"`
	Username    string       `json:"username"`
	DisplayName string       `json:"display_name"`
	Avatar      string       `json:"avatar"`
	Metadata    UserMetadata `json:"metadata"`
}

// UserMetadata holds the per-league customizations of a user
type UserMetadata struct {
	TeamName string `json:"team_name"`
	Avatar   string `json:"avatar"`
}

// Roster represents a team's roster
type Roster struct {
	RosterID int            `json:"roster_id"`
	OwnerID  string         `json:"owner_id"`
	Players  []string       `json:"players"`
	Starters []string       `json:"starters"`
	Reserve  []string       `json:"reserve"`
	Settings RosterSettings `json:"settings"`
}

// RosterSettings contains team performance data
type RosterSettings struct {
	Wins               int     `json:"wins"`
	Losses             int     `json:"losses"`
	Ties               int     `json:"ties"`
	FPTS               float64 `json:"fpts"`
	FPTSDecimal        float64 `json:"fpts_decimal"`
	FPTSAgainst        float64 `json:"fpts_against"`
	FPTSAgainstDecimal float64 `json:"fpts_against_decimal"`
}

// Player represents an NFL player
type Player struct {
	PlayerID         string   `json:"player_id"`
	FullName         string   `json:"full_name"`
	FirstName        string   `json:"first_name"`
	LastName         string   `json:"last_name"`
	Position         string   `json:"position"`
	Team             string   `json:"team"`
	Status           string   `json:"status"`
	InjuryStatus     string   `json:"injury_status"`
	FantasyPositions []string `json:"fantasy_positions"`
}

// Matchup represents one team's side of a weekly matchup
type Matchup struct {
	RosterID       int                `json:"roster_id"`
	MatchupID      int                `json:"matchup_id"`
	Points         float64            `json:"points"`
	Starters       []string           `json:"starters"`
	StartersPoints []float64          `json:"starters_points"`
	Players        []string           `json:"players"`
	PlayersPoints  map[string]float64 `json:"players_points"`
	// CustomPoints is the commissioner override of the team total, nil when not set
	CustomPoints *float64 `json:"custom_points"`
}

// SportState is the season state Sleeper reports for a sport
type SportState struct {
	Week           int    `json:"week"`
	DisplayWeek    int    `json:"display_week"`
	Leg            int    `json:"leg"`
	Season         string `json:"season"`
	SeasonType     string `json:"season_type"`
	LeagueSeason   string `json:"league_season"`
	PreviousSeason string `json:"previous_season"`
}

// APIResponse represents the standard response format for our tools
type APIResponse struct {
	Success  bool        `json:"success"`
	Data     interface{} `json:"data,omitempty"`
	Summary  string      `json:"summary"`
	Error    string      `json:"error,omitempty"`
	Metadata Metadata    `json:"metadata"`
}

// Metadata contains response metadata
type Metadata struct {
	Timestamp    time.Time `json:"timestamp"`
	Source       string    `json:"source"`
	CacheHit     bool      `json:"cache_hit"`
	APICallsUsed int       `json:"api_calls_used"`
	LeagueID     string    `json:"league_id,omitempty"`
}

// SleeperError represents an error from the Sleeper API
type SleeperError struct {
	Type       string `json:"type"`
	Message    string `json:"message"`
	StatusCode int    `json:"status_code,omitempty"`
	LeagueID   string `json:"league_id,omitempty"`
}

func (e *SleeperError) Error() string {
	return e.Message
}

// IsNotFound reports whether the upstream resource does not exist
func (e *SleeperError) IsNotFound() bool {
	return e.StatusCode == 404
}
