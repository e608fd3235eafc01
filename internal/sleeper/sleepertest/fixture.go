package sleepertest

import "github.com/sam-maryland/sleeper-shoulda-coulda/internal/sleeper"

// FixtureLeagueID is the ID FixtureLeague answers to
const FixtureLeagueID = "123456789"

// FixtureLeague is a four team league two weeks into the season:
//
//	week 1: Alpha 120.5 beats Bravo 115.3, Charlie 110.0 beats Delta 105.7
//	week 2: Charlie 130.0 beats Alpha 98.0, Delta 101.0 ties Bravo 101.0 and both lose
func FixtureLeague() *League {
	return &League{
		League: sleeper.League{
			LeagueID:     FixtureLeagueID,
			Name:         "Shoulda Coulda League",
			Sport:        "nfl",
			Season:       "2024",
			TotalRosters: 4,
			Settings:     sleeper.LeagueSettings{PlayoffWeekStart: 15, NumTeams: 4},
		},
		Users: []sleeper.User{
			{UserID: "u1", DisplayName: "Alpha", Avatar: "a1"},
			{UserID: "u2", DisplayName: "Bravo", Metadata: sleeper.UserMetadata{Avatar: "https://example.com/bravo.png"}},
			{UserID: "u3", DisplayName: "Charlie"},
			{UserID: "u4", DisplayName: "Delta"},
		},
		Rosters: []sleeper.Roster{
			{RosterID: 1, OwnerID: "u1", Settings: sleeper.RosterSettings{Wins: 1, Losses: 1}},
			{RosterID: 2, OwnerID: "u2", Settings: sleeper.RosterSettings{Wins: 0, Losses: 2}},
			{RosterID: 3, OwnerID: "u3", Settings: sleeper.RosterSettings{Wins: 2, Losses: 0}},
			{RosterID: 4, OwnerID: "u4", Settings: sleeper.RosterSettings{Wins: 0, Losses: 2}},
		},
		State: sleeper.SportState{Week: 3, Season: "2024", SeasonType: "regular"},
		Matchups: map[int][]sleeper.Matchup{
			1: {
				{
					RosterID: 1, MatchupID: 1, Points: 120.5,
					Starters: []string{"qb1"}, StartersPoints: []float64{120.5},
					Players: []string{"qb1"}, PlayersPoints: map[string]float64{"qb1": 120.5},
				},
				{
					RosterID: 2, MatchupID: 1, Points: 115.3,
					Starters: []string{"qb2"}, StartersPoints: []float64{115.3},
					Players: []string{"qb2"}, PlayersPoints: map[string]float64{"qb2": 115.3},
				},
				{
					RosterID: 3, MatchupID: 2, Points: 110.0,
					Starters: []string{"qb3"}, StartersPoints: []float64{110.0},
					Players: []string{"qb3"}, PlayersPoints: map[string]float64{"qb3": 110.0},
				},
				{
					RosterID: 4, MatchupID: 2, Points: 105.7,
					Starters: []string{"qb4"}, StartersPoints: []float64{105.7},
					Players: []string{"qb4"}, PlayersPoints: map[string]float64{"qb4": 105.7},
				},
			},
			2: {
				{RosterID: 1, MatchupID: 1, Points: 98.0},
				{RosterID: 3, MatchupID: 1, Points: 130.0},
				{RosterID: 2, MatchupID: 2, Points: 101.0},
				{RosterID: 4, MatchupID: 2, Points: 101.0},
			},
		},
		Players: map[string]sleeper.Player{
			"qb1": {FirstName: "Josh", LastName: "Allen", Position: "QB", Team: "BUF"},
			"qb2": {FirstName: "Joe", LastName: "Burrow", Position: "QB", Team: "CIN"},
			"qb3": {FirstName: "Jared", LastName: "Goff", Position: "QB", Team: "DET"},
			"qb4": {FirstName: "Lamar", LastName: "Jackson", Position: "QB", Team: "BAL"},
		},
	}
}
