package awards

import (
	"testing"
	"time"

	"github.com/sam-maryland/sleeper-shoulda-coulda/internal/fantasy"
	"github.com/sam-maryland/sleeper-shoulda-coulda/internal/players"
	"github.com/sam-maryland/sleeper-shoulda-coulda/internal/sleeper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDirectory() *players.Snapshot {
	return players.NewSnapshot(map[string]sleeper.Player{
		"1001": {FirstName: "Josh", LastName: "Allen", Position: "QB", Team: "BUF"},
		"1002": {FirstName: "Joe", LastName: "Burrow", Position: "QB", Team: "CIN"},
		"1003": {FirstName: "Jared", LastName: "Goff", Position: "QB", Team: "DET"},
		"1004": {FirstName: "Lamar", LastName: "Jackson", Position: "QB", Team: "BAL"},
		"2001": {FirstName: "Saquon", LastName: "Barkley", Position: "RB", Team: "PHI"},
		"2002": {FirstName: "Derrick", LastName: "Henry", Position: "RB", Team: "BAL"},
		"2003": {FirstName: "Zack", LastName: "Moss", Position: "RB", Team: "CIN"},
		"3001": {FirstName: "Puka", LastName: "Nacua", Position: "WR", Team: "LAR"},
		"3002": {FirstName: "Ja'Marr", LastName: "Chase", Position: "WR", Team: "CIN"},
		"4001": {FirstName: "George", LastName: "Kittle", Position: "TE", Team: "SF"},
		"5001": {FirstName: "Brandon", LastName: "Aubrey", Position: "K", Team: "DAL"},
	}, time.Now())
}

func ptr(f float64) *float64 { return &f }

// testWeek is two matchups: 1 (65) beats 2 (50) and 3 (80) edges 4 (79).
func testWeek() []TeamMatchup {
	return []TeamMatchup{
		{
			RosterID: 1, MatchupID: 1, Points: 65,
			Starters:       []string{"1001", "2001", "PHI"},
			StartersPoints: []float64{30, 25, 10},
			Players:        []string{"1001", "2001", "PHI", "1002"},
			PlayersPoints:  map[string]float64{"1001": 30, "2001": 25, "PHI": 10, "1002": 35},
		},
		{
			RosterID: 2, MatchupID: 1, Points: 50,
			Starters:       []string{"1003", "2002"},
			StartersPoints: []float64{20, 30},
			Players:        []string{"1003", "2002", "3001"},
			PlayersPoints:  map[string]float64{"1003": 20, "2002": 30, "3001": 12},
		},
		{
			RosterID: 3, MatchupID: 2, Points: 80, CustomPoints: ptr(100),
			Starters:       []string{"1004", "3002"},
			StartersPoints: []float64{40, 40},
			Players:        []string{"1004", "3002"},
			PlayersPoints:  map[string]float64{"1004": 40, "3002": 40},
		},
		{
			RosterID: 4, MatchupID: 2, Points: 79, CustomPoints: ptr(60),
			Starters:       []string{"4001", "5001"},
			StartersPoints: []float64{50, 29},
			Players:        []string{"4001", "5001", "2003"},
			PlayersPoints:  map[string]float64{"4001": 50, "5001": 29, "2003": 0},
		},
	}
}

func testManagers() Managers {
	return NewManagers([]ManagerInfo{
		{RosterID: 1, Name: "Alice"},
		{RosterID: 2, Name: "Bob"},
		{RosterID: 3, Name: "Carol"},
	})
}

func awardsByTitle(awards []Award) map[string]Award {
	out := make(map[string]Award, len(awards))
	for _, a := range awards {
		out[a.Title] = a
	}
	return out
}

func TestEngine_WeeklyAwards_Order(t *testing.T) {
	engine := NewEngine(testDirectory(), DefaultLineupSlots())

	awards, err := engine.WeeklyAwards(testWeek(), testManagers())
	require.NoError(t, err)

	titles := make([]string, 0, len(awards))
	for _, a := range awards {
		titles = append(titles, a.Title)
	}
	assert.Equal(t, []string{
		TitleMoneyShot,
		TitleTaco,
		TitleRonJeremy,
		TitleBestManager,
		TitleWorstManager,
		TitleBiggestBlowout,
		TitleNarrowVictory,
		TitleOverachiever,
		TitleBelowExpectation,
		"QB of the Week",
		"RB of the Week",
		"WR of the Week",
		"TE of the Week",
		"K of the Week",
		"DEF of the Week",
		"QB Benchwarmer of the Week",
		"WR Benchwarmer of the Week",
	}, titles)
}

func TestEngine_WeeklyAwards_Winners(t *testing.T) {
	engine := NewEngine(testDirectory(), DefaultLineupSlots())

	awards, err := engine.WeeklyAwards(testWeek(), testManagers())
	require.NoError(t, err)
	got := awardsByTitle(awards)

	tests := []struct {
		title       string
		rosterID    fantasy.RosterID
		manager     string
		value       float64
		description string
	}{
		{TitleMoneyShot, 3, "Carol", 80, "Highest scoring team for the week"},
		{TitleTaco, 2, "Bob", 50, "Lowest scoring team for the week"},
		{TitleRonJeremy, 4, UnknownManagerName, 50, "Had the highest scoring individual player this week!"},
		{TitleBestManager, 3, "Carol", 100, "Set a lineup that was 100.0% of their perfect possible lineup"},
		{TitleWorstManager, 2, "Bob", 50.0 / 62.0 * 100, "Set the worst lineup and only scored 80.6% of their perfect possible lineup"},
		{TitleBiggestBlowout, 1, "Alice", 30, "Beat Bob by a margin of 30.0%!"},
		{TitleNarrowVictory, 3, "Carol", 1.0 / 79.0 * 100, "Beat Unknown Manager by a margin of 1.3%!"},
		{TitleOverachiever, 4, UnknownManagerName, 19.0 / 60.0 * 100, "Overachieved their projection (60.00) by 31.7%!"},
		{TitleBelowExpectation, 3, "Carol", 20, "Missed their projection (100.00) by 20.0%!"},
		{"QB of the Week", 3, "Carol", 40, "Started the best QB of this week!"},
		{"RB of the Week", 2, "Bob", 30, "Started the best RB of this week!"},
		{"WR of the Week", 3, "Carol", 40, "Started the best WR of this week!"},
		{"TE of the Week", 4, UnknownManagerName, 50, "Started the best TE of this week!"},
		{"K of the Week", 4, UnknownManagerName, 29, "Started the best K of this week!"},
		{"DEF of the Week", 1, "Alice", 10, "Started the best DEF of this week!"},
		{"QB Benchwarmer of the Week", 1, "Alice", 35, "Had the best QB benchwarmer this week!"},
		{"WR Benchwarmer of the Week", 2, "Bob", 12, "Had the best WR benchwarmer this week!"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			a, ok := got[tt.title]
			require.True(t, ok)
			assert.Equal(t, tt.rosterID, a.RosterID)
			assert.Equal(t, tt.manager, a.ManagerName)
			assert.InDelta(t, tt.value, a.Value, 1e-9)
			assert.Equal(t, tt.description, a.Description)
		})
	}
}

func TestEngine_WeeklyAwards_PlayerInfo(t *testing.T) {
	engine := NewEngine(testDirectory(), DefaultLineupSlots())

	awards, err := engine.WeeklyAwards(testWeek(), testManagers())
	require.NoError(t, err)
	got := awardsByTitle(awards)

	ron := got[TitleRonJeremy]
	require.NotNil(t, ron.PlayerInfo)
	assert.Equal(t, "George Kittle", ron.PlayerInfo.Name)
	assert.Equal(t, "TE", ron.PlayerInfo.Position)
	require.NotNil(t, ron.PlayerInfo.Avatar)
	assert.Equal(t, "https://sleepercdn.com/content/nfl/players/thumb/4001.jpg", *ron.PlayerInfo.Avatar)

	def := got["DEF of the Week"]
	require.NotNil(t, def.PlayerInfo)
	assert.Equal(t, players.Info{Name: "PHI DEF", Position: "DEF", Team: "PHI"}, *def.PlayerInfo)

	blowout := got[TitleBiggestBlowout]
	assert.Equal(t, fantasy.RosterID(2), blowout.SecondaryRosterID)
	assert.Equal(t, "Bob", blowout.SecondaryManagerName)
	assert.Nil(t, blowout.PlayerInfo)
}

func TestEngine_WeeklyAwards_NoMatchups(t *testing.T) {
	engine := NewEngine(testDirectory(), DefaultLineupSlots())

	_, err := engine.WeeklyAwards(nil, testManagers())
	assert.ErrorIs(t, err, ErrNoMatchups)
}

func TestEngine_WeeklyAwards_ScoreExtremesPickFirstSeen(t *testing.T) {
	engine := NewEngine(testDirectory(), DefaultLineupSlots())

	awards, err := engine.WeeklyAwards([]TeamMatchup{
		{RosterID: 5, Points: 90},
		{RosterID: 6, Points: 90},
		{RosterID: 7, Points: 70},
		{RosterID: 8, Points: 70},
	}, testManagers())
	require.NoError(t, err)
	got := awardsByTitle(awards)

	assert.Equal(t, fantasy.RosterID(5), got[TitleMoneyShot].RosterID)
	assert.Equal(t, fantasy.RosterID(7), got[TitleTaco].RosterID)

	// Nothing rostered means an optimal score of zero for everyone.
	assert.Equal(t, 0.0, got[TitleBestManager].Value)
	assert.Equal(t, fantasy.RosterID(5), got[TitleBestManager].RosterID)
}

func TestEngine_WeeklyAwards_MarginsNeedTwoTeamGroups(t *testing.T) {
	engine := NewEngine(testDirectory(), DefaultLineupSlots())

	awards, err := engine.WeeklyAwards([]TeamMatchup{
		{RosterID: 1, MatchupID: 1, Points: 150},
		{RosterID: 2, MatchupID: 1, Points: 60},
		{RosterID: 3, MatchupID: 1, Points: 40},
		{RosterID: 4, MatchupID: 0, Points: 10},
		{RosterID: 5, MatchupID: 2, Points: 100},
		{RosterID: 6, MatchupID: 2, Points: 100},
	}, testManagers())
	require.NoError(t, err)
	got := awardsByTitle(awards)

	_, ok := got[TitleBiggestBlowout]
	assert.False(t, ok, "a three team group and a tie produce no blowout")
	_, ok = got[TitleNarrowVictory]
	assert.False(t, ok, "ties are not victories")
}

func TestEngine_WeeklyAwards_ProjectionSkippedWithoutCustomPoints(t *testing.T) {
	engine := NewEngine(testDirectory(), DefaultLineupSlots())

	awards, err := engine.WeeklyAwards([]TeamMatchup{
		{RosterID: 1, MatchupID: 1, Points: 120},
		{RosterID: 2, MatchupID: 1, Points: 0, CustomPoints: ptr(0)},
	}, testManagers())
	require.NoError(t, err)
	got := awardsByTitle(awards)

	_, ok := got[TitleOverachiever]
	assert.False(t, ok)
	_, ok = got[TitleBelowExpectation]
	assert.False(t, ok)

	blowout, ok := got[TitleBiggestBlowout]
	require.True(t, ok)
	assert.Equal(t, 100.0, blowout.Value, "a scoreless loser counts as a 100% margin")
}

func TestEngine_WeeklyAwards_ZeroPointStarters(t *testing.T) {
	engine := NewEngine(testDirectory(), DefaultLineupSlots())

	awards, err := engine.WeeklyAwards([]TeamMatchup{
		{
			RosterID: 1, MatchupID: 1,
			Starters:      []string{"1001"},
			Players:       []string{"1001", "1002"},
			PlayersPoints: map[string]float64{},
		},
	}, testManagers())
	require.NoError(t, err)
	got := awardsByTitle(awards)

	qb, ok := got["QB of the Week"]
	require.True(t, ok, "the first starter at a position holds the award even without points")
	assert.Equal(t, 0.0, qb.Value)

	_, ok = got[TitleRonJeremy]
	assert.False(t, ok)
	_, ok = got["QB Benchwarmer of the Week"]
	assert.False(t, ok)
}

func TestEngine_WeeklyAwards_UnknownPlayersCountAsRunningBacks(t *testing.T) {
	engine := NewEngine(nil, DefaultLineupSlots())

	awards, err := engine.WeeklyAwards([]TeamMatchup{
		{
			RosterID: 1,
			Starters: []string{"9999"}, StartersPoints: []float64{17},
			Players:       []string{"9999", "8888"},
			PlayersPoints: map[string]float64{"9999": 17, "8888": 4},
		},
	}, testManagers())
	require.NoError(t, err)
	got := awardsByTitle(awards)

	rb, ok := got["RB of the Week"]
	require.True(t, ok)
	assert.Equal(t, players.UnknownPlayerName, rb.PlayerInfo.Name)

	bench, ok := got["RB Benchwarmer of the Week"]
	require.True(t, ok)
	assert.Equal(t, 4.0, bench.Value)
}
