package awards

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/sam-maryland/sleeper-shoulda-coulda/internal/players"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rp(id string, pos players.Position, points float64) RosterPlayer {
	return RosterPlayer{ID: id, Position: pos, Points: points}
}

func TestLineupSolver_OptimalScore(t *testing.T) {
	tests := []struct {
		name   string
		slots  LineupSlots
		roster []RosterPlayer
		want   float64
	}{
		{
			name:  "full roster fills fixed slots then flex",
			slots: DefaultLineupSlots(),
			roster: []RosterPlayer{
				rp("qb1", players.QB, 20), rp("qb2", players.QB, 25),
				rp("rb1", players.RB, 10), rp("rb2", players.RB, 15), rp("rb3", players.RB, 12),
				rp("wr1", players.WR, 8), rp("wr2", players.WR, 20), rp("wr3", players.WR, 9),
				rp("te1", players.TE, 5), rp("te2", players.TE, 7),
				rp("k1", players.K, 6),
				rp("PHI", players.DEF, 9),
			},
			// QB 25, RB 15+12, WR 20+9, TE 7, K 6, DEF 9, FLEX rb1 10
			want: 113,
		},
		{
			name:   "short roster leaves slots empty",
			slots:  DefaultLineupSlots(),
			roster: []RosterPlayer{rp("qb1", players.QB, 10), rp("rb1", players.RB, 5)},
			want:   15,
		},
		{
			name:   "empty roster",
			slots:  DefaultLineupSlots(),
			roster: nil,
			want:   0,
		},
		{
			name: "quarterbacks are flex eligible in superflex",
			slots: LineupSlots{
				Fixed:         []SlotRequirement{{Position: players.QB, Count: 1}, {Position: players.RB, Count: 1}},
				Flex:          1,
				FlexPositions: []players.Position{players.QB, players.RB},
			},
			roster: []RosterPlayer{
				rp("qb1", players.QB, 30), rp("qb2", players.QB, 20),
				rp("rb1", players.RB, 10), rp("rb2", players.RB, 25),
			},
			want: 75,
		},
		{
			name: "kickers never reach the flex",
			slots: LineupSlots{
				Fixed:         []SlotRequirement{{Position: players.K, Count: 1}},
				Flex:          1,
				FlexPositions: []players.Position{players.RB, players.WR, players.TE},
			},
			roster: []RosterPlayer{rp("k1", players.K, 12), rp("k2", players.K, 11), rp("wr1", players.WR, 3)},
			want:   15,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewLineupSolver(tt.slots).OptimalScore(tt.roster)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestLineupSolver_DoesNotReorderInput(t *testing.T) {
	roster := []RosterPlayer{rp("rb1", players.RB, 1), rp("rb2", players.RB, 9), rp("rb3", players.RB, 5)}

	NewLineupSolver(DefaultLineupSlots()).OptimalScore(roster)

	assert.Equal(t, "rb1", roster[0].ID)
	assert.Equal(t, "rb2", roster[1].ID)
}

func TestLineupEfficiency(t *testing.T) {
	assert.Equal(t, 0.0, LineupEfficiency(90, 0))
	assert.InDelta(t, 75.0, LineupEfficiency(90, 120), 1e-9)
	assert.InDelta(t, 100.0, LineupEfficiency(80, 80), 1e-9)
}

func TestParseLineupSlots(t *testing.T) {
	slots, err := ParseLineupSlots(map[string]int{"wr": 3, "QB": 1, "DEF": 0, "TE": 1}, 2, []string{"RB", "WR", "rb"})
	require.NoError(t, err)

	assert.Equal(t, []SlotRequirement{
		{Position: players.QB, Count: 1},
		{Position: players.WR, Count: 3},
		{Position: players.TE, Count: 1},
	}, slots.Fixed)
	assert.Equal(t, 2, slots.Flex)
	assert.Equal(t, []players.Position{players.RB, players.WR}, slots.FlexPositions)

	invalid := []struct {
		name  string
		fixed map[string]int
		flex  int
		pos   []string
	}{
		{name: "unknown position", fixed: map[string]int{"LB": 1}},
		{name: "negative count", fixed: map[string]int{"QB": -1}},
		{name: "negative flex", flex: -1},
		{name: "flex without positions", flex: 1},
		{name: "unknown flex position", flex: 1, pos: []string{"IDP"}},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLineupSlots(tt.fixed, tt.flex, tt.pos)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidLineup))
		})
	}
}
