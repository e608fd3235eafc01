package awards

import (
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/sam-maryland/sleeper-shoulda-coulda/internal/players"
)

// ErrInvalidLineup marks lineup configurations that cannot be filled
var ErrInvalidLineup = errors.New("invalid lineup configuration")

// SlotRequirement is a number of lineup spots reserved for one position
type SlotRequirement struct {
	Position players.Position `json:"position"`
	Count    int              `json:"count"`
}

// LineupSlots is a starting lineup: fixed positional slots plus flex slots shared by several positions
type LineupSlots struct {
	Fixed         []SlotRequirement  `json:"fixed"`
	Flex          int                `json:"flex"`
	FlexPositions []players.Position `json:"flex_positions"`
}

// DefaultLineupSlots is the standard Sleeper lineup: QB, 2 RB, 2 WR, TE, one RB/WR/TE flex, K and DEF
func DefaultLineupSlots() LineupSlots {
	return LineupSlots{
		Fixed: []SlotRequirement{
			{Position: players.QB, Count: 1},
			{Position: players.RB, Count: 2},
			{Position: players.WR, Count: 2},
			{Position: players.TE, Count: 1},
			{Position: players.K, Count: 1},
			{Position: players.DEF, Count: 1},
		},
		Flex:          1,
		FlexPositions: []players.Position{players.RB, players.WR, players.TE},
	}
}

// ParseLineupSlots builds lineup slots from raw position counts. Fixed slots are ordered the way
// positions are listed in players.Positions.
func ParseLineupSlots(fixed map[string]int, flex int, flexPositions []string) (LineupSlots, error) {
	counts := make(map[players.Position]int, len(fixed))
	for raw, n := range fixed {
		p, ok := players.ParsePosition(raw)
		if !ok {
			return LineupSlots{}, errors.Wrapf(ErrInvalidLineup, "unknown position %q", raw)
		}
		if n < 0 {
			return LineupSlots{}, errors.Wrapf(ErrInvalidLineup, "negative count for %s", p)
		}
		counts[p] += n
	}

	slots := LineupSlots{Flex: flex}
	for _, p := range players.Positions {
		if n := counts[p]; n > 0 {
			slots.Fixed = append(slots.Fixed, SlotRequirement{Position: p, Count: n})
		}
	}

	if flex < 0 {
		return LineupSlots{}, errors.Wrapf(ErrInvalidLineup, "negative flex count %d", flex)
	}
	seen := make(map[players.Position]bool, len(flexPositions))
	for _, raw := range flexPositions {
		p, ok := players.ParsePosition(raw)
		if !ok {
			return LineupSlots{}, errors.Wrapf(ErrInvalidLineup, "unknown flex position %q", raw)
		}
		if !seen[p] {
			seen[p] = true
			slots.FlexPositions = append(slots.FlexPositions, p)
		}
	}
	if flex > 0 && len(slots.FlexPositions) == 0 {
		return LineupSlots{}, errors.Wrap(ErrInvalidLineup, "flex slots without eligible positions")
	}

	return slots, nil
}

// RosterPlayer is one rostered player's result for a week
type RosterPlayer struct {
	ID       string
	Position players.Position
	Points   float64
}

// LineupSolver computes the best lineup a team could have started
type LineupSolver struct {
	slots LineupSlots
}

func NewLineupSolver(slots LineupSlots) *LineupSolver {
	return &LineupSolver{slots: slots}
}

// OptimalScore fills each fixed slot with the highest scorers at that position, then fills the flex slots
// with the highest remaining scorers among flex positions. The fill is greedy per position, so a player
// kept out of a fixed slot is only reconsidered for flex, never swapped back.
func (s *LineupSolver) OptimalScore(roster []RosterPlayer) float64 {
	pools := make(map[players.Position][]RosterPlayer)
	for _, p := range roster {
		pools[p.Position] = append(pools[p.Position], p)
	}
	for pos := range pools {
		sortByPointsDesc(pools[pos])
	}

	total := 0.0
	for _, req := range s.slots.Fixed {
		pool := pools[req.Position]
		n := min(req.Count, len(pool))
		for _, p := range pool[:n] {
			total += p.Points
		}
		pools[req.Position] = pool[n:]
	}

	if s.slots.Flex <= 0 {
		return total
	}

	var candidates []RosterPlayer
	for _, pos := range s.slots.FlexPositions {
		candidates = append(candidates, pools[pos]...)
	}
	sortByPointsDesc(candidates)

	n := min(s.slots.Flex, len(candidates))
	for _, p := range candidates[:n] {
		total += p.Points
	}

	return total
}

// LineupEfficiency is the actual score as a percentage of the optimal score, 0 when nothing could be scored
func LineupEfficiency(actual, optimal float64) float64 {
	if optimal <= 0 {
		return 0
	}
	return actual / optimal * 100
}

func sortByPointsDesc(ps []RosterPlayer) {
	sort.SliceStable(ps, func(i, j int) bool {
		return ps[i].Points > ps[j].Points
	})
}
