package awards

import (
	"fmt"
	"math"

	"github.com/cockroachdb/errors"
	"github.com/sam-maryland/sleeper-shoulda-coulda/internal/fantasy"
	"github.com/sam-maryland/sleeper-shoulda-coulda/internal/players"
)

// ErrNoMatchups is returned when a week has no matchup data to judge
var ErrNoMatchups = errors.New("no matchup data")

const (
	TitleMoneyShot        = "The Money Shot"
	TitleTaco             = "The Taco"
	TitleRonJeremy        = "The Ron Jeremy Performance Award"
	TitleBestManager      = "Best Manager"
	TitleWorstManager     = "Worst Manager"
	TitleBiggestBlowout   = "Biggest Blowout"
	TitleNarrowVictory    = "Narrow Victory"
	TitleOverachiever     = "Overachiever"
	TitleBelowExpectation = "Below Expectation"

	// UnknownManagerName is used when an award goes to a roster without a known manager
	UnknownManagerName = "Unknown Manager"
)

var benchPositions = []players.Position{players.QB, players.RB, players.WR, players.TE}

// PositionTitle is the title of the best starter award for a position
func PositionTitle(p players.Position) string {
	return fmt.Sprintf("%s of the Week", p)
}

// BenchwarmerTitle is the title of the best bench player award for a position
func BenchwarmerTitle(p players.Position) string {
	return fmt.Sprintf("%s Benchwarmer of the Week", p)
}

// TeamMatchup is one team's side of a week's matchup
type TeamMatchup struct {
	RosterID       fantasy.RosterID
	MatchupID      int
	Points         float64
	CustomPoints   *float64
	Starters       []string
	StartersPoints []float64
	Players        []string
	PlayersPoints  map[string]float64
}

// projected is the team's projection, which falls back to the actual score
func (m TeamMatchup) projected() float64 {
	if m.CustomPoints != nil {
		return *m.CustomPoints
	}
	return m.Points
}

func (m TeamMatchup) starterPoints(i int) float64 {
	if i < len(m.StartersPoints) {
		return m.StartersPoints[i]
	}
	return 0
}

// ManagerInfo identifies the manager of a roster
type ManagerInfo struct {
	RosterID fantasy.RosterID `json:"roster_id"`
	Name     string           `json:"name"`
	Avatar   string           `json:"avatar,omitempty"`
}

// Managers is the league's managers keyed by roster
type Managers map[fantasy.RosterID]ManagerInfo

// NewManagers indexes a manager list by roster
func NewManagers(list []ManagerInfo) Managers {
	out := make(Managers, len(list))
	for _, m := range list {
		out[m.RosterID] = m
	}
	return out
}

// Name returns the manager's name, or UnknownManagerName
func (m Managers) Name(id fantasy.RosterID) string {
	if info, ok := m[id]; ok && info.Name != "" {
		return info.Name
	}
	return UnknownManagerName
}

// Award is a single weekly award
type Award struct {
	Title                string           `json:"title"`
	Emoji                string           `json:"emoji"`
	RosterID             fantasy.RosterID `json:"roster_id"`
	ManagerName          string           `json:"manager_name"`
	Description          string           `json:"description"`
	Value                float64          `json:"value"`
	SecondaryRosterID    fantasy.RosterID `json:"secondary_roster_id,omitempty"`
	SecondaryManagerName string           `json:"secondary_manager_name,omitempty"`
	PlayerInfo           *players.Info    `json:"player_info,omitempty"`
}

// Engine derives the weekly awards from a week of matchups
type Engine struct {
	solver    *LineupSolver
	directory players.Directory
}

// NewEngine creates an awards engine that resolves positions with directory and judges lineups against slots
func NewEngine(directory players.Directory, slots LineupSlots) *Engine {
	return &Engine{
		solver:    NewLineupSolver(slots),
		directory: directory,
	}
}

// teamLine is one roster's derived numbers for the week
type teamLine struct {
	rosterID   fantasy.RosterID
	score      float64
	efficiency float64
}

// matchupGroup is the teams sharing a matchup ID, in the order they were seen
type matchupGroup struct {
	rosters []fantasy.RosterID
	scores  map[fantasy.RosterID]float64
}

// WeeklyAwards computes every award for one week. Each category is independent: a category without
// enough data is left out without affecting the others.
func (e *Engine) WeeklyAwards(matchups []TeamMatchup, managers Managers) ([]Award, error) {
	if len(matchups) == 0 {
		return nil, ErrNoMatchups
	}

	lines, groups := e.summarize(matchups)

	var awards []Award
	awards = append(awards, scoreAwards(lines, managers)...)
	awards = append(awards, e.ronJeremyAward(matchups, managers)...)
	awards = append(awards, efficiencyAwards(lines, managers)...)
	awards = append(awards, blowoutAwards(groups, managers)...)
	awards = append(awards, projectionAwards(matchups, managers)...)
	awards = append(awards, e.positionAwards(matchups, managers)...)
	awards = append(awards, e.benchwarmerAwards(matchups, managers)...)

	return awards, nil
}

func (e *Engine) summarize(matchups []TeamMatchup) ([]teamLine, []*matchupGroup) {
	var lines []teamLine
	lineIdx := make(map[fantasy.RosterID]int)

	var groups []*matchupGroup
	groupIdx := make(map[int]*matchupGroup)

	for _, m := range matchups {
		line := teamLine{
			rosterID:   m.RosterID,
			score:      m.Points,
			efficiency: LineupEfficiency(m.Points, e.solver.OptimalScore(e.roster(m))),
		}
		if i, ok := lineIdx[m.RosterID]; ok {
			lines[i] = line
		} else {
			lineIdx[m.RosterID] = len(lines)
			lines = append(lines, line)
		}

		if m.MatchupID <= 0 {
			continue
		}
		g, ok := groupIdx[m.MatchupID]
		if !ok {
			g = &matchupGroup{scores: make(map[fantasy.RosterID]float64)}
			groupIdx[m.MatchupID] = g
			groups = append(groups, g)
		}
		if _, seen := g.scores[m.RosterID]; !seen {
			g.rosters = append(g.rosters, m.RosterID)
		}
		g.scores[m.RosterID] = m.Points
	}

	return lines, groups
}

func (e *Engine) roster(m TeamMatchup) []RosterPlayer {
	out := make([]RosterPlayer, 0, len(m.Players))
	for _, id := range m.Players {
		out = append(out, RosterPlayer{
			ID:       id,
			Position: players.ResolvePosition(e.directory, id),
			Points:   m.PlayersPoints[id],
		})
	}
	return out
}

func (e *Engine) playerInfo(id string) *players.Info {
	info := players.ResolveInfo(e.directory, id)
	return &info
}

func scoreAwards(lines []teamLine, managers Managers) []Award {
	if len(lines) == 0 {
		return nil
	}

	high, low := lines[0], lines[0]
	for _, l := range lines[1:] {
		if l.score > high.score {
			high = l
		}
		if l.score < low.score {
			low = l
		}
	}

	return []Award{
		{
			Title:       TitleMoneyShot,
			Emoji:       "💰",
			RosterID:    high.rosterID,
			ManagerName: managers.Name(high.rosterID),
			Description: "Highest scoring team for the week",
			Value:       high.score,
		},
		{
			Title:       TitleTaco,
			Emoji:       "🌮",
			RosterID:    low.rosterID,
			ManagerName: managers.Name(low.rosterID),
			Description: "Lowest scoring team for the week",
			Value:       low.score,
		},
	}
}

func efficiencyAwards(lines []teamLine, managers Managers) []Award {
	if len(lines) == 0 {
		return nil
	}

	best, worst := lines[0], lines[0]
	for _, l := range lines[1:] {
		if l.efficiency > best.efficiency {
			best = l
		}
		if l.efficiency < worst.efficiency {
			worst = l
		}
	}

	return []Award{
		{
			Title:       TitleBestManager,
			Emoji:       "🔥",
			RosterID:    best.rosterID,
			ManagerName: managers.Name(best.rosterID),
			Description: fmt.Sprintf("Set a lineup that was %.1f%% of their perfect possible lineup", best.efficiency),
			Value:       best.efficiency,
		},
		{
			Title:       TitleWorstManager,
			Emoji:       "🤔",
			RosterID:    worst.rosterID,
			ManagerName: managers.Name(worst.rosterID),
			Description: fmt.Sprintf("Set the worst lineup and only scored %.1f%% of their perfect possible lineup", worst.efficiency),
			Value:       worst.efficiency,
		},
	}
}

type margin struct {
	winner, loser fantasy.RosterID
	percent       float64
}

func blowoutAwards(groups []*matchupGroup, managers Managers) []Award {
	var biggest, narrowest *margin
	biggestPercent, narrowestPercent := 0.0, math.MaxFloat64

	for _, g := range groups {
		if len(g.rosters) != 2 {
			continue
		}

		winner, loser := g.rosters[0], g.rosters[0]
		for _, id := range g.rosters[1:] {
			if g.scores[id] > g.scores[winner] {
				winner = id
			}
			if g.scores[id] < g.scores[loser] {
				loser = id
			}
		}

		diff := g.scores[winner] - g.scores[loser]
		percent := 100.0
		if g.scores[loser] > 0 {
			percent = diff / g.scores[loser] * 100
		}

		if percent > biggestPercent {
			biggestPercent = percent
			biggest = &margin{winner: winner, loser: loser, percent: percent}
		}
		if percent < narrowestPercent && diff > 0 {
			narrowestPercent = percent
			narrowest = &margin{winner: winner, loser: loser, percent: percent}
		}
	}

	var awards []Award
	if biggest != nil {
		awards = append(awards, marginAward(TitleBiggestBlowout, "😂", *biggest, managers))
	}
	if narrowest != nil {
		awards = append(awards, marginAward(TitleNarrowVictory, "😱", *narrowest, managers))
	}
	return awards
}

func marginAward(title, emoji string, m margin, managers Managers) Award {
	loser := managers.Name(m.loser)
	return Award{
		Title:                title,
		Emoji:                emoji,
		RosterID:             m.winner,
		ManagerName:          managers.Name(m.winner),
		Description:          fmt.Sprintf("Beat %s by a margin of %.1f%%!", loser, m.percent),
		Value:                m.percent,
		SecondaryRosterID:    m.loser,
		SecondaryManagerName: loser,
	}
}

type projection struct {
	rosterID  fantasy.RosterID
	projected float64
	percent   float64
}

func projectionAwards(matchups []TeamMatchup, managers Managers) []Award {
	var over, under *projection

	for _, m := range matchups {
		projected := m.projected()
		if projected <= 0 {
			continue
		}
		p := projection{
			rosterID:  m.RosterID,
			projected: projected,
			percent:   (m.Points - projected) / projected * 100,
		}
		if p.percent > 0 && (over == nil || p.percent > over.percent) {
			over = &p
		}
		if p.percent < 0 && (under == nil || p.percent < under.percent) {
			under = &p
		}
	}

	var awards []Award
	if over != nil {
		awards = append(awards, Award{
			Title:       TitleOverachiever,
			Emoji:       "🤓",
			RosterID:    over.rosterID,
			ManagerName: managers.Name(over.rosterID),
			Description: fmt.Sprintf("Overachieved their projection (%.2f) by %.1f%%!", over.projected, math.Abs(over.percent)),
			Value:       math.Abs(over.percent),
		})
	}
	if under != nil {
		awards = append(awards, Award{
			Title:       TitleBelowExpectation,
			Emoji:       "💀",
			RosterID:    under.rosterID,
			ManagerName: managers.Name(under.rosterID),
			Description: fmt.Sprintf("Missed their projection (%.2f) by %.1f%%!", under.projected, math.Abs(under.percent)),
			Value:       math.Abs(under.percent),
		})
	}
	return awards
}

type standout struct {
	playerID string
	rosterID fantasy.RosterID
	points   float64
}

func (e *Engine) ronJeremyAward(matchups []TeamMatchup, managers Managers) []Award {
	var best *standout
	highest := 0.0

	for _, m := range matchups {
		for i, id := range m.Starters {
			points := m.starterPoints(i)
			if points > highest {
				highest = points
				best = &standout{playerID: id, rosterID: m.RosterID, points: points}
			}
		}
	}

	if best == nil || best.playerID == "" {
		return nil
	}
	return []Award{{
		Title:       TitleRonJeremy,
		Emoji:       "🍆",
		RosterID:    best.rosterID,
		ManagerName: managers.Name(best.rosterID),
		Description: "Had the highest scoring individual player this week!",
		Value:       best.points,
		PlayerInfo:  e.playerInfo(best.playerID),
	}}
}

func (e *Engine) positionAwards(matchups []TeamMatchup, managers Managers) []Award {
	best := make(map[players.Position]standout)

	for _, m := range matchups {
		for i, id := range m.Starters {
			points := m.starterPoints(i)
			pos := players.ResolvePosition(e.directory, id)
			if cur, ok := best[pos]; !ok || points > cur.points {
				best[pos] = standout{playerID: id, rosterID: m.RosterID, points: points}
			}
		}
	}

	var awards []Award
	for _, pos := range players.Positions {
		s, ok := best[pos]
		if !ok {
			continue
		}
		awards = append(awards, Award{
			Title:       PositionTitle(pos),
			Emoji:       "⭐",
			RosterID:    s.rosterID,
			ManagerName: managers.Name(s.rosterID),
			Description: fmt.Sprintf("Started the best %s of this week!", pos),
			Value:       s.points,
			PlayerInfo:  e.playerInfo(s.playerID),
		})
	}
	return awards
}

func (e *Engine) benchwarmerAwards(matchups []TeamMatchup, managers Managers) []Award {
	best := make(map[players.Position]standout)

	for _, m := range matchups {
		starters := make(map[string]struct{}, len(m.Starters))
		for _, id := range m.Starters {
			starters[id] = struct{}{}
		}

		for _, id := range m.Players {
			if _, started := starters[id]; started {
				continue
			}
			points := m.PlayersPoints[id]
			pos := players.ResolvePosition(e.directory, id)
			if cur, ok := best[pos]; !ok || points > cur.points {
				best[pos] = standout{playerID: id, rosterID: m.RosterID, points: points}
			}
		}
	}

	var awards []Award
	for _, pos := range benchPositions {
		s, ok := best[pos]
		if !ok || s.points <= 0 {
			continue
		}
		awards = append(awards, Award{
			Title:       BenchwarmerTitle(pos),
			Emoji:       "👀",
			RosterID:    s.rosterID,
			ManagerName: managers.Name(s.rosterID),
			Description: fmt.Sprintf("Had the best %s benchwarmer this week!", pos),
			Value:       s.points,
			PlayerInfo:  e.playerInfo(s.playerID),
		})
	}
	return awards
}
