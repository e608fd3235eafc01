package fantasy

import (
	"sort"

	"github.com/bytedance/sonic"
)

// MatchupRecord is one team's line in a week of raw matchup data
type MatchupRecord struct {
	RosterID  RosterID
	MatchupID int
	Points    float64
}

// WeekMatchups holds the raw matchup records for a single week
type WeekMatchups struct {
	Week    Week
	Records []MatchupRecord
}

// ScheduleEntry is a single week of one team's schedule
type ScheduleEntry struct {
	Week     Week     `json:"week"`
	RosterID RosterID `json:"roster_id"`
	Score    Score    `json:"score"`
	Opponent RosterID `json:"vs"`
}

// TeamSchedule is one team's schedule ordered by week
type TeamSchedule struct {
	weeks  []Week
	byWeek map[Week]ScheduleEntry
}

// NewTeamSchedule builds a team schedule from entries; later entries for the same week replace earlier ones
func NewTeamSchedule(entries ...ScheduleEntry) TeamSchedule {
	ts := TeamSchedule{byWeek: make(map[Week]ScheduleEntry, len(entries))}
	for _, e := range entries {
		ts.put(e)
	}
	return ts
}

func (ts *TeamSchedule) put(e ScheduleEntry) {
	if ts.byWeek == nil {
		ts.byWeek = make(map[Week]ScheduleEntry)
	}
	if _, exists := ts.byWeek[e.Week]; !exists {
		ts.weeks = append(ts.weeks, e.Week)
	}
	ts.byWeek[e.Week] = e
}

// Entry returns the schedule entry for a week
func (ts TeamSchedule) Entry(week Week) (ScheduleEntry, bool) {
	e, ok := ts.byWeek[week]
	return e, ok
}

// Weeks lists the weeks this team played, in schedule order
func (ts TeamSchedule) Weeks() []Week {
	out := make([]Week, len(ts.weeks))
	copy(out, ts.weeks)
	return out
}

// Entries returns every entry in schedule order
func (ts TeamSchedule) Entries() []ScheduleEntry {
	out := make([]ScheduleEntry, 0, len(ts.weeks))
	for _, w := range ts.weeks {
		out = append(out, ts.byWeek[w])
	}
	return out
}

// Len is the number of weeks in the schedule
func (ts TeamSchedule) Len() int {
	return len(ts.weeks)
}

func (ts TeamSchedule) MarshalJSON() ([]byte, error) {
	return sonic.Marshal(ts.Entries())
}

// WeeklySchedule is the whole league schedule keyed by (week, team)
type WeeklySchedule struct {
	weeks  []Week
	byWeek map[Week]*weekSlate
}

type weekSlate struct {
	rosters []RosterID
	entries map[RosterID]ScheduleEntry
}

// NewWeeklySchedule returns an empty schedule
func NewWeeklySchedule() *WeeklySchedule {
	return &WeeklySchedule{byWeek: make(map[Week]*weekSlate)}
}

// Add records a schedule entry, replacing any previous entry for the same week and team
func (s *WeeklySchedule) Add(e ScheduleEntry) {
	slate, ok := s.byWeek[e.Week]
	if !ok {
		slate = &weekSlate{entries: make(map[RosterID]ScheduleEntry)}
		s.byWeek[e.Week] = slate
		s.weeks = append(s.weeks, e.Week)
	}
	if _, exists := slate.entries[e.RosterID]; !exists {
		slate.rosters = append(slate.rosters, e.RosterID)
	}
	slate.entries[e.RosterID] = e
}

// WeekEntries returns every entry of a week in insertion order
func (s *WeeklySchedule) WeekEntries(week Week) []ScheduleEntry {
	slate, ok := s.byWeek[week]
	if !ok {
		return nil
	}
	out := make([]ScheduleEntry, 0, len(slate.rosters))
	for _, r := range slate.rosters {
		out = append(out, slate.entries[r])
	}
	return out
}

// ManagerSchedule extracts a single team's schedule across all weeks
func (s *WeeklySchedule) ManagerSchedule(rosterID RosterID) TeamSchedule {
	ts := TeamSchedule{byWeek: make(map[Week]ScheduleEntry)}
	for _, w := range s.weeks {
		if e, ok := s.byWeek[w].entries[rosterID]; ok {
			ts.put(e)
		}
	}
	return ts
}

// Weeks lists the weeks present in the schedule in insertion order
func (s *WeeklySchedule) Weeks() []Week {
	out := make([]Week, len(s.weeks))
	copy(out, s.weeks)
	return out
}

// WeekCount is the number of distinct weeks in the schedule
func (s *WeeklySchedule) WeekCount() int {
	return len(s.weeks)
}

// BuildSchedule pairs every matchup record with the other team sharing its matchup ID that week.
// Records without exactly one counterpart (byes, unassigned matchup IDs, malformed groups) or with a
// negative point total are skipped.
func BuildSchedule(weeks []WeekMatchups) *WeeklySchedule {
	ordered := make([]WeekMatchups, len(weeks))
	copy(ordered, weeks)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Week < ordered[j].Week
	})

	schedule := NewWeeklySchedule()
	for _, wm := range ordered {
		groups := make(map[int][]MatchupRecord)
		for _, rec := range wm.Records {
			if rec.MatchupID <= 0 {
				continue
			}
			groups[rec.MatchupID] = append(groups[rec.MatchupID], rec)
		}

		for _, rec := range wm.Records {
			opponent, ok := counterpart(groups[rec.MatchupID], rec)
			if !ok {
				continue
			}
			score, err := NewScore(rec.Points)
			if err != nil {
				continue
			}
			schedule.Add(ScheduleEntry{
				Week:     wm.Week,
				RosterID: rec.RosterID,
				Score:    score,
				Opponent: opponent.RosterID,
			})
		}
	}

	return schedule
}

func counterpart(group []MatchupRecord, rec MatchupRecord) (MatchupRecord, bool) {
	if len(group) != 2 {
		return MatchupRecord{}, false
	}
	for _, other := range group {
		if other.RosterID != rec.RosterID {
			return other, true
		}
	}
	return MatchupRecord{}, false
}
