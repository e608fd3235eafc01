package fantasy

import (
	"github.com/cockroachdb/errors"
)

// ErrDataIntegrity marks schedules that reference weeks or teams the league data does not contain
var ErrDataIntegrity = errors.New("schedule data integrity violation")

// MatchupKind tells whether a week of a borrowed schedule was played against the manager themselves
type MatchupKind string

const (
	MatchupDirect      MatchupKind = "direct"
	MatchupAlternative MatchupKind = "alternative"
)

// WeekComparison is one week of a manager's score set against a borrowed schedule
type WeekComparison struct {
	Week             Week        `json:"week"`
	Kind             MatchupKind `json:"kind"`
	ManagerScore     Score       `json:"manager_score"`
	OpponentRosterID RosterID    `json:"opponent_roster_id"`
	OpponentScore    Score       `json:"opponent_score"`
	Win              bool        `json:"win"`
}

// MatchupResult reports whether a manager beat an opponent. Ties are losses.
func MatchupResult(manager, opponent Score) bool {
	return manager.GreaterThan(opponent)
}

// IndexManagers maps managers by roster ID
func IndexManagers(managers []*Manager) map[RosterID]*Manager {
	index := make(map[RosterID]*Manager, len(managers))
	for _, m := range managers {
		index[m.RosterID] = m
	}
	return index
}

// CompareAgainstSchedule plays a manager's weekly scores against the schedule of another manager.
// In a week where the schedule owner actually faced the manager, the real result is kept; otherwise
// the manager is compared with whoever the schedule owner faced that week.
func CompareAgainstSchedule(managers []*Manager, managerID, ownerID RosterID) ([]WeekComparison, error) {
	index := IndexManagers(managers)
	manager, ok := index[managerID]
	if !ok {
		return nil, errors.Wrapf(ErrDataIntegrity, "unknown manager %d", managerID)
	}
	owner, ok := index[ownerID]
	if !ok {
		return nil, errors.Wrapf(ErrDataIntegrity, "unknown schedule owner %d", ownerID)
	}
	return compareAgainstSchedule(index, manager, owner)
}

func compareAgainstSchedule(index map[RosterID]*Manager, manager, owner *Manager) ([]WeekComparison, error) {
	comparisons := make([]WeekComparison, 0, owner.Schedule.Len())

	for _, entry := range owner.Schedule.Entries() {
		own, ok := manager.Schedule.Entry(entry.Week)
		if !ok {
			return nil, errors.Wrapf(ErrDataIntegrity, "manager %d has no score for week %d", manager.RosterID, entry.Week)
		}

		cmp := WeekComparison{
			Week:         entry.Week,
			ManagerScore: own.Score,
		}
		if entry.Opponent == manager.RosterID {
			cmp.Kind = MatchupDirect
			cmp.OpponentRosterID = entry.RosterID
		} else {
			cmp.Kind = MatchupAlternative
			cmp.OpponentRosterID = entry.Opponent
		}

		score, err := weekScore(index, cmp.OpponentRosterID, entry.Week)
		if err != nil {
			return nil, err
		}
		cmp.OpponentScore = score
		cmp.Win = MatchupResult(cmp.ManagerScore, cmp.OpponentScore)

		comparisons = append(comparisons, cmp)
	}

	return comparisons, nil
}

func weekScore(index map[RosterID]*Manager, rosterID RosterID, week Week) (Score, error) {
	m, ok := index[rosterID]
	if !ok {
		return 0, errors.Wrapf(ErrDataIntegrity, "week %d references unknown roster %d", week, rosterID)
	}
	entry, ok := m.Schedule.Entry(week)
	if !ok {
		return 0, errors.Wrapf(ErrDataIntegrity, "roster %d has no score for week %d", rosterID, week)
	}
	return entry.Score, nil
}

// ComputeAlternativeRecords fills every manager's record book by replaying their scores against every
// schedule in the league. Records are only ever incremented. On error the books are partially filled
// and must be discarded.
func ComputeAlternativeRecords(managers []*Manager) error {
	index := IndexManagers(managers)

	for _, manager := range managers {
		if manager.Records == nil {
			return errors.Wrapf(ErrDataIntegrity, "manager %d has no record book", manager.RosterID)
		}

		for _, ownerID := range manager.Records.Owners() {
			owner, ok := index[ownerID]
			if !ok {
				return errors.Wrapf(ErrDataIntegrity, "record book of manager %d references unknown roster %d", manager.RosterID, ownerID)
			}

			comparisons, err := compareAgainstSchedule(index, manager, owner)
			if err != nil {
				return err
			}
			for _, cmp := range comparisons {
				manager.Records.tally(ownerID, cmp.Win)
			}
		}
	}

	return nil
}
