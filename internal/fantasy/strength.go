package fantasy

import "sort"

// StrengthOfSchedule totals, per schedule owner, the wins and losses every manager would have had on that schedule
type StrengthOfSchedule struct {
	Wins     map[RosterID]int `json:"overall_wins"`
	Losses   map[RosterID]int `json:"overall_losses"`
	Rankings []RosterID       `json:"rankings"`
}

// ScheduleStrength is one row of the strength of schedule ranking
type ScheduleStrength struct {
	Rank     int      `json:"rank"`
	RosterID RosterID `json:"roster_id"`
	Wins     int      `json:"wins"`
	Losses   int      `json:"losses"`
}

// AggregateStrengthOfSchedule sums every manager's alternative records per schedule owner and ranks the
// owners by total losses, toughest schedule first. Ties keep league order.
func AggregateStrengthOfSchedule(managers []*Manager) StrengthOfSchedule {
	sos := StrengthOfSchedule{
		Wins:   make(map[RosterID]int),
		Losses: make(map[RosterID]int),
	}

	var order []RosterID
	for _, m := range managers {
		for _, rec := range m.Records.All() {
			if _, seen := sos.Losses[rec.OpponentRosterID]; !seen {
				order = append(order, rec.OpponentRosterID)
				sos.Wins[rec.OpponentRosterID] = 0
				sos.Losses[rec.OpponentRosterID] = 0
			}
			sos.Wins[rec.OpponentRosterID] += rec.Wins
			sos.Losses[rec.OpponentRosterID] += rec.Losses
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return sos.Losses[order[i]] > sos.Losses[order[j]]
	})
	sos.Rankings = order

	return sos
}

// Ranked returns the ranking with totals, rank 0 being the toughest schedule
func (s StrengthOfSchedule) Ranked() []ScheduleStrength {
	out := make([]ScheduleStrength, 0, len(s.Rankings))
	for i, id := range s.Rankings {
		out = append(out, ScheduleStrength{
			Rank:     i,
			RosterID: id,
			Wins:     s.Wins[id],
			Losses:   s.Losses[id],
		})
	}
	return out
}
