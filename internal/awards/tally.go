package awards

import (
	"strings"

	"github.com/bytedance/sonic"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/sam-maryland/sleeper-shoulda-coulda/internal/fantasy"
)

// nameSimilarityThreshold is the minimum normalized Levenshtein similarity for a fuzzy manager match
const nameSimilarityThreshold = 0.6

// Tally counts the awards one manager has collected
type Tally struct {
	RosterID    fantasy.RosterID `json:"roster_id"`
	ManagerName string           `json:"manager_name"`
	Counts      map[string]int   `json:"awards"`
	Total       int              `json:"total"`
}

// Tallies accumulates awards per manager across weeks, in league order
type Tallies struct {
	order []fantasy.RosterID
	byID  map[fantasy.RosterID]*Tally
}

// NewTallies starts an empty tally for every manager
func NewTallies(managers []ManagerInfo) *Tallies {
	t := &Tallies{byID: make(map[fantasy.RosterID]*Tally, len(managers))}
	for _, m := range managers {
		t.ensure(m.RosterID, m.Name)
	}
	return t
}

func (t *Tallies) ensure(id fantasy.RosterID, name string) *Tally {
	if tally, ok := t.byID[id]; ok {
		return tally
	}
	if name == "" {
		name = UnknownManagerName
	}
	tally := &Tally{RosterID: id, ManagerName: name, Counts: make(map[string]int)}
	t.order = append(t.order, id)
	t.byID[id] = tally
	return tally
}

// Add counts a week of awards
func (t *Tallies) Add(awards []Award) {
	for _, a := range awards {
		tally := t.ensure(a.RosterID, a.ManagerName)
		tally.Counts[a.Title]++
		tally.Total++
	}
}

// Get returns the tally of one roster
func (t *Tallies) Get(id fantasy.RosterID) (Tally, bool) {
	tally, ok := t.byID[id]
	if !ok {
		return Tally{}, false
	}
	return tally.clone(), true
}

// All returns every tally in league order
func (t *Tallies) All() []Tally {
	out := make([]Tally, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.byID[id].clone())
	}
	return out
}

// Len is the number of managers tallied
func (t *Tallies) Len() int {
	return len(t.order)
}

// FindManager looks a manager up by name. Exact (case-insensitive) matches win, then names containing the
// query as a subsequence, then the closest name by edit distance above the similarity threshold.
func (t *Tallies) FindManager(name string) (Tally, bool) {
	query := strings.ToLower(strings.TrimSpace(name))
	if query == "" {
		return Tally{}, false
	}

	for _, id := range t.order {
		if strings.ToLower(t.byID[id].ManagerName) == query {
			return t.byID[id].clone(), true
		}
	}

	names := make([]string, 0, len(t.order))
	for _, id := range t.order {
		names = append(names, t.byID[id].ManagerName)
	}
	if ranks := fuzzy.RankFindFold(query, names); len(ranks) > 0 {
		best := ranks[0]
		for _, r := range ranks[1:] {
			if r.Distance < best.Distance || (r.Distance == best.Distance && r.OriginalIndex < best.OriginalIndex) {
				best = r
			}
		}
		return t.byID[t.order[best.OriginalIndex]].clone(), true
	}

	var match *Tally
	bestSimilarity := nameSimilarityThreshold
	for _, id := range t.order {
		candidate := strings.ToLower(t.byID[id].ManagerName)
		distance := fuzzy.LevenshteinDistance(query, candidate)
		maxLen := float64(max(len(query), len(candidate)))
		similarity := 1 - float64(distance)/maxLen

		if similarity > bestSimilarity {
			bestSimilarity = similarity
			match = t.byID[id]
		}
	}
	if match == nil {
		return Tally{}, false
	}
	return match.clone(), true
}

func (t *Tallies) MarshalJSON() ([]byte, error) {
	return sonic.Marshal(t.All())
}

func (t *Tally) clone() Tally {
	out := *t
	out.Counts = make(map[string]int, len(t.Counts))
	for title, n := range t.Counts {
		out.Counts[title] = n
	}
	return out
}
