package fantasy

import (
	"github.com/bytedance/sonic"
)

// Manager is a league member together with their schedule and alternative records
type Manager struct {
	RosterID    RosterID     `json:"roster_id"`
	UserID      string       `json:"user_id"`
	DisplayName string       `json:"name"`
	AvatarURL   string       `json:"avatar,omitempty"`
	Wins        int          `json:"win"`
	Losses      int          `json:"loss"`
	Schedule    TeamSchedule `json:"schedule"`
	Records     *RecordBook  `json:"records"`
}

// AlternativeRecord is the record a manager would have had playing another manager's schedule
type AlternativeRecord struct {
	OpponentDisplayName string   `json:"name"`
	OpponentRosterID    RosterID `json:"roster_id"`
	Wins                int      `json:"win"`
	Losses              int      `json:"loss"`
}

// Games is the number of weeks tallied into the record
func (r AlternativeRecord) Games() int {
	return r.Wins + r.Losses
}

// RecordBook holds one alternative record per schedule owner, in league order
type RecordBook struct {
	order []RosterID
	byID  map[RosterID]*AlternativeRecord
}

// NewRecordBook creates a zeroed record for every manager, including the owner of the book
func NewRecordBook(managers []*Manager) *RecordBook {
	book := &RecordBook{
		order: make([]RosterID, 0, len(managers)),
		byID:  make(map[RosterID]*AlternativeRecord, len(managers)),
	}
	for _, m := range managers {
		if _, exists := book.byID[m.RosterID]; exists {
			continue
		}
		book.order = append(book.order, m.RosterID)
		book.byID[m.RosterID] = &AlternativeRecord{
			OpponentDisplayName: m.DisplayName,
			OpponentRosterID:    m.RosterID,
		}
	}
	return book
}

// Get returns the record against a schedule owner
func (b *RecordBook) Get(owner RosterID) (AlternativeRecord, bool) {
	if b == nil {
		return AlternativeRecord{}, false
	}
	rec, ok := b.byID[owner]
	if !ok {
		return AlternativeRecord{}, false
	}
	return *rec, true
}

// Owners lists the schedule owners in league order
func (b *RecordBook) Owners() []RosterID {
	if b == nil {
		return nil
	}
	out := make([]RosterID, len(b.order))
	copy(out, b.order)
	return out
}

// All returns a copy of every record in league order
func (b *RecordBook) All() []AlternativeRecord {
	if b == nil {
		return nil
	}
	out := make([]AlternativeRecord, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, *b.byID[id])
	}
	return out
}

// Len is the number of records in the book
func (b *RecordBook) Len() int {
	if b == nil {
		return 0
	}
	return len(b.order)
}

func (b *RecordBook) tally(owner RosterID, win bool) {
	rec := b.byID[owner]
	if win {
		rec.Wins++
	} else {
		rec.Losses++
	}
}

func (b *RecordBook) MarshalJSON() ([]byte, error) {
	return sonic.Marshal(b.All())
}

// DisplayRecord returns the alternative record against a schedule owner as it should be shown.
// Leagues with a weekly league-average match award games the head-to-head comparison cannot see,
// so the difference between the real record and the self record is carried over to every record.
func (m *Manager) DisplayRecord(owner RosterID, leagueAverageMatch bool) (wins, losses int, ok bool) {
	rec, ok := m.Records.Get(owner)
	if !ok {
		return 0, 0, false
	}
	if !leagueAverageMatch {
		return rec.Wins, rec.Losses, true
	}

	self, ok := m.Records.Get(m.RosterID)
	if !ok {
		return rec.Wins, rec.Losses, true
	}
	return rec.Wins + (m.Wins - self.Wins), rec.Losses + (m.Losses - self.Losses), true
}

// AttachSchedules gives every manager their personal schedule and a zeroed record against every manager
func AttachSchedules(managers []*Manager, schedule *WeeklySchedule) {
	for _, m := range managers {
		m.Schedule = schedule.ManagerSchedule(m.RosterID)
	}
	InitializeRecords(managers)
}

// InitializeRecords resets every manager's record book
func InitializeRecords(managers []*Manager) {
	for _, m := range managers {
		m.Records = NewRecordBook(managers)
	}
}
