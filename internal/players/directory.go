package players

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/sam-maryland/sleeper-shoulda-coulda/internal/sleeper"
)

// Position is a fantasy roster position
type Position string

const (
	QB  Position = "QB"
	RB  Position = "RB"
	WR  Position = "WR"
	TE  Position = "TE"
	K   Position = "K"
	DEF Position = "DEF"
)

// Positions lists every position an award can be given for, in award order
var Positions = []Position{QB, RB, WR, TE, K, DEF}

// UnknownPlayerName is shown for players the directory does not know
const UnknownPlayerName = "Unknown Player"

const unknownPosition = "Unknown"

const thumbnailURL = "https://sleepercdn.com/content/nfl/players/thumb/%s.jpg"

// ParsePosition maps a raw position to a Position. Anything outside the standard set is reported as not ok.
func ParsePosition(raw string) (Position, bool) {
	p := Position(strings.ToUpper(strings.TrimSpace(raw)))
	for _, known := range Positions {
		if p == known {
			return p, true
		}
	}
	return "", false
}

// Record is what the directory knows about one player
type Record struct {
	ID        string
	FirstName string
	LastName  string
	Position  string
	Team      string
}

// Info is the display form of a player used in awards
type Info struct {
	Name     string  `json:"name"`
	Position string  `json:"position"`
	Team     string  `json:"team"`
	Avatar   *string `json:"avatar"`
}

// Directory resolves player IDs to player records
type Directory interface {
	Lookup(id string) (Record, bool)
}

// Snapshot is an immutable player directory loaded at a point in time
type Snapshot struct {
	records  map[string]Record
	loadedAt time.Time
}

// NewSnapshot converts the Sleeper players payload into a snapshot
func NewSnapshot(payload map[string]sleeper.Player, loadedAt time.Time) *Snapshot {
	records := make(map[string]Record, len(payload))
	for id, p := range payload {
		records[id] = Record{
			ID:        id,
			FirstName: p.FirstName,
			LastName:  p.LastName,
			Position:  p.Position,
			Team:      p.Team,
		}
	}
	return &Snapshot{records: records, loadedAt: loadedAt}
}

// Lookup returns the record for a player ID
func (s *Snapshot) Lookup(id string) (Record, bool) {
	if s == nil {
		return Record{}, false
	}
	r, ok := s.records[id]
	return r, ok
}

// Len is the number of players in the snapshot
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.records)
}

// LoadedAt is when the snapshot was fetched
func (s *Snapshot) LoadedAt() time.Time {
	if s == nil {
		return time.Time{}
	}
	return s.loadedAt
}

// IsTeamDefense reports whether a player ID names a team defense. Sleeper keys defenses by team
// abbreviation, so these are short and purely alphabetic.
func IsTeamDefense(id string) bool {
	if id == "" || len(id) > 4 {
		return false
	}
	for _, r := range id {
		if r > unicode.MaxASCII || !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// ResolvePosition determines the position a player is counted at. Unknown players and positions
// outside the standard set count as RB.
func ResolvePosition(dir Directory, id string) Position {
	if IsTeamDefense(id) {
		return DEF
	}
	if dir == nil {
		return RB
	}
	rec, ok := dir.Lookup(id)
	if !ok {
		return RB
	}
	if p, ok := ParsePosition(rec.Position); ok {
		return p
	}
	return RB
}

// ResolveInfo builds the display info for a player
func ResolveInfo(dir Directory, id string) Info {
	if IsTeamDefense(id) {
		team := strings.ToUpper(id)
		return Info{
			Name:     team + " DEF",
			Position: string(DEF),
			Team:     team,
		}
	}

	var rec Record
	ok := false
	if dir != nil {
		rec, ok = dir.Lookup(id)
	}
	if !ok {
		return Info{Name: UnknownPlayerName, Position: string(RB)}
	}

	name := strings.TrimSpace(rec.FirstName + " " + rec.LastName)
	if name == "" {
		name = UnknownPlayerName
	}
	position := rec.Position
	if position == "" {
		position = unknownPosition
	}

	return Info{
		Name:     name,
		Position: position,
		Team:     rec.Team,
		Avatar:   avatarURL(id),
	}
}

func avatarURL(id string) *string {
	for _, r := range id {
		if r < '0' || r > '9' {
			return nil
		}
	}
	if id == "" {
		return nil
	}
	url := fmt.Sprintf(thumbnailURL, id)
	return &url
}
