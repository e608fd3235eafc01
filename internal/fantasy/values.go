package fantasy

import (
	"math"
	"strconv"

	"github.com/cockroachdb/errors"
)

// ErrInvalidValue marks a value object that failed construction
var ErrInvalidValue = errors.New("invalid value")

const (
	// MinWeek is the first week of a fantasy season
	MinWeek = 1
	// MaxWeek is the last week the Sleeper API can report
	MaxWeek = 22
	// LastRegularSeasonWeek is the final week that is not a playoff week
	LastRegularSeasonWeek = 18

	scoreEpsilon = 0.001
)

// LeagueID is the Sleeper league identifier, always a non-empty numeric string
type LeagueID string

// ParseLeagueID validates a raw league identifier
func ParseLeagueID(raw string) (LeagueID, error) {
	if raw == "" {
		return "", errors.Wrap(ErrInvalidValue, "league ID must be a non-empty numeric string")
	}
	if _, err := strconv.ParseFloat(raw, 64); err != nil {
		return "", errors.Wrapf(ErrInvalidValue, "league ID %q must be a non-empty numeric string", raw)
	}
	return LeagueID(raw), nil
}

func (id LeagueID) String() string {
	return string(id)
}

// Week is a season week in [MinWeek, MaxWeek]
type Week int

// NewWeek validates a week number
func NewWeek(n int) (Week, error) {
	if n < MinWeek || n > MaxWeek {
		return 0, errors.Wrapf(ErrInvalidValue, "week must be between %d and %d, got %d", MinWeek, MaxWeek, n)
	}
	return Week(n), nil
}

// Int returns the week as a plain integer
func (w Week) Int() int {
	return int(w)
}

// IsRegularSeason reports whether the week is week 18 or earlier
func (w Week) IsRegularSeason() bool {
	return w <= LastRegularSeasonWeek
}

// IsPlayoffs reports whether the week is after the regular season
func (w Week) IsPlayoffs() bool {
	return w > LastRegularSeasonWeek
}

// RosterID identifies a team within a league
type RosterID int

// NewRosterID validates a roster identifier
func NewRosterID(n int) (RosterID, error) {
	if n <= 0 {
		return 0, errors.Wrapf(ErrInvalidValue, "roster ID must be a positive integer, got %d", n)
	}
	return RosterID(n), nil
}

// Int returns the roster ID as a plain integer
func (r RosterID) Int() int {
	return int(r)
}

// Score is a non-negative fantasy point total
type Score float64

// NewScore validates a point total
func NewScore(v float64) (Score, error) {
	if v < 0 || math.IsNaN(v) {
		return 0, errors.Wrapf(ErrInvalidValue, "score cannot be negative, got %v", v)
	}
	return Score(v), nil
}

// Float64 returns the score as a float
func (s Score) Float64() float64 {
	return float64(s)
}

// GreaterThan is a strict comparison; equal scores are never greater
func (s Score) GreaterThan(other Score) bool {
	return s > other
}

// LessThan is a strict comparison
func (s Score) LessThan(other Score) bool {
	return s < other
}

// Equals compares two scores with a small tolerance for floating point noise
func (s Score) Equals(other Score) bool {
	return math.Abs(float64(s)-float64(other)) < scoreEpsilon
}
