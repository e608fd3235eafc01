package analysis

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

var (
	// ErrInvalidLeague means the league ID does not resolve upstream
	ErrInvalidLeague = errors.New("invalid league")
	// ErrInsufficientData means the league exists but lacks users, rosters or a playable week
	ErrInsufficientData = errors.New("insufficient league data")
	// ErrAPIConnection means a request after the league lookup failed
	ErrAPIConnection = errors.New("sleeper api connection failure")
	// ErrNoDataForWeek means a week has no matchups
	ErrNoDataForWeek = errors.New("no matchup data for week")
)

// ErrorKind is the stable category a failure is reported under
type ErrorKind string

const (
	KindInvalidLeague    ErrorKind = "invalid_league"
	KindInsufficientData ErrorKind = "insufficient_data"
	KindAPIConnection    ErrorKind = "api_connection"
	KindNoDataForWeek    ErrorKind = "no_data_for_week"
)

const (
	msgInvalidLeague    = "This is not a valid Sleeper league ID!"
	msgInsufficientData = "Could not retrieve your league settings!"
	msgAPIConnection    = "There was an error fetching matchups!"
)

// weekError carries the week a NoDataForWeek failure is about
type weekError struct {
	week int
}

func (e *weekError) Error() string {
	return fmt.Sprintf("no matchup data for week %d", e.week)
}

func noDataForWeek(week int) error {
	return errors.Mark(&weekError{week: week}, ErrNoDataForWeek)
}

// Classify maps any failure to its category. Anything unrecognized is reported as an invalid league.
func Classify(err error) ErrorKind {
	switch {
	case errors.Is(err, ErrNoDataForWeek):
		return KindNoDataForWeek
	case errors.Is(err, ErrInsufficientData):
		return KindInsufficientData
	case errors.Is(err, ErrAPIConnection):
		return KindAPIConnection
	default:
		return KindInvalidLeague
	}
}

// Message is the user-facing text for a failure
func Message(err error) string {
	switch Classify(err) {
	case KindNoDataForWeek:
		var we *weekError
		if errors.As(err, &we) {
			return fmt.Sprintf("No matchup data available for week %d", we.week)
		}
		return "No matchup data available for this week"
	case KindInsufficientData:
		return msgInsufficientData
	case KindAPIConnection:
		return msgAPIConnection
	default:
		return msgInvalidLeague
	}
}

// Failure is the error part of a result as shown to callers
type Failure struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// NewFailure classifies err
func NewFailure(err error) *Failure {
	return &Failure{Kind: Classify(err), Message: Message(err)}
}
