// Package sleepertest provides a function-field fake of sleeper.Client for tests.
package sleepertest

import (
	"context"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"github.com/sam-maryland/sleeper-shoulda-coulda/internal/sleeper"
)

// MockClient is a mock implementation of the sleeper.Client interface for testing
type MockClient struct {
	GetLeagueFunc        func(ctx context.Context, leagueID string) (*sleeper.League, error)
	GetLeagueUsersFunc   func(ctx context.Context, leagueID string) ([]sleeper.User, error)
	GetLeagueRostersFunc func(ctx context.Context, leagueID string) ([]sleeper.Roster, error)
	GetMatchupsFunc      func(ctx context.Context, leagueID string, week int) ([]sleeper.Matchup, error)
	GetSportStateFunc    func(ctx context.Context, sport string) (*sleeper.SportState, error)
	GetAllPlayersFunc    func(ctx context.Context, sport string) (map[string]sleeper.Player, error)

	calls atomic.Int64
}

var errNotImplemented = errors.New("not implemented")

// Calls is the number of client methods invoked so far
func (m *MockClient) Calls() int {
	return int(m.calls.Load())
}

func (m *MockClient) GetLeague(ctx context.Context, leagueID string) (*sleeper.League, error) {
	m.calls.Add(1)
	if m.GetLeagueFunc != nil {
		return m.GetLeagueFunc(ctx, leagueID)
	}
	return nil, errNotImplemented
}

func (m *MockClient) GetLeagueUsers(ctx context.Context, leagueID string) ([]sleeper.User, error) {
	m.calls.Add(1)
	if m.GetLeagueUsersFunc != nil {
		return m.GetLeagueUsersFunc(ctx, leagueID)
	}
	return nil, errNotImplemented
}

func (m *MockClient) GetLeagueRosters(ctx context.Context, leagueID string) ([]sleeper.Roster, error) {
	m.calls.Add(1)
	if m.GetLeagueRostersFunc != nil {
		return m.GetLeagueRostersFunc(ctx, leagueID)
	}
	return nil, errNotImplemented
}

func (m *MockClient) GetMatchups(ctx context.Context, leagueID string, week int) ([]sleeper.Matchup, error) {
	m.calls.Add(1)
	if m.GetMatchupsFunc != nil {
		return m.GetMatchupsFunc(ctx, leagueID, week)
	}
	return nil, errNotImplemented
}

func (m *MockClient) GetSportState(ctx context.Context, sport string) (*sleeper.SportState, error) {
	m.calls.Add(1)
	if m.GetSportStateFunc != nil {
		return m.GetSportStateFunc(ctx, sport)
	}
	return nil, errNotImplemented
}

func (m *MockClient) GetAllPlayers(ctx context.Context, sport string) (map[string]sleeper.Player, error) {
	m.calls.Add(1)
	if m.GetAllPlayersFunc != nil {
		return m.GetAllPlayersFunc(ctx, sport)
	}
	return nil, errNotImplemented
}

// League wires a fixed league into a MockClient. Weeks missing from Matchups return an empty slice.
type League struct {
	League   sleeper.League
	Users    []sleeper.User
	Rosters  []sleeper.Roster
	State    sleeper.SportState
	Matchups map[int][]sleeper.Matchup
	Players  map[string]sleeper.Player
}

// Client returns a MockClient serving the league under its own ID. Any other league ID is not found.
func (l *League) Client() *MockClient {
	found := func(id string) bool { return id == l.League.LeagueID }
	notFound := &sleeper.SleeperError{StatusCode: 404, Message: "league not found"}

	return &MockClient{
		GetLeagueFunc: func(_ context.Context, leagueID string) (*sleeper.League, error) {
			if !found(leagueID) {
				return nil, notFound
			}
			league := l.League
			return &league, nil
		},
		GetLeagueUsersFunc: func(_ context.Context, leagueID string) ([]sleeper.User, error) {
			if !found(leagueID) {
				return nil, notFound
			}
			return l.Users, nil
		},
		GetLeagueRostersFunc: func(_ context.Context, leagueID string) ([]sleeper.Roster, error) {
			if !found(leagueID) {
				return nil, notFound
			}
			return l.Rosters, nil
		},
		GetMatchupsFunc: func(_ context.Context, leagueID string, week int) ([]sleeper.Matchup, error) {
			if !found(leagueID) {
				return nil, notFound
			}
			return l.Matchups[week], nil
		},
		GetSportStateFunc: func(context.Context, string) (*sleeper.SportState, error) {
			state := l.State
			return &state, nil
		},
		GetAllPlayersFunc: func(context.Context, string) (map[string]sleeper.Player, error) {
			return l.Players, nil
		},
	}
}
