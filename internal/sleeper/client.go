package sleeper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
)

const (
	BaseURL        = "https://api.sleeper.app/v1"
	DefaultTimeout = 10 * time.Second
	DefaultSport   = "nfl"
)

// Client defines the interface for interacting with the Sleeper API
type Client interface {
	// League methods
	GetLeague(ctx context.Context, leagueID string) (*League, error)
	GetLeagueUsers(ctx context.Context, leagueID string) ([]User, error)
	GetLeagueRosters(ctx context.Context, leagueID string) ([]Roster, error)
	GetMatchups(ctx context.Context, leagueID string, week int) ([]Matchup, error)

	// Sport methods
	GetSportState(ctx context.Context, sport string) (*SportState, error)
	GetAllPlayers(ctx context.Context, sport string) (map[string]Player, error)
}

// HTTPClient implements the Client interface using HTTP requests
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger
}

// Option customizes an HTTPClient
type Option func(*HTTPClient)

// WithBaseURL points the client at a different API root
func WithBaseURL(baseURL string) Option {
	return func(c *HTTPClient) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// WithTimeout sets the per-request timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *HTTPClient) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// NewHTTPClient creates a new HTTP client for the Sleeper API
func NewHTTPClient(logger *logrus.Logger, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: BaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// makeRequest performs an HTTP GET request to the Sleeper API and decodes the JSON body into result
func (c *HTTPClient) makeRequest(ctx context.Context, endpoint string, result interface{}) error {
	url := fmt.Sprintf("%s%s", c.baseURL, endpoint)

	c.logger.WithField("url", url).Debug("Making API request")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrap(err, "failed to build request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WithError(err).Error("HTTP request failed")
		return errors.Wrap(err, "http request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.WithError(err).Error("Failed to read response body")
		return errors.Wrap(err, "failed to read response")
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.WithFields(logrus.Fields{
			"status_code": resp.StatusCode,
			"response":    string(body),
		}).Error("API request failed")

		return &SleeperError{
			Type:       "api_error",
			Message:    fmt.Sprintf("API request failed with status %d: %s", resp.StatusCode, string(body)),
			StatusCode: resp.StatusCode,
		}
	}

	if err := sonic.Unmarshal(body, result); err != nil {
		c.logger.WithError(err).WithField("bytes", len(body)).Error("Failed to unmarshal response")
		return errors.Wrap(err, "failed to unmarshal response")
	}

	c.logger.Debug("API request completed successfully")
	return nil
}

// GetLeague retrieves league information. Sleeper answers unknown leagues with a literal null.
func (c *HTTPClient) GetLeague(ctx context.Context, leagueID string) (*League, error) {
	endpoint := fmt.Sprintf("/league/%s", leagueID)
	var league *League

	if err := c.makeRequest(ctx, endpoint, &league); err != nil {
		return nil, errors.Wrapf(err, "failed to get league %s", leagueID)
	}
	if league == nil || league.LeagueID == "" {
		return nil, &SleeperError{
			Type:       "not_found",
			Message:    fmt.Sprintf("league %s not found", leagueID),
			StatusCode: http.StatusNotFound,
			LeagueID:   leagueID,
		}
	}

	return league, nil
}

// GetLeagueUsers retrieves all users in a league
func (c *HTTPClient) GetLeagueUsers(ctx context.Context, leagueID string) ([]User, error) {
	endpoint := fmt.Sprintf("/league/%s/users", leagueID)
	var users []User

	if err := c.makeRequest(ctx, endpoint, &users); err != nil {
		return nil, errors.Wrapf(err, "failed to get users for league %s", leagueID)
	}

	return users, nil
}

// GetLeagueRosters retrieves all rosters in a league
func (c *HTTPClient) GetLeagueRosters(ctx context.Context, leagueID string) ([]Roster, error) {
	endpoint := fmt.Sprintf("/league/%s/rosters", leagueID)
	var rosters []Roster

	if err := c.makeRequest(ctx, endpoint, &rosters); err != nil {
		return nil, errors.Wrapf(err, "failed to get rosters for league %s", leagueID)
	}

	return rosters, nil
}

// GetMatchups retrieves matchups for a specific week
func (c *HTTPClient) GetMatchups(ctx context.Context, leagueID string, week int) ([]Matchup, error) {
	endpoint := fmt.Sprintf("/league/%s/matchups/%d", leagueID, week)
	var matchups []Matchup

	if err := c.makeRequest(ctx, endpoint, &matchups); err != nil {
		return nil, errors.Wrapf(err, "failed to get matchups for league %s week %d", leagueID, week)
	}

	return matchups, nil
}

// GetSportState retrieves the current season state (week, season type) for a sport
func (c *HTTPClient) GetSportState(ctx context.Context, sport string) (*SportState, error) {
	endpoint := fmt.Sprintf("/state/%s", sport)
	var state SportState

	if err := c.makeRequest(ctx, endpoint, &state); err != nil {
		return nil, errors.Wrapf(err, "failed to get %s state", sport)
	}

	return &state, nil
}

// GetAllPlayers retrieves every player of a sport keyed by player ID. The payload is several megabytes;
// callers are expected to cache it.
func (c *HTTPClient) GetAllPlayers(ctx context.Context, sport string) (map[string]Player, error) {
	endpoint := fmt.Sprintf("/players/%s", sport)
	var players map[string]Player

	if err := c.makeRequest(ctx, endpoint, &players); err != nil {
		return nil, errors.Wrapf(err, "failed to get %s players", sport)
	}

	return players, nil
}
