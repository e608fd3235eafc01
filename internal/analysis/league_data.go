package analysis

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"
	"github.com/sam-maryland/sleeper-shoulda-coulda/internal/fantasy"
	"github.com/sam-maryland/sleeper-shoulda-coulda/internal/sleeper"
	"github.com/sirupsen/logrus"
)

const (
	unknownManagerName = "Unknown"
	userAvatarURL      = "https://sleepercdn.com/avatars/thumbs/%s"

	DefaultFetchWorkers = 4
)

// ManagerProfile is a roster joined with its owner
type ManagerProfile struct {
	RosterID fantasy.RosterID `json:"roster_id"`
	UserID   string           `json:"user_id"`
	Name     string           `json:"name"`
	Avatar   string           `json:"avatar,omitempty"`
	Wins     int              `json:"wins"`
	Losses   int              `json:"losses"`
}

// LeagueData is everything fetched for one league, ready for analysis
type LeagueData struct {
	LeagueID    fantasy.LeagueID    `json:"league_id"`
	League      *sleeper.League     `json:"league"`
	Users       []sleeper.User      `json:"-"`
	Rosters     []sleeper.Roster    `json:"-"`
	State       *sleeper.SportState `json:"-"`
	CurrentWeek int                 `json:"current_week"`
	Managers    []ManagerProfile    `json:"managers"`
	// Matchups holds completed weeks in week order; weeks without data are left out
	Matchups []fantasy.WeekMatchups `json:"-"`
	APICalls int                    `json:"-"`
}

// HasLeagueAverageMatch reports whether the league plays an extra game against the league median every week
func (d *LeagueData) HasLeagueAverageMatch() bool {
	return d.League != nil && d.League.Settings.HasLeagueAverageMatch()
}

// LeagueDataService assembles league data from the Sleeper API
type LeagueDataService struct {
	client  sleeper.Client
	workers int
	logger  *logrus.Logger
}

func NewLeagueDataService(client sleeper.Client, workers int, logger *logrus.Logger) *LeagueDataService {
	if workers < 1 {
		workers = DefaultFetchWorkers
	}
	return &LeagueDataService{
		client:  client,
		workers: workers,
		logger:  logger,
	}
}

// CompleteLeagueData fetches the league, its users and rosters, the sport state and every completed week of
// matchups. Failures are marked ErrInvalidLeague, ErrInsufficientData or ErrAPIConnection.
func (s *LeagueDataService) CompleteLeagueData(ctx context.Context, leagueID fantasy.LeagueID) (*LeagueData, error) {
	log := s.logger.WithField("league_id", leagueID.String())
	data, err := s.Basics(ctx, leagueID)
	if err != nil {
		return nil, err
	}

	weeks, err := s.fetchWeeks(ctx, leagueID, data.CurrentWeek-1)
	if err != nil {
		return nil, err
	}
	data.Matchups = weeks
	data.APICalls += data.CurrentWeek - 1

	log.WithFields(logrus.Fields{
		"current_week": data.CurrentWeek,
		"weeks":        len(weeks),
		"managers":     len(data.Managers),
	}).Info("League data assembled")

	return data, nil
}

// Basics fetches the league, users, rosters and sport state without any matchups
func (s *LeagueDataService) Basics(ctx context.Context, leagueID fantasy.LeagueID) (*LeagueData, error) {
	id := leagueID.String()
	log := s.logger.WithField("league_id", id)

	league, err := s.client.GetLeague(ctx, id)
	if err != nil {
		log.WithError(err).Warn("League lookup failed")
		return nil, errors.Mark(errors.Wrap(err, "fetching league"), ErrInvalidLeague)
	}

	users, err := s.client.GetLeagueUsers(ctx, id)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "fetching users"), ErrAPIConnection)
	}
	rosters, err := s.client.GetLeagueRosters(ctx, id)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "fetching rosters"), ErrAPIConnection)
	}
	sport := league.Sport
	if sport == "" {
		sport = sleeper.DefaultSport
	}
	state, err := s.client.GetSportState(ctx, sport)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "fetching sport state"), ErrAPIConnection)
	}

	currentWeek := min(state.Week, league.Settings.PlayoffWeekStart)
	if currentWeek <= 0 {
		return nil, errors.Wrapf(ErrInsufficientData, "current week is %d", currentWeek)
	}
	if len(users) == 0 {
		return nil, errors.Wrap(ErrInsufficientData, "league has no users")
	}
	if len(rosters) == 0 {
		return nil, errors.Wrap(ErrInsufficientData, "league has no rosters")
	}

	return &LeagueData{
		LeagueID:    leagueID,
		League:      league,
		Users:       users,
		Rosters:     rosters,
		State:       state,
		CurrentWeek: currentWeek,
		Managers:    buildProfiles(rosters, users),
		APICalls:    4,
	}, nil
}

// WeekMatchups fetches the raw matchups of a single week
func (s *LeagueDataService) WeekMatchups(ctx context.Context, leagueID fantasy.LeagueID, week fantasy.Week) ([]sleeper.Matchup, error) {
	matchups, err := s.client.GetMatchups(ctx, leagueID.String(), week.Int())
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "fetching week %d", week), ErrAPIConnection)
	}
	return matchups, nil
}

type weekResult struct {
	week     int
	matchups []sleeper.Matchup
	err      error
}

// fetchWeeks loads weeks 1..last on a bounded worker pool and returns the non-empty ones in week order
func (s *LeagueDataService) fetchWeeks(ctx context.Context, leagueID fantasy.LeagueID, last int) ([]fantasy.WeekMatchups, error) {
	if last < 1 {
		return nil, nil
	}

	pool, err := ants.NewPool(min(s.workers, last))
	if err != nil {
		return nil, errors.Wrap(err, "create worker pool")
	}
	defer pool.Release()

	results := make(chan weekResult, last)
	var workers sync.WaitGroup
	for week := 1; week <= last; week++ {
		week := week
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			matchups, err := s.client.GetMatchups(ctx, leagueID.String(), week)
			results <- weekResult{week: week, matchups: matchups, err: err}
		}); err != nil {
			workers.Done()
			workers.Wait()
			return nil, errors.Wrap(err, "submit task to worker pool")
		}
	}

	workers.Wait()
	close(results)

	rows := make([]weekResult, 0, last)
	for row := range results {
		if row.err != nil {
			s.logger.WithError(row.err).WithFields(logrus.Fields{
				"league_id": leagueID.String(),
				"week":      row.week,
			}).Error("Failed to fetch matchups")
			return nil, errors.Mark(errors.Wrapf(row.err, "fetching week %d", row.week), ErrAPIConnection)
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].week < rows[j].week
	})

	weeks := make([]fantasy.WeekMatchups, 0, len(rows))
	for _, row := range rows {
		if len(row.matchups) == 0 {
			continue
		}
		weeks = append(weeks, ToWeekMatchups(fantasy.Week(row.week), row.matchups))
	}
	return weeks, nil
}

// ToWeekMatchups converts a week of Sleeper matchups to schedule input
func ToWeekMatchups(week fantasy.Week, matchups []sleeper.Matchup) fantasy.WeekMatchups {
	records := make([]fantasy.MatchupRecord, 0, len(matchups))
	for _, m := range matchups {
		records = append(records, fantasy.MatchupRecord{
			RosterID:  fantasy.RosterID(m.RosterID),
			MatchupID: m.MatchupID,
			Points:    m.Points,
		})
	}
	return fantasy.WeekMatchups{Week: week, Records: records}
}

func buildProfiles(rosters []sleeper.Roster, users []sleeper.User) []ManagerProfile {
	byID := make(map[string]sleeper.User, len(users))
	for _, u := range users {
		byID[u.UserID] = u
	}

	profiles := make([]ManagerProfile, 0, len(rosters))
	for _, r := range rosters {
		p := ManagerProfile{
			RosterID: fantasy.RosterID(r.RosterID),
			UserID:   r.OwnerID,
			Name:     unknownManagerName,
			Wins:     r.Settings.Wins,
			Losses:   r.Settings.Losses,
		}
		if u, ok := byID[r.OwnerID]; ok && r.OwnerID != "" {
			p.Name = u.DisplayName
			p.Avatar = userAvatar(u)
		}
		profiles = append(profiles, p)
	}
	return profiles
}

func userAvatar(u sleeper.User) string {
	if u.Metadata.Avatar != "" {
		return u.Metadata.Avatar
	}
	if u.Avatar != "" {
		return fmt.Sprintf(userAvatarURL, u.Avatar)
	}
	return ""
}
