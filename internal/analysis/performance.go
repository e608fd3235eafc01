package analysis

import (
	"context"
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/sam-maryland/sleeper-shoulda-coulda/internal/awards"
	"github.com/sam-maryland/sleeper-shoulda-coulda/internal/config"
	"github.com/sam-maryland/sleeper-shoulda-coulda/internal/fantasy"
	"github.com/sam-maryland/sleeper-shoulda-coulda/internal/players"
	"github.com/sam-maryland/sleeper-shoulda-coulda/internal/sleeper"
	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/pool"
)

// PlayerDirectory hands out the current player snapshot
type PlayerDirectory interface {
	Snapshot(ctx context.Context) (*players.Snapshot, error)
}

// LineupConfig resolves per-league lineup overrides
type LineupConfig interface {
	GetLineup(leagueID string) *config.LineupSettings
}

// PerformanceAwardsResult is the outcome of a weekly awards run
type PerformanceAwardsResult struct {
	Success  bool           `json:"success"`
	League   *LeagueSummary `json:"league,omitempty"`
	Week     int            `json:"week"`
	Awards   []awards.Award `json:"awards,omitempty"`
	Error    *Failure       `json:"error,omitempty"`
	APICalls int            `json:"-"`
}

// TallyResult is the award count per manager over a range of weeks
type TallyResult struct {
	Success      bool            `json:"success"`
	League       *LeagueSummary  `json:"league,omitempty"`
	ThroughWeek  int             `json:"through_week"`
	WeeksCounted []int           `json:"weeks_counted,omitempty"`
	WeeksSkipped []int           `json:"weeks_skipped,omitempty"`
	Tallies      *awards.Tallies `json:"tallies,omitempty"`
	Error        *Failure        `json:"error,omitempty"`
	APICalls     int             `json:"-"`
}

// AwardsService computes weekly performance awards and season tallies
type AwardsService struct {
	data      *LeagueDataService
	directory PlayerDirectory
	lineups   LineupConfig
	workers   int
	logger    *logrus.Logger
}

func NewAwardsService(data *LeagueDataService, directory PlayerDirectory, lineups LineupConfig, workers int, logger *logrus.Logger) *AwardsService {
	if workers < 1 {
		workers = DefaultFetchWorkers
	}
	return &AwardsService{
		data:      data,
		directory: directory,
		lineups:   lineups,
		workers:   workers,
		logger:    logger,
	}
}

// AnalyzeWeeklyPerformance hands out the awards for one week of a league
func (s *AwardsService) AnalyzeWeeklyPerformance(ctx context.Context, rawLeagueID string, week int) PerformanceAwardsResult {
	log := s.logger.WithFields(logrus.Fields{"league_id": rawLeagueID, "week": week})

	data, engine, err := s.prepare(ctx, rawLeagueID)
	if err != nil {
		log.WithError(err).Warn("Performance awards failed")
		return PerformanceAwardsResult{Week: week, Error: NewFailure(err)}
	}

	list, err := s.weekAwards(ctx, data, engine, week)
	if err != nil {
		log.WithError(err).Warn("Performance awards failed")
		return PerformanceAwardsResult{League: summarize(data), Week: week, Error: NewFailure(err)}
	}

	log.WithField("awards", len(list)).Info("Performance awards computed")
	return PerformanceAwardsResult{
		Success:  true,
		League:   summarize(data),
		Week:     week,
		Awards:   list,
		APICalls: data.APICalls + 1,
	}
}

type weekAwards struct {
	week   int
	awards []awards.Award
	empty  bool
}

// AwardTallies counts the awards every manager won in weeks 1 through throughWeek. Weeks without
// matchup data are skipped; any other failure aborts the run.
func (s *AwardsService) AwardTallies(ctx context.Context, rawLeagueID string, throughWeek int) TallyResult {
	log := s.logger.WithFields(logrus.Fields{"league_id": rawLeagueID, "through_week": throughWeek})

	last, err := fantasy.NewWeek(throughWeek)
	if err != nil {
		return TallyResult{ThroughWeek: throughWeek, Error: NewFailure(errors.Mark(err, ErrInsufficientData))}
	}

	data, engine, err := s.prepare(ctx, rawLeagueID)
	if err != nil {
		log.WithError(err).Warn("Award tallies failed")
		return TallyResult{ThroughWeek: throughWeek, Error: NewFailure(err)}
	}

	p := pool.NewWithResults[weekAwards]().
		WithContext(ctx).
		WithMaxGoroutines(min(s.workers, last.Int())).
		WithCancelOnError().
		WithFirstError()
	for week := 1; week <= last.Int(); week++ {
		week := week
		p.Go(func(ctx context.Context) (weekAwards, error) {
			list, err := s.weekAwards(ctx, data, engine, week)
			if errors.Is(err, ErrNoDataForWeek) {
				return weekAwards{week: week, empty: true}, nil
			}
			if err != nil {
				return weekAwards{}, err
			}
			return weekAwards{week: week, awards: list}, nil
		})
	}
	weeks, err := p.Wait()
	if err != nil {
		log.WithError(err).Warn("Award tallies failed")
		return TallyResult{League: summarize(data), ThroughWeek: throughWeek, Error: NewFailure(err)}
	}

	sort.Slice(weeks, func(i, j int) bool {
		return weeks[i].week < weeks[j].week
	})

	result := TallyResult{
		Success:     true,
		League:      summarize(data),
		ThroughWeek: throughWeek,
		Tallies:     awards.NewTallies(managerInfos(data.Managers)),
		APICalls:    data.APICalls + last.Int(),
	}
	for _, w := range weeks {
		if w.empty {
			result.WeeksSkipped = append(result.WeeksSkipped, w.week)
			continue
		}
		result.WeeksCounted = append(result.WeeksCounted, w.week)
		result.Tallies.Add(w.awards)
	}

	log.WithFields(logrus.Fields{
		"counted": len(result.WeeksCounted),
		"skipped": len(result.WeeksSkipped),
	}).Info("Award tallies computed")
	return result
}

// prepare fetches the league basics and builds an awards engine with the league's lineup and the player directory
func (s *AwardsService) prepare(ctx context.Context, rawLeagueID string) (*LeagueData, *awards.Engine, error) {
	leagueID, err := fantasy.ParseLeagueID(rawLeagueID)
	if err != nil {
		return nil, nil, errors.Mark(err, ErrInvalidLeague)
	}

	data, err := s.data.Basics(ctx, leagueID)
	if err != nil {
		return nil, nil, err
	}

	snapshot, err := s.directory.Snapshot(ctx)
	if err != nil {
		return nil, nil, errors.Mark(errors.Wrap(err, "loading player directory"), ErrAPIConnection)
	}

	return data, awards.NewEngine(snapshot, s.lineupSlots(leagueID)), nil
}

func (s *AwardsService) lineupSlots(leagueID fantasy.LeagueID) awards.LineupSlots {
	if s.lineups == nil {
		return awards.DefaultLineupSlots()
	}
	custom := s.lineups.GetLineup(leagueID.String())
	if custom == nil {
		return awards.DefaultLineupSlots()
	}
	slots, err := awards.ParseLineupSlots(custom.Slots, custom.Flex, custom.FlexPositions)
	if err != nil {
		s.logger.WithError(err).WithField("league_id", leagueID.String()).Warn("Ignoring lineup override")
		return awards.DefaultLineupSlots()
	}
	return slots
}

func (s *AwardsService) weekAwards(ctx context.Context, data *LeagueData, engine *awards.Engine, week int) ([]awards.Award, error) {
	w, err := fantasy.NewWeek(week)
	if err != nil {
		return nil, noDataForWeek(week)
	}

	raw, err := s.data.WeekMatchups(ctx, data.LeagueID, w)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, noDataForWeek(week)
	}

	list, err := engine.WeeklyAwards(toTeamMatchups(raw), awards.NewManagers(managerInfos(data.Managers)))
	if errors.Is(err, awards.ErrNoMatchups) {
		return nil, noDataForWeek(week)
	}
	return list, err
}

func toTeamMatchups(raw []sleeper.Matchup) []awards.TeamMatchup {
	out := make([]awards.TeamMatchup, 0, len(raw))
	for _, m := range raw {
		out = append(out, awards.TeamMatchup{
			RosterID:       fantasy.RosterID(m.RosterID),
			MatchupID:      m.MatchupID,
			Points:         m.Points,
			CustomPoints:   m.CustomPoints,
			Starters:       m.Starters,
			StartersPoints: m.StartersPoints,
			Players:        m.Players,
			PlayersPoints:  m.PlayersPoints,
		})
	}
	return out
}

func managerInfos(profiles []ManagerProfile) []awards.ManagerInfo {
	out := make([]awards.ManagerInfo, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, awards.ManagerInfo{RosterID: p.RosterID, Name: p.Name, Avatar: p.Avatar})
	}
	return out
}
