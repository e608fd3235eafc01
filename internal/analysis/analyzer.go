package analysis

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/sam-maryland/sleeper-shoulda-coulda/internal/fantasy"
	"github.com/sirupsen/logrus"
)

// LeagueSummary is the league snapshot returned with every result
type LeagueSummary struct {
	LeagueID           string `json:"league_id"`
	Name               string `json:"name"`
	Season             string `json:"season"`
	TotalRosters       int    `json:"total_rosters"`
	CurrentWeek        int    `json:"current_week"`
	PlayoffWeekStart   int    `json:"playoff_week_start"`
	LeagueAverageMatch bool   `json:"league_average_match"`
}

func summarize(data *LeagueData) *LeagueSummary {
	s := &LeagueSummary{
		LeagueID:           data.LeagueID.String(),
		CurrentWeek:        data.CurrentWeek,
		LeagueAverageMatch: data.HasLeagueAverageMatch(),
	}
	if data.League != nil {
		s.Name = data.League.Name
		s.Season = data.League.Season
		s.TotalRosters = data.League.TotalRosters
		s.PlayoffWeekStart = data.League.Settings.PlayoffWeekStart
	}
	return s
}

// RecordLine is one manager's alternative record against one schedule
type RecordLine struct {
	OpponentRosterID fantasy.RosterID `json:"roster_id"`
	OpponentName     string           `json:"name"`
	Wins             int              `json:"win"`
	Losses           int              `json:"loss"`
	// DisplayWins and DisplayLosses include league average match results when the league plays them
	DisplayWins   int `json:"display_win"`
	DisplayLosses int `json:"display_loss"`
}

// ManagerReport is a manager with every alternative record
type ManagerReport struct {
	RosterID fantasy.RosterID `json:"roster_id"`
	Name     string           `json:"name"`
	Avatar   string           `json:"avatar,omitempty"`
	Wins     int              `json:"win"`
	Losses   int              `json:"loss"`
	Weeks    int              `json:"weeks_played"`
	Records  []RecordLine     `json:"records"`
}

// AnalysisResult is the outcome of a league analysis
type AnalysisResult struct {
	Success            bool                       `json:"success"`
	League             *LeagueSummary             `json:"league,omitempty"`
	Managers           []ManagerReport            `json:"managers,omitempty"`
	StrengthOfSchedule []fantasy.ScheduleStrength `json:"strength_of_schedule,omitempty"`
	Error              *Failure                   `json:"error,omitempty"`
	APICalls           int                        `json:"-"`
}

// BreakdownResult is the week by week comparison of one manager against one schedule
type BreakdownResult struct {
	Success    bool                     `json:"success"`
	League     *LeagueSummary           `json:"league,omitempty"`
	Manager    *ManagerReport           `json:"manager,omitempty"`
	ScheduleOf string                   `json:"schedule_of,omitempty"`
	Weeks      []fantasy.WeekComparison `json:"weeks,omitempty"`
	Wins       int                      `json:"win"`
	Losses     int                      `json:"loss"`
	Error      *Failure                 `json:"error,omitempty"`
	APICalls   int                      `json:"-"`
}

// Analyzer runs the alternative records analysis for a league
type Analyzer struct {
	data   *LeagueDataService
	logger *logrus.Logger
}

func NewAnalyzer(data *LeagueDataService, logger *logrus.Logger) *Analyzer {
	return &Analyzer{data: data, logger: logger}
}

// leagueRun is a league with every manager's records computed
type leagueRun struct {
	data     *LeagueData
	managers []*fantasy.Manager
	strength fantasy.StrengthOfSchedule
}

// AnalyzeLeague computes every manager's record on every other manager's schedule and ranks the schedules
func (a *Analyzer) AnalyzeLeague(ctx context.Context, rawLeagueID string) AnalysisResult {
	run, err := a.run(ctx, rawLeagueID)
	if err != nil {
		a.logFailure(rawLeagueID, err)
		return AnalysisResult{Error: NewFailure(err)}
	}

	reports := make([]ManagerReport, 0, len(run.managers))
	for _, m := range run.managers {
		reports = append(reports, report(m, run.data.HasLeagueAverageMatch()))
	}

	return AnalysisResult{
		Success:            true,
		League:             summarize(run.data),
		Managers:           reports,
		StrengthOfSchedule: run.strength.Ranked(),
		APICalls:           run.data.APICalls,
	}
}

// ScheduleBreakdown shows, week by week, how a manager would have fared on another manager's schedule
func (a *Analyzer) ScheduleBreakdown(ctx context.Context, rawLeagueID string, managerID, ownerID int) BreakdownResult {
	run, err := a.run(ctx, rawLeagueID)
	if err != nil {
		a.logFailure(rawLeagueID, err)
		return BreakdownResult{Error: NewFailure(err)}
	}

	weeks, err := fantasy.CompareAgainstSchedule(run.managers, fantasy.RosterID(managerID), fantasy.RosterID(ownerID))
	if err != nil {
		a.logFailure(rawLeagueID, err)
		return BreakdownResult{Error: NewFailure(err)}
	}

	index := fantasy.IndexManagers(run.managers)
	manager := report(index[fantasy.RosterID(managerID)], run.data.HasLeagueAverageMatch())
	result := BreakdownResult{
		Success:    true,
		League:     summarize(run.data),
		Manager:    &manager,
		ScheduleOf: index[fantasy.RosterID(ownerID)].DisplayName,
		Weeks:      weeks,
		APICalls:   run.data.APICalls,
	}
	for _, w := range weeks {
		if w.Win {
			result.Wins++
		} else {
			result.Losses++
		}
	}
	return result
}

func (a *Analyzer) run(ctx context.Context, rawLeagueID string) (*leagueRun, error) {
	leagueID, err := fantasy.ParseLeagueID(rawLeagueID)
	if err != nil {
		return nil, errors.Mark(err, ErrInvalidLeague)
	}

	data, err := a.data.CompleteLeagueData(ctx, leagueID)
	if err != nil {
		return nil, err
	}

	managers := make([]*fantasy.Manager, 0, len(data.Managers))
	for _, p := range data.Managers {
		managers = append(managers, &fantasy.Manager{
			RosterID:    p.RosterID,
			UserID:      p.UserID,
			DisplayName: p.Name,
			AvatarURL:   p.Avatar,
			Wins:        p.Wins,
			Losses:      p.Losses,
		})
	}

	fantasy.AttachSchedules(managers, fantasy.BuildSchedule(data.Matchups))
	if err := fantasy.ComputeAlternativeRecords(managers); err != nil {
		return nil, err
	}

	return &leagueRun{
		data:     data,
		managers: managers,
		strength: fantasy.AggregateStrengthOfSchedule(managers),
	}, nil
}

func (a *Analyzer) logFailure(leagueID string, err error) {
	a.logger.WithError(err).WithFields(logrus.Fields{
		"league_id": leagueID,
		"kind":      Classify(err),
	}).Warn("League analysis failed")
}

func report(m *fantasy.Manager, leagueAverageMatch bool) ManagerReport {
	r := ManagerReport{
		RosterID: m.RosterID,
		Name:     m.DisplayName,
		Avatar:   m.AvatarURL,
		Wins:     m.Wins,
		Losses:   m.Losses,
		Weeks:    m.Schedule.Len(),
		Records:  make([]RecordLine, 0, m.Records.Len()),
	}
	for _, rec := range m.Records.All() {
		wins, losses, _ := m.DisplayRecord(rec.OpponentRosterID, leagueAverageMatch)
		r.Records = append(r.Records, RecordLine{
			OpponentRosterID: rec.OpponentRosterID,
			OpponentName:     rec.OpponentDisplayName,
			Wins:             rec.Wins,
			Losses:           rec.Losses,
			DisplayWins:      wins,
			DisplayLosses:    losses,
		})
	}
	return r
}
