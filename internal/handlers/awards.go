package handlers

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sam-maryland/sleeper-shoulda-coulda/internal/analysis"
	"github.com/sam-maryland/sleeper-shoulda-coulda/internal/awards"
	"github.com/sirupsen/logrus"
)

const defaultAwardsWeek = 1

// PerformanceAwardsArgs represents the parameters for the performance_awards tool
type PerformanceAwardsArgs struct {
	LeagueID string `json:"league_id" validate:"required,numeric"`
	Week     int    `json:"week" validate:"omitempty,min=1,max=22"`
}

// AwardTalliesArgs represents the parameters for the award_tallies tool
type AwardTalliesArgs struct {
	LeagueID    string `json:"league_id" validate:"required,numeric"`
	ThroughWeek int    `json:"through_week" validate:"required,min=1,max=22"`
	ManagerName string `json:"manager_name,omitempty" validate:"omitempty,max=100"`
}

// ManagerTally is the award_tallies payload when a single manager was asked for
type ManagerTally struct {
	League       *analysis.LeagueSummary `json:"league"`
	ThroughWeek  int                     `json:"through_week"`
	WeeksCounted []int                   `json:"weeks_counted,omitempty"`
	Tally        awards.Tally            `json:"tally"`
}

// AwardsHandler serves the performance awards tools
type AwardsHandler struct {
	service   *analysis.AwardsService
	validator *validator.Validate
	logger    *logrus.Logger
}

func NewAwardsHandler(service *analysis.AwardsService, logger *logrus.Logger) *AwardsHandler {
	return &AwardsHandler{
		service:   service,
		validator: newValidator(),
		logger:    logger,
	}
}

// PerformanceAwardsTool returns the performance_awards MCP tool definition
func (h *AwardsHandler) PerformanceAwardsTool() mcp.Tool {
	return mcp.Tool{
		Name: "performance_awards",
		Description: "Hand out the weekly awards for a league: highest and lowest score, best and worst lineup " +
			"management, blowouts, projections and top players by position",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"league_id": map[string]interface{}{
					"type":        "string",
					"description": "The Sleeper league ID",
					"required":    true,
				},
				"week": map[string]interface{}{
					"type":        "integer",
					"description": "Week number (1-22), defaults to 1",
				},
			},
		},
	}
}

// HandlePerformanceAwards handles the performance_awards tool call
func (h *AwardsHandler) HandlePerformanceAwards(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error) {
	h.logger.WithField("args", args).Info("Handling performance_awards")

	var params PerformanceAwardsArgs
	if err := decodeArgs(ctx, h.validator, args, &params); err != nil {
		h.logger.WithError(err).Warn("Rejected tool arguments")
		return invalidArguments(args), nil
	}
	if params.Week == 0 {
		params.Week = defaultAwardsWeek
	}

	result := h.service.AnalyzeWeeklyPerformance(ctx, params.LeagueID, params.Week)
	if !result.Success {
		return failure(params.LeagueID, result.Error.Message), nil
	}

	summary := fmt.Sprintf("%s handed out in %s week %d", pluralize(len(result.Awards), "award"), result.League.Name, result.Week)
	return respond(h.logger, envelope(params.LeagueID, result, summary, result.APICalls))
}

// AwardTalliesTool returns the award_tallies MCP tool definition
func (h *AwardsHandler) AwardTalliesTool() mcp.Tool {
	return mcp.Tool{
		Name:        "award_tallies",
		Description: "Count the weekly awards each manager has won from week 1 through a given week",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"league_id": map[string]interface{}{
					"type":        "string",
					"description": "The Sleeper league ID",
					"required":    true,
				},
				"through_week": map[string]interface{}{
					"type":        "integer",
					"description": "Last week to count (1-22)",
					"required":    true,
				},
				"manager_name": map[string]interface{}{
					"type":        "string",
					"description": "Only return this manager's tally; close spellings are matched",
				},
			},
		},
	}
}

// HandleAwardTallies handles the award_tallies tool call
func (h *AwardsHandler) HandleAwardTallies(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error) {
	h.logger.WithField("args", args).Info("Handling award_tallies")

	var params AwardTalliesArgs
	if err := decodeArgs(ctx, h.validator, args, &params); err != nil {
		h.logger.WithError(err).Warn("Rejected tool arguments")
		return invalidArguments(args), nil
	}

	result := h.service.AwardTallies(ctx, params.LeagueID, params.ThroughWeek)
	if !result.Success {
		return failure(params.LeagueID, result.Error.Message), nil
	}

	if params.ManagerName == "" {
		summary := fmt.Sprintf("Award tallies for %s across %s", pluralize(result.Tallies.Len(), "manager"),
			pluralize(len(result.WeeksCounted), "week"))
		return respond(h.logger, envelope(params.LeagueID, result, summary, result.APICalls))
	}

	tally, ok := result.Tallies.FindManager(params.ManagerName)
	if !ok {
		return failure(params.LeagueID, fmt.Sprintf("No manager named %q in this league", params.ManagerName)), nil
	}

	payload := ManagerTally{
		League:       result.League,
		ThroughWeek:  result.ThroughWeek,
		WeeksCounted: result.WeeksCounted,
		Tally:        tally,
	}
	summary := fmt.Sprintf("%s has won %s through week %d", tally.ManagerName, pluralize(tally.Total, "award"), result.ThroughWeek)
	return respond(h.logger, envelope(params.LeagueID, payload, summary, result.APICalls))
}
