package handlers

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sam-maryland/sleeper-shoulda-coulda/internal/analysis"
	"github.com/sirupsen/logrus"
)

// ShouldaCouldaArgs represents the parameters for the shoulda_coulda_woulda tool
type ShouldaCouldaArgs struct {
	LeagueID string `json:"league_id" validate:"required,numeric"`
}

// ScheduleBreakdownArgs represents the parameters for the schedule_breakdown tool
type ScheduleBreakdownArgs struct {
	LeagueID        string `json:"league_id" validate:"required,numeric"`
	RosterID        int    `json:"roster_id" validate:"required,min=1"`
	ScheduleOwnerID int    `json:"schedule_owner_id" validate:"required,min=1"`
}

// AnalysisHandler serves the alternative records tools
type AnalysisHandler struct {
	analyzer  *analysis.Analyzer
	validator *validator.Validate
	logger    *logrus.Logger
}

func NewAnalysisHandler(analyzer *analysis.Analyzer, logger *logrus.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		analyzer:  analyzer,
		validator: newValidator(),
		logger:    logger,
	}
}

// ShouldaCouldaTool returns the shoulda_coulda_woulda MCP tool definition
func (h *AnalysisHandler) ShouldaCouldaTool() mcp.Tool {
	return mcp.Tool{
		Name: "shoulda_coulda_woulda",
		Description: "Show the record every manager would have had playing every other manager's schedule, " +
			"and rank the schedules from toughest to easiest",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"league_id": map[string]interface{}{
					"type":        "string",
					"description": "The Sleeper league ID",
					"required":    true,
				},
			},
		},
	}
}

// HandleShouldaCoulda handles the shoulda_coulda_woulda tool call
func (h *AnalysisHandler) HandleShouldaCoulda(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error) {
	h.logger.WithField("args", args).Info("Handling shoulda_coulda_woulda")

	var params ShouldaCouldaArgs
	if err := decodeArgs(ctx, h.validator, args, &params); err != nil {
		h.logger.WithError(err).Warn("Rejected tool arguments")
		return invalidArguments(args), nil
	}

	result := h.analyzer.AnalyzeLeague(ctx, params.LeagueID)
	if !result.Success {
		return failure(params.LeagueID, result.Error.Message), nil
	}

	summary := fmt.Sprintf("%s: alternative records for %s through week %d",
		result.League.Name, pluralize(len(result.Managers), "manager"), result.League.CurrentWeek-1)
	if len(result.StrengthOfSchedule) > 0 {
		toughest := result.StrengthOfSchedule[0]
		for _, m := range result.Managers {
			if m.RosterID == toughest.RosterID {
				summary += fmt.Sprintf("; toughest schedule belongs to %s (%d-%d across the league)", m.Name, toughest.Wins, toughest.Losses)
				break
			}
		}
	}

	return respond(h.logger, envelope(params.LeagueID, result, summary, result.APICalls))
}

// ScheduleBreakdownTool returns the schedule_breakdown MCP tool definition
func (h *AnalysisHandler) ScheduleBreakdownTool() mcp.Tool {
	return mcp.Tool{
		Name:        "schedule_breakdown",
		Description: "Week by week detail of how one manager would have fared on another manager's schedule",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"league_id": map[string]interface{}{
					"type":        "string",
					"description": "The Sleeper league ID",
					"required":    true,
				},
				"roster_id": map[string]interface{}{
					"type":        "integer",
					"description": "Roster ID of the manager whose scores are replayed",
					"required":    true,
				},
				"schedule_owner_id": map[string]interface{}{
					"type":        "integer",
					"description": "Roster ID of the manager whose schedule is borrowed",
					"required":    true,
				},
			},
		},
	}
}

// HandleScheduleBreakdown handles the schedule_breakdown tool call
func (h *AnalysisHandler) HandleScheduleBreakdown(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error) {
	h.logger.WithField("args", args).Info("Handling schedule_breakdown")

	var params ScheduleBreakdownArgs
	if err := decodeArgs(ctx, h.validator, args, &params); err != nil {
		h.logger.WithError(err).Warn("Rejected tool arguments")
		return invalidArguments(args), nil
	}

	result := h.analyzer.ScheduleBreakdown(ctx, params.LeagueID, params.RosterID, params.ScheduleOwnerID)
	if !result.Success {
		return failure(params.LeagueID, result.Error.Message), nil
	}

	summary := fmt.Sprintf("%s would have gone %d-%d on %s's schedule",
		result.Manager.Name, result.Wins, result.Losses, result.ScheduleOf)

	return respond(h.logger, envelope(params.LeagueID, result, summary, result.APICalls))
}
