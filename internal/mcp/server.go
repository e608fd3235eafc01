package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sam-maryland/sleeper-shoulda-coulda/internal/handlers"
	"github.com/sirupsen/logrus"
)

const (
	serverName    = "Sleeper Shoulda Coulda Woulda"
	serverVersion = "1.0.0"
)

type toolHandler func(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error)

// NewShouldaCouldaServer registers the analysis and awards tools on a new MCP server
func NewShouldaCouldaServer(analysisHandler *handlers.AnalysisHandler, awardsHandler *handlers.AwardsHandler, logger *logrus.Logger) *server.DefaultServer {
	s := server.NewDefaultServer(serverName, serverVersion)

	if s == nil {
		logger.Error("Failed to create MCP server instance")
		return nil
	}

	logger.Info("MCP server instance created successfully")

	tools := []mcp.Tool{
		analysisHandler.ShouldaCouldaTool(),
		analysisHandler.ScheduleBreakdownTool(),
		awardsHandler.PerformanceAwardsTool(),
		awardsHandler.AwardTalliesTool(),
	}
	routes := map[string]toolHandler{
		"shoulda_coulda_woulda": analysisHandler.HandleShouldaCoulda,
		"schedule_breakdown":    analysisHandler.HandleScheduleBreakdown,
		"performance_awards":    awardsHandler.HandlePerformanceAwards,
		"award_tallies":         awardsHandler.HandleAwardTallies,
	}

	dispatch := route(routes, logger)

	// Set up list tools handler
	s.HandleListTools(func(ctx context.Context, cursor *string) (*mcp.ListToolsResult, error) {
		logger.WithField("tools_count", len(tools)).Info("Listing available tools")

		return &mcp.ListToolsResult{
			Tools: tools,
		}, nil
	})

	// Set up call tool handler
	s.HandleCallTool(func(ctx context.Context, name string, arguments map[string]interface{}) (*mcp.CallToolResult, error) {
		logger.WithFields(logrus.Fields{
			"tool": name,
			"args": arguments,
		}).Info("Tool called")

		return dispatch(ctx, name, arguments)
	})

	logger.Info("All tools registered successfully")
	return s
}

// route dispatches a tool call by name; unknown tools get an error result
func route(routes map[string]toolHandler, logger *logrus.Logger) func(ctx context.Context, name string, arguments map[string]interface{}) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, name string, arguments map[string]interface{}) (*mcp.CallToolResult, error) {
		handle, ok := routes[name]
		if !ok {
			logger.WithField("tool", name).Warn("Unknown tool called")
			return &mcp.CallToolResult{
				Content: []mcp.Content{
					&mcp.TextContent{
						Type: "text",
						Text: "Unknown tool: " + name,
					},
				},
				IsError: true,
			}, nil
		}
		return handle(ctx, arguments)
	}
}
