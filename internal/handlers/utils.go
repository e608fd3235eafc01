package handlers

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sam-maryland/sleeper-shoulda-coulda/internal/sleeper"
	"github.com/sirupsen/logrus"
)

const (
	responseSource = "sleeper_api"

	msgInvalidArguments = "Invalid league ID or week provided"
)

// ErrInvalidArguments marks tool arguments that could not be decoded or failed validation
var ErrInvalidArguments = errors.New("invalid tool arguments")

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeArgs copies raw tool arguments into dst and validates it
func decodeArgs(ctx context.Context, v *validator.Validate, args map[string]interface{}, dst interface{}) error {
	raw, err := sonic.Marshal(args)
	if err != nil {
		return errors.Mark(errors.Wrap(err, "encode arguments"), ErrInvalidArguments)
	}
	if err := sonic.Unmarshal(raw, dst); err != nil {
		return errors.Mark(errors.Wrap(err, "decode arguments"), ErrInvalidArguments)
	}
	if err := v.StructCtx(ctx, dst); err != nil {
		return errors.Mark(errors.Wrap(err, "validation failed"), ErrInvalidArguments)
	}
	return nil
}

// formatJSONResponse converts a response struct to a formatted JSON string
func formatJSONResponse(response interface{}) (string, error) {
	jsonBytes, err := sonic.ConfigStd.MarshalIndent(response, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal response")
	}

	return string(jsonBytes), nil
}

func respond(logger *logrus.Logger, response interface{}) (*mcp.CallToolResult, error) {
	jsonResponse, err := formatJSONResponse(response)
	if err != nil {
		logger.WithError(err).Error("Failed to format response")
		return textResult(fmt.Sprintf("Error formatting response: %s", err.Error()), true), nil
	}
	return textResult(jsonResponse, false), nil
}

func textResult(text string, isError bool) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{
				Type: "text",
				Text: text,
			},
		},
		IsError: isError,
	}
}

// envelope wraps a tool payload in the standard response format
func envelope(leagueID string, data interface{}, summary string, apiCalls int) sleeper.APIResponse {
	return sleeper.APIResponse{
		Success: true,
		Data:    data,
		Summary: summary,
		Metadata: sleeper.Metadata{
			Timestamp:    time.Now(),
			Source:       responseSource,
			APICallsUsed: apiCalls,
			LeagueID:     leagueID,
		},
	}
}

// failure reports a failed tool call; the message is the only text shown to the caller
func failure(leagueID, message string) *mcp.CallToolResult {
	response := sleeper.APIResponse{
		Success: false,
		Error:   message,
		Summary: message,
		Metadata: sleeper.Metadata{
			Timestamp: time.Now(),
			Source:    responseSource,
			LeagueID:  leagueID,
		},
	}
	text, err := formatJSONResponse(response)
	if err != nil {
		return textResult(message, true)
	}
	return textResult(text, true)
}

func invalidArguments(args map[string]interface{}) *mcp.CallToolResult {
	leagueID, _ := args["league_id"].(string)
	return failure(leagueID, msgInvalidArguments)
}

func pluralize(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
