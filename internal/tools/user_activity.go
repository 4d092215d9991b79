package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog"

	"github.com/HendryAvila/gitscope/internal/activity"
)

const defaultActivityDays = 7

// UserActivityTool handles the get_user_activity MCP tool.
type UserActivityTool struct {
	agg *activity.Aggregator
	log zerolog.Logger
}

// NewUserActivityTool creates a UserActivityTool over the given aggregator.
func NewUserActivityTool(agg *activity.Aggregator, log zerolog.Logger) *UserActivityTool {
	return &UserActivityTool{agg: agg, log: log}
}

// Definition returns the MCP tool definition for registration.
func (t *UserActivityTool) Definition() mcp.Tool {
	return mcp.NewTool("get_user_activity",
		mcp.WithDescription(
			"Get a comprehensive activity summary for a GitHub user over a "+
				"lookback window: events, commits, issues and pull requests "+
				"with per-type counts.",
		),
		mcp.WithString("username",
			mcp.Required(),
			mcp.Description("GitHub username to get activity for"),
		),
		mcp.WithNumber("days",
			mcp.Description("Number of days back to look for activity (default: 7)"),
			mcp.DefaultNumber(defaultActivityDays),
		),
	)
}

// Handle processes the get_user_activity tool call.
func (t *UserActivityTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	username := req.GetString("username", "")
	if username == "" {
		return mcp.NewToolResultError("'username' is required"), nil
	}
	days := req.GetInt("days", defaultActivityDays)
	if days < 1 {
		days = defaultActivityDays
	}

	log := callLogger(t.log, "get_user_activity")
	log.Info().Str("username", username).Int("days", days).Msg("aggregating user activity")

	summary, err := t.agg.Summarize(ctx, username, days)
	if err != nil {
		log.Error().Err(err).Msg("aggregating user activity failed")
		return errResult("getting user activity", err), nil
	}
	return jsonResult(summary)
}
