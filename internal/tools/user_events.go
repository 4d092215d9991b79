package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog"

	"github.com/HendryAvila/gitscope/internal/activity"
)

const defaultEventLimit = 30

// UserEventsTool handles the get_user_events MCP tool.
type UserEventsTool struct {
	agg *activity.Aggregator
	log zerolog.Logger
}

// NewUserEventsTool creates a UserEventsTool over the given aggregator.
func NewUserEventsTool(agg *activity.Aggregator, log zerolog.Logger) *UserEventsTool {
	return &UserEventsTool{agg: agg, log: log}
}

// Definition returns the MCP tool definition for registration.
func (t *UserEventsTool) Definition() mcp.Tool {
	return mcp.NewTool("get_user_events",
		mcp.WithDescription(
			"Get recent public events for a GitHub user, newest first. "+
				"Each event carries a type-specific payload summary.",
		),
		mcp.WithString("username",
			mcp.Required(),
			mcp.Description("GitHub username to get events for"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of events to return (default: 30)"),
			mcp.DefaultNumber(defaultEventLimit),
		),
	)
}

// Handle processes the get_user_events tool call.
func (t *UserEventsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	username := req.GetString("username", "")
	if username == "" {
		return mcp.NewToolResultError("'username' is required"), nil
	}
	limit := req.GetInt("limit", defaultEventLimit)
	if limit < 1 {
		limit = defaultEventLimit
	}

	log := callLogger(t.log, "get_user_events")
	log.Info().Str("username", username).Int("limit", limit).Msg("fetching user events")

	events, err := t.agg.UserEvents(ctx, username, limit)
	if err != nil {
		log.Error().Err(err).Msg("fetching user events failed")
		return errResult("getting user events", err), nil
	}
	return jsonResult(events)
}
