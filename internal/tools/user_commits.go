package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog"

	"github.com/HendryAvila/gitscope/internal/activity"
)

const (
	defaultCommitLimit = 50
	// Default lookback when no since argument is given. One year, not
	// 30 days: a month of history is too thin for contributors with
	// bursty activity.
	defaultCommitLookbackDays = 365
)

// UserCommitsTool handles the get_user_commits MCP tool.
type UserCommitsTool struct {
	agg *activity.Aggregator
	log zerolog.Logger
}

// NewUserCommitsTool creates a UserCommitsTool over the given aggregator.
func NewUserCommitsTool(agg *activity.Aggregator, log zerolog.Logger) *UserCommitsTool {
	return &UserCommitsTool{agg: agg, log: log}
}

// Definition returns the MCP tool definition for registration.
func (t *UserCommitsTool) Definition() mcp.Tool {
	return mcp.NewTool("get_user_commits",
		mcp.WithDescription(
			"Get recent commits authored by a user across all repositories "+
				"they own, newest first.",
		),
		mcp.WithString("username",
			mcp.Required(),
			mcp.Description("GitHub username to get commits for"),
		),
		mcp.WithString("since",
			mcp.Description("ISO 8601 timestamp or date to get commits since (default: one year back)"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of commits to return (default: 50)"),
			mcp.DefaultNumber(defaultCommitLimit),
		),
	)
}

// parseSince accepts a full RFC 3339 timestamp or a bare date, which is
// read as midnight UTC.
func parseSince(raw string) (time.Time, error) {
	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		return parsed.UTC(), nil
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, err
	}
	return parsed.UTC(), nil
}

// Handle processes the get_user_commits tool call.
func (t *UserCommitsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	username := req.GetString("username", "")
	if username == "" {
		return mcp.NewToolResultError("'username' is required"), nil
	}
	limit := req.GetInt("limit", defaultCommitLimit)
	if limit < 1 {
		limit = defaultCommitLimit
	}

	since := time.Now().UTC().AddDate(0, 0, -defaultCommitLookbackDays)
	if raw := req.GetString("since", ""); raw != "" {
		parsed, err := parseSince(raw)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("'since' must be an ISO 8601 timestamp or date: %v", err)), nil
		}
		since = parsed
	}

	log := callLogger(t.log, "get_user_commits")
	log.Info().Str("username", username).Time("since", since).Int("limit", limit).Msg("collecting user commits")

	commits, err := t.agg.UserCommits(ctx, username, since, limit)
	if err != nil {
		log.Error().Err(err).Msg("collecting user commits failed")
		return errResult("getting user commits", err), nil
	}
	return jsonResult(commits)
}
