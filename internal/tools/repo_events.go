package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog"

	"github.com/HendryAvila/gitscope/internal/activity"
)

// RepoEventsTool handles the get_repository_events MCP tool.
type RepoEventsTool struct {
	agg *activity.Aggregator
	log zerolog.Logger
}

// NewRepoEventsTool creates a RepoEventsTool over the given aggregator.
func NewRepoEventsTool(agg *activity.Aggregator, log zerolog.Logger) *RepoEventsTool {
	return &RepoEventsTool{agg: agg, log: log}
}

// Definition returns the MCP tool definition for registration.
func (t *RepoEventsTool) Definition() mcp.Tool {
	return mcp.NewTool("get_repository_events",
		mcp.WithDescription(
			"Get recent events for a GitHub repository, newest first.",
		),
		mcp.WithString("owner",
			mcp.Required(),
			mcp.Description("Repository owner (username or organization)"),
		),
		mcp.WithString("repo",
			mcp.Required(),
			mcp.Description("Repository name"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of events to return (default: 30)"),
			mcp.DefaultNumber(defaultEventLimit),
		),
	)
}

// Handle processes the get_repository_events tool call.
func (t *RepoEventsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	owner := req.GetString("owner", "")
	repo := req.GetString("repo", "")
	if owner == "" {
		return mcp.NewToolResultError("'owner' is required"), nil
	}
	if repo == "" {
		return mcp.NewToolResultError("'repo' is required"), nil
	}
	limit := req.GetInt("limit", defaultEventLimit)
	if limit < 1 {
		limit = defaultEventLimit
	}

	log := callLogger(t.log, "get_repository_events")
	log.Info().Str("owner", owner).Str("repo", repo).Int("limit", limit).Msg("fetching repository events")

	events, err := t.agg.RepositoryEvents(ctx, owner, repo, limit)
	if err != nil {
		log.Error().Err(err).Msg("fetching repository events failed")
		return errResult("getting repository events", err), nil
	}
	return jsonResult(events)
}
