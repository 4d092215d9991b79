package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog"

	"github.com/HendryAvila/gitscope/internal/techstack"
)

const (
	defaultTechStackDays  = 365
	defaultTechStackLimit = 100
)

// TechStackTool handles the get_user_tech_stack MCP tool.
type TechStackTool struct {
	builder *techstack.Builder
	log     zerolog.Logger
}

// NewTechStackTool creates a TechStackTool over the given builder.
func NewTechStackTool(builder *techstack.Builder, log zerolog.Logger) *TechStackTool {
	return &TechStackTool{builder: builder, log: log}
}

// Definition returns the MCP tool definition for registration.
func (t *TechStackTool) Definition() mcp.Tool {
	return mcp.NewTool("get_user_tech_stack",
		mcp.WithDescription(
			"Analyze a user's recent commits and derive a heuristic "+
				"technology profile: languages by file extension, detected "+
				"frameworks/libraries/tools/databases/cloud services from diff "+
				"text, change patterns, and ranked top-N views. Best-effort "+
				"keyword matching, not a ground-truth inventory.",
		),
		mcp.WithString("username",
			mcp.Required(),
			mcp.Description("GitHub username to analyze"),
		),
		mcp.WithNumber("days",
			mcp.Description("Lookback window in days (default: 365)"),
			mcp.DefaultNumber(defaultTechStackDays),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of commits to analyze (default: 100)"),
			mcp.DefaultNumber(defaultTechStackLimit),
		),
	)
}

// Handle processes the get_user_tech_stack tool call.
func (t *TechStackTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	username := req.GetString("username", "")
	if username == "" {
		return mcp.NewToolResultError("'username' is required"), nil
	}
	days := req.GetInt("days", defaultTechStackDays)
	if days < 1 {
		days = defaultTechStackDays
	}
	limit := req.GetInt("limit", defaultTechStackLimit)
	if limit < 1 {
		limit = defaultTechStackLimit
	}

	log := callLogger(t.log, "get_user_tech_stack")
	log.Info().Str("username", username).Int("days", days).Int("limit", limit).Msg("building tech stack profile")

	profile, err := t.builder.Build(ctx, username, days, limit)
	if err != nil {
		log.Error().Err(err).Msg("building tech stack profile failed")
		return errResult("getting user tech stack", err), nil
	}
	return jsonResult(profile)
}
