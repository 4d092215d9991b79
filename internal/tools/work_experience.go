package tools

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog"

	"github.com/HendryAvila/gitscope/internal/activity"
	"github.com/HendryAvila/gitscope/internal/experience"
	"github.com/HendryAvila/gitscope/internal/techstack"
)

const (
	defaultExperienceDays = 365
	experienceCommitLimit = 50
)

// WorkExperienceTool handles the generate_work_experience MCP tool.
// It runs the full pipeline: tech-stack profile, recent commits and an
// activity summary, then synthesizes the narrative record.
type WorkExperienceTool struct {
	agg     *activity.Aggregator
	builder *techstack.Builder
	log     zerolog.Logger
}

// NewWorkExperienceTool creates a WorkExperienceTool over the given services.
func NewWorkExperienceTool(agg *activity.Aggregator, builder *techstack.Builder, log zerolog.Logger) *WorkExperienceTool {
	return &WorkExperienceTool{agg: agg, builder: builder, log: log}
}

// Definition returns the MCP tool definition for registration.
func (t *WorkExperienceTool) Definition() mcp.Tool {
	return mcp.NewTool("generate_work_experience",
		mcp.WithDescription(
			"Synthesize a work-experience record from a user's public GitHub "+
				"activity: an inferred role title, responsibilities, "+
				"achievements, methodologies, estimated metrics and a prose "+
				"summary. Role and metrics are heuristic inferences from "+
				"commit and event signals.",
		),
		mcp.WithString("username",
			mcp.Required(),
			mcp.Description("GitHub username to generate experience for"),
		),
		mcp.WithString("repo_name",
			mcp.Description("Optional repository to highlight in the record"),
		),
		mcp.WithString("organization",
			mcp.Description("Optional organization name for the narrative"),
		),
		mcp.WithNumber("days",
			mcp.Description("Lookback window in days (default: 365)"),
			mcp.DefaultNumber(defaultExperienceDays),
		),
	)
}

// Handle processes the generate_work_experience tool call.
//
// The tech-stack profile is required — its failure fails the call. The
// commit list and activity summary are optional enrichments: if either
// fetch fails the synthesis proceeds without it and the dependent
// fields degrade to empty.
func (t *WorkExperienceTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	username := req.GetString("username", "")
	if username == "" {
		return mcp.NewToolResultError("'username' is required"), nil
	}
	days := req.GetInt("days", defaultExperienceDays)
	if days < 1 {
		days = defaultExperienceDays
	}

	log := callLogger(t.log, "generate_work_experience")
	log.Info().Str("username", username).Int("days", days).Msg("generating work experience")

	profile, err := t.builder.Build(ctx, username, days, defaultTechStackLimit)
	if err != nil {
		log.Error().Err(err).Msg("building tech stack profile failed")
		return errResult("generating work experience", err), nil
	}

	since := time.Now().UTC().AddDate(0, 0, -days)
	commits, err := t.agg.UserCommits(ctx, username, since, experienceCommitLimit)
	if err != nil {
		log.Warn().Err(err).Msg("commit collection failed, continuing without commit artifacts")
		commits = nil
	}

	summary, err := t.agg.Summarize(ctx, username, days)
	if err != nil {
		log.Warn().Err(err).Msg("activity summary failed, continuing without event metrics")
		summary = nil
	}

	exp := experience.Synthesize(experience.Input{
		Username:     username,
		Organization: req.GetString("organization", ""),
		Repository:   req.GetString("repo_name", ""),
		PeriodDays:   days,
		Profile:      profile,
		Commits:      commits,
		Activity:     summary,
	})
	return jsonResult(exp)
}
