// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it builds the GitHub gateway and the
// aggregation services, injects them into the tools, and registers
// everything on the MCP server. No business logic lives here — only
// wiring.
package server

import (
	"fmt"

	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/HendryAvila/gitscope/internal/activity"
	"github.com/HendryAvila/gitscope/internal/config"
	"github.com/HendryAvila/gitscope/internal/gh"
	"github.com/HendryAvila/gitscope/internal/techstack"
	"github.com/HendryAvila/gitscope/internal/tools"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server with all tools registered.
// The gateway is the single shared dependency — one authenticated
// client reused by every tool invocation.
func New(cfg config.Config, log zerolog.Logger) (*server.MCPServer, error) {
	gateway, err := gh.New(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("creating GitHub gateway: %w", err)
	}

	agg := activity.NewAggregator(gateway, log)
	builder := techstack.NewBuilder(gateway, log)

	s := server.NewMCPServer(
		"gitscope",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	userEvents := tools.NewUserEventsTool(agg, log)
	s.AddTool(userEvents.Definition(), userEvents.Handle)

	repoEvents := tools.NewRepoEventsTool(agg, log)
	s.AddTool(repoEvents.Definition(), repoEvents.Handle)

	userActivity := tools.NewUserActivityTool(agg, log)
	s.AddTool(userActivity.Definition(), userActivity.Handle)

	userCommits := tools.NewUserCommitsTool(agg, log)
	s.AddTool(userCommits.Definition(), userCommits.Handle)

	techStack := tools.NewTechStackTool(builder, log)
	s.AddTool(techStack.Definition(), techStack.Handle)

	workExperience := tools.NewWorkExperienceTool(agg, builder, log)
	s.AddTool(workExperience.Definition(), workExperience.Handle)

	return s, nil
}

// serverInstructions tells the calling agent what the tools are good
// for and what they are not.
func serverInstructions() string {
	return `You have access to gitscope, a GitHub activity MCP server.

## Tools

- get_user_events / get_repository_events: recent public events, newest
  first, with a compact per-type payload summary.
- get_user_activity: a windowed summary (events, commits, issues, PRs)
  with per-type counts and the set of repositories touched.
- get_user_commits: recent commits across all repositories the user
  owns, newest first.
- get_user_tech_stack: a heuristic technology profile derived from
  commit diffs — languages, frameworks, libraries, tools, databases,
  cloud services, and change patterns, with ranked top-N views.
- generate_work_experience: a synthesized work-experience record
  (role title, responsibilities, achievements, metrics, narrative)
  built from the profile and activity signals.

## Caveats

- Tech-stack detection and role inference are keyword heuristics over
  public data. Treat them as signals, not facts.
- Several metrics (merged PRs, code reviews) are labeled estimates
  derived from event tallies and fixed ratios.
- Every call re-fetches from the GitHub API; large lookback windows on
  busy accounts take longer and consume more rate limit.`
}
