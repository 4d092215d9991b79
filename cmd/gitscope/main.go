// gitscope: GitHub activity MCP server
//
// Exposes a GitHub user's or repository's public activity — events,
// commits, derived activity summaries, a heuristic tech-stack profile,
// and a synthesized work-experience record — as MCP tools over stdio.
//
// Usage:
//
//	gitscope serve    # Start MCP server (stdio transport)
//
// Requires GITHUB_TOKEN in the environment; see .env.example for the
// full set of variables.
package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/HendryAvila/gitscope/internal/config"
	gitscope "github.com/HendryAvila/gitscope/internal/server"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "--help", "-h", "help":
		printUsage()
		os.Exit(0)
	case "--version", "-v", "version":
		fmt.Printf("gitscope v%s\n", gitscope.Version)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	// Logs go to stderr — stdout is the MCP stdio transport.
	log := newLogger(cfg.LogLevel)

	s, err := gitscope.New(cfg, log)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	log.Info().Str("version", gitscope.Version).Msg("gitscope serving on stdio")
	return server.ServeStdio(s)
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger()
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `gitscope v%s — GitHub activity MCP server

Usage:
  gitscope serve    Start the MCP server (stdio transport)

Configuration (environment):
  GITHUB_TOKEN              GitHub personal access token (required)
  GITHUB_API_URL            API base URL override (GitHub Enterprise)
  RATE_LIMIT_RETRIES        Retries on rate-limit errors (default 3)
  REQUEST_TIMEOUT           Per-request timeout (default 30s)
  MAX_EVENTS_PER_REQUEST    Page-size cap for fetches (default 100)
  LOG_LEVEL                 trace|debug|info|warn|error (default info)

Add to your AI tool's MCP config:

  {
    "mcpServers": {
      "gitscope": {
        "command": "gitscope",
        "args": ["serve"],
        "env": { "GITHUB_TOKEN": "ghp_..." }
      }
    }
  }
`, gitscope.Version)
}
