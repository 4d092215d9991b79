// Package tools implements the MCP tool handlers.
//
// Each tool is a struct that receives its dependencies at construction
// and exposes a Definition for registration plus a Handle compatible
// with mcp-go's CallToolRequest signature. One file per tool.
//
// Error contract: upstream failures are logged and returned as a
// human-readable text result — never as a protocol-level fault. Only
// argument plumbing lives here; aggregation logic belongs to the
// activity, techstack and experience packages.
package tools

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog"
)

// jsonResult marshals v into one indented JSON text block.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error encoding result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// errResult renders an upstream failure as a text payload.
func errResult(action string, err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(fmt.Sprintf("Error %s: %v", action, err))
}

// callLogger tags a sub-logger with the tool name and a short per-call
// id so one invocation's log lines can be grouped on stderr.
func callLogger(log zerolog.Logger, tool string) zerolog.Logger {
	return log.With().
		Str("tool", tool).
		Str("call_id", uuid.NewString()[:8]).
		Logger()
}
