package tools

import (
	"encoding/json"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/raphaelgruber/rendercheck/internal/caching"
	"github.com/raphaelgruber/rendercheck/internal/models"
	"github.com/raphaelgruber/rendercheck/internal/profile"
)

// ErrorResult creates a tool error result with optional recovery hint.
// If hint is non-empty, formats as "{msg}. {hint}".
// Returns IsError=true so LLM can see the error and self-correct.
func ErrorResult(msg, hint string) *mcp.CallToolResult {
	text := msg
	if hint != "" {
		text = msg + ". " + hint
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
		IsError: true,
	}
}

// TextResult creates a success result with text content.
func TextResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

// JSONResult creates a success result with v rendered as indented JSON.
func JSONResult(v any) *mcp.CallToolResult {
	jsonBytes, _ := json.MarshalIndent(v, "", "  ")
	return TextResult(string(jsonBytes))
}

// pipelineError turns an advisor error into a tool error with a recovery hint.
func pipelineError(err error) *mcp.CallToolResult {
	switch {
	case errors.Is(err, profile.ErrMissingField):
		return ErrorResult(err.Error(), "Supply every profile field named in the error")
	case errors.Is(err, profile.ErrUnknownValue):
		return ErrorResult(err.Error(), "Use one of the values listed by list_rules or the tool schema")
	case errors.Is(err, profile.ErrConflictingConstraint):
		return ErrorResult(err.Error(), "Private data cannot be static; use periodic, on_event or realtime freshness")
	case errors.Is(err, caching.ErrInvalidHint):
		return ErrorResult(err.Error(), "Adjust the caching hints")
	case errors.Is(err, models.ErrUnknownStrategy):
		return ErrorResult(err.Error(), "Use static, incremental, partial, dynamic or client")
	default:
		return ErrorResult(err.Error(), "")
	}
}
