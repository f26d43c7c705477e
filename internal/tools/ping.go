package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/raphaelgruber/rendercheck/internal/classifier"
	"github.com/raphaelgruber/rendercheck/internal/validator"
)

// PingInput defines the input schema for the ping tool.
type PingInput struct {
	Echo string `json:"echo,omitempty" jsonschema:"Text to echo back in the reply"`
}

// PingResult reports which advisor answered and how many rules it applies.
type PingResult struct {
	Status              string `json:"status"`
	Version             string `json:"version"`
	ClassificationRules int    `json:"classification_rules"`
	ValidationRules     int    `json:"validation_rules"`
	Echo                string `json:"echo,omitempty"`
}

// NewPingHandler creates a ping tool handler. Clients use it to check the
// connection and to see which rule tables the server was built with.
func NewPingHandler(deps *Dependencies) mcp.ToolHandlerFor[PingInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input PingInput) (*mcp.CallToolResult, any, error) {
		if deps.Logger != nil {
			deps.Logger.Debug("ping", "echo", input.Echo)
		}

		return JSONResult(PingResult{
			Status:              "pong",
			Version:             deps.Version,
			ClassificationRules: len(classifier.Rules()),
			ValidationRules:     len(validator.Rules()),
			Echo:                input.Echo,
		}), nil, nil
	}
}
