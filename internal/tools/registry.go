package tools

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RegisterAll registers all tools with the MCP server.
// This is called from main after server creation but before Run().
func RegisterAll(server *mcp.Server, deps *Dependencies) {
	// Ping tool - connectivity and version check
	mcp.AddTool(server, &mcp.Tool{
		Name:        "ping",
		Description: "Check the connection; reports the server version and the size of both rule tables, echoing any input",
	}, NewPingHandler(deps))

	// Recommend tool - full pipeline
	mcp.AddTool(server, &mcp.Tool{
		Name:        "recommend",
		Description: "Recommend a rendering strategy for a page, derive its caching plan and validate its declared config",
	}, NewRecommendHandler(deps))

	// Classify tool - strategy only
	mcp.AddTool(server, &mcp.Tool{
		Name:        "classify",
		Description: "Select a rendering strategy for a page profile, with rationale and rejected alternatives",
	}, NewClassifyHandler(deps))

	// Validate tool - pitfall checks against a strategy
	mcp.AddTool(server, &mcp.Tool{
		Name:        "validate",
		Description: "Check a declared page configuration for rendering pitfalls under a strategy",
	}, NewValidateHandler(deps))

	// List rules tool - rule tables
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_rules",
		Description: "List the classification rules in evaluation order and the validation rules",
	}, NewListRulesHandler(deps))

	// Stats tool - runtime statistics
	mcp.AddTool(server, &mcp.Tool{
		Name:        "stats",
		Description: "Show operation timings, strategy counts and finding counts since startup",
	}, NewStatsHandler(deps))
}
