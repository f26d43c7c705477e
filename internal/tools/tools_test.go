package tools_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/raphaelgruber/rendercheck/internal/metrics"
	"github.com/raphaelgruber/rendercheck/internal/models"
	"github.com/raphaelgruber/rendercheck/internal/service"
	"github.com/raphaelgruber/rendercheck/internal/tools"
	"github.com/raphaelgruber/rendercheck/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testLogger creates a logger for test visibility.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// connect registers all tools on a fresh server and returns a connected client session.
func connect(t *testing.T) (context.Context, *mcp.ClientSession) {
	t.Helper()
	logger := testLogger()

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "test-rendercheck",
		Version: "0.0.1-test",
	}, nil)
	deps := &tools.Dependencies{
		Advisor: service.NewAdvisorService(service.Options{Logger: logger}),
		Logger:  logger,
		Version: "0.0.1-test",
	}
	tools.RegisterAll(server, deps)

	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	go func() {
		_ = server.Run(ctx, serverTransport)
	}()

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "test-client",
		Version: "1.0.0",
	}, nil)

	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err, "client should connect successfully")
	t.Cleanup(func() { _ = session.Close() })

	return ctx, session
}

// call invokes a tool and returns its single text content.
func call(t *testing.T, ctx context.Context, session *mcp.ClientSession, name string, args map[string]any) (string, bool) {
	t.Helper()
	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	require.NoError(t, err)
	require.Len(t, result.Content, 1)

	textContent, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok, "content should be TextContent")
	return textContent.Text, result.IsError
}

func productProfile() map[string]any {
	return map[string]any{
		"data_freshness": "on_event",
		"privacy":        "public",
		"seo_importance": "high",
		"interactivity":  "partial",
		"infra": map[string]any{
			"runtime":                    "node",
			"supports_incremental_shell": true,
		},
	}
}

func TestToolsRegistered(t *testing.T) {
	ctx, session := connect(t)

	result, err := session.ListTools(ctx, nil)
	require.NoError(t, err)

	toolNames := make([]string, len(result.Tools))
	for i, tool := range result.Tools {
		toolNames[i] = tool.Name
	}
	assert.ElementsMatch(t, []string{"ping", "recommend", "classify", "validate", "list_rules", "stats"}, toolNames)
}

func TestPingTool(t *testing.T) {
	ctx, session := connect(t)

	t.Run("reports version and rule counts", func(t *testing.T) {
		text, isErr := call(t, ctx, session, "ping", map[string]any{})
		require.False(t, isErr, text)

		var res tools.PingResult
		require.NoError(t, json.Unmarshal([]byte(text), &res))
		assert.Equal(t, "pong", res.Status)
		assert.Equal(t, "0.0.1-test", res.Version)
		assert.Equal(t, 5, res.ClassificationRules)
		assert.Equal(t, 5, res.ValidationRules)
		assert.Empty(t, res.Echo)
	})

	t.Run("echoes input", func(t *testing.T) {
		text, isErr := call(t, ctx, session, "ping", map[string]any{"echo": "hello world"})
		require.False(t, isErr, text)

		var res tools.PingResult
		require.NoError(t, json.Unmarshal([]byte(text), &res))
		assert.Equal(t, "hello world", res.Echo)
	})
}

func TestRecommendTool(t *testing.T) {
	ctx, session := connect(t)

	text, isErr := call(t, ctx, session, "recommend", map[string]any{
		"page":    "/products/[id]",
		"profile": productProfile(),
		"hints":   map[string]any{"tags": []string{"product"}},
		"config": map[string]any{
			"async_accessors": []string{"params"},
			"suspense_boundaries": []map[string]any{
				{"id": "reviews", "wraps_dynamic_only": false},
			},
		},
	})
	require.False(t, isErr, text)

	var report models.RecommendationReport
	require.NoError(t, json.Unmarshal([]byte(text), &report))
	assert.Equal(t, "/products/[id]", report.Page)
	assert.Equal(t, models.StrategyPartial, report.Strategy)
	assert.Equal(t, models.CachingTagBased, report.CachingPlan.Mode)
	require.Len(t, report.Findings, 1)
	assert.Equal(t, validator.RuleMisplacedSuspenseBoundary, report.Findings[0].RuleID)
	assert.Equal(t, "suspense_boundaries[0] (reviews)", report.Findings[0].Location)
}

func TestRecommendToolErrors(t *testing.T) {
	ctx, session := connect(t)

	t.Run("conflicting constraint", func(t *testing.T) {
		p := productProfile()
		p["privacy"] = "private"
		p["data_freshness"] = "static"
		text, isErr := call(t, ctx, session, "recommend", map[string]any{"profile": p})
		assert.True(t, isErr)
		assert.Contains(t, text, "Private data cannot be static")
	})

	t.Run("missing field", func(t *testing.T) {
		p := productProfile()
		delete(p, "privacy")
		text, isErr := call(t, ctx, session, "recommend", map[string]any{"profile": p})
		assert.True(t, isErr)
		assert.Contains(t, text, "privacy")
	})

	t.Run("tag hint missing for partial", func(t *testing.T) {
		text, isErr := call(t, ctx, session, "recommend", map[string]any{"profile": productProfile()})
		assert.True(t, isErr)
		assert.Contains(t, text, "Adjust the caching hints")
	})
}

func TestClassifyTool(t *testing.T) {
	ctx, session := connect(t)

	p := productProfile()
	p["infra"] = map[string]any{"runtime": "edge"}
	text, isErr := call(t, ctx, session, "classify", map[string]any{"profile": p})
	require.False(t, isErr, text)

	var d models.StrategyDecision
	require.NoError(t, json.Unmarshal([]byte(text), &d))
	assert.Equal(t, models.StrategyDynamic, d.Strategy)
	assert.Equal(t, []string{"mixed-partial", "infra-unsupported-partial"}, d.Rationale)
	assert.Contains(t, d.Profile.Assumed, "infra.supports_incremental_shell")

	t.Run("minimal profile", func(t *testing.T) {
		text, isErr := call(t, ctx, session, "classify", map[string]any{"profile": map[string]any{
			"data_freshness": "periodic",
			"privacy":        "public",
			"interactivity":  "none",
		}})
		require.False(t, isErr, text)

		var d models.StrategyDecision
		require.NoError(t, json.Unmarshal([]byte(text), &d))
		assert.Equal(t, models.StrategyIncremental, d.Strategy)
		assert.Contains(t, d.Profile.Assumed, "infra.runtime")
	})
}

func TestValidateTool(t *testing.T) {
	ctx, session := connect(t)

	t.Run("explicit strategy", func(t *testing.T) {
		text, isErr := call(t, ctx, session, "validate", map[string]any{
			"strategy": "isr",
			"config": map[string]any{
				"fetch_sites": map[string]any{"lib/posts.ts:4": false},
			},
		})
		require.False(t, isErr, text)

		var report models.RecommendationReport
		require.NoError(t, json.Unmarshal([]byte(text), &report))
		assert.Equal(t, models.StrategyIncremental, report.Strategy)
		require.Len(t, report.Findings, 1)
		assert.Equal(t, validator.RuleImplicitCache, report.Findings[0].RuleID)
	})

	t.Run("neither strategy nor profile", func(t *testing.T) {
		text, isErr := call(t, ctx, session, "validate", map[string]any{"config": map[string]any{}})
		assert.True(t, isErr)
		assert.Contains(t, text, "Either strategy or profile is required")
	})

	t.Run("unknown strategy", func(t *testing.T) {
		text, isErr := call(t, ctx, session, "validate", map[string]any{
			"strategy": "hybrid",
			"config":   map[string]any{},
		})
		assert.True(t, isErr)
		assert.Contains(t, text, "unknown strategy")
	})
}

func TestListRulesAndStatsTools(t *testing.T) {
	ctx, session := connect(t)

	text, isErr := call(t, ctx, session, "list_rules", map[string]any{})
	require.False(t, isErr)
	assert.Contains(t, text, "private-or-realtime")
	assert.Contains(t, text, "SecretLeak")

	p := productProfile()
	_, isErr = call(t, ctx, session, "classify", map[string]any{"profile": p})
	require.False(t, isErr)

	text, isErr = call(t, ctx, session, "stats", map[string]any{})
	require.False(t, isErr)

	var snap metrics.Snapshot
	require.NoError(t, json.Unmarshal([]byte(text), &snap))
	assert.Equal(t, int64(1), snap.Strategies["partial"])
	require.Contains(t, snap.Operations, metrics.OpClassify)
	assert.Equal(t, int64(1), snap.Operations[metrics.OpClassify].Count)
}
