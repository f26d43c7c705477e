package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/raphaelgruber/rendercheck/internal/classifier"
	"github.com/raphaelgruber/rendercheck/internal/models"
	"github.com/raphaelgruber/rendercheck/internal/validator"
)

// ClassifyInput defines the input schema for the classify tool.
type ClassifyInput struct {
	Profile models.RawProfile `json:"profile" jsonschema:"Page facts: data_freshness, privacy, seo_importance, interactivity and infra"`
}

// RecommendInput defines the input schema for the recommend tool.
type RecommendInput struct {
	Page    string                 `json:"page,omitempty" jsonschema:"Page identifier echoed in the report"`
	Profile models.RawProfile      `json:"profile" jsonschema:"Page facts: data_freshness, privacy, seo_importance, interactivity and infra"`
	Hints   models.CachingHints    `json:"hints,omitempty" jsonschema:"Optional caching preferences: interval_seconds, tags, regenerate"`
	Config  *models.DeclaredConfig `json:"config,omitempty" jsonschema:"Optional declared page configuration to validate"`
}

// ValidateInput defines the input schema for the validate tool.
type ValidateInput struct {
	Page     string                `json:"page,omitempty" jsonschema:"Page identifier echoed in the report"`
	Strategy string                `json:"strategy,omitempty" jsonschema:"Strategy to validate against; classified from profile when omitted"`
	Profile  *models.RawProfile    `json:"profile,omitempty" jsonschema:"Page facts, used when strategy is omitted"`
	Config   models.DeclaredConfig `json:"config" jsonschema:"Declared page configuration"`
}

// ListRulesInput defines the input schema for the list_rules tool.
type ListRulesInput struct{}

// StatsInput defines the input schema for the stats tool.
type StatsInput struct{}

// NewClassifyHandler creates the classify tool handler.
func NewClassifyHandler(deps *Dependencies) mcp.ToolHandlerFor[ClassifyInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ClassifyInput) (
		*mcp.CallToolResult, any, error,
	) {
		d, err := deps.Advisor.Classify(input.Profile)
		if err != nil {
			deps.Logger.Debug("classify rejected profile", "error", err)
			return pipelineError(err), nil, nil
		}

		deps.Logger.Info("classify completed", "strategy", d.Strategy)
		return JSONResult(d), nil, nil
	}
}

// NewRecommendHandler creates the recommend tool handler.
// Runs classification, caching synthesis and, with a config, validation.
func NewRecommendHandler(deps *Dependencies) mcp.ToolHandlerFor[RecommendInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input RecommendInput) (
		*mcp.CallToolResult, any, error,
	) {
		report, err := deps.Advisor.Recommend(models.Manifest{
			Page:    input.Page,
			Profile: &input.Profile,
			Hints:   input.Hints,
			Config:  input.Config,
		})
		if err != nil {
			return pipelineError(err), nil, nil
		}
		return JSONResult(report), nil, nil
	}
}

// NewValidateHandler creates the validate tool handler.
func NewValidateHandler(deps *Dependencies) mcp.ToolHandlerFor[ValidateInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ValidateInput) (
		*mcp.CallToolResult, any, error,
	) {
		if input.Strategy == "" && input.Profile == nil {
			return ErrorResult("Either strategy or profile is required", "Pass the page's strategy or its profile"), nil, nil
		}

		var strategy models.Strategy
		if input.Strategy != "" {
			s, err := models.ParseStrategy(input.Strategy)
			if err != nil {
				return pipelineError(err), nil, nil
			}
			strategy = s
		}

		report, err := deps.Advisor.Validate(models.Manifest{
			Page:    input.Page,
			Profile: input.Profile,
			Config:  &input.Config,
		}, strategy)
		if err != nil {
			return pipelineError(err), nil, nil
		}
		return JSONResult(report), nil, nil
	}
}

// NewListRulesHandler creates the list_rules tool handler.
func NewListRulesHandler(deps *Dependencies) mcp.ToolHandlerFor[ListRulesInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ListRulesInput) (
		*mcp.CallToolResult, any, error,
	) {
		return JSONResult(map[string]any{
			"classification": classifier.Rules(),
			"validation":     validator.Rules(),
		}), nil, nil
	}
}

// NewStatsHandler creates the stats tool handler.
func NewStatsHandler(deps *Dependencies) mcp.ToolHandlerFor[StatsInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input StatsInput) (
		*mcp.CallToolResult, any, error,
	) {
		return JSONResult(deps.Advisor.Metrics().Snapshot()), nil, nil
	}
}
