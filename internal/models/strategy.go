package models

import (
	"errors"
	"fmt"
)

// ErrUnknownStrategy is returned when a strategy name cannot be parsed.
var ErrUnknownStrategy = errors.New("unknown strategy")

// Strategy is a page-rendering strategy.
type Strategy string

const (
	StrategyStatic      Strategy = "static"
	StrategyIncremental Strategy = "incremental"
	StrategyPartial     Strategy = "partial"
	StrategyDynamic     Strategy = "dynamic"
	StrategyClient      Strategy = "client"
)

// AllStrategies lists every strategy in rule-table order of preference.
func AllStrategies() []Strategy {
	return []Strategy{StrategyDynamic, StrategyClient, StrategyStatic, StrategyIncremental, StrategyPartial}
}

// ParseStrategy maps user input to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch enumKey(s) {
	case "static", "ssg":
		return StrategyStatic, nil
	case "incremental", "isr":
		return StrategyIncremental, nil
	case "partial", "ppr":
		return StrategyPartial, nil
	case "dynamic", "ssr":
		return StrategyDynamic, nil
	case "client", "csr":
		return StrategyClient, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
}

// Alternative records a strategy that was considered and why it was not chosen.
type Alternative struct {
	Strategy Strategy `json:"strategy" yaml:"strategy"`
	Reason   string   `json:"reason" yaml:"reason"`
}

// StrategyDecision is the outcome of classifying a PageProfile.
type StrategyDecision struct {
	Strategy Strategy `json:"strategy" yaml:"strategy"`

	// Rationale holds the ids of the rules that produced the decision, in order.
	Rationale []string `json:"rationale" yaml:"rationale"`

	// Rejected holds every other strategy with the reason it lost, in rule order.
	Rejected []Alternative `json:"rejected_alternatives,omitempty" yaml:"rejected_alternatives,omitempty"`

	// Profile is the input the decision was derived from.
	Profile PageProfile `json:"profile" yaml:"profile"`
}

// DecisionFor builds a decision for an explicitly chosen strategy, as used when
// validating a page whose strategy is already fixed. The profile is inferred
// only as far as the strategy implies.
func DecisionFor(s Strategy, interactivity Interactivity) StrategyDecision {
	return StrategyDecision{
		Strategy:  s,
		Rationale: []string{"declared"},
		Profile:   PageProfile{Interactivity: interactivity},
	}
}
