// Package caching turns a strategy decision and caller hints into a concrete
// caching plan.
package caching

import (
	"errors"
	"fmt"
	"slices"

	"github.com/raphaelgruber/rendercheck/internal/models"
)

// ErrInvalidHint indicates caching hints that cannot produce a valid plan for
// the chosen strategy.
var ErrInvalidHint = errors.New("invalid caching hint")

// Synthesize builds the CachingPlan for decision. Hints that the strategy has
// no use for are recorded in CachingPlan.Notes rather than rejected.
func Synthesize(decision models.StrategyDecision, hints models.CachingHints) (models.CachingPlan, error) {
	tags := dedupe(hints.Tags)

	switch decision.Strategy {
	case models.StrategyStatic:
		if !hints.Regenerate {
			return models.CachingPlan{Mode: models.CachingNone, Notes: discarded(hints)}, nil
		}
		if len(tags) == 0 {
			return models.CachingPlan{}, fmt.Errorf("%w: on-demand regeneration of static output needs at least one tag", ErrInvalidHint)
		}
		plan := models.CachingPlan{Mode: models.CachingOnDemand, Tags: tags}
		if hints.IntervalSeconds != nil {
			plan.Notes = append(plan.Notes, "interval_seconds ignored: static output is regenerated on demand only")
		}
		return plan, nil

	case models.StrategyIncremental:
		if hints.IntervalSeconds != nil {
			if *hints.IntervalSeconds <= 0 {
				return models.CachingPlan{}, fmt.Errorf("%w: interval_seconds must be positive, got %d",
					ErrInvalidHint, *hints.IntervalSeconds)
			}
			return models.CachingPlan{
				Mode:            models.CachingTimeBased,
				IntervalSeconds: models.Ptr(*hints.IntervalSeconds),
				Tags:            tags,
			}, nil
		}
		if len(tags) == 0 {
			return models.CachingPlan{}, fmt.Errorf("%w: incremental strategy needs interval_seconds or at least one tag", ErrInvalidHint)
		}
		return models.CachingPlan{Mode: models.CachingTagBased, Tags: tags}, nil

	case models.StrategyPartial:
		// The static shell needs no plan; tags cover the dynamic segment's data.
		if len(tags) == 0 {
			return models.CachingPlan{}, fmt.Errorf("%w: partial strategy needs tags for the dynamic segment's data", ErrInvalidHint)
		}
		plan := models.CachingPlan{Mode: models.CachingTagBased, Tags: tags}
		if hints.IntervalSeconds != nil {
			plan.Notes = append(plan.Notes, "interval_seconds ignored: the dynamic segment is invalidated by tag")
		}
		return plan, nil

	default:
		return models.CachingPlan{Mode: models.CachingNone, Notes: discarded(hints)}, nil
	}
}

// discarded describes every supplied hint for a plan that uses none of them.
func discarded(h models.CachingHints) []string {
	var notes []string
	if h.IntervalSeconds != nil {
		notes = append(notes, fmt.Sprintf("interval_seconds=%d ignored: strategy has no invalidation", *h.IntervalSeconds))
	}
	if len(h.Tags) > 0 {
		notes = append(notes, fmt.Sprintf("tags %v ignored: strategy has no invalidation", h.Tags))
	}
	if h.Regenerate {
		notes = append(notes, "regenerate ignored: strategy has no invalidation")
	}
	return notes
}

// dedupe drops empty and repeated tags, keeping first-seen order.
func dedupe(tags []string) []string {
	var out []string
	for _, t := range tags {
		if t == "" || slices.Contains(out, t) {
			continue
		}
		out = append(out, t)
	}
	return out
}
