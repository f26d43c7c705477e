// Package classifier selects a rendering strategy for a normalized page profile
// by walking an ordered rule table.
package classifier

import (
	"fmt"
	"slices"

	"github.com/raphaelgruber/rendercheck/internal/models"
)

// Classify maps a profile to exactly one strategy. It is total and
// deterministic: the first matching rule wins, and every other rule is still
// evaluated so the decision can explain why each alternative lost.
func Classify(p models.PageProfile) models.StrategyDecision {
	p.Assumed = slices.Clone(p.Assumed)

	winner := -1
	matched := make([]bool, len(table))
	for i, r := range table {
		matched[i] = r.match(p)
		if matched[i] && winner < 0 {
			winner = i
		}
	}

	w := table[winner]
	d := models.StrategyDecision{
		Strategy:  w.Strategy,
		Rationale: []string{w.ID},
		Profile:   p,
	}
	shellMissing := w.ID == RuleMixedPartial && !p.Infra.SupportsIncrementalShell
	if shellMissing {
		d.Strategy = models.StrategyDynamic
		d.Rationale = append(d.Rationale, RationaleInfraUnsupportedPartial)
	}

	for i, r := range table {
		if r.Strategy == d.Strategy {
			continue
		}
		d.Rejected = append(d.Rejected, models.Alternative{
			Strategy: r.Strategy,
			Reason:   rejectReason(r, i, matched[i], w, winner, shellMissing, p),
		})
	}

	return d
}

func rejectReason(r rule, idx int, matched bool, w rule, winner int, shellMissing bool, p models.PageProfile) string {
	switch {
	case idx == winner && shellMissing:
		return "infrastructure does not support an incremental static shell"
	case r.fallback:
		return fmt.Sprintf("applies only when no earlier rule matches; %s matched first", w.ID)
	case matched && idx > winner:
		return fmt.Sprintf("%s also matches, but %s takes precedence", r.ID, w.ID)
	default:
		return r.miss(p)
	}
}
