package classifier

import (
	"fmt"

	"github.com/raphaelgruber/rendercheck/internal/models"
)

// Rule ids, in evaluation order.
const (
	RulePrivateOrRealTime      = "private-or-realtime"
	RuleHeavyInteractiveLowSEO = "heavy-interactive-low-seo"
	RuleStaticData             = "static-data"
	RulePeriodicWholePage      = "periodic-whole-page"
	RuleMixedPartial           = "mixed-partial"

	// RationaleInfraUnsupportedPartial is appended when the mixed case falls
	// back to Dynamic because the infrastructure cannot serve a static shell.
	RationaleInfraUnsupportedPartial = "infra-unsupported-partial"
)

// RuleInfo describes one entry of the rule table.
type RuleInfo struct {
	ID          string          `json:"id" yaml:"id"`
	Strategy    models.Strategy `json:"strategy" yaml:"strategy"`
	Description string          `json:"description" yaml:"description"`
}

type rule struct {
	RuleInfo

	// fallback rules match anything that reaches them.
	fallback bool
	match    func(models.PageProfile) bool

	// miss explains, for a profile this rule does not match, why its strategy
	// does not apply.
	miss func(models.PageProfile) string
}

// table is ordered; the first matching rule wins.
var table = []rule{
	{
		RuleInfo: RuleInfo{
			ID:          RulePrivateOrRealTime,
			Strategy:    models.StrategyDynamic,
			Description: "private or per-request-volatile data cannot be precomputed",
		},
		match: func(p models.PageProfile) bool {
			return p.Privacy == models.PrivacyPrivate || p.DataFreshness == models.FreshnessRealTime
		},
		miss: func(p models.PageProfile) string {
			return fmt.Sprintf("data is %s and %s, so output can be precomputed", p.Privacy, p.DataFreshness)
		},
	},
	{
		RuleInfo: RuleInfo{
			ID:          RuleHeavyInteractiveLowSEO,
			Strategy:    models.StrategyClient,
			Description: "client rendering is acceptable only when discoverability is unimportant",
		},
		match: func(p models.PageProfile) bool {
			return p.Interactivity == models.InteractivityHeavy && p.SEOImportance == models.SEOLow
		},
		miss: func(p models.PageProfile) string {
			seo := string(p.SEOImportance)
			if p.SEOImportance == models.SEOUnspecified {
				seo = "unspecified"
			}
			return fmt.Sprintf("needs heavy interactivity and low SEO importance (have %s interactivity, %s SEO)",
				p.Interactivity, seo)
		},
	},
	{
		RuleInfo: RuleInfo{
			ID:          RuleStaticData,
			Strategy:    models.StrategyStatic,
			Description: "fully precomputable, no per-request work",
		},
		match: func(p models.PageProfile) bool {
			return p.DataFreshness == models.FreshnessStatic
		},
		miss: func(p models.PageProfile) string {
			return fmt.Sprintf("data freshness is %s, not build-time static", p.DataFreshness)
		},
	},
	{
		RuleInfo: RuleInfo{
			ID:          RulePeriodicWholePage,
			Strategy:    models.StrategyIncremental,
			Description: "whole-page cache with scheduled or triggered invalidation suffices",
		},
		match: func(p models.PageProfile) bool {
			periodic := p.DataFreshness == models.FreshnessPeriodic || p.DataFreshness == models.FreshnessOnEvent
			return periodic && p.Interactivity == models.InteractivityNone
		},
		miss: func(p models.PageProfile) string {
			return fmt.Sprintf("needs periodic or on-event data with no client interactivity (have %s data, %s interactivity)",
				p.DataFreshness, p.Interactivity)
		},
	},
	{
		RuleInfo: RuleInfo{
			ID:          RuleMixedPartial,
			Strategy:    models.StrategyPartial,
			Description: "static shell served immediately with a per-request dynamic segment; falls back to dynamic without incremental shell support",
		},
		fallback: true,
		match:    func(models.PageProfile) bool { return true },
	},
}

// Rules returns the rule table in evaluation order.
func Rules() []RuleInfo {
	out := make([]RuleInfo, len(table))
	for i, r := range table {
		out[i] = r.RuleInfo
	}
	return out
}
