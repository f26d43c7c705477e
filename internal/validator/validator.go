// Package validator checks a page's declared configuration against its
// rendering strategy and a fixed set of pitfall rules.
package validator

import (
	"fmt"
	"math"
	"sort"

	"github.com/raphaelgruber/rendercheck/internal/models"
)

// Default policy constants for R2.
const (
	DefaultMaxClientBoundaries = 1
	DefaultClientShare         = 0.5
)

// Policy tunes the thresholds used by R2.
type Policy struct {
	// MaxClientBoundaries is the number of client-only boundaries tolerated on a
	// partially interactive page.
	MaxClientBoundaries int

	// ClientShare is the fraction of a page's components that may be client-only
	// on a partially interactive page when the component count is known.
	ClientShare float64
}

// DefaultPolicy returns the policy used by Validate.
func DefaultPolicy() Policy {
	return Policy{
		MaxClientBoundaries: DefaultMaxClientBoundaries,
		ClientShare:         DefaultClientShare,
	}
}

// Validator evaluates the pitfall rules under a Policy. It holds no state
// between calls and is safe for concurrent use.
type Validator struct {
	policy Policy
}

// New creates a validator with the given policy.
func New(policy Policy) *Validator {
	return &Validator{policy: policy}
}

var std = New(DefaultPolicy())

// Validate checks config under the default policy.
func Validate(decision models.StrategyDecision, config models.DeclaredConfig) []models.ValidationFinding {
	return std.Validate(decision, config)
}

// Validate evaluates every rule independently and returns the findings
// ordered by severity (errors first), then rule id, then location. It never
// fails; a clean configuration yields an empty slice.
func (v *Validator) Validate(decision models.StrategyDecision, config models.DeclaredConfig) []models.ValidationFinding {
	findings := []models.ValidationFinding{}
	findings = append(findings, checkAsyncAccess(decision, config)...)
	findings = append(findings, v.checkClientBoundary(decision, config)...)
	findings = append(findings, checkSuspense(decision, config)...)
	findings = append(findings, checkImplicitCache(decision, config)...)
	findings = append(findings, checkSecrets(config)...)

	sort.SliceStable(findings, func(i, j int) bool {
		a, b := findings[i], findings[j]
		if a.Severity.Rank() != b.Severity.Rank() {
			return a.Severity.Rank() > b.Severity.Rank()
		}
		if a.RuleID != b.RuleID {
			return a.RuleID < b.RuleID
		}
		return a.Location < b.Location
	})
	return findings
}

// R1
func checkAsyncAccess(d models.StrategyDecision, c models.DeclaredConfig) []models.ValidationFinding {
	if d.Strategy != models.StrategyDynamic && d.Strategy != models.StrategyPartial {
		return nil
	}
	if len(c.AsyncAccessors) > 0 {
		return nil
	}
	return []models.ValidationFinding{finding(RuleIncompleteAsyncAccess,
		fmt.Sprintf("%s page declares no awaited dynamic-data accessors; request data is likely read synchronously, risking inconsistent output", d.Strategy),
		"async_accessors")}
}

// R2
func (v *Validator) checkClientBoundary(d models.StrategyDecision, c models.DeclaredConfig) []models.ValidationFinding {
	limit, bounded := v.clientBoundaryLimit(d.Profile.Interactivity, c.ComponentCount)
	if !bounded || len(c.ClientBoundaries) <= limit {
		return nil
	}
	interactivity := d.Profile.Interactivity
	if interactivity == "" {
		interactivity = "unspecified"
	}
	return []models.ValidationFinding{finding(RuleOverbroadClientBoundary,
		fmt.Sprintf("%d client-only boundaries exceed the limit of %d for %s interactivity; push client boundaries down to the interactive leaves",
			len(c.ClientBoundaries), limit, interactivity),
		"client_boundaries")}
}

// clientBoundaryLimit returns how many client boundaries are tolerated, and
// false if there is no limit.
func (v *Validator) clientBoundaryLimit(in models.Interactivity, componentCount int) (int, bool) {
	switch in {
	case models.InteractivityNone:
		return 0, true
	case models.InteractivityHeavy:
		if componentCount > 0 {
			return componentCount, true
		}
		return 0, false
	default:
		limit := v.policy.MaxClientBoundaries
		if componentCount > 0 {
			if share := int(math.Ceil(float64(componentCount) * v.policy.ClientShare)); share > limit {
				limit = share
			}
		}
		return limit, true
	}
}

// R3
func checkSuspense(d models.StrategyDecision, c models.DeclaredConfig) []models.ValidationFinding {
	if d.Strategy != models.StrategyPartial {
		return nil
	}
	var out []models.ValidationFinding
	for i, b := range c.SuspenseBoundaries {
		if b.WrapsDynamicOnly {
			continue
		}
		out = append(out, finding(RuleMisplacedSuspenseBoundary,
			fmt.Sprintf("suspense boundary %q wraps static content, which is then excluded from the prerendered shell", b.ID),
			fmt.Sprintf("suspense_boundaries[%d] (%s)", i, b.ID)))
	}
	return out
}

// R4
func checkImplicitCache(d models.StrategyDecision, c models.DeclaredConfig) []models.ValidationFinding {
	if d.Strategy != models.StrategyIncremental {
		return nil
	}
	var out []models.ValidationFinding
	for site, explicit := range c.FetchSites {
		if explicit {
			continue
		}
		out = append(out, finding(RuleImplicitCache,
			fmt.Sprintf("fetch at %s has no explicit cache directive; caching intent is ambiguous", site),
			"fetch_sites."+site))
	}
	return out
}

// R5
func checkSecrets(c models.DeclaredConfig) []models.ValidationFinding {
	if !c.ClientPropsContainSecrets {
		return nil
	}
	return []models.ValidationFinding{finding(RuleSecretLeak,
		"props passed to client components contain secrets; they will be shipped to the browser",
		"client_props")}
}
