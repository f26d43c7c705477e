package validator

import "github.com/raphaelgruber/rendercheck/internal/models"

// Rule ids.
const (
	RuleIncompleteAsyncAccess     = "R1"
	RuleOverbroadClientBoundary   = "R2"
	RuleMisplacedSuspenseBoundary = "R3"
	RuleImplicitCache             = "R4"
	RuleSecretLeak                = "R5"
)

// RuleInfo describes one pitfall rule.
type RuleInfo struct {
	ID          string          `json:"id" yaml:"id"`
	Name        string          `json:"name" yaml:"name"`
	Severity    models.Severity `json:"severity" yaml:"severity"`
	Description string          `json:"description" yaml:"description"`
}

var rules = map[string]RuleInfo{
	RuleIncompleteAsyncAccess: {
		ID:          RuleIncompleteAsyncAccess,
		Name:        "IncompleteAsyncAccess",
		Severity:    models.SeverityError,
		Description: "dynamic and partial pages must await every dynamic-data accessor they read",
	},
	RuleOverbroadClientBoundary: {
		ID:          RuleOverbroadClientBoundary,
		Name:        "OverbroadClientBoundary",
		Severity:    models.SeverityWarning,
		Description: "client-only scope should be no wider than the page's interactivity requires",
	},
	RuleMisplacedSuspenseBoundary: {
		ID:          RuleMisplacedSuspenseBoundary,
		Name:        "MisplacedSuspenseBoundary",
		Severity:    models.SeverityError,
		Description: "on partial pages suspense boundaries must wrap dynamic content only",
	},
	RuleImplicitCache: {
		ID:          RuleImplicitCache,
		Name:        "ImplicitCache",
		Severity:    models.SeverityWarning,
		Description: "incremental pages must state caching intent at every fetch site",
	},
	RuleSecretLeak: {
		ID:          RuleSecretLeak,
		Name:        "SecretLeak",
		Severity:    models.SeverityError,
		Description: "props passed to client components must never carry secrets",
	},
}

// Rules returns every rule ordered by id.
func Rules() []RuleInfo {
	return []RuleInfo{
		rules[RuleIncompleteAsyncAccess],
		rules[RuleOverbroadClientBoundary],
		rules[RuleMisplacedSuspenseBoundary],
		rules[RuleImplicitCache],
		rules[RuleSecretLeak],
	}
}

func finding(ruleID, message, location string) models.ValidationFinding {
	r := rules[ruleID]
	return models.ValidationFinding{
		RuleID:   r.ID,
		Rule:     r.Name,
		Severity: r.Severity,
		Message:  message,
		Location: location,
	}
}
