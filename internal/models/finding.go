package models

// Severity of a validation finding. Error findings block a build; warnings are advisory.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Rank orders severities; higher is more severe.
func (s Severity) Rank() int {
	switch s {
	case SeverityError:
		return 2
	case SeverityWarning:
		return 1
	default:
		return 0
	}
}

// ValidationFinding is one problem found in a DeclaredConfig.
type ValidationFinding struct {
	RuleID   string   `json:"rule_id" yaml:"rule_id"`
	Rule     string   `json:"rule" yaml:"rule"`
	Severity Severity `json:"severity" yaml:"severity"`
	Message  string   `json:"message" yaml:"message"`

	// Location is a free-form pointer into the DeclaredConfig, e.g.
	// "suspense_boundaries[2] (sidebar)".
	Location string `json:"location,omitempty" yaml:"location,omitempty"`
}
