package models

// RecommendationReport is the artifact handed to downstream tools.
// A report is built fresh for every request.
type RecommendationReport struct {
	ID   string `json:"id" yaml:"id"`
	Page string `json:"page,omitempty" yaml:"page,omitempty"`

	Strategy  Strategy      `json:"strategy" yaml:"strategy"`
	Rationale []string      `json:"rationale" yaml:"rationale"`
	Rejected  []Alternative `json:"rejected_alternatives,omitempty" yaml:"rejected_alternatives,omitempty"`
	Assumed   []string      `json:"assumed,omitempty" yaml:"assumed,omitempty"`

	CachingPlan *CachingPlan        `json:"caching_plan,omitempty" yaml:"caching_plan,omitempty"`
	Findings    []ValidationFinding `json:"findings" yaml:"findings"`
}

// HasErrors reports whether any finding has error severity.
func (r *RecommendationReport) HasErrors() bool {
	for _, f := range r.Findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Counts returns the number of error and warning findings.
func (r *RecommendationReport) Counts() (errs, warnings int) {
	for _, f := range r.Findings {
		switch f.Severity {
		case SeverityError:
			errs++
		case SeverityWarning:
			warnings++
		}
	}
	return errs, warnings
}

// Manifest is the on-disk description of a page: its facts, caching hints and
// the configuration the implementer declared. Profile and Config are both optional
// so that a manifest can drive classification, validation or both.
type Manifest struct {
	Page     string          `json:"page,omitempty" yaml:"page,omitempty"`
	Strategy string          `json:"strategy,omitempty" yaml:"strategy,omitempty"`
	Profile  *RawProfile     `json:"profile,omitempty" yaml:"profile,omitempty"`
	Hints    CachingHints    `json:"hints,omitempty" yaml:"hints,omitempty"`
	Config   *DeclaredConfig `json:"config,omitempty" yaml:"config,omitempty"`
}
