package models

// CachingMode is how cached output for a page gets invalidated.
type CachingMode string

const (
	CachingNone      CachingMode = "none"
	CachingTimeBased CachingMode = "time_based"
	CachingTagBased  CachingMode = "tag_based"
	CachingOnDemand  CachingMode = "on_demand"
)

// CachingHints are caller preferences the synthesizer turns into a plan.
type CachingHints struct {
	IntervalSeconds *int     `json:"interval_seconds,omitempty" yaml:"interval_seconds,omitempty"`
	Tags            []string `json:"tags,omitempty" yaml:"tags,omitempty"`

	// Regenerate asks for on-demand regeneration of otherwise fully static output.
	Regenerate bool `json:"regenerate,omitempty" yaml:"regenerate,omitempty"`
}

// Empty reports whether no hint was supplied.
func (h CachingHints) Empty() bool {
	return h.IntervalSeconds == nil && len(h.Tags) == 0 && !h.Regenerate
}

// CachingPlan is the concrete invalidation policy for a strategy.
type CachingPlan struct {
	Mode CachingMode `json:"mode" yaml:"mode"`

	// IntervalSeconds is set iff Mode is CachingTimeBased.
	IntervalSeconds *int `json:"interval_seconds,omitempty" yaml:"interval_seconds,omitempty"`

	// Tags is non-empty when Mode is CachingTagBased or CachingOnDemand.
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`

	// Notes records hints that were supplied but not used. Notes are
	// informational and never become findings.
	Notes []string `json:"notes,omitempty" yaml:"notes,omitempty"`
}
