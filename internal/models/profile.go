package models

// Freshness describes how often the data backing a page changes.
type Freshness string

const (
	FreshnessRealTime Freshness = "realtime"
	FreshnessPeriodic Freshness = "periodic"
	FreshnessOnEvent  Freshness = "on_event"
	FreshnessStatic   Freshness = "static"
)

// Privacy describes whether page data is shared across visitors.
type Privacy string

const (
	PrivacyPublic  Privacy = "public"
	PrivacyPrivate Privacy = "private"
)

// SEOImportance describes how much the page depends on search discoverability.
type SEOImportance string

const (
	SEOHigh   SEOImportance = "high"
	SEOMedium SEOImportance = "medium"
	SEOLow    SEOImportance = "low"

	// SEOUnspecified is left in a profile whose interactivity makes SEO
	// importance irrelevant to classification.
	SEOUnspecified SEOImportance = ""
)

// Interactivity is the share of the page that needs client-side interactivity.
type Interactivity string

const (
	InteractivityNone    Interactivity = "none"
	InteractivityPartial Interactivity = "partial"
	InteractivityHeavy   Interactivity = "heavy"
)

// Runtime is the server runtime the page is deployed on.
type Runtime string

const (
	RuntimeEdge Runtime = "edge"
	RuntimeNode Runtime = "node"
)

// Infra holds infrastructure constraints relevant to strategy selection.
type Infra struct {
	Runtime                  Runtime `json:"runtime" yaml:"runtime"`
	SupportsIncrementalShell bool    `json:"supports_incremental_shell" yaml:"supports_incremental_shell"`
}

// PageProfile is the normalized, immutable set of facts about a page.
// Construct it through profile.Normalize; never mutate a profile after that.
type PageProfile struct {
	DataFreshness Freshness     `json:"data_freshness" yaml:"data_freshness"`
	Privacy       Privacy       `json:"privacy" yaml:"privacy"`
	SEOImportance SEOImportance `json:"seo_importance,omitempty" yaml:"seo_importance,omitempty"`
	Interactivity Interactivity `json:"interactivity" yaml:"interactivity"`
	Infra         Infra         `json:"infra" yaml:"infra"`

	// Assumed lists the fields filled in by a defaulting policy rather than the caller.
	Assumed []string `json:"assumed,omitempty" yaml:"assumed,omitempty"`
}

// RawInfra is the pre-normalization shape of Infra.
type RawInfra struct {
	Runtime                  string `json:"runtime,omitempty" yaml:"runtime,omitempty"`
	SupportsIncrementalShell *bool  `json:"supports_incremental_shell,omitempty" yaml:"supports_incremental_shell,omitempty"`
}

// RawProfile is page-characteristic input as supplied by a caller, before
// validation. Empty strings mean the field was not supplied.
type RawProfile struct {
	DataFreshness string   `json:"data_freshness,omitempty" yaml:"data_freshness,omitempty" validate:"required"`
	Privacy       string   `json:"privacy,omitempty" yaml:"privacy,omitempty" validate:"required"`
	SEOImportance string   `json:"seo_importance,omitempty" yaml:"seo_importance,omitempty"`
	Interactivity string   `json:"interactivity,omitempty" yaml:"interactivity,omitempty"`
	Infra         RawInfra `json:"infra,omitempty" yaml:"infra,omitempty"`
}

// ParseFreshness maps user input such as "RealTime", "real-time" or "on_event"
// to a Freshness.
func ParseFreshness(s string) (Freshness, bool) {
	switch enumKey(s) {
	case "realtime":
		return FreshnessRealTime, true
	case "periodic":
		return FreshnessPeriodic, true
	case "onevent":
		return FreshnessOnEvent, true
	case "static":
		return FreshnessStatic, true
	}
	return "", false
}

// ParsePrivacy maps user input to a Privacy.
func ParsePrivacy(s string) (Privacy, bool) {
	switch enumKey(s) {
	case "public":
		return PrivacyPublic, true
	case "private":
		return PrivacyPrivate, true
	}
	return "", false
}

// ParseSEOImportance maps user input to an SEOImportance.
func ParseSEOImportance(s string) (SEOImportance, bool) {
	switch enumKey(s) {
	case "high":
		return SEOHigh, true
	case "medium":
		return SEOMedium, true
	case "low":
		return SEOLow, true
	}
	return "", false
}

// ParseInteractivity maps user input to an Interactivity.
func ParseInteractivity(s string) (Interactivity, bool) {
	switch enumKey(s) {
	case "none":
		return InteractivityNone, true
	case "partial":
		return InteractivityPartial, true
	case "heavy":
		return InteractivityHeavy, true
	}
	return "", false
}

// ParseRuntime maps user input to a Runtime.
func ParseRuntime(s string) (Runtime, bool) {
	switch enumKey(s) {
	case "edge":
		return RuntimeEdge, true
	case "node", "nodejs":
		return RuntimeNode, true
	}
	return "", false
}
