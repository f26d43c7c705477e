package models

// SuspenseBoundary is one suspension boundary declared on a page.
type SuspenseBoundary struct {
	ID               string `json:"id" yaml:"id"`
	WrapsDynamicOnly bool   `json:"wraps_dynamic_only" yaml:"wraps_dynamic_only"`
}

// DeclaredConfig is what a page implementer actually wrote, as reported by
// static analysis or author annotation.
type DeclaredConfig struct {
	// AsyncAccessors are the dynamic-data accessors the page awaits.
	AsyncAccessors []string `json:"async_accessors,omitempty" yaml:"async_accessors,omitempty"`

	// ClientBoundaries are the component identifiers marked client-only.
	ClientBoundaries []string `json:"client_boundaries,omitempty" yaml:"client_boundaries,omitempty"`

	// SuspenseBoundaries are in declaration order.
	SuspenseBoundaries []SuspenseBoundary `json:"suspense_boundaries,omitempty" yaml:"suspense_boundaries,omitempty"`

	// FetchSites maps each fetch call site to whether it carries an explicit
	// cache directive.
	FetchSites map[string]bool `json:"fetch_sites,omitempty" yaml:"fetch_sites,omitempty"`

	ClientPropsContainSecrets bool `json:"client_props_contain_secrets,omitempty" yaml:"client_props_contain_secrets,omitempty"`

	// ComponentCount is the total number of components on the page, if known.
	ComponentCount int `json:"component_count,omitempty" yaml:"component_count,omitempty"`
}
