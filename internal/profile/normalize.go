// Package profile validates raw page-characteristic input and turns it into
// an immutable models.PageProfile.
package profile

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/raphaelgruber/rendercheck/internal/models"
)

// Field names as they appear in manifests and error messages.
const (
	FieldDataFreshness    = "data_freshness"
	FieldPrivacy          = "privacy"
	FieldSEOImportance    = "seo_importance"
	FieldInteractivity    = "interactivity"
	FieldRuntime          = "infra.runtime"
	FieldIncrementalShell = "infra.supports_incremental_shell"
)

// Policy holds the explicit defaulting rules applied during normalization.
//
// The zero value is strict. data_freshness and privacy are always required.
// interactivity is required, and seo_importance is required when
// interactivity is heavy. infra.runtime defaults to node and
// infra.supports_incremental_shell to false. Every default that is applied
// is recorded in PageProfile.Assumed.
type Policy struct {
	// DefaultInteractivity, if set, is used when a profile omits interactivity.
	// Without it a missing interactivity is an ErrMissingField.
	DefaultInteractivity *models.Interactivity

	// DefaultSEOImportance, if set, is used when a profile omits seo_importance.
	// Without it the field stays unspecified, which is an ErrMissingField only
	// for heavily interactive pages.
	DefaultSEOImportance *models.SEOImportance
}

// DefaultRuntime is assumed when a profile omits infra.runtime.
const DefaultRuntime = models.RuntimeNode

// Normalizer validates raw profiles under a Policy.
// It is safe for concurrent use.
type Normalizer struct {
	validate *validator.Validate
	policy   Policy
}

// NewNormalizer creates a normalizer with the given defaulting policy.
func NewNormalizer(policy Policy) *Normalizer {
	v := validator.New()
	// Report manifest names (yaml tags) instead of Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Normalizer{validate: v, policy: policy}
}

var strict = NewNormalizer(Policy{})

// Normalize validates raw under the strict policy.
func Normalize(raw models.RawProfile) (models.PageProfile, error) {
	return strict.Normalize(raw)
}

// Normalize validates and copies raw into a PageProfile. It performs no
// inference beyond the documented Policy defaults, each of which is recorded
// in PageProfile.Assumed.
func (n *Normalizer) Normalize(raw models.RawProfile) (models.PageProfile, error) {
	missing, err := n.missingFields(raw)
	if err != nil {
		return models.PageProfile{}, err
	}
	if raw.Interactivity == "" && n.policy.DefaultInteractivity == nil {
		missing = append(missing, FieldInteractivity)
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return models.PageProfile{}, fmt.Errorf("%w: %s", ErrMissingField, strings.Join(missing, ", "))
	}

	var p models.PageProfile
	var ok bool

	if p.DataFreshness, ok = models.ParseFreshness(raw.DataFreshness); !ok {
		return models.PageProfile{}, unknown(FieldDataFreshness, raw.DataFreshness)
	}
	if p.Privacy, ok = models.ParsePrivacy(raw.Privacy); !ok {
		return models.PageProfile{}, unknown(FieldPrivacy, raw.Privacy)
	}
	if raw.Interactivity == "" {
		p.Interactivity = *n.policy.DefaultInteractivity
		p.Assumed = append(p.Assumed, FieldInteractivity)
	} else if p.Interactivity, ok = models.ParseInteractivity(raw.Interactivity); !ok {
		return models.PageProfile{}, unknown(FieldInteractivity, raw.Interactivity)
	}

	switch {
	case raw.SEOImportance != "":
		if p.SEOImportance, ok = models.ParseSEOImportance(raw.SEOImportance); !ok {
			return models.PageProfile{}, unknown(FieldSEOImportance, raw.SEOImportance)
		}
	case n.policy.DefaultSEOImportance != nil:
		p.SEOImportance = *n.policy.DefaultSEOImportance
		p.Assumed = append(p.Assumed, FieldSEOImportance)
	case p.Interactivity == models.InteractivityHeavy:
		return models.PageProfile{}, fmt.Errorf("%w: %s (required when interactivity is heavy)", ErrMissingField, FieldSEOImportance)
	}

	if raw.Infra.Runtime == "" {
		p.Infra.Runtime = DefaultRuntime
		p.Assumed = append(p.Assumed, FieldRuntime)
	} else if p.Infra.Runtime, ok = models.ParseRuntime(raw.Infra.Runtime); !ok {
		return models.PageProfile{}, unknown(FieldRuntime, raw.Infra.Runtime)
	}

	if raw.Infra.SupportsIncrementalShell != nil {
		p.Infra.SupportsIncrementalShell = *raw.Infra.SupportsIncrementalShell
	} else {
		p.Assumed = append(p.Assumed, FieldIncrementalShell)
	}

	if p.Privacy == models.PrivacyPrivate && p.DataFreshness == models.FreshnessStatic {
		return models.PageProfile{}, fmt.Errorf("%w: private data cannot be build-time static", ErrConflictingConstraint)
	}

	return p, nil
}

// missingFields runs the struct validator and collects every failed required field.
func (n *Normalizer) missingFields(raw models.RawProfile) ([]string, error) {
	err := n.validate.Struct(raw)
	if err == nil {
		return nil, nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, fmt.Errorf("validate profile: %w", err)
	}

	var missing []string
	for _, fe := range verrs {
		if fe.Tag() != "required" {
			continue
		}
		missing = append(missing, fieldPath(fe.Namespace()))
	}
	return missing, nil
}

// fieldPath drops the root struct name from a validator namespace:
// "RawProfile.infra.runtime" becomes "infra.runtime".
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func unknown(field, value string) error {
	return fmt.Errorf("%w: %s=%q", ErrUnknownValue, field, value)
}
