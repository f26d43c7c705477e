package validator

import (
	"testing"

	"github.com/raphaelgruber/rendercheck/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decision(s models.Strategy, in models.Interactivity) models.StrategyDecision {
	return models.StrategyDecision{
		Strategy:  s,
		Rationale: []string{"test"},
		Profile:   models.PageProfile{Interactivity: in},
	}
}

func ruleIDs(fs []models.ValidationFinding) []string {
	ids := make([]string, len(fs))
	for i, f := range fs {
		ids[i] = f.RuleID
	}
	return ids
}

func TestValidateCleanConfig(t *testing.T) {
	cfg := models.DeclaredConfig{
		AsyncAccessors:     []string{"cookies", "params"},
		ClientBoundaries:   []string{"AddToCart"},
		SuspenseBoundaries: []models.SuspenseBoundary{{ID: "reviews", WrapsDynamicOnly: true}},
	}

	findings := Validate(decision(models.StrategyPartial, models.InteractivityPartial), cfg)
	assert.NotNil(t, findings)
	assert.Empty(t, findings)
}

func TestValidateAsyncAccess(t *testing.T) {
	for _, s := range models.AllStrategies() {
		t.Run(string(s), func(t *testing.T) {
			findings := Validate(decision(s, models.InteractivityPartial), models.DeclaredConfig{})
			flagged := assert.ObjectsAreEqual([]string{RuleIncompleteAsyncAccess}, ruleIDs(findings))
			want := s == models.StrategyDynamic || s == models.StrategyPartial
			assert.Equal(t, want, flagged)
		})
	}
}

func TestValidateSecretLeakAlwaysFlagged(t *testing.T) {
	cfg := models.DeclaredConfig{
		AsyncAccessors:            []string{"headers"},
		ClientPropsContainSecrets: true,
	}
	for _, s := range models.AllStrategies() {
		t.Run(string(s), func(t *testing.T) {
			findings := Validate(decision(s, models.InteractivityPartial), cfg)
			require.NotEmpty(t, findings)
			assert.Contains(t, ruleIDs(findings), RuleSecretLeak)
			for _, f := range findings {
				if f.RuleID == RuleSecretLeak {
					assert.Equal(t, models.SeverityError, f.Severity)
					assert.Equal(t, "SecretLeak", f.Rule)
				}
			}
		})
	}
}

func TestValidateSuspenseBoundaries(t *testing.T) {
	cfg := models.DeclaredConfig{
		AsyncAccessors: []string{"cookies"},
		SuspenseBoundaries: []models.SuspenseBoundary{
			{ID: "header", WrapsDynamicOnly: false},
			{ID: "cart", WrapsDynamicOnly: true},
			{ID: "footer", WrapsDynamicOnly: false},
		},
	}

	findings := Validate(decision(models.StrategyPartial, models.InteractivityPartial), cfg)
	require.Len(t, findings, 2)
	assert.Equal(t, "suspense_boundaries[0] (header)", findings[0].Location)
	assert.Equal(t, "suspense_boundaries[2] (footer)", findings[1].Location)

	// Only partial prerendering cares about boundary placement.
	findings = Validate(decision(models.StrategyDynamic, models.InteractivityPartial), cfg)
	assert.Empty(t, findings)
}

func TestValidateImplicitCache(t *testing.T) {
	cfg := models.DeclaredConfig{
		FetchSites: map[string]bool{
			"lib/posts.ts:12":  false,
			"lib/authors.ts:4": true,
			"app/page.tsx:30":  false,
		},
	}

	findings := Validate(decision(models.StrategyIncremental, models.InteractivityNone), cfg)
	require.Len(t, findings, 2)
	for _, f := range findings {
		assert.Equal(t, RuleImplicitCache, f.RuleID)
		assert.Equal(t, models.SeverityWarning, f.Severity)
	}
	// Sorted by location for stable output.
	assert.Equal(t, "fetch_sites.app/page.tsx:30", findings[0].Location)
	assert.Equal(t, "fetch_sites.lib/posts.ts:12", findings[1].Location)

	assert.Empty(t, Validate(decision(models.StrategyStatic, models.InteractivityNone), cfg))
}

func TestValidateClientBoundary(t *testing.T) {
	tests := []struct {
		name       string
		in         models.Interactivity
		boundaries int
		components int
		flagged    bool
	}{
		{"none tolerates zero", models.InteractivityNone, 1, 0, true},
		{"none with no boundaries", models.InteractivityNone, 0, 0, false},
		{"partial default limit", models.InteractivityPartial, 1, 0, false},
		{"partial over default limit", models.InteractivityPartial, 2, 0, true},
		{"partial share of components", models.InteractivityPartial, 4, 8, false},
		{"partial over share", models.InteractivityPartial, 5, 8, true},
		{"heavy unbounded without count", models.InteractivityHeavy, 40, 0, false},
		{"heavy bounded by count", models.InteractivityHeavy, 9, 8, true},
		{"unspecified uses partial policy", "", 2, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := models.DeclaredConfig{ComponentCount: tt.components}
			for i := 0; i < tt.boundaries; i++ {
				cfg.ClientBoundaries = append(cfg.ClientBoundaries, string(rune('A'+i)))
			}
			findings := Validate(decision(models.StrategyStatic, tt.in), cfg)
			assert.Equal(t, tt.flagged, assert.ObjectsAreEqual([]string{RuleOverbroadClientBoundary}, ruleIDs(findings)))
		})
	}
}

func TestValidatePolicyOverride(t *testing.T) {
	v := New(Policy{MaxClientBoundaries: 3})
	cfg := models.DeclaredConfig{ClientBoundaries: []string{"a", "b", "c"}}

	assert.Empty(t, v.Validate(decision(models.StrategyStatic, models.InteractivityPartial), cfg))
	assert.NotEmpty(t, Validate(decision(models.StrategyStatic, models.InteractivityPartial), cfg))
}

func TestValidateOrderingAndIndependence(t *testing.T) {
	cfg := models.DeclaredConfig{
		ClientBoundaries:          []string{"Layout", "Nav", "Footer"},
		SuspenseBoundaries:        []models.SuspenseBoundary{{ID: "shell", WrapsDynamicOnly: false}},
		ClientPropsContainSecrets: true,
	}

	findings := Validate(decision(models.StrategyPartial, models.InteractivityPartial), cfg)
	assert.Equal(t, []string{
		RuleIncompleteAsyncAccess,
		RuleMisplacedSuspenseBoundary,
		RuleSecretLeak,
		RuleOverbroadClientBoundary,
	}, ruleIDs(findings))

	// Input is untouched.
	assert.Len(t, cfg.ClientBoundaries, 3)
	assert.False(t, cfg.SuspenseBoundaries[0].WrapsDynamicOnly)
}

func TestRules(t *testing.T) {
	rs := Rules()
	require.Len(t, rs, 5)
	for _, r := range rs {
		assert.NotEmpty(t, r.Name)
		assert.NotEmpty(t, r.Description)
	}
	assert.Equal(t, models.SeverityError, rs[4].Severity)
}
