package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/raphaelgruber/rendercheck/internal/httpapi"
	"github.com/raphaelgruber/rendercheck/internal/models"
	"github.com/raphaelgruber/rendercheck/internal/profile"
	"github.com/raphaelgruber/rendercheck/internal/service"
	"github.com/raphaelgruber/rendercheck/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const productManifest = `page: /products/[id]
profile:
  data_freshness: on_event
  privacy: public
  seo_importance: high
  interactivity: partial
  infra:
    runtime: node
    supports_incremental_shell: true
hints:
  tags: [product]
config:
  async_accessors: [params]
  client_boundaries: [AddToCart]
  suspense_boundaries:
    - id: stock
      wraps_dynamic_only: true
`

const accountManifest = `page: /account
profile:
  data_freshness: realtime
  privacy: private
  seo_importance: low
  interactivity: heavy
  infra:
    runtime: node
config:
  client_props_contain_secrets: true
`

const blogManifest = `page: /blog
strategy: isr
config:
  fetch_sites:
    lib/posts.ts:4: false
    lib/authors.ts:9: true
`

// run executes the root command with args and returns its stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return runWithInput(t, nil, args...)
}

// runWithInput is run with stdin read from in.
func runWithInput(t *testing.T, in io.Reader, args ...string) (string, error) {
	t.Helper()
	t.Setenv("RENDERCHECK_LOG_FILE", filepath.Join(t.TempDir(), "rendercheck.log"))
	t.Setenv("RENDERCHECK_LOG_LEVEL", "ERROR")
	t.Setenv("RENDERCHECK_ASSUME_STATIC_UI", "")

	verbose, outputFormat, noColor, serverURL, assumeStaticUI = false, "text", false, "", false
	validateStrategy, auditWorkers = "", 0

	var out bytes.Buffer
	rootCmd.SetIn(in)
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := Execute()
	return out.String(), err
}

func writeManifest(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRecommendCommand(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "product.yaml", productManifest)

	out, err := run(t, "recommend", path, "-o", "json")
	require.NoError(t, err)

	var report models.RecommendationReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "/products/[id]", report.Page)
	assert.Equal(t, models.StrategyPartial, report.Strategy)
	require.NotNil(t, report.CachingPlan)
	assert.Equal(t, models.CachingTagBased, report.CachingPlan.Mode)
	assert.Empty(t, report.Findings)
}

func TestRecommendCommandText(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "product.yaml", productManifest)

	out, err := run(t, "recommend", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Strategy:  partial")
	assert.Contains(t, out, "Caching:   tag_based tags=product")
	assert.Contains(t, out, "No findings")
}

func TestRecommendCommandBlockingFindings(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "account.yaml", accountManifest)

	out, err := run(t, "recommend", path)
	require.ErrorIs(t, err, ErrBlockingFindings)
	assert.Contains(t, out, "Strategy:  dynamic")
	assert.Contains(t, out, validator.RuleIncompleteAsyncAccess)
	assert.Contains(t, out, validator.RuleSecretLeak)
}

func TestClassifyCommand(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "account.yaml", accountManifest)

	out, err := run(t, "classify", path, "-o", "yaml")
	require.NoError(t, err)

	var d models.StrategyDecision
	require.NoError(t, yaml.Unmarshal([]byte(out), &d))
	assert.Equal(t, models.StrategyDynamic, d.Strategy)
	assert.Equal(t, []string{"private-or-realtime"}, d.Rationale)
	assert.Len(t, d.Rejected, 4)

	noProfile := writeManifest(t, dir, "blog.yaml", blogManifest)
	_, err = run(t, "classify", noProfile)
	assert.ErrorIs(t, err, service.ErrIncompleteManifest)
}

func TestClassifyStdin(t *testing.T) {
	out, err := runWithInput(t, strings.NewReader(productManifest), "classify", "-", "-o", "json")
	require.NoError(t, err)

	var d models.StrategyDecision
	require.NoError(t, json.Unmarshal([]byte(out), &d))
	assert.Equal(t, models.StrategyPartial, d.Strategy)
}

func TestAssumeStaticUIFlag(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "inbox.yaml", `page: /inbox
profile:
  privacy: private
  data_freshness: realtime
`)

	_, err := run(t, "classify", path)
	require.ErrorIs(t, err, profile.ErrMissingField)
	assert.Contains(t, err.Error(), profile.FieldInteractivity)

	out, err := run(t, "classify", path, "--assume-static-ui", "-o", "json")
	require.NoError(t, err)

	var d models.StrategyDecision
	require.NoError(t, json.Unmarshal([]byte(out), &d))
	assert.Equal(t, models.StrategyDynamic, d.Strategy)
	assert.Equal(t, models.InteractivityNone, d.Profile.Interactivity)
	assert.Contains(t, d.Profile.Assumed, profile.FieldInteractivity)
	assert.Contains(t, d.Profile.Assumed, profile.FieldRuntime)
}

func TestValidateCommand(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "blog.yaml", blogManifest)

	t.Run("strategy from manifest", func(t *testing.T) {
		out, err := run(t, "validate", path, "-o", "json")
		require.NoError(t, err, "warnings do not block")

		var report models.RecommendationReport
		require.NoError(t, json.Unmarshal([]byte(out), &report))
		assert.Equal(t, models.StrategyIncremental, report.Strategy)
		require.Len(t, report.Findings, 1)
		assert.Equal(t, validator.RuleImplicitCache, report.Findings[0].RuleID)
		assert.Equal(t, "fetch_sites.lib/posts.ts:4", report.Findings[0].Location)
	})

	t.Run("strategy flag overrides", func(t *testing.T) {
		out, err := run(t, "validate", path, "--strategy", "ssr")
		require.ErrorIs(t, err, ErrBlockingFindings)
		assert.Contains(t, out, "Strategy:  dynamic")
	})

	t.Run("unknown strategy", func(t *testing.T) {
		_, err := run(t, "validate", path, "--strategy", "hybrid")
		assert.ErrorIs(t, err, models.ErrUnknownStrategy)
	})
}

func TestAuditCommand(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "product.yaml", productManifest)
	writeManifest(t, dir, "blog/index.yml", blogManifest)

	out, err := run(t, "audit", dir, "-o", "json", "--workers", "2")
	require.NoError(t, err)

	var entries []auditEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, filepath.Join(dir, "blog/index.yml"), entries[0].Source)
	assert.Equal(t, models.StrategyIncremental, entries[0].Report.Strategy)
	assert.Equal(t, models.StrategyPartial, entries[1].Report.Strategy)

	writeManifest(t, dir, "broken.yaml", "profile:\n  privcy: public\n")
	out, err = run(t, "audit", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 3 manifests failed")
	assert.Contains(t, out, "broken.yaml")
	assert.Contains(t, out, "3 manifests, 1 failed, 0 with blocking findings")
}

func TestAuditCommandEmptyDir(t *testing.T) {
	_, err := run(t, "audit", t.TempDir())
	assert.ErrorContains(t, err, "no manifests found")
}

func TestRulesCommand(t *testing.T) {
	out, err := run(t, "rules", "-o", "json")
	require.NoError(t, err)

	var set ruleSet
	require.NoError(t, json.Unmarshal([]byte(out), &set))
	assert.Len(t, set.Classification, 5)
	assert.Len(t, set.Validation, 5)
	assert.Equal(t, "private-or-realtime", set.Classification[0].ID)

	out, err = run(t, "rules")
	require.NoError(t, err)
	assert.Contains(t, out, "first match wins")
	assert.Contains(t, out, "SecretLeak")
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "rendercheck "+Version+"\n", out)
}

func TestUnknownOutputFormat(t *testing.T) {
	_, err := run(t, "rules", "-o", "xml")
	assert.ErrorContains(t, err, "unknown output format")
}

func TestRemoteServer(t *testing.T) {
	h := httpapi.NewHandler(service.NewAdvisorService(service.Options{}), slog.New(slog.DiscardHandler))
	srv := httptest.NewServer(h.Routes())
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	product := writeManifest(t, dir, "product.yaml", productManifest)
	blog := writeManifest(t, dir, "blog.yaml", blogManifest)

	out, err := run(t, "recommend", product, "--server", srv.URL, "-o", "json")
	require.NoError(t, err)
	var report models.RecommendationReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, models.StrategyPartial, report.Strategy)

	_, err = run(t, "validate", blog, "--server", srv.URL, "--strategy", "dynamic")
	assert.ErrorIs(t, err, ErrBlockingFindings)

	out, err = run(t, "rules", "--server", srv.URL, "-o", "json")
	require.NoError(t, err)
	var set ruleSet
	require.NoError(t, json.Unmarshal([]byte(out), &set))
	assert.Len(t, set.Classification, 5)
	assert.Len(t, set.Validation, 5)

	_, err = run(t, "classify", product, "--server", srv.URL)
	assert.ErrorIs(t, err, ErrLocalOnly)

	_, err = run(t, "audit", dir, "--server", srv.URL)
	assert.ErrorIs(t, err, ErrLocalOnly)
}

func TestRulesCommandServerDown(t *testing.T) {
	srv := httptest.NewServer(nil)
	url := srv.URL
	srv.Close()

	_, err := run(t, "rules", "--server", url)
	assert.ErrorContains(t, err, "rules:")
}
