// Package service wires the normalizer, classifier, synthesizer and validator
// into the rendercheck pipeline.
package service

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/raphaelgruber/rendercheck/internal/caching"
	"github.com/raphaelgruber/rendercheck/internal/classifier"
	"github.com/raphaelgruber/rendercheck/internal/metrics"
	"github.com/raphaelgruber/rendercheck/internal/models"
	"github.com/raphaelgruber/rendercheck/internal/profile"
	"github.com/raphaelgruber/rendercheck/internal/validator"
)

// ErrIncompleteManifest indicates a manifest lacks what an operation needs,
// such as a profile for recommend or a config for validate.
var ErrIncompleteManifest = errors.New("incomplete manifest")

// Options configures an AdvisorService. Zero values give the strict
// normalization policy, the default validation policy, a fresh collector and
// a discarding logger.
type Options struct {
	Profile    profile.Policy
	Validation *validator.Policy
	Metrics    *metrics.Collector
	Logger     *slog.Logger
}

// AdvisorService runs the recommendation pipeline. It keeps no per-request
// state and may be shared across goroutines.
type AdvisorService struct {
	normalizer *profile.Normalizer
	validator  *validator.Validator
	metrics    *metrics.Collector
	logger     *slog.Logger
}

// NewAdvisorService creates a new advisor service.
func NewAdvisorService(opts Options) *AdvisorService {
	vp := validator.DefaultPolicy()
	if opts.Validation != nil {
		vp = *opts.Validation
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.NewCollector()
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	return &AdvisorService{
		normalizer: profile.NewNormalizer(opts.Profile),
		validator:  validator.New(vp),
		metrics:    opts.Metrics,
		logger:     opts.Logger,
	}
}

// Metrics returns the collector the service records into.
func (s *AdvisorService) Metrics() *metrics.Collector {
	return s.metrics
}

// Classify normalizes raw and selects a strategy for it.
func (s *AdvisorService) Classify(raw models.RawProfile) (models.StrategyDecision, error) {
	var p models.PageProfile
	err := s.timed(metrics.OpNormalize, func() error {
		var err error
		p, err = s.normalizer.Normalize(raw)
		return err
	})
	if err != nil {
		return models.StrategyDecision{}, fmt.Errorf("normalize profile: %w", err)
	}

	var d models.StrategyDecision
	_ = s.timed(metrics.OpClassify, func() error {
		d = classifier.Classify(p)
		return nil
	})
	s.metrics.RecordStrategy(string(d.Strategy))
	return d, nil
}

// Recommend runs the full pipeline for a manifest: classification, caching
// plan and, when the manifest declares a config, validation.
func (s *AdvisorService) Recommend(m models.Manifest) (*models.RecommendationReport, error) {
	start := time.Now()
	report, err := s.recommend(m)
	s.metrics.RecordTiming(metrics.OpRecommend, time.Since(start), err)
	if err != nil {
		s.logger.Warn("recommend failed", "page", m.Page, "error", err)
		return nil, err
	}

	errs, warns := report.Counts()
	s.logger.Info("recommendation ready",
		"page", m.Page,
		"report_id", report.ID,
		"strategy", report.Strategy,
		"errors", errs,
		"warnings", warns,
	)
	return report, nil
}

func (s *AdvisorService) recommend(m models.Manifest) (*models.RecommendationReport, error) {
	if m.Profile == nil {
		return nil, fmt.Errorf("%w: recommend needs a profile", ErrIncompleteManifest)
	}

	d, err := s.Classify(*m.Profile)
	if err != nil {
		return nil, err
	}

	var plan models.CachingPlan
	err = s.timed(metrics.OpSynthesize, func() error {
		var err error
		plan, err = caching.Synthesize(d, m.Hints)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("synthesize caching plan: %w", err)
	}

	report := newReport(m.Page, d)
	report.CachingPlan = &plan
	if m.Config != nil {
		report.Findings = s.validate(d, *m.Config)
	}
	return report, nil
}

// Validate checks the manifest's declared config against strategy. If
// strategy is empty the manifest's own strategy field is used, and failing
// that its profile is classified.
func (s *AdvisorService) Validate(m models.Manifest, strategy models.Strategy) (*models.RecommendationReport, error) {
	if m.Config == nil {
		return nil, fmt.Errorf("%w: validate needs a config", ErrIncompleteManifest)
	}

	d, err := s.decisionFor(m, strategy)
	if err != nil {
		return nil, err
	}

	report := newReport(m.Page, d)
	report.Findings = s.validate(d, *m.Config)

	errs, warns := report.Counts()
	s.logger.Info("validation complete",
		"page", m.Page,
		"report_id", report.ID,
		"strategy", d.Strategy,
		"errors", errs,
		"warnings", warns,
	)
	return report, nil
}

func (s *AdvisorService) decisionFor(m models.Manifest, strategy models.Strategy) (models.StrategyDecision, error) {
	if strategy == "" && m.Strategy != "" {
		parsed, err := models.ParseStrategy(m.Strategy)
		if err != nil {
			return models.StrategyDecision{}, err
		}
		strategy = parsed
	}

	if strategy != "" {
		var in models.Interactivity
		if m.Profile != nil && m.Profile.Interactivity != "" {
			var ok bool
			if in, ok = models.ParseInteractivity(m.Profile.Interactivity); !ok {
				return models.StrategyDecision{}, fmt.Errorf("%w: %s=%q",
					profile.ErrUnknownValue, profile.FieldInteractivity, m.Profile.Interactivity)
			}
		}
		return models.DecisionFor(strategy, in), nil
	}

	if m.Profile == nil {
		return models.StrategyDecision{}, fmt.Errorf("%w: validate needs a strategy or a profile", ErrIncompleteManifest)
	}
	return s.Classify(*m.Profile)
}

func (s *AdvisorService) validate(d models.StrategyDecision, c models.DeclaredConfig) []models.ValidationFinding {
	var findings []models.ValidationFinding
	_ = s.timed(metrics.OpValidate, func() error {
		findings = s.validator.Validate(d, c)
		return nil
	})
	for _, f := range findings {
		s.metrics.RecordFinding(f.RuleID)
		s.logger.Debug("finding", "rule", f.RuleID, "severity", f.Severity, "location", f.Location)
	}
	return findings
}

func (s *AdvisorService) timed(op string, fn func() error) error {
	start := time.Now()
	err := fn()
	s.metrics.RecordTiming(op, time.Since(start), err)
	return err
}

func newReport(page string, d models.StrategyDecision) *models.RecommendationReport {
	return &models.RecommendationReport{
		ID:        uuid.New().String(),
		Page:      page,
		Strategy:  d.Strategy,
		Rationale: d.Rationale,
		Rejected:  d.Rejected,
		Assumed:   d.Profile.Assumed,
		Findings:  []models.ValidationFinding{},
	}
}
