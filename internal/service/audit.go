package service

import (
	"context"

	"github.com/raphaelgruber/rendercheck/internal/models"
	"golang.org/x/sync/errgroup"
)

// DefaultAuditConcurrency is used when Audit is given a non-positive worker count.
const DefaultAuditConcurrency = 4

// AuditItem is one manifest to evaluate, labelled with where it came from.
type AuditItem struct {
	Source   string
	Manifest models.Manifest
}

// AuditResult holds the outcome for one AuditItem. Exactly one of Report and
// Err is set.
type AuditResult struct {
	Source string
	Report *models.RecommendationReport
	Err    error
}

// Audit evaluates every item with up to workers in parallel. Manifests with a
// profile are recommended; manifests without one are validated against their
// declared strategy. Per-item failures are reported in the results; Audit
// itself only fails if ctx is cancelled. Results keep the order of items.
func (s *AdvisorService) Audit(ctx context.Context, items []AuditItem, workers int) ([]AuditResult, error) {
	if workers <= 0 {
		workers = DefaultAuditConcurrency
	}

	results := make([]AuditResult, len(items))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, item := range items {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res := AuditResult{Source: item.Source}
			if item.Manifest.Profile != nil {
				res.Report, res.Err = s.Recommend(item.Manifest)
			} else {
				res.Report, res.Err = s.Validate(item.Manifest, "")
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.logger.Info("audit complete", "manifests", len(items), "workers", workers)
	return results, nil
}
