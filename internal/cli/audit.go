package cli

import (
	"fmt"
	"sort"

	"github.com/raphaelgruber/rendercheck/internal/models"
	"github.com/raphaelgruber/rendercheck/internal/parser"
	"github.com/raphaelgruber/rendercheck/internal/service"
	"github.com/spf13/cobra"
)

var auditWorkers int

var auditCmd = &cobra.Command{
	Use:   "audit <dir>",
	Short: "Evaluate every manifest in a directory",
	Long: `Find every .yaml, .yml and .json manifest under a directory and evaluate
them in parallel. Manifests with a profile get a full recommendation;
manifests without one are validated against their declared strategy.

Exits non-zero if any manifest fails to load or evaluate, or if any report
contains error findings.

Examples:
  rendercheck audit ./pages
  rendercheck audit ./pages --workers 8 -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runAudit,
}

func init() {
	auditCmd.Flags().IntVarP(&auditWorkers, "workers", "w", 0, "parallel workers (default from RENDERCHECK_AUDIT_WORKERS)")
}

// auditEntry is the serialized outcome for one manifest.
type auditEntry struct {
	Source string                       `json:"source" yaml:"source"`
	Report *models.RecommendationReport `json:"report,omitempty" yaml:"report,omitempty"`
	Error  string                       `json:"error,omitempty" yaml:"error,omitempty"`
}

func runAudit(cmd *cobra.Command, args []string) error {
	if err := localOnly(cmd); err != nil {
		return err
	}

	paths, err := parser.FindManifests(args[0])
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no manifests found in %s", args[0])
	}

	var items []service.AuditItem
	var results []service.AuditResult
	for _, path := range paths {
		m, err := parser.LoadManifest(path, nil)
		if err != nil {
			results = append(results, service.AuditResult{Source: path, Err: err})
			continue
		}
		items = append(items, service.AuditItem{Source: path, Manifest: m})
	}

	workers := auditWorkers
	if workers <= 0 {
		workers = cfg.AuditWorkers
	}
	evaluated, err := advisor.Audit(cmd.Context(), items, workers)
	if err != nil {
		return fmt.Errorf("audit: %w", err)
	}
	results = append(results, evaluated...)
	sort.Slice(results, func(i, j int) bool { return results[i].Source < results[j].Source })

	var failed, blocked int
	entries := make([]auditEntry, len(results))
	for i, res := range results {
		entries[i] = auditEntry{Source: res.Source, Report: res.Report}
		if res.Err != nil {
			entries[i].Error = res.Err.Error()
			failed++
		} else if res.Report.HasErrors() {
			blocked++
		}
	}

	p := newPrinter(cmd)
	if done, err := p.structured(entries); done {
		if err != nil {
			return err
		}
	} else {
		p.auditSummary(entries, failed, blocked)
	}

	if failed > 0 {
		return fmt.Errorf("audit: %d of %d manifests failed", failed, len(results))
	}
	if blocked > 0 {
		return fmt.Errorf("%w: %d page(s)", ErrBlockingFindings, blocked)
	}
	return nil
}

func (p *printer) auditSummary(entries []auditEntry, failed, blocked int) {
	for _, e := range entries {
		if e.Error != "" {
			fmt.Fprintf(p.w, "%s %s\n    %s\n", p.paint(p.theme.errorStyle(), "✗"), e.Source, e.Error)
			continue
		}
		errs, warns := e.Report.Counts()
		mark := p.paint(p.theme.successStyle(), "✓")
		switch {
		case errs > 0:
			mark = p.paint(p.theme.errorStyle(), "✗")
		case warns > 0:
			mark = p.paint(p.theme.warningStyle(), "!")
		}
		fmt.Fprintf(p.w, "%s %s  %s  %d errors, %d warnings\n",
			mark, e.Source, p.paint(p.theme.statusStyle(), string(e.Report.Strategy)), errs, warns)
		if verbose {
			for _, f := range e.Report.Findings {
				fmt.Fprintf(p.w, "    %s %s: %s\n", f.RuleID, f.Location, f.Message)
			}
		}
	}

	fmt.Fprintf(p.w, "\n%d manifests, %d failed, %d with blocking findings\n", len(entries), failed, blocked)
}
