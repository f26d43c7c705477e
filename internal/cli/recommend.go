package cli

import (
	"fmt"

	"github.com/raphaelgruber/rendercheck/internal/client"
	"github.com/raphaelgruber/rendercheck/internal/models"
	"github.com/raphaelgruber/rendercheck/internal/parser"
	"github.com/spf13/cobra"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend <manifest>",
	Short: "Produce a full recommendation report for a page",
	Long: `Classify the page, derive its caching plan from the manifest's hints and,
if the manifest declares a config, validate it against the chosen strategy.

Exits non-zero when the report contains error findings.

Examples:
  rendercheck recommend pages/product.yaml
  rendercheck recommend pages/product.yaml -o yaml
  rendercheck recommend pages/product.yaml --server http://advisor:8585`,
	Args: cobra.ExactArgs(1),
	RunE: runRecommend,
}

func runRecommend(cmd *cobra.Command, args []string) error {
	m, err := parser.LoadManifest(args[0], cmd.InOrStdin())
	if err != nil {
		return err
	}

	var report *models.RecommendationReport
	if serverURL != "" {
		report, err = client.New(serverURL).Recommend(cmd.Context(), m)
	} else {
		report, err = advisor.Recommend(m)
	}
	if err != nil {
		return fmt.Errorf("recommend: %w", err)
	}

	if err := newPrinter(cmd).report(report); err != nil {
		return err
	}
	return blocking(report)
}

// blocking returns ErrBlockingFindings if the report has error findings.
func blocking(r *models.RecommendationReport) error {
	if !r.HasErrors() {
		return nil
	}
	errs, _ := r.Counts()
	return fmt.Errorf("%w: %d error finding(s)", ErrBlockingFindings, errs)
}
