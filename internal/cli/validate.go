package cli

import (
	"fmt"

	"github.com/raphaelgruber/rendercheck/internal/client"
	"github.com/raphaelgruber/rendercheck/internal/models"
	"github.com/raphaelgruber/rendercheck/internal/parser"
	"github.com/spf13/cobra"
)

var validateStrategy string

var validateCmd = &cobra.Command{
	Use:   "validate <manifest>",
	Short: "Check a declared page config for rendering pitfalls",
	Long: `Validate the config declared in a manifest against a rendering strategy.

The strategy is taken from --strategy, then from the manifest's strategy
field, and otherwise by classifying the manifest's profile. Accepted
strategies: static (ssg), incremental (isr), partial (ppr), dynamic (ssr),
client (csr).

Exits non-zero when any error finding is reported.

Examples:
  rendercheck validate pages/product.yaml
  rendercheck validate pages/product.yaml --strategy partial
  rendercheck validate pages/blog.yaml -s isr -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVarP(&validateStrategy, "strategy", "s", "", "strategy to validate against")
}

func runValidate(cmd *cobra.Command, args []string) error {
	var strategy models.Strategy
	if validateStrategy != "" {
		s, err := models.ParseStrategy(validateStrategy)
		if err != nil {
			return err
		}
		strategy = s
	}

	m, err := parser.LoadManifest(args[0], cmd.InOrStdin())
	if err != nil {
		return err
	}

	var report *models.RecommendationReport
	if serverURL != "" {
		report, err = client.New(serverURL).Validate(cmd.Context(), m, strategy)
	} else {
		report, err = advisor.Validate(m, strategy)
	}
	if err != nil {
		return fmt.Errorf("validate: %w", err)
	}

	if err := newPrinter(cmd).report(report); err != nil {
		return err
	}
	return blocking(report)
}
