package cli

import (
	"fmt"

	"github.com/raphaelgruber/rendercheck/internal/parser"
	"github.com/raphaelgruber/rendercheck/internal/service"
	"github.com/spf13/cobra"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <manifest>",
	Short: "Select a rendering strategy for a page profile",
	Long: `Normalize the profile in a manifest and select a rendering strategy.

Prints the chosen strategy, the rules that produced it and why every other
strategy was rejected. Use '-' to read the manifest from stdin.

Examples:
  rendercheck classify pages/product.yaml
  rendercheck classify pages/dashboard.yaml -o json
  cat page.json | rendercheck classify -`,
	Args: cobra.ExactArgs(1),
	RunE: runClassify,
}

func runClassify(cmd *cobra.Command, args []string) error {
	if err := localOnly(cmd); err != nil {
		return err
	}

	m, err := parser.LoadManifest(args[0], cmd.InOrStdin())
	if err != nil {
		return err
	}
	if m.Profile == nil {
		return fmt.Errorf("%s: %w: classify needs a profile", args[0], service.ErrIncompleteManifest)
	}

	d, err := advisor.Classify(*m.Profile)
	if err != nil {
		return fmt.Errorf("classify: %w", err)
	}

	return newPrinter(cmd).decision(m.Page, d)
}
