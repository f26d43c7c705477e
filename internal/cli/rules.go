package cli

import (
	"fmt"

	"github.com/raphaelgruber/rendercheck/internal/classifier"
	"github.com/raphaelgruber/rendercheck/internal/client"
	"github.com/raphaelgruber/rendercheck/internal/validator"
	"github.com/spf13/cobra"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List classification and validation rules",
	Long: `List the classification rule table in evaluation order and the pitfall
rules the validator checks.

Examples:
  rendercheck rules
  rendercheck rules -o json
  rendercheck rules --server http://advisor:8585`,
	Args: cobra.NoArgs,
	RunE: runRules,
}

// ruleSet is the serialized form of both rule tables.
type ruleSet struct {
	Classification []classifier.RuleInfo `json:"classification" yaml:"classification"`
	Validation     []validator.RuleInfo  `json:"validation" yaml:"validation"`
}

func runRules(cmd *cobra.Command, args []string) error {
	set := ruleSet{
		Classification: classifier.Rules(),
		Validation:     validator.Rules(),
	}
	if serverURL != "" {
		remote, err := client.New(serverURL).Rules(cmd.Context())
		if err != nil {
			return fmt.Errorf("rules: %w", err)
		}
		set = ruleSet{Classification: remote.Classification, Validation: remote.Validation}
	}

	p := newPrinter(cmd)
	if done, err := p.structured(set); done {
		return err
	}

	fmt.Fprintln(p.w, "Classification (first match wins):")
	for i, r := range set.Classification {
		fmt.Fprintf(p.w, "  %d. %-26s -> %-12s %s\n", i+1, r.ID, r.Strategy, p.paint(p.theme.hintStyle(), r.Description))
	}
	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, "Validation:")
	for _, r := range set.Validation {
		fmt.Fprintf(p.w, "  %s %-26s %-8s %s\n", r.ID, r.Name, r.Severity, p.paint(p.theme.hintStyle(), r.Description))
	}
	return nil
}
