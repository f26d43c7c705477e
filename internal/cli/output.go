package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/raphaelgruber/rendercheck/internal/models"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

type format string

const (
	formatText format = "text"
	formatJSON format = "json"
	formatYAML format = "yaml"
)

func parseFormat(s string) (format, error) {
	switch f := format(strings.ToLower(s)); f {
	case formatText, formatJSON, formatYAML:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", s)
}

// Theme holds the color scheme for text output.
type Theme struct {
	Status  lipgloss.Color
	Success lipgloss.Color
	Error   lipgloss.Color
	Warning lipgloss.Color
	Hint    lipgloss.Color
}

// defaultTheme provides default colors.
var defaultTheme = Theme{
	Status:  lipgloss.Color("#5FAFD7"), // light blue
	Success: lipgloss.Color("#00D787"), // green
	Error:   lipgloss.Color("#FF005F"), // red
	Warning: lipgloss.Color("#FFAF00"), // amber
	Hint:    lipgloss.Color("#6C6C6C"), // dim gray
}

func (t Theme) statusStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Status).Bold(true)
}

func (t Theme) successStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Success).Bold(true)
}

func (t Theme) errorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Error).Bold(true)
}

func (t Theme) warningStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Warning)
}

func (t Theme) hintStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Hint).Italic(true)
}

// printer renders results in the selected output format.
type printer struct {
	w      io.Writer
	format format
	theme  Theme
	color  bool
}

func newPrinter(cmd *cobra.Command) *printer {
	f, err := parseFormat(outputFormat)
	if err != nil {
		f = formatText
	}
	w := cmd.OutOrStdout()
	return &printer{
		w:      w,
		format: f,
		theme:  defaultTheme,
		color:  !noColor && isTerminal(w),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (p *printer) paint(style lipgloss.Style, s string) string {
	if !p.color {
		return s
	}
	return style.Render(s)
}

// structured writes v as JSON or YAML. It reports false for text output.
func (p *printer) structured(v any) (bool, error) {
	switch p.format {
	case formatJSON:
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return true, fmt.Errorf("encode json: %w", err)
		}
		return true, nil
	case formatYAML:
		enc := yaml.NewEncoder(p.w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return true, fmt.Errorf("encode yaml: %w", err)
		}
		return true, enc.Close()
	}
	return false, nil
}

func (p *printer) decision(page string, d models.StrategyDecision) error {
	if done, err := p.structured(d); done {
		return err
	}
	if page != "" {
		fmt.Fprintf(p.w, "Page:      %s\n", page)
	}
	p.strategy(d.Strategy, d.Rationale)
	p.assumed(d.Profile.Assumed)
	p.rejected(d.Rejected)
	return nil
}

func (p *printer) report(r *models.RecommendationReport) error {
	if done, err := p.structured(r); done {
		return err
	}
	if r.Page != "" {
		fmt.Fprintf(p.w, "Page:      %s\n", r.Page)
	}
	p.strategy(r.Strategy, r.Rationale)
	p.assumed(r.Assumed)
	p.rejected(r.Rejected)
	if r.CachingPlan != nil {
		p.cachingPlan(*r.CachingPlan)
	}
	p.findings(r.Findings)
	if verbose {
		fmt.Fprintln(p.w, p.paint(p.theme.hintStyle(), "Report "+r.ID))
	}
	return nil
}

func (p *printer) strategy(s models.Strategy, rationale []string) {
	fmt.Fprintf(p.w, "Strategy:  %s\n", p.paint(p.theme.statusStyle(), string(s)))
	fmt.Fprintf(p.w, "Rationale: %s\n", strings.Join(rationale, " > "))
}

func (p *printer) assumed(fields []string) {
	if len(fields) > 0 {
		fmt.Fprintf(p.w, "Assumed:   %s\n", strings.Join(fields, ", "))
	}
}

func (p *printer) rejected(alts []models.Alternative) {
	if len(alts) == 0 {
		return
	}
	fmt.Fprintln(p.w, "Rejected:")
	for _, a := range alts {
		fmt.Fprintf(p.w, "  %-12s %s\n", a.Strategy, p.paint(p.theme.hintStyle(), a.Reason))
	}
}

func (p *printer) cachingPlan(plan models.CachingPlan) {
	line := string(plan.Mode)
	if plan.IntervalSeconds != nil {
		line += fmt.Sprintf(" every %ds", *plan.IntervalSeconds)
	}
	if len(plan.Tags) > 0 {
		line += " tags=" + strings.Join(plan.Tags, ",")
	}
	fmt.Fprintf(p.w, "Caching:   %s\n", line)
	for _, n := range plan.Notes {
		fmt.Fprintf(p.w, "  %s\n", p.paint(p.theme.hintStyle(), "note: "+n))
	}
}

func (p *printer) findings(fs []models.ValidationFinding) {
	if len(fs) == 0 {
		fmt.Fprintln(p.w, p.paint(p.theme.successStyle(), "✓ No findings"))
		return
	}

	r := models.RecommendationReport{Findings: fs}
	errs, warns := r.Counts()
	fmt.Fprintf(p.w, "Findings (%d errors, %d warnings):\n", errs, warns)
	for _, f := range fs {
		mark := p.paint(p.theme.warningStyle(), "!")
		if f.Severity == models.SeverityError {
			mark = p.paint(p.theme.errorStyle(), "✗")
		}
		fmt.Fprintf(p.w, "  %s %s %s", mark, f.RuleID, f.Rule)
		if f.Location != "" {
			fmt.Fprintf(p.w, " at %s", f.Location)
		}
		fmt.Fprintf(p.w, "\n    %s\n", f.Message)
	}
}
