// Package cli provides the command-line interface for rendercheck.
package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/raphaelgruber/rendercheck/internal/config"
	"github.com/raphaelgruber/rendercheck/internal/service"
	"github.com/spf13/cobra"
)

// ErrBlockingFindings is returned when a report carries error-severity
// findings, so that CI runs fail.
var ErrBlockingFindings = errors.New("blocking findings")

// ErrLocalOnly is returned when --server is given to a command the server
// does not expose.
var ErrLocalOnly = errors.New("command has no remote mode")

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	verbose        bool
	outputFormat   string
	noColor        bool
	serverURL      string
	assumeStaticUI bool

	// Global config, logger and advisor
	cfg        config.Config
	logger     *slog.Logger
	logCleanup func() error
	advisor    *service.AdvisorService
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "rendercheck",
	Short: "Rendering strategy advisor for server-rendered pages",
	Long: `Rendercheck recommends a rendering strategy for a page from a handful of
facts about it (data freshness, privacy, SEO importance, interactivity and
infrastructure), derives a caching plan, and checks a declared page
configuration for known pitfalls.

Pages are described by manifests in YAML or JSON.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip setup for version and help commands
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		if _, err := parseFormat(outputFormat); err != nil {
			return err
		}

		cfg = config.Load()
		if assumeStaticUI {
			cfg.AssumeStaticUI = true
		}

		level := cfg.LogLevel
		if verbose {
			level = slog.LevelDebug
		}
		logger, logCleanup = config.SetupLogger(cfg.LogFile, level, "cli")

		vp := cfg.ValidationPolicy()
		advisor = service.NewAdvisorService(service.Options{
			Profile:    cfg.ProfilePolicy(),
			Validation: &vp,
			Logger:     logger,
		})
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	defer closeLog()
	return rootCmd.Execute()
}

// closeLog closes the log file opened in PersistentPreRunE.
func closeLog() {
	if logCleanup == nil {
		return
	}
	if err := logCleanup(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to close log file: %v\n", err)
	}
	logCleanup = nil
}

// localOnly rejects --server for commands that always evaluate locally.
func localOnly(cmd *cobra.Command) error {
	if serverURL != "" {
		return fmt.Errorf("%s: %w; drop --server", cmd.Name(), ErrLocalOnly)
	}
	return nil
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text", "output format: text, json or yaml")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "evaluate on a rendercheck-server at this URL instead of locally")
	rootCmd.PersistentFlags().BoolVar(&assumeStaticUI, "assume-static-ui", false, "treat a missing interactivity as none")

	// Add subcommands
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "rendercheck %s\n", Version)
	},
}
