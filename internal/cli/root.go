// Package cli wires the commands, flags, and exit codes of the windiag
// binary around the scan engine.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/okulov/windiag/internal/config"
)

const (
	ExitOK           = 0 // Success
	ExitPolicyFail   = 1 // Findings exceed threshold
	ExitInvalidInput = 2 // Bad flag or config value
	ExitRuntimeError = 3 // I/O, permissions, or runtime error
)

var (
	// Global config instance
	cfg *config.Config

	// Global flags
	configFile string
	verbose    bool
	debug      bool

	version = "dev"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "windiag",
	Short: "windiag - Windows slowdown diagnostic scanner",
	Long: `windiag inspects the usual suspects behind a slow Windows machine:
startup programs, auto-start services, process resource usage, disk
health and temp bloat, driver problems, and scheduled tasks.

Everything is read-only. The scan observes and classifies; it never
changes system state.

Quick start:
  windiag scan
  windiag scan --mode quick
  windiag export --format html --output report.html

Run elevated for complete results; without administrator rights some
checks degrade to "not fully evaluated".`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadFromFile(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// Override config with flags if provided
		if verbose {
			cfg.Verbose = true
		}
		if debug {
			cfg.Debug = true
		}

		return nil
	},
}

// SetVersion records the build version injected by the linker.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error
		os.Exit(HandleError(err))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (default: ~/.windiag.yaml or ./windiag.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"verbose output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"debug mode (very verbose)")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// versionCmd shows version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("windiag %s\n", version)
		fmt.Println("Read-only Windows slowdown diagnostics")
	},
}

// configCmd prints a sample configuration file
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print a sample configuration file",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Print(config.GenerateSampleConfig())
	},
}

// HandleError determines the appropriate exit code for an error
func HandleError(err error) int {
	if err == nil {
		return ExitOK
	}

	switch err.(type) {
	case *ValidationError:
		return ExitInvalidInput
	case *ThresholdExceededError:
		return ExitPolicyFail
	default:
		return ExitRuntimeError
	}
}

// ValidationError represents a bad flag or config value
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ThresholdExceededError represents a threshold policy failure
type ThresholdExceededError struct {
	IssueCount int
	Threshold  int
}

func (e *ThresholdExceededError) Error() string {
	return fmt.Sprintf("finding count (%d) exceeds threshold (%d)", e.IssueCount, e.Threshold)
}

// logVerbose prints a message if verbose mode is enabled
func logVerbose(format string, args ...interface{}) {
	if cfg != nil && cfg.Verbose {
		fmt.Fprintf(os.Stderr, "[INFO] "+format+"\n", args...)
	}
}

// logDebug prints a message if debug mode is enabled
func logDebug(format string, args ...interface{}) {
	if cfg != nil && cfg.Debug {
		fmt.Fprintf(os.Stderr, "[DEBUG] "+format+"\n", args...)
	}
}

// logError prints an error message
func logError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "[ERROR] "+format+"\n", args...)
}
