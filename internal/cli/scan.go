package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/okulov/windiag/internal/models"
	"github.com/okulov/windiag/internal/reporter"
	"github.com/okulov/windiag/internal/scanner"
	"github.com/okulov/windiag/internal/sysinfo"
	"github.com/okulov/windiag/internal/tui"
)

var (
	// Scan command flags
	scanMode      string
	scanFormat    string
	scanOutput    string
	scanThreshold int
	scanNoTUI     bool
	scanTop       int
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run a diagnostic scan and report findings",
	Long: `Run the diagnostic collectors and report classified findings with
recommendations.

Quick mode runs the fast collectors only (startup programs and process
usage by default); full mode runs all six. On an interactive terminal
the results open in a browsable view unless --no-tui is given.

Example:
  windiag scan
  windiag scan --mode quick
  windiag scan --format json --output findings.json
  windiag scan --fail-threshold 10`,
	Args: cobra.NoArgs,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVarP(&scanMode, "mode", "m", "",
		"scan mode: quick or full (default from config)")
	scanCmd.Flags().StringVarP(&scanFormat, "format", "f", "",
		"output format: text, json, yaml, or html (default from config)")
	scanCmd.Flags().StringVarP(&scanOutput, "output", "o", "",
		"output file path (default: stdout)")
	scanCmd.Flags().IntVar(&scanThreshold, "fail-threshold", -1,
		"exit with code 1 if warning+critical findings exceed this (default from config)")
	scanCmd.Flags().BoolVar(&scanNoTUI, "no-tui", false,
		"plain text output even on a terminal")
	scanCmd.Flags().IntVar(&scanTop, "top", 0,
		"number of top processes to report (default from config)")
}

func runScan(cmd *cobra.Command, args []string) error {
	result, err := executeScan(cmd.Context())
	if err != nil {
		return err
	}

	format := scanFormat
	if format == "" {
		format = cfg.Format
	}

	// Interactive view when writing text to a terminal.
	if format == "text" && scanOutput == "" && !scanNoTUI && term.IsTerminal(int(os.Stdout.Fd())) {
		if err := tui.Run(result); err != nil {
			return err
		}
		return checkThreshold(result)
	}

	out, closeFn, err := openOutput(scanOutput)
	if err != nil {
		return err
	}
	defer closeFn()

	if err := writeReport(out, format, result); err != nil {
		return err
	}
	return checkThreshold(result)
}

// executeScan resolves options from config and flags, runs the scan,
// and attaches the host header. Interrupt cancels the scan cleanly.
func executeScan(parent context.Context) (*models.ScanResult, error) {
	mode := cfg.ScanMode()
	switch scanMode {
	case "":
	case "quick":
		mode = models.ModeQuick
	case "full":
		mode = models.ModeFull
	default:
		return nil, &ValidationError{Message: fmt.Sprintf("invalid mode: %s (must be quick or full)", scanMode)}
	}

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt)
	defer stop()

	elevated := sysinfo.Elevated()
	if !elevated {
		logVerbose("not running elevated; some checks will be incomplete")
	}

	opts := scanner.Options{
		Mode:            mode,
		QuickCategories: cfg.QuickSet(),
		Elevated:        elevated,
		Timeout:         cfg.CollectorTimeoutDuration(),
		SlowTimeout:     cfg.SlowCollectorTimeoutDuration(),
		SampleInterval:  cfg.ProcessSampleDuration(),
		TopProcesses:    cfg.TopProcesses,
		MaxTasks:        cfg.MaxTasks,
	}
	if scanTop > 0 {
		opts.TopProcesses = scanTop
	}

	logVerbose("starting %s scan", mode)
	logDebug("scan options: %+v", opts)

	result, err := scanner.NewDefault().Scan(ctx, opts)
	if err != nil {
		logError("scan failed: %v", err)
		return nil, err
	}

	if host, err := sysinfo.Host(ctx); err == nil {
		result.Host = host
	} else {
		logDebug("host info unavailable: %v", err)
	}

	return result, nil
}

// writeReport renders the result in the requested format.
func writeReport(out io.Writer, format string, result *models.ScanResult) error {
	switch format {
	case "text":
		return reporter.NewTextReporter(out).Generate(result)
	case "json":
		return reporter.NewJSONReporter(out, true).Generate(result)
	case "yaml":
		return reporter.NewYAMLReporter(out).Generate(result)
	case "html":
		return reporter.NewHTMLReporter(out).Generate(result)
	default:
		return &ValidationError{Message: fmt.Sprintf("invalid format: %s (must be text, json, yaml, or html)", format)}
	}
}

// openOutput returns stdout or the requested file.
func openOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, func() { f.Close() }, nil
}

// checkThreshold applies the fail-threshold policy to the scan result.
func checkThreshold(result *models.ScanResult) error {
	threshold := scanThreshold
	if threshold == -1 {
		threshold = cfg.FailThreshold
	}
	if threshold <= 0 {
		return nil
	}

	issues := result.Summary.BySeverity.Warning + result.Summary.BySeverity.Critical
	if issues > threshold {
		return &ThresholdExceededError{IssueCount: issues, Threshold: threshold}
	}
	return nil
}
