package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Export command flags
	exportMode   string
	exportFormat string
	exportOutput string
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Run a scan and write the report to a file",
	Long: `Run a diagnostic scan and write the report to a file. Intended for
sharing results or archiving them; the HTML format produces a
self-contained page that opens in any browser.

Example:
  windiag export --format html
  windiag export --format yaml --output scan.yaml
  windiag export --mode quick --format json`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportMode, "mode", "m", "",
		"scan mode: quick or full (default from config)")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "html",
		"output format: json, yaml, or html")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "",
		"output file path (default: windiag-report.<ext>)")
}

func runExport(cmd *cobra.Command, args []string) error {
	switch exportFormat {
	case "json", "yaml", "html":
	default:
		return &ValidationError{Message: fmt.Sprintf("invalid format: %s (must be json, yaml, or html)", exportFormat)}
	}

	scanMode = exportMode
	result, err := executeScan(cmd.Context())
	if err != nil {
		return err
	}

	path := exportOutput
	if path == "" {
		path = "windiag-report." + exportFormat
	}

	out, closeFn, err := openOutput(path)
	if err != nil {
		return err
	}
	defer closeFn()

	if err := writeReport(out, exportFormat, result); err != nil {
		return err
	}

	logVerbose("report written to %s", path)
	fmt.Printf("Report written to %s\n", path)
	return nil
}
