// Package reporter renders a completed scan in the supported output
// formats: human-readable text, JSON, YAML, and a standalone HTML page.
package reporter

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/okulov/windiag/internal/classify"
	"github.com/okulov/windiag/internal/models"
)

// TextReporter generates human-readable text reports
type TextReporter struct {
	writer io.Writer

	critical *color.Color
	warning  *color.Color
	ok       *color.Color
}

// NewTextReporter creates a new text reporter
func NewTextReporter(writer io.Writer) *TextReporter {
	return &TextReporter{
		writer:   writer,
		critical: color.New(color.FgRed, color.Bold),
		warning:  color.New(color.FgYellow),
		ok:       color.New(color.FgGreen),
	}
}

// Generate creates a text report from the scan result
func (r *TextReporter) Generate(result *models.ScanResult) error {
	r.printHeader()
	r.printf("Timestamp: %s\n", formatTimestamp(result.Timestamp))
	r.printf("Mode:      %s\n", result.Mode)
	r.printf("Elevated:  %s\n", yesNo(result.Elevated))
	if result.Host != nil {
		r.printHostInfo(result.Host)
	}
	r.printf("\n")

	r.printSummary(&result.Summary)
	r.printCategories(result)

	if len(result.Summary.Recommendations) > 0 {
		r.printRecommendations(result.Summary.Recommendations)
	}

	return nil
}

// printHeader prints the report header
func (r *TextReporter) printHeader() {
	r.printf("╔════════════════════════════════════════════╗\n")
	r.printf("║         windiag Diagnostic Report          ║\n")
	r.printf("╚════════════════════════════════════════════╝\n\n")
}

// printHostInfo prints the machine facts gathered alongside the scan
func (r *TextReporter) printHostInfo(host *models.HostInfo) {
	r.printf("Host:      %s (%s)\n", host.Hostname, host.Platform)
	if host.MemoryTotal > 0 {
		r.printf("Memory:    %s / %s (%.1f%%)\n",
			classify.FormatBytes(host.MemoryUsed),
			classify.FormatBytes(host.MemoryTotal),
			host.MemoryPercent)
	}
	if host.CPUPercent > 0 {
		r.printf("CPU:       %.1f%%\n", host.CPUPercent)
	}
}

// printSummary prints the overall summary section
func (r *TextReporter) printSummary(summary *models.Summary) {
	r.printf("Overall Summary:\n")
	r.printf("--------------------------------------------------\n")
	r.printf("  Findings: %d (%s critical, %s warning, %d ok)\n",
		summary.BySeverity.Total(),
		r.critical.Sprintf("%d", summary.BySeverity.Critical),
		r.warning.Sprintf("%d", summary.BySeverity.Warning),
		summary.BySeverity.OK)
	if summary.Indeterminate > 0 {
		r.printf("  Not fully evaluated: %d (insufficient privileges, run elevated)\n", summary.Indeterminate)
	}
	if len(summary.NotEvaluated) > 0 {
		names := make([]string, 0, len(summary.NotEvaluated))
		for _, cat := range summary.NotEvaluated {
			names = append(names, cat.Title())
		}
		r.printf("  Not evaluated: %s\n", strings.Join(names, ", "))
	}
	r.printf("\n")
}

// printCategories prints each evaluated category section in the fixed
// category order
func (r *TextReporter) printCategories(result *models.ScanResult) {
	for _, category := range models.AllCategories() {
		cr, ok := result.PerCategory[category]
		if !ok {
			continue
		}

		r.printf("%s\n", category.Title())
		r.printf("--------------------------------------------------\n")

		if cr.Failure != nil {
			r.printf("  Not evaluated: %s (%s)\n\n", cr.Failure.Message, cr.Failure.Kind)
			continue
		}
		if len(cr.Findings) == 0 {
			r.printf("  No findings.\n\n")
			continue
		}

		counts := result.Summary.ByCategory[category]
		r.printf("  %d checked, %d warning, %d critical\n", counts.Total(), counts.Warning, counts.Critical)
		for _, f := range cr.Findings {
			r.printf("  %s %s\n", r.severityTag(f), f.Identifier)
			if f.Description != "" {
				r.printf("      %s\n", f.Description)
			}
		}
		r.printf("\n")
	}
}

// severityTag renders the colored severity label for one finding
func (r *TextReporter) severityTag(f models.Finding) string {
	if f.Indeterminate {
		return "[UNKNOWN] "
	}
	switch f.Severity {
	case models.SeverityCritical:
		return r.critical.Sprint("[CRITICAL]")
	case models.SeverityWarning:
		return r.warning.Sprint("[WARNING] ")
	default:
		return r.ok.Sprint("[OK]      ")
	}
}

// printRecommendations prints the recommendations section
func (r *TextReporter) printRecommendations(recommendations []models.Recommendation) {
	r.printf("Recommended Actions:\n")
	r.printf("--------------------------------------------------\n")
	for i, rec := range recommendations {
		r.printf("  %d. [%s] %s\n", i+1, strings.ToUpper(rec.Severity.String()), rec.Action)
	}
}

// printf is a helper to write formatted output
func (r *TextReporter) printf(format string, args ...interface{}) {
	fmt.Fprintf(r.writer, format, args...)
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

// formatTimestamp formats a timestamp for display
func formatTimestamp(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}
