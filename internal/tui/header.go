package tui

import (
	"fmt"
	"strings"

	"github.com/okulov/windiag/internal/models"
)

// headerHeight is the number of terminal lines the header occupies.
const headerHeight = 5

// renderHeader produces the header string from the scan result.
func renderHeader(result *models.ScanResult, width int) string {
	var b strings.Builder

	// Line 1: title, mode, elevation
	b.WriteString(fmt.Sprintf("windiag  Mode: %s  Elevated: %s", result.Mode, yesNo(result.Elevated)))
	if result.Host != nil && result.Host.Hostname != "" {
		b.WriteString("  Host: " + result.Host.Hostname)
	}
	b.WriteString("\n")

	// Line 2: severity breakdown
	summary := result.Summary
	sevParts := []string{
		severityCount(models.SeverityCritical, summary.BySeverity.Critical),
		severityCount(models.SeverityWarning, summary.BySeverity.Warning),
		severityCount(models.SeverityOK, summary.BySeverity.OK),
	}
	b.WriteString(strings.Join(sevParts, "  "))
	if summary.Indeterminate > 0 {
		b.WriteString(fmt.Sprintf("  Unknown:%d", summary.Indeterminate))
	}
	b.WriteString("\n")

	// Line 3: not-evaluated categories, if any
	if len(summary.NotEvaluated) > 0 {
		names := make([]string, 0, len(summary.NotEvaluated))
		for _, cat := range summary.NotEvaluated {
			names = append(names, cat.Title())
		}
		b.WriteString("Not evaluated: " + strings.Join(names, ", "))
	} else {
		b.WriteString(fmt.Sprintf("Recommendations: %d", len(summary.Recommendations)))
	}

	return styleHeader.Width(width).Render(b.String())
}

func severityCount(s models.Severity, count int) string {
	label := fmt.Sprintf("%s:%d", strings.ToUpper(s.String()), count)
	return severityStyle(models.Finding{Severity: s}).Render(label)
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
