package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/okulov/windiag/internal/classify"
	"github.com/okulov/windiag/internal/models"
)

// detailHeight is the fixed number of lines for the detail panel.
const detailHeight = 5

// renderDetail produces the detail view for a selected finding.
func renderDetail(f *models.Finding, width int) string {
	if f == nil {
		return styleDetailPanel.Width(width).Render("No finding selected")
	}

	var b strings.Builder

	sevStyled := severityStyle(*f).Render(severityLabel(*f))
	b.WriteString(fmt.Sprintf("%s  %s\n", sevStyled, f.Category.Title()))
	b.WriteString(fmt.Sprintf("Item: %s\n", f.Identifier))
	if f.Description != "" {
		b.WriteString(f.Description + "\n")
	}

	if parts := metricParts(f.Metrics); len(parts) > 0 {
		b.WriteString(strings.Join(parts, "  "))
	}

	return styleDetailPanel.Width(width).Render(b.String())
}

// metricParts formats the finding's metrics in stable key order.
func metricParts(metrics map[string]models.Metric) []string {
	keys := make([]string, 0, len(metrics))
	for k := range metrics {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+formatMetric(k, metrics[k]))
	}
	return parts
}

func formatMetric(key string, m models.Metric) string {
	if m.Unknown {
		return "unknown"
	}
	if m.Text != "" {
		return m.Text
	}
	if strings.HasSuffix(key, "_bytes") {
		return classify.FormatBytes(uint64(m.Number))
	}
	if strings.HasSuffix(key, "_percent") {
		return fmt.Sprintf("%.1f%%", m.Number)
	}
	return fmt.Sprintf("%g", m.Number)
}
