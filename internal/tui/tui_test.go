package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/okulov/windiag/internal/models"
)

func sampleResult() *models.ScanResult {
	return &models.ScanResult{
		Mode:     models.ModeFull,
		Elevated: false,
		PerCategory: map[models.Category]models.CollectorResult{
			models.CategoryStartup: {
				Category: models.CategoryStartup,
				Findings: []models.Finding{
					{Category: models.CategoryStartup, Identifier: "Steam", Severity: models.SeverityWarning, Description: "High-impact startup item"},
					{Category: models.CategoryStartup, Identifier: "Notepad", Severity: models.SeverityOK, Description: "Low-impact startup item"},
				},
			},
			models.CategoryProcess: {
				Category: models.CategoryProcess,
				Findings: []models.Finding{
					{Category: models.CategoryProcess, Identifier: "chrome.exe", Severity: models.SeverityCritical, Description: "chrome.exe using 60.0% CPU"},
				},
			},
			models.CategoryDriver: {
				Category: models.CategoryDriver,
				Failure:  &models.Failure{Kind: models.FailureTimeout, Message: "deadline exceeded"},
			},
		},
		Summary: models.Summary{
			BySeverity:   models.SeverityCounts{OK: 1, Warning: 1, Critical: 1},
			NotEvaluated: []models.Category{models.CategoryDriver},
		},
	}
}

func TestNewModelFlattensFindings(t *testing.T) {
	m := New(sampleResult())

	// Failed categories contribute nothing.
	if len(m.allFindings) != 3 {
		t.Fatalf("got %d findings, want 3", len(m.allFindings))
	}
	// Initial sort is by severity, critical first.
	if m.allFindings[0].Identifier != "chrome.exe" {
		t.Errorf("first row = %q, want chrome.exe", m.allFindings[0].Identifier)
	}
	if len(m.categoryChoices) != 2 {
		t.Errorf("category choices = %v, want startup and process", m.categoryChoices)
	}
}

func TestApplyFilters(t *testing.T) {
	m := New(sampleResult())

	byCategory := applyFilters(m.allFindings, filterState{Category: models.CategoryStartup})
	if len(byCategory) != 2 {
		t.Errorf("category filter kept %d findings, want 2", len(byCategory))
	}

	bySearch := applyFilters(m.allFindings, filterState{SearchText: "chrome"})
	if len(bySearch) != 1 || bySearch[0].Identifier != "chrome.exe" {
		t.Errorf("search filter = %v", bySearch)
	}

	both := applyFilters(m.allFindings, filterState{Category: models.CategoryStartup, SearchText: "chrome"})
	if len(both) != 0 {
		t.Errorf("combined filters kept %d findings, want 0", len(both))
	}
}

func TestSortFindings(t *testing.T) {
	m := New(sampleResult())
	findings := append([]models.Finding(nil), m.allFindings...)

	sortFindings(findings, sortByItem)
	if findings[0].Identifier != "Notepad" {
		t.Errorf("item sort first = %q, want Notepad", findings[0].Identifier)
	}

	sortFindings(findings, sortByCategory)
	if findings[0].Category != models.CategoryProcess {
		t.Errorf("category sort first = %v, want process (higher urgency)", findings[0].Category)
	}
}

func TestQuitKey(t *testing.T) {
	m := New(sampleResult())
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q should quit")
	}
}

func TestSearchFlow(t *testing.T) {
	m := New(sampleResult())

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	m = updated.(Model)
	if m.mode != modeSearch {
		t.Fatalf("mode = %v, want search", m.mode)
	}

	for _, r := range "steam" {
		updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = updated.(Model)
	}
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	if m.mode != modeNormal {
		t.Errorf("mode after enter = %v, want normal", m.mode)
	}
	if len(m.filteredFindings) != 1 || m.filteredFindings[0].Identifier != "Steam" {
		t.Errorf("filtered = %v, want [Steam]", m.filteredFindings)
	}
}

func TestClearFilter(t *testing.T) {
	m := New(sampleResult())
	m.filters = filterState{SearchText: "steam"}
	m.rebuildTable()

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(Model)
	if len(m.filteredFindings) != len(m.allFindings) {
		t.Errorf("esc should clear filters: %d != %d", len(m.filteredFindings), len(m.allFindings))
	}
}

func TestCopySelectedFinding(t *testing.T) {
	m := New(sampleResult())
	m.copySelectedFinding()
	if m.clipboard == "" {
		t.Fatal("copy captured nothing")
	}
	if !strings.Contains(m.clipboard, "chrome.exe") {
		t.Errorf("clipboard = %q, want the selected finding", m.clipboard)
	}
}

func TestViewRenders(t *testing.T) {
	m := New(sampleResult())
	view := m.View()

	for _, want := range []string{"windiag", "Mode: full", "Not evaluated: Driver Status", "chrome.exe", "findings"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSeverityLabel(t *testing.T) {
	if got := severityLabel(models.Finding{Severity: models.SeverityCritical}); got != "CRITICAL" {
		t.Errorf("critical label = %q", got)
	}
	if got := severityLabel(models.Finding{Severity: models.SeverityOK, Indeterminate: true}); got != "UNKNOWN" {
		t.Errorf("indeterminate label = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate short = %q", got)
	}
	if got := truncate("a very long identifier", 10); got != "a very ..." {
		t.Errorf("truncate long = %q", got)
	}
}
