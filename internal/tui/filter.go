package tui

import (
	"sort"
	"strings"

	"github.com/okulov/windiag/internal/models"
)

// filterState holds current active filters.
type filterState struct {
	Category   models.Category
	SearchText string
}

// sortField enumerates columns that can be sorted.
type sortField int

const (
	sortBySeverity sortField = iota
	sortByCategory
	sortByItem
)

// sortFieldCount is the total number of sortable columns.
const sortFieldCount = 3

// applyFilters returns findings matching all active filters.
func applyFilters(findings []models.Finding, f filterState) []models.Finding {
	result := make([]models.Finding, 0, len(findings))
	searchLower := strings.ToLower(f.SearchText)

	for _, finding := range findings {
		if f.Category != "" && finding.Category != f.Category {
			continue
		}
		if searchLower != "" && !matchesSearch(finding, searchLower) {
			continue
		}
		result = append(result, finding)
	}
	return result
}

func matchesSearch(f models.Finding, searchLower string) bool {
	return strings.Contains(strings.ToLower(f.Identifier), searchLower) ||
		strings.Contains(strings.ToLower(string(f.Category)), searchLower) ||
		strings.Contains(strings.ToLower(f.Severity.String()), searchLower) ||
		strings.Contains(strings.ToLower(f.Description), searchLower)
}

// sortFindings sorts a slice of findings in place by the given field.
func sortFindings(findings []models.Finding, field sortField) {
	sort.SliceStable(findings, func(i, j int) bool {
		switch field {
		case sortBySeverity:
			return findings[i].Severity > findings[j].Severity
		case sortByCategory:
			return findings[i].Category.Priority() > findings[j].Category.Priority()
		case sortByItem:
			return findings[i].Identifier < findings[j].Identifier
		default:
			return false
		}
	})
}

// presentCategories returns the categories that actually have findings,
// in the fixed category order.
func presentCategories(findings []models.Finding) []models.Category {
	seen := make(map[models.Category]bool)
	for _, f := range findings {
		seen[f.Category] = true
	}
	var cats []models.Category
	for _, cat := range models.AllCategories() {
		if seen[cat] {
			cats = append(cats, cat)
		}
	}
	return cats
}

// sortFieldName returns a human-readable name for the sort field.
func sortFieldName(f sortField) string {
	switch f {
	case sortBySeverity:
		return "severity"
	case sortByCategory:
		return "category"
	case sortByItem:
		return "item"
	default:
		return "unknown"
	}
}
