// Package aggregator folds the completed set of collector results into
// one Summary: severity totals, per-category counts, and the ranked
// recommendation list.
package aggregator

import (
	"sort"

	"github.com/okulov/windiag/internal/models"
)

// BuildSummary derives the Summary from a completed scan. Iteration
// follows the fixed category order, so the result is identical no
// matter what order the collectors finished in.
func BuildSummary(perCategory map[models.Category]models.CollectorResult) models.Summary {
	summary := models.Summary{
		ByCategory:      make(map[models.Category]models.SeverityCounts),
		Recommendations: []models.Recommendation{},
	}

	for _, category := range models.AllCategories() {
		result, ok := perCategory[category]
		if !ok {
			continue
		}
		if result.Failure != nil {
			// A failed category is reported as not evaluated, never
			// folded into the OK column.
			summary.NotEvaluated = append(summary.NotEvaluated, category)
			continue
		}

		counts := models.SeverityCounts{}
		for _, f := range result.Findings {
			if f.Indeterminate {
				summary.Indeterminate++
				continue
			}
			counts.Add(f.Severity)
			summary.BySeverity.Add(f.Severity)
		}
		summary.ByCategory[category] = counts
		summary.Recommendations = append(summary.Recommendations, recommend(result.Findings)...)
	}

	sortRecommendations(summary.Recommendations)
	return summary
}

// sortRecommendations orders by severity descending, then category
// urgency. The sort is stable so findings within one category keep the
// order their collector produced.
func sortRecommendations(recs []models.Recommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Severity != recs[j].Severity {
			return recs[i].Severity > recs[j].Severity
		}
		return recs[i].Category.Priority() > recs[j].Category.Priority()
	})
}
