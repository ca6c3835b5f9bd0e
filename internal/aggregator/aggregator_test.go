package aggregator

import (
	"testing"

	"github.com/okulov/windiag/internal/models"
)

func finding(cat models.Category, id string, sev models.Severity) models.Finding {
	return models.Finding{Category: cat, Identifier: id, Severity: sev}
}

func TestBuildSummaryCounts(t *testing.T) {
	perCategory := map[models.Category]models.CollectorResult{
		models.CategoryStartup: {
			Category: models.CategoryStartup,
			Findings: []models.Finding{
				finding(models.CategoryStartup, "Steam", models.SeverityWarning),
				finding(models.CategoryStartup, "Notepad", models.SeverityOK),
			},
		},
		models.CategoryDisk: {
			Category: models.CategoryDisk,
			Findings: []models.Finding{
				finding(models.CategoryDisk, "C:", models.SeverityCritical),
			},
		},
	}

	summary := BuildSummary(perCategory)

	if summary.BySeverity.Critical != 1 || summary.BySeverity.Warning != 1 || summary.BySeverity.OK != 1 {
		t.Errorf("BySeverity = %+v, want 1/1/1", summary.BySeverity)
	}
	if got := summary.ByCategory[models.CategoryStartup]; got.Warning != 1 || got.OK != 1 {
		t.Errorf("startup counts = %+v", got)
	}
	if got := summary.ByCategory[models.CategoryDisk]; got.Critical != 1 {
		t.Errorf("disk counts = %+v", got)
	}
}

func TestBuildSummaryNotEvaluated(t *testing.T) {
	perCategory := map[models.Category]models.CollectorResult{
		models.CategoryDriver: {
			Category: models.CategoryDriver,
			Failure:  &models.Failure{Kind: models.FailureTimeout, Message: "deadline exceeded"},
		},
		models.CategoryProcess: {
			Category: models.CategoryProcess,
			Findings: []models.Finding{
				finding(models.CategoryProcess, "chrome.exe", models.SeverityCritical),
			},
		},
	}

	summary := BuildSummary(perCategory)

	if len(summary.NotEvaluated) != 1 || summary.NotEvaluated[0] != models.CategoryDriver {
		t.Errorf("NotEvaluated = %v, want [driver]", summary.NotEvaluated)
	}
	if _, ok := summary.ByCategory[models.CategoryDriver]; ok {
		t.Error("failed category must not appear in ByCategory")
	}
	if summary.BySeverity.Total() != 1 {
		t.Errorf("failed category leaked into severity counts: %+v", summary.BySeverity)
	}
}

func TestBuildSummaryIndeterminate(t *testing.T) {
	f := finding(models.CategoryDisk, "C:", models.SeverityOK)
	f.Indeterminate = true

	perCategory := map[models.Category]models.CollectorResult{
		models.CategoryDisk: {
			Category: models.CategoryDisk,
			Findings: []models.Finding{f, finding(models.CategoryDisk, "D:", models.SeverityOK)},
		},
	}

	summary := BuildSummary(perCategory)

	if summary.Indeterminate != 1 {
		t.Errorf("Indeterminate = %d, want 1", summary.Indeterminate)
	}
	if summary.BySeverity.OK != 1 {
		t.Errorf("indeterminate finding counted as OK: %+v", summary.BySeverity)
	}
	if len(summary.Recommendations) != 0 {
		t.Errorf("indeterminate finding produced a recommendation: %v", summary.Recommendations)
	}
}

func TestRecommendationOrdering(t *testing.T) {
	perCategory := map[models.Category]models.CollectorResult{
		models.CategoryStartup: {
			Category: models.CategoryStartup,
			Findings: []models.Finding{
				finding(models.CategoryStartup, "Steam", models.SeverityWarning),
			},
		},
		models.CategoryDisk: {
			Category: models.CategoryDisk,
			Findings: []models.Finding{
				finding(models.CategoryDisk, "C:", models.SeverityWarning),
			},
		},
		models.CategoryProcess: {
			Category: models.CategoryProcess,
			Findings: []models.Finding{
				finding(models.CategoryProcess, "chrome.exe", models.SeverityCritical),
				finding(models.CategoryProcess, "code.exe", models.SeverityOK),
			},
		},
	}

	summary := BuildSummary(perCategory)

	if len(summary.Recommendations) != 3 {
		t.Fatalf("got %d recommendations, want 3", len(summary.Recommendations))
	}
	// Critical first; among warnings the disk outranks the startup entry.
	if summary.Recommendations[0].Identifier != "chrome.exe" {
		t.Errorf("first recommendation = %q, want chrome.exe", summary.Recommendations[0].Identifier)
	}
	if summary.Recommendations[1].Category != models.CategoryDisk {
		t.Errorf("second recommendation category = %v, want disk", summary.Recommendations[1].Category)
	}
	if summary.Recommendations[2].Category != models.CategoryStartup {
		t.Errorf("third recommendation category = %v, want startup", summary.Recommendations[2].Category)
	}
}

func TestRecommendationStability(t *testing.T) {
	// Two warnings in one category keep their collector order.
	perCategory := map[models.Category]models.CollectorResult{
		models.CategoryService: {
			Category: models.CategoryService,
			Findings: []models.Finding{
				finding(models.CategoryService, "first", models.SeverityWarning),
				finding(models.CategoryService, "second", models.SeverityWarning),
			},
		},
	}

	for i := 0; i < 10; i++ {
		summary := BuildSummary(perCategory)
		if summary.Recommendations[0].Identifier != "first" || summary.Recommendations[1].Identifier != "second" {
			t.Fatalf("iteration %d: order changed: %v", i, summary.Recommendations)
		}
	}
}

func TestActionTextFallback(t *testing.T) {
	got := actionText(models.Category("bogus"), models.SeverityWarning, "thing")
	if got != "Review thing" {
		t.Errorf("fallback action = %q", got)
	}
}

func TestOKFindingsProduceNoRecommendations(t *testing.T) {
	recs := recommend([]models.Finding{
		finding(models.CategoryStartup, "Notepad", models.SeverityOK),
	})
	if len(recs) != 0 {
		t.Errorf("OK finding produced recommendations: %v", recs)
	}
}
