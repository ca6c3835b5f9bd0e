package aggregator

import (
	"fmt"

	"github.com/okulov/windiag/internal/models"
)

// actionTemplates is the fixed template table: one action text per
// category × severity tier. Recommendation wording is generated, never
// free-form, so identical findings always produce identical advice.
var actionTemplates = map[models.Category]map[models.Severity]string{
	models.CategoryDisk: {
		models.SeverityCritical: "Free disk space on %s immediately, or back up and replace the drive if failure is predicted",
		models.SeverityWarning:  "Free disk space on %s or clear temporary files",
	},
	models.CategoryDriver: {
		models.SeverityCritical: "Reinstall or update the driver for %s",
		models.SeverityWarning:  "Obtain a signed driver for %s from the vendor",
	},
	models.CategoryProcess: {
		models.SeverityCritical: "Investigate %s: it is consuming excessive CPU or memory",
		models.SeverityWarning:  "Review %s for elevated resource usage",
	},
	models.CategoryService: {
		models.SeverityCritical: "Investigate the %s service",
		models.SeverityWarning:  "Review whether the %s service needs to start automatically",
	},
	models.CategoryScheduledTask: {
		models.SeverityCritical: "Investigate the %s scheduled task",
		models.SeverityWarning:  "Review the %s scheduled task's trigger and frequency",
	},
	models.CategoryStartup: {
		models.SeverityCritical: "Disable %s at startup",
		models.SeverityWarning:  "Consider disabling %s at startup to speed up boot",
	},
}

// recommend generates one recommendation per Warning or Critical
// finding, preserving the findings' order. OK and indeterminate
// findings never produce one.
func recommend(findings []models.Finding) []models.Recommendation {
	var recs []models.Recommendation
	for _, f := range findings {
		if f.Severity < models.SeverityWarning || f.Indeterminate {
			continue
		}
		recs = append(recs, models.Recommendation{
			Severity:   f.Severity,
			Category:   f.Category,
			Identifier: f.Identifier,
			Action:     actionText(f.Category, f.Severity, f.Identifier),
		})
	}
	return recs
}

func actionText(category models.Category, severity models.Severity, identifier string) string {
	if tiers, ok := actionTemplates[category]; ok {
		if tmpl, ok := tiers[severity]; ok {
			return fmt.Sprintf(tmpl, identifier)
		}
	}
	return fmt.Sprintf("Review %s", identifier)
}
