package collector

import (
	"context"
	"path/filepath"
	"sort"
	"strings"

	"github.com/okulov/windiag/internal/classify"
	"github.com/okulov/windiag/internal/models"
	"github.com/okulov/windiag/internal/provider"
)

// Startup inspects auto-run registry entries and startup-folder
// contents.
type Startup struct {
	prov provider.StartupProvider
}

// NewStartup creates the startup collector.
func NewStartup(prov provider.StartupProvider) *Startup {
	return &Startup{prov: prov}
}

// Category implements Collector.
func (s *Startup) Category() models.Category { return models.CategoryStartup }

// Collect implements Collector. The same program often registers both a
// Run key and a startup-folder shortcut, so entries are deduplicated by
// resolved executable path before classification.
func (s *Startup) Collect(ctx context.Context, _ Config) models.CollectorResult {
	entries, err := s.prov.Entries(ctx)
	if err != nil {
		return failure(models.CategoryStartup, err)
	}

	seen := make(map[string]bool, len(entries))
	var findings []models.Finding
	for _, e := range entries {
		exe := resolveExecutable(e.Path)
		if exe != "" && seen[exe] {
			continue
		}
		if exe != "" {
			seen[exe] = true
		}
		findings = append(findings, classify.Startup(e.Name, e.Path, e.Source))
	}

	// High impact first, matching the order users triage in.
	impactRank := map[models.Impact]int{
		models.ImpactHigh: 0, models.ImpactMedium: 1, models.ImpactLow: 2,
	}
	sort.SliceStable(findings, func(i, j int) bool {
		return impactRank[findings[i].Impact] < impactRank[findings[j].Impact]
	})

	return models.CollectorResult{Category: models.CategoryStartup, Findings: findings}
}

// resolveExecutable normalizes an auto-run command line to the bare
// executable path: quoted paths are unwrapped, trailing arguments
// dropped, case folded.
func resolveExecutable(command string) string {
	command = strings.TrimSpace(command)
	if command == "" {
		return ""
	}

	var exe string
	if strings.HasPrefix(command, `"`) {
		if end := strings.Index(command[1:], `"`); end >= 0 {
			exe = command[1 : end+1]
		} else {
			exe = strings.Trim(command, `"`)
		}
	} else if i := strings.Index(strings.ToLower(command), ".exe"); i >= 0 {
		exe = command[:i+4]
	} else {
		exe = strings.Fields(command)[0]
	}

	return strings.ToLower(filepath.Clean(exe))
}
