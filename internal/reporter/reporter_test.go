package reporter

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/okulov/windiag/internal/models"
)

func sampleResult() *models.ScanResult {
	return &models.ScanResult{
		Mode:      models.ModeFull,
		Timestamp: time.Date(2026, 8, 20, 10, 30, 0, 0, time.UTC),
		Elevated:  true,
		Host: &models.HostInfo{
			Hostname: "DESKTOP-1", Platform: "Microsoft Windows 11",
			MemoryTotal: 16 << 30, MemoryUsed: 8 << 30, MemoryPercent: 50,
		},
		PerCategory: map[models.Category]models.CollectorResult{
			models.CategoryStartup: {
				Category: models.CategoryStartup,
				Findings: []models.Finding{{
					Category: models.CategoryStartup, Identifier: "Steam",
					Severity: models.SeverityWarning, Impact: models.ImpactHigh,
					Description: "High-impact startup item from HKCU Run",
				}},
			},
			models.CategoryDriver: {
				Category: models.CategoryDriver,
				Failure:  &models.Failure{Kind: models.FailureTimeout, Message: "deadline exceeded"},
			},
		},
		Summary: models.Summary{
			BySeverity: models.SeverityCounts{Warning: 1},
			ByCategory: map[models.Category]models.SeverityCounts{
				models.CategoryStartup: {Warning: 1},
			},
			NotEvaluated: []models.Category{models.CategoryDriver},
			Recommendations: []models.Recommendation{{
				Severity: models.SeverityWarning, Category: models.CategoryStartup,
				Identifier: "Steam", Action: "Consider disabling Steam at startup to speed up boot",
			}},
		},
	}
}

func TestTextReporter(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer

	if err := NewTextReporter(&buf).Generate(sampleResult()); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"windiag Diagnostic Report",
		"Mode:      full",
		"Elevated:  yes",
		"DESKTOP-1",
		"Startup Programs",
		"[WARNING]",
		"Steam",
		"Not evaluated: Driver Status",
		"Recommended Actions:",
		"Consider disabling Steam",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("text report missing %q\n%s", want, out)
		}
	}
}

func TestJSONReporter(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONReporter(&buf, true).Generate(sampleResult()); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	var decoded models.ScanResult
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Mode != models.ModeFull {
		t.Errorf("Mode = %v, want full", decoded.Mode)
	}
	if !strings.Contains(buf.String(), `"severity": "warning"`) {
		t.Error("severity should marshal as its name")
	}
}

func TestJSONSummaryOnly(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONReporter(&buf, false).GenerateSummaryOnly(sampleResult()); err != nil {
		t.Fatalf("GenerateSummaryOnly: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "per_category") {
		t.Error("summary-only output should omit per-finding data")
	}
	if !strings.Contains(out, "recommendations") {
		t.Error("summary-only output should carry recommendations")
	}
}

func TestYAMLReporter(t *testing.T) {
	var buf bytes.Buffer
	if err := NewYAMLReporter(&buf).Generate(sampleResult()); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	var decoded map[string]interface{}
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if decoded["mode"] != "full" {
		t.Errorf("mode = %v, want full", decoded["mode"])
	}
}

func TestHTMLReporter(t *testing.T) {
	var buf bytes.Buffer
	if err := NewHTMLReporter(&buf).Generate(sampleResult()); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"<!DOCTYPE html>",
		"windiag Diagnostic Report",
		"Startup Programs",
		`class="badge warning"`,
		"Steam",
		"Not evaluated: deadline exceeded",
		"Recommended Actions",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("html report missing %q", want)
		}
	}
}
