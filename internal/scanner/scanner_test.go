package scanner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/okulov/windiag/internal/collector"
	"github.com/okulov/windiag/internal/models"
)

// fakeCollector returns a canned result, optionally after a delay.
type fakeCollector struct {
	category models.Category
	findings []models.Finding
	delay    time.Duration
}

func (f *fakeCollector) Category() models.Category { return f.category }

func (f *fakeCollector) Collect(ctx context.Context, _ collector.Config) models.CollectorResult {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return models.CollectorResult{
				Category: f.category,
				Failure:  &models.Failure{Kind: models.FailureTimeout, Message: ctx.Err().Error()},
			}
		}
	}
	return models.CollectorResult{Category: f.category, Findings: f.findings}
}

func fullSet(overrides map[models.Category]*fakeCollector) []collector.Collector {
	var cs []collector.Collector
	for _, cat := range models.AllCategories() {
		if fc, ok := overrides[cat]; ok {
			cs = append(cs, fc)
			continue
		}
		cs = append(cs, &fakeCollector{category: cat})
	}
	return cs
}

func TestQuickScan(t *testing.T) {
	overrides := map[models.Category]*fakeCollector{
		models.CategoryStartup: {
			category: models.CategoryStartup,
			findings: []models.Finding{{
				Category: models.CategoryStartup, Identifier: "Steam",
				Severity: models.SeverityWarning, Impact: models.ImpactHigh,
			}},
		},
		models.CategoryProcess: {
			category: models.CategoryProcess,
			findings: []models.Finding{{
				Category: models.CategoryProcess, Identifier: "chrome.exe",
				Severity: models.SeverityCritical,
			}},
		},
	}

	s := New(fullSet(overrides))
	result, err := s.Scan(context.Background(), Options{Mode: models.ModeQuick})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	if len(result.PerCategory) != 2 {
		t.Errorf("quick scan ran %d collectors, want 2", len(result.PerCategory))
	}
	if _, ok := result.PerCategory[models.CategoryDisk]; ok {
		t.Error("quick scan must not run the disk collector by default")
	}
	if result.Summary.BySeverity.Warning != 1 || result.Summary.BySeverity.Critical != 1 {
		t.Errorf("BySeverity = %+v, want warning=1 critical=1", result.Summary.BySeverity)
	}

	recs := result.Summary.Recommendations
	if len(recs) != 2 {
		t.Fatalf("got %d recommendations, want 2", len(recs))
	}
	if recs[0].Severity != models.SeverityCritical {
		t.Errorf("first recommendation severity = %v, want critical", recs[0].Severity)
	}
	if s.State() != StateCompleted {
		t.Errorf("State = %v, want completed", s.State())
	}
}

func TestQuickScanCustomCategories(t *testing.T) {
	s := New(fullSet(nil))
	result, err := s.Scan(context.Background(), Options{
		Mode:            models.ModeQuick,
		QuickCategories: []models.Category{models.CategoryDisk},
	})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(result.PerCategory) != 1 {
		t.Errorf("ran %d collectors, want 1", len(result.PerCategory))
	}
	if _, ok := result.PerCategory[models.CategoryDisk]; !ok {
		t.Error("configured quick category not run")
	}
}

func TestFullScanRunsAllCollectors(t *testing.T) {
	s := New(fullSet(nil))
	result, err := s.Scan(context.Background(), Options{Mode: models.ModeFull})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(result.PerCategory) != len(models.AllCategories()) {
		t.Errorf("ran %d collectors, want %d", len(result.PerCategory), len(models.AllCategories()))
	}
	if result.Mode != models.ModeFull {
		t.Errorf("Mode = %v, want full", result.Mode)
	}
}

func TestCollectorTimeoutDoesNotFailScan(t *testing.T) {
	overrides := map[models.Category]*fakeCollector{
		models.CategoryDriver: {category: models.CategoryDriver, delay: 5 * time.Second},
		models.CategoryStartup: {
			category: models.CategoryStartup,
			findings: []models.Finding{{
				Category: models.CategoryStartup, Identifier: "Dropbox",
				Severity: models.SeverityWarning,
			}},
		},
	}

	s := New(fullSet(overrides))
	result, err := s.Scan(context.Background(), Options{
		Mode:        models.ModeFull,
		Timeout:     50 * time.Millisecond,
		SlowTimeout: 50 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	driver := result.PerCategory[models.CategoryDriver]
	if driver.Failure == nil || driver.Failure.Kind != models.FailureTimeout {
		t.Errorf("driver result = %+v, want timeout failure", driver)
	}
	if len(result.Summary.NotEvaluated) != 1 || result.Summary.NotEvaluated[0] != models.CategoryDriver {
		t.Errorf("NotEvaluated = %v, want [driver]", result.Summary.NotEvaluated)
	}
	if result.Summary.BySeverity.Warning != 1 {
		t.Errorf("other collectors' findings lost: %+v", result.Summary.BySeverity)
	}
	if s.State() != StateCompleted {
		t.Errorf("State = %v, want completed", s.State())
	}
}

func TestScanCancellation(t *testing.T) {
	overrides := map[models.Category]*fakeCollector{
		models.CategoryProcess: {category: models.CategoryProcess, delay: 5 * time.Second},
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	s := New(fullSet(overrides))
	_, err := s.Scan(ctx, Options{Mode: models.ModeFull})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Scan error = %v, want context.Canceled", err)
	}
	if s.State() != StateFailed {
		t.Errorf("State = %v, want failed", s.State())
	}
}

func TestUnknownModeFails(t *testing.T) {
	s := New(fullSet(nil))
	if _, err := s.Scan(context.Background(), Options{Mode: "turbo"}); err == nil {
		t.Fatal("unknown mode should fail the scan")
	}
	if s.State() != StateFailed {
		t.Errorf("State = %v, want failed", s.State())
	}
}

func TestQuickModeNoMatchingCollectors(t *testing.T) {
	s := New(nil)
	if _, err := s.Scan(context.Background(), Options{Mode: models.ModeQuick}); err == nil {
		t.Fatal("empty collector selection should fail")
	}
}

func TestTimeoutFor(t *testing.T) {
	opts := Options{Timeout: time.Second, SlowTimeout: 3 * time.Second}
	if got := opts.timeoutFor(models.CategoryDriver); got != 3*time.Second {
		t.Errorf("driver timeout = %v, want 3s", got)
	}
	if got := opts.timeoutFor(models.CategoryScheduledTask); got != 3*time.Second {
		t.Errorf("task timeout = %v, want 3s", got)
	}
	if got := opts.timeoutFor(models.CategoryStartup); got != time.Second {
		t.Errorf("startup timeout = %v, want 1s", got)
	}

	var zero Options
	if got := zero.timeoutFor(models.CategoryDisk); got != DefaultTimeout {
		t.Errorf("default timeout = %v, want %v", got, DefaultTimeout)
	}
	if got := zero.timeoutFor(models.CategoryDriver); got != DefaultSlowTimeout {
		t.Errorf("default slow timeout = %v, want %v", got, DefaultSlowTimeout)
	}
}

func TestStateString(t *testing.T) {
	for state, want := range map[State]string{
		StateIdle: "idle", StateRunning: "running",
		StateCompleted: "completed", StateFailed: "failed",
	} {
		if got := state.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", state, got, want)
		}
	}
}
