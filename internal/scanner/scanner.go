// Package scanner orchestrates a diagnostic scan: it selects the
// collectors for the requested mode, runs them concurrently with
// per-collector timeouts, and folds the results into one ScanResult.
package scanner

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/okulov/windiag/internal/aggregator"
	"github.com/okulov/windiag/internal/collector"
	"github.com/okulov/windiag/internal/models"
)

// State tracks the scanner lifecycle. A scanner runs one scan at a
// time; starting a second while one is in flight is an error.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateCompleted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ErrScanInProgress is returned when Scan is called while another scan
// on the same Scanner has not finished.
var ErrScanInProgress = errors.New("scan already in progress")

// Default per-collector timeouts. Device enumeration and the task
// scheduler query are an order of magnitude slower than the rest.
const (
	DefaultTimeout     = 30 * time.Second
	DefaultSlowTimeout = 90 * time.Second
)

// DefaultQuickCategories is the quick-mode collector set when the
// configuration does not override it.
func DefaultQuickCategories() []models.Category {
	return []models.Category{models.CategoryStartup, models.CategoryProcess}
}

// Options configures a single scan invocation.
type Options struct {
	Mode models.ScanMode

	// QuickCategories overrides the quick-mode collector set. Ignored
	// in full mode.
	QuickCategories []models.Category

	// Elevated records whether the process holds administrator rights.
	// Collectors degrade individual metrics to Unknown when it is false.
	Elevated bool

	// Timeout bounds each ordinary collector; SlowTimeout bounds the
	// driver and scheduled-task collectors. Zero means the default.
	Timeout     time.Duration
	SlowTimeout time.Duration

	SampleInterval time.Duration
	TopProcesses   int
	MaxTasks       int
}

func (o Options) timeoutFor(category models.Category) time.Duration {
	slow := o.SlowTimeout
	if slow <= 0 {
		slow = DefaultSlowTimeout
	}
	fast := o.Timeout
	if fast <= 0 {
		fast = DefaultTimeout
	}
	if category == models.CategoryDriver || category == models.CategoryScheduledTask {
		return slow
	}
	return fast
}

// Scanner runs scans over a fixed collector set. Safe for use from one
// goroutine; State may be read from others.
type Scanner struct {
	collectors []collector.Collector

	mu    sync.Mutex
	state State
}

// New creates a Scanner over the given collectors.
func New(collectors []collector.Collector) *Scanner {
	return &Scanner{collectors: collectors, state: StateIdle}
}

// NewDefault creates a Scanner wired to the system providers.
func NewDefault() *Scanner {
	return New(collector.Defaults())
}

// State returns the current lifecycle state.
func (s *Scanner) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Scanner) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

// Scan runs the collectors selected by opts.Mode and returns the
// aggregated result. Collector failures and timeouts surface inside the
// result as not-evaluated categories; Scan itself fails only when the
// whole scan is cancelled or misconfigured.
func (s *Scanner) Scan(ctx context.Context, opts Options) (*models.ScanResult, error) {
	s.mu.Lock()
	if s.state == StateRunning {
		s.mu.Unlock()
		return nil, ErrScanInProgress
	}
	s.state = StateRunning
	s.mu.Unlock()

	selected, err := s.selectCollectors(opts)
	if err != nil {
		s.setState(StateFailed)
		return nil, err
	}

	cfg := collector.Config{
		Elevated:       opts.Elevated,
		SampleInterval: opts.SampleInterval,
		TopProcesses:   opts.TopProcesses,
		MaxTasks:       opts.MaxTasks,
	}

	started := time.Now().UTC()
	perCategory := make(map[models.Category]models.CollectorResult, len(selected))

	var (
		wg sync.WaitGroup
		rm sync.Mutex
	)
	for _, c := range selected {
		wg.Add(1)
		go func(c collector.Collector) {
			defer wg.Done()
			result := runCollector(ctx, c, cfg, opts.timeoutFor(c.Category()))
			rm.Lock()
			perCategory[c.Category()] = result
			rm.Unlock()
		}(c)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		s.setState(StateFailed)
		return nil, err
	}

	result := &models.ScanResult{
		Mode:        opts.Mode,
		Timestamp:   started,
		Elevated:    opts.Elevated,
		PerCategory: perCategory,
		Summary:     aggregator.BuildSummary(perCategory),
	}
	s.setState(StateCompleted)
	return result, nil
}

// selectCollectors resolves the collector set for the scan mode. Full
// mode runs everything; quick mode runs the configured subset.
func (s *Scanner) selectCollectors(opts Options) ([]collector.Collector, error) {
	switch opts.Mode {
	case models.ModeFull:
		return s.collectors, nil
	case models.ModeQuick:
		want := opts.QuickCategories
		if len(want) == 0 {
			want = DefaultQuickCategories()
		}
		wanted := make(map[models.Category]bool, len(want))
		for _, cat := range want {
			wanted[cat] = true
		}
		var selected []collector.Collector
		for _, c := range s.collectors {
			if wanted[c.Category()] {
				selected = append(selected, c)
			}
		}
		if len(selected) == 0 {
			return nil, errors.New("quick mode selects no collectors")
		}
		return selected, nil
	default:
		return nil, errors.New("unknown scan mode: " + string(opts.Mode))
	}
}

// runCollector runs one collector under its timeout. Collect runs in
// its own goroutine so a collector stuck in a blocking syscall cannot
// stall the scan past its deadline; a late result is discarded.
func runCollector(ctx context.Context, c collector.Collector, cfg collector.Config, timeout time.Duration) models.CollectorResult {
	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan models.CollectorResult, 1)
	go func() {
		done <- c.Collect(cctx, cfg)
	}()

	select {
	case result := <-done:
		return result
	case <-cctx.Done():
		return timeoutResult(c.Category(), cctx.Err())
	}
}

func timeoutResult(category models.Category, err error) models.CollectorResult {
	kind := models.FailureTimeout
	if errors.Is(err, context.Canceled) {
		kind = models.FailureCancelled
	}
	return models.CollectorResult{
		Category: category,
		Failure:  &models.Failure{Kind: kind, Message: err.Error()},
	}
}
