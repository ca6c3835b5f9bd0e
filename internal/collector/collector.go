// Package collector implements the per-domain collectors. Each one
// queries a single diagnostic domain through its provider, classifies
// what it reads, and returns a CollectorResult. Failures stay inside
// the result: a collector never aborts the scan it is part of.
package collector

import (
	"context"
	"errors"
	"time"

	"github.com/okulov/windiag/internal/models"
	"github.com/okulov/windiag/internal/provider"
)

// Config is the per-scan configuration threaded into every collector.
// Elevation is carried explicitly so no collector consults ambient
// process state.
type Config struct {
	Elevated bool

	// SampleInterval is the process CPU observation window.
	SampleInterval time.Duration

	// TopProcesses bounds how many processes the process collector keeps.
	TopProcesses int

	// MaxTasks bounds how many scheduled tasks are reported.
	MaxTasks int
}

// Defaults for Config fields left zero.
const (
	DefaultSampleInterval = 2 * time.Second
	DefaultTopProcesses   = 20
	DefaultMaxTasks       = 100
)

func (c Config) sampleInterval() time.Duration {
	if c.SampleInterval <= 0 {
		return DefaultSampleInterval
	}
	return c.SampleInterval
}

func (c Config) topProcesses() int {
	if c.TopProcesses <= 0 {
		return DefaultTopProcesses
	}
	return c.TopProcesses
}

func (c Config) maxTasks() int {
	if c.MaxTasks <= 0 {
		return DefaultMaxTasks
	}
	return c.MaxTasks
}

// Collector is the shared contract of the six domain collectors.
type Collector interface {
	Category() models.Category
	Collect(ctx context.Context, cfg Config) models.CollectorResult
}

// Defaults returns all six collectors wired to the system providers.
func Defaults() []Collector {
	diskProv := provider.NewDiskProvider()
	return []Collector{
		NewStartup(provider.NewStartupProvider()),
		NewServices(provider.NewServiceProvider()),
		NewProcesses(provider.NewProcessProvider()),
		NewDisk(diskProv),
		NewDrivers(provider.NewDeviceProvider()),
		NewTasks(provider.NewTaskProvider()),
	}
}

// failure wraps a domain-level error into a CollectorResult, mapping
// deadline and cancellation errors to their failure kinds.
func failure(category models.Category, err error) models.CollectorResult {
	kind := models.FailureUnavailable
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		kind = models.FailureTimeout
	case errors.Is(err, context.Canceled):
		kind = models.FailureCancelled
	}
	return models.CollectorResult{
		Category: category,
		Failure:  &models.Failure{Kind: kind, Message: err.Error()},
	}
}
