// Package provider abstracts the read-only OS queries behind one
// interface per diagnostic domain. Collectors depend on these
// interfaces only; the concrete Windows implementations live behind
// build tags so classification logic never touches platform code.
// Every query is read-only: nothing here writes to the registry,
// services, tasks, or devices.
package provider

import (
	"context"
	"errors"
	"time"
)

// ErrUnsupported is returned by stub providers on platforms where the
// underlying instrumentation does not exist. The collector surfaces it
// as a category-level failure.
var ErrUnsupported = errors.New("instrumentation not available on this platform")

// ErrAccessDenied marks a query blocked by insufficient privilege. A
// collector maps it to Unknown metrics rather than failing the domain
// when the rest of the query succeeded.
var ErrAccessDenied = errors.New("access denied")

// StartupEntry is one auto-run item from a registry Run key or a
// startup folder.
type StartupEntry struct {
	Name   string
	Path   string
	Source string
}

// StartupProvider lists auto-run entries from the current-user and
// machine-wide registry views (native and WOW64) plus the user and
// common startup folders.
type StartupProvider interface {
	Entries(ctx context.Context) ([]StartupEntry, error)
}

// ServiceInfo is one service configured for automatic start.
type ServiceInfo struct {
	Name        string
	DisplayName string
	State       string
	StartMode   string
	PathName    string
}

// ServiceProvider lists services configured to start automatically.
type ServiceProvider interface {
	AutoStartServices(ctx context.Context) ([]ServiceInfo, error)
}

// ProcessSample is one process observed over the sampling window.
type ProcessSample struct {
	PID         int32
	Name        string
	CPUPercent  float64
	MemoryBytes uint64
	ReadBytes   uint64
	WriteBytes  uint64

	// IOUnknown is set when the process's IO counters were not
	// readable (typically a protected process).
	IOUnknown bool
}

// ProcessProvider samples the running-process table. Sample blocks for
// the given interval between its two CPU-time measurements; it is the
// one deliberate suspension point in the engine, and honors ctx
// cancellation during the wait.
type ProcessProvider interface {
	Sample(ctx context.Context, interval time.Duration) ([]ProcessSample, error)
}

// PartitionUsage is space accounting for one fixed drive.
type PartitionUsage struct {
	Device      string
	Mountpoint  string
	Filesystem  string
	TotalBytes  uint64
	FreeBytes   uint64
	FreePercent float64
}

// DiskProvider queries fixed-drive usage, failure prediction, and the
// temporary-file footprint.
type DiskProvider interface {
	Partitions(ctx context.Context) ([]PartitionUsage, error)

	// FailurePrediction maps device → predicted-failure flag. An error
	// means the prediction source was inaccessible for all drives; the
	// collector then reports the metric as Unknown, never as healthy.
	FailurePrediction(ctx context.Context) (map[string]bool, error)

	// TempUsage sums file sizes across the known temp locations.
	TempUsage(ctx context.Context) (totalBytes uint64, fileCount int, err error)
}

// Device is one enumerated Plug-and-Play device.
type Device struct {
	Name      string
	DeviceID  string
	Status    string
	ErrorCode int
}

// DriverSignature is the signature state of one installed driver.
type DriverSignature struct {
	DeviceName string
	Version    string
	Signed     bool
}

// DeviceProvider enumerates devices and driver signature states.
type DeviceProvider interface {
	Devices(ctx context.Context) ([]Device, error)

	// Signatures may fail independently of Devices; the collector then
	// reports signature state as Unknown on otherwise-healthy devices.
	Signatures(ctx context.Context) ([]DriverSignature, error)
}

// TaskInfo is one task registered with the scheduler.
type TaskInfo struct {
	Name        string
	Path        string
	State       string
	Author      string
	Trigger     string
	RepeatEvery time.Duration // 0 when the task does not repeat
}

// TaskProvider lists registered scheduled tasks with their triggers.
type TaskProvider interface {
	Tasks(ctx context.Context) ([]TaskInfo, error)
}
