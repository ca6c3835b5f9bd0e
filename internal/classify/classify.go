// Package classify holds every severity rule in one place, as pure
// functions over raw metrics. Collectors gather facts; nothing in here
// touches the OS, so boundary values can be tested without collection
// mechanics. All threshold comparisons are strict: a value exactly at a
// threshold does not trigger the next tier.
package classify

import (
	"fmt"
	"strings"
	"time"

	"github.com/okulov/windiag/internal/models"
)

// Process thresholds.
const (
	ProcessCPUCritical = 50.0
	ProcessCPUWarning  = 20.0
	ProcessMemCritical = 2_000_000_000
	ProcessMemWarning  = 1_000_000_000
)

// Disk thresholds.
const (
	DiskFreeCritical = 5.0
	DiskFreeWarning  = 10.0
	TempBytesWarning = 500_000_000
)

// MaxTaskRepeat is the repetition interval under which a third-party
// scheduled task is flagged as running too frequently.
const MaxTaskRepeat = time.Hour

// ProcessMetrics are the raw facts for one sampled process.
type ProcessMetrics struct {
	PID         int32
	CPUPercent  float64
	MemoryBytes uint64
	ReadBytes   uint64
	WriteBytes  uint64
	IOUnknown   bool
}

// Process classifies one process sample. Either condition alone is
// enough for its tier: cpu and memory are independent ORs.
func Process(name string, m ProcessMetrics) models.Finding {
	var severity models.Severity
	switch {
	case m.CPUPercent > ProcessCPUCritical || m.MemoryBytes > ProcessMemCritical:
		severity = models.SeverityCritical
	case m.CPUPercent > ProcessCPUWarning || m.MemoryBytes > ProcessMemWarning:
		severity = models.SeverityWarning
	default:
		severity = models.SeverityOK
	}

	metrics := map[string]models.Metric{
		models.MetricPID:         models.Num(float64(m.PID)),
		models.MetricCPUPercent:  models.Num(m.CPUPercent),
		models.MetricMemoryBytes: models.Num(float64(m.MemoryBytes)),
	}
	if m.IOUnknown {
		metrics[models.MetricReadBytes] = models.UnknownMetric()
		metrics[models.MetricWriteBytes] = models.UnknownMetric()
	} else {
		metrics[models.MetricReadBytes] = models.Num(float64(m.ReadBytes))
		metrics[models.MetricWriteBytes] = models.Num(float64(m.WriteBytes))
	}

	return models.Finding{
		Category:   models.CategoryProcess,
		Identifier: name,
		Metrics:    metrics,
		Severity:   severity,
		Description: fmt.Sprintf("%s (pid %d) using %.1f%% CPU and %s memory",
			name, m.PID, m.CPUPercent, FormatBytes(m.MemoryBytes)),
	}
}

// SmartStatus is the failure-prediction state of a drive. Unknown means
// the query was inaccessible (commonly insufficient privilege) and must
// not be collapsed into healthy.
type SmartStatus int

const (
	SmartUnknown SmartStatus = iota
	SmartOK
	SmartFailurePredicted
)

func (s SmartStatus) String() string {
	switch s {
	case SmartOK:
		return "ok"
	case SmartFailurePredicted:
		return "failure_predicted"
	default:
		return "unknown"
	}
}

// DiskMetrics are the raw facts for one fixed drive.
type DiskMetrics struct {
	Filesystem  string
	TotalBytes  uint64
	FreeBytes   uint64
	FreePercent float64
	Smart       SmartStatus
}

// Disk classifies one drive by free space and failure prediction.
func Disk(device string, m DiskMetrics) models.Finding {
	var severity models.Severity
	switch {
	case m.FreePercent < DiskFreeCritical || m.Smart == SmartFailurePredicted:
		severity = models.SeverityCritical
	case m.FreePercent < DiskFreeWarning:
		severity = models.SeverityWarning
	default:
		severity = models.SeverityOK
	}

	metrics := map[string]models.Metric{
		models.MetricFreePercent: models.Num(m.FreePercent),
		models.MetricTotalBytes:  models.Num(float64(m.TotalBytes)),
		models.MetricFreeBytes:   models.Num(float64(m.FreeBytes)),
		models.MetricFilesystem:  models.Str(m.Filesystem),
	}

	desc := fmt.Sprintf("%s has %.1f%% free (%s of %s)",
		device, m.FreePercent, FormatBytes(m.FreeBytes), FormatBytes(m.TotalBytes))

	indeterminate := false
	switch m.Smart {
	case SmartFailurePredicted:
		metrics[models.MetricSmartStatus] = models.Str(m.Smart.String())
		desc += "; drive failure predicted"
	case SmartOK:
		metrics[models.MetricSmartStatus] = models.Str(m.Smart.String())
	default:
		metrics[models.MetricSmartStatus] = models.UnknownMetric()
		desc += "; failure prediction unavailable"
		indeterminate = severity == models.SeverityOK
	}

	return models.Finding{
		Category:      models.CategoryDisk,
		Identifier:    device,
		Metrics:       metrics,
		Severity:      severity,
		Description:   desc,
		Indeterminate: indeterminate,
	}
}

// TempUsage classifies the combined temporary-file footprint across the
// known temp locations. It is reported as a disk-category finding.
func TempUsage(totalBytes uint64, fileCount int) models.Finding {
	severity := models.SeverityOK
	if totalBytes > TempBytesWarning {
		severity = models.SeverityWarning
	}

	return models.Finding{
		Category:   models.CategoryDisk,
		Identifier: "Temp Folders",
		Metrics: map[string]models.Metric{
			models.MetricTempBytes: models.Num(float64(totalBytes)),
			models.MetricTempFiles: models.Num(float64(fileCount)),
		},
		Severity: severity,
		Description: fmt.Sprintf("temporary files occupy %s across %d files",
			FormatBytes(totalBytes), fileCount),
	}
}

// TempUnavailable reports the temp-footprint item when the temp
// locations could not be walked at all. The metric stays Unknown and
// the item is indeterminate rather than quietly healthy.
func TempUnavailable() models.Finding {
	return models.Finding{
		Category:   models.CategoryDisk,
		Identifier: "Temp Folders",
		Metrics: map[string]models.Metric{
			models.MetricTempBytes: models.UnknownMetric(),
		},
		Severity:      models.SeverityOK,
		Description:   "temporary-file footprint could not be measured",
		Indeterminate: true,
	}
}

// SignaturesUnavailable reports that driver signature state could not
// be read for any device, typically for lack of privilege.
func SignaturesUnavailable() models.Finding {
	return models.Finding{
		Category:   models.CategoryDriver,
		Identifier: "Driver Signatures",
		Metrics: map[string]models.Metric{
			models.MetricSigned: models.UnknownMetric(),
		},
		Severity:      models.SeverityOK,
		Description:   "driver signature states could not be read",
		Indeterminate: true,
	}
}

// ServiceMetrics are the raw facts for one auto-start service.
type ServiceMetrics struct {
	DisplayName string
	State       string
	StartMode   string
	ThirdParty  bool
}

// Service classifies one automatic-start service. A third-party service
// starting with the machine is an informational Warning, not inherently
// bad; Microsoft-owned services are OK.
func Service(name string, m ServiceMetrics) models.Finding {
	severity := models.SeverityOK
	if m.ThirdParty {
		severity = models.SeverityWarning
	}

	owner := "Microsoft"
	if m.ThirdParty {
		owner = "third-party"
	}

	return models.Finding{
		Category:   models.CategoryService,
		Identifier: name,
		Metrics: map[string]models.Metric{
			models.MetricDisplayName: models.Str(m.DisplayName),
			models.MetricState:       models.Str(m.State),
			models.MetricStartMode:   models.Str(m.StartMode),
		},
		Severity:   severity,
		ThirdParty: m.ThirdParty,
		Description: fmt.Sprintf("%s service %q (%s) starts automatically",
			owner, m.DisplayName, strings.ToLower(m.State)),
	}
}

// TaskMetrics are the raw facts for one registered scheduled task.
type TaskMetrics struct {
	Path        string
	Author      string
	State       string
	Trigger     string
	RepeatEvery time.Duration // 0 when the task does not repeat
	ThirdParty  bool
}

// Task classifies one scheduled task. Third-party tasks hooked to
// logon/boot/startup, or repeating more often than hourly, are flagged.
func Task(name string, m TaskMetrics) models.Finding {
	severity := models.SeverityOK
	disabled := strings.EqualFold(m.State, "disabled")
	if m.ThirdParty && !disabled {
		if TriggersAtStartup(m.Trigger) {
			severity = models.SeverityWarning
		}
		if m.RepeatEvery > 0 && m.RepeatEvery < MaxTaskRepeat {
			severity = models.SeverityWarning
		}
	}

	metrics := map[string]models.Metric{
		models.MetricPath:    models.Str(m.Path),
		models.MetricAuthor:  models.Str(m.Author),
		models.MetricState:   models.Str(m.State),
		models.MetricTrigger: models.Str(m.Trigger),
	}
	if m.RepeatEvery > 0 {
		metrics[models.MetricRepeatSeconds] = models.Num(m.RepeatEvery.Seconds())
	}

	desc := fmt.Sprintf("task triggered by %q", m.Trigger)
	if m.ThirdParty {
		desc = "third-party " + desc
	}
	if m.RepeatEvery > 0 && m.RepeatEvery < MaxTaskRepeat {
		desc += fmt.Sprintf(", repeating every %s", m.RepeatEvery)
	}

	return models.Finding{
		Category:    models.CategoryScheduledTask,
		Identifier:  name,
		Metrics:     metrics,
		Severity:    severity,
		ThirdParty:  m.ThirdParty,
		Description: desc,
	}
}

// TriggersAtStartup reports whether a trigger description activates the
// task at logon, boot, or system start.
func TriggersAtStartup(trigger string) bool {
	t := strings.ToLower(trigger)
	for _, marker := range []string{"logon", "startup", "boot", "system start"} {
		if strings.Contains(t, marker) {
			return true
		}
	}
	return false
}

// Startup classifies one auto-run entry. Impact is a table lookup on the
// entry's name and path; only High-impact entries warrant a Warning.
// Startup items have no Critical tier.
func Startup(name, path, source string) models.Finding {
	impact := StartupImpact(name, path)
	severity := models.SeverityOK
	if impact == models.ImpactHigh {
		severity = models.SeverityWarning
	}

	return models.Finding{
		Category:   models.CategoryStartup,
		Identifier: name,
		Metrics: map[string]models.Metric{
			models.MetricPath:   models.Str(path),
			models.MetricSource: models.Str(source),
		},
		Severity: severity,
		Impact:   impact,
		Description: fmt.Sprintf("%s-impact startup item from %s",
			titleCase(string(impact)), source),
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// FormatBytes renders a byte count in the nearest binary unit.
func FormatBytes(v uint64) string {
	const unit = 1024
	if v < unit {
		return fmt.Sprintf("%d B", v)
	}
	div, exp := uint64(unit), 0
	for n := v / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(v)/float64(div), "KMGTP"[exp])
}
