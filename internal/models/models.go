package models

import (
	"fmt"
	"time"
)

// Category identifies one diagnostic domain.
type Category string

const (
	CategoryStartup       Category = "startup"
	CategoryService       Category = "service"
	CategoryProcess       Category = "process"
	CategoryDisk          Category = "disk"
	CategoryDriver        Category = "driver"
	CategoryScheduledTask Category = "scheduled_task"
)

// AllCategories returns every category in a fixed, stable order.
// Iteration over scan results always follows this order so output
// does not depend on map ordering.
func AllCategories() []Category {
	return []Category{
		CategoryStartup,
		CategoryService,
		CategoryProcess,
		CategoryDisk,
		CategoryDriver,
		CategoryScheduledTask,
	}
}

// Title returns a human-readable name for the category.
func (c Category) Title() string {
	switch c {
	case CategoryStartup:
		return "Startup Programs"
	case CategoryService:
		return "Services"
	case CategoryProcess:
		return "Process Resource Usage"
	case CategoryDisk:
		return "Disk Health"
	case CategoryDriver:
		return "Driver Status"
	case CategoryScheduledTask:
		return "Scheduled Tasks"
	default:
		return string(c)
	}
}

// Priority returns the urgency rank of a category for recommendation
// ordering. Higher means more urgent: a failing disk outranks a chatty
// startup entry.
func (c Category) Priority() int {
	switch c {
	case CategoryDisk:
		return 6
	case CategoryDriver:
		return 5
	case CategoryProcess:
		return 4
	case CategoryService:
		return 3
	case CategoryScheduledTask:
		return 2
	case CategoryStartup:
		return 1
	default:
		return 0
	}
}

// Severity is the classification tier of a finding, totally ordered
// OK < Warning < Critical.
type Severity int

const (
	SeverityOK Severity = iota
	SeverityWarning
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityOK:
		return "ok"
	case SeverityWarning:
		return "warning"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// MarshalText makes Severity render as its name in JSON and YAML output.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a severity name back into its tier.
func (s *Severity) UnmarshalText(text []byte) error {
	switch string(text) {
	case "warning":
		*s = SeverityWarning
	case "critical":
		*s = SeverityCritical
	case "ok", "":
		*s = SeverityOK
	default:
		return fmt.Errorf("unknown severity %q", text)
	}
	return nil
}

// Impact is the qualitative load rating used for startup entries.
type Impact string

const (
	ImpactLow    Impact = "low"
	ImpactMedium Impact = "medium"
	ImpactHigh   Impact = "high"
)

// Metric is a single named measurement on a finding. A metric that could
// not be read (typically insufficient privilege) carries Unknown=true and
// must never be treated as a zero value by classification.
type Metric struct {
	Number  float64 `json:"number,omitempty" yaml:"number,omitempty"`
	Text    string  `json:"text,omitempty" yaml:"text,omitempty"`
	Unknown bool    `json:"unknown,omitempty" yaml:"unknown,omitempty"`
}

// Num builds a numeric metric.
func Num(v float64) Metric { return Metric{Number: v} }

// Str builds a text metric.
func Str(s string) Metric { return Metric{Text: s} }

// UnknownMetric builds a metric that could not be read.
func UnknownMetric() Metric { return Metric{Unknown: true} }

// Metric keys shared between collectors, classifier, and presentation.
const (
	MetricCPUPercent     = "cpu_percent"
	MetricMemoryBytes    = "memory_bytes"
	MetricReadBytes      = "read_bytes"
	MetricWriteBytes     = "write_bytes"
	MetricPID            = "pid"
	MetricFreePercent    = "free_percent"
	MetricTotalBytes     = "total_bytes"
	MetricFreeBytes      = "free_bytes"
	MetricTempBytes      = "temp_bytes"
	MetricTempFiles      = "temp_files"
	MetricFilesystem     = "filesystem"
	MetricSmartStatus    = "smart_status"
	MetricErrorCode      = "error_code"
	MetricDeviceID       = "device_id"
	MetricSigned         = "signed"
	MetricDriverVersion  = "driver_version"
	MetricState          = "state"
	MetricStartMode      = "start_mode"
	MetricDisplayName    = "display_name"
	MetricPath           = "path"
	MetricSource         = "source"
	MetricAuthor         = "author"
	MetricTrigger        = "trigger"
	MetricRepeatSeconds  = "repeat_seconds"
)

// Finding is one classified observation about a single inspected item.
// Severity and Description are pure functions of (Category, metrics):
// re-classifying the same raw facts always yields an identical Finding.
type Finding struct {
	Category   Category          `json:"category" yaml:"category"`
	Identifier string            `json:"identifier" yaml:"identifier"`
	Metrics    map[string]Metric `json:"metrics,omitempty" yaml:"metrics,omitempty"`
	Severity   Severity          `json:"severity" yaml:"severity"`
	Impact     Impact            `json:"impact,omitempty" yaml:"impact,omitempty"`
	Description string           `json:"description" yaml:"description"`
	ThirdParty bool              `json:"third_party,omitempty" yaml:"third_party,omitempty"`

	// Indeterminate marks a finding whose required metric could not be
	// read and whose known metrics do not already raise it above OK.
	// Such an item is "not fully evaluated", never silently healthy.
	Indeterminate bool `json:"indeterminate,omitempty" yaml:"indeterminate,omitempty"`
}

// FailureKind distinguishes why a whole category could not be evaluated.
type FailureKind string

const (
	FailureUnavailable FailureKind = "unavailable"
	FailureTimeout     FailureKind = "timeout"
	FailureCancelled   FailureKind = "cancelled"
)

// Failure describes a category-level collection failure.
type Failure struct {
	Kind    FailureKind `json:"kind" yaml:"kind"`
	Message string      `json:"message" yaml:"message"`
}

// CollectorResult is the output of one domain collector for one scan.
// When Failure is set, Findings is empty: a category is either evaluated
// or it is not, never partial-and-wrong.
type CollectorResult struct {
	Category Category  `json:"category" yaml:"category"`
	Findings []Finding `json:"findings" yaml:"findings"`
	Failure  *Failure  `json:"failure,omitempty" yaml:"failure,omitempty"`
}

// ScanMode selects which collectors a scan invocation runs.
type ScanMode string

const (
	ModeQuick ScanMode = "quick"
	ModeFull  ScanMode = "full"
)

// HostInfo annotates a scan with machine-level facts for report headers.
type HostInfo struct {
	Hostname      string  `json:"hostname" yaml:"hostname"`
	Platform      string  `json:"platform" yaml:"platform"`
	CPUPercent    float64 `json:"cpu_percent" yaml:"cpu_percent"`
	MemoryTotal   uint64  `json:"memory_total" yaml:"memory_total"`
	MemoryUsed    uint64  `json:"memory_used" yaml:"memory_used"`
	MemoryPercent float64 `json:"memory_percent" yaml:"memory_percent"`
}

// ScanResult is the engine's top-level output. It is handed to consumers
// (reporters, TUI) read-only; nothing in it is mutated after the scan
// completes and nothing survives into the next scan.
type ScanResult struct {
	Mode        ScanMode                     `json:"mode" yaml:"mode"`
	Timestamp   time.Time                    `json:"timestamp" yaml:"timestamp"`
	Elevated    bool                         `json:"elevated" yaml:"elevated"`
	Host        *HostInfo                    `json:"host,omitempty" yaml:"host,omitempty"`
	PerCategory map[Category]CollectorResult `json:"per_category" yaml:"per_category"`
	Summary     Summary                      `json:"summary" yaml:"summary"`
}

// SeverityCounts tallies findings per tier.
type SeverityCounts struct {
	OK       int `json:"ok" yaml:"ok"`
	Warning  int `json:"warning" yaml:"warning"`
	Critical int `json:"critical" yaml:"critical"`
}

// Add folds one severity into the counts.
func (c *SeverityCounts) Add(s Severity) {
	switch s {
	case SeverityCritical:
		c.Critical++
	case SeverityWarning:
		c.Warning++
	default:
		c.OK++
	}
}

// Total returns the number of findings counted.
func (c SeverityCounts) Total() int { return c.OK + c.Warning + c.Critical }

// Summary is derived from the completed set of collector results and is
// never independently mutated.
type Summary struct {
	BySeverity SeverityCounts                 `json:"by_severity" yaml:"by_severity"`
	ByCategory map[Category]SeverityCounts    `json:"by_category" yaml:"by_category"`

	// Indeterminate counts findings that could not be fully evaluated.
	// They are excluded from BySeverity so an unreadable metric never
	// inflates the OK column.
	Indeterminate int `json:"indeterminate" yaml:"indeterminate"`

	// NotEvaluated lists categories whose collector failed or timed out.
	NotEvaluated []Category `json:"not_evaluated,omitempty" yaml:"not_evaluated,omitempty"`

	Recommendations []Recommendation `json:"recommendations" yaml:"recommendations"`
}

// Recommendation is one prioritized action derived from a Warning or
// Critical finding. OK findings never produce one.
type Recommendation struct {
	Severity   Severity `json:"severity" yaml:"severity"`
	Category   Category `json:"category" yaml:"category"`
	Identifier string   `json:"identifier" yaml:"identifier"`
	Action     string   `json:"action" yaml:"action"`
}
