package provider

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// ExecFunc runs a command and captures stdout. Injected so task parsing
// is testable without the scheduler binary.
type ExecFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

type schtasksProvider struct {
	execFn ExecFunc
}

// NewTaskProvider returns a task provider backed by the system task
// scheduler's query interface.
func NewTaskProvider() TaskProvider {
	return NewTaskProviderWithExec(func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return exec.CommandContext(ctx, name, args...).Output()
	})
}

// NewTaskProviderWithExec returns a task provider using the given exec
// function.
func NewTaskProviderWithExec(fn ExecFunc) TaskProvider {
	return &schtasksProvider{execFn: fn}
}

func (p *schtasksProvider) Tasks(ctx context.Context) ([]TaskInfo, error) {
	out, err := p.execFn(ctx, "schtasks", "/query", "/fo", "CSV", "/v")
	if err != nil {
		return nil, fmt.Errorf("query task scheduler: %w", err)
	}
	return parseTaskCSV(out)
}

// verbose-CSV column headers we care about.
const (
	colTaskName     = "taskname"
	colStatus       = "status"
	colAuthor       = "author"
	colScheduleType = "schedule type"
	colTaskState    = "scheduled task state"
	colRepeatEvery  = "repeat: every"
)

// parseTaskCSV parses `schtasks /query /fo CSV /v` output. The verbose
// listing repeats its header row before each folder's tasks, so header
// rows are re-detected mid-stream.
func parseTaskCSV(data []byte) ([]TaskInfo, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse task listing: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty task listing")
	}

	var (
		cols  map[string]int
		tasks []TaskInfo
	)
	for _, record := range records {
		if len(record) == 0 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(record[0]), "hostname") {
			cols = indexColumns(record)
			continue
		}
		if cols == nil {
			continue
		}

		fullPath := field(record, cols, colTaskName)
		if fullPath == "" {
			continue
		}

		task := TaskInfo{
			Name:        taskLeafName(fullPath),
			Path:        fullPath,
			State:       field(record, cols, colTaskState),
			Author:      field(record, cols, colAuthor),
			Trigger:     field(record, cols, colScheduleType),
			RepeatEvery: parseRepeatEvery(field(record, cols, colRepeatEvery)),
		}
		if task.State == "" {
			task.State = field(record, cols, colStatus)
		}
		tasks = append(tasks, task)
	}

	if cols == nil {
		return nil, fmt.Errorf("task listing has no header row")
	}
	return tasks, nil
}

func indexColumns(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return cols
}

func field(record []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(record) {
		return ""
	}
	v := strings.TrimSpace(record[i])
	if v == "N/A" {
		return ""
	}
	return v
}

func taskLeafName(path string) string {
	if i := strings.LastIndex(path, `\`); i >= 0 {
		return path[i+1:]
	}
	return path
}

// parseRepeatEvery handles the two repetition formats schtasks emits:
// "H Hour(s), M Minute(s)" and "HH:MM:SS". Anything else (including
// "Disabled") means no repetition.
func parseRepeatEvery(v string) time.Duration {
	v = strings.TrimSpace(v)
	if v == "" || strings.EqualFold(v, "disabled") {
		return 0
	}

	lower := strings.ToLower(v)
	if strings.Contains(lower, "hour") || strings.Contains(lower, "minute") {
		var total time.Duration
		for _, part := range strings.Split(lower, ",") {
			fields := strings.Fields(strings.TrimSpace(part))
			if len(fields) < 2 {
				continue
			}
			n, err := strconv.Atoi(fields[0])
			if err != nil {
				continue
			}
			switch {
			case strings.HasPrefix(fields[1], "hour"):
				total += time.Duration(n) * time.Hour
			case strings.HasPrefix(fields[1], "minute"):
				total += time.Duration(n) * time.Minute
			}
		}
		return total
	}

	if parts := strings.Split(v, ":"); len(parts) == 3 {
		h, err1 := strconv.Atoi(parts[0])
		m, err2 := strconv.Atoi(parts[1])
		s, err3 := strconv.Atoi(parts[2])
		if err1 == nil && err2 == nil && err3 == nil {
			return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(s)*time.Second
		}
	}
	return 0
}
