package collector

import (
	"context"
	"sort"

	"github.com/okulov/windiag/internal/classify"
	"github.com/okulov/windiag/internal/models"
	"github.com/okulov/windiag/internal/provider"
)

// Tasks inspects tasks registered with the scheduler, flagging
// third-party ones hooked to logon/boot or repeating under an hour.
type Tasks struct {
	prov provider.TaskProvider
}

// NewTasks creates the scheduled-task collector.
func NewTasks(prov provider.TaskProvider) *Tasks {
	return &Tasks{prov: prov}
}

// Category implements Collector.
func (t *Tasks) Category() models.Category { return models.CategoryScheduledTask }

// Collect implements Collector. Microsoft housekeeping tasks without a
// startup trigger are skipped; they dominate the listing and carry no
// signal for slowdown triage.
func (t *Tasks) Collect(ctx context.Context, cfg Config) models.CollectorResult {
	tasks, err := t.prov.Tasks(ctx)
	if err != nil {
		return failure(models.CategoryScheduledTask, err)
	}

	var findings []models.Finding
	for _, task := range tasks {
		if task.Trigger == "" {
			continue
		}
		thirdParty := !classify.IsMicrosoftAuthor(task.Author, task.Path)
		if !thirdParty && !classify.TriggersAtStartup(task.Trigger) {
			continue
		}
		findings = append(findings, classify.Task(task.Name, classify.TaskMetrics{
			Path:        task.Path,
			Author:      task.Author,
			State:       task.State,
			Trigger:     task.Trigger,
			RepeatEvery: task.RepeatEvery,
			ThirdParty:  thirdParty,
		}))
	}

	// Third-party first, then by severity.
	sort.SliceStable(findings, func(i, j int) bool {
		if findings[i].ThirdParty != findings[j].ThirdParty {
			return findings[i].ThirdParty
		}
		return findings[i].Severity > findings[j].Severity
	})

	if max := cfg.maxTasks(); len(findings) > max {
		findings = findings[:max]
	}

	return models.CollectorResult{Category: models.CategoryScheduledTask, Findings: findings}
}
