package collector

import (
	"context"
	"sort"
	"strings"

	"github.com/okulov/windiag/internal/classify"
	"github.com/okulov/windiag/internal/models"
	"github.com/okulov/windiag/internal/provider"
)

// Services inspects services configured for automatic start and flags
// the ones not owned by the OS vendor.
type Services struct {
	prov provider.ServiceProvider
}

// NewServices creates the service collector.
func NewServices(prov provider.ServiceProvider) *Services {
	return &Services{prov: prov}
}

// Category implements Collector.
func (s *Services) Category() models.Category { return models.CategoryService }

// Collect implements Collector.
func (s *Services) Collect(ctx context.Context, _ Config) models.CollectorResult {
	services, err := s.prov.AutoStartServices(ctx)
	if err != nil {
		return failure(models.CategoryService, err)
	}

	findings := make([]models.Finding, 0, len(services))
	for _, svc := range services {
		thirdParty := !classify.IsMicrosoftService(svc.Name, svc.DisplayName, svc.PathName)
		findings = append(findings, classify.Service(svc.Name, classify.ServiceMetrics{
			DisplayName: svc.DisplayName,
			State:       svc.State,
			StartMode:   svc.StartMode,
			ThirdParty:  thirdParty,
		}))
	}

	// Third-party services first, running ones before stopped.
	sort.SliceStable(findings, func(i, j int) bool {
		if findings[i].ThirdParty != findings[j].ThirdParty {
			return findings[i].ThirdParty
		}
		return isRunning(findings[i]) && !isRunning(findings[j])
	})

	return models.CollectorResult{Category: models.CategoryService, Findings: findings}
}

func isRunning(f models.Finding) bool {
	return strings.EqualFold(f.Metrics[models.MetricState].Text, "running")
}
