package remediation

import (
	"context"
	"fmt"

	"github.com/alexisbeaulieu97/failover-remedy/internal/config"
	"github.com/alexisbeaulieu97/failover-remedy/internal/model"
	"github.com/alexisbeaulieu97/failover-remedy/internal/steps/sqllocator"
)

// ServiceStatus is one inspected service. Found is false when the name
// does not exist on the host.
type ServiceStatus struct {
	Role      string          `json:"role"`
	Name      string          `json:"name"`
	Found     bool            `json:"found"`
	StartMode model.StartMode `json:"start_mode,omitempty"`
	RunState  model.RunState  `json:"run_state,omitempty"`
	Satisfied bool            `json:"satisfied"`
	Note      string          `json:"note,omitempty"`
}

// StatusReport is the read-only view of every service the pipeline touches.
type StatusReport struct {
	Services []ServiceStatus `json:"services"`
}

// AllSatisfied reports whether every inspected service is Automatic+Running.
func (r *StatusReport) AllSatisfied() bool {
	for _, s := range r.Services {
		if !s.Satisfied {
			return false
		}
	}
	return true
}

// Status lists the web, database and product services without changing
// anything.
func (s *Service) Status(ctx context.Context, cfg *config.Config) (*StatusReport, error) {
	listed, err := s.providers.Services.ListServices(ctx)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}

	report := &StatusReport{}
	report.Services = append(report.Services, lookup(listed, "web", cfg.Services.WebService))

	loc := s.LocateSQL(cfg)
	if loc.Found {
		report.Services = append(report.Services, lookup(listed, "sql", sqllocator.ServiceName(loc.Target)))
	} else {
		report.Services = append(report.Services, ServiceStatus{Role: "sql", Note: loc.Reason})
	}

	matched := model.FilterByPrefix(listed, cfg.Services.ProductPrefix)
	if len(matched) == 0 {
		report.Services = append(report.Services, ServiceStatus{
			Role:      "product",
			Name:      cfg.Services.ProductPrefix + "*",
			Satisfied: true,
			Note:      "No matching services found.",
		})
	}
	for _, desc := range matched {
		report.Services = append(report.Services, describe("product", desc))
	}
	return report, nil
}

func lookup(listed []model.ServiceDescriptor, role, name string) ServiceStatus {
	desc, ok := model.FindService(listed, name)
	if !ok {
		return ServiceStatus{Role: role, Name: name, Note: "service not found"}
	}
	return describe(role, desc)
}

func describe(role string, desc model.ServiceDescriptor) ServiceStatus {
	return ServiceStatus{
		Role:      role,
		Name:      desc.Name,
		Found:     true,
		StartMode: desc.StartMode,
		RunState:  desc.RunState,
		Satisfied: desc.Satisfied(),
	}
}
