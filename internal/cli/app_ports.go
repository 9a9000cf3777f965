package cli

import (
	"context"

	"github.com/capacinator/capacinator/internal/api"
	"github.com/capacinator/capacinator/internal/cache"
	"github.com/capacinator/capacinator/internal/domain"
)

// ScenarioAPI is the scenario surface of the server consumed by the CLI.
// *api.Client satisfies it; tests substitute fakes.
type ScenarioAPI interface {
	ListScenarios(ctx context.Context, includeArchived bool) ([]*domain.Scenario, error)
	GetScenario(ctx context.Context, id string) (*domain.Scenario, error)
	CreateScenario(ctx context.Context, s *domain.Scenario) (*domain.Scenario, error)
	UpdateScenario(ctx context.Context, s *domain.Scenario) (*domain.Scenario, error)
	DeleteScenario(ctx context.Context, id string) error
	CompareScenario(ctx context.Context, id, compareTo string) (*api.Comparison, error)
	AnalyzeMerge(ctx context.Context, scenarioID string, strategy domain.MergeStrategy) (*api.MergeResult, error)
	ExecuteMerge(ctx context.Context, scenarioID string, strategy domain.MergeStrategy, resolutions []domain.Resolution) (*api.MergeResult, error)
}

// ResourceAPI covers projects, people, roles, and assignments.
type ResourceAPI interface {
	ListProjects(ctx context.Context) ([]*domain.Project, error)
	GetProject(ctx context.Context, id string) (*domain.Project, error)
	ListPeople(ctx context.Context) ([]*domain.Person, error)
	GetPerson(ctx context.Context, id string) (*domain.Person, error)
	ListRoles(ctx context.Context) ([]*domain.Role, error)
	ListAssignments(ctx context.Context, scenarioID string) ([]*domain.Assignment, error)
}

// ReportingAPI covers server-computed reports.
type ReportingAPI interface {
	Utilization(ctx context.Context, scenarioID, from, to string) ([]domain.UtilizationRow, error)
}

// HealthAPI reports server reachability.
type HealthAPI interface {
	Available(ctx context.Context) bool
}

// App holds the API surfaces and local cache used by CLI commands and views.
type App struct {
	Scenarios ScenarioAPI
	Resources ResourceAPI
	Reports   ReportingAPI
	Health    HealthAPI

	// Cache is the local scenario/project cache; nil disables caching.
	Cache *cache.Store
}

// cacheScenarios stores a freshly fetched scenario list, best-effort.
func (a *App) cacheScenarios(ctx context.Context, scenarios []*domain.Scenario) {
	if a.Cache == nil {
		return
	}
	_ = a.Cache.ReplaceScenarios(ctx, scenarios)
}

// cacheProjects stores a freshly fetched project list, best-effort.
func (a *App) cacheProjects(ctx context.Context, projects []*domain.Project) {
	if a.Cache == nil {
		return
	}
	_ = a.Cache.ReplaceProjects(ctx, projects)
}
