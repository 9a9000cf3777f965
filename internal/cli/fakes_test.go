package cli

import (
	"context"
	"fmt"

	"github.com/capacinator/capacinator/internal/api"
	"github.com/capacinator/capacinator/internal/domain"
	"github.com/google/uuid"
)

// fakeScenarioAPI is an in-memory ScenarioAPI for TUI and command tests.
type fakeScenarioAPI struct {
	scenarios []*domain.Scenario
	listErr   error

	analyzeResult *api.MergeResult
	analyzeErr    error
	executeResult *api.MergeResult
	executeErr    error

	analyzeCalls    int
	executeCalls    int
	lastStrategy    domain.MergeStrategy
	lastResolutions []domain.Resolution
}

func (f *fakeScenarioAPI) ListScenarios(ctx context.Context, includeArchived bool) ([]*domain.Scenario, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	if includeArchived {
		return f.scenarios, nil
	}
	var out []*domain.Scenario
	for _, s := range f.scenarios {
		if s.Status != domain.ScenarioArchived {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeScenarioAPI) GetScenario(ctx context.Context, id string) (*domain.Scenario, error) {
	for _, s := range f.scenarios {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, api.ErrNotFound
}

func (f *fakeScenarioAPI) CreateScenario(ctx context.Context, s *domain.Scenario) (*domain.Scenario, error) {
	created := *s
	created.ID = uuid.New().String()
	f.scenarios = append(f.scenarios, &created)
	return &created, nil
}

func (f *fakeScenarioAPI) UpdateScenario(ctx context.Context, s *domain.Scenario) (*domain.Scenario, error) {
	for i, existing := range f.scenarios {
		if existing.ID == s.ID {
			f.scenarios[i] = s
			return s, nil
		}
	}
	return nil, api.ErrNotFound
}

func (f *fakeScenarioAPI) DeleteScenario(ctx context.Context, id string) error {
	for i, s := range f.scenarios {
		if s.ID == id {
			f.scenarios = append(f.scenarios[:i], f.scenarios[i+1:]...)
			return nil
		}
	}
	return api.ErrNotFound
}

func (f *fakeScenarioAPI) CompareScenario(ctx context.Context, id, compareTo string) (*api.Comparison, error) {
	return &api.Comparison{SourceName: id, TargetName: compareTo}, nil
}

func (f *fakeScenarioAPI) AnalyzeMerge(ctx context.Context, scenarioID string, strategy domain.MergeStrategy) (*api.MergeResult, error) {
	f.analyzeCalls++
	f.lastStrategy = strategy
	if f.analyzeErr != nil {
		return nil, f.analyzeErr
	}
	if f.analyzeResult != nil {
		return f.analyzeResult, nil
	}
	return &api.MergeResult{Success: true, Message: "Merge completed successfully"}, nil
}

func (f *fakeScenarioAPI) ExecuteMerge(ctx context.Context, scenarioID string, strategy domain.MergeStrategy, resolutions []domain.Resolution) (*api.MergeResult, error) {
	f.executeCalls++
	f.lastStrategy = strategy
	f.lastResolutions = resolutions
	if f.executeErr != nil {
		return nil, f.executeErr
	}
	if f.executeResult != nil {
		return f.executeResult, nil
	}
	return &api.MergeResult{Success: true, Message: "Merge completed successfully"}, nil
}

// fakeResourceAPI serves fixed resource lists.
type fakeResourceAPI struct {
	projects    []*domain.Project
	people      []*domain.Person
	roles       []*domain.Role
	assignments []*domain.Assignment
}

func (f *fakeResourceAPI) ListProjects(ctx context.Context) ([]*domain.Project, error) {
	return f.projects, nil
}

func (f *fakeResourceAPI) GetProject(ctx context.Context, id string) (*domain.Project, error) {
	for _, p := range f.projects {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, api.ErrNotFound
}

func (f *fakeResourceAPI) ListPeople(ctx context.Context) ([]*domain.Person, error) {
	return f.people, nil
}

func (f *fakeResourceAPI) GetPerson(ctx context.Context, id string) (*domain.Person, error) {
	for _, p := range f.people {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, api.ErrNotFound
}

func (f *fakeResourceAPI) ListRoles(ctx context.Context) ([]*domain.Role, error) {
	return f.roles, nil
}

func (f *fakeResourceAPI) ListAssignments(ctx context.Context, scenarioID string) ([]*domain.Assignment, error) {
	var out []*domain.Assignment
	for _, a := range f.assignments {
		if a.ScenarioID == scenarioID {
			out = append(out, a)
		}
	}
	return out, nil
}

// fakeReportingAPI serves a fixed utilization report.
type fakeReportingAPI struct {
	rows []domain.UtilizationRow
}

func (f *fakeReportingAPI) Utilization(ctx context.Context, scenarioID, from, to string) ([]domain.UtilizationRow, error) {
	return f.rows, nil
}

func newTestApp(scenarios ...*domain.Scenario) (*App, *fakeScenarioAPI) {
	fake := &fakeScenarioAPI{scenarios: scenarios}
	app := &App{
		Scenarios: fake,
		Resources: &fakeResourceAPI{},
		Reports:   &fakeReportingAPI{},
	}
	return app, fake
}

func testScenario(name string) *domain.Scenario {
	return &domain.Scenario{
		ID:     uuid.New().String(),
		Name:   name,
		Type:   domain.ScenarioBaseline,
		Status: domain.ScenarioActive,
	}
}

func testBranch(name string, parent *domain.Scenario) *domain.Scenario {
	return &domain.Scenario{
		ID:       uuid.New().String(),
		Name:     name,
		Type:     domain.ScenarioBranch,
		Status:   domain.ScenarioActive,
		ParentID: &parent.ID,
	}
}

func testConflicts(n int) []domain.Conflict {
	conflicts := make([]domain.Conflict, n)
	for i := range conflicts {
		conflicts[i] = domain.Conflict{
			Type:        domain.ConflictAssignment,
			EntityID:    fmt.Sprintf("entity-%d", i),
			Description: fmt.Sprintf("assignment %d differs", i),
			SourceData:  map[string]any{"allocation": 80},
			TargetData:  map[string]any{"allocation": 50},
		}
	}
	return conflicts
}
