package testutil

import (
	"time"

	"github.com/capacinator/capacinator/internal/domain"
	"github.com/google/uuid"
)

// Scenario options
type ScenarioOption func(*domain.Scenario)

func WithParent(parentID string) ScenarioOption {
	return func(s *domain.Scenario) {
		s.ParentID = &parentID
		s.Type = domain.ScenarioBranch
	}
}

func WithScenarioStatus(status domain.ScenarioStatus) ScenarioOption {
	return func(s *domain.Scenario) {
		s.Status = status
	}
}

func WithScenarioID(id string) ScenarioOption {
	return func(s *domain.Scenario) {
		s.ID = id
	}
}

// NewScenario builds a baseline scenario with sensible defaults.
func NewScenario(name string, opts ...ScenarioOption) *domain.Scenario {
	now := time.Now().UTC().Truncate(time.Second)
	s := &domain.Scenario{
		ID:        uuid.New().String(),
		Name:      name,
		Type:      domain.ScenarioBaseline,
		Status:    domain.ScenarioActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewBranch builds a branch of the given parent scenario.
func NewBranch(name string, parent *domain.Scenario, opts ...ScenarioOption) *domain.Scenario {
	s := NewScenario(name, WithParent(parent.ID))
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewProject builds a project fixture.
func NewProject(name string) *domain.Project {
	now := time.Now().UTC().Truncate(time.Second)
	return &domain.Project{
		ID:        uuid.New().String(),
		Name:      name,
		Priority:  domain.PriorityMedium,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Conflicts builds n distinct assignment conflicts.
func Conflicts(n int) []domain.Conflict {
	conflicts := make([]domain.Conflict, n)
	for i := range conflicts {
		conflicts[i] = domain.Conflict{
			Type:        domain.ConflictAssignment,
			EntityID:    uuid.New().String(),
			Description: "assignment differs between branch and parent",
			SourceData:  map[string]any{"allocation_percentage": 80},
			TargetData:  map[string]any{"allocation_percentage": 50},
		}
	}
	return conflicts
}
