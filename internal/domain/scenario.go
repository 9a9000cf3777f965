package domain

import (
	"errors"
	"time"
)

// ErrNoParentScenario is returned when a merge is requested for a scenario
// that has no parent to merge into.
var ErrNoParentScenario = errors.New("scenario has no parent to merge into")

// Scenario is a named planning variant, optionally branched from a parent.
type Scenario struct {
	ID          string
	Name        string
	Description string
	ParentID    *string
	Type        ScenarioType
	Status      ScenarioStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasParent reports whether the scenario was branched from another scenario.
func (s *Scenario) HasParent() bool {
	return s.ParentID != nil && *s.ParentID != ""
}

// CanMerge checks the merge precondition. A scenario without a parent can
// never enter merge analysis; this is enforced before any network call.
func (s *Scenario) CanMerge() error {
	if !s.HasParent() {
		return ErrNoParentScenario
	}
	return nil
}

// Validate checks required fields before a create/update call.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return errors.New("scenario name is required")
	}
	if s.Type == ScenarioBranch && !s.HasParent() {
		return errors.New("branch scenario requires a parent scenario")
	}
	return nil
}

// DisplayID returns a short identifier for display, truncating UUIDs.
func (s *Scenario) DisplayID() string {
	if len(s.ID) >= 8 {
		return s.ID[:8]
	}
	return s.ID
}
