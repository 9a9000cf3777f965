package cli

import (
	"github.com/capacinator/capacinator/internal/domain"
)

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App *App

	// Active scenario context
	ActiveScenarioID   string
	ActiveScenarioName string

	// Terminal dimensions
	Width  int
	Height int
}

// SetActiveScenario sets the active scenario context from a loaded scenario.
func (s *SharedState) SetActiveScenario(sc *domain.Scenario) {
	s.ActiveScenarioID = sc.ID
	s.ActiveScenarioName = sc.Name
}

// ClearScenarioContext resets the active scenario state.
func (s *SharedState) ClearScenarioContext() {
	s.ActiveScenarioID = ""
	s.ActiveScenarioName = ""
}

// ContentHeight returns the available height for view content, accounting
// for the header (2 lines) and the status bar (2 lines).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 4
	if h < 0 {
		return 0
	}
	return h
}
