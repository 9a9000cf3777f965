// Package merge implements the scenario-merge wizard as an explicit state
// machine. A Session moves through setup → conflicts → preview → executing →
// complete via a single reducer (Apply); illegal transitions are no-ops, so
// callers cannot, for example, execute a merge from the setup step.
//
// The session performs no I/O itself. Callers issue the two network calls
// (analyze, execute) and feed the outcomes back as events. Each outcome
// event carries the generation it was issued under; results from a session
// that has since been reset are dropped.
package merge

import (
	"github.com/capacinator/capacinator/internal/domain"
)

// Step identifies the wizard's current stage.
type Step int

const (
	StepSetup Step = iota
	StepConflicts
	StepPreview
	StepExecuting
	StepComplete
)

// String returns the step name used in labels and test failures.
func (s Step) String() string {
	switch s {
	case StepSetup:
		return "setup"
	case StepConflicts:
		return "conflicts"
	case StepPreview:
		return "preview"
	case StepExecuting:
		return "executing"
	case StepComplete:
		return "complete"
	}
	return "unknown"
}

// Event is a wizard input. The set is sealed within this package.
type Event interface{ isEvent() }

// AnalyzeRequested starts merge analysis from the setup step. The
// precondition (scenario has a parent) is checked here; on failure the
// session stays in setup with an inline error and no call is issued.
type AnalyzeRequested struct{}

// AnalysisSucceeded carries the server's analysis outcome: either a
// completion message (zero conflicts) or the conflict list.
type AnalysisSucceeded struct {
	Gen       int
	Message   string
	Conflicts []domain.Conflict
}

// AnalysisFailed reports a network or server error during analysis.
type AnalysisFailed struct {
	Gen int
	Err error
}

// ResolveCurrent records a choice for the conflict under the cursor.
type ResolveCurrent struct {
	Choice domain.ResolutionChoice
}

// NextConflict and PrevConflict move the conflict cursor. No wraparound.
type NextConflict struct{}
type PrevConflict struct{}

// PreviewRequested moves conflicts → preview once every conflict is resolved.
type PreviewRequested struct{}

// BackToSetup abandons the current conflict list; a fresh analysis is
// required afterward, so conflicts and resolutions are discarded.
type BackToSetup struct{}

// BackToConflicts returns preview → conflicts, keeping all resolutions.
type BackToConflicts struct{}

// ExecuteRequested moves preview → executing.
type ExecuteRequested struct{}

// ExecuteSucceeded completes the merge.
type ExecuteSucceeded struct {
	Gen     int
	Message string
}

// ExecuteFailed returns executing → conflicts (not setup), preserving the
// user's resolutions so a retry does not redo manual work.
type ExecuteFailed struct {
	Gen int
	Err error
}

// ResetRequested returns the session to a pristine setup step. Closing and
// reopening the wizard always resets; no state survives the cycle.
type ResetRequested struct{}

func (AnalyzeRequested) isEvent()  {}
func (AnalysisSucceeded) isEvent() {}
func (AnalysisFailed) isEvent()    {}
func (ResolveCurrent) isEvent()    {}
func (NextConflict) isEvent()      {}
func (PrevConflict) isEvent()      {}
func (PreviewRequested) isEvent()  {}
func (BackToSetup) isEvent()       {}
func (BackToConflicts) isEvent()   {}
func (ExecuteRequested) isEvent()  {}
func (ExecuteSucceeded) isEvent()  {}
func (ExecuteFailed) isEvent()     {}
func (ResetRequested) isEvent()    {}

// Session is the wizard's complete state for one merge attempt.
type Session struct {
	Scenario *domain.Scenario
	Strategy domain.MergeStrategy

	Step        Step
	Conflicts   []domain.Conflict
	Resolutions *ResolutionStore
	Cursor      int

	// Inflight is true while an analyze or execute call is outstanding;
	// all triggering controls are disabled so calls never overlap.
	Inflight bool

	// ErrText is the inline error surfaced near the failed action.
	// Never thrown; every failure leaves the session re-triggerable.
	ErrText string

	// Message is the server's summary after a completed merge.
	Message string

	// generation guards against late responses: analyze/execute results
	// carry the generation they were issued under and are ignored if the
	// session has been reset since.
	generation int
}

// NewSession creates a session in the setup step.
func NewSession(scenario *domain.Scenario, strategy domain.MergeStrategy) *Session {
	return &Session{
		Scenario:    scenario,
		Strategy:    strategy,
		Step:        StepSetup,
		Resolutions: NewResolutionStore(0),
	}
}

// Generation returns the token that outcome events must echo back.
func (s *Session) Generation() int { return s.generation }

// Apply is the single reducer mapping (state, event) → state. Events that
// are illegal in the current step are ignored.
func (s *Session) Apply(ev Event) {
	switch ev := ev.(type) {

	case AnalyzeRequested:
		if s.Step != StepSetup || s.Inflight {
			return
		}
		s.ErrText = ""
		if err := s.Scenario.CanMerge(); err != nil {
			s.ErrText = err.Error()
			return
		}
		s.Inflight = true

	case AnalysisSucceeded:
		if s.Step != StepSetup || !s.Inflight || ev.Gen != s.generation {
			return
		}
		s.Inflight = false
		s.ErrText = ""
		if len(ev.Conflicts) == 0 {
			s.Step = StepComplete
			s.Message = ev.Message
			return
		}
		s.Step = StepConflicts
		s.Conflicts = ev.Conflicts
		s.Resolutions = NewResolutionStore(len(ev.Conflicts))
		s.Cursor = 0

	case AnalysisFailed:
		if s.Step != StepSetup || !s.Inflight || ev.Gen != s.generation {
			return
		}
		s.Inflight = false
		s.ErrText = analysisErrText(ev.Err)

	case ResolveCurrent:
		if s.Step != StepConflicts {
			return
		}
		s.Resolutions.Set(s.Cursor, ev.Choice)

	case NextConflict:
		if s.Step != StepConflicts {
			return
		}
		if s.Cursor < len(s.Conflicts)-1 {
			s.Cursor++
		}

	case PrevConflict:
		if s.Step != StepConflicts {
			return
		}
		if s.Cursor > 0 {
			s.Cursor--
		}

	case PreviewRequested:
		if s.Step != StepConflicts || !s.Resolutions.AllResolved() {
			return
		}
		s.ErrText = ""
		s.Step = StepPreview

	case BackToSetup:
		if s.Step != StepConflicts {
			return
		}
		s.discardConflicts()
		s.Step = StepSetup

	case BackToConflicts:
		if s.Step != StepPreview {
			return
		}
		s.Step = StepConflicts

	case ExecuteRequested:
		if s.Step != StepPreview || s.Inflight {
			return
		}
		s.ErrText = ""
		s.Step = StepExecuting
		s.Inflight = true

	case ExecuteSucceeded:
		if s.Step != StepExecuting || ev.Gen != s.generation {
			return
		}
		s.Inflight = false
		s.Step = StepComplete
		s.Message = ev.Message

	case ExecuteFailed:
		if s.Step != StepExecuting || ev.Gen != s.generation {
			return
		}
		s.Inflight = false
		s.Step = StepConflicts
		s.ErrText = executeErrText(ev.Err)

	case ResetRequested:
		s.generation++
		s.discardConflicts()
		s.Step = StepSetup
		s.Inflight = false
		s.ErrText = ""
		s.Message = ""
	}
}

func (s *Session) discardConflicts() {
	s.Conflicts = nil
	s.Resolutions = NewResolutionStore(0)
	s.Cursor = 0
}

// ── guards used by views and the headless runner ─────────────────────────────

// CanAnalyze reports whether the analyze action is currently available.
func (s *Session) CanAnalyze() bool {
	return s.Step == StepSetup && !s.Inflight
}

// CanPreview reports whether the preview gate is open: conflicts step with
// every conflict resolved.
func (s *Session) CanPreview() bool {
	return s.Step == StepConflicts && s.Resolutions.AllResolved()
}

// CanExecute reports whether the execute action is currently available.
func (s *Session) CanExecute() bool {
	return s.Step == StepPreview && !s.Inflight
}

// CanPrev and CanNext bound the conflict cursor: no wraparound.
func (s *Session) CanPrev() bool {
	return s.Step == StepConflicts && s.Cursor > 0
}

func (s *Session) CanNext() bool {
	return s.Step == StepConflicts && s.Cursor < len(s.Conflicts)-1
}

// Current returns the conflict under the cursor, or nil outside the
// conflicts step.
func (s *Session) Current() *domain.Conflict {
	if s.Step != StepConflicts || s.Cursor >= len(s.Conflicts) {
		return nil
	}
	return &s.Conflicts[s.Cursor]
}

// Dirty reports whether closing now would lose manual progress.
func (s *Session) Dirty() bool {
	switch s.Step {
	case StepConflicts, StepPreview:
		return s.Resolutions.Resolved() > 0
	}
	return false
}

func analysisErrText(err error) string {
	if err == nil {
		return "merge analysis failed"
	}
	return "merge analysis failed: " + err.Error()
}

func executeErrText(err error) string {
	if err == nil {
		return "merge execution failed"
	}
	return "merge execution failed: " + err.Error()
}
