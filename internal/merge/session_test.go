package merge

import (
	"errors"
	"testing"

	"github.com/capacinator/capacinator/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func branchScenario() *domain.Scenario {
	return &domain.Scenario{
		ID:       "branch-1",
		Name:     "Q3 Hiring Plan",
		ParentID: strPtr("baseline-1"),
		Type:     domain.ScenarioBranch,
	}
}

func twoConflicts() []domain.Conflict {
	return []domain.Conflict{
		{Type: domain.ConflictAssignment, EntityID: "a1", Description: "Alice reassigned"},
		{Type: domain.ConflictPhaseTimeline, EntityID: "ph1", Description: "Design phase moved"},
	}
}

// analyzed returns a session that has reached the conflicts step.
func analyzed(t *testing.T, conflicts []domain.Conflict) *Session {
	t.Helper()
	s := NewSession(branchScenario(), domain.StrategyManual)
	s.Apply(AnalyzeRequested{})
	require.True(t, s.Inflight)
	s.Apply(AnalysisSucceeded{Gen: s.Generation(), Conflicts: conflicts})
	require.Equal(t, StepConflicts, s.Step)
	return s
}

func TestSession_NoParentNeverAnalyzes(t *testing.T) {
	orphan := &domain.Scenario{ID: "s1", Name: "Baseline"}
	s := NewSession(orphan, domain.StrategyManual)

	s.Apply(AnalyzeRequested{})

	assert.Equal(t, StepSetup, s.Step)
	assert.False(t, s.Inflight, "no network call may be issued")
	assert.Contains(t, s.ErrText, "no parent")
}

func TestSession_ZeroConflictsCompletesDirectly(t *testing.T) {
	s := NewSession(branchScenario(), domain.StrategyManual)
	s.Apply(AnalyzeRequested{})
	s.Apply(AnalysisSucceeded{Gen: s.Generation(), Message: "Merge completed successfully"})

	assert.Equal(t, StepComplete, s.Step)
	assert.Equal(t, "Merge completed successfully", s.Message)
	assert.Empty(t, s.Conflicts, "conflicts step must never be visited")
}

func TestSession_AnalysisFailureStaysInSetup(t *testing.T) {
	s := NewSession(branchScenario(), domain.StrategyManual)
	s.Apply(AnalyzeRequested{})
	s.Apply(AnalysisFailed{Gen: s.Generation(), Err: errors.New("503 from server")})

	assert.Equal(t, StepSetup, s.Step)
	assert.False(t, s.Inflight)
	assert.Contains(t, s.ErrText, "503")
	assert.True(t, s.CanAnalyze(), "user may retry")
}

func TestSession_PreviewGatedUntilAllResolved(t *testing.T) {
	s := analyzed(t, twoConflicts())

	assert.False(t, s.CanPreview())
	s.Apply(PreviewRequested{})
	assert.Equal(t, StepConflicts, s.Step, "gate must hold with 0/2 resolved")

	s.Apply(ResolveCurrent{Choice: domain.ResolutionSource})
	assert.Equal(t, 1, s.Resolutions.Resolved())
	assert.Equal(t, 1, s.Resolutions.Remaining())
	assert.False(t, s.CanPreview())

	s.Apply(NextConflict{})
	s.Apply(ResolveCurrent{Choice: domain.ResolutionTarget})
	assert.True(t, s.CanPreview())

	s.Apply(PreviewRequested{})
	assert.Equal(t, StepPreview, s.Step)
}

func TestSession_CursorBoundedNoWraparound(t *testing.T) {
	s := analyzed(t, twoConflicts())

	assert.False(t, s.CanPrev(), "Previous disabled at index 0")
	s.Apply(PrevConflict{})
	assert.Equal(t, 0, s.Cursor)

	s.Apply(NextConflict{})
	assert.Equal(t, 1, s.Cursor)
	assert.False(t, s.CanNext(), "Next disabled at last index")
	s.Apply(NextConflict{})
	assert.Equal(t, 1, s.Cursor)

	s.Apply(PrevConflict{})
	assert.Equal(t, 0, s.Cursor)
}

func TestSession_ResolutionSurvivesNavigation(t *testing.T) {
	s := analyzed(t, twoConflicts())

	s.Apply(ResolveCurrent{Choice: domain.ResolutionSource})
	s.Apply(NextConflict{})
	s.Apply(PrevConflict{})

	assert.Equal(t, domain.ResolutionSource, s.Resolutions.Get(0),
		"navigating away and back must not lose the choice")
}

func TestSession_ResolveOverwriteIsIdempotent(t *testing.T) {
	s := analyzed(t, twoConflicts())

	s.Apply(ResolveCurrent{Choice: domain.ResolutionSource})
	s.Apply(ResolveCurrent{Choice: domain.ResolutionTarget})

	assert.Equal(t, domain.ResolutionTarget, s.Resolutions.Get(0))
	assert.Equal(t, 1, s.Resolutions.Resolved())
}

func TestSession_FullRunExecuteSucceeds(t *testing.T) {
	s := analyzed(t, twoConflicts())
	s.Apply(ResolveCurrent{Choice: domain.ResolutionSource})
	s.Apply(NextConflict{})
	s.Apply(ResolveCurrent{Choice: domain.ResolutionTarget})
	s.Apply(PreviewRequested{})

	payload := s.Resolutions.Payload()
	require.Len(t, payload, 2)
	assert.Equal(t, domain.Resolution{Ref: 0, Choice: domain.ResolutionSource}, payload[0])
	assert.Equal(t, domain.Resolution{Ref: 1, Choice: domain.ResolutionTarget}, payload[1])

	s.Apply(ExecuteRequested{})
	assert.Equal(t, StepExecuting, s.Step)
	assert.True(t, s.Inflight)
	assert.False(t, s.CanExecute(), "no overlapping execute calls")

	s.Apply(ExecuteSucceeded{Gen: s.Generation(), Message: "Merged 2 changes"})
	assert.Equal(t, StepComplete, s.Step)
	assert.Equal(t, "Merged 2 changes", s.Message)
}

func TestSession_ExecuteFailureReturnsToConflicts(t *testing.T) {
	s := analyzed(t, twoConflicts())
	s.Apply(ResolveCurrent{Choice: domain.ResolutionSource})
	s.Apply(NextConflict{})
	s.Apply(ResolveCurrent{Choice: domain.ResolutionTarget})
	s.Apply(PreviewRequested{})
	s.Apply(ExecuteRequested{})

	s.Apply(ExecuteFailed{Gen: s.Generation(), Err: errors.New("conflict re-detected")})

	assert.Equal(t, StepConflicts, s.Step, "failure returns to conflicts, not setup")
	assert.Equal(t, domain.ResolutionSource, s.Resolutions.Get(0))
	assert.Equal(t, domain.ResolutionTarget, s.Resolutions.Get(1))
	assert.Contains(t, s.ErrText, "conflict re-detected")
}

func TestSession_BackToSetupDiscardsResolutions(t *testing.T) {
	s := analyzed(t, twoConflicts())
	s.Apply(ResolveCurrent{Choice: domain.ResolutionSource})

	s.Apply(BackToSetup{})

	assert.Equal(t, StepSetup, s.Step)
	assert.Empty(t, s.Conflicts)
	assert.Equal(t, 0, s.Resolutions.Len())
}

func TestSession_BackToConflictsKeepsResolutions(t *testing.T) {
	s := analyzed(t, twoConflicts())
	s.Apply(ResolveCurrent{Choice: domain.ResolutionSource})
	s.Apply(NextConflict{})
	s.Apply(ResolveCurrent{Choice: domain.ResolutionTarget})
	s.Apply(PreviewRequested{})

	s.Apply(BackToConflicts{})

	assert.Equal(t, StepConflicts, s.Step)
	assert.Equal(t, 2, s.Resolutions.Resolved())
}

func TestSession_ResetClearsEverything(t *testing.T) {
	s := analyzed(t, twoConflicts())
	s.Apply(ResolveCurrent{Choice: domain.ResolutionSource})

	s.Apply(ResetRequested{})

	assert.Equal(t, StepSetup, s.Step)
	assert.Empty(t, s.Conflicts)
	assert.Equal(t, 0, s.Resolutions.Len())
	assert.Empty(t, s.ErrText)
	assert.Empty(t, s.Message)
}

func TestSession_StaleAnalysisResultIgnoredAfterReset(t *testing.T) {
	s := NewSession(branchScenario(), domain.StrategyManual)
	s.Apply(AnalyzeRequested{})
	staleGen := s.Generation()

	s.Apply(ResetRequested{})
	s.Apply(AnalysisSucceeded{Gen: staleGen, Conflicts: twoConflicts()})

	assert.Equal(t, StepSetup, s.Step, "late response against a reset session is dropped")
	assert.Empty(t, s.Conflicts)
}

func TestSession_StaleExecuteResultIgnoredAfterReset(t *testing.T) {
	s := analyzed(t, []domain.Conflict{{Type: domain.ConflictAssignment, EntityID: "a1"}})
	s.Apply(ResolveCurrent{Choice: domain.ResolutionSource})
	s.Apply(PreviewRequested{})
	s.Apply(ExecuteRequested{})
	staleGen := s.Generation()

	s.Apply(ResetRequested{})
	s.Apply(ExecuteSucceeded{Gen: staleGen, Message: "late"})

	assert.Equal(t, StepSetup, s.Step)
	assert.Empty(t, s.Message)
}

func TestSession_IllegalTransitionsAreNoOps(t *testing.T) {
	s := NewSession(branchScenario(), domain.StrategyManual)

	// Execute from setup is unrepresentable: the reducer ignores it.
	s.Apply(ExecuteRequested{})
	assert.Equal(t, StepSetup, s.Step)
	assert.False(t, s.Inflight)

	// Resolving outside the conflicts step is ignored.
	s.Apply(ResolveCurrent{Choice: domain.ResolutionSource})
	assert.Equal(t, 0, s.Resolutions.Resolved())

	// A second analyze while one is in flight is ignored.
	s.Apply(AnalyzeRequested{})
	require.True(t, s.Inflight)
	s.Apply(AnalyzeRequested{})
	assert.True(t, s.Inflight)
}

func TestSession_Dirty(t *testing.T) {
	s := NewSession(branchScenario(), domain.StrategyManual)
	assert.False(t, s.Dirty())

	s = analyzed(t, twoConflicts())
	assert.False(t, s.Dirty(), "no resolutions recorded yet")

	s.Apply(ResolveCurrent{Choice: domain.ResolutionSource})
	assert.True(t, s.Dirty())
}

func TestResolutionStore_EmptyAllResolved(t *testing.T) {
	r := NewResolutionStore(0)
	assert.True(t, r.AllResolved())
	assert.Empty(t, r.Payload())
}

func TestResolutionStore_OutOfRangeIgnored(t *testing.T) {
	r := NewResolutionStore(2)
	r.Set(-1, domain.ResolutionSource)
	r.Set(2, domain.ResolutionSource)
	assert.Equal(t, 0, r.Resolved())
	assert.Equal(t, domain.ResolutionUnset, r.Get(5))
}

func TestResolutionStore_PayloadSkipsUnset(t *testing.T) {
	r := NewResolutionStore(3)
	r.Set(0, domain.ResolutionSource)
	r.Set(2, domain.ResolutionTarget)

	payload := r.Payload()
	require.Len(t, payload, 2)
	assert.Equal(t, 0, payload[0].Ref)
	assert.Equal(t, 2, payload[1].Ref)
}
