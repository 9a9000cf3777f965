package formatter

import (
	"testing"

	"github.com/capacinator/capacinator/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestResolvedBadge(t *testing.T) {
	assert.Contains(t, ResolvedBadge(0, 3), "0/3 resolved")
	assert.Contains(t, ResolvedBadge(3, 3), "3/3 resolved")
}

func TestPreviewGateLabel(t *testing.T) {
	assert.Equal(t, "Preview Merge", PreviewGateLabel(0))
	assert.Equal(t, "Resolve 1 more conflict", PreviewGateLabel(1))
	assert.Equal(t, "Resolve 2 more conflicts", PreviewGateLabel(2))
}

func TestConflictCard_ShowsBothSnapshots(t *testing.T) {
	c := &domain.Conflict{
		Type:        domain.ConflictAssignment,
		EntityID:    "a1",
		Description: "Alice reassigned",
		SourceData:  map[string]any{"allocation": 80},
		TargetData:  map[string]any{"allocation": 50},
	}

	out := ConflictCard(c, domain.ResolutionUnset)
	assert.Contains(t, out, "Alice reassigned")
	assert.Contains(t, out, "allocation=80")
	assert.Contains(t, out, "allocation=50")
	assert.Contains(t, out, "Source (this scenario)")
	assert.Contains(t, out, "Target (parent scenario)")
}

func TestImpactSummary_GroupsByType(t *testing.T) {
	conflicts := []domain.Conflict{
		{Type: domain.ConflictAssignment},
		{Type: domain.ConflictAssignment},
		{Type: domain.ConflictPhaseTimeline},
	}

	out := ImpactSummary(conflicts)
	assert.Contains(t, out, "2 assignment entities")
	assert.Contains(t, out, "1 phase_timeline entity")
}

func TestKeyValues_StableOrder(t *testing.T) {
	data := map[string]any{"zeta": 1, "alpha": "x", "mid": true}
	assert.Equal(t, "alpha=x  mid=true  zeta=1", KeyValues(data))
	assert.Contains(t, KeyValues(nil), "empty")
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "75%", Percent(75))
	assert.Equal(t, "62.5%", Percent(62.5))
}
