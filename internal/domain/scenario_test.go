package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestScenario_CanMerge(t *testing.T) {
	tests := []struct {
		name     string
		parentID *string
		wantErr  bool
	}{
		{"with parent", strPtr("parent-id"), false},
		{"nil parent", nil, true},
		{"empty parent", strPtr(""), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Scenario{ID: "s1", Name: "Q3 Plan", ParentID: tt.parentID}
			err := s.CanMerge()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrNoParentScenario)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestScenario_Validate(t *testing.T) {
	s := &Scenario{Name: ""}
	assert.Error(t, s.Validate())

	s = &Scenario{Name: "Branch", Type: ScenarioBranch}
	assert.Error(t, s.Validate(), "branch without parent should fail")

	s = &Scenario{Name: "Branch", Type: ScenarioBranch, ParentID: strPtr("p1")}
	assert.NoError(t, s.Validate())
}

func TestScenario_DisplayID(t *testing.T) {
	s := &Scenario{ID: "abcdef1234567890"}
	assert.Equal(t, "abcdef12", s.DisplayID())

	s = &Scenario{ID: "short"}
	assert.Equal(t, "short", s.DisplayID())
}

func TestCountByType(t *testing.T) {
	conflicts := []Conflict{
		{Type: ConflictAssignment, EntityID: "a1"},
		{Type: ConflictAssignment, EntityID: "a2"},
		{Type: ConflictPhaseTimeline, EntityID: "p1"},
	}

	counts := CountByType(conflicts)
	assert.Equal(t, 2, counts[ConflictAssignment])
	assert.Equal(t, 1, counts[ConflictPhaseTimeline])
	assert.Len(t, counts, 2)
}

func TestConflict_Label(t *testing.T) {
	c := &Conflict{Type: ConflictAssignment, EntityID: "a1", Description: "Alice moved to Atlas"}
	assert.Equal(t, "Alice moved to Atlas", c.Label())

	c = &Conflict{Type: ConflictAssignment, EntityID: "a1"}
	assert.Equal(t, "assignment conflict on a1", c.Label())
}

func TestAssignment_Validate(t *testing.T) {
	a := &Assignment{ProjectID: "p1", PersonID: "u1", Allocation: 50}
	assert.NoError(t, a.Validate())

	a = &Assignment{ProjectID: "", PersonID: "u1", Allocation: 50}
	assert.Error(t, a.Validate())

	a = &Assignment{ProjectID: "p1", PersonID: "u1", Allocation: 0}
	assert.Error(t, a.Validate())

	a = &Assignment{ProjectID: "p1", PersonID: "u1", Allocation: 120}
	assert.Error(t, a.Validate())
}

func TestUtilizationRow_Band(t *testing.T) {
	tests := []struct {
		name      string
		allocated float64
		available float64
		want      UtilizationBand
	}{
		{"over", 110, 100, BandOver},
		{"full", 95, 100, BandFull},
		{"healthy", 60, 100, BandHealthy},
		{"under", 20, 100, BandUnder},
		{"zero availability idle", 0, 0, BandUnder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &UtilizationRow{Allocated: tt.allocated, Available: tt.available}
			assert.Equal(t, tt.want, r.Band())
		})
	}
}
