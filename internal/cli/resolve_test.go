package cli

import (
	"context"
	"testing"

	"github.com/capacinator/capacinator/internal/api"
	"github.com/capacinator/capacinator/internal/cache"
	"github.com/capacinator/capacinator/internal/domain"
	"github.com/capacinator/capacinator/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchScenario(t *testing.T) {
	scenarios := []*domain.Scenario{
		{ID: "aaaa1111-0000-0000-0000-000000000000", Name: "Baseline"},
		{ID: "aaab2222-0000-0000-0000-000000000000", Name: "Q3 Hiring"},
		{ID: "bbbb3333-0000-0000-0000-000000000000", Name: "Sandbox"},
	}

	t.Run("exact name case-insensitive", func(t *testing.T) {
		id, err := matchScenario(scenarios, "q3 hiring")
		require.NoError(t, err)
		assert.Equal(t, scenarios[1].ID, id)
	})

	t.Run("exact uuid", func(t *testing.T) {
		id, err := matchScenario(scenarios, scenarios[2].ID)
		require.NoError(t, err)
		assert.Equal(t, scenarios[2].ID, id)
	})

	t.Run("unambiguous prefix", func(t *testing.T) {
		id, err := matchScenario(scenarios, "bbbb")
		require.NoError(t, err)
		assert.Equal(t, scenarios[2].ID, id)
	})

	t.Run("ambiguous prefix", func(t *testing.T) {
		_, err := matchScenario(scenarios, "aaa")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ambiguous")
	})

	t.Run("no match", func(t *testing.T) {
		_, err := matchScenario(scenarios, "zzz")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}

func TestResolveScenarioID_CacheFallbackWhenOffline(t *testing.T) {
	db := testutil.NewTestDB(t)
	store := cache.NewStore(db)

	scenario := testScenario("offline plan")
	require.NoError(t, store.ReplaceScenarios(context.Background(), []*domain.Scenario{scenario}))

	app := &App{
		Scenarios: &fakeScenarioAPI{listErr: api.ErrUnavailable},
		Cache:     store,
	}

	id, err := resolveScenarioID(context.Background(), app, "offline plan")
	require.NoError(t, err)
	assert.Equal(t, scenario.ID, id)
}

func TestResolveScenarioID_ServerErrorsOtherThanUnavailableSurface(t *testing.T) {
	app := &App{
		Scenarios: &fakeScenarioAPI{listErr: api.ErrUnauthorized},
	}

	_, err := resolveScenarioID(context.Background(), app, "anything")
	assert.ErrorIs(t, err, api.ErrUnauthorized)
}
