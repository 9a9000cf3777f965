package cache_test

import (
	"context"
	"testing"

	"github.com/capacinator/capacinator/internal/cache"
	"github.com/capacinator/capacinator/internal/domain"
	"github.com/capacinator/capacinator/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *cache.Store {
	t.Helper()
	return cache.NewStore(testutil.NewTestDB(t))
}

func TestStore_ReplaceAndListScenarios(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	baseline := testutil.NewScenario("Baseline")
	branch := testutil.NewBranch("Q3 Hiring Plan", baseline)
	require.NoError(t, store.ReplaceScenarios(ctx, []*domain.Scenario{baseline, branch}))

	got, err := store.ListScenarios(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Ordered by name.
	assert.Equal(t, "Baseline", got[0].Name)
	assert.Equal(t, "Q3 Hiring Plan", got[1].Name)
	assert.False(t, got[0].HasParent())
	require.True(t, got[1].HasParent())
	assert.Equal(t, baseline.ID, *got[1].ParentID)
	assert.Equal(t, domain.ScenarioBranch, got[1].Type)
}

func TestStore_ReplaceScenariosSwapsCompletely(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	old := testutil.NewScenario("Old Plan")
	require.NoError(t, store.ReplaceScenarios(ctx, []*domain.Scenario{old}))

	fresh := testutil.NewScenario("Fresh Plan")
	require.NoError(t, store.ReplaceScenarios(ctx, []*domain.Scenario{fresh}))

	got, err := store.ListScenarios(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Fresh Plan", got[0].Name)

	_, err = store.GetScenario(ctx, old.ID)
	assert.ErrorIs(t, err, cache.ErrNotCached)
}

func TestStore_GetScenario(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	s := testutil.NewScenario("Baseline")
	require.NoError(t, store.ReplaceScenarios(ctx, []*domain.Scenario{s}))

	got, err := store.GetScenario(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.Name, got.Name)
	assert.Equal(t, s.CreatedAt.Unix(), got.CreatedAt.Unix())
}

func TestStore_FetchedAt(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	_, err := store.FetchedAt(ctx, "scenarios")
	assert.ErrorIs(t, err, cache.ErrNotCached)

	require.NoError(t, store.ReplaceScenarios(ctx, nil))

	ts, err := store.FetchedAt(ctx, "scenarios")
	require.NoError(t, err)
	assert.False(t, ts.IsZero())
}

func TestStore_ReplaceAndListProjects(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	p1 := testutil.NewProject("Mobile App")
	p2 := testutil.NewProject("Data Platform")
	require.NoError(t, store.ReplaceProjects(ctx, []*domain.Project{p1, p2}))

	got, err := store.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Data Platform", got[0].Name)
	assert.Equal(t, domain.PriorityMedium, got[0].Priority)
}
