package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liftplan/internal/search"
)

func openTestStore(t *testing.T) *PlanStore {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndHistoryRoundTrip(t *testing.T) {
	s := openTestStore(t)

	plan := []search.Step{
		{Schema: "move", Arguments: []string{"r1", "r2"}},
		{Schema: "move", Arguments: []string{"r2", "r3"}},
	}
	id, err := s.Record(Run{
		Problem:    "corridor-3",
		Heuristic:  "goalcount",
		JoinOrder:  "smallest-first",
		Solved:     true,
		Expansions: 3,
		Generated:  5,
		Plan:       plan,
		WallTime:   12 * time.Millisecond,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	runs, err := s.History("corridor-3", 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	got := runs[0]
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "corridor-3", got.Problem)
	assert.Equal(t, "goalcount", got.Heuristic)
	assert.True(t, got.Solved)
	assert.Equal(t, 3, got.Expansions)
	assert.Equal(t, 2, got.PlanLength)
	assert.Equal(t, plan, got.Plan)
	assert.Equal(t, 12*time.Millisecond, got.WallTime)
}

func TestHistoryFiltersByProblem(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Record(Run{Problem: "a", Heuristic: "blind", JoinOrder: "declared"})
	require.NoError(t, err)
	_, err = s.Record(Run{Problem: "b", Heuristic: "blind", JoinOrder: "declared"})
	require.NoError(t, err)

	runs, err := s.History("a", 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "a", runs[0].Problem)

	all, err := s.History("", 10)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestHistoryUnsolvedRun(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Record(Run{Problem: "stuck", Heuristic: "goalcount", JoinOrder: "declared", Expansions: 42})
	require.NoError(t, err)

	runs, err := s.History("stuck", 1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.False(t, runs[0].Solved)
	assert.Empty(t, runs[0].Plan)
	assert.Equal(t, 42, runs[0].Expansions)
}

func TestOpenCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "runs.db")
	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, path, s.Path())
}
