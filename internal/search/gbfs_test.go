package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"liftplan/internal/database"
	"liftplan/internal/heuristic"
	"liftplan/internal/successor"
	"liftplan/internal/task"
)

// corridorYAML is a three-room corridor: the robot starts in r1 and must
// reach r3 through r2. adjacency is static.
const corridorYAML = `
name: corridor-3
types: [room]
objects:
  - {name: r1, types: [room]}
  - {name: r2, types: [room]}
  - {name: r3, types: [room]}
predicates:
  - {name: at-robby, arity: 1}
  - {name: adjacent, arity: 2}
init:
  - {pred: at-robby, args: [r1]}
  - {pred: adjacent, args: [r1, r2]}
  - {pred: adjacent, args: [r2, r1]}
  - {pred: adjacent, args: [r2, r3]}
  - {pred: adjacent, args: [r3, r2]}
goal:
  - {pred: at-robby, args: [r3]}
schemas:
  - name: move
    parameters:
      - {name: from, type: room}
      - {name: to, type: room}
    preconditions:
      - {pred: at-robby, args: ["?from"]}
      - {pred: adjacent, args: ["?from", "?to"]}
    effects:
      - {pred: at-robby, args: ["?from"], negated: true}
      - {pred: at-robby, args: ["?to"]}
`

// unsolvableYAML has a goal no effect can establish.
const unsolvableYAML = `
name: stuck
types: [room]
objects:
  - {name: r1, types: [room]}
  - {name: r2, types: [room]}
predicates:
  - {name: at-robby, arity: 1}
  - {name: happy, arity: 0}
init:
  - {pred: at-robby, args: [r1]}
goal:
  - {pred: happy}
schemas:
  - name: stay
    parameters: [{name: x, type: room}]
    preconditions: [{pred: at-robby, args: ["?x"]}]
    effects: [{pred: at-robby, args: ["?x"]}]
`

func setup(t *testing.T, yaml, heuristicName string) (*successor.Generator, heuristic.Heuristic) {
	t.Helper()
	tk, err := task.Parse([]byte(yaml))
	require.NoError(t, err)
	order, err := database.NewOrderStrategy("smallest-first")
	require.NoError(t, err)
	h, err := heuristic.New(heuristicName, tk)
	require.NoError(t, err)
	return successor.New(tk, order), h
}

func TestGreedySolvesCorridor(t *testing.T) {
	gen, h := setup(t, corridorYAML, "goalcount")

	result, err := Greedy(context.Background(), gen, h, Options{})
	require.NoError(t, err)
	require.True(t, result.Solved)
	require.Len(t, result.Plan, 2)
	assert.Equal(t, Step{Schema: "move", Arguments: []string{"r1", "r2"}}, result.Plan[0])
	assert.Equal(t, Step{Schema: "move", Arguments: []string{"r2", "r3"}}, result.Plan[1])
	assert.Greater(t, result.Generated, 0)
}

func TestGreedyBlindAlsoSolves(t *testing.T) {
	gen, h := setup(t, corridorYAML, "blind")

	result, err := Greedy(context.Background(), gen, h, Options{})
	require.NoError(t, err)
	assert.True(t, result.Solved)
	assert.Len(t, result.Plan, 2, "duplicate detection keeps blind search finite and minimal here")
}

func TestGreedyExhaustsUnsolvable(t *testing.T) {
	gen, h := setup(t, unsolvableYAML, "goalcount")

	result, err := Greedy(context.Background(), gen, h, Options{})
	require.NoError(t, err)
	assert.False(t, result.Solved)
	assert.Empty(t, result.Plan)
}

func TestGreedyHonorsExpansionBound(t *testing.T) {
	gen, h := setup(t, corridorYAML, "blind")

	result, err := Greedy(context.Background(), gen, h, Options{MaxExpansions: 1})
	require.NoError(t, err)
	assert.False(t, result.Solved)
	assert.Equal(t, 1, result.Expansions)
}

func TestGreedyHonorsCancellation(t *testing.T) {
	gen, h := setup(t, corridorYAML, "goalcount")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Greedy(ctx, gen, h, Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGreedyParallelEvaluationLeaksNothing(t *testing.T) {
	defer goleak.VerifyNone(t)

	gen, h := setup(t, corridorYAML, "goalcount")
	result, err := Greedy(context.Background(), gen, h, Options{Workers: 4})
	require.NoError(t, err)
	require.True(t, result.Solved)
	assert.Len(t, result.Plan, 2)
}
