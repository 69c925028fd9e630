package heuristic

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liftplan/internal/state"
	"liftplan/internal/task"
)

const twoGoalYAML = `
name: two-goals
types: [obj]
objects:
  - {name: a, types: [obj]}
  - {name: b, types: [obj]}
predicates:
  - {name: at, arity: 1}
  - {name: done, arity: 0}
init:
  - {pred: at, args: [a]}
goal:
  - {pred: at, args: [b]}
  - {pred: done}
schemas:
  - name: go
    parameters: [{name: x, type: obj}]
    preconditions: [{pred: at, args: ["?x"]}]
    effects:
      - {pred: at, args: ["?x"], negated: true}
      - {pred: at, args: [b]}
      - {pred: done}
`

func TestNewFactory(t *testing.T) {
	tk, err := task.Parse([]byte(twoGoalYAML))
	require.NoError(t, err)

	h, err := New("GoalCount", tk)
	require.NoError(t, err, "lookup must be case-insensitive")
	assert.Equal(t, "goalcount", h.Name())

	h, err = New("blind", tk)
	require.NoError(t, err)
	assert.Equal(t, "blind", h.Name())

	_, err = New("hmax", tk)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknown))
}

func TestBlindIsConstant(t *testing.T) {
	tk, err := task.Parse([]byte(twoGoalYAML))
	require.NoError(t, err)

	h, err := New("blind", tk)
	require.NoError(t, err)
	assert.Equal(t, 0, h.Evaluate(tk.Initial))
}

func TestGoalCountCountsUnsatisfiedLiterals(t *testing.T) {
	tk, err := task.Parse([]byte(twoGoalYAML))
	require.NoError(t, err)

	h, err := New("goalcount", tk)
	require.NoError(t, err)

	// Initially neither at(b) nor done holds.
	assert.Equal(t, 2, h.Evaluate(tk.Initial))

	// A state satisfying both goals scores zero.
	rels := []*state.Relation{state.NewRelation(0), state.NewRelation(1)}
	rels[0].Insert(state.GroundAtom{1})
	goalState := state.NewState([]bool{false, true}, rels)
	assert.Equal(t, 0, h.Evaluate(goalState))

	// One satisfied literal scores one.
	half := state.NewState([]bool{false, false}, rels)
	assert.Equal(t, 1, h.Evaluate(half))
}
