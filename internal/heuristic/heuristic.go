// Package heuristic provides the state-evaluation functions used to order
// the search, behind a single Evaluate capability. The set of heuristics is
// a small closed one, selected by name at startup.
package heuristic

import (
	"errors"
	"fmt"
	"strings"

	"liftplan/internal/state"
	"liftplan/internal/task"
)

// ErrUnknown is returned by New for unrecognized heuristic names.
var ErrUnknown = errors.New("no such heuristic")

// Heuristic estimates the cost-to-goal of a state. Lower is better.
type Heuristic interface {
	Name() string
	Evaluate(s *state.State) int
}

// New returns the heuristic registered under name (case-insensitive).
// Unknown names yield ErrUnknown, never a nil heuristic.
func New(name string, t *task.Task) (Heuristic, error) {
	switch {
	case strings.EqualFold(name, "blind"):
		return Blind{}, nil
	case strings.EqualFold(name, "goalcount"):
		return GoalCount{task: t}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknown, name)
	}
}

// Blind assigns every state the same estimate, reducing greedy search to
// breadth-first exploration in expansion order.
type Blind struct{}

func (Blind) Name() string { return "blind" }

func (Blind) Evaluate(*state.State) int { return 0 }

// GoalCount counts the goal literals not satisfied in the state, nullary
// and ground alike.
type GoalCount struct {
	task *task.Task
}

func (GoalCount) Name() string { return "goalcount" }

func (h GoalCount) Evaluate(s *state.State) int {
	unsatisfied := 0
	for _, lit := range h.task.Goal.Literals {
		if !h.task.LiteralHolds(lit, s) {
			unsatisfied++
		}
	}
	return unsatisfied
}
