package task

import (
	"liftplan/internal/state"
)

// GoalLiteral is one goal condition: a predicate with fully ground
// arguments (empty for nullary predicates) and a negation flag.
type GoalLiteral struct {
	Predicate int
	Arguments state.GroundAtom
	Negated   bool
}

// Goal is the conjunction of goal literals.
type Goal struct {
	Literals []GoalLiteral
}

// Task is the complete, immutable planning problem: the object and
// predicate tables, the action schemas, the goal, the initial dynamic
// state, and the static relations fixed for the whole run.
type Task struct {
	Name       string
	Types      []string
	Objects    []Object
	Predicates []Predicate
	Schemas    []ActionSchema
	Goal       Goal

	Initial *state.State
	Static  *state.StaticInformation

	objectsByType [][]int
}

// ObjectsOfType returns the indices of all objects belonging to type t.
func (t *Task) ObjectsOfType(typ int) []int {
	return t.objectsByType[typ]
}

// buildTypeIndex fills the per-type object lists; called once by the loader.
func (t *Task) buildTypeIndex() {
	t.objectsByType = make([][]int, len(t.Types))
	for _, obj := range t.Objects {
		for _, typ := range obj.Types {
			t.objectsByType[typ] = append(t.objectsByType[typ], obj.Index)
		}
	}
}

// LiteralHolds reports whether a single goal literal is satisfied in s,
// consulting the static relations for predicates the schemas never touch.
func (t *Task) LiteralHolds(lit GoalLiteral, s *state.State) bool {
	if t.Predicates[lit.Predicate].Nullary() {
		holds := s.Nullary(lit.Predicate)
		if lit.Negated {
			return !holds
		}
		return holds
	}
	rel := s.Relation(lit.Predicate)
	if rel.Empty() {
		rel = t.Static.Relation(lit.Predicate)
	}
	holds := rel.Contains(lit.Arguments)
	if lit.Negated {
		return !holds
	}
	return holds
}

// GoalSatisfied reports whether every goal literal holds in s.
func (t *Task) GoalSatisfied(s *state.State) bool {
	for _, lit := range t.Goal.Literals {
		if !t.LiteralHolds(lit, s) {
			return false
		}
	}
	return true
}
