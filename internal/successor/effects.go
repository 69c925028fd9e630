package successor

import (
	"fmt"

	"liftplan/internal/state"
	"liftplan/internal/task"
)

// Successor applies the effects of an accepted operator to s and returns
// the resulting state. s itself is never modified: the nullary vector is
// copied, and only the relations an effect touches are cloned — untouched
// relations are shared by pointer with the predecessor.
//
// Negative nullary effects apply before positive ones, so a schema that
// both deletes and adds the same nullary fact leaves it true.
func (g *Generator) Successor(op OperatorID, s *state.State) *state.State {
	schema := &g.task.Schemas[op.Schema]

	nullary := s.NullaryVector()
	for i := range schema.NegativeNullaryEffects {
		if schema.NegativeNullaryEffects[i] {
			nullary[i] = false
		}
	}
	for i := range schema.PositiveNullaryEffects {
		if schema.PositiveNullaryEffects[i] {
			nullary[i] = true
		}
	}

	relations := make([]*state.Relation, s.NumRelations())
	copy(relations, s.Relations())
	cloned := make(map[int]bool, len(schema.Effects))

	for _, eff := range schema.Effects {
		if eff.Predicate < 0 || eff.Predicate >= len(relations) {
			panic(fmt.Sprintf("successor: effect predicate %d outside relation vector of length %d", eff.Predicate, len(relations)))
		}
		tuple := resolveEffect(eff, op.Instantiation)
		if !cloned[eff.Predicate] {
			relations[eff.Predicate] = relations[eff.Predicate].Clone()
			cloned[eff.Predicate] = true
		}
		if eff.Negated {
			relations[eff.Predicate].Remove(tuple)
		} else {
			relations[eff.Predicate].Insert(tuple)
		}
	}

	return state.NewState(nullary, relations)
}

// resolveEffect grounds one effect atom against an instantiation. The
// returned tuple is a fresh, per-call value owned by the caller; there is
// no shared scratch buffer. An instantiation missing an entry for a
// referenced slot is a contract violation.
func resolveEffect(eff task.Atom, instantiation []int) state.GroundAtom {
	tuple := make(state.GroundAtom, 0, len(eff.Arguments))
	for _, arg := range eff.Arguments {
		if arg.Constant {
			tuple = append(tuple, arg.Index)
			continue
		}
		if arg.Index >= len(instantiation) {
			panic(fmt.Sprintf("successor: instantiation of length %d has no entry for slot %d", len(instantiation), arg.Index))
		}
		tuple = append(tuple, instantiation[arg.Index])
	}
	return tuple
}
