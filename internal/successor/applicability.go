package successor

import (
	"liftplan/internal/state"
	"liftplan/internal/task"
)

// groundApplicable checks a fully ground schema by direct membership, no
// join. Each precondition tuple is looked up in the dynamic relation when
// that has tuples, else in the static relation. When both are empty the
// precondition fails regardless of its negation flag: absence of any known
// tuples is treated as "fails", not as vacuous satisfaction of a negated
// literal. That convention matches the search semantics this engine was
// built against and is load-bearing; do not "fix" it.
func (g *Generator) groundApplicable(schema *task.ActionSchema, s *state.State) bool {
	for _, precond := range schema.Preconditions {
		tuple := make(state.GroundAtom, 0, len(precond.Arguments))
		for _, arg := range precond.Arguments {
			if !arg.Constant {
				panic("successor: variable argument in ground schema precondition")
			}
			tuple = append(tuple, arg.Index)
		}

		dynamic := s.Relation(precond.Predicate)
		static := g.static.Relation(precond.Predicate)
		switch {
		case !dynamic.Empty():
			if dynamic.Contains(tuple) == precond.Negated {
				return false
			}
		case !static.Empty():
			if static.Contains(tuple) == precond.Negated {
				return false
			}
		default:
			return false
		}
	}
	return true
}
