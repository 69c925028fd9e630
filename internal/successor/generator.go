// Package successor implements the state-transition engine: the
// applicability query over action schemas and the effect application that
// produces successor states. Both are pure functions of their inputs; all
// mutation happens on freshly built values, so states handed out here can
// be shared freely across search workers.
package successor

import (
	"fmt"

	"liftplan/internal/database"
	"liftplan/internal/state"
	"liftplan/internal/task"
)

// OperatorID identifies one legal operator application: a schema index plus
// the instantiation of its free variables, ordered by ascending slot id.
// Ground schemas carry an empty instantiation.
type OperatorID struct {
	Schema        int
	Instantiation []int
}

// Generator answers applicability queries and computes successor states
// for one task. It is built once per run and holds only read-only data.
type Generator struct {
	task     *task.Task
	static   *state.StaticInformation
	isStatic []bool
	order    database.OrderStrategy
}

// New builds a generator. A predicate is classified static iff its static
// relation is non-empty at load time; the classification is cached here for
// O(1) lookup.
func New(t *task.Task, order database.OrderStrategy) *Generator {
	isStatic := make([]bool, len(t.Static.Relations()))
	for i, r := range t.Static.Relations() {
		isStatic[i] = !r.Empty()
	}
	return &Generator{task: t, static: t.Static, isStatic: isStatic, order: order}
}

// IsPredicateStatic reports whether the predicate's extension is fixed for
// the entire run.
func (g *Generator) IsPredicateStatic(pred int) bool {
	return g.isStatic[pred]
}

// Task returns the task this generator was built for.
func (g *Generator) Task() *task.Task { return g.task }

// ApplicableActions returns every legal operator application in s, one
// OperatorID per (schema, binding) pair. Schemas failing their nullary
// preconditions are skipped before any join work; ground schemas are
// checked by direct membership; lifted schemas go through the
// instantiation pipeline and each surviving row is canonicalized into an
// instantiation vector.
func (g *Generator) ApplicableActions(s *state.State) []OperatorID {
	var applicable []OperatorID
	for i := range g.task.Schemas {
		schema := &g.task.Schemas[i]
		if g.triviallyInapplicable(schema, s) {
			continue
		}
		if schema.IsGround() {
			if g.groundApplicable(schema, s) {
				applicable = append(applicable, OperatorID{Schema: schema.Index, Instantiation: []int{}})
			}
			continue
		}
		instantiations := database.Instantiate(schema, s, g.static, g.order)
		if instantiations.Empty() {
			continue
		}
		slots, positions := freeVariablePositions(instantiations, len(schema.Parameters))
		for _, row := range instantiations.Rows {
			applicable = append(applicable, OperatorID{
				Schema:        schema.Index,
				Instantiation: orderBySlot(slots, positions, row, len(schema.Parameters)),
			})
		}
	}
	return applicable
}

// triviallyInapplicable tests the schema's nullary preconditions against
// the state's nullary truth vector.
func (g *Generator) triviallyInapplicable(schema *task.ActionSchema, s *state.State) bool {
	for i := range schema.PositiveNullaryPreconditions {
		if schema.PositiveNullaryPreconditions[i] && !s.Nullary(i) {
			return true
		}
		if schema.NegativeNullaryPreconditions[i] && s.Nullary(i) {
			return true
		}
	}
	return false
}

// freeVariablePositions scans the result table's columns once and records,
// in encounter order, each variable column's slot id and position. The
// table must cover every slot 0..arity-1; a gap means the join pipeline
// violated its contract.
func freeVariablePositions(t *database.Table, arity int) (slots, positions []int) {
	for pos, col := range t.Columns {
		if col.Constant {
			continue
		}
		slots = append(slots, col.ID)
		positions = append(positions, pos)
	}
	covered := make(map[int]bool, len(slots))
	for _, slot := range slots {
		covered[slot] = true
	}
	if len(covered) != arity {
		panic(fmt.Sprintf("successor: instantiation covers %d of %d variable slots", len(covered), arity))
	}
	return slots, positions
}

// orderBySlot translates one table row into the canonical instantiation:
// one object index per slot, ordered by ascending slot id, regardless of
// the column order the join produced.
func orderBySlot(slots, positions, row []int, arity int) []int {
	ordered := make([]int, arity)
	for i, slot := range slots {
		ordered[slot] = row[positions[i]]
	}
	return ordered
}
