package database

import (
	"fmt"

	"liftplan/internal/state"
	"liftplan/internal/task"
)

// Instantiate assembles the table of every joint assignment of a lifted
// schema's free variables that satisfies all of its non-nullary
// preconditions against the given state. Positive atoms feed the join;
// negated atoms are applied afterwards as an exclusion pass, never answered
// by the positive-join machinery. Each per-atom table reads the state's
// dynamic relation when it is non-empty and the static relation otherwise.
//
// An empty per-atom table short-circuits the whole call: no binding can
// satisfy the schema. The fold order over positive atoms comes from the
// strategy and affects performance only.
func Instantiate(schema *task.ActionSchema, s *state.State, static *state.StaticInformation, order OrderStrategy) *Table {
	var positive []*Table
	var negated []task.Atom
	for _, atom := range schema.Preconditions {
		if atom.Negated {
			negated = append(negated, atom)
			continue
		}
		t := atomTable(atom, s, static)
		if t.Empty() {
			return &Table{}
		}
		positive = append(positive, t)
	}
	if len(positive) == 0 {
		return &Table{}
	}

	tables := order.Arrange(positive)
	working := tables[0]
	for _, next := range tables[1:] {
		Join(working, next)
		if working.Empty() {
			return &Table{}
		}
	}

	for _, atom := range negated {
		excludeRows(working, atom, s, static)
		if working.Empty() {
			return &Table{}
		}
	}
	return working
}

// atomTable builds the per-atom table for one positive precondition: one
// row per tuple of the backing relation, columns tagged by the atom's
// arguments. Rows disagreeing with a constant argument, or with two
// occurrences of the same variable, are excluded at build time.
func atomTable(atom task.Atom, s *state.State, static *state.StaticInformation) *Table {
	rel := sourceRelation(atom.Predicate, s, static)

	columns := make([]Column, len(atom.Arguments))
	firstSeen := make(map[int]int, len(atom.Arguments))
	var dupPairs [][2]int
	for i, arg := range atom.Arguments {
		columns[i] = Column{ID: arg.Index, Constant: arg.Constant}
		if arg.Constant {
			continue
		}
		if prev, seen := firstSeen[arg.Index]; seen {
			dupPairs = append(dupPairs, [2]int{prev, i})
		} else {
			firstSeen[arg.Index] = i
		}
	}

	var rows [][]int
tuples:
	for _, tuple := range rel.Tuples() {
		for i, arg := range atom.Arguments {
			if arg.Constant && tuple[i] != arg.Index {
				continue tuples
			}
		}
		for _, d := range dupPairs {
			if tuple[d[0]] != tuple[d[1]] {
				continue tuples
			}
		}
		rows = append(rows, []int(tuple))
	}
	return NewTable(columns, rows)
}

// excludeRows drops every row whose resolved ground tuple for the negated
// atom is present in the backing relation.
func excludeRows(t *Table, atom task.Atom, s *state.State, static *state.StaticInformation) {
	rel := sourceRelation(atom.Predicate, s, static)
	if rel.Empty() {
		return
	}

	// Resolve each variable argument to its column position once.
	positions := make([]int, len(atom.Arguments))
	for i, arg := range atom.Arguments {
		if arg.Constant {
			positions[i] = -1
			continue
		}
		pos := -1
		for j, col := range t.Columns {
			if !col.Constant && col.ID == arg.Index {
				pos = j
				break
			}
		}
		if pos < 0 {
			panic(fmt.Sprintf("database: negated precondition on predicate %d uses slot %d not bound by the join", atom.Predicate, arg.Index))
		}
		positions[i] = pos
	}

	var kept [][]int
	tuple := make(state.GroundAtom, len(atom.Arguments))
	for _, row := range t.Rows {
		for i, arg := range atom.Arguments {
			if arg.Constant {
				tuple[i] = arg.Index
			} else {
				tuple[i] = row[positions[i]]
			}
		}
		if !rel.Contains(tuple) {
			kept = append(kept, row)
		}
	}
	t.Rows = kept
}

// sourceRelation picks the relation answering lookups for a predicate: the
// dynamic relation when it has tuples, the static one otherwise.
func sourceRelation(pred int, s *state.State, static *state.StaticInformation) *state.Relation {
	rel := s.Relation(pred)
	if rel.Empty() {
		return static.Relation(pred)
	}
	return rel
}
