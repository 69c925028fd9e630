// Package database implements the transient relational machinery behind
// action-schema instantiation: column-tagged tables, the semi-join
// primitive, the natural join, and the pipeline that assembles all variable
// bindings satisfying a schema's positive non-nullary preconditions.
//
// Tables live only for the duration of one instantiation call and are
// discarded afterwards; nothing in this package touches a State.
package database

import "fmt"

// Column tags one table column: either a free-variable slot id or a
// constant marker carrying an object index. Constant columns never
// participate in column matching.
type Column struct {
	ID       int
	Constant bool
}

// Table is a transient intermediate relation. Every row has exactly one
// value per column, aligned by position.
type Table struct {
	Columns []Column
	Rows    [][]int
}

// NewTable builds a table, checking the row/column alignment invariant.
// A row whose length disagrees with the column count is a programming
// error and panics.
func NewTable(columns []Column, rows [][]int) *Table {
	for i, row := range rows {
		if len(row) != len(columns) {
			panic(fmt.Sprintf("database: row %d has %d values for %d columns", i, len(row), len(columns)))
		}
	}
	return &Table{Columns: columns, Rows: rows}
}

// Empty reports whether the table has no rows.
func (t *Table) Empty() bool { return len(t.Rows) == 0 }

// columnPair records one matching column position pair between two tables.
type columnPair struct {
	left, right int
}

// matchingColumns returns every position pair (i, j) whose columns carry
// the same variable slot id. Computed by scanning all pairs once per call.
func matchingColumns(t1, t2 *Table) []columnPair {
	var matches []columnPair
	for i, c1 := range t1.Columns {
		if c1.Constant {
			continue
		}
		for j, c2 := range t2.Columns {
			if c2.Constant {
				continue
			}
			if c1.ID == c2.ID {
				matches = append(matches, columnPair{left: i, right: j})
			}
		}
	}
	return matches
}
