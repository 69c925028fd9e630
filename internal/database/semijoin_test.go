package database

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func varCol(id int) Column   { return Column{ID: id, Constant: false} }
func constCol(id int) Column { return Column{ID: id, Constant: true} }

func TestSemiJoinNoSharedColumnsLeavesT1Unchanged(t *testing.T) {
	t1 := NewTable([]Column{varCol(0)}, [][]int{{1}, {2}})
	t2 := NewTable([]Column{varCol(1)}, [][]int{{9}})

	before := append([][]int{}, t1.Rows...)
	SemiJoin(t1, t2)

	if diff := cmp.Diff(before, t1.Rows); diff != "" {
		t.Errorf("rows changed without shared columns (-want +got):\n%s", diff)
	}
}

func TestSemiJoinConstantColumnsNeverMatch(t *testing.T) {
	// Same id on both sides, but one is a constant tag: no match pair,
	// so no filtering happens.
	t1 := NewTable([]Column{varCol(0)}, [][]int{{1}, {2}})
	t2 := NewTable([]Column{constCol(0)}, [][]int{{5}})

	SemiJoin(t1, t2)
	assert.Len(t, t1.Rows, 2)
}

func TestSemiJoinFiltersToWitnessedRows(t *testing.T) {
	t1 := NewTable([]Column{varCol(0), varCol(1)}, [][]int{
		{1, 10},
		{2, 20},
		{3, 30},
	})
	t2 := NewTable([]Column{varCol(1), varCol(2)}, [][]int{
		{10, 100},
		{30, 300},
		{30, 301},
	})

	SemiJoin(t1, t2)

	// Rows keep their full original column set; only unwitnessed rows drop.
	want := [][]int{{1, 10}, {3, 30}}
	if diff := cmp.Diff(want, t1.Rows); diff != "" {
		t.Errorf("surviving rows mismatch (-want +got):\n%s", diff)
	}
	assert.Len(t, t2.Rows, 3, "t2 must never be mutated")
	assert.Equal(t, []Column{varCol(0), varCol(1)}, t1.Columns)
}

func TestSemiJoinMultipleSharedColumns(t *testing.T) {
	t1 := NewTable([]Column{varCol(0), varCol(1)}, [][]int{
		{1, 10},
		{1, 20},
	})
	t2 := NewTable([]Column{varCol(0), varCol(1)}, [][]int{
		{1, 20},
	})

	SemiJoin(t1, t2)
	require.Equal(t, [][]int{{1, 20}}, t1.Rows,
		"a witness must agree on every shared column")
}

func TestSemiJoinIdempotent(t *testing.T) {
	t2 := NewTable([]Column{varCol(0)}, [][]int{{1}, {3}})

	t1 := NewTable([]Column{varCol(0), varCol(1)}, [][]int{
		{1, 10}, {2, 20}, {3, 30},
	})
	SemiJoin(t1, t2)
	once := append([][]int{}, t1.Rows...)

	SemiJoin(t1, t2)
	if diff := cmp.Diff(once, t1.Rows); diff != "" {
		t.Errorf("second application changed the result (-want +got):\n%s", diff)
	}
}

func TestSemiJoinEmptyRight(t *testing.T) {
	t1 := NewTable([]Column{varCol(0)}, [][]int{{1}})
	t2 := NewTable([]Column{varCol(0)}, nil)

	SemiJoin(t1, t2)
	assert.Empty(t, t1.Rows, "no witnesses at all must drop every row")
}

func TestNewTableRowLengthInvariant(t *testing.T) {
	require.Panics(t, func() {
		NewTable([]Column{varCol(0), varCol(1)}, [][]int{{1}})
	})
}
