package database

// Join replaces t1 in place with the natural join of t1 and t2: it keeps
// the row combinations that agree on all shared variable columns and
// extends each surviving row with the columns of t2 not already present in
// t1 (semi-join-then-extend, so rows that cannot satisfy a later atom are
// never materialized). When the tables share no variable column the result
// is the explicit Cartesian product — that case lives here, deliberately
// outside the SemiJoin primitive. t2 is never mutated.
func Join(t1, t2 *Table) {
	matches := matchingColumns(t1, t2)

	matchedRight := make(map[int]bool, len(matches))
	for _, m := range matches {
		matchedRight[m.right] = true
	}
	var extraPos []int
	for j := range t2.Columns {
		if !matchedRight[j] {
			extraPos = append(extraPos, j)
		}
	}

	var newRows [][]int
	if len(matches) == 0 {
		for _, r1 := range t1.Rows {
			for _, r2 := range t2.Rows {
				newRows = append(newRows, extendRow(r1, r2, extraPos))
			}
		}
	} else {
		// Semi-join first, so only rows with at least one partner are
		// extended.
		SemiJoin(t1, t2)
		for _, r1 := range t1.Rows {
			for _, r2 := range t2.Rows {
				match := true
				for _, m := range matches {
					if r1[m.left] != r2[m.right] {
						match = false
						break
					}
				}
				if match {
					newRows = append(newRows, extendRow(r1, r2, extraPos))
				}
			}
		}
	}

	for _, j := range extraPos {
		t1.Columns = append(t1.Columns, t2.Columns[j])
	}
	t1.Rows = newRows
}

// extendRow copies r1 and appends the values of r2 at the given positions.
func extendRow(r1, r2 []int, extraPos []int) []int {
	row := make([]int, 0, len(r1)+len(extraPos))
	row = append(row, r1...)
	for _, j := range extraPos {
		row = append(row, r2[j])
	}
	return row
}
