package database

// SemiJoin filters t1 in place down to the rows that have at least one
// matching row in t2 on the shared variable columns. It is a filter, not a
// join: when no column is shared the two tables are independent and t1 is
// returned unchanged — callers wanting the Cartesian combination must form
// it explicitly (see Join). t2 is never mutated, and t1's columns and tags
// are unchanged; only its row list is replaced.
//
// A row of t1 survives as soon as one witness row of t2 agrees on every
// shared column (existence, not uniqueness), so the scan of t2 stops at the
// first match. Complexity is O(rows(t1) * rows(t2) * shared columns).
func SemiJoin(t1, t2 *Table) {
	matches := matchingColumns(t1, t2)
	if len(matches) == 0 {
		return
	}

	var kept [][]int
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
				kept = append(kept, r1)
				break
			}
		}
	}
	t1.Rows = kept
}
