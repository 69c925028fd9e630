package database

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownOrder is returned by NewOrderStrategy for unrecognized names.
var ErrUnknownOrder = errors.New("no such join order strategy")

// OrderStrategy decides the order in which per-atom tables are folded into
// the join. The choice affects performance only, never the set of bindings
// produced, as long as every table is eventually incorporated.
type OrderStrategy interface {
	Name() string
	Arrange(tables []*Table) []*Table
}

// NewOrderStrategy returns the strategy registered under name
// (case-insensitive). Unknown names yield ErrUnknownOrder.
func NewOrderStrategy(name string) (OrderStrategy, error) {
	switch {
	case strings.EqualFold(name, "declared"):
		return declaredOrder{}, nil
	case strings.EqualFold(name, "smallest-first"):
		return smallestFirst{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOrder, name)
	}
}

// declaredOrder folds tables in the order the preconditions were written.
type declaredOrder struct{}

func (declaredOrder) Name() string { return "declared" }

func (declaredOrder) Arrange(tables []*Table) []*Table { return tables }

// smallestFirst folds the most selective (fewest rows) tables first, which
// keeps intermediate results small on most problems.
type smallestFirst struct{}

func (smallestFirst) Name() string { return "smallest-first" }

func (smallestFirst) Arrange(tables []*Table) []*Table {
	out := make([]*Table, len(tables))
	copy(out, tables)
	sort.SliceStable(out, func(i, j int) bool {
		return len(out[i].Rows) < len(out[j].Rows)
	})
	return out
}
