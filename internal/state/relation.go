// Package state implements the relational planning state model: ground
// atoms, per-predicate relations, and immutable state snapshots. States are
// values; every transition builds a new State and predecessors stay valid,
// which is what makes them safe to share read-only across search workers.
package state

import (
	"sort"
	"strconv"
	"strings"
)

// GroundAtom is a fully instantiated predicate application: an ordered tuple
// of object indices whose arity is fixed by its predicate. Compared and
// hashed by content via Key.
type GroundAtom []int

// Key returns a canonical string encoding of the tuple, usable as a map key.
func (g GroundAtom) Key() string {
	var b strings.Builder
	for i, v := range g {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(v))
	}
	return b.String()
}

// Equal reports content equality with another tuple.
func (g GroundAtom) Equal(other GroundAtom) bool {
	if len(g) != len(other) {
		return false
	}
	for i := range g {
		if g[i] != other[i] {
			return false
		}
	}
	return true
}

// Relation is the extension of one predicate: a deduplicated, unordered set
// of ground atoms. Exactly one Relation exists per predicate symbol in a
// State, stored at index Symbol of the relation vector.
type Relation struct {
	symbol int
	tuples map[string]GroundAtom
}

// NewRelation returns an empty relation for the given predicate symbol.
func NewRelation(symbol int) *Relation {
	return &Relation{symbol: symbol, tuples: make(map[string]GroundAtom)}
}

// Symbol returns the predicate symbol this relation belongs to.
func (r *Relation) Symbol() int { return r.symbol }

// Len returns the number of tuples in the relation.
func (r *Relation) Len() int { return len(r.tuples) }

// Empty reports whether the relation holds no tuples.
func (r *Relation) Empty() bool { return len(r.tuples) == 0 }

// Contains reports whether the ground atom is in the relation.
func (r *Relation) Contains(g GroundAtom) bool {
	_, ok := r.tuples[g.Key()]
	return ok
}

// Insert adds a ground atom. Duplicate insertion is a no-op (set semantics).
func (r *Relation) Insert(g GroundAtom) {
	r.tuples[g.Key()] = g
}

// Remove deletes a ground atom. Removing an absent atom is a no-op.
func (r *Relation) Remove(g GroundAtom) {
	delete(r.tuples, g.Key())
}

// Tuples returns the tuples in unspecified order.
func (r *Relation) Tuples() []GroundAtom {
	out := make([]GroundAtom, 0, len(r.tuples))
	for _, g := range r.tuples {
		out = append(out, g)
	}
	return out
}

// Clone returns an independent copy sharing no tuple storage with r.
// Successor computation clones only the relations an effect touches.
func (r *Relation) Clone() *Relation {
	c := &Relation{symbol: r.symbol, tuples: make(map[string]GroundAtom, len(r.tuples))}
	for k, g := range r.tuples {
		c.tuples[k] = g
	}
	return c
}

// sortedKeys returns the tuple keys in lexicographic order, used for the
// canonical state fingerprint.
func (r *Relation) sortedKeys() []string {
	keys := make([]string, 0, len(r.tuples))
	for k := range r.tuples {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
