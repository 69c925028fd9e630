package state

import (
	"fmt"
	"strings"
)

// State is an immutable snapshot of the world: one truth bit per nullary
// predicate plus one relation per predicate symbol. It is never mutated
// after construction; Successor builds a new State and untouched relations
// are shared by pointer between predecessor and successor, which is safe
// precisely because no code path writes through a constructed State.
type State struct {
	nullary   []bool
	relations []*Relation
}

// NewState builds a state from a nullary truth vector and a relation
// vector. The relation at index i must carry predicate symbol i; violating
// that invariant is a programming error and panics.
func NewState(nullary []bool, relations []*Relation) *State {
	for i, r := range relations {
		if r.Symbol() != i {
			panic(fmt.Sprintf("state: relation at index %d carries symbol %d", i, r.Symbol()))
		}
	}
	return &State{nullary: nullary, relations: relations}
}

// Nullary reports the truth value of the nullary predicate i.
func (s *State) Nullary(i int) bool { return s.nullary[i] }

// NullaryVector returns a copy of the nullary truth vector.
func (s *State) NullaryVector() []bool {
	out := make([]bool, len(s.nullary))
	copy(out, s.nullary)
	return out
}

// Relation returns the relation for predicate symbol i.
func (s *State) Relation(i int) *Relation { return s.relations[i] }

// Relations returns the relation vector. Callers must not mutate the
// returned relations; successor computation clones before writing.
func (s *State) Relations() []*Relation { return s.relations }

// NumRelations returns the number of predicate slots.
func (s *State) NumRelations() int { return len(s.relations) }

// Fingerprint returns a canonical string identifying the state's contents,
// independent of tuple iteration order. Used by the search driver's closed
// list for duplicate detection.
func (s *State) Fingerprint() string {
	var b strings.Builder
	for _, v := range s.nullary {
		if v {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	for _, r := range s.relations {
		b.WriteByte('|')
		for i, k := range r.sortedKeys() {
			if i > 0 {
				b.WriteByte(';')
			}
			b.WriteString(k)
		}
	}
	return b.String()
}

// StaticInformation holds the relations whose extension never changes over
// the whole search run, computed once at load time. It is state-shaped but
// carries no nullary vector: nullary facts are always dynamic here.
type StaticInformation struct {
	relations []*Relation
}

// NewStaticInformation builds the static snapshot. The same symbol/index
// invariant as NewState applies.
func NewStaticInformation(relations []*Relation) *StaticInformation {
	for i, r := range relations {
		if r.Symbol() != i {
			panic(fmt.Sprintf("state: static relation at index %d carries symbol %d", i, r.Symbol()))
		}
	}
	return &StaticInformation{relations: relations}
}

// Relation returns the static relation for predicate symbol i.
func (si *StaticInformation) Relation(i int) *Relation { return si.relations[i] }

// Relations returns the static relation vector.
func (si *StaticInformation) Relations() []*Relation { return si.relations }
