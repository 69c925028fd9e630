// Package task holds the immutable problem definition: typed objects,
// predicates, action schemas, the goal, and the initial/static split of the
// relational database. Everything here is built once by the loader and
// read-only for the remainder of a run.
package task

// Object is a problem object: its index into the object table plus the set
// of type indices it belongs to.
type Object struct {
	Index int
	Name  string
	Types []int
}

// HasType reports whether the object belongs to the given type.
func (o Object) HasType(t int) bool {
	for _, ot := range o.Types {
		if ot == t {
			return true
		}
	}
	return false
}

// Predicate describes one predicate symbol. Arity zero marks a nullary
// predicate, represented as a single truth bit in states rather than a
// relation.
type Predicate struct {
	Index int
	Name  string
	Arity int
}

// Nullary reports whether the predicate is zero-arity.
func (p Predicate) Nullary() bool { return p.Arity == 0 }
