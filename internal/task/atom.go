package task

// Argument is one argument position of a schema atom: either a constant
// carrying an object index, or a free variable carrying its parameter slot
// id. Slot ids are local to one schema and numbered 0..n-1 in declaration
// order.
type Argument struct {
	Index    int
	Constant bool
}

// Constant returns a constant argument bound to the given object index.
func Constant(object int) Argument {
	return Argument{Index: object, Constant: true}
}

// Variable returns a free-variable argument for the given parameter slot.
func Variable(slot int) Argument {
	return Argument{Index: slot, Constant: false}
}

// Atom is one precondition or effect literal of an action schema: a
// predicate symbol, an ordered argument list, and a negation flag.
type Atom struct {
	Predicate int
	Arguments []Argument
	Negated   bool
}

// Ground reports whether every argument of the atom is a constant.
func (a Atom) Ground() bool {
	for _, arg := range a.Arguments {
		if !arg.Constant {
			return false
		}
	}
	return true
}
