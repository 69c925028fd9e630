package task

// Parameter is one declared free variable of an action schema.
type Parameter struct {
	Name string
	Type int
}

// ActionSchema is one action template. Nullary preconditions and effects
// are kept as positive/negative truth vectors indexed by predicate symbol;
// non-nullary ones are atom lists. A schema with no parameters is ground:
// its atoms contain only constant arguments and applicability reduces to
// direct membership tests, no join needed.
type ActionSchema struct {
	Index      int
	Name       string
	Parameters []Parameter

	PositiveNullaryPreconditions []bool
	NegativeNullaryPreconditions []bool
	PositiveNullaryEffects       []bool
	NegativeNullaryEffects       []bool

	Preconditions []Atom
	Effects       []Atom
}

// IsGround reports whether the schema has zero free variables.
func (a *ActionSchema) IsGround() bool { return len(a.Parameters) == 0 }
