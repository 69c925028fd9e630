package task

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"liftplan/internal/logging"
	"liftplan/internal/state"
)

// The YAML problem format. Arguments beginning with '?' refer to schema
// parameters; everything else must name an object.
//
//	name: gripper-1
//	types: [room, ball]
//	objects:
//	  - {name: rooma, types: [room]}
//	predicates:
//	  - {name: at-robby, arity: 1}
//	  - {name: arm-free, arity: 0}
//	init:
//	  - {pred: at-robby, args: [rooma]}
//	  - {pred: arm-free}
//	goal:
//	  - {pred: at-robby, args: [roomb]}
//	schemas:
//	  - name: move
//	    parameters:
//	      - {name: from, type: room}
//	      - {name: to, type: room}
//	    preconditions:
//	      - {pred: at-robby, args: ["?from"]}
//	    effects:
//	      - {pred: at-robby, args: ["?from"], negated: true}
//	      - {pred: at-robby, args: ["?to"]}
type problemFile struct {
	Name       string          `yaml:"name"`
	Types      []string        `yaml:"types"`
	Objects    []objectSpec    `yaml:"objects"`
	Predicates []predicateSpec `yaml:"predicates"`
	Init       []literalSpec   `yaml:"init"`
	Goal       []literalSpec   `yaml:"goal"`
	Schemas    []schemaSpec    `yaml:"schemas"`
}

type objectSpec struct {
	Name  string   `yaml:"name"`
	Types []string `yaml:"types"`
}

type predicateSpec struct {
	Name  string `yaml:"name"`
	Arity int    `yaml:"arity"`
}

type literalSpec struct {
	Pred    string   `yaml:"pred"`
	Args    []string `yaml:"args"`
	Negated bool     `yaml:"negated"`
}

type parameterSpec struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

type schemaSpec struct {
	Name          string          `yaml:"name"`
	Parameters    []parameterSpec `yaml:"parameters"`
	Preconditions []literalSpec   `yaml:"preconditions"`
	Effects       []literalSpec   `yaml:"effects"`
}

// Load reads and resolves a problem file from disk.
func Load(path string) (*Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("task: read %s: %w", path, err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("task: parse %s: %w", path, err)
	}
	return t, nil
}

// Parse resolves a YAML problem description into a Task: names become
// indices, schemas get their nullary bit vectors, and the initial facts are
// split between the dynamic State and the StaticInformation. A predicate is
// static iff no schema effect mentions it.
func Parse(data []byte) (*Task, error) {
	var pf problemFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	log := logging.Get(logging.CategoryTask)

	t := &Task{Name: pf.Name, Types: pf.Types}

	typeIndex := make(map[string]int, len(pf.Types))
	for i, name := range pf.Types {
		if _, dup := typeIndex[name]; dup {
			return nil, fmt.Errorf("duplicate type %q", name)
		}
		typeIndex[name] = i
	}

	objectIndex := make(map[string]int, len(pf.Objects))
	for i, spec := range pf.Objects {
		if _, dup := objectIndex[spec.Name]; dup {
			return nil, fmt.Errorf("duplicate object %q", spec.Name)
		}
		obj := Object{Index: i, Name: spec.Name}
		for _, tn := range spec.Types {
			ti, ok := typeIndex[tn]
			if !ok {
				return nil, fmt.Errorf("object %q: unknown type %q", spec.Name, tn)
			}
			obj.Types = append(obj.Types, ti)
		}
		objectIndex[spec.Name] = i
		t.Objects = append(t.Objects, obj)
	}

	predIndex := make(map[string]int, len(pf.Predicates))
	for i, spec := range pf.Predicates {
		if _, dup := predIndex[spec.Name]; dup {
			return nil, fmt.Errorf("duplicate predicate %q", spec.Name)
		}
		if spec.Arity < 0 {
			return nil, fmt.Errorf("predicate %q: negative arity", spec.Name)
		}
		predIndex[spec.Name] = i
		t.Predicates = append(t.Predicates, Predicate{Index: i, Name: spec.Name, Arity: spec.Arity})
	}
	numPreds := len(t.Predicates)

	for i, spec := range pf.Schemas {
		schema, err := resolveSchema(t, predIndex, objectIndex, typeIndex, i, spec)
		if err != nil {
			return nil, fmt.Errorf("schema %q: %w", spec.Name, err)
		}
		t.Schemas = append(t.Schemas, schema)
	}

	// A predicate is dynamic iff some schema effect can change it.
	dynamic := make([]bool, numPreds)
	for _, schema := range t.Schemas {
		for _, eff := range schema.Effects {
			dynamic[eff.Predicate] = true
		}
		for i := 0; i < numPreds; i++ {
			if schema.PositiveNullaryEffects[i] || schema.NegativeNullaryEffects[i] {
				dynamic[i] = true
			}
		}
	}

	nullary := make([]bool, numPreds)
	initRelations := make([]*state.Relation, numPreds)
	staticRelations := make([]*state.Relation, numPreds)
	for i := 0; i < numPreds; i++ {
		initRelations[i] = state.NewRelation(i)
		staticRelations[i] = state.NewRelation(i)
	}
	for _, spec := range pf.Init {
		pi, tuple, err := resolveGround(t, predIndex, objectIndex, spec)
		if err != nil {
			return nil, fmt.Errorf("init: %w", err)
		}
		if spec.Negated {
			return nil, fmt.Errorf("init: negated literal %q not allowed", spec.Pred)
		}
		switch {
		case t.Predicates[pi].Nullary():
			nullary[pi] = true
		case dynamic[pi]:
			initRelations[pi].Insert(tuple)
		default:
			staticRelations[pi].Insert(tuple)
		}
	}

	for _, spec := range pf.Goal {
		pi, tuple, err := resolveGround(t, predIndex, objectIndex, spec)
		if err != nil {
			return nil, fmt.Errorf("goal: %w", err)
		}
		t.Goal.Literals = append(t.Goal.Literals, GoalLiteral{
			Predicate: pi,
			Arguments: tuple,
			Negated:   spec.Negated,
		})
	}

	t.Initial = state.NewState(nullary, initRelations)
	t.Static = state.NewStaticInformation(staticRelations)
	t.buildTypeIndex()

	staticCount := 0
	for i := range t.Predicates {
		if !staticRelations[i].Empty() {
			staticCount++
		}
	}
	log.Infow("problem loaded",
		"name", t.Name,
		"objects", len(t.Objects),
		"predicates", numPreds,
		"schemas", len(t.Schemas),
		"static_predicates", staticCount)
	return t, nil
}

// resolveGround resolves a fully ground literal (init or goal).
func resolveGround(t *Task, predIndex, objectIndex map[string]int, spec literalSpec) (int, state.GroundAtom, error) {
	pi, ok := predIndex[spec.Pred]
	if !ok {
		return 0, nil, fmt.Errorf("unknown predicate %q", spec.Pred)
	}
	if len(spec.Args) != t.Predicates[pi].Arity {
		return 0, nil, fmt.Errorf("predicate %q: got %d args, arity is %d",
			spec.Pred, len(spec.Args), t.Predicates[pi].Arity)
	}
	tuple := make(state.GroundAtom, 0, len(spec.Args))
	for _, arg := range spec.Args {
		if strings.HasPrefix(arg, "?") {
			return 0, nil, fmt.Errorf("predicate %q: variable %q in ground literal", spec.Pred, arg)
		}
		oi, ok := objectIndex[arg]
		if !ok {
			return 0, nil, fmt.Errorf("predicate %q: unknown object %q", spec.Pred, arg)
		}
		tuple = append(tuple, oi)
	}
	return pi, tuple, nil
}

// resolveSchema resolves one schema entry, building its nullary bit vectors
// and atom lists.
func resolveSchema(t *Task, predIndex, objectIndex, typeIndex map[string]int, index int, spec schemaSpec) (ActionSchema, error) {
	numPreds := len(t.Predicates)
	schema := ActionSchema{
		Index:                        index,
		Name:                         spec.Name,
		PositiveNullaryPreconditions: make([]bool, numPreds),
		NegativeNullaryPreconditions: make([]bool, numPreds),
		PositiveNullaryEffects:       make([]bool, numPreds),
		NegativeNullaryEffects:       make([]bool, numPreds),
	}

	slots := make(map[string]int, len(spec.Parameters))
	for i, p := range spec.Parameters {
		if _, dup := slots[p.Name]; dup {
			return schema, fmt.Errorf("duplicate parameter %q", p.Name)
		}
		ti, ok := typeIndex[p.Type]
		if !ok {
			return schema, fmt.Errorf("parameter %q: unknown type %q", p.Name, p.Type)
		}
		slots[p.Name] = i
		schema.Parameters = append(schema.Parameters, Parameter{Name: p.Name, Type: ti})
	}

	resolve := func(spec literalSpec, posNullary, negNullary []bool) (*Atom, error) {
		pi, ok := predIndex[spec.Pred]
		if !ok {
			return nil, fmt.Errorf("unknown predicate %q", spec.Pred)
		}
		if len(spec.Args) != t.Predicates[pi].Arity {
			return nil, fmt.Errorf("predicate %q: got %d args, arity is %d",
				spec.Pred, len(spec.Args), t.Predicates[pi].Arity)
		}
		if t.Predicates[pi].Nullary() {
			if spec.Negated {
				negNullary[pi] = true
			} else {
				posNullary[pi] = true
			}
			return nil, nil
		}
		atom := Atom{Predicate: pi, Negated: spec.Negated}
		for _, arg := range spec.Args {
			if name, isVar := strings.CutPrefix(arg, "?"); isVar {
				slot, ok := slots[name]
				if !ok {
					return nil, fmt.Errorf("predicate %q: undeclared variable ?%s", spec.Pred, name)
				}
				atom.Arguments = append(atom.Arguments, Variable(slot))
			} else {
				oi, ok := objectIndex[arg]
				if !ok {
					return nil, fmt.Errorf("predicate %q: unknown object %q", spec.Pred, arg)
				}
				atom.Arguments = append(atom.Arguments, Constant(oi))
			}
		}
		return &atom, nil
	}

	for _, ls := range spec.Preconditions {
		atom, err := resolve(ls, schema.PositiveNullaryPreconditions, schema.NegativeNullaryPreconditions)
		if err != nil {
			return schema, fmt.Errorf("precondition: %w", err)
		}
		if atom != nil {
			schema.Preconditions = append(schema.Preconditions, *atom)
		}
	}
	for _, ls := range spec.Effects {
		atom, err := resolve(ls, schema.PositiveNullaryEffects, schema.NegativeNullaryEffects)
		if err != nil {
			return schema, fmt.Errorf("effect: %w", err)
		}
		if atom != nil {
			schema.Effects = append(schema.Effects, *atom)
		}
	}

	// Every parameter must be bound by some positive non-nullary
	// precondition, otherwise instantiation cannot produce a value for it.
	bound := make([]bool, len(schema.Parameters))
	for _, atom := range schema.Preconditions {
		if atom.Negated {
			continue
		}
		for _, arg := range atom.Arguments {
			if !arg.Constant {
				bound[arg.Index] = true
			}
		}
	}
	for slot, ok := range bound {
		if !ok {
			return schema, fmt.Errorf("parameter ?%s is not bound by any positive precondition", schema.Parameters[slot].Name)
		}
	}

	return schema, nil
}
