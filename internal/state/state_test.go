package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelationSetSemantics(t *testing.T) {
	r := NewRelation(0)
	r.Insert(GroundAtom{1, 2})
	r.Insert(GroundAtom{1, 2})
	assert.Equal(t, 1, r.Len(), "duplicate insertion must be a no-op")

	r.Remove(GroundAtom{7, 7})
	assert.Equal(t, 1, r.Len(), "removing an absent tuple must be a no-op")

	r.Remove(GroundAtom{1, 2})
	assert.True(t, r.Empty())
}

func TestRelationContains(t *testing.T) {
	r := NewRelation(3)
	r.Insert(GroundAtom{0})
	r.Insert(GroundAtom{2})

	assert.True(t, r.Contains(GroundAtom{0}))
	assert.True(t, r.Contains(GroundAtom{2}))
	assert.False(t, r.Contains(GroundAtom{1}))
	assert.Equal(t, 3, r.Symbol())
}

func TestRelationCloneIndependence(t *testing.T) {
	r := NewRelation(0)
	r.Insert(GroundAtom{1})

	c := r.Clone()
	c.Insert(GroundAtom{2})
	c.Remove(GroundAtom{1})

	assert.True(t, r.Contains(GroundAtom{1}), "clone mutation leaked into original")
	assert.False(t, r.Contains(GroundAtom{2}))
	assert.Equal(t, 1, r.Len())
	assert.Equal(t, 1, c.Len())
}

func TestGroundAtomKey(t *testing.T) {
	assert.Equal(t, GroundAtom{1, 2}.Key(), GroundAtom{1, 2}.Key())
	assert.NotEqual(t, GroundAtom{1, 2}.Key(), GroundAtom{12}.Key(),
		"keys must not collide across arities")
	assert.NotEqual(t, GroundAtom{1, 2}.Key(), GroundAtom{2, 1}.Key())
}

func TestStateFingerprintOrderIndependent(t *testing.T) {
	build := func(order []GroundAtom) *State {
		r := NewRelation(0)
		for _, g := range order {
			r.Insert(g)
		}
		return NewState([]bool{true, false}, []*Relation{r, NewRelation(1)})
	}

	a := build([]GroundAtom{{1, 2}, {3, 4}, {5, 6}})
	b := build([]GroundAtom{{5, 6}, {1, 2}, {3, 4}})
	require.Equal(t, a.Fingerprint(), b.Fingerprint())

	c := build([]GroundAtom{{1, 2}})
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
}

func TestStateFingerprintNullary(t *testing.T) {
	rels := func() []*Relation { return []*Relation{NewRelation(0)} }
	a := NewState([]bool{true}, rels())
	b := NewState([]bool{false}, rels())
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}

func TestNewStateSymbolInvariant(t *testing.T) {
	require.Panics(t, func() {
		NewState(nil, []*Relation{NewRelation(1)})
	}, "relation at index 0 carrying symbol 1 must be rejected")
	require.Panics(t, func() {
		NewStaticInformation([]*Relation{NewRelation(0), NewRelation(0)})
	})
}
