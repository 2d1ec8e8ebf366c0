package assign

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sunholo/narrowlab/internal/types"
)

func newTestArena() (*types.ClassArena, types.ClassID, types.ClassID, types.ClassID) {
	arena := types.NewClassArena()
	object := arena.Register(&types.Class{Name: "object"})
	animal := arena.Register(&types.Class{Name: "Animal", MRO: []types.ClassID{object}})
	dog := arena.Register(&types.Class{Name: "Dog", MRO: []types.ClassID{animal, object}})
	return arena, object, animal, dog
}

// ═══════════════════════════════════════════════════════════════════════
// Gradual absorption and bottom/top behavior
// ═══════════════════════════════════════════════════════════════════════

func TestAssignable_Reflexive(t *testing.T) {
	arena, _, _, dog := newTestArena()
	o := New(arena)
	inst := &types.TInstance{Class: dog}
	assert.True(t, o.Assignable(inst, inst))
}

func TestAssignable_AnyUnknownAbsorb(t *testing.T) {
	arena, _, _, dog := newTestArena()
	o := New(arena)
	inst := &types.TInstance{Class: dog}

	assert.True(t, o.Assignable(types.TAny{}, inst))
	assert.True(t, o.Assignable(inst, types.TAny{}))
	assert.True(t, o.Assignable(types.TUnknown{}, inst))
	assert.True(t, o.Assignable(inst, types.TUnknown{}))
}

func TestAssignable_Never(t *testing.T) {
	arena, _, _, dog := newTestArena()
	o := New(arena)
	inst := &types.TInstance{Class: dog}

	assert.True(t, o.Assignable(inst, types.TNever{}), "Never assignable to anything")
	assert.False(t, o.Assignable(types.TNever{}, inst), "nothing but Never/Any/Unknown assignable to Never")
	assert.True(t, o.Assignable(types.TNever{}, types.TNever{}))
}

// ═══════════════════════════════════════════════════════════════════════
// Class hierarchy and final-class restriction
// ═══════════════════════════════════════════════════════════════════════

func TestAssignable_ClassHierarchy(t *testing.T) {
	arena, _, animal, dog := newTestArena()
	o := New(arena)

	dogInst := &types.TInstance{Class: dog}
	animalInst := &types.TInstance{Class: animal}

	assert.True(t, o.Assignable(animalInst, dogInst), "Dog assignable to Animal")
	assert.False(t, o.Assignable(dogInst, animalInst), "Animal not assignable to Dog")
}

func TestAssignable_FinalClassRejectsSubclass(t *testing.T) {
	arena := types.NewClassArena()
	object := arena.Register(&types.Class{Name: "object"})
	final := arena.Register(&types.Class{Name: "Final", IsFinal: true, MRO: []types.ClassID{object}})
	sub := arena.Register(&types.Class{Name: "Sub", MRO: []types.ClassID{final, object}})
	o := New(arena)

	assert.False(t, o.Assignable(&types.TInstance{Class: final}, &types.TInstance{Class: sub}))
}

// ═══════════════════════════════════════════════════════════════════════
// Union distribution: existential on dest, universal on src
// ═══════════════════════════════════════════════════════════════════════

func TestAssignable_UnionDest_Existential(t *testing.T) {
	arena, _, _, dog := newTestArena()
	o := New(arena)
	dogInst := &types.TInstance{Class: dog}
	dest := &types.TUnion{Members: []types.Type{types.TNone{}, dogInst}}

	assert.True(t, o.Assignable(dest, dogInst))
	assert.False(t, o.Assignable(dest, &types.TInstance{Class: types.ClassID(999)}))
}

func TestAssignable_UnionSrc_Universal(t *testing.T) {
	arena, _, animal, dog := newTestArena()
	o := New(arena)
	dogInst := &types.TInstance{Class: dog}
	animalInst := &types.TInstance{Class: animal}
	src := &types.TUnion{Members: []types.Type{dogInst, animalInst}}

	assert.True(t, o.Assignable(animalInst, src), "both Dog and Animal assignable to Animal")
	assert.False(t, o.Assignable(dogInst, src), "Animal not assignable to Dog")
}

// ═══════════════════════════════════════════════════════════════════════
// Tuple element-wise assignability with unbounded absorption
// ═══════════════════════════════════════════════════════════════════════

func TestAssignable_Tuple_FixedShape(t *testing.T) {
	arena, _, _, dog := newTestArena()
	o := New(arena)
	dogInst := &types.TInstance{Class: dog}

	dest := &types.TInstance{Tuple: []types.TupleEntry{{Type: dogInst}, {Type: types.TAny{}}}}
	src := &types.TInstance{Tuple: []types.TupleEntry{{Type: dogInst}, {Type: types.TNone{}}}}

	assert.True(t, o.Assignable(dest, src))
}

func TestAssignable_Tuple_UnboundedAbsorbs(t *testing.T) {
	arena, _, _, dog := newTestArena()
	o := New(arena)
	dogInst := &types.TInstance{Class: dog}

	dest := &types.TInstance{Tuple: []types.TupleEntry{
		{Type: dogInst}, {Type: dogInst}, {Type: dogInst},
	}}
	src := &types.TInstance{Tuple: []types.TupleEntry{
		{Type: dogInst, Unbounded: true},
	}}

	assert.True(t, o.Assignable(dest, src))
}

func TestAssignable_Tuple_ShapeMismatch(t *testing.T) {
	arena, _, _, dog := newTestArena()
	o := New(arena)
	dogInst := &types.TInstance{Class: dog}

	dest := &types.TInstance{Tuple: []types.TupleEntry{{Type: dogInst}}}
	src := &types.TInstance{Tuple: []types.TupleEntry{{Type: dogInst}, {Type: dogInst}}}

	assert.False(t, o.Assignable(dest, src))
}

// ═══════════════════════════════════════════════════════════════════════
// Generic variance
// ═══════════════════════════════════════════════════════════════════════

func TestAssignable_CovariantTypeArg(t *testing.T) {
	arena, _, animal, dog := newTestArena()
	listCls := arena.Register(&types.Class{
		Name:   "list",
		Params: []types.ClassParam{{Name: "T", Variance: types.Covariant}},
	})
	o := New(arena)

	destList := &types.TInstance{Class: listCls, Args: []types.TypeArg{{Name: "T", Type: &types.TInstance{Class: animal}}}}
	srcList := &types.TInstance{Class: listCls, Args: []types.TypeArg{{Name: "T", Type: &types.TInstance{Class: dog}}}}

	assert.True(t, o.Assignable(destList, srcList))
	assert.False(t, o.Assignable(srcList, destList))
}

func TestAssignable_InvariantTypeArgRequiresSame(t *testing.T) {
	arena, _, animal, dog := newTestArena()
	boxCls := arena.Register(&types.Class{
		Name:   "Box",
		Params: []types.ClassParam{{Name: "T"}},
	})
	o := New(arena)

	destBox := &types.TInstance{Class: boxCls, Args: []types.TypeArg{{Name: "T", Type: &types.TInstance{Class: animal}}}}
	srcBox := &types.TInstance{Class: boxCls, Args: []types.TypeArg{{Name: "T", Type: &types.TInstance{Class: dog}}}}

	assert.False(t, o.Assignable(destBox, srcBox))
}
