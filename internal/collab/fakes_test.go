package collab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunholo/narrowlab/internal/types"
)

func TestMethodTable_RejectsOverlap(t *testing.T) {
	table := NewMethodTable()
	cls := types.ClassID(1)

	require.NoError(t, table.Add(cls, "__eq__", Member{Type: types.TAny{}}))
	assert.Error(t, table.Add(cls, "__eq__", Member{Type: types.TAny{}}))
}

func TestFakeResolver_LookUpClassMember_WalksMRO(t *testing.T) {
	arena := types.NewClassArena()
	object := arena.Register(&types.Class{Name: "object"})
	base := arena.Register(&types.Class{Name: "Base", MRO: []types.ClassID{object}})
	derived := arena.Register(&types.Class{Name: "Derived", MRO: []types.ClassID{base, object}})

	methods := NewMethodTable()
	require.NoError(t, methods.Add(base, "greet", Member{Type: types.TAny{}}))

	resolver := NewFakeResolver(arena, methods)
	m, ok := resolver.LookUpClassMember(derived, "greet")
	require.True(t, ok)
	assert.Equal(t, types.TAny{}, m.Type)

	_, ok = resolver.LookUpClassMember(derived, "missing")
	assert.False(t, ok)
}

func TestFakeResolver_TypedDictMembers(t *testing.T) {
	arena := types.NewClassArena()
	cls := arena.Register(&types.Class{
		Name:        "Movie",
		IsTypedDict: true,
		Fields:      map[string]types.TypedDictField{"title": {ValueType: types.TAny{}, IsRequired: true}},
	})
	resolver := NewFakeResolver(arena, NewMethodTable())

	fields := resolver.TypedDictMembers(cls)
	require.Contains(t, fields, "title")
}

func TestFakeEvaluator_MapSubtypesExpandTypeVars_Union(t *testing.T) {
	eval := NewFakeEvaluator()
	u := &types.TUnion{Members: []types.Type{types.TNone{}, types.TAny{}}}

	got := eval.MapSubtypesExpandTypeVars(u, func(m types.Type) types.Type {
		if _, ok := m.(types.TNone); ok {
			return types.TNever{}
		}
		return m
	})

	result, ok := got.(types.TAny)
	assert.True(t, ok, "TNone collapsed away, TAny survives: %v", result)
}

func TestRecordingSink_Report(t *testing.T) {
	sink := NewRecordingSink()
	sink.Report("PAT005", "pattern never matches", nil)

	require.Len(t, sink.Reports, 1)
	assert.Equal(t, "pattern never matches", sink.Reports[0].Message)
}
