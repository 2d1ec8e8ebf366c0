package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSame_Primitives(t *testing.T) {
	tests := []struct {
		name string
		a, b Type
		want bool
	}{
		{"any==any", TAny{}, TAny{}, true},
		{"any!=unknown", TAny{}, TUnknown{}, false},
		{"never==never", TNever{}, TNever{}, true},
		{"none==none", TNone{}, TNone{}, true},
		{"none!=never", TNone{}, TNever{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Same(tt.a, tt.b))
		})
	}
}

func TestSame_Nil(t *testing.T) {
	assert.True(t, Same(nil, nil))
	assert.False(t, Same(nil, TAny{}))
	assert.False(t, Same(TAny{}, nil))
}

// ═══════════════════════════════════════════════════════════════════════
// Instance equality: class identity, literal identity, args-as-set
// ═══════════════════════════════════════════════════════════════════════

func TestInstance_Same(t *testing.T) {
	arena := NewClassArena()
	intCls := arena.Register(&Class{Name: "int"})
	strCls := arena.Register(&Class{Name: "str"})

	a := &TInstance{Class: intCls}
	b := &TInstance{Class: intCls}
	c := &TInstance{Class: strCls}

	assert.True(t, a.Same(b))
	assert.False(t, a.Same(c))
}

func TestInstance_Same_TypeArgsIgnoreOrder(t *testing.T) {
	arena := NewClassArena()
	listCls := arena.Register(&Class{Name: "list"})

	a := &TInstance{Class: listCls, Args: []TypeArg{
		{Name: "K", Type: TAny{}},
		{Name: "V", Type: TNone{}},
	}}
	b := &TInstance{Class: listCls, Args: []TypeArg{
		{Name: "V", Type: TNone{}},
		{Name: "K", Type: TAny{}},
	}}

	assert.True(t, a.Same(b), "type-arg maps compare as sets, per §4.1")
}

func TestInstance_Same_Literal(t *testing.T) {
	arena := NewClassArena()
	intCls := arena.Register(&Class{Name: "int"})

	one := &TInstance{Class: intCls, Literal: &LiteralValue{Kind: LiteralInt, Int: 1}}
	oneAgain := &TInstance{Class: intCls, Literal: &LiteralValue{Kind: LiteralInt, Int: 1}}
	two := &TInstance{Class: intCls, Literal: &LiteralValue{Kind: LiteralInt, Int: 2}}
	bare := &TInstance{Class: intCls}

	assert.True(t, one.Same(oneAgain))
	assert.False(t, one.Same(two))
	assert.False(t, one.Same(bare))
}

func TestLiteralValue_Equal_StringNFCNormalizes(t *testing.T) {
	nfc := &LiteralValue{Kind: LiteralStr, Str: "café"}           // U+00E9
	nfd := &LiteralValue{Kind: LiteralStr, Str: "café"}     // e + combining acute
	assert.True(t, nfc.Equal(nfd), "NFC and NFD spellings denote the same literal, per §9")
}

// ═══════════════════════════════════════════════════════════════════════
// AsInstance / AsInstantiable are total inverses, per §3.1
// ═══════════════════════════════════════════════════════════════════════

func TestAsInstance_AsInstantiable_Inverses(t *testing.T) {
	arena := NewClassArena()
	cls := arena.Register(&Class{Name: "Point", Params: []ClassParam{{Name: "T"}}})

	inst := &TInstance{Class: cls, Args: []TypeArg{{Name: "T", Type: TAny{}}}}
	back := AsInstance(AsInstantiable(inst))
	assert.True(t, inst.Same(back))

	ti := &TInstantiable{Class: cls}
	assert.Equal(t, ti.Class, AsInstantiable(AsInstance(ti)).Class)
}

// ═══════════════════════════════════════════════════════════════════════
// Union construction: flattening, dedup, singleton collapse
// ═══════════════════════════════════════════════════════════════════════

func TestCombine_FlattensAndDedups(t *testing.T) {
	arena := NewClassArena()
	intCls := arena.Register(&Class{Name: "int"})
	inst := &TInstance{Class: intCls}

	nested := &TUnion{Members: []Type{inst, TNone{}}}
	got := Combine(nested, inst, TAny{})

	u, ok := got.(*TUnion)
	require.True(t, ok)
	assert.Len(t, u.Members, 3, "int, None, Any — duplicate int collapsed")
}

func TestCombine_SingletonCollapses(t *testing.T) {
	got := Combine(TAny{})
	_, isUnion := got.(*TUnion)
	assert.False(t, isUnion)
	assert.True(t, Same(TAny{}, got))
}

func TestCombine_EmptyIsNever(t *testing.T) {
	got := Combine()
	assert.True(t, Same(TNever{}, got))
}

func TestCombineCollapseToAny(t *testing.T) {
	got := CombineCollapseToAny(TNone{}, TAny{}, TNever{})
	assert.True(t, Same(TAny{}, got))
}

// ═══════════════════════════════════════════════════════════════════════
// Clone-on-write: literal narrowing, specialization, TypedDict provided
// ═══════════════════════════════════════════════════════════════════════

func TestCloneWithLiteral_DoesNotMutateBase(t *testing.T) {
	arena := NewClassArena()
	intCls := arena.Register(&Class{Name: "int"})
	base := &TInstance{Class: intCls}

	narrowed := CloneWithLiteral(base, &LiteralValue{Kind: LiteralInt, Int: 7})

	assert.Nil(t, base.Literal)
	require.NotNil(t, narrowed.Literal)
	assert.Equal(t, int64(7), narrowed.Literal.Int)
}

func TestSpecializeTuple_RejectsMultipleUnbounded(t *testing.T) {
	arena := NewClassArena()
	tupleCls := arena.Register(&Class{Name: "tuple"})
	base := &TInstance{Class: tupleCls}

	assert.Panics(t, func() {
		SpecializeTuple(base, []TupleEntry{
			{Type: TAny{}, Unbounded: true},
			{Type: TAny{}, Unbounded: true},
		})
	})
}

func TestCloneTypedDictEntries_RegistersDerivedClass(t *testing.T) {
	arena := NewClassArena()
	base := arena.Register(&Class{
		Name:        "Movie",
		IsTypedDict: true,
		Fields: map[string]TypedDictField{
			"year": {ValueType: TAny{}, IsRequired: false},
		},
	})
	inst := &TInstance{Class: base}

	derived := CloneTypedDictEntries(inst, arena, "year")

	assert.NotEqual(t, base, derived.Class)
	baseCls := arena.MustGet(base)
	derivedCls := arena.MustGet(derived.Class)
	assert.False(t, baseCls.Fields["year"].IsProvided, "base class untouched")
	assert.True(t, derivedCls.Fields["year"].IsProvided)
}

// ═══════════════════════════════════════════════════════════════════════
// Class / MRO
// ═══════════════════════════════════════════════════════════════════════

func TestClass_IsSubclassOf(t *testing.T) {
	arena := NewClassArena()
	object := arena.Register(&Class{Name: "object"})
	base := arena.Register(&Class{Name: "Base", MRO: []ClassID{object}})
	derived := arena.Register(&Class{Name: "Derived", MRO: []ClassID{base, object}})

	derivedCls := arena.MustGet(derived)
	assert.True(t, derivedCls.IsSubclassOf(base))
	assert.True(t, derivedCls.IsSubclassOf(object))
	assert.True(t, derivedCls.IsSubclassOf(derived), "MRO includes self at index 0")

	baseCls := arena.MustGet(base)
	assert.False(t, baseCls.IsSubclassOf(derived))
}

func TestClassArena_MustGet_PanicsOnDanglingID(t *testing.T) {
	arena := NewClassArena()
	assert.Panics(t, func() { arena.MustGet(ClassID(999)) })
}
