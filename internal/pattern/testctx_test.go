package pattern

import (
	"github.com/sunholo/narrowlab/internal/assign"
	"github.com/sunholo/narrowlab/internal/collab"
	"github.com/sunholo/narrowlab/internal/patsyntax"
	"github.com/sunholo/narrowlab/internal/types"
)

// universe is a small fixture class graph shared by the pattern test
// suite: object <- Animal <- Dog (final), plus int/str/bool built-ins and
// a Movie TypedDict with one NotRequired field, mirroring the shapes
// spec.md's own worked examples use.
type universe struct {
	Arena    *types.ClassArena
	Methods  *collab.MethodTable
	Resolver *collab.FakeResolver
	Eval     *collab.FakeEvaluator
	Sink     *collab.RecordingSink
	Reach    *collab.FakeReachability
	Ctx      *Context

	Object, Animal, Dog, IntCls, StrCls, BoolCls, Movie types.ClassID

	// ListCls is an ordered-sequence container (IsSequence: true) with a
	// single covariant-by-convention element parameter "T", registered as
	// the "list" built-in for Sequence-pattern and star-capture tests.
	ListCls types.ClassID
	// TypeCls/NoneTypeCls back the Class-pattern metaclass/None special
	// cases, registered as the "type"/"NoneType" built-ins.
	TypeCls, NoneTypeCls types.ClassID
	// Color is a final enum class with two members, for Value-pattern
	// __eq__-driven narrowing tests.
	Color types.ClassID
	// Circle/Square are a tagged-union TypedDict pair sharing a "kind"
	// discriminant field restricted to a distinct literal per variant, for
	// Mapping negative-narrowing discriminator tests.
	Circle, Square types.ClassID
}

func newUniverse() *universe {
	arena := types.NewClassArena()
	u := &universe{Arena: arena}

	u.Object = arena.Register(&types.Class{Name: "object"})
	u.Animal = arena.Register(&types.Class{Name: "Animal", MRO: []types.ClassID{u.Object}, MatchArgs: []string{"name"}})
	u.Dog = arena.Register(&types.Class{Name: "Dog", IsFinal: true, MRO: []types.ClassID{u.Animal, u.Object}, MatchArgs: []string{"name", "breed"}})
	u.IntCls = arena.Register(&types.Class{Name: "int", MRO: []types.ClassID{u.Object}})
	u.StrCls = arena.Register(&types.Class{Name: "str", MRO: []types.ClassID{u.Object}})
	u.BoolCls = arena.Register(&types.Class{Name: "bool", MRO: []types.ClassID{u.Object}})
	u.Movie = arena.Register(&types.Class{
		Name:        "Movie",
		IsTypedDict: true,
		MRO:         []types.ClassID{u.Object},
		Fields: map[string]types.TypedDictField{
			"title": {ValueType: &types.TInstance{Class: u.StrCls}, IsRequired: true},
			"year":  {ValueType: &types.TInstance{Class: u.IntCls}, IsRequired: false},
		},
	})
	u.ListCls = arena.Register(&types.Class{
		Name:       "list",
		IsSequence: true,
		MRO:        []types.ClassID{u.Object},
		Params:     []types.ClassParam{{Name: "T"}},
	})
	u.TypeCls = arena.Register(&types.Class{Name: "type", MRO: []types.ClassID{u.Object}})
	u.NoneTypeCls = arena.Register(&types.Class{Name: "NoneType", MRO: []types.ClassID{u.Object}})
	u.Color = arena.Register(&types.Class{Name: "Color", IsFinal: true, IsEnum: true, MRO: []types.ClassID{u.Object}, EnumMembers: []string{"RED", "GREEN"}})
	u.Circle = arena.Register(&types.Class{
		Name:        "Circle",
		IsTypedDict: true,
		MRO:         []types.ClassID{u.Object},
		Fields: map[string]types.TypedDictField{
			"kind":   {ValueType: &types.TInstance{Class: u.StrCls, Literal: &types.LiteralValue{Kind: types.LiteralStr, Str: "circle"}}, IsRequired: true},
			"radius": {ValueType: &types.TInstance{Class: u.IntCls}, IsRequired: true},
		},
	})
	u.Square = arena.Register(&types.Class{
		Name:        "Square",
		IsTypedDict: true,
		MRO:         []types.ClassID{u.Object},
		Fields: map[string]types.TypedDictField{
			"kind": {ValueType: &types.TInstance{Class: u.StrCls, Literal: &types.LiteralValue{Kind: types.LiteralStr, Str: "square"}}, IsRequired: true},
			"side": {ValueType: &types.TInstance{Class: u.IntCls}, IsRequired: true},
		},
	})

	u.Methods = collab.NewMethodTable()
	_ = u.Methods.Add(u.Animal, "name", collab.Member{Type: &types.TInstance{Class: u.StrCls}})
	_ = u.Methods.Add(u.Dog, "breed", collab.Member{Type: &types.TInstance{Class: u.StrCls}})

	u.Resolver = collab.NewFakeResolver(arena, u.Methods)
	u.Resolver.BuiltIns["int"] = &types.TInstance{Class: u.IntCls}
	u.Resolver.BuiltIns["str"] = &types.TInstance{Class: u.StrCls}
	u.Resolver.BuiltIns["bool"] = &types.TInstance{Class: u.BoolCls}
	u.Resolver.BuiltIns["list"] = &types.TInstance{Class: u.ListCls}
	u.Resolver.BuiltIns["type"] = &types.TInstance{Class: u.TypeCls}
	u.Resolver.BuiltIns["NoneType"] = &types.TInstance{Class: u.NoneTypeCls}

	u.Eval = collab.NewFakeEvaluator()
	u.Sink = collab.NewRecordingSink()
	u.Reach = collab.NewFakeReachability()

	u.Ctx = &Context{
		Arena:     arena,
		Oracle:    assign.New(arena),
		Resolver:  u.Resolver,
		Evaluator: u.Eval,
		Sink:      u.Sink,
		Reach:     u.Reach,
	}
	return u
}

// registerClassExpr wires a class-head expression node so narrowClassPattern
// can resolve it to class id.
func (u *universe) registerClassExpr(node patsyntax.Node, class types.ClassID) {
	u.Eval.Types[node.ID()] = &types.TInstantiable{Class: class}
}
