package pattern

import (
	"github.com/sunholo/narrowlab/internal/patsyntax"
	"github.com/sunholo/narrowlab/internal/types"
)

// literalClassName maps a LiteralKind to the built-in class name the
// SymbolResolver uses for it. Enum literals have no fixed built-in name,
// so for them narrowLiteralValue has no expected class and excludes no
// member on class grounds.
func literalClassName(kind types.LiteralKind) (string, bool) {
	switch kind {
	case types.LiteralBool:
		return "bool", true
	case types.LiteralInt:
		return "int", true
	case types.LiteralStr:
		return "str", true
	case types.LiteralBytes:
		return "bytes", true
	default:
		return "", false
	}
}

// expectedLiteralClass resolves which ClassID a literal of kind belongs
// to, via the collaborator for bool/int/str/bytes. It returns false if
// the class can't be determined (an enum literal, a missing resolver, or
// a resolver that doesn't know the built-in).
func expectedLiteralClass(ctx *Context, kind types.LiteralKind, node patsyntax.Node) (types.ClassID, bool) {
	name, ok := literalClassName(kind)
	if !ok || ctx == nil || ctx.Resolver == nil {
		return 0, false
	}
	t := ctx.Resolver.BuiltInType(node, name)
	inst, ok := t.(*types.TInstance)
	if !ok {
		return 0, false
	}
	return inst.Class, true
}

// narrowLiteralValue implements literal-identity narrowing (§4.4
// Literal/Value dispatch): positively, a union collapses to the members
// whose class matches lit's domain and whose literal identity (if
// already narrowed) equals lit; negatively, matching members are
// removed or excluded.
func narrowLiteralValue(ctx *Context, subject types.Type, lit types.LiteralValue, node patsyntax.Node, positive bool) types.Type {
	expectedClass, haveExpected := expectedLiteralClass(ctx, lit.Kind, node)

	members := Members(subject)
	kept := make([]types.Type, 0, len(members))

	for _, m := range members {
		inst, ok := m.(*types.TInstance)
		if !ok {
			// Any/Unknown/TypeVar etc. can't be statically excluded or
			// confirmed; keep them on both branches.
			kept = append(kept, m)
			continue
		}

		if inst.Literal != nil {
			matches := inst.Literal.Equal(&lit)
			if matches == positive {
				kept = append(kept, m)
			}
			continue
		}

		if haveExpected && inst.Class != expectedClass {
			// Different domain entirely (e.g. literal int against a str
			// instance): the literal can never match this member, so it
			// is excluded positively and kept unchanged negatively.
			if !positive {
				kept = append(kept, m)
			}
			continue
		}

		// An un-narrowed instance of (plausibly) the literal's own class:
		// positively it specializes to the literal; negatively the class
		// minus one literal isn't representable in this universe in
		// general, so it is kept unchanged — conservative per §9's
		// unbounded-domain narrowing note. bool is the one exception
		// (§4.3's Literal dispatch row): its domain has exactly two
		// values, so excluding one pins the other.
		if positive {
			kept = append(kept, types.CloneWithLiteral(inst, &lit))
		} else if lit.Kind == types.LiteralBool {
			opposite := types.LiteralValue{Kind: types.LiteralBool, Bool: !lit.Bool}
			kept = append(kept, types.CloneWithLiteral(inst, &opposite))
		} else {
			kept = append(kept, m)
		}
	}

	return types.Combine(kept...)
}
