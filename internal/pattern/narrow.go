package pattern

import (
	"fmt"

	"github.com/sunholo/narrowlab/internal/diagnostics"
	"github.com/sunholo/narrowlab/internal/patsyntax"
	"github.com/sunholo/narrowlab/internal/types"
)

// Narrow computes the refinement of subject under pat, per §4.3: when
// positive is true it returns the type subject has if pat matched; when
// false, the type subject has if pat did NOT match. Dispatch is purely
// on the concrete Go type of pat, the same tagged-sum-switch shape the
// teacher uses for Core pattern matching (typechecker_patterns.go's
// checkPattern) generalized from binding-inference to type refinement.
func Narrow(ctx *Context, subject types.Type, pat patsyntax.Pattern, positive bool) types.Type {
	if subject == nil {
		subject = types.TUnknown{}
	}
	switch p := pat.(type) {
	case *patsyntax.Capture:
		return narrowCapture(ctx, subject, p, positive)

	case *patsyntax.As:
		return narrowAs(ctx, subject, p, positive)

	case *patsyntax.Literal:
		return narrowLiteralValue(ctx, subject, p.Value, p, positive)

	case *patsyntax.Value:
		return narrowValue(ctx, subject, p, positive)

	case *patsyntax.Sequence:
		return narrowSequence(ctx, subject, p, positive)

	case *patsyntax.Mapping:
		return narrowMapping(ctx, subject, p, positive)

	case *patsyntax.Class:
		return narrowClassPattern(ctx, subject, p, positive)

	case *patsyntax.Error:
		if positive {
			return types.TAny{}
		}
		return subject

	default:
		// An unrecognized pattern kind is an internal wiring bug, not a
		// user-facing diagnostic: every concrete patsyntax.Pattern variant
		// is handled above.
		panic(fmt.Sprintf("pattern: unhandled pattern kind %T", pat))
	}
}

// narrowCapture implements §4.5's wildcard-type diagnostics alongside the
// trivial narrowing: a capture (named or `_`) always matches, so
// positively the subject passes through unchanged and negatively nothing
// remains.
func narrowCapture(ctx *Context, subject types.Type, p *patsyntax.Capture, positive bool) types.Type {
	if !positive {
		return types.TNever{}
	}
	if ctx != nil && ctx.Sink != nil {
		reportWildcardUnknown(ctx, subject, p)
	}
	return subject
}

func reportWildcardUnknown(ctx *Context, subject types.Type, node patsyntax.Node) {
	switch t := subject.(type) {
	case types.TUnknown:
		ctx.Sink.Report(diagnostics.WildcardPatternTypeUnknown, "capture pattern's type is Unknown", node)
	case *types.TUnion:
		for _, m := range t.Members {
			if _, ok := m.(types.TUnknown); ok {
				ctx.Sink.Report(diagnostics.WildcardPatternPartiallyUnknown, "capture pattern's type is partially Unknown", node)
				return
			}
		}
	}
}

// narrowAs handles both the or-pattern and the `pat as name` form: the
// Target capture never changes the narrowed *type*, only introduces an
// extra binding resolved in bindings.go.
func narrowAs(ctx *Context, subject types.Type, p *patsyntax.As, positive bool) types.Type {
	if len(p.Alternatives) == 0 {
		if positive {
			return subject
		}
		return types.TNever{}
	}
	if positive {
		narrowed := make([]types.Type, len(p.Alternatives))
		for i, alt := range p.Alternatives {
			narrowed[i] = Narrow(ctx, subject, alt, true)
		}
		return types.Combine(narrowed...)
	}
	// Negative: none of the alternatives matched, so fold negative
	// narrowing across them left to right (§9 "exhaustiveness via
	// repeated negative narrowing").
	remaining := subject
	for _, alt := range p.Alternatives {
		remaining = Narrow(ctx, remaining, alt, false)
	}
	return remaining
}

// narrowValue implements §4.3's Value-pattern row: unlike Literal, a Value
// pattern (`case Color.RED:`) matches by calling the collaborator's
// `__eq__` on the runtime value the dotted expression resolves to, not by
// literal identity — so it is wired through
// ExpressionEvaluator.MagicMethodCall rather than narrowLiteralValue's
// identity comparison.
func narrowValue(ctx *Context, subject types.Type, p *patsyntax.Value, positive bool) types.Type {
	if ctx == nil || ctx.Evaluator == nil {
		return subject
	}
	valueType, err := ctx.Evaluator.TypeOfExpression(p.Expr)
	if err != nil {
		return subject
	}

	members := Members(subject)
	kept := make([]types.Type, 0, len(members))

	for _, m := range members {
		inst, ok := m.(*types.TInstance)
		if !ok {
			kept = append(kept, m)
			continue
		}

		eqResult, eqDefined := ctx.Evaluator.MagicMethodCall(inst, []types.Type{valueType}, "__eq__", p)
		if !eqDefined {
			// __eq__ isn't defined on this member's class: the comparison
			// can't be proven or refuted, so neither branch excludes it.
			kept = append(kept, m)
			continue
		}
		if _, never := eqResult.(types.TNever); never {
			// __eq__ itself is uninhabited for this pairing (e.g. comparing
			// across unrelated enum domains): it can never return True, so
			// positively this member is excluded and negatively it survives
			// unconditionally.
			if !positive {
				kept = append(kept, m)
			}
			continue
		}

		valueInst, valueIsInstance := valueType.(*types.TInstance)
		sameEnumDomain := valueIsInstance && valueInst.Literal != nil &&
			valueInst.Literal.Kind == types.LiteralEnum && inst.Class == valueInst.Class

		if positive {
			// __eq__ is defined and may return True. Within a shared enum
			// domain, equality is decidable by literal identity: a member
			// already narrowed to a *different* member is provably unequal
			// and excluded, an un-narrowed member specializes to the
			// compared-against literal, and a matching member passes
			// through. Outside a shared enum domain the comparison can't be
			// decided statically, so the member is kept unconditionally.
			if sameEnumDomain {
				switch {
				case inst.Literal == nil:
					kept = append(kept, types.CloneWithLiteral(inst, valueInst.Literal))
				case inst.Literal.Equal(valueInst.Literal):
					kept = append(kept, m)
				}
				continue
			}
			kept = append(kept, m)
			continue
		}

		// Negative: only an exact same-enum-domain, same-member comparison
		// is provably never equal to every other member of that enum, so
		// only that case is eliminated; every other __eq__-defined pairing
		// is conservatively kept (§9's unbounded-domain narrowing note).
		if sameEnumDomain && inst.Literal != nil && inst.Literal.Equal(valueInst.Literal) {
			continue
		}
		kept = append(kept, m)
	}

	return types.Combine(kept...)
}
