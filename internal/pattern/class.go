package pattern

import (
	"fmt"

	"github.com/sunholo/narrowlab/internal/diagnostics"
	"github.com/sunholo/narrowlab/internal/patsyntax"
	"github.com/sunholo/narrowlab/internal/types"
)

// narrowClassPattern implements §4.4.3: destructure a subject against a
// named class's positional/keyword argument patterns. The class name
// itself is resolved through the ExpressionEvaluator since this module
// owns no name-resolution story of its own.
//
// Before dispatching on the subject's members it runs
// MapSubtypesExpandTypeVars over the subject, so a generic union member
// bound through a type variable is expanded to its upper bound/constraint
// set first — without this, a class pattern against an unexpanded
// TTypeVar member could neither be proven nor refuted even when its bound
// settles the question.
func narrowClassPattern(ctx *Context, subject types.Type, p *patsyntax.Class, positive bool) types.Type {
	target, ok := resolveClassHead(ctx, p)
	if !ok {
		if ctx != nil && ctx.Sink != nil {
			ctx.Sink.Report(diagnostics.TypeNotClassInPattern, "pattern head does not resolve to a class", p)
		}
		return subject
	}

	expanded := subject
	if ctx != nil && ctx.Evaluator != nil {
		expanded = ctx.Evaluator.MapSubtypesExpandTypeVars(subject, func(t types.Type) types.Type { return t })
	}

	members := Members(expanded)
	kept := make([]types.Type, 0, len(members))

	for _, m := range members {
		switch t := m.(type) {
		case *types.TInstance:
			kept = append(kept, classifyMember(ctx, t, target, p, positive)...)
		case *types.TInstantiable:
			kept = append(kept, classifyInstantiable(ctx, t, target, p, positive)...)
		case types.TNone:
			kept = append(kept, classifyNone(ctx, target, p, positive)...)
		default:
			// Any/Unknown/TypeVar/function types etc. can't be statically
			// confirmed or excluded by a class pattern.
			kept = append(kept, m)
		}
	}
	return types.Combine(kept...)
}

// classifyInstantiable handles a class-object subject (e.g. `type[Dog]`)
// against a class pattern whose head names `type` (or an ancestor of it),
// matching §4.4.3's metaclass special case: a class object is an instance
// of its own metaclass, conventionally `type`, regardless of what class it
// is an object *of*.
func classifyInstantiable(ctx *Context, inst *types.TInstantiable, target types.ClassID, p *patsyntax.Class, positive bool) []types.Type {
	typeCls, ok := builtinClassID(ctx, p, "type")
	if !ok {
		if positive {
			return nil
		}
		return []types.Type{inst}
	}
	if isSubclass(ctx, typeCls, target) {
		if positive {
			return []types.Type{inst}
		}
		return nil
	}
	if positive {
		return nil
	}
	return []types.Type{inst}
}

// classifyNone handles a None subject against a class pattern, matching
// §4.4.3's None-instance special case: `case None:` as a genuine Class
// pattern (`NoneType()`, or the parser's own desugaring of the `None`
// singleton pattern) only matches when the pattern's head resolves to
// NoneType or one of its ancestors.
func classifyNone(ctx *Context, target types.ClassID, p *patsyntax.Class, positive bool) []types.Type {
	noneCls, ok := builtinClassID(ctx, p, "NoneType")
	matches := ok && isSubclass(ctx, noneCls, target)
	if matches == positive {
		return []types.Type{types.TNone{}}
	}
	return nil
}

// builtinClassID resolves the ClassID of the built-in name through the
// SymbolResolver, mirroring the BuiltInType(node, name) -> *TInstance
// convention already established by literal.go's expectedLiteralClass.
func builtinClassID(ctx *Context, node patsyntax.Node, name string) (types.ClassID, bool) {
	if ctx == nil || ctx.Resolver == nil {
		return 0, false
	}
	t := ctx.Resolver.BuiltInType(node, name)
	inst, ok := t.(*types.TInstance)
	if !ok {
		return 0, false
	}
	return inst.Class, true
}

func resolveClassHead(ctx *Context, p *patsyntax.Class) (types.ClassID, bool) {
	if ctx == nil || ctx.Evaluator == nil || p.ClassExpr == nil {
		return 0, false
	}
	t, err := ctx.Evaluator.TypeOfExpression(p.ClassExpr)
	if err != nil {
		return 0, false
	}
	ti, ok := t.(*types.TInstantiable)
	if !ok {
		return 0, false
	}
	return ti.Class, true
}

// classifyMember decides what a single union member contributes to the
// result, per the conventional is-a narrowing lattice: exact-or-narrower
// members pass straight through, a wider member narrows down to target,
// and unrelated classes are excluded positively / kept negatively. The
// is-a question is delegated to the Assignability Oracle (§4.2) rather
// than a hand-rolled MRO walk, so the check inherits the Oracle's literal,
// tuple, generic-variance and gradual handling instead of only comparing
// bare ClassIDs.
func classifyMember(ctx *Context, inst *types.TInstance, target types.ClassID, p *patsyntax.Class, positive bool) []types.Type {
	erased := erasedInstance(ctx, target)
	var sub, super bool
	if ctx != nil && ctx.Oracle != nil {
		sub = ctx.Oracle.Assignable(erased, inst)
		super = ctx.Oracle.Assignable(inst, erased)
	} else {
		sub = isSubclass(ctx, inst.Class, target)
		super = isSubclass(ctx, target, inst.Class)
	}

	switch {
	case sub:
		if positive {
			return narrowArgs(ctx, inst, p)
		}
		if len(p.Args) == 0 {
			return nil // target-or-narrower with no arguments definitely matches; excluded from the negative remainder
		}
		return []types.Type{inst} // argument sub-patterns may still fail to match

	case super:
		if positive {
			narrowed := &types.TInstance{Class: target, Args: inst.Args}
			return narrowArgs(ctx, narrowed, p)
		}
		return []types.Type{inst} // a wider class can't be ruled out by one subclass check

	default:
		if positive {
			return nil
		}
		return []types.Type{inst}
	}
}

// erasedInstance builds a default-Unknown-parameterized instance of
// target, per §4.4.3's "erase explicit type arguments (reset to
// default-parameterization with Unknown)" before consulting the Oracle —
// without this, Oracle.Assignable's arg-count check would spuriously fail
// comparing a zero-arg target against a populated generic instance of the
// same class (e.g. target=list, inst=list[int]).
func erasedInstance(ctx *Context, target types.ClassID) *types.TInstance {
	if ctx == nil || ctx.Arena == nil {
		return &types.TInstance{Class: target}
	}
	cls, ok := ctx.Arena.Get(target)
	if !ok || len(cls.Params) == 0 {
		return &types.TInstance{Class: target}
	}
	args := make([]types.TypeArg, len(cls.Params))
	for i, param := range cls.Params {
		args[i] = types.TypeArg{Name: param.Name, Type: types.TUnknown{}}
	}
	return &types.TInstance{Class: target, Args: args}
}

func isSubclass(ctx *Context, src, dest types.ClassID) bool {
	if src == dest {
		return true
	}
	if ctx == nil || ctx.Arena == nil {
		return false
	}
	cls, ok := ctx.Arena.Get(src)
	if !ok {
		return false
	}
	return cls.IsSubclassOf(dest)
}

// narrowArgs validates and recurses into a Class pattern's positional and
// keyword arguments (§4.4.4), reporting PAT004 when there are more
// positional arguments than __match_args__ names. It returns inst
// unchanged (argument sub-patterns only affect *bindings*, not the
// subject's own type) when argument resolution succeeds, or excludes the
// member (nil) when resolution proves the pattern can never apply to it:
// too many positional arguments, or a keyword naming an attribute that a
// final class does not have. A keyword naming an attribute a non-final
// class lacks keeps the member.
func narrowArgs(ctx *Context, inst *types.TInstance, p *patsyntax.Class) []types.Type {
	cls, ok := lookupClass(ctx, inst.Class)
	if !ok {
		return []types.Type{inst}
	}

	positional := 0
	for _, arg := range p.Args {
		if arg.Keyword != "" {
			continue
		}
		if positional >= len(cls.MatchArgs) {
			if ctx != nil && ctx.Sink != nil {
				ctx.Sink.Report(diagnostics.ClassPatternPositionalArgCount, fmt.Sprintf("class %s accepts %d positional pattern(s)", cls.Name, len(cls.MatchArgs)), p)
			}
			return nil
		}
		positional++
	}

	for _, arg := range p.Args {
		if arg.Keyword == "" {
			continue
		}
		if _, ok := lookUpMember(ctx, inst.Class, arg.Keyword); !ok && cls.IsFinal {
			return nil
		}
	}

	return []types.Type{inst}
}

func lookupClass(ctx *Context, id types.ClassID) (*types.Class, bool) {
	if ctx == nil || ctx.Arena == nil {
		return nil, false
	}
	return ctx.Arena.Get(id)
}

func lookUpMember(ctx *Context, id types.ClassID, name string) (types.Type, bool) {
	if ctx == nil || ctx.Resolver == nil {
		return nil, false
	}
	m, ok := ctx.Resolver.LookUpClassMember(id, name)
	if !ok {
		return nil, false
	}
	return m.Type, true
}
