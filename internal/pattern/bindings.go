package pattern

import (
	"github.com/sunholo/narrowlab/internal/patsyntax"
	"github.com/sunholo/narrowlab/internal/types"
)

// Binding is one name introduced by a successfully matched pattern,
// together with the type it carries (§4.5).
type Binding struct {
	Target string
	Type   types.Type
}

// AssignTargets walks pat against subject — which callers pass already
// positively narrowed by Narrow — and returns every capture binding it
// introduces, per §4.5. It consults CodeReachability before recursing
// into a subtree, per §6: bindings under unreachable code are never
// reported, matching the teacher's practice of skipping dead branches in
// control-flow-sensitive analyses.
func AssignTargets(ctx *Context, subject types.Type, pat patsyntax.Pattern) []Binding {
	if pat == nil {
		return nil
	}
	if ctx != nil && ctx.Reach != nil && ctx.Reach.IsCodeUnreachable(pat) {
		return nil
	}

	switch p := pat.(type) {
	case *patsyntax.Capture:
		if p.IsWildcard {
			return nil
		}
		return []Binding{{Target: p.Name, Type: subject}}

	case *patsyntax.As:
		return assignAs(ctx, subject, p)

	case *patsyntax.Sequence:
		return assignSequence(ctx, subject, p)

	case *patsyntax.Mapping:
		return assignMapping(ctx, subject, p)

	case *patsyntax.Class:
		return assignClass(ctx, subject, p)

	default: // Literal, Value, Error: no bindings
		return nil
	}
}

func assignAs(ctx *Context, subject types.Type, p *patsyntax.As) []Binding {
	var out []Binding
	if p.Target != nil && !p.Target.IsWildcard {
		out = append(out, Binding{Target: p.Target.Name, Type: subject})
	}

	merged := make(map[string]types.Type)
	order := make([]string, 0)
	for _, alt := range p.Alternatives {
		narrowedAlt := Narrow(ctx, subject, alt, true)
		for _, b := range AssignTargets(ctx, narrowedAlt, alt) {
			if _, seen := merged[b.Target]; !seen {
				order = append(order, b.Target)
			}
			merged[b.Target] = types.Combine(merged[b.Target], b.Type)
		}
	}
	for _, name := range order {
		out = append(out, Binding{Target: name, Type: merged[name]})
	}
	return out
}

func assignSequence(ctx *Context, subject types.Type, p *patsyntax.Sequence) []Binding {
	shape := shapeOfPattern(p)
	var out []Binding
	for _, m := range Members(subject) {
		inst, ok := m.(*types.TInstance)
		if !ok {
			continue
		}
		if IsTuple(inst) {
			out = append(out, bindTupleEntries(ctx, inst, shape)...)
			continue
		}
		out = append(out, bindContainerEntries(ctx, inst, shape)...)
	}
	return out
}

func bindTupleEntries(ctx *Context, inst *types.TInstance, shape patternShape) []Binding {
	var out []Binding
	n := len(inst.Tuple)
	for i, e := range shape.Before {
		if i >= n {
			break
		}
		out = append(out, AssignTargets(ctx, inst.Tuple[i].Type, e.Pattern)...)
	}
	for i, e := range shape.After {
		pos := n - len(shape.After) + i
		if pos < 0 || pos >= n {
			continue
		}
		out = append(out, AssignTargets(ctx, inst.Tuple[pos].Type, e.Pattern)...)
	}
	if shape.Star != nil && !isWildcardCapture(shape.Star.Pattern) {
		middle := make([]types.Type, 0)
		for i := len(shape.Before); i < n-len(shape.After); i++ {
			if i < 0 || i >= n {
				continue
			}
			middle = append(middle, inst.Tuple[i].Type)
		}
		starType := starListType(ctx, shape.Star.Pattern, middle)
		out = append(out, AssignTargets(ctx, starType, shape.Star.Pattern)...)
	}
	return out
}

func bindContainerEntries(ctx *Context, inst *types.TInstance, shape patternShape) []Binding {
	elem := types.Type(types.TUnknown{})
	for _, a := range inst.Args {
		if a.Name == "T" {
			elem = a.Type
			break
		}
	}
	var out []Binding
	for _, e := range shape.Before {
		out = append(out, AssignTargets(ctx, elem, e.Pattern)...)
	}
	for _, e := range shape.After {
		out = append(out, AssignTargets(ctx, elem, e.Pattern)...)
	}
	if shape.Star != nil {
		starType := starListType(ctx, shape.Star.Pattern, []types.Type{elem})
		out = append(out, AssignTargets(ctx, starType, shape.Star.Pattern)...)
	}
	return out
}

// starListType builds the ordered-list binding type a star-capture
// introduces (§4.4.1, §8 scenario 5): the spanned element types combined
// with literals stripped and any Any/Unknown member absorbing the rest,
// wrapped as list[T] rather than bound as a bare element/union type.
func starListType(ctx *Context, node patsyntax.Node, spanned []types.Type) types.Type {
	elem := starElementType(spanned)
	if ctx == nil || ctx.Resolver == nil {
		return elem
	}
	t := ctx.Resolver.BuiltInType(node, "list")
	listInst, ok := t.(*types.TInstance)
	if !ok {
		return elem
	}
	return &types.TInstance{Class: listInst.Class, Args: []types.TypeArg{{Name: "T", Type: elem}}}
}

// starElementType collapses the types spanned by a star entry into the
// single element type list[T] should carry: literal identity is stripped
// (a star capture never proves every spanned element is the same literal),
// and an Any/Unknown member absorbs the rest, preferring Unknown per §9's
// "propagate Unknown in preference to Any" rule.
func starElementType(spanned []types.Type) types.Type {
	var hasAny, hasUnknown bool
	stripped := make([]types.Type, 0, len(spanned))
	for _, t := range spanned {
		switch t.(type) {
		case types.TUnknown:
			hasUnknown = true
			continue
		case types.TAny:
			hasAny = true
			continue
		}
		if inst, ok := t.(*types.TInstance); ok && inst.Literal != nil {
			stripped = append(stripped, &types.TInstance{Class: inst.Class, Args: inst.Args})
			continue
		}
		stripped = append(stripped, t)
	}
	if hasUnknown {
		return types.TUnknown{}
	}
	if hasAny {
		return types.TAny{}
	}
	return types.Combine(stripped...)
}

func isWildcardCapture(p patsyntax.Pattern) bool {
	c, ok := p.(*patsyntax.Capture)
	return ok && c.IsWildcard
}

func assignMapping(ctx *Context, subject types.Type, p *patsyntax.Mapping) []Binding {
	var out []Binding
	for _, m := range Members(subject) {
		inst, ok := m.(*types.TInstance)
		if !ok {
			continue
		}
		var fields map[string]types.TypedDictField
		if ctx != nil && ctx.Resolver != nil {
			fields = ctx.Resolver.TypedDictMembers(inst.Class)
		}
		for _, ke := range p.Keys {
			valueType := types.Type(types.TUnknown{})
			if fields != nil {
				if f, ok := fields[ke.Key.Str]; ok {
					valueType = f.ValueType
				}
			} else {
				for _, a := range inst.Args {
					if a.Name == "V" {
						valueType = a.Type
					}
				}
			}
			out = append(out, AssignTargets(ctx, valueType, ke.Value)...)
		}
		if p.Rest != nil && !p.Rest.IsWildcard {
			out = append(out, Binding{Target: p.Rest.Name, Type: types.TUnknown{}})
		}
	}
	return out
}

func assignClass(ctx *Context, subject types.Type, p *patsyntax.Class) []Binding {
	if _, ok := resolveClassHead(ctx, p); !ok {
		return nil
	}
	var out []Binding
	for _, m := range Members(subject) {
		inst, ok := m.(*types.TInstance)
		if !ok {
			continue
		}
		cls, ok := lookupClass(ctx, inst.Class)
		if !ok {
			continue
		}
		positional := 0
		for _, arg := range p.Args {
			var argType types.Type = types.TUnknown{}
			if arg.Keyword == "" {
				if cls.MatchArgs != nil && positional < len(cls.MatchArgs) {
					if t, ok := lookUpMember(ctx, inst.Class, cls.MatchArgs[positional]); ok {
						argType = t
					}
				}
				positional++
			} else if t, ok := lookUpMember(ctx, inst.Class, arg.Keyword); ok {
				argType = t
			}
			out = append(out, AssignTargets(ctx, argType, arg.Pattern)...)
		}
	}
	return out
}
