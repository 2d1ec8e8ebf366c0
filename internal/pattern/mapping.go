package pattern

import (
	"github.com/sunholo/narrowlab/internal/patsyntax"
	"github.com/sunholo/narrowlab/internal/types"
)

// narrowMapping implements §4.4.2: a Mapping pattern with zero key
// entries matches (and excludes) nothing about the subject's shape — per
// §9's decided Open Question, `case {}:` leaves the subject unchanged on
// both polarities, since every mapping (including dict()) satisfies it.
//
// For a TypedDict subject, each key entry that names a NotRequired field
// not yet proven present clones the class with that field's IsProvided
// flag set (§3.3); a key naming a field the class doesn't declare at all
// makes positive matching impossible for that member. For a non-TypedDict
// mapping (no field map from the collaborator), arity and key presence
// are dynamic and only the value type parameter is narrowed.
func narrowMapping(ctx *Context, subject types.Type, p *patsyntax.Mapping, positive bool) types.Type {
	if len(p.Keys) == 0 {
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

		var fields map[string]types.TypedDictField
		if ctx != nil && ctx.Resolver != nil {
			fields = ctx.Resolver.TypedDictMembers(inst.Class)
		}

		if fields == nil {
			kept = append(kept, narrowGenericMapping(ctx, inst, p, positive))
			continue
		}

		if !positive {
			if eliminatesTypedDictMember(fields, p) {
				continue
			}
			kept = append(kept, m)
			continue
		}

		current := inst
		possible := true
		for _, ke := range p.Keys {
			name := ke.Key.Str
			field, exists := fields[name]
			if !exists {
				possible = false
				break
			}
			if !field.IsRequired && !field.IsProvided && ctx != nil {
				current = types.CloneTypedDictEntries(current, ctx.Arena, name)
				fields = ctx.Resolver.TypedDictMembers(current.Class)
				field = fields[name]
			}
			if _, isNever := Narrow(ctx, field.ValueType, ke.Value, true).(types.TNever); isNever {
				possible = false
				break
			}
		}
		if possible {
			kept = append(kept, current)
		}
	}

	return types.Combine(kept...)
}

// eliminatesTypedDictMember implements §4.4.2's tagged-union-discriminator
// elimination: a Mapping pattern with exactly one key entry naming a
// literal string key whose value sub-pattern is a literal (or an
// or-pattern of literals) eliminates any TypedDict whose field at that key
// is itself restricted to a subset of those literals — the "dict with a
// discriminant field" idiom (e.g. `{"kind": "circle" | "square"}`).
func eliminatesTypedDictMember(fields map[string]types.TypedDictField, p *patsyntax.Mapping) bool {
	if len(p.Keys) != 1 {
		return false
	}
	ke := p.Keys[0]
	field, exists := fields[ke.Key.Str]
	if !exists {
		return false
	}
	patternLits, ok := literalsOf(ke.Value)
	if !ok {
		return false
	}
	fieldLits, ok := discriminatorLiterals(field.ValueType)
	if !ok {
		return false
	}
	for _, fl := range fieldLits {
		if !containsLiteral(patternLits, fl) {
			return false
		}
	}
	return true
}

// literalsOf extracts the flat set of literal values a pattern matches
// positively: a bare Literal, or the alternatives of an unlabeled or
// As-pattern when every alternative is itself a Literal.
func literalsOf(pat patsyntax.Pattern) ([]types.LiteralValue, bool) {
	switch p := pat.(type) {
	case *patsyntax.Literal:
		return []types.LiteralValue{p.Value}, true
	case *patsyntax.As:
		if p.Target != nil {
			return nil, false
		}
		var out []types.LiteralValue
		for _, alt := range p.Alternatives {
			lit, ok := alt.(*patsyntax.Literal)
			if !ok {
				return nil, false
			}
			out = append(out, lit.Value)
		}
		return out, len(out) > 0
	default:
		return nil, false
	}
}

// discriminatorLiterals extracts the literal identities a TypedDict
// field's declared value type is restricted to — a single literal
// instance, or a union of them — returning false for any field whose
// declared type isn't fully literal-restricted.
func discriminatorLiterals(t types.Type) ([]types.LiteralValue, bool) {
	var out []types.LiteralValue
	for _, m := range Members(t) {
		inst, ok := m.(*types.TInstance)
		if !ok || inst.Literal == nil {
			return nil, false
		}
		out = append(out, *inst.Literal)
	}
	return out, len(out) > 0
}

func containsLiteral(set []types.LiteralValue, v types.LiteralValue) bool {
	for _, s := range set {
		if s.Equal(&v) {
			return true
		}
	}
	return false
}

// narrowGenericMapping narrows the value-type parameter "V" of a
// non-TypedDict dict-like instance by the conjunction of every key
// entry's value sub-pattern; key presence itself is never proven or
// refuted since the mapping's keys aren't statically enumerable.
func narrowGenericMapping(ctx *Context, inst *types.TInstance, p *patsyntax.Mapping, positive bool) types.Type {
	if !positive {
		return inst
	}
	valueIdx := -1
	for i, a := range inst.Args {
		if a.Name == "V" {
			valueIdx = i
			break
		}
	}
	if valueIdx == -1 {
		return inst
	}
	value := inst.Args[valueIdx].Type
	for _, ke := range p.Keys {
		value = Narrow(ctx, value, ke.Value, true)
	}
	newArgs := append([]types.TypeArg(nil), inst.Args...)
	newArgs[valueIdx] = types.TypeArg{Name: "V", Type: value}
	return types.Specialize(inst, newArgs)
}
