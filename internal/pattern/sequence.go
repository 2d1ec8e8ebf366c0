package pattern

import (
	"github.com/sunholo/narrowlab/internal/patsyntax"
	"github.com/sunholo/narrowlab/internal/types"
)

// patternShape summarizes a Sequence pattern's arity: the entries before
// the star (if any), the star entry itself, and the entries after it.
type patternShape struct {
	Before []patsyntax.SequenceEntry
	Star   *patsyntax.SequenceEntry
	After  []patsyntax.SequenceEntry
}

func shapeOfPattern(p *patsyntax.Sequence) patternShape {
	var shape patternShape
	for i := range p.Entries {
		if p.Entries[i].Star {
			star := p.Entries[i]
			shape.Star = &star
			shape.Before = p.Entries[:i]
			shape.After = p.Entries[i+1:]
			return shape
		}
	}
	shape.Before = p.Entries
	return shape
}

// sequenceBlocklist names the classes §4.4.1 explicitly excludes from
// Sequence-pattern matching even though they are iterable in order: str,
// bytes, and bytearray "look like" sequences of their own element type but
// a Sequence pattern is never considered to match them.
var sequenceBlocklist = map[string]bool{
	"str":       true,
	"bytes":     true,
	"bytearray": true,
}

// isOrderedSequence reports whether inst's class classifies as an ordered
// sequence for Sequence-pattern purposes (§4.4.1): a tuple shape always
// qualifies, and otherwise the collaborator-declared IsSequence flag
// qualifies unless the class is one of the explicitly excluded string-like
// types.
func isOrderedSequence(ctx *Context, inst *types.TInstance) bool {
	if IsTuple(inst) {
		return true
	}
	if ctx == nil || ctx.Arena == nil {
		return false
	}
	cls, ok := ctx.Arena.Get(inst.Class)
	if !ok || !cls.IsSequence {
		return false
	}
	return !sequenceBlocklist[cls.Name]
}

// narrowSequence implements §4.4.1: destructure a subject's sequence/
// tuple members against a fixed-and-optional-star pattern shape. An
// instance member that doesn't classify as an ordered sequence at all
// (str, a plain object, ...) can never match: it is excluded positively and
// kept unchanged negatively, the same exclusion rule every other pattern
// kind applies to a definitely-non-matching member. Members that are not
// instances (Any/Unknown/...) are kept on both branches.
func narrowSequence(ctx *Context, subject types.Type, p *patsyntax.Sequence, positive bool) types.Type {
	shape := shapeOfPattern(p)
	members := Members(subject)
	kept := make([]types.Type, 0, len(members))

	for _, m := range members {
		inst, ok := m.(*types.TInstance)
		if !ok {
			kept = append(kept, m)
			continue
		}
		if !isOrderedSequence(ctx, inst) {
			if !positive {
				kept = append(kept, m)
			}
			continue
		}
		switch {
		case IsTuple(inst):
			kept = appendTupleResult(ctx, kept, inst, shape, positive)
		default:
			kept = appendContainerResult(ctx, kept, inst, shape, positive)
		}
	}
	return types.Combine(kept...)
}

// appendTupleResult handles a fixed-shape tuple subject. A subject tuple
// that itself already carries an unbounded entry is kept unchanged on
// both branches — a deliberately conservative choice (§9 "unbounded
// tuple shapes are never narrowed further, to avoid fabricating element
// types for positions that don't exist").
func appendTupleResult(ctx *Context, kept []types.Type, inst *types.TInstance, shape patternShape, positive bool) []types.Type {
	for _, e := range inst.Tuple {
		if e.Unbounded {
			return append(kept, inst)
		}
	}

	total := len(shape.Before) + len(shape.After)
	if shape.Star == nil {
		if len(inst.Tuple) != len(shape.Before) {
			if !positive {
				return append(kept, inst)
			}
			return kept
		}
		if !positive {
			// Proving the pattern does NOT match a same-arity tuple only
			// excludes it when every position provably mismatches; this
			// engine has no per-position exclusion story for tuples
			// beyond arity, so it conservatively keeps the member.
			return append(kept, inst)
		}
		entries := make([]types.TupleEntry, len(inst.Tuple))
		for i := range inst.Tuple {
			narrowed := Narrow(ctx, inst.Tuple[i].Type, shape.Before[i].Pattern, true)
			if _, never := narrowed.(types.TNever); never {
				return kept
			}
			entries[i] = types.TupleEntry{Type: narrowed}
		}
		return append(kept, types.SpecializeTuple(inst, entries))
	}

	if len(inst.Tuple) < total {
		if !positive {
			return append(kept, inst)
		}
		return kept
	}
	if !positive {
		return append(kept, inst)
	}

	entries := make([]types.TupleEntry, len(inst.Tuple))
	for i := range shape.Before {
		narrowed := Narrow(ctx, inst.Tuple[i].Type, shape.Before[i].Pattern, true)
		if _, never := narrowed.(types.TNever); never {
			return kept
		}
		entries[i] = types.TupleEntry{Type: narrowed}
	}
	for i := range shape.After {
		pos := len(inst.Tuple) - len(shape.After) + i
		narrowed := Narrow(ctx, inst.Tuple[pos].Type, shape.After[i].Pattern, true)
		if _, never := narrowed.(types.TNever); never {
			return kept
		}
		entries[pos] = types.TupleEntry{Type: narrowed}
	}
	for i := len(shape.Before); i < len(inst.Tuple)-len(shape.After); i++ {
		entries[i] = inst.Tuple[i]
	}
	return append(kept, types.SpecializeTuple(inst, entries))
}

// appendContainerResult handles a non-tuple sequence-like instance (e.g.
// list[T]): arity is dynamic, so the engine narrows the single element
// type parameter "T" by the conjunction of every sub-pattern and never
// excludes the member on length grounds.
func appendContainerResult(ctx *Context, kept []types.Type, inst *types.TInstance, shape patternShape, positive bool) []types.Type {
	if !positive {
		return append(kept, inst)
	}

	elemIdx := -1
	for i, a := range inst.Args {
		if a.Name == "T" {
			elemIdx = i
			break
		}
	}
	if elemIdx == -1 {
		return append(kept, inst)
	}

	elem := inst.Args[elemIdx].Type
	all := append(append([]patsyntax.SequenceEntry{}, shape.Before...), shape.After...)
	for _, e := range all {
		elem = Narrow(ctx, elem, e.Pattern, true)
	}
	if shape.Star != nil {
		elem = Narrow(ctx, elem, shape.Star.Pattern, true)
	}

	newArgs := append([]types.TypeArg(nil), inst.Args...)
	newArgs[elemIdx] = types.TypeArg{Name: "T", Type: elem}
	return append(kept, types.Specialize(inst, newArgs))
}
