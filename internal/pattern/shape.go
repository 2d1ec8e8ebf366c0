package pattern

import "github.com/sunholo/narrowlab/internal/types"

// Members flattens t into its constituent members: a TUnion's Members,
// or the single-element slice [t] for anything else. Every narrowing
// operation that must treat "a type" and "a union of types" uniformly
// starts here, per §4.3 ("narrowing distributes over Union").
func Members(t types.Type) []types.Type {
	if u, ok := t.(*types.TUnion); ok {
		return u.Members
	}
	return []types.Type{t}
}

// GroupByClass partitions a type's members by the ClassID of their
// TInstance form, mirroring the teacher's SwitchNode discriminator
// grouping (internal/dtree/decision_tree.go) — there it branches a
// decision tree on a constructor tag; here it groups members by class
// identity. The pattern matchers in this package do not call it; they
// walk Members directly.
//
// Members with no TInstance form (TAny, TUnknown, TTypeVar, ...) are
// returned separately in "other" since they have no class to group by.
func GroupByClass(t types.Type) (groups map[types.ClassID][]*types.TInstance, other []types.Type) {
	groups = make(map[types.ClassID][]*types.TInstance)
	for _, m := range Members(t) {
		if inst, ok := m.(*types.TInstance); ok {
			groups[inst.Class] = append(groups[inst.Class], inst)
			continue
		}
		other = append(other, m)
	}
	return groups, other
}

// IsTuple reports whether inst denotes a fixed/variadic tuple shape.
func IsTuple(inst *types.TInstance) bool {
	return inst != nil && inst.Tuple != nil
}
