package types

// Combine builds a union out of members, flattening nested unions and
// deduplicating structurally-Same members, per §3.1 ("Union: nondeterministic
// choice among member types") and §4.1's invariant that a TUnion never
// contains another TUnion directly nor collapses to a singleton silently.
//
// TNever members are dropped, since Never adds no possibility to a union.
// A single remaining member is returned unwrapped; zero members returns
// TNever{} (the identity of "no possibility remains").
func Combine(members ...Type) Type {
	flat := make([]Type, 0, len(members))
	for _, m := range members {
		if m == nil {
			continue
		}
		if _, ok := m.(TNever); ok {
			continue
		}
		if u, ok := m.(*TUnion); ok {
			flat = append(flat, u.Members...)
			continue
		}
		flat = append(flat, m)
	}

	deduped := make([]Type, 0, len(flat))
	for _, m := range flat {
		dup := false
		for _, seen := range deduped {
			if Same(seen, m) {
				dup = true
				break
			}
		}
		if !dup {
			deduped = append(deduped, m)
		}
	}

	switch len(deduped) {
	case 0:
		return TNever{}
	case 1:
		return deduped[0]
	default:
		return &TUnion{Members: deduped}
	}
}

// CombineCollapseToAny is Combine, except that if any member is TAny the
// whole union collapses to TAny, for callers that treat Any as absorbing
// rather than merely gradual.
func CombineCollapseToAny(members ...Type) Type {
	for _, m := range members {
		if _, ok := m.(TAny); ok {
			return TAny{}
		}
	}
	return Combine(members...)
}
