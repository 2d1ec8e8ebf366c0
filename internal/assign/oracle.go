// Package assign implements the Subtype/Assignability Oracle (§4.2):
// a one-directional compatibility check between two types in the
// universe of internal/types, used by the Narrowing Calculus to decide
// whether a narrowed type still fits where the subject was expected.
//
// The recursive type-switch-with-swap-and-retry shape follows the
// teacher's Unifier.Unify (internal/types/unification.go), but Oracle
// never writes a substitution: it answers a yes/no question about two
// already-concrete types.
package assign

import (
	"github.com/sunholo/narrowlab/internal/types"
)

// Oracle answers assignability questions against a fixed class universe.
type Oracle struct {
	Classes *types.ClassArena
}

// New creates an Oracle backed by arena.
func New(arena *types.ClassArena) *Oracle {
	return &Oracle{Classes: arena}
}

// Assignable reports whether a value of type src may be used where dest
// is expected, per §4.2's contract:
//   - reflexive: Assignable(t, t) is always true.
//   - Any/Unknown absorb on either side.
//   - Never is assignable to anything; nothing but Never/Any/Unknown is
//     assignable to Never.
//   - nothing but a final class itself (Instance or Instantiable) is
//     assignable to that final class.
//   - Union on dest is existential ("assignable to some member");
//     Union on src is universal ("every member assignable to dest").
//   - tuple assignability is element-wise, with an unbounded entry on
//     src absorbing any run of dest entries of a compatible type.
func (o *Oracle) Assignable(dest, src types.Type) bool {
	if dest == nil || src == nil {
		return dest == nil && src == nil
	}

	if types.Same(dest, src) {
		return true
	}

	switch dest.(type) {
	case types.TAny, types.TUnknown:
		return true
	case types.TNever:
		switch src.(type) {
		case types.TNever, types.TAny, types.TUnknown:
			return true
		}
		return false
	}
	switch src.(type) {
	case types.TAny, types.TUnknown:
		return true
	case types.TNever:
		return true
	}

	switch d := dest.(type) {
	case *types.TUnion:
		for _, m := range d.Members {
			if o.Assignable(m, src) {
				return true
			}
		}
		return false
	}

	if s, ok := src.(*types.TUnion); ok {
		for _, m := range s.Members {
			if !o.Assignable(dest, m) {
				return false
			}
		}
		return true
	}

	switch d := dest.(type) {
	case types.TNone:
		_, ok := src.(types.TNone)
		return ok

	case *types.TInstance:
		s, ok := src.(*types.TInstance)
		if !ok {
			return false
		}
		return o.instanceAssignable(d, s)

	case *types.TInstantiable:
		s, ok := src.(*types.TInstantiable)
		if !ok {
			return false
		}
		if d.Class != s.Class {
			return !o.classIsFinal(d.Class) && o.isSubclass(s.Class, d.Class)
		}
		return o.argsAssignable(d.Class, d.Args, s.Args)

	case *types.TTypeVar:
		s, ok := src.(*types.TTypeVar)
		return ok && d.Name == s.Name

	case *types.TFunction:
		s, ok := src.(*types.TFunction)
		if !ok {
			return false
		}
		return o.functionAssignable(d, s)

	case *types.TOverloaded:
		s, ok := src.(*types.TFunction)
		if ok {
			for _, sig := range d.Signatures {
				if o.functionAssignable(sig, s) {
					return true
				}
			}
			return false
		}
		so, ok := src.(*types.TOverloaded)
		if !ok {
			return false
		}
		for _, sig := range so.Signatures {
			if !o.Assignable(d, sig) {
				return false
			}
		}
		return true
	}

	return false
}

func (o *Oracle) classIsFinal(id types.ClassID) bool {
	cls, ok := o.Classes.Get(id)
	return ok && cls.IsFinal
}

// isSubclass reports whether src's MRO contains dest, i.e. dest is an
// ancestor of (or identical to) src.
func (o *Oracle) isSubclass(src, dest types.ClassID) bool {
	if src == dest {
		return true
	}
	cls, ok := o.Classes.Get(src)
	if !ok {
		return false
	}
	return cls.IsSubclassOf(dest)
}

func (o *Oracle) instanceAssignable(dest, src *types.TInstance) bool {
	// Literal narrowing: a literal instance is assignable to its own
	// unliteralized class and to an equal literal, never to a different
	// literal of the same class.
	if dest.Literal != nil {
		return src.Literal != nil && dest.Literal.Equal(src.Literal) && dest.Class == src.Class
	}

	if dest.Tuple != nil || src.Tuple != nil {
		if dest.Tuple == nil || src.Tuple == nil {
			return false
		}
		return o.tupleAssignable(dest.Tuple, src.Tuple)
	}

	if dest.Class == src.Class {
		return o.argsAssignable(dest.Class, dest.Args, src.Args)
	}
	if o.classIsFinal(dest.Class) {
		return false
	}
	return o.isSubclass(src.Class, dest.Class)
}

// argsAssignable compares class type-argument lists positionally per the
// declared variance of owner's class parameters (§3.2). A type-arg name
// with no matching ClassParam descriptor defaults to invariant.
func (o *Oracle) argsAssignable(owner types.ClassID, dest, src []types.TypeArg) bool {
	if len(dest) != len(src) {
		return false
	}
	cls, _ := o.Classes.Get(owner)
	variance := func(name string) types.Variance {
		if cls == nil {
			return types.Invariant
		}
		for _, p := range cls.Params {
			if p.Name == name {
				return p.Variance
			}
		}
		return types.Invariant
	}
	for i := range dest {
		if dest[i].Name != src[i].Name {
			return false
		}
		switch variance(dest[i].Name) {
		case types.Covariant:
			if !o.Assignable(dest[i].Type, src[i].Type) {
				return false
			}
		case types.Contravariant:
			if !o.Assignable(src[i].Type, dest[i].Type) {
				return false
			}
		default:
			if !types.Same(dest[i].Type, src[i].Type) {
				return false
			}
		}
	}
	return true
}

// tupleAssignable implements §4.1's element-wise tuple assignability,
// letting a src unbounded entry absorb any number of corresponding dest
// entries as long as their element type is compatible.
func (o *Oracle) tupleAssignable(dest, src []types.TupleEntry) bool {
	di, si := 0, 0
	for di < len(dest) && si < len(src) {
		se := src[si]
		if se.Unbounded {
			// Absorb dest entries until the fixed suffix of src can still
			// match the remaining dest entries one-to-one.
			remainingFixedSrc := len(src) - si - 1
			for len(dest)-di > remainingFixedSrc {
				if !o.Assignable(dest[di].Type, se.Type) {
					return false
				}
				di++
			}
			si++
			continue
		}
		if !o.Assignable(dest[di].Type, se.Type) {
			return false
		}
		di++
		si++
	}
	return di == len(dest) && si == len(src)
}

func (o *Oracle) functionAssignable(dest, src *types.TFunction) bool {
	if len(dest.Params) != len(src.Params) {
		if dest.Variadic == nil && src.Variadic == nil {
			return false
		}
	}
	n := len(dest.Params)
	if len(src.Params) < n {
		n = len(src.Params)
	}
	for i := 0; i < n; i++ {
		// parameters are contravariant
		if !o.Assignable(src.Params[i].Type, dest.Params[i].Type) {
			return false
		}
	}
	if dest.Variadic != nil && src.Variadic != nil {
		if !o.Assignable(src.Variadic.Type, dest.Variadic.Type) {
			return false
		}
	}
	return o.Assignable(dest.Return, src.Return)
}
