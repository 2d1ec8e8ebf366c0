// Package types implements the Type Representation component of the
// narrowing engine (SPEC_FULL.md §4.1): the algebraic data type of the
// type universe plus construction, cloning, specialization, and
// structural equality.
//
// The universe is modeled as a sealed tagged sum, not an inheritance
// hierarchy (§9): every operation dispatches on the concrete Go type of
// the Type interface value, the same shape the teacher used for its own
// Type sum (internal/types/types.go in the teacher repo) generalized from
// a Hindley-Milner universe (TVar/TCon/TFunc/TTuple/TRecord) to the
// gradual, class-based universe this spec requires.
package types

import (
	"fmt"
	"sort"
	"strings"
)

// Type is the sealed interface implemented by every type-universe variant.
type Type interface {
	String() string
	Same(Type) bool
	typeNode()
}

// TAny is the gradual wildcard: assignable to and from anything.
type TAny struct{}

func (TAny) String() string    { return "Any" }
func (TAny) typeNode()         {}
func (TAny) Same(o Type) bool  { _, ok := o.(TAny); return ok }

// TUnknown behaves like TAny but is tracked: the engine emits diagnostics
// (PAT006/PAT007) when a wildcard capture resolves to it, whereas TAny
// never triggers those.
type TUnknown struct{}

func (TUnknown) String() string   { return "Unknown" }
func (TUnknown) typeNode()        {}
func (TUnknown) Same(o Type) bool { _, ok := o.(TUnknown); return ok }

// TNever is the uninhabited bottom of the lattice.
type TNever struct{}

func (TNever) String() string   { return "Never" }
func (TNever) typeNode()        {}
func (TNever) Same(o Type) bool { _, ok := o.(TNever); return ok }

// TNone is the nil singleton type.
type TNone struct{}

func (TNone) String() string   { return "None" }
func (TNone) typeNode()        {}
func (TNone) Same(o Type) bool { _, ok := o.(TNone); return ok }

// TypeArg is one binding in a class's type-argument list. TInstance and
// TInstantiable keep these as an ordered slice (for deterministic
// String()), but Same() compares them as a set per §4.1 ("ignores
// insertion order in type-arg maps").
type TypeArg struct {
	Name string
	Type Type
}

func argsString(args []TypeArg) string {
	if len(args) == 0 {
		return ""
	}
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.Type.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func argsSame(a, b []TypeArg) bool {
	if len(a) != len(b) {
		return false
	}
	am := make(map[string]Type, len(a))
	for _, x := range a {
		am[x.Name] = x.Type
	}
	for _, y := range b {
		x, ok := am[y.Name]
		if !ok || !Same(x, y.Type) {
			return false
		}
	}
	return true
}

func cloneArgs(args []TypeArg) []TypeArg {
	out := make([]TypeArg, len(args))
	copy(out, args)
	return out
}

// LiteralKind tags which of the five literal domains a LiteralValue holds
// (§3.1: "bool: {true,false}; int: integer; str: string; bytes: byte
// sequence; enum: member identity").
type LiteralKind int

const (
	LiteralNone LiteralKind = iota
	LiteralBool
	LiteralInt
	LiteralStr
	LiteralBytes
	LiteralEnum
)

// LiteralValue is the restricted value domain carried by a literal
// TInstance, per §3.1.
type LiteralValue struct {
	Kind       LiteralKind
	Bool       bool
	Int        int64
	Str        string
	Bytes      string // byte sequences compared as normalized strings
	EnumMember string
}

func (l *LiteralValue) String() string {
	if l == nil {
		return ""
	}
	switch l.Kind {
	case LiteralBool:
		return fmt.Sprintf("%v", l.Bool)
	case LiteralInt:
		return fmt.Sprintf("%d", l.Int)
	case LiteralStr:
		return fmt.Sprintf("%q", l.Str)
	case LiteralBytes:
		return fmt.Sprintf("b%q", l.Bytes)
	case LiteralEnum:
		return l.EnumMember
	default:
		return ""
	}
}

// Equal compares two literal values for identity within the same domain.
func (l *LiteralValue) Equal(o *LiteralValue) bool {
	if l == nil || o == nil {
		return l == o
	}
	if l.Kind != o.Kind {
		return false
	}
	switch l.Kind {
	case LiteralBool:
		return l.Bool == o.Bool
	case LiteralInt:
		return l.Int == o.Int
	case LiteralStr:
		return NormalizeLiteralString(l.Str) == NormalizeLiteralString(o.Str)
	case LiteralBytes:
		return NormalizeLiteralString(l.Bytes) == NormalizeLiteralString(o.Bytes)
	case LiteralEnum:
		return l.EnumMember == o.EnumMember
	default:
		return true
	}
}

// TupleEntry is one element of a tuple-shaped TInstance. At most one entry
// per tuple may be Unbounded (§4.1: "Tuple specialization ... enforces at
// most one unbounded entry"), representing the `[fixed…, * element,
// fixed…]` shape of §3.1.
type TupleEntry struct {
	Type      Type
	Unbounded bool
}

// TInstance is a runtime value of a class (§3.1).
type TInstance struct {
	Class   ClassID
	Args    []TypeArg
	Literal *LiteralValue // non-nil for a literal-narrowed instance
	// Tuple holds ordered entry shapes when Class denotes a tuple type;
	// nil for non-tuple instances.
	Tuple []TupleEntry
}

func (t *TInstance) typeNode() {}
func (t *TInstance) String() string {
	if t == nil {
		return "<nil instance>"
	}
	if t.Literal != nil {
		return fmt.Sprintf("Literal[%s]", t.Literal.String())
	}
	if t.Tuple != nil {
		parts := make([]string, len(t.Tuple))
		for i, e := range t.Tuple {
			if e.Unbounded {
				parts[i] = "*" + e.Type.String()
			} else {
				parts[i] = e.Type.String()
			}
		}
		return "tuple[" + strings.Join(parts, ", ") + "]"
	}
	return fmt.Sprintf("class#%d%s", t.Class, argsString(t.Args))
}

func (t *TInstance) Same(o Type) bool {
	other, ok := o.(*TInstance)
	if !ok || t == nil || other == nil {
		return false
	}
	if t.Class != other.Class {
		return false
	}
	if !t.Literal.Equal(other.Literal) {
		return false
	}
	if len(t.Tuple) != len(other.Tuple) {
		return false
	}
	for i := range t.Tuple {
		if t.Tuple[i].Unbounded != other.Tuple[i].Unbounded {
			return false
		}
		if !Same(t.Tuple[i].Type, other.Tuple[i].Type) {
			return false
		}
	}
	return argsSame(t.Args, other.Args)
}

// TInstantiable is the class object itself (§3.1) — distinct from TInstance
// even when it denotes the same Class.
type TInstantiable struct {
	Class ClassID
	Args  []TypeArg
}

func (t *TInstantiable) typeNode() {}
func (t *TInstantiable) String() string {
	if t == nil {
		return "<nil instantiable>"
	}
	return fmt.Sprintf("type[class#%d%s]", t.Class, argsString(t.Args))
}

func (t *TInstantiable) Same(o Type) bool {
	other, ok := o.(*TInstantiable)
	if !ok || t == nil || other == nil {
		return false
	}
	return t.Class == other.Class && argsSame(t.Args, other.Args)
}

// AsInstance converts a class reference to the instance form. AsInstance
// and AsInstantiable are total inverses per §3.1.
func AsInstance(ti *TInstantiable) *TInstance {
	return &TInstance{Class: ti.Class, Args: cloneArgs(ti.Args)}
}

// AsInstantiable converts an instance form back to the class-object form.
func AsInstantiable(inst *TInstance) *TInstantiable {
	return &TInstantiable{Class: inst.Class, Args: cloneArgs(inst.Args)}
}

// TTypeVar is a universally quantified placeholder (§3.1).
type TTypeVar struct {
	Name        string
	Bound       Type   // nil if unbounded
	Constraints []Type // alternative constraint set, may be empty
	Variance    Variance
	ScopeID     uint64
}

func (t *TTypeVar) typeNode()      {}
func (t *TTypeVar) String() string { return t.Name }
func (t *TTypeVar) Same(o Type) bool {
	other, ok := o.(*TTypeVar)
	return ok && t.Name == other.Name && t.ScopeID == other.ScopeID
}

// TVariadicTypeVar is a variable-length type-argument placeholder (e.g. a
// TypeVarTuple), used by variadic generics.
type TVariadicTypeVar struct {
	Name    string
	ScopeID uint64
}

func (t *TVariadicTypeVar) typeNode()      {}
func (t *TVariadicTypeVar) String() string { return "*" + t.Name }
func (t *TVariadicTypeVar) Same(o Type) bool {
	other, ok := o.(*TVariadicTypeVar)
	return ok && t.Name == other.Name && t.ScopeID == other.ScopeID
}

// TParamSpec is a callable-parameter-list placeholder.
type TParamSpec struct {
	Name    string
	ScopeID uint64
}

func (t *TParamSpec) typeNode()      {}
func (t *TParamSpec) String() string { return "**" + t.Name }
func (t *TParamSpec) Same(o Type) bool {
	other, ok := o.(*TParamSpec)
	return ok && t.Name == other.Name && t.ScopeID == other.ScopeID
}

// Param is one parameter of a TFunction signature.
type Param struct {
	Name     string
	Type     Type
	Keyword  bool // keyword-only
	Optional bool
}

func paramsSame(a, b []Param) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Keyword != b[i].Keyword || a[i].Optional != b[i].Optional {
			return false
		}
		if !Same(a[i].Type, b[i].Type) {
			return false
		}
	}
	return true
}

// TFunction is a callable type (§3.1).
type TFunction struct {
	Params   []Param
	Return   Type
	Variadic *Param // non-nil when the last positional parameter is *args
}

func (t *TFunction) typeNode() {}
func (t *TFunction) String() string {
	parts := make([]string, len(t.Params))
	for i, p := range t.Params {
		parts[i] = p.Type.String()
	}
	if t.Variadic != nil {
		parts = append(parts, "*"+t.Variadic.Type.String())
	}
	ret := "Unknown"
	if t.Return != nil {
		ret = t.Return.String()
	}
	return fmt.Sprintf("(%s) -> %s", strings.Join(parts, ", "), ret)
}

func (t *TFunction) Same(o Type) bool {
	other, ok := o.(*TFunction)
	if !ok {
		return false
	}
	if !paramsSame(t.Params, other.Params) {
		return false
	}
	if (t.Variadic == nil) != (other.Variadic == nil) {
		return false
	}
	if t.Variadic != nil && !Same(t.Variadic.Type, other.Variadic.Type) {
		return false
	}
	return Same(t.Return, other.Return)
}

// TOverloaded is an ordered set of call signatures (§3.1).
type TOverloaded struct {
	Signatures []*TFunction
}

func (t *TOverloaded) typeNode() {}
func (t *TOverloaded) String() string {
	parts := make([]string, len(t.Signatures))
	for i, s := range t.Signatures {
		parts[i] = s.String()
	}
	return "overload{" + strings.Join(parts, "; ") + "}"
}

func (t *TOverloaded) Same(o Type) bool {
	other, ok := o.(*TOverloaded)
	if !ok || len(t.Signatures) != len(other.Signatures) {
		return false
	}
	for i := range t.Signatures {
		if !t.Signatures[i].Same(other.Signatures[i]) {
			return false
		}
	}
	return true
}

// TUnion is a nondeterministic choice among member types (§3.1).
//
// Invariants enforced by the constructors in union.go, never by callers
// touching this struct directly: never singleton, never contains a TUnion
// member directly, members kept in deterministic insertion order.
type TUnion struct {
	Members []Type
}

func (t *TUnion) typeNode() {}
func (t *TUnion) String() string {
	parts := make([]string, len(t.Members))
	for i, m := range t.Members {
		parts[i] = m.String()
	}
	return strings.Join(parts, " | ")
}

// Same for TUnion treats membership as a set: order-independent, per §4.1.
func (t *TUnion) Same(o Type) bool {
	other, ok := o.(*TUnion)
	if !ok || len(t.Members) != len(other.Members) {
		return false
	}
	used := make([]bool, len(other.Members))
	for _, m := range t.Members {
		found := false
		for i, om := range other.Members {
			if !used[i] && Same(m, om) {
				used[i] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// sortedKeys is a small helper shared by String() implementations that
// need deterministic field ordering.
func sortedKeys(m map[string]TypedDictField) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
