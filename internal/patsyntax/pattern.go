package patsyntax

import "github.com/sunholo/narrowlab/internal/types"

// Pattern is the sealed interface implemented by every pattern-node kind
// of §3.4.
type Pattern interface {
	Node
	patternNode()
}

// Capture is a bare name binding, or the wildcard `_` when IsWildcard is
// set (a wildcard never introduces a binding).
type Capture struct {
	Base
	Name       string
	IsWildcard bool
}

func (*Capture) patternNode() {}

// As is both the or-pattern and the `pat as name` binding form: when
// Target is non-nil the whole (possibly multi-alternative) match is also
// bound to Target. A single-element Alternatives with a nil Target is
// just a parenthesized pattern.
type As struct {
	Base
	Alternatives []Pattern
	Target       *Capture
}

func (*As) patternNode() {}

// Literal matches a subject against a literal value by identity (bool,
// int, str, bytes, enum member), per §4.4 dispatch.
type Literal struct {
	Base
	Value types.LiteralValue
}

func (*Literal) patternNode() {}

// Value matches a subject by calling the collaborator's `__eq__` on the
// runtime value an arbitrary dotted expression evaluates to (e.g.
// `case Color.RED:`). Expr is opaque to this package — the
// ExpressionEvaluator collaborator resolves it.
type Value struct {
	Base
	Expr Node
}

func (*Value) patternNode() {}

// SequenceEntry is one element of a Sequence pattern; at most one entry
// in a Sequence may have Star set (the `*rest` catch-all), per §4.4.1.
type SequenceEntry struct {
	Pattern Pattern
	Star    bool
}

// Sequence destructures a subject as a fixed-and-optional-star list/tuple
// shape, per §4.4.1.
type Sequence struct {
	Base
	Entries []SequenceEntry
}

func (*Sequence) patternNode() {}

// KeyEntry is one `key: pattern` member of a Mapping pattern, per §4.4.2.
type KeyEntry struct {
	Key   types.LiteralValue
	Value Pattern
}

// Mapping destructures a subject's TypedDict/dict keys, per §4.4.2.
// Rest, when non-nil, captures the remaining unmatched keys (`**rest`);
// Go has no pointer-to-pattern-type constraint here since Capture is the
// only legal rest target.
type Mapping struct {
	Base
	Keys []KeyEntry
	Rest *Capture
}

func (*Mapping) patternNode() {}

// ClassArg is one argument of a Class pattern: positional when Keyword is
// empty, resolved through `__match_args__` (§4.4.4); keyword otherwise.
type ClassArg struct {
	Keyword string
	Pattern Pattern
}

// Class destructures a subject against a named class's positional/keyword
// argument patterns, per §4.4.3 and §4.4.4. ClassExpr is the (opaque)
// expression naming the class, resolved by the SymbolResolver
// collaborator.
type Class struct {
	Base
	ClassExpr Node
	Args      []ClassArg
}

func (*Class) patternNode() {}

// Error stands in for a pattern the surrounding parser could not make
// sense of. Per §4.4 it must never block narrowing of sibling patterns:
// the engine treats it as matching Any positively and leaves the subject
// unchanged negatively.
type Error struct {
	Base
}

func (*Error) patternNode() {}
