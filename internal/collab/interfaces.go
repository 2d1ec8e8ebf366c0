// Package collab declares the external interfaces the narrowing engine
// consumes (§6) — symbol resolution, expression evaluation, diagnostic
// reporting and code-reachability — plus small in-memory reference
// implementations so the engine is exercisable without a real
// surrounding type checker.
//
// Grounded on the teacher's InstanceEnv/ClassInstance coherence-checked
// registry (internal/types/instances.go), repurposed here from
// type-class dictionary lookup to class-member (`__eq__`,
// `__match_args__`) lookup.
package collab

import (
	"github.com/sunholo/narrowlab/internal/diagnostics"
	"github.com/sunholo/narrowlab/internal/patsyntax"
	"github.com/sunholo/narrowlab/internal/types"
)

// Member describes one resolved class member: its declared type (used by
// class-pattern argument resolution, §4.4.4) and whether it is a property.
type Member struct {
	Type       types.Type
	IsProperty bool
}

// SymbolResolver answers name/class/member lookups the engine cannot
// answer on its own, since it holds no symbol table.
type SymbolResolver interface {
	BuiltInType(node patsyntax.Node, name string) types.Type
	BuiltInObject(node patsyntax.Node, name string) types.Type
	TypingType(node patsyntax.Node, name string) (types.Type, bool)
	LookUpClassMember(class types.ClassID, name string) (Member, bool)
	TypedDictMembers(class types.ClassID) map[string]types.TypedDictField
}

// ExpressionEvaluator resolves the opaque expression nodes embedded in
// Value and Class patterns.
type ExpressionEvaluator interface {
	TypeOfExpression(node patsyntax.Node) (types.Type, error)
	MagicMethodCall(receiver types.Type, args []types.Type, name string, node patsyntax.Node) (types.Type, bool)
	TypeOfObjectMember(node patsyntax.Node, objType types.Type, name string) (types.Type, bool)
	MapSubtypesExpandTypeVars(t types.Type, cb func(types.Type) types.Type) types.Type
}

// DiagnosticSink receives structured diagnostics raised during pattern
// analysis (§7).
type DiagnosticSink interface {
	Report(rule diagnostics.Code, message string, node patsyntax.Node)
}

// CodeReachability lets the binding walk of §4.5 skip dead branches.
type CodeReachability interface {
	IsCodeUnreachable(node patsyntax.Node) bool
}
