package collab

import (
	"fmt"

	"github.com/sunholo/narrowlab/internal/diagnostics"
	"github.com/sunholo/narrowlab/internal/patsyntax"
	"github.com/sunholo/narrowlab/internal/types"
)

// MethodTable is a coherence-checked registry of per-class `__eq__` and
// `__match_args__` style members, keyed the way the teacher's
// InstanceEnv keys type-class instances ("ClassName:Member"), repurposed
// here from type-class dictionaries to per-class member lookup.
type MethodTable struct {
	members map[types.ClassID]map[string]Member
}

// NewMethodTable creates an empty table.
func NewMethodTable() *MethodTable {
	return &MethodTable{members: make(map[types.ClassID]map[string]Member)}
}

// Add registers member m as name on class, rejecting a duplicate
// registration the same way the teacher's InstanceEnv.Add rejects an
// overlapping instance.
func (t *MethodTable) Add(class types.ClassID, name string, m Member) error {
	if t.members[class] == nil {
		t.members[class] = make(map[string]Member)
	}
	if _, exists := t.members[class][name]; exists {
		return fmt.Errorf("collab: overlapping member %s on class %d", name, class)
	}
	t.members[class][name] = m
	return nil
}

// Lookup finds a member declared directly on class (no MRO walk — callers
// that need inherited members walk the MRO themselves via a
// SymbolResolver, as FakeResolver does below).
func (t *MethodTable) Lookup(class types.ClassID, name string) (Member, bool) {
	m, ok := t.members[class][name]
	return m, ok
}

// FakeResolver is a minimal in-memory SymbolResolver backed by a
// ClassArena and MethodTable, used by the pattern-engine test suite and
// the CLI demo.
type FakeResolver struct {
	Arena     *types.ClassArena
	Methods   *MethodTable
	BuiltIns  map[string]types.Type
	TypingNS  map[string]types.Type
}

// NewFakeResolver creates a resolver over arena and methods.
func NewFakeResolver(arena *types.ClassArena, methods *MethodTable) *FakeResolver {
	return &FakeResolver{
		Arena:    arena,
		Methods:  methods,
		BuiltIns: make(map[string]types.Type),
		TypingNS: make(map[string]types.Type),
	}
}

func (r *FakeResolver) BuiltInType(node patsyntax.Node, name string) types.Type {
	if t, ok := r.BuiltIns[name]; ok {
		return t
	}
	return types.TUnknown{}
}

func (r *FakeResolver) BuiltInObject(node patsyntax.Node, name string) types.Type {
	return r.BuiltInType(node, name)
}

func (r *FakeResolver) TypingType(node patsyntax.Node, name string) (types.Type, bool) {
	t, ok := r.TypingNS[name]
	return t, ok
}

// LookUpClassMember walks class's MRO looking for name, matching the
// teacher's MRO-ordered resolution semantics.
func (r *FakeResolver) LookUpClassMember(class types.ClassID, name string) (Member, bool) {
	cls, ok := r.Arena.Get(class)
	if !ok {
		return Member{}, false
	}
	for _, id := range cls.MRO {
		if m, ok := r.Methods.Lookup(id, name); ok {
			return m, true
		}
	}
	return Member{}, false
}

func (r *FakeResolver) TypedDictMembers(class types.ClassID) map[string]types.TypedDictField {
	cls, ok := r.Arena.Get(class)
	if !ok || !cls.IsTypedDict {
		return nil
	}
	return cls.Fields
}

// FakeEvaluator is a minimal ExpressionEvaluator. Expressions are keyed by
// Node.ID() since this module owns no real expression AST.
type FakeEvaluator struct {
	Types   map[uint64]types.Type
	Members map[types.ClassID]map[string]types.Type
	// MagicMethods backs MagicMethodCall when set; callers that need to
	// exercise __eq__-driven Value-pattern narrowing register a hook here
	// instead of subclassing the fake. A nil hook means no magic method is
	// ever defined, matching a collaborator with no dunder lookup at all.
	MagicMethods func(receiver types.Type, args []types.Type, name string, node patsyntax.Node) (types.Type, bool)
}

// NewFakeEvaluator creates an evaluator with no pre-registered types.
func NewFakeEvaluator() *FakeEvaluator {
	return &FakeEvaluator{
		Types:   make(map[uint64]types.Type),
		Members: make(map[types.ClassID]map[string]types.Type),
	}
}

func (e *FakeEvaluator) TypeOfExpression(node patsyntax.Node) (types.Type, error) {
	if node == nil {
		return types.TUnknown{}, nil
	}
	if t, ok := e.Types[node.ID()]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("collab: no registered type for node %d", node.ID())
}

func (e *FakeEvaluator) MagicMethodCall(receiver types.Type, args []types.Type, name string, node patsyntax.Node) (types.Type, bool) {
	if e.MagicMethods == nil {
		return nil, false
	}
	return e.MagicMethods(receiver, args, name, node)
}

func (e *FakeEvaluator) TypeOfObjectMember(node patsyntax.Node, objType types.Type, name string) (types.Type, bool) {
	inst, ok := objType.(*types.TInstance)
	if !ok {
		return nil, false
	}
	t, ok := e.Members[inst.Class][name]
	return t, ok
}

// MapSubtypesExpandTypeVars applies cb to each member of a union,
// returning a recombined union, or applies cb to t directly otherwise —
// the identity shape expected by callers that don't actually bind type
// variables in this standalone module.
func (e *FakeEvaluator) MapSubtypesExpandTypeVars(t types.Type, cb func(types.Type) types.Type) types.Type {
	if u, ok := t.(*types.TUnion); ok {
		mapped := make([]types.Type, len(u.Members))
		for i, m := range u.Members {
			mapped[i] = cb(m)
		}
		return types.Combine(mapped...)
	}
	return cb(t)
}

// FakeReachability reports a node as unreachable only when its ID is set
// in Unreachable, and as reachable otherwise; the CLI demo and most tests
// have no control-flow graph to consult.
type FakeReachability struct {
	Unreachable map[uint64]bool
}

func NewFakeReachability() *FakeReachability {
	return &FakeReachability{Unreachable: make(map[uint64]bool)}
}

func (f *FakeReachability) IsCodeUnreachable(node patsyntax.Node) bool {
	if node == nil {
		return false
	}
	return f.Unreachable[node.ID()]
}

// RecordingSink is a DiagnosticSink that appends every report it
// receives, so tests can assert on what the engine raised without
// standing up a real diagnostic pipeline.
type RecordingSink struct {
	Reports []*diagnostics.Report
}

func NewRecordingSink() *RecordingSink {
	return &RecordingSink{}
}

func (s *RecordingSink) Report(rule diagnostics.Code, message string, node patsyntax.Node) {
	s.Reports = append(s.Reports, diagnostics.New(rule, message, node, nil))
}
