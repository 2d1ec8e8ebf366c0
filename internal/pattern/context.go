// Package pattern implements the Narrowing Calculus, the Pattern Engine
// and the Shape Extraction helpers (§4.3–§4.5) as one package: the three
// are mutually recursive (Narrow dispatches into the sequence/mapping/
// class matchers, which recurse back into Narrow for subpatterns and
// element/attribute types), and Go has no import cycles, so they share a
// package the same way the teacher keeps its unifier and row unifier
// together in internal/types.
package pattern

import (
	"github.com/sunholo/narrowlab/internal/assign"
	"github.com/sunholo/narrowlab/internal/collab"
	"github.com/sunholo/narrowlab/internal/types"
)

// Context bundles the collaborators every narrowing/matching operation
// needs (§6), plus the Oracle and ClassArena a standalone core must
// supply itself.
type Context struct {
	Arena     *types.ClassArena
	Oracle    *assign.Oracle
	Resolver  collab.SymbolResolver
	Evaluator collab.ExpressionEvaluator
	Sink      collab.DiagnosticSink
	Reach     collab.CodeReachability
}

// NewContext wires a Context from its collaborators, constructing the
// Oracle from arena.
func NewContext(arena *types.ClassArena, resolver collab.SymbolResolver, evaluator collab.ExpressionEvaluator, sink collab.DiagnosticSink, reach collab.CodeReachability) *Context {
	return &Context{
		Arena:     arena,
		Oracle:    assign.New(arena),
		Resolver:  resolver,
		Evaluator: evaluator,
		Sink:      sink,
		Reach:     reach,
	}
}
