// Package patsyntax holds the immutable pattern-node syntax the
// narrowing engine consumes as external input (§3.4): Capture, As,
// Literal, Value, Sequence, Mapping, Class and Error pattern kinds, plus
// the small positional Node base every collaborator interface in §6
// takes as its diagnostic-anchoring argument.
//
// Grounded on the teacher's Core AST node shape (internal/core/core.go):
// a small embeddable base carrying a stable id and source span, with one
// struct per syntactic variant implementing a sealed marker method.
package patsyntax

import "fmt"

// Pos is a source position, kept minimal since this module never owns a
// lexer/parser — the surrounding checker stamps real positions in.
type Pos struct {
	Line   int
	Column int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Node is the base interface every syntax node — pattern or otherwise —
// implements, and the type §6's collaborator interfaces use to anchor
// diagnostics and re-entrant expression evaluation.
type Node interface {
	ID() uint64
	Span() Pos
	node()
}

// Base is embedded by every concrete node to supply ID()/Span().
type Base struct {
	NodeID   uint64
	NodeSpan Pos
}

func (b Base) ID() uint64 { return b.NodeID }
func (b Base) Span() Pos  { return b.NodeSpan }
func (b Base) node()      {}
