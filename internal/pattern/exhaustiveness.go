package pattern

import (
	"github.com/sunholo/narrowlab/internal/patsyntax"
	"github.com/sunholo/narrowlab/internal/types"
)

// Exhaustiveness folds negative narrowing across pats left to right and
// reports whether the remainder is Never, per §9's "exhaustiveness via
// repeated negative narrowing": a match statement is exhaustive exactly
// when nothing is left over after every arm has failed to match.
//
// Grounded on the teacher's buildUniverse/subtract shape
// (internal/elaborate/exhaustiveness.go), re-expressed in terms of this
// core's own negative-narrowing primitive instead of a bespoke pattern
// universe: the teacher starts from an enumerated universe and subtracts
// covered patterns, this starts from the subject type and narrows it
// away one arm at a time.
func Exhaustiveness(ctx *Context, subject types.Type, pats []patsyntax.Pattern) (remaining types.Type, exhaustive bool) {
	remaining = subject
	for _, p := range pats {
		remaining = Narrow(ctx, remaining, p, false)
	}
	_, isNever := remaining.(types.TNever)
	return remaining, isNever
}
