package types

import (
	"flag"
	"strings"
	"testing"

	"github.com/sunholo/narrowlab/testutil"
)

// update controls whether TestString_Golden overwrites its golden file,
// per-package the way the teacher's internal/parser package registers
// its own -update flag rather than sharing one across the module.
// Usage: go test -update ./internal/types
var update = flag.Bool("update", false, "update golden files")

// TestString_Golden renders a representative slice of the type universe
// and compares it against a checked-in golden file, catching accidental
// String() regressions the same way the teacher's goldenCompare catches
// parser AST-printer regressions.
func TestString_Golden(t *testing.T) {
	arena := NewClassArena()
	point := arena.Register(&Class{Name: "Point", Params: []ClassParam{{Name: "T"}}})
	dog := arena.Register(&Class{Name: "Dog", IsFinal: true})

	rendered := []Type{
		TAny{},
		TUnknown{},
		TNever{},
		TNone{},
		&TInstance{Class: point, Args: []TypeArg{{Name: "T", Type: TAny{}}}},
		&TInstance{Class: dog, Literal: &LiteralValue{Kind: LiteralStr, Str: "rex"}},
		&TInstance{Class: dog, Tuple: []TupleEntry{
			{Type: TAny{}},
			{Type: TNone{}, Unbounded: true},
		}},
		AsInstantiable(&TInstance{Class: point}),
		Combine(&TInstance{Class: dog}, TNone{}),
		&TFunction{
			Params: []Param{{Name: "x", Type: TAny{}}},
			Return: TNone{},
		},
	}

	var out strings.Builder
	for _, ty := range rendered {
		out.WriteString(ty.String())
		out.WriteByte('\n')
	}

	testutil.GoldenCompare(t, "types", "string_render", *update, out.String())
}
