// Command narrowlab is a small demonstration CLI for the narrowing
// engine: it wires up in-memory SymbolResolver/ExpressionEvaluator fakes
// (internal/collab), builds a handful of subject types and patterns
// taken from spec.md §8's end-to-end scenarios, and prints what the
// engine narrows them to.
//
// Grounded on the teacher's cmd/ailang/main.go: a flag-parsed command
// dispatcher with colorized severity output and a bare `-list`/`-run`
// surface, rather than a config framework — this module has no file
// format of its own to load, so the teacher's own single-binary choice
// (flag, not viper/cobra) is the grounding for staying on flag here too.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/fatih/color"

	"github.com/sunholo/narrowlab/internal/collab"
	"github.com/sunholo/narrowlab/internal/patsyntax"
	"github.com/sunholo/narrowlab/internal/pattern"
	"github.com/sunholo/narrowlab/internal/types"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

func main() {
	var (
		listFlag = flag.Bool("list", false, "List available scenarios")
		runFlag  = flag.String("run", "", "Run a single named scenario")
	)
	flag.Parse()

	scenarios := buildScenarios()

	if *listFlag {
		names := make([]string, 0, len(scenarios))
		for name := range scenarios {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, n := range names {
			fmt.Println(n)
		}
		return
	}

	if *runFlag != "" {
		s, ok := scenarios[*runFlag]
		if !ok {
			fmt.Fprintf(os.Stderr, "%s: unknown scenario %q\n", red("Error"), *runFlag)
			os.Exit(1)
		}
		runScenario(*runFlag, s)
		return
	}

	names := make([]string, 0, len(scenarios))
	for name := range scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, n := range names {
		runScenario(n, scenarios[n])
		fmt.Println()
	}
}

// scenario bundles a subject type and a pattern under a shared collab
// context, mirroring the §8 "end-to-end scenarios" table.
type scenario struct {
	ctx     *pattern.Context
	subject types.Type
	pat     patsyntax.Pattern
}

func runScenario(name string, s scenario) {
	fmt.Println(bold(cyan(name)))
	fmt.Printf("  subject:  %s\n", s.subject.String())

	pos := pattern.Narrow(s.ctx, s.subject, s.pat, true)
	neg := pattern.Narrow(s.ctx, s.subject, s.pat, false)
	fmt.Printf("  positive: %s\n", green(pos.String()))
	fmt.Printf("  negative: %s\n", yellow(neg.String()))

	bindings := pattern.AssignTargets(s.ctx, pos, s.pat)
	if len(bindings) > 0 {
		for _, b := range bindings {
			fmt.Printf("  bind %s = %s\n", bold(b.Target), b.Type.String())
		}
	}
	for _, r := range s.ctx.Sink.(*collab.RecordingSink).Reports {
		fmt.Fprintf(os.Stderr, "  %s %s: %s\n", red(r.Severity().String()+":"), r.Code, r.Message)
	}
}

func node(id uint64) patsyntax.Base {
	return patsyntax.Base{NodeID: id, NodeSpan: patsyntax.Pos{Line: 1, Column: 1}}
}

// buildScenarios constructs the §8 end-to-end table as runnable cases
// against the in-memory fakes.
func buildScenarios() map[string]scenario {
	out := make(map[string]scenario)

	out["literal-union"] = literalUnionScenario()
	out["tuple-sequence"] = tupleSequenceScenario()
	out["typed-dict"] = typedDictScenario()
	out["bool-negative"] = boolNegativeScenario()

	return out
}

func literalUnionScenario() scenario {
	arena := types.NewClassArena()
	intID := arena.Register(&types.Class{Name: "int"})
	strID := arena.Register(&types.Class{Name: "str"})

	resolver := collab.NewFakeResolver(arena, collab.NewMethodTable())
	resolver.BuiltIns["int"] = &types.TInstance{Class: intID}
	resolver.BuiltIns["str"] = &types.TInstance{Class: strID}

	ctx := pattern.NewContext(arena, resolver, collab.NewFakeEvaluator(), collab.NewRecordingSink(), collab.NewFakeReachability())

	subject := types.Combine(
		&types.TInstance{Class: intID, Literal: &types.LiteralValue{Kind: types.LiteralInt, Int: 1}},
		&types.TInstance{Class: intID, Literal: &types.LiteralValue{Kind: types.LiteralInt, Int: 2}},
		&types.TInstance{Class: strID, Literal: &types.LiteralValue{Kind: types.LiteralStr, Str: "x"}},
	)
	pat := &patsyntax.Literal{Base: node(1), Value: types.LiteralValue{Kind: types.LiteralInt, Int: 1}}

	return scenario{ctx: ctx, subject: subject, pat: pat}
}

func tupleSequenceScenario() scenario {
	arena := types.NewClassArena()
	tupleID := arena.Register(&types.Class{Name: "tuple"})
	intID := arena.Register(&types.Class{Name: "int"})
	strID := arena.Register(&types.Class{Name: "str"})
	boolID := arena.Register(&types.Class{Name: "bool"})

	resolver := collab.NewFakeResolver(arena, collab.NewMethodTable())
	resolver.BuiltIns["str"] = &types.TInstance{Class: strID}

	ctx := pattern.NewContext(arena, resolver, collab.NewFakeEvaluator(), collab.NewRecordingSink(), collab.NewFakeReachability())

	subject := &types.TInstance{
		Class: tupleID,
		Tuple: []types.TupleEntry{
			{Type: &types.TInstance{Class: intID}},
			{Type: &types.TInstance{Class: strID}},
			{Type: &types.TInstance{Class: boolID}},
		},
	}
	pat := &patsyntax.Sequence{
		Base: node(2),
		Entries: []patsyntax.SequenceEntry{
			{Pattern: &patsyntax.Capture{Base: node(3), Name: "a"}},
			{Pattern: &patsyntax.Literal{Base: node(4), Value: types.LiteralValue{Kind: types.LiteralStr, Str: "x"}}},
			{Pattern: &patsyntax.Capture{Base: node(5), Name: "c"}},
		},
	}

	return scenario{ctx: ctx, subject: subject, pat: pat}
}

func typedDictScenario() scenario {
	arena := types.NewClassArena()
	strID := arena.Register(&types.Class{Name: "str"})
	intID := arena.Register(&types.Class{Name: "int"})

	pointID := arena.Register(&types.Class{
		Name:        "Point",
		IsTypedDict: true,
		Fields: map[string]types.TypedDictField{
			"x":     {ValueType: &types.TInstance{Class: intID}, IsRequired: true, IsProvided: true},
			"y":     {ValueType: &types.TInstance{Class: intID}, IsRequired: true, IsProvided: true},
			"label": {ValueType: &types.TInstance{Class: strID}, IsRequired: false, IsProvided: false},
		},
	})

	resolver := collab.NewFakeResolver(arena, collab.NewMethodTable())
	ctx := pattern.NewContext(arena, resolver, collab.NewFakeEvaluator(), collab.NewRecordingSink(), collab.NewFakeReachability())

	subject := &types.TInstance{Class: pointID}
	pat := &patsyntax.Mapping{
		Base: node(6),
		Keys: []patsyntax.KeyEntry{
			{
				Key:   types.LiteralValue{Kind: types.LiteralStr, Str: "label"},
				Value: &patsyntax.Capture{Base: node(7), Name: "label"},
			},
		},
	}

	return scenario{ctx: ctx, subject: subject, pat: pat}
}

func boolNegativeScenario() scenario {
	arena := types.NewClassArena()
	boolID := arena.Register(&types.Class{Name: "bool"})
	resolver := collab.NewFakeResolver(arena, collab.NewMethodTable())
	resolver.BuiltIns["bool"] = &types.TInstance{Class: boolID}

	ctx := pattern.NewContext(arena, resolver, collab.NewFakeEvaluator(), collab.NewRecordingSink(), collab.NewFakeReachability())

	subject := &types.TInstance{Class: boolID}
	pat := &patsyntax.Literal{Base: node(8), Value: types.LiteralValue{Kind: types.LiteralBool, Bool: true}}

	return scenario{ctx: ctx, subject: subject, pat: pat}
}
