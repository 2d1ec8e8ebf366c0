// Package testutil provides golden-file comparison for rendered
// narrowing-engine output, used by the internal/types test suite for
// rendered type strings.
//
// Grounded on the teacher's internal/parser/testutil.go goldenCompare:
// a -update flag and github.com/google/go-cmp diffing over plain text
// golden files, rather than the JSON-metadata golden format other Go
// projects use — the teacher's own choice for a tree-shaped checker
// output is the grounding for keeping it here for a type-string one.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// GoldenCompare compares got against the golden file testdata/<dir>/
// <name>.golden, updating it in place when -update is passed to the
// calling package's own flag (callers wire their own *bool through
// updateFlag since flag registration is per test binary).
func GoldenCompare(t *testing.T, dir, name string, updateFlag bool, got string) {
	t.Helper()

	path := filepath.Join("testdata", dir, name+".golden")

	if updateFlag {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("failed to create directory %s: %v", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, []byte(got), 0644); err != nil {
			t.Fatalf("failed to write golden file %s: %v", path, err)
		}
		t.Logf("updated golden file: %s", path)
		return
	}

	want, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read golden file %s: %v\nrun with -update to create it", path, err)
	}

	if diff := cmp.Diff(string(want), got); diff != "" {
		t.Errorf("golden mismatch for %s (-want +got):\n%s", name, diff)
	}
}
