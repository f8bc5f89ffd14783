package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/signadot/jsonbake/bake/codegen"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

func TestSplitErrors(t *testing.T) {
	a, b, c := errors.New("a"), errors.New("b"), errors.New("c")
	got := splitErrors(errors.Join(a, errors.Join(b, c)))
	if len(got) != 3 || got[0] != a || got[1] != b || got[2] != c {
		t.Errorf("got %v", got)
	}
	if got := splitErrors(a); len(got) != 1 || got[0] != a {
		t.Errorf("got %v", got)
	}
}

func TestRenderDrift(t *testing.T) {
	d := &codegen.Drift{
		Path: "p/jsonbake_gen.go",
		Diffs: []diffpatch.Diff{
			{Type: diffpatch.DiffEqual, Text: "a\nb\nc\nd\n"},
			{Type: diffpatch.DiffDelete, Text: "e\n"},
			{Type: diffpatch.DiffInsert, Text: "E\n"},
		},
	}
	var buf bytes.Buffer
	renderDrift(&buf, d, 1, newDiffColors(false))
	want := strings.Join([]string{
		"--- p/jsonbake_gen.go",
		"+++ p/jsonbake_gen.go (generated)",
		"@@ 3 unchanged lines @@",
		" d",
		"-e",
		"+E",
		"",
	}, "\n")
	if buf.String() != want {
		t.Errorf("got\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestIsTerminal(t *testing.T) {
	if isTerminal(&bytes.Buffer{}) {
		t.Error("a buffer is not a terminal")
	}
}
